package dispatch

import (
	"rlscore/collaborators/buildqueue"
	"rlscore/collaborators/vfs"
	"rlscore/protocol"
	"rlscore/span"
)

// handleInitialize replies with the fixed ServerCapabilities and records
// rootPath as the session's project path (spec §4.6, §13 resolution #5).
func (d *Dispatcher) handleInitialize(req *protocol.Request) {
	d.session.CurrentProject = req.Initialize.RootPath
	d.session.Initialized = true
	d.log.Information("dispatcher: initialized for {RootPath}", req.Initialize.RootPath)
	d.replySuccess(req.ID, protocol.FixedCapabilities())
}

// handleShutdown replies with a null result; Run exits once this returns.
func (d *Dispatcher) handleShutdown(req *protocol.Request) {
	d.session.ShuttingDown = true
	d.log.Information("dispatcher: shutting down")
	d.replySuccess(req.ID, nil)
}

// hoverLanguageTag marks a hover entry's type signature as written in the
// source language this core serves (spec §4.6's "native language tag").
const hoverLanguageTag = "bsl"

// handleHover resolves the identifier under the caret and asks the
// analysis backend for its documentation, doc URL, and type signature,
// assembling up to three MarkedString entries in that order. Timeout or
// worker panic replies with a failure envelope (spec §4.6).
func (d *Dispatcher) handleHover(req *protocol.Request) {
	p := req.Position
	sp, err := span.Resolve(d.vfs, p.TextDocument.URI, p.Position)
	if err != nil {
		d.log.Warning("dispatcher: hover resolve failed for {URI}: {Error}", p.TextDocument.URI, err)
		d.replyFailure(req.ID, "Hover failed: position could not be resolved")
		return
	}

	d.registerCancellation(req.ID)
	defer d.clearCancellation(req.ID)

	result, completed, panicked := runBounded(d.deadline, func() protocol.HoverResult {
		contents := []protocol.MarkedString{}
		if docs, err := d.analysis.Docs(sp); err == nil && docs != "" {
			contents = append(contents, protocol.MarkedString{Language: "markdown", Value: docs})
		}
		if url, err := d.analysis.DocURL(sp); err == nil && url != "" {
			contents = append(contents, protocol.MarkedString{Language: "url", Value: url})
		}
		if typ, err := d.analysis.ShowType(sp); err == nil && typ != "" {
			contents = append(contents, protocol.MarkedString{Language: hoverLanguageTag, Value: typ})
		}
		return protocol.HoverResult{Contents: contents}
	})

	if !completed || panicked {
		d.log.Warning("dispatcher: hover timed out or worker panicked for {URI}", p.TextDocument.URI)
		d.replyFailure(req.ID, "Hover failed: backend did not respond in time")
		return
	}
	d.replySuccess(req.ID, result)
}

type gotoDefResult struct {
	def protocol.Span
	err error
}

// handleGotoDef resolves the identifier under the caret and asks the
// analysis backend for its definition, replying with a single zero-width
// Location at the definition's start (start == end) rather than the full
// definition span. A miss, a timeout, or an empty result all reply with an
// empty array; only a worker panic replies with a failure envelope (spec
// §4.6; timeout handling as recorded under DESIGN.md's open-question
// resolutions).
func (d *Dispatcher) handleGotoDef(req *protocol.Request) {
	p := req.Position
	sp, err := span.Resolve(d.vfs, p.TextDocument.URI, p.Position)
	if err != nil {
		d.log.Warning("dispatcher: goto-definition resolve failed for {URI}: {Error}", p.TextDocument.URI, err)
		d.replySuccess(req.ID, []protocol.Location{})
		return
	}

	d.registerCancellation(req.ID)
	defer d.clearCancellation(req.ID)

	result, completed, panicked := runBounded(d.deadline, func() gotoDefResult {
		def, err := d.analysis.GotoDef(sp)
		return gotoDefResult{def: def, err: err}
	})

	if panicked {
		d.log.Warning("dispatcher: goto-definition worker panicked for {URI}", p.TextDocument.URI)
		d.replyFailure(req.ID, "GotoDef failed: backend worker panicked")
		return
	}
	if !completed {
		d.log.Warning("dispatcher: goto-definition timed out for {URI}", p.TextDocument.URI)
		d.replySuccess(req.ID, []protocol.Location{})
		return
	}
	if result.err != nil {
		d.replySuccess(req.ID, []protocol.Location{})
		return
	}
	loc := span.ToLocation(result.def)
	loc.Range.End = loc.Range.Start
	d.replySuccess(req.ID, []protocol.Location{loc})
}

// handleFindAllRef resolves the identifier under the caret and asks the
// analysis backend for every reference span. A miss, a timeout, or a
// worker panic all reply with an empty array rather than a failure — the
// one handler this core never fails loudly for a backend outcome (spec
// §4.6, §7).
func (d *Dispatcher) handleFindAllRef(req *protocol.Request) {
	p := req.Reference
	sp, err := span.Resolve(d.vfs, p.TextDocument.URI, p.Position)
	if err != nil {
		d.log.Warning("dispatcher: find-all-references resolve failed for {URI}: {Error}", p.TextDocument.URI, err)
		d.replySuccess(req.ID, []protocol.Location{})
		return
	}

	d.registerCancellation(req.ID)
	defer d.clearCancellation(req.ID)

	refs, completed, panicked := runBounded(d.deadline, func() []protocol.Span {
		rs, err := d.analysis.FindAllRefs(sp)
		if err != nil {
			return nil
		}
		return rs
	})

	if !completed || panicked {
		d.log.Information("dispatcher: find-all-references timed out or panicked for {URI}; returning empty", p.TextDocument.URI)
		d.replySuccess(req.ID, []protocol.Location{})
		return
	}

	locs := make([]protocol.Location, 0, len(refs))
	for _, r := range refs {
		locs = append(locs, span.ToLocation(r))
	}
	d.replySuccess(req.ID, locs)
}

// handleChange applies a didChange notification's edits to the VFS
// unconditionally, then enqueues a Normal-priority build for the current
// project — unless no project is known yet, in which case the edit is
// still applied but no build is requested (spec §13 resolution #5).
func (d *Dispatcher) handleChange(n *protocol.Notification) {
	p := n.Change
	path := span.StripFileURI(p.TextDocument.URI)

	batch := make([]vfs.Change, 0, len(p.ContentChanges))
	for _, ev := range p.ContentChanges {
		batch = append(batch, vfs.Change{
			Span: span.RangeToSpan(path, ev.Range),
			Text: ev.Text,
		})
	}

	if err := d.vfs.OnChange(batch); err != nil {
		d.log.Warning("dispatcher: applying change batch to {Path} failed: {Error}", path, err)
		return
	}

	if d.session.CurrentProject == "" {
		d.log.Warning("dispatcher: change to {Path} received before initialize; skipping build", path)
		return
	}
	d.enqueueBuild(d.session.CurrentProject, buildqueue.Normal)
}

// handleCancel closes the advisory cancellation channel registered for id,
// if any, and logs regardless. Cancellation is cooperative and best-effort
// (spec §4.4): nothing forces an in-flight worker to stop.
func (d *Dispatcher) handleCancel(n *protocol.Notification) {
	d.log.Information("dispatcher: cancel requested for {ID}", n.CancelID)
	d.cancelMu.Lock()
	if ch, ok := d.cancellations[n.CancelID]; ok {
		close(ch)
		delete(d.cancellations, n.CancelID)
	}
	d.cancelMu.Unlock()
}
