package dispatch

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"rlscore/collaborators/analysis"
	"rlscore/collaborators/buildqueue"
	"rlscore/collaborators/vfs"
	"rlscore/logging"
	"rlscore/protocol"
)

// Dispatcher is the single-threaded message loop: it owns the sole framing
// reader and writer, the SessionState, and the bounded-latency executor
// that every backend-calling handler runs under (spec §4.4).
type Dispatcher struct {
	reader *protocol.Reader
	writer *protocol.Writer

	analysis analysis.Host
	vfs      vfs.VFS
	queue    buildqueue.Queue
	log      logging.Logger
	deadline time.Duration

	session SessionState

	cancelMu      sync.Mutex
	cancellations map[int64]chan struct{}
}

// New builds a Dispatcher reading from r and writing replies to w.
func New(r io.Reader, w io.Writer, host analysis.Host, overlay vfs.VFS, queue buildqueue.Queue, log logging.Logger, deadline time.Duration) *Dispatcher {
	return &Dispatcher{
		reader:        protocol.NewReader(r),
		writer:        protocol.NewWriter(w),
		analysis:      host,
		vfs:           overlay,
		queue:         queue,
		log:           log,
		deadline:      deadline,
		cancellations: make(map[int64]chan struct{}),
	}
}

// Run reads and dispatches messages until the stream ends, a fatal framing
// error occurs, or a shutdown request is handled. A nil return means a
// clean end of stream or an orderly shutdown; any other error is fatal and
// unrecoverable per spec §7 tier 1.
func (d *Dispatcher) Run() error {
	for {
		body, err := d.reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			d.log.Error("dispatcher: fatal stream error: {Error}", err)
			return err
		}

		msg, err := protocol.Parse(body)
		if err != nil {
			var perr *protocol.ParseError
			if errors.As(err, &perr) {
				d.log.Warning("dispatcher: {Error}", perr)
				if perr.ID != nil {
					d.replyFailure(*perr.ID, "request could not be parsed")
				}
				continue
			}
			d.log.Error("dispatcher: unexpected parse failure: {Error}", err)
			continue
		}

		switch {
		case msg.Notification != nil:
			d.dispatchNotification(msg.Notification)
		case msg.Request != nil:
			d.dispatchRequest(msg.Request)
			if d.session.ShuttingDown {
				return nil
			}
		}
	}
}

func (d *Dispatcher) dispatchRequest(req *protocol.Request) {
	switch req.Method {
	case protocol.MethodInitialize:
		d.handleInitialize(req)
	case protocol.MethodShutdown:
		d.handleShutdown(req)
	case protocol.MethodHover:
		d.handleHover(req)
	case protocol.MethodGotoDef:
		d.handleGotoDef(req)
	case protocol.MethodFindAllRef:
		d.handleFindAllRef(req)
	default:
		d.log.Error("dispatcher: no handler registered for {Method}", req.Method)
		d.replyFailure(req.ID, fmt.Sprintf("method not found: %s", req.Method))
	}
}

func (d *Dispatcher) dispatchNotification(n *protocol.Notification) {
	switch n.Kind {
	case protocol.NotificationChange:
		d.handleChange(n)
	case protocol.NotificationCancel:
		d.handleCancel(n)
	}
}

func (d *Dispatcher) replySuccess(id int64, result interface{}) {
	body, err := protocol.EncodeSuccess(id, result)
	if err != nil {
		d.log.Error("dispatcher: encoding success reply for {ID}: {Error}", id, err)
		return
	}
	if err := d.writer.Write(body); err != nil {
		d.log.Error("dispatcher: writing reply for {ID}: {Error}", id, err)
	}
}

func (d *Dispatcher) replyFailure(id int64, message string) {
	body, err := protocol.EncodeFailure(id, int64(protocol.MethodNotFoundCode), message)
	if err != nil {
		d.log.Error("dispatcher: encoding failure reply for {ID}: {Error}", id, err)
		return
	}
	if err := d.writer.Write(body); err != nil {
		d.log.Error("dispatcher: writing reply for {ID}: {Error}", id, err)
	}
}

// registerCancellation creates (or replaces) the advisory cancellation
// channel for a request id, returning it for a handler's worker to
// optionally select on.
func (d *Dispatcher) registerCancellation(id int64) chan struct{} {
	ch := make(chan struct{})
	d.cancelMu.Lock()
	d.cancellations[id] = ch
	d.cancelMu.Unlock()
	return ch
}

func (d *Dispatcher) clearCancellation(id int64) {
	d.cancelMu.Lock()
	delete(d.cancellations, id)
	d.cancelMu.Unlock()
}

// enqueueBuild runs a build for projectPath on its own goroutine so the
// dispatch loop never blocks on it (spec §4.4, §5), then reloads the
// analysis index once the build finishes — restoring the original
// source's "build, then reload" step that the distilled spec dropped
// (SPEC_FULL.md §12). A squashed or failed-to-start build skips reload.
func (d *Dispatcher) enqueueBuild(projectPath string, priority buildqueue.Priority) {
	go func() {
		result := d.queue.RequestBuild(projectPath, priority)
		switch result.Kind {
		case buildqueue.Success, buildqueue.Failure:
			if err := d.analysis.Reload(projectPath); err != nil {
				d.log.Warning("dispatcher: reload after build for {Project} failed: {Error}", projectPath, err)
			}
		case buildqueue.Squashed:
			d.log.Information("dispatcher: build for {Project} squashed, skipping reload", projectPath)
		default:
			d.log.Warning("dispatcher: build for {Project} did not start: {Error}", projectPath, result.Err)
		}
	}()
}
