// Package vfs implements the in-memory overlay of edited source files the
// dispatch core reads positions against (spec §6: "authoritative for
// anything edited since last save").
package vfs

import (
	"fmt"
	"strings"
	"sync"

	"rlscore/protocol"
)

// Change is one VFS-level edit: the text covered by Span is replaced
// verbatim by Text, mirroring the original Change model the core builds
// from ChangeEvent + the document's file path (spec §4.4).
type Change struct {
	Span protocol.Span
	Text string
}

// VFS is the narrow surface the dispatch core consumes.
type VFS interface {
	// OnChange applies a batch of edits atomically.
	OnChange(batch []Change) error
	// GetLine returns the text of a zero-based line, or ok=false if the
	// file or line is not present in the overlay.
	GetLine(path string, line int) (text string, ok bool)
}

// Overlay is an in-memory VFS keyed by file path, storing each file as a
// slice of lines. It applies edits by operating directly on whole lines:
// a Change whose span covers line L replaces the substring between its
// start and end columns on that line (single-line edits, which is all
// spec §3's ChangeEvent needs for identifier-level editing scenarios; a
// multi-line replacement deletes the spanned lines and splices Text in as
// the replacement lines).
type Overlay struct {
	mu    sync.RWMutex
	files map[string][]string
}

// NewOverlay returns an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{files: make(map[string][]string)}
}

// Seed sets the initial full text of a file, splitting on "\n". Intended
// for tests and for priming a file the first time it's opened.
func (o *Overlay) Seed(path, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files[path] = strings.Split(text, "\n")
}

func (o *Overlay) GetLine(path string, line int) (string, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	lines, ok := o.files[path]
	if !ok || line < 0 || line >= len(lines) {
		return "", false
	}
	return lines[line], true
}

func (o *Overlay) OnChange(batch []Change) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	// applyLocked always installs a fresh slice, so the saved slices stay
	// intact and can be put back if a later edit in the batch fails.
	type saved struct {
		lines   []string
		present bool
	}
	backup := make(map[string]saved)
	for _, c := range batch {
		if _, done := backup[c.Span.FileName]; !done {
			lines, present := o.files[c.Span.FileName]
			backup[c.Span.FileName] = saved{lines: lines, present: present}
		}
		if err := o.applyLocked(c); err != nil {
			for name, s := range backup {
				if s.present {
					o.files[name] = s.lines
				} else {
					delete(o.files, name)
				}
			}
			return err
		}
	}
	return nil
}

func (o *Overlay) applyLocked(c Change) error {
	lines, ok := o.files[c.Span.FileName]
	if !ok {
		// A didChange notification for a file this overlay has never
		// seen opens it lazily, starting from the replacement text.
		o.files[c.Span.FileName] = []string{c.Text}
		return nil
	}

	startLine, endLine := c.Span.LineStart, c.Span.LineEnd
	if startLine < 0 || endLine >= len(lines) || startLine > endLine {
		return fmt.Errorf("vfs: change span out of range for %s", c.Span.FileName)
	}

	prefix := safeSlice(lines[startLine], 0, c.Span.ColumnStart-1)
	suffix := safeSlice(lines[endLine], c.Span.ColumnEnd-1, -1)

	replacement := strings.Split(prefix+c.Text+suffix, "\n")

	newLines := make([]string, 0, len(lines)-(endLine-startLine+1)+len(replacement))
	newLines = append(newLines, lines[:startLine]...)
	newLines = append(newLines, replacement...)
	newLines = append(newLines, lines[endLine+1:]...)

	o.files[c.Span.FileName] = newLines
	return nil
}

// safeSlice returns line[start:end] clamped to valid bounds; end == -1
// means "to the end of the string".
func safeSlice(line string, start, end int) string {
	runes := []rune(line)
	if start < 0 {
		start = 0
	}
	if start > len(runes) {
		start = len(runes)
	}
	if end < 0 || end > len(runes) {
		end = len(runes)
	}
	if end < start {
		end = start
	}
	return string(runes[start:end])
}
