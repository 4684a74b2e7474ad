// Package analysis defines the narrow surface the dispatch core consumes
// from the project's code-analysis store (spec §6), plus a minimal
// in-process implementation suitable for tests and for running this core
// standalone without a real compiler-backed index.
package analysis

import (
	"fmt"
	"sync"

	"rlscore/protocol"
)

// Host is the analysis backend surface the core calls against. The real
// analyzer is out of scope for this spec (§1); this interface is the only
// contract the core depends on.
type Host interface {
	// Reload invalidates and re-ingests analysis data after a build.
	Reload(projectPath string) error
	// FindAllRefs returns every reference span for the identifier at span.
	FindAllRefs(span protocol.Span) ([]protocol.Span, error)
	// GotoDef returns the defining span for the identifier at span.
	GotoDef(span protocol.Span) (protocol.Span, error)
	// ShowType, Docs, and DocURL each return a best-effort string for the
	// identifier at span; callers treat a non-nil error as "unknown".
	ShowType(span protocol.Span) (string, error)
	Docs(span protocol.Span) (string, error)
	DocURL(span protocol.Span) (string, error)
}

// Symbol is one entry of the in-process index.
type Symbol struct {
	Name       string
	Type       string
	Docs       string
	DocURL     string
	Definition protocol.Span
	References []protocol.Span
}

// InMemoryHost is a minimal, synchronized Host keyed by identifier name
// within a file. It is not a compiler: it is a stand-in that lets the rest
// of the core be built, wired, and tested against a real (if trivial)
// collaborator rather than a hand-wavy stub, matching spec §1's framing of
// the analyzer as an external collaborator "assumed to expose symbolic
// queries over spans."
type InMemoryHost struct {
	mu      sync.RWMutex
	symbols map[string]map[string]Symbol // file -> identifier name -> Symbol
}

// NewInMemoryHost returns an empty host.
func NewInMemoryHost() *InMemoryHost {
	return &InMemoryHost{symbols: make(map[string]map[string]Symbol)}
}

// Index registers or replaces a symbol's data for file.
func (h *InMemoryHost) Index(file string, sym Symbol) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.symbols[file] == nil {
		h.symbols[file] = make(map[string]Symbol)
	}
	h.symbols[file][sym.Name] = sym
}

func (h *InMemoryHost) lookup(span protocol.Span) (Symbol, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sym := range h.symbols[span.FileName] {
		for _, ref := range sym.References {
			if spanContains(ref, span) {
				return sym, true
			}
		}
		if spanContains(sym.Definition, span) {
			return sym, true
		}
	}
	return Symbol{}, false
}

func spanContains(s, point protocol.Span) bool {
	return s.FileName == point.FileName &&
		s.LineStart == point.LineStart &&
		point.ColumnStart >= s.ColumnStart && point.ColumnStart <= s.ColumnEnd
}

func (h *InMemoryHost) Reload(projectPath string) error {
	// Re-ingestion is a no-op for the in-memory host: its symbol table is
	// populated directly via Index, not derived from a build artifact.
	return nil
}

func (h *InMemoryHost) FindAllRefs(span protocol.Span) ([]protocol.Span, error) {
	sym, ok := h.lookup(span)
	if !ok {
		return nil, fmt.Errorf("analysis: no symbol at %s:%d:%d", span.FileName, span.LineStart, span.ColumnStart)
	}
	return sym.References, nil
}

func (h *InMemoryHost) GotoDef(span protocol.Span) (protocol.Span, error) {
	sym, ok := h.lookup(span)
	if !ok {
		return protocol.Span{}, fmt.Errorf("analysis: no symbol at %s:%d:%d", span.FileName, span.LineStart, span.ColumnStart)
	}
	return sym.Definition, nil
}

func (h *InMemoryHost) ShowType(span protocol.Span) (string, error) {
	sym, ok := h.lookup(span)
	if !ok || sym.Type == "" {
		return "", fmt.Errorf("analysis: no type at %s:%d:%d", span.FileName, span.LineStart, span.ColumnStart)
	}
	return sym.Type, nil
}

func (h *InMemoryHost) Docs(span protocol.Span) (string, error) {
	sym, ok := h.lookup(span)
	if !ok || sym.Docs == "" {
		return "", fmt.Errorf("analysis: no docs at %s:%d:%d", span.FileName, span.LineStart, span.ColumnStart)
	}
	return sym.Docs, nil
}

func (h *InMemoryHost) DocURL(span protocol.Span) (string, error) {
	sym, ok := h.lookup(span)
	if !ok || sym.DocURL == "" {
		return "", fmt.Errorf("analysis: no doc url at %s:%d:%d", span.FileName, span.LineStart, span.ColumnStart)
	}
	return sym.DocURL, nil
}
