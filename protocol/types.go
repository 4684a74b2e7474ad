package protocol

// Position is a zero-based line/character coordinate within a document.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is the half-open span [Start, End) between two Positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location pairs a file-scheme document URI with a Range inside it.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// Span is the backend-facing coordinate the resolver produces: one-based
// columns, and lines carrying the same (zero-based) base as Position.Line.
// It is the only currency the Analysis and VFS collaborators understand.
type Span struct {
	FileName     string `json:"file_name"`
	LineStart    int    `json:"line_start"`
	ColumnStart  int    `json:"column_start"`
	LineEnd      int    `json:"line_end"`
	ColumnEnd    int    `json:"column_end"`
}

// DocumentIdentifier bears a document URI.
type DocumentIdentifier struct {
	URI string `json:"uri"`
}

// VersionedDocumentIdentifier additionally carries a monotonic version used
// by the VFS to reject stale edits. The core passes Version through without
// interpreting it.
type VersionedDocumentIdentifier struct {
	URI     string `json:"uri"`
	Version int64  `json:"version"`
}

// ChangeEvent describes one incremental edit: the substring of the document
// covered by Range is replaced verbatim by Text. RangeLength is advisory
// and unused by this core.
type ChangeEvent struct {
	Range       Range  `json:"range"`
	RangeLength *int   `json:"rangeLength,omitempty"`
	Text        string `json:"text"`
}

// MarkedString is one entry of a hover response's contents.
type MarkedString struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// HoverResult is the successful result of a textDocument/hover request.
type HoverResult struct {
	Contents []MarkedString `json:"contents"`
}

// CompletionOptions advertises (but this core never implements) completion.
type CompletionOptions struct {
	ResolveProvider   bool     `json:"resolveProvider"`
	TriggerCharacters []string `json:"triggerCharacters"`
}

// SignatureHelpOptions advertises (but this core never implements) signature help.
type SignatureHelpOptions struct {
	TriggerCharacters []string `json:"triggerCharacters"`
}

// ServerCapabilities is the fixed record returned on initialize. Advertising
// a field here does not obligate the core to implement it — see spec §6.
type ServerCapabilities struct {
	TextDocumentSync               int                  `json:"textDocumentSync"`
	HoverProvider                  bool                 `json:"hoverProvider"`
	CompletionProvider              CompletionOptions    `json:"completionProvider"`
	SignatureHelpProvider           SignatureHelpOptions `json:"signatureHelpProvider"`
	DefinitionProvider              bool                 `json:"definitionProvider"`
	ReferencesProvider              bool                 `json:"referencesProvider"`
	DocumentHighlightProvider       bool                 `json:"documentHighlightProvider"`
	DocumentSymbolProvider          bool                 `json:"documentSymbolProvider"`
	// WorkshopSymbolProvider preserves a misspelling of
	// "workspaceSymbolProvider" inherited verbatim from the original
	// implementation; flagged here for upstream review, not corrected,
	// per the design note that calls for preserving observed behavior.
	WorkshopSymbolProvider          bool `json:"workshopSymbolProvider"`
	CodeActionProvider              bool `json:"codeActionProvider"`
	CodeLensProvider                bool `json:"codeLensProvider"`
	DocumentFormattingProvider      bool `json:"documentFormattingProvider"`
	DocumentRangeFormattingProvider bool `json:"documentRangeFormattingProvider"`
	RenameProvider                  bool `json:"renameProvider"`
}

// FixedCapabilities is the single instance returned for every initialize
// request, per spec §6.
func FixedCapabilities() ServerCapabilities {
	return ServerCapabilities{
		TextDocumentSync: 2, // incremental
		HoverProvider:    true,
		CompletionProvider: CompletionOptions{
			ResolveProvider:   true,
			TriggerCharacters: []string{"."},
		},
		SignatureHelpProvider: SignatureHelpOptions{
			TriggerCharacters: []string{"."},
		},
		DefinitionProvider:              true,
		ReferencesProvider:              true,
		DocumentHighlightProvider:       true,
		DocumentSymbolProvider:          true,
		WorkshopSymbolProvider:          true,
		CodeActionProvider:              false,
		CodeLensProvider:                false,
		DocumentFormattingProvider:      true,
		DocumentRangeFormattingProvider: true,
		RenameProvider:                  true,
	}
}
