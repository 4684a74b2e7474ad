package protocol

import (
	"encoding/json"
	"fmt"
)

// MethodKind tags the closed set of request variants the dispatcher knows
// how to route. Represented as a sum type (a kind tag plus per-kind typed
// params), not open polymorphism, per the design note in spec §9.
type MethodKind int

const (
	MethodInitialize MethodKind = iota
	MethodShutdown
	MethodHover
	MethodGotoDef
	MethodFindAllRef
)

func (k MethodKind) String() string {
	switch k {
	case MethodInitialize:
		return "initialize"
	case MethodShutdown:
		return "shutdown"
	case MethodHover:
		return "textDocument/hover"
	case MethodGotoDef:
		return "textDocument/definition"
	case MethodFindAllRef:
		return "textDocument/references"
	default:
		return "unknown"
	}
}

// InitializeParams is the payload of an `initialize` request.
type InitializeParams struct {
	ProcessID int    `json:"processId"`
	RootPath  string `json:"rootPath"`
}

// TextDocumentPositionParams is shared by hover and goto-definition.
type TextDocumentPositionParams struct {
	TextDocument DocumentIdentifier `json:"textDocument"`
	Position     Position           `json:"position"`
}

// ReferenceContext carries the includeDeclaration flag; its enforcement
// policy is delegated entirely to the Analysis backend (spec §4.6).
type ReferenceContext struct {
	IncludeDeclaration bool `json:"includeDeclaration"`
}

// ReferenceParams is the payload of a textDocument/references request.
type ReferenceParams struct {
	TextDocument DocumentIdentifier `json:"textDocument"`
	Position     Position           `json:"position"`
	Context      ReferenceContext   `json:"context"`
}

// ChangeParams is the payload of a textDocument/didChange notification.
type ChangeParams struct {
	TextDocument    VersionedDocumentIdentifier `json:"textDocument"`
	ContentChanges  []ChangeEvent               `json:"contentChanges"`
}

// Request is one inbound message expecting exactly one reply.
type Request struct {
	ID     int64
	Method MethodKind

	Initialize *InitializeParams
	Position   *TextDocumentPositionParams
	Reference  *ReferenceParams
}

// NotificationKind tags the closed set of notification variants.
type NotificationKind int

const (
	NotificationChange NotificationKind = iota
	NotificationCancel
)

// Notification is one inbound message that never produces a reply.
type Notification struct {
	Kind NotificationKind

	Change   *ChangeParams
	CancelID int64
}

// Message is the parser's output: exactly one of Request or Notification
// is non-nil.
type Message struct {
	Request      *Request
	Notification *Notification
}

// envelope is the raw shape every inbound JSON body is decoded into before
// per-method dispatch.
type envelope struct {
	ID     *int64          `json:"id"`
	Method *string         `json:"method"`
	Params json.RawMessage `json:"params"`
}

// cancelParams is the payload of a $/cancelRequest notification.
type cancelParams struct {
	ID int64 `json:"id"`
}

// ParseError is returned for any malformed envelope: bad JSON, a missing or
// non-string method, an unknown method, or params that don't decode into
// the method's expected shape. Parse errors are recoverable (spec §7 tier
// 2): callers log and continue, they never stop the dispatch loop.
type ParseError struct {
	// ID is the request id recovered from the envelope, if any. When
	// non-nil, a conformant caller may still emit a JSON-RPC failure
	// reply for it (spec §13 open-question resolution #2) instead of
	// silently dropping the message.
	ID  *int64
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("protocol: parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes one JSON message body into a typed Request or Notification
// by inspecting its "method" field against the fixed table in spec §4.2.
func Parse(body []byte) (*Message, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ParseError{Err: fmt.Errorf("invalid JSON envelope: %w", err)}
	}

	if env.Method == nil {
		return nil, &ParseError{Err: fmt.Errorf("method not found")}
	}
	method := *env.Method

	switch method {
	case "initialize":
		if env.ID == nil {
			return nil, &ParseError{Err: fmt.Errorf("initialize: missing id")}
		}
		var p InitializeParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return nil, &ParseError{ID: env.ID, Err: fmt.Errorf("initialize: %w", err)}
		}
		return &Message{Request: &Request{ID: *env.ID, Method: MethodInitialize, Initialize: &p}}, nil

	case "shutdown":
		if env.ID == nil {
			return nil, &ParseError{Err: fmt.Errorf("shutdown: missing id")}
		}
		return &Message{Request: &Request{ID: *env.ID, Method: MethodShutdown}}, nil

	case "textDocument/hover":
		if env.ID == nil {
			return nil, &ParseError{Err: fmt.Errorf("hover: missing id")}
		}
		var p TextDocumentPositionParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return nil, &ParseError{ID: env.ID, Err: fmt.Errorf("hover: %w", err)}
		}
		return &Message{Request: &Request{ID: *env.ID, Method: MethodHover, Position: &p}}, nil

	case "textDocument/definition":
		if env.ID == nil {
			return nil, &ParseError{Err: fmt.Errorf("definition: missing id")}
		}
		var p TextDocumentPositionParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return nil, &ParseError{ID: env.ID, Err: fmt.Errorf("definition: %w", err)}
		}
		return &Message{Request: &Request{ID: *env.ID, Method: MethodGotoDef, Position: &p}}, nil

	case "textDocument/references":
		if env.ID == nil {
			return nil, &ParseError{Err: fmt.Errorf("references: missing id")}
		}
		var p ReferenceParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return nil, &ParseError{ID: env.ID, Err: fmt.Errorf("references: %w", err)}
		}
		return &Message{Request: &Request{ID: *env.ID, Method: MethodFindAllRef, Reference: &p}}, nil

	case "textDocument/didChange":
		var p ChangeParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("didChange: %w", err)}
		}
		return &Message{Notification: &Notification{Kind: NotificationChange, Change: &p}}, nil

	case "$/cancelRequest":
		var p cancelParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return nil, &ParseError{Err: fmt.Errorf("cancelRequest: %w", err)}
		}
		return &Message{Notification: &Notification{Kind: NotificationCancel, CancelID: p.ID}}, nil

	default:
		return nil, &ParseError{ID: env.ID, Err: fmt.Errorf("unknown method %q", method)}
	}
}
