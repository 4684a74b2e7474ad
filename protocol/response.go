package protocol

import (
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"
)

// MethodNotFoundCode is the single error code this core ever emits for a
// handler-side failure — a deliberate simplification inherited from the
// source (spec §4.7, §7).
const MethodNotFoundCode = jsonrpc2.CodeMethodNotFound

type successEnvelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int64           `json:"id"`
	Result  json.RawMessage `json:"result"`
}

type failureEnvelope struct {
	JSONRPC string         `json:"jsonrpc"`
	ID      int64          `json:"id"`
	Error   *jsonrpc2.Error `json:"error"`
}

// EncodeSuccess builds the `{jsonrpc, id, result}` envelope for id,
// marshaling result as its "result" field.
func EncodeSuccess(id int64, result interface{}) ([]byte, error) {
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return json.Marshal(successEnvelope{JSONRPC: "2.0", ID: id, Result: raw})
}

// EncodeFailure builds the `{jsonrpc, id, error: {code, message}}` envelope
// for id. Every handler-side failure in this core uses MethodNotFoundCode.
func EncodeFailure(id int64, code int64, message string) ([]byte, error) {
	return json.Marshal(failureEnvelope{
		JSONRPC: "2.0",
		ID:      id,
		Error: &jsonrpc2.Error{
			Code:    code,
			Message: message,
		},
	})
}
