package tool

import (
	"bytes"
	"encoding/json"

	// Packages
	schema "github.com/mutablelogic/go-scopey/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Result is the outcome of invoking a tool: either a value which completed,
// or a failure. The zero value is a completed result with a nil value.
type Result struct {
	value  any
	err    error
	failed bool
}

type errorPayload struct {
	Error string `json:"error"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// UnknownErrorMessage is used when a failure carries no message
const UnknownErrorMessage = "Unknown error occurred"

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Completed returns a result for a handler which returned a value
func Completed(value any) Result {
	return Result{value: value}
}

// Failed returns a result for a handler which failed. The error may be nil,
// in which case the failure has no message.
func Failed(err error) Result {
	return Result{err: err, failed: true}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsFailed returns true if the result is a failure
func (r Result) IsFailed() bool {
	return r.failed
}

// Value returns the completed value, or nil on failure
func (r Result) Value() any {
	if r.failed {
		return nil
	}
	return r.value
}

// Err returns the failure, or nil if the result completed
func (r Result) Err() error {
	return r.err
}

// Message returns the failure message, or UnknownErrorMessage when the
// failure has none. Returns an empty string for completed results.
func (r Result) Message() string {
	switch {
	case !r.failed:
		return ""
	case r.err == nil || r.err.Error() == "":
		return UnknownErrorMessage
	default:
		return r.err.Error()
	}
}

// Envelope converts the result into a response. A completed value is
// serialized as indented JSON; a failure, or a value which cannot be
// serialized, becomes an error payload with isError set.
func (r Result) Envelope() *schema.CallToolResponse {
	if r.failed {
		return errorEnvelope(r.Message())
	}
	text, err := marshalIndent(r.value)
	if err != nil {
		return errorEnvelope(err.Error())
	}
	return schema.NewTextResponse(text, false)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func errorEnvelope(message string) *schema.CallToolResponse {
	text, _ := marshal(errorPayload{Error: message}, "")
	return schema.NewTextResponse(text, true)
}

func marshalIndent(v any) (string, error) {
	return marshal(v, "  ")
}

// marshal encodes a value without escaping HTML characters
func marshal(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
