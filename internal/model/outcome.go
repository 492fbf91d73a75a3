package model

import (
	"encoding/json"
	"time"
)

// OutcomeKind tells which branch of the outcome sum type is populated.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeTransportError OutcomeKind = "transport_error"
	OutcomeDecodeError    OutcomeKind = "decode_error"
	OutcomeStatusError    OutcomeKind = "status_error"
)

// Outcome is the terminal result of one request. Exactly one is produced per URL.
//
// On success Body holds the response JSON and Err is nil. On failure Err is set
// and Body is only populated for status errors whose body was valid JSON.
type Outcome struct {
	// ID identifies this attempt in logs and history rows.
	ID string `json:"id"`

	URL    string      `json:"url"`
	Method Method      `json:"method"`
	Kind   OutcomeKind `json:"kind"`

	// StatusCode is 0 when the transport failed.
	StatusCode int           `json:"status,omitempty"`
	Duration   time.Duration `json:"duration"`

	Body json.RawMessage `json:"body,omitempty"`
	Err  error           `json:"-"`
}

// Success reports whether the request produced a 2xx JSON body.
func (o Outcome) Success() bool {
	return o.Err == nil
}

// ErrorString returns Err's message, or "" on success.
func (o Outcome) ErrorString() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}
