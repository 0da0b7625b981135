// Package types holds the wire envelopes shared by every marketloop
// endpoint. Successful responses wrap their payload in `data`; failures
// carry a machine-readable code plus an operator-safe message.
package types

// SuccessEnvelope wraps any successful response body.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error shape. Details is populated only
// for codes whose policy allows exposing them.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under the `error` key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
