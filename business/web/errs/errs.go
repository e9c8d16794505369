// Package errs provides the error types the web api uses to report expected
// failures back to the client.
package errs

import "errors"

// Response is the body sent to the client when a request fails.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted is an expected failure whose message is safe to show the client.
// Status is the HTTP status code to respond with.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted wraps the error with the HTTP status code to respond with.
func NewTrusted(err error, status int) error {
	return &Trusted{err, status}
}

// Error implements the error interface. The message is the wrapped error's
// message, which is both logged and sent to the client.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap returns the wrapped error so errors.Is and errors.As see through
// a Trusted error.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted reports whether a Trusted error is in the error's chain.
func IsTrusted(err error) bool {
	var te *Trusted
	return errors.As(err, &te)
}

// GetTrusted returns the Trusted error from the error's chain, or nil.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}
