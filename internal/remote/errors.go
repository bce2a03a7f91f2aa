package remote

import "fmt"

// Verbs name the operation in error messages.
const (
	VerbFetch  = "fetch"
	VerbSearch = "search"
	VerbCreate = "create"
	VerbUpdate = "update"
	VerbDelete = "delete"
)

// StatusError is returned when the store answers with an unexpected HTTP
// status.
type StatusError struct {
	Verb   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Failed to %s: %d", e.Verb, e.Status)
}

// RequestError is returned when no usable answer came back: the request could
// not be sent, or the body could not be decoded.
type RequestError struct {
	Verb string
	Err  error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("Failed to %s: %v", e.Verb, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }
