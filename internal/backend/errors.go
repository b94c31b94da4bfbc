package backend

import "fmt"

// ErrUnavailable indicates the backend could not be reached or the request
// timed out.
type ErrUnavailable struct {
	Op  string
	Err error
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("backend %s unavailable: %v", e.Op, e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrStatus indicates the backend answered with a non-2xx status, or with
// an error body.
type ErrStatus struct {
	Op      string
	Code    int
	Message string
}

func (e *ErrStatus) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %s: status %d: %s", e.Op, e.Code, e.Message)
	}
	return fmt.Sprintf("backend %s: status %d", e.Op, e.Code)
}

// ErrMalformed indicates the backend returned a payload that could not be
// decoded or failed validation.
type ErrMalformed struct {
	Op  string
	Err error
}

func (e *ErrMalformed) Error() string {
	return fmt.Sprintf("backend %s: malformed response: %v", e.Op, e.Err)
}

func (e *ErrMalformed) Unwrap() error { return e.Err }
