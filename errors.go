package monetdbd

import (
	"errors"
	"fmt"
)

// Common errors returned by control operations
var (
	// ErrProtocol indicates a reply did not have the expected status line shape
	ErrProtocol = errors.New("monetdbd: unexpected reply shape")

	// ErrUnsupportedVersion indicates a status line declared a sabdb protocol
	// version this client cannot decode
	ErrUnsupportedVersion = errors.New("monetdbd: unsupported sabdb protocol version")

	// ErrMalformed indicates a status line ran out of fields mid-decode
	ErrMalformed = errors.New("monetdbd: malformed status line")

	// ErrConnect indicates the transport failed to connect or authenticate
	ErrConnect = errors.New("monetdbd: connect")

	// ErrNoSocket indicates an operation required a local control socket
	// but the client has no socket path configured
	ErrNoSocket = errors.New("monetdbd: no control socket path")
)

// ServerError is an application-level failure reported by monetdbd in
// response to a mutating command. Message carries the daemon's wording
// verbatim, e.g. "no such database: mydb".
type ServerError struct {
	// Message is the daemon's reply text, unmodified
	Message string
}

// Error returns the daemon's message
func (e *ServerError) Error() string {
	return e.Message
}

// OpError represents an error from a control operation
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Database is the database name the operation targeted
	Database string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	return fmt.Sprintf("monetdbd %s %q: %v", e.Op.String(), e.Database, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from bulk operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}
