package ports

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks a missing or malformed field or a dangling reference.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidArgument marks an unrecognized request parameter value.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict is returned when a delete would leave referencing rows dangling.
	ErrConflict = errors.New("conflict")
	// ErrStore marks a failure of the underlying store.
	ErrStore = errors.New("store failure")
)

// Error carries a client-facing message alongside its kind and cause.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func InvalidArgument(message string) error {
	return &Error{Kind: ErrInvalidArgument, Message: message}
}

func Conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// StoreFailure wraps err unless it already belongs to the taxonomy.
func StoreFailure(operation string, err error) error {
	if err == nil || IsClientError(err) || errors.Is(err, ErrStore) {
		return err
	}
	return &Error{Kind: ErrStore, Message: operation, Err: err}
}

// MissingReference reports a foreign key that points at no row.
func MissingReference(column string, id any) error {
	return Validation(fmt.Sprintf("o campo %s referencia um registro inexistente (%v)", column, id))
}

// StillReferenced reports a delete blocked by rows in table.
func StillReferenced(table string) error {
	return Conflict(fmt.Sprintf("Registro possui vínculos em %s e não pode ser excluído.", table))
}

// IsClientError reports whether err should be answered with a 4xx.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrConflict)
}

// ClientMessage extracts the message meant for API clients.
func ClientMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
