package domain

import "errors"

// Error kinds. Match them with errors.Is; the HTTP layer maps each kind to a
// stable status code.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("access forbidden")
	ErrInvalidState     = errors.New("invalid state")
	ErrDeadlineExceeded = errors.New("cancellation deadline exceeded")
	ErrNoVehicle        = errors.New("driver has no active vehicle")
	ErrConflict         = errors.New("conflict")
)

var (
	ErrFreteNotFound = NewError(ErrNotFound, "frete não encontrado")
	ErrDuplicateCode = NewError(ErrConflict, "código de frete já existe")
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrVehicleExists      = errors.New("vehicle already registered")
)

// Error is a lifecycle failure with a user-facing message. Kind is one of the
// sentinel kinds above.
type Error struct {
	Kind    error
	Message string

	// DaysRemaining is set on ErrDeadlineExceeded: whole days until the pickup
	// deadline, zero or negative once it has passed.
	DaysRemaining *int
}

// NewError returns an *Error of the given kind.
func NewError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewDeadlineError returns an ErrDeadlineExceeded error carrying days.
func NewDeadlineError(message string, days int) *Error {
	return &Error{Kind: ErrDeadlineExceeded, Message: message, DaysRemaining: &days}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}
