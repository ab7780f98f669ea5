package workflow

import "errors"

// Error taxonomy returned by the engine. Handlers translate these with
// errors.Is / errors.As into HTTP statuses; anything else is a 500.
var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the operation collides with existing state
	// (duplicate email, disallowed status transition).
	ErrConflict = errors.New("conflict")
	// ErrForbidden means the caller is known but not allowed
	// (unapproved pharmacy).
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials covers unknown email and wrong password
	// uniformly, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports missing or malformed user input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
