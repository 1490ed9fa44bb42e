package app

import "errors"

var (
	// ErrInvalidCredentials is returned when the supplied credentials do not
	// match. The message is shown to end users and deliberately does not
	// reveal whether the username exists.
	ErrInvalidCredentials = errors.New("Invalid Credentials")

	// ErrUnauthenticated is returned when a protected operation is attempted
	// without a valid session.
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError describes a rejected form submission. Handlers surface
// the reason as a flash notice instead of failing the request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
