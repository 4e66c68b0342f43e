package store

import "fmt"

// ValidationError indicates malformed input, such as a permission name
// that does not match the RESOURCE:ACTION format.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError indicates a uniqueness violation (duplicate permission
// or role name, username or email).
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError indicates a reference to a missing id or name.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFoundError builds a NotFoundError naming the entity kind and id,
// e.g. "Role not found with id: 7".
func NewNotFoundError(kind string, id uint) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf("%s not found with id: %d", kind, id)}
}

// AuthenticationError indicates bad credentials or a disabled account.
// The message is always generic to prevent username enumeration.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// ErrInvalidCredentials is the single authentication failure returned
// for every login failure path (unknown user, wrong password, disabled
// account).
func ErrInvalidCredentials() *AuthenticationError {
	return &AuthenticationError{Message: "Invalid username or password"}
}

// AuthorizationError indicates a valid token with insufficient
// role or permission.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }
