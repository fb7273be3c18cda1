package domain

import (
	"errors"
	"fmt"
)

// Sentinel causes carried inside the typed error kinds below.
var (
	ErrNoToken                 = errors.New("no access token provided")
	ErrInvalidToken            = errors.New("invalid token")
	ErrTokenExpired            = errors.New("token expired")
	ErrInvalidTokenType        = errors.New("invalid token type")
	ErrTokenRevoked            = errors.New("token has been revoked")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// AuthenticationError means no identity could be established: the token
// is missing, malformed, expired, of the wrong kind, or revoked.
// Handlers map it to 401.
type AuthenticationError struct {
	Err error
}

func NewAuthenticationError(err error) *AuthenticationError {
	return &AuthenticationError{Err: err}
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// AuthorizationError means the identity is established but the role is
// not sufficient for the operation. Handlers map it to 403; it must
// never be collapsed with AuthenticationError.
type AuthorizationError struct {
	Err error
}

func NewAuthorizationError(err error) *AuthorizationError {
	return &AuthorizationError{Err: err}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("authorization failed: %v", e.Err)
}

func (e *AuthorizationError) Unwrap() error { return e.Err }

// ValidationError means the request was well-formed but semantically
// invalid, e.g. an expired reset token. Handlers map it to 422.
type ValidationError struct {
	Message string
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError means a referenced entity does not exist. Handlers map
// it to 404.
type NotFoundError struct {
	Resource string
}

func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func IsAuthenticationError(err error) bool {
	var target *AuthenticationError
	return errors.As(err, &target)
}

func IsAuthorizationError(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
