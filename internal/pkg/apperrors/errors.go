package apperrors

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by a service wraps exactly one of these.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Authentication errors
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrInvalidFormat      = errors.New("invalid token format")
)

// Not found errors
var (
	ErrUserNotFound         = fmt.Errorf("%w: user", ErrResourceNotFound)
	ErrClubNotFound         = fmt.Errorf("%w: club", ErrResourceNotFound)
	ErrMembershipNotFound   = fmt.Errorf("%w: membership", ErrResourceNotFound)
	ErrJoinRequestNotFound  = fmt.Errorf("%w: join request", ErrResourceNotFound)
	ErrEventNotFound        = fmt.Errorf("%w: event", ErrResourceNotFound)
	ErrTeamNotFound         = fmt.Errorf("%w: team", ErrResourceNotFound)
	ErrRegistrationNotFound = fmt.Errorf("%w: registration", ErrResourceNotFound)
	ErrMessageNotFound      = fmt.Errorf("%w: message", ErrResourceNotFound)
)

// Workflow conflicts. Some are informational outcomes rather than failures,
// the caller decides how to present them.
var (
	ErrAlreadyMember      = fmt.Errorf("%w: you are already a member of this club", ErrConflict)
	ErrJoinRequestPending = fmt.Errorf("%w: you already have a pending request for this club", ErrConflict)
	ErrJoinRequestExists  = fmt.Errorf("%w: a join request for this club already exists", ErrConflict)
	ErrJoinRequestHandled = fmt.Errorf("%w: join request has already been handled", ErrConflict)
	ErrAlreadyRegistered  = fmt.Errorf("%w: you are already registered for this event", ErrConflict)
	ErrSoleLeader         = fmt.Errorf("%w: you are the only leader of this club, promote another member first", ErrConflict)
	ErrNotLeader          = fmt.Errorf("%w: only leaders can be promoted to admin", ErrConflict)
	ErrClubNotApproved    = fmt.Errorf("%w: club is waiting for approval", ErrConflict)
)

// Validation errors
var (
	ErrUsernameTaken    = fmt.Errorf("%w: username is already taken", ErrValidationFailed)
	ErrPasswordMismatch = fmt.Errorf("%w: passwords do not match", ErrValidationFailed)
	ErrInvalidRole      = fmt.Errorf("%w: role must be leader or member", ErrValidationFailed)
	ErrInvalidDateRange = fmt.Errorf("%w: end date must not be before start date", ErrValidationFailed)
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// Message returns the CustomError message in err's chain, or err.Error().
func Message(err error) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return err.Error()
}
