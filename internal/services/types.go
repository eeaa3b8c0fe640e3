package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid      ErrorCode = "invalid"
	ErrorNotFound     ErrorCode = "not_found"
	ErrorConflict     ErrorCode = "conflict"
	ErrorUnauthorized ErrorCode = "unauthorized"
	ErrorBadGateway   ErrorCode = "bad_gateway"
	ErrorBusy         ErrorCode = "busy"
	ErrorAuthRequired ErrorCode = "auth_required"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	// Field carries the logical field name for validation errors so the UI
	// can annotate the right input inline.
	Field string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error  { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewNotFoundError(msg string) error { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func NewBadGatewayError(msg string) error { return &ServiceError{Code: ErrorBadGateway, Message: msg} }

// NewBusyError marks a rejected reentrant action: at most one in-flight
// mutating request per logical action.
func NewBusyError(msg string) error { return &ServiceError{Code: ErrorBusy, Message: msg} }

// NewFieldError is a validation error pinned to a single form field.
func NewFieldError(field, msg string) error {
	return &ServiceError{Code: ErrorInvalid, Message: msg, Field: field}
}

// NewAuthRequiredError is not a failure but a control-flow branch: the caller
// must interrupt the current action and raise the auth wall.
func NewAuthRequiredError() error {
	return &ServiceError{Code: ErrorAuthRequired, Message: "authentication required"}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsAuthRequired reports whether err is the auth-wall control-flow signal.
func IsAuthRequired(err error) bool {
	se, ok := AsServiceError(err)
	return ok && se.Code == ErrorAuthRequired
}
