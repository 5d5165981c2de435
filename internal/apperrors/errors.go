package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrUnavailable indicates an external collaborator is disabled or failed.
var ErrUnavailable = errors.New("service unavailable")

// AppError is an error carrying an HTTP status code and a user-facing message.
// Handlers write it directly: c.JSON(appErr.Code, appErr).
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil && e.Err.Error() != e.Message {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: message, Err: ErrForbidden}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}

func NewServiceUnavailableError(message string) *AppError {
	return &AppError{Code: http.StatusServiceUnavailable, Message: message, Err: ErrUnavailable}
}

func NewBadGatewayError(message string) *AppError {
	return &AppError{Code: http.StatusBadGateway, Message: message, Err: ErrUnavailable}
}

// As extracts an *AppError from err. Unknown errors become a generic 500.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource not found")
	case errors.Is(err, ErrDuplicate):
		return NewConflictError("Resource already exists")
	case errors.Is(err, ErrForbidden):
		return NewForbiddenError("Forbidden")
	case errors.Is(err, ErrUnauthorized):
		return NewUnauthorizedError("Unauthorized")
	case errors.Is(err, ErrValidation):
		return NewValidationFailedError(err.Error())
	}
	return NewInternalServerError("Internal server error")
}
