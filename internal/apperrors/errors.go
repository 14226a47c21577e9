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

// ErrUnauthorized indicates the caller is not authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is authenticated but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrLocked indicates the resource is locked against modification or deletion.
var ErrLocked = errors.New("resource is locked")

// ErrConflict indicates the request conflicts with the current state of the store.
var ErrConflict = errors.New("conflict with current state")

// Identity and session errors. Each maps to a stable response code.
var (
	ErrMissingAuthHeader     = errors.New("missing or invalid authorization header")
	ErrEmptyToken            = errors.New("id token is empty")
	ErrTokenExpired          = errors.New("id token has expired")
	ErrTokenRevoked          = errors.New("id token has been revoked")
	ErrInvalidToken          = errors.New("invalid id token")
	ErrUserDisabled          = errors.New("user account is disabled")
	ErrUserNotFound          = errors.New("user account not found")
	ErrProviderMisconfigured = errors.New("identity provider is not configured")
	ErrNoSession             = errors.New("no active session")
	ErrInvalidSession        = errors.New("invalid or expired session")
	ErrProviderUnavailable   = errors.New("identity provider unavailable")
)

// Stable machine-readable error codes returned to clients.
const (
	CodeMissingAuthHeader = "MISSING_AUTH_HEADER"
	CodeEmptyToken        = "EMPTY_TOKEN"
	CodeTokenExpired      = "TOKEN_EXPIRED"
	CodeTokenRevoked      = "TOKEN_REVOKED"
	CodeInvalidToken      = "INVALID_TOKEN"
	CodeUserDisabled      = "USER_DISABLED"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeServerConfig      = "SERVER_CONFIG_ERROR"
	CodeAuthFailed        = "AUTH_FAILED"
	CodeNoSession         = "NO_SESSION"
	CodeInvalidSession    = "INVALID_SESSION"
	CodeRefreshFailed     = "REFRESH_FAILED"
	CodeValidation        = "VALIDATION_FAILED"
	CodeNotFound          = "NOT_FOUND"
	CodeForbidden         = "FORBIDDEN"
	CodeEntryLocked       = "ENTRY_LOCKED"
	CodeAlreadySeeded     = "ALREADY_SEEDED"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternal          = "INTERNAL_ERROR"
	CodeGatewayTimeout    = "UPSTREAM_UNAVAILABLE"
	CodeDuplicate         = "DUPLICATE"
)

// AppError is an error carrying the HTTP status and stable code to report to the client.
type AppError struct {
	Code    int    `json:"-"`
	ErrCode string `json:"code,omitempty"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError with the given HTTP status, message and cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, ErrCode: CodeInternal, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, ErrCode: CodeValidation, Message: message, Err: ErrValidation}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, ErrCode: CodeAuthFailed, Message: message, Err: ErrUnauthorized}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{Code: http.StatusForbidden, ErrCode: CodeForbidden, Message: message, Err: ErrForbidden}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, ErrCode: CodeNotFound, Message: message, Err: ErrNotFound}
}

func NewConflictError(errCode, message string) *AppError {
	return &AppError{Code: http.StatusConflict, ErrCode: errCode, Message: message, Err: ErrConflict}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, ErrCode: CodeInternal, Message: message}
}

func NewGatewayTimeoutError(message string) *AppError {
	return &AppError{Code: http.StatusGatewayTimeout, ErrCode: CodeGatewayTimeout, Message: message}
}

// IdentityErrorCode classifies an identity/session error into the HTTP status and
// stable code reported by the session endpoint. Configuration problems are reported
// as 500 so they are never mistaken for a bad credential.
func IdentityErrorCode(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrMissingAuthHeader):
		return http.StatusUnauthorized, CodeMissingAuthHeader, "Missing or invalid Authorization header. Use format: Bearer <token>"
	case errors.Is(err, ErrEmptyToken):
		return http.StatusUnauthorized, CodeEmptyToken, "ID token is empty"
	case errors.Is(err, ErrTokenExpired):
		return http.StatusUnauthorized, CodeTokenExpired, "Your session has expired. Please sign in again."
	case errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized, CodeTokenRevoked, "Your session has been revoked."
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, CodeInvalidToken, "Invalid authentication token."
	case errors.Is(err, ErrUserDisabled):
		return http.StatusForbidden, CodeUserDisabled, "Your account has been disabled."
	case errors.Is(err, ErrUserNotFound):
		return http.StatusUnauthorized, CodeUserNotFound, "User account not found."
	case errors.Is(err, ErrProviderMisconfigured):
		return http.StatusInternalServerError, CodeServerConfig, "Server configuration error. Please contact support."
	case errors.Is(err, ErrNoSession):
		return http.StatusUnauthorized, CodeNoSession, "No active session found"
	case errors.Is(err, ErrInvalidSession):
		return http.StatusUnauthorized, CodeInvalidSession, "Invalid or expired session"
	case errors.Is(err, ErrProviderUnavailable):
		return http.StatusGatewayTimeout, CodeGatewayTimeout, "Identity provider is unavailable. Please try again."
	default:
		return http.StatusInternalServerError, CodeInternal, "Authentication service unavailable"
	}
}

// IsCredentialError reports whether err says the caller's credential is bad, as
// opposed to a store or upstream failure. Only credential errors end a session.
func IsCredentialError(err error) bool {
	for _, target := range []error{
		ErrNoSession, ErrInvalidSession, ErrTokenRevoked, ErrTokenExpired, ErrInvalidToken,
		ErrUserDisabled, ErrUserNotFound, ErrMissingAuthHeader, ErrEmptyToken, ErrUnauthorized,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
