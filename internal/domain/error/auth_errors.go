// Package error defines domain-specific errors for the Asistente Contable backend.
//
// Each area pairs plain sentinels, matched with errors.Is inside the
// application, with a typed error carrying a stable code and the Spanish
// message returned to API callers.
package error

import "errors"

// Account and session errors.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.New("password shorter than the minimum length")
	ErrInvalidEmail       = errors.New("invalid email format")

	// ErrInvalidToken covers bad signatures, wrong token kinds and revoked refresh tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is a well-formed token past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)

// AuthErrorCode identifies an account or session failure.
// Format: AUTH-XXYYYY, XX the category and YYYY the error.
type AuthErrorCode string

const (
	// Registration (01XXXX)
	ErrCodeEmailExists   AuthErrorCode = "AUTH-010001"
	ErrCodeWeakPassword  AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail  AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields AuthErrorCode = "AUTH-010005"

	// Login (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"

	// Session tokens (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"
)

// AuthError is returned by the auth use cases.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// TokenErrorCode picks the session code for a token validation failure.
func TokenErrorCode(err error) AuthErrorCode {
	if errors.Is(err, ErrExpiredToken) {
		return ErrCodeExpiredToken
	}
	return ErrCodeInvalidToken
}
