package error

import "errors"

// Profile domain errors.
var (
	ErrChatIDRequired      = errors.New("telegram chat id is required")
	ErrChatIDAlreadyLinked = errors.New("telegram chat id already linked to another account")
	ErrInvalidUserType     = errors.New("invalid user type")
)

// ProfileErrorCode defines error codes for profile errors.
type ProfileErrorCode string

const (
	ErrCodeChatIDRequired         ProfileErrorCode = "PRF-010001"
	ErrCodeChatIDAlreadyLinked    ProfileErrorCode = "PRF-010002"
	ErrCodeInvalidProfileCurrency ProfileErrorCode = "PRF-010003"
	ErrCodeInvalidUserType        ProfileErrorCode = "PRF-010004"
	ErrCodeProfileNotFound        ProfileErrorCode = "PRF-020001"
)

// ProfileError represents a profile error with code and message.
type ProfileError struct {
	Code    ProfileErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ProfileError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ProfileError) Unwrap() error {
	return e.Err
}

// NewProfileError creates a new ProfileError with the given code and message.
func NewProfileError(code ProfileErrorCode, message string, err error) *ProfileError {
	return &ProfileError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
