package error

import "errors"

// Advice domain errors.
var (
	// ErrAdviceNotFound is returned when an advice is not found.
	ErrAdviceNotFound = errors.New("advice not found")

	// ErrNotAuthorizedToModifyAdvice is returned when the advice belongs to another user.
	ErrNotAuthorizedToModifyAdvice = errors.New("not authorized to modify advice")

	// ErrInvalidAdvicePriority is returned when a manual advice has an unknown priority.
	ErrInvalidAdvicePriority = errors.New("invalid advice priority")

	// ErrEmptyAdviceMessage is returned when an advice has no message.
	ErrEmptyAdviceMessage = errors.New("advice message is required")

	// ErrAdviceServiceUnavailable is returned when the text generation service cannot be reached.
	ErrAdviceServiceUnavailable = errors.New("advice service unavailable")
)

// AdviceErrorCode defines error codes for advice errors.
// Format: ADV-XXYYYY where XX is category and YYYY is specific error.
type AdviceErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeEmptyAdviceMessage    AdviceErrorCode = "ADV-010001"
	ErrCodeInvalidAdvicePriority AdviceErrorCode = "ADV-010002"

	// Lookup errors (02XXXX)
	ErrCodeAdviceNotFound      AdviceErrorCode = "ADV-020001"
	ErrCodeNotAuthorizedAdvice AdviceErrorCode = "ADV-020002"

	// Upstream errors (03XXXX)
	ErrCodeAdviceServiceUnavailable AdviceErrorCode = "ADV-030001"
)

// AdviceError represents an advice error with code and message.
type AdviceError struct {
	Code    AdviceErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AdviceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AdviceError) Unwrap() error {
	return e.Err
}

// NewAdviceError creates a new AdviceError with the given code and message.
func NewAdviceError(code AdviceErrorCode, message string, err error) *AdviceError {
	return &AdviceError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
