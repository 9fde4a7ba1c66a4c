package error

import "errors"

// Accounting entry domain errors.
var (
	ErrAsientoNotFound              = errors.New("asiento not found")
	ErrNotAuthorizedToModifyAsiento = errors.New("not authorized to modify asiento")
	ErrInvalidMovementType          = errors.New("invalid movement type")
	ErrInvalidAsientoDate           = errors.New("invalid asiento date")
	ErrInvalidAsientoAmount         = errors.New("invalid asiento amount")
	ErrInvalidCurrency              = errors.New("invalid currency code")
	ErrAccountingCategoryNotFound   = errors.New("accounting category not found or inactive")
	ErrMovementTypeMismatch         = errors.New("movement type does not match category")
	ErrDuplicateAsientoID           = errors.New("asiento id already exists")
	ErrAsientoFieldTooLong          = errors.New("asiento field too long")
)

// AsientoErrorCode defines error codes for accounting entry errors.
// Format: ASI-XXYYYY where XX is category and YYYY is specific error.
type AsientoErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidMovementType        AsientoErrorCode = "ASI-010001"
	ErrCodeInvalidAsientoDate         AsientoErrorCode = "ASI-010002"
	ErrCodeInvalidAsientoAmount       AsientoErrorCode = "ASI-010003"
	ErrCodeInvalidCurrency            AsientoErrorCode = "ASI-010004"
	ErrCodeAccountingCategoryNotFound AsientoErrorCode = "ASI-010005"
	ErrCodeMovementTypeMismatch       AsientoErrorCode = "ASI-010006"
	ErrCodeMissingAsientoFields       AsientoErrorCode = "ASI-010007"
	ErrCodeDuplicateAsientoID         AsientoErrorCode = "ASI-010008"
	ErrCodeAsientoFieldTooLong        AsientoErrorCode = "ASI-010009"

	// Lookup errors (02XXXX)
	ErrCodeAsientoNotFound      AsientoErrorCode = "ASI-020001"
	ErrCodeNotAuthorizedAsiento AsientoErrorCode = "ASI-020002"
)

// AsientoError represents an accounting entry error with code and message.
type AsientoError struct {
	Code    AsientoErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AsientoError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AsientoError) Unwrap() error {
	return e.Err
}

// NewAsientoError creates a new AsientoError with the given code and message.
func NewAsientoError(code AsientoErrorCode, message string, err error) *AsientoError {
	return &AsientoError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
