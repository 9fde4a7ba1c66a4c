package error

import "errors"

// Period and KPI domain errors.
var (
	// ErrInvalidPeriod is returned when a period token is not a valid YYYY-MM month.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidDateRange is returned when a date filter is malformed or inverted.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// KPIErrorCode defines error codes for period and KPI errors.
type KPIErrorCode string

const (
	ErrCodeInvalidPeriod    KPIErrorCode = "KPI-010001"
	ErrCodeInvalidDateRange KPIErrorCode = "KPI-010002"
)

// KPIError represents a period or KPI error with code and message.
type KPIError struct {
	Code    KPIErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *KPIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *KPIError) Unwrap() error {
	return e.Err
}

// NewKPIError creates a new KPIError with the given code and message.
func NewKPIError(code KPIErrorCode, message string, err error) *KPIError {
	return &KPIError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
