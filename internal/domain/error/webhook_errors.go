package error

import "errors"

// Webhook ingestion errors.
var (
	// ErrWebhookSecretNotConfigured is returned when no shared secret is configured on the server.
	ErrWebhookSecretNotConfigured = errors.New("webhook secret not configured")

	// ErrInvalidWebhookSecret is returned when the bearer token does not match the shared secret.
	ErrInvalidWebhookSecret = errors.New("invalid webhook secret")

	// ErrInvalidWebhookPayload is returned when a required payload field is missing or malformed.
	ErrInvalidWebhookPayload = errors.New("invalid webhook payload")

	// ErrUnregisteredUser is returned when a chat identity is not linked to any account.
	ErrUnregisteredUser = errors.New("unregistered user")

	// ErrWebhookUserNotFound is returned when an explicit user id does not exist.
	ErrWebhookUserNotFound = errors.New("webhook user not found")
)

// WebhookErrorCode defines error codes for webhook errors.
// Format: WHK-XXYYYY where XX is category and YYYY is specific error.
type WebhookErrorCode string

const (
	// Access errors (01XXXX)
	ErrCodeWebhookSecretNotConfigured WebhookErrorCode = "WHK-010001"
	ErrCodeInvalidWebhookSecret       WebhookErrorCode = "WHK-010002"
	ErrCodeWebhookRateLimited         WebhookErrorCode = "WHK-010003"

	// Payload errors (02XXXX)
	ErrCodeInvalidWebhookPayload WebhookErrorCode = "WHK-020001"

	// Resolution errors (03XXXX)
	ErrCodeUnregisteredUser    WebhookErrorCode = "WHK-030001"
	ErrCodeWebhookUserNotFound WebhookErrorCode = "WHK-030002"
)

// WebhookError represents a webhook error with code and message.
type WebhookError struct {
	Code    WebhookErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *WebhookError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *WebhookError) Unwrap() error {
	return e.Err
}

// NewWebhookError creates a new WebhookError with the given code and message.
func NewWebhookError(code WebhookErrorCode, message string, err error) *WebhookError {
	return &WebhookError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidPayloadError builds the payload validation error carrying a caller-facing message.
func NewInvalidPayloadError(message string) *WebhookError {
	return NewWebhookError(ErrCodeInvalidWebhookPayload, message, ErrInvalidWebhookPayload)
}
