// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// Response is the envelope shared by every endpoint.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// OK wraps data in a successful envelope.
func OK(data interface{}, message string) Response {
	return Response{Success: true, Data: data, Message: message}
}

// Fail builds an error envelope.
func Fail(message, code string) Response {
	return Response{Success: false, Error: message, Code: code}
}

// Money renders an amount as a JSON number with two decimals.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// OptionalMoney renders an optional amount.
func OptionalMoney(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	v := Money(*d)
	return &v
}

// Date renders a calendar day as YYYY-MM-DD.
func Date(t time.Time) string {
	return t.Format(valueobject.DateLayout)
}

// ChatID accepts chat identities sent either as JSON strings or numbers.
type ChatID string

// UnmarshalJSON implements json.Unmarshaler.
func (c *ChatID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = ChatID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = ChatID(n.String())
	return nil
}

// String returns the chat identity.
func (c ChatID) String() string {
	return string(c)
}
