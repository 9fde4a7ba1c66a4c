// Package entity defines the core business entities for the domain layer.
package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserType classifies the account holder.
type UserType string

const (
	UserTypePersonal UserType = "personal"
	UserTypeBusiness UserType = "empresa"
)

// DefaultCurrency is applied to profiles and entries that carry no currency.
const DefaultCurrency = "EUR"

// phoneSeparators matches the characters dropped when normalizing phone numbers.
var phoneSeparators = regexp.MustCompile(`[\s\-\(\)]`)

// User represents an account holder of the Asistente Contable system.
type User struct {
	ID                uuid.UUID
	Email             string
	Name              string
	PasswordHash      string
	Phone             string
	TelegramChatID    string
	UserType          UserType
	PreferredCurrency string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUser creates a new User with default profile values.
func NewUser(email, name, passwordHash string) *User {
	now := time.Now().UTC()
	if strings.TrimSpace(name) == "" {
		name = NameFromEmail(email)
	}
	return &User{
		ID:                uuid.New(),
		Email:             email,
		Name:              name,
		PasswordHash:      passwordHash,
		UserType:          UserTypePersonal,
		PreferredCurrency: DefaultCurrency,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// HasProfile reports whether the user has the minimum profile data set.
func (u *User) HasProfile() bool {
	return u.Name != "" && u.UserType != "" && u.PreferredCurrency != ""
}

// ApplyProfileDefaults fills missing profile fields.
func (u *User) ApplyProfileDefaults() {
	if u.Name == "" {
		u.Name = NameFromEmail(u.Email)
	}
	if u.UserType == "" {
		u.UserType = UserTypePersonal
	}
	if u.PreferredCurrency == "" {
		u.PreferredCurrency = DefaultCurrency
	}
}

// IsLinkedToChat reports whether the user has a chat identity linked.
func (u *User) IsLinkedToChat() bool {
	return u.TelegramChatID != ""
}

// NameFromEmail returns the local part of an email address.
func NameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

// NormalizePhone strips spaces, dashes and parentheses from a phone number.
func NormalizePhone(phone string) string {
	return phoneSeparators.ReplaceAllString(phone, "")
}
