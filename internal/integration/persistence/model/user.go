// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
// TelegramChatID is nullable so that unlinked accounts do not collide on the unique index.
type UserModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name              string    `gorm:"type:varchar(100)"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Phone             string    `gorm:"type:varchar(30)"`
	TelegramChatID    *string   `gorm:"type:varchar(64);uniqueIndex"`
	UserType          string    `gorm:"type:varchar(20);default:'personal'"`
	PreferredCurrency string    `gorm:"type:varchar(3);default:'EUR'"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	user := &entity.User{
		ID:                m.ID,
		Email:             m.Email,
		Name:              m.Name,
		PasswordHash:      m.PasswordHash,
		Phone:             m.Phone,
		UserType:          entity.UserType(m.UserType),
		PreferredCurrency: m.PreferredCurrency,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	if m.TelegramChatID != nil {
		user.TelegramChatID = *m.TelegramChatID
	}
	return user
}

// UserModelFromEntity creates a UserModel from a domain User entity.
func UserModelFromEntity(user *entity.User) *UserModel {
	m := &UserModel{
		ID:                user.ID,
		Email:             user.Email,
		Name:              user.Name,
		PasswordHash:      user.PasswordHash,
		Phone:             user.Phone,
		UserType:          string(user.UserType),
		PreferredCurrency: user.PreferredCurrency,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
	if user.TelegramChatID != "" {
		chatID := user.TelegramChatID
		m.TelegramChatID = &chatID
	}
	return m
}

// RefreshTokenModel represents the refresh_tokens table for token invalidation tracking.
// Only the SHA-256 digest of a token is stored.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TokenHash   string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
