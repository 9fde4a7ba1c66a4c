package dto

import (
	"time"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,max=255"`
	Name     string `json:"nombre" binding:"omitempty,max=100"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// SendWelcomeEmailRequest represents the request body of the account-created email endpoint.
type SendWelcomeEmailRequest struct {
	Email string `json:"email"`
	Name  string `json:"nombre"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
	User         UserResponse `json:"user"`
}

// TokenResponse represents the response for token refresh.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserResponse represents the user profile in API responses.
type UserResponse struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Name              string    `json:"nombre"`
	Phone             string    `json:"telefono,omitempty"`
	TelegramChatID    string    `json:"telegram_chat_id,omitempty"`
	UserType          string    `json:"tipo_usuario"`
	PreferredCurrency string    `json:"moneda_preferida"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                user.ID.String(),
		Email:             user.Email,
		Name:              user.Name,
		Phone:             user.Phone,
		TelegramChatID:    user.TelegramChatID,
		UserType:          string(user.UserType),
		PreferredCurrency: user.PreferredCurrency,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	}
}

// UpdateProfileRequest represents the request body for profile updates.
// TelegramChatID is required to link the account; it is validated by the use case.
type UpdateProfileRequest struct {
	Name              *string `json:"nombre" binding:"omitempty,max=100"`
	Phone             *string `json:"telefono" binding:"omitempty,max=30"`
	TelegramChatID    ChatID  `json:"telegram_chat_id"`
	PreferredCurrency *string `json:"moneda_preferida"`
	UserType          *string `json:"tipo_usuario"`
}
