// Package webhook contains the automation ingestion use cases.
//
// Webhook callers identify users by their linked chat identity. Users are
// never created from a bare chat identity; unknown identities are rejected.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

// UserResolver maps webhook identities to registered users.
type UserResolver struct {
	userRepo adapter.UserRepository
}

// NewUserResolver creates a new UserResolver instance.
func NewUserResolver(userRepo adapter.UserRepository) *UserResolver {
	return &UserResolver{
		userRepo: userRepo,
	}
}

// ByChatID returns the user linked to chatID or an UnregisteredUser error.
func (r *UserResolver) ByChatID(ctx context.Context, chatID string) (*entity.User, error) {
	user, err := r.userRepo.FindByTelegramChatID(ctx, chatID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, unregistered(chatID)
		}
		return nil, fmt.Errorf("failed to find user by chat id: %w", err)
	}
	return user, nil
}

// ByUserID returns the user with the given id. Malformed ids are reported the same as missing ones.
func (r *UserResolver) ByUserID(ctx context.Context, rawID string) (*entity.User, error) {
	notFound := domainerror.NewWebhookError(
		domainerror.ErrCodeWebhookUserNotFound,
		fmt.Sprintf("Usuario con user_id %s no encontrado", rawID),
		domainerror.ErrWebhookUserNotFound,
	)

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, notFound
	}
	user, err := r.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, notFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// EnrichPhone stores phone on the user when it differs from the stored number.
// Failures are logged and never interrupt ingestion.
func (r *UserResolver) EnrichPhone(ctx context.Context, user *entity.User, phone string) {
	phone = strings.TrimSpace(phone)
	if phone == "" || phone == user.Phone {
		return
	}
	normalized := entity.NormalizePhone(phone)
	if normalized == user.Phone {
		return
	}

	if err := r.userRepo.UpdatePhone(ctx, user.ID, normalized); err != nil {
		slog.Warn("Failed to update phone from webhook",
			"user_id", user.ID,
			"error", err,
		)
		return
	}
	user.Phone = normalized
}

func unregistered(chatID string) error {
	return domainerror.NewWebhookError(
		domainerror.ErrCodeUnregisteredUser,
		fmt.Sprintf("Usuario no registrado. El chat_id %s no está vinculado a ninguna cuenta. "+
			"Por favor, registra tu cuenta en el dashboard y vincula tu Telegram Chat ID.", chatID),
		domainerror.ErrUnregisteredUser,
	)
}

// recordAudit appends an audit entry, logging instead of failing.
func recordAudit(ctx context.Context, repo adapter.AuditLogRepository, userID uuid.UUID, action string, details map[string]interface{}) {
	if repo == nil {
		return
	}
	if err := repo.Create(ctx, entity.NewAuditLog(&userID, action, details)); err != nil {
		slog.Warn("Failed to write audit log",
			"user_id", userID,
			"accion", action,
			"error", err,
		)
	}
}

func requireField(value, message string) error {
	if strings.TrimSpace(value) == "" {
		return domainerror.NewInvalidPayloadError(message)
	}
	return nil
}
