package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// UpdateProfileInput represents the input for updating a profile.
// Nil fields keep their stored value.
type UpdateProfileInput struct {
	UserID            uuid.UUID
	Name              *string
	Phone             *string
	TelegramChatID    string
	PreferredCurrency *string
	UserType          *string
}

// UpdateProfileOutput represents the output of updating a profile.
type UpdateProfileOutput struct {
	User *entity.User
}

// UpdateProfileUseCase links a chat identity and updates the editable profile fields.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo: userRepo,
	}
}

// Execute validates and stores the profile.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	chatID := strings.TrimSpace(input.TelegramChatID)
	if chatID == "" {
		return nil, domainerror.NewProfileError(
			domainerror.ErrCodeChatIDRequired,
			"El ID de Chat de Telegram es requerido para vincular tu cuenta",
			domainerror.ErrChatIDRequired,
		)
	}

	var currency string
	if input.PreferredCurrency != nil {
		currency = strings.ToUpper(strings.TrimSpace(*input.PreferredCurrency))
		if !currencyRegex.MatchString(currency) {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeInvalidProfileCurrency,
				"La moneda debe ser un código ISO de 3 letras",
				nil,
			)
		}
	}

	var userType entity.UserType
	if input.UserType != nil {
		userType = entity.UserType(strings.TrimSpace(*input.UserType))
		if userType != entity.UserTypePersonal && userType != entity.UserTypeBusiness {
			return nil, domainerror.NewProfileError(
				domainerror.ErrCodeInvalidUserType,
				"tipo_usuario debe ser: personal o empresa",
				domainerror.ErrInvalidUserType,
			)
		}
	}

	user, err := findUser(ctx, uc.userRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	linked, err := uc.userRepo.FindByTelegramChatID(ctx, chatID)
	switch {
	case err == nil && linked.ID != user.ID:
		return nil, chatAlreadyLinked()
	case err != nil && !errors.Is(err, domainerror.ErrUserNotFound):
		return nil, fmt.Errorf("failed to check chat id: %w", err)
	}

	user.TelegramChatID = chatID
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		user.Phone = entity.NormalizePhone(strings.TrimSpace(*input.Phone))
	}
	if currency != "" {
		user.PreferredCurrency = currency
	}
	if userType != "" {
		user.UserType = userType
	}
	user.ApplyProfileDefaults()
	user.UpdatedAt = time.Now().UTC()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domainerror.ErrChatIDAlreadyLinked) {
			return nil, chatAlreadyLinked()
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return &UpdateProfileOutput{User: user}, nil
}

func chatAlreadyLinked() error {
	return domainerror.NewProfileError(
		domainerror.ErrCodeChatIDAlreadyLinked,
		"Este ID de Chat de Telegram ya está vinculado a otra cuenta",
		domainerror.ErrChatIDAlreadyLinked,
	)
}
