package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/asistente-contable/backend/internal/application/adapter"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

// SendWelcomeEmailInput represents the input for the account-created email.
type SendWelcomeEmailInput struct {
	Secret string
	Email  string
	Name   string
}

// SendWelcomeEmailOutput represents the output of the account-created email.
type SendWelcomeEmailOutput struct {
	Message string
}

// SendWelcomeEmailUseCase queues the account-created email on behalf of a trusted caller.
type SendWelcomeEmailUseCase struct {
	emailService adapter.EmailService
	secret       string
	dashboardURL string
}

// NewSendWelcomeEmailUseCase creates a new SendWelcomeEmailUseCase instance.
func NewSendWelcomeEmailUseCase(emailService adapter.EmailService, secret, dashboardURL string) *SendWelcomeEmailUseCase {
	return &SendWelcomeEmailUseCase{
		emailService: emailService,
		secret:       secret,
		dashboardURL: dashboardURL,
	}
}

// Execute checks the shared secret and queues the email.
func (uc *SendWelcomeEmailUseCase) Execute(ctx context.Context, input SendWelcomeEmailInput) (*SendWelcomeEmailOutput, error) {
	if uc.secret == "" {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeEmailSecretNotConfigured,
			"Secreto de email no configurado",
			domainerror.ErrEmailSecretNotConfigured,
		)
	}
	if subtle.ConstantTimeCompare([]byte(input.Secret), []byte(uc.secret)) != 1 {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeInvalidEmailSecret,
			"No autorizado",
			domainerror.ErrInvalidEmailSecret,
		)
	}

	email := strings.TrimSpace(input.Email)
	if email == "" || strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeMissingEmailFields,
			"Email y nombre son requeridos",
			nil,
		)
	}

	err := uc.emailService.QueueAccountCreatedEmail(ctx, adapter.QueueWelcomeInput{
		UserEmail:    email,
		UserName:     strings.TrimSpace(input.Name),
		DashboardURL: uc.dashboardURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to queue account created email: %w", err)
	}

	return &SendWelcomeEmailOutput{
		Message: "Email de bienvenida encolado",
	}, nil
}
