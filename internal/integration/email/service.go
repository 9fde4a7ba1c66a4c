// Package email provides email sending functionality.
package email

import (
	"context"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

// Service handles email queueing operations.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueWelcomeEmail queues the welcome email sent after registration.
func (s *Service) QueueWelcomeEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	return s.enqueue(ctx, s.welcomeJob(entity.TemplateWelcome, "Bienvenido a Asistente Contable", input))
}

// QueueAccountCreatedEmail queues the account confirmation email.
func (s *Service) QueueAccountCreatedEmail(ctx context.Context, input adapter.QueueWelcomeInput) error {
	return s.enqueue(ctx, s.welcomeJob(entity.TemplateAccountCreated, "Cuenta creada - Asistente Contable", input))
}

func (s *Service) enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue "+string(job.TemplateType)+" email",
			err,
		)
	}
	return nil
}

func (s *Service) welcomeJob(template entity.EmailTemplateType, subject string, input adapter.QueueWelcomeInput) *entity.EmailJob {
	dashboardURL := input.DashboardURL
	if dashboardURL == "" {
		dashboardURL = s.appBaseURL
	}

	templateData := map[string]interface{}{
		"user_name":     input.UserName,
		"user_email":    input.UserEmail,
		"dashboard_url": dashboardURL,
	}

	return entity.NewEmailJob(
		template,
		input.UserEmail,
		input.UserName,
		subject,
		templateData,
	)
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
