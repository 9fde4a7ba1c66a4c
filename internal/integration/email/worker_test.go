package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/infra/metrics"
	"github.com/asistente-contable/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	jobs      map[uuid.UUID]*entity.EmailJob
	createErr error
	purged    int
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	if q.createErr != nil {
		return q.createErr
	}
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, limit int) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, job := range q.jobs {
		if job.Status == entity.EmailStatusPending && !job.ScheduledAt.After(time.Now().UTC()) && len(out) < limit {
			out = append(out, job)
		}
	}
	return out, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	if job, ok := q.jobs[id]; ok {
		return job, nil
	}
	return nil, domainerror.ErrEmailJobNotFound
}

func (q *memoryQueue) GetByRecipient(_ context.Context, email string) ([]*entity.EmailJob, error) {
	var out []*entity.EmailJob
	for _, job := range q.jobs {
		if job.RecipientEmail == email {
			out = append(out, job)
		}
	}
	return out, nil
}

func (q *memoryQueue) DeleteOldSentJobs(context.Context, int) (int64, error) {
	q.purged++
	return 0, nil
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender *MockEmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, metrics.NewCollector(), DefaultWorkerConfig())
}

func TestServiceQueuesWelcomeEmails(t *testing.T) {
	tests := []struct {
		name         string
		queue        func(*Service, context.Context, adapter.QueueWelcomeInput) error
		wantTemplate entity.EmailTemplateType
		wantSubject  string
	}{
		{
			name:         "welcome",
			queue:        (*Service).QueueWelcomeEmail,
			wantTemplate: entity.TemplateWelcome,
			wantSubject:  "Bienvenido a Asistente Contable",
		},
		{
			name:         "account created",
			queue:        (*Service).QueueAccountCreatedEmail,
			wantTemplate: entity.TemplateAccountCreated,
			wantSubject:  "Cuenta creada - Asistente Contable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := newMemoryQueue()
			service := NewService(queue, "https://app.example.com")

			err := tt.queue(service, context.Background(), adapter.QueueWelcomeInput{UserEmail: "ana@example.com", UserName: "Ana"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			jobs, _ := queue.GetByRecipient(context.Background(), "ana@example.com")
			if len(jobs) != 1 {
				t.Fatalf("expected one job, got %d", len(jobs))
			}
			job := jobs[0]
			if job.TemplateType != tt.wantTemplate || job.Subject != tt.wantSubject {
				t.Errorf("unexpected job %s %q", job.TemplateType, job.Subject)
			}
			if job.TemplateData["dashboard_url"] != "https://app.example.com" {
				t.Errorf("expected base url fallback, got %v", job.TemplateData["dashboard_url"])
			}
		})
	}
}

func TestServiceWrapsQueueFailure(t *testing.T) {
	queue := newMemoryQueue()
	queue.createErr = errors.New("db down")
	service := NewService(queue, "")

	err := service.QueueWelcomeEmail(context.Background(), adapter.QueueWelcomeInput{UserEmail: "ana@example.com"})
	var emailErr *domainerror.EmailError
	if !errors.As(err, &emailErr) || emailErr.Code != domainerror.ErrCodeEmailQueueFailed {
		t.Fatalf("expected queue failure, got %v", err)
	}
}

func TestWorkerProcessNow(t *testing.T) {
	tests := []struct {
		name         string
		template     entity.EmailTemplateType
		failErr      error
		permanent    bool
		wantStatus   entity.EmailStatus
		wantAttempts int
		wantSent     int
	}{
		{name: "sent", template: entity.TemplateWelcome, wantStatus: entity.EmailStatusSent, wantSent: 1},
		{name: "temporary failure is retried", template: entity.TemplateWelcome, failErr: errors.New("503"), wantStatus: entity.EmailStatusPending, wantAttempts: 1},
		{name: "permanent failure", template: entity.TemplateAccountCreated, failErr: errors.New("422"), permanent: true, wantStatus: entity.EmailStatusFailed, wantAttempts: 1},
		{name: "unknown template", template: entity.EmailTemplateType("newsletter"), wantStatus: entity.EmailStatusFailed, wantAttempts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := newMemoryQueue()
			sender := NewMockEmailSender()
			if tt.failErr != nil {
				sender.SetFailure(tt.failErr, tt.permanent)
			}
			job := entity.NewEmailJob(tt.template, "ana@example.com", "Ana", "Hola", map[string]interface{}{
				"user_name":     "Ana",
				"user_email":    "ana@example.com",
				"dashboard_url": "https://app.example.com",
			})
			job.ScheduledAt = time.Now().UTC().Add(-time.Second)
			queue.jobs[job.ID] = job

			newTestWorker(t, queue, sender).ProcessNow(context.Background())

			got, _ := queue.GetByID(context.Background(), job.ID)
			if got.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, got.Status)
			}
			if got.Attempts != tt.wantAttempts {
				t.Errorf("expected %d attempts, got %d", tt.wantAttempts, got.Attempts)
			}
			if len(sender.SentEmails) != tt.wantSent {
				t.Fatalf("expected %d sent emails, got %d", tt.wantSent, len(sender.SentEmails))
			}
			if tt.wantSent > 0 {
				sent := sender.SentEmails[0]
				if !strings.Contains(sent.HTML, "Bienvenido, Ana") || !strings.Contains(sent.Text, "Bienvenido, Ana") {
					t.Error("expected rendered greeting in both bodies")
				}
				if got.ResendID == "" {
					t.Error("expected provider id to be stored")
				}
			}
		})
	}
}

func TestIsPermanentError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{err: nil, want: false},
		{err: errors.New("422 validation_error: invalid from address"), want: true},
		{err: errors.New("401 unauthorized"), want: true},
		{err: errors.New("429 rate limit exceeded"), want: false},
		{err: errors.New("500 internal server error"), want: false},
	}

	for _, tt := range tests {
		if got := isPermanentError(tt.err); got != tt.want {
			t.Errorf("isPermanentError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
