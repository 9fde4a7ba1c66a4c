package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// ListTransactionsInput represents the query string of a transaction listing.
type ListTransactionsInput struct {
	UserID    uuid.UUID
	Period    string
	Type      string
	Category  string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// ListTransactionsOutput represents the output of a transaction listing.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase lists the caller's transactions, newest first.
type ListTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(transactionRepo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute performs the listing. Explicit dates only narrow the period bounds,
// so a window outside the period lists nothing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	filter, err := buildFilter(input)
	if err != nil {
		return nil, err
	}

	transactions, err := uc.transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &ListTransactionsOutput{Transactions: transactions}, nil
}

func buildFilter(input ListTransactionsInput) (adapter.TransactionFilter, error) {
	filter := adapter.TransactionFilter{
		UserID:   input.UserID,
		Category: strings.TrimSpace(input.Category),
		Limit:    input.Limit,
		Offset:   input.Offset,
	}

	if input.Limit < 0 || input.Offset < 0 {
		return filter, invalidFilter("limit y offset deben ser positivos", nil)
	}
	if filter.Limit == 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	if input.Period != "" {
		period, err := valueobject.ParsePeriod(input.Period)
		if err != nil {
			return filter, err
		}
		start, end := period.Bounds()
		filter.StartDate, filter.EndDate = &start, &end
	}

	var start, end *time.Time
	if input.StartDate != "" {
		d, err := valueobject.ParseDate(input.StartDate)
		if err != nil {
			return filter, invalidFilter("fecha_desde debe tener formato YYYY-MM-DD", err)
		}
		start = &d
	}
	if input.EndDate != "" {
		d, err := valueobject.ParseDate(input.EndDate)
		if err != nil {
			return filter, invalidFilter("fecha_hasta debe tener formato YYYY-MM-DD", err)
		}
		end = &d
	}
	if start != nil && end != nil && end.Before(*start) {
		return filter, invalidFilter("fecha_hasta no puede ser anterior a fecha_desde", nil)
	}
	if start != nil && (filter.StartDate == nil || start.After(*filter.StartDate)) {
		filter.StartDate = start
	}
	if end != nil && (filter.EndDate == nil || end.Before(*filter.EndDate)) {
		filter.EndDate = end
	}

	if input.Type != "" {
		txnType, err := parseTransactionType(input.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = &txnType
	}

	return filter, nil
}

func invalidFilter(message string, err error) error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeInvalidTransactionFilter,
		message,
		errors.Join(domainerror.ErrInvalidTransactionFilter, err),
	)
}

// ListPeriodsInput represents the input for listing available periods.
type ListPeriodsInput struct {
	UserID uuid.UUID
}

// ListPeriodsOutput represents the periods a user has transactions in.
type ListPeriodsOutput struct {
	Periods []string
}

// ListPeriodsUseCase returns the YYYY-MM periods with data plus the current month.
type ListPeriodsUseCase struct {
	transactionRepo adapter.TransactionRepository
	now             func() time.Time
}

// NewListPeriodsUseCase creates a new ListPeriodsUseCase instance.
func NewListPeriodsUseCase(transactionRepo adapter.TransactionRepository) *ListPeriodsUseCase {
	return &ListPeriodsUseCase{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// Execute lists the periods newest first.
func (uc *ListPeriodsUseCase) Execute(ctx context.Context, input ListPeriodsInput) (*ListPeriodsOutput, error) {
	dates, err := uc.transactionRepo.ListDates(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transaction dates: %w", err)
	}
	return &ListPeriodsOutput{Periods: valueobject.AvailablePeriods(dates, uc.now())}, nil
}
