package webhook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/aggregation"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// OpenBound labels a query range side that was not constrained.
const OpenBound = "todo"

// QueryTransactionsInput represents a read-only query by chat identity.
type QueryTransactionsInput struct {
	ChatID   string
	DateFrom string
	DateTo   string
	Type     string
}

// QuerySummary holds the per-kind totals of the matched transactions.
type QuerySummary struct {
	Total       decimal.Decimal
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Savings     decimal.Decimal
	Investment  decimal.Decimal
	Balance     decimal.Decimal
	Count       int
}

// QueryTransactionsOutput represents the query result.
type QueryTransactionsOutput struct {
	UserID       uuid.UUID
	From         string
	To           string
	Summary      QuerySummary
	Transactions []*entity.Transaction
}

// QueryTransactionsUseCase answers aggregate questions from the chat automation.
type QueryTransactionsUseCase struct {
	resolver        *UserResolver
	transactionRepo adapter.TransactionRepository
}

// NewQueryTransactionsUseCase creates a new QueryTransactionsUseCase instance.
func NewQueryTransactionsUseCase(resolver *UserResolver, transactionRepo adapter.TransactionRepository) *QueryTransactionsUseCase {
	return &QueryTransactionsUseCase{
		resolver:        resolver,
		transactionRepo: transactionRepo,
	}
}

// Execute performs the query.
func (uc *QueryTransactionsUseCase) Execute(ctx context.Context, input QueryTransactionsInput) (*QueryTransactionsOutput, error) {
	if err := requireField(input.ChatID, "chat_id es requerido"); err != nil {
		return nil, err
	}

	filter := adapter.TransactionFilter{}
	from, err := parseBound(input.DateFrom, "fecha_desde")
	if err != nil {
		return nil, err
	}
	to, err := parseBound(input.DateTo, "fecha_hasta")
	if err != nil {
		return nil, err
	}
	filter.StartDate, filter.EndDate = from, to

	if raw := strings.TrimSpace(input.Type); raw != "" {
		txnType := entity.TransactionType(raw)
		if !txnType.IsValid() {
			return nil, domainerror.NewInvalidPayloadError("tipo debe ser: ingreso, gasto, inversion, ahorro o transferencia")
		}
		filter.Type = &txnType
	}

	user, err := uc.resolver.ByChatID(ctx, strings.TrimSpace(input.ChatID))
	if err != nil {
		return nil, err
	}
	filter.UserID = user.ID

	transactions, err := uc.transactionRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	totals := aggregation.SummarizeTransactions(transactions)
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}

	return &QueryTransactionsOutput{
		UserID: user.ID,
		From:   boundLabel(input.DateFrom),
		To:     boundLabel(input.DateTo),
		Summary: QuerySummary{
			Total:       total,
			Income:      totals.Income,
			Expense:     totals.Expense,
			Savings:     totals.Savings,
			Investment:  totals.Investment,
			Balance:     totals.Balance,
			Count:       totals.Count,
		},
		Transactions: transactions,
	}, nil
}

func parseBound(raw, field string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	date, err := valueobject.ParseDate(raw)
	if err != nil {
		return nil, domainerror.NewInvalidPayloadError(field + " debe tener formato YYYY-MM-DD")
	}
	return &date, nil
}

func boundLabel(raw string) string {
	if raw = strings.TrimSpace(raw); raw != "" {
		return raw
	}
	return OpenBound
}
