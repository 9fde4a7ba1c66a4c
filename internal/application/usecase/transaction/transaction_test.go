package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

type fakeTransactionRepository struct {
	transactions map[uuid.UUID]*entity.Transaction
	lastFilter   adapter.TransactionFilter
	deleted      []uuid.UUID
}

func newFakeTransactionRepository() *fakeTransactionRepository {
	return &fakeTransactionRepository{transactions: make(map[uuid.UUID]*entity.Transaction)}
}

func (r *fakeTransactionRepository) Create(_ context.Context, t *entity.Transaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *fakeTransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if t, ok := r.transactions[id]; ok {
		return t, nil
	}
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	r.lastFilter = filter
	var out []*entity.Transaction
	for _, t := range r.transactions {
		if t.UserID == filter.UserID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepository) ListDates(_ context.Context, userID uuid.UUID) ([]time.Time, error) {
	var dates []time.Time
	for _, t := range r.transactions {
		if t.UserID == userID {
			dates = append(dates, t.Date)
		}
	}
	return dates, nil
}

func (r *fakeTransactionRepository) Update(_ context.Context, t *entity.Transaction) error {
	r.transactions[t.ID] = t
	return nil
}

func (r *fakeTransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.transactions, id)
	return nil
}

func txnCode(t *testing.T, err error) domainerror.TransactionErrorCode {
	t.Helper()
	var txnErr *domainerror.TransactionError
	if !errors.As(err, &txnErr) {
		t.Fatalf("expected TransactionError, got %v", err)
	}
	return txnErr.Code
}

func strPtr(s string) *string {
	return &s
}

func TestCreateTransactionUseCase(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name         string
		input        CreateTransactionInput
		expectedCode domainerror.TransactionErrorCode
	}{
		{
			name:  "valid expense",
			input: CreateTransactionInput{UserID: userID, Type: "gasto", Amount: decimal.RequireFromString("25.505"), Description: " Comida ", Date: "2024-05-01"},
		},
		{
			name:  "blank date defaults to today",
			input: CreateTransactionInput{UserID: userID, Type: "ingreso", Amount: decimal.NewFromInt(10)},
		},
		{
			name:         "missing type",
			input:        CreateTransactionInput{UserID: userID, Amount: decimal.NewFromInt(10)},
			expectedCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:         "unknown type",
			input:        CreateTransactionInput{UserID: userID, Type: "regalo", Amount: decimal.NewFromInt(10)},
			expectedCode: domainerror.ErrCodeInvalidTransactionType,
		},
		{
			name:         "zero amount",
			input:        CreateTransactionInput{UserID: userID, Type: "gasto", Amount: decimal.Zero},
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:         "amount rounds to zero",
			input:        CreateTransactionInput{UserID: userID, Type: "gasto", Amount: decimal.RequireFromString("0.004")},
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:         "negative amount",
			input:        CreateTransactionInput{UserID: userID, Type: "gasto", Amount: decimal.NewFromInt(-5)},
			expectedCode: domainerror.ErrCodeInvalidTransactionAmount,
		},
		{
			name:         "loose date format",
			input:        CreateTransactionInput{UserID: userID, Type: "gasto", Amount: decimal.NewFromInt(5), Date: "2024-5-1"},
			expectedCode: domainerror.ErrCodeInvalidTransactionDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTransactionRepository()
			uc := NewCreateTransactionUseCase(repo)

			out, err := uc.Execute(context.Background(), tt.input)
			if tt.expectedCode != "" {
				if code := txnCode(t, err); code != tt.expectedCode {
					t.Errorf("expected code %s, got %s", tt.expectedCode, code)
				}
				if len(repo.transactions) != 0 {
					t.Error("expected nothing to be stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Transaction.Origin != entity.OriginManual {
				t.Errorf("expected manual origin, got %s", out.Transaction.Origin)
			}
			if out.Transaction.Date.IsZero() || out.Transaction.Date.Hour() != 0 {
				t.Errorf("expected a calendar day, got %v", out.Transaction.Date)
			}
			if _, ok := repo.transactions[out.Transaction.ID]; !ok {
				t.Error("expected transaction to be stored")
			}
		})
	}
}

func TestCreateTransactionUseCase_RoundsAndTrims(t *testing.T) {
	uc := NewCreateTransactionUseCase(newFakeTransactionRepository())
	out, err := uc.Execute(context.Background(), CreateTransactionInput{
		UserID: uuid.New(), Type: "gasto", Amount: decimal.RequireFromString("25.505"), Description: " Comida ", Date: "2024-05-01",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Transaction.Amount.Equal(decimal.RequireFromString("25.51")) {
		t.Errorf("expected 25.51, got %s", out.Transaction.Amount)
	}
	if out.Transaction.Description != "Comida" {
		t.Errorf("expected trimmed description, got %q", out.Transaction.Description)
	}
}

func TestUpdateAndDeleteTransaction_Ownership(t *testing.T) {
	owner, stranger := uuid.New(), uuid.New()
	repo := newFakeTransactionRepository()
	existing := entity.NewTransaction(owner, entity.TransactionTypeExpense, decimal.NewFromInt(10), "Café", "", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), "", entity.OriginManual)
	repo.transactions[existing.ID] = existing

	update := NewUpdateTransactionUseCase(repo)
	remove := NewDeleteTransactionUseCase(repo)

	_, err := update.Execute(context.Background(), UpdateTransactionInput{TransactionID: existing.ID, UserID: stranger, Description: strPtr("hack")})
	if code := txnCode(t, err); code != domainerror.ErrCodeTransactionNotFound {
		t.Errorf("expected not found for a foreign transaction, got %s", code)
	}

	err = remove.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: stranger})
	if !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("expected no delete for a foreign transaction")
	}

	out, err := update.Execute(context.Background(), UpdateTransactionInput{
		TransactionID: existing.ID, UserID: owner, Type: strPtr("ahorro"), Date: strPtr("2024-06-02"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Transaction.Type != entity.TransactionTypeSavings || out.Transaction.Date.Month() != time.June {
		t.Errorf("expected fields to be updated, got %s %v", out.Transaction.Type, out.Transaction.Date)
	}
	if out.Transaction.Description != "Café" {
		t.Errorf("expected untouched description, got %s", out.Transaction.Description)
	}

	badAmount := decimal.NewFromInt(-1)
	_, err = update.Execute(context.Background(), UpdateTransactionInput{TransactionID: existing.ID, UserID: owner, Amount: &badAmount})
	if code := txnCode(t, err); code != domainerror.ErrCodeInvalidTransactionAmount {
		t.Errorf("expected invalid amount, got %s", code)
	}
	subCent := decimal.RequireFromString("0.004")
	_, err = update.Execute(context.Background(), UpdateTransactionInput{TransactionID: existing.ID, UserID: owner, Amount: &subCent})
	if code := txnCode(t, err); code != domainerror.ErrCodeInvalidTransactionAmount {
		t.Errorf("expected invalid sub-cent amount, got %s", code)
	}

	if err := remove.Execute(context.Background(), DeleteTransactionInput{TransactionID: existing.ID, UserID: owner}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Errorf("expected one delete, got %d", len(repo.deleted))
	}
}

func TestListTransactionsUseCase_Filter(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		input         ListTransactionsInput
		expectedCode  domainerror.TransactionErrorCode
		expectedLimit int
		expectedStart string
		expectedEnd   string
	}{
		{
			name:          "defaults",
			input:         ListTransactionsInput{UserID: userID},
			expectedLimit: DefaultListLimit,
		},
		{
			name:          "limit is capped",
			input:         ListTransactionsInput{UserID: userID, Limit: 10000},
			expectedLimit: MaxListLimit,
		},
		{
			name:          "period bounds",
			input:         ListTransactionsInput{UserID: userID, Period: "2024-02"},
			expectedLimit: DefaultListLimit,
			expectedStart: "2024-02-01",
			expectedEnd:   "2024-02-29",
		},
		{
			name:          "explicit dates narrow the period",
			input:         ListTransactionsInput{UserID: userID, Period: "2024-02", StartDate: "2024-02-10"},
			expectedLimit: DefaultListLimit,
			expectedStart: "2024-02-10",
			expectedEnd:   "2024-02-29",
		},
		{
			name:          "earlier start cannot widen the period",
			input:         ListTransactionsInput{UserID: userID, Period: "2024-05", StartDate: "2024-01-01"},
			expectedLimit: DefaultListLimit,
			expectedStart: "2024-05-01",
			expectedEnd:   "2024-05-31",
		},
		{
			name:          "later end cannot widen the period",
			input:         ListTransactionsInput{UserID: userID, Period: "2024-05", StartDate: "2024-05-10", EndDate: "2024-06-30"},
			expectedLimit: DefaultListLimit,
			expectedStart: "2024-05-10",
			expectedEnd:   "2024-05-31",
		},
		{
			name:          "dates without a period",
			input:         ListTransactionsInput{UserID: userID, StartDate: "2024-01-01", EndDate: "2024-03-15"},
			expectedLimit: DefaultListLimit,
			expectedStart: "2024-01-01",
			expectedEnd:   "2024-03-15",
		},
		{
			name:         "bad date",
			input:        ListTransactionsInput{UserID: userID, StartDate: "10/02/2024"},
			expectedCode: domainerror.ErrCodeInvalidTransactionFilter,
		},
		{
			name:         "inverted range",
			input:        ListTransactionsInput{UserID: userID, StartDate: "2024-03-01", EndDate: "2024-02-01"},
			expectedCode: domainerror.ErrCodeInvalidTransactionFilter,
		},
		{
			name:         "negative offset",
			input:        ListTransactionsInput{UserID: userID, Offset: -1},
			expectedCode: domainerror.ErrCodeInvalidTransactionFilter,
		},
		{
			name:         "bad type",
			input:        ListTransactionsInput{UserID: userID, Type: "otro"},
			expectedCode: domainerror.ErrCodeInvalidTransactionType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeTransactionRepository()
			uc := NewListTransactionsUseCase(repo)

			_, err := uc.Execute(context.Background(), tt.input)
			if tt.expectedCode != "" {
				if code := txnCode(t, err); code != tt.expectedCode {
					t.Errorf("expected code %s, got %s", tt.expectedCode, code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.lastFilter.Limit != tt.expectedLimit {
				t.Errorf("expected limit %d, got %d", tt.expectedLimit, repo.lastFilter.Limit)
			}
			if tt.expectedStart != "" && repo.lastFilter.StartDate.Format("2006-01-02") != tt.expectedStart {
				t.Errorf("expected start %s, got %v", tt.expectedStart, repo.lastFilter.StartDate)
			}
			if tt.expectedEnd != "" && repo.lastFilter.EndDate.Format("2006-01-02") != tt.expectedEnd {
				t.Errorf("expected end %s, got %v", tt.expectedEnd, repo.lastFilter.EndDate)
			}
		})
	}
}

func TestListTransactionsUseCase_InvalidPeriod(t *testing.T) {
	uc := NewListTransactionsUseCase(newFakeTransactionRepository())
	_, err := uc.Execute(context.Background(), ListTransactionsInput{UserID: uuid.New(), Period: "2024-13"})
	if !errors.Is(err, domainerror.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestListPeriodsUseCase(t *testing.T) {
	userID := uuid.New()
	repo := newFakeTransactionRepository()
	for _, d := range []string{"2024-01-15", "2024-01-20", "2023-11-02"} {
		date, _ := time.Parse("2006-01-02", d)
		txn := entity.NewTransaction(userID, entity.TransactionTypeExpense, decimal.NewFromInt(1), "", "", date, "", "")
		repo.transactions[txn.ID] = txn
	}

	uc := NewListPeriodsUseCase(repo)
	uc.now = func() time.Time { return time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC) }

	out, err := uc.Execute(context.Background(), ListPeriodsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"2024-03", "2024-01", "2023-11"}
	if len(out.Periods) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, out.Periods)
	}
	for i := range expected {
		if out.Periods[i] != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], out.Periods[i])
		}
	}
}
