package webhook

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/usecase/asiento"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

type fakeUserRepository struct {
	users       map[uuid.UUID]*entity.User
	phoneWrites int
	phoneErr    error
}

func newFakeUserRepository(users ...*entity.User) *fakeUserRepository {
	r := &fakeUserRepository{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepository) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) FindByTelegramChatID(_ context.Context, chatID string) (*entity.User, error) {
	for _, u := range r.users {
		if chatID != "" && u.TelegramChatID == chatID {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepository) Update(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) UpdatePhone(_ context.Context, id uuid.UUID, phone string) error {
	r.phoneWrites++
	if r.phoneErr != nil {
		return r.phoneErr
	}
	r.users[id].Phone = phone
	return nil
}

func (r *fakeUserRepository) ExistsByEmail(context.Context, string) (bool, error) { return false, nil }

type fakeTransactionRepository struct {
	created    []*entity.Transaction
	lastFilter adapter.TransactionFilter
}

func (r *fakeTransactionRepository) Create(_ context.Context, t *entity.Transaction) error {
	r.created = append(r.created, t)
	return nil
}

func (r *fakeTransactionRepository) FindByID(context.Context, uuid.UUID) (*entity.Transaction, error) {
	return nil, domainerror.ErrTransactionNotFound
}

func (r *fakeTransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter) ([]*entity.Transaction, error) {
	r.lastFilter = filter
	var out []*entity.Transaction
	for _, t := range r.created {
		if t.UserID == filter.UserID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTransactionRepository) ListDates(context.Context, uuid.UUID) ([]time.Time, error) {
	return nil, nil
}

func (r *fakeTransactionRepository) Update(context.Context, *entity.Transaction) error { return nil }

func (r *fakeTransactionRepository) Delete(context.Context, uuid.UUID) error { return nil }

type fakeAsientoRepository struct {
	created []*entity.Asiento
}

func (r *fakeAsientoRepository) Create(_ context.Context, a *entity.Asiento) error {
	r.created = append(r.created, a)
	return nil
}

func (r *fakeAsientoRepository) FindByID(context.Context, string) (*entity.Asiento, error) {
	return nil, domainerror.ErrAsientoNotFound
}

func (r *fakeAsientoRepository) FindByFilter(context.Context, adapter.AsientoFilter) ([]*entity.Asiento, error) {
	return r.created, nil
}

func (r *fakeAsientoRepository) Update(context.Context, *entity.Asiento) error { return nil }

func (r *fakeAsientoRepository) Delete(context.Context, string) error { return nil }

type fakeCatalogRepository struct{}

func (fakeCatalogRepository) FindByCode(_ context.Context, code string) (*entity.AccountingCategory, error) {
	for i := range entity.DefaultAccountingCatalog {
		if entity.DefaultAccountingCatalog[i].Code == code {
			row := entity.DefaultAccountingCatalog[i]
			return &row, nil
		}
	}
	return nil, domainerror.ErrAccountingCategoryNotFound
}

func (fakeCatalogRepository) ListActive(context.Context, *entity.MovementType) ([]*entity.AccountingCategory, error) {
	return nil, nil
}

func (fakeCatalogRepository) ListAll(context.Context) ([]*entity.AccountingCategory, error) {
	return nil, nil
}

type fakeAuditRepository struct {
	logs []*entity.AuditLog
	err  error
}

func (r *fakeAuditRepository) Create(_ context.Context, log *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeAuditRepository) FindByUser(context.Context, uuid.UUID) ([]*entity.AuditLog, error) {
	return r.logs, nil
}

func linkedUser(chatID string) *entity.User {
	u := entity.NewUser("ana@example.com", "Ana", "hash")
	u.TelegramChatID = chatID
	u.Phone = "600111222"
	return u
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func webhookErrorCode(t *testing.T, err error) domainerror.WebhookErrorCode {
	t.Helper()
	var whkErr *domainerror.WebhookError
	if !errors.As(err, &whkErr) {
		t.Fatalf("expected WebhookError, got %v", err)
	}
	return whkErr.Code
}

func lunchPayload() IngestTransactionInput {
	return IngestTransactionInput{
		ChatID:      "123",
		Type:        "gasto",
		Amount:      amount("25.50"),
		Description: "lunch",
		Date:        "2024-05-01",
	}
}

func TestIngestTransaction_UnregisteredChat(t *testing.T) {
	txns := &fakeTransactionRepository{}
	uc := NewIngestTransactionUseCase(NewUserResolver(newFakeUserRepository()), txns, &fakeAuditRepository{})

	_, err := uc.Execute(context.Background(), lunchPayload())
	if code := webhookErrorCode(t, err); code != domainerror.ErrCodeUnregisteredUser {
		t.Fatalf("expected unregistered user, got %s", code)
	}
	if !strings.Contains(err.Error(), "no registrado") {
		t.Errorf("expected actionable message, got %q", err.Error())
	}
	if len(txns.created) != 0 {
		t.Error("expected no transaction to be stored")
	}
}

func TestIngestTransaction_LinkedUser(t *testing.T) {
	user := linkedUser("123")
	txns := &fakeTransactionRepository{}
	audit := &fakeAuditRepository{}
	uc := NewIngestTransactionUseCase(NewUserResolver(newFakeUserRepository(user)), txns, audit)

	out, err := uc.Execute(context.Background(), lunchPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.UserID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, out.UserID)
	}
	if len(txns.created) != 1 {
		t.Fatalf("expected one transaction, got %d", len(txns.created))
	}
	created := txns.created[0]
	if created.Origin != entity.OriginN8N {
		t.Errorf("expected origin n8n, got %s", created.Origin)
	}
	if !created.Amount.Equal(decimal.RequireFromString("25.50")) {
		t.Errorf("expected amount 25.50, got %s", created.Amount)
	}
	if created.PaymentMethod != entity.DefaultWebhookPaymentMethod {
		t.Errorf("expected default payment method, got %s", created.PaymentMethod)
	}
	if len(audit.logs) != 1 {
		t.Fatalf("expected one audit log, got %d", len(audit.logs))
	}
	if audit.logs[0].Action != entity.AuditTransactionCreatedViaWebhook {
		t.Errorf("unexpected audit action %s", audit.logs[0].Action)
	}
	if audit.logs[0].Details["transaction_id"] != created.ID.String() {
		t.Errorf("expected audit to reference %s, got %v", created.ID, audit.logs[0].Details["transaction_id"])
	}
}

func TestIngestTransaction_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*IngestTransactionInput)
		message string
	}{
		{name: "missing chat id", mutate: func(in *IngestTransactionInput) { in.ChatID = "" }, message: "chat_id es requerido"},
		{name: "blank description", mutate: func(in *IngestTransactionInput) { in.Description = "  " }, message: "descripcion es requerida"},
		{name: "missing date", mutate: func(in *IngestTransactionInput) { in.Date = "" }, message: "fecha es requerida (formato: YYYY-MM-DD)"},
		{name: "loose date", mutate: func(in *IngestTransactionInput) { in.Date = "2024-5-1" }, message: "fecha debe tener formato YYYY-MM-DD"},
		{name: "transfer not allowed", mutate: func(in *IngestTransactionInput) { in.Type = "transferencia" }, message: "tipo debe ser: ingreso, gasto, inversion o ahorro"},
		{name: "missing amount", mutate: func(in *IngestTransactionInput) { in.Amount = nil }, message: "monto debe ser mayor a 0"},
		{name: "zero amount", mutate: func(in *IngestTransactionInput) { in.Amount = amount("0") }, message: "monto debe ser mayor a 0"},
		{name: "amount rounds to zero", mutate: func(in *IngestTransactionInput) { in.Amount = amount("0.004") }, message: "monto debe ser mayor a 0"},
		{name: "first failure wins", mutate: func(in *IngestTransactionInput) { in.Description = ""; in.Amount = nil }, message: "descripcion es requerida"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUserRepository(linkedUser("123"))
			txns := &fakeTransactionRepository{}
			uc := NewIngestTransactionUseCase(NewUserResolver(users), txns, nil)

			input := lunchPayload()
			input.Phone = "+34 600 999 888"
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)

			var whkErr *domainerror.WebhookError
			if !errors.As(err, &whkErr) || whkErr.Code != domainerror.ErrCodeInvalidWebhookPayload {
				t.Fatalf("expected invalid payload error, got %v", err)
			}
			if whkErr.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, whkErr.Message)
			}
			if len(txns.created) != 0 || users.phoneWrites != 0 {
				t.Error("expected no writes on validation failure")
			}
		})
	}
}

func TestIngestTransaction_PhoneEnrichment(t *testing.T) {
	tests := []struct {
		name       string
		phone      string
		phoneErr   error
		wantWrites int
		wantPhone  string
	}{
		{name: "absent", phone: "", wantWrites: 0, wantPhone: "600111222"},
		{name: "same after normalizing", phone: "600 111 222", wantWrites: 0, wantPhone: "600111222"},
		{name: "different", phone: "+34 (600) 999-888", wantWrites: 1, wantPhone: "+34600999888"},
		{name: "store failure is tolerated", phone: "611000000", phoneErr: errors.New("db down"), wantWrites: 1, wantPhone: "600111222"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := linkedUser("123")
			users := newFakeUserRepository(user)
			users.phoneErr = tt.phoneErr
			txns := &fakeTransactionRepository{}
			uc := NewIngestTransactionUseCase(NewUserResolver(users), txns, nil)

			input := lunchPayload()
			input.Phone = tt.phone
			if _, err := uc.Execute(context.Background(), input); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if users.phoneWrites != tt.wantWrites {
				t.Errorf("expected %d phone writes, got %d", tt.wantWrites, users.phoneWrites)
			}
			if user.Phone != tt.wantPhone {
				t.Errorf("expected phone %s, got %s", tt.wantPhone, user.Phone)
			}
			if len(txns.created) != 1 {
				t.Error("expected the transaction to be stored")
			}
		})
	}
}

func TestIngestTransaction_AuditFailureIsNotFatal(t *testing.T) {
	txns := &fakeTransactionRepository{}
	audit := &fakeAuditRepository{err: errors.New("db down")}
	uc := NewIngestTransactionUseCase(NewUserResolver(newFakeUserRepository(linkedUser("123"))), txns, audit)

	if _, err := uc.Execute(context.Background(), lunchPayload()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns.created) != 1 {
		t.Error("expected the transaction to be stored")
	}
}

func asientoPayload() IngestAsientoInput {
	return IngestAsientoInput{
		ChatID:        "123",
		Date:          "2024-05-01",
		Description:   "  Alquiler mayo ",
		MovementType:  "gasto",
		CategoryCode:  "GAS-001",
		Amount:        amount("750"),
		SourceAccount: " Banco ",
	}
}

func newIngestAsiento(users *fakeUserRepository, repo *fakeAsientoRepository, audit *fakeAuditRepository) *IngestAsientoUseCase {
	return NewIngestAsientoUseCase(NewUserResolver(users), asiento.NewValidator(fakeCatalogRepository{}), repo, audit)
}

func TestIngestAsiento(t *testing.T) {
	user := linkedUser("123")
	other := linkedUser("")

	tests := []struct {
		name        string
		mutate      func(*IngestAsientoInput)
		wantErr     bool
		wantUser    uuid.UUID
		checkOutput func(*testing.T, *entity.Asiento)
	}{
		{
			name:     "defaults and trimming",
			mutate:   func(*IngestAsientoInput) {},
			wantUser: user.ID,
			checkOutput: func(t *testing.T, a *entity.Asiento) {
				if a.Description != "Alquiler mayo" || a.SourceAccount != "Banco" {
					t.Errorf("expected trimmed fields, got %q %q", a.Description, a.SourceAccount)
				}
				if a.Currency != entity.DefaultCurrency {
					t.Errorf("expected default currency, got %s", a.Currency)
				}
				if a.DataSource != entity.DataSourceN8N {
					t.Errorf("expected data source n8n, got %s", a.DataSource)
				}
				if !strings.HasPrefix(a.ID, "AS-") {
					t.Errorf("expected generated id, got %s", a.ID)
				}
			},
		},
		{
			name:     "explicit user id wins over chat id",
			mutate:   func(in *IngestAsientoInput) { in.UserID = other.ID.String() },
			wantUser: other.ID,
		},
		{
			name:     "caller supplied id",
			mutate:   func(in *IngestAsientoInput) { in.ID = "EXT-42" },
			wantUser: user.ID,
			checkOutput: func(t *testing.T, a *entity.Asiento) {
				if a.ID != "EXT-42" {
					t.Errorf("expected id EXT-42, got %s", a.ID)
				}
			},
		},
		{
			name:    "movement type mismatch",
			mutate:  func(in *IngestAsientoInput) { in.MovementType = "ingreso" },
			wantErr: true,
		},
		{
			name:    "lowercase currency",
			mutate:  func(in *IngestAsientoInput) { in.Currency = "eur" },
			wantErr: true,
		},
		{
			name:    "missing amount",
			mutate:  func(in *IngestAsientoInput) { in.Amount = nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAsientoRepository{}
			audit := &fakeAuditRepository{}
			uc := newIngestAsiento(newFakeUserRepository(user, other), repo, audit)

			input := asientoPayload()
			tt.mutate(&input)
			out, err := uc.Execute(context.Background(), input)

			if tt.wantErr {
				var asiErr *domainerror.AsientoError
				if !errors.As(err, &asiErr) {
					t.Fatalf("expected AsientoError, got %v", err)
				}
				if len(repo.created) != 0 || len(audit.logs) != 0 {
					t.Error("expected no writes on validation failure")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.UserID != tt.wantUser || out.Asiento.UserID != tt.wantUser {
				t.Errorf("expected owner %s, got %s", tt.wantUser, out.Asiento.UserID)
			}
			if len(audit.logs) != 1 || audit.logs[0].Details["id_asiento"] != out.AsientoID {
				t.Errorf("expected audit log referencing %s", out.AsientoID)
			}
			if tt.checkOutput != nil {
				tt.checkOutput(t, out.Asiento)
			}
		})
	}
}

func TestIngestAsiento_UserResolution(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*IngestAsientoInput)
		wantCode domainerror.WebhookErrorCode
		wantMsg  string
	}{
		{
			name:     "missing chat id",
			mutate:   func(in *IngestAsientoInput) { in.ChatID = "" },
			wantCode: domainerror.ErrCodeInvalidWebhookPayload,
			wantMsg:  "chat_id es requerido",
		},
		{
			name:     "unknown chat id",
			mutate:   func(in *IngestAsientoInput) { in.ChatID = "999" },
			wantCode: domainerror.ErrCodeUnregisteredUser,
			wantMsg:  "no registrado",
		},
		{
			name:     "unknown user id",
			mutate:   func(in *IngestAsientoInput) { in.UserID = "00000000-0000-0000-0000-000000000001" },
			wantCode: domainerror.ErrCodeWebhookUserNotFound,
			wantMsg:  "Usuario con user_id 00000000-0000-0000-0000-000000000001 no encontrado",
		},
		{
			name:     "malformed user id",
			mutate:   func(in *IngestAsientoInput) { in.UserID = "abc" },
			wantCode: domainerror.ErrCodeWebhookUserNotFound,
			wantMsg:  "Usuario con user_id abc no encontrado",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAsientoRepository{}
			uc := newIngestAsiento(newFakeUserRepository(linkedUser("123")), repo, &fakeAuditRepository{})

			input := asientoPayload()
			tt.mutate(&input)
			_, err := uc.Execute(context.Background(), input)
			if code := webhookErrorCode(t, err); code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, code)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Error())
			}
			if len(repo.created) != 0 {
				t.Error("expected no entry to be stored")
			}
		})
	}
}

func TestQueryTransactions(t *testing.T) {
	user := linkedUser("123")
	txns := &fakeTransactionRepository{created: []*entity.Transaction{
		{UserID: user.ID, Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(1000)},
		{UserID: user.ID, Type: entity.TransactionTypeExpense, Amount: decimal.NewFromInt(300)},
		{UserID: user.ID, Type: entity.TransactionTypeSavings, Amount: decimal.NewFromInt(100)},
		{UserID: user.ID, Type: entity.TransactionTypeInvestment, Amount: decimal.NewFromInt(50)},
		{UserID: uuid.New(), Type: entity.TransactionTypeIncome, Amount: decimal.NewFromInt(9999)},
	}}
	uc := NewQueryTransactionsUseCase(NewUserResolver(newFakeUserRepository(user)), txns)

	t.Run("open range", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), QueryTransactionsInput{ChatID: "123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.From != OpenBound || out.To != OpenBound {
			t.Errorf("expected open bounds, got %s..%s", out.From, out.To)
		}
		if out.Summary.Count != 4 || len(out.Transactions) != 4 {
			t.Errorf("expected 4 transactions, got %d", out.Summary.Count)
		}
		checks := map[string]struct{ got, want decimal.Decimal }{
			"total":       {out.Summary.Total, decimal.NewFromInt(1450)},
			"ingresos":    {out.Summary.Income, decimal.NewFromInt(1000)},
			"gastos":      {out.Summary.Expense, decimal.NewFromInt(300)},
			"ahorros":     {out.Summary.Savings, decimal.NewFromInt(100)},
			"inversiones": {out.Summary.Investment, decimal.NewFromInt(50)},
			"balance":     {out.Summary.Balance, decimal.NewFromInt(700)},
		}
		for name, c := range checks {
			if !c.got.Equal(c.want) {
				t.Errorf("%s: expected %s, got %s", name, c.want, c.got)
			}
		}
	})

	t.Run("bounded range and type", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), QueryTransactionsInput{
			ChatID: "123", DateFrom: "2024-01-01", DateTo: "2024-01-31", Type: "gasto",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.From != "2024-01-01" || out.To != "2024-01-31" {
			t.Errorf("unexpected bounds %s..%s", out.From, out.To)
		}
		f := txns.lastFilter
		if f.StartDate == nil || f.EndDate == nil || f.Type == nil || *f.Type != entity.TransactionTypeExpense {
			t.Errorf("expected filter to carry bounds and type, got %+v", f)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, input := range []QueryTransactionsInput{
			{},
			{ChatID: "123", DateFrom: "01/01/2024"},
			{ChatID: "123", Type: "otro"},
		} {
			_, err := uc.Execute(context.Background(), input)
			if code := webhookErrorCode(t, err); code != domainerror.ErrCodeInvalidWebhookPayload {
				t.Errorf("expected invalid payload for %+v, got %s", input, code)
			}
		}
	})

	t.Run("unregistered", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), QueryTransactionsInput{ChatID: "nope"})
		if code := webhookErrorCode(t, err); code != domainerror.ErrCodeUnregisteredUser {
			t.Errorf("expected unregistered user, got %s", code)
		}
	})
}
