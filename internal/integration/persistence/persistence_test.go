package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/integration/persistence/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	if err := SeedReferenceData(context.Background(), db); err != nil {
		t.Fatalf("failed to seed: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := entity.NewUser(email, "", "hash")
	if err := NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSeedReferenceData_IsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if err := SeedReferenceData(ctx, db); err != nil {
		t.Fatalf("second seed failed: %v", err)
	}

	catalog, err := NewAccountingCatalogRepository(db).ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog) != len(entity.DefaultAccountingCatalog) {
		t.Errorf("expected %d catalog rows, got %d", len(entity.DefaultAccountingCatalog), len(catalog))
	}

	categories, err := NewCategoryRepository(db).List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(categories) != len(entity.DefaultCategories()) {
		t.Errorf("expected %d categories, got %d", len(entity.DefaultCategories()), len(categories))
	}
	for i := 1; i < len(categories); i++ {
		prev, cur := categories[i-1], categories[i]
		if prev.Type > cur.Type || (prev.Type == cur.Type && prev.Name > cur.Name) {
			t.Errorf("categories not ordered by type and name at %d: %s/%s before %s/%s",
				i, prev.Type, prev.Name, cur.Type, cur.Name)
		}
	}
}

func TestAccountingCatalogRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAccountingCatalogRepository(db)

	expense := entity.MovementTypeExpense
	rows, err := repo.ListActive(ctx, &expense)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) == 0 {
		t.Fatal("expected expense categories")
	}
	for _, row := range rows {
		if row.MovementType != entity.MovementTypeExpense {
			t.Errorf("expected only gasto rows, got %s (%s)", row.Code, row.MovementType)
		}
	}

	found, err := repo.FindByCode(ctx, "ING-001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Name != "Nómina" {
		t.Errorf("expected Nómina, got %s", found.Name)
	}

	if _, err := repo.FindByCode(ctx, "XXX-000"); !errors.Is(err, domainerror.ErrAccountingCategoryNotFound) {
		t.Errorf("expected ErrAccountingCategoryNotFound, got %v", err)
	}
}

func TestUserRepository_ChatAndPhone(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewUserRepository(db)

	user := createUser(t, db, "ana@example.com")
	chatID := "123456"
	user.TelegramChatID = chatID
	if err := repo.Update(ctx, user); err != nil {
		t.Fatalf("failed to update user: %v", err)
	}

	linked, err := repo.FindByTelegramChatID(ctx, chatID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if linked.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, linked.ID)
	}

	if _, err := repo.FindByTelegramChatID(ctx, "999"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := repo.FindByTelegramChatID(ctx, ""); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for blank chat id, got %v", err)
	}

	if err := repo.UpdatePhone(ctx, user.ID, "600111222"); err != nil {
		t.Fatalf("failed to update phone: %v", err)
	}
	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reloaded.Phone != "600111222" {
		t.Errorf("expected phone to be stored, got %q", reloaded.Phone)
	}

	if err := repo.UpdatePhone(ctx, uuid.New(), "1"); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	exists, err := repo.ExistsByEmail(ctx, "ana@example.com")
	if err != nil || !exists {
		t.Errorf("expected email to exist, got %v (err %v)", exists, err)
	}
}

func TestTransactionRepository_FindByFilter(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTransactionRepository(db)

	owner := createUser(t, db, "owner@example.com")
	other := createUser(t, db, "other@example.com")

	seed := []*entity.Transaction{
		entity.NewTransaction(owner.ID, entity.TransactionTypeIncome, decimal.NewFromInt(1500), "Nómina", "Salario", date("2024-01-31"), "", entity.OriginManual),
		entity.NewTransaction(owner.ID, entity.TransactionTypeExpense, decimal.NewFromInt(600), "Alquiler", "Vivienda", date("2024-01-05"), "", entity.OriginManual),
		entity.NewTransaction(owner.ID, entity.TransactionTypeExpense, decimal.NewFromInt(40), "Cena", "Ocio", date("2024-02-01"), "telegram", entity.OriginN8N),
		entity.NewTransaction(other.ID, entity.TransactionTypeExpense, decimal.NewFromInt(99), "Ajeno", "Ocio", date("2024-01-10"), "", entity.OriginManual),
	}
	for _, txn := range seed {
		if err := repo.Create(ctx, txn); err != nil {
			t.Fatalf("failed to create transaction: %v", err)
		}
	}

	start, end := date("2024-01-01"), date("2024-01-31")
	expense := entity.TransactionTypeExpense

	tests := []struct {
		name          string
		filter        adapter.TransactionFilter
		expectedDescs []string
	}{
		{
			name:          "all owner transactions newest first",
			filter:        adapter.TransactionFilter{UserID: owner.ID},
			expectedDescs: []string{"Cena", "Nómina", "Alquiler"},
		},
		{
			name:          "date range is inclusive",
			filter:        adapter.TransactionFilter{UserID: owner.ID, StartDate: &start, EndDate: &end},
			expectedDescs: []string{"Nómina", "Alquiler"},
		},
		{
			name:          "type filter",
			filter:        adapter.TransactionFilter{UserID: owner.ID, Type: &expense},
			expectedDescs: []string{"Cena", "Alquiler"},
		},
		{
			name:          "category filter",
			filter:        adapter.TransactionFilter{UserID: owner.ID, Category: "Vivienda"},
			expectedDescs: []string{"Alquiler"},
		},
		{
			name:          "limit and offset",
			filter:        adapter.TransactionFilter{UserID: owner.ID, Limit: 1, Offset: 1},
			expectedDescs: []string{"Nómina"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.FindByFilter(ctx, tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.expectedDescs) {
				t.Fatalf("expected %d transactions, got %d", len(tt.expectedDescs), len(got))
			}
			for i, txn := range got {
				if txn.Description != tt.expectedDescs[i] {
					t.Errorf("position %d: expected %s, got %s", i, tt.expectedDescs[i], txn.Description)
				}
				if txn.UserID != owner.ID {
					t.Errorf("transaction %s leaked from another user", txn.ID)
				}
			}
		})
	}

	dates, err := repo.ListDates(ctx, owner.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dates) != 3 {
		t.Errorf("expected 3 dates, got %d", len(dates))
	}

	if err := repo.Delete(ctx, seed[0].ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, seed[0].ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, seed[0].ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound on second delete, got %v", err)
	}
}

func TestAsientoRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAsientoRepository(db)
	user := createUser(t, db, "asientos@example.com")

	first := entity.NewAsiento("AS-EXT-1", user.ID, date("2024-03-02"), "Factura", entity.MovementTypeIncome, "ING-002", decimal.NewFromInt(250), "", "Banco", entity.DataSourceN8N)
	second := entity.NewAsiento("", user.ID, date("2024-03-10"), "Luz", entity.MovementTypeExpense, "GAS-002", decimal.NewFromInt(80), "", "Banco", "")
	for _, a := range []*entity.Asiento{first, second} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("failed to create asiento: %v", err)
		}
	}

	again := entity.NewAsiento("AS-EXT-1", user.ID, date("2024-03-05"), "Copia", entity.MovementTypeIncome, "ING-002", decimal.NewFromInt(1), "", "Banco", entity.DataSourceN8N)
	if err := repo.Create(ctx, again); !errors.Is(err, domainerror.ErrDuplicateAsientoID) {
		t.Errorf("expected ErrDuplicateAsientoID, got %v", err)
	}

	found, err := repo.FindByID(ctx, "AS-EXT-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Currency != entity.DefaultCurrency || found.DataSource != entity.DataSourceN8N {
		t.Errorf("unexpected defaults: currency %s, source %s", found.Currency, found.DataSource)
	}

	income := entity.MovementTypeIncome
	onlyIncome, err := repo.FindByFilter(ctx, adapter.AsientoFilter{UserID: user.ID, MovementType: &income})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(onlyIncome) != 1 || onlyIncome[0].ID != "AS-EXT-1" {
		t.Errorf("expected only the income entry, got %d rows", len(onlyIncome))
	}

	all, err := repo.FindByFilter(ctx, adapter.AsientoFilter{UserID: user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID {
		t.Errorf("expected newest entry first")
	}

	if err := repo.Delete(ctx, "missing"); !errors.Is(err, domainerror.ErrAsientoNotFound) {
		t.Errorf("expected ErrAsientoNotFound, got %v", err)
	}
}

func TestKPIRepository_UpsertReplacesSnapshot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewKPIRepository(db)
	user := createUser(t, db, "kpi@example.com")

	snapshot := func(income int64) *entity.KPISummary {
		return &entity.KPISummary{
			ID:          uuid.New(),
			UserID:      user.ID,
			Period:      "2024-01",
			TotalIncome: decimal.NewFromInt(income),
			Balance:     decimal.NewFromInt(income),
			ComputedAt:  time.Now().UTC(),
		}
	}

	first := snapshot(1000)
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	second := snapshot(2500)
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}

	var rows []model.KPISummaryModel
	db.Where("user_id = ?", user.ID).Find(&rows)
	if len(rows) != 1 {
		t.Fatalf("expected a single snapshot row, got %d", len(rows))
	}
	if !rows[0].TotalIncome.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("expected income 2500, got %s", rows[0].TotalIncome)
	}
	if second.ID != first.ID || second.ID != rows[0].ID {
		t.Errorf("expected the stored id %s on both snapshots, got %s and %s", rows[0].ID, first.ID, second.ID)
	}
}

func TestAdviceRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAdviceRepository(db)
	user := createUser(t, db, "advice@example.com")

	older := entity.NewAdvice(user.ID, "ahorro", "Ahorra más", entity.AdvicePriorityHigh, entity.AdviceAuthorAI)
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := entity.NewAdvice(user.ID, "", "Revisa tus suscripciones", "", entity.AdviceAuthorUser)
	for _, a := range []*entity.Advice{older, newer} {
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("failed to create advice: %v", err)
		}
	}

	if err := repo.MarkRead(ctx, older.ID); err != nil {
		t.Fatalf("failed to mark read: %v", err)
	}
	if err := repo.MarkRead(ctx, uuid.New()); !errors.Is(err, domainerror.ErrAdviceNotFound) {
		t.Errorf("expected ErrAdviceNotFound, got %v", err)
	}

	all, err := repo.FindByFilter(ctx, adapter.AdviceFilter{UserID: user.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 || all[0].ID != newer.ID {
		t.Fatalf("expected newest advice first")
	}

	unread := false
	pending, err := repo.FindByFilter(ctx, adapter.AdviceFilter{UserID: user.ID, Read: &unread})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != newer.ID {
		t.Errorf("expected only the unread advice")
	}
}

func TestAuditLogRepository(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewAuditLogRepository(db)
	user := createUser(t, db, "audit@example.com")

	log := entity.NewAuditLog(&user.ID, entity.AuditTransactionCreatedViaWebhook, map[string]interface{}{
		"tipo":   "gasto",
		"origen": "n8n",
	})
	if err := repo.Create(ctx, log); err != nil {
		t.Fatalf("failed to create audit log: %v", err)
	}

	logs, err := repo.FindByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 audit log, got %d", len(logs))
	}
	if logs[0].Details["origen"] != "n8n" {
		t.Errorf("expected details to round trip, got %v", logs[0].Details)
	}
}

func TestTokenRepository_StoresDigest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewTokenRepository(db)
	user := createUser(t, db, "tokens@example.com")

	if err := repo.SaveRefreshToken(ctx, "raw-token", user.ID, time.Now().UTC().Add(time.Hour)); err != nil {
		t.Fatalf("failed to save token: %v", err)
	}

	var stored model.RefreshTokenModel
	if err := db.First(&stored).Error; err != nil {
		t.Fatalf("failed to load token: %v", err)
	}
	if stored.TokenHash == "raw-token" || len(stored.TokenHash) != 64 {
		t.Errorf("expected a hex digest, got %q", stored.TokenHash)
	}

	valid, err := repo.IsRefreshTokenValid(ctx, "raw-token")
	if err != nil || !valid {
		t.Fatalf("expected token to be valid, got %v (err %v)", valid, err)
	}

	if err := repo.InvalidateRefreshToken(ctx, "raw-token"); err != nil {
		t.Fatalf("failed to invalidate: %v", err)
	}
	valid, err = repo.IsRefreshTokenValid(ctx, "raw-token")
	if err != nil || valid {
		t.Errorf("expected token to be invalid after logout, got %v (err %v)", valid, err)
	}
}

func TestEmailQueueRepository_PayloadAndPolling(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewEmailQueueRepository(db)

	due := entity.NewEmailJob(entity.TemplateWelcome, "ana@example.com", "Ana", "Bienvenido", map[string]interface{}{
		"user_name":     "Ana",
		"dashboard_url": "https://app.example.com",
	})
	due.ScheduledAt = time.Now().UTC().Add(-time.Hour)
	later := entity.NewEmailJob(entity.TemplateAccountCreated, "ana@example.com", "Ana", "Cuenta creada", nil)
	later.ScheduledAt = time.Now().UTC().Add(time.Hour)
	for _, job := range []*entity.EmailJob{due, later} {
		if err := repo.Create(ctx, job); err != nil {
			t.Fatalf("failed to queue job: %v", err)
		}
	}

	pending, err := repo.GetPendingJobs(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != due.ID {
		t.Fatalf("expected only the due job, got %d jobs", len(pending))
	}
	if pending[0].TemplateData["dashboard_url"] != "https://app.example.com" {
		t.Errorf("expected payload to round trip, got %v", pending[0].TemplateData)
	}

	stored, err := repo.GetByID(ctx, later.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.TemplateData == nil || len(stored.TemplateData) != 0 {
		t.Errorf("expected an empty payload, got %v", stored.TemplateData)
	}
	if stored.ProcessedAt != nil {
		t.Errorf("expected unprocessed job, got %v", stored.ProcessedAt)
	}

	due.MarkSent("re_123")
	if err := repo.Update(ctx, due); err != nil {
		t.Fatalf("failed to update job: %v", err)
	}
	sent, err := repo.GetByID(ctx, due.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent.Status != entity.EmailStatusSent || sent.ProcessedAt == nil {
		t.Errorf("expected sent job with processed_at, got %s %v", sent.Status, sent.ProcessedAt)
	}
}
