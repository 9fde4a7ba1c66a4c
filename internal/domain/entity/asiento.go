package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType classifies an accounting entry.
type MovementType string

const (
	MovementTypeIncome  MovementType = "ingreso"
	MovementTypeExpense MovementType = "gasto"
	MovementTypeOther   MovementType = "otro"
)

// IsValid reports whether m is one of the known movement types.
func (m MovementType) IsValid() bool {
	return m == MovementTypeIncome || m == MovementTypeExpense || m == MovementTypeOther
}

// DataSource records which channel produced an accounting entry.
type DataSource string

const (
	DataSourceManual DataSource = "manual"
	DataSourceN8N    DataSource = "n8n"
)

// Asiento is a formal accounting entry. Its movement type must match the
// catalog type of its category code.
type Asiento struct {
	ID                 string
	UserID             uuid.UUID
	Date               time.Time
	Description        string
	MovementType       MovementType
	CategoryCode       string
	Amount             decimal.Decimal
	Currency           string
	SourceAccount      string
	DestinationAccount *string
	BalanceAfter       *decimal.Decimal
	Reference          *string
	DataSource         DataSource
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewAsiento creates a new Asiento. An empty id gets a generated one.
func NewAsiento(
	id string,
	userID uuid.UUID,
	date time.Time,
	description string,
	movementType MovementType,
	categoryCode string,
	amount decimal.Decimal,
	currency string,
	sourceAccount string,
	dataSource DataSource,
) *Asiento {
	now := time.Now().UTC()
	if id == "" {
		id = NewAsientoID()
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if dataSource == "" {
		dataSource = DataSourceManual
	}
	return &Asiento{
		ID:            id,
		UserID:        userID,
		Date:          date,
		Description:   description,
		MovementType:  movementType,
		CategoryCode:  categoryCode,
		Amount:        amount,
		Currency:      currency,
		SourceAccount: sourceAccount,
		DataSource:    dataSource,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewAsientoID returns a server-generated entry identifier.
func NewAsientoID() string {
	return "AS-" + uuid.NewString()
}

// IsOwnedBy reports whether the entry belongs to the given user.
func (a *Asiento) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}
