// Package asiento contains the accounting entry use cases.
package asiento

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Column widths of the asientos table.
const (
	maxIDLength          = 64
	maxDescriptionLength = 255
	maxAccountLength     = 100
	maxDataSourceLength  = 20
)

// Draft is an accounting entry as submitted by a caller, before validation.
type Draft struct {
	ID                 string
	Date               string
	Description        string
	MovementType       string
	CategoryCode       string
	Amount             decimal.Decimal
	Currency           string
	SourceAccount      string
	DestinationAccount *string
	BalanceAfter       *decimal.Decimal
	Reference          *string
	DataSource         entity.DataSource
}

// Validator checks drafts against the field rules and the accounting catalog.
type Validator struct {
	catalogRepo adapter.AccountingCatalogRepository
}

// NewValidator creates a new Validator instance.
func NewValidator(catalogRepo adapter.AccountingCatalogRepository) *Validator {
	return &Validator{
		catalogRepo: catalogRepo,
	}
}

// Build validates the draft and returns the entry it describes, owned by userID.
// Nothing is persisted.
func (v *Validator) Build(ctx context.Context, userID uuid.UUID, draft Draft) (*entity.Asiento, error) {
	draft = trimDraft(draft)

	var missing []string
	if draft.Date == "" {
		missing = append(missing, "fecha")
	}
	if draft.Description == "" {
		missing = append(missing, "descripcion")
	}
	if draft.MovementType == "" {
		missing = append(missing, "tipo_movimiento")
	}
	if draft.CategoryCode == "" {
		missing = append(missing, "categoria_contable")
	}
	if draft.SourceAccount == "" {
		missing = append(missing, "cuenta_origen")
	}
	if len(missing) > 0 {
		return nil, domainerror.NewAsientoError(
			domainerror.ErrCodeMissingAsientoFields,
			"Campos requeridos faltantes: "+strings.Join(missing, ", "),
			nil,
		)
	}

	if err := checkLengths(draft); err != nil {
		return nil, err
	}

	date, err := valueobject.ParseDate(draft.Date)
	if err != nil {
		return nil, domainerror.NewAsientoError(
			domainerror.ErrCodeInvalidAsientoDate,
			"fecha debe tener formato YYYY-MM-DD",
			errors.Join(domainerror.ErrInvalidAsientoDate, err),
		)
	}

	movementType, err := ParseMovementType(draft.MovementType)
	if err != nil {
		return nil, err
	}

	amount, ok := valueobject.NormalizeAmount(draft.Amount)
	if !ok {
		return nil, domainerror.NewAsientoError(
			domainerror.ErrCodeInvalidAsientoAmount,
			"monto debe ser mayor que 0",
			domainerror.ErrInvalidAsientoAmount,
		)
	}

	if draft.Currency != "" && !currencyRegex.MatchString(draft.Currency) {
		return nil, domainerror.NewAsientoError(
			domainerror.ErrCodeInvalidCurrency,
			"moneda debe ser un código ISO de 3 letras mayúsculas",
			domainerror.ErrInvalidCurrency,
		)
	}

	if err := v.checkCategory(ctx, draft.CategoryCode, movementType); err != nil {
		return nil, err
	}

	asiento := entity.NewAsiento(
		draft.ID,
		userID,
		date,
		draft.Description,
		movementType,
		draft.CategoryCode,
		amount,
		draft.Currency,
		draft.SourceAccount,
		draft.DataSource,
	)
	asiento.DestinationAccount = draft.DestinationAccount
	asiento.BalanceAfter = draft.BalanceAfter
	asiento.Reference = draft.Reference
	return asiento, nil
}

// checkLengths rejects fields wider than their column.
func checkLengths(draft Draft) error {
	limits := []struct {
		field string
		value string
		max   int
	}{
		{"id_asiento", draft.ID, maxIDLength},
		{"descripcion", draft.Description, maxDescriptionLength},
		{"cuenta_origen", draft.SourceAccount, maxAccountLength},
		{"cuenta_destino", deref(draft.DestinationAccount), maxAccountLength},
		{"referencia", deref(draft.Reference), maxAccountLength},
		{"fuente_datos", string(draft.DataSource), maxDataSourceLength},
	}
	for _, l := range limits {
		if utf8.RuneCountInString(l.value) > l.max {
			return domainerror.NewAsientoError(
				domainerror.ErrCodeAsientoFieldTooLong,
				fmt.Sprintf("%s no puede superar %d caracteres", l.field, l.max),
				domainerror.ErrAsientoFieldTooLong,
			)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateError maps a store failure on insert to the caller-facing error.
// A taken id is a validation failure, anything else stays internal.
func CreateError(id string, err error) error {
	if errors.Is(err, domainerror.ErrDuplicateAsientoID) {
		return domainerror.NewAsientoError(
			domainerror.ErrCodeDuplicateAsientoID,
			fmt.Sprintf("Ya existe un asiento con id_asiento %s", id),
			err,
		)
	}
	return fmt.Errorf("failed to create asiento: %w", err)
}

// checkCategory requires an active catalog row declaring the same movement type.
func (v *Validator) checkCategory(ctx context.Context, code string, movementType entity.MovementType) error {
	category, err := v.catalogRepo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, domainerror.ErrAccountingCategoryNotFound) {
		return fmt.Errorf("failed to find accounting category: %w", err)
	}
	if err != nil || !category.Active {
		return domainerror.NewAsientoError(
			domainerror.ErrCodeAccountingCategoryNotFound,
			fmt.Sprintf("Categoría contable %s no existe o está inactiva", code),
			domainerror.ErrAccountingCategoryNotFound,
		)
	}
	if category.MovementType != movementType {
		return domainerror.NewAsientoError(
			domainerror.ErrCodeMovementTypeMismatch,
			fmt.Sprintf("La categoría %s es de tipo %s, no %s", code, category.MovementType, movementType),
			domainerror.ErrMovementTypeMismatch,
		)
	}
	return nil
}

// ParseMovementType validates a movement type token.
func ParseMovementType(raw string) (entity.MovementType, error) {
	movementType := entity.MovementType(strings.TrimSpace(raw))
	if !movementType.IsValid() {
		return "", domainerror.NewAsientoError(
			domainerror.ErrCodeInvalidMovementType,
			"tipo_movimiento debe ser: ingreso, gasto u otro",
			domainerror.ErrInvalidMovementType,
		)
	}
	return movementType, nil
}

func trimDraft(d Draft) Draft {
	d.ID = strings.TrimSpace(d.ID)
	d.Date = strings.TrimSpace(d.Date)
	d.Description = strings.TrimSpace(d.Description)
	d.MovementType = strings.TrimSpace(d.MovementType)
	d.CategoryCode = strings.TrimSpace(d.CategoryCode)
	d.Currency = strings.TrimSpace(d.Currency)
	d.SourceAccount = strings.TrimSpace(d.SourceAccount)
	d.DestinationAccount = trimOptional(d.DestinationAccount)
	d.Reference = trimOptional(d.Reference)
	return d
}

// trimOptional turns blank optional strings into nil.
func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
