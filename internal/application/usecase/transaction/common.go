// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

const (
	// DefaultListLimit applies when the caller does not ask for a page size.
	DefaultListLimit = 100
	// MaxListLimit caps the page size of a listing.
	MaxListLimit = 500
)

func parseTransactionType(raw string) (entity.TransactionType, error) {
	txnType := entity.TransactionType(strings.TrimSpace(raw))
	if !txnType.IsValid() {
		return "", domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"tipo debe ser: ingreso, gasto, inversion, ahorro o transferencia",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return txnType, nil
}

// validateAmount returns the amount rounded to cents, rejecting values that round to zero or less.
func validateAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	rounded, ok := valueobject.NormalizeAmount(amount)
	if !ok {
		return decimal.Zero, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"monto debe ser mayor que 0",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return rounded, nil
}

// parseTransactionDate treats a blank date as today.
func parseTransactionDate(raw string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	date, err := valueobject.ParseDate(raw)
	if err != nil {
		return time.Time{}, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"fecha debe tener formato YYYY-MM-DD",
			errors.Join(domainerror.ErrInvalidTransactionDate, err),
		)
	}
	return date, nil
}

// findOwned loads a transaction of the user. Transactions of other users are not found.
func findOwned(ctx context.Context, repo adapter.TransactionRepository, id, userID uuid.UUID) (*entity.Transaction, error) {
	transaction, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	if !transaction.IsOwnedBy(userID) {
		return nil, notFound()
	}
	return transaction, nil
}

func notFound() error {
	return domainerror.NewTransactionError(
		domainerror.ErrCodeTransactionNotFound,
		"Transacción no encontrada",
		domainerror.ErrTransactionNotFound,
	)
}
