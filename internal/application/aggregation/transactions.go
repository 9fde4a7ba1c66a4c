package aggregation

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// ratioPlaces is the precision kept on percentages and ratios.
const ratioPlaces = 2

// TransactionTotals holds the per-kind sums of a transaction collection.
type TransactionTotals struct {
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Savings    decimal.Decimal
	Investment decimal.Decimal
	Transfer   decimal.Decimal
	Balance    decimal.Decimal
	Count      int
}

// SummarizeTransactions sums amounts per transaction kind. Balance is income minus expense.
func SummarizeTransactions(txns []*entity.Transaction) TransactionTotals {
	totals := TransactionTotals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Savings:    decimal.Zero,
		Investment: decimal.Zero,
		Transfer:   decimal.Zero,
	}

	for _, t := range txns {
		if t == nil {
			continue
		}
		totals.Count++
		switch t.Type {
		case entity.TransactionTypeIncome:
			totals.Income = totals.Income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			totals.Expense = totals.Expense.Add(t.Amount)
		case entity.TransactionTypeSavings:
			totals.Savings = totals.Savings.Add(t.Amount)
		case entity.TransactionTypeInvestment:
			totals.Investment = totals.Investment.Add(t.Amount)
		case entity.TransactionTypeTransfer:
			totals.Transfer = totals.Transfer.Add(t.Amount)
		}
	}

	totals.Balance = totals.Income.Sub(totals.Expense)
	return totals
}

// Percentage returns part/whole*100 rounded to two places, or zero when whole is not positive.
func Percentage(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(ratioPlaces)
}

// ComputeKPISummary derives the KPI snapshot of a period from its transactions.
//
// Liquidity is the period balance. Debt ratio is expense over income and net
// margin is balance over income, both as percentages and zero without income.
func ComputeKPISummary(userID uuid.UUID, period string, txns []*entity.Transaction, now time.Time) *entity.KPISummary {
	totals := SummarizeTransactions(txns)

	return &entity.KPISummary{
		ID:               uuid.New(),
		UserID:           userID,
		Period:           period,
		TotalIncome:      totals.Income,
		TotalExpense:     totals.Expense,
		TotalSavings:     totals.Savings,
		TotalInvestment:  totals.Investment,
		Balance:          totals.Balance,
		SavingsPercent:   Percentage(totals.Savings, totals.Income),
		Liquidity:        totals.Balance,
		DebtRatio:        Percentage(totals.Expense, totals.Income),
		NetMargin:        Percentage(totals.Balance, totals.Income),
		TransactionCount: totals.Count,
		ComputedAt:       now.UTC(),
	}
}

// LabeledAmount is a label with its summed amount.
type LabeledAmount struct {
	Label  string
	Amount decimal.Decimal
}

// noDescription labels uncategorized expenses without a description.
const noDescription = "Sin descripción"

// TopExpenses groups expenses by category, falling back to description, and
// returns the n largest groups by summed amount. Equal totals keep encounter order.
func TopExpenses(txns []*entity.Transaction, n int) []LabeledAmount {
	index := make(map[string]int)
	groups := make([]LabeledAmount, 0)

	for _, t := range txns {
		if t == nil || t.Type != entity.TransactionTypeExpense {
			continue
		}
		label := expenseLabel(t)
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, LabeledAmount{Label: label, Amount: decimal.Zero})
		}
		groups[i].Amount = groups[i].Amount.Add(t.Amount)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Amount.GreaterThan(groups[b].Amount)
	})

	if n >= 0 && len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

func expenseLabel(t *entity.Transaction) string {
	if c := strings.TrimSpace(t.Category); c != "" {
		return c
	}
	if d := strings.TrimSpace(t.Description); d != "" {
		return d
	}
	return noDescription
}

// MostRecent returns up to n transactions ordered by date then creation time, newest first.
// The input slice is not reordered.
func MostRecent(txns []*entity.Transaction, n int) []*entity.Transaction {
	sorted := make([]*entity.Transaction, 0, len(txns))
	for _, t := range txns {
		if t != nil {
			sorted = append(sorted, t)
		}
	}

	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].Date.Equal(sorted[b].Date) {
			return sorted[a].Date.After(sorted[b].Date)
		}
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})

	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
