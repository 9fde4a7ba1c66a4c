package aggregation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// AsientoStats holds the global totals of a set of accounting entries.
// Entries of type "otro" are counted and summed apart and never affect the balance.
type AsientoStats struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	TotalOther   decimal.Decimal
	Balance      decimal.Decimal
	IncomeCount  int
	ExpenseCount int
	OtherCount   int
	Count        int
}

// CategoryTotal is the sum of the entries sharing one category code.
type CategoryTotal struct {
	Code         string
	Name         string
	MovementType entity.MovementType
	Total        decimal.Decimal
	Count        int
}

// MonthTotal is the income and expense of the entries dated in one period.
type MonthTotal struct {
	Period  string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
	Count   int
}

// CatalogNames maps category codes to display names.
type CatalogNames map[string]string

// NewCatalogNames indexes a catalog by code.
func NewCatalogNames(categories []*entity.AccountingCategory) CatalogNames {
	names := make(CatalogNames, len(categories))
	for _, c := range categories {
		if c != nil {
			names[c.Code] = c.Name
		}
	}
	return names
}

// Name returns the display name for code, or code itself when it is unknown.
func (c CatalogNames) Name(code string) string {
	if name, ok := c[code]; ok && name != "" {
		return name
	}
	return code
}

// ComputeAsientoStats sums entries per movement type.
func ComputeAsientoStats(asientos []*entity.Asiento) AsientoStats {
	stats := AsientoStats{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalOther:   decimal.Zero,
	}

	for _, a := range asientos {
		if a == nil {
			continue
		}
		stats.Count++
		switch a.MovementType {
		case entity.MovementTypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(a.Amount)
			stats.IncomeCount++
		case entity.MovementTypeExpense:
			stats.TotalExpense = stats.TotalExpense.Add(a.Amount)
			stats.ExpenseCount++
		default:
			stats.TotalOther = stats.TotalOther.Add(a.Amount)
			stats.OtherCount++
		}
	}

	stats.Balance = stats.TotalIncome.Sub(stats.TotalExpense)
	return stats
}

// GroupByCategory partitions entries by category code, sorted by total descending.
// Groups with equal totals keep the order in which their code was first seen.
func GroupByCategory(asientos []*entity.Asiento, names CatalogNames) []CategoryTotal {
	index := make(map[string]int)
	groups := make([]CategoryTotal, 0)

	for _, a := range asientos {
		if a == nil {
			continue
		}
		i, ok := index[a.CategoryCode]
		if !ok {
			i = len(groups)
			index[a.CategoryCode] = i
			groups = append(groups, CategoryTotal{
				Code:         a.CategoryCode,
				Name:         names.Name(a.CategoryCode),
				MovementType: a.MovementType,
				Total:        decimal.Zero,
			})
		}
		groups[i].Total = groups[i].Total.Add(a.Amount)
		groups[i].Count++
	}

	sort.SliceStable(groups, func(x, y int) bool {
		return groups[x].Total.GreaterThan(groups[y].Total)
	})
	return groups
}

// GroupByMonth partitions entries by the YYYY-MM of their date, oldest first.
func GroupByMonth(asientos []*entity.Asiento) []MonthTotal {
	index := make(map[string]int)
	months := make([]MonthTotal, 0)

	for _, a := range asientos {
		if a == nil {
			continue
		}
		key := valueobject.PeriodOf(a.Date).String()
		i, ok := index[key]
		if !ok {
			i = len(months)
			index[key] = i
			months = append(months, MonthTotal{Period: key, Income: decimal.Zero, Expense: decimal.Zero})
		}
		switch a.MovementType {
		case entity.MovementTypeIncome:
			months[i].Income = months[i].Income.Add(a.Amount)
		case entity.MovementTypeExpense:
			months[i].Expense = months[i].Expense.Add(a.Amount)
		}
		months[i].Count++
	}

	for i := range months {
		months[i].Balance = months[i].Income.Sub(months[i].Expense)
	}

	// Zero-padded fixed-width keys sort chronologically as strings.
	sort.Slice(months, func(x, y int) bool {
		return months[x].Period < months[y].Period
	})
	return months
}
