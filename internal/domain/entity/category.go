package entity

import (
	"github.com/google/uuid"
)

// Category is a transaction category offered to users when recording movements.
type Category struct {
	ID          uuid.UUID
	Name        string
	Type        TransactionType
	Group       string
	Description string
}

// AccountingCategory is a row of the read-only accounting catalog that asientos reference by code.
type AccountingCategory struct {
	Code         string
	Name         string
	MovementType MovementType
	Description  string
	Active       bool
}

// DefaultAccountingCatalog is the catalog seeded at start up.
var DefaultAccountingCatalog = []AccountingCategory{
	{Code: "ING-001", Name: "Nómina", MovementType: MovementTypeIncome, Description: "Salario y pagas extra", Active: true},
	{Code: "ING-002", Name: "Ventas", MovementType: MovementTypeIncome, Description: "Ingresos por ventas de bienes o servicios", Active: true},
	{Code: "ING-003", Name: "Intereses y dividendos", MovementType: MovementTypeIncome, Description: "Rendimientos financieros", Active: true},
	{Code: "ING-099", Name: "Otros ingresos", MovementType: MovementTypeIncome, Active: true},
	{Code: "GAS-001", Name: "Alquiler", MovementType: MovementTypeExpense, Description: "Vivienda u oficina", Active: true},
	{Code: "GAS-002", Name: "Suministros", MovementType: MovementTypeExpense, Description: "Luz, agua, gas e internet", Active: true},
	{Code: "GAS-003", Name: "Material de oficina", MovementType: MovementTypeExpense, Active: true},
	{Code: "GAS-004", Name: "Alimentación", MovementType: MovementTypeExpense, Active: true},
	{Code: "GAS-005", Name: "Transporte", MovementType: MovementTypeExpense, Active: true},
	{Code: "GAS-006", Name: "Impuestos y tasas", MovementType: MovementTypeExpense, Active: true},
	{Code: "GAS-099", Name: "Otros gastos", MovementType: MovementTypeExpense, Active: true},
	{Code: "OTR-001", Name: "Traspaso entre cuentas", MovementType: MovementTypeOther, Active: true},
	{Code: "OTR-002", Name: "Ajuste de saldo", MovementType: MovementTypeOther, Active: true},
}

// defaultCategoryNamespace keeps seeded category ids stable across restarts.
var defaultCategoryNamespace = uuid.MustParse("6f1c9a52-3a4e-4f49-9b7e-2d1f0c8a7e11")

// DefaultCategories returns the transaction categories seeded at start up.
func DefaultCategories() []Category {
	seed := []struct {
		name, group string
		kind        TransactionType
	}{
		{"Salario", "Trabajo", TransactionTypeIncome},
		{"Freelance", "Trabajo", TransactionTypeIncome},
		{"Otros ingresos", "Varios", TransactionTypeIncome},
		{"Alimentación", "Hogar", TransactionTypeExpense},
		{"Vivienda", "Hogar", TransactionTypeExpense},
		{"Transporte", "Movilidad", TransactionTypeExpense},
		{"Ocio", "Personal", TransactionTypeExpense},
		{"Salud", "Personal", TransactionTypeExpense},
		{"Fondo de emergencia", "Ahorro", TransactionTypeSavings},
		{"Fondos indexados", "Inversión", TransactionTypeInvestment},
		{"Acciones", "Inversión", TransactionTypeInvestment},
	}

	categories := make([]Category, 0, len(seed))
	for _, s := range seed {
		categories = append(categories, Category{
			ID:    uuid.NewSHA1(defaultCategoryNamespace, []byte(string(s.kind)+"/"+s.name)),
			Name:  s.name,
			Type:  s.kind,
			Group: s.group,
		})
	}
	return categories
}
