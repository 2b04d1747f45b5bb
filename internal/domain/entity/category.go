// Package entity defines the core business entities for the domain layer.
package entity

import "strings"

// Category is the shared vocabulary used by transactions and scheduled payments.
type Category string

// Expense categories.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryBills         Category = "bills"
)

// Income categories.
const (
	CategorySalary     Category = "salary"
	CategoryFreelance  Category = "freelance"
	CategoryInvestment Category = "investment"
	CategoryGift       Category = "gift"
)

// CategoryOther is valid for both expenses and income.
const CategoryOther Category = "other"

var expenseCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryHealth,
	CategoryEducation,
	CategoryBills,
	CategoryOther,
}

var incomeCategories = []Category{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestment,
	CategoryGift,
	CategoryOther,
}

// categoryAliases maps Portuguese labels (accent-free) onto the canonical category.
var categoryAliases = map[string]Category{
	"alimentacao":    CategoryFood,
	"comida":         CategoryFood,
	"mercado":        CategoryFood,
	"restaurante":    CategoryFood,
	"transporte":     CategoryTransport,
	"combustivel":    CategoryTransport,
	"uber":           CategoryTransport,
	"lazer":          CategoryEntertainment,
	"entretenimento": CategoryEntertainment,
	"compras":        CategoryShopping,
	"saude":          CategoryHealth,
	"farmacia":       CategoryHealth,
	"educacao":       CategoryEducation,
	"contas":         CategoryBills,
	"conta":          CategoryBills,
	"boleto":         CategoryBills,
	"outros":         CategoryOther,
	"outro":          CategoryOther,
	"salario":        CategorySalary,
	"freela":         CategoryFreelance,
	"investimento":   CategoryInvestment,
	"investimentos":  CategoryInvestment,
	"presente":       CategoryGift,
}

// ExpenseCategories returns the categories accepted for expenses.
func ExpenseCategories() []Category {
	out := make([]Category, len(expenseCategories))
	copy(out, expenseCategories)
	return out
}

// IncomeCategories returns the categories accepted for income.
func IncomeCategories() []Category {
	out := make([]Category, len(incomeCategories))
	copy(out, incomeCategories)
	return out
}

// IsValidFor reports whether the category belongs to the vocabulary of the given transaction type.
func (c Category) IsValidFor(t TransactionType) bool {
	list := expenseCategories
	if t == TransactionTypeIncome {
		list = incomeCategories
	}
	for _, candidate := range list {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCategory normalizes a raw category label, accepting canonical names and Portuguese aliases.
func ParseCategory(raw string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return "", false
	}
	for _, c := range expenseCategories {
		if string(c) == key {
			return c, true
		}
	}
	for _, c := range incomeCategories {
		if string(c) == key {
			return c, true
		}
	}
	if c, ok := categoryAliases[key]; ok {
		return c, true
	}
	return "", false
}
