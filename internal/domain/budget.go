package domain

import (
	"time"

	"github.com/oapi-codegen/nullable"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is stamped on budgets and expenses created without a currency.
const DefaultCurrency = "USD"

// Budget is the spending plan for a trip. Categories breaks TotalAmount down
// by spending category (e.g. "lodging", "food").
type Budget struct {
	ID          int64                      `json:"id"`
	TripID      int64                      `json:"tripId"`
	TotalAmount decimal.Decimal            `json:"totalAmount"`
	Currency    string                     `json:"currency"`
	Categories  map[string]decimal.Decimal `json:"categories"`
	CreatedAt   time.Time                  `json:"createdAt"`
	UpdatedAt   time.Time                  `json:"updatedAt"`
}

// NewBudget is the insert payload for a Budget. A nil Currency becomes
// DefaultCurrency when the budget is stored.
type NewBudget struct {
	TripID      int64                      `json:"tripId"`
	TotalAmount decimal.Decimal            `json:"totalAmount"`
	Currency    *string                    `json:"currency,omitempty"`
	Categories  map[string]decimal.Decimal `json:"categories,omitempty"`
}

func (b NewBudget) Validate() error {
	if err := requireID("tripId", b.TripID); err != nil {
		return err
	}
	if b.TotalAmount.IsNegative() {
		return invalid("totalAmount must not be negative")
	}
	if err := optionalCurrency("currency", b.Currency); err != nil {
		return err
	}
	return validCategories(b.Categories)
}

// BudgetPatch is a partial update of a Budget.
type BudgetPatch struct {
	TotalAmount *decimal.Decimal            `json:"totalAmount,omitempty"`
	Currency    *string                     `json:"currency,omitempty"`
	Categories  *map[string]decimal.Decimal `json:"categories,omitempty"`
}

func (p BudgetPatch) Validate() error {
	if p.TotalAmount != nil && p.TotalAmount.IsNegative() {
		return invalid("totalAmount must not be negative")
	}
	if err := optionalCurrency("currency", p.Currency); err != nil {
		return err
	}
	if p.Categories != nil {
		return validCategories(*p.Categories)
	}
	return nil
}

func validCategories(cats map[string]decimal.Decimal) error {
	for name, amt := range cats {
		if amt.IsNegative() {
			return invalid("categories[%s] must not be negative", name)
		}
	}
	return nil
}

// Expense is money spent on a trip, optionally counted against a budget.
// When the expense was converted, OriginalAmount and OriginalCurrency hold the
// amount as it was paid.
type Expense struct {
	ID               int64            `json:"id"`
	TripID           int64            `json:"tripId"`
	BudgetID         *int64           `json:"budgetId"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         string           `json:"currency"`
	Category         string           `json:"category"`
	Description      *string          `json:"description"`
	Date             *time.Time       `json:"date"`
	OriginalAmount   *decimal.Decimal `json:"originalAmount"`
	OriginalCurrency *string          `json:"originalCurrency"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// NewExpense is the insert payload for an Expense.
type NewExpense struct {
	TripID           int64            `json:"tripId"`
	BudgetID         *int64           `json:"budgetId,omitempty"`
	Amount           decimal.Decimal  `json:"amount"`
	Currency         *string          `json:"currency,omitempty"`
	Category         string           `json:"category"`
	Description      *string          `json:"description,omitempty"`
	Date             *time.Time       `json:"date,omitempty"`
	OriginalAmount   *decimal.Decimal `json:"originalAmount,omitempty"`
	OriginalCurrency *string          `json:"originalCurrency,omitempty"`
}

func (e NewExpense) Validate() error {
	if err := requireID("tripId", e.TripID); err != nil {
		return err
	}
	if err := optionalID("budgetId", e.BudgetID); err != nil {
		return err
	}
	if !e.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	if err := requireText("category", e.Category); err != nil {
		return err
	}
	if err := optionalCurrency("currency", e.Currency); err != nil {
		return err
	}
	if (e.OriginalAmount == nil) != (e.OriginalCurrency == nil) {
		return invalid("originalAmount and originalCurrency must be supplied together")
	}
	return optionalCurrency("originalCurrency", e.OriginalCurrency)
}

// ExpensePatch is a partial update of an Expense.
type ExpensePatch struct {
	BudgetID         nullable.Nullable[int64]           `json:"budgetId,omitempty"`
	Amount           *decimal.Decimal                   `json:"amount,omitempty"`
	Currency         *string                            `json:"currency,omitempty"`
	Category         *string                            `json:"category,omitempty"`
	Description      nullable.Nullable[string]          `json:"description,omitempty"`
	Date             nullable.Nullable[time.Time]       `json:"date,omitempty"`
	OriginalAmount   nullable.Nullable[decimal.Decimal] `json:"originalAmount,omitempty"`
	OriginalCurrency nullable.Nullable[string]          `json:"originalCurrency,omitempty"`
}

func (p ExpensePatch) Validate() error {
	if err := optionalID("budgetId", valueOf(p.BudgetID)); err != nil {
		return err
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return invalid("amount must be positive")
	}
	if p.Category != nil {
		if err := requireText("category", *p.Category); err != nil {
			return err
		}
	}
	if err := optionalCurrency("currency", p.Currency); err != nil {
		return err
	}
	return optionalCurrency("originalCurrency", valueOf(p.OriginalCurrency))
}

// CurrencyRate is the conversion rate from BaseCurrency to TargetCurrency.
// The (BaseCurrency, TargetCurrency) pair identifies the rate.
type CurrencyRate struct {
	ID             int64           `json:"id"`
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
	LastUpdated    time.Time       `json:"lastUpdated"`
}

// NewCurrencyRate is the upsert payload for a CurrencyRate.
type NewCurrencyRate struct {
	BaseCurrency   string          `json:"baseCurrency"`
	TargetCurrency string          `json:"targetCurrency"`
	Rate           decimal.Decimal `json:"rate"`
}

func (r NewCurrencyRate) Validate() error {
	if !validCurrency(r.BaseCurrency) || !validCurrency(r.TargetCurrency) {
		return invalid("baseCurrency and targetCurrency must be 3-letter uppercase currency codes")
	}
	if !r.Rate.IsPositive() {
		return invalid("rate must be positive")
	}
	return nil
}
