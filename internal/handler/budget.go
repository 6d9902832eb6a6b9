package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/oapi-codegen/nullable"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// PutBudgetRequest is the body of PUT /trips/{id}/budget.
type PutBudgetRequest struct {
	TotalAmount decimal.Decimal            `json:"totalAmount"`
	Currency    *string                    `json:"currency,omitempty"`
	Categories  map[string]decimal.Decimal `json:"categories,omitempty"`
}

// GetTripBudget handles GET /trips/{id}/budget.
func (s *Server) GetTripBudget(w http.ResponseWriter, r *http.Request) {
	getByID(s, w, r, "budget", s.store.GetBudgetByTrip)
}

// PutTripBudget handles PUT /trips/{id}/budget: it creates the trip's budget
// (201) or replaces the supplied fields of the existing one (200).
func (s *Server) PutTripBudget(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}
	var req PutBudgetRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}

	existing, err := s.store.GetBudgetByTrip(r.Context(), tripID)
	if errors.Is(err, domain.ErrNotFound) {
		in := domain.NewBudget{
			TripID:      tripID,
			TotalAmount: req.TotalAmount,
			Currency:    req.Currency,
			Categories:  req.Categories,
		}
		if err := in.Validate(); err != nil {
			s.writeStoreError(w, r, err, "budget")
			return
		}
		b, err := s.store.CreateBudget(r.Context(), in)
		if err != nil {
			s.writeStoreError(w, r, err, "budget")
			return
		}
		writeJSON(w, http.StatusCreated, b)
		return
	}
	if err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}

	p := domain.BudgetPatch{TotalAmount: &req.TotalAmount, Currency: req.Currency}
	if req.Categories != nil {
		p.Categories = &req.Categories
	}
	if err := p.Validate(); err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}
	b, err := s.store.UpdateBudget(r.Context(), existing.ID, p)
	if err != nil {
		s.writeStoreError(w, r, err, "budget")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// DeleteBudget handles DELETE /budgets/{id}.
func (s *Server) DeleteBudget(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "budget", s.store.DeleteBudget)
}

// --- expenses ---------------------------------------------------------------

// ExpenseResponse is an Expense with its date as a calendar date.
type ExpenseResponse struct {
	ID               int64               `json:"id"`
	TripID           int64               `json:"tripId"`
	BudgetID         *int64              `json:"budgetId"`
	Amount           decimal.Decimal     `json:"amount"`
	Currency         string              `json:"currency"`
	Category         string              `json:"category"`
	Description      *string             `json:"description"`
	Date             *openapi_types.Date `json:"date"`
	OriginalAmount   *decimal.Decimal    `json:"originalAmount"`
	OriginalCurrency *string             `json:"originalCurrency"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

// CreateExpenseRequest is the body of POST /expenses.
type CreateExpenseRequest struct {
	TripID           int64               `json:"tripId"`
	BudgetID         *int64              `json:"budgetId,omitempty"`
	Amount           decimal.Decimal     `json:"amount"`
	Currency         *string             `json:"currency,omitempty"`
	Category         string              `json:"category"`
	Description      *string             `json:"description,omitempty"`
	Date             *openapi_types.Date `json:"date,omitempty"`
	OriginalAmount   *decimal.Decimal    `json:"originalAmount,omitempty"`
	OriginalCurrency *string             `json:"originalCurrency,omitempty"`
}

// UpdateExpenseRequest is the body of PATCH /expenses/{id}. Nullable fields
// may be sent as null to clear them.
type UpdateExpenseRequest struct {
	BudgetID         nullable.Nullable[int64]              `json:"budgetId,omitempty"`
	Amount           *decimal.Decimal                      `json:"amount,omitempty"`
	Currency         *string                               `json:"currency,omitempty"`
	Category         *string                               `json:"category,omitempty"`
	Description      nullable.Nullable[string]             `json:"description,omitempty"`
	Date             nullable.Nullable[openapi_types.Date] `json:"date,omitempty"`
	OriginalAmount   nullable.Nullable[decimal.Decimal]    `json:"originalAmount,omitempty"`
	OriginalCurrency nullable.Nullable[string]             `json:"originalCurrency,omitempty"`
}

// ListExpenses handles GET /trips/{id}/expenses.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	expenses, err := s.store.GetExpenses(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	resp := make([]ExpenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = expenseToResponse(e)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	e, err := s.store.GetExpense(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(e))
}

// CreateExpense handles POST /expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	in := domain.NewExpense{
		TripID:           req.TripID,
		BudgetID:         req.BudgetID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Category:         req.Category,
		Description:      req.Description,
		Date:             dateTime(req.Date),
		OriginalAmount:   req.OriginalAmount,
		OriginalCurrency: req.OriginalCurrency,
	}
	if err := in.Validate(); err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	e, err := s.store.CreateExpense(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusCreated, expenseToResponse(e))
}

// UpdateExpense handles PATCH /expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	var req UpdateExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	p := domain.ExpensePatch{
		BudgetID:         req.BudgetID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Category:         req.Category,
		Description:      req.Description,
		Date:             nullableDate(req.Date),
		OriginalAmount:   req.OriginalAmount,
		OriginalCurrency: req.OriginalCurrency,
	}
	if err := p.Validate(); err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	e, err := s.store.UpdateExpense(r.Context(), id, p)
	if err != nil {
		s.writeStoreError(w, r, err, "expense")
		return
	}
	writeJSON(w, http.StatusOK, expenseToResponse(e))
}

// DeleteExpense handles DELETE /expenses/{id}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	deleteByID(s, w, r, "expense", s.store.DeleteExpense)
}

func expenseToResponse(e domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:               e.ID,
		TripID:           e.TripID,
		BudgetID:         e.BudgetID,
		Amount:           e.Amount,
		Currency:         e.Currency,
		Category:         e.Category,
		Description:      e.Description,
		Date:             datePtr(e.Date),
		OriginalAmount:   e.OriginalAmount,
		OriginalCurrency: e.OriginalCurrency,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// --- currency rates ---------------------------------------------------------

// ListCurrencyRates handles GET /currency-rates.
func (s *Server) ListCurrencyRates(w http.ResponseWriter, r *http.Request) {
	writeList(s, w, r, "currency rate", func() ([]domain.CurrencyRate, error) {
		return s.store.GetCurrencyRates(r.Context())
	})
}

// GetCurrencyRate handles GET /currency-rates/{base}/{target}.
func (s *Server) GetCurrencyRate(w http.ResponseWriter, r *http.Request) {
	base, err := pathText(r, "base")
	if err != nil {
		s.writeStoreError(w, r, err, "currency rate")
		return
	}
	target, err := pathText(r, "target")
	if err != nil {
		s.writeStoreError(w, r, err, "currency rate")
		return
	}
	rate, err := s.store.GetCurrencyRate(r.Context(), base, target)
	if err != nil {
		s.writeStoreError(w, r, err, "currency rate")
		return
	}
	writeJSON(w, http.StatusOK, rate)
}

// PutCurrencyRate handles PUT /currency-rates, upserting by currency pair.
func (s *Server) PutCurrencyRate(w http.ResponseWriter, r *http.Request) {
	var in domain.NewCurrencyRate
	if err := decodeValid(r, &in); err != nil {
		s.writeStoreError(w, r, err, "currency rate")
		return
	}
	rate, err := s.store.CreateOrUpdateCurrencyRate(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "currency rate")
		return
	}
	writeJSON(w, http.StatusOK, rate)
}
