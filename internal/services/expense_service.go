package services

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ExpenseService struct {
	store     store.ExpenseStore
	validator *ValidationHelper
}

// CreateExpenseRequest represents the expense creation payload
// @Description Expense creation request structure
type CreateExpenseRequest struct {
	Title    string          `json:"title" validate:"required" example:"Groceries"` // Expense title
	Amount   decimal.Decimal `json:"amount" example:"32.50"`                        // Expense amount
	Category string          `json:"category" example:"Food"`                       // Category, defaults to Other
	Date     string          `json:"date" example:"2026-08-29"`                     // Date YYYY-MM-DD, defaults to today
}

func NewExpenseService(expenses store.ExpenseStore) *ExpenseService {
	return &ExpenseService{
		store:     expenses,
		validator: NewValidationHelper(),
	}
}

// ListExpenses returns all expenses, newest first
// @Summary List expenses
// @Description Get all recorded expenses
// @Tags expenses
// @Produce json
// @Success 200 {array} models.Expense
// @Failure 500 {object} ErrorResponse
// @Router /expenses [get]
func (s *ExpenseService) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.List()
	if err != nil {
		log.Printf("[EXPENSE] Failed to list expenses: %v", err)
		SendErrorResponse(w, "Failed to fetch expenses", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expenses)
}

// CreateExpense records a new expense
// @Summary Create expense
// @Description Record an expense; category defaults to Other and date to today
// @Tags expenses
// @Accept json
// @Produce json
// @Param request body CreateExpenseRequest true "Expense request"
// @Success 200 {object} models.Expense
// @Failure 400 {object} ErrorResponse
// @Router /expenses [post]
func (s *ExpenseService) CreateExpense(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req CreateExpenseRequest
	if err := dec.Decode(&req); err != nil {
		log.Printf("[EXPENSE] Create failed - invalid request: %v", err)
		SendErrorResponse(w, "Invalid request", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if req.Title == "" || req.Amount.IsZero() {
		SendErrorResponse(w, "Missing title or amount", http.StatusBadRequest, nil)
		return
	}

	if err := s.validator.ValidateStruct(&req); err != nil {
		SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	if req.Category == "" {
		req.Category = "Other"
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	expense := models.Expense{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Amount:    req.Amount,
		Category:  req.Category,
		Date:      req.Date,
		CreatedAt: time.Now(),
	}

	if err := s.store.Add(expense); err != nil {
		log.Printf("[EXPENSE] Failed to store expense: %v", err)
		SendErrorResponse(w, "Failed to store expense", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[EXPENSE] Recorded %s (%s) in %s", expense.Title, expense.Amount, expense.Category)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(expense)
}

// DeleteExpense removes an expense by id
// @Summary Delete expense
// @Description Delete a recorded expense
// @Tags expenses
// @Produce json
// @Param expenseId path string true "Expense ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} ErrorResponse
// @Router /expenses/{expenseId} [delete]
func (s *ExpenseService) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "expenseId")

	if err := s.store.Delete(id); err != nil {
		if err == store.ErrExpenseNotFound {
			SendErrorResponse(w, "Not found", http.StatusNotFound, nil)
			return
		}
		log.Printf("[EXPENSE] Failed to delete expense %s: %v", id, err)
		SendErrorResponse(w, "Failed to delete expense", http.StatusInternalServerError, nil)
		return
	}

	log.Printf("[EXPENSE] Deleted expense %s", id)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// GetAnalytics returns current-month spending analytics
// @Summary Get analytics
// @Description Aggregate this month's spending by total and category
// @Tags analytics
// @Produce json
// @Success 200 {object} models.AnalyticsSummary
// @Failure 500 {object} ErrorResponse
// @Router /analytics [get]
func (s *ExpenseService) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.store.List()
	if err != nil {
		log.Printf("[ANALYTICS] Failed to list expenses: %v", err)
		SendErrorResponse(w, "Failed to fetch analytics", http.StatusInternalServerError, nil)
		return
	}

	summary := BuildAnalytics(expenses, time.Now())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// BuildAnalytics aggregates the expenses falling in now's calendar month:
// total spend, per-category totals, and a category distribution sorted by
// amount descending.
func BuildAnalytics(expenses []models.Expense, now time.Time) models.AnalyticsSummary {
	monthPrefix := now.Format("2006-01")

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if len(e.Date) < len(monthPrefix) || e.Date[:len(monthPrefix)] != monthPrefix {
			continue
		}

		category := e.Category
		if category == "" {
			category = "Other"
		}
		total = total.Add(e.Amount)
		byCategory[category] = byCategory[category].Add(e.Amount)
	}

	distribution := make([]models.CategoryAmount, 0, len(byCategory))
	for category, amount := range byCategory {
		distribution = append(distribution, models.CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if !distribution[i].Amount.Equal(distribution[j].Amount) {
			return distribution[i].Amount.GreaterThan(distribution[j].Amount)
		}
		return distribution[i].Category < distribution[j].Category
	})

	return models.AnalyticsSummary{
		TotalMonthlySpending: total,
		MonthLabel:           now.Format("January 2006"),
		SpendingByCategory:   byCategory,
		CategoryDistribution: distribution,
	}
}
