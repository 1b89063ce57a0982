package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single tracked expense
type Expense struct {
	ID        string          `json:"id" example:"c6f3a1de-4b6e-4a7e-9f1a-2d9c8b7a6e5f"` // Expense ID
	Title     string          `json:"title" example:"Groceries"`                         // Short label
	Amount    decimal.Decimal `json:"amount" example:"32.50"`                            // Amount spent
	Category  string          `json:"category" example:"Food"`                           // Spending category
	Date      string          `json:"date" example:"2026-08-28"`                         // Day of spend, YYYY-MM-DD
	CreatedAt time.Time       `json:"createdAt"`
}

// AnalyticsSummary is the monthly spending breakdown for the dashboard
type AnalyticsSummary struct {
	TotalMonthlySpending decimal.Decimal            `json:"totalMonthlySpending"`
	MonthLabel           string                     `json:"monthLabel"`
	SpendingByCategory   map[string]decimal.Decimal `json:"spendingByCategory"`
	CategoryDistribution []CategoryAmount           `json:"categoryDistribution"`
}

// CategoryAmount is one slice of the category distribution, sorted by amount
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}
