package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string          `json:"id" example:"1"`                      // User ID
	Name         string          `json:"name" example:"Pragati"`              // Display name
	Email        string          `json:"email" example:"pragati@example.com"` // User email
	Points       int             `json:"points"`                              // Quiz points accumulator, only increases
	Balance      decimal.Decimal `json:"balance"`                             // Running balance from imported transactions
	PasswordHash string          `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}
