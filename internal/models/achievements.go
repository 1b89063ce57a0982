package models

import "github.com/shopspring/decimal"

// Badge is a named achievement. Progress is 0-100 toward the threshold;
// Earned flips once the threshold is met.
type Badge struct {
	ID          string `json:"id" example:"tracker-master"`
	Title       string `json:"title" example:"Tracker Master"`
	Description string `json:"description" example:"Record 10 expenses"`
	Earned      bool   `json:"earned"`
	Progress    int    `json:"progress"`
	Icon        string `json:"icon" example:"📒"`
}

// AchievementsSummary is the read-only achievements view. Points here is
// the display-only score derived from activity counts; it is intentionally
// independent of the quiz points accumulator on User.
type AchievementsSummary struct {
	Points  int               `json:"points"`
	Summary AchievementCounts `json:"summary"`
	Badges  []Badge           `json:"badges"`
}

type AchievementCounts struct {
	TotalExpensesCount int             `json:"totalExpensesCount"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	DaysCount          int             `json:"daysCount"`
	CompletedLessons   int             `json:"completedLessons"`
	TotalLessons       int             `json:"totalLessons"`
}
