// Package seed provides the demo data the server starts with.
package seed

import (
	"time"

	"github.com/finlit/backend/internal/models"
	"github.com/shopspring/decimal"
)

// Lessons returns the curriculum in unlock order. Only the first lesson
// starts unlocked; passing a quiz unlocks the lesson named by NextLessonID.
func Lessons() []models.Lesson {
	return []models.Lesson{
		{ID: "understanding-credit", Title: "Understanding Credit", Progress: 0, Locked: false, XP: 100, NextLessonID: "budgeting-basics"},
		{ID: "budgeting-basics", Title: "Budgeting Basics", Progress: 0, Locked: true, XP: 80, NextLessonID: "saving-strategies"},
		{ID: "saving-strategies", Title: "Saving Strategies", Progress: 0, Locked: true, XP: 80},
	}
}

// AnswerKey maps lesson IDs to the correct option index per question.
// Exactly the lessons present here are gradable.
func AnswerKey() map[string][]int {
	return map[string][]int{
		"understanding-credit": {1, 1, 1},
		"budgeting-basics":     {1, 1},
		"saving-strategies":    {1, 1},
	}
}

func Expenses() []models.Expense {
	now := time.Now()
	return []models.Expense{
		{
			ID:        "seed-expense-1",
			Title:     "Groceries",
			Amount:    decimal.RequireFromString("32.50"),
			Category:  "Food",
			Date:      now.AddDate(0, 0, -1).Format("2006-01-02"),
			CreatedAt: now.AddDate(0, 0, -1),
		},
		{
			ID:        "seed-expense-2",
			Title:     "Bus pass",
			Amount:    decimal.RequireFromString("12.00"),
			Category:  "Transport",
			Date:      now.AddDate(0, 0, -2).Format("2006-01-02"),
			CreatedAt: now.AddDate(0, 0, -2),
		},
	}
}

func Users() []models.User {
	now := time.Now()
	return []models.User{
		{
			ID:        "1",
			Name:      "Pragati",
			Email:     "pragati@example.com",
			Points:    0,
			Balance:   decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func Posts() []models.CommunityPost {
	return []models.CommunityPost{
		{ID: "seed-post-1", Author: "Vivek Vardhan", Initial: "E", Time: "1 day ago", Text: "Completed all beginner lessons! The tips on tracking expenses are so helpful."},
		{ID: "seed-post-2", Author: "Venu", Initial: "M", Time: "5 hours ago", Text: "Anyone else using the 50-30-20 budgeting rule? It's been a game-changer for me!"},
	}
}
