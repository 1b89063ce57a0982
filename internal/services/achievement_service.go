package services

import (
	"encoding/json"
	"log"
	"math"
	"net/http"

	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/store"
	"github.com/shopspring/decimal"
)

// AchievementService computes badges and summary stats from the current
// expense and lesson data. Nothing is persisted; every request recomputes.
type AchievementService struct {
	expenses store.ExpenseStore
	lessons  store.LessonStore
}

func NewAchievementService(expenses store.ExpenseStore, lessons store.LessonStore) *AchievementService {
	return &AchievementService{
		expenses: expenses,
		lessons:  lessons,
	}
}

var smartSaverLimit = decimal.NewFromInt(500)

// Summary builds the full achievements view: four badges, counters, and the
// display points total. Display points are a presentation formula
// (completed lessons and expense count) and are independent of the quiz
// points accumulated on the user record.
func (s *AchievementService) Summary() (*models.AchievementsSummary, error) {
	expenses, err := s.expenses.List()
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessons.List()
	if err != nil {
		return nil, err
	}

	totalSpent := decimal.Zero
	days := make(map[string]struct{})
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Amount)
		days[e.Date] = struct{}{}
	}

	completedLessons := 0
	for _, l := range lessons {
		if l.Progress >= 100 {
			completedLessons++
		}
	}

	expenseCount := len(expenses)
	spentFloat, _ := totalSpent.Float64()

	lessonMasterEarned := false
	lessonMasterProgress := 0
	if len(lessons) > 0 {
		lessonMasterEarned = completedLessons >= len(lessons)
		lessonMasterProgress = roundPercent(float64(completedLessons) / float64(len(lessons)))
	}

	badges := []models.Badge{
		{
			ID:          "tracker-master",
			Title:       "Tracker Master",
			Description: "Record 10 expenses",
			Earned:      expenseCount >= 10,
			Progress:    clampPercent(roundPercent(float64(expenseCount) / 10)),
			Icon:        "📒",
		},
		{
			ID:          "smart-saver",
			Title:       "Smart Saver",
			Description: "Spend less than $500 total",
			Earned:      totalSpent.LessThanOrEqual(smartSaverLimit),
			Progress:    max(0, roundPercent((500-spentFloat)/500)),
			Icon:        "💡",
		},
		{
			ID:          "consistent",
			Title:       "Consistent Tracker",
			Description: "Record expenses on 3 different days",
			Earned:      len(days) >= 3,
			Progress:    clampPercent(roundPercent(float64(len(days)) / 3)),
			Icon:        "📅",
		},
		{
			ID:          "lesson-master",
			Title:       "Lesson Master",
			Description: "Complete all lessons",
			Earned:      lessonMasterEarned,
			Progress:    lessonMasterProgress,
			Icon:        "🏅",
		},
	}

	return &models.AchievementsSummary{
		Points: completedLessons*50 + (expenseCount/2)*5,
		Summary: models.AchievementCounts{
			TotalExpensesCount: expenseCount,
			TotalSpent:         totalSpent,
			DaysCount:          len(days),
			CompletedLessons:   completedLessons,
			TotalLessons:       len(lessons),
		},
		Badges: badges,
	}, nil
}

// GetAchievements returns badges and achievement stats
// @Summary Get achievements
// @Description Compute badge states and summary from current expenses and lessons
// @Tags achievements
// @Produce json
// @Success 200 {object} models.AchievementsSummary
// @Failure 500 {object} ErrorResponse
// @Router /achievements [get]
func (s *AchievementService) GetAchievements(w http.ResponseWriter, r *http.Request) {
	summary, err := s.Summary()
	if err != nil {
		log.Printf("[ACHIEVEMENTS] Failed to build summary: %v", err)
		SendErrorResponse(w, "Failed to fetch achievements", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

func roundPercent(fraction float64) int {
	return int(math.Round(fraction * 100))
}

func clampPercent(p int) int {
	if p > 100 {
		return 100
	}
	return p
}
