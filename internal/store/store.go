package store

import (
	"errors"

	"github.com/finlit/backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrExpenseNotFound = errors.New("expense not found")
	ErrLessonNotFound  = errors.New("lesson not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ExpenseStore owns the expense collection. List returns newest first.
type ExpenseStore interface {
	List() ([]models.Expense, error)
	Add(expense models.Expense) error
	Delete(id string) error
}

// LessonStore owns the lesson chain. The order of List defines the
// curriculum order; Update applies fn to the stored record atomically and
// returns a snapshot of the result.
type LessonStore interface {
	List() ([]models.Lesson, error)
	Get(id string) (models.Lesson, error)
	Update(id string, fn func(*models.Lesson)) (models.Lesson, error)
}

// UserStore owns user records. AddPoints and AdjustBalance are atomic
// read-modify-write operations so concurrent quiz submissions or imports
// for the same user cannot lose an update.
type UserStore interface {
	Get(id string) (models.User, error)
	FindByEmail(email string) (models.User, error)
	First() (models.User, error)
	Add(user models.User) error
	Update(id string, fn func(*models.User)) (models.User, error)
	AddPoints(id string, points int) (int, error)
	AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error)
}

// PostStore owns the community feed. List returns newest first.
type PostStore interface {
	List() ([]models.CommunityPost, error)
	Add(post models.CommunityPost) error
}
