package store

import (
	"sync"

	"github.com/finlit/backend/internal/models"
	"github.com/shopspring/decimal"
)

// MemoryExpenseStore keeps expenses in process memory, newest first.
type MemoryExpenseStore struct {
	mu       sync.RWMutex
	expenses []models.Expense
}

func NewMemoryExpenseStore(seed []models.Expense) *MemoryExpenseStore {
	s := &MemoryExpenseStore{}
	s.expenses = append(s.expenses, seed...)
	return s
}

func (s *MemoryExpenseStore) List() ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Expense, len(s.expenses))
	copy(out, s.expenses)
	return out, nil
}

func (s *MemoryExpenseStore) Add(expense models.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expenses = append([]models.Expense{expense}, s.expenses...)
	return nil
}

func (s *MemoryExpenseStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return ErrExpenseNotFound
}

// MemoryLessonStore keeps the lesson chain in curriculum order.
type MemoryLessonStore struct {
	mu      sync.RWMutex
	order   []string
	lessons map[string]*models.Lesson
}

func NewMemoryLessonStore(seed []models.Lesson) *MemoryLessonStore {
	s := &MemoryLessonStore{lessons: make(map[string]*models.Lesson)}
	for i := range seed {
		lesson := seed[i]
		s.order = append(s.order, lesson.ID)
		s.lessons[lesson.ID] = &lesson
	}
	return s
}

func (s *MemoryLessonStore) List() ([]models.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Lesson, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.lessons[id])
	}
	return out, nil
}

func (s *MemoryLessonStore) Get(id string) (models.Lesson, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lesson, ok := s.lessons[id]
	if !ok {
		return models.Lesson{}, ErrLessonNotFound
	}
	return *lesson, nil
}

func (s *MemoryLessonStore) Update(id string, fn func(*models.Lesson)) (models.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lesson, ok := s.lessons[id]
	if !ok {
		return models.Lesson{}, ErrLessonNotFound
	}
	fn(lesson)
	return *lesson, nil
}

// MemoryUserStore keeps users in insertion order; First returns the
// earliest-created user, matching the demo profile behavior.
type MemoryUserStore struct {
	mu    sync.RWMutex
	order []string
	users map[string]*models.User
}

func NewMemoryUserStore(seed []models.User) *MemoryUserStore {
	s := &MemoryUserStore{users: make(map[string]*models.User)}
	for i := range seed {
		user := seed[i]
		s.order = append(s.order, user.ID)
		s.users[user.ID] = &user
	}
	return s
}

func (s *MemoryUserStore) Get(id string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return *user, nil
}

func (s *MemoryUserStore) FindByEmail(email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if s.users[id].Email == email {
			return *s.users[id], nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (s *MemoryUserStore) First() (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return models.User{}, ErrUserNotFound
	}
	return *s.users[s.order[0]], nil
}

func (s *MemoryUserStore) Add(user models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = append(s.order, user.ID)
	s.users[user.ID] = &user
	return nil
}

func (s *MemoryUserStore) Update(id string, fn func(*models.User)) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	fn(user)
	return *user, nil
}

func (s *MemoryUserStore) AddPoints(id string, points int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return 0, ErrUserNotFound
	}
	user.Points += points
	return user.Points, nil
}

func (s *MemoryUserStore) AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return decimal.Zero, ErrUserNotFound
	}
	user.Balance = user.Balance.Add(delta)
	return user.Balance, nil
}

// MemoryPostStore keeps community posts, newest first.
type MemoryPostStore struct {
	mu    sync.RWMutex
	posts []models.CommunityPost
}

func NewMemoryPostStore(seed []models.CommunityPost) *MemoryPostStore {
	s := &MemoryPostStore{}
	s.posts = append(s.posts, seed...)
	return s
}

func (s *MemoryPostStore) List() ([]models.CommunityPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.CommunityPost, len(s.posts))
	copy(out, s.posts)
	return out, nil
}

func (s *MemoryPostStore) Add(post models.CommunityPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts = append([]models.CommunityPost{post}, s.posts...)
	return nil
}
