package services

import (
	"github.com/finlit/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockExpenseStore struct {
	mock.Mock
}

func (m *MockExpenseStore) List() ([]models.Expense, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Expense), args.Error(1)
}

func (m *MockExpenseStore) Add(expense models.Expense) error {
	args := m.Called(expense)
	return args.Error(0)
}

func (m *MockExpenseStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

type MockLessonStore struct {
	mock.Mock
}

func (m *MockLessonStore) List() ([]models.Lesson, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lesson), args.Error(1)
}

func (m *MockLessonStore) Get(id string) (models.Lesson, error) {
	args := m.Called(id)
	return args.Get(0).(models.Lesson), args.Error(1)
}

func (m *MockLessonStore) Update(id string, fn func(*models.Lesson)) (models.Lesson, error) {
	args := m.Called(id, fn)
	return args.Get(0).(models.Lesson), args.Error(1)
}

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Get(id string) (models.User, error) {
	args := m.Called(id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) FindByEmail(email string) (models.User, error) {
	args := m.Called(email)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) First() (models.User, error) {
	args := m.Called()
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) Add(user models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserStore) Update(id string, fn func(*models.User)) (models.User, error) {
	args := m.Called(id, fn)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserStore) AddPoints(id string, points int) (int, error) {
	args := m.Called(id, points)
	return args.Int(0), args.Error(1)
}

func (m *MockUserStore) AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(id, delta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
