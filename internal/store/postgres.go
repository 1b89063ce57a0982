package store

import (
	"database/sql"

	"github.com/finlit/backend/internal/models"
	"github.com/shopspring/decimal"
)

// PostgresExpenseStore is the optional persistent expense store, selected
// with storage.driver=postgres. The demo default stays in memory.
type PostgresExpenseStore struct {
	db *sql.DB
}

func NewPostgresExpenseStore(db *sql.DB) *PostgresExpenseStore {
	return &PostgresExpenseStore{db: db}
}

func (s *PostgresExpenseStore) List() ([]models.Expense, error) {
	rows, err := s.db.Query(`
		SELECT id, title, amount::text, category, date, created_at
		FROM expenses
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var amountStr string
		if err := rows.Scan(&e.ID, &e.Title, &amountStr, &e.Category, &e.Date, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.Amount, err = decimal.NewFromString(amountStr); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (s *PostgresExpenseStore) Add(expense models.Expense) error {
	_, err := s.db.Exec(`
		INSERT INTO expenses (id, title, amount, category, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, expense.ID, expense.Title, expense.Amount.String(), expense.Category, expense.Date, expense.CreatedAt)
	return err
}

func (s *PostgresExpenseStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrExpenseNotFound
	}
	return nil
}

// PostgresUserStore is the optional persistent user store. Point and
// balance updates happen in single UPDATE ... RETURNING statements so the
// read-modify-write is atomic on the database side.
type PostgresUserStore struct {
	db *sql.DB
}

func NewPostgresUserStore(db *sql.DB) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) Get(id string) (models.User, error) {
	return s.queryUser(`
		SELECT id, name, email, points, balance::text, password_hash, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
}

func (s *PostgresUserStore) FindByEmail(email string) (models.User, error) {
	return s.queryUser(`
		SELECT id, name, email, points, balance::text, password_hash, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
}

func (s *PostgresUserStore) First() (models.User, error) {
	return s.queryUser(`
		SELECT id, name, email, points, balance::text, password_hash, created_at, updated_at
		FROM users ORDER BY created_at ASC LIMIT 1
	`)
}

func (s *PostgresUserStore) queryUser(query string, args ...any) (models.User, error) {
	var user models.User
	var balanceStr string
	err := s.db.QueryRow(query, args...).Scan(
		&user.ID, &user.Name, &user.Email, &user.Points, &balanceStr,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	if user.Balance, err = decimal.NewFromString(balanceStr); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *PostgresUserStore) Add(user models.User) error {
	_, err := s.db.Exec(`
		INSERT INTO users (id, name, email, points, balance, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, user.ID, user.Name, user.Email, user.Points, user.Balance.String(),
		user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return err
}

func (s *PostgresUserStore) Update(id string, fn func(*models.User)) (models.User, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.User{}, err
	}
	defer tx.Rollback()

	var user models.User
	var balanceStr string
	err = tx.QueryRow(`
		SELECT id, name, email, points, balance::text, password_hash, created_at, updated_at
		FROM users WHERE id = $1
		FOR UPDATE
	`, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Points, &balanceStr,
		&user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	if user.Balance, err = decimal.NewFromString(balanceStr); err != nil {
		return models.User{}, err
	}

	fn(&user)

	_, err = tx.Exec(`
		UPDATE users SET name = $1, email = $2, points = $3, balance = $4, password_hash = $5, updated_at = $6
		WHERE id = $7
	`, user.Name, user.Email, user.Points, user.Balance.String(), user.PasswordHash, user.UpdatedAt, user.ID)
	if err != nil {
		return models.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *PostgresUserStore) AddPoints(id string, points int) (int, error) {
	var total int
	err := s.db.QueryRow(`
		UPDATE users SET points = points + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING points
	`, points, id).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	return total, err
}

func (s *PostgresUserStore) AdjustBalance(id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var balanceStr string
	err := s.db.QueryRow(`
		UPDATE users SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING balance::text
	`, delta.String(), id).Scan(&balanceStr)
	if err == sql.ErrNoRows {
		return decimal.Zero, ErrUserNotFound
	}
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromString(balanceStr)
}
