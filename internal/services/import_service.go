package services

import (
	"errors"
	"log"
	"time"
	"unicode/utf8"

	"github.com/finlit/backend/internal/config"
	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/parser"
	"github.com/finlit/backend/internal/store"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportService turns parsed transaction text into app state: debits become
// expenses and decrease the user balance, credits increase it.
type ImportService struct {
	cfg      *config.ImportConfig
	expenses store.ExpenseStore
	users    store.UserStore
}

// TransactionView is the normalized transaction presented back to the
// client after a successful parse.
type TransactionView struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	RawText     string          `json:"rawText"`
}

// ImportResult is the full outcome of a text import. Transaction,
// AddedExpense, and NewBalance are nil when the corresponding step did not
// apply (no amount found, non-debit direction, unknown user).
type ImportResult struct {
	Parsed       parser.ParsedTransaction `json:"parsed"`
	Transaction  *TransactionView         `json:"transaction"`
	AddedExpense *models.Expense          `json:"addedExpense"`
	NewBalance   *decimal.Decimal         `json:"newBalance"`
}

func NewImportService(cfg *config.ImportConfig, expenses store.ExpenseStore, users store.UserStore) *ImportService {
	return &ImportService{
		cfg:      cfg,
		expenses: expenses,
		users:    users,
	}
}

// Import parses the text and applies its side effects for userID. Parsing
// never fails; only store errors are returned. Text beyond the configured
// limit is truncated before parsing.
func (s *ImportService) Import(userID, text string) (*ImportResult, error) {
	if len(text) > s.cfg.MaxTextLength {
		cut := s.cfg.MaxTextLength
		// Back off to a rune boundary so a multibyte character (₹) is never
		// split into invalid UTF-8.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	parsed := parser.Parse(text)
	result := &ImportResult{Parsed: parsed}

	if parsed.Amount == nil {
		log.Printf("[IMPORT] No amount found in text for user %s", userID)
		return result, nil
	}

	result.Transaction = &TransactionView{
		Amount:      *parsed.Amount,
		Type:        string(parsed.Direction),
		Description: parsed.Description,
		RawText:     parsed.RawText,
	}

	switch parsed.Direction {
	case parser.DirectionDebit:
		title := parsed.Description
		if title == "" {
			title = s.cfg.DefaultTitle
		}

		expense := models.Expense{
			ID:        uuid.NewString(),
			Title:     title,
			Amount:    *parsed.Amount,
			Category:  s.cfg.DefaultCategory,
			Date:      time.Now().Format("2006-01-02"),
			CreatedAt: time.Now(),
		}
		if err := s.expenses.Add(expense); err != nil {
			return nil, err
		}
		result.AddedExpense = &expense

		if err := s.adjustBalance(result, userID, parsed.Amount.Neg()); err != nil {
			return nil, err
		}

	case parser.DirectionCredit:
		if err := s.adjustBalance(result, userID, *parsed.Amount); err != nil {
			return nil, err
		}
	}

	log.Printf("[IMPORT] Imported %s %s for user %s", parsed.Direction, parsed.Amount, userID)
	return result, nil
}

func (s *ImportService) adjustBalance(result *ImportResult, userID string, delta decimal.Decimal) error {
	balance, err := s.users.AdjustBalance(userID, delta)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	result.NewBalance = &balance
	return nil
}
