package services

import (
	"testing"
	"unicode/utf8"

	"github.com/finlit/backend/internal/config"
	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/parser"
	"github.com/finlit/backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportFixture() (*ImportService, *store.MemoryExpenseStore, *store.MemoryUserStore) {
	expenses := store.NewMemoryExpenseStore(nil)
	users := store.NewMemoryUserStore([]models.User{
		{ID: "1", Name: "Pragati", Balance: decimal.NewFromInt(1000)},
	})
	cfg := &config.ImportConfig{
		MaxTextLength:   2000,
		DefaultCategory: "Other",
		DefaultTitle:    "Imported transaction",
	}
	return NewImportService(cfg, expenses, users), expenses, users
}

func TestImport_DebitAddsExpenseAndLowersBalance(t *testing.T) {
	svc, expenses, _ := newImportFixture()

	result, err := svc.Import("1", "INR 250.00 debited from A/c XX1234 to AMAZON on 12-08")
	require.NoError(t, err)

	require.NotNil(t, result.Parsed.Amount)
	assert.Equal(t, parser.DirectionDebit, result.Parsed.Direction)

	require.NotNil(t, result.Transaction)
	assert.Equal(t, "debit", result.Transaction.Type)

	require.NotNil(t, result.AddedExpense)
	assert.Contains(t, result.AddedExpense.Title, "AMAZON")
	assert.Equal(t, "Other", result.AddedExpense.Category)
	assert.True(t, result.AddedExpense.Amount.Equal(decimal.RequireFromString("250.00")))

	stored, _ := expenses.List()
	require.Len(t, stored, 1)

	require.NotNil(t, result.NewBalance)
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(750)))
}

func TestImport_CreditRaisesBalance(t *testing.T) {
	svc, expenses, _ := newImportFixture()

	result, err := svc.Import("1", "Rs.500 credited to your account from EMPLOYER")
	require.NoError(t, err)

	assert.Nil(t, result.AddedExpense, "credits never become expenses")
	stored, _ := expenses.List()
	assert.Empty(t, stored)

	require.NotNil(t, result.NewBalance)
	assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(1500)))
}

func TestImport_UnknownDirectionLeavesBalanceAlone(t *testing.T) {
	svc, expenses, users := newImportFixture()

	result, err := svc.Import("1", "Transaction of $99 at SOME-STORE")
	require.NoError(t, err)

	require.NotNil(t, result.Transaction)
	assert.Equal(t, "unknown", result.Transaction.Type)
	assert.Nil(t, result.AddedExpense)
	assert.Nil(t, result.NewBalance)

	stored, _ := expenses.List()
	assert.Empty(t, stored)
	user, _ := users.Get("1")
	assert.True(t, user.Balance.Equal(decimal.NewFromInt(1000)))
}

func TestImport_NoAmountFound(t *testing.T) {
	svc, _, _ := newImportFixture()

	result, err := svc.Import("1", "Your OTP is ready, do not share it")
	require.NoError(t, err)

	assert.Nil(t, result.Parsed.Amount)
	assert.Nil(t, result.Transaction)
	assert.Nil(t, result.AddedExpense)
	assert.Nil(t, result.NewBalance)
}

func TestImport_UnknownUserSkipsBalance(t *testing.T) {
	svc, expenses, _ := newImportFixture()

	result, err := svc.Import("ghost", "Paid Rs.120 to CAFE via UPI")
	require.NoError(t, err)

	require.NotNil(t, result.AddedExpense, "the expense is still recorded")
	stored, _ := expenses.List()
	require.Len(t, stored, 1)
	assert.Nil(t, result.NewBalance)
}

func TestImport_DescriptionFallbackTitle(t *testing.T) {
	svc, _, _ := newImportFixture()

	// No to/at/from/via anchor, short text, so the description falls back to
	// the leading words; force the configured default by using bare text.
	result, err := svc.Import("1", "debited 45")
	require.NoError(t, err)

	require.NotNil(t, result.AddedExpense)
	assert.NotEmpty(t, result.AddedExpense.Title)
}

func TestImport_TruncatesOversizedText(t *testing.T) {
	expenses := store.NewMemoryExpenseStore(nil)
	users := store.NewMemoryUserStore(nil)
	cfg := &config.ImportConfig{MaxTextLength: 10, DefaultCategory: "Other", DefaultTitle: "Imported transaction"}
	svc := NewImportService(cfg, expenses, users)

	result, err := svc.Import("1", "paid 99999 and then a very long tail with credited 5")
	require.NoError(t, err)

	assert.Equal(t, "paid 99999", result.Parsed.RawText)
}

func TestImport_TruncationRespectsRuneBoundaries(t *testing.T) {
	expenses := store.NewMemoryExpenseStore(nil)
	users := store.NewMemoryUserStore(nil)
	// "paid 500 " is 9 bytes; the 3-byte ₹ spans bytes 9-11, so a 10-byte
	// limit lands mid-rune.
	cfg := &config.ImportConfig{MaxTextLength: 10, DefaultCategory: "Other", DefaultTitle: "Imported transaction"}
	svc := NewImportService(cfg, expenses, users)

	result, err := svc.Import("1", "paid 500 ₹999")
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(result.Parsed.RawText))
	assert.Equal(t, "paid 500 ", result.Parsed.RawText)
	require.NotNil(t, result.Parsed.Amount)
	assert.True(t, result.Parsed.Amount.Equal(decimal.NewFromInt(500)))
}
