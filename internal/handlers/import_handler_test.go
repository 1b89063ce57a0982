package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/finlit/backend/internal/config"
	"github.com/finlit/backend/internal/models"
	"github.com/finlit/backend/internal/services"
	"github.com/finlit/backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newImportHandler() (*ImportHandler, *store.MemoryExpenseStore) {
	expenses := store.NewMemoryExpenseStore(nil)
	users := store.NewMemoryUserStore([]models.User{
		{ID: "1", Name: "Pragati", Balance: decimal.NewFromInt(500)},
	})
	cfg := &config.ImportConfig{
		MaxTextLength:   2000,
		DefaultCategory: "Other",
		DefaultTitle:    "Imported transaction",
	}
	service := services.NewImportService(cfg, expenses, users)
	return NewImportHandler(service), expenses
}

func parseText(h *ImportHandler, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest("POST", "/api/transactions/parse", bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	h.ParseTransaction(w, r)
	return w
}

func TestImportHandler_ParseTransaction(t *testing.T) {
	t.Run("debit text adds an expense", func(t *testing.T) {
		h, expenses := newImportHandler()

		w := parseText(h, `{"userId":"1","text":"Rs.120 debited to CAFE via UPI"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var result services.ImportResult
		json.Unmarshal(w.Body.Bytes(), &result)
		require.NotNil(t, result.AddedExpense)
		require.NotNil(t, result.NewBalance)
		assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(380)))

		stored, _ := expenses.List()
		assert.Len(t, stored, 1)
	})

	t.Run("unparsable text still returns 200", func(t *testing.T) {
		h, expenses := newImportHandler()

		w := parseText(h, `{"userId":"1","text":"hello, nothing useful here"}`)

		assert.Equal(t, http.StatusOK, w.Code)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
		var parsed map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw["parsed"], &parsed))
		assert.Equal(t, "null", string(parsed["amount"]), "amount must serialize as null")
		assert.Equal(t, "null", string(raw["transaction"]))

		stored, _ := expenses.List()
		assert.Empty(t, stored)
	})

	t.Run("empty text returns 200", func(t *testing.T) {
		h, _ := newImportHandler()

		w := parseText(h, `{"userId":"1","text":""}`)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("defaults to seed user when userId omitted", func(t *testing.T) {
		h, _ := newImportHandler()

		w := parseText(h, `{"text":"credited Rs.50 from EMPLOYER"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var result services.ImportResult
		json.Unmarshal(w.Body.Bytes(), &result)
		require.NotNil(t, result.NewBalance)
		assert.True(t, result.NewBalance.Equal(decimal.NewFromInt(550)))
	})

	t.Run("invalid body", func(t *testing.T) {
		h, _ := newImportHandler()

		w := parseText(h, "not json")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
