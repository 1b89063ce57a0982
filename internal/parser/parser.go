package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Direction classifies whether a transaction decreases or increases a balance.
type Direction string

const (
	DirectionDebit   Direction = "debit"
	DirectionCredit  Direction = "credit"
	DirectionUnknown Direction = "unknown"
)

// ParsedTransaction is the structured guess extracted from a bank
// SMS/notification text. Amount is nil when no monetary token was found;
// callers must treat that as a user-correctable outcome, not an error.
type ParsedTransaction struct {
	AmountCandidates []decimal.Decimal `json:"amountCandidates"`
	Amount           *decimal.Decimal  `json:"amount"`
	Direction        Direction         `json:"direction"`
	Description      string            `json:"description"`
	RawText          string            `json:"rawText"`
}

var (
	// Monetary token: optional currency marker, then a number with optional
	// comma-grouped thousands and at most two decimal digits. The leading \b
	// keeps digits glued to letters (account masks like XXXX1234) out.
	amountRegex = regexp.MustCompile(`(?i)(?:(?:₹|\$|\b(?:rs\.?|inr|usd))\s*|\b)(\d{1,3}(?:,\d{3})+|\d+)(\.\d{1,2})?\b`)

	// Merchant/description: preposition followed by a short run of safe chars.
	descriptionRegex = regexp.MustCompile(`(?i)\b(?:to|at|from|via)\s+([A-Za-z0-9&\-._/][A-Za-z0-9 &\-._/]{1,39})`)

	// Whole-word fallback tokens for direction classification.
	debitTokenRegex  = regexp.MustCompile(`(?i)\b(?:dr|debit)\b`)
	creditTokenRegex = regexp.MustCompile(`(?i)\b(?:cr|credit)\b`)
)

// Keyword sets checked before the short-token fallback. Substring match
// against the lowercased text; the set order below must stay specific-first
// so "credited ... debit card" still classifies as a credit.
var (
	debitKeywords  = []string{"debited", "spent", "withdrawn", "paid", "purchase", "deducted", "charged"}
	creditKeywords = []string{"credited", "received", "deposit", "refunded", "cashback"}
)

const fallbackDescriptionWords = 6

// Parse turns freeform notification text into a structured transaction
// guess. It never fails: any string input, including empty, yields a
// fully-formed result with explicit unknown/absent markers.
func Parse(text string) ParsedTransaction {
	candidates := extractAmounts(text)
	return ParsedTransaction{
		AmountCandidates: candidates,
		Amount:           chooseAmount(candidates),
		Direction:        classifyDirection(text),
		Description:      extractDescription(text),
		RawText:          text,
	}
}

// extractAmounts returns every plausible monetary token in reading order,
// thousands separators stripped.
func extractAmounts(text string) []decimal.Decimal {
	matches := amountRegex.FindAllStringSubmatch(text, -1)
	candidates := make([]decimal.Decimal, 0, len(matches))
	for _, m := range matches {
		raw := strings.ReplaceAll(m[1], ",", "") + m[2]
		amount, err := decimal.NewFromString(raw)
		if err != nil || amount.IsNegative() {
			continue
		}
		candidates = append(candidates, amount)
	}
	return candidates
}

// chooseAmount picks the first candidate in reading order. Bank messages
// state the transaction amount before the running balance, so first wins
// over largest or last.
func chooseAmount(candidates []decimal.Decimal) *decimal.Decimal {
	if len(candidates) == 0 {
		return nil
	}
	amount := candidates[0]
	return &amount
}

func classifyDirection(text string) Direction {
	lower := strings.ToLower(text)

	debit := containsAny(lower, debitKeywords)
	credit := containsAny(lower, creditKeywords)

	if debit && !credit {
		return DirectionDebit
	}
	if credit && !debit {
		return DirectionCredit
	}

	// Both or neither keyword set matched: fall back to explicit dr/cr
	// whole-word tokens before giving up.
	debit = debitTokenRegex.MatchString(text)
	credit = creditTokenRegex.MatchString(text)
	if debit && !credit {
		return DirectionDebit
	}
	if credit && !debit {
		return DirectionCredit
	}

	return DirectionUnknown
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func extractDescription(text string) string {
	if m := descriptionRegex.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	// No prepositional pattern: fall back to the leading words of the text.
	words := strings.Fields(text)
	if len(words) > fallbackDescriptionWords {
		words = words[:fallbackDescriptionWords]
	}
	return strings.Join(words, " ")
}
