package advisor

import (
	"context"
	"testing"
	"time"

	"github.com/fourfold/fourfold/internal/config"
	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_MissingKey(t *testing.T) {
	client := NewGeminiClient(config.Advisor{Model: "gemini-2.0-flash"})

	_, err := client.Review(context.Background(), ReviewRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.ParseStatement(context.Background(), Document{MimeType: "text/csv", Text: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestParseStatementRecords(t *testing.T) {
	t.Run("should parse a well-formed response", func(t *testing.T) {
		payload := `[
			{"description": "Salary", "amount": 30000, "date": "2024-05-01", "type": "INCOME"},
			{"description": " Groceries ", "amount": 54.20, "date": "2024-05-03", "type": "EXPENSE", "category": "NEEDS"},
			{"description": "Transfer", "amount": 999, "date": "2024-05-04", "type": "IGNORE"}
		]`

		records, err := parseStatementRecords([]byte(payload))

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, StatementRecord{
			Description: "Salary",
			Amount:      money.Cents(3000000),
			Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			Type:        RecordIncome,
		}, records[0])
		assert.Equal(t, "Groceries", records[1].Description)
		assert.Equal(t, money.Cents(5420), records[1].Amount)
		assert.Equal(t, category.Needs, records[1].Category)
		assert.Equal(t, RecordIgnore, records[2].Type)
	})

	t.Run("should reject malformed payloads", func(t *testing.T) {
		tests := []struct {
			name    string
			payload string
		}{
			{name: "not JSON", payload: "I could not parse that statement."},
			{name: "unknown type", payload: `[{"description": "x", "amount": 1, "date": "2024-05-01", "type": "TRANSFER"}]`},
			{name: "invalid date", payload: `[{"description": "x", "amount": 1, "date": "05/01/2024", "type": "EXPENSE"}]`},
			{name: "non-positive amount", payload: `[{"description": "x", "amount": 0, "date": "2024-05-01", "type": "EXPENSE"}]`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := parseStatementRecords([]byte(tt.payload))
				assert.Error(t, err)
			})
		}
	})

	t.Run("empty array yields zero records", func(t *testing.T) {
		records, err := parseStatementRecords([]byte("[]"))
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestReviewPrompt(t *testing.T) {
	request := ReviewRequest{
		Month:    "2024-05",
		Income:   money.Cents(100000),
		Currency: "EUR",
		Expenses: []expense.Expense{
			{
				Description: "Rent",
				Amount:      money.Cents(85000),
				Category:    category.Needs,
				Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	prompt := reviewPrompt(request)

	assert.Contains(t, prompt, "Month: 2024-05")
	assert.Contains(t, prompt, "Net income: 1000.00 EUR")
	assert.Contains(t, prompt, "2024-05-01 | 850.00 EUR | NEEDS | Rent")
}
