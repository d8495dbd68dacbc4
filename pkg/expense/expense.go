package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/money"
)

var (
	ErrEmptyDescription = errors.New("expense description must not be empty")
	ErrInvalidAmount    = errors.New("expense amount must be positive")
	ErrInvalidCategory  = errors.New("expense category is not one of the defined categories")
	ErrMissingDate      = errors.New("expense date must be set")
)

type Expense struct {
	ID          string
	Description string
	Amount      money.Cents
	Category    category.ID
	Date        time.Time
	Recurring   bool
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if e.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !category.Valid(e.Category) {
		return ErrInvalidCategory
	}
	if e.Date.IsZero() {
		return ErrMissingDate
	}
	return nil
}

// DedupKey identifies a recurring expense for carry-forward purposes.
// Two bills sharing description and amount collapse into one key.
type DedupKey struct {
	Description string
	Amount      money.Cents
}

// Key returns the carry-forward dedup key for the expense.
func (e Expense) Key() DedupKey {
	return DedupKey{
		Description: strings.ToLower(strings.TrimSpace(e.Description)),
		Amount:      e.Amount,
	}
}
