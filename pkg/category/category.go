// Package category defines the fixed 40/30/20/10 allocation plan.
package category

import (
	"fmt"

	"github.com/fourfold/fourfold/pkg/money"
)

type ID string

const (
	Needs   ID = "NEEDS"
	Wants   ID = "WANTS"
	Savings ID = "SAVINGS"
	Giving  ID = "GIVING"
)

// ratioBase is the denominator for allocation ratios (basis points).
const ratioBase = 10000

// Definition is the static configuration of one allocation category.
// Definitions are immutable; they are not user data.
type Definition struct {
	ID          ID
	Label       string
	Ratio       int // basis points of monthly income
	Color       string
	Description string
}

var definitions = []Definition{
	{
		ID:          Needs,
		Label:       "Needs",
		Ratio:       4000,
		Color:       "#2563eb",
		Description: "Essentials: housing, utilities, groceries, transport, insurance",
	},
	{
		ID:          Wants,
		Label:       "Wants",
		Ratio:       3000,
		Color:       "#f59e0b",
		Description: "Lifestyle: dining out, hobbies, subscriptions, travel",
	},
	{
		ID:          Savings,
		Label:       "Savings",
		Ratio:       2000,
		Color:       "#16a34a",
		Description: "Savings, investments and debt repayment",
	},
	{
		ID:          Giving,
		Label:       "Giving",
		Ratio:       1000,
		Color:       "#9333ea",
		Description: "Donations, gifts and support for others",
	},
}

// Definitions returns the four categories in canonical order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Get returns the definition for the given ID.
func Get(id ID) (Definition, error) {
	for _, d := range definitions {
		if d.ID == id {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("unknown category: %q", id)
}

// Valid reports whether id is one of the four defined categories.
func Valid(id ID) bool {
	_, err := Get(id)
	return err == nil
}

// Split apportions income across the four categories. Each category gets
// income*ratio rounded down, except the last one which takes the
// remainder, so the targets always sum exactly to the income.
func Split(income money.Cents) map[ID]money.Cents {
	targets := make(map[ID]money.Cents, len(definitions))
	var allocated money.Cents
	for i, d := range definitions {
		if i == len(definitions)-1 {
			targets[d.ID] = income - allocated
			break
		}
		target := money.Cents(int64(income) * int64(d.Ratio) / ratioBase)
		targets[d.ID] = target
		allocated += target
	}
	return targets
}
