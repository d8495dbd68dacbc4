package income

import (
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
)

// History is the full income history: one amount per configured month,
// plus an optional legacy default amount migrated from the flat
// single-value format that predates per-month incomes.
type History struct {
	Entries    map[month.Month]money.Cents
	Default    money.Cents
	HasDefault bool
}

// Resolve returns the income for the given month. Resolution order:
//  1. an exact entry for the month;
//  2. the legacy default, when it is the only thing configured;
//  3. the entry of the closest month strictly before the target
//     (income carries forward);
//  4. the legacy default, or 0 when nothing applies.
//
// Resolve is a pure function over the history and never fails; absent
// data yields 0.
func (h History) Resolve(m month.Month) money.Cents {
	if amount, ok := h.Entries[m]; ok {
		return amount
	}

	if len(h.Entries) == 0 && h.HasDefault {
		return h.Default
	}

	var bestMonth month.Month
	var bestAmount money.Cents
	found := false
	for entryMonth, amount := range h.Entries {
		if !entryMonth.Before(m) {
			continue
		}
		if !found || entryMonth.After(bestMonth) {
			bestMonth = entryMonth
			bestAmount = amount
			found = true
		}
	}
	if found {
		return bestAmount
	}

	if h.HasDefault {
		return h.Default
	}
	return 0
}
