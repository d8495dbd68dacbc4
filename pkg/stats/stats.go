package stats

import (
	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
)

type CategoryStats struct {
	Category category.Definition
	Spent    money.Cents
	// Target is the category's share of the month's income
	Target money.Cents
	Over   bool
	// Usage is spent/target; 0 when the target is 0
	Usage float64
}

type MonthlySummary struct {
	Month      month.Month
	Income     money.Cents
	Categories []CategoryStats
	TotalSpent money.Cents
	Remaining  money.Cents
}

// TrendPoint is one month of the cumulative savings projection.
type TrendPoint struct {
	Month      month.Month
	Income     money.Cents
	Spent      money.Cents
	Net        money.Cents
	Cumulative money.Cents
}

// DescriptionGroup is one ranked entry of a category drill-down.
type DescriptionGroup struct {
	Description string
	Total       money.Cents
	Count       int
}
