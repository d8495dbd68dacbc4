package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/income"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/fourfold/fourfold/pkg/settings"
	log "github.com/sirupsen/logrus"
)

type StatsService interface {
	MonthlySummary(ctx context.Context, m month.Month) (MonthlySummary, error)
	SavingsTrend(ctx context.Context, viewed month.Month) ([]TrendPoint, error)
	CategoryBreakdown(ctx context.Context, m month.Month, categoryId category.ID) ([]DescriptionGroup, error)
}

type StatsServiceImpl struct {
	expenseService  expense.ExpenseService
	incomeService   income.IncomeService
	settingsService settings.SettingsService
}

func NewStatsServiceImpl(
	expenseService expense.ExpenseService,
	incomeService income.IncomeService,
	settingsService settings.SettingsService,
) *StatsServiceImpl {
	return &StatsServiceImpl{
		expenseService:  expenseService,
		incomeService:   incomeService,
		settingsService: settingsService,
	}
}

// MonthlySummary aggregates one month of the ledger against the fixed
// allocation targets. The aggregation is read-only; re-running it on an
// unchanged ledger yields identical results.
func (s *StatsServiceImpl) MonthlySummary(ctx context.Context, m month.Month) (MonthlySummary, error) {
	monthIncome, err := s.incomeService.Resolve(ctx, m)
	if err != nil {
		return MonthlySummary{}, fmt.Errorf("failed to resolve income for %s: %w", m, err)
	}
	expenses, err := s.expenseService.GetByMonth(ctx, m)
	if err != nil {
		return MonthlySummary{}, err
	}
	log.Tracef("Aggregating %d expenses for %s", len(expenses), m)

	spentByCategory := make(map[category.ID]money.Cents)
	var totalSpent money.Cents
	for _, e := range expenses {
		spentByCategory[e.Category] += e.Amount
		totalSpent += e.Amount
	}

	targets := category.Split(monthIncome)
	categories := make([]CategoryStats, 0, len(category.Definitions()))
	for _, def := range category.Definitions() {
		spent := spentByCategory[def.ID]
		target := targets[def.ID]
		usage := 0.0
		if target > 0 {
			usage = float64(spent) / float64(target)
		}
		categories = append(categories, CategoryStats{
			Category: def,
			Spent:    spent,
			Target:   target,
			Over:     spent > target,
			Usage:    usage,
		})
	}

	return MonthlySummary{
		Month:      m,
		Income:     monthIncome,
		Categories: categories,
		TotalSpent: totalSpent,
		Remaining:  monthIncome - totalSpent,
	}, nil
}

// SavingsTrend computes the cumulative savings series: for every month
// present in the ledger plus the currently viewed one, monthly net income
// summed up in ascending order, seeded with the configured initial savings.
func (s *StatsServiceImpl) SavingsTrend(ctx context.Context, viewed month.Month) ([]TrendPoint, error) {
	all, err := s.expenseService.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	userSettings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}

	spentByMonth := make(map[month.Month]money.Cents)
	for _, e := range all {
		spentByMonth[month.FromTime(e.Date)] += e.Amount
	}
	if _, ok := spentByMonth[viewed]; !ok {
		spentByMonth[viewed] = 0
	}

	months := make([]month.Month, 0, len(spentByMonth))
	for m := range spentByMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Before(months[j])
	})

	trend := make([]TrendPoint, 0, len(months))
	cumulative := userSettings.InitialSavings
	for _, m := range months {
		monthIncome, err := s.incomeService.Resolve(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve income for %s: %w", m, err)
		}
		spent := spentByMonth[m]
		net := monthIncome - spent
		cumulative += net
		trend = append(trend, TrendPoint{
			Month:      m,
			Income:     monthIncome,
			Spent:      spent,
			Net:        net,
			Cumulative: cumulative,
		})
	}

	return trend, nil
}

// CategoryBreakdown groups the month's expenses of one category by trimmed
// description and ranks the groups by total, largest first. Groups with
// equal totals keep their first-seen order.
func (s *StatsServiceImpl) CategoryBreakdown(ctx context.Context, m month.Month, categoryId category.ID) ([]DescriptionGroup, error) {
	if !category.Valid(categoryId) {
		return nil, fmt.Errorf("unknown category: %q", categoryId)
	}
	expenses, err := s.expenseService.GetByMonth(ctx, m)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int)
	var groups []DescriptionGroup
	for _, e := range expenses {
		if e.Category != categoryId {
			continue
		}
		description := strings.TrimSpace(e.Description)
		if idx, ok := totals[description]; ok {
			groups[idx].Total += e.Amount
			groups[idx].Count++
			continue
		}
		totals[description] = len(groups)
		groups = append(groups, DescriptionGroup{
			Description: description,
			Total:       e.Amount,
			Count:       1,
		})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Total > groups[j].Total
	})

	return groups, nil
}
