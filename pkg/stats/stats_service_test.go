package stats

import (
	"context"
	"testing"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/income"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/fourfold/fourfold/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statsFixture struct {
	service      *StatsServiceImpl
	expenses     *expense.ExpenseServiceImpl
	incomeRepo   *income.StubIncomeRepo
	settingsRepo *settings.StubSettingsRepo
	ctx          context.Context
}

func setupStatsTest(t *testing.T) statsFixture {
	expenseRepo := expense.NewStubExpenseRepo()
	incomeRepo := income.NewStubIncomeRepo()
	settingsRepo := settings.NewStubSettingsRepo()
	expenseService := expense.NewExpenseService(expenseRepo)
	service := NewStatsServiceImpl(
		expenseService,
		income.NewIncomeService(incomeRepo),
		settings.NewSettingsService(settingsRepo),
	)
	t.Cleanup(func() {
		expenseRepo.Reset()
		settingsRepo.Reset()
	})
	return statsFixture{
		service:      service,
		expenses:     expenseService,
		incomeRepo:   incomeRepo,
		settingsRepo: settingsRepo,
		ctx:          context.Background(),
	}
}

func (f statsFixture) addExpense(t *testing.T, description string, amount money.Cents, categoryId category.ID, m month.Month) {
	t.Helper()
	_, err := f.expenses.Create(f.ctx, expense.Expense{
		Description: description,
		Amount:      amount,
		Category:    categoryId,
		Date:        m.FirstDay(),
	})
	require.NoError(t, err)
}

func TestStatsService_MonthlySummary(t *testing.T) {
	may := month.MustParse("2024-05")

	t.Run("should aggregate spending per category against targets", func(t *testing.T) {
		// given
		f := setupStatsTest(t)
		require.NoError(t, f.incomeRepo.Set(f.ctx, may, money.Cents(100000)))
		f.addExpense(t, "Rent", 45000, category.Needs, may)
		f.addExpense(t, "Cinema", 5000, category.Wants, may)

		// when
		summary, err := f.service.MonthlySummary(f.ctx, may)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(100000), summary.Income)
		assert.Equal(t, money.Cents(50000), summary.TotalSpent)
		assert.Equal(t, money.Cents(50000), summary.Remaining)

		byId := make(map[category.ID]CategoryStats)
		for _, c := range summary.Categories {
			byId[c.Category.ID] = c
		}
		assert.Equal(t, money.Cents(45000), byId[category.Needs].Spent)
		assert.Equal(t, money.Cents(40000), byId[category.Needs].Target)
		assert.True(t, byId[category.Needs].Over)
		assert.Equal(t, money.Cents(5000), byId[category.Wants].Spent)
		assert.False(t, byId[category.Wants].Over)
		assert.Equal(t, money.Cents(0), byId[category.Savings].Spent)
		assert.Equal(t, money.Cents(0), byId[category.Giving].Spent)
	})

	t.Run("targets always sum to income", func(t *testing.T) {
		f := setupStatsTest(t)
		// odd amount that does not divide evenly across the ratios
		require.NoError(t, f.incomeRepo.Set(f.ctx, may, money.Cents(100001)))

		summary, err := f.service.MonthlySummary(f.ctx, may)
		require.NoError(t, err)

		var targetSum money.Cents
		for _, c := range summary.Categories {
			targetSum += c.Target
		}
		assert.Equal(t, summary.Income, targetSum)
	})

	t.Run("zero income yields zero usage, not a division error", func(t *testing.T) {
		// given
		f := setupStatsTest(t)
		f.addExpense(t, "Rent", 45000, category.Needs, may)

		// when
		summary, err := f.service.MonthlySummary(f.ctx, may)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(0), summary.Income)
		for _, c := range summary.Categories {
			assert.Equal(t, 0.0, c.Usage)
		}
	})

	t.Run("aggregation is idempotent on an unchanged ledger", func(t *testing.T) {
		// given
		f := setupStatsTest(t)
		require.NoError(t, f.incomeRepo.Set(f.ctx, may, money.Cents(100000)))
		f.addExpense(t, "Rent", 45000, category.Needs, may)
		f.addExpense(t, "Cinema", 5000, category.Wants, may)

		// when
		first, err := f.service.MonthlySummary(f.ctx, may)
		require.NoError(t, err)
		second, err := f.service.MonthlySummary(f.ctx, may)
		require.NoError(t, err)

		// then
		assert.Equal(t, first, second)
	})

	t.Run("income carries forward from the closest prior month", func(t *testing.T) {
		// given
		f := setupStatsTest(t)
		require.NoError(t, f.incomeRepo.Set(f.ctx, month.MustParse("2024-01"), money.Cents(1000)))
		require.NoError(t, f.incomeRepo.Set(f.ctx, month.MustParse("2024-03"), money.Cents(2000)))

		// when
		summary, err := f.service.MonthlySummary(f.ctx, may)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(2000), summary.Income)
	})
}

func TestStatsService_SavingsTrend(t *testing.T) {
	t.Run("should produce a running sum seeded with initial savings", func(t *testing.T) {
		// given
		f := setupStatsTest(t)
		_, err := settings.NewSettingsService(f.settingsRepo).Update(f.ctx, settings.Settings{
			InitialSavings: money.Cents(10000),
			Currency:       "USD",
		})
		require.NoError(t, err)
		require.NoError(t, f.incomeRepo.Set(f.ctx, month.MustParse("2024-01"), money.Cents(100000)))
		f.addExpense(t, "Rent", 80000, category.Needs, month.MustParse("2024-01"))
		f.addExpense(t, "Rent", 90000, category.Needs, month.MustParse("2024-02"))

		// when
		trend, err := f.service.SavingsTrend(f.ctx, month.MustParse("2024-03"))

		// then
		require.NoError(t, err)
		require.Len(t, trend, 3)

		assert.Equal(t, month.MustParse("2024-01"), trend[0].Month)
		assert.Equal(t, money.Cents(20000), trend[0].Net)
		assert.Equal(t, money.Cents(30000), trend[0].Cumulative)

		// income carries forward into February
		assert.Equal(t, month.MustParse("2024-02"), trend[1].Month)
		assert.Equal(t, money.Cents(10000), trend[1].Net)
		assert.Equal(t, money.Cents(40000), trend[1].Cumulative)

		// viewed month appears even without expenses
		assert.Equal(t, month.MustParse("2024-03"), trend[2].Month)
		assert.Equal(t, money.Cents(0), trend[2].Spent)
		assert.Equal(t, money.Cents(140000), trend[2].Cumulative)
	})

	t.Run("empty ledger yields a single point for the viewed month", func(t *testing.T) {
		f := setupStatsTest(t)

		trend, err := f.service.SavingsTrend(f.ctx, month.MustParse("2024-03"))
		require.NoError(t, err)
		require.Len(t, trend, 1)
		assert.Equal(t, month.MustParse("2024-03"), trend[0].Month)
		assert.Equal(t, money.Cents(0), trend[0].Cumulative)
	})
}

func TestStatsService_CategoryBreakdown(t *testing.T) {
	may := month.MustParse("2024-05")

	t.Run("should group by trimmed description and rank by total", func(t *testing.T) {
		// given
		f := setupStatsTest(t)
		f.addExpense(t, "Coffee", 500, category.Wants, may)
		f.addExpense(t, "Coffee ", 300, category.Wants, may)
		f.addExpense(t, "Cinema", 2200, category.Wants, may)
		f.addExpense(t, "Rent", 80000, category.Needs, may)

		// when
		groups, err := f.service.CategoryBreakdown(f.ctx, may, category.Wants)

		// then
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, DescriptionGroup{Description: "Cinema", Total: 2200, Count: 1}, groups[0])
		assert.Equal(t, DescriptionGroup{Description: "Coffee", Total: 800, Count: 2}, groups[1])
	})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		// given
		f := setupStatsTest(t)
		_, err := f.expenses.Create(f.ctx, expense.Expense{
			Description: "Alpha", Amount: 1000, Category: category.Wants,
			Date: may.FirstDay(),
		})
		require.NoError(t, err)
		_, err = f.expenses.Create(f.ctx, expense.Expense{
			Description: "Beta", Amount: 1000, Category: category.Wants,
			Date: may.FirstDay().AddDate(0, 0, 1),
		})
		require.NoError(t, err)

		// when
		groups, err := f.service.CategoryBreakdown(f.ctx, may, category.Wants)

		// then
		require.NoError(t, err)
		require.Len(t, groups, 2)
		assert.Equal(t, "Alpha", groups[0].Description)
		assert.Equal(t, "Beta", groups[1].Description)
	})

	t.Run("should reject unknown categories", func(t *testing.T) {
		f := setupStatsTest(t)

		_, err := f.service.CategoryBreakdown(f.ctx, may, "FUN")
		require.Error(t, err)
	})
}
