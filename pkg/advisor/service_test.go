package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/income"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/fourfold/fourfold/pkg/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type advisorFixture struct {
	service    *AdvisorServiceImpl
	client     *StubClient
	expenses   *expense.ExpenseServiceImpl
	incomeRepo *income.StubIncomeRepo
	ctx        context.Context
}

func setupAdvisorTest(t *testing.T) advisorFixture {
	client := NewStubClient()
	expenseRepo := expense.NewStubExpenseRepo()
	incomeRepo := income.NewStubIncomeRepo()
	expenseService := expense.NewExpenseService(expenseRepo)
	service := NewAdvisorService(
		client,
		expenseService,
		income.NewIncomeService(incomeRepo),
		settings.NewSettingsService(settings.NewStubSettingsRepo()),
	)
	t.Cleanup(func() {
		client.Reset()
		expenseRepo.Reset()
	})
	return advisorFixture{
		service:    service,
		client:     client,
		expenses:   expenseService,
		incomeRepo: incomeRepo,
		ctx:        context.Background(),
	}
}

func TestAdvisorService_Review(t *testing.T) {
	may := month.MustParse("2024-05")

	t.Run("should send resolved income and the month's expenses", func(t *testing.T) {
		// given
		f := setupAdvisorTest(t)
		f.client.ReviewText = "Looking good overall."
		require.NoError(t, f.incomeRepo.Set(f.ctx, may, money.Cents(100000)))
		_, err := f.expenses.Create(f.ctx, expense.Expense{
			Description: "Rent", Amount: 85000, Category: category.Needs, Date: may.FirstDay(),
		})
		require.NoError(t, err)

		// when
		advice, err := f.service.Review(f.ctx, may)

		// then
		require.NoError(t, err)
		assert.Equal(t, "Looking good overall.", advice)
		require.NotNil(t, f.client.LastReviewRequest)
		assert.Equal(t, "2024-05", f.client.LastReviewRequest.Month)
		assert.Equal(t, money.Cents(100000), f.client.LastReviewRequest.Income)
		assert.Len(t, f.client.LastReviewRequest.Expenses, 1)
	})

	t.Run("should wrap collaborator failures into a readable error", func(t *testing.T) {
		// given
		f := setupAdvisorTest(t)
		f.client.ReviewErr = errors.New("quota exceeded")

		// when
		_, err := f.service.Review(f.ctx, may)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "budget review failed")
	})

	t.Run("should surface the missing credential error", func(t *testing.T) {
		f := setupAdvisorTest(t)
		f.client.ReviewErr = ErrNotConfigured

		_, err := f.service.Review(f.ctx, may)
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestAdvisorService_ImportStatement(t *testing.T) {
	date := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	document := Document{MimeType: "text/csv", Text: "raw statement"}

	t.Run("should drop IGNORE, sum income and keep expenses", func(t *testing.T) {
		// given
		f := setupAdvisorTest(t)
		f.client.Records = []StatementRecord{
			{Description: "Salary", Amount: 3000000, Date: date, Type: RecordIncome},
			{Description: "Groceries", Amount: 50000, Date: date, Type: RecordExpense, Category: category.Needs},
			{Description: "Internal transfer", Amount: 99900, Date: date, Type: RecordIgnore},
		}

		// when
		result, err := f.service.ImportStatement(f.ctx, document)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(3000000), result.DetectedIncome)
		require.Len(t, result.Expenses, 1)
		assert.Equal(t, "Groceries", result.Expenses[0].Description)
		assert.Equal(t, money.Cents(50000), result.Expenses[0].Amount)
		assert.Equal(t, category.Needs, result.Expenses[0].Category)
	})

	t.Run("should substitute the default category when absent", func(t *testing.T) {
		// given
		f := setupAdvisorTest(t)
		f.client.Records = []StatementRecord{
			{Description: "Mystery shop", Amount: 1000, Date: date, Type: RecordExpense},
		}

		// when
		result, err := f.service.ImportStatement(f.ctx, document)

		// then
		require.NoError(t, err)
		require.Len(t, result.Expenses, 1)
		assert.Equal(t, DefaultCategory, result.Expenses[0].Category)
	})

	t.Run("should sum multiple income records into one figure", func(t *testing.T) {
		// given
		f := setupAdvisorTest(t)
		f.client.Records = []StatementRecord{
			{Description: "Salary", Amount: 200000, Date: date, Type: RecordIncome},
			{Description: "Refund", Amount: 1500, Date: date, Type: RecordIncome},
		}

		// when
		result, err := f.service.ImportStatement(f.ctx, document)

		// then
		require.NoError(t, err)
		assert.Equal(t, money.Cents(201500), result.DetectedIncome)
		assert.Empty(t, result.Expenses)
	})

	t.Run("should reject an empty document before calling the collaborator", func(t *testing.T) {
		f := setupAdvisorTest(t)

		_, err := f.service.ImportStatement(f.ctx, Document{MimeType: "text/csv"})

		assert.ErrorIs(t, err, ErrEmptyDocument)
		assert.Nil(t, f.client.LastDocument)
	})

	t.Run("should wrap collaborator failures", func(t *testing.T) {
		f := setupAdvisorTest(t)
		f.client.ParseErr = errors.New("service unavailable")

		_, err := f.service.ImportStatement(f.ctx, document)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "statement import failed")
	})
}
