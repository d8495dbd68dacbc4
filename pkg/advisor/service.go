package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/income"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/fourfold/fourfold/pkg/settings"
	log "github.com/sirupsen/logrus"
)

var ErrEmptyDocument = errors.New("statement document is empty")

// DefaultCategory is substituted when the collaborator omits a category
// on an expense record.
const DefaultCategory = category.Needs

type AdvisorService interface {
	// Review produces a natural-language critique of one month's budget
	Review(ctx context.Context, m month.Month) (string, error)
	// ImportStatement classifies an uploaded bank statement into ledger drafts
	ImportStatement(ctx context.Context, document Document) (ImportResult, error)
}

type AdvisorServiceImpl struct {
	client          Client
	expenseService  expense.ExpenseService
	incomeService   income.IncomeService
	settingsService settings.SettingsService
}

func NewAdvisorService(
	client Client,
	expenseService expense.ExpenseService,
	incomeService income.IncomeService,
	settingsService settings.SettingsService,
) *AdvisorServiceImpl {
	return &AdvisorServiceImpl{
		client:          client,
		expenseService:  expenseService,
		incomeService:   incomeService,
		settingsService: settingsService,
	}
}

func (s *AdvisorServiceImpl) Review(ctx context.Context, m month.Month) (string, error) {
	monthIncome, err := s.incomeService.Resolve(ctx, m)
	if err != nil {
		return "", err
	}
	expenses, err := s.expenseService.GetByMonth(ctx, m)
	if err != nil {
		return "", err
	}
	userSettings, err := s.settingsService.Get(ctx)
	if err != nil {
		return "", err
	}

	advice, err := s.client.Review(ctx, ReviewRequest{
		Month:    m.String(),
		Income:   monthIncome,
		Currency: userSettings.Currency,
		Expenses: expenses,
	})
	if err != nil {
		return "", fmt.Errorf("budget review failed: %w", err)
	}
	return advice, nil
}

func (s *AdvisorServiceImpl) ImportStatement(ctx context.Context, document Document) (ImportResult, error) {
	if len(document.Data) == 0 && document.Text == "" {
		return ImportResult{}, ErrEmptyDocument
	}

	records, err := s.client.ParseStatement(ctx, document)
	if err != nil {
		return ImportResult{}, fmt.Errorf("statement import failed: %w", err)
	}

	result := ImportResult{}
	ignored := 0
	for _, record := range records {
		switch record.Type {
		case RecordIncome:
			result.DetectedIncome += record.Amount
		case RecordExpense:
			categoryId := record.Category
			if !category.Valid(categoryId) {
				categoryId = DefaultCategory
			}
			result.Expenses = append(result.Expenses, expense.Expense{
				Description: record.Description,
				Amount:      record.Amount,
				Category:    categoryId,
				Date:        record.Date,
			})
		default:
			ignored++
		}
	}
	log.Debugf("statement import: %d expenses, %d ignored, detected income %s",
		len(result.Expenses), ignored, result.DetectedIncome)

	return result, nil
}
