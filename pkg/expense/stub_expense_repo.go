package expense

import (
	"context"
	"sort"

	"github.com/fourfold/fourfold/pkg/month"
)

type StubExpenseRepo struct {
	data map[string]Expense
}

func NewStubExpenseRepo() *StubExpenseRepo {
	return &StubExpenseRepo{data: map[string]Expense{}}
}

func (s *StubExpenseRepo) Store(ctx context.Context, expense Expense) error {
	s.data[expense.ID] = expense
	return nil
}

func (s *StubExpenseRepo) GetAll(ctx context.Context) ([]Expense, error) {
	expenses := make([]Expense, 0, len(s.data))
	for _, expense := range s.data {
		expenses = append(expenses, expense)
	}
	sortByDate(expenses)
	return expenses, nil
}

func (s *StubExpenseRepo) GetByMonth(ctx context.Context, m month.Month) ([]Expense, error) {
	var expenses []Expense
	for _, expense := range s.data {
		if m.Contains(expense.Date) {
			expenses = append(expenses, expense)
		}
	}
	sortByDate(expenses)
	return expenses, nil
}

func (s *StubExpenseRepo) Update(ctx context.Context, expense Expense) (bool, error) {
	if _, ok := s.data[expense.ID]; !ok {
		return false, nil
	}
	s.data[expense.ID] = expense
	return true, nil
}

func (s *StubExpenseRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubExpenseRepo) Reset() {
	s.data = map[string]Expense{}
}

func sortByDate(expenses []Expense) {
	sort.Slice(expenses, func(i, j int) bool {
		if !expenses[i].Date.Equal(expenses[j].Date) {
			return expenses[i].Date.Before(expenses[j].Date)
		}
		return expenses[i].ID < expenses[j].ID
	})
}
