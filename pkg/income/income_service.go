package income

import (
	"context"
	"errors"

	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
)

var ErrNegativeIncome = errors.New("income amount must not be negative")

type IncomeService interface {
	// Resolve returns the income effective for the given month
	Resolve(ctx context.Context, m month.Month) (money.Cents, error)
	GetHistory(ctx context.Context) (History, error)
	Set(ctx context.Context, m month.Month, amount money.Cents) error
	Delete(ctx context.Context, m month.Month) (bool, error)
	Reset(ctx context.Context) error
}

type IncomeServiceImpl struct {
	repo IncomeRepo
}

func NewIncomeService(repo IncomeRepo) *IncomeServiceImpl {
	return &IncomeServiceImpl{repo: repo}
}

func (s *IncomeServiceImpl) Resolve(ctx context.Context, m month.Month) (money.Cents, error) {
	history, err := s.repo.GetHistory(ctx)
	if err != nil {
		return 0, err
	}
	return history.Resolve(m), nil
}

func (s *IncomeServiceImpl) GetHistory(ctx context.Context) (History, error) {
	return s.repo.GetHistory(ctx)
}

func (s *IncomeServiceImpl) Set(ctx context.Context, m month.Month, amount money.Cents) error {
	if amount < 0 {
		return ErrNegativeIncome
	}
	return s.repo.Set(ctx, m, amount)
}

func (s *IncomeServiceImpl) Delete(ctx context.Context, m month.Month) (bool, error) {
	return s.repo.Delete(ctx, m)
}

func (s *IncomeServiceImpl) Reset(ctx context.Context) error {
	return s.repo.Reset(ctx)
}
