package expense

import (
	"context"
	"fmt"

	"github.com/fourfold/fourfold/pkg/month"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type ExpenseService interface {
	GetAll(ctx context.Context) ([]Expense, error)
	GetByMonth(ctx context.Context, m month.Month) ([]Expense, error)
	Create(ctx context.Context, expense Expense) (Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CarryForward(ctx context.Context, target month.Month) ([]Expense, error)
}

type ExpenseServiceImpl struct {
	repo ExpenseRepo
}

func NewExpenseService(repo ExpenseRepo) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{repo: repo}
}

func (s *ExpenseServiceImpl) GetAll(ctx context.Context) ([]Expense, error) {
	return s.repo.GetAll(ctx)
}

func (s *ExpenseServiceImpl) GetByMonth(ctx context.Context, m month.Month) ([]Expense, error) {
	return s.repo.GetByMonth(ctx, m)
}

func (s *ExpenseServiceImpl) Create(ctx context.Context, expense Expense) (Expense, error) {
	if err := expense.Validate(); err != nil {
		return Expense{}, err
	}
	expense.ID = uuid.NewString()
	if err := s.repo.Store(ctx, expense); err != nil {
		return Expense{}, err
	}
	return expense, nil
}

func (s *ExpenseServiceImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	if err := expense.Validate(); err != nil {
		return false, err
	}
	updated, err := s.repo.Update(ctx, expense)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("expense not updated, probably because it does not exist (%s)", expense.ID)
		return false, nil
	}
	return true, nil
}

func (s *ExpenseServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if !deleted {
		log.Warnf("expense not deleted, probably because it does not exist (%s)", id)
		return false, nil
	}
	return true, nil
}

// CarryForward copies distinct recurring expenses into the target month.
// Recurring entries are deduplicated by description+amount; any entry with
// the same description+amount already dated in the target month blocks the
// copy, so running carry-forward twice creates nothing the second time.
func (s *ExpenseServiceImpl) CarryForward(ctx context.Context, target month.Month) ([]Expense, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not load ledger for carry-forward: %w", err)
	}

	existing := make(map[DedupKey]bool)
	for _, e := range all {
		if target.Contains(e.Date) {
			existing[e.Key()] = true
		}
	}

	seen := make(map[DedupKey]bool)
	var created []Expense
	for _, e := range all {
		if !e.Recurring {
			continue
		}
		key := e.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		if existing[key] {
			continue
		}

		copied := Expense{
			ID:          uuid.NewString(),
			Description: e.Description,
			Amount:      e.Amount,
			Category:    e.Category,
			Date:        target.FirstDay(),
			Recurring:   e.Recurring,
		}
		if err := s.repo.Store(ctx, copied); err != nil {
			return nil, fmt.Errorf("could not store carried-forward expense: %w", err)
		}
		created = append(created, copied)
	}

	if len(created) > 0 {
		log.Infof("carried %d recurring expenses forward into %s", len(created), target)
	}
	return created, nil
}
