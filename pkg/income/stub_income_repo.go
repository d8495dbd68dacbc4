package income

import (
	"context"

	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
)

type StubIncomeRepo struct {
	entries    map[month.Month]money.Cents
	def        money.Cents
	hasDefault bool
}

func NewStubIncomeRepo() *StubIncomeRepo {
	return &StubIncomeRepo{entries: map[month.Month]money.Cents{}}
}

func (s *StubIncomeRepo) GetHistory(ctx context.Context) (History, error) {
	entries := make(map[month.Month]money.Cents, len(s.entries))
	for m, amount := range s.entries {
		entries[m] = amount
	}
	return History{Entries: entries, Default: s.def, HasDefault: s.hasDefault}, nil
}

func (s *StubIncomeRepo) Set(ctx context.Context, m month.Month, amount money.Cents) error {
	s.entries[m] = amount
	return nil
}

func (s *StubIncomeRepo) Delete(ctx context.Context, m month.Month) (bool, error) {
	if _, ok := s.entries[m]; !ok {
		return false, nil
	}
	delete(s.entries, m)
	return true, nil
}

func (s *StubIncomeRepo) Reset(ctx context.Context) error {
	s.entries = map[month.Month]money.Cents{}
	s.def = 0
	s.hasDefault = false
	return nil
}

// SetLegacyDefault seeds the pre-history flat income value.
func (s *StubIncomeRepo) SetLegacyDefault(amount money.Cents) {
	s.def = amount
	s.hasDefault = true
}
