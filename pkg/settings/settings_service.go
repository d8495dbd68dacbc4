package settings

import (
	"context"
	"errors"
)

var ErrNegativeInitialSavings = errors.New("initial savings must not be negative")

type SettingsService interface {
	Get(ctx context.Context) (Settings, error)
	Update(ctx context.Context, settings Settings) (Settings, error)
}

type SettingsServiceImpl struct {
	repo SettingsRepo
}

func NewSettingsService(repo SettingsRepo) *SettingsServiceImpl {
	return &SettingsServiceImpl{repo: repo}
}

func (s *SettingsServiceImpl) Get(ctx context.Context) (Settings, error) {
	return s.repo.Get(ctx)
}

func (s *SettingsServiceImpl) Update(ctx context.Context, settings Settings) (Settings, error) {
	if settings.InitialSavings < 0 {
		return Settings{}, ErrNegativeInitialSavings
	}
	if settings.Currency == "" {
		settings.Currency = "USD"
	}
	if err := s.repo.Store(ctx, settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}
