package settings

import "context"

type StubSettingsRepo struct {
	settings Settings
	stored   bool
}

func NewStubSettingsRepo() *StubSettingsRepo {
	return &StubSettingsRepo{}
}

func (s *StubSettingsRepo) Get(ctx context.Context) (Settings, error) {
	if !s.stored {
		return Settings{Currency: "USD"}, nil
	}
	return s.settings, nil
}

func (s *StubSettingsRepo) Store(ctx context.Context, settings Settings) error {
	s.settings = settings
	s.stored = true
	return nil
}

func (s *StubSettingsRepo) Reset() {
	s.settings = Settings{}
	s.stored = false
}
