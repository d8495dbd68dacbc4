package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fourfold/fourfold/pkg/money"
	log "github.com/sirupsen/logrus"
)

type SettingsRepo interface {
	// Get returns the stored settings, or zero-value defaults when unset
	Get(ctx context.Context) (Settings, error)
	Store(ctx context.Context, settings Settings) error
}

type SettingsRepoImpl struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepoImpl {
	return &SettingsRepoImpl{db: db}
}

func (r SettingsRepoImpl) Get(ctx context.Context) (Settings, error) {
	query := `SELECT initial_savings, currency FROM settings WHERE id = 1`
	row := r.db.QueryRowContext(ctx, query)

	var initialSavings int64
	var currency string
	if err := row.Scan(&initialSavings, &currency); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Settings{Currency: "USD"}, nil
		}
		err := fmt.Errorf("could not read settings: %w", err)
		log.Error(err)
		return Settings{}, err
	}

	return Settings{
		InitialSavings: money.Cents(initialSavings),
		Currency:       currency,
	}, nil
}

func (r SettingsRepoImpl) Store(ctx context.Context, settings Settings) error {
	query := `INSERT INTO settings (id, initial_savings, currency) VALUES (1, ?, ?)
				ON CONFLICT (id) DO UPDATE SET initial_savings = excluded.initial_savings, currency = excluded.currency`
	if _, err := r.db.ExecContext(ctx, query, int64(settings.InitialSavings), settings.Currency); err != nil {
		err := fmt.Errorf("could not store settings: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
