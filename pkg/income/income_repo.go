package income

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	log "github.com/sirupsen/logrus"
)

// legacyDefaultKey is the row key carried over from the flat pre-history
// income format. It is never written for new data.
const legacyDefaultKey = "default"

type IncomeRepo interface {
	GetHistory(ctx context.Context) (History, error)
	// Set stores or replaces the income amount for a month
	Set(ctx context.Context, m month.Month, amount money.Cents) error
	Delete(ctx context.Context, m month.Month) (bool, error)
	// Reset removes the whole history, the legacy default included
	Reset(ctx context.Context) error
}

type IncomeRepoImpl struct {
	db *sql.DB
}

func NewIncomeRepo(db *sql.DB) *IncomeRepoImpl {
	return &IncomeRepoImpl{db: db}
}

func (r IncomeRepoImpl) GetHistory(ctx context.Context) (History, error) {
	query := `SELECT month, amount FROM income_history`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query income history: %w", err)
		log.Error(err)
		return History{}, err
	}
	defer rows.Close()

	history := History{Entries: map[month.Month]money.Cents{}}
	for rows.Next() {
		var key string
		var amount int64
		if err := rows.Scan(&key, &amount); err != nil {
			err := fmt.Errorf("could not scan income history row: %w", err)
			log.Error(err)
			return History{}, err
		}
		if key == legacyDefaultKey {
			history.Default = money.Cents(amount)
			history.HasDefault = true
			continue
		}
		m, err := month.Parse(key)
		if err != nil {
			err := fmt.Errorf("invalid month key in income history: %w", err)
			log.Error(err)
			return History{}, err
		}
		history.Entries[m] = money.Cents(amount)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return History{}, err
	}

	return history, nil
}

func (r IncomeRepoImpl) Set(ctx context.Context, m month.Month, amount money.Cents) error {
	query := `INSERT INTO income_history (month, amount) VALUES (?, ?)
				ON CONFLICT (month) DO UPDATE SET amount = excluded.amount`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx, m.String(), int64(amount)); err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r IncomeRepoImpl) Delete(ctx context.Context, m month.Month) (bool, error) {
	query := "DELETE FROM income_history WHERE month = ?"
	result, err := r.db.ExecContext(ctx, query, m.String())
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r IncomeRepoImpl) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM income_history"); err != nil {
		err := fmt.Errorf("could not reset income history: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
