package expense

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

type ExpenseRepo interface {
	// Store stores a new Expense to the database
	Store(ctx context.Context, expense Expense) error
	GetAll(ctx context.Context) ([]Expense, error)
	GetByMonth(ctx context.Context, m month.Month) ([]Expense, error)
	Update(ctx context.Context, expense Expense) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type ExpenseRepoImpl struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) *ExpenseRepoImpl {
	return &ExpenseRepoImpl{db: db}
}

func (r ExpenseRepoImpl) Store(ctx context.Context, expense Expense) error {
	query := `INSERT INTO expense (id, description, amount, category, date, recurring)
				VALUES (?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		expense.ID,
		expense.Description,
		int64(expense.Amount),
		string(expense.Category),
		expense.Date.Format(dateFormat),
		expense.Recurring,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	return nil
}

func (r ExpenseRepoImpl) GetAll(ctx context.Context) ([]Expense, error) {
	query := `SELECT id, description, amount, category, date, recurring FROM expense ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query expenses: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r ExpenseRepoImpl) GetByMonth(ctx context.Context, m month.Month) ([]Expense, error) {
	query := `SELECT id, description, amount, category, date, recurring FROM expense
				WHERE date >= ? AND date < ? ORDER BY date, id`
	from := m.FirstDay().Format(dateFormat)
	to := m.Next().FirstDay().Format(dateFormat)
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		err := fmt.Errorf("could not query expenses for month %s: %w", m, err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	return scanExpenses(rows)
}

func (r ExpenseRepoImpl) Update(ctx context.Context, expense Expense) (bool, error) {
	query := `UPDATE expense SET
                  description = ?,
                  amount = ?,
                  category = ?,
                  date = ?,
                  recurring = ?
              WHERE id = ?`
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		expense.Description,
		int64(expense.Amount),
		string(expense.Category),
		expense.Date.Format(dateFormat),
		expense.Recurring,
		expense.ID,
	)
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

func (r ExpenseRepoImpl) Delete(ctx context.Context, id string) (bool, error) {
	query := "DELETE FROM expense WHERE id = ?"
	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return false, err
	}
	defer stmt.Close()
	result, err := stmt.ExecContext(ctx, id)
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

func scanExpenses(rows *sql.Rows) ([]Expense, error) {
	var expenses []Expense
	for rows.Next() {
		var expense Expense
		var amount int64
		var categoryString, dateString string
		if err := rows.Scan(
			&expense.ID,
			&expense.Description,
			&amount,
			&categoryString,
			&dateString,
			&expense.Recurring,
		); err != nil {
			err := fmt.Errorf("could not scan expense: %w", err)
			log.Error(err)
			return nil, err
		}
		expense.Amount = money.Cents(amount)
		expense.Category = category.ID(categoryString)
		date, err := time.Parse(dateFormat, dateString)
		if err != nil {
			err := fmt.Errorf("could not parse expense date: %w", err)
			log.Error(err)
			return nil, err
		}
		expense.Date = date
		expenses = append(expenses, expense)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return expenses, nil
}
