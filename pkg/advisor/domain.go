package advisor

import (
	"time"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/money"
)

// RecordType classifies a line of an uploaded bank statement.
type RecordType string

const (
	RecordIncome  RecordType = "INCOME"
	RecordExpense RecordType = "EXPENSE"
	RecordIgnore  RecordType = "IGNORE"
)

// StatementRecord is one classified transaction returned by the
// collaborator. Category is only set for EXPENSE records and may be
// absent even then.
type StatementRecord struct {
	Description string
	Amount      money.Cents
	Date        time.Time
	Type        RecordType
	Category    category.ID
}

// Document is an uploaded bank statement. Text carries plain statements
// (CSV), Data carries binary ones (PDF).
type Document struct {
	MimeType string
	Text     string
	Data     []byte
}

// ReviewRequest is the aggregated summary sent for a budget critique.
type ReviewRequest struct {
	Month    string
	Income   money.Cents
	Currency string
	Expenses []expense.Expense
}

// ImportResult is the post-processed outcome of a statement import:
// IGNORE records dropped, income summed into one figure, expense records
// turned into ledger drafts.
type ImportResult struct {
	DetectedIncome money.Cents
	Expenses       []expense.Expense
}
