package app

import (
	"database/sql"

	"github.com/fourfold/fourfold/internal/config"
	"github.com/fourfold/fourfold/internal/utils"
	"github.com/fourfold/fourfold/pkg/advisor"
	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/income"
	"github.com/fourfold/fourfold/pkg/settings"
	"github.com/fourfold/fourfold/pkg/stats"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ExpenseRepo    expense.ExpenseRepo
	ExpenseService *expense.ExpenseServiceImpl
	ExpenseHandler *expense.ExpenseHandler

	IncomeRepo    income.IncomeRepo
	IncomeService *income.IncomeServiceImpl
	IncomeHandler *income.IncomeHandler

	SettingsRepo    settings.SettingsRepo
	SettingsService *settings.SettingsServiceImpl
	SettingsHandler *settings.SettingsHandler

	StatsService *stats.StatsServiceImpl
	StatsHandler *stats.StatsHandler

	AdvisorClient  advisor.Client
	AdvisorService *advisor.AdvisorServiceImpl
	AdvisorHandler *advisor.AdvisorHandler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewExpenseHandler(deps.ExpenseService)

	deps.IncomeRepo = income.NewIncomeRepo(db)
	deps.IncomeService = income.NewIncomeService(deps.IncomeRepo)
	deps.IncomeHandler = income.NewIncomeHandler(deps.IncomeService)

	deps.SettingsRepo = settings.NewSettingsRepo(db)
	deps.SettingsService = settings.NewSettingsService(deps.SettingsRepo)
	deps.SettingsHandler = settings.NewSettingsHandler(deps.SettingsService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.ExpenseService, deps.IncomeService, deps.SettingsService)
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService)

	deps.AdvisorClient = advisor.NewGeminiClient(cfg.Advisor)
	deps.AdvisorService = advisor.NewAdvisorService(deps.AdvisorClient, deps.ExpenseService, deps.IncomeService, deps.SettingsService)
	deps.AdvisorHandler = advisor.NewAdvisorHandler(deps.AdvisorService)

	return deps
}
