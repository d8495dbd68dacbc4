package app

import (
	"github.com/fourfold/fourfold/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Expense ledger
	r.HandleFunc("/api/expense", deps.ExpenseHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense/carry-forward", deps.ExpenseHandler.CarryForward).Methods("POST")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Income history
	r.HandleFunc("/api/income", deps.IncomeHandler.GetResolved).Queries("month", "{month}").Methods("GET")
	r.HandleFunc("/api/income/history", deps.IncomeHandler.GetHistory).Methods("GET")
	r.HandleFunc("/api/income/history", deps.IncomeHandler.ResetHistory).Methods("DELETE")
	r.HandleFunc("/api/income/{month}", deps.IncomeHandler.Set).Methods("PUT")
	r.HandleFunc("/api/income/{month}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Settings
	r.HandleFunc("/api/settings", deps.SettingsHandler.Get).Methods("GET")
	r.HandleFunc("/api/settings", deps.SettingsHandler.Update).Methods("PUT")

	// Stats
	r.HandleFunc("/api/stats/monthly", deps.StatsHandler.GetMonthlySummary).Methods("GET")
	r.HandleFunc("/api/stats/monthly/{category}/breakdown", deps.StatsHandler.GetCategoryBreakdown).Methods("GET")
	r.HandleFunc("/api/stats/savings-trend", deps.StatsHandler.GetSavingsTrend).Methods("GET")

	// Advisor (generative-AI collaborator)
	r.HandleFunc("/api/advisor/review", deps.AdvisorHandler.Review).Methods("POST")
	r.HandleFunc("/api/advisor/statement", deps.AdvisorHandler.ImportStatement).Methods("POST")
}
