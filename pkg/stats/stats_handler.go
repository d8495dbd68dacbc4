package stats

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/gorilla/mux"
)

type CategoryStatsDTO struct {
	Category string  `json:"category"`
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Spent    float64 `json:"spent"`
	Target   float64 `json:"target"`
	Over     bool    `json:"over"`
	Usage    float64 `json:"usage"`
}

type MonthlySummaryDTO struct {
	Month      string             `json:"month"`
	Income     float64            `json:"income"`
	Categories []CategoryStatsDTO `json:"categories"`
	TotalSpent float64            `json:"totalSpent"`
	Remaining  float64            `json:"remaining"`
}

type TrendPointDTO struct {
	Month      string  `json:"month"`
	Income     float64 `json:"income"`
	Spent      float64 `json:"spent"`
	Net        float64 `json:"net"`
	Cumulative float64 `json:"cumulative"`
}

type DescriptionGroupDTO struct {
	Description string  `json:"description"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

type StatsHandler struct {
	statsService StatsService
}

func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{statsService}
}

func (handler *StatsHandler) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	m, ok := monthFromRequest(w, r)
	if !ok {
		return
	}

	summary, err := handler.statsService.MonthlySummary(r.Context(), m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := MonthlySummaryDTO{
		Month:      summary.Month.String(),
		Income:     summary.Income.Float64(),
		Categories: make([]CategoryStatsDTO, 0, len(summary.Categories)),
		TotalSpent: summary.TotalSpent.Float64(),
		Remaining:  summary.Remaining.Float64(),
	}
	for _, c := range summary.Categories {
		dto.Categories = append(dto.Categories, CategoryStatsDTO{
			Category: string(c.Category.ID),
			Label:    c.Category.Label,
			Color:    c.Category.Color,
			Spent:    c.Spent.Float64(),
			Target:   c.Target.Float64(),
			Over:     c.Over,
			Usage:    c.Usage,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *StatsHandler) GetSavingsTrend(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	m, ok := monthFromRequest(w, r)
	if !ok {
		return
	}

	trend, err := handler.statsService.SavingsTrend(r.Context(), m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := make([]TrendPointDTO, 0, len(trend))
	for _, p := range trend {
		dto = append(dto, TrendPointDTO{
			Month:      p.Month.String(),
			Income:     p.Income.Float64(),
			Spent:      p.Spent.Float64(),
			Net:        p.Net.Float64(),
			Cumulative: p.Cumulative.Float64(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *StatsHandler) GetCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	categoryId := category.ID(vars["category"])
	if !category.Valid(categoryId) {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}

	m, ok := monthFromRequest(w, r)
	if !ok {
		return
	}

	groups, err := handler.statsService.CategoryBreakdown(r.Context(), m, categoryId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := make([]DescriptionGroupDTO, 0, len(groups))
	for _, g := range groups {
		dto = append(dto, DescriptionGroupDTO{
			Description: g.Description,
			Total:       g.Total.Float64(),
			Count:       g.Count,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// monthFromRequest parses the optional month query parameter, defaulting
// to the current month. Writes a 400 response and returns false on an
// invalid value.
func monthFromRequest(w http.ResponseWriter, r *http.Request) (month.Month, bool) {
	monthParam := r.URL.Query().Get("month")
	if monthParam == "" {
		return month.FromTime(time.Now()), true
	}
	m, err := month.Parse(monthParam)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return month.Month{}, false
	}
	return m, true
}
