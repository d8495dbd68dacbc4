package income

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/gorilla/mux"
)

type ResolvedIncomeDTO struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type IncomeEntryDTO struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

type HistoryDTO struct {
	Entries       []IncomeEntryDTO `json:"entries"`
	DefaultAmount *float64         `json:"defaultAmount,omitempty"`
}

type IncomeHandler struct {
	incomeService IncomeService
}

func NewIncomeHandler(incomeService IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService}
}

// GetResolved returns the income effective for the requested month,
// following exact / legacy-default / closest-prior-month resolution.
func (handler *IncomeHandler) GetResolved(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	m, err := month.Parse(r.URL.Query().Get("month"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	amount, err := handler.incomeService.Resolve(r.Context(), m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ResolvedIncomeDTO{Month: m.String(), Amount: amount.Float64()}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *IncomeHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	history, err := handler.incomeService.GetHistory(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dto := HistoryDTO{Entries: make([]IncomeEntryDTO, 0, len(history.Entries))}
	for m, amount := range history.Entries {
		dto.Entries = append(dto.Entries, IncomeEntryDTO{Month: m.String(), Amount: amount.Float64()})
	}
	sort.Slice(dto.Entries, func(i, j int) bool {
		return dto.Entries[i].Month < dto.Entries[j].Month
	})
	if history.HasDefault {
		def := history.Default.Float64()
		dto.DefaultAmount = &def
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *IncomeHandler) Set(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	m, err := month.Parse(vars["month"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var dto struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := handler.incomeService.Set(r.Context(), m, money.FromFloat(dto.Amount)); err != nil {
		if errors.Is(err, ErrNegativeIncome) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(IncomeEntryDTO{Month: m.String(), Amount: dto.Amount}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *IncomeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	m, err := month.Parse(vars["month"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := handler.incomeService.Delete(r.Context(), m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Income entry not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ResetHistory wipes the whole income history, legacy default included.
func (handler *IncomeHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	if err := handler.incomeService.Reset(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
