package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fourfold/fourfold/pkg/money"
)

type SettingsDTO struct {
	InitialSavings float64 `json:"initialSavings"`
	Currency       string  `json:"currency"`
}

type SettingsHandler struct {
	settingsService SettingsService
}

func NewSettingsHandler(settingsService SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService}
}

func (handler *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	settings, err := handler.settingsService.Get(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SettingsToDTO(settings)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := handler.settingsService.Update(r.Context(), Settings{
		InitialSavings: money.FromFloat(dto.InitialSavings),
		Currency:       dto.Currency,
	})
	if err != nil {
		if errors.Is(err, ErrNegativeInitialSavings) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SettingsToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func SettingsToDTO(settings Settings) SettingsDTO {
	return SettingsDTO{
		InitialSavings: settings.InitialSavings.Float64(),
		Currency:       settings.Currency,
	}
}
