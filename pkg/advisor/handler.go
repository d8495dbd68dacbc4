package advisor

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fourfold/fourfold/pkg/expense"
	"github.com/fourfold/fourfold/pkg/month"
	log "github.com/sirupsen/logrus"
)

type ReviewRequestDTO struct {
	Month string `json:"month"`
}

type ReviewResponseDTO struct {
	Month  string `json:"month"`
	Advice string `json:"advice"`
}

type StatementRequestDTO struct {
	MimeType string `json:"mimeType"`
	// Data carries base64-encoded binary statements (PDF)
	Data string `json:"data,omitempty"`
	// Text carries plain statements (CSV)
	Text string `json:"text,omitempty"`
}

type ImportResultDTO struct {
	DetectedIncome float64              `json:"detectedIncome"`
	Expenses       []expense.ExpenseDTO `json:"expenses"`
}

type AdvisorHandler struct {
	advisorService AdvisorService
}

func NewAdvisorHandler(advisorService AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService}
}

func (handler *AdvisorHandler) Review(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto ReviewRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m, err := month.Parse(dto.Month)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	advice, err := handler.advisorService.Review(r.Context(), m)
	if err != nil {
		writeAdvisorError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ReviewResponseDTO{Month: m.String(), Advice: advice}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *AdvisorHandler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto StatementRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dto.MimeType == "" {
		http.Error(w, "mimeType is required", http.StatusBadRequest)
		return
	}

	document := Document{MimeType: dto.MimeType, Text: dto.Text}
	if dto.Data != "" {
		data, err := base64.StdEncoding.DecodeString(dto.Data)
		if err != nil {
			http.Error(w, "data is not valid base64", http.StatusBadRequest)
			return
		}
		document.Data = data
	}

	result, err := handler.advisorService.ImportStatement(r.Context(), document)
	if err != nil {
		if errors.Is(err, ErrEmptyDocument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeAdvisorError(w, err)
		return
	}

	resultDTO := ImportResultDTO{
		DetectedIncome: result.DetectedIncome.Float64(),
		Expenses:       make([]expense.ExpenseDTO, 0, len(result.Expenses)),
	}
	for _, e := range result.Expenses {
		resultDTO.Expenses = append(resultDTO.Expenses, expense.ExpenseToDTO(e))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(resultDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// writeAdvisorError maps collaborator failures to responses: a missing
// credential is the caller's configuration problem, everything else is a
// bad gateway. Neither is ever fatal to the process.
func writeAdvisorError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotConfigured) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Warnf("advisor call failed: %v", err)
	http.Error(w, err.Error(), http.StatusBadGateway)
}
