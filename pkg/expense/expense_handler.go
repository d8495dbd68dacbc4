package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fourfold/fourfold/pkg/category"
	"github.com/fourfold/fourfold/pkg/money"
	"github.com/fourfold/fourfold/pkg/month"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type ExpenseDTO struct {
	ID          string  `json:"id,omitempty"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Recurring   bool    `json:"isRecurring"`
}

type ExpenseHandler struct {
	expenseService ExpenseService
}

func NewExpenseHandler(expenseService ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService}
}

func (handler *ExpenseHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var expenses []Expense
	var err error
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		m, parseErr := month.Parse(monthParam)
		if parseErr != nil {
			http.Error(w, parseErr.Error(), http.StatusBadRequest)
			return
		}
		expenses, err = handler.expenseService.GetByMonth(r.Context(), m)
	} else {
		expenses, err = handler.expenseService.GetAll(r.Context())
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	expensesDTO := make([]ExpenseDTO, 0, len(expenses))
	for _, expense := range expenses {
		expensesDTO = append(expensesDTO, ExpenseToDTO(expense))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expensesDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new expense")
	w.Header().Set("Content-Type", "application/json")

	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := DTOToExpense(expenseDTO)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	createdExpense, err := handler.expenseService.Create(r.Context(), expense)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ExpenseToDTO(createdExpense)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	expenseId := vars["id"]

	var expenseDTO ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&expenseDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if expenseDTO.ID == "" || expenseDTO.ID != expenseId {
		http.Error(w, "Invalid expense id in request body", http.StatusBadRequest)
		return
	}

	expense, err := DTOToExpense(expenseDTO)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ok, err := handler.expenseService.Update(r.Context(), expense)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(expenseDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (handler *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	expenseId := vars["id"]

	ok, err := handler.expenseService.Delete(r.Context(), expenseId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (handler *ExpenseHandler) CarryForward(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	target := month.FromTime(time.Now())
	if monthParam := r.URL.Query().Get("month"); monthParam != "" {
		m, err := month.Parse(monthParam)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		target = m
	}

	created, err := handler.expenseService.CarryForward(r.Context(), target)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	createdDTO := make([]ExpenseDTO, 0, len(created))
	for _, expense := range created {
		createdDTO = append(createdDTO, ExpenseToDTO(expense))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(createdDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func ExpenseToDTO(expense Expense) ExpenseDTO {
	return ExpenseDTO{
		ID:          expense.ID,
		Description: expense.Description,
		Amount:      expense.Amount.Float64(),
		Category:    string(expense.Category),
		Date:        expense.Date.Format(dateFormat),
		Recurring:   expense.Recurring,
	}
}

func DTOToExpense(dto ExpenseDTO) (Expense, error) {
	date, err := time.Parse(dateFormat, dto.Date)
	if err != nil {
		return Expense{}, errors.New("invalid expense date, expected YYYY-MM-DD")
	}
	return Expense{
		ID:          dto.ID,
		Description: dto.Description,
		Amount:      money.FromFloat(dto.Amount),
		Category:    category.ID(dto.Category),
		Date:        date,
		Recurring:   dto.Recurring,
	}, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrMissingDate)
}
