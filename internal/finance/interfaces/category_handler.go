package interfaces

import (
	"net/http"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
)

// CategoryHandler serves the fixed category lists the expense and income
// forms are bound to.
type CategoryHandler struct {
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	return &CategoryHandler{
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categoryType := r.URL.Query().Get("type")
	switch categoryType {
	case "expense":
		h.respondJSON(w, http.StatusOK, domain.ExpenseCategories)
	case "income":
		h.respondJSON(w, http.StatusOK, domain.IncomeCategories)
	case "":
		h.respondJSON(w, http.StatusOK, map[string]interface{}{
			"expense": domain.ExpenseCategories,
			"income":  domain.IncomeCategories,
		})
	default:
		h.respondError(w, http.StatusBadRequest, "Invalid category type")
	}
}
