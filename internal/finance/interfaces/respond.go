package interfaces

import (
	"errors"
	"log"
	"net/http"

	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// respondServiceError maps service errors onto HTTP outcomes. Ownership
// failures are a hard 403 stop, missing records 404, validation and overlap
// failures 400 with the message shown to the user.
func respondServiceError(respondError func(w http.ResponseWriter, status int, message string), w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, financeErrors.ErrNotFound):
		respondError(w, http.StatusNotFound, "Record not found")
	case errors.Is(err, financeErrors.ErrForbidden):
		respondError(w, http.StatusForbidden, "You do not have access to this record")
	case financeErrors.IsValidationError(err) || financeErrors.IsOverlapError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("finance handler error: %v", err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}
