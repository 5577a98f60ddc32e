package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/application"
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

const dateLayout = "2006-01-02"

type ExpenseServiceInterface interface {
	CreateExpense(expense *domain.Expense) (*application.BudgetStatus, error)
	UpdateExpense(actingUserID string, expense domain.Expense) (*application.BudgetStatus, error)
	GetExpense(actingUserID string, expenseID int) (*domain.Expense, error)
	GetUserExpenses(userID string) ([]domain.Expense, error)
	DeleteExpense(actingUserID string, expenseID int) error
}

type ExpenseHandler struct {
	service      ExpenseServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewExpenseHandler(
	service ExpenseServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *ExpenseHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &ExpenseHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type expenseRequest struct {
	Title          string `json:"title"`
	Amount         string `json:"amount"` // decimal string, e.g. "12.34"
	Category       string `json:"category"`
	DateOfPurchase string `json:"date_of_purchase"` // YYYY-MM-DD
	Description    string `json:"description"`
	ReceiptImage   string `json:"receipt_image"`
}

func (req *expenseRequest) toDomain() (*domain.Expense, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, req.DateOfPurchase)
	if err != nil {
		return nil, financeErrors.NewValidationError("Incorrect date format, please use YYYY-MM-DD")
	}
	return &domain.Expense{
		Title:          req.Title,
		Amount:         amount,
		Category:       req.Category,
		DateOfPurchase: date,
		Description:    req.Description,
		ReceiptImage:   req.ReceiptImage,
	}, nil
}

type expenseResponse struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	Amount         string `json:"amount"`
	Category       string `json:"category"`
	DateOfPurchase string `json:"date_of_purchase"`
	Description    string `json:"description"`
	ReceiptImage   string `json:"receipt_image"`
}

func newExpenseResponse(e domain.Expense) expenseResponse {
	return expenseResponse{
		ID:             e.ID,
		Title:          e.Title,
		Amount:         domain.FormatAmount(e.Amount),
		Category:       e.Category,
		DateOfPurchase: e.DateOfPurchase.Format(dateLayout),
		Description:    e.Description,
		ReceiptImage:   e.ReceiptImage,
	}
}

type budgetResponse struct {
	WithinLimit bool    `json:"within_limit"`
	TotalAfter  string  `json:"total_after"`
	Limit       *string `json:"limit"`
}

func newBudgetResponse(status *application.BudgetStatus) budgetResponse {
	resp := budgetResponse{
		WithinLimit: status.WithinLimit,
		TotalAfter:  domain.FormatAmount(status.TotalAfter),
	}
	if status.Limit != nil {
		limit := domain.FormatAmount(*status.Limit)
		resp.Limit = &limit
	}
	return resp
}

func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	expense.UserID = userID

	status, err := h.service.CreateExpense(expense)
	if err != nil {
		h.handleServiceError(w, err, "Failed to create expense")
		return
	}

	message := "Expense successfully created."
	if !status.WithinLimit {
		message = "Expense created, but it puts you over your daily spending limit."
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": message,
		"data":    newExpenseResponse(*expense),
		"budget":  newBudgetResponse(status),
	})
}

func (h *ExpenseHandler) GetUserExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	expenses, err := h.service.GetUserExpenses(userID)
	if err != nil {
		h.handleServiceError(w, err, "Failed to retrieve expenses")
		return
	}

	responses := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		responses = append(responses, newExpenseResponse(e))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *ExpenseHandler) GetExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := strconv.Atoi(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	expense, err := h.service.GetExpense(userID, expenseID)
	if err != nil {
		h.handleServiceError(w, err, "Failed to retrieve expense")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   newExpenseResponse(*expense),
	})
}

func (h *ExpenseHandler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := strconv.Atoi(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	expense.ID = expenseID

	status, err := h.service.UpdateExpense(userID, *expense)
	if err != nil {
		h.handleServiceError(w, err, "Failed to update expense")
		return
	}

	message := "Expense successfully updated."
	if !status.WithinLimit {
		message = "Expense updated, but it puts you over your daily spending limit."
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": message,
		"budget":  newBudgetResponse(status),
	})
}

func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	expenseID, err := strconv.Atoi(r.PathValue("expenseID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	if err := h.service.DeleteExpense(userID, expenseID); err != nil {
		h.handleServiceError(w, err, "Failed to delete expense")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Expense successfully deleted.",
	})
}

func (h *ExpenseHandler) handleServiceError(w http.ResponseWriter, err error, fallback string) {
	respondServiceError(h.respondError, w, err, fallback)
}
