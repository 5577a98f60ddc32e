package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type IncomeServiceInterface interface {
	CreateIncome(income *domain.Income) error
	UpdateIncome(actingUserID string, income domain.Income) error
	GetIncome(actingUserID string, incomeID int) (*domain.Income, error)
	GetUserIncome(userID string) ([]domain.Income, error)
	DeleteIncome(actingUserID string, incomeID int) error
}

type IncomeHandler struct {
	service      IncomeServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewIncomeHandler(
	service IncomeServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *IncomeHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &IncomeHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type incomeRequest struct {
	Source       string `json:"source"`
	Amount       string `json:"amount"` // decimal string
	Category     string `json:"category"`
	DateReceived string `json:"date_received"` // YYYY-MM-DD
	Description  string `json:"description"`
	ReceiptImage string `json:"receipt_image"`
}

func (req *incomeRequest) toDomain() (*domain.Income, error) {
	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, req.DateReceived)
	if err != nil {
		return nil, financeErrors.NewValidationError("Incorrect date format, please use YYYY-MM-DD")
	}
	return &domain.Income{
		Source:       req.Source,
		Amount:       amount,
		Category:     req.Category,
		DateReceived: date,
		Description:  req.Description,
		ReceiptImage: req.ReceiptImage,
	}, nil
}

type incomeResponse struct {
	ID           int    `json:"id"`
	Source       string `json:"source"`
	Amount       string `json:"amount"`
	Category     string `json:"category"`
	DateReceived string `json:"date_received"`
	Description  string `json:"description"`
	ReceiptImage string `json:"receipt_image"`
}

func newIncomeResponse(i domain.Income) incomeResponse {
	return incomeResponse{
		ID:           i.ID,
		Source:       i.Source,
		Amount:       domain.FormatAmount(i.Amount),
		Category:     i.Category,
		DateReceived: i.DateReceived.Format(dateLayout),
		Description:  i.Description,
		ReceiptImage: i.ReceiptImage,
	}
}

func (h *IncomeHandler) CreateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	income, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	income.UserID = userID

	if err := h.service.CreateIncome(income); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create income")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Income successfully created.",
		"data":    newIncomeResponse(*income),
	})
}

func (h *IncomeHandler) GetUserIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	incomes, err := h.service.GetUserIncome(userID)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve income")
		return
	}

	responses := make([]incomeResponse, 0, len(incomes))
	for _, income := range incomes {
		responses = append(responses, newIncomeResponse(income))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *IncomeHandler) GetIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	incomeID, err := strconv.Atoi(r.PathValue("incomeID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}

	income, err := h.service.GetIncome(userID, incomeID)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve income")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   newIncomeResponse(*income),
	})
}

func (h *IncomeHandler) UpdateIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	incomeID, err := strconv.Atoi(r.PathValue("incomeID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}
	var req incomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	income, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	income.ID = incomeID

	if err := h.service.UpdateIncome(userID, *income); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update income")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Income successfully updated.",
	})
}

func (h *IncomeHandler) DeleteIncome(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	incomeID, err := strconv.Atoi(r.PathValue("incomeID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid income ID")
		return
	}

	if err := h.service.DeleteIncome(userID, incomeID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete income")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Income successfully deleted.",
	})
}
