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

type SpendingLimitServiceInterface interface {
	CreateLimit(limit *domain.SpendingLimit) error
	UpdateLimit(actingUserID string, limit domain.SpendingLimit) error
	GetLimit(actingUserID string, limitID int) (*domain.SpendingLimit, error)
	GetUserLimits(userID string) ([]domain.SpendingLimit, error)
	DeleteLimit(actingUserID string, limitID int) error
}

type SpendingLimitHandler struct {
	service      SpendingLimitServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSpendingLimitHandler(
	service SpendingLimitServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SpendingLimitHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &SpendingLimitHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type limitRequest struct {
	DailyLimit string `json:"daily_limit"` // decimal string
	StartDate  string `json:"start_date"`  // YYYY-MM-DD
	EndDate    string `json:"end_date"`    // YYYY-MM-DD
}

func (req *limitRequest) toDomain() (*domain.SpendingLimit, error) {
	dailyLimit, err := domain.ParseAmount(req.DailyLimit)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, financeErrors.NewValidationError("Incorrect start date format, please use YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, financeErrors.NewValidationError("Incorrect end date format, please use YYYY-MM-DD")
	}
	return &domain.SpendingLimit{
		DailyLimit: dailyLimit,
		StartDate:  start,
		EndDate:    end,
	}, nil
}

type limitResponse struct {
	ID         int    `json:"id"`
	DailyLimit string `json:"daily_limit"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func newLimitResponse(l domain.SpendingLimit) limitResponse {
	return limitResponse{
		ID:         l.ID,
		DailyLimit: domain.FormatAmount(l.DailyLimit),
		StartDate:  l.StartDate.Format(dateLayout),
		EndDate:    l.EndDate.Format(dateLayout),
	}
}

func (h *SpendingLimitHandler) CreateLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req limitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	limit, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit.UserID = userID

	if err := h.service.CreateLimit(limit); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create spending limit")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Spending limit successfully created.",
		"data":    newLimitResponse(*limit),
	})
}

func (h *SpendingLimitHandler) GetUserLimits(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limits, err := h.service.GetUserLimits(userID)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve spending limits")
		return
	}

	responses := make([]limitResponse, 0, len(limits))
	for _, l := range limits {
		responses = append(responses, newLimitResponse(l))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *SpendingLimitHandler) GetLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limitID, err := strconv.Atoi(r.PathValue("limitID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid limit ID")
		return
	}

	limit, err := h.service.GetLimit(userID, limitID)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve spending limit")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   newLimitResponse(*limit),
	})
}

func (h *SpendingLimitHandler) UpdateLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limitID, err := strconv.Atoi(r.PathValue("limitID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid limit ID")
		return
	}
	var req limitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	limit, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit.ID = limitID

	if err := h.service.UpdateLimit(userID, *limit); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update spending limit")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending limit successfully updated.",
	})
}

func (h *SpendingLimitHandler) DeleteLimit(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	limitID, err := strconv.Atoi(r.PathValue("limitID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid limit ID")
		return
	}

	if err := h.service.DeleteLimit(userID, limitID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete spending limit")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Spending limit successfully deleted.",
	})
}
