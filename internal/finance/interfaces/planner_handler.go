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

type PlannerServiceInterface interface {
	CreateItem(item *domain.PlannerItem) error
	UpdateItem(actingUserID string, item domain.PlannerItem) error
	GetItem(actingUserID string, itemID int) (*domain.PlannerItem, error)
	GetUserItems(userID string) ([]domain.PlannerItem, error)
	DeleteItem(actingUserID string, itemID int) error
}

type PlannerHandler struct {
	service      PlannerServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewPlannerHandler(
	service PlannerServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *PlannerHandler {
	if service == nil {
		log.Fatal("Service must not be nil")
		return nil
	}
	return &PlannerHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

type plannerItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PlannedDate string `json:"planned_date"` // YYYY-MM-DD
}

func (req *plannerItemRequest) toDomain() (*domain.PlannerItem, error) {
	date, err := time.Parse(dateLayout, req.PlannedDate)
	if err != nil {
		return nil, financeErrors.NewValidationError("Incorrect date format, please use YYYY-MM-DD")
	}
	return &domain.PlannerItem{
		Title:       req.Title,
		Description: req.Description,
		PlannedDate: date,
	}, nil
}

type plannerItemResponse struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	PlannedDate string `json:"planned_date"`
}

func newPlannerItemResponse(p domain.PlannerItem) plannerItemResponse {
	return plannerItemResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		PlannedDate: p.PlannedDate.Format(dateLayout),
	}
}

func (h *PlannerHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req plannerItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.UserID = userID

	if err := h.service.CreateItem(item); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to create planner item")
		return
	}
	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Planner item successfully created.",
		"data":    newPlannerItemResponse(*item),
	})
}

func (h *PlannerHandler) GetUserItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.service.GetUserItems(userID)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve planner items")
		return
	}

	responses := make([]plannerItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, newPlannerItemResponse(item))
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   responses,
	})
}

func (h *PlannerHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemID, err := strconv.Atoi(r.PathValue("itemID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid planner item ID")
		return
	}

	item, err := h.service.GetItem(userID, itemID)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to retrieve planner item")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   newPlannerItemResponse(*item),
	})
}

func (h *PlannerHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemID, err := strconv.Atoi(r.PathValue("itemID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid planner item ID")
		return
	}
	var req plannerItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := req.toDomain()
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	item.ID = itemID

	if err := h.service.UpdateItem(userID, *item); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to update planner item")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Planner item successfully updated.",
	})
}

func (h *PlannerHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	itemID, err := strconv.Atoi(r.PathValue("itemID"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid planner item ID")
		return
	}

	if err := h.service.DeleteItem(userID, itemID); err != nil {
		respondServiceError(h.respondError, w, err, "Failed to delete planner item")
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Planner item successfully deleted.",
	})
}
