package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

func TestCreateLimit_Success(t *testing.T) {
	service := &MockSpendingLimitService{}
	handler := NewSpendingLimitHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{
		"daily_limit": "100.00",
		"start_date":  "2024-01-01",
		"end_date":    "2024-01-31",
	})
	w := httptest.NewRecorder()
	handler.CreateLimit(w, authenticatedRequest(http.MethodPost, "/limits", body, "user-1"))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.NotNil(t, service.CreatedLimit)
	assert.Equal(t, "user-1", service.CreatedLimit.UserID)
	assert.Equal(t, int64(10000), service.CreatedLimit.DailyLimit)
}

func TestCreateLimit_Overlap(t *testing.T) {
	service := &MockSpendingLimitService{Err: financeErrors.NewOverlapError([]int{3})}
	handler := NewSpendingLimitHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{
		"daily_limit": "100.00",
		"start_date":  "2024-01-15",
		"end_date":    "2024-02-15",
	})
	w := httptest.NewRecorder()
	handler.CreateLimit(w, authenticatedRequest(http.MethodPost, "/limits", body, "user-1"))

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "date range overlaps existing spending limits: 3", response["message"])
}

func TestCreateLimit_InvalidRange(t *testing.T) {
	service := &MockSpendingLimitService{Err: financeErrors.ErrInvalidDateRange}
	handler := NewSpendingLimitHandler(service, respondJSON, respondError)

	body, _ := json.Marshal(map[string]string{
		"daily_limit": "100.00",
		"start_date":  "2024-02-01",
		"end_date":    "2024-01-01",
	})
	w := httptest.NewRecorder()
	handler.CreateLimit(w, authenticatedRequest(http.MethodPost, "/limits", body, "user-1"))

	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
}

func TestDeleteLimit_Forbidden(t *testing.T) {
	service := &MockSpendingLimitService{Err: financeErrors.ErrForbidden}
	handler := NewSpendingLimitHandler(service, respondJSON, respondError)

	req := authenticatedRequest(http.MethodDelete, "/limits/4", nil, "user-2")
	req.SetPathValue("limitID", "4")
	w := httptest.NewRecorder()
	handler.DeleteLimit(w, req)

	assert.Equal(t, http.StatusForbidden, w.Result().StatusCode)
}
