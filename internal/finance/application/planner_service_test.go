package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
	"github.com/expenseapp/ExpenseApp/internal/finance/infrastructure"
)

func TestCreateItem_Valid(t *testing.T) {
	repo := &infrastructure.MockPlannerItemRepository{}
	service := NewPlannerService(repo)

	item := &domain.PlannerItem{
		UserID:      "user-1",
		Title:       "New laptop",
		Description: "save up before autumn",
		PlannedDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, service.CreateItem(item))
	assert.Equal(t, 1, item.ID)
}

func TestCreateItem_MissingTitle(t *testing.T) {
	repo := &infrastructure.MockPlannerItemRepository{}
	service := NewPlannerService(repo)

	item := &domain.PlannerItem{
		UserID:      "user-1",
		PlannedDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	err := service.CreateItem(item)
	assert.True(t, financeErrors.IsValidationError(err))
	assert.Empty(t, repo.Items)
}

func TestUpdateItem_CannotChangeOwner(t *testing.T) {
	repo := &infrastructure.MockPlannerItemRepository{}
	service := NewPlannerService(repo)

	item := &domain.PlannerItem{
		UserID:      "owner",
		Title:       "Vacation",
		PlannedDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, service.CreateItem(item))

	updated := *item
	updated.UserID = "someone-else"
	updated.Title = "Vacation in July"
	assert.NoError(t, service.UpdateItem("owner", updated))
	assert.Equal(t, "owner", repo.Items[0].UserID)
	assert.Equal(t, "Vacation in July", repo.Items[0].Title)
}

func TestGetItem_ForbiddenForOtherUser(t *testing.T) {
	repo := &infrastructure.MockPlannerItemRepository{}
	service := NewPlannerService(repo)

	item := &domain.PlannerItem{
		UserID:      "owner",
		Title:       "Car service",
		PlannedDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, service.CreateItem(item))

	_, err := service.GetItem("intruder", item.ID)
	assert.ErrorIs(t, err, financeErrors.ErrForbidden)
}

func TestDeleteItem_RemovesOnlyOwnItem(t *testing.T) {
	repo := &infrastructure.MockPlannerItemRepository{}
	service := NewPlannerService(repo)

	item := &domain.PlannerItem{
		UserID:      "owner",
		Title:       "Dentist",
		PlannedDate: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
	}
	assert.NoError(t, service.CreateItem(item))

	assert.ErrorIs(t, service.DeleteItem("intruder", item.ID), financeErrors.ErrForbidden)
	assert.Len(t, repo.Items, 1)

	assert.NoError(t, service.DeleteItem("owner", item.ID))
	assert.Empty(t, repo.Items)
}
