package infrastructure

import (
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// MockPlannerItemRepository keeps planner items in memory for unit tests.
type MockPlannerItemRepository struct {
	Items  []domain.PlannerItem
	nextID int
}

func (m *MockPlannerItemRepository) Save(item *domain.PlannerItem) error {
	m.nextID++
	item.ID = m.nextID
	m.Items = append(m.Items, *item)
	return nil
}

func (m *MockPlannerItemRepository) FindByID(itemID int) (*domain.PlannerItem, error) {
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			item := m.Items[i]
			return &item, nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockPlannerItemRepository) FindByUser(userID string) ([]domain.PlannerItem, error) {
	var items []domain.PlannerItem
	for _, item := range m.Items {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (m *MockPlannerItemRepository) Update(item domain.PlannerItem) error {
	for i := range m.Items {
		if m.Items[i].ID == item.ID {
			m.Items[i] = item
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockPlannerItemRepository) Delete(itemID int) error {
	for i := range m.Items {
		if m.Items[i].ID == itemID {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}
