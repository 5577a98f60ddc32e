package infrastructure

import (
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// MockSpendingLimitRepository keeps spending limits in memory for unit tests.
type MockSpendingLimitRepository struct {
	Limits []domain.SpendingLimit
	nextID int
}

func (m *MockSpendingLimitRepository) Save(limit *domain.SpendingLimit) error {
	m.nextID++
	limit.ID = m.nextID
	m.Limits = append(m.Limits, *limit)
	return nil
}

func (m *MockSpendingLimitRepository) FindByID(limitID int) (*domain.SpendingLimit, error) {
	for i := range m.Limits {
		if m.Limits[i].ID == limitID {
			limit := m.Limits[i]
			return &limit, nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockSpendingLimitRepository) FindByUser(userID string) ([]domain.SpendingLimit, error) {
	var limits []domain.SpendingLimit
	for _, l := range m.Limits {
		if l.UserID == userID {
			limits = append(limits, l)
		}
	}
	return limits, nil
}

func (m *MockSpendingLimitRepository) Update(limit domain.SpendingLimit) error {
	for i := range m.Limits {
		if m.Limits[i].ID == limit.ID {
			m.Limits[i] = limit
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockSpendingLimitRepository) Delete(limitID int) error {
	for i := range m.Limits {
		if m.Limits[i].ID == limitID {
			m.Limits = append(m.Limits[:i], m.Limits[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}
