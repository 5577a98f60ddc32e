package interfaces

import (
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
)

type MockSpendingLimitService struct {
	Limits []domain.SpendingLimit
	Err    error

	CreatedLimit *domain.SpendingLimit
	UpdatedLimit *domain.SpendingLimit
	DeletedID    int
}

func (m *MockSpendingLimitService) CreateLimit(limit *domain.SpendingLimit) error {
	if m.Err != nil {
		return m.Err
	}
	limit.ID = 1
	m.CreatedLimit = limit
	return nil
}

func (m *MockSpendingLimitService) UpdateLimit(actingUserID string, limit domain.SpendingLimit) error {
	if m.Err != nil {
		return m.Err
	}
	m.UpdatedLimit = &limit
	return nil
}

func (m *MockSpendingLimitService) GetLimit(actingUserID string, limitID int) (*domain.SpendingLimit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &m.Limits[0], nil
}

func (m *MockSpendingLimitService) GetUserLimits(userID string) ([]domain.SpendingLimit, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Limits, nil
}

func (m *MockSpendingLimitService) DeleteLimit(actingUserID string, limitID int) error {
	if m.Err != nil {
		return m.Err
	}
	m.DeletedID = limitID
	return nil
}
