package infrastructure

import (
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// MockIncomeRepository keeps income records in memory for unit tests.
type MockIncomeRepository struct {
	Incomes []domain.Income
	nextID  int
}

func (m *MockIncomeRepository) Save(income *domain.Income) error {
	m.nextID++
	income.ID = m.nextID
	m.Incomes = append(m.Incomes, *income)
	return nil
}

func (m *MockIncomeRepository) FindByID(incomeID int) (*domain.Income, error) {
	for i := range m.Incomes {
		if m.Incomes[i].ID == incomeID {
			income := m.Incomes[i]
			return &income, nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockIncomeRepository) FindByUser(userID string) ([]domain.Income, error) {
	var incomes []domain.Income
	for _, income := range m.Incomes {
		if income.UserID == userID {
			incomes = append(incomes, income)
		}
	}
	return incomes, nil
}

func (m *MockIncomeRepository) Update(income domain.Income) error {
	for i := range m.Incomes {
		if m.Incomes[i].ID == income.ID {
			m.Incomes[i] = income
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockIncomeRepository) Delete(incomeID int) error {
	for i := range m.Incomes {
		if m.Incomes[i].ID == incomeID {
			m.Incomes = append(m.Incomes[:i], m.Incomes[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}
