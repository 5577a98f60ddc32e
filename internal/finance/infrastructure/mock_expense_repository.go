package infrastructure

import (
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// MockExpenseRepository keeps expenses in memory for unit tests.
type MockExpenseRepository struct {
	Expenses []domain.Expense
	nextID   int
}

func (m *MockExpenseRepository) Save(expense *domain.Expense) error {
	m.nextID++
	expense.ID = m.nextID
	m.Expenses = append(m.Expenses, *expense)
	return nil
}

func (m *MockExpenseRepository) FindByID(expenseID int) (*domain.Expense, error) {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			expense := m.Expenses[i]
			return &expense, nil
		}
	}
	return nil, financeErrors.ErrNotFound
}

func (m *MockExpenseRepository) FindByUser(userID string) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for _, e := range m.Expenses {
		if e.UserID == userID {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (m *MockExpenseRepository) FindByUserAndDay(userID string, day time.Time) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for _, e := range m.Expenses {
		if e.UserID == userID && domain.SameDay(e.DateOfPurchase, day) {
			expenses = append(expenses, e)
		}
	}
	return expenses, nil
}

func (m *MockExpenseRepository) Update(expense domain.Expense) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expense.ID {
			m.Expenses[i] = expense
			return nil
		}
	}
	return financeErrors.ErrNotFound
}

func (m *MockExpenseRepository) Delete(expenseID int) error {
	for i := range m.Expenses {
		if m.Expenses[i].ID == expenseID {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			return nil
		}
	}
	return financeErrors.ErrNotFound
}
