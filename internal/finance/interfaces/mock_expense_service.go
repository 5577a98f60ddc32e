package interfaces

import (
	"github.com/expenseapp/ExpenseApp/internal/finance/application"
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
)

type MockExpenseService struct {
	Status   *application.BudgetStatus
	Expenses []domain.Expense
	Err      error

	CreatedExpense *domain.Expense
	UpdatedExpense *domain.Expense
	DeletedID      int
}

func (m *MockExpenseService) CreateExpense(expense *domain.Expense) (*application.BudgetStatus, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	expense.ID = 1
	m.CreatedExpense = expense
	return m.Status, nil
}

func (m *MockExpenseService) UpdateExpense(actingUserID string, expense domain.Expense) (*application.BudgetStatus, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	m.UpdatedExpense = &expense
	return m.Status, nil
}

func (m *MockExpenseService) GetExpense(actingUserID string, expenseID int) (*domain.Expense, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return &m.Expenses[0], nil
}

func (m *MockExpenseService) GetUserExpenses(userID string) ([]domain.Expense, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Expenses, nil
}

func (m *MockExpenseService) DeleteExpense(actingUserID string, expenseID int) error {
	if m.Err != nil {
		return m.Err
	}
	m.DeletedID = expenseID
	return nil
}
