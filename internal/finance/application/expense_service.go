package application

import (
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
)

// BudgetStatus is the outcome of a daily budget evaluation. Limit is nil when
// no spending limit covers the evaluated date.
type BudgetStatus struct {
	WithinLimit bool
	TotalAfter  int64
	Limit       *int64
}

type ExpenseService struct {
	repo      domain.ExpenseRepository
	limitRepo domain.SpendingLimitRepository
}

func NewExpenseService(repo domain.ExpenseRepository, limitRepo domain.SpendingLimitRepository) *ExpenseService {
	return &ExpenseService{repo: repo, limitRepo: limitRepo}
}

// CreateExpense validates and persists the expense and reports the budget
// status for its purchase date. Exceeding the limit is advisory only, the
// expense is saved regardless.
func (s *ExpenseService) CreateExpense(expense *domain.Expense) (*BudgetStatus, error) {
	if expense.ReceiptImage == "" {
		expense.ReceiptImage = domain.DefaultReceiptImage
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	status, err := s.EvaluateDailyBudget(expense.UserID, expense.DateOfPurchase, expense.Amount, nil)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(expense); err != nil {
		return nil, err
	}
	return status, nil
}

// UpdateExpense re-evaluates the budget with the stored expense excluded, so
// editing an amount is not counted against itself.
func (s *ExpenseService) UpdateExpense(actingUserID string, expense domain.Expense) (*BudgetStatus, error) {
	existing, err := s.repo.FindByID(expense.ID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(existing.UserID, actingUserID); err != nil {
		return nil, err
	}

	expense.UserID = existing.UserID
	if expense.ReceiptImage == "" {
		expense.ReceiptImage = existing.ReceiptImage
	}
	if err := expense.Validate(); err != nil {
		return nil, err
	}

	status, err := s.EvaluateDailyBudget(expense.UserID, expense.DateOfPurchase, expense.Amount, &expense.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(expense); err != nil {
		return nil, err
	}
	return status, nil
}

func (s *ExpenseService) GetExpense(actingUserID string, expenseID int) (*domain.Expense, error) {
	expense, err := s.repo.FindByID(expenseID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(expense.UserID, actingUserID); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) GetUserExpenses(userID string) ([]domain.Expense, error) {
	return s.repo.FindByUser(userID)
}

func (s *ExpenseService) DeleteExpense(actingUserID string, expenseID int) error {
	expense, err := s.repo.FindByID(expenseID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(expense.UserID, actingUserID); err != nil {
		return err
	}
	return s.repo.Delete(expenseID)
}

// EvaluateDailyBudget sums the user's expenses on the given calendar date,
// adds the candidate amount and compares the total against the spending limit
// covering that date. excludeExpenseID skips one stored expense, used when
// editing. A pure read, nothing is written here.
func (s *ExpenseService) EvaluateDailyBudget(userID string, day time.Time, amount int64, excludeExpenseID *int) (*BudgetStatus, error) {
	expenses, err := s.repo.FindByUserAndDay(userID, domain.DateOnly(day))
	if err != nil {
		return nil, err
	}

	var total int64
	for _, e := range expenses {
		if excludeExpenseID != nil && e.ID == *excludeExpenseID {
			continue
		}
		// stored values are timestamps, comparison is by calendar date
		if !domain.SameDay(e.DateOfPurchase, day) {
			continue
		}
		total += e.Amount
	}
	totalAfter := total + amount

	limits, err := s.limitRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	// overlap validation at limit creation guarantees at most one match
	for i := range limits {
		if limits[i].Covers(day) {
			dailyLimit := limits[i].DailyLimit
			return &BudgetStatus{
				WithinLimit: totalAfter <= dailyLimit,
				TotalAfter:  totalAfter,
				Limit:       &dailyLimit,
			}, nil
		}
	}
	return &BudgetStatus{WithinLimit: true, TotalAfter: totalAfter}, nil
}
