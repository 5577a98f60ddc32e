package domain

import (
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// DefaultReceiptImage is used when no receipt was uploaded.
const DefaultReceiptImage = "receipt_pics/default_receipt.png"

var ExpenseCategories = []string{
	"Miscellaneous",
	"Food",
	"Transportation",
	"Groceries",
	"Clothing",
	"Household",
	"Rent",
	"Bills and Taxes",
	"Vacations",
}

type ExpenseRepository interface {
	Save(expense *Expense) error
	FindByID(expenseID int) (*Expense, error)
	FindByUser(userID string) ([]Expense, error)
	FindByUserAndDay(userID string, day time.Time) ([]Expense, error)
	Update(expense Expense) error
	Delete(expenseID int) error
}

type Expense struct {
	ID             int
	UserID         string // user UUID
	Title          string
	Amount         int64 // minor currency units
	Category       string
	DateOfPurchase time.Time
	Description    string
	ReceiptImage   string
}

func (e *Expense) Validate() error {
	if e.Title == "" {
		return errors.NewValidationError("Title is required")
	}
	if len(e.Title) > 100 {
		return errors.NewValidationError("Title must be of length less than 100")
	}
	if !isKnownCategory(e.Category, ExpenseCategories) {
		return errors.ErrInvalidCategory
	}
	if e.DateOfPurchase.IsZero() {
		return errors.NewValidationError("Date of purchase is required")
	}
	return nil
}

func isKnownCategory(category string, known []string) bool {
	for _, c := range known {
		if c == category {
			return true
		}
	}
	return false
}
