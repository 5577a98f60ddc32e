package domain

import (
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investment",
	"Gift",
	"Other",
}

type IncomeRepository interface {
	Save(income *Income) error
	FindByID(incomeID int) (*Income, error)
	FindByUser(userID string) ([]Income, error)
	Update(income Income) error
	Delete(incomeID int) error
}

type Income struct {
	ID           int
	UserID       string // user UUID
	Source       string
	Amount       int64 // minor currency units
	Category     string
	DateReceived time.Time
	Description  string
	ReceiptImage string
}

func (i *Income) Validate() error {
	if i.Source == "" {
		return errors.NewValidationError("Source is required")
	}
	if len(i.Source) > 100 {
		return errors.NewValidationError("Source must be of length less than 100")
	}
	if !isKnownCategory(i.Category, IncomeCategories) {
		return errors.ErrInvalidCategory
	}
	if i.DateReceived.IsZero() {
		return errors.NewValidationError("Date received is required")
	}
	return nil
}
