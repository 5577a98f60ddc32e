package domain

import (
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type PlannerItemRepository interface {
	Save(item *PlannerItem) error
	FindByID(itemID int) (*PlannerItem, error)
	FindByUser(userID string) ([]PlannerItem, error)
	Update(item PlannerItem) error
	Delete(itemID int) error
}

// PlannerItem is a planned future purchase or financial event.
type PlannerItem struct {
	ID          int
	UserID      string // user UUID
	Title       string
	Description string
	PlannedDate time.Time
}

func (p *PlannerItem) Validate() error {
	if p.Title == "" {
		return errors.NewValidationError("Title is required")
	}
	if len(p.Title) > 100 {
		return errors.NewValidationError("Title must be of length less than 100")
	}
	if p.PlannedDate.IsZero() {
		return errors.NewValidationError("Planned date is required")
	}
	return nil
}
