package domain

import (
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type SpendingLimitRepository interface {
	Save(limit *SpendingLimit) error
	FindByID(limitID int) (*SpendingLimit, error)
	FindByUser(userID string) ([]SpendingLimit, error)
	Update(limit SpendingLimit) error
	Delete(limitID int) error
}

// SpendingLimit caps daily spending over a closed date range. Both StartDate
// and EndDate are included in the range.
type SpendingLimit struct {
	ID         int
	UserID     string // user UUID
	DailyLimit int64  // minor currency units
	StartDate  time.Time
	EndDate    time.Time
}

func (l *SpendingLimit) Validate() error {
	if l.DailyLimit <= 0 {
		return errors.NewValidationError("Daily limit must be greater than zero")
	}
	if l.StartDate.IsZero() || l.EndDate.IsZero() {
		return errors.NewValidationError("Start and end dates are required")
	}
	if DateOnly(l.EndDate).Before(DateOnly(l.StartDate)) {
		return errors.ErrInvalidDateRange
	}
	return nil
}

// Covers reports whether day falls inside the limit's date range.
func (l *SpendingLimit) Covers(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(l.StartDate)) && !d.After(DateOnly(l.EndDate))
}

// Overlaps reports whether the limit's range shares at least one day with
// [start, end]. Two closed intervals [a,b] and [c,d] overlap iff a <= d && c <= b.
func (l *SpendingLimit) Overlaps(start, end time.Time) bool {
	return !DateOnly(l.StartDate).After(DateOnly(end)) && !DateOnly(start).After(DateOnly(l.EndDate))
}

// DateOnly strips the time-of-day component, so stored timestamps compare by
// calendar date.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
