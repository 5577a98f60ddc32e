package application

import (
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type SpendingLimitService struct {
	repo domain.SpendingLimitRepository
}

func NewSpendingLimitService(repo domain.SpendingLimitRepository) *SpendingLimitService {
	return &SpendingLimitService{repo: repo}
}

// CreateLimit persists a limit after checking that its date range does not
// collide with any of the user's existing limits.
func (s *SpendingLimitService) CreateLimit(limit *domain.SpendingLimit) error {
	if err := limit.Validate(); err != nil {
		return err
	}
	if err := s.CheckOverlap(limit.UserID, limit.StartDate, limit.EndDate, nil); err != nil {
		return err
	}
	return s.repo.Save(limit)
}

// UpdateLimit excludes the limit itself from the overlap check so an edit
// never collides with the row it replaces.
func (s *SpendingLimitService) UpdateLimit(actingUserID string, limit domain.SpendingLimit) error {
	existing, err := s.repo.FindByID(limit.ID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(existing.UserID, actingUserID); err != nil {
		return err
	}

	limit.UserID = existing.UserID
	if err := limit.Validate(); err != nil {
		return err
	}
	if err := s.CheckOverlap(limit.UserID, limit.StartDate, limit.EndDate, &limit.ID); err != nil {
		return err
	}
	return s.repo.Update(limit)
}

func (s *SpendingLimitService) GetLimit(actingUserID string, limitID int) (*domain.SpendingLimit, error) {
	limit, err := s.repo.FindByID(limitID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(limit.UserID, actingUserID); err != nil {
		return nil, err
	}
	return limit, nil
}

func (s *SpendingLimitService) GetUserLimits(userID string) ([]domain.SpendingLimit, error) {
	return s.repo.FindByUser(userID)
}

func (s *SpendingLimitService) DeleteLimit(actingUserID string, limitID int) error {
	limit, err := s.repo.FindByID(limitID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(limit.UserID, actingUserID); err != nil {
		return err
	}
	return s.repo.Delete(limitID)
}

// CheckOverlap validates a candidate closed date range against the user's
// stored limits. excludeLimitID skips one row, used when editing that row.
// Returns ErrInvalidDateRange when end precedes start, an OverlapError naming
// the colliding limit IDs, or nil.
func (s *SpendingLimitService) CheckOverlap(userID string, start, end time.Time, excludeLimitID *int) error {
	if domain.DateOnly(end).Before(domain.DateOnly(start)) {
		return financeErrors.ErrInvalidDateRange
	}

	limits, err := s.repo.FindByUser(userID)
	if err != nil {
		return err
	}

	var conflicting []int
	for _, l := range limits {
		if excludeLimitID != nil && l.ID == *excludeLimitID {
			continue
		}
		if l.Overlaps(start, end) {
			conflicting = append(conflicting, l.ID)
		}
	}
	if len(conflicting) > 0 {
		return financeErrors.NewOverlapError(conflicting)
	}
	return nil
}
