package application

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
	"github.com/expenseapp/ExpenseApp/internal/finance/infrastructure"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckOverlap_RejectsOverlappingRange(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{}
	service := NewSpendingLimitService(repo)

	err := service.CreateLimit(&domain.SpendingLimit{
		UserID:     "user-1",
		DailyLimit: 10000,
		StartDate:  day(2024, time.January, 1),
		EndDate:    day(2024, time.January, 31),
	})
	assert.NoError(t, err)

	err = service.CreateLimit(&domain.SpendingLimit{
		UserID:     "user-1",
		DailyLimit: 5000,
		StartDate:  day(2024, time.January, 15),
		EndDate:    day(2024, time.February, 15),
	})
	assert.Error(t, err)

	var overlapErr *financeErrors.OverlapError
	assert.True(t, errors.As(err, &overlapErr))
	assert.Equal(t, []int{1}, overlapErr.ConflictingIDs)
	assert.Len(t, repo.Limits, 1, "overlapping limit must not be persisted")
}

func TestCheckOverlap_AcceptsAdjacentRange(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{}
	service := NewSpendingLimitService(repo)

	assert.NoError(t, service.CreateLimit(&domain.SpendingLimit{
		UserID:     "user-1",
		DailyLimit: 10000,
		StartDate:  day(2024, time.January, 1),
		EndDate:    day(2024, time.January, 31),
	}))
	assert.NoError(t, service.CreateLimit(&domain.SpendingLimit{
		UserID:     "user-1",
		DailyLimit: 5000,
		StartDate:  day(2024, time.February, 1),
		EndDate:    day(2024, time.February, 28),
	}))
	assert.Len(t, repo.Limits, 2)
}

func TestCheckOverlap_InvalidRange(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{}
	service := NewSpendingLimitService(repo)

	err := service.CreateLimit(&domain.SpendingLimit{
		UserID:     "user-1",
		DailyLimit: 10000,
		StartDate:  day(2024, time.February, 1),
		EndDate:    day(2024, time.January, 1),
	})
	assert.ErrorIs(t, err, financeErrors.ErrInvalidDateRange)
	assert.Empty(t, repo.Limits, "invalid limit must not be persisted")
}

func TestCheckOverlap_IgnoresOtherUsers(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{
		Limits: []domain.SpendingLimit{
			{ID: 1, UserID: "user-2", DailyLimit: 10000, StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 31)},
		},
	}
	service := NewSpendingLimitService(repo)

	err := service.CheckOverlap("user-1", day(2024, time.January, 10), day(2024, time.January, 20), nil)
	assert.NoError(t, err)
}

func TestCheckOverlap_EditExcludesOwnRow(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{}
	service := NewSpendingLimitService(repo)

	limit := &domain.SpendingLimit{
		UserID:     "user-1",
		DailyLimit: 10000,
		StartDate:  day(2024, time.January, 1),
		EndDate:    day(2024, time.January, 31),
	}
	assert.NoError(t, service.CreateLimit(limit))

	// shifting the same limit's window must not collide with itself
	updated := *limit
	updated.EndDate = day(2024, time.February, 10)
	assert.NoError(t, service.UpdateLimit("user-1", updated))
}

func TestCheckOverlap_Idempotent(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{
		Limits: []domain.SpendingLimit{
			{ID: 1, UserID: "user-1", DailyLimit: 10000, StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 31)},
		},
	}
	service := NewSpendingLimitService(repo)

	first := service.CheckOverlap("user-1", day(2024, time.January, 20), day(2024, time.February, 5), nil)
	second := service.CheckOverlap("user-1", day(2024, time.January, 20), day(2024, time.February, 5), nil)
	assert.Error(t, first)
	assert.Equal(t, first, second)
}

// Exhaustive check that the single-inequality closed-interval test matches the
// case enumeration (B starts inside A, B ends inside A, B contains A, B within
// A) over all valid interval pairs in a small window.
func TestCheckOverlap_EquivalentToCaseEnumeration(t *testing.T) {
	base := day(2024, time.March, 1)
	at := func(offset int) time.Time { return base.AddDate(0, 0, offset) }

	enumerated := func(aStart, aEnd, bStart, bEnd time.Time) bool {
		startsInside := !bStart.Before(aStart) && !bStart.After(aEnd)
		endsInside := !bEnd.Before(aStart) && !bEnd.After(aEnd)
		contains := bStart.Before(aStart) && bEnd.After(aEnd)
		return startsInside || endsInside || contains
	}

	const span = 6
	for aStart := 0; aStart < span; aStart++ {
		for aEnd := aStart; aEnd < span; aEnd++ {
			for bStart := 0; bStart < span; bStart++ {
				for bEnd := bStart; bEnd < span; bEnd++ {
					existing := domain.SpendingLimit{
						ID: 1, UserID: "user-1", DailyLimit: 100,
						StartDate: at(aStart), EndDate: at(aEnd),
					}
					repo := &infrastructure.MockSpendingLimitRepository{Limits: []domain.SpendingLimit{existing}}
					service := NewSpendingLimitService(repo)

					err := service.CheckOverlap("user-1", at(bStart), at(bEnd), nil)
					got := err != nil
					want := enumerated(at(aStart), at(aEnd), at(bStart), at(bEnd))
					assert.Equal(t, want, got,
						"A=[%d,%d] B=[%d,%d]", aStart, aEnd, bStart, bEnd)
				}
			}
		}
	}
}

func TestUpdateLimit_ForbiddenForOtherUser(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{
		Limits: []domain.SpendingLimit{
			{ID: 1, UserID: "user-1", DailyLimit: 10000, StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 31)},
		},
	}
	service := NewSpendingLimitService(repo)

	err := service.UpdateLimit("user-2", domain.SpendingLimit{
		ID:         1,
		DailyLimit: 1,
		StartDate:  day(2024, time.January, 1),
		EndDate:    day(2024, time.January, 31),
	})
	assert.ErrorIs(t, err, financeErrors.ErrForbidden)
	assert.Equal(t, int64(10000), repo.Limits[0].DailyLimit, "record must be unchanged")
}

func TestDeleteLimit_ForbiddenForOtherUser(t *testing.T) {
	repo := &infrastructure.MockSpendingLimitRepository{
		Limits: []domain.SpendingLimit{
			{ID: 1, UserID: "user-1", DailyLimit: 10000, StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 31)},
		},
	}
	service := NewSpendingLimitService(repo)

	assert.ErrorIs(t, service.DeleteLimit("user-2", 1), financeErrors.ErrForbidden)
	assert.Len(t, repo.Limits, 1)
}
