package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type SpendingLimitRepository struct {
	db *sql.DB
}

func NewSpendingLimitRepository(db *sql.DB) *SpendingLimitRepository {
	return &SpendingLimitRepository{db: db}
}

func (r *SpendingLimitRepository) Save(limit *domain.SpendingLimit) error {
	return r.db.QueryRow(
		`INSERT INTO spending_limits (user_id, daily_limit, start_date, end_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		limit.UserID, limit.DailyLimit, limit.StartDate, limit.EndDate,
	).Scan(&limit.ID)
}

func (r *SpendingLimitRepository) FindByID(limitID int) (*domain.SpendingLimit, error) {
	var limit domain.SpendingLimit
	err := r.db.QueryRow(
		`SELECT id, user_id, daily_limit, start_date, end_date
		 FROM spending_limits WHERE id = $1`, limitID,
	).Scan(&limit.ID, &limit.UserID, &limit.DailyLimit, &limit.StartDate, &limit.EndDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, err
	}
	return &limit, nil
}

func (r *SpendingLimitRepository) FindByUser(userID string) ([]domain.SpendingLimit, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, daily_limit, start_date, end_date
		 FROM spending_limits WHERE user_id = $1
		 ORDER BY start_date`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var limits []domain.SpendingLimit
	for rows.Next() {
		var limit domain.SpendingLimit
		if err := rows.Scan(&limit.ID, &limit.UserID, &limit.DailyLimit, &limit.StartDate, &limit.EndDate); err != nil {
			return nil, err
		}
		limits = append(limits, limit)
	}
	return limits, rows.Err()
}

func (r *SpendingLimitRepository) Update(limit domain.SpendingLimit) error {
	_, err := r.db.Exec(
		`UPDATE spending_limits
		 SET daily_limit = $1, start_date = $2, end_date = $3
		 WHERE id = $4`,
		limit.DailyLimit, limit.StartDate, limit.EndDate, limit.ID,
	)
	return err
}

func (r *SpendingLimitRepository) Delete(limitID int) error {
	_, err := r.db.Exec(`DELETE FROM spending_limits WHERE id = $1`, limitID)
	return err
}
