package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type PlannerItemRepository struct {
	db *sql.DB
}

func NewPlannerItemRepository(db *sql.DB) *PlannerItemRepository {
	return &PlannerItemRepository{db: db}
}

func (r *PlannerItemRepository) Save(item *domain.PlannerItem) error {
	return r.db.QueryRow(
		`INSERT INTO planner_items (user_id, title, description, planned_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		item.UserID, item.Title, item.Description, item.PlannedDate,
	).Scan(&item.ID)
}

func (r *PlannerItemRepository) FindByID(itemID int) (*domain.PlannerItem, error) {
	var item domain.PlannerItem
	err := r.db.QueryRow(
		`SELECT id, user_id, title, description, planned_date
		 FROM planner_items WHERE id = $1`, itemID,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.PlannedDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *PlannerItemRepository) FindByUser(userID string) ([]domain.PlannerItem, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, title, description, planned_date
		 FROM planner_items WHERE user_id = $1
		 ORDER BY planned_date`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PlannerItem
	for rows.Next() {
		var item domain.PlannerItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.PlannedDate); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PlannerItemRepository) Update(item domain.PlannerItem) error {
	_, err := r.db.Exec(
		`UPDATE planner_items
		 SET title = $1, description = $2, planned_date = $3
		 WHERE id = $4`,
		item.Title, item.Description, item.PlannedDate, item.ID,
	)
	return err
}

func (r *PlannerItemRepository) Delete(itemID int) error {
	_, err := r.db.Exec(`DELETE FROM planner_items WHERE id = $1`, itemID)
	return err
}
