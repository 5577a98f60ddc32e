package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type IncomeRepository struct {
	db *sql.DB
}

func NewIncomeRepository(db *sql.DB) *IncomeRepository {
	return &IncomeRepository{db: db}
}

func (r *IncomeRepository) Save(income *domain.Income) error {
	return r.db.QueryRow(
		`INSERT INTO income (user_id, source, amount, category, date_received, description, receipt_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		income.UserID, income.Source, income.Amount, income.Category,
		income.DateReceived, income.Description, income.ReceiptImage,
	).Scan(&income.ID)
}

func (r *IncomeRepository) FindByID(incomeID int) (*domain.Income, error) {
	var income domain.Income
	err := r.db.QueryRow(
		`SELECT id, user_id, source, amount, category, date_received, description, receipt_image
		 FROM income WHERE id = $1`, incomeID,
	).Scan(&income.ID, &income.UserID, &income.Source, &income.Amount, &income.Category,
		&income.DateReceived, &income.Description, &income.ReceiptImage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, err
	}
	return &income, nil
}

func (r *IncomeRepository) FindByUser(userID string) ([]domain.Income, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, source, amount, category, date_received, description, receipt_image
		 FROM income WHERE user_id = $1
		 ORDER BY date_received DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []domain.Income
	for rows.Next() {
		var income domain.Income
		if err := rows.Scan(&income.ID, &income.UserID, &income.Source, &income.Amount,
			&income.Category, &income.DateReceived, &income.Description, &income.ReceiptImage); err != nil {
			return nil, err
		}
		incomes = append(incomes, income)
	}
	return incomes, rows.Err()
}

func (r *IncomeRepository) Update(income domain.Income) error {
	_, err := r.db.Exec(
		`UPDATE income
		 SET source = $1, amount = $2, category = $3, date_received = $4, description = $5, receipt_image = $6
		 WHERE id = $7`,
		income.Source, income.Amount, income.Category, income.DateReceived,
		income.Description, income.ReceiptImage, income.ID,
	)
	return err
}

func (r *IncomeRepository) Delete(incomeID int) error {
	_, err := r.db.Exec(`DELETE FROM income WHERE id = $1`, incomeID)
	return err
}
