package infrastructure

import (
	"database/sql"
	"errors"
	"time"

	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

type ExpenseRepository struct {
	db *sql.DB
}

func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Save(expense *domain.Expense) error {
	return r.db.QueryRow(
		`INSERT INTO expenses (user_id, title, amount, category, date_of_purchase, description, receipt_image)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		expense.UserID, expense.Title, expense.Amount, expense.Category,
		expense.DateOfPurchase, expense.Description, expense.ReceiptImage,
	).Scan(&expense.ID)
}

func (r *ExpenseRepository) FindByID(expenseID int) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.QueryRow(
		`SELECT id, user_id, title, amount, category, date_of_purchase, description, receipt_image
		 FROM expenses WHERE id = $1`, expenseID,
	).Scan(&expense.ID, &expense.UserID, &expense.Title, &expense.Amount, &expense.Category,
		&expense.DateOfPurchase, &expense.Description, &expense.ReceiptImage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, financeErrors.ErrNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *ExpenseRepository) FindByUser(userID string) ([]domain.Expense, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, title, amount, category, date_of_purchase, description, receipt_image
		 FROM expenses WHERE user_id = $1
		 ORDER BY date_of_purchase DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExpenses(rows)
}

// FindByUserAndDay matches by calendar date regardless of the stored
// time-of-day component.
func (r *ExpenseRepository) FindByUserAndDay(userID string, day time.Time) ([]domain.Expense, error) {
	rows, err := r.db.Query(
		`SELECT id, user_id, title, amount, category, date_of_purchase, description, receipt_image
		 FROM expenses WHERE user_id = $1 AND date_of_purchase::date = $2::date`,
		userID, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanExpenses(rows)
}

func (r *ExpenseRepository) Update(expense domain.Expense) error {
	_, err := r.db.Exec(
		`UPDATE expenses
		 SET title = $1, amount = $2, category = $3, date_of_purchase = $4, description = $5, receipt_image = $6
		 WHERE id = $7`,
		expense.Title, expense.Amount, expense.Category, expense.DateOfPurchase,
		expense.Description, expense.ReceiptImage, expense.ID,
	)
	return err
}

func (r *ExpenseRepository) Delete(expenseID int) error {
	_, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, expenseID)
	return err
}

func scanExpenses(rows *sql.Rows) ([]domain.Expense, error) {
	var expenses []domain.Expense
	for rows.Next() {
		var expense domain.Expense
		if err := rows.Scan(&expense.ID, &expense.UserID, &expense.Title, &expense.Amount,
			&expense.Category, &expense.DateOfPurchase, &expense.Description, &expense.ReceiptImage); err != nil {
			return nil, err
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}
