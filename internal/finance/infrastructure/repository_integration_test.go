package infrastructure

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/expenseapp/ExpenseApp/db"
	"github.com/expenseapp/ExpenseApp/internal/finance/domain"
	financeErrors "github.com/expenseapp/ExpenseApp/internal/finance/errors"
)

// startPostgres spins up a throwaway database. Skipped with -short and when
// no container runtime is available.
func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("expenseapp_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
	require.NoError(t, database.MigrateDB(db))
	return db
}

func createTestUser(t *testing.T, db *sql.DB) string {
	t.Helper()
	userID := uuid.NewString()
	_, err := db.Exec(
		`INSERT INTO users (id, username, email, password_hash, hash_token)
		 VALUES ($1, $2, $3, 'x', 'x')`,
		userID, "user-"+userID[:8], userID[:8]+"@example.com",
	)
	require.NoError(t, err)
	return userID
}

func TestExpenseRepository_RoundTrip(t *testing.T) {
	db := startPostgres(t)
	repo := NewExpenseRepository(db)
	userID := createTestUser(t, db)

	expense := &domain.Expense{
		UserID:         userID,
		Title:          "Groceries run",
		Amount:         4250,
		Category:       "Groceries",
		DateOfPurchase: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Description:    "weekly shop",
		ReceiptImage:   domain.DefaultReceiptImage,
	}
	require.NoError(t, repo.Save(expense))
	assert.NotZero(t, expense.ID)

	found, err := repo.FindByID(expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries run", found.Title)
	assert.Equal(t, int64(4250), found.Amount)
	assert.Equal(t, userID, found.UserID)

	found.Title = "Groceries and snacks"
	found.Amount = 5000
	require.NoError(t, repo.Update(*found))

	updated, err := repo.FindByID(expense.ID)
	require.NoError(t, err)
	assert.Equal(t, "Groceries and snacks", updated.Title)
	assert.Equal(t, int64(5000), updated.Amount)

	require.NoError(t, repo.Delete(expense.ID))
	_, err = repo.FindByID(expense.ID)
	assert.ErrorIs(t, err, financeErrors.ErrNotFound)
}

func TestExpenseRepository_FindByUserAndDay_IgnoresTimeOfDay(t *testing.T) {
	db := startPostgres(t)
	repo := NewExpenseRepository(db)
	userID := createTestUser(t, db)

	morning := &domain.Expense{
		UserID: userID, Title: "Coffee", Amount: 450, Category: "Food",
		DateOfPurchase: time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		ReceiptImage:   domain.DefaultReceiptImage,
	}
	evening := &domain.Expense{
		UserID: userID, Title: "Dinner", Amount: 2800, Category: "Food",
		DateOfPurchase: time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC),
		ReceiptImage:   domain.DefaultReceiptImage,
	}
	nextDay := &domain.Expense{
		UserID: userID, Title: "Lunch", Amount: 1500, Category: "Food",
		DateOfPurchase: time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC),
		ReceiptImage:   domain.DefaultReceiptImage,
	}
	require.NoError(t, repo.Save(morning))
	require.NoError(t, repo.Save(evening))
	require.NoError(t, repo.Save(nextDay))

	dayExpenses, err := repo.FindByUserAndDay(userID, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, dayExpenses, 2)

	var total int64
	for _, e := range dayExpenses {
		total += e.Amount
	}
	assert.Equal(t, int64(3250), total)
}

func TestExpenseRepository_FindByUser_OnlyOwnRecords(t *testing.T) {
	db := startPostgres(t)
	repo := NewExpenseRepository(db)
	ownerID := createTestUser(t, db)
	otherID := createTestUser(t, db)

	mine := &domain.Expense{
		UserID: ownerID, Title: "Bus ticket", Amount: 320, Category: "Transportation",
		DateOfPurchase: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ReceiptImage:   domain.DefaultReceiptImage,
	}
	theirs := &domain.Expense{
		UserID: otherID, Title: "Taxi", Amount: 2100, Category: "Transportation",
		DateOfPurchase: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		ReceiptImage:   domain.DefaultReceiptImage,
	}
	require.NoError(t, repo.Save(mine))
	require.NoError(t, repo.Save(theirs))

	expenses, err := repo.FindByUser(ownerID)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Bus ticket", expenses[0].Title)
}

func TestSpendingLimitRepository_RoundTrip(t *testing.T) {
	db := startPostgres(t)
	repo := NewSpendingLimitRepository(db)
	userID := createTestUser(t, db)

	limit := &domain.SpendingLimit{
		UserID:     userID,
		DailyLimit: 10000,
		StartDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Save(limit))
	assert.NotZero(t, limit.ID)

	limits, err := repo.FindByUser(userID)
	require.NoError(t, err)
	require.Len(t, limits, 1)
	assert.Equal(t, int64(10000), limits[0].DailyLimit)

	found, err := repo.FindByID(limit.ID)
	require.NoError(t, err)
	assert.True(t, found.Covers(time.Date(2024, 1, 15, 13, 45, 0, 0, time.UTC)))
	assert.False(t, found.Covers(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, repo.Delete(limit.ID))
	_, err = repo.FindByID(limit.ID)
	assert.ErrorIs(t, err, financeErrors.ErrNotFound)
}
