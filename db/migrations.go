package database

import (
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username VARCHAR(20) UNIQUE NOT NULL,
		email VARCHAR(120) UNIQUE NOT NULL,
		password_hash VARCHAR(128) NOT NULL,
		avatar_path VARCHAR(255) NOT NULL DEFAULT 'profile_pics/default.jpg',
		hash_token VARCHAR(64) NOT NULL,
		two_factor_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		two_factor_secret VARCHAR(64) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(100) NOT NULL,
		amount BIGINT NOT NULL,
		category VARCHAR(50) NOT NULL,
		date_of_purchase TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		receipt_image VARCHAR(255) NOT NULL DEFAULT 'receipt_pics/default_receipt.png'
	)`,
	`CREATE TABLE IF NOT EXISTS income (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		source VARCHAR(100) NOT NULL,
		amount BIGINT NOT NULL,
		category VARCHAR(50) NOT NULL,
		date_received TIMESTAMPTZ NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		receipt_image VARCHAR(255) NOT NULL DEFAULT 'receipt_pics/default_receipt.png'
	)`,
	`CREATE TABLE IF NOT EXISTS spending_limits (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		daily_limit BIGINT NOT NULL,
		start_date TIMESTAMPTZ NOT NULL,
		end_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS planner_items (
		id SERIAL PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title VARCHAR(100) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		planned_date TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses (user_id, date_of_purchase)`,
	`CREATE INDEX IF NOT EXISTS idx_spending_limits_user ON spending_limits (user_id)`,
}

// Migrate creates the application tables when they do not exist yet.
func (s *DBService) Migrate() error {
	return MigrateDB(s.DB)
}

// MigrateDB runs the schema against a raw connection, integration tests use
// it against a throwaway database.
func MigrateDB(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("could not run migration: %v", err)
		}
	}
	return nil
}
