package user

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	createUser(user *User) error
	getUserByEmail(email string) (*User, error)
	getUserByUsername(username string) (*User, error)
	userExistsByUsernameOrEmail(username, email string) (*User, error)
	getUserByID(id string) (*User, error)
	updateUsernameAndEmail(userID, username, email string) error
	updateAvatarPath(userID, avatarPath string) error
	updateUserPasswordAndHashToken(userID, newPasswordHash, newHashToken string) error
	updateTwoFactor(userID string, enabled bool, secret string) error
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) Repository {
	return &userRepository{
		db: db,
	}
}

const userColumns = "id, username, email, password_hash, avatar_path, hash_token, two_factor_enabled, two_factor_secret, created_at, updated_at"

func scanUser(row *sql.Row) (*User, error) {
	var user User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.AvatarPath, &user.HashToken, &user.TwoFactorEnabled, &user.TwoFactorSecret, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("could not find user: %v", err)
	}
	return &user, nil
}

func (r *userRepository) createUser(user *User) error {
	query := `
		INSERT INTO users (id, username, email, password_hash, avatar_path, hash_token, two_factor_enabled, two_factor_secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW());
	`
	_, err := r.db.Exec(query, user.ID, user.Username, user.Email, user.PasswordHash, user.AvatarPath, user.HashToken, user.TwoFactorEnabled, user.TwoFactorSecret)
	if err != nil {
		return fmt.Errorf("could not create user: %v", err)
	}
	return nil
}

func (r *userRepository) getUserByEmail(email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) getUserByUsername(username string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRow(query, username))
}

func (r *userRepository) userExistsByUsernameOrEmail(username, email string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1 OR email = $2`
	return scanUser(r.db.QueryRow(query, username, email))
}

func (r *userRepository) getUserByID(id string) (*User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) updateUsernameAndEmail(userID, username, email string) error {
	query := `
        UPDATE users
        SET username = $1,
            email = $2,
            updated_at = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(query, username, email, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("could not update account: %v", err)
	}
	return nil
}

func (r *userRepository) updateAvatarPath(userID, avatarPath string) error {
	query := `
        UPDATE users
        SET avatar_path = $1,
            updated_at = $2
        WHERE id = $3
    `
	_, err := r.db.Exec(query, avatarPath, time.Now(), userID)
	if err != nil {
		return fmt.Errorf("could not update avatar: %v", err)
	}
	return nil
}

func (r *userRepository) updateUserPasswordAndHashToken(userID, newPasswordHash, newHashToken string) error {
	query := `
        UPDATE users
        SET password_hash = $1,
            hash_token = $2,
            updated_at = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(query, newPasswordHash, newHashToken, time.Now(), userID)
	return err
}

func (r *userRepository) updateTwoFactor(userID string, enabled bool, secret string) error {
	query := `
        UPDATE users
        SET two_factor_enabled = $1,
            two_factor_secret = $2,
            updated_at = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(query, enabled, secret, time.Now(), userID)
	return err
}
