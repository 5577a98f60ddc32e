package user

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxEmailLength    = 120
	minEmailLength    = 3
	maxUsernameLength = 20
	minUsernameLength = 2
	bcryptCost        = 12

	// DefaultAvatar is assigned to every new account until the user uploads
	// a profile picture.
	DefaultAvatar = "profile_pics/default.jpg"
)

var (
	ErrInvalidEmail          = fmt.Errorf("email address is not valid")
	ErrEmailLength           = fmt.Errorf("email address is too long or too short, max length: %d, min length: %d", maxEmailLength, minEmailLength)
	ErrUsernameLength        = fmt.Errorf("username is too long or too short, max length: %d, min length: %d", maxUsernameLength, minUsernameLength)
	ErrEmailAlreadyExists    = errors.New("that email is taken, please choose a different one")
	ErrUsernameAlreadyExists = errors.New("that username is taken, please choose a different one")
	ErrInternalError         = errors.New("internal Server Error")
	ErrInvalidOldPassword    = errors.New("invalid old password")
)

type User struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	AvatarPath       string    `json:"avatar_path"`
	HashToken        string    `json:"-"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	TwoFactorSecret  string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Service interface {
	Register(username, email, password string) (*User, error)
	GetUserByID(userID string) (*User, error)
	GetUserByLoginOrEmail(loginOrEmail string) (*User, error)
	UpdateAccount(userID, username, email string) (*User, error)
	UpdateAvatar(userID, avatarPath string) error
	ChangePasswordWithOldPassword(userID, oldPassword, newPassword string) error
	GetHashToken(userID string) (string, error)
	EnableTwoFactor(userID, secret string) error
	DisableTwoFactor(userID string) error
}

type service struct {
	repo Repository
}

func NewUserService(repo Repository) Service {
	return &service{repo: repo}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

// CheckPasswordHash compares a plaintext password with its stored bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func generateHashToken() (string, error) {
	token := make([]byte, 32)
	_, err := rand.Read(token)
	if err != nil {
		return "", fmt.Errorf("could not generate hash token: %v", err)
	}
	return hex.EncodeToString(token), nil
}

func validateUsername(username string) error {
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return ErrUsernameLength
	}
	return nil
}

func validateEmailAddress(email string) error {
	if err := checkmail.ValidateFormat(email); err != nil {
		fmt.Println("Email Validation FORMAT check error")
		return ErrInvalidEmail
	}
	if len(email) > maxEmailLength || len(email) <= minEmailLength {
		fmt.Println("Email Validation length check error")
		return ErrEmailLength
	}
	return nil
}

func (s *service) Register(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}

	existingUser, err := s.repo.userExistsByUsernameOrEmail(username, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		fmt.Println("Error with database request")
		return nil, ErrInternalError
	}

	if existingUser != nil {
		if existingUser.Username == username {
			return nil, ErrUsernameAlreadyExists
		} else if existingUser.Email == email {
			return nil, ErrEmailAlreadyExists
		}
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		fmt.Println("Error during hashing the password")
		return nil, ErrInternalError
	}

	hashToken, err := generateHashToken()
	if err != nil {
		fmt.Println("Error during generating a hashToken")
		return nil, ErrInternalError
	}

	newUser := &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		AvatarPath:   DefaultAvatar,
		HashToken:    hashToken,
	}

	err = s.repo.createUser(newUser)
	if err != nil {
		fmt.Println("Error during creating the user: ", err)
		return nil, ErrInternalError
	}

	return newUser, nil
}

func (s *service) GetUserByID(userID string) (*User, error) {
	return s.repo.getUserByID(userID)
}

// GetUserByLoginOrEmail accepts either a username or an email address, the
// login form takes both.
func (s *service) GetUserByLoginOrEmail(loginOrEmail string) (*User, error) {
	if strings.Contains(loginOrEmail, "@") {
		return s.repo.getUserByEmail(strings.ToLower(loginOrEmail))
	}
	return s.repo.getUserByUsername(loginOrEmail)
}

// UpdateAccount changes username and email. Uniqueness is checked against
// every account except the one being updated, so resubmitting an unchanged
// field is not a conflict.
func (s *service) UpdateAccount(userID, username, email string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	current, err := s.repo.getUserByID(userID)
	if err != nil {
		return nil, err
	}

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmailAddress(email); err != nil {
		return nil, err
	}

	if username != current.Username {
		if _, err := s.repo.getUserByUsername(username); err == nil {
			return nil, ErrUsernameAlreadyExists
		} else if !errors.Is(err, ErrUserNotFound) {
			return nil, ErrInternalError
		}
	}
	if email != current.Email {
		if _, err := s.repo.getUserByEmail(email); err == nil {
			return nil, ErrEmailAlreadyExists
		} else if !errors.Is(err, ErrUserNotFound) {
			return nil, ErrInternalError
		}
	}

	if err := s.repo.updateUsernameAndEmail(userID, username, email); err != nil {
		fmt.Println("Error during updating the account: ", err)
		return nil, ErrInternalError
	}
	current.Username = username
	current.Email = email
	return current, nil
}

func (s *service) UpdateAvatar(userID, avatarPath string) error {
	return s.repo.updateAvatarPath(userID, avatarPath)
}

// ChangePasswordWithOldPassword rotates the hash token together with the
// password, which invalidates every outstanding remember-me token.
func (s *service) ChangePasswordWithOldPassword(userID, oldPassword, newPassword string) error {
	existingUser, err := s.repo.getUserByID(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInternalError
	}

	if !CheckPasswordHash(oldPassword, existingUser.PasswordHash) {
		return ErrInvalidOldPassword
	}

	newPasswordHash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("could not hash password: %v", err)
	}

	newHashToken, err := generateHashToken()
	if err != nil {
		return fmt.Errorf("could not generate hash token: %v", err)
	}

	return s.repo.updateUserPasswordAndHashToken(userID, newPasswordHash, newHashToken)
}

func (s *service) GetHashToken(userID string) (string, error) {
	existingUser, err := s.repo.getUserByID(userID)
	if err != nil {
		return "", err
	}
	return existingUser.HashToken, nil
}

func (s *service) EnableTwoFactor(userID, secret string) error {
	return s.repo.updateTwoFactor(userID, true, secret)
}

func (s *service) DisableTwoFactor(userID string) error {
	return s.repo.updateTwoFactor(userID, false, "")
}
