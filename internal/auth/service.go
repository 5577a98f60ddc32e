package auth

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/expenseapp/ExpenseApp/internal/user"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("login Unsuccessful. Please check email and password")
	ErrInternalError         = errors.New("internal Server Error")
	ErrUser2FANotEnabled     = errors.New("two factor auth is not enabled")
	ErrUser2FAAlreadyEnabled = errors.New("2fa auth already enabled")
	ErrInvalid2FACode        = errors.New("2fa code is invalid")
	ErrNoPendingTwoFactor    = errors.New("no pending two-factor setup")
)

// TwoFactorAuthenticator abstracts TOTP so tests can stub code verification.
type TwoFactorAuthenticator interface {
	GenerateSecret(accountName string) (string, string, error)
	VerifyCode(secret, code string) bool
}

type LoginResult struct {
	User              *user.User
	SessionToken      string
	RememberToken     string
	TwoFactorRequired bool
	// PendingToken is set instead of SessionToken when a 2FA code is still
	// needed to finish the login.
	PendingToken string
}

type Service interface {
	Login(emailOrLogin, password string, rememberMe bool) (*LoginResult, error)
	VerifyTwoFactor(pendingToken, code string, rememberMe bool) (*LoginResult, error)
	Logout(sessionToken string)
	SetupTwoFactor(userID string) (string, error)
	ConfirmTwoFactor(userID, code string) error
	DisableTwoFactor(userID, code string) error
	SessionAuthMiddleware() func(http.Handler) http.Handler
	DeleteExpiredSessions() int
}

type service struct {
	userService     user.Service
	sessionManager  SessionManagerInterface
	rememberManager RememberTokenManagerInterface
	authenticator   TwoFactorAuthenticator

	mu sync.Mutex
	// TOTP secrets that were generated but not yet confirmed with a valid code
	pendingSecrets map[string]string
}

func NewAuthService(userService user.Service, sessionManager SessionManagerInterface, rememberManager RememberTokenManagerInterface, authenticator TwoFactorAuthenticator) Service {
	return &service{
		userService:     userService,
		sessionManager:  sessionManager,
		rememberManager: rememberManager,
		authenticator:   authenticator,
		pendingSecrets:  make(map[string]string),
	}
}

func (s *service) Login(emailOrLogin, password string, rememberMe bool) (*LoginResult, error) {
	existingUser, err := s.userService.GetUserByLoginOrEmail(emailOrLogin)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		fmt.Println("error when getting user from database: ", err)
		return nil, ErrInternalError
	}

	if !user.CheckPasswordHash(password, existingUser.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if existingUser.TwoFactorEnabled {
		pendingToken, err := s.sessionManager.GenerateSessionToken(existingUser.ID, pendingTwoFactorDuration)
		if err != nil {
			return nil, ErrInternalError
		}
		return &LoginResult{
			User:              existingUser,
			TwoFactorRequired: true,
			PendingToken:      pendingToken,
		}, nil
	}

	return s.openSession(existingUser, rememberMe)
}

func (s *service) VerifyTwoFactor(pendingToken, code string, rememberMe bool) (*LoginResult, error) {
	userID, err := s.sessionManager.VerifySessionToken(pendingToken)
	if err != nil {
		return nil, err
	}

	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrInternalError
	}
	if !existingUser.TwoFactorEnabled {
		return nil, ErrUser2FANotEnabled
	}

	if !s.authenticator.VerifyCode(existingUser.TwoFactorSecret, code) {
		return nil, ErrInvalid2FACode
	}

	s.sessionManager.DeleteSessionToken(pendingToken)
	return s.openSession(existingUser, rememberMe)
}

func (s *service) openSession(existingUser *user.User, rememberMe bool) (*LoginResult, error) {
	sessionToken, err := s.sessionManager.GenerateSessionToken(existingUser.ID, defaultSessionDuration)
	if err != nil {
		return nil, ErrInternalError
	}

	result := &LoginResult{
		User:         existingUser,
		SessionToken: sessionToken,
	}

	if rememberMe {
		rememberToken, err := s.rememberManager.GenerateRememberToken(existingUser.ID, existingUser.HashToken, defaultRememberDuration)
		if err != nil {
			fmt.Println("error during remember token generation")
			return nil, ErrInternalError
		}
		result.RememberToken = rememberToken
	}

	return result, nil
}

func (s *service) Logout(sessionToken string) {
	s.sessionManager.DeleteSessionToken(sessionToken)
}

// SetupTwoFactor generates a TOTP secret and returns the otpauth URI for the
// authenticator app. The secret stays pending until ConfirmTwoFactor sees a
// valid code.
func (s *service) SetupTwoFactor(userID string) (string, error) {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrUserNotFound
		}
		return "", ErrInternalError
	}

	if existingUser.TwoFactorEnabled {
		return "", ErrUser2FAAlreadyEnabled
	}

	otpURI, secret, err := s.authenticator.GenerateSecret(existingUser.Email)
	if err != nil {
		return "", ErrInternalError
	}

	s.mu.Lock()
	s.pendingSecrets[userID] = secret
	s.mu.Unlock()

	return otpURI, nil
}

func (s *service) ConfirmTwoFactor(userID, code string) error {
	s.mu.Lock()
	secret, ok := s.pendingSecrets[userID]
	s.mu.Unlock()
	if !ok {
		return ErrNoPendingTwoFactor
	}

	if !s.authenticator.VerifyCode(secret, code) {
		return ErrInvalid2FACode
	}

	if err := s.userService.EnableTwoFactor(userID, secret); err != nil {
		return ErrInternalError
	}

	s.mu.Lock()
	delete(s.pendingSecrets, userID)
	s.mu.Unlock()
	return nil
}

func (s *service) DisableTwoFactor(userID, code string) error {
	existingUser, err := s.userService.GetUserByID(userID)
	if err != nil {
		return ErrUserNotFound
	}

	if !existingUser.TwoFactorEnabled {
		return ErrUser2FANotEnabled
	}

	if !s.authenticator.VerifyCode(existingUser.TwoFactorSecret, code) {
		return ErrInvalid2FACode
	}

	if err := s.userService.DisableTwoFactor(userID); err != nil {
		return ErrInternalError
	}
	return nil
}

func (s *service) DeleteExpiredSessions() int {
	return s.sessionManager.DeleteExpiredTokens()
}
