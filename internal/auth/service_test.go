package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"github.com/expenseapp/ExpenseApp/internal/user"
)

type mockUserService struct {
	Users []*user.User
}

func (m *mockUserService) Register(username, email, password string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) GetUserByID(userID string) (*user.User, error) {
	for _, u := range m.Users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) GetUserByLoginOrEmail(loginOrEmail string) (*user.User, error) {
	for _, u := range m.Users {
		if u.Username == loginOrEmail || u.Email == loginOrEmail {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (m *mockUserService) UpdateAccount(userID, username, email string) (*user.User, error) {
	return nil, errors.New("not implemented")
}

func (m *mockUserService) UpdateAvatar(userID, avatarPath string) error {
	return errors.New("not implemented")
}

func (m *mockUserService) ChangePasswordWithOldPassword(userID, oldPassword, newPassword string) error {
	return errors.New("not implemented")
}

func (m *mockUserService) GetHashToken(userID string) (string, error) {
	u, err := m.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	return u.HashToken, nil
}

func (m *mockUserService) EnableTwoFactor(userID, secret string) error {
	u, err := m.GetUserByID(userID)
	if err != nil {
		return err
	}
	u.TwoFactorEnabled = true
	u.TwoFactorSecret = secret
	return nil
}

func (m *mockUserService) DisableTwoFactor(userID string) error {
	u, err := m.GetUserByID(userID)
	if err != nil {
		return err
	}
	u.TwoFactorEnabled = false
	u.TwoFactorSecret = ""
	return nil
}

// stubAuthenticator accepts a single hard-coded code.
type stubAuthenticator struct {
	ValidCode string
}

func (s *stubAuthenticator) GenerateSecret(accountName string) (string, string, error) {
	return "otpauth://totp/ExpenseApp:" + accountName, "STUBSECRET", nil
}

func (s *stubAuthenticator) VerifyCode(secret, code string) bool {
	return code == s.ValidCode
}

type stubRememberManager struct {
	Token  string
	UserID string
	Hash   string
}

func (s *stubRememberManager) GenerateRememberToken(userID, tokenHash string, duration time.Duration) (string, error) {
	s.UserID = userID
	s.Hash = tokenHash
	return s.Token, nil
}

func (s *stubRememberManager) ExtractUserIDFromRememberToken(tokenString string) (string, error) {
	if tokenString != s.Token {
		return "", ErrInvalidRememberToken
	}
	return s.UserID, nil
}

func (s *stubRememberManager) ValidateRememberToken(tokenString, tokenHash string) error {
	if tokenString != s.Token || tokenHash != s.Hash {
		return ErrInvalidRememberToken
	}
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func newTestService(t *testing.T, users ...*user.User) (Service, *mockUserService, *stubAuthenticator) {
	userService := &mockUserService{Users: users}
	authenticator := &stubAuthenticator{ValidCode: "123456"}
	svc := NewAuthService(userService, NewSessionManager(), &stubRememberManager{Token: "remember-1"}, authenticator)
	return svc, userService, authenticator
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestService(t, &user.User{
		ID: "u-1", Username: "john", Email: "john@example.com",
		PasswordHash: mustHash(t, "secret123"), HashToken: "hash-1",
	})

	result, err := svc.Login("john", "secret123", false)
	assert.NoError(t, err)
	assert.False(t, result.TwoFactorRequired)
	assert.NotEmpty(t, result.SessionToken)
	assert.Empty(t, result.RememberToken)
}

func TestLogin_WithRememberMe(t *testing.T) {
	svc, _, _ := newTestService(t, &user.User{
		ID: "u-1", Username: "john", Email: "john@example.com",
		PasswordHash: mustHash(t, "secret123"), HashToken: "hash-1",
	})

	result, err := svc.Login("john@example.com", "secret123", true)
	assert.NoError(t, err)
	assert.Equal(t, "remember-1", result.RememberToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t, &user.User{
		ID: "u-1", Username: "john", PasswordHash: mustHash(t, "secret123"),
	})

	_, err := svc.Login("john", "wrong", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login("nobody", "secret123", false)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_TwoFactorRequired(t *testing.T) {
	svc, _, _ := newTestService(t, &user.User{
		ID: "u-1", Username: "john", PasswordHash: mustHash(t, "secret123"),
		TwoFactorEnabled: true, TwoFactorSecret: "STUBSECRET",
	})

	result, err := svc.Login("john", "secret123", false)
	assert.NoError(t, err)
	assert.True(t, result.TwoFactorRequired)
	assert.NotEmpty(t, result.PendingToken)
	assert.Empty(t, result.SessionToken)

	finished, err := svc.VerifyTwoFactor(result.PendingToken, "123456", false)
	assert.NoError(t, err)
	assert.NotEmpty(t, finished.SessionToken)

	// pending token is single use
	_, err = svc.VerifyTwoFactor(result.PendingToken, "123456", false)
	assert.ErrorIs(t, err, ErrInvalidSessionToken)
}

func TestVerifyTwoFactor_WrongCode(t *testing.T) {
	svc, _, _ := newTestService(t, &user.User{
		ID: "u-1", Username: "john", PasswordHash: mustHash(t, "secret123"),
		TwoFactorEnabled: true, TwoFactorSecret: "STUBSECRET",
	})

	result, err := svc.Login("john", "secret123", false)
	assert.NoError(t, err)

	_, err = svc.VerifyTwoFactor(result.PendingToken, "000000", false)
	assert.ErrorIs(t, err, ErrInvalid2FACode)
}

func TestSetupAndConfirmTwoFactor(t *testing.T) {
	svc, userService, _ := newTestService(t, &user.User{ID: "u-1", Username: "john", Email: "john@example.com"})

	otpURI, err := svc.SetupTwoFactor("u-1")
	assert.NoError(t, err)
	assert.Contains(t, otpURI, "otpauth://totp/")
	assert.False(t, userService.Users[0].TwoFactorEnabled)

	err = svc.ConfirmTwoFactor("u-1", "000000")
	assert.ErrorIs(t, err, ErrInvalid2FACode)
	assert.False(t, userService.Users[0].TwoFactorEnabled)

	err = svc.ConfirmTwoFactor("u-1", "123456")
	assert.NoError(t, err)
	assert.True(t, userService.Users[0].TwoFactorEnabled)
	assert.Equal(t, "STUBSECRET", userService.Users[0].TwoFactorSecret)

	// pending secret is consumed
	err = svc.ConfirmTwoFactor("u-1", "123456")
	assert.ErrorIs(t, err, ErrNoPendingTwoFactor)
}

func TestDisableTwoFactor(t *testing.T) {
	svc, userService, _ := newTestService(t, &user.User{
		ID: "u-1", Username: "john", TwoFactorEnabled: true, TwoFactorSecret: "STUBSECRET",
	})

	err := svc.DisableTwoFactor("u-1", "000000")
	assert.ErrorIs(t, err, ErrInvalid2FACode)
	assert.True(t, userService.Users[0].TwoFactorEnabled)

	err = svc.DisableTwoFactor("u-1", "123456")
	assert.NoError(t, err)
	assert.False(t, userService.Users[0].TwoFactorEnabled)
}

func TestSessionAuthMiddleware(t *testing.T) {
	currentUser := &user.User{
		ID: "u-1", Username: "john", Email: "john@example.com",
		PasswordHash: mustHash(t, "secret123"), HashToken: "hash-1",
	}
	svc, _, _ := newTestService(t, currentUser)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = r.Context().Value("userID").(string)
		w.WriteHeader(http.StatusOK)
	})
	protected := svc.SessionAuthMiddleware()(next)

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/expenses", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid session cookie", func(t *testing.T) {
		result, err := svc.Login("john", "secret123", false)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: result.SessionToken})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-1", gotUserID)
	})

	t.Run("remember token fallback mints a session", func(t *testing.T) {
		result, err := svc.Login("john", "secret123", true)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		req.AddCookie(&http.Cookie{Name: RememberCookieName, Value: result.RememberToken})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-1", gotUserID)

		cookies := rec.Result().Cookies()
		var sessionSet bool
		for _, c := range cookies {
			if c.Name == SessionCookieName && c.Value != "" {
				sessionSet = true
			}
		}
		assert.True(t, sessionSet)
	})

	t.Run("bogus remember token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
		req.AddCookie(&http.Cookie{Name: RememberCookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
