package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidRememberToken = errors.New("remember-me token is invalid")
	ErrExpiredRememberToken = errors.New("remember-me token is expired")
)

const defaultRememberDuration = 720 * time.Hour // 30 days

type RememberTokenManagerInterface interface {
	GenerateRememberToken(userID, tokenHash string, duration time.Duration) (string, error)
	ExtractUserIDFromRememberToken(tokenString string) (string, error)
	ValidateRememberToken(tokenString, tokenHash string) error
}

type RememberTokenCustomClaims struct {
	UserID string `json:"user_id"`
	CusKey string `json:"cus_key"`
	jwt.StandardClaims
}

type RememberTokenManager struct {
	secret string
}

func NewRememberTokenManager() RememberTokenManagerInterface {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is not set in .env file")
	}

	return &RememberTokenManager{
		secret: jwtSecret,
	}
}

// generateCustomKey binds a token to the user's current hash token, rotating
// the hash token on password change invalidates every issued remember token.
func (j *RememberTokenManager) generateCustomKey(userID string, tokenHash string) string {
	h := hmac.New(sha256.New, []byte(tokenHash))
	h.Write([]byte(userID))
	sha := hex.EncodeToString(h.Sum(nil))
	return sha
}

func (j *RememberTokenManager) GenerateRememberToken(userID, tokenHash string, duration time.Duration) (string, error) {
	cusKey := j.generateCustomKey(userID, tokenHash)
	claims := &RememberTokenCustomClaims{
		UserID: userID,
		CusKey: cusKey,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *RememberTokenManager) parseClaims(tokenString string) (*RememberTokenCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RememberTokenCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return nil, ErrExpiredRememberToken
			}
		}
		return nil, err
	}

	claims, ok := token.Claims.(*RememberTokenCustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidRememberToken
	}

	return claims, nil
}

func (j *RememberTokenManager) ExtractUserIDFromRememberToken(tokenString string) (string, error) {
	claims, err := j.parseClaims(tokenString)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

func (j *RememberTokenManager) ValidateRememberToken(tokenString, tokenHash string) error {
	claims, err := j.parseClaims(tokenString)
	if err != nil {
		return err
	}

	expectedCusKey := j.generateCustomKey(claims.UserID, tokenHash)
	if claims.CusKey != expectedCusKey {
		fmt.Println("custom key in remember token is not valid!")
		return ErrInvalidRememberToken
	}

	return nil
}
