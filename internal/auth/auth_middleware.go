package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

const (
	SessionCookieName  = "session_token"
	RememberCookieName = "remember_token"
)

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SessionAuthMiddleware authenticates requests with the session cookie. When
// the session is missing or expired it falls back to the remember-me token,
// mints a fresh session and sets the cookie on the response.
func (s *service) SessionAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				userID, err := s.sessionManager.VerifySessionToken(cookie.Value)
				if err == nil {
					ctx := context.WithValue(r.Context(), "userID", userID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			cookie, err := r.Cookie(RememberCookieName)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Please log in to access this page")
				return
			}

			userID, err := s.rememberManager.ExtractUserIDFromRememberToken(cookie.Value)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			existingUser, err := s.userService.GetUserByID(userID)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					writeJSONError(w, http.StatusUnauthorized, ErrUserNotFound.Error())
					return
				}
				writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}

			// hash token rotation on password change invalidates the token
			if err := s.rememberManager.ValidateRememberToken(cookie.Value, existingUser.HashToken); err != nil {
				writeJSONError(w, http.StatusUnauthorized, ErrInvalidRememberToken.Error())
				return
			}

			sessionToken, err := s.sessionManager.GenerateSessionToken(userID, defaultSessionDuration)
			if err != nil {
				writeJSONError(w, http.StatusInternalServerError, ErrInternalError.Error())
				return
			}
			SetSessionCookie(w, sessionToken)

			ctx := context.WithValue(r.Context(), "userID", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SetSessionCookie(w http.ResponseWriter, sessionToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sessionToken,
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
	})
}

// writeJSONError writes an error response in JSON format
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
	})
}
