package http

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Shashhank12/Budget-Buddy/internal/config"
	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

const (
	sessionCookie = "bb_session"
	sessionTTL    = 7 * 24 * time.Hour
)

// issueSession signs a JWT carrying the user id and display name, the
// server-side session of the app.
func issueSession(cfg *config.Config, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   float64(user.ID),
		"user_name": user.FullName,
		"jti":       uuid.NewString(),
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SecretKey))
}

// parseSession verifies the cookie token and returns (user id, name).
func parseSession(cfg *config.Config, tokenStr string) (uint, string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return 0, "", fmt.Errorf("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("invalid session claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, "", fmt.Errorf("invalid session user id")
	}
	name, _ := claims["user_name"].(string)
	return uint(id), name, nil
}
