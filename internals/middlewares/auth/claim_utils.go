package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LocUserRole = "userRole"
	LocUserName = "user_name"
)

var errUserInactive = errors.New("user inactive")

// parseAccessToken verifies an HS256 token and returns its claims. exp is checked
// with a small skew so clocks a few seconds apart do not bounce valid tokens.
func parseAccessToken(raw, secret string, skew time.Duration) (jwt.MapClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("missing JWT secret")
	}
	claims := jwt.MapClaims{}
	parser := jwt.Parser{SkipClaimsValidation: true, ValidMethods: []string{jwt.SigningMethodHS256.Alg()}}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("token has no exp")
	}
	if time.Now().After(time.Unix(int64(exp), 0).Add(skew)) {
		return nil, fmt.Errorf("token expired")
	}
	return claims, nil
}

func extractUserID(claims jwt.MapClaims) (uuid.UUID, error) {
	s, ok := claims["id"].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("no user id")
	}
	return uuid.Parse(strings.TrimSpace(s))
}

func ensureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var user struct {
		IsActive bool
	}
	if err := db.Table("users").Select("is_active").Where("id = ?", userID).Take(&user).Error; err != nil {
		return err
	}
	if !user.IsActive {
		return errUserInactive
	}
	return nil
}
