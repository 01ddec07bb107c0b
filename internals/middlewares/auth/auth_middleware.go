package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	helper "stogie_backend/internals/helpers"
	helperAuth "stogie_backend/internals/helpers/auth"
)

const expirySkew = 30 * time.Second

// AuthMiddleware rejects the request with 401 unless a valid, non-blacklisted
// access token for an active user is presented.
func AuthMiddleware(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - No token provided")
		}

		blacklisted, err := helperAuth.IsBlacklisted(c.UserContext(), db, raw, secret)
		if err != nil {
			log.Printf("[ERROR] blacklist check: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}
		if blacklisted {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
		}

		claims, err := parseAccessToken(raw, secret, expirySkew)
		if err != nil {
			log.Printf("[WARN] token rejected: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or expired token")
		}

		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}

		if err := ensureUserActive(db, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - User not found")
			}
			if errors.Is(err, errUserInactive) {
				return fiber.NewError(fiber.StatusForbidden, "Your account has been deactivated")
			}
			log.Printf("[ERROR] ensureUserActive: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		storeClaims(c, raw, userID.String(), claims)
		return c.Next()
	}
}

func storeClaims(c *fiber.Ctx, raw, userID string, claims jwt.MapClaims) {
	helper.SetRawAccessToken(c, raw)
	c.Locals(helper.LocUserID, userID)
	if role, ok := claims["role"].(string); ok {
		c.Locals(LocUserRole, strings.ToLower(role))
	}
	if name, ok := claims["user_name"].(string); ok {
		c.Locals(LocUserName, name)
	}
}
