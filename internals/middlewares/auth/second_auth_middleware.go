package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "stogie_backend/internals/helpers"
	helperAuth "stogie_backend/internals/helpers/auth"
)

// SecondAuthMiddleware is the optional variant: a missing or bad token leaves the
// request anonymous instead of failing it. Used by the feed, where a viewer only
// changes liked_by_me.
func SecondAuthMiddleware(db *gorm.DB, secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := helper.GetRawAccessToken(c)
		if raw == "" {
			return c.Next()
		}

		if bl, err := helperAuth.IsBlacklisted(c.UserContext(), db, raw, secret); err != nil || bl {
			if err != nil {
				log.Printf("[WARN] blacklist check failed, continuing anonymous: %v", err)
			}
			return c.Next()
		}

		claims, err := parseAccessToken(raw, secret, expirySkew)
		if err != nil {
			return c.Next()
		}
		userID, err := extractUserID(claims)
		if err != nil {
			return c.Next()
		}
		if err := ensureUserActive(db, userID); err != nil {
			return c.Next()
		}

		storeClaims(c, raw, userID.String(), claims)
		return c.Next()
	}
}
