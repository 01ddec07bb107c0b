package service

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stogie_backend/internals/features/users/auth/dto"
	authModel "stogie_backend/internals/features/users/auth/model"
	authRepo "stogie_backend/internals/features/users/auth/repository"
	userModel "stogie_backend/internals/features/users/user/model"
	helper "stogie_backend/internals/helpers"
	helperAuth "stogie_backend/internals/helpers/auth"
)

func nowUTC() time.Time { return time.Now().UTC() }

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func buildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":       "access",
		"sub":       user.ID.String(),
		"id":        user.ID.String(),
		"user_name": user.UserName,
		"role":      user.Role,
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
}

func buildRefreshClaims(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
}

// issueTokens signs a fresh access/refresh pair, stores the refresh hash and sets both cookies.
func issueTokens(c *fiber.Ctx, db *gorm.DB, opt Options, user userModel.UserModel, status int, message string) error {
	if opt.JWTSecret == "" || opt.RefreshSecret == "" {
		log.Println("[ERROR] JWT secrets are not configured")
		return helper.JsonError(c, fiber.StatusInternalServerError, "Auth is not configured")
	}
	now := nowUTC()

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildAccessClaims(user, now, opt.AccessTTL)).
		SignedString([]byte(opt.JWTSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign access token")
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, buildRefreshClaims(user.ID, now, opt.RefreshTTL)).
		SignedString([]byte(opt.RefreshSecret))
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign refresh token")
	}

	if err := authRepo.CreateRefreshToken(c.UserContext(), db, &authModel.RefreshTokenModel{
		UserID:    user.ID,
		TokenHash: helperAuth.HashToken(refreshToken, opt.RefreshSecret),
		ExpiresAt: now.Add(opt.RefreshTTL),
		UserAgent: strptr(c.Get(fiber.HeaderUserAgent)),
		IP:        strptr(c.IP()),
	}); err != nil {
		log.Printf("[ERROR] store refresh token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store refresh token")
	}

	setAuthCookies(c, opt, accessToken, refreshToken, now)

	var profile userModel.UserProfileModel
	pp := &profile
	if err := db.WithContext(c.UserContext()).Where("user_profile_user_id = ?", user.ID).Take(&profile).Error; err != nil {
		pp = nil
	}

	resp := dto.TokenResponse{
		User:         dto.ToUserResponse(user, pp),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(opt.AccessTTL),
	}
	if status == fiber.StatusCreated {
		return helper.JsonCreated(c, message, resp)
	}
	return helper.JsonOK(c, message, resp)
}

func setAuthCookies(c *fiber.Ctx, opt Options, accessToken, refreshToken string, now time.Time) {
	sameSite := fiber.CookieSameSiteNoneMode
	if !opt.CookieSecure {
		sameSite = fiber.CookieSameSiteLaxMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   opt.CookieSecure,
		SameSite: sameSite,
		Path:     "/",
		Expires:  now.Add(opt.AccessTTL),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   opt.CookieSecure,
		SameSite: sameSite,
		Path:     "/api/auth",
		Expires:  now.Add(opt.RefreshTTL),
	})
}

func clearAuthCookies(c *fiber.Ctx, opt Options) {
	expired := nowUTC().Add(-time.Hour)
	for name, path := range map[string]string{"access_token": "/", "refresh_token": "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   opt.CookieSecure,
			Path:     path,
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

/* ==========================
   REFRESH (rotation)
========================== */

func RefreshToken(db *gorm.DB, opt Options, c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body dto.RefreshRequest
		_ = c.BodyParser(&body)
		raw = body.RefreshToken
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token missing")
	}

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(opt.RefreshSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	ctx := c.UserContext()
	hash := helperAuth.HashToken(raw, opt.RefreshSecret)
	if _, err := authRepo.FindActiveRefreshToken(ctx, db, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token unknown or revoked")
		}
		return helper.MapDBError(err, "refresh token")
	}

	user, err := authRepo.FindUserByID(ctx, db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	if err := authRepo.DeleteRefreshTokenByHash(ctx, db, hash); err != nil {
		log.Printf("[WARN] delete rotated refresh token: %v", err)
	}
	return issueTokens(c, db, opt, *user, fiber.StatusOK, "Token refreshed")
}
