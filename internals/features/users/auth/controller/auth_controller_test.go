package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stogie_backend/internals/features/users/auth/dto"
	authRoute "stogie_backend/internals/features/users/auth/route"
	"stogie_backend/internals/features/users/auth/service"
	userModel "stogie_backend/internals/features/users/user/model"
	authMiddleware "stogie_backend/internals/middlewares/auth"
	"stogie_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	api := app.Group("/api")
	authRoute.AuthRoutes(api, authMiddleware.AuthMiddleware(db, testutil.Secret), db, service.Options{
		JWTSecret:     testutil.Secret,
		RefreshSecret: "refresh-secret",
		AccessTTL:     time.Hour,
		RefreshTTL:    24 * time.Hour,
	})
	return app, db
}

func register(t *testing.T, app *fiber.App, handle string) dto.TokenResponse {
	t.Helper()
	status, env := testutil.Do(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"user_name": handle,
		"email":     handle + "@example.com",
		"password":  "robusto-1964",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var out dto.TokenResponse
	testutil.DataAs(t, env, &out)
	return out
}

func TestRegister_CreatesUserAndProfile(t *testing.T) {
	app, db := setup(t)

	status, env := testutil.Do(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"user_name":    "  Ash_01 ",
		"email":        "ASH@Example.com",
		"password":     "robusto-1964",
		"display_name": "Ash",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var out dto.TokenResponse
	testutil.DataAs(t, env, &out)
	require.Equal(t, "ash_01", out.User.UserName)
	require.Equal(t, "ash@example.com", out.User.Email)
	require.Equal(t, "Ash", out.User.DisplayName)
	require.Equal(t, userModel.RoleUser, out.User.Role)
	require.NotEmpty(t, out.AccessToken)
	require.NotEmpty(t, out.RefreshToken)

	var profiles int64
	require.NoError(t, db.Model(&userModel.UserProfileModel{}).Where("user_profile_user_id = ?", out.User.ID).Count(&profiles).Error)
	require.Equal(t, int64(1), profiles)

	status, _ = testutil.Do(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"user_name": "ash_02",
		"email":     "ash@example.com",
		"password":  "robusto-1964",
	})
	require.Equal(t, fiber.StatusConflict, status)
}

func TestRegister_Validation(t *testing.T) {
	app, _ := setup(t)

	status, env := testutil.Do(t, app, "POST", "/api/auth/register", "", fiber.Map{
		"user_name": "a!",
		"email":     "not-an-email",
		"password":  "short",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	require.Contains(t, env.Errors, "user_name")
	require.Contains(t, env.Errors, "email")
	require.Contains(t, env.Errors, "password")
}

func TestLoginAndMe(t *testing.T) {
	app, _ := setup(t)
	reg := register(t, app, "maduro")

	status, _ := testutil.Do(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"identifier": "maduro", "password": "wrong-password",
	})
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, env := testutil.Do(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"identifier": "MADURO@example.com", "password": "robusto-1964",
	})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var login dto.TokenResponse
	testutil.DataAs(t, env, &login)
	require.Equal(t, reg.User.ID, login.User.ID)

	status, env = testutil.Do(t, app, "GET", "/api/auth/me", login.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, status)
	var me struct {
		User dto.UserResponse `json:"user"`
	}
	testutil.DataAs(t, env, &me)
	require.Equal(t, "maduro", me.User.UserName)

	status, _ = testutil.Do(t, app, "GET", "/api/auth/me", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	app, db := setup(t)
	reg := register(t, app, "ghost")
	require.NoError(t, db.Model(&userModel.UserModel{}).Where("id = ?", reg.User.ID).Update("is_active", false).Error)

	status, _ := testutil.Do(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"identifier": "ghost", "password": "robusto-1964",
	})
	require.Equal(t, fiber.StatusForbidden, status)

	status, _ = testutil.Do(t, app, "GET", "/api/auth/me", reg.AccessToken, nil)
	require.Equal(t, fiber.StatusForbidden, status)
}

func TestRefreshRotatesToken(t *testing.T) {
	app, _ := setup(t)
	reg := register(t, app, "corona")

	status, env := testutil.Do(t, app, "POST", "/api/auth/refresh-token", "", fiber.Map{"refresh_token": reg.RefreshToken})
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var next dto.TokenResponse
	testutil.DataAs(t, env, &next)
	require.NotEqual(t, reg.RefreshToken, next.RefreshToken)

	status, _ = testutil.Do(t, app, "POST", "/api/auth/refresh-token", "", fiber.Map{"refresh_token": reg.RefreshToken})
	require.Equal(t, fiber.StatusUnauthorized, status)

	// an access token is signed with the other secret and carries typ=access
	status, _ = testutil.Do(t, app, "POST", "/api/auth/refresh-token", "", fiber.Map{"refresh_token": next.AccessToken})
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = testutil.Do(t, app, "POST", "/api/auth/refresh-token", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, status)
}

func TestLogoutBlacklistsAccessToken(t *testing.T) {
	app, _ := setup(t)
	reg := register(t, app, "lancero")

	status, _ := testutil.Do(t, app, "POST", "/api/auth/logout", reg.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, env := testutil.Do(t, app, "GET", "/api/auth/me", reg.AccessToken, nil)
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.Contains(t, env.Message, "blacklisted")
}

func TestChangePassword(t *testing.T) {
	app, _ := setup(t)
	reg := register(t, app, "churchill")

	status, _ := testutil.Do(t, app, "POST", "/api/auth/change-password", reg.AccessToken, fiber.Map{
		"current_password": "nope-nope-nope", "new_password": "perfecto-2024",
	})
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, env := testutil.Do(t, app, "POST", "/api/auth/change-password", reg.AccessToken, fiber.Map{
		"current_password": "robusto-1964", "new_password": "robusto-1964",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, env.Errors, "new_password")

	status, _ = testutil.Do(t, app, "POST", "/api/auth/change-password", reg.AccessToken, fiber.Map{
		"current_password": "robusto-1964", "new_password": "perfecto-2024",
	})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = testutil.Do(t, app, "POST", "/api/auth/login", "", fiber.Map{
		"identifier": "churchill", "password": "perfecto-2024",
	})
	require.Equal(t, fiber.StatusOK, status)
}

func TestLoginGoogle_NotConfigured(t *testing.T) {
	app, _ := setup(t)
	status, _ := testutil.Do(t, app, "POST", "/api/auth/login-google", "", fiber.Map{"id_token": "abc"})
	require.Equal(t, fiber.StatusServiceUnavailable, status)
}
