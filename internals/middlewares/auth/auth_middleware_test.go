package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stogie_backend/internals/constants"
	helper "stogie_backend/internals/helpers"
	helperAuth "stogie_backend/internals/helpers/auth"
	authMiddleware "stogie_backend/internals/middlewares/auth"
	"stogie_backend/internals/testutil"
)

func whoami(c *fiber.Ctx) error {
	id := helper.OptionalUserID(c)
	role, _ := c.Locals(authMiddleware.LocUserRole).(string)
	name, _ := c.Locals(authMiddleware.LocUserName).(string)
	out := fiber.Map{"anonymous": id == nil, "role": role, "user_name": name}
	if id != nil {
		out["id"] = id.String()
	}
	return helper.JsonOK(c, "ok", out)
}

type who struct {
	Anonymous bool   `json:"anonymous"`
	ID        string `json:"id"`
	Role      string `json:"role"`
	UserName  string `json:"user_name"`
}

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	protected := authMiddleware.AuthMiddleware(db, testutil.Secret)
	app.Get("/protected", protected, whoami)
	app.Get("/optional", authMiddleware.SecondAuthMiddleware(db, testutil.Secret), whoami)
	app.Get("/admin", protected,
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("do this"), constants.AdminOnly...), whoami)
	app.Get("/bare-roles", authMiddleware.OnlyRoles("", constants.AllRoles...), whoami)
	return app, db
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestAuthMiddleware_Valid(t *testing.T) {
	app, db := setup(t)
	u := testutil.CreateUser(t, db, "robusto")

	status, env := testutil.Do(t, app, "GET", "/protected", testutil.Token(t, u), nil)
	require.Equal(t, fiber.StatusOK, status)
	var w who
	testutil.DataAs(t, env, &w)
	require.False(t, w.Anonymous)
	require.Equal(t, u.ID.String(), w.ID)
	require.Equal(t, "user", w.Role)
	require.Equal(t, "robusto", w.UserName)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	app, db := setup(t)
	u := testutil.CreateUser(t, db, "torpedo")
	now := time.Now()

	expired := sign(t, testutil.Secret, jwt.MapClaims{
		"id": u.ID.String(), "role": "user", "exp": now.Add(-time.Hour).Unix(),
	})
	wrongSecret := sign(t, "other", jwt.MapClaims{
		"id": u.ID.String(), "exp": now.Add(time.Hour).Unix(),
	})
	noExp := sign(t, testutil.Secret, jwt.MapClaims{"id": u.ID.String()})
	noID := sign(t, testutil.Secret, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	ghost := sign(t, testutil.Secret, jwt.MapClaims{
		"id": uuid.NewString(), "exp": now.Add(time.Hour).Unix(),
	})

	for name, tok := range map[string]string{
		"missing":      "",
		"garbage":      "not-a-jwt",
		"expired":      expired,
		"wrong secret": wrongSecret,
		"no exp":       noExp,
		"no id":        noID,
		"unknown user": ghost,
	} {
		status, env := testutil.Do(t, app, "GET", "/protected", tok, nil)
		require.Equal(t, fiber.StatusUnauthorized, status, name)
		require.Equal(t, "UNAUTHORIZED", env.ErrorCode, name)
	}
}

func TestAuthMiddleware_WithinSkew(t *testing.T) {
	app, db := setup(t)
	u := testutil.CreateUser(t, db, "perfecto")
	tok := sign(t, testutil.Secret, jwt.MapClaims{
		"id": u.ID.String(), "role": "user", "exp": time.Now().Add(-5 * time.Second).Unix(),
	})
	status, _ := testutil.Do(t, app, "GET", "/protected", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
}

func TestAuthMiddleware_Blacklisted(t *testing.T) {
	app, db := setup(t)
	u := testutil.CreateUser(t, db, "lonsdale")
	tok := testutil.Token(t, u)

	require.NoError(t, helperAuth.Add(context.Background(), db, tok, testutil.Secret, time.Now().Add(time.Hour)))

	status, _ := testutil.Do(t, app, "GET", "/protected", tok, nil)
	require.Equal(t, fiber.StatusUnauthorized, status)

	// optional auth degrades to anonymous
	status, env := testutil.Do(t, app, "GET", "/optional", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	var w who
	testutil.DataAs(t, env, &w)
	require.True(t, w.Anonymous)
}

func TestSecondAuthMiddleware(t *testing.T) {
	app, db := setup(t)
	u := testutil.CreateUser(t, db, "panatela")

	for _, tok := range []string{"", "junk"} {
		status, env := testutil.Do(t, app, "GET", "/optional", tok, nil)
		require.Equal(t, fiber.StatusOK, status)
		var w who
		testutil.DataAs(t, env, &w)
		require.True(t, w.Anonymous)
	}

	status, env := testutil.Do(t, app, "GET", "/optional", testutil.Token(t, u), nil)
	require.Equal(t, fiber.StatusOK, status)
	var w who
	testutil.DataAs(t, env, &w)
	require.False(t, w.Anonymous)
	require.Equal(t, u.ID.String(), w.ID)
}

func TestOnlyRoles(t *testing.T) {
	app, db := setup(t)
	user := testutil.CreateUser(t, db, "member")
	admin := testutil.CreateUser(t, db, "boss")
	testutil.MakeAdmin(t, db, &admin)

	status, env := testutil.Do(t, app, "GET", "/admin", testutil.Token(t, user), nil)
	require.Equal(t, fiber.StatusForbidden, status)
	require.Equal(t, "Only admins may do this.", env.Message)

	status, _ = testutil.Do(t, app, "GET", "/admin", testutil.Token(t, admin), nil)
	require.Equal(t, fiber.StatusOK, status)

	// without AuthMiddleware there is no role in Locals
	status, _ = testutil.Do(t, app, "GET", "/bare-roles", testutil.Token(t, admin), nil)
	require.Equal(t, fiber.StatusUnauthorized, status)
}
