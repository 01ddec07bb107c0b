package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stogie_backend/internals/constants"
	"stogie_backend/internals/features/catalog/shops/model"
	shopRoute "stogie_backend/internals/features/catalog/shops/route"
	authMiddleware "stogie_backend/internals/middlewares/auth"
	"stogie_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	shopRoute.ShopRoutes(app.Group("/api"),
		authMiddleware.AuthMiddleware(db, testutil.Secret),
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("remove catalog entries"), constants.AdminOnly...),
		db)
	return app, db
}

type shopList struct {
	Shops []model.ShopModel `json:"shops"`
}

func TestShops_CreateSearchDelete(t *testing.T) {
	app, db := setup(t)
	user := testutil.CreateUser(t, db, "ash")
	admin := testutil.CreateUser(t, db, "boss")
	testutil.MakeAdmin(t, db, &admin)
	tok := testutil.Token(t, user)

	for _, s := range []fiber.Map{
		{"name": "Casa de Montecristo", "city": "Atlanta", "country": "USA"},
		{"name": "Smoke Lounge", "city": "Atlantic City", "country": "USA"},
		{"name": "Smoke Lounge", "city": "Boston", "country": "USA", "website": "https://example.com"},
	} {
		status, env := testutil.Do(t, app, "POST", "/api/shops", tok, s)
		require.Equal(t, fiber.StatusCreated, status, env.Message)
	}

	status, env := testutil.Do(t, app, "GET", "/api/shops?city=atlan", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var list shopList
	testutil.DataAs(t, env, &list)
	require.Len(t, list.Shops, 2)
	require.Equal(t, "Atlanta", list.Shops[0].ShopCity)

	status, env = testutil.Do(t, app, "GET", "/api/shops?q=lounge", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &list)
	require.Len(t, list.Shops, 2)

	status, env = testutil.Do(t, app, "GET", "/api/shops/smoke-lounge-boston", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	var one struct {
		Shop model.ShopModel `json:"shop"`
	}
	testutil.DataAs(t, env, &one)
	require.Equal(t, "Boston", one.Shop.ShopCity)

	status, _ = testutil.Do(t, app, "DELETE", "/api/shops/smoke-lounge-boston", tok, nil)
	require.Equal(t, fiber.StatusForbidden, status)
	status, _ = testutil.Do(t, app, "DELETE", "/api/shops/smoke-lounge-boston", testutil.Token(t, admin), nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = testutil.Do(t, app, "GET", "/api/shops/smoke-lounge-boston", "", nil)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestShops_Validation(t *testing.T) {
	app, db := setup(t)
	tok := testutil.Token(t, testutil.CreateUser(t, db, "ash"))

	status, env := testutil.Do(t, app, "POST", "/api/shops", tok, fiber.Map{
		"name": "X", "city": "", "country": "USA", "latitude": 120, "website": "nope",
	})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, env.Errors, "city")
	require.Contains(t, env.Errors, "latitude")
	require.Contains(t, env.Errors, "website")
}
