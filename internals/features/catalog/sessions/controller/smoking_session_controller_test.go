package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/sessions/dto"
	sessionRoute "stogie_backend/internals/features/catalog/sessions/route"
	shopModel "stogie_backend/internals/features/catalog/shops/model"
	authMiddleware "stogie_backend/internals/middlewares/auth"
	"stogie_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	sessionRoute.SmokingSessionRoutes(app.Group("/api"), authMiddleware.AuthMiddleware(db, testutil.Secret), db)
	return app, db
}

type sessionOne struct {
	Session dto.SessionDTO `json:"session"`
}

func TestSessions_LogAndList(t *testing.T) {
	app, db := setup(t)
	cg := testutil.CreateCigar(t, db, "Padron", "2000", "")
	shop := shopModel.ShopModel{ShopSlug: "lounge-atlanta", ShopName: "Lounge", ShopCity: "Atlanta", ShopCountry: "USA"}
	require.NoError(t, db.Create(&shop).Error)
	tok := testutil.Token(t, testutil.CreateUser(t, db, "ash"))

	earlier := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Second)
	status, env := testutil.Do(t, app, "POST", "/api/sessions", tok, fiber.Map{
		"cigar_id": cg.CigarID, "smoked_at": earlier, "duration_minutes": 45, "pairing": " rum ",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var one sessionOne
	testutil.DataAs(t, env, &one)
	require.Equal(t, cg.CigarSlug, one.Session.CigarSlug)
	require.Nil(t, one.Session.ShopName)
	require.Equal(t, "rum", *one.Session.Pairing)
	require.True(t, earlier.Equal(one.Session.SmokedAt))

	status, env = testutil.Do(t, app, "POST", "/api/sessions", tok, fiber.Map{
		"cigar_id": cg.CigarID, "shop_id": shop.ShopID,
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	testutil.DataAs(t, env, &one)
	require.NotNil(t, one.Session.ShopName)
	require.Equal(t, "Lounge", *one.Session.ShopName)

	status, env = testutil.Do(t, app, "GET", "/api/sessions", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	var list struct {
		Sessions []dto.SessionDTO `json:"sessions"`
	}
	testutil.DataAs(t, env, &list)
	require.Len(t, list.Sessions, 2)
	require.NotNil(t, list.Sessions[0].ShopName, "most recent first")
}

func TestSessions_Errors(t *testing.T) {
	app, db := setup(t)
	cg := testutil.CreateCigar(t, db, "Padron", "2000", "")
	ash := testutil.Token(t, testutil.CreateUser(t, db, "ash"))
	bea := testutil.Token(t, testutil.CreateUser(t, db, "bea"))

	status, _ := testutil.Do(t, app, "POST", "/api/sessions", ash, fiber.Map{"cigar_id": uuid.New()})
	require.Equal(t, fiber.StatusNotFound, status)

	status, _ = testutil.Do(t, app, "POST", "/api/sessions", ash, fiber.Map{"cigar_id": cg.CigarID, "shop_id": uuid.New()})
	require.Equal(t, fiber.StatusNotFound, status)

	status, env := testutil.Do(t, app, "POST", "/api/sessions", ash, fiber.Map{"cigar_id": cg.CigarID, "duration_minutes": 0})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, env.Errors, "duration_minutes")

	_, env = testutil.Do(t, app, "POST", "/api/sessions", ash, fiber.Map{"cigar_id": cg.CigarID})
	var one sessionOne
	testutil.DataAs(t, env, &one)
	path := "/api/sessions/" + one.Session.SessionID.String()

	status, _ = testutil.Do(t, app, "PUT", path, bea, fiber.Map{"notes": "mine now"})
	require.Equal(t, fiber.StatusForbidden, status)

	status, env = testutil.Do(t, app, "PUT", path, ash, fiber.Map{"notes": "great burn"})
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &one)
	require.Equal(t, "great burn", *one.Session.Notes)

	status, _ = testutil.Do(t, app, "DELETE", path, bea, nil)
	require.Equal(t, fiber.StatusForbidden, status)
	status, _ = testutil.Do(t, app, "DELETE", path, ash, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = testutil.Do(t, app, "GET", "/api/sessions", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, status)
}
