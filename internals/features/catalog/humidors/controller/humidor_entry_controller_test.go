package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stogie_backend/internals/features/catalog/humidors/dto"
	"stogie_backend/internals/features/catalog/humidors/model"
	humidorRoute "stogie_backend/internals/features/catalog/humidors/route"
	authMiddleware "stogie_backend/internals/middlewares/auth"
	"stogie_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	humidorRoute.HumidorRoutes(app.Group("/api"), authMiddleware.AuthMiddleware(db, testutil.Secret), db)
	return app, db
}

type entryOne struct {
	Entry dto.HumidorEntryDTO `json:"entry"`
}

type entryList struct {
	Entries []dto.HumidorEntryDTO `json:"entries"`
}

func TestHumidor_CreateAndFilter(t *testing.T) {
	app, db := setup(t)
	padron := testutil.CreateCigar(t, db, "Padron", "2000", "")
	oliva := testutil.CreateCigar(t, db, "Oliva", "V", "")
	tok := testutil.Token(t, testutil.CreateUser(t, db, "ash"))

	status, env := testutil.Do(t, app, "POST", "/api/humidor", tok, fiber.Map{"cigar_id": padron.CigarID})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var one entryOne
	testutil.DataAs(t, env, &one)
	require.Equal(t, model.StatusOwned, one.Entry.Status)
	require.Equal(t, 1, one.Entry.Quantity)
	require.Equal(t, padron.CigarSlug, one.Entry.Cigar.Slug)

	status, env = testutil.Do(t, app, "POST", "/api/humidor", tok, fiber.Map{
		"cigar_id": oliva.CigarID, "status": "Wishlist", "quantity": 0,
	})
	require.Equal(t, fiber.StatusCreated, status)
	testutil.DataAs(t, env, &one)
	require.Equal(t, model.StatusWishlist, one.Entry.Status)
	require.Zero(t, one.Entry.Quantity)

	status, env = testutil.Do(t, app, "GET", "/api/humidor", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	var list entryList
	testutil.DataAs(t, env, &list)
	require.Len(t, list.Entries, 2)

	status, env = testutil.Do(t, app, "GET", "/api/humidor?status=wishlist", tok, nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &list)
	require.Len(t, list.Entries, 1)
	require.Equal(t, oliva.CigarID, list.Entries[0].Cigar.CigarID)
	require.Equal(t, int64(1), env.Pagination.Total)

	status, _ = testutil.Do(t, app, "GET", "/api/humidor?status=smoked", tok, nil)
	require.Equal(t, fiber.StatusBadRequest, status)

	// another user's humidor is separate
	other := testutil.Token(t, testutil.CreateUser(t, db, "bea"))
	status, env = testutil.Do(t, app, "GET", "/api/humidor", other, nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &list)
	require.Empty(t, list.Entries)
}

func TestHumidor_Errors(t *testing.T) {
	app, db := setup(t)
	tok := testutil.Token(t, testutil.CreateUser(t, db, "ash"))

	status, _ := testutil.Do(t, app, "GET", "/api/humidor", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = testutil.Do(t, app, "POST", "/api/humidor", tok, fiber.Map{"cigar_id": uuid.New()})
	require.Equal(t, fiber.StatusNotFound, status)

	status, env := testutil.Do(t, app, "POST", "/api/humidor", tok, fiber.Map{})
	require.Equal(t, fiber.StatusBadRequest, status)
	require.Contains(t, env.Errors, "cigar_id")
}

func TestHumidor_UpdateDeleteOwnerOnly(t *testing.T) {
	app, db := setup(t)
	cg := testutil.CreateCigar(t, db, "Padron", "2000", "")
	ash := testutil.Token(t, testutil.CreateUser(t, db, "ash"))
	bea := testutil.Token(t, testutil.CreateUser(t, db, "bea"))

	_, env := testutil.Do(t, app, "POST", "/api/humidor", ash, fiber.Map{"cigar_id": cg.CigarID, "quantity": 5})
	var one entryOne
	testutil.DataAs(t, env, &one)
	path := "/api/humidor/" + one.Entry.EntryID.String()

	status, _ := testutil.Do(t, app, "PUT", path, bea, fiber.Map{"quantity": 1})
	require.Equal(t, fiber.StatusForbidden, status)

	status, env = testutil.Do(t, app, "PUT", path, ash, fiber.Map{"quantity": 3, "notes": " aging "})
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &one)
	require.Equal(t, 3, one.Entry.Quantity)
	require.NotNil(t, one.Entry.Notes)
	require.Equal(t, "aging", *one.Entry.Notes)

	status, _ = testutil.Do(t, app, "PUT", path, ash, fiber.Map{"status": "gone"})
	require.Equal(t, fiber.StatusBadRequest, status)

	status, _ = testutil.Do(t, app, "DELETE", path, bea, nil)
	require.Equal(t, fiber.StatusForbidden, status)
	status, _ = testutil.Do(t, app, "DELETE", path, ash, nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = testutil.Do(t, app, "DELETE", path, ash, nil)
	require.Equal(t, fiber.StatusNotFound, status)
}
