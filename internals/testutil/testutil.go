// Package testutil wires an in-memory SQLite database and a bare fiber app for handler tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "stogie_backend/internals/databases"
	cigarModel "stogie_backend/internals/features/catalog/cigars/model"
	userModel "stogie_backend/internals/features/users/user/model"
	helper "stogie_backend/internals/helpers"
)

const Secret = "test-secret"

// NewDB opens a private in-memory database with every table migrated.
// A single connection keeps the memory database alive and serialises writers.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// NewApp mirrors the production fiber config that matters to handlers.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: helper.FromFiberError,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})
}

// CreateUser inserts an active user with a profile; handle doubles as display name.
func CreateUser(t *testing.T, db *gorm.DB, handle string) userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserName: handle,
		Email:    handle + "@example.com",
		Password: "x",
		IsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	require.NoError(t, db.Create(&userModel.UserProfileModel{
		UserProfileUserID:      u.ID,
		UserProfileDisplayName: handle,
	}).Error)
	return u
}

// CreateCigar inserts a catalog row with slug brand-name.
func CreateCigar(t *testing.T, db *gorm.DB, brand, name, strength string) cigarModel.CigarModel {
	t.Helper()
	m := cigarModel.CigarModel{
		CigarSlug:  helper.Slugify(brand+" "+name, 120),
		CigarName:  name,
		CigarBrand: brand,
	}
	if strength != "" {
		m.CigarStrength = &strength
	}
	require.NoError(t, db.Create(&m).Error)
	return m
}

// MakeAdmin promotes u.
func MakeAdmin(t *testing.T, db *gorm.DB, u *userModel.UserModel) {
	t.Helper()
	require.NoError(t, db.Model(u).Update("role", userModel.RoleAdmin).Error)
	u.Role = userModel.RoleAdmin
}

// Token signs an access token for u with Secret.
func Token(t *testing.T, u userModel.UserModel) string {
	t.Helper()
	role := u.Role
	if role == "" {
		role = userModel.RoleUser
	}
	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"typ":       "access",
		"sub":       u.ID.String(),
		"id":        u.ID.String(),
		"user_name": u.UserName,
		"role":      role,
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte(Secret))
	require.NoError(t, err)
	return s
}

// Envelope is the decoded success/error body.
type Envelope struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message"`
	ErrorCode  string              `json:"error_code"`
	Errors     map[string][]string `json:"errors"`
	Data       json.RawMessage     `json:"data"`
	Pagination *helper.Pagination  `json:"pagination"`
}

// Do sends a JSON request (body may be nil) with an optional bearer token.
func Do(t *testing.T, app *fiber.App, method, path, token string, body any) (int, Envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return Send(t, app, req)
}

// Send runs req through app and decodes the envelope.
func Send(t *testing.T, app *fiber.App, req *http.Request) (int, Envelope) {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &env), "body: %s", raw)
	}
	return resp.StatusCode, env
}

// DataAs decodes env.Data into out.
func DataAs(t *testing.T, env Envelope, out any) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(env.Data, out), "data: %s", env.Data)
}
