package routes_test

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stogie_backend/internals/configs"
	"stogie_backend/internals/events"
	postDTO "stogie_backend/internals/features/social/posts/dto"
	authDTO "stogie_backend/internals/features/users/auth/dto"
	helperOSS "stogie_backend/internals/helpers/oss"
	middlewares "stogie_backend/internals/middlewares"
	routes "stogie_backend/internals/route"
	"stogie_backend/internals/testutil"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB, *events.Recorder) {
	t.Helper()
	db := testutil.NewDB(t)
	cfg := &configs.Config{
		Environment:      "test",
		JWTSecret:        testutil.Secret,
		JWTRefreshSecret: "refresh-secret",
		AccessTTL:        time.Hour,
		RefreshTTL:       24 * time.Hour,
		RequestTimeout:   5 * time.Second,
		CORSOrigins:      []string{"http://localhost:5173"},
	}
	rec := &events.Recorder{}
	app := testutil.NewApp()
	middlewares.SetupMiddlewares(app, cfg)
	routes.SetupRoutes(app, db, cfg, routes.Deps{
		Publisher: rec,
		Images:    helperOSS.NewDiskImageStore(t.TempDir(), "/uploads"),
	})
	return app, db, rec
}

func rawGet(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestBaseRoutes(t *testing.T) {
	app, _, _ := setup(t)

	status, body := rawGet(t, app, "/")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, "Stogie API")

	status, body = rawGet(t, app, "/health")
	require.Equal(t, fiber.StatusOK, status)
	require.Contains(t, body, `"status":"OK"`)
	require.Contains(t, body, `"environment":"test"`)

	status, body = rawGet(t, app, "/metrics")
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, strings.Contains(body, "# HELP") || strings.Contains(body, "# TYPE"))
}

func TestFeedEngagementFlow(t *testing.T) {
	app, _, rec := setup(t)

	register := func(handle string) string {
		status, env := testutil.Do(t, app, "POST", "/api/auth/register", "", fiber.Map{
			"user_name": handle,
			"email":     handle + "@example.com",
			"password":  "longenough1",
		})
		require.Equal(t, fiber.StatusCreated, status, env.Message)
		var tok authDTO.TokenResponse
		testutil.DataAs(t, env, &tok)
		require.NotEmpty(t, tok.AccessToken)
		return tok.AccessToken
	}
	alice := register("alice")
	bob := register("bob")

	status, env := testutil.Do(t, app, "POST", "/api/posts", alice, fiber.Map{
		"image_url": "https://cdn.example.com/p/1.webp",
		"caption":   "  Sunday robusto  ",
	})
	require.Equal(t, fiber.StatusCreated, status, env.Message)
	var created struct {
		Post postDTO.FeedItem `json:"post"`
	}
	testutil.DataAs(t, env, &created)
	require.Equal(t, "Sunday robusto", created.Post.PostCaption)
	require.Zero(t, created.Post.LikeCount)
	postPath := "/api/posts/" + created.Post.PostID.String()

	status, env = testutil.Do(t, app, "POST", postPath+"/like", bob, nil)
	require.Equal(t, fiber.StatusOK, status, env.Message)
	var like postDTO.ToggleLikeResponse
	testutil.DataAs(t, env, &like)
	require.True(t, like.Liked)
	require.EqualValues(t, 1, like.LikeCount)

	status, env = testutil.Do(t, app, "POST", postPath+"/comments", bob, fiber.Map{"text": "nice ash"})
	require.Equal(t, fiber.StatusCreated, status, env.Message)

	var feed struct {
		Posts []postDTO.FeedItem `json:"posts"`
	}

	status, env = testutil.Do(t, app, "GET", "/api/posts", bob, nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &feed)
	require.Len(t, feed.Posts, 1)
	require.EqualValues(t, 1, feed.Posts[0].LikeCount)
	require.EqualValues(t, 1, feed.Posts[0].CommentCount)
	require.True(t, feed.Posts[0].LikedByMe)
	require.Equal(t, "alice", feed.Posts[0].Author.UserName)

	// anonymous readers see the same counts without liked_by_me
	status, env = testutil.Do(t, app, "GET", "/api/posts", "", nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &feed)
	require.Len(t, feed.Posts, 1)
	require.False(t, feed.Posts[0].LikedByMe)
	require.EqualValues(t, 1, feed.Posts[0].LikeCount)

	// unlike
	status, env = testutil.Do(t, app, "POST", postPath+"/like", bob, nil)
	require.Equal(t, fiber.StatusOK, status)
	testutil.DataAs(t, env, &like)
	require.False(t, like.Liked)
	require.Zero(t, like.LikeCount)

	require.NotEmpty(t, rec.Subjects())
}

func TestProtectedAndAdminRoutes(t *testing.T) {
	app, db, _ := setup(t)
	u := testutil.CreateUser(t, db, "puro")
	testutil.CreateCigar(t, db, "Oliva", "Serie V", "full")

	status, env := testutil.Do(t, app, "POST", "/api/posts", "", fiber.Map{
		"image_url": "https://cdn.example.com/p/2.webp",
	})
	require.Equal(t, fiber.StatusUnauthorized, status)
	require.False(t, env.Success)

	status, env = testutil.Do(t, app, "DELETE", "/api/cigars/oliva-serie-v", testutil.Token(t, u), nil)
	require.Equal(t, fiber.StatusForbidden, status)
	require.Equal(t, "FORBIDDEN", env.ErrorCode)

	testutil.MakeAdmin(t, db, &u)
	status, _ = testutil.Do(t, app, "DELETE", "/api/cigars/oliva-serie-v", testutil.Token(t, u), nil)
	require.Equal(t, fiber.StatusOK, status)
}
