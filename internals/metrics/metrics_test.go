package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	LikeToggles.WithLabelValues("liked").Inc()

	app := fiber.New()
	app.Use(HTTPMiddleware())
	app.Get("/metrics", Handler())

	res, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, 200, res.StatusCode)

	body, _ := io.ReadAll(res.Body)
	require.True(t, strings.Contains(string(body), "stogie_post_like_toggles_total"))
}

func TestLikeTogglesByResult(t *testing.T) {
	before := testutil.ToFloat64(LikeToggles.WithLabelValues("unliked"))
	LikeToggles.WithLabelValues("unliked").Inc()
	require.Equal(t, before+1, testutil.ToFloat64(LikeToggles.WithLabelValues("unliked")))
}
