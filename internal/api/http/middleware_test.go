package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/QuiambaoMichael/safetap-backend/internal/observability"
	apperrors "github.com/QuiambaoMichael/safetap-backend/pkg/util"
)

// The request log must carry the status the error handler wrote, not the
// default set before the error was mapped.
func TestRequestLogRecordsErrorStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), time.Second)
	app.Get("/concerns/:id", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("concern", nil)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/concerns/missing", nil))
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.EqualValues(t, 404, entries[0].ContextMap()["status"])
}

func TestRequestLogRecordsSuccessStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), time.Second)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	require.EqualValues(t, 200, entries[0].ContextMap()["status"])
}
