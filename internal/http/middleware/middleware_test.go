package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellodemo/internal/logging"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/echo", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(RequestIDLocalKey).(string))
	})

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"missing header gets a uuid", "", false},
		{"caller id is kept", "test-id-123", true},
		{"oversized id is replaced", strings.Repeat("a", maxRequestIDLen+1), false},
		{"id with spaces is replaced", "has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/echo", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)

			rid := resp.Header.Get(RequestIDHeader)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, rid, string(body), "locals and header must agree")

			if tt.keep {
				assert.Equal(t, tt.incoming, rid)
				return
			}
			_, err = uuid.Parse(rid)
			assert.NoError(t, err)
		})
	}
}

func TestAcceptableRequestID(t *testing.T) {
	assert.True(t, acceptableRequestID("abc-123"))
	assert.True(t, acceptableRequestID(strings.Repeat("x", maxRequestIDLen)))
	assert.False(t, acceptableRequestID(""))
	assert.False(t, acceptableRequestID("tab\tid"))
	assert.False(t, acceptableRequestID("caf\u00e9"))
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	// Logger usually depends on RequestID for request_id field
	app.Use(RequestID())
	app.Use(Logger(logging.New(&buf, "info", time.UTC)))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	// Verify log output
	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	require.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
	assert.Equal(t, "info", logData["level"])
}

func TestLogger_HandlerError(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(Logger(logging.New(&buf, "info", time.UTC)))

	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("db down")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var logData map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logData))
	assert.Equal(t, "error", logData["level"])
	assert.Equal(t, float64(fiber.StatusInternalServerError), logData["status"])
	assert.Equal(t, "db down", logData["error"])
}
