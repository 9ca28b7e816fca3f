package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_FormatByEnvironment(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	ctx = context.WithValue(ctx, UserIDKey, uint(42))

	t.Run("production logs JSON with context attrs", func(t *testing.T) {
		buf := &bytes.Buffer{}
		newLogger("production", buf).InfoContext(ctx, "hello")

		line := buf.String()
		assert.True(t, strings.HasPrefix(line, "{"), line)
		assert.Contains(t, line, `"request_id":"req-123"`)
		assert.Contains(t, line, `"user_id":42`)
	})

	t.Run("development logs text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		newLogger("development", buf).InfoContext(ctx, "hello")

		line := buf.String()
		assert.False(t, strings.HasPrefix(line, "{"), line)
		assert.Contains(t, line, "msg=hello")
		assert.Contains(t, line, "request_id=req-123")
	})
}

func TestContextMiddleware_PropagatesLocals(t *testing.T) {
	t.Parallel()

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("requestid", "abc-1")
		c.Locals("userID", uint(7))
		return c.Next()
	})
	app.Use(ContextMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		assert.Equal(t, "abc-1", ctx.Value(RequestIDKey))
		assert.Equal(t, uint(7), ctx.Value(UserIDKey))
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
