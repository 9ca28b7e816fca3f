package server

import (
	"context"
	"net/http"
	"testing"

	"mosaic/internal/models"
	"mosaic/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationFlow(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	user, err := s.accountService.Register(context.Background(), service.RegisterInput{
		Email:           "flow@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret1",
	})
	require.NoError(t, err)
	code := user.Profile.VerifiedCode

	app := fiber.New()
	app.Use(asUser(user.ID))
	app.Get("/api/verify/status", s.VerificationStatus)
	app.Post("/api/verify", s.VerifyEmail)
	app.Get("/api/posts", s.VerifiedRequired(), s.GetPosts)

	t.Run("unverified user is redirected off content routes", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "VERIFICATION_REQUIRED", body.Code)
		assert.Equal(t, "/verify", body.Redirect)
	})

	t.Run("status starts unverified", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/verify/status", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			VerifiedEmail bool `json:"verified_email"`
		}
		decodeBody(t, resp, &body)
		assert.False(t, body.VerifiedEmail)
	})

	t.Run("wrong code rejected", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/verify", fiber.Map{"code": "WRONGXXX"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("correct code verifies and unlocks content", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/verify", fiber.Map{"code": code}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			VerifiedEmail bool `json:"verified_email"`
		}
		decodeBody(t, resp, &body)
		assert.True(t, body.VerifiedEmail)

		resp, err = app.Test(jsonRequest(t, http.MethodGet, "/api/posts", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("resubmitting after verification stays OK", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/verify", fiber.Map{"code": "WRONGXXX"}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
