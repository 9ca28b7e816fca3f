package server

import (
	"net/http"
	"testing"

	"mosaic/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMyProfileEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	user := createVerifiedUser(t, s, "me@example.com")

	app := fiber.New()
	app.Use(asUser(user.ID))
	app.Get("/api/users/me", s.GetMyProfile)
	app.Put("/api/users/me", s.UpdateMyProfile)

	t.Run("returns own user with profile", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/users/me", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.User
		decodeBody(t, resp, &body)
		assert.Equal(t, "me@example.com", body.Email)
		require.NotNil(t, body.Profile)
		assert.True(t, body.Profile.VerifiedEmail)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{
			"country":  "Portugal",
			"city":     "Lisbon",
			"birthday": "1990-05-01",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var profile models.Profile
		decodeBody(t, resp, &profile)
		assert.Equal(t, "Portugal", profile.Country)
		assert.Equal(t, "Lisbon", profile.City)
		require.NotNil(t, profile.Birthday)

		resp, err = app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{
			"city": "Porto",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		decodeBody(t, resp, &profile)
		assert.Equal(t, "Portugal", profile.Country)
		assert.Equal(t, "Porto", profile.City)
	})

	t.Run("rejects malformed birthday", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPut, "/api/users/me", fiber.Map{
			"birthday": "May 1st 1990",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestAdminUsersEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	regular := createVerifiedUser(t, s, "regular@example.com")
	staff := createVerifiedUser(t, s, "staff@example.com")
	require.NoError(t, s.db.Model(&models.User{}).
		Where("id = ?", staff.ID).
		Update("is_staff", true).Error)

	adminApp := func(userID uint) *fiber.App {
		app := fiber.New()
		app.Use(asUser(userID))
		app.Get("/api/admin/users", s.AdminRequired(), s.GetAllUsers)
		return app
	}

	t.Run("non-staff is forbidden", func(t *testing.T) {
		resp, err := adminApp(regular.ID).Test(jsonRequest(t, http.MethodGet, "/api/admin/users", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("staff gets the user list", func(t *testing.T) {
		resp, err := adminApp(staff.ID).Test(jsonRequest(t, http.MethodGet, "/api/admin/users", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var users []models.User
		decodeBody(t, resp, &users)
		assert.Len(t, users, 2)
	})
}
