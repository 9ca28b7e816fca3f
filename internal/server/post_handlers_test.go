package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"mosaic/internal/models"
	"mosaic/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(asUser(userID))
	app.Get("/api/posts", s.GetPosts)
	app.Post("/api/posts", s.CreatePost)
	app.Post("/api/posts/:id/like", s.LikePost)
	app.Delete("/api/posts/:id/like", s.UnlikePost)
	app.Get("/api/posts/:id", s.GetPost)
	return app
}

func seedPost(t *testing.T, s *Server, userID uint, title string) *models.Post {
	t.Helper()
	post, err := s.postService.CreatePost(context.Background(), service.CreatePostInput{
		UserID: userID,
		Title:  title,
		Text:   "body of " + title,
	})
	require.NoError(t, err)
	return post
}

func TestCreatePostEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	user := createVerifiedUser(t, s, "author@example.com")
	app := newPostApp(s, user.ID)

	t.Run("creates post with placeholder image", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts", fiber.Map{
			"title": "  My first post  ",
			"text":  "hello world",
		}))
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var post models.Post
		decodeBody(t, resp, &post)
		assert.Equal(t, "My first post", post.Title)
		assert.Equal(t, s.config.PlaceholderImageURL, post.ImageURL)
		assert.Equal(t, user.ID, post.UserID)
		assert.Equal(t, 0, post.LikesCount)
		assert.False(t, post.Liked)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts", fiber.Map{
			"title": "   ",
			"text":  "hello",
		}))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestFeedEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	user := createVerifiedUser(t, s, "reader@example.com")
	app := newPostApp(s, user.ID)

	for i := 1; i <= 12; i++ {
		seedPost(t, s, user.ID, fmt.Sprintf("Post number %d", i))
	}
	seedPost(t, s, user.ID, "Golang tips")

	type feedBody struct {
		Posts []models.Post `json:"posts"`
		Page  struct {
			Number     int   `json:"page"`
			TotalPages int   `json:"total_pages"`
			TotalItems int64 `json:"total_items"`
		} `json:"page"`
		TotalPages int   `json:"total_pages"`
		TotalItems int64 `json:"total_items"`
		PageSize   int   `json:"page_size"`
	}

	getFeed := func(t *testing.T, query string) feedBody {
		t.Helper()
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts"+query, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body feedBody
		decodeBody(t, resp, &body)
		return body
	}

	t.Run("first page by default", func(t *testing.T) {
		body := getFeed(t, "")
		assert.Len(t, body.Posts, 10)
		assert.Equal(t, 1, body.Page.Number)
		assert.Equal(t, 2, body.TotalPages)
		assert.Equal(t, int64(13), body.TotalItems)
		assert.Equal(t, 10, body.PageSize)
	})

	t.Run("overflow page clamps to last", func(t *testing.T) {
		body := getFeed(t, "?page=999")
		assert.Equal(t, 2, body.Page.Number)
		assert.Len(t, body.Posts, 3)
	})

	t.Run("garbage page falls back to first", func(t *testing.T) {
		body := getFeed(t, "?page=banana")
		assert.Equal(t, 1, body.Page.Number)
	})

	t.Run("search is case-insensitive on title", func(t *testing.T) {
		body := getFeed(t, "?search=GOLANG")
		require.Len(t, body.Posts, 1)
		assert.Equal(t, "Golang tips", body.Posts[0].Title)
		assert.Equal(t, int64(1), body.TotalItems)
	})

	t.Run("descending order by id", func(t *testing.T) {
		body := getFeed(t, "?order_by=-id")
		require.NotEmpty(t, body.Posts)
		assert.Equal(t, "Golang tips", body.Posts[0].Title)
	})

	t.Run("unknown order key is ignored", func(t *testing.T) {
		body := getFeed(t, "?order_by=password;drop")
		require.NotEmpty(t, body.Posts)
		assert.Equal(t, "Post number 1", body.Posts[0].Title)
	})
}

func TestLikeEndpoints(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	author := createVerifiedUser(t, s, "liker-author@example.com")
	liker := createVerifiedUser(t, s, "liker@example.com")
	post := seedPost(t, s, author.ID, "Likeable")

	app := newPostApp(s, liker.ID)
	target := fmt.Sprintf("/api/posts/%d/like", post.ID)

	t.Run("like decorates the response for the liker", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, target, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Post
		decodeBody(t, resp, &body)
		assert.True(t, body.Liked)
		assert.Equal(t, 1, body.LikesCount)
	})

	t.Run("liking twice stays at one like", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, target, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Post
		decodeBody(t, resp, &body)
		assert.True(t, body.Liked)
		assert.Equal(t, 1, body.LikesCount)
	})

	t.Run("unlike removes the like", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, target, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Post
		decodeBody(t, resp, &body)
		assert.False(t, body.Liked)
		assert.Equal(t, 0, body.LikesCount)
	})

	t.Run("unliking again is still a no-op success", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodDelete, target, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("liking a missing post is 404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodPost, "/api/posts/9999/like", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestGetPostEndpoint(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)
	user := createVerifiedUser(t, s, "getpost@example.com")
	post := seedPost(t, s, user.ID, "Single post")
	app := newPostApp(s, user.ID)

	t.Run("returns the post with owner", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body models.Post
		decodeBody(t, resp, &body)
		assert.Equal(t, "Single post", body.Title)
		assert.Equal(t, "getpost@example.com", body.User.Email)
	})

	t.Run("missing post is 404", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/9999", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("non-numeric id is 400", func(t *testing.T) {
		resp, err := app.Test(jsonRequest(t, http.MethodGet, "/api/posts/abc", nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, "Invalid ID", body.Error)
	})
}
