package server

import (
	"mosaic/internal/models"
	"mosaic/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary Home feed
// @Description One page of posts with optional title search and ordering
// @Tags posts
// @Produce json
// @Param search query string false "Title substring filter (case-insensitive)"
// @Param order_by query string false "Order column, prefix with - for descending"
// @Param page query string false "Page number, clamped into the valid range"
// @Success 200 {object} service.FeedPage
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	feed, err := s.postService.Feed(ctx, service.FeedInput{
		ViewerID: userID,
		Search:   c.Query("search"),
		OrderBy:  c.Query("order_by"),
		Page:     c.Query("page"),
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(feed)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title    string `json:"title"`
		Text     string `json:"text"`
		ImageURL string `json:"image_url,omitempty"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Title:    req.Title,
		Text:     req.Text,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(ctx, postID, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(post)
}

// LikePost handles POST /api/posts/:id/like. Liking twice is a no-op.
func (s *Server) LikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.LikePost(ctx, userID, postID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(post)
}

// UnlikePost handles DELETE /api/posts/:id/like. Unliking a post that was
// never liked is a no-op.
func (s *Server) UnlikePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.UnlikePost(ctx, userID, postID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(post)
}
