package server

import (
	"io"
	"strings"

	"mosaic/internal/models"
	"mosaic/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images
func (s *Server) UploadImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("No file uploaded"))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Unable to read uploaded file"))
	}

	uploaded, err := s.imageService.Upload(c.UserContext(), service.UploadImageInput{
		UserID:      userID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(uploaded)
}

// ServeImage handles GET /media/i/:hash/:file
func (s *Server) ServeImage(c *fiber.Ctx) error {
	masterPath, err := s.imageService.ResolveForServing(c.Params("hash"))
	if err != nil {
		return mapServiceError(c, err)
	}

	switch c.Params("file") {
	case "master.jpg":
		return c.SendFile(masterPath)
	case "master.webp":
		return c.SendFile(strings.TrimSuffix(masterPath, ".jpg") + ".webp")
	default:
		return models.RespondWithError(c, fiber.StatusNotFound, models.NewNotFoundError("Image", c.Params("file")))
	}
}
