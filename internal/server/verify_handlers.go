package server

import (
	"mosaic/internal/models"

	"github.com/gofiber/fiber/v2"
)

// VerificationStatus handles GET /api/verify/status
func (s *Server) VerificationStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	verified, err := s.accountService.VerificationStatus(ctx, userID)
	if err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"verified_email": verified})
}

// VerifyEmail handles POST /api/verify
// @Summary Verify email
// @Description Match the emailed code against the profile and mark it verified
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{code=string} true "Verification code"
// @Success 200 {object} object{verified_email=bool}
// @Failure 400 {object} object{error=string}
// @Router /verify [post]
func (s *Server) VerifyEmail(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.accountService.VerifyEmail(ctx, userID, req.Code); err != nil {
		return mapServiceError(c, err)
	}

	return c.JSON(fiber.Map{"verified_email": true})
}
