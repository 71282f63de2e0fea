package server

import (
	"threaded/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateImage handles POST /images
func (s *Server) CreateImage(c *fiber.Ctx) error {
	var req struct {
		URL     string `form:"url" json:"url"`
		Caption string `form:"caption" json:"caption"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid image submission"))
	}

	sess := s.currentSession(c)
	image, err := s.imageService.CreateImage(c.UserContext(), sess.UserID, req.URL, req.Caption)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(image)
}

// ListUserImages handles GET /users/:userId/images
func (s *Server) ListUserImages(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	images, svcErr := s.imageService.ListByUser(c.UserContext(), userID)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	return c.JSON(fiber.Map{"images": images})
}
