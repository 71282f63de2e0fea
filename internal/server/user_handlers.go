package server

import (
	"threaded/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ShowUsernameForm handles GET /user_name
func (s *Server) ShowUsernameForm(c *fiber.Ctx) error {
	payload := fiber.Map{"page": "user_name"}
	if msg := s.popFlash(c); msg != "" {
		payload["flash"] = msg
	}
	return c.JSON(payload)
}

// AssignUsername handles POST /user_name. A name any user already holds is
// rejected and re-prompted; a free name is assigned to the session's user.
func (s *Server) AssignUsername(c *fiber.Ctx) error {
	var req struct {
		Username string `form:"username" json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.flashAndRedirect(c, "/user_name", "Invalid username submission")
	}

	sess := s.currentSession(c)
	err := s.userService.AssignUsername(c.UserContext(), sess.UserID, req.Username)
	if err != nil {
		if models.IsCode(err, "CONFLICT") || models.IsCode(err, "VALIDATION_ERROR") {
			return s.flashAndRedirect(c, "/user_name", err.Error())
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	return s.flashAndRedirect(c, "/login", "Username created, you may now log in with it")
}

// SearchUsers handles GET /search. The query matches the full-text index
// over user first/last names.
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	query := c.Query("q")
	pagination := parsePagination(c, 20)

	users, err := s.userService.Search(c.UserContext(), query, pagination.Limit)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"query":   query,
		"results": users,
	})
}
