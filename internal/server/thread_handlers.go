package server

import (
	"threaded/internal/models"
	"threaded/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateThread handles POST /threads
func (s *Server) CreateThread(c *fiber.Ctx) error {
	var req struct {
		Title      string `form:"title" json:"title"`
		Text       string `form:"text" json:"text"`
		Visibility string `form:"public_or_private" json:"visibility"`
		Lifecycle  string `form:"live_or_closed" json:"lifecycle"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid thread submission"))
	}

	sess := s.currentSession(c)
	thread, err := s.threadService.CreateThread(c.UserContext(), service.CreateThreadInput{
		OwnerID:    sess.UserID,
		Title:      req.Title,
		Text:       req.Text,
		Visibility: models.ThreadVisibility(req.Visibility),
		Lifecycle:  models.ThreadLifecycle(req.Lifecycle),
	})
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(thread)
}

// ListThreads handles GET /threads with public live threads, newest first.
func (s *Server) ListThreads(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)

	threads, err := s.threadService.ListPublic(c.UserContext(), pagination.Limit, pagination.Offset)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{"threads": threads})
}

// GetThread handles GET /threads/:id. Private threads resolve for their
// owner only; everyone else sees not-found.
func (s *Server) GetThread(c *fiber.Ctx) error {
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var viewerID uint
	if sess := s.currentSession(c); sess != nil {
		viewerID = sess.UserID
	}

	thread, svcErr := s.threadService.GetThread(c.UserContext(), threadID, viewerID)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	return c.JSON(thread)
}

// AddContribution handles POST /threads/:id/contributions. Closed threads
// reject the write and the contributor count stays untouched.
func (s *Server) AddContribution(c *fiber.Ctx) error {
	threadID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Text string `form:"text" json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid contribution submission"))
	}

	sess := s.currentSession(c)
	contribution, svcErr := s.threadService.AddContribution(c.UserContext(), threadID, sess.UserID, req.Text)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	return c.Status(fiber.StatusCreated).JSON(contribution)
}
