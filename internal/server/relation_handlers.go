package server

import (
	"threaded/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendConnectionRequest handles POST /connections
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	var req struct {
		UserID uint `form:"user_id" json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A target user_id is required"))
	}

	sess := s.currentSession(c)
	relation, err := s.relationService.SendRequest(c.UserContext(), sess.UserID, req.UserID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(relation)
}

// ListConnections handles GET /connections with the pending request lists
// and the counters the session carries as notification badges.
func (s *Server) ListConnections(c *fiber.Ctx) error {
	sess := s.currentSession(c)

	received, err := s.relationService.PendingReceived(c.UserContext(), sess.UserID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}
	sent, err := s.relationService.PendingSent(c.UserContext(), sess.UserID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"received":                received,
		"sent":                    sent,
		"receieved_request_count": len(received),
		"sent_request_count":      len(sent),
		"total_request_count":     len(received) + len(sent),
	})
}

// AcceptConnectionRequest handles POST /connections/:id/accept
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	relationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	sess := s.currentSession(c)
	relation, svcErr := s.relationService.AcceptRequest(c.UserContext(), sess.UserID, relationID)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	if err := s.refreshSessionCounters(c); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(relation)
}

// RejectConnectionRequest handles POST /connections/:id/reject
func (s *Server) RejectConnectionRequest(c *fiber.Ctx) error {
	relationID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	sess := s.currentSession(c)
	relation, svcErr := s.relationService.RejectRequest(c.UserContext(), sess.UserID, relationID)
	if svcErr != nil {
		return models.RespondWithError(c, statusForError(svcErr), svcErr)
	}

	if err := s.refreshSessionCounters(c); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(relation)
}

// refreshSessionCounters re-derives the notification badge counts after a
// request changes state, so the session stays consistent with the store.
func (s *Server) refreshSessionCounters(c *fiber.Ctx) error {
	sess := s.currentSession(c)
	if sess == nil || !sess.Authenticated() {
		return nil
	}

	counters, err := s.relationService.Counters(c.UserContext(), sess.UserID)
	if err != nil {
		return err
	}
	sess.ReceivedRequestCount = counters.Received
	sess.SentRequestCount = counters.Sent
	sess.TotalRequestCount = counters.Total
	return sess.Save(c.UserContext())
}
