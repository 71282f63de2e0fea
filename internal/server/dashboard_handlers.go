package server

import (
	"fmt"

	"threaded/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Dashboard handles GET /dashboard by resolving to the session user's
// dashboard. Unauthenticated requests go to the login form instead.
func (s *Server) Dashboard(c *fiber.Ctx) error {
	sess := s.currentSession(c)
	if sess == nil || !sess.Authenticated() {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
	return c.Redirect(fmt.Sprintf("/dashboard/%d", sess.UserID), fiber.StatusSeeOther)
}

// UserDashboard handles GET /dashboard/:userId with the per-user aggregates.
func (s *Server) UserDashboard(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	overview, err := s.dashboardService.Overview(c.UserContext(), userID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	payload := fiber.Map{
		"user":         overview.User,
		"friend_count": overview.FriendCount,
		"requests":     overview.Requests,
		"threads":      overview.Threads,
		"images":       overview.Images,
	}
	if msg := s.popFlash(c); msg != "" {
		payload["flash"] = msg
	}
	return c.JSON(payload)
}

// DashboardPost handles POST /dashboard. The endpoint is declared but has no
// behavior: it accepts and discards the submission.
func (s *Server) DashboardPost(c *fiber.Ctx) error {
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}
