package server

import (
	"fmt"

	"threaded/internal/models"
	"threaded/internal/service"
	"threaded/internal/session"

	"github.com/gofiber/fiber/v2"
)

// Homepage handles GET /. It reads the optional session user id; template
// rendering is the frontend's concern, so the handler returns the page context.
func (s *Server) Homepage(c *fiber.Ctx) error {
	payload := fiber.Map{}
	if sess := s.currentSession(c); sess != nil && sess.Authenticated() {
		payload["user_id"] = sess.UserID
		payload["first_name"] = sess.FirstName
	}
	if msg := s.popFlash(c); msg != "" {
		payload["flash"] = msg
	}
	return c.JSON(payload)
}

// ShowLogin handles GET /login
func (s *Server) ShowLogin(c *fiber.Ctx) error {
	payload := fiber.Map{"page": "login"}
	if msg := s.popFlash(c); msg != "" {
		payload["flash"] = msg
	}
	return c.JSON(payload)
}

// Login handles POST /login. On success the session is populated with the
// user's identity and pending-request counters and the browser is sent to
// the per-user dashboard; on failure a flash message rides back to the form.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `form:"email" json:"email"`
		Password string `form:"password" json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.flashAndRedirect(c, "/login", "Invalid login submission")
	}

	user, err := s.authService.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		if models.IsCode(err, "UNAUTHORIZED") {
			return s.flashAndRedirect(c, "/login", err.Error())
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	counters, err := s.relationService.Counters(c.UserContext(), user.ID)
	if err != nil {
		return models.RespondWithError(c, statusForError(err), err)
	}

	if _, err := s.establishSession(c, sessionDataFor(user, counters)); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Redirect(fmt.Sprintf("/dashboard/%d", user.ID), fiber.StatusSeeOther)
}

// ShowRegister handles GET /register
func (s *Server) ShowRegister(c *fiber.Ctx) error {
	payload := fiber.Map{"page": "register"}
	if msg := s.popFlash(c); msg != "" {
		payload["flash"] = msg
	}
	return c.JSON(payload)
}

// Register handles POST /register. A duplicate email creates no second row
// and sends the browser back to the login form with the conflict message.
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		FirstName string `form:"first_name" json:"first_name"`
		LastName  string `form:"last_name" json:"last_name"`
		Email     string `form:"email" json:"email"`
		Age       int    `form:"age" json:"age"`
		Password  string `form:"password" json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return s.flashAndRedirect(c, "/register", "Invalid registration submission")
	}

	user, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Age:       req.Age,
		Password:  req.Password,
	})
	if err != nil {
		if models.IsCode(err, "CONFLICT") {
			return s.flashAndRedirect(c, "/login", err.Error())
		}
		if models.IsCode(err, "VALIDATION_ERROR") {
			return s.flashAndRedirect(c, "/register", err.Error())
		}
		return models.RespondWithError(c, statusForError(err), err)
	}

	// A brand-new user has no pending requests yet.
	if _, err := s.establishSession(c, sessionDataFor(user, service.RequestCounters{})); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Redirect(fmt.Sprintf("/dashboard/%d", user.ID), fiber.StatusSeeOther)
}

// Logout handles GET /logout. It removes the session's user entry and sends
// the browser home; subsequent protected requests are unauthenticated.
func (s *Server) Logout(c *fiber.Ctx) error {
	if sess := s.currentSession(c); sess != nil {
		sess.ClearUser()
		if err := sess.Save(c.UserContext()); err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		}
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func sessionDataFor(user *models.User, counters service.RequestCounters) session.Data {
	return session.Data{
		UserID:               user.ID,
		FirstName:            user.FirstName,
		ReceivedRequestCount: counters.Received,
		SentRequestCount:     counters.Sent,
		TotalRequestCount:    counters.Total,
	}
}
