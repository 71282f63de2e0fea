package server

import (
	"errors"
	"time"

	"threaded/internal/models"
	"threaded/internal/session"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const sessionLocalKey = "session"

// Pagination holds parsed limit/offset query parameters.
type Pagination struct {
	Limit  int
	Offset int
}

const maxPaginationLimit = 100

// parsePagination extracts limit and offset query parameters with the given default limit.
func parsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	limit := c.QueryInt("limit", defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return Pagination{
		Limit:  limit,
		Offset: offset,
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// SessionLoader resolves the session cookie into a session object stored in
// the request locals. A missing or invalid cookie simply leaves the request
// unauthenticated.
func (s *Server) SessionLoader() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(session.CookieName)
		if token == "" {
			return c.Next()
		}

		sess, err := s.sessions.Get(c.UserContext(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				return models.RespondWithError(c, fiber.StatusInternalServerError,
					models.NewInternalError(err))
			}
			// Stale or forged cookie; drop it.
			s.clearSessionCookie(c)
			return c.Next()
		}

		c.Locals(sessionLocalKey, sess)
		if sess.Authenticated() {
			c.Locals("userID", sess.UserID)
		}
		return c.Next()
	}
}

// AuthRequired redirects unauthenticated requests to the login page.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess := s.currentSession(c)
		if sess == nil || !sess.Authenticated() {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		return c.Next()
	}
}

// currentSession returns the session loaded for this request, or nil.
func (s *Server) currentSession(c *fiber.Ctx) *session.Session {
	if sess, ok := c.Locals(sessionLocalKey).(*session.Session); ok {
		return sess
	}
	return nil
}

// ensureSession returns the request's session, creating an anonymous one
// (and setting its cookie) when none exists yet. Flash messages need a
// session even before login.
func (s *Server) ensureSession(c *fiber.Ctx) (*session.Session, error) {
	if sess := s.currentSession(c); sess != nil {
		return sess, nil
	}

	sess, token, err := s.sessions.Create(c.UserContext(), session.Data{})
	if err != nil {
		return nil, err
	}
	s.setSessionCookie(c, token)
	c.Locals(sessionLocalKey, sess)
	return sess, nil
}

// establishSession replaces the request's session with a fresh authenticated
// one. Issuing a new session id at login keeps an attacker from fixating a
// pre-login session.
func (s *Server) establishSession(c *fiber.Ctx, data session.Data) (*session.Session, error) {
	if old := s.currentSession(c); old != nil {
		_ = old.Destroy(c.UserContext())
	}

	sess, token, err := s.sessions.Create(c.UserContext(), data)
	if err != nil {
		return nil, err
	}
	s.setSessionCookie(c, token)
	c.Locals(sessionLocalKey, sess)
	c.Locals("userID", data.UserID)
	return sess, nil
}

func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Expires:  time.Now().Add(s.sessions.TTL()),
		HTTPOnly: true,
		Secure:   s.config.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// flashAndRedirect stores a one-shot message and redirects, the recovery
// path for every expected failure.
func (s *Server) flashAndRedirect(c *fiber.Ctx, path, msg string) error {
	sess, err := s.ensureSession(c)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	if err := sess.SetFlash(c.UserContext(), msg); err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

// popFlash returns the pending flash message for the request, if any.
func (s *Server) popFlash(c *fiber.Ctx) string {
	sess := s.currentSession(c)
	if sess == nil {
		return ""
	}
	msg, err := sess.PopFlash(c.UserContext())
	if err != nil {
		return ""
	}
	return msg
}

// statusForError maps the application's error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return fiber.StatusNotFound
		case "CONFLICT":
			return fiber.StatusConflict
		case "VALIDATION_ERROR":
			return fiber.StatusBadRequest
		case "UNAUTHORIZED":
			return fiber.StatusUnauthorized
		}
	}
	return fiber.StatusInternalServerError
}
