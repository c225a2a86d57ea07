package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/seatharmony/seatharmony/internal/middleware"
)

// CreateSession handles POST /v1/sessions.  It mints a fresh anonymous
// planning session: a random session id wrapped in a signed bearer token.
// All other planner endpoints require this token.
func (h *PlannerHandler) CreateSession(c echo.Context) error {
	sid := uuid.NewString()
	token, exp, err := middleware.NewSessionToken(h.JWTSecret, sid, h.SessionTTL)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create session"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"session_id": sid,
		"token":      token,
		"expires_at": exp.Format(time.RFC3339),
	})
}

// GetSession handles GET /v1/session.  It reports the session's phase in
// the planning funnel plus the counters the pages gate their rendering on.
func (h *PlannerHandler) GetSession(c echo.Context) error {
	s, sid, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	guests := s.Guests(ctx)
	resp := echo.Map{
		"session_id":      sid,
		"phase":           s.Phase(ctx),
		"has_stored_data": len(guests) > 0,
		"guest_count":     len(guests),
		"table_count":     len(s.Tables(ctx)),
		"layout_count":    len(s.Layouts(ctx)),
		"loading":         s.Loading(),
	}
	if msg := s.Err(); msg != "" {
		resp["error"] = msg
	}
	return c.JSON(http.StatusOK, resp)
}

// ClearSession handles DELETE /v1/session.  It wipes every durable field
// and its backing storage key; the session token itself stays valid until
// it expires, pointing at an empty session.
func (h *PlannerHandler) ClearSession(c echo.Context) error {
	s, sid, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := s.ClearAll(c.Request().Context()); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not clear session"})
	}
	h.dropStore(sid)
	return c.NoContent(http.StatusNoContent)
}
