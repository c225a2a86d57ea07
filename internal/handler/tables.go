package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seatharmony/seatharmony/internal/model"
)

// ListTables handles GET /v1/tables.
func (h *PlannerHandler) ListTables(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	tables := s.Tables(c.Request().Context())
	capacity := 0
	for _, t := range tables {
		capacity += t.Capacity
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables, "total_capacity": capacity})
}

// SetTables handles PUT /v1/tables and replaces the table collection
// wholesale.  The store mirrors the change into the venue config.  Every
// table needs a positive capacity; ids must be unique since assignments
// reference them.
func (h *PlannerHandler) SetTables(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Tables []model.Table `json:"tables"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	seen := make(map[string]bool, len(body.Tables))
	for _, t := range body.Tables {
		if t.ID == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "every table needs an id"})
		}
		if seen[t.ID] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("duplicate table id %q", t.ID)})
		}
		seen[t.ID] = true
		if t.Capacity < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("table %q must have positive capacity", t.ID)})
		}
	}
	if err := s.SetTables(c.Request().Context(), body.Tables); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store tables"})
	}
	return c.JSON(http.StatusOK, echo.Map{"table_count": len(body.Tables)})
}

// GetParams handles GET /v1/params.
func (h *PlannerHandler) GetParams(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, s.TotParams(c.Request().Context()))
}

// SetParams handles PUT /v1/params.  Zero or negative values fall back to
// the stock defaults field by field, so a partial body tunes only what it
// names.
func (h *PlannerHandler) SetParams(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body model.TotParams
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	def := model.DefaultTotParams()
	if body.Depth < 1 {
		body.Depth = def.Depth
	}
	if body.Branching < 1 {
		body.Branching = def.Branching
	}
	if body.NGenerate < 1 {
		body.NGenerate = def.NGenerate
	}
	if body.NEvaluate < 1 {
		body.NEvaluate = def.NEvaluate
	}
	if body.TopK < 1 {
		body.TopK = def.TopK
	}
	if err := s.SetTotParams(c.Request().Context(), body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store parameters"})
	}
	return c.JSON(http.StatusOK, body)
}
