package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seatharmony/seatharmony/internal/model"
	"github.com/seatharmony/seatharmony/internal/repository"
)

// ListVenues handles GET /v1/venues.  Each venue is annotated with whether
// its total capacity covers the session's current guest count, so the
// selection page can warn about insufficient venues.  The flag is display
// policy only; SelectVenue does not enforce it.
func (h *PlannerHandler) ListVenues(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	venues, err := h.Venues.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load venues"})
	}
	guestCount := len(s.Guests(ctx))

	type venueView struct {
		model.VenueLayout
		Sufficient bool `json:"sufficient"`
	}
	views := make([]venueView, 0, len(venues))
	for _, v := range venues {
		views = append(views, venueView{VenueLayout: v, Sufficient: v.Sufficient(guestCount)})
	}
	return c.JSON(http.StatusOK, echo.Map{"venues": views, "guest_count": guestCount})
}

// GetVenue handles GET /v1/venues/:id.
func (h *PlannerHandler) GetVenue(c echo.Context) error {
	if _, _, err := h.sessionStore(c); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	v, err := h.Venues.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load venue"})
	}
	return c.JSON(http.StatusOK, v)
}

// SelectVenue handles PUT /v1/venue.  The venue's templates are expanded
// into concrete tables, which replace the session's table collection and
// venue config together.  Candidate layouts from a previous venue survive
// only as stale data; the projection degrades gracefully when their table
// ids no longer resolve.
func (h *PlannerHandler) SelectVenue(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		VenueID string `json:"venue_id"`
	}
	if err := c.Bind(&body); err != nil || body.VenueID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "venue_id is required"})
	}

	ctx := c.Request().Context()
	venue, err := h.Venues.GetByID(ctx, body.VenueID)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "venue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load venue"})
	}

	tables := model.GenerateTablesFromVenue(venue)
	cfg := s.VenueConfig(ctx)
	cfg.Tables = tables
	if err := s.SetVenueConfig(ctx, cfg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store venue config"})
	}
	if err := s.SetSelectedVenue(ctx, &venue); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store venue selection"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"venue":       venue,
		"tables":      tables,
		"table_count": len(tables),
		"sufficient":  venue.Sufficient(len(s.Guests(ctx))),
	})
}
