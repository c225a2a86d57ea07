package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatharmony/seatharmony/internal/derive"
	"github.com/seatharmony/seatharmony/internal/model"
	"github.com/seatharmony/seatharmony/internal/optimizer"
	"github.com/seatharmony/seatharmony/internal/queue"
	queue_publisher "github.com/seatharmony/seatharmony/internal/service"
	"github.com/seatharmony/seatharmony/internal/store"
)

// noExplanation is what explanation endpoints degrade to when the
// optimizer service cannot be reached; explanation failures never block
// the planning flow.
const noExplanation = "no explanation available"

// GenerateLayouts handles POST /v1/layouts/generate.  It submits the
// session's guests, tables and search parameters to the external optimizer
// and stores the returned candidates.  A failed call surfaces the server's
// own error text and leaves previously generated layouts untouched.
func (h *PlannerHandler) GenerateLayouts(c echo.Context) error {
	s, sid, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	guests := s.Guests(ctx)
	if len(guests) == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no guests imported yet"})
	}
	tables := s.Tables(ctx)
	if len(tables) == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no tables configured yet"})
	}

	s.SetLoading(true)
	defer s.SetLoading(false)

	layouts, err := h.Optimizer.GenerateLayouts(ctx, optimizer.GenerateRequest{
		Guests:   guests,
		Tables:   tables,
		Settings: s.VenueConfig(ctx).Settings,
		Tot:      s.TotParams(ctx),
	})
	if err != nil {
		s.SetError(err.Error())
		var svcErr *optimizer.ServiceCallError
		if errors.As(err, &svcErr) && svcErr.Status != 0 {
			return c.JSON(http.StatusBadGateway, echo.Map{
				"error":           "layout generation failed",
				"upstream_status": svcErr.Status,
				"upstream_error":  svcErr.Body,
			})
		}
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "optimizer service unreachable"})
	}

	if err := s.SetLayouts(ctx, layouts); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store layouts"})
	}

	best := 0.0
	if len(layouts) > 0 {
		best = layouts[0].Layout.Score
		for _, l := range layouts[1:] {
			if l.Layout.Score > best {
				best = l.Layout.Score
			}
		}
	}
	_ = queue_publisher.PublishActivity(ctx, queue.KindLayoutsGenerated, sid, queue.LayoutsGeneratedEvent{
		SessionID:   sid,
		LayoutCount: len(layouts),
		GuestCount:  len(guests),
		TableCount:  len(tables),
		BestScore:   best,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"layouts": layouts})
}

// ListLayouts handles GET /v1/layouts.
func (h *PlannerHandler) ListLayouts(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, echo.Map{
		"layouts":        s.Layouts(ctx),
		"selected_index": s.SelectedLayoutIndex(ctx),
	})
}

// SelectLayout handles PUT /v1/layouts/selected.  Recording the selection
// moves the session into its final phase and publishes the confirmation
// event with the projection's seating counts.
func (h *PlannerHandler) SelectLayout(c echo.Context) error {
	s, sid, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Index int `json:"index"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	layouts := s.Layouts(ctx)
	if body.Index < 0 || body.Index >= len(layouts) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "layout index out of range"})
	}
	if err := s.SetSelectedLayoutIndex(ctx, body.Index); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store selection"})
	}

	chosen := layouts[body.Index]
	proj := derive.Project(s.Guests(ctx), s.Tables(ctx), chosen.Layout.Assignments)
	_ = queue_publisher.PublishActivity(ctx, queue.KindLayoutConfirmed, sid, queue.LayoutConfirmedEvent{
		SessionID:     sid,
		LayoutID:      chosen.Layout.ID,
		Score:         chosen.Layout.Score,
		SeatedCount:   proj.SeatedCount(),
		UnseatedCount: len(proj.UnseatedGuests),
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"selected_index": body.Index, "layout": chosen})
}

// GetProjection handles GET /v1/layouts/projection.  It renders the
// selected layout through the projection engine: per-table rosters with
// occupancy, primary category and legend color, the unseated guests, and
// the category legend.  Every page view consumes this one shape.
func (h *PlannerHandler) GetProjection(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	layouts := s.Layouts(ctx)
	if len(layouts) == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no layouts generated yet"})
	}
	index := s.SelectedLayoutIndex(ctx)
	if index < 0 || index >= len(layouts) {
		index = 0
	}
	selected := layouts[index]

	guests := s.Guests(ctx)
	tables := s.Tables(ctx)
	proj := derive.Project(guests, tables, selected.Layout.Assignments)

	type tableView struct {
		ID              string        `json:"id"`
		Name            string        `json:"name"`
		Capacity        int           `json:"capacity"`
		Zone            *string       `json:"zone"`
		Guests          []model.Guest `json:"guests"`
		Occupancy       int           `json:"occupancy"`
		PrimaryCategory string        `json:"primary_category"`
		Color           string        `json:"color"`
	}
	tableViews := make([]tableView, 0, len(tables))
	for _, t := range tables {
		roster := proj.GuestsByTable[t.ID]
		category := proj.PrimaryCategory[t.ID]
		tableViews = append(tableViews, tableView{
			ID:              t.ID,
			Name:            t.Name,
			Capacity:        t.Capacity,
			Zone:            t.Zone,
			Guests:          roster,
			Occupancy:       len(roster),
			PrimaryCategory: category,
			Color:           proj.ColorFor(category),
		})
	}

	type legendEntry struct {
		Category   string `json:"category"`
		TableCount int    `json:"table_count"`
		Color      string `json:"color"`
	}
	legend := make([]legendEntry, 0, len(proj.CategoryOrder))
	for _, category := range proj.CategoryOrder {
		legend = append(legend, legendEntry{
			Category:   category,
			TableCount: proj.CategoryStats[category],
			Color:      proj.ColorFor(category),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"layout_id":      selected.Layout.ID,
		"score":          selected.Layout.Score,
		"variant_label":  selected.Layout.VariantLabel,
		"selected_index": index,
		"tables":         tableViews,
		"unseated":       proj.UnseatedGuests,
		"legend":         legend,
		"seated_count":   proj.SeatedCount(),
		"unseated_count": len(proj.UnseatedGuests),
		"guest_count":    len(guests),
	})
}

// ExplainLayout handles POST /v1/layouts/explain.  Explanation failures
// are logged and degrade to a placeholder text instead of blocking.
func (h *PlannerHandler) ExplainLayout(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	selected, ok := h.selectedLayout(ctx, s)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no layouts generated yet"})
	}
	text, err := h.Optimizer.ExplainLayout(ctx, selected.Layout)
	if err != nil {
		slog.Warn("layout explanation failed", "err", err)
		text = noExplanation
	}
	return c.JSON(http.StatusOK, echo.Map{"explanation": text})
}

// ExplainGuests handles POST /v1/layouts/explain-guests, fetching
// per-guest explanations for the selected layout.  Same degrade policy as
// ExplainLayout: on failure every guest simply has no explanation.
func (h *PlannerHandler) ExplainGuests(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	selected, ok := h.selectedLayout(ctx, s)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no layouts generated yet"})
	}
	explanations, err := h.Optimizer.ExplainGuests(ctx, optimizer.ExplainGuestsRequest{
		Guests:  s.Guests(ctx),
		Tables:  s.Tables(ctx),
		Layout:  selected.Layout,
		Weights: selected.Weights,
		Notes:   selected.Notes,
	})
	if err != nil {
		slog.Warn("guest explanations failed", "err", err)
		explanations = map[string]string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"explanations": explanations})
}

// selectedLayout loads the currently selected candidate, falling back to
// the first when the stored index is stale.
func (h *PlannerHandler) selectedLayout(ctx context.Context, s *store.Store) (model.TotLayout, bool) {
	layouts := s.Layouts(ctx)
	if len(layouts) == 0 {
		return model.TotLayout{}, false
	}
	index := s.SelectedLayoutIndex(ctx)
	if index < 0 || index >= len(layouts) {
		index = 0
	}
	return layouts[index], true
}
