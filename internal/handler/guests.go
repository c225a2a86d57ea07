package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/seatharmony/seatharmony/internal/derive"
	"github.com/seatharmony/seatharmony/internal/model"
	"github.com/seatharmony/seatharmony/internal/store"
)

// ListGuests handles GET /v1/guests and returns the canonical guest list.
func (h *PlannerHandler) ListGuests(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	guests := s.Guests(c.Request().Context())
	return c.JSON(http.StatusOK, echo.Map{"guests": guests, "total": len(guests)})
}

// AddGuest handles POST /v1/guests and appends a single manually entered
// guest to the list.
func (h *PlannerHandler) AddGuest(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		GroupID string `json:"group_id"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	id := strings.TrimSpace(body.ID)
	if id == "" {
		// Slugged names collide (two guests named Amy); a uuid keeps
		// derived ids unique.
		id = "guest-manual-" + uuid.NewString()
	}
	g := model.NewGuest(id, name, strings.TrimSpace(body.GroupID))
	if err := s.AddGuest(c.Request().Context(), g); err != nil {
		if errors.Is(err, store.ErrDuplicateGuest) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "guest id already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store guest"})
	}
	return c.JSON(http.StatusCreated, g)
}

// UpdateGuest handles PATCH /v1/guests/:id.  Only the provided fields are
// touched; an unknown id is a silent no-op, matching the store contract.
func (h *PlannerHandler) UpdateGuest(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Name           *string   `json:"name"`
		GroupID        *string   `json:"group_id"`
		Importance     *int      `json:"importance"`
		Tags           *[]string `json:"tags"`
		MustSitWith    *[]string `json:"must_sit_with"`
		MustNotSitWith *[]string `json:"must_not_sit_with"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Importance != nil && *body.Importance < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "importance must not be negative"})
	}
	patch := store.GuestPatch{
		Name:           body.Name,
		GroupID:        body.GroupID,
		Importance:     body.Importance,
		Tags:           body.Tags,
		MustSitWith:    body.MustSitWith,
		MustNotSitWith: body.MustNotSitWith,
	}
	if err := s.UpdateGuest(c.Request().Context(), c.Param("id"), patch); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update guest"})
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveGuest handles DELETE /v1/guests/:id.
func (h *PlannerHandler) RemoveGuest(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := s.RemoveGuest(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not remove guest"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListGroups handles GET /v1/groups.  Groups come back in
// first-seen order with Uncategorized sorted last, each annotated with the
// dashboard's display metadata: the priority heuristic and the cyclic
// style index.
func (h *PlannerHandler) ListGroups(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	guests := s.Guests(c.Request().Context())
	groups := derive.SortGroupsForDisplay(derive.GroupGuestsByCategory(guests))

	type groupView struct {
		model.GuestGroup
		Priority   string `json:"priority"`
		StyleIndex int    `json:"styleIndex"`
	}
	views := make([]groupView, 0, len(groups))
	uncategorized := 0
	for i, g := range groups {
		if g.Name == derive.UncategorizedGroup {
			uncategorized = g.GuestCount
		}
		views = append(views, groupView{GuestGroup: g, Priority: derive.GroupPriority(g.Name), StyleIndex: i})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"groups":              views,
		"total_guests":        len(guests),
		"total_groups":        len(groups),
		"uncategorized_count": uncategorized,
	})
}

// DeleteGroup handles DELETE /v1/groups/:name.  There is no group
// entity to delete: every member guest is relabeled to Uncategorized and
// the groups are simply recomputed on the next read.
func (h *PlannerHandler) DeleteGroup(c echo.Context) error {
	s, _, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	name := c.Param("name")
	if name == "" || name == derive.UncategorizedGroup {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot delete this group"})
	}

	ctx := c.Request().Context()
	relabel := derive.UncategorizedGroup
	moved := 0
	for _, g := range s.Guests(ctx) {
		if g.Group() != name {
			continue
		}
		if err := s.UpdateGuest(ctx, g.ID, store.GuestPatch{GroupID: &relabel}); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update guests"})
		}
		moved++
	}
	if moved == 0 {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "group not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"moved": moved})
}
