package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/seatharmony/seatharmony/internal/handler"    // import the handlers that implement the planning API
	"github.com/seatharmony/seatharmony/internal/middleware" // import middleware for session-token authentication
)

// RegisterRoutes registers routes that do not require a session token on
// the provided Echo instance: the health check and session creation.
func RegisterRoutes(e *echo.Echo, h *handler.PlannerHandler) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
	// Session creation is the only unauthenticated planner endpoint; it
	// mints the token every other route requires.
	e.POST("/v1/sessions", h.CreateSession)
}

// RegisterPlanner registers the session-scoped planning endpoints.  All of
// them execute the SessionAuth middleware before being invoked, so every
// handler can resolve the session id from the request context.
func RegisterPlanner(e *echo.Echo, h *handler.PlannerHandler, jwtSecret string) {
	// Create a route group under the /v1 prefix for everything tied to a
	// planning session.
	g := e.Group("/v1")
	// Apply the SessionAuth middleware to the group using the provided secret.
	g.Use(middleware.SessionAuth(jwtSecret))

	// Session lifecycle: inspect the current session state or wipe it.
	g.GET("/session", h.GetSession)
	g.DELETE("/session", h.ClearSession)

	// Spreadsheet ingestion.  A successful import replaces the session's
	// guest list and resets the downstream planning state.
	g.POST("/guests/import", h.ImportGuests)

	// Guest list management.
	g.GET("/guests", h.ListGuests)
	g.POST("/guests", h.AddGuest)
	g.PATCH("/guests/:id", h.UpdateGuest)
	g.DELETE("/guests/:id", h.RemoveGuest)

	// Category groups derived from the guest list.
	g.GET("/groups", h.ListGroups)
	g.DELETE("/groups/:name", h.DeleteGroup)

	// Venue catalog and selection.  Selecting a venue regenerates the
	// session's tables from the venue's templates.
	g.GET("/venues", h.ListVenues)
	g.GET("/venues/:id", h.GetVenue)
	g.PUT("/venue", h.SelectVenue)

	// Table configuration and optimizer search parameters.
	g.GET("/tables", h.ListTables)
	g.PUT("/tables", h.SetTables)
	g.GET("/params", h.GetParams)
	g.PUT("/params", h.SetParams)

	// Layout generation, selection and projection.
	g.POST("/layouts/generate", h.GenerateLayouts)
	g.GET("/layouts", h.ListLayouts)
	g.PUT("/layouts/selected", h.SelectLayout)
	g.GET("/layouts/projection", h.GetProjection)
	g.POST("/layouts/explain", h.ExplainLayout)
	g.POST("/layouts/explain-guests", h.ExplainGuests)
}
