package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatharmony/seatharmony/internal/derive"
	"github.com/seatharmony/seatharmony/internal/ingest"
	"github.com/seatharmony/seatharmony/internal/queue"
	queue_publisher "github.com/seatharmony/seatharmony/internal/service"
)

// ImportGuests handles POST /v1/guests/import.  It accepts a multipart
// upload under the "file" field, parses it into guests and resets the
// planning funnel.  On any ingestion error the store is left untouched:
// the previous guest list, if any, stays authoritative.
func (h *PlannerHandler) ImportGuests(c echo.Context) error {
	s, sid, err := h.sessionStore(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing file upload"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not open uploaded file"})
	}
	defer f.Close()

	s.SetLoading(true)
	defer s.SetLoading(false)

	guests, err := ingest.ParseFile(fh.Filename, f)
	if err != nil {
		s.SetError(err.Error())
		return c.JSON(ingestStatus(err), echo.Map{"error": err.Error()})
	}

	ctx := c.Request().Context()
	if err := s.InitializeFromSpreadsheet(ctx, guests); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not store guest list"})
	}

	groups := derive.GroupGuestsByCategory(guests)
	tables := s.Tables(ctx)

	// Best-effort domain event; a broker outage must not fail the import.
	_ = queue_publisher.PublishActivity(ctx, queue.KindGuestListImported, sid, queue.GuestListImportedEvent{
		SessionID:  sid,
		Filename:   fh.Filename,
		GuestCount: len(guests),
		GroupCount: len(groups),
		TableCount: len(tables),
		ImportedAt: time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"guest_count": len(guests),
		"group_count": len(groups),
		"table_count": len(tables),
	})
}

// ingestStatus maps each ingestion error kind to its HTTP status.
func ingestStatus(err error) int {
	var (
		invalidType *ingest.InvalidFileTypeError
		empty       *ingest.EmptyDatasetError
		missing     *ingest.MissingColumnError
		readErr     *ingest.FileReadError
	)
	switch {
	case errors.As(err, &invalidType):
		return http.StatusBadRequest
	case errors.As(err, &missing):
		return http.StatusUnprocessableEntity
	case errors.As(err, &empty):
		return http.StatusUnprocessableEntity
	case errors.As(err, &readErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
