package handler // handler package contains the HTTP handlers of the planning API

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/seatharmony/seatharmony/internal/middleware"
	"github.com/seatharmony/seatharmony/internal/optimizer"
	"github.com/seatharmony/seatharmony/internal/repository"
	"github.com/seatharmony/seatharmony/internal/store"
)

// PlannerHandler bundles the dependencies every planner endpoint needs:
// the shared KV behind session state, the venue source (MySQL repository
// or built-in catalog), the optimizer client, and the session-token
// settings.  One instance serves all sessions.
type PlannerHandler struct {
	KV         store.KV
	Venues     repository.VenueSource
	Optimizer  *optimizer.Client
	JWTSecret  string
	SessionTTL time.Duration

	mu     sync.Mutex
	stores map[string]*store.Store
}

// NewPlannerHandler wires a handler from its dependencies.
func NewPlannerHandler(kv store.KV, venues repository.VenueSource, opt *optimizer.Client, secret string, ttl time.Duration) *PlannerHandler {
	return &PlannerHandler{
		KV:         kv,
		Venues:     venues,
		Optimizer:  opt,
		JWTSecret:  secret,
		SessionTTL: ttl,
		stores:     make(map[string]*store.Store),
	}
}

// sessionStore resolves the request's session id and returns the one Store
// bound to it.  Stores are cached per session so the transient
// loading/error flags survive across requests within a process.
func (h *PlannerHandler) sessionStore(c echo.Context) (*store.Store, string, error) {
	sid, err := middleware.SessionID(c)
	if err != nil {
		return nil, "", err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.stores[sid]
	if !ok {
		s = store.New(h.KV, sid)
		h.stores[sid] = s
	}
	return s, sid, nil
}

// dropStore forgets a session's cached store after teardown.
func (h *PlannerHandler) dropStore(sid string) {
	h.mu.Lock()
	delete(h.stores, sid)
	h.mu.Unlock()
}
