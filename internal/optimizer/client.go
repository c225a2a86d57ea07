// Package optimizer is the HTTP client for the external seating optimizer
// service (the Tree-of-Thoughts search + MIP solver).  This repository
// never computes layouts itself; it only submits the current guests,
// tables and parameters and stores what comes back.
package optimizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/seatharmony/seatharmony/internal/model"
)

// ServiceCallError reports a failed call to the optimizer service.  Body
// preserves the server's raw error text when the server answered at all;
// Status is zero when the service was unreachable.
type ServiceCallError struct {
	Endpoint string
	Status   int
	Body     string
	Err      error
}

func (e *ServiceCallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("optimizer call %s failed: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("optimizer call %s failed: %d - %s", e.Endpoint, e.Status, e.Body)
}

func (e *ServiceCallError) Unwrap() error { return e.Err }

// Client talks to the optimizer service.  Calls carry no timeout or retry
// of their own: generation can legitimately run long, and a failed call
// simply surfaces its error while prior state stays untouched.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
	}
}

// GenerateRequest is the body of POST /api/layouts/generate.
type GenerateRequest struct {
	Guests   []model.Guest   `json:"guests"`
	Tables   []model.Table   `json:"tables"`
	Settings map[string]any  `json:"settings"`
	Tot      model.TotParams `json:"tot"`
}

// GenerateLayouts asks the service for scored candidate layouts.
func (c *Client) GenerateLayouts(ctx context.Context, req GenerateRequest) ([]model.TotLayout, error) {
	if req.Settings == nil {
		req.Settings = map[string]any{}
	}
	var resp struct {
		Layouts []model.TotLayout `json:"layouts"`
	}
	if err := c.post(ctx, "/api/layouts/generate", req, &resp); err != nil {
		return nil, err
	}
	return resp.Layouts, nil
}

// ExplainLayout fetches a textual explanation for one layout.
func (c *Client) ExplainLayout(ctx context.Context, layout model.Layout) (string, error) {
	body := map[string]any{"layout": layout}
	var resp struct {
		Explanation string `json:"explanation"`
	}
	if err := c.post(ctx, "/api/layouts/explain", body, &resp); err != nil {
		return "", err
	}
	return resp.Explanation, nil
}

// ExplainGuestsRequest is the body of POST /api/layouts/explain-guests.
// Weights and Notes come from the TotLayout the layout belongs to.
type ExplainGuestsRequest struct {
	Guests  []model.Guest      `json:"guests"`
	Tables  []model.Table      `json:"tables"`
	Layout  model.Layout       `json:"layout"`
	Weights map[string]float64 `json:"weights"`
	Notes   string             `json:"notes"`
}

// ExplainGuests fetches per-guest seating explanations for one layout.
func (c *Client) ExplainGuests(ctx context.Context, req ExplainGuestsRequest) (map[string]string, error) {
	var resp struct {
		Explanations map[string]string `json:"explanations"`
	}
	if err := c.post(ctx, "/api/layouts/explain-guests", req, &resp); err != nil {
		return nil, err
	}
	if resp.Explanations == nil {
		resp.Explanations = map[string]string{}
	}
	return resp.Explanations, nil
}

// post sends a JSON body and decodes a JSON response.  Non-2xx responses
// become a ServiceCallError carrying the server's text.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &ServiceCallError{Endpoint: path, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &ServiceCallError{Endpoint: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return &ServiceCallError{Endpoint: path, Err: err}
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		text, _ := io.ReadAll(res.Body)
		return &ServiceCallError{Endpoint: path, Status: res.StatusCode, Body: strings.TrimSpace(string(text))}
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return &ServiceCallError{Endpoint: path, Err: err}
	}
	return nil
}
