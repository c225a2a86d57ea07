// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityQueueName is the durable queue carrying planning-session events.
const ActivityQueueName = "planner.activity"

// Event kinds published on the activity queue.
const (
	KindGuestListImported = "guestlist.imported"
	KindLayoutsGenerated  = "layouts.generated"
	KindLayoutConfirmed   = "layout.confirmed"
)

// GuestListImportedEvent is published after a spreadsheet import replaces a
// session's guest list.  It carries enough for downstream consumers to log
// or trigger analytics without reading the session state.
type GuestListImportedEvent struct {
	SessionID  string `json:"session_id"`
	Filename   string `json:"filename"`
	GuestCount int    `json:"guest_count"`
	GroupCount int    `json:"group_count"`
	TableCount int    `json:"table_count"`
	ImportedAt string `json:"imported_at"`
}

// LayoutsGeneratedEvent is published when the external optimizer returns a
// fresh set of candidate layouts for a session.
type LayoutsGeneratedEvent struct {
	SessionID   string  `json:"session_id"`
	LayoutCount int     `json:"layout_count"`
	GuestCount  int     `json:"guest_count"`
	TableCount  int     `json:"table_count"`
	BestScore   float64 `json:"best_score"`
	GeneratedAt string  `json:"generated_at"`
}

// LayoutConfirmedEvent is published when the planner picks one candidate as
// the final seating chart.
type LayoutConfirmedEvent struct {
	SessionID     string  `json:"session_id"`
	LayoutID      string  `json:"layout_id"`
	Score         float64 `json:"score"`
	SeatedCount   int     `json:"seated_count"`
	UnseatedCount int     `json:"unseated_count"`
	ConfirmedAt   string  `json:"confirmed_at"`
}

// Envelope wraps every activity message so one queue can carry all kinds.
type Envelope struct {
	Kind       string `json:"kind"`
	SessionID  string `json:"session_id"`
	OccurredAt string `json:"occurred_at"`
	Payload    any    `json:"payload"`
}
