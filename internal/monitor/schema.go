package monitor

import "time"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionSubscribe Action = "subscribe"
	ActionPing      Action = "ping"
)

// SubscribeRequest opens the activity feed after the socket is up.
type SubscribeRequest struct {
	Action Action `json:"action"`
}

// PingRequest keeps the connection alive.
type PingRequest struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventActivity Event = "activity"
	EventPong     Event = "pong"
	EventError    Event = "error"
)

// EventEnvelope is used to peek at the event before full parsing.
type EventEnvelope struct {
	Event Event `json:"event"`
}

// ActivityEvent is one live entry in the admin activity feed: someone
// created, updated, deleted, activated or deactivated an entity.
type ActivityEvent struct {
	Event      Event     `json:"event"`
	ID         string    `json:"id"`
	EntityKind string    `json:"entity_kind"`
	Action     string    `json:"action"`
	EntityName string    `json:"entity_name"`
	Actor      string    `json:"actor"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorEvent reports a server-side stream failure.
type ErrorEvent struct {
	Event   Event  `json:"event"`
	Message string `json:"message"`
}
