package event

import (
	"time"

	"github.com/google/uuid"
)

// Event type names as they appear on the wire.
// The SSE frame is `event: <type>\ndata: <json>\n\n`.
const (
	Connected     = "connected"
	Heartbeat     = "heartbeat"
	FriendRequest = "friendRequest"
	Friends       = "friends"
	LiveUsers     = "liveUsers"
)

// Actions carried inside friendRequest/friends/liveUsers payloads.
const (
	ActionReceived = "received"
	ActionRejected = "rejected"
	ActionAdded    = "added"
	ActionRemoved  = "removed"
	ActionStarted  = "started"
	ActionStopped  = "stopped"
)

type ConnectedPayload struct {
	Message string `json:"message"`
}

type HeartbeatPayload struct {
	Timestamp time.Time `json:"timestamp"`
}

// ActionPayload is shared by friendRequest and friends events.
type ActionPayload struct {
	Action string `json:"action"`
}

// LiveUsersPayload notifies friends that a user crossed the live boundary.
// Genre carries the raw listening status caption.
type LiveUsersPayload struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Action   string    `json:"action"`
	Genre    string    `json:"genre"`
}
