package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// LiveMarker is the substring a listening status must contain for the user
// to be considered live. Clients embed it in the caption they send
// (e.g. "LIVE - lofi hip hop").
const LiveMarker = "LIVE"

// PresenceState is the per-user presence row. It outlives any single push
// connection: a user keeps their listening status across reconnects.
type PresenceState struct {
	UserID          uuid.UUID  `json:"userId"`
	IsOnline        bool       `json:"isOnline"`
	LastSeen        time.Time  `json:"lastSeen"`
	ListeningStatus string     `json:"listeningStatus"`
	CurrentSongID   *uuid.UUID `json:"currentSongId,omitempty"`
	Position        float64    `json:"position"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
	IsPaused        bool       `json:"isPaused"`
}

// IsLive derives the live flag from the stored caption.
func (p PresenceState) IsLive() bool {
	return IsLiveStatus(p.ListeningStatus)
}

// IsLiveStatus reports whether a status caption marks the user as live.
func IsLiveStatus(status string) bool {
	return status != "" && strings.Contains(status, LiveMarker)
}

// LivePlayback is the pull-side view of a live user's playback, assembled
// for followers who poll instead of receiving pushes.
type LivePlayback struct {
	UserID    uuid.UUID  `json:"userId"`
	Username  string     `json:"username"`
	IsLive    bool       `json:"isLive"`
	SongID    *uuid.UUID `json:"songId,omitempty"`
	Position  float64    `json:"position"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
	IsPaused  bool       `json:"isPaused"`
}
