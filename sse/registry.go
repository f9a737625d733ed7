package sse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Registry maps each connected user to their single live Connection.
// It is process-local state with process lifetime, mutated concurrently by
// stream handlers and dispatch calls. sync.Map keeps unrelated users from
// contending: dispatch to user A never waits behind dispatch to user B.
type Registry struct {
	conns sync.Map // map[uuid.UUID]*Connection
	log   *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{log: log}
}

// Register creates a Connection for userID and installs it as the only one.
// If the user already holds a connection it is swapped out and closed first:
// replacement is routine behavior, not an error. The caller owns the
// returned Connection and drives its heartbeat loop.
func (r *Registry) Register(userID uuid.UUID, sink Sink, ctx context.Context) *Connection {
	conn := newConnection(userID, sink, ctx)
	if old, loaded := r.conns.Swap(userID, conn); loaded {
		old.(*Connection).Close()
		r.log.Info("Replaced existing push connection", "user", userID)
	}
	r.log.Info("Push connection registered", "user", userID, "total", r.Len())
	return conn
}

// Remove drops the user's connection if present and closes it. Idempotent.
func (r *Registry) Remove(userID uuid.UUID) {
	if v, ok := r.conns.LoadAndDelete(userID); ok {
		v.(*Connection).Close()
		r.log.Info("Push connection removed", "user", userID, "total", r.Len())
	}
}

// Release removes the entry only if it still holds conn. A replaced
// connection's deferred cleanup must not evict its replacement.
func (r *Registry) Release(conn *Connection) {
	conn.Close()
	if r.conns.CompareAndDelete(conn.userID, conn) {
		r.log.Info("Push connection released", "user", conn.userID, "total", r.Len())
	}
}

// Lookup returns the user's connection for dispatch, or nil when the user
// is absent or their connection already closed.
func (r *Registry) Lookup(userID uuid.UUID) *Connection {
	v, ok := r.conns.Load(userID)
	if !ok {
		return nil
	}
	conn := v.(*Connection)
	if conn.Closed() {
		return nil
	}
	return conn
}

// Snapshot returns a point-in-time copy of the connected user ids, so
// broadcast iteration never races concurrent Register/Remove.
func (r *Registry) Snapshot() []uuid.UUID {
	var ids []uuid.UUID
	r.conns.Range(func(key, _ any) bool {
		ids = append(ids, key.(uuid.UUID))
		return true
	})
	return ids
}

// Len counts currently registered connections.
func (r *Registry) Len() int {
	n := 0
	r.conns.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Shutdown closes and drops every connection. Called on process shutdown so
// sinks are disposed explicitly instead of relying on process exit.
func (r *Registry) Shutdown() {
	for _, id := range r.Snapshot() {
		r.Remove(id)
	}
	r.log.Info("Push registry drained")
}
