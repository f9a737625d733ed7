// Package sse owns the real-time push channels: one Connection per user,
// a Registry mapping users to their Connection, and a Dispatcher that
// formats and fans events out over the registered connections.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"music-lab/domain/event"

	"github.com/google/uuid"
)

// Sink is the outbound stream a Connection writes framed events to.
// *httptest.ResponseRecorder and wrapped http.ResponseWriter both satisfy it.
type Sink interface {
	io.Writer
	Flush()
}

// Connection owns the outbound sink of a single user. It is the only writer
// to that sink; a per-connection mutex serializes heartbeats and application
// events so frames are never torn. The closed flag is monotonic: once the
// connection is Closed it stays closed and every Send becomes a no-op.
type Connection struct {
	userID uuid.UUID
	sink   Sink
	ctx    context.Context
	mu     sync.Mutex
	closed atomic.Bool
}

func newConnection(userID uuid.UUID, sink Sink, ctx context.Context) *Connection {
	return &Connection{userID: userID, sink: sink, ctx: ctx}
}

func (c *Connection) UserID() uuid.UUID {
	return c.userID
}

// Closed reports whether the connection reached its terminal state.
func (c *Connection) Closed() bool {
	return c.closed.Load() || c.ctx.Err() != nil
}

// Close transitions the connection to Closed. Safe to call repeatedly.
func (c *Connection) Close() {
	c.closed.Store(true)
}

// Send writes one framed event to the sink and flushes it immediately.
// A write failure closes the connection; it is never surfaced to the caller
// because delivery is best-effort.
func (c *Connection) Send(eventType string, payload any) {
	if c.Closed() {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Closed() {
		return
	}
	if _, err := fmt.Fprintf(c.sink, "event: %s\ndata: %s\n\n", eventType, data); err != nil {
		c.closed.Store(true)
		return
	}
	c.sink.Flush()
}

// RunHeartbeat blocks driving the periodic keep-alive frames until the
// cancel signal fires or the connection closes. Heartbeats keep proxies and
// load balancers from reclaiming the idle socket and expose dead peers
// through write failures.
func (c *Connection) RunHeartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			if c.Closed() {
				return
			}
			c.Send(event.Heartbeat, event.HeartbeatPayload{Timestamp: time.Now().UTC()})
		}
	}
}
