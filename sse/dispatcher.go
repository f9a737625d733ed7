package sse

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Dispatcher resolves target users through the Registry and writes framed
// events to their connections. Every send is best-effort: a dead peer only
// closes its own connection and is never reported to the business caller
// that triggered the push.
type Dispatcher struct {
	registry *Registry
	log      *slog.Logger
}

func NewDispatcher(registry *Registry, log *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, log: log}
}

// SendTo delivers one event to one user. No-op when the user has no open
// connection.
func (d *Dispatcher) SendTo(userID uuid.UUID, eventType string, payload any) {
	conn := d.registry.Lookup(userID)
	if conn == nil {
		return
	}
	conn.Send(eventType, payload)
}

// SendToMany attempts delivery to each recipient independently and
// concurrently; one unreachable peer never affects the others. The call
// returns once every attempt finished.
func (d *Dispatcher) SendToMany(userIDs []uuid.UUID, eventType string, payload any) {
	var wg sync.WaitGroup
	for _, userID := range userIDs {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			d.SendTo(id, eventType, payload)
		}(userID)
	}
	wg.Wait()
}

// Broadcast fans the event out to every user connected at call time.
func (d *Dispatcher) Broadcast(eventType string, payload any) {
	d.SendToMany(d.registry.Snapshot(), eventType, payload)
}
