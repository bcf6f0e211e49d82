package transport

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a coordinator notification.
type EventType string

// SessionExpired is broadcast by ForceLogout.
const SessionExpired EventType = "session-expired"

// Event is delivered to subscribers.
type Event struct {
	Type EventType
	Time time.Time
}

// Listener observes coordinator events.
type Listener func(event Event)

// Subscribe registers listener and returns its id with a cancel function.
// Listeners run synchronously on the goroutine that forced the logout, while
// the refresh cycle is still open; they must not call Refresh.
func (c *Coordinator) Subscribe(listener Listener) (string, func()) {
	id := uuid.NewString()
	c.listeners.Put(id, listener)
	return id, func() { c.Unsubscribe(id) }
}

// Unsubscribe removes a listener; it reports whether id was registered.
func (c *Coordinator) Unsubscribe(id string) bool {
	return c.listeners.Delete(id)
}

func (c *Coordinator) broadcast(eventType EventType) {
	event := Event{Type: eventType, Time: time.Now()}
	c.listeners.Range(func(_ string, listener Listener) bool {
		listener(event)
		return true
	})
}
