package ws

import (
	"log"
	"sync"
	"time"
)

// Entities published on the bus
const (
	EntityUser        = "user"
	EntitySystem      = "system"
	EntityInstruction = "instruction"
	EntityKnowledge   = "knowledge"
	EntityAgent       = "agent"
	EntityPermission  = "permission_group"
	EntityMapping     = "mapping"
	EntityMessage     = "chat_message"
)

// Actions published on the bus
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionToggled   = "toggled"
	ActionPublished = "version_published"
)

// Event describes one mutation of a console store
type Event struct {
	Type    string    `json:"type"`
	Entity  string    `json:"entity"`
	Action  string    `json:"action"`
	ID      string    `json:"id"`
	Actor   string    `json:"actor"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// NewEvent builds a record_change event stamped now
func NewEvent(entity, action, id, actor, message string) Event {
	return Event{
		Type:    "record_change",
		Entity:  entity,
		Action:  action,
		ID:      id,
		Actor:   actor,
		Message: message,
		At:      time.Now(),
	}
}

// Bus fans events out to in-process subscribers. Publish calls subscribers
// synchronously, in subscription order.
type Bus struct {
	mu          sync.RWMutex
	subscribers []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(fn func(Event)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subscribers := b.subscribers
	b.mu.RUnlock()

	for _, fn := range subscribers {
		b.deliver(fn, e)
	}
}

func (b *Bus) deliver(fn func(Event), e Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Warning: event subscriber panicked on %s/%s: %v", e.Entity, e.Action, r)
		}
	}()
	fn(e)
}
