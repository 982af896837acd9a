package crm

import (
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type EventType string

const (
	EventSeeded         EventType = "crm.seeded"
	EventContactCreated EventType = "contact.created"
	EventContactUpdated EventType = "contact.updated"
	EventContactDeleted EventType = "contact.deleted"
	EventLeadCreated    EventType = "lead.created"
	EventLeadUpdated    EventType = "lead.updated"
	EventLeadDeleted    EventType = "lead.deleted"
)

// Event describes one change to the store. Contact or Lead carries the
// record as it stands after the change; deletes only carry the ID.
type Event struct {
	Type       EventType       `json:"type"`
	ID         string          `json:"id,omitempty"`
	Contact    *entity.Contact `json:"contact,omitempty"`
	Lead       *entity.Lead    `json:"lead,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Listener is called synchronously after every mutation, in subscription
// order. Events reach listeners in the order the store applied them. A
// listener may read the store but must not mutate it, and it must not block
// for long: other writers wait for delivery to finish.
type Listener func(Event)

// Subscribe registers fn and returns a func that removes it again.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.lockActive()
	defer s.mu.Unlock()
	s.nextListener++
	id := s.nextListener
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// snapshotListeners must be called with s.mu held.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, len(s.listeners))
	for i, sub := range s.listeners {
		out[i] = sub.fn
	}
	return out
}

type delivery struct {
	ev        Event
	listeners []Listener
}

// enqueue must be called with s.mu held so the queue follows mutation order.
func (s *Store) enqueue(ev Event) {
	d := delivery{ev: ev, listeners: s.snapshotListeners()}
	s.queueMu.Lock()
	s.queue = append(s.queue, d)
	s.queueMu.Unlock()
}

// flush delivers queued events, one deliverer at a time. A writer whose event
// was drained by a concurrent flush returns only after that delivery is done,
// because it waits on notifyMu.
func (s *Store) flush() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for {
		s.queueMu.Lock()
		batch := s.queue
		s.queue = nil
		s.queueMu.Unlock()
		if len(batch) == 0 {
			return
		}
		for _, d := range batch {
			notify(d.listeners, d.ev)
		}
	}
}

func notify(listeners []Listener, ev Event) {
	for _, fn := range listeners {
		fn(ev)
	}
}
