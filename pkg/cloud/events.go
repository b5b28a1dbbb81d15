package cloud

import (
	"github.com/matzehuels/wordcloud/pkg/layout"
)

// EventKind is one of the events a Cloud emits.
type EventKind int

const (
	// EventRenderComplete fires once per drained batch of coalesced jobs.
	EventRenderComplete EventKind = iota
	// EventSelect fires when a rendered word is activated.
	EventSelect
)

func (k EventKind) String() string {
	switch k {
	case EventRenderComplete:
		return "renderComplete"
	case EventSelect:
		return "select"
	}
	return "unknown"
}

// Event is delivered to subscribers.
type Event struct {
	Kind EventKind

	// RenderComplete
	JobID  string
	Status Status

	// Select
	Word        layout.PlacedWord
	Interaction any
}

// Handler receives events on the loop goroutine.
type Handler func(Event)

type subscription struct {
	id int
	fn Handler
}

type emitter struct {
	next int
	subs map[EventKind][]subscription
}

// Subscribe registers h for events of kind and returns a function that
// removes it. Handlers run in subscription order.
func (c *Cloud) Subscribe(kind EventKind, h Handler) (unsubscribe func()) {
	if h == nil {
		return func() {}
	}
	e := &c.events
	if e.subs == nil {
		e.subs = make(map[EventKind][]subscription)
	}
	e.next++
	id := e.next
	e.subs[kind] = append(e.subs[kind], subscription{id: id, fn: h})

	return func() {
		subs := e.subs[kind]
		for i, s := range subs {
			if s.id == id {
				e.subs[kind] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Cloud) emit(ev Event) {
	// Copy so handlers may unsubscribe while being called.
	subs := append([]subscription(nil), c.events.subs[ev.Kind]...)
	for _, s := range subs {
		s.fn(ev)
	}
}
