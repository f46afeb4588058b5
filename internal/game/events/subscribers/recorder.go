package subscribers

import (
	"sync"

	"github.com/mitchelldurbincs/HexTactics/internal/game/events"
)

// Recorder keeps every event it receives, in order. The headless runner
// uses it for the end-of-match summary.
type Recorder struct {
	id       string
	interest map[string]bool

	mu     sync.Mutex
	events []events.Event
}

// NewRecorder records the given event types, or all events if none are given.
func NewRecorder(id string, eventTypes ...string) *Recorder {
	r := &Recorder{id: id}
	if len(eventTypes) > 0 {
		r.interest = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			r.interest[t] = true
		}
	}
	return r
}

func (r *Recorder) ID() string { return r.id }

func (r *Recorder) InterestedIn(eventType string) bool {
	return r.interest == nil || r.interest[eventType]
}

func (r *Recorder) HandleEvent(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

// OfType returns the recorded events of one type.
func (r *Recorder) OfType(eventType string) []events.Event {
	var out []events.Event
	for _, e := range r.Events() {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

// Types lists the recorded event types in order.
func (r *Recorder) Types() []string {
	all := r.Events()
	out := make([]string, len(all))
	for i, e := range all {
		out[i] = e.Type()
	}
	return out
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Reset drops everything recorded.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
