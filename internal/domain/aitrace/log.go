package aitrace

import "sync"

// Log is an in-memory append-only Recorder. A cap of zero keeps every
// event; otherwise the oldest entries are dropped once the cap is hit.
type Log struct {
	mu     sync.Mutex
	cap    int
	events []Event
}

func NewLog(capacity int) *Log {
	return &Log{cap: capacity}
}

func (l *Log) Record(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, e)
	if l.cap > 0 && len(l.events) > l.cap {
		l.events = l.events[len(l.events)-l.cap:]
	}
}

// Filter narrows a query. Zero values match everything.
type Filter struct {
	Type      EventType
	Team      string
	MinuteMin int
	MinuteMax int
}

func (f Filter) matches(e Event) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}
	if f.Team != "" && e.Team != f.Team {
		return false
	}
	if f.MinuteMax > 0 && e.Minute > f.MinuteMax {
		return false
	}
	return e.Minute >= f.MinuteMin
}

// Query returns matching events in record order.
func (l *Log) Query(f Filter) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Event, 0, len(l.events))
	for _, e := range l.events {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}
