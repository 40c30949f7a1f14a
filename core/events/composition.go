package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind identifies what happened to a train.
type Kind string

const (
	KindComposed Kind = "composed"
	KindAttached Kind = "attached"
	KindDetached Kind = "detached"
	KindBoarded  Kind = "boarded"
	KindAlighted Kind = "alighted"
	KindLoaded   Kind = "loaded"
	KindUnloaded Kind = "unloaded"
)

// Composition reports whether k changes the vehicles of a train rather
// than its load.
func (k Kind) Composition() bool {
	switch k {
	case KindComposed, KindAttached, KindDetached:
		return true
	}
	return false
}

// Event records one successful mutation of a train. Serial is set for
// composition changes, Amount for load changes.
type Event struct {
	Kind   Kind       `json:"kind"`
	Train  string     `json:"train"`
	Serial *uuid.UUID `json:"serial,omitempty"`
	Amount int        `json:"amount,omitempty"`
	Time   time.Time  `json:"timestamp"`
}

// Publisher forwards events to an external system.
type Publisher interface {
	Publish(Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) error { return nil }
