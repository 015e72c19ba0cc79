package calendar

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by providers when the referenced event does not
// exist. The mirror reports it distinctly but still never fails a booking.
var ErrNotFound = errors.New("evento no encontrado")

// Event is the provider-agnostic shape of a mirrored calendar entry.
// Start/End are wall-clock times in TimeZone.
type Event struct {
	ID          string
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
}

// EventRef identifies an event on the provider side.
type EventRef struct {
	ID   string
	Link string
}

// Provider abstracts the external calendar. Errors are opaque except for
// ErrNotFound.
type Provider interface {
	InsertEvent(ctx context.Context, ev Event) (EventRef, error)
	ListEvents(ctx context.Context, query string) ([]Event, error)
	PatchEvent(ctx context.Context, eventID string, ev Event) (EventRef, error)
}
