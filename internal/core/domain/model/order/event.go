package order

import (
	"time"

	"afrimercato/internal/core/domain/model/kernel"
)

// Audit notes attached to distinctly-logged events. Stored verbatim in the
// event log so operators can filter for them.
const (
	// NoteWorkerUnavailable marks a reassignment caused by an assigned
	// picker or rider going offline before completing their stage.
	NoteWorkerUnavailable = "WORKER_UNAVAILABLE"

	// NoteAutoRejectedTimeout marks a substitution proposal auto-rejected
	// because the customer did not decide before the deadline.
	NoteAutoRejectedTimeout = "AUTO_REJECTED_TIMEOUT"
)

// Event is one immutable entry in an order's append-only event log.
// Status transitions record the from/to pair; item-level actions record the
// current status on both sides plus an explanatory note.
type Event struct {
	at   time.Time
	role kernel.Role
	from Status
	to   Status
	note string
}

// newEvent stamps an event with the current UTC time.
func newEvent(role kernel.Role, from, to Status, note string) Event {
	return Event{
		at:   time.Now().UTC(),
		role: role,
		from: from,
		to:   to,
		note: note,
	}
}

// RestoreEvent reconstructs an event-log entry from persistence.
func RestoreEvent(at time.Time, role kernel.Role, from, to Status, note string) Event {
	return Event{at: at, role: role, from: from, to: to, note: note}
}

// At returns the event timestamp (UTC).
func (e Event) At() time.Time {
	return e.at
}

// Role returns the actor role that triggered the event.
func (e Event) Role() kernel.Role {
	return e.role
}

// From returns the order status before the event.
func (e Event) From() Status {
	return e.from
}

// To returns the order status after the event.
func (e Event) To() Status {
	return e.to
}

// Note returns the free-form audit note, if any.
func (e Event) Note() string {
	return e.note
}
