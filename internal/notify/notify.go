// Package notify delivers best-effort email notifications for workflow
// events. Sends are queued and handled by background workers so the
// primary write path never waits on network I/O; transport failures are
// logged and absorbed, never surfaced to the caller.
package notify

import "context"

// EventType identifies which template a notification renders.
type EventType string

const (
	EventPharmacyApproved     EventType = "pharmacy_approved"
	EventPharmacyRejected     EventType = "pharmacy_rejected"
	EventNewRegistration      EventType = "new_registration"
	EventDeliveryStatusUpdate EventType = "delivery_status_update"
)

// Event is one notification to be rendered and sent.
type Event struct {
	Type EventType
	To   string
	Data map[string]string
}

// Outcome reports what happened to a dispatched event. Accepted is false
// only when the queue is full and the event was dropped; either way the
// triggering operation proceeds.
type Outcome struct {
	Accepted bool
}

// Dispatcher accepts events for asynchronous delivery.
type Dispatcher interface {
	Dispatch(ctx context.Context, e Event) Outcome
}

// Transport performs the actual email send and returns a provider
// message id.
type Transport interface {
	SendEmail(ctx context.Context, from, to, subject, html, text string) (string, error)
}
