package testutil

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"pharmaDeliveryManagement/internal/auth"
	"pharmaDeliveryManagement/internal/db"
	"pharmaDeliveryManagement/internal/notify"
	"pharmaDeliveryManagement/internal/workflow"
	"pharmaDeliveryManagement/repository"
)

// OpenInMemoryDB opens an in-memory SQLite database and applies migrations.
// Caller is responsible for closing the DB, typically via t.Cleanup.
func OpenInMemoryDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	// Shared cache so multiple connections see the same database.
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

// BearerToken returns a signed session token for the given principal.
func BearerToken(t *testing.T, secret, id, name, kind string) string {
	t.Helper()
	tok, err := auth.IssueToken(secret, time.Hour, &auth.Principal{ID: id, Name: name, Kind: kind})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// RecordingDispatcher captures dispatched events for assertions.
type RecordingDispatcher struct {
	mu     sync.Mutex
	events []notify.Event
}

func (d *RecordingDispatcher) Dispatch(ctx context.Context, e notify.Event) notify.Outcome {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
	return notify.Outcome{Accepted: true}
}

// Events returns a copy of everything dispatched so far.
func (d *RecordingDispatcher) Events() []notify.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]notify.Event(nil), d.events...)
}

// NewEngine builds a workflow engine on memory stores with a recording
// dispatcher and a no-op logger.
func NewEngine(t *testing.T) (*workflow.Engine, *RecordingDispatcher, *repository.Stores) {
	t.Helper()
	stores := repository.NewMemoryStores()
	dispatcher := &RecordingDispatcher{}
	return workflow.New(stores, dispatcher, zap.NewNop(), "admin@example.com"), dispatcher, stores
}
