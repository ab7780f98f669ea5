package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
)

func TestRenderApproved(t *testing.T) {
	m, err := Render(Event{
		Type: EventPharmacyApproved,
		To:   "maple@pharmacy.com",
		Data: map[string]string{"pharmacyName": "Maple Pharmacy"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if m.Subject != "Your pharmacy registration has been approved" {
		t.Fatalf("subject = %q", m.Subject)
	}
	if !strings.Contains(m.Text, "Dear Maple Pharmacy,") {
		t.Fatalf("text missing greeting: %q", m.Text)
	}
	if !strings.Contains(m.HTML, "<strong>approved</strong>") {
		t.Fatalf("html missing body: %q", m.HTML)
	}
}

func TestRenderRejectedWithReason(t *testing.T) {
	m, err := Render(Event{
		Type: EventPharmacyRejected,
		Data: map[string]string{"pharmacyName": "Maple Pharmacy", "reason": "license expired"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(m.Text, "Reason: license expired") {
		t.Fatalf("text missing reason: %q", m.Text)
	}
}

func TestRenderStatusUpdate(t *testing.T) {
	m, err := Render(Event{
		Type: EventDeliveryStatusUpdate,
		Data: map[string]string{
			"patientName":    "Jordan Lee",
			"status":         "in-transit",
			"trackingNumber": "TRK-abc123",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if m.Subject != "Delivery TRK-abc123 is now in-transit" {
		t.Fatalf("subject = %q", m.Subject)
	}
	// The pharmacy line is omitted when pharmacyName is absent.
	if strings.Contains(m.Text, "Pharmacy:") {
		t.Fatalf("text has pharmacy line without data: %q", m.Text)
	}

	m, err = Render(Event{
		Type: EventDeliveryStatusUpdate,
		Data: map[string]string{"trackingNumber": "TRK-abc123", "status": "delivered", "pharmacyName": "Maple Pharmacy"},
	})
	if err != nil {
		t.Fatalf("render with pharmacy: %v", err)
	}
	if !strings.Contains(m.Text, "Pharmacy: Maple Pharmacy") {
		t.Fatalf("text missing pharmacy line: %q", m.Text)
	}
}

func TestRenderNewRegistrationMissingFields(t *testing.T) {
	// Missing data keys render as empty strings, never an error.
	m, err := Render(Event{Type: EventNewRegistration, Data: map[string]string{"pharmacyName": "Solo"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(m.Text, "Email: \n") {
		t.Fatalf("missing email not rendered empty: %q", m.Text)
	}
}

func TestRenderUnknownType(t *testing.T) {
	if _, err := Render(Event{Type: "carrier_pigeon"}); err == nil {
		t.Fatalf("expected error for unknown event type")
	}
}

type fakeTransport struct {
	mu       sync.Mutex
	sends    []string
	failures int
	entered  chan struct{}
	block    chan struct{}
}

func (f *fakeTransport) SendEmail(ctx context.Context, from, to, subject, html, text string) (string, error) {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return "", errors.New("transient failure")
	}
	f.sends = append(f.sends, to+": "+subject)
	return "msg_1", nil
}

func (f *fakeTransport) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sends...)
}

func TestQueueDispatcherDeliversAll(t *testing.T) {
	tr := &fakeTransport{}
	d := NewQueueDispatcher("noreply@example.com", tr, zap.NewNop(), 16, 2)
	for i := 0; i < 5; i++ {
		out := d.Dispatch(context.Background(), Event{
			Type: EventPharmacyApproved,
			To:   "maple@pharmacy.com",
			Data: map[string]string{"pharmacyName": "Maple"},
		})
		if !out.Accepted {
			t.Fatalf("dispatch %d not accepted", i)
		}
	}
	d.Close()
	if got := len(tr.sent()); got != 5 {
		t.Fatalf("sent %d emails, want 5", got)
	}
}

func TestQueueDispatcherNilTransportSimulates(t *testing.T) {
	d := NewQueueDispatcher("noreply@example.com", nil, zap.NewNop(), 4, 1)
	out := d.Dispatch(context.Background(), Event{Type: EventPharmacyApproved, To: "x@y.com"})
	if !out.Accepted {
		t.Fatalf("dispatch not accepted")
	}
	d.Close()
}

func TestQueueDispatcherDropsWhenFull(t *testing.T) {
	tr := &fakeTransport{entered: make(chan struct{}, 1), block: make(chan struct{})}
	d := NewQueueDispatcher("noreply@example.com", tr, zap.NewNop(), 1, 1)

	// First event occupies the worker; wait until it is inside the send
	// so the queue slot is free again.
	if out := d.Dispatch(context.Background(), Event{Type: EventPharmacyApproved, To: "a@x.com"}); !out.Accepted {
		t.Fatalf("first dispatch rejected")
	}
	<-tr.entered

	// Second fills the single queue slot, third must be dropped.
	if out := d.Dispatch(context.Background(), Event{Type: EventPharmacyApproved, To: "b@x.com"}); !out.Accepted {
		t.Fatalf("second dispatch rejected")
	}
	if out := d.Dispatch(context.Background(), Event{Type: EventPharmacyApproved, To: "c@x.com"}); out.Accepted {
		t.Fatalf("third dispatch accepted with a full queue")
	}
	close(tr.block)
	<-tr.entered
	d.Close()
}

func TestQueueDispatcherRetries(t *testing.T) {
	tr := &fakeTransport{failures: 1}
	d := NewQueueDispatcher("noreply@example.com", tr, zap.NewNop(), 4, 1)
	d.Dispatch(context.Background(), Event{
		Type: EventPharmacyApproved,
		To:   "maple@pharmacy.com",
		Data: map[string]string{"pharmacyName": "Maple"},
	})
	d.Close()
	if got := len(tr.sent()); got != 1 {
		t.Fatalf("sent %d emails after transient failure, want 1", got)
	}
}

func TestQueueDispatcherAbsorbsPermanentFailure(t *testing.T) {
	tr := &fakeTransport{failures: sendRetries + 1}
	d := NewQueueDispatcher("noreply@example.com", tr, zap.NewNop(), 4, 1)
	out := d.Dispatch(context.Background(), Event{Type: EventPharmacyApproved, To: "x@y.com"})
	if !out.Accepted {
		t.Fatalf("dispatch not accepted")
	}
	// Close drains without surfacing the failure.
	d.Close()
	if got := len(tr.sent()); got != 0 {
		t.Fatalf("sent %d emails, want 0", got)
	}
}

func TestResendTransport(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq resendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(resendResponse{ID: "msg_42"})
	}))
	defer srv.Close()

	tr := NewResendTransport("re_test_key", srv.URL)
	id, err := tr.SendEmail(context.Background(), "noreply@example.com", "to@x.com", "Hello", "<p>hi</p>", "hi")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if id != "msg_42" {
		t.Fatalf("provider id = %q", id)
	}
	if gotAuth != "Bearer re_test_key" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotPath != "/emails" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotReq.From != "noreply@example.com" || len(gotReq.To) != 1 || gotReq.To[0] != "to@x.com" {
		t.Fatalf("request = %+v", gotReq)
	}
}

func TestResendTransportAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(resendResponse{Message: "invalid from address"})
	}))
	defer srv.Close()

	tr := NewResendTransport("re_test_key", srv.URL)
	_, err := tr.SendEmail(context.Background(), "bad", "to@x.com", "Hello", "", "")
	if err == nil || !strings.Contains(err.Error(), "invalid from address") {
		t.Fatalf("err = %v, want api message", err)
	}
}
