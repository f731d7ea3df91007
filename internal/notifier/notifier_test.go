package notifier

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"donationrelay/internal/domain"
)

func TestNewDonationEventOmitsPIN(t *testing.T) {
	amount := decimal.NewFromInt(50)
	req := domain.DonationRequest{
		Name:          "Ada",
		Phone:         "0770000000",
		Amount:        &amount,
		PaymentMethod: domain.MethodMTN,
		PIN:           "secret-pin-4321",
	}
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("EAT", 3*3600))

	ev := NewDonationEvent("req-1", req, at)
	if ev.EventID == "" {
		t.Fatalf("expected event id")
	}
	if ev.Key() != "req-1" {
		t.Fatalf("Key() = %q, want req-1", ev.Key())
	}
	if !ev.ProcessedAt.Equal(at) || ev.ProcessedAt.Location() != time.UTC {
		t.Fatalf("ProcessedAt = %v, want UTC of %v", ev.ProcessedAt, at)
	}

	raw, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "secret-pin-4321") {
		t.Fatalf("event leaks pin: %s", raw)
	}
}

func TestDonationEventKeyFallsBackToEventID(t *testing.T) {
	ev := NewDonationEvent("", domain.DonationRequest{Name: "Ada"}, time.Now())
	if ev.Key() != ev.EventID {
		t.Fatalf("Key() = %q, want event id %q", ev.Key(), ev.EventID)
	}
}

func TestNopNotifier(t *testing.T) {
	var n Notifier = Nop{}
	if err := n.Notify(context.Background(), DonationEvent{}); err != nil {
		t.Fatalf("Notify: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
