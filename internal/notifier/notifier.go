package notifier

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"donationrelay/internal/domain"
)

// DonationEvent describes a donation the provider accepted. It never carries
// the PIN.
type DonationEvent struct {
	EventID       string               `json:"eventID"`
	RequestID     string               `json:"requestID,omitempty"`
	DonorName     string               `json:"donorName"`
	Phone         string               `json:"phone"`
	Amount        decimal.Decimal      `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod"`
	ProcessedAt   time.Time            `json:"processedAt"`
}

// NewDonationEvent builds the event for an accepted donation.
func NewDonationEvent(requestID string, req domain.DonationRequest, at time.Time) DonationEvent {
	ev := DonationEvent{
		EventID:       uuid.NewString(),
		RequestID:     requestID,
		DonorName:     req.Name,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		ProcessedAt:   at.UTC(),
	}
	if req.Amount != nil {
		ev.Amount = *req.Amount
	}
	return ev
}

// Key is the partition key: the request ID when present, else the event ID.
func (e DonationEvent) Key() string {
	if e.RequestID != "" {
		return e.RequestID
	}
	return e.EventID
}

type Notifier interface {
	Notify(ctx context.Context, event DonationEvent) error
	Close() error
}

// Nop discards events. It is used when no broker is configured.
type Nop struct{}

func (Nop) Notify(context.Context, DonationEvent) error { return nil }
func (Nop) Close() error                                { return nil }
