package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects the mobile-money provider that receives the charge.
type PaymentMethod string

const (
	MethodMTN    PaymentMethod = "MTN"
	MethodAirtel PaymentMethod = "Airtel"
)

const (
	MessageDonationProcessed = "Donation processed successfully."
	MessageFieldsRequired    = "All fields are required."
	MessagePaymentFailed     = "Payment processing failed."
	MessagePaymentError      = "An error occurred while processing the payment."
	MessageTooManyRequests   = "Too many requests, please try again later."
)

// DonationRequest is the inbound donation submission. Amount accepts a JSON
// number or a numeric string; a nil Amount means the field was absent or null.
type DonationRequest struct {
	Name           string           `json:"name"`
	Phone          string           `json:"phone"`
	Amount         *decimal.Decimal `json:"amount"`
	PaymentMethod  PaymentMethod    `json:"paymentMethod"`
	PIN            string           `json:"pin"`
	DonationNumber json.RawMessage  `json:"donationNumber,omitempty"`
}

// DonationResult is the caller-facing response body.
type DonationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Payment is what gets forwarded to a provider.
type Payment struct {
	Phone  string
	Amount decimal.Decimal
	PIN    string
}

// Validate checks that every required field is present and non-zero.
// DonationNumber is never inspected.
func (r DonationRequest) Validate() error {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Phone == "" {
		missing = append(missing, "phone")
	}
	if r.Amount == nil || r.Amount.IsZero() {
		missing = append(missing, "amount")
	}
	if r.PaymentMethod == "" {
		missing = append(missing, "paymentMethod")
	}
	if r.PIN == "" {
		missing = append(missing, "pin")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}

// Payment extracts the provider payload. Call only after Validate succeeds.
func (r DonationRequest) Payment() Payment {
	p := Payment{Phone: r.Phone, PIN: r.PIN}
	if r.Amount != nil {
		p.Amount = *r.Amount
	}
	return p
}

// String hides the PIN so a request can be logged safely.
func (r DonationRequest) String() string {
	amount := "<nil>"
	if r.Amount != nil {
		amount = r.Amount.String()
	}
	return fmt.Sprintf("DonationRequest{name=%q phone=%q amount=%s method=%q pin=***}", r.Name, r.Phone, amount, r.PaymentMethod)
}
