package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"donationrelay/internal/domain"
)

// Provider charges a donor through one mobile-money network.
type Provider interface {
	Method() domain.PaymentMethod
	Pay(ctx context.Context, p domain.Payment) (int, error)
}

type chargeBody struct {
	Phone  string      `json:"phone"`
	Amount json.Number `json:"amount"`
	PIN    string      `json:"pin"`
}

// MobileMoney is a Provider that owns its endpoint and secret. MTN and Airtel
// share the same wire contract and differ only in those two values.
type MobileMoney struct {
	method    domain.PaymentMethod
	endpoint  string
	secret    string
	transport CredentialTransport
}

// NewMobileMoney builds a provider for method.
func NewMobileMoney(method domain.PaymentMethod, endpoint, secret string, transport CredentialTransport) *MobileMoney {
	return &MobileMoney{method: method, endpoint: endpoint, secret: secret, transport: transport}
}

// NewMTN builds the MTN provider.
func NewMTN(endpoint, apiKey string, transport CredentialTransport) *MobileMoney {
	return NewMobileMoney(domain.MethodMTN, endpoint, apiKey, transport)
}

// NewAirtel builds the Airtel provider.
func NewAirtel(endpoint, apiKey string, transport CredentialTransport) *MobileMoney {
	return NewMobileMoney(domain.MethodAirtel, endpoint, apiKey, transport)
}

func (m *MobileMoney) Method() domain.PaymentMethod { return m.method }

// Pay forwards the payment and returns the provider status. A transport
// failure wraps domain.ErrProviderFailure; any status other than 200 is a
// *domain.ProviderStatusError.
func (m *MobileMoney) Pay(ctx context.Context, p domain.Payment) (int, error) {
	body := chargeBody{
		Phone:  p.Phone,
		Amount: json.Number(p.Amount.String()),
		PIN:    p.PIN,
	}
	status, err := m.transport.Send(ctx, m.endpoint, m.secret, body)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrProviderFailure, m.method, err)
	}
	if status != http.StatusOK {
		return status, &domain.ProviderStatusError{Method: m.method, StatusCode: status}
	}
	return status, nil
}
