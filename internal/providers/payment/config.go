package payment

import (
	"net/http"

	"donationrelay/internal/infra"
)

// NewRegistryFromConfig wires the MTN and Airtel providers from cfg over a
// shared transport. httpClient may be nil.
func NewRegistryFromConfig(cfg *infra.Config, httpClient *http.Client) *Registry {
	transport := NewHTTPTransport(httpClient, cfg.ProviderTimeout)
	return NewRegistry(
		NewMTN(cfg.MTNPayURL, cfg.MTNAPIKey, transport),
		NewAirtel(cfg.AirtelPayURL, cfg.AirtelAPIKey, transport),
	)
}
