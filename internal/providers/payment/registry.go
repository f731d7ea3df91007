package payment

import (
	"fmt"
	"sort"

	"donationrelay/internal/domain"
)

// Registry maps a payment method to its provider.
type Registry struct {
	providers map[domain.PaymentMethod]Provider
}

// NewRegistry indexes providers by Method. A later provider for the same
// method replaces an earlier one.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[domain.PaymentMethod]Provider, len(providers))}
	for _, p := range providers {
		if p == nil {
			continue
		}
		r.providers[p.Method()] = p
	}
	return r
}

// Lookup returns the provider for method or an error wrapping
// domain.ErrUnsupportedMethod.
func (r *Registry) Lookup(method domain.PaymentMethod) (Provider, error) {
	if r != nil {
		if p, ok := r.providers[method]; ok {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedMethod, method)
}

// Methods lists the registered methods in sorted order.
func (r *Registry) Methods() []domain.PaymentMethod {
	if r == nil {
		return nil
	}
	out := make([]domain.PaymentMethod, 0, len(r.providers))
	for m := range r.providers {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
