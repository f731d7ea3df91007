package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedMethod = errors.New("unsupported payment method")
	ErrProviderFailure   = errors.New("provider failure")
	ErrProviderRejected  = errors.New("provider rejected payment")
)

// ProviderStatusError reports a provider response whose status was not 200.
type ProviderStatusError struct {
	Method     PaymentMethod
	StatusCode int
}

func (e *ProviderStatusError) Error() string {
	return fmt.Sprintf("%s: provider responded with status %d", e.Method, e.StatusCode)
}

func (e *ProviderStatusError) Unwrap() error { return ErrProviderRejected }
