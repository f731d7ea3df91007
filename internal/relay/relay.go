// Package relay turns donation submissions into provider payment calls and
// maps the outcome to the caller-facing result.
package relay

import (
	"context"
	"errors"
	"net/http"
	"time"

	"donationrelay/internal/domain"
	"donationrelay/internal/infra"
	"donationrelay/internal/notifier"
	"donationrelay/internal/providers/payment"
	"donationrelay/internal/reqctx"
)

const defaultNotifyTimeout = 2 * time.Second

// Outcome is the result of one submission: the HTTP status, the response body
// and, on failure, the classified error.
type Outcome struct {
	Status int
	Result domain.DonationResult
	Err    error
}

// Options configures a Relay. Only Registry is required.
type Options struct {
	Registry      *payment.Registry
	Notifier      notifier.Notifier
	Logger        *infra.Logger
	NotifyTimeout time.Duration
	Now           func() time.Time
}

// Relay is stateless across requests; all fields are read-only after New.
type Relay struct {
	registry      *payment.Registry
	notifier      notifier.Notifier
	logger        infra.Logger
	notifyTimeout time.Duration
	now           func() time.Time
}

func New(opts Options) *Relay {
	r := &Relay{
		registry:      opts.Registry,
		notifier:      opts.Notifier,
		notifyTimeout: opts.NotifyTimeout,
		now:           opts.Now,
	}
	if r.registry == nil {
		r.registry = payment.NewRegistry()
	}
	if r.notifier == nil {
		r.notifier = notifier.Nop{}
	}
	if opts.Logger != nil {
		r.logger = *opts.Logger
	} else {
		r.logger = infra.NopLogger()
	}
	if r.notifyTimeout <= 0 {
		r.notifyTimeout = defaultNotifyTimeout
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Submit validates req, charges the selected provider once and reports the
// outcome. Cancellation of ctx does not abort the provider call.
func (r *Relay) Submit(ctx context.Context, req domain.DonationRequest) Outcome {
	if err := req.Validate(); err != nil {
		return failure(http.StatusBadRequest, domain.MessageFieldsRequired, err)
	}

	ctx = context.WithoutCancel(ctx)
	requestID := reqctx.RequestID(ctx)
	log := r.logger.With().
		Str("request_id", requestID).
		Str("payment_method", string(req.PaymentMethod)).
		Logger()

	provider, err := r.registry.Lookup(req.PaymentMethod)
	if err != nil {
		log.Warn().Err(err).Msg("no provider for payment method")
		return failure(http.StatusInternalServerError, domain.MessagePaymentFailed, err)
	}

	status, err := provider.Pay(ctx, req.Payment())
	switch {
	case errors.Is(err, domain.ErrProviderRejected):
		log.Warn().Int("provider_status", status).Msg("provider rejected payment")
		return failure(http.StatusInternalServerError, domain.MessagePaymentFailed, err)
	case err != nil:
		log.Error().Err(err).Msg("payment error")
		return failure(http.StatusInternalServerError, domain.MessagePaymentError, err)
	}

	log.Info().
		Str("amount", req.Amount.String()).
		Str("donor", req.Name).
		Msgf("Donation of $%s received from %s via %s.", req.Amount.String(), req.Name, req.PaymentMethod)

	r.publish(ctx, log, notifier.NewDonationEvent(requestID, req, r.now()))

	return Outcome{
		Status: http.StatusOK,
		Result: domain.DonationResult{Success: true, Message: domain.MessageDonationProcessed},
	}
}

// publish never affects the caller's outcome.
func (r *Relay) publish(ctx context.Context, log infra.Logger, ev notifier.DonationEvent) {
	ctx, cancel := context.WithTimeout(ctx, r.notifyTimeout)
	defer cancel()
	if err := r.notifier.Notify(ctx, ev); err != nil {
		log.Error().Err(err).Str("event_id", ev.EventID).Msg("failed to publish donation event")
	}
}

func failure(status int, message string, err error) Outcome {
	return Outcome{
		Status: status,
		Result: domain.DonationResult{Success: false, Message: message},
		Err:    err,
	}
}
