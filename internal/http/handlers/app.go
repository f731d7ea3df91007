package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"donationrelay/internal/domain"
	"donationrelay/internal/infra"
	"donationrelay/internal/relay"
)

// Submitter is the relay operation the handlers depend on.
type Submitter interface {
	Submit(ctx context.Context, req domain.DonationRequest) relay.Outcome
}

type App struct {
	Relay  Submitter
	Logger infra.Logger
}

func NewApp(r Submitter, logger infra.Logger) *App {
	return &App{Relay: r, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.Logger.Debug().Err(err).Msg("write response")
	}
}

func (a *App) result(w http.ResponseWriter, code int, message string) {
	a.json(w, code, domain.DonationResult{Success: false, Message: message})
}
