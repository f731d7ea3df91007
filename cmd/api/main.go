package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"donationrelay/internal/http/handlers"
	httpapi "donationrelay/internal/http/httpapi"
	"donationrelay/internal/infra"
	"donationrelay/internal/notifier"
	"donationrelay/internal/notifier/kafka"
	"donationrelay/internal/providers/payment"
	"donationrelay/internal/relay"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server exited")
		os.Exit(1)
	}
}

// run owns every resource that needs closing, so its defers complete before main exits.
func run(cfg *infra.Config, logger infra.Logger) error {
	if cfg.MTNAPIKey == "" {
		logger.Warn().Msg("MTN_API_KEY is not set")
	}
	if cfg.AirtelAPIKey == "" {
		logger.Warn().Msg("AIRTEL_API_KEY is not set")
	}

	var events notifier.Notifier = notifier.Nop{}
	if cfg.EventsEnabled() {
		kn, err := kafka.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic, cfg.KafkaUsername, cfg.KafkaPassword)
		if err != nil {
			return fmt.Errorf("construct kafka notifier: %w", err)
		}
		events = kn
		logger.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("donation events enabled")
	}
	defer func() {
		if err := events.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close notifier")
		}
	}()

	registry := payment.NewRegistryFromConfig(cfg, nil)
	donations := relay.New(relay.Options{
		Registry: registry,
		Notifier: events,
		Logger:   &logger,
	})

	app := handlers.NewApp(donations, logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Interface("payment_methods", registry.Methods()).
			Msgf("Server is running on http://localhost%s", server.Addr())
		serverErr <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
	return nil
}
