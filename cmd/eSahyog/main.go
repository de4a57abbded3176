package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/BTreeMap/eSahyog/internal/api"
	"github.com/BTreeMap/eSahyog/internal/catalog"
	"github.com/BTreeMap/eSahyog/internal/config"
	"github.com/BTreeMap/eSahyog/internal/eligibility"
	"github.com/BTreeMap/eSahyog/internal/flow"
	"github.com/BTreeMap/eSahyog/internal/messaging"
	"github.com/BTreeMap/eSahyog/internal/store"
	"github.com/BTreeMap/eSahyog/internal/twiliowhatsapp"
)

func main() {
	// Initialize structured logger; the level is raised once config is known
	level := initializeLogger()

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logLevel, _ := config.ParseLogLevel(cfg.LogLevel)
	level.Set(logLevel)

	policy, err := eligibility.ParsePolicy(cfg.Policy)
	if err != nil {
		slog.Error("Invalid eligibility policy", "error", err)
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.SchemesFile)
	if err != nil {
		slog.Error("Failed to load scheme catalog", "error", err, "path", cfg.SchemesFile)
		os.Exit(1)
	}
	slog.Info("Scheme catalog loaded", "path", cfg.SchemesFile, "schemes", cat.Len())

	// Build module options
	storeOpts := buildStoreOptions(cfg)
	apiOpts, err := buildAPIOptions(cfg)
	if err != nil {
		slog.Error("Failed to configure API server", "error", err)
		os.Exit(1)
	}

	intake := flow.NewIntake(store.NewInMemoryStore(storeOpts...), cat, policy)
	srv, err := api.NewServer(intake, apiOpts...)
	if err != nil {
		slog.Error("Failed to create API server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Bootstrapping eSahyog", "policy", policy, "reply_mode", cfg.ReplyMode, "api_addr", cfg.APIAddr)
	if err := srv.Run(ctx); err != nil {
		slog.Error("eSahyog failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("eSahyog exited successfully")
}

// initializeLogger sets up structured logging at info level and returns the
// level handle so it can be adjusted after configuration is loaded.
func initializeLogger() *slog.LevelVar {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return level
}

// loadConfig merges .env, environment and flags, then validates the result.
func loadConfig(args []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err = cfg.ApplyFlags("eSahyog", args)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// buildStoreOptions constructs session store options
func buildStoreOptions(cfg config.Config) []store.Option {
	var storeOpts []store.Option
	if cfg.SessionTTL > 0 {
		storeOpts = append(storeOpts, store.WithTTL(cfg.SessionTTL))
	}
	if cfg.SessionMax > 0 {
		storeOpts = append(storeOpts, store.WithMaxSessions(cfg.SessionMax))
	}
	if len(storeOpts) == 0 {
		slog.Debug("No session eviction configured, sessions are kept until restart")
	}
	return storeOpts
}

// buildAPIOptions constructs API server options. REST reply mode needs a
// working Twilio client.
func buildAPIOptions(cfg config.Config) ([]api.Option, error) {
	mode, err := api.ParseReplyMode(cfg.ReplyMode)
	if err != nil {
		return nil, err
	}

	var apiOpts []api.Option
	if cfg.APIAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(cfg.APIAddr))
	}
	apiOpts = append(apiOpts, api.WithReplyMode(mode))

	if mode == api.ReplyModeREST {
		client, err := twiliowhatsapp.NewClient(
			twiliowhatsapp.WithAccountSID(cfg.TwilioAccountSID),
			twiliowhatsapp.WithAuthToken(cfg.TwilioAuthToken),
			twiliowhatsapp.WithFromWhats(cfg.TwilioFromNumber),
		)
		if err != nil {
			return nil, fmt.Errorf("REST reply mode: %w", err)
		}
		apiOpts = append(apiOpts, api.WithMessagingService(messaging.NewTwilioService(client)))
	}
	return apiOpts, nil
}
