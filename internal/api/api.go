// Package api provides the HTTP server for eSahyog.
//
// It exposes the Twilio WhatsApp webhook that drives the intake conversation,
// a static landing endpoint, and a JSON health check.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/BTreeMap/eSahyog/internal/flow"
	"github.com/BTreeMap/eSahyog/internal/messaging"
	"github.com/BTreeMap/eSahyog/internal/models"
)

// Default configuration constants
const (
	// DefaultAddr matches the port of the deployed bot.
	DefaultAddr = ":3000"
	// WebhookPath receives Twilio inbound message webhooks.
	WebhookPath = "/bot"
	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = 10 * time.Second
	// DefaultReadHeaderTimeout bounds slow clients.
	DefaultReadHeaderTimeout = 10 * time.Second
)

// ReplyMode selects how webhook replies reach the user.
type ReplyMode string

const (
	// ReplyModeTwiML returns the reply inline in the webhook response.
	ReplyModeTwiML ReplyMode = "twiml"
	// ReplyModeREST sends the reply through the Twilio REST API.
	ReplyModeREST ReplyMode = "rest"
)

// ParseReplyMode converts a configuration value into a ReplyMode.
func ParseReplyMode(s string) (ReplyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ReplyModeTwiML):
		return ReplyModeTwiML, nil
	case string(ReplyModeREST):
		return ReplyModeREST, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", models.ErrInvalidReplyMode, s, ReplyModeTwiML, ReplyModeREST)
	}
}

// Opts holds configuration options for the API server.
type Opts struct {
	Addr       string
	ReplyMode  ReplyMode
	MsgService messaging.Service
}

// Option defines a configuration option for the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithReplyMode sets how replies are delivered.
func WithReplyMode(mode ReplyMode) Option {
	return func(o *Opts) { o.ReplyMode = mode }
}

// WithMessagingService sets the outbound service used in REST reply mode.
func WithMessagingService(svc messaging.Service) Option {
	return func(o *Opts) { o.MsgService = svc }
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	intake     *flow.Intake
	msgService messaging.Service
	replyMode  ReplyMode
	addr       string
}

// NewServer creates a Server for intake.
func NewServer(intake *flow.Intake, opts ...Option) (*Server, error) {
	cfg := Opts{Addr: DefaultAddr, ReplyMode: ReplyModeTwiML}
	for _, opt := range opts {
		opt(&cfg)
	}
	if intake == nil {
		return nil, errors.New("intake is required")
	}
	if cfg.ReplyMode == ReplyModeREST && cfg.MsgService == nil {
		return nil, fmt.Errorf("reply mode %q requires a messaging service", ReplyModeREST)
	}
	slog.Debug("api.NewServer: server configured", "addr", cfg.Addr, "reply_mode", cfg.ReplyMode)
	return &Server{
		intake:     intake,
		msgService: cfg.MsgService,
		replyMode:  cfg.ReplyMode,
		addr:       cfg.Addr,
	}, nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.homeHandler)
	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc(WebhookPath, s.webhookHandler)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("eSahyog API listening", "addr", s.addr, "webhook", WebhookPath, "reply_mode", s.replyMode)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server failed: %w", err)
	case <-ctx.Done():
		slog.Info("api.Run: shutting down", "reason", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("api server shutdown failed: %w", err)
	}
	if s.msgService != nil {
		if err := s.msgService.Stop(); err != nil {
			slog.Warn("api.Run: failed to stop messaging service", "error", err)
		}
	}
	return nil
}
