// Package config loads eSahyog settings from .env, the environment and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds environment configuration
type Config struct {
	APIAddr     string        `envconfig:"API_ADDR" default:":3000"`
	SchemesFile string        `envconfig:"SCHEMES_FILE" default:"schemes.json"`
	Policy      string        `envconfig:"ELIGIBILITY_POLICY" default:"range"`
	ReplyMode   string        `envconfig:"REPLY_MODE" default:"twiml"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL"`
	SessionMax  int           `envconfig:"SESSION_MAX"`
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`

	TwilioAccountSID string `envconfig:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `envconfig:"TWILIO_AUTH_TOKEN"`
	TwilioFromNumber string `envconfig:"TWILIO_FROM_NUMBER"`
}

// Load reads an optional .env file and decodes the environment into Config.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment configuration: %w", err)
	}

	slog.Debug("environment variables loaded",
		"API_ADDR", cfg.APIAddr,
		"SCHEMES_FILE", cfg.SchemesFile,
		"ELIGIBILITY_POLICY", cfg.Policy,
		"REPLY_MODE", cfg.ReplyMode,
		"SESSION_TTL", cfg.SessionTTL,
		"SESSION_MAX", cfg.SessionMax,
		"LOG_LEVEL", cfg.LogLevel,
		"TWILIO_ACCOUNT_SID_SET", cfg.TwilioAccountSID != "",
		"TWILIO_AUTH_TOKEN_SET", cfg.TwilioAuthToken != "")
	return cfg, nil
}

// ApplyFlags parses command line arguments with cfg as defaults and returns
// the merged configuration.
func (cfg Config) ApplyFlags(name string, args []string) (Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&cfg.APIAddr, "api-addr", cfg.APIAddr, "API server address (overrides $API_ADDR)")
	fs.StringVar(&cfg.SchemesFile, "schemes", cfg.SchemesFile, "scheme catalog file, .json or .yaml (overrides $SCHEMES_FILE)")
	fs.StringVar(&cfg.Policy, "policy", cfg.Policy, "eligibility policy: range or occupation (overrides $ELIGIBILITY_POLICY)")
	fs.StringVar(&cfg.ReplyMode, "reply-mode", cfg.ReplyMode, "reply delivery: twiml or rest (overrides $REPLY_MODE)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "drop idle sessions after this duration, 0 keeps forever (overrides $SESSION_TTL)")
	fs.IntVar(&cfg.SessionMax, "session-max", cfg.SessionMax, "maximum stored sessions, 0 is unbounded (overrides $SESSION_MAX)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error (overrides $LOG_LEVEL)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	slog.Debug("flags parsed",
		"apiAddr", cfg.APIAddr,
		"schemes", cfg.SchemesFile,
		"policy", cfg.Policy,
		"replyMode", cfg.ReplyMode,
		"sessionTTL", cfg.SessionTTL,
		"sessionMax", cfg.SessionMax,
		"logLevel", cfg.LogLevel)
	return cfg, nil
}

// Validate checks values that do not depend on other packages.
func (cfg Config) Validate() error {
	var errs []error
	if strings.TrimSpace(cfg.SchemesFile) == "" {
		errs = append(errs, errors.New("schemes file must be set"))
	}
	if cfg.SessionTTL < 0 {
		errs = append(errs, fmt.Errorf("session TTL must not be negative, got %s", cfg.SessionTTL))
	}
	if cfg.SessionMax < 0 {
		errs = append(errs, fmt.Errorf("session max must not be negative, got %d", cfg.SessionMax))
	}
	if _, err := ParseLogLevel(cfg.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// ParseLogLevel converts a level name such as "debug" into a slog.Level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
