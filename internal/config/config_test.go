package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"API_ADDR", "SCHEMES_FILE", "ELIGIBILITY_POLICY", "REPLY_MODE", "SESSION_TTL",
		"SESSION_MAX", "LOG_LEVEL", "TWILIO_ACCOUNT_SID", "TWILIO_AUTH_TOKEN", "TWILIO_FROM_NUMBER",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIAddr != ":3000" || cfg.SchemesFile != "schemes.json" || cfg.Policy != "range" ||
		cfg.ReplyMode != "twiml" || cfg.LogLevel != "info" || cfg.SessionTTL != 0 || cfg.SessionMax != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_ADDR", ":8080")
	t.Setenv("ELIGIBILITY_POLICY", "occupation")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_MAX", "1000")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIAddr != ":8080" || cfg.Policy != "occupation" || cfg.SessionTTL != 30*time.Minute || cfg.SessionMax != 1000 {
		t.Errorf("environment not applied: %+v", cfg)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("SCHEMES_FILE=/data/schemes.yaml\nREPLY_MODE=rest\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	// godotenv sets process variables; drop them when the test ends.
	t.Cleanup(func() {
		os.Unsetenv("SCHEMES_FILE")
		os.Unsetenv("REPLY_MODE")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SchemesFile != "/data/schemes.yaml" || cfg.ReplyMode != "rest" {
		t.Errorf(".env values not applied: %+v", cfg)
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_MAX", "lots")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for non-numeric SESSION_MAX")
	}
}

func TestApplyFlags(t *testing.T) {
	base := Config{APIAddr: ":3000", SchemesFile: "schemes.json", Policy: "range", ReplyMode: "twiml", LogLevel: "info"}

	cfg, err := base.ApplyFlags("test", []string{"-api-addr", ":9000", "-policy", "occupation", "-session-ttl", "1h", "-log-level", "debug"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.APIAddr != ":9000" || cfg.Policy != "occupation" || cfg.SessionTTL != time.Hour || cfg.LogLevel != "debug" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.SchemesFile != "schemes.json" || cfg.ReplyMode != "twiml" {
		t.Errorf("unset flags should keep defaults: %+v", cfg)
	}
	if base.APIAddr != ":3000" {
		t.Error("ApplyFlags modified the receiver")
	}

	if _, err := base.ApplyFlags("test", []string{"-unknown"}); err == nil {
		t.Error("expected error for unknown flag")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{SchemesFile: "schemes.json", LogLevel: "warn"}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	tests := map[string]Config{
		"empty schemes": {SchemesFile: " ", LogLevel: "info"},
		"negative ttl":  {SchemesFile: "s.json", LogLevel: "info", SessionTTL: -time.Second},
		"negative max":  {SchemesFile: "s.json", LogLevel: "info", SessionMax: -1},
		"bad log level": {SchemesFile: "s.json", LogLevel: "loud"},
	}
	for name, cfg := range tests {
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, " warn ": slog.LevelWarn, "error": slog.LevelError} {
		got, err := ParseLogLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLogLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}
