package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// setRequiredEnv sets the environment variables without which Load fails.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORTFOLITOK_MAIL_RELAY", "https://relay.example.com/send")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Game.Delay != time.Second {
		t.Errorf("Game.Delay = %v, want %v", cfg.Game.Delay, time.Second)
	}
	if cfg.Game.Flawless != 20 {
		t.Errorf("Game.Flawless = %d, want 20", cfg.Game.Flawless)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 30*time.Minute)
	}
	if cfg.RateLimit.General != 120 {
		t.Errorf("RateLimit.General = %d, want 120", cfg.RateLimit.General)
	}
	if cfg.RateLimit.Dispatch != 5 {
		t.Errorf("RateLimit.Dispatch = %d, want 5", cfg.RateLimit.Dispatch)
	}
	if cfg.Captcha.Verify != "" {
		t.Errorf("Captcha.Verify = %q, want empty", cfg.Captcha.Verify)
	}
	if cfg.Mail.Relay != "https://relay.example.com/send" {
		t.Errorf("Mail.Relay = %q, want relay from env", cfg.Mail.Relay)
	}
}

func TestLoad_MissingRelayFails(t *testing.T) {
	_, err := Load(nil)
	if err == nil {
		t.Fatal("expected error when mail.relay is unset")
	}
	if !strings.Contains(err.Error(), "Mail.Relay") {
		t.Errorf("error %q does not mention Mail.Relay", err.Error())
	}
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORTFOLITOK_SERVER_PORT", "9090")
	t.Setenv("PORTFOLITOK_GAME_DELAY", "250ms")
	t.Setenv("PORTFOLITOK_RATELIMIT_GENERAL", "60")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "9090")
	}
	if cfg.Game.Delay != 250*time.Millisecond {
		t.Errorf("Game.Delay = %v, want 250ms", cfg.Game.Delay)
	}
	if cfg.RateLimit.General != 60 {
		t.Errorf("RateLimit.General = %d, want 60", cfg.RateLimit.General)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORTFOLITOK_SERVER_PORT", "9090")

	cfg, err := Load([]string{"--server.port", "7070"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "7070")
	}
}

func TestLoad_SourceLayering(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORTFOLITOK_RATELIMIT_DISPATCH", "9")

	cfg, err := Load([]string{"--server.port", "7070"})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	// Untouched key keeps its default, env rewrites its key into the
	// nested form, and the flag wins over everything.
	if cfg.RateLimit.General != 120 {
		t.Errorf("RateLimit.General = %d, want default 120", cfg.RateLimit.General)
	}
	if cfg.RateLimit.Dispatch != 9 {
		t.Errorf("RateLimit.Dispatch = %d, want 9 from env", cfg.RateLimit.Dispatch)
	}
	if cfg.Mail.Relay != "https://relay.example.com/send" {
		t.Errorf("Mail.Relay = %q, want relay from env", cfg.Mail.Relay)
	}
	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, want %q from flag", cfg.Server.Port, "7070")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	setRequiredEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: \"3000\"\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "3000")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestLoad_MissingConfigFileFails(t *testing.T) {
	setRequiredEnv(t)

	_, err := Load([]string{"--config", "/nonexistent/config.yaml"})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoad_InvalidLogLevelFails(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORTFOLITOK_LOG_LEVEL", "loud")

	_, err := Load(nil)
	if err == nil {
		t.Fatal("expected error for invalid log level")
	}
}

func TestLoad_InvalidRelayURLFails(t *testing.T) {
	t.Setenv("PORTFOLITOK_MAIL_RELAY", "not a url")

	_, err := Load(nil)
	if err == nil {
		t.Fatal("expected error for malformed relay URL")
	}
}
