package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestInit_WithValidConfig_Succeeds(t *testing.T) {
	t.Setenv("PORTFOLITOK_MAIL_RELAY", "https://relay.example.com/send")

	var buf bytes.Buffer
	cfg, err := Init(&buf, nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Mail.Relay != "https://relay.example.com/send" {
		t.Errorf("Mail.Relay = %q, want the env value", cfg.Mail.Relay)
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want the 30m default", cfg.Session.TTL)
	}

	// the global logger must emit JSON after Init
	slog.Default().Info("init test")
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON log output, got error: %v\nraw: %s", err, buf.String())
	}
	if entry["msg"] != "init test" {
		t.Errorf("msg = %q, want %q", entry["msg"], "init test")
	}
}

func TestInit_WithMissingRelay_ReturnsError(t *testing.T) {
	t.Setenv("PORTFOLITOK_MAIL_RELAY", "")

	var buf bytes.Buffer
	cfg, err := Init(&buf, nil)
	if err == nil {
		t.Fatal("expected error for missing mail relay, got nil")
	}
	if cfg != nil {
		t.Error("expected nil config on error")
	}
}

func TestInit_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("PORTFOLITOK_MAIL_RELAY", "https://relay.example.com/send")
	t.Setenv("PORTFOLITOK_SERVER_PORT", "9000")

	var buf bytes.Buffer
	cfg, err := Init(&buf, []string{"--server.port", "9001"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Server.Port != "9001" {
		t.Errorf("Server.Port = %q, want the flag value 9001", cfg.Server.Port)
	}
}

func TestRun_InvalidConfig_ReturnsError(t *testing.T) {
	t.Setenv("PORTFOLITOK_MAIL_RELAY", "")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"serve"}); err == nil {
		t.Fatal("Run with an invalid config should return an error")
	}
}

func TestRun_RefusesPrivateRelayURL(t *testing.T) {
	// the outbound guard must refuse relays pointing into private space
	t.Setenv("PORTFOLITOK_MAIL_RELAY", "https://169.254.169.254/send")

	var buf bytes.Buffer
	if err := Run(&buf, []string{"serve"}); err == nil {
		t.Fatal("Run with a link-local relay URL should return an error")
	}
}

func TestRunHealthcheck_NoServer_ReturnsError(t *testing.T) {
	// nothing listens on this port
	if err := runHealthcheck("1"); err == nil {
		t.Fatal("healthcheck against a dead port should fail")
	}
}
