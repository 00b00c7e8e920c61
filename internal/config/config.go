// Package config loads the service configuration.
//
// Sources are layered, later ones winning: built-in defaults, an
// optional YAML file (--config), PORTFOLITOK_* environment variables,
// and command-line flags. The result is read once at startup and
// treated as immutable.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "PORTFOLITOK_"

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `koanf:"port" validate:"required"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level string `koanf:"level" validate:"required,oneof=debug info warn error"`
}

// CORSConfig holds the CORS settings for the SPA origin.
type CORSConfig struct {
	Origin string `koanf:"origin" validate:"required"`
}

// MailConfig holds the outbound mail relay settings. The relay
// receives {subject, body} POSTs and owns the recipient address.
type MailConfig struct {
	Relay string `koanf:"relay" validate:"required,url"`
}

// CaptchaConfig holds the optional bot-challenge verification settings.
// An empty Verify URL disables the captcha gate entirely.
type CaptchaConfig struct {
	Verify string `koanf:"verify" validate:"omitempty,url"`
}

// GameConfig holds the memory-match game tuning.
type GameConfig struct {
	// Delay is how long mismatched cards stay revealed before re-hiding.
	Delay time.Duration `koanf:"delay" validate:"required"`
	// Flawless is the move count at or under which a win is flagged
	// as flawless for the celebratory message.
	Flawless int `koanf:"flawless" validate:"gt=0"`
}

// SessionConfig holds the in-memory session lifecycle settings.
type SessionConfig struct {
	TTL   time.Duration `koanf:"ttl" validate:"required"`
	Sweep time.Duration `koanf:"sweep" validate:"required"`
}

// RateLimitConfig holds the per-IP rate limits in requests per minute.
// Dispatch applies to endpoints that send mail.
type RateLimitConfig struct {
	General  int `koanf:"general" validate:"gt=0"`
	Dispatch int `koanf:"dispatch" validate:"gt=0"`
}

// ContentConfig holds the optional portfolio content override.
type ContentConfig struct {
	File string `koanf:"file"`
}

// OutboundConfig holds settings shared by the outbound HTTP clients.
type OutboundConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"required"`
}

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	CORS      CORSConfig      `koanf:"cors"`
	Mail      MailConfig      `koanf:"mail"`
	Captcha   CaptchaConfig   `koanf:"captcha"`
	Game      GameConfig      `koanf:"game"`
	Session   SessionConfig   `koanf:"session"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Content   ContentConfig   `koanf:"content"`
	Outbound  OutboundConfig  `koanf:"outbound"`
}

// defaults are the built-in values, overridable by file, env and flags.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":        "8080",
		"log.level":          "info",
		"cors.origin":        "http://localhost:3000",
		"mail.relay":         "",
		"captcha.verify":     "",
		"game.delay":         "1s",
		"game.flawless":      20,
		"session.ttl":        "30m",
		"session.sweep":      "5m",
		"ratelimit.general":  120,
		"ratelimit.dispatch": 5,
		"content.file":       "",
		"outbound.timeout":   "10s",
	}
}

// Flags returns the pflag set recognized by Load.
// Flag names double as koanf keys, so only a curated subset of the
// configuration is exposed on the command line.
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("portfolitok", pflag.ContinueOnError)
	fs.String("config", "", "path to a YAML configuration file")
	fs.String("server.port", "", "HTTP listen port")
	fs.String("log.level", "", "log level (debug|info|warn|error)")
	fs.String("content.file", "", "path to a YAML portfolio content override")
	return fs
}

// Load builds the Config from defaults, the optional YAML file, the
// environment and args. It returns an error on unparsable input or
// when validation of the merged result fails.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Optional YAML file. The path itself may come from the flag only;
	// a missing file is an error because the operator asked for it.
	if cfgFile, _ := fs.GetString("config"); cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", cfgFile, err)
		}
	}

	// PORTFOLITOK_SERVER_PORT -> server.port
	err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Flags win over everything; posflag skips flags left at their
	// defaults when the key is already set.
	if err := k.Load(posflag.Provider(fs, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks the merged configuration and reports every failing
// field at once.
func validate(cfg *Config) error {
	v := validator.New()
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config validation failed: %w", err)
	}

	var fields []string
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
}
