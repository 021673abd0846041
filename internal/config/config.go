// Package config loads the claude-notify configuration.
//
// Sources are layered, later ones winning:
//
//  1. built-in defaults (GetDefaults)
//  2. ~/.config/claude-notify/config.json, or the path given with --config
//  3. ~/.config/claude-notify/.env, read without modifying the process environment
//  4. process environment: CLAUDE_NOTIFY_* and NTFY_SERVER / NTFY_TOPIC / NTFY_TOKEN
//
// Resolution happens once at startup; the resulting Config is immutable for
// the rest of the invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/ariel-frischer/claude-notify/internal/policy"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Stop policies.
const (
	// StopPolicyPipeline routes Stop through the same skip and channel
	// selection as Notification.
	StopPolicyPipeline = "pipeline"
	// StopPolicyForceNtfy always sends Stop to ntfy only, ignoring state.
	StopPolicyForceNtfy = "force_ntfy"
)

// Config is the resolved claude-notify configuration.
type Config struct {
	Ntfy             NtfyConfig                        `koanf:"ntfy" json:"ntfy" yaml:"ntfy"`
	TerminalNotifier TerminalNotifierConfig            `koanf:"terminal_notifier" json:"terminal_notifier" yaml:"terminal_notifier"`
	Log              LogConfig                         `koanf:"log" json:"log" yaml:"log"`
	SkipWhenActive   bool                              `koanf:"skip_when_active" json:"skip_when_active" yaml:"skip_when_active"`
	ChannelMode      policy.ChannelMode                `koanf:"channel_mode" json:"channel_mode" yaml:"channel_mode" validate:"oneof=all local_when_away"`
	StopPolicy       string                            `koanf:"stop_policy" json:"stop_policy" yaml:"stop_policy" validate:"oneof=pipeline force_ntfy"`
	TimeoutSeconds   int                               `koanf:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds" validate:"min=1,max=120"`
	Notifications    map[string]NotificationTypeConfig `koanf:"notifications" json:"notifications,omitempty" yaml:"notifications,omitempty" validate:"dive"`
}

// NtfyConfig configures the ntfy push channel.
type NtfyConfig struct {
	Server string `koanf:"server" json:"server" yaml:"server" validate:"omitempty,url"`
	Topic  string `koanf:"topic" json:"topic" yaml:"topic"`
	Token  string `koanf:"token" json:"token,omitempty" yaml:"token,omitempty"`
}

// TerminalNotifierConfig configures the local notification channel.
type TerminalNotifierConfig struct {
	Enabled bool `koanf:"enabled" json:"enabled" yaml:"enabled"`
}

// LogConfig configures file logging.
type LogConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Level   string `koanf:"level" json:"level" yaml:"level" validate:"oneof=debug info warn warning error"`
	Path    string `koanf:"path" json:"path,omitempty" yaml:"path,omitempty"`
}

// NotificationTypeConfig holds the settings for one event type.
type NotificationTypeConfig struct {
	Enabled         bool             `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Title           string           `koanf:"title" json:"title" yaml:"title"`
	MessageTemplate string           `koanf:"message_template" json:"message_template" yaml:"message_template"`
	Channels        []notify.Channel `koanf:"channels" json:"channels" yaml:"channels" validate:"dive,oneof=terminal-notifier ntfy"`
	Priority        int              `koanf:"priority" json:"priority,omitempty" yaml:"priority,omitempty" validate:"omitempty,min=1,max=5"`
}

// DefaultPath returns ~/.config/claude-notify/config.json.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Dir returns the claude-notify configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "claude-notify")
}

// Defaults returns the configuration built from defaults only.
func Defaults() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(GetDefaults(), "."), nil)

	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}

// Load resolves the configuration. An empty configPath uses DefaultPath().
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	return load(configPath, true)
}

// LoadWithoutFile resolves the configuration from the defaults, the .env
// file next to configPath and the environment, leaving the config file
// itself out. The hook uses it when the config file is broken so that
// environment settings such as NTFY_TOPIC still apply.
func LoadWithoutFile(configPath string) (*Config, error) {
	return load(configPath, false)
}

func load(configPath string, withFile bool) (*Config, error) {
	if configPath == "" {
		configPath = DefaultPath()
	}

	k := koanf.New(".")

	// Apply defaults first
	if err := k.Load(confmap.Provider(GetDefaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Load config file if it exists
	if _, err := os.Stat(configPath); withFile && err == nil {
		if err := ValidateJSONSyntax(configPath); err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(configPath), json.Parser()); err != nil {
			return nil, &ValidationError{FilePath: configPath, Message: err.Error()}
		}
	}

	// Secrets file next to the config file
	dotenvPath := filepath.Join(filepath.Dir(configPath), ".env")
	values, err := readDotenv(dotenvPath)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", dotenvPath, err)
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	if err := k.Load(env.ProviderWithValue(NtfyEnvPrefix, ".", ntfyEnvTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	fillTypeDefaults(k)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if err := validateStruct(&cfg, configPath); err != nil {
		return nil, err
	}

	cfg.Log.Path = expandHomePath(cfg.Log.Path)

	return &cfg, nil
}

// fillTypeDefaults completes partial notifications entries with the
// built-in defaults for that event type, so {"channels": ["ntfy"]} alone
// keeps the entry enabled with the default title and template.
func fillTypeDefaults(k *koanf.Koanf) {
	for _, name := range k.MapKeys("notifications") {
		def := defaultTypeFor(name)
		prefix := "notifications." + name + "."
		fields := map[string]interface{}{
			"enabled":          def.Enabled,
			"title":            def.Title,
			"message_template": def.MessageTemplate,
			"channels":         channelStrings(def.Channels),
		}
		for key, value := range fields {
			if !k.Exists(prefix + key) {
				_ = k.Set(prefix+key, value)
			}
		}
	}
}

func channelStrings(channels []notify.Channel) []string {
	out := make([]string, len(channels))
	for i, ch := range channels {
		out[i] = string(ch)
	}
	return out
}

// TypeConfig returns the config for the given notifications key, or
// fallback when the key is absent.
func (c *Config) TypeConfig(name string, fallback NotificationTypeConfig) NotificationTypeConfig {
	if tc, ok := c.Notifications[name]; ok {
		return tc
	}
	return fallback
}

// NtfyOptions returns the resolved ntfy destination.
func (c *Config) NtfyOptions() notify.NtfyOptions {
	return notify.NtfyOptions{
		Server: c.Ntfy.Server,
		Topic:  c.Ntfy.Topic,
		Token:  c.Ntfy.Token,
	}
}

// SendTimeout returns the per-channel send timeout.
func (c *Config) SendTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return notify.DefaultSendTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Redacted returns a copy with the ntfy token masked, for display.
func (c *Config) Redacted() *Config {
	cp := *c
	if cp.Ntfy.Token != "" {
		cp.Ntfy.Token = "********"
	}
	return &cp
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

// validate is shared; validator caches struct metadata.
var validate = validator.New()

func validateStruct(cfg *Config, filePath string) error {
	if err := validate.Struct(cfg); err != nil {
		return newValidationError(err, filePath)
	}
	return nil
}
