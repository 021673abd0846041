package shared

import (
	"io"
	"net/http"

	"github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/ariel-frischer/claude-notify/internal/logging"
	"github.com/ariel-frischer/claude-notify/internal/notify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// ConfigFlag is the persistent flag selecting the config file.
const ConfigFlag = "config"

// ConfigPath returns the --config value, or the default path.
func ConfigPath(cmd *cobra.Command) string {
	if f := cmd.Flag(ConfigFlag); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return config.DefaultPath()
}

// LoadConfig loads the configuration named by --config.
func LoadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path := ConfigPath(cmd)
	cfg, err := config.Load(path)
	return cfg, path, err
}

// NewLogger opens the file logger described by cfg. A log file that cannot
// be opened yields a no-op logger.
func NewLogger(cfg *config.Config) (zerolog.Logger, io.Closer) {
	logger, closer, err := logging.New(logging.Options{
		Enabled: cfg.Log.Enabled,
		Level:   cfg.Log.Level,
		Path:    cfg.Log.Path,
	})
	if err != nil {
		return zerolog.Nop(), closer
	}
	return logger, closer
}

// BuildRegistry creates the channel senders described by cfg. The local
// sender is omitted when terminal_notifier.enabled is false.
func BuildRegistry(cfg *config.Config, client *http.Client) notify.Registry {
	registry := notify.Registry{
		notify.ChannelNtfy: notify.NewNtfySender(cfg.NtfyOptions(), client),
	}
	if cfg.TerminalNotifier.Enabled {
		registry[notify.ChannelTerminalNotifier] = notify.NewLocalSender()
	}
	return registry
}
