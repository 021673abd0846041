package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/claude-notify/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/claude-notify/internal/config"
	"github.com/spf13/cobra"
)

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the config file.

The value is validated against the key's type before the file is written.
Other keys in the file are preserved. Run 'claude-notify config keys' for the
list of keys.`,
		Example: `  # Publish to your own ntfy server
  claude-notify config set ntfy.server https://ntfy.example.com

  # Only notify locally when away from the terminal
  claude-notify config set channel_mode local_when_away

  # Turn on file logging
  claude-notify config set log.enabled true`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	filePath := shared.ConfigPath(cmd)

	if err := cfgpkg.SetConfigValue(filePath, key, value); err != nil {
		var unknown cfgpkg.ErrUnknownKey
		if errors.As(err, &unknown) {
			return shared.WithExitCode(shared.ExitInvalidArguments, formatUnknownKeyError(key))
		}
		return shared.WithExitCode(shared.ExitInvalidArguments, fmt.Errorf("setting config value: %w", err))
	}

	shown := value
	if key == "ntfy.token" {
		shown = "********"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s in %s\n", key, shown, filePath)
	return nil
}

// formatUnknownKeyError lists close matches for a mistyped key.
func formatUnknownKeyError(key string) error {
	var similar []string
	last := key[strings.LastIndex(key, ".")+1:]
	for _, k := range cfgpkg.SortedKeys() {
		if strings.Contains(k, last) {
			similar = append(similar, k)
		}
	}
	sort.Strings(similar)
	if len(similar) == 0 {
		return fmt.Errorf("unknown configuration key: %s (run 'claude-notify config keys')", key)
	}
	return fmt.Errorf("unknown configuration key: %s (did you mean %s?)", key, strings.Join(similar, ", "))
}
