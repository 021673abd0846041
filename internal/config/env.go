package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// Environment prefixes.
const (
	EnvPrefix     = "CLAUDE_NOTIFY_"
	NtfyEnvPrefix = "NTFY_"
)

// envAliases maps short variable names to nested config keys.
var envAliases = map[string]string{
	"log":         "log.enabled",
	"log_level":   "log.level",
	"log_path":    "log.path",
	"ntfy_server": "ntfy.server",
	"ntfy_topic":  "ntfy.topic",
	"ntfy_token":  "ntfy.token",
}

// boolKeys are config keys whose env values accept yes/no as well as
// true/false and 1/0.
var boolKeys = map[string]bool{
	"log.enabled":               true,
	"skip_when_active":          true,
	"terminal_notifier.enabled": true,
}

// envTransform converts an environment variable to a config key and value.
// Example: CLAUDE_NOTIFY_SKIP_WHEN_ACTIVE -> skip_when_active,
// CLAUDE_NOTIFY_TERMINAL_NOTIFIER__ENABLED -> terminal_notifier.enabled.
// Empty values are skipped so an exported-but-blank variable keeps the
// lower layer's value.
func envTransform(key, value string) (string, interface{}) {
	return envKeyValue(strings.TrimPrefix(key, EnvPrefix), value)
}

// ntfyEnvTransform maps NTFY_SERVER, NTFY_TOPIC and NTFY_TOKEN onto the
// ntfy section. Other NTFY_ variables are ignored.
func ntfyEnvTransform(key, value string) (string, interface{}) {
	name := strings.ToLower(strings.TrimPrefix(key, NtfyEnvPrefix))
	switch name {
	case "server", "topic", "token":
	default:
		return "", nil
	}
	if value == "" {
		return "", nil
	}
	return "ntfy." + name, value
}

func envKeyValue(name, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	name = strings.ToLower(name)
	configKey, ok := envAliases[name]
	if !ok {
		configKey = strings.ReplaceAll(name, "__", ".")
	}
	if boolKeys[configKey] {
		return configKey, parseBool(value)
	}
	return configKey, value
}

// parseBool accepts true/1/yes/on, case-insensitively.
func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// readDotenv reads the secrets file at path into config keys. The process
// environment is not modified. A missing file yields no values.
func readDotenv(path string) (map[string]interface{}, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	values := make(map[string]interface{}, len(vars))
	for key, value := range vars {
		var (
			configKey string
			v         interface{}
		)
		switch {
		case strings.HasPrefix(key, EnvPrefix):
			configKey, v = envTransform(key, value)
		case strings.HasPrefix(key, NtfyEnvPrefix):
			configKey, v = ntfyEnvTransform(key, value)
		}
		if configKey != "" {
			values[configKey] = v
		}
	}
	return values, nil
}
