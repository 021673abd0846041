package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a settable configuration key.
type ConfigKeySchema struct {
	Path          string          // Dotted key path (e.g., "ntfy.topic")
	Type          ConfigValueType // Expected value type for validation
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Min, Max      int             // Inclusive bounds for TypeInt (Max 0 means unbounded)
}

// KnownKeys is the registry of keys accepted by `claude-notify config set`.
// Per-type notifications entries are edited in the file directly.
var KnownKeys = map[string]ConfigKeySchema{
	"ntfy.server": {
		Path:        "ntfy.server",
		Type:        TypeString,
		Description: "ntfy server base URL",
	},
	"ntfy.topic": {
		Path:        "ntfy.topic",
		Type:        TypeString,
		Description: "ntfy topic to publish to",
	},
	"ntfy.token": {
		Path:        "ntfy.token",
		Type:        TypeString,
		Description: "ntfy access token (sent as a bearer token)",
	},
	"terminal_notifier.enabled": {
		Path:        "terminal_notifier.enabled",
		Type:        TypeBool,
		Description: "Enable the local desktop notification channel",
	},
	"log.enabled": {
		Path:        "log.enabled",
		Type:        TypeBool,
		Description: "Write JSON log lines to the log file",
	},
	"log.level": {
		Path:          "log.level",
		Type:          TypeEnum,
		AllowedValues: []string{"debug", "info", "warn", "error"},
		Description:   "Minimum log level",
	},
	"log.path": {
		Path:        "log.path",
		Type:        TypeString,
		Description: "Log file path (default ~/.config/claude-notify/notify.log)",
	},
	"skip_when_active": {
		Path:        "skip_when_active",
		Type:        TypeBool,
		Description: "Suppress notifications while the launching terminal is focused",
	},
	"channel_mode": {
		Path:          "channel_mode",
		Type:          TypeEnum,
		AllowedValues: []string{"all", "local_when_away"},
		Description:   "Channel selection when the screen is unlocked",
	},
	"stop_policy": {
		Path:          "stop_policy",
		Type:          TypeEnum,
		AllowedValues: []string{StopPolicyPipeline, StopPolicyForceNtfy},
		Description:   "Routing for Stop events",
	},
	"timeout_seconds": {
		Path:        "timeout_seconds",
		Type:        TypeInt,
		Min:         1,
		Max:         120,
		Description: "Per-channel send timeout in seconds",
	},
}

// SortedKeys returns the KnownKeys paths in order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// ParsedValue represents a configuration value after validation.
type ParsedValue struct {
	Raw    string      // Original string input from user
	Parsed interface{} // Value converted to correct type
	Type   ConfigValueType
}

// ValidateValue validates a value against the schema for a given key.
func ValidateValue(key, value string) (ParsedValue, error) {
	schema, err := GetKeySchema(key)
	if err != nil {
		return ParsedValue{}, err
	}
	return validateAgainstSchema(schema, value)
}

func validateAgainstSchema(schema ConfigKeySchema, value string) (ParsedValue, error) {
	switch schema.Type {
	case TypeBool:
		return parseBoolValue(value)
	case TypeInt:
		return parseIntValue(schema, value)
	case TypeEnum:
		return parseEnumValue(schema, value)
	case TypeString:
		return ParsedValue{Raw: value, Parsed: value, Type: TypeString}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unsupported type: %v", schema.Type)
	}
}

func parseBoolValue(value string) (ParsedValue, error) {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return ParsedValue{Raw: value, Parsed: true, Type: TypeBool}, nil
	case "false", "no", "0":
		return ParsedValue{Raw: value, Parsed: false, Type: TypeBool}, nil
	default:
		return ParsedValue{}, fmt.Errorf("invalid boolean: %q (expected true or false)", value)
	}
}

func parseIntValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return ParsedValue{}, fmt.Errorf("invalid integer: %q", value)
	}
	if n < schema.Min || (schema.Max > 0 && n > schema.Max) {
		return ParsedValue{}, fmt.Errorf("%d out of range [%d, %d]", n, schema.Min, schema.Max)
	}
	return ParsedValue{Raw: value, Parsed: n, Type: TypeInt}, nil
}

func parseEnumValue(schema ConfigKeySchema, value string) (ParsedValue, error) {
	for _, allowed := range schema.AllowedValues {
		if value == allowed {
			return ParsedValue{Raw: value, Parsed: value, Type: TypeEnum}, nil
		}
	}
	return ParsedValue{}, fmt.Errorf(
		"invalid value: %q (valid options: %s)",
		value,
		strings.Join(schema.AllowedValues, ", "),
	)
}
