package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func readJSONFile(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestParseKeyPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    []string
		wantErr bool
	}{
		"single":        {input: "channel_mode", want: []string{"channel_mode"}},
		"nested":        {input: "ntfy.topic", want: []string{"ntfy", "topic"}},
		"empty":         {input: "", wantErr: true},
		"empty segment": {input: "ntfy..topic", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseKeyPath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetAndGetNestedValue(t *testing.T) {
	t.Parallel()

	root := map[string]interface{}{"ntfy": "not an object"}
	SetNestedValue(root, []string{"ntfy", "topic"}, "t")
	SetNestedValue(root, []string{"log", "enabled"}, true)

	v, ok := GetNestedValue(root, []string{"ntfy", "topic"})
	require.True(t, ok)
	assert.Equal(t, "t", v)

	v, ok = GetNestedValue(root, []string{"log", "enabled"})
	require.True(t, ok)
	assert.Equal(t, true, v)

	_, ok = GetNestedValue(root, []string{"log", "level"})
	assert.False(t, ok)
	_, ok = GetNestedValue(root, []string{"ntfy", "topic", "deeper"})
	assert.False(t, ok)
}

func TestSetConfigValue_CreatesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.json")
	require.NoError(t, SetConfigValue(path, "ntfy.topic", "phone"))
	require.NoError(t, SetConfigValue(path, "timeout_seconds", "15"))

	got := readJSONFile(t, path)
	assert.Equal(t, map[string]interface{}{"topic": "phone"}, got["ntfy"])
	assert.Equal(t, float64(15), got["timeout_seconds"])

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetConfigValue_PreservesOtherKeys(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	writeTestFile(t, path, `{"ntfy": {"server": "https://x", "topic": "old"}, "custom": 1}`)

	require.NoError(t, SetConfigValue(path, "ntfy.topic", "new"))

	got := readJSONFile(t, path)
	assert.Equal(t, map[string]interface{}{"server": "https://x", "topic": "new"}, got["ntfy"])
	assert.Equal(t, float64(1), got["custom"])
}

func TestSetConfigValue_RejectsInvalid(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")

	err := SetConfigValue(path, "channel_mode", "sometimes")
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "invalid value must not create the file")

	writeTestFile(t, path, "{broken")
	assert.Error(t, SetConfigValue(path, "ntfy.topic", "x"))
}

func TestInitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, InitFile(path, false))

	got := readJSONFile(t, path)
	assert.Equal(t, "all", got["channel_mode"])
	notifications, ok := got["notifications"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, notifications, "idle_prompt")
	assert.Contains(t, notifications, StopTypeName)

	err := InitFile(path, false)
	assert.True(t, errors.Is(err, ErrConfigExists))
	assert.NoError(t, InitFile(path, true))
}
