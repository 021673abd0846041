package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  ValidationError
		want string
	}{
		"with line": {
			err:  ValidationError{FilePath: "c.json", Line: 3, Column: 7, Message: "bad"},
			want: "c.json:3:7: bad",
		},
		"with field": {
			err:  ValidationError{FilePath: "c.json", Field: "ntfy.server", Message: "bad"},
			want: "c.json: field 'ntfy.server': bad",
		},
		"plain": {
			err:  ValidationError{FilePath: "c.json", Message: "bad"},
			want: "c.json: bad",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestValidateJSONSyntax(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content  string
		missing  bool
		wantErr  bool
		wantLine int
	}{
		"missing file":  {missing: true},
		"valid":         {content: `{"ntfy": {"topic": "x"}}`},
		"empty":         {content: "  \n", wantErr: true},
		"syntax error":  {content: "{\n\"a\": 1,\n}", wantErr: true, wantLine: 3},
		"array":         {content: `[1, 2]`, wantErr: true},
		"trailing junk": {content: `{"a": 1} x`, wantErr: true, wantLine: 1},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "config.json")
			if !tt.missing {
				writeTestFile(t, path, tt.content)
			}

			err := ValidateJSONSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, path, verr.FilePath)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, verr.Line)
			}
		})
	}
}

func TestOffsetToLineColumn(t *testing.T) {
	t.Parallel()

	data := []byte("ab\ncd\nef")
	line, col := offsetToLineColumn(data, 4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)

	line, col = offsetToLineColumn(data, 100)
	assert.Equal(t, 3, line)
	assert.Equal(t, 3, col)
}

func TestFieldPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ntfy.server", fieldPath("Config.Ntfy.Server"))
	assert.Equal(t, "terminal_notifier.enabled", fieldPath("Config.TerminalNotifier.Enabled"))
	assert.Equal(t, "notifications[stop].message_template", fieldPath("Config.Notifications[stop].MessageTemplate"))
}
