package common

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "info", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: "warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("checked", "format", "tabular")
	assert.Contains(t, buf.String(), `"format":"tabular"`)
	assert.NotContains(t, buf.String(), "hidden")

	_, err = NewLogger(&buf, slog.LevelInfo, "xml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, slog.LevelInfo, "json")
	require.NoError(t, err)

	prev := slog.Default()
	slog.SetDefault(logger)
	t.Cleanup(func() { slog.SetDefault(prev) })

	LogInfo("Wrote batch results", Fields{"path": "out.xlsx", "documents": 2})
	LogDebug("hidden", nil)

	line := buf.String()
	assert.Contains(t, line, `"msg":"Wrote batch results"`)
	assert.Contains(t, line, `"documents":2,"path":"out.xlsx"`)
	assert.NotContains(t, line, "hidden")
}

func TestUserError(t *testing.T) {
	base := errors.New("open foo.txt: no such file")
	err := NewUserError("could not read document", base)

	assert.Equal(t, "could not read document: open foo.txt: no such file", err.Error())
	assert.ErrorIs(t, err, base)

	msg, ok := IsUserError(err)
	assert.True(t, ok)
	assert.Equal(t, "could not read document", msg)

	_, ok = IsUserError(base)
	assert.False(t, ok)

	assert.Equal(t, "plain", (&UserError{UserMessage: "plain"}).Error())
}

func TestValidatePattern(t *testing.T) {
	assert.NoError(t, ValidatePattern(`國籍：\s*(\S+)`, 1))
	assert.Error(t, ValidatePattern(`國籍：\s*\S+`, 1))
	assert.Error(t, ValidatePattern(`(unclosed`, 1))
}
