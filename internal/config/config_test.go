package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inoxlang/ctxcompletion/internal/utils"
)

func TestDefault(t *testing.T) {
	config := Default()
	assert.NoError(t, config.Validate())
	assert.Equal(t, zerolog.InfoLevel, config.Level())
	assert.Equal(t, DEFAULT_MAX_ITEMS, config.MaxItems)
	assert.True(t, config.SnippetSupport)
}

func TestParse(t *testing.T) {
	t.Run("partial file", func(t *testing.T) {
		config, err := Parse([]byte("logLevel: debug\nsnippetSupport: false\n"))
		require.NoError(t, err)

		assert.Equal(t, zerolog.DebugLevel, config.Level())
		assert.False(t, config.SnippetSupport)
		assert.Equal(t, DEFAULT_MAX_ITEMS, config.MaxItems)
	})

	t.Run("all invalid fields are reported", func(t *testing.T) {
		_, err := Parse([]byte("logLevel: loud\nmaxItems: -1\n"))
		assert.ErrorIs(t, err, ErrInvalidLogLevel)
		assert.ErrorIs(t, err, ErrInvalidMaxItems)
	})

	t.Run("invalid YAML", func(t *testing.T) {
		_, err := Parse([]byte("maxItems: [1"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	t.Run("explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), CONFIG_FILE_NAME)
		require.NoError(t, os.WriteFile(path, []byte("maxItems: 10\n"), 0o600))

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 10, config.MaxItems)
	})

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestNewLogger(t *testing.T) {
	config := Default()
	config.LogLevel = "warn"
	config.NoColor = true

	buf := bytes.NewBuffer(nil)
	logger := config.NewLogger(buf)

	logger.Info().Msg("hidden")
	logger.Warn().Str("file", "main.bal").Msg("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.Contains(t, buf.String(), "main.bal")
}

func TestColorizedLogger(t *testing.T) {
	config := Default()

	buf := bytes.NewBuffer(nil)
	logger := config.NewLogger(buf)
	logger.Error().Msg("failure")

	assert.Contains(t, utils.StripANSISequences(buf.String()), "ERR failure")
}
