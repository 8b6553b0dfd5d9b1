package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew(t *testing.T) {
	t.Run("invalid level falls back to info", func(t *testing.T) {
		log, err := New(Config{Level: "loud", Encoding: "console"})
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(zap.InfoLevel))
		assert.False(t, log.Core().Enabled(zap.DebugLevel))
	})

	t.Run("writes json to output path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(Config{Level: "debug", Encoding: "xml", OutputPath: path})
		require.NoError(t, err)
		log.Debug("catalog loaded", zap.Int("scenarios", 3))
		require.NoError(t, log.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"catalog loaded"`)
		assert.Contains(t, string(data), `"scenarios":3`)
	})
}
