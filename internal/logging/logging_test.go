package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("json output is machine readable", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := NewTo(zapcore.AddSync(&buf), true, false)
		require.NoError(t, err)
		log.Info("wrote file", zap.String("path", "com/example/Foo.java"))
		require.NoError(t, log.Sync())

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "wrote file", entry["msg"])
		require.Equal(t, "info", entry["level"])
		require.Equal(t, "com/example/Foo.java", entry["path"])
	})

	t.Run("console output omits time and caller", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := NewTo(zapcore.AddSync(&buf), false, false)
		require.NoError(t, err)
		log.Warn("class not imported", zap.String("simple_name", "List"))
		require.NoError(t, log.Sync())

		line := strings.TrimSpace(buf.String())
		require.True(t, strings.HasPrefix(line, "WARN\tclass not imported"), line)
		require.Contains(t, line, `"simple_name": "List"`)
	})

	t.Run("debug entries need verbose", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := NewTo(zapcore.AddSync(&buf), false, false)
		require.NoError(t, err)
		log.Debug("import elided")
		require.Empty(t, buf.String())

		log, err = NewTo(zapcore.AddSync(&buf), false, true)
		require.NoError(t, err)
		log.Debug("import elided")
		require.Contains(t, buf.String(), "import elided")
	})

	t.Run("nil sink is rejected", func(t *testing.T) {
		_, err := NewTo(nil, true, true)
		require.Error(t, err)
	})

	t.Run("nop discards", func(t *testing.T) {
		require.False(t, Nop().Core().Enabled(zapcore.ErrorLevel))
	})
}
