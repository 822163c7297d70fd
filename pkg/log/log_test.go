package log

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetRoutesGlobalCalls(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Set(zap.New(core))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Debug("debug line")
	Warn("source failed", zap.String("source", "file"))

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "source failed", entries[1].Message)
	require.Equal(t, "file", entries[1].ContextMap()["source"])
}

func TestInitLoggerWritesToFile(t *testing.T) {
	path := t.TempDir() + "/fleetview.log"
	require.NoError(t, InitLogger(false, path))
	t.Cleanup(func() { Set(zap.NewNop()) })

	Info("hello")
	Sync()
	require.FileExists(t, path)
}
