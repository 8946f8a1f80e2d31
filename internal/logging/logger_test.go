package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersWriteToGlobalLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(nil) })

	Info("property created", "property_id", "abc")
	Warn("invalid commission", "property", "State U")
	WithComponent("revenue_audit").Debug("tick")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "property created", entries[0].Message)
	assert.Equal(t, "abc", entries[0].ContextMap()["property_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, "revenue_audit", entries[2].ContextMap()["component"])
}

func TestGetLoggerFallsBackWhenUninitialised(t *testing.T) {
	SetLogger(nil)
	assert.NotNil(t, GetLogger())
	SetLogger(nil)
}

func TestInit(t *testing.T) {
	require.NoError(t, Init("production"))
	require.NoError(t, Init("development"))
	SetLogger(nil)
}
