package initializer

import (
	"bytes"
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_LevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, &config.Log{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("shown", "userID", "42")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"userID":"42"`)
}

func TestSetupLogger_UnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, &config.Log{Level: "loud", Format: "text"})
	logger.Info("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestInitializeDependencies_Memory(t *testing.T) {
	cfg := &config.App{
		Env: "test",
		Log: &config.Log{Level: "error", Format: "text"},
		DB:  &config.DB{Driver: "memory", Url: "memory"},
		Lock: &config.Lock{
			Backend: "memory",
			TTL:     time.Second,
			Wait:    time.Second,
		},
		Redis: &config.Redis{},
	}
	deps, err := InitializeDependencies(cfg)
	require.NoError(t, err)
	assert.NotNil(t, deps.Uow)
	assert.NotNil(t, deps.Locker)
	assert.NotNil(t, deps.EventBus)
	assert.NoError(t, deps.Cleanup())
}

func TestInitializeDependencies_BadDriver(t *testing.T) {
	cfg := &config.App{
		Log:  &config.Log{Level: "error"},
		DB:   &config.DB{Driver: "oracle", Url: "x"},
		Lock: &config.Lock{Backend: "memory"},
	}
	_, err := InitializeDependencies(cfg)
	assert.Error(t, err)
}
