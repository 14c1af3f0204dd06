package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/alkime/postauto/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&config.Config{Env: config.EnvProduction, LogLevel: "info"}, &buf)

	log.Debug("hidden")
	log.Info("Post published", "path", "blog/posts/a.md")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Post published", entry["msg"])
	assert.Equal(t, "blog/posts/a.md", entry["path"])
}

func TestSetupLogger_DebugInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger(&config.Config{Env: "development"}, &buf)

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}
