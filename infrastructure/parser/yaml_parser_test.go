package parser

import (
	"testing"
	"time"

	"github.com/jsil-dev/host-sdk/go/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYamlConfigParser_Parse(t *testing.T) {
	doc := `
log_level: debug
canvas:
  width: 1024
ticks:
  frames: 3
  interval: 16ms
storage:
  backend: file
  path: /tmp/jsil.yaml
`
	cfg, err := NewYamlConfigParser().Parse([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 1024, cfg.Canvas.Width)
	assert.Equal(t, 600, cfg.Canvas.Height, "unset keys keep their defaults")
	assert.Equal(t, 3, cfg.Ticks.Frames)
	assert.Equal(t, 16*time.Millisecond, cfg.Ticks.Interval)
	assert.Equal(t, entities.StorageBackendFile, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/jsil.yaml", cfg.Storage.Path)
	assert.Equal(t, "volume_entries", cfg.Storage.Table)
}

func TestYamlConfigParser_Empty(t *testing.T) {
	cfg, err := NewYamlConfigParser().Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, entities.DefaultShellConfig(), *cfg)
}

func TestYamlConfigParser_UnknownFields(t *testing.T) {
	doc := []byte("canvas:\n  depth: 3\n")

	_, err := NewYamlConfigParser().Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "depth")

	cfg, err := NewYamlConfigParser(WithKnownFields(false)).Parse(doc)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Canvas.Width)
}

func TestYamlConfigParser_Malformed(t *testing.T) {
	_, err := NewYamlConfigParser().Parse([]byte("canvas: [1, 2"))
	assert.Error(t, err)
}
