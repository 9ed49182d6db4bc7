package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikhrachel/go-gol3d/model"
	"github.com/sheikhrachel/go-gol3d/rules"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	c := DefaultConfig()
	require.NoError(t, c.Validate())
	assert.Equal(t, rules.Rule{Min: 5, Max: 13}, c.Rule())
	assert.Equal(t, 200*time.Millisecond, c.FrameRate*time.Duration(c.FramesPerGeneration))
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
width: 20
height: 12
depth: 8
initial: 0.25
min: 4
max: 9
seed: 17
frame_rate: 25ms
mode: color
`)
	c, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 20, c.Width)
	assert.Equal(t, 12, c.Height)
	assert.Equal(t, 8, c.Depth)
	assert.Equal(t, 0.25, c.Initial)
	assert.Equal(t, int64(17), c.Seed)
	assert.Equal(t, 25*time.Millisecond, c.FrameRate)
	assert.Equal(t, string(model.ModeColor), c.Mode)
	// untouched keys keep defaults
	assert.Equal(t, 5, c.FramesPerGeneration)
	assert.True(t, c.AutoRestart)

	s := c.Settings()
	assert.Equal(t, rules.Rule{Min: 4, Max: 9}, s.Rule)
	assert.True(t, s.Bounded)
}

func TestLoadConfig_JSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"width": 6, "height": 6, "depth": 6, "min": 2, "max": 2, "use_bounded_grid": false}`)
	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Depth)
	assert.False(t, c.UseBoundedGrid)
}

func TestLoadConfig_Empty(t *testing.T) {
	c, err := LoadConfig(writeConfig(t, "empty.yaml", ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), c)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")

	_, err = LoadConfig(writeConfig(t, "typo.yaml", "widht: 5\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal")

	_, err = LoadConfig(writeConfig(t, "zero.yaml", "depth: 0\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidDimension))

	_, err = LoadConfig(writeConfig(t, "rule.yaml", "max: 40\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, rules.ErrInvalidRule))
}

func TestConfigValidate_Presenter(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"frames per generation", func(c *Config) { c.FramesPerGeneration = 0 }},
		{"max generations", func(c *Config) { c.MaxGenerations = -1 }},
		{"stagnation threshold", func(c *Config) { c.StagnationThreshold = 0 }},
		{"workers", func(c *Config) { c.Workers = -2 }},
		{"refresh interval", func(c *Config) { c.RefreshInterval = -1 }},
		{"mode", func(c *Config) { c.Mode = "points" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestConfigValidate_ClampsRatherThanRejectsProbability(t *testing.T) {
	c := DefaultConfig()
	c.Initial = 1.7
	assert.NoError(t, c.Validate())
}
