package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	assert.Equal(t, "render.jpg", cfg.OutputFile)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.False(t, cfg.CameraPositionSet)
	assert.False(t, cfg.CameraDirectionSet)
}

func TestParseMultiTokenFlags(t *testing.T) {
	cfg, err := Parse([]string{
		"-CameraPosition", "1 2 3",
		"-CameraDirection", "0 0 -1",
		"-Resolution", "1920 1080",
		"-Scene", "scene.json",
		"-OutputFile", "out.jpg",
	})
	require.NoError(t, err)

	assert.True(t, cfg.CameraPositionSet)
	assert.True(t, cfg.CameraDirectionSet)
	assert.Equal(t, 1.0, cfg.CameraPosition.X)
	assert.Equal(t, 2.0, cfg.CameraPosition.Y)
	assert.Equal(t, 3.0, cfg.CameraPosition.Z)
	assert.Equal(t, -1.0, cfg.CameraDirection.Z)
	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, 1080, cfg.Height)
	assert.Equal(t, "scene.json", cfg.Scene)
	assert.Equal(t, "out.jpg", cfg.OutputFile)
}

func TestParseRejectsMalformedVec3(t *testing.T) {
	_, err := Parse([]string{"-CameraPosition", "1 2"})
	assert.Error(t, err)
}

func TestParseIgnoresUnknownFlags(t *testing.T) {
	cfg, err := Parse([]string{"-NotARealFlag", "value", "-Scene", "s.json"})
	require.NoError(t, err)
	assert.Equal(t, "s.json", cfg.Scene)
}
