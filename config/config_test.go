package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	assert.Equal(t, "Military Base", c.Window.Title)
	assert.Equal(t, 1200, c.Window.Width)
	assert.Equal(t, 900, c.Window.Height)
	assert.True(t, c.Window.CursorCaptured)

	assert.Equal(t, mgl32.Vec3{}, c.Camera.Position)
	assert.Equal(t, float32(2.5), c.Camera.MovementSpeed)
	assert.Equal(t, float32(0.1), c.Camera.MouseSensitivity)
	assert.Equal(t, float32(0.1), c.Camera.Near)
	assert.Equal(t, float32(100), c.Camera.Far)

	assert.Equal(t, "vsync", c.Renderer.PresentMode)
	assert.False(t, c.Profiler.Enabled)
	assert.Empty(t, c.Scene.Path)
}

func TestDecode_PartialKeepsDefaults(t *testing.T) {
	src := `
[window]
width = 800

[camera]
position = [1.0, 2.0, 3.0]
movement_speed = 5.0

[profiler]
enabled = true
`
	c, err := Decode(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 800, c.Window.Width)
	assert.Equal(t, 900, c.Window.Height)
	assert.Equal(t, "Military Base", c.Window.Title)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, c.Camera.Position)
	assert.Equal(t, float32(5), c.Camera.MovementSpeed)
	assert.Equal(t, float32(0.1), c.Camera.MouseSensitivity)
	assert.True(t, c.Profiler.Enabled)
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[window]\nfullscreen = true\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDecode_RejectsMalformed(t *testing.T) {
	_, err := Decode(strings.NewReader("[window\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"zoom too wide", func(c *Config) { c.Camera.Zoom = 60 }, "zoom"},
		{"pitch past vertical", func(c *Config) { c.Camera.Pitch = 90 }, "pitch"},
		{"negative speed", func(c *Config) { c.Camera.MovementSpeed = -1 }, "movement_speed"},
		{"negative sensitivity", func(c *Config) { c.Camera.MouseSensitivity = -0.1 }, "mouse_sensitivity"},
		{"far before near", func(c *Config) { c.Camera.Far = 0.05 }, "clip planes"},
		{"zero near", func(c *Config) { c.Camera.Near = 0 }, "clip planes"},
		{"present mode", func(c *Config) { c.Renderer.PresentMode = "mailbox" }, "present_mode"},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 8 }, "msaa"},
		{"frame limit", func(c *Config) { c.Renderer.FrameLimit = -30 }, "frame_limit"},
		{"sky color", func(c *Config) { c.Renderer.SkyZenith = mgl32.Vec3{2, 0, 0} }, "sky colors"},
		{"profiler interval", func(c *Config) { c.Profiler.IntervalSeconds = 0 }, "interval_seconds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(c)
			err := c.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	c := Default()
	c.Window.Height = -1
	c.Renderer.MSAA = 2
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "window size")
	assert.Contains(t, err.Error(), "msaa")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	c, err = Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)

	path := filepath.Join(dir, "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\npath = \"base.toml\"\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "base.toml", c.Scene.Path)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[camera]\nnear = -1.0\n"), 0o644))
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), bad)
}

func TestEncode_DecodesBack(t *testing.T) {
	c := Default()
	c.Camera.Position = mgl32.Vec3{0, 1.5, 4}
	c.Renderer.PresentMode = "uncapped"

	var buf bytes.Buffer
	require.NoError(t, c.Encode(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestFlyControllerOptions(t *testing.T) {
	c := Default()
	c.Camera.Position = mgl32.Vec3{1, 2, 3}
	c.Camera.Yaw = 0
	c.Camera.MovementSpeed = 4

	ctrl, err := camera.NewFlyController(c.FlyControllerOptions()...)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, ctrl.Position())
	assert.Equal(t, float32(0), ctrl.Yaw())
	assert.Equal(t, float32(4), ctrl.MovementSpeed())
	assert.InDelta(t, 1, ctrl.Front().X(), 1e-6)
}
