package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the viewer settings. Keys missing from a file keep their Default values.
type Config struct {
	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Renderer RendererConfig `toml:"renderer"`
	Scene    SceneConfig    `toml:"scene"`
	Profiler ProfilerConfig `toml:"profiler"`
}

// WindowConfig configures the GLFW window.
type WindowConfig struct {
	Title          string `toml:"title"`
	Width          int    `toml:"width"`
	Height         int    `toml:"height"`
	CursorCaptured bool   `toml:"cursor_captured"`
}

// CameraConfig configures the fly camera and its projection.
type CameraConfig struct {
	Position         mgl32.Vec3 `toml:"position"`
	Yaw              float32    `toml:"yaw"`
	Pitch            float32    `toml:"pitch"`
	Zoom             float32    `toml:"zoom"`
	MovementSpeed    float32    `toml:"movement_speed"`
	MouseSensitivity float32    `toml:"mouse_sensitivity"`
	ConstrainPitch   bool       `toml:"constrain_pitch"`
	Near             float32    `toml:"near"`
	Far              float32    `toml:"far"`
}

// RendererConfig configures presentation and the sky.
type RendererConfig struct {
	PresentMode   string     `toml:"present_mode"` // "vsync" or "uncapped"
	MSAA          int        `toml:"msaa"`         // 1 (off) or 4
	ForceSoftware bool       `toml:"force_software"`
	FrameLimit    float64    `toml:"frame_limit"` // frames per second; 0 = uncapped
	SkyZenith     mgl32.Vec3 `toml:"sky_zenith"`
	SkyHorizon    mgl32.Vec3 `toml:"sky_horizon"`
}

// SceneConfig selects the scene manifest. An empty Path uses the built-in Military Base scene.
type SceneConfig struct {
	Path string `toml:"path"`
}

// ProfilerConfig configures the periodic stats log line.
type ProfilerConfig struct {
	Enabled         bool    `toml:"enabled"`
	IntervalSeconds float64 `toml:"interval_seconds"`
}

// Default returns the settings of the original viewer: a 1200x900 "Military Base" window,
// the camera at the origin looking down -Z, and vsync presentation.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:          "Military Base",
			Width:          1200,
			Height:         900,
			CursorCaptured: true,
		},
		Camera: CameraConfig{
			Yaw:              camera.DefaultYaw,
			Pitch:            camera.DefaultPitch,
			Zoom:             camera.DefaultZoom,
			MovementSpeed:    camera.DefaultMovementSpeed,
			MouseSensitivity: camera.DefaultMouseSensitivity,
			ConstrainPitch:   true,
			Near:             0.1,
			Far:              100,
		},
		Renderer: RendererConfig{
			PresentMode: "vsync",
			MSAA:        4,
			SkyZenith:   mgl32.Vec3{0.32, 0.45, 0.68},
			SkyHorizon:  mgl32.Vec3{0.5, 0.5, 0.5},
		},
		Profiler: ProfilerConfig{
			IntervalSeconds: 1,
		},
	}
}

// Validate reports every problem found, wrapped in ErrInvalidConfig.
//
// Returns:
//   - error: nil if the configuration is usable
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		add("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}

	cc := c.Camera
	if !common.IsFinite(cc.Position[0], cc.Position[1], cc.Position[2], cc.Yaw, cc.Pitch, cc.Zoom, cc.MovementSpeed, cc.MouseSensitivity, cc.Near, cc.Far) {
		add("camera values must be finite")
	}
	if cc.Zoom < camera.MinZoom || cc.Zoom > camera.MaxZoom {
		add("camera zoom %g outside [%g, %g]", cc.Zoom, camera.MinZoom, camera.MaxZoom)
	}
	if cc.Pitch < camera.MinPitch || cc.Pitch > camera.MaxPitch {
		add("camera pitch %g outside [%g, %g]", cc.Pitch, camera.MinPitch, camera.MaxPitch)
	}
	if cc.MovementSpeed < 0 {
		add("camera movement_speed %g must not be negative", cc.MovementSpeed)
	}
	if cc.MouseSensitivity < 0 {
		add("camera mouse_sensitivity %g must not be negative", cc.MouseSensitivity)
	}
	if cc.Near <= 0 || cc.Far <= cc.Near {
		add("camera clip planes must satisfy 0 < near < far (near %g, far %g)", cc.Near, cc.Far)
	}

	rc := c.Renderer
	switch rc.PresentMode {
	case "vsync", "uncapped":
	default:
		add("renderer present_mode %q must be \"vsync\" or \"uncapped\"", rc.PresentMode)
	}
	switch rc.MSAA {
	case 1, 4:
	default:
		add("renderer msaa %d must be 1 or 4", rc.MSAA)
	}
	if rc.FrameLimit < 0 {
		add("renderer frame_limit %g must not be negative", rc.FrameLimit)
	}
	for _, col := range []mgl32.Vec3{rc.SkyZenith, rc.SkyHorizon} {
		for _, v := range col {
			if v < 0 || v > 1 {
				add("renderer sky colors must be in [0, 1]")
				break
			}
		}
	}

	if c.Profiler.IntervalSeconds <= 0 {
		add("profiler interval_seconds %g must be positive", c.Profiler.IntervalSeconds)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// FlyControllerOptions returns the controller options for the configured start pose.
//
// Returns:
//   - []camera.FlyControllerOption: options for camera.NewFlyController
func (c *Config) FlyControllerOptions() []camera.FlyControllerOption {
	p := c.Camera.Position
	return []camera.FlyControllerOption{
		camera.WithPosition(p.X(), p.Y(), p.Z()),
		camera.WithYaw(c.Camera.Yaw),
		camera.WithPitch(c.Camera.Pitch),
		camera.WithZoom(c.Camera.Zoom),
		camera.WithMovementSpeed(c.Camera.MovementSpeed),
		camera.WithMouseSensitivity(c.Camera.MouseSensitivity),
	}
}

// Decode reads a TOML configuration on top of Default and validates it.
// Unknown keys are rejected.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - *Config: the decoded configuration
//   - error: a decode or validation error wrapping ErrInvalidConfig
func Decode(r io.Reader) (*Config, error) {
	c := Default()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("decode config: %w: %s", ErrInvalidConfig, strict.String())
		}
		return nil, fmt.Errorf("decode config: %w: %w", ErrInvalidConfig, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads the configuration at path. A missing file yields Default.
//
// Parameters:
//   - path: the TOML file path, or "" for defaults
//
// Returns:
//   - *Config: the configuration
//   - error: an I/O, decode or validation error
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return c, nil
}

// Encode writes c as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: an encoding or write error
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).SetIndentTables(true).Encode(c)
}
