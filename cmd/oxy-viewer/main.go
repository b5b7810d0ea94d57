package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

func main() {
	configPath := flag.String("config", "oxy-viewer.toml", "path to the viewer TOML config (missing file uses defaults)")
	scenePath := flag.String("scene", "", "path to a scene manifest TOML file (overrides the config)")
	profile := flag.Bool("profile", false, "log FPS, memory and camera stats every interval")
	frames := flag.Uint64("frames", 0, "quit after this many frames (0 = run until the window closes)")
	writeScene := flag.String("write-scene", "", "write the built-in Military Base manifest to this path and exit")
	writeConfig := flag.String("write-config", "", "write the default config to this path and exit")
	flag.Parse()

	if err := run(*configPath, *scenePath, *profile, *frames, *writeScene, *writeConfig); err != nil {
		log.Println("oxy-viewer:", err)
		os.Exit(1)
	}
}

func run(configPath, scenePath string, profile bool, frames uint64, writeScene, writeConfig string) error {
	if writeScene != "" {
		return writeFile(writeScene, scene.DefaultManifest().Encode)
	}
	if writeConfig != "" {
		return writeFile(writeConfig, config.Default().Encode)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	manifest := scene.DefaultManifest()
	if path := common.Coalesce(scenePath, cfg.Scene.Path); path != "" {
		if manifest, err = scene.LoadManifest(path); err != nil {
			return err
		}
	}
	sc, err := scene.NewScene(manifest)
	if err != nil {
		return err
	}

	presentMode, err := renderer.ParsePresentMode(cfg.Renderer.PresentMode)
	if err != nil {
		return err
	}
	msaa, err := renderer.ParseMSAA(cfg.Renderer.MSAA)
	if err != nil {
		return err
	}

	ctrl, err := camera.NewFlyController(cfg.FlyControllerOptions()...)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}

	win := window.NewWindow(
		window.WithTitle(common.Coalesce(cfg.Window.Title, sc.Name())),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithCursorCaptured(cfg.Window.CursorCaptured),
	)

	cam := camera.NewCamera(
		camera.WithController(ctrl),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
	)

	r := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
		renderer.WithForceSoftwareRenderer(cfg.Renderer.ForceSoftware),
		renderer.WithSkyColors(cfg.Renderer.SkyZenith, cfg.Renderer.SkyHorizon),
	)
	defer r.Release()

	if err := r.SetScene(sc); err != nil {
		return err
	}

	var eng engine.Engine
	handler := input.NewHandler(ctrl,
		input.WithConstrainPitch(cfg.Camera.ConstrainPitch),
		input.WithKeyAction(common.KeyP, func() { eng.ToggleProfiler() }),
		input.WithKeyAction(common.KeyL, func() {
			n := sc.ToggleLights(light.Spot)
			log.Printf("[Viewer] toggled %d spot lights", n)
		}),
	)
	handler.Attach(win)

	eng = engine.NewEngine(
		engine.WithWindow(win),
		engine.WithCamera(cam),
		engine.WithRenderer(r),
		engine.WithInputHandler(handler),
		engine.WithProfiling(cfg.Profiler.Enabled || profile),
		engine.WithProfilerOptions(
			profiler.WithUpdateInterval(time.Duration(cfg.Profiler.IntervalSeconds*float64(time.Second))),
			profiler.WithStatsSource(func() string {
				return fmt.Sprintf("Instances: %d | Input errors: %d", r.InstanceCount(), handler.ErrorCount())
			}),
		),
		engine.WithFrameLimit(cfg.Renderer.FrameLimit),
		engine.WithMaxFrames(frames),
	)

	return eng.Run()
}

// writeFile creates path and fills it with encode.
func writeFile(path string, encode func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[Viewer] wrote %s", path)
	return nil
}
