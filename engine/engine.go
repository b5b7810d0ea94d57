package engine

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/input"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
)

// ErrNoWindow is returned by Run when the engine has no window to drive it.
var ErrNoWindow = errors.New("engine: no window")

// Display is the part of window.Window the engine drives its frame loop from.
type Display interface {
	SetUpdateCallback(callback func())
	SetResizeCallback(callback func(width, height int))
	ProcessMessages()
	RequestClose()
	Close() error
	Width() int
	Height() int
}

// FrameRenderer draws one frame from a camera. renderer.Renderer satisfies it.
type FrameRenderer interface {
	Render(cam camera.Camera) error
	Resize(width, height int)
}

// engine implements the Engine interface.
type engine struct {
	mu *sync.Mutex

	quitOnce sync.Once

	window   Display
	camera   camera.Camera
	renderer FrameRenderer
	input    input.Handler

	profiler         *profiler.Profiler
	profilerOptions  []profiler.ProfilerOption
	profilingEnabled bool
	clock            *profiler.FrameClock
	now              func() time.Time
	sleep            func(time.Duration)

	frameCallback func(deltaTime float32)
	frameLimit    time.Duration // minimum frame duration; 0 = uncapped
	maxFrames     uint64        // quit after this many frames; 0 = run until closed

	frames        uint64
	renderErrors  int
	lastRenderErr string
}

// Engine runs the viewer's frame loop on the window's message loop thread.
//
// Each frame, in order: the frame clock yields the delta time, held movement keys are applied,
// the frame callback runs, the camera matrices are refreshed, the renderer draws, and the
// profiler ticks.
type Engine interface {
	// Camera returns the camera the engine renders from.
	//
	// Returns:
	//   - camera.Camera: the camera, or nil if none was configured
	Camera() camera.Camera

	// Profiler returns the engine's profiler.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler instance
	Profiler() *profiler.Profiler

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// ToggleProfiler flips performance profiling output.
	ToggleProfiler()

	// SetFrameCallback registers the function called once per frame before rendering.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// RenderErrors returns how many frames failed to render.
	//
	// Returns:
	//   - int: the render error count
	RenderErrors() int

	// Frames returns how many frames have run.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Run drives the frame loop from the window's message loop. Blocks until the window closes,
	// then closes the window.
	//
	// Returns:
	//   - error: ErrNoWindow if no window was configured, or the window close error
	Run() error

	// Quit asks the window to close after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The window's resize callback is wired to the camera aspect ratio and the renderer surface.
//
// Parameters:
//   - options: functional options for engine configuration (window, camera, renderer, profiling, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		mu:    &sync.Mutex{},
		now:   time.Now,
		sleep: time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	e.clock = profiler.NewFrameClock(e.now)
	if e.profiler == nil {
		opts := append([]profiler.ProfilerOption{
			profiler.WithClock(e.now),
			profiler.WithStatsSource(e.cameraStats),
		}, e.profilerOptions...)
		e.profiler = profiler.NewProfiler(opts...)
	}
	e.profiler.SetEnabled(e.profilingEnabled)

	if e.window != nil {
		e.window.SetResizeCallback(e.resize)
		if e.camera != nil && e.window.Height() > 0 {
			e.camera.SetAspect(float32(e.window.Width()) / float32(e.window.Height()))
		}
	}

	return e
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profiler.SetEnabled(true)
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profiler.SetEnabled(false)
}

func (e *engine) ToggleProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profiler.Toggle()
	log.Printf("[Engine] profiler enabled: %t", e.profiler.Enabled())
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) SetFrameLimit(fps float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameLimit = frameDuration(fps)
}

func (e *engine) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

func (e *engine) RenderErrors() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.renderErrors
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	log.Printf("[Engine] starting frame loop (%dx%d)", e.window.Width(), e.window.Height())
	e.window.SetUpdateCallback(e.frame)
	e.window.ProcessMessages()

	e.mu.Lock()
	frames, renderErrors := e.frames, e.renderErrors
	e.mu.Unlock()
	log.Printf("[Engine] frame loop stopped after %d frames (%d render errors)", frames, renderErrors)

	if err := e.window.Close(); err != nil {
		return fmt.Errorf("close window: %w", err)
	}
	return nil
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// frame runs one iteration of the loop. Called from the window's update callback.
func (e *engine) frame() {
	start := e.now()
	dt := e.clock.Tick()

	if e.input != nil {
		if err := e.input.Update(dt); err != nil {
			log.Printf("[Engine] input: %v", err)
		}
	}

	e.mu.Lock()
	callback := e.frameCallback
	limit := e.frameLimit
	e.mu.Unlock()

	if callback != nil {
		callback(dt)
	}

	if e.camera != nil {
		e.camera.Update()
		if e.renderer != nil {
			e.render()
		}
	}

	e.mu.Lock()
	e.profiler.Tick()
	e.frames++
	done := e.maxFrames > 0 && e.frames >= e.maxFrames
	e.mu.Unlock()

	if done {
		e.Quit()
		return
	}

	if limit > 0 {
		if remaining := limit - e.now().Sub(start); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// render draws a frame, logging each distinct render error once.
func (e *engine) render() {
	err := e.renderer.Render(e.camera)
	if err == nil {
		e.lastRenderErr = ""
		return
	}
	e.mu.Lock()
	e.renderErrors++
	e.mu.Unlock()
	if msg := err.Error(); msg != e.lastRenderErr {
		log.Printf("[Engine] render: %v", err)
		e.lastRenderErr = msg
	}
}

func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if e.camera != nil {
		e.camera.SetAspect(float32(width) / float32(height))
	}
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
}

// cameraStats reports the camera pose for the profiler line.
func (e *engine) cameraStats() string {
	if e.camera == nil || e.camera.Controller() == nil {
		return ""
	}
	c := e.camera.Controller()
	p := c.Position()
	return fmt.Sprintf("Camera: (%.2f, %.2f, %.2f) yaw %.1f pitch %.1f fov %.1f",
		p.X(), p.Y(), p.Z(), c.Yaw(), c.Pitch(), c.FieldOfView())
}

func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
