package input

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
)

// Binding maps a key code to a camera movement direction.
type Binding struct {
	Key       uint32
	Direction camera.Direction
}

// DefaultBindings are WASD with the arrow keys as alternates.
var DefaultBindings = []Binding{
	{Key: common.KeyW, Direction: camera.Forward},
	{Key: common.KeyS, Direction: camera.Backward},
	{Key: common.KeyA, Direction: camera.Left},
	{Key: common.KeyD, Direction: camera.Right},
	{Key: common.KeyUp, Direction: camera.Forward},
	{Key: common.KeyDown, Direction: camera.Backward},
	{Key: common.KeyLeft, Direction: camera.Left},
	{Key: common.KeyRight, Direction: camera.Right},
}

// Source is the subset of window.Window a Handler subscribes to.
type Source interface {
	SetKeyDownCallback(callback func(keyCode uint32))
	SetKeyUpCallback(callback func(keyCode uint32))
	SetMouseMoveCallback(callback func(x, y float64))
	SetScrollCallback(callback func(delta float32))
}

// Handler routes window input events into a camera.FlyController.
// Keyboard movement is applied once per frame in Update using the frame's
// delta time; mouse and scroll events are applied as they arrive.
type Handler interface {
	// Attach registers the handler's callbacks on the source, replacing any existing ones.
	//
	// Parameters:
	//   - src: the event source, usually the engine window
	Attach(src Source)

	// KeyDown records a key press (or auto-repeat) and fires any key action bound to it.
	//
	// Parameters:
	//   - key: GLFW key code
	KeyDown(key uint32)

	// KeyUp records a key release.
	//
	// Parameters:
	//   - key: GLFW key code
	KeyUp(key uint32)

	// MouseMove samples the cursor and applies the resulting look offset.
	//
	// Parameters:
	//   - x: cursor x in screen coordinates
	//   - y: cursor y in screen coordinates (growing downward)
	MouseMove(x, y float64)

	// Scroll forwards a wheel delta to the controller's zoom.
	//
	// Parameters:
	//   - delta: vertical scroll delta
	Scroll(delta float32)

	// Update applies every held movement direction for this frame.
	// Each direction moves at most once per frame, however many keys are bound to it.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	//
	// Returns:
	//   - error: the first controller error this frame, if any
	Update(deltaTime float32) error

	// Err returns the most recent controller error, or nil.
	//
	// Returns:
	//   - error: the last error
	Err() error

	// ErrorCount returns how many controller errors have been recorded.
	//
	// Returns:
	//   - int: the number of errors
	ErrorCount() int
}

type handlerImpl struct {
	mu *sync.Mutex

	controller     camera.FlyController
	bindings       []Binding
	actions        map[uint32]func()
	constrainPitch bool

	keys  *KeyState
	mouse MouseLook

	lastErr    error
	errorCount int
}

var _ Handler = &handlerImpl{}

// NewHandler creates a Handler driving ctrl with DefaultBindings and a pitch-constrained mouse-look.
//
// Parameters:
//   - ctrl: the controller to drive
//   - options: functional options to configure the handler
//
// Returns:
//   - Handler: the new handler
func NewHandler(ctrl camera.FlyController, options ...HandlerOption) Handler {
	h := &handlerImpl{
		mu:             &sync.Mutex{},
		controller:     ctrl,
		bindings:       DefaultBindings,
		actions:        make(map[uint32]func()),
		constrainPitch: true,
		keys:           NewKeyState(),
	}
	for _, option := range options {
		option(h)
	}
	return h
}

func (h *handlerImpl) Attach(src Source) {
	src.SetKeyDownCallback(h.KeyDown)
	src.SetKeyUpCallback(h.KeyUp)
	src.SetMouseMoveCallback(h.MouseMove)
	src.SetScrollCallback(h.Scroll)
}

func (h *handlerImpl) KeyDown(key uint32) {
	h.mu.Lock()
	first := h.keys.Press(key)
	action := h.actions[key]
	h.mu.Unlock()

	// actions run unlocked so they may call back into the handler
	if first && action != nil {
		action()
	}
}

func (h *handlerImpl) KeyUp(key uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys.Release(key)
}

func (h *handlerImpl) MouseMove(x, y float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	xOffset, yOffset := h.mouse.Sample(x, y)
	h.record(h.controller.ProcessMouseMovement(xOffset, yOffset, h.constrainPitch))
}

func (h *handlerImpl) Scroll(delta float32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.record(h.controller.ProcessMouseScroll(delta))
}

func (h *handlerImpl) Update(deltaTime float32) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	var first error
	var applied [4]bool
	for _, b := range h.bindings {
		if !h.keys.Held(b.Key) {
			continue
		}
		if d := int(b.Direction); d >= 0 && d < len(applied) {
			if applied[d] {
				continue
			}
			applied[d] = true
		}
		if err := h.controller.ProcessKeyboard(b.Direction, deltaTime); err != nil {
			h.record(err)
			if first == nil {
				first = fmt.Errorf("input update: %w", err)
			}
		}
	}
	return first
}

func (h *handlerImpl) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

func (h *handlerImpl) ErrorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.errorCount
}

// record stores a non-nil controller error. Caller must hold the mutex.
func (h *handlerImpl) record(err error) {
	if err == nil {
		return
	}
	h.lastErr = err
	h.errorCount++
}
