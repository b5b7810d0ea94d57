package camera

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Direction is a keyboard movement direction relative to the camera basis.
type Direction int

const (
	// Forward moves along the front vector.
	Forward Direction = iota

	// Backward moves against the front vector.
	Backward

	// Left moves against the right vector.
	Left

	// Right moves along the right vector.
	Right
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// FlyController defines a first-person fly camera driven by keyboard, mouse and scroll input.
//
// Yaw and pitch can only change through ProcessMouseMovement, which always re-derives the
// front/right/up basis, so a stale basis is never observable. Every input-taking method
// rejects non-finite values (and negative elapsed time) with ErrInvalidInput and leaves
// the state untouched.
type FlyController interface {
	// ProcessKeyboard moves the camera along its front or right vector by
	// MovementSpeed * deltaTime world units.
	//
	// Parameters:
	//   - direction: one of Forward, Backward, Left, Right
	//   - deltaTime: elapsed seconds since the previous frame (finite, >= 0; 0 is a no-op)
	//
	// Returns:
	//   - error: ErrInvalidInput for an unknown direction or a negative/non-finite deltaTime
	ProcessKeyboard(direction Direction, deltaTime float32) error

	// ProcessMouseMovement applies a mouse-look delta. Both offsets are scaled by
	// MouseSensitivity and added to yaw and pitch. yOffset must already be inverted by
	// the caller (previous y minus current y) so that moving the mouse up tilts the view up.
	//
	// Parameters:
	//   - xOffset: horizontal pixel delta since the previous sample
	//   - yOffset: inverted vertical pixel delta since the previous sample
	//   - constrainPitch: when true, pitch is clamped to [MinPitch, MaxPitch]
	//
	// Returns:
	//   - error: ErrInvalidInput if an offset is non-finite
	ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) error

	// ProcessMouseScroll narrows (positive) or widens (negative) the field of view,
	// clamped to [MinZoom, MaxZoom].
	//
	// Parameters:
	//   - yOffset: scroll wheel delta
	//
	// Returns:
	//   - error: ErrInvalidInput if yOffset is non-finite
	ProcessMouseScroll(yOffset float32) error

	// ViewMatrix returns the column-major look-at matrix built from the position,
	// position + front, and the up vector. It has no side effects.
	//
	// Returns:
	//   - mgl32.Mat4: the world-to-view transform
	ViewMatrix() mgl32.Mat4

	// SkyboxViewMatrix returns ViewMatrix with its translation removed, for
	// drawing geometry that should stay centred on the eye.
	//
	// Returns:
	//   - mgl32.Mat4: the rotation-only view transform
	SkyboxViewMatrix() mgl32.Mat4

	// FieldOfView returns the current vertical field of view in degrees.
	//
	// Returns:
	//   - float32: zoom in degrees, within [MinZoom, MaxZoom]
	FieldOfView() float32

	// Position returns the eye position in world space.
	//
	// Returns:
	//   - mgl32.Vec3: the camera position
	Position() mgl32.Vec3

	// Front returns the unit view direction.
	//
	// Returns:
	//   - mgl32.Vec3: the front vector
	Front() mgl32.Vec3

	// Right returns the unit right vector.
	//
	// Returns:
	//   - mgl32.Vec3: the right vector
	Right() mgl32.Vec3

	// Up returns the unit camera-local up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Yaw returns the yaw angle in degrees.
	//
	// Returns:
	//   - float32: yaw in degrees
	Yaw() float32

	// Pitch returns the pitch angle in degrees.
	//
	// Returns:
	//   - float32: pitch in degrees
	Pitch() float32

	// MovementSpeed returns the translation speed in world units per second.
	//
	// Returns:
	//   - float32: movement speed
	MovementSpeed() float32

	// MouseSensitivity returns the mouse delta multiplier.
	//
	// Returns:
	//   - float32: degrees per pixel
	MouseSensitivity() float32

	// State returns a consistent snapshot of the whole camera state.
	//
	// Returns:
	//   - CameraState: the current state
	State() CameraState
}

// flyControllerImpl is the implementation of FlyController.
type flyControllerImpl struct {
	mu    *sync.Mutex
	state cameraState
}

var _ FlyController = &flyControllerImpl{}

// NewFlyController creates a fly camera at the origin facing -Z (yaw -90°, pitch 0°, zoom 45°),
// then applies the options. Initial pitch and zoom are clamped into range.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - FlyController: the newly created controller
//   - error: ErrInvalidInput if an option supplied a non-finite value or a negative speed/sensitivity
func NewFlyController(options ...FlyControllerOption) (FlyController, error) {
	fc := &flyControllerImpl{
		mu:    &sync.Mutex{},
		state: newCameraState(),
	}
	for _, option := range options {
		option(fc)
	}

	s := &fc.state
	if !common.IsFinite(s.position[0], s.position[1], s.position[2], s.yaw, s.pitch, s.zoom, s.movementSpeed, s.mouseSensitivity) {
		return nil, fmt.Errorf("new fly controller: non-finite option value: %w", ErrInvalidInput)
	}
	if s.movementSpeed < 0 || s.mouseSensitivity < 0 {
		return nil, fmt.Errorf("new fly controller: negative speed or sensitivity: %w", ErrInvalidInput)
	}
	s.zoom = common.Clamp(s.zoom, MinZoom, MaxZoom)
	s.setOrientation(s.yaw, common.Clamp(s.pitch, MinPitch, MaxPitch))
	return fc, nil
}

func (fc *flyControllerImpl) ProcessKeyboard(direction Direction, deltaTime float32) error {
	if !common.IsFinite(deltaTime) || deltaTime < 0 {
		return fmt.Errorf("process keyboard: delta time %v: %w", deltaTime, ErrInvalidInput)
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	velocity := fc.state.movementSpeed * deltaTime
	var position mgl32.Vec3
	switch direction {
	case Forward:
		position = fc.state.position.Add(fc.state.front.Mul(velocity))
	case Backward:
		position = fc.state.position.Sub(fc.state.front.Mul(velocity))
	case Left:
		position = fc.state.position.Sub(fc.state.right.Mul(velocity))
	case Right:
		position = fc.state.position.Add(fc.state.right.Mul(velocity))
	default:
		return fmt.Errorf("process keyboard: %v: %w", direction, ErrInvalidInput)
	}
	if !common.IsFinite(position[0], position[1], position[2]) {
		return fmt.Errorf("process keyboard: position overflow: %w", ErrInvalidInput)
	}

	fc.state.position = position
	return nil
}

func (fc *flyControllerImpl) ProcessMouseMovement(xOffset, yOffset float32, constrainPitch bool) error {
	if !common.IsFinite(xOffset, yOffset) {
		return fmt.Errorf("process mouse movement: offsets (%v, %v): %w", xOffset, yOffset, ErrInvalidInput)
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	yaw := fc.state.yaw + xOffset*fc.state.mouseSensitivity
	pitch := fc.state.pitch + yOffset*fc.state.mouseSensitivity
	if constrainPitch {
		pitch = common.Clamp(pitch, MinPitch, MaxPitch)
	}
	if !common.IsFinite(yaw, pitch) {
		return fmt.Errorf("process mouse movement: orientation overflow: %w", ErrInvalidInput)
	}

	fc.state.setOrientation(yaw, pitch)
	return nil
}

func (fc *flyControllerImpl) ProcessMouseScroll(yOffset float32) error {
	if !common.IsFinite(yOffset) {
		return fmt.Errorf("process mouse scroll: offset %v: %w", yOffset, ErrInvalidInput)
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.state.zoom = common.Clamp(fc.state.zoom-yOffset, MinZoom, MaxZoom)
	return nil
}

func (fc *flyControllerImpl) ViewMatrix() mgl32.Mat4 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.viewMatrix()
}

func (fc *flyControllerImpl) SkyboxViewMatrix() mgl32.Mat4 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.viewMatrix().Mat3().Mat4()
}

func (fc *flyControllerImpl) FieldOfView() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.zoom
}

func (fc *flyControllerImpl) Position() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.position
}

func (fc *flyControllerImpl) Front() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.front
}

func (fc *flyControllerImpl) Right() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.right
}

func (fc *flyControllerImpl) Up() mgl32.Vec3 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.up
}

func (fc *flyControllerImpl) Yaw() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.yaw
}

func (fc *flyControllerImpl) Pitch() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.pitch
}

func (fc *flyControllerImpl) MovementSpeed() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.movementSpeed
}

func (fc *flyControllerImpl) MouseSensitivity() float32 {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.mouseSensitivity
}

func (fc *flyControllerImpl) State() CameraState {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.state.snapshot()
}

// viewMatrix builds the look-at transform. Caller must hold the mutex.
func (fc *flyControllerImpl) viewMatrix() mgl32.Mat4 {
	eye := fc.state.position
	return mgl32.LookAtV(eye, eye.Add(fc.state.front), fc.state.up)
}
