package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Orientation and field-of-view limits, in degrees.
const (
	MinPitch float32 = -89.0
	MaxPitch float32 = 89.0
	MinZoom  float32 = 1.0
	MaxZoom  float32 = 45.0
)

// Defaults applied by NewFlyController before any option runs.
const (
	DefaultYaw              float32 = -90.0
	DefaultPitch            float32 = 0.0
	DefaultZoom             float32 = 45.0
	DefaultMovementSpeed    float32 = 2.5
	DefaultMouseSensitivity float32 = 0.1
)

// WorldUp is the fixed reference up vector used to derive the camera basis.
var WorldUp = mgl32.Vec3{0, 1, 0}

// CameraState is a read-only snapshot of a fly camera.
// Front, Right and Up always form an orthonormal basis derived from Yaw and Pitch.
type CameraState struct {
	// Position is the eye position in world space.
	Position mgl32.Vec3

	// Front is the unit view direction.
	Front mgl32.Vec3

	// Right is the unit vector pointing to the camera's right.
	Right mgl32.Vec3

	// Up is the unit camera-local up vector.
	Up mgl32.Vec3

	// WorldUp is the fixed reference up vector (0, 1, 0).
	WorldUp mgl32.Vec3

	// Yaw is the rotation about the world vertical axis, in degrees. Unbounded.
	Yaw float32

	// Pitch is the rotation about the camera's right axis, in degrees.
	Pitch float32

	// Zoom is the vertical field of view, in degrees.
	Zoom float32

	// MovementSpeed is the translation speed in world units per second.
	MovementSpeed float32

	// MouseSensitivity scales raw mouse deltas into degrees.
	MouseSensitivity float32
}

// cameraState holds the mutable fly camera data. yaw and pitch are only
// changed through setOrientation so the basis can never be stale.
type cameraState struct {
	position mgl32.Vec3
	front    mgl32.Vec3
	right    mgl32.Vec3
	up       mgl32.Vec3
	worldUp  mgl32.Vec3

	yaw   float32
	pitch float32
	zoom  float32

	movementSpeed    float32
	mouseSensitivity float32
}

func newCameraState() cameraState {
	s := cameraState{
		worldUp:          WorldUp,
		zoom:             DefaultZoom,
		movementSpeed:    DefaultMovementSpeed,
		mouseSensitivity: DefaultMouseSensitivity,
	}
	s.setOrientation(DefaultYaw, DefaultPitch)
	return s
}

// setOrientation stores yaw/pitch and re-derives the basis.
func (s *cameraState) setOrientation(yaw, pitch float32) {
	s.yaw = yaw
	s.pitch = pitch
	s.updateVectors()
}

// updateVectors recomputes front, right and up from yaw and pitch.
// When front is parallel to worldUp (unconstrained pitch at ±90°) the cross
// product vanishes, so right falls back to the horizontal vector implied by yaw.
func (s *cameraState) updateVectors() {
	yawRad := mgl32.DegToRad(s.yaw)
	pitchRad := mgl32.DegToRad(s.pitch)

	front := mgl32.Vec3{
		math32.Cos(yawRad) * math32.Cos(pitchRad),
		math32.Sin(pitchRad),
		math32.Sin(yawRad) * math32.Cos(pitchRad),
	}
	s.front = front.Normalize()

	right := s.front.Cross(s.worldUp)
	if right.Len() < 1e-6 {
		right = mgl32.Vec3{-math32.Sin(yawRad), 0, math32.Cos(yawRad)}
	}
	s.right = right.Normalize()
	s.up = s.right.Cross(s.front).Normalize()
}

func (s *cameraState) snapshot() CameraState {
	return CameraState{
		Position:         s.position,
		Front:            s.front,
		Right:            s.right,
		Up:               s.up,
		WorldUp:          s.worldUp,
		Yaw:              s.yaw,
		Pitch:            s.pitch,
		Zoom:             s.zoom,
		MovementSpeed:    s.movementSpeed,
		MouseSensitivity: s.mouseSensitivity,
	}
}
