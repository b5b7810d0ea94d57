package camera

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func newTestController(t *testing.T, options ...FlyControllerOption) FlyController {
	t.Helper()
	fc, err := NewFlyController(options...)
	require.NoError(t, err)
	return fc
}

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func assertOrthonormal(t *testing.T, s CameraState) {
	t.Helper()
	assert.InDelta(t, 1, s.Front.Len(), eps, "front not unit: %v", s.Front)
	assert.InDelta(t, 1, s.Right.Len(), eps, "right not unit: %v", s.Right)
	assert.InDelta(t, 1, s.Up.Len(), eps, "up not unit: %v", s.Up)
	assert.InDelta(t, 0, s.Front.Dot(s.Right), eps)
	assert.InDelta(t, 0, s.Front.Dot(s.Up), eps)
	assert.InDelta(t, 0, s.Right.Dot(s.Up), eps)
}

func TestNewFlyController_Defaults(t *testing.T) {
	fc := newTestController(t)
	s := fc.State()

	assert.Equal(t, mgl32.Vec3{}, s.Position)
	assert.Equal(t, DefaultYaw, s.Yaw)
	assert.Equal(t, DefaultPitch, s.Pitch)
	assert.Equal(t, DefaultZoom, s.Zoom)
	assert.Equal(t, DefaultMovementSpeed, s.MovementSpeed)
	assert.Equal(t, DefaultMouseSensitivity, s.MouseSensitivity)
	assert.Equal(t, WorldUp, s.WorldUp)

	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, s.Front, eps)
	assertVec3InDelta(t, mgl32.Vec3{1, 0, 0}, s.Right, eps)
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, s.Up, eps)
}

func TestNewFlyController_Options(t *testing.T) {
	fc := newTestController(t,
		WithPosition(1, 2, 3),
		WithYaw(0),
		WithPitch(10),
		WithZoom(30),
		WithMovementSpeed(5),
		WithMouseSensitivity(0.2),
	)

	assert.Equal(t, mgl32.Vec3{1, 2, 3}, fc.Position())
	assert.Equal(t, float32(0), fc.Yaw())
	assert.Equal(t, float32(10), fc.Pitch())
	assert.Equal(t, float32(30), fc.FieldOfView())
	assert.Equal(t, float32(5), fc.MovementSpeed())
	assert.Equal(t, float32(0.2), fc.MouseSensitivity())

	// yaw 0 faces +X; pitch tilts it upward
	front := fc.Front()
	assert.Greater(t, front.X(), float32(0))
	assert.Greater(t, front.Y(), float32(0))
	assert.InDelta(t, 0, front.Z(), eps)
	assertOrthonormal(t, fc.State())
}

func TestNewFlyController_ClampsInitialPitchAndZoom(t *testing.T) {
	fc := newTestController(t, WithPitch(120), WithZoom(90))
	assert.Equal(t, MaxPitch, fc.Pitch())
	assert.Equal(t, MaxZoom, fc.FieldOfView())

	fc = newTestController(t, WithPitch(-120), WithZoom(0))
	assert.Equal(t, MinPitch, fc.Pitch())
	assert.Equal(t, MinZoom, fc.FieldOfView())
}

func TestNewFlyController_RejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		option FlyControllerOption
	}{
		{"nan position", WithPosition(math32.NaN(), 0, 0)},
		{"inf yaw", WithYaw(math32.Inf(1))},
		{"nan pitch", WithPitch(math32.NaN())},
		{"inf zoom", WithZoom(math32.Inf(-1))},
		{"negative speed", WithMovementSpeed(-1)},
		{"negative sensitivity", WithMouseSensitivity(-0.1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := NewFlyController(tt.option)
			assert.Nil(t, fc)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestBasisIsOrthonormal(t *testing.T) {
	for yaw := float32(-720); yaw <= 720; yaw += 37.5 {
		for pitch := MinPitch; pitch <= MaxPitch; pitch += 8.9 {
			fc := newTestController(t, WithYaw(yaw), WithPitch(pitch))
			assertOrthonormal(t, fc.State())
		}
	}
}

func TestBasisIsOrthonormal_UnconstrainedPitch(t *testing.T) {
	fc := newTestController(t, WithMouseSensitivity(1))

	// walks pitch through +90, where front is parallel to world up
	for range 20 {
		require.NoError(t, fc.ProcessMouseMovement(0, 9, false))
		assertOrthonormal(t, fc.State())
	}
	assert.InDelta(t, 180, fc.Pitch(), eps)
}

func TestProcessMouseMovement_ZeroIsIdempotent(t *testing.T) {
	fc := newTestController(t, WithPosition(3, -1, 7), WithYaw(33), WithPitch(-12))
	before := fc.State()

	for range 5 {
		require.NoError(t, fc.ProcessMouseMovement(0, 0, true))
	}

	assert.Equal(t, before, fc.State())
}

func TestProcessMouseMovement_AppliesSensitivity(t *testing.T) {
	fc := newTestController(t)

	require.NoError(t, fc.ProcessMouseMovement(100, 50, true))

	assert.InDelta(t, -80, fc.Yaw(), eps)
	assert.InDelta(t, 5, fc.Pitch(), eps)
	assertOrthonormal(t, fc.State())
}

func TestProcessMouseMovement_PositiveYOffsetTiltsUp(t *testing.T) {
	fc := newTestController(t)

	require.NoError(t, fc.ProcessMouseMovement(0, 100, true))

	assert.Greater(t, fc.Front().Y(), float32(0))
}

func TestProcessMouseMovement_PitchClamp(t *testing.T) {
	fc := newTestController(t)

	for range 50 {
		require.NoError(t, fc.ProcessMouseMovement(0, 1000, true))
		assert.LessOrEqual(t, fc.Pitch(), MaxPitch)
	}
	assert.Equal(t, MaxPitch, fc.Pitch())

	for range 50 {
		require.NoError(t, fc.ProcessMouseMovement(0, -1000, true))
		assert.GreaterOrEqual(t, fc.Pitch(), MinPitch)
	}
	assert.Equal(t, MinPitch, fc.Pitch())
}

func TestProcessMouseMovement_UnconstrainedPitchIsUnbounded(t *testing.T) {
	fc := newTestController(t)

	for range 10 {
		require.NoError(t, fc.ProcessMouseMovement(0, 1000, false))
	}

	assert.InDelta(t, 1000, fc.Pitch(), eps)
}

func TestProcessMouseMovement_YawIsUnbounded(t *testing.T) {
	fc := newTestController(t, WithMouseSensitivity(1))

	require.NoError(t, fc.ProcessMouseMovement(360, 0, true))

	assert.InDelta(t, 270, fc.Yaw(), eps)
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, fc.Front(), 1e-4)
}

func TestProcessMouseMovement_RejectsNonFinite(t *testing.T) {
	fc := newTestController(t, WithYaw(10), WithPitch(20))
	before := fc.State()

	for _, off := range [][2]float32{
		{math32.NaN(), 0},
		{0, math32.NaN()},
		{math32.Inf(1), 0},
		{0, math32.Inf(-1)},
	} {
		err := fc.ProcessMouseMovement(off[0], off[1], true)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}

	assert.Equal(t, before, fc.State())
}

func TestProcessMouseScroll_Clamp(t *testing.T) {
	fc := newTestController(t)

	require.NoError(t, fc.ProcessMouseScroll(1000))
	require.NoError(t, fc.ProcessMouseScroll(1000))
	assert.Equal(t, float32(1.0), fc.FieldOfView())

	require.NoError(t, fc.ProcessMouseScroll(-1000))
	assert.Equal(t, float32(45.0), fc.FieldOfView())
}

func TestProcessMouseScroll_Steps(t *testing.T) {
	fc := newTestController(t)

	require.NoError(t, fc.ProcessMouseScroll(2))
	assert.Equal(t, float32(43), fc.FieldOfView())

	require.NoError(t, fc.ProcessMouseScroll(-1))
	assert.Equal(t, float32(44), fc.FieldOfView())
}

func TestProcessMouseScroll_RejectsNonFinite(t *testing.T) {
	fc := newTestController(t, WithZoom(30))

	assert.ErrorIs(t, fc.ProcessMouseScroll(math32.NaN()), ErrInvalidInput)
	assert.ErrorIs(t, fc.ProcessMouseScroll(math32.Inf(1)), ErrInvalidInput)
	assert.Equal(t, float32(30), fc.FieldOfView())
}

func TestProcessKeyboard_Movement(t *testing.T) {
	tests := []struct {
		direction Direction
		want      mgl32.Vec3
	}{
		{Forward, mgl32.Vec3{0, 0, -2.5}},
		{Backward, mgl32.Vec3{0, 0, 2.5}},
		{Left, mgl32.Vec3{-2.5, 0, 0}},
		{Right, mgl32.Vec3{2.5, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			fc := newTestController(t, WithMovementSpeed(2.5))

			require.NoError(t, fc.ProcessKeyboard(tt.direction, 1.0))

			assertVec3InDelta(t, tt.want, fc.Position(), 1e-5)
		})
	}
}

func TestProcessKeyboard_ZeroDeltaIsNoop(t *testing.T) {
	fc := newTestController(t, WithPosition(1, 1, 1))

	require.NoError(t, fc.ProcessKeyboard(Forward, 0))

	assert.Equal(t, mgl32.Vec3{1, 1, 1}, fc.Position())
}

func TestProcessKeyboard_DoesNotChangeOrientation(t *testing.T) {
	fc := newTestController(t, WithYaw(20), WithPitch(-30))
	before := fc.State()

	require.NoError(t, fc.ProcessKeyboard(Left, 0.5))
	after := fc.State()

	assert.Equal(t, before.Yaw, after.Yaw)
	assert.Equal(t, before.Pitch, after.Pitch)
	assert.Equal(t, before.Front, after.Front)
	assert.NotEqual(t, before.Position, after.Position)
}

func TestProcessKeyboard_RejectsInvalidInput(t *testing.T) {
	fc := newTestController(t, WithPosition(4, 5, 6))

	tests := []struct {
		name      string
		direction Direction
		dt        float32
	}{
		{"negative delta", Forward, -0.016},
		{"nan delta", Backward, math32.NaN()},
		{"inf delta", Right, math32.Inf(1)},
		{"unknown direction", Direction(42), 1},
		{"overflowing delta", Forward, 3e38},
		{"overflowing strafe", Left, 3e38},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fc.ProcessKeyboard(tt.direction, tt.dt)
			assert.True(t, errors.Is(err, ErrInvalidInput), "got %v", err)
			assert.Equal(t, mgl32.Vec3{4, 5, 6}, fc.Position())
			assert.True(t, isFiniteMat4(fc.ViewMatrix()))
		})
	}
}

func isFiniteMat4(m mgl32.Mat4) bool {
	for _, v := range m {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestViewMatrix_MapsEyeToOrigin(t *testing.T) {
	for _, yaw := range []float32{-90, 0, 45, 170} {
		fc := newTestController(t, WithPosition(3, -2, 8), WithYaw(yaw), WithPitch(25))

		eye := fc.Position()
		got := fc.ViewMatrix().Mul4x1(eye.Vec4(1))

		assertVec3InDelta(t, mgl32.Vec3{}, got.Vec3(), 1e-4)
		assert.InDelta(t, 1, got.W(), eps)
	}
}

func TestViewMatrix_FrontMapsToNegativeZ(t *testing.T) {
	fc := newTestController(t, WithPosition(1, 2, 3), WithYaw(60), WithPitch(-15))

	target := fc.Position().Add(fc.Front())
	got := fc.ViewMatrix().Mul4x1(target.Vec4(1)).Vec3()

	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, got, 1e-4)
}

func TestViewMatrix_IsStable(t *testing.T) {
	fc := newTestController(t, WithPosition(-2, 1, 5), WithYaw(12), WithPitch(7), WithZoom(20))

	first := fc.ViewMatrix()
	fov := fc.FieldOfView()
	for range 10 {
		assert.Equal(t, first, fc.ViewMatrix())
		assert.Equal(t, fov, fc.FieldOfView())
	}
	assert.Equal(t, float32(20), fov)
}

func TestSkyboxViewMatrix_DropsTranslation(t *testing.T) {
	fc := newTestController(t, WithPosition(10, 20, 30), WithYaw(15))

	sky := fc.SkyboxViewMatrix()
	view := fc.ViewMatrix()

	assert.Equal(t, mgl32.Vec4{0, 0, 0, 1}, sky.Col(3))
	assert.Equal(t, view.Mat3(), sky.Mat3())
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "forward", Forward.String())
	assert.Equal(t, "backward", Backward.String())
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "Direction(9)", Direction(9).String())
}
