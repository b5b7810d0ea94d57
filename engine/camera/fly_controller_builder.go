package camera

// FlyControllerOption is a functional option for configuring a FlyController.
// Values are validated once all options have been applied.
type FlyControllerOption func(*flyControllerImpl)

// WithPosition sets the initial eye position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - FlyControllerOption: functional option to set the position
func WithPosition(x, y, z float32) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.state.position[0] = x
		fc.state.position[1] = y
		fc.state.position[2] = z
	}
}

// WithYaw sets the initial yaw in degrees. The default of -90° faces -Z.
//
// Parameters:
//   - yaw: yaw angle in degrees
//
// Returns:
//   - FlyControllerOption: functional option to set the yaw
func WithYaw(yaw float32) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.state.yaw = yaw
	}
}

// WithPitch sets the initial pitch in degrees, clamped to [MinPitch, MaxPitch].
//
// Parameters:
//   - pitch: pitch angle in degrees
//
// Returns:
//   - FlyControllerOption: functional option to set the pitch
func WithPitch(pitch float32) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.state.pitch = pitch
	}
}

// WithZoom sets the initial field of view in degrees, clamped to [MinZoom, MaxZoom].
//
// Parameters:
//   - zoom: vertical field of view in degrees
//
// Returns:
//   - FlyControllerOption: functional option to set the zoom
func WithZoom(zoom float32) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.state.zoom = zoom
	}
}

// WithMovementSpeed sets the translation speed.
//
// Parameters:
//   - speed: world units per second (must be >= 0)
//
// Returns:
//   - FlyControllerOption: functional option to set the movement speed
func WithMovementSpeed(speed float32) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.state.movementSpeed = speed
	}
}

// WithMouseSensitivity sets the mouse-look sensitivity.
//
// Parameters:
//   - sensitivity: degrees per pixel of mouse motion (must be >= 0)
//
// Returns:
//   - FlyControllerOption: functional option to set mouse sensitivity
func WithMouseSensitivity(sensitivity float32) FlyControllerOption {
	return func(fc *flyControllerImpl) {
		fc.state.mouseSensitivity = sensitivity
	}
}
