package scene

import "errors"

// ErrInvalidManifest is returned when a scene manifest fails validation.
var ErrInvalidManifest = errors.New("scene: invalid manifest")
