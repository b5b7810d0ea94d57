package camera

import "errors"

// ErrInvalidInput is returned when a controller operation or option receives a
// non-finite value, a negative elapsed time, or an unknown movement direction.
// The controller state is left untouched whenever it is returned.
var ErrInvalidInput = errors.New("camera: invalid input")
