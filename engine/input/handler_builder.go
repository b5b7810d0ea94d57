package input

// HandlerOption is a functional option for configuring a Handler.
type HandlerOption func(*handlerImpl)

// WithBindings replaces the key-to-direction bindings. Bindings are applied in order.
//
// Parameters:
//   - bindings: the bindings to use
//
// Returns:
//   - HandlerOption: functional option to set the bindings
func WithBindings(bindings ...Binding) HandlerOption {
	return func(h *handlerImpl) {
		h.bindings = bindings
	}
}

// WithConstrainPitch sets whether mouse-look clamps pitch. Defaults to true.
//
// Parameters:
//   - constrain: true to clamp pitch
//
// Returns:
//   - HandlerOption: functional option to set pitch constraining
func WithConstrainPitch(constrain bool) HandlerOption {
	return func(h *handlerImpl) {
		h.constrainPitch = constrain
	}
}

// WithKeyAction runs fn on the initial press of key. Auto-repeat does not fire it again.
//
// Parameters:
//   - key: GLFW key code
//   - fn: the action to run
//
// Returns:
//   - HandlerOption: functional option to bind the action
func WithKeyAction(key uint32, fn func()) HandlerOption {
	return func(h *handlerImpl) {
		h.actions[key] = fn
	}
}
