package input

// KeyState tracks which keys are currently held down.
type KeyState struct {
	held map[uint32]bool
}

func NewKeyState() *KeyState {
	return &KeyState{held: make(map[uint32]bool)}
}

// Press marks key as held. It reports whether the key was previously up,
// so auto-repeat events can be told apart from the initial press.
func (k *KeyState) Press(key uint32) bool {
	wasUp := !k.held[key]
	k.held[key] = true
	return wasUp
}

func (k *KeyState) Release(key uint32) {
	delete(k.held, key)
}

func (k *KeyState) Held(key uint32) bool {
	return k.held[key]
}

// Clear releases every key, e.g. after the window loses focus.
func (k *KeyState) Clear() {
	clear(k.held)
}
