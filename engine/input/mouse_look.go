package input

// MouseLook turns absolute cursor positions into per-sample look offsets.
// The first sample only latches the position, so a cursor that starts far from
// the window centre does not snap the view. The y offset is inverted (previous
// minus current) because screen y grows downward while pitch grows upward.
type MouseLook struct {
	lastX, lastY float64
	primed       bool
}

// Sample records the cursor position and returns the offset from the previous sample.
func (m *MouseLook) Sample(x, y float64) (xOffset, yOffset float32) {
	if !m.primed {
		m.lastX, m.lastY = x, y
		m.primed = true
		return 0, 0
	}
	xOffset = float32(x - m.lastX)
	yOffset = float32(m.lastY - y)
	m.lastX, m.lastY = x, y
	return xOffset, yOffset
}

// Reset forgets the last position; the next sample latches again.
func (m *MouseLook) Reset() {
	m.primed = false
}
