package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for the sun. No distance attenuation.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position,
	// attenuated by distance.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Attenuates with distance and fades between the inner and outer cut-off angles.
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu *sync.Mutex

	lightType LightType
	position  mgl32.Vec3
	direction mgl32.Vec3

	ambient  mgl32.Vec3
	diffuse  mgl32.Vec3
	specular mgl32.Vec3

	constant  float32
	linear    float32
	quadratic float32

	cutOff      float32 // cos(inner half-angle)
	outerCutOff float32 // cos(outer half-angle)

	enabled bool
}

// Light is a Phong light source: ambient, diffuse and specular colour terms
// plus, for point and spot lights, constant/linear/quadratic distance attenuation.
// Type-specific properties read as their zero values where they do not apply.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position. Meaningless for directional lights.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Direction returns the normalized direction the light travels in.
	// Meaningless for point lights.
	//
	// Returns:
	//   - mgl32.Vec3: the normalized direction
	Direction() mgl32.Vec3

	// Ambient returns the ambient colour term.
	//
	// Returns:
	//   - mgl32.Vec3: ambient RGB
	Ambient() mgl32.Vec3

	// Diffuse returns the diffuse colour term.
	//
	// Returns:
	//   - mgl32.Vec3: diffuse RGB
	Diffuse() mgl32.Vec3

	// Specular returns the specular colour term.
	//
	// Returns:
	//   - mgl32.Vec3: specular RGB
	Specular() mgl32.Vec3

	// AttenuationTerms returns the constant, linear and quadratic attenuation coefficients.
	//
	// Returns:
	//   - constant, linear, quadratic: the coefficients
	AttenuationTerms() (constant, linear, quadratic float32)

	// Attenuation evaluates 1 / (constant + linear*d + quadratic*d²).
	// Directional lights always return 1.
	//
	// Parameters:
	//   - distance: distance from the light to the shaded point
	//
	// Returns:
	//   - float32: the attenuation factor
	Attenuation(distance float32) float32

	// CutOff returns cos(inner cone half-angle) for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	CutOff() float32

	// OuterCutOff returns cos(outer cone half-angle) for spot lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCutOff() float32

	// SpotFactor returns the cone falloff for a point whose direction from the light
	// makes cosine theta with the cone axis: 1 inside the inner cone, 0 outside the
	// outer cone, linear in between. Non-spot lights always return 1.
	//
	// Parameters:
	//   - theta: cosine of the angle to the cone axis
	//
	// Returns:
	//   - float32: the falloff factor in [0, 1]
	SpotFactor(theta float32) float32

	// Enabled returns whether this light is active for rendering.
	// Disabled lights are skipped during GPU marshaling.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetDirection sets the direction of the light and normalizes it.
	// A zero vector is ignored.
	//
	// Parameters:
	//   - x, y, z: direction components (will be normalized)
	SetDirection(x, y, z float32)

	// SetSpotCone sets the inner and outer cone half-angles.
	// Angles are specified in degrees and stored as cosines.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with white diffuse/specular,
// no ambient, unit constant attenuation and a 12.5°/15° spot cone, then applies options.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:          &sync.Mutex{},
		lightType:   lightType,
		direction:   mgl32.Vec3{0, -1, 0},
		diffuse:     mgl32.Vec3{1, 1, 1},
		specular:    mgl32.Vec3{1, 1, 1},
		constant:    1,
		cutOff:      math32.Cos(mgl32.DegToRad(12.5)),
		outerCutOff: math32.Cos(mgl32.DegToRad(15)),
		enabled:     true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.direction
}

func (l *lightImpl) Ambient() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ambient
}

func (l *lightImpl) Diffuse() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.diffuse
}

func (l *lightImpl) Specular() mgl32.Vec3 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.specular
}

func (l *lightImpl) AttenuationTerms() (constant, linear, quadratic float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.constant, l.linear, l.quadratic
}

func (l *lightImpl) Attenuation(distance float32) float32 {
	if l.lightType == LightTypeDirectional {
		return 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return 1 / (l.constant + l.linear*distance + l.quadratic*distance*distance)
}

func (l *lightImpl) CutOff() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cutOff
}

func (l *lightImpl) OuterCutOff() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.outerCutOff
}

func (l *lightImpl) SpotFactor(theta float32) float32 {
	if l.lightType != LightTypeSpot {
		return 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	epsilon := l.cutOff - l.outerCutOff
	if epsilon <= 0 {
		if theta >= l.cutOff {
			return 1
		}
		return 0
	}
	return common.Clamp((theta-l.outerCutOff)/epsilon, 0, 1)
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = mgl32.Vec3{x, y, z}
}

func (l *lightImpl) SetDirection(x, y, z float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setDirection(mgl32.Vec3{x, y, z})
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setSpotCone(innerDeg, outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// setDirection normalizes and stores dir. Caller must hold the mutex or own l exclusively.
func (l *lightImpl) setDirection(dir mgl32.Vec3) {
	if dir.Len() == 0 {
		return
	}
	l.direction = dir.Normalize()
}

func (l *lightImpl) setSpotCone(innerDeg, outerDeg float32) {
	l.cutOff = math32.Cos(mgl32.DegToRad(innerDeg))
	l.outerCutOff = math32.Cos(mgl32.DegToRad(outerDeg))
}
