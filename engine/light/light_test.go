package light

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLight_Defaults(t *testing.T) {
	l := NewLight(LightTypePoint)

	assert.Equal(t, LightTypePoint, l.Type())
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, l.Direction())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, l.Diffuse())
	assert.Equal(t, mgl32.Vec3{}, l.Ambient())
	c, lin, q := l.AttenuationTerms()
	assert.Equal(t, float32(1), c)
	assert.Equal(t, float32(0), lin)
	assert.Equal(t, float32(0), q)
	assert.True(t, l.Enabled())
}

func TestNewLight_Options(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(10, 5.5, -3),
		WithDirection(-11, -5.5, -11),
		WithAmbient(0.1, 0.1, 0),
		WithDiffuse(1, 1, 1),
		WithSpecular(0.5, 0.5, 0.5),
		WithAttenuation(1, 0.007, 0.0002),
		WithSpotCone(28, 30),
		WithEnabled(false),
	)

	assert.Equal(t, mgl32.Vec3{10, 5.5, -3}, l.Position())
	assert.InDelta(t, 1, l.Direction().Len(), 1e-6)
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0}, l.Ambient())
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, l.Specular())
	assert.InDelta(t, math.Cos(28*math.Pi/180), l.CutOff(), 1e-6)
	assert.InDelta(t, math.Cos(30*math.Pi/180), l.OuterCutOff(), 1e-6)
	assert.False(t, l.Enabled())
}

func TestSetDirection_IgnoresZero(t *testing.T) {
	l := NewLight(LightTypeDirectional, WithDirection(-1, -1, -1))
	before := l.Direction()

	l.SetDirection(0, 0, 0)

	assert.Equal(t, before, l.Direction())
}

func TestAttenuation(t *testing.T) {
	point := NewLight(LightTypePoint, WithAttenuation(1, 0.027, 0.0028))
	assert.Equal(t, float32(1), point.Attenuation(0))
	assert.InDelta(t, 1/(1+0.027*10+0.0028*100), point.Attenuation(10), 1e-6)
	assert.Less(t, point.Attenuation(20), point.Attenuation(10))

	sun := NewLight(LightTypeDirectional, WithAttenuation(1, 1, 1))
	assert.Equal(t, float32(1), sun.Attenuation(1000))
}

func TestSpotFactor(t *testing.T) {
	spot := NewLight(LightTypeSpot, WithSpotCone(28, 30))
	inner := math32.Cos(mgl32.DegToRad(28))
	outer := math32.Cos(mgl32.DegToRad(30))

	assert.Equal(t, float32(1), spot.SpotFactor(1))
	assert.Equal(t, float32(1), spot.SpotFactor(inner))
	assert.Equal(t, float32(0), spot.SpotFactor(outer))
	assert.Equal(t, float32(0), spot.SpotFactor(0))
	assert.InDelta(t, 0.5, spot.SpotFactor((inner+outer)/2), 1e-3)

	point := NewLight(LightTypePoint)
	assert.Equal(t, float32(1), point.SpotFactor(-1))
}

func TestLightType_String(t *testing.T) {
	assert.Equal(t, "directional", LightTypeDirectional.String())
	assert.Equal(t, "point", LightTypePoint.String())
	assert.Equal(t, "spot", LightTypeSpot.String())
	assert.Equal(t, "unknown", LightType(7).String())
}

func readFloat(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
}

func TestGPULight_Marshal(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(1, 2, 3),
		WithDirection(0, 0, -1),
		WithAmbient(0.1, 0.2, 0.3),
		WithDiffuse(0.4, 0.5, 0.6),
		WithSpecular(0.7, 0.8, 0.9),
		WithAttenuation(1, 0.5, 0.25),
	)
	g := NewGPULight(l)

	buf := g.Marshal()

	require.Len(t, buf, 96)
	assert.Equal(t, 96, g.Size())
	assert.Equal(t, float32(1), readFloat(buf, 0))
	assert.Equal(t, float32(3), readFloat(buf, 8))
	assert.Equal(t, uint32(LightTypeSpot), binary.LittleEndian.Uint32(buf[12:]))
	assert.Equal(t, float32(-1), readFloat(buf, 24))
	assert.Equal(t, float32(1), readFloat(buf, 28))
	assert.Equal(t, float32(0.1), readFloat(buf, 32))
	assert.Equal(t, float32(0.5), readFloat(buf, 44))
	assert.Equal(t, float32(0.4), readFloat(buf, 48))
	assert.Equal(t, float32(0.25), readFloat(buf, 60))
	assert.Equal(t, float32(0.9), readFloat(buf, 72))
	assert.Equal(t, l.CutOff(), readFloat(buf, 76))
	assert.Equal(t, l.OuterCutOff(), readFloat(buf, 80))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(buf[84:]))
}

func TestNewGPULightBlock_SkipsDisabledAndCaps(t *testing.T) {
	var lights []Light
	lights = append(lights, NewLight(LightTypePoint, WithEnabled(false)))
	for i := range MaxLights + 2 {
		lights = append(lights, NewLight(LightTypePoint, WithPosition(float32(i), 0, 0)))
	}

	block, dropped := NewGPULightBlock(lights, DefaultShininess)

	assert.Equal(t, uint32(MaxLights), block.Count)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, DefaultShininess, block.Shininess)
	assert.Equal(t, [3]float32{0, 0, 0}, block.Lights[0].Position)
	assert.Equal(t, [3]float32{7, 0, 0}, block.Lights[7].Position)

	buf := block.Marshal()
	require.Len(t, buf, GPULightBlockSize)
	assert.Equal(t, uint32(MaxLights), binary.LittleEndian.Uint32(buf[0:]))
	assert.Equal(t, DefaultShininess, readFloat(buf, 4))
	assert.Equal(t, float32(7), readFloat(buf, 16+7*96))
}

func TestGPULightSource_DeclaresStructs(t *testing.T) {
	assert.Contains(t, GPULightSource, "struct Light {")
	assert.Contains(t, GPULightSource, "struct LightBlock {")
	assert.Contains(t, GPULightSource, "array<Light, 8>")
}
