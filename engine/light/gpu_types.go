package light

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"
)

// MaxLights is the number of light slots in the GPU light block.
// Lights beyond this count are not uploaded.
const MaxLights = 8

// DefaultShininess is the specular exponent shared by every surface.
const DefaultShininess float32 = 32

// GPULightSource is the canonical WGSL definition of the Light and LightBlock structs.
// Matches GPULight and GPULightBlock layouts exactly (uniform address space).
//
//go:embed assets/light.wgsl
var GPULightSource string

// GPULight is the GPU-aligned representation of a single Phong light.
// Size: 96 bytes, a multiple of 16 so it can be a uniform array element.
type GPULight struct {
	Position    [3]float32 // offset  0
	LightType   uint32     // offset 12: 0 = directional, 1 = point, 2 = spot
	Direction   [3]float32 // offset 16
	Constant    float32    // offset 28
	Ambient     [3]float32 // offset 32
	Linear      float32    // offset 44
	Diffuse     [3]float32 // offset 48
	Quadratic   float32    // offset 60
	Specular    [3]float32 // offset 64
	CutOff      float32    // offset 76: cos(inner half-angle)
	OuterCutOff float32    // offset 80: cos(outer half-angle)
	Enabled     uint32     // offset 84
	_pad        [2]uint32  // offset 88
}

// Size returns the size of the GPULight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPULight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPULight) Marshal() []byte {
	buf := make([]byte, g.Size())
	putVec3(buf[0:], g.Position)
	binary.LittleEndian.PutUint32(buf[12:], g.LightType)
	putVec3(buf[16:], g.Direction)
	putFloat(buf[28:], g.Constant)
	putVec3(buf[32:], g.Ambient)
	putFloat(buf[44:], g.Linear)
	putVec3(buf[48:], g.Diffuse)
	putFloat(buf[60:], g.Quadratic)
	putVec3(buf[64:], g.Specular)
	putFloat(buf[76:], g.CutOff)
	putFloat(buf[80:], g.OuterCutOff)
	binary.LittleEndian.PutUint32(buf[84:], g.Enabled)
	return buf
}

// GPULightBlock is the whole light uniform: a 16-byte header followed by MaxLights slots.
type GPULightBlock struct {
	Count     uint32
	Shininess float32
	Lights    [MaxLights]GPULight
}

// GPULightBlockSize is the byte size of a marshaled GPULightBlock.
const GPULightBlockSize = 16 + MaxLights*96

// Marshal serializes the block. Unused light slots are zeroed.
//
// Returns:
//   - []byte: GPULightBlockSize bytes ready for GPU upload
func (b *GPULightBlock) Marshal() []byte {
	buf := make([]byte, GPULightBlockSize)
	binary.LittleEndian.PutUint32(buf[0:], b.Count)
	putFloat(buf[4:], b.Shininess)
	for i := 0; i < int(b.Count) && i < MaxLights; i++ {
		copy(buf[16+i*96:], b.Lights[i].Marshal())
	}
	return buf
}

// NewGPULight converts a Light into its GPU representation.
//
// Parameters:
//   - l: the light to convert
//
// Returns:
//   - GPULight: the packed light
func NewGPULight(l Light) GPULight {
	c, lin, q := l.AttenuationTerms()
	g := GPULight{
		Position:    l.Position(),
		LightType:   uint32(l.Type()),
		Direction:   l.Direction(),
		Constant:    c,
		Ambient:     l.Ambient(),
		Linear:      lin,
		Diffuse:     l.Diffuse(),
		Quadratic:   q,
		Specular:    l.Specular(),
		CutOff:      l.CutOff(),
		OuterCutOff: l.OuterCutOff(),
	}
	if l.Enabled() {
		g.Enabled = 1
	}
	return g
}

// NewGPULightBlock packs the enabled lights, in order, into a light block.
// Disabled lights are skipped; lights past MaxLights are dropped.
//
// Parameters:
//   - lights: the scene lights
//   - shininess: the specular exponent
//
// Returns:
//   - GPULightBlock: the packed block
//   - int: how many enabled lights were dropped for lack of slots
func NewGPULightBlock(lights []Light, shininess float32) (GPULightBlock, int) {
	block := GPULightBlock{Shininess: shininess}
	dropped := 0
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		if block.Count == MaxLights {
			dropped++
			continue
		}
		block.Lights[block.Count] = NewGPULight(l)
		block.Count++
	}
	return block, dropped
}

func putFloat(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func putVec3(buf []byte, v [3]float32) {
	for i := range 3 {
		putFloat(buf[i*4:], v[i])
	}
}
