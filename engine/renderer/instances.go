package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// InstanceStride is the byte size of one packed Instance.
const InstanceStride = 128

// Instance is the per-draw data for one ground tile or proxy box.
type Instance struct {
	Model  mgl32.Mat4
	Normal mgl32.Mat3 // inverse transpose of the model's upper 3x3
	Color  mgl32.Vec3
}

// NewInstance derives the normal matrix for model.
func NewInstance(model mgl32.Mat4, color mgl32.Vec3) Instance {
	return Instance{
		Model:  model,
		Normal: model.Mat3().Inv().Transpose(),
		Color:  color,
	}
}

// marshalInstances packs instances as: model (4 columns), normal matrix
// (3 columns, each padded to vec4), colour (vec4, alpha 1).
func marshalInstances(instances []Instance) []byte {
	buf := make([]byte, len(instances)*InstanceStride)
	for i, inst := range instances {
		b := buf[i*InstanceStride:]
		for j := range 16 {
			putFloat(b[j*4:], inst.Model[j])
		}
		for col := range 3 {
			for row := range 3 {
				putFloat(b[64+col*16+row*4:], inst.Normal[col*3+row])
			}
		}
		putFloat(b[112:], inst.Color[0])
		putFloat(b[116:], inst.Color[1])
		putFloat(b[120:], inst.Color[2])
		putFloat(b[124:], 1)
	}
	return buf
}

// groundInstances returns one instance per ground tile.
func groundInstances(g scene.Ground) []Instance {
	tiles := g.TileMatrices()
	out := make([]Instance, len(tiles))
	for i, m := range tiles {
		out[i] = NewInstance(m, g.Color)
	}
	return out
}

// objectInstances returns one proxy box instance per placed object.
func objectInstances(objects []scene.Object) []Instance {
	out := make([]Instance, len(objects))
	for i, o := range objects {
		out[i] = NewInstance(o.ProxyMatrix(), o.Color)
	}
	return out
}

// skyUniformSize is the byte size of the sky uniform: a camera block plus zenith and horizon colours.
const skyUniformSize = 80 + 32

// marshalSkyUniform packs the sky pass uniform.
func marshalSkyUniform(u camera.GPUCameraUniform, zenith, horizon mgl32.Vec3) []byte {
	buf := make([]byte, skyUniformSize)
	copy(buf, u.Marshal())
	for i := range 3 {
		putFloat(buf[80+i*4:], zenith[i])
		putFloat(buf[96+i*4:], horizon[i])
	}
	putFloat(buf[92:], 1)
	putFloat(buf[108:], 1)
	return buf
}

func putFloat(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}
