package scene

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestDefaultManifest_IsValid(t *testing.T) {
	m := DefaultManifest()

	require.NoError(t, m.Validate())
	assert.Equal(t, "Military Base", m.Name)
	assert.Len(t, m.Objects, 16)
	assert.Len(t, m.Lights, 4)
	assert.Len(t, m.Skybox.Faces, 6)
	assert.Equal(t, 80, m.Ground.Tiles)
	assert.Equal(t, "resources/objects/kv2/kv2.obj", m.Objects[1].Model)
}

func TestDefaultManifest_Lights(t *testing.T) {
	lights, err := DefaultManifest().BuildLights()
	require.NoError(t, err)
	require.Len(t, lights, 4)

	assert.Equal(t, light.LightTypeDirectional, lights[0].Type())
	assert.Equal(t, light.LightTypePoint, lights[1].Type())
	assert.Equal(t, light.LightTypeSpot, lights[2].Type())
	assert.Equal(t, light.LightTypeSpot, lights[3].Type())

	c, lin, q := lights[1].AttenuationTerms()
	assert.Equal(t, float32(1), c)
	assert.Equal(t, float32(0.027), lin)
	assert.Equal(t, float32(0.0028), q)

	assert.InDelta(t, math32.Cos(mgl32.DegToRad(28)), lights[2].CutOff(), 1e-6)
	assert.Greater(t, lights[2].Direction().X(), float32(0), "left reflector points right")
	assert.Less(t, lights[3].Direction().X(), float32(0), "right reflector points left")
}

func TestObject_ModelMatrix(t *testing.T) {
	o := Object{Position: mgl32.Vec3{-8, -2, -25}, RotationY: 90, Scale: 1.5}
	m := o.ModelMatrix()

	origin := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	assertVec3InDelta(t, mgl32.Vec3{-8, -2, -25}, origin, 1e-5)

	// +X rotated 90° about Y lands on -Z, then scaled
	xAxis := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1.5}, xAxis, 1e-5)
}

func TestObject_ModelMatrixZeroScaleIsIdentityScale(t *testing.T) {
	o := Object{Position: mgl32.Vec3{1, 2, 3}}
	assert.Equal(t, mgl32.Translate3D(1, 2, 3), o.ModelMatrix())
}

func TestObject_ProxyMatrixRestsOnGround(t *testing.T) {
	o := Object{Position: mgl32.Vec3{10, -2, -7}, Extent: mgl32.Vec3{2, 4, 2}}
	m := o.ProxyMatrix()

	bottom := m.Mul4x1(mgl32.Vec4{0, -0.5, 0, 1}).Vec3()
	top := m.Mul4x1(mgl32.Vec4{0, 0.5, 0, 1}).Vec3()
	assertVec3InDelta(t, mgl32.Vec3{10, -2, -7}, bottom, 1e-5)
	assertVec3InDelta(t, mgl32.Vec3{10, 2, -7}, top, 1e-5)
}

func TestGround_TileMatrices(t *testing.T) {
	g := Ground{Tiles: 80, TileSize: 2, Height: -2}
	tiles := g.TileMatrices()
	require.Len(t, tiles, 6400)

	// tile (0, 0) and tile (40, 40)
	assertVec3InDelta(t, mgl32.Vec3{-80, -2, 80}, tiles[0].Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3(), 1e-4)
	assertVec3InDelta(t, mgl32.Vec3{0, -2, 0}, tiles[40*80+40].Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3(), 1e-4)

	// the quad normal (-Z) faces up after placement
	n := tiles[0].Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3().Normalize()
	assertVec3InDelta(t, mgl32.Vec3{0, 1, 0}, n, 1e-5)

	// a unit quad corner is scaled to the tile size and stays on the ground plane
	corner := tiles[40*80+40].Mul4x1(mgl32.Vec4{0.5, 0.5, 0, 1}).Vec3()
	assertVec3InDelta(t, mgl32.Vec3{1, -2, 1}, corner, 1e-4)

	assert.Nil(t, Ground{}.TileMatrices())
}

func TestValidate_ReportsProblems(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Manifest)
		want   string
	}{
		{"negative shininess", func(m *Manifest) { m.Shininess = -1 }, "shininess"},
		{"bad tile size", func(m *Manifest) { m.Ground.TileSize = 0 }, "tile_size"},
		{"nan tile size", func(m *Manifest) { m.Ground.TileSize = math32.NaN() }, "ground: non-finite"},
		{"nan ground height", func(m *Manifest) { m.Ground.Height = math32.NaN() }, "ground: non-finite"},
		{"too many tiles", func(m *Manifest) { m.Ground.Tiles = MaxGroundTiles + 1 }, "ground.tiles"},
		{"negative tiles", func(m *Manifest) { m.Ground.Tiles = -1 }, "ground.tiles"},
		{"nan clear color", func(m *Manifest) { m.ClearColor[1] = math32.NaN() }, "clear_color"},
		{"nan extent", func(m *Manifest) { m.Objects[3].Extent[1] = math32.NaN() }, "extent"},
		{"nan object color", func(m *Manifest) { m.Objects[0].Color[2] = math32.NaN() }, "non-finite color"},
		{"nan light position", func(m *Manifest) { m.Lights[1].Position[0] = math32.NaN() }, "non-finite value"},
		{"nan attenuation", func(m *Manifest) { m.Lights[1].Quadratic = math32.NaN() }, "non-finite value"},
		{"nan cut off", func(m *Manifest) { m.Lights[2].CutOff = math32.NaN() }, "non-finite value"},
		{"wrong face count", func(m *Manifest) { m.Skybox.Faces = m.Skybox.Faces[:5] }, "skybox.faces"},
		{"unnamed object", func(m *Manifest) { m.Objects[0].Name = "" }, "name is required"},
		{"nan position", func(m *Manifest) { m.Objects[2].Position[0] = math32.NaN() }, "non-finite"},
		{"zero extent", func(m *Manifest) { m.Objects[3].Extent = mgl32.Vec3{} }, "extent"},
		{"negative scale", func(m *Manifest) { m.Objects[3].Scale = -1 }, "scale"},
		{"unknown light", func(m *Manifest) { m.Lights[0].Type = "area" }, "unknown type"},
		{"directionless spot", func(m *Manifest) { m.Lights[2].Direction = mgl32.Vec3{} }, "needs a direction"},
		{"inverted cone", func(m *Manifest) { m.Lights[2].OuterCutOff = 10 }, "outer_cut_off"},
		{"negative attenuation", func(m *Manifest) { m.Lights[1].Linear = -1 }, "attenuation"},
		{"too many lights", func(m *Manifest) {
			for range light.MaxLights {
				m.Lights = append(m.Lights, LightSpec{Type: "point"})
			}
		}, "exceeds the limit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultManifest()
			tt.mutate(m)

			err := m.Validate()

			assert.ErrorIs(t, err, ErrInvalidManifest)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_DisabledLightsDoNotCount(t *testing.T) {
	m := DefaultManifest()
	for range light.MaxLights {
		m.Lights = append(m.Lights, LightSpec{Type: "point", Disabled: true})
	}
	assert.NoError(t, m.Validate())
}

func TestLightSpec_BuildDefaultsConstant(t *testing.T) {
	l, err := LightSpec{Type: "Point"}.Build()
	require.NoError(t, err)

	c, _, _ := l.AttenuationTerms()
	assert.Equal(t, float32(1), c)
	assert.Equal(t, light.LightTypePoint, l.Type())

	_, err = LightSpec{Type: "laser"}.Build()
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestManifest_EncodeDecodeDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultManifest().Encode(&buf))

	m, err := DecodeManifest(&buf)
	require.NoError(t, err)

	assert.Equal(t, DefaultManifest(), m)
}

const smallManifest = `
name = "Yard"
shininess = 16

[ground]
tiles = 4
tile_size = 1.5
height = -1

[[objects]]
name = "crate"
position = [1.0, -1.0, -3.0]
rotation_y = 45.0
extent = [1.0, 1.0, 1.0]

[[lights]]
type = "directional"
direction = [0.0, -1.0, 0.0]
diffuse = [1.0, 1.0, 1.0]
`

func TestDecodeManifest(t *testing.T) {
	m, err := DecodeManifest(strings.NewReader(smallManifest))
	require.NoError(t, err)

	assert.Equal(t, "Yard", m.Name)
	assert.Equal(t, float32(16), m.Shininess)
	assert.Equal(t, 4, m.Ground.Tiles)
	require.Len(t, m.Objects, 1)
	assert.Equal(t, mgl32.Vec3{1, -1, -3}, m.Objects[0].Position)
	assert.Equal(t, float32(45), m.Objects[0].RotationY)
	require.Len(t, m.Lights, 1)
	assert.Empty(t, m.Skybox.Faces)
}

func TestDecodeManifest_RejectsUnknownKeys(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader(smallManifest + "\nfog = true\n"))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestDecodeManifest_RejectsMalformed(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("name = "))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestDecodeManifest_Validates(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader(strings.Replace(smallManifest, "tile_size = 1.5", "tile_size = 0.0", 1)))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestDecodeManifest_RejectsNaNAndHugeGround(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"nan tile size", "[ground]\ntiles = 4\ntile_size = nan\n"},
		{"huge tile count", "[ground]\ntiles = 4294967296\ntile_size = 1.0\n"},
		{"nan light position", "[[lights]]\ntype = \"point\"\nposition = [nan, 0.0, 0.0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeManifest(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrInvalidManifest)
		})
	}
}

func TestGround_TileMatricesBounded(t *testing.T) {
	assert.Nil(t, Ground{Tiles: MaxGroundTiles + 1, TileSize: 1}.TileMatrices())
	assert.Len(t, Ground{Tiles: 3, TileSize: 1}.TileMatrices(), 9)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "yard.toml")
	require.NoError(t, os.WriteFile(path, []byte(smallManifest), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "Yard", m.Name)

	_, err = LoadManifest(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
