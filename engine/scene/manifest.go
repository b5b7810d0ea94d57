package scene

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Manifest describes a static scene: where each object sits, how the ground is
// tiled, which lights shine on it and which cube-map faces make up the sky.
// It is the on-disk (TOML) form of a Scene.
type Manifest struct {
	Name       string      `toml:"name"`
	ClearColor mgl32.Vec3  `toml:"clear_color"`
	Shininess  float32     `toml:"shininess"`
	Ground     Ground      `toml:"ground"`
	Skybox     Skybox      `toml:"skybox"`
	Objects    []Object    `toml:"objects"`
	Lights     []LightSpec `toml:"lights"`
}

// Object is one placed model. The model file itself is not loaded; the renderer
// draws a box of the given Extent (world units, full size) in its place.
type Object struct {
	Name      string     `toml:"name"`
	Model     string     `toml:"model"`
	Position  mgl32.Vec3 `toml:"position"`
	RotationY float32    `toml:"rotation_y"` // degrees
	Scale     float32    `toml:"scale"`      // model-space scale; 0 means 1
	Color     mgl32.Vec3 `toml:"color"`
	Extent    mgl32.Vec3 `toml:"extent"`
}

// ModelMatrix returns translate(Position) * rotateY(RotationY) * scale(Scale),
// the transform that would place the object's model file.
func (o Object) ModelMatrix() mgl32.Mat4 {
	s := o.Scale
	if s == 0 {
		s = 1
	}
	return mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(o.RotationY))).
		Mul4(mgl32.Scale3D(s, s, s))
}

// ProxyMatrix places a unit cube centred on the origin as a box of size Extent
// resting on the ground at Position, rotated like the model.
func (o Object) ProxyMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(o.Position.X(), o.Position.Y()+o.Extent.Y()/2, o.Position.Z()).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(o.RotationY))).
		Mul4(mgl32.Scale3D(o.Extent.X(), o.Extent.Y(), o.Extent.Z()))
}

// MaxGroundTiles bounds Ground.Tiles per side.
const MaxGroundTiles = 1024

// Ground is a square grid of Tiles x Tiles quads centred under the origin.
type Ground struct {
	Tiles    int        `toml:"tiles"`
	TileSize float32    `toml:"tile_size"`
	Height   float32    `toml:"height"`
	Texture  string     `toml:"texture"`
	Color    mgl32.Vec3 `toml:"color"`
}

// TileMatrices returns one transform per tile, mapping a unit quad in the XY plane
// (normal -Z) onto the ground (normal +Y). Tile (i, j) is centred at
// ((i-n/2)*size, height, -(j-n/2)*size).
func (g Ground) TileMatrices() []mgl32.Mat4 {
	if g.Tiles <= 0 || g.Tiles > MaxGroundTiles {
		return nil
	}
	half := g.Tiles / 2
	rot := mgl32.HomogRotate3DX(mgl32.DegToRad(90))
	scale := mgl32.Scale3D(g.TileSize, g.TileSize, g.TileSize)
	out := make([]mgl32.Mat4, 0, g.Tiles*g.Tiles)
	for i := range g.Tiles {
		for j := range g.Tiles {
			x := float32(i-half) * g.TileSize
			z := float32(j-half) * -g.TileSize
			out = append(out, mgl32.Translate3D(x, g.Height, z).Mul4(rot).Mul4(scale))
		}
	}
	return out
}

// Skybox lists the six cube-map face images in +X, -X, +Y, -Y, +Z, -Z order.
type Skybox struct {
	Faces []string `toml:"faces"`
}

// LightSpec is the manifest form of a light.Light.
type LightSpec struct {
	Type        string     `toml:"type"` // directional, point or spot
	Position    mgl32.Vec3 `toml:"position"`
	Direction   mgl32.Vec3 `toml:"direction"`
	Ambient     mgl32.Vec3 `toml:"ambient"`
	Diffuse     mgl32.Vec3 `toml:"diffuse"`
	Specular    mgl32.Vec3 `toml:"specular"`
	Constant    float32    `toml:"constant"`
	Linear      float32    `toml:"linear"`
	Quadratic   float32    `toml:"quadratic"`
	CutOff      float32    `toml:"cut_off"`       // degrees
	OuterCutOff float32    `toml:"outer_cut_off"` // degrees
	Disabled    bool       `toml:"disabled"`
}

func (ls LightSpec) lightType() (light.LightType, bool) {
	switch strings.ToLower(ls.Type) {
	case "directional":
		return light.LightTypeDirectional, true
	case "point":
		return light.LightTypePoint, true
	case "spot":
		return light.LightTypeSpot, true
	default:
		return 0, false
	}
}

// Build converts the spec into a light.Light.
//
// Parameters:
//   - none
//
// Returns:
//   - light.Light: the light
//   - error: ErrInvalidManifest if the type is unknown
func (ls LightSpec) Build() (light.Light, error) {
	lt, ok := ls.lightType()
	if !ok {
		return nil, fmt.Errorf("light type %q: %w", ls.Type, ErrInvalidManifest)
	}
	constant := ls.Constant
	if constant == 0 && lt != light.LightTypeDirectional {
		constant = 1
	}
	opts := []light.LightBuilderOption{
		light.WithPosition(ls.Position.X(), ls.Position.Y(), ls.Position.Z()),
		light.WithDirection(ls.Direction.X(), ls.Direction.Y(), ls.Direction.Z()),
		light.WithAmbient(ls.Ambient.X(), ls.Ambient.Y(), ls.Ambient.Z()),
		light.WithDiffuse(ls.Diffuse.X(), ls.Diffuse.Y(), ls.Diffuse.Z()),
		light.WithSpecular(ls.Specular.X(), ls.Specular.Y(), ls.Specular.Z()),
		light.WithAttenuation(constant, ls.Linear, ls.Quadratic),
		light.WithEnabled(!ls.Disabled),
	}
	if lt == light.LightTypeSpot {
		opts = append(opts, light.WithSpotCone(ls.CutOff, ls.OuterCutOff))
	}
	return light.NewLight(lt, opts...), nil
}

// Validate checks the manifest for values the viewer cannot render.
// All problems are reported together.
//
// Returns:
//   - error: nil, or an error wrapping ErrInvalidManifest
func (m *Manifest) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if m.Shininess < 0 || !common.IsFinite(m.Shininess) {
		add("shininess %v must be finite and non-negative", m.Shininess)
	}
	if !finiteVec3(m.ClearColor) {
		add("clear_color %v must be finite", m.ClearColor)
	}
	if m.Ground.Tiles < 0 || m.Ground.Tiles > MaxGroundTiles {
		add("ground.tiles %d outside [0, %d]", m.Ground.Tiles, MaxGroundTiles)
	}
	if !common.IsFinite(m.Ground.TileSize, m.Ground.Height) || !finiteVec3(m.Ground.Color) {
		add("ground: non-finite size, height or color")
	}
	if m.Ground.Tiles > 0 && !(m.Ground.TileSize > 0) {
		add("ground.tile_size %v must be positive", m.Ground.TileSize)
	}
	if n := len(m.Skybox.Faces); n != 0 && n != 6 {
		add("skybox.faces has %d entries, want 6", n)
	}
	for i, o := range m.Objects {
		if o.Name == "" {
			add("objects[%d]: name is required", i)
		}
		if !common.IsFinite(o.Position[0], o.Position[1], o.Position[2], o.RotationY, o.Scale) {
			add("objects[%d] %q: non-finite transform", i, o.Name)
		}
		if o.Scale < 0 {
			add("objects[%d] %q: scale %v must not be negative", i, o.Name, o.Scale)
		}
		if !finiteVec3(o.Color) {
			add("objects[%d] %q: non-finite color", i, o.Name)
		}
		if !(o.Extent.X() > 0 && o.Extent.Y() > 0 && o.Extent.Z() > 0) || !finiteVec3(o.Extent) {
			add("objects[%d] %q: extent %v must be positive and finite", i, o.Name, o.Extent)
		}
	}
	for i, ls := range m.Lights {
		lt, ok := ls.lightType()
		if !ok {
			add("lights[%d]: unknown type %q", i, ls.Type)
			continue
		}
		if !finiteVec3(ls.Position, ls.Direction, ls.Ambient, ls.Diffuse, ls.Specular) ||
			!common.IsFinite(ls.Constant, ls.Linear, ls.Quadratic, ls.CutOff, ls.OuterCutOff) {
			add("lights[%d]: non-finite value", i)
			continue
		}
		if lt != light.LightTypePoint && ls.Direction.Len() == 0 {
			add("lights[%d]: %s light needs a direction", i, lt)
		}
		if lt == light.LightTypeSpot && ls.OuterCutOff < ls.CutOff {
			add("lights[%d]: outer_cut_off %v is inside cut_off %v", i, ls.OuterCutOff, ls.CutOff)
		}
		if ls.Constant < 0 || ls.Linear < 0 || ls.Quadratic < 0 {
			add("lights[%d]: attenuation terms must not be negative", i)
		}
	}
	if enabled := m.enabledLights(); enabled > light.MaxLights {
		add("%d enabled lights exceeds the limit of %d", enabled, light.MaxLights)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(problems, "; "))
	}
	return nil
}

func finiteVec3(vs ...mgl32.Vec3) bool {
	for _, v := range vs {
		if !common.IsFinite(v[0], v[1], v[2]) {
			return false
		}
	}
	return true
}

func (m *Manifest) enabledLights() int {
	n := 0
	for _, ls := range m.Lights {
		if !ls.Disabled {
			n++
		}
	}
	return n
}

// BuildLights converts every light spec, in order.
//
// Returns:
//   - []light.Light: the lights
//   - error: ErrInvalidManifest if a spec has an unknown type
func (m *Manifest) BuildLights() ([]light.Light, error) {
	lights := make([]light.Light, 0, len(m.Lights))
	for i, ls := range m.Lights {
		l, err := ls.Build()
		if err != nil {
			return nil, fmt.Errorf("lights[%d]: %w", i, err)
		}
		lights = append(lights, l)
	}
	return lights, nil
}

// DecodeManifest reads a TOML manifest from r. Unknown keys are rejected.
// The result is validated.
//
// Parameters:
//   - r: TOML source
//
// Returns:
//   - *Manifest: the decoded manifest
//   - error: decode or validation error
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w: %w", ErrInvalidManifest, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifest reads and validates the manifest at path.
//
// Parameters:
//   - path: file path of a TOML manifest
//
// Returns:
//   - *Manifest: the decoded manifest
//   - error: I/O, decode or validation error
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}
	m, err := DecodeManifest(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("load manifest %s: %w", path, err)
	}
	return m, nil
}

// Encode writes the manifest as TOML.
//
// Parameters:
//   - w: destination
//
// Returns:
//   - error: encode or write error
func (m *Manifest) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}
