package scene

import (
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the runtime form of a Manifest: the static object placements and
// ground it was built from, plus a mutable set of lights.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Manifest returns the manifest the scene was built from.
	// Callers must not modify it.
	//
	// Returns:
	//   - *Manifest: the source manifest
	Manifest() *Manifest

	// Objects returns the placed objects.
	//
	// Returns:
	//   - []Object: a copy of the object list
	Objects() []Object

	// Count returns the number of placed objects.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// ClearColor returns the background colour drawn behind the sky.
	//
	// Returns:
	//   - mgl32.Vec3: RGB clear colour
	ClearColor() mgl32.Vec3

	// Shininess returns the specular exponent shared by every surface.
	//
	// Returns:
	//   - float32: the exponent
	Shininess() float32

	// Lights returns the scene lights in upload order.
	//
	// Returns:
	//   - []light.Light: a copy of the light list
	Lights() []light.Light

	// LightsOfType returns the lights of one type, in order.
	//
	// Parameters:
	//   - lt: the light type to select
	//
	// Returns:
	//   - []light.Light: the matching lights
	LightsOfType(lt light.LightType) []light.Light

	// AddLight appends a light.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight removes a light if present.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// ToggleLights flips the enabled state of every light of the given type.
	//
	// Parameters:
	//   - lt: the light type to toggle
	//
	// Returns:
	//   - int: the number of lights toggled
	ToggleLights(lt light.LightType) int
}

type scene struct {
	mu *sync.RWMutex

	name      string
	manifest  *Manifest
	shininess float32
	lights    []light.Light
}

var _ Scene = &scene{}

// NewScene validates the manifest and builds a Scene from it.
//
// Parameters:
//   - m: the manifest (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the new scene
//   - error: ErrInvalidManifest if the manifest fails validation
func NewScene(m *Manifest, options ...SceneBuilderOption) (Scene, error) {
	if m == nil {
		return nil, fmt.Errorf("new scene: nil manifest: %w", ErrInvalidManifest)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}
	lights, err := m.BuildLights()
	if err != nil {
		return nil, fmt.Errorf("new scene: %w", err)
	}

	s := &scene{
		mu:        &sync.RWMutex{},
		name:      m.Name,
		manifest:  m,
		shininess: m.Shininess,
		lights:    lights,
	}
	if s.shininess == 0 {
		s.shininess = light.DefaultShininess
	}
	for _, option := range options {
		option(s)
	}

	log.Printf("[Scene] %q: %d objects, %d ground tiles, %d lights",
		s.name, len(m.Objects), m.Ground.Tiles*m.Ground.Tiles, len(s.lights))
	return s, nil
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Manifest() *Manifest {
	return s.manifest
}

func (s *scene) Objects() []Object {
	return slices.Clone(s.manifest.Objects)
}

func (s *scene) Count() int {
	return len(s.manifest.Objects)
}

func (s *scene) ClearColor() mgl32.Vec3 {
	return s.manifest.ClearColor
}

func (s *scene) Shininess() float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.shininess
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.lights)
}

func (s *scene) LightsOfType(lt light.LightType) []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []light.Light
	for _, l := range s.lights {
		if l.Type() == lt {
			out = append(out, l)
		}
	}
	return out
}

func (s *scene) AddLight(l light.Light) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := slices.Index(s.lights, l); i >= 0 {
		s.lights = slices.Delete(s.lights, i, i+1)
	}
}

func (s *scene) ToggleLights(lt light.LightType) int {
	n := 0
	for _, l := range s.LightsOfType(lt) {
		l.SetEnabled(!l.Enabled())
		n++
	}
	return n
}
