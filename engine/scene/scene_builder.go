package scene

import "github.com/Carmen-Shannon/oxy-viewer/engine/light"

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName overrides the manifest's scene name.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithShininess overrides the manifest's specular exponent.
//
// Parameters:
//   - shininess: the exponent (must be positive to take effect)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithShininess(shininess float32) SceneBuilderOption {
	return func(s *scene) {
		if shininess > 0 {
			s.shininess = shininess
		}
	}
}

// WithLights appends lights after those built from the manifest.
//
// Parameters:
//   - lights: the extra lights
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLights(lights ...light.Light) SceneBuilderOption {
	return func(s *scene) {
		for _, l := range lights {
			if l != nil {
				s.lights = append(s.lights, l)
			}
		}
	}
}
