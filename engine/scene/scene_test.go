package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScene_FromDefault(t *testing.T) {
	s, err := NewScene(DefaultManifest())
	require.NoError(t, err)

	assert.Equal(t, "Military Base", s.Name())
	assert.Equal(t, 16, s.Count())
	assert.Len(t, s.Objects(), 16)
	assert.Len(t, s.Lights(), 4)
	assert.Equal(t, float32(32), s.Shininess())
	assert.Len(t, s.LightsOfType(light.LightTypeSpot), 2)
}

func TestNewScene_Rejects(t *testing.T) {
	_, err := NewScene(nil)
	assert.ErrorIs(t, err, ErrInvalidManifest)

	m := DefaultManifest()
	m.Lights[0].Type = "ambient"
	_, err = NewScene(m)
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestNewScene_Options(t *testing.T) {
	extra := light.NewLight(light.LightTypePoint)
	m := DefaultManifest()
	m.Shininess = 0

	s, err := NewScene(m, WithName("Night"), WithShininess(64), WithLights(extra, nil))
	require.NoError(t, err)

	assert.Equal(t, "Night", s.Name())
	assert.Equal(t, float32(64), s.Shininess())
	lights := s.Lights()
	require.Len(t, lights, 5)
	assert.Same(t, extra, lights[4])
}

func TestNewScene_ZeroShininessFallsBack(t *testing.T) {
	m := DefaultManifest()
	m.Shininess = 0

	s, err := NewScene(m)
	require.NoError(t, err)

	assert.Equal(t, light.DefaultShininess, s.Shininess())
}

func TestScene_AddRemoveLight(t *testing.T) {
	s, err := NewScene(DefaultManifest())
	require.NoError(t, err)
	l := light.NewLight(light.LightTypePoint)

	s.AddLight(l)
	s.AddLight(nil)
	assert.Len(t, s.Lights(), 5)

	s.RemoveLight(l)
	assert.Len(t, s.Lights(), 4)

	s.RemoveLight(l)
	assert.Len(t, s.Lights(), 4)
}

func TestScene_ToggleLights(t *testing.T) {
	s, err := NewScene(DefaultManifest())
	require.NoError(t, err)

	assert.Equal(t, 2, s.ToggleLights(light.LightTypeSpot))
	for _, l := range s.LightsOfType(light.LightTypeSpot) {
		assert.False(t, l.Enabled())
	}
	assert.True(t, s.LightsOfType(light.LightTypePoint)[0].Enabled())

	s.ToggleLights(light.LightTypeSpot)
	for _, l := range s.LightsOfType(light.LightTypeSpot) {
		assert.True(t, l.Enabled())
	}
}

func TestScene_ObjectsIsACopy(t *testing.T) {
	s, err := NewScene(DefaultManifest())
	require.NoError(t, err)

	objs := s.Objects()
	objs[0].Name = "changed"

	assert.Equal(t, "t10m", s.Objects()[0].Name)
}
