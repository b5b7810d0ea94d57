package renderer

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
)

//go:embed assets/lit.wgsl
var litShaderBody string

//go:embed assets/sky.wgsl
var skyShaderSource string

// LitShaderSource is the complete lit WGSL module: the shared camera and light
// struct definitions followed by the Phong vertex and fragment stages.
var LitShaderSource = camera.GPUCameraUniformSource + "\n\n" + light.GPULightSource + "\n" + litShaderBody

// SkyShaderSource is the complete sky WGSL module.
var SkyShaderSource = skyShaderSource
