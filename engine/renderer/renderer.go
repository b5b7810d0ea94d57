package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrNoScene is returned by Render when no scene has been set.
var ErrNoScene = errors.New("renderer: no scene set")

// Default sky gradient colors.
var (
	DefaultSkyZenith  = mgl32.Vec3{0.32, 0.45, 0.68}
	DefaultSkyHorizon = mgl32.Vec3{0.5, 0.5, 0.5}
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	skyZenith            mgl32.Vec3
	skyHorizon           mgl32.Vec3

	width, height int

	litPipeline *gpuPipeline
	skyPipeline *gpuPipeline
	quad        *gpuMesh
	cube        *gpuMesh
	skyCube     *gpuMesh

	cameraBuffer *wgpu.Buffer
	lightBuffer  *wgpu.Buffer
	skyBuffer    *wgpu.Buffer
	litBindGroup *wgpu.BindGroup
	skyBindGroup *wgpu.BindGroup

	scene           scene.Scene
	groundBuffer    *wgpu.Buffer
	groundInstances uint32
	objectBuffer    *wgpu.Buffer
	objectInstances uint32
	droppedLights   int
}

// Renderer draws a static scene from a camera each frame.
//
// The scene is drawn as a sky gradient, the tiled ground, and one lit proxy box per placed object,
// all shaded with the scene's lights.
type Renderer interface {
	// SetScene uploads the instance data for s (ground tiles and object proxy boxes) and adopts
	// its clear color. Lights are re-read from s every frame so toggles take effect immediately.
	//
	// Parameters:
	//   - s: the scene to draw
	//
	// Returns:
	//   - error: an error if the instance buffers could not be created
	SetScene(s scene.Scene) error

	// Render writes the per-frame uniforms from cam and the scene lights, then draws and presents one frame.
	//
	// Parameters:
	//   - cam: the camera to view the scene from
	//
	// Returns:
	//   - error: ErrNoScene if SetScene has not been called, or an error acquiring the swapchain texture
	Render(cam camera.Camera) error

	// Resize configures the underlying backend to handle a new surface size.
	// Non-positive sizes (a minimized window) are ignored.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode changes the present mode and reconfigures the surface.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// InstanceCount returns the number of ground tiles and proxy boxes drawn per frame.
	//
	// Returns:
	//   - int: the total instance count
	InstanceCount() int

	// Release frees all GPU resources. The Renderer must not be used afterwards.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new Renderer for the given window, creating the GPU device,
// configuring the surface, and building the sky and lit pipelines.
// Panics if the GPU device or pipelines cannot be created.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - win: the window whose surface is rendered to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
		skyZenith:   DefaultSkyZenith,
		skyHorizon:  DefaultSkyHorizon,
		width:       win.Width(),
		height:      win.Height(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.ConfigureSurface(r.width, r.height)

	if err := r.init(); err != nil {
		panic(err)
	}
	log.Printf("[Renderer] ready: %dx%d, present mode %s, %d× MSAA", r.width, r.height, r.presentMode, r.msaa)
	return r
}

func (r *renderer) init() error {
	var err error
	if r.litPipeline, err = r.backend.CreateRenderPipeline(litPipelineSpec()); err != nil {
		return err
	}
	if r.skyPipeline, err = r.backend.CreateRenderPipeline(skyPipelineSpec()); err != nil {
		return err
	}

	if r.quad, err = r.backend.InitMesh(UnitQuad()); err != nil {
		return err
	}
	if r.cube, err = r.backend.InitMesh(UnitCube()); err != nil {
		return err
	}
	if r.skyCube, err = r.backend.InitMesh(SkyCube()); err != nil {
		return err
	}

	var cu camera.GPUCameraUniform
	if r.cameraBuffer, err = r.backend.CreateBuffer("Camera Uniform", uint64(cu.Size()), wgpu.BufferUsageUniform, nil); err != nil {
		return err
	}
	if r.lightBuffer, err = r.backend.CreateBuffer("Light Block", light.GPULightBlockSize, wgpu.BufferUsageUniform, nil); err != nil {
		return err
	}
	if r.skyBuffer, err = r.backend.CreateBuffer("Sky Uniform", skyUniformSize, wgpu.BufferUsageUniform, nil); err != nil {
		return err
	}

	if r.litBindGroup, err = r.backend.CreateBindGroup("Lit Bind Group", r.litPipeline.bindGroupLayout, r.cameraBuffer, r.lightBuffer); err != nil {
		return err
	}
	if r.skyBindGroup, err = r.backend.CreateBindGroup("Sky Bind Group", r.skyPipeline.bindGroupLayout, r.skyBuffer); err != nil {
		return err
	}
	return nil
}

func (r *renderer) SetScene(s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := s.Manifest()
	ground := marshalInstances(groundInstances(m.Ground))
	objects := marshalInstances(objectInstances(s.Objects()))

	groundBuffer, err := r.uploadInstances("Ground Instances", ground)
	if err != nil {
		return fmt.Errorf("upload ground instances: %w", err)
	}
	objectBuffer, err := r.uploadInstances("Object Instances", objects)
	if err != nil {
		releaseBuffer(groundBuffer)
		return fmt.Errorf("upload object instances: %w", err)
	}

	releaseBuffer(r.groundBuffer)
	releaseBuffer(r.objectBuffer)
	r.groundBuffer = groundBuffer
	r.groundInstances = uint32(len(ground) / InstanceStride)
	r.objectBuffer = objectBuffer
	r.objectInstances = uint32(len(objects) / InstanceStride)
	r.scene = s
	r.droppedLights = 0

	c := s.ClearColor()
	r.backend.SetClearColor(float64(c[0]), float64(c[1]), float64(c[2]))

	log.Printf("[Renderer] scene %q: %d ground tiles, %d proxy boxes", s.Name(), r.groundInstances, r.objectInstances)
	return nil
}

func (r *renderer) uploadInstances(label string, data []byte) (*wgpu.Buffer, error) {
	if len(data) == 0 {
		return nil, nil
	}
	return r.backend.CreateBuffer(label, uint64(len(data)), wgpu.BufferUsageVertex, data)
}

func (r *renderer) Render(cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.scene == nil {
		return ErrNoScene
	}

	u := buildFrameUniforms(cam, r.scene, r.skyZenith, r.skyHorizon)
	if u.droppedLights != r.droppedLights {
		if u.droppedLights > 0 {
			log.Printf("[Renderer] %d lights over the limit of %d are not drawn", u.droppedLights, light.MaxLights)
		}
		r.droppedLights = u.droppedLights
	}

	r.backend.WriteBuffer(r.cameraBuffer, 0, u.camera)
	r.backend.WriteBuffer(r.lightBuffer, 0, u.lights)
	r.backend.WriteBuffer(r.skyBuffer, 0, u.sky)

	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	r.backend.DrawCall(r.skyPipeline, r.skyBindGroup, r.skyCube, nil, 1)
	if r.groundBuffer != nil {
		r.backend.DrawCall(r.litPipeline, r.litBindGroup, r.quad, r.groundBuffer, r.groundInstances)
	}
	if r.objectBuffer != nil {
		r.backend.DrawCall(r.litPipeline, r.litBindGroup, r.cube, r.objectBuffer, r.objectInstances)
	}
	r.backend.EndFrame()
	r.backend.Present()
	return nil
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) InstanceCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.groundInstances + r.objectInstances)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	releaseBuffer(r.groundBuffer)
	releaseBuffer(r.objectBuffer)
	r.groundBuffer, r.objectBuffer = nil, nil

	if r.litBindGroup != nil {
		r.litBindGroup.Release()
	}
	if r.skyBindGroup != nil {
		r.skyBindGroup.Release()
	}
	releaseBuffer(r.cameraBuffer)
	releaseBuffer(r.lightBuffer)
	releaseBuffer(r.skyBuffer)

	r.quad.release()
	r.cube.release()
	r.skyCube.release()
	r.litPipeline.release()
	r.skyPipeline.release()

	r.backend.Release()
	r.scene = nil
}

func releaseBuffer(b *wgpu.Buffer) {
	if b != nil {
		b.Release()
	}
}

// frameUniforms holds the packed uniform data for one frame.
type frameUniforms struct {
	camera        []byte
	lights        []byte
	sky           []byte
	droppedLights int
}

func buildFrameUniforms(cam camera.Camera, s scene.Scene, zenith, horizon mgl32.Vec3) frameUniforms {
	cu := cam.Uniform()
	block, dropped := light.NewGPULightBlock(s.Lights(), s.Shininess())
	return frameUniforms{
		camera:        cu.Marshal(),
		lights:        block.Marshal(),
		sky:           marshalSkyUniform(cam.SkyboxUniform(), zenith, horizon),
		droppedLights: dropped,
	}
}

func litPipelineSpec() pipelineSpec {
	var cu camera.GPUCameraUniform
	instanceAttributes := make([]wgpu.VertexAttribute, 8)
	for i := range instanceAttributes {
		instanceAttributes[i] = wgpu.VertexAttribute{
			Format:         wgpu.VertexFormatFloat32x4,
			Offset:         uint64(i * 16),
			ShaderLocation: uint32(2 + i),
		}
	}

	return pipelineSpec{
		label:         "Lit",
		source:        LitShaderSource,
		vertexEntry:   "vs_main",
		fragmentEntry: "fs_main",
		bindGroup: wgpu.BindGroupLayoutDescriptor{
			Label: "Lit Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: uint64(cu.Size()),
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: light.GPULightBlockSize,
					},
				},
			},
		},
		vertexLayouts: []wgpu.VertexBufferLayout{
			{
				ArrayStride: VertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
					{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
				},
			},
			{
				ArrayStride: InstanceStride,
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes:  instanceAttributes,
			},
		},
		depthWrite:   true,
		depthCompare: wgpu.CompareFunctionLess,
	}
}

func skyPipelineSpec() pipelineSpec {
	return pipelineSpec{
		label:         "Sky",
		source:        SkyShaderSource,
		vertexEntry:   "vs_sky",
		fragmentEntry: "fs_sky",
		bindGroup: wgpu.BindGroupLayoutDescriptor{
			Label: "Sky Bind Group Layout",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
					Buffer: wgpu.BufferBindingLayout{
						Type:           wgpu.BufferBindingTypeUniform,
						MinBindingSize: skyUniformSize,
					},
				},
			},
		},
		vertexLayouts: []wgpu.VertexBufferLayout{
			{
				ArrayStride: VertexStride,
				StepMode:    wgpu.VertexStepModeVertex,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				},
			},
		},
		// drawn first at the far plane; everything else overwrites it
		depthWrite:   false,
		depthCompare: wgpu.CompareFunctionAlways,
	}
}
