//go:build !nogpu

// Package native renders the dialogue panel through gogpu/wgpu. The host
// engine owns the window, surface, and render pass; this backend owns the
// atlas texture, the vertex buffer, and a single textured-quad pipeline.
package native

import (
	"context"
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/storyglyph/storyglyph/gpucore"
)

//go:embed shaders/panel.wgsl
var panelShaderSource string

// Backend errors.
var (
	ErrNilDevice   = errors.New("native: nil hal device")
	ErrNilQueue    = errors.New("native: nil hal queue")
	ErrWrongTarget = errors.New("native: draw target is not a hal render pass encoder")
)

// uniformSize is screen_size (vec2<f32>) padded to 16 bytes.
const uniformSize = 16

// Backend implements gpucore.Backend on a hal device. Create one with
// NewBackend or FromProvider and hand it to the renderer via WithBackend.
type Backend struct {
	device hal.Device
	queue  hal.Queue
	logger *slog.Logger

	// Target color format of the render pass this backend draws into.
	format gputypes.TextureFormat

	width  int
	height int

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	sampler    hal.Sampler
	uniformBuf hal.Buffer

	atlasTex  hal.Texture
	atlasView hal.TextureView
	bindGroup hal.BindGroup

	vertexBuf   hal.Buffer
	vertexCap   int
	vertexCount int

	inited bool
}

// NewBackend wraps a hal device and queue. The pipeline targets format;
// pass the surface format of the pass the panel will be drawn into.
func NewBackend(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *Backend {
	return &Backend{
		device: device,
		queue:  queue,
		format: format,
		logger: slog.New(nopHandler{}),
	}
}

// SetLogger replaces the backend's logger. Called by the renderer when its
// package logger is configured.
func (b *Backend) SetLogger(l *slog.Logger) {
	if l != nil {
		b.logger = l
	}
}

// Name returns "native".
func (b *Backend) Name() string { return "native" }

// Init compiles the shader, builds the render pipeline, and allocates the
// uniform buffer for the given viewport size.
func (b *Backend) Init(width, height int) error {
	if b.device == nil {
		return ErrNilDevice
	}
	if b.queue == nil {
		return ErrNilQueue
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("native: bad viewport %dx%d", width, height)
	}
	b.width, b.height = width, height

	shader, err := createShaderModule(b.device, "panel_shader", panelShaderSource)
	if err != nil {
		return fmt.Errorf("native: %w", err)
	}
	b.shader = shader

	// Binding 0: uniforms, binding 1: atlas texture, binding 2: sampler.
	bindLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "panel_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		b.Close()
		return fmt.Errorf("native: create bind layout: %w", err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "panel_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		b.Close()
		return fmt.Errorf("native: create pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	sampler, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "panel_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		b.Close()
		return fmt.Errorf("native: create sampler: %w", err)
	}
	b.sampler = sampler

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "panel_pipeline",
		Layout: b.pipeLayout,
		Vertex: hal.VertexState{
			Module:     b.shader,
			EntryPoint: "vs_main",
			Buffers:    panelVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     b.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    b.format,
					Blend:     &premulBlend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		b.Close()
		return fmt.Errorf("native: create pipeline: %w", err)
	}
	b.pipeline = pipeline

	uniformBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "panel_uniforms",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		b.Close()
		return fmt.Errorf("native: create uniform buffer: %w", err)
	}
	b.uniformBuf = uniformBuf

	uniforms := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(uniforms[0:], math.Float32bits(float32(width)))
	binary.LittleEndian.PutUint32(uniforms[4:], math.Float32bits(float32(height)))
	b.queue.WriteBuffer(b.uniformBuf, 0, uniforms)

	b.inited = true
	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "native backend ready",
		slog.Int("width", width), slog.Int("height", height))
	return nil
}

// UploadAtlas creates the R8 atlas texture and the frame bind group.
func (b *Backend) UploadAtlas(pix []byte, size int) error {
	if !b.inited {
		return gpucore.ErrNotInitialized
	}
	if len(pix) != size*size {
		return fmt.Errorf("native: atlas %d bytes for size %d", len(pix), size)
	}

	b.destroyAtlas()

	texSize := uint32(size)
	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "panel_atlas",
		Size:          hal.Extent3D{Width: texSize, Height: texSize, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatR8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("native: create atlas texture: %w", err)
	}
	b.atlasTex = tex

	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "panel_atlas_view",
		Format:        gputypes.TextureFormatR8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		return fmt.Errorf("native: create atlas view: %w", err)
	}
	b.atlasView = view

	b.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  b.atlasTex,
			MipLevel: 0,
			Origin:   hal.Origin3D{},
			Aspect:   gputypes.TextureAspectAll,
		},
		pix,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  texSize,
			RowsPerImage: texSize,
		},
		&hal.Extent3D{Width: texSize, Height: texSize, DepthOrArrayLayers: 1},
	)

	bindGroup, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "panel_bind",
		Layout: b.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: b.uniformBuf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: b.atlasView.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: b.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("native: create bind group: %w", err)
	}
	b.bindGroup = bindGroup
	return nil
}

// UploadVertices replaces the frame's vertex stream, growing the GPU
// buffer when the stream outgrows it.
func (b *Backend) UploadVertices(data []byte, count int) error {
	if !b.inited {
		return gpucore.ErrNotInitialized
	}
	b.vertexCount = count
	if count == 0 {
		return nil
	}

	if b.vertexBuf == nil || count > b.vertexCap {
		if b.vertexBuf != nil {
			b.device.DestroyBuffer(b.vertexBuf)
			b.vertexBuf = nil
		}
		newCap := b.vertexCap
		if newCap == 0 {
			newCap = 4096
		}
		for newCap < count {
			newCap *= 2
		}
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "panel_vertices",
			Size:  uint64(newCap) * vertexStride,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			b.vertexCount = 0
			return fmt.Errorf("native: create vertex buffer: %w", err)
		}
		b.vertexBuf = buf
		b.vertexCap = newCap
	}

	b.queue.WriteBuffer(b.vertexBuf, 0, data)
	return nil
}

// Draw records the panel draw into the caller's render pass.
func (b *Backend) Draw(pass any) error {
	if !b.inited {
		return gpucore.ErrNotInitialized
	}
	if b.vertexCount == 0 || b.bindGroup == nil {
		return nil
	}
	rp, ok := pass.(hal.RenderPassEncoder)
	if !ok {
		return fmt.Errorf("%w: %T", ErrWrongTarget, pass)
	}

	rp.SetPipeline(b.pipeline)
	rp.SetBindGroup(0, b.bindGroup, nil)
	rp.SetVertexBuffer(0, b.vertexBuf, 0)
	rp.Draw(uint32(b.vertexCount), 1, 0, 0)
	return nil
}

// Close releases all GPU resources in reverse creation order. Safe to call
// more than once.
func (b *Backend) Close() error {
	if b.device == nil {
		return nil
	}
	if b.vertexBuf != nil {
		b.device.DestroyBuffer(b.vertexBuf)
		b.vertexBuf = nil
		b.vertexCap = 0
	}
	b.destroyAtlas()
	if b.uniformBuf != nil {
		b.device.DestroyBuffer(b.uniformBuf)
		b.uniformBuf = nil
	}
	if b.pipeline != nil {
		b.device.DestroyRenderPipeline(b.pipeline)
		b.pipeline = nil
	}
	if b.sampler != nil {
		b.device.DestroySampler(b.sampler)
		b.sampler = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.bindLayout != nil {
		b.device.DestroyBindGroupLayout(b.bindLayout)
		b.bindLayout = nil
	}
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
	b.inited = false
	return nil
}

func (b *Backend) destroyAtlas() {
	if b.bindGroup != nil {
		b.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
	if b.atlasView != nil {
		b.device.DestroyTextureView(b.atlasView)
		b.atlasView = nil
	}
	if b.atlasTex != nil {
		b.device.DestroyTexture(b.atlasTex)
		b.atlasTex = nil
	}
}

// vertexStride matches VertexInput in panel.wgsl: position + tex_coord +
// color, 8 float32.
const vertexStride = 32

func panelVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // tex_coord
				{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
			},
		},
	}
}

// nopHandler discards log records until SetLogger is called.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }
