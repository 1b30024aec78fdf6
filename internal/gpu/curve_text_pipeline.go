package gpu

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fim/text"
)

// Embedded curve text shader source.
//
//go:embed shaders/curve_text.wgsl
var curveTextShaderSource string

const (
	// MaxQuads is the number of glyph quads one frame can draw.
	MaxQuads = 100000

	// QuadStride is the byte size of one Quad record in the quad buffer.
	// Layout: pos, uv0, uv1 (vec2<f32> each) + start, count, color, pad (u32).
	QuadStride = 40

	// CurveStride is the byte size of one Curve record: three vec2<f32>.
	CurveStride = 24

	// uniformSize covers view_proj (mat4x4<f32>) + params (vec4<f32>).
	uniformSize = 80

	indicesPerQuad = 6
)

// Curve text pipeline errors.
var (
	// ErrNilPipeline is returned when operating on a nil pipeline.
	ErrNilPipeline = errors.New("gpu: curve text pipeline is nil")

	// ErrNotInitialized is returned when drawing before Init.
	ErrNotInitialized = errors.New("gpu: curve text pipeline not initialized")

	// ErrQuadOverflow is returned when a frame has more than MaxQuads quads.
	ErrQuadOverflow = errors.New("gpu: quad buffer overflow")
)

// PipelineConfig configures a CurveTextPipeline.
type PipelineConfig struct {
	// Format is the colour target format. Default: BGRA8Unorm.
	Format gputypes.TextureFormat

	// SPIRV makes the pipeline compile the shader to SPIR-V with naga
	// instead of handing WGSL to the backend.
	SPIRV bool

	// AntiAliasWindow is the width in pixels of the coverage ramp at glyph
	// edges. Default: 1.
	AntiAliasWindow float32
}

// CurveTextPipeline draws glyph quads whose coverage the fragment shader
// computes from the quadratic curves in a storage buffer.
//
// GPU resources:
//
//	binding 0: uniforms (view-projection, params)
//	binding 1: quads, read-only storage, MaxQuads records
//	binding 2: curves, read-only storage, power-of-two capacity
//	index buffer: 0,1,2,2,3,0 per quad, built once
//
// The curve buffer is recreated when the pool outgrows it and written in
// place otherwise; the bind group is rebuilt with it.
type CurveTextPipeline struct {
	device hal.Device
	queue  hal.Queue
	config PipelineConfig

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline

	uniformBuf hal.Buffer
	quadBuf    hal.Buffer
	curveBuf   hal.Buffer
	indexBuf   hal.Buffer
	bindGroup  hal.BindGroup

	curveCapacity int
	curveCount    int
	quadCount     int
}

// NewCurveTextPipeline creates a pipeline for device and queue. GPU
// objects are created by Init.
func NewCurveTextPipeline(device hal.Device, queue hal.Queue, config PipelineConfig) *CurveTextPipeline {
	if config.Format == gputypes.TextureFormatUndefined {
		config.Format = gputypes.TextureFormatBGRA8Unorm
	}
	if config.AntiAliasWindow <= 0 {
		config.AntiAliasWindow = 1
	}
	return &CurveTextPipeline{
		device: device,
		queue:  queue,
		config: config,
	}
}

// Init creates the shader, pipeline and buffers. Calling it again is a
// no-op.
func (p *CurveTextPipeline) Init() error {
	if p == nil {
		return ErrNilPipeline
	}
	if p.pipeline != nil {
		return nil
	}
	if err := p.createPipeline(); err != nil {
		p.Destroy()
		return err
	}
	if err := p.createBuffers(); err != nil {
		p.Destroy()
		return err
	}
	slogger().Debug("curve text pipeline ready",
		"format", p.config.Format, "spirv", p.config.SPIRV, "max_quads", MaxQuads)
	return nil
}

func (p *CurveTextPipeline) createPipeline() error {
	source := hal.ShaderSource{WGSL: curveTextShaderSource}
	if p.config.SPIRV {
		code, err := CompileCurveTextShader()
		if err != nil {
			return err
		}
		source = hal.ShaderSource{SPIRV: code}
	}
	shader, err := p.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "curve_text_shader",
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("compile curve_text shader: %w", err)
	}
	p.shader = shader

	visibility := gputypes.ShaderStageVertex | gputypes.ShaderStageFragment
	bindLayout, err := p.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "curve_text_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: visibility,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: visibility,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create curve_text bind layout: %w", err)
	}
	p.bindLayout = bindLayout

	pipeLayout, err := p.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "curve_text_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create curve_text pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	premulBlend := gputypes.BlendStatePremultiplied()
	pipeline, err := p.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "curve_text_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    p.config.Format,
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
		return fmt.Errorf("create curve_text pipeline: %w", err)
	}
	p.pipeline = pipeline
	return nil
}

func (p *CurveTextPipeline) createBuffers() error {
	var err error
	p.uniformBuf, err = p.createBuffer("curve_text_uniforms", uniformSize,
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	p.quadBuf, err = p.createBuffer("curve_text_quads", MaxQuads*QuadStride,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}

	indices := encodeIndices(quadIndices(MaxQuads))
	p.indexBuf, err = p.createBuffer("curve_text_indices", uint64(len(indices)),
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	if err := p.queue.WriteBuffer(p.indexBuf, 0, indices); err != nil {
		return fmt.Errorf("write curve_text_indices: %w", err)
	}

	if err := p.SetUniforms(identity(), 0); err != nil {
		return err
	}
	return p.ensureCurveCapacity(1)
}

func (p *CurveTextPipeline) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := p.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	return buf, nil
}

// ensureCurveCapacity grows the curve buffer to hold n curves, rebuilding
// the bind group when the buffer is replaced.
func (p *CurveTextPipeline) ensureCurveCapacity(n int) error {
	if n <= p.curveCapacity && p.curveBuf != nil {
		return nil
	}
	capacity := nextPowerOfTwo(n)
	buf, err := p.createBuffer("curve_text_curves", uint64(capacity*CurveStride),
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	if p.curveBuf != nil {
		p.device.DestroyBuffer(p.curveBuf)
	}
	p.curveBuf = buf
	p.curveCapacity = capacity
	slogger().Debug("curve buffer resized", "curves", capacity, "bytes", capacity*CurveStride)
	return p.rebuildBindGroup()
}

func (p *CurveTextPipeline) rebuildBindGroup() error {
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	bg, err := p.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "curve_text_bind_group",
		Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: p.uniformBuf.NativeHandle(), Size: uniformSize}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: p.quadBuf.NativeHandle(), Size: MaxQuads * QuadStride}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: p.curveBuf.NativeHandle(), Size: uint64(p.curveCapacity * CurveStride)}},
		},
	})
	if err != nil {
		return fmt.Errorf("create curve_text bind group: %w", err)
	}
	p.bindGroup = bg
	return nil
}

// UploadCurves mirrors the curve pool into the curve buffer.
func (p *CurveTextPipeline) UploadCurves(curves []text.Curve) error {
	if p == nil {
		return ErrNilPipeline
	}
	if p.pipeline == nil {
		return ErrNotInitialized
	}
	if err := p.ensureCurveCapacity(max(len(curves), 1)); err != nil {
		return err
	}
	p.curveCount = len(curves)
	if len(curves) == 0 {
		return nil
	}
	if err := p.queue.WriteBuffer(p.curveBuf, 0, encodeCurves(curves)); err != nil {
		return fmt.Errorf("write curve_text_curves: %w", err)
	}
	return nil
}

// UploadQuads replaces the quads drawn by RecordDraws.
func (p *CurveTextPipeline) UploadQuads(quads []text.Quad) error {
	if p == nil {
		return ErrNilPipeline
	}
	if p.pipeline == nil {
		return ErrNotInitialized
	}
	if len(quads) > MaxQuads {
		return fmt.Errorf("%w: %d quads, max %d", ErrQuadOverflow, len(quads), MaxQuads)
	}
	p.quadCount = len(quads)
	if len(quads) == 0 {
		return nil
	}
	if err := p.queue.WriteBuffer(p.quadBuf, 0, encodeQuads(quads)); err != nil {
		return fmt.Errorf("write curve_text_quads: %w", err)
	}
	return nil
}

// SetUniforms writes the view-projection matrix (column-major) and the
// elapsed time in seconds.
func (p *CurveTextPipeline) SetUniforms(viewProj [16]float32, time float32) error {
	if p == nil {
		return ErrNilPipeline
	}
	if p.uniformBuf == nil {
		return ErrNotInitialized
	}
	buf := make([]byte, 0, uniformSize)
	for _, v := range viewProj {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, v := range [4]float32{time, p.config.AntiAliasWindow, 0, 0} {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	if err := p.queue.WriteBuffer(p.uniformBuf, 0, buf); err != nil {
		return fmt.Errorf("write curve_text_uniforms: %w", err)
	}
	return nil
}

// RecordDraws records one indexed draw of every uploaded quad into rp.
func (p *CurveTextPipeline) RecordDraws(rp hal.RenderPassEncoder) {
	if p == nil || p.pipeline == nil || p.quadCount == 0 {
		return
	}
	rp.SetPipeline(p.pipeline)
	rp.SetBindGroup(0, p.bindGroup, nil)
	rp.SetIndexBuffer(p.indexBuf, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(uint32(p.quadCount*indicesPerQuad), 1, 0, 0, 0)
}

// CurveCapacity returns the number of curves the curve buffer holds.
func (p *CurveTextPipeline) CurveCapacity() int { return p.curveCapacity }

// QuadCount returns the number of quads RecordDraws draws.
func (p *CurveTextPipeline) QuadCount() int { return p.quadCount }

// Destroy releases all GPU resources. Safe to call multiple times.
func (p *CurveTextPipeline) Destroy() {
	if p == nil || p.device == nil {
		return
	}
	if p.bindGroup != nil {
		p.device.DestroyBindGroup(p.bindGroup)
		p.bindGroup = nil
	}
	for _, buf := range []*hal.Buffer{&p.curveBuf, &p.quadBuf, &p.indexBuf, &p.uniformBuf} {
		if *buf != nil {
			p.device.DestroyBuffer(*buf)
			*buf = nil
		}
	}
	if p.pipeline != nil {
		p.device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		p.device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		p.device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		p.device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
	p.curveCapacity, p.curveCount, p.quadCount = 0, 0, 0
}

// ShaderSource returns the WGSL source of the curve text shader.
func ShaderSource() string {
	return curveTextShaderSource
}

// CompileCurveTextShader compiles the curve text shader to SPIR-V words.
func CompileCurveTextShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(curveTextShaderSource)
	if err != nil {
		return nil, fmt.Errorf("compile curve_text shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return code, nil
}

// quadIndices returns the two triangles of n quads: 0,1,2,2,3,0 offset by
// 4 per quad.
func quadIndices(n int) []uint32 {
	out := make([]uint32, 0, n*indicesPerQuad)
	for i := range n {
		base := uint32(i * 4)
		out = append(out, base, base+1, base+2, base+2, base+3, base)
	}
	return out
}

func encodeIndices(indices []uint32) []byte {
	buf := make([]byte, 0, len(indices)*4)
	for _, v := range indices {
		buf = binary.LittleEndian.AppendUint32(buf, v)
	}
	return buf
}

func encodeCurves(curves []text.Curve) []byte {
	buf := make([]byte, 0, len(curves)*CurveStride)
	for _, c := range curves {
		for _, v := range [6]float32{c.X1, c.Y1, c.X2, c.Y2, c.X3, c.Y3} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
	}
	return buf
}

func encodeQuads(quads []text.Quad) []byte {
	buf := make([]byte, 0, len(quads)*QuadStride)
	for _, q := range quads {
		for _, v := range [6]float32{q.X, q.Y, q.U0, q.V0, q.U1, q.V1} {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
		}
		buf = binary.LittleEndian.AppendUint32(buf, q.Start)
		buf = binary.LittleEndian.AppendUint32(buf, q.Count)
		buf = binary.LittleEndian.AppendUint32(buf, q.Color)
		buf = binary.LittleEndian.AppendUint32(buf, 0)
	}
	return buf
}

// nextPowerOfTwo returns the smallest power of two >= n, and 1 for n <= 1.
func nextPowerOfTwo(n int) int {
	c := 1
	for c < n {
		c <<= 1
	}
	return c
}

func identity() [16]float32 {
	return [16]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}
