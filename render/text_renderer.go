package render

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/fim"
	"github.com/gogpu/fim/internal/gpu"
	"github.com/gogpu/fim/text"
)

func init() {
	fim.RegisterLoggerSetter(gpu.LogSink{})
}

// DefaultFont is the main font requested when Config.Font is empty.
const DefaultFont = "Free Mono"

// ErrNilTarget is returned by Flush without a target view.
var ErrNilTarget = errors.New("render: nil target view")

// Config configures a TextRenderer.
type Config struct {
	// Format is the colour format of the target views. Default: the
	// provider's surface format, else BGRA8Unorm.
	Format gputypes.TextureFormat

	// ClearColor fills the target before text is drawn.
	ClearColor gputypes.Color

	// Font names the main font. Default: DefaultFont.
	Font string

	// Manager supplies glyphs. When nil the renderer creates one with
	// FontOptions and loads Font into it.
	Manager *text.GlyphManager

	// FontOptions configure the glyph manager the renderer creates.
	FontOptions []text.Option

	// SPIRV compiles the shader with naga instead of passing WGSL.
	SPIRV bool

	// AntiAliasWindow is the coverage ramp width in pixels. Default: 1.
	AntiAliasWindow float32
}

// TextRenderer draws laid-out text with the curve text pipeline. Each
// frame is BeginScene, any number of DrawText calls, then Flush.
type TextRenderer struct {
	device hal.Device
	queue  hal.Queue
	cfg    Config

	manager  *text.GlyphManager
	layouter *text.Layouter
	pipeline *gpu.CurveTextPipeline

	uploaded bool
	version  uint64
	start    time.Time
}

// NewTextRenderer creates a renderer on a HAL device and queue, loading
// the main font when cfg has no glyph manager.
func NewTextRenderer(device hal.Device, queue hal.Queue, cfg Config) (*TextRenderer, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}

	m := cfg.Manager
	if m == nil {
		m = text.NewGlyphManager(cfg.FontOptions...)
		name := cfg.Font
		if name == "" {
			name = DefaultFont
		}
		if err := m.LoadMainFont(name); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		if err := m.PrepareFallbackFonts(); err != nil {
			fim.Logger().Warn("render: no fallback fonts", "err", err)
		}
	}

	pipeline := gpu.NewCurveTextPipeline(device, queue, gpu.PipelineConfig{
		Format:          cfg.Format,
		SPIRV:           cfg.SPIRV,
		AntiAliasWindow: cfg.AntiAliasWindow,
	})
	if err := pipeline.Init(); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	fim.Logger().Info("render: text renderer ready",
		"glyphs", m.Len(), "curves", m.Curves().Len(), "fonts", m.FontCount())

	return &TextRenderer{
		device:   device,
		queue:    queue,
		cfg:      cfg,
		manager:  m,
		layouter: text.NewLayouter(m),
		pipeline: pipeline,
		start:    time.Now(),
	}, nil
}

// NewTextRendererFromProvider creates a renderer on the device of a host
// provider, which must expose HalDevice and HalQueue.
func NewTextRendererFromProvider(p DeviceHandle, cfg Config) (*TextRenderer, error) {
	if p == nil {
		return nil, ErrNoHAL
	}
	device, queue, err := halFromProvider(p)
	if err != nil {
		return nil, err
	}
	cfg.Format = targetFormat(cfg.Format, p)
	return NewTextRenderer(device, queue, cfg)
}

// Manager returns the glyph manager.
func (r *TextRenderer) Manager() *text.GlyphManager { return r.manager }

// SetColorizer sets the colour source of later DrawText calls.
func (r *TextRenderer) SetColorizer(c text.Colorizer) {
	r.layouter.SetColorizer(c)
}

// BeginScene starts a new frame, dropping the quads of the last one.
func (r *TextRenderer) BeginScene() {
	r.layouter.Begin()
}

// DrawText lays out s at (x, y) into the current frame. See text.DrawText.
func (r *TextRenderer) DrawText(x, y float32, s string, wrap float32, cursor *text.CursorPos) text.Layout {
	return r.layouter.DrawText(x, y, s, wrap, cursor)
}

// QuadCount returns the number of quads in the current frame.
func (r *TextRenderer) QuadCount() int { return len(r.layouter.Quads()) }

// Flush draws the current frame into target with the given column-major
// view-projection matrix.
func (r *TextRenderer) Flush(target hal.TextureView, viewProj [16]float32) error {
	if r.pipeline == nil {
		return gpu.ErrNotInitialized
	}
	if target == nil {
		return ErrNilTarget
	}

	pool := r.manager.Curves()
	if !r.uploaded || pool.Version() != r.version {
		if err := r.pipeline.UploadCurves(pool.Curves()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		fim.Logger().Debug("render: curves uploaded",
			"curves", pool.Len(), "capacity", r.pipeline.CurveCapacity())
		r.uploaded = true
		r.version = pool.Version()
	}
	if err := r.pipeline.UploadQuads(r.layouter.Quads()); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	elapsed := float32(time.Since(r.start).Seconds())
	if err := r.pipeline.SetUniforms(viewProj, elapsed); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "fim_text_encoder",
	})
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("fim_text_frame"); err != nil {
		return fmt.Errorf("render: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "fim_text_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       target,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.cfg.ClearColor,
		}},
	})
	r.pipeline.RecordDraws(rp)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("render: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	return nil
}

// Advance returns the cell width in em units.
func (r *TextRenderer) Advance() float32 { return r.manager.Advance() }

// Height returns the line height in em units.
func (r *TextRenderer) Height() float32 { return r.manager.Height() }

// Destroy releases the GPU resources. Safe to call multiple times.
func (r *TextRenderer) Destroy() {
	if r.pipeline != nil {
		r.pipeline.Destroy()
		r.pipeline = nil
	}
}
