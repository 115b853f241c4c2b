// Package filterchain builds and drives a multi-pass shader pipeline from
// a parsed preset: it owns every framebuffer, sampler, compiled pipeline,
// and uniform ring the passes need, computes each pass's output size
// every frame, and rotates feedback and history textures at frame end.
package filterchain

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/SnowflakePowered/librashader-go/codegen"
	"github.com/SnowflakePowered/librashader-go/frontend"
	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/preset"
	"github.com/SnowflakePowered/librashader-go/reflect"
	"github.com/SnowflakePowered/librashader-go/semantics"
	"github.com/SnowflakePowered/librashader-go/types"
)

// Options configures chain construction and per-frame defaults.
type Options struct {
	// ForceNoMipmaps disables mipmap generation on intermediate targets
	// even when a pass requests MipmapInput.
	ForceNoMipmaps bool
	// FramesInFlight sizes each pass's uniform buffer ring. Defaults to 1
	// when zero or negative.
	FramesInFlight int
	// DisableCache skips sampler object reuse; every pass gets its own
	// sampler even when the (wrap, filter, mip-filter) triple repeats.
	DisableCache bool
	// Target selects which codegen backend form to emit, matching the
	// caller's chosen hal.Device.
	Target codegen.Target
	// Log receives construction and per-frame diagnostics. A nil Log
	// disables logging (the hal package's own silent default applies).
	Log *slog.Logger
}

func (o Options) framesInFlight() int {
	if o.FramesInFlight <= 0 {
		return 1
	}
	return o.FramesInFlight
}

// Chain is a constructed, ready-to-drive filter pipeline. It owns every
// GPU resource it allocated and must be released with Release when the
// caller is done with it.
type Chain struct {
	device  hal.Device
	options Options
	log     *slog.Logger

	passes []*passState
	luts   []lutState

	samplers map[samplerKey]hal.Sampler

	semantics  *semantics.ShaderSemantics
	parameters []preprocess.ShaderParameter
	values     []float32

	history    [semantics.MaxHistory]hal.Texture
	historyLen int

	frameCount     uint64
	frameDirection float32
	inputSize      types.Size
	viewportSize   types.Size
}

type samplerKey struct {
	wrap      hal.WrapMode
	filter    hal.FilterMode
	mipFilter hal.FilterMode
}

type lutState struct {
	cfg     preset.TextureConfig
	texture hal.Texture
	sampler hal.Sampler
}

// Build constructs a Chain for presetPath against device. luts must
// supply one decoded image per texture the preset declares, in the same
// order as Preset.Textures (the caller decodes LUT files; this package
// never touches image codecs). Only each image's Size is used: the LUT
// texture is created at that size as R8G8B8A8Unorm, Bytes are not
// uploaded into it, and Pitch is not checked.
func Build(presetPath string, device hal.Device, luts []types.Image, opts Options) (*Chain, error) {
	log := opts.Log
	if log == nil {
		log = hal.Logger()
	}

	p, err := preset.Load(presetPath)
	if err != nil {
		return nil, &ConstructionError{Kind: KindPreset, Err: err}
	}
	if len(luts) != len(p.Textures) {
		return nil, &ConstructionError{Kind: KindPreset, Err: fmt.Errorf("expected %d LUT images, got %d", len(p.Textures), len(luts))}
	}

	baseDir := filepath.Dir(presetPath)

	sources := make([]*preprocess.ShaderSource, len(p.Passes))
	compilations := make([]*frontend.Compilation, len(p.Passes))
	passParameters := make([][]preprocess.ShaderParameter, len(p.Passes))

	for i, pass := range p.Passes {
		shaderPath := pass.Path
		if !filepath.IsAbs(shaderPath) {
			shaderPath = filepath.Join(baseDir, shaderPath)
		}
		src, err := preprocess.Load(shaderPath)
		if err != nil {
			return nil, &ConstructionError{Kind: KindPreprocess, PassID: pass.ID, HasPass: true, Err: err}
		}
		sources[i] = src
		passParameters[i] = src.Parameters

		comp, err := frontend.Compile(src)
		if err != nil {
			return nil, &ConstructionError{Kind: KindCompile, PassID: pass.ID, HasPass: true, Err: err}
		}
		compilations[i] = comp
	}

	sem, mergedParams, err := semantics.Build(p.Passes, p.Textures, passParameters, log)
	if err != nil {
		return nil, &ConstructionError{Kind: KindSemantics, Err: err}
	}

	chain := &Chain{
		device:         device,
		options:        opts,
		log:            log,
		samplers:       map[samplerKey]hal.Sampler{},
		semantics:      sem,
		parameters:     mergedParams,
		frameDirection: 1,
	}
	chain.values = make([]float32, len(mergedParams))
	for i, param := range mergedParams {
		chain.values[i] = param.Initial
	}

	maxReferencedHistory := 0
	for i, pass := range p.Passes {
		refl, err := reflect.Reflect(compilations[i], sem, pass.ID)
		if err != nil {
			return nil, &ConstructionError{Kind: KindReflect, PassID: pass.ID, HasPass: true, Err: err}
		}
		for _, s := range refl.Samplers {
			if s.Semantic.Kind == semantics.OriginalHistory && s.Semantic.Index+1 > maxReferencedHistory {
				maxReferencedHistory = s.Semantic.Index + 1
			}
		}

		artifact, ctx, err := codegen.Compile(opts.Target, compilations[i], sources[i], refl)
		if err != nil {
			return nil, &ConstructionError{Kind: KindCodegen, PassID: pass.ID, HasPass: true, Err: err}
		}

		pipeline, err := device.CreatePipeline(pipelineDescriptor(artifact))
		if err != nil {
			return nil, &ConstructionError{Kind: KindDevice, PassID: pass.ID, HasPass: true, Err: err}
		}

		ps := &passState{
			cfg:      pass,
			refl:     refl,
			ctx:      ctx,
			pipeline: pipeline,
			uboRing:  make([]hal.Buffer, opts.framesInFlight()),
			pushRing: make([]hal.Buffer, opts.framesInFlight()),
		}
		for f := range ps.uboRing {
			if refl.UBO != nil {
				buf, err := device.CreateBuffer(hal.BufferDescriptor{Size: int(refl.UBO.Size)})
				if err != nil {
					return nil, &ConstructionError{Kind: KindDevice, PassID: pass.ID, HasPass: true, Err: err}
				}
				ps.uboRing[f] = buf
			}
			if refl.PushConstant != nil && ctx.PushConstantBinding != nil {
				buf, err := device.CreateBuffer(hal.BufferDescriptor{Size: int(refl.PushConstant.Size)})
				if err != nil {
					return nil, &ConstructionError{Kind: KindDevice, PassID: pass.ID, HasPass: true, Err: err}
				}
				ps.pushRing[f] = buf
			}
		}

		ps.sampler = chain.acquireSampler(wrapModeOf(pass.Wrap), filterModeOf(pass.Filter), filterModeOf(pass.Filter))

		chain.passes = append(chain.passes, ps)
	}
	chain.historyLen = maxReferencedHistory

	for i, cfg := range p.Textures {
		img := luts[i]
		format := types.R8G8B8A8Unorm
		tex, err := device.CreateTexture(hal.TextureDescriptor{
			Size:      types.Size{Width: img.Size.Width, Height: img.Size.Height},
			Format:    format,
			Mipmapped: cfg.Mipmap && !opts.ForceNoMipmaps,
		})
		if err != nil {
			return nil, &ConstructionError{Kind: KindDevice, Err: err}
		}
		sampler := chain.acquireSampler(wrapModeOf(cfg.Wrap), filterModeOf(cfg.Filter), filterModeOf(cfg.Filter))
		chain.luts = append(chain.luts, lutState{cfg: cfg, texture: tex, sampler: sampler})
	}

	for k := 0; k < chain.historyLen; k++ {
		tex, err := device.CreateTexture(hal.TextureDescriptor{Size: types.Size{Width: 1, Height: 1}, RenderTarget: true})
		if err != nil {
			return nil, &ConstructionError{Kind: KindDevice, Err: err}
		}
		chain.history[k] = tex
	}

	return chain, nil
}

func pipelineDescriptor(a *codegen.Artifact) hal.PipelineDescriptor {
	if a.Target == codegen.TargetSPIRV {
		return hal.PipelineDescriptor{VertexSource: a.VertexWords, FragmentSource: a.FragmentWords}
	}
	return hal.PipelineDescriptor{VertexSource: a.VertexSource, FragmentSource: a.FragmentSource}
}

func (c *Chain) acquireSampler(wrap hal.WrapMode, filter, mipFilter hal.FilterMode) hal.Sampler {
	key := samplerKey{wrap: wrap, filter: filter, mipFilter: mipFilter}
	if !c.options.DisableCache {
		if s, ok := c.samplers[key]; ok {
			return s
		}
	}
	s, err := c.device.CreateSampler(hal.SamplerDescriptor{Wrap: wrap, Filter: filter, MipFilter: mipFilter})
	if err != nil {
		c.log.Warn("failed to create sampler", slog.Any("error", err))
		return nil
	}
	if !c.options.DisableCache {
		c.samplers[key] = s
	}
	return s
}

// Parameters returns the merged, de-duplicated parameter manifest in
// declaration order.
func (c *Chain) Parameters() []preprocess.ShaderParameter {
	out := make([]preprocess.ShaderParameter, len(c.parameters))
	copy(out, c.parameters)
	return out
}

// GetParameter returns the current value of a named parameter.
func (c *Chain) GetParameter(name string) (float32, error) {
	for i, p := range c.parameters {
		if p.ID == name {
			return c.values[i], nil
		}
	}
	return 0, &UnknownParameterError{Name: name}
}

// SetParameter overrides a named parameter's current value, clamped to
// its declared [Minimum, Maximum] range, and returns the value it
// replaced.
func (c *Chain) SetParameter(name string, value float32) (float32, error) {
	for i, p := range c.parameters {
		if p.ID == name {
			if value < p.Minimum {
				value = p.Minimum
			}
			if value > p.Maximum {
				value = p.Maximum
			}
			previous := c.values[i]
			c.values[i] = value
			return previous, nil
		}
	}
	return 0, &UnknownParameterError{Name: name}
}

// Release returns every GPU resource the chain owns.
func (c *Chain) Release() {
	for _, ps := range c.passes {
		ps.pipeline.Release()
		if ps.output != nil {
			ps.output.Release()
		}
		if ps.feedback != nil {
			ps.feedback.Release()
		}
		for _, b := range ps.uboRing {
			if b != nil {
				b.Release()
			}
		}
		for _, b := range ps.pushRing {
			if b != nil {
				b.Release()
			}
		}
	}
	for _, lut := range c.luts {
		lut.texture.Release()
	}
	for _, s := range c.samplers {
		if s != nil {
			s.Release()
		}
	}
	if c.options.DisableCache {
		// Uncached samplers are held only by the pass or LUT that got them.
		for _, ps := range c.passes {
			if ps.sampler != nil {
				ps.sampler.Release()
			}
		}
		for _, lut := range c.luts {
			if lut.sampler != nil {
				lut.sampler.Release()
			}
		}
	}
	for k := 0; k < c.historyLen; k++ {
		if c.history[k] != nil {
			c.history[k].Release()
		}
	}
}
