package filterchain

import (
	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/preset"
	"github.com/SnowflakePowered/librashader-go/semantics"
	"github.com/SnowflakePowered/librashader-go/types"
)

// FrameOptions overrides per-frame defaults the caller can vary without
// touching construction-time Options.
type FrameOptions struct {
	// FrameDirection is +1 for forward playback, -1 for rewind. Zero
	// defaults to +1.
	FrameDirection float32
	OriginalFPS    float32
	FrameTimeDelta float32
}

// Frame renders one frame of the chain: input is the source texture for
// this frame (Original/Source at pass 0), viewport names the final
// render target and its pixel size, and frameCount is the caller's
// monotonic frame counter (used for FrameCount and frame_count_mod).
//
// On error the chain's internal state (attachment sizes, feedback,
// history) is left exactly as it was before the call.
func (c *Chain) Frame(input hal.Texture, viewport types.Viewport[hal.Texture], frameCount uint64, opts FrameOptions) error {
	direction := opts.FrameDirection
	if direction == 0 {
		direction = 1
	}

	inputSize := input.Size()
	if err := c.reallocate(inputSize, viewport.Size); err != nil {
		return err
	}

	mvp := identityMVP
	if viewport.MVP != nil {
		mvp = *viewport.MVP
	}

	aspect := float32(0)
	if inputSize.Height != 0 {
		aspect = float32(inputSize.Width) / float32(inputSize.Height)
	}

	fs := frameState{
		frameCount:            frameCount,
		frameDirection:        direction,
		originalFPS:           opts.OriginalFPS,
		frameTimeDelta:        opts.FrameTimeDelta,
		originalAspect:        aspect,
		originalAspectRotated: aspect,
		mvp:                   mvp,
		finalViewport:         viewport.Size,
	}

	for i, ps := range c.passes {
		target := ps.output
		viewW, viewH := int(ps.size.Width), int(ps.size.Height)
		if i == len(c.passes)-1 {
			target = viewport.Output
			viewW, viewH = int(viewport.Size.Width), int(viewport.Size.Height)
		}

		if err := c.runPass(i, ps, input, target, viewW, viewH, inputSize, fs); err != nil {
			return &FrameError{PassID: ps.cfg.ID, Err: err}
		}
	}

	for _, ps := range c.passes {
		ps.output, ps.feedback = ps.feedback, ps.output
	}

	if err := c.rotateHistory(input); err != nil {
		return &FrameError{Err: err}
	}

	c.frameCount = frameCount
	c.viewportSize = viewport.Size
	c.inputSize = inputSize
	return nil
}

func (c *Chain) runPass(passIndex int, ps *passState, input hal.Texture, target hal.Texture, viewW, viewH int, inputSize types.Size, fs frameState) error {
	var shadow, pushShadow []byte
	if ps.refl.UBO != nil {
		shadow = make([]byte, ps.refl.UBO.Size)
	}
	if ps.refl.PushConstant != nil {
		pushShadow = make([]byte, ps.refl.PushConstant.Size)
	}
	c.fillShadow(ps, passIndex, inputSize, fs, shadow, pushShadow)

	ring := ps.ringPos % len(ps.uboRing)
	if shadow != nil {
		if err := ps.uboRing[ring].Write(0, shadow); err != nil {
			return err
		}
	}
	if pushShadow != nil && ps.pushRing[ring] != nil {
		if err := ps.pushRing[ring].Write(0, pushShadow); err != nil {
			return err
		}
	}
	ps.ringPos++

	encoder := c.device.BeginCommands()
	pass := encoder.BeginRenderPass(hal.RenderPassDescriptor{Target: target, ViewportW: viewW, ViewportH: viewH})
	pass.SetPipeline(ps.pipeline)

	if shadow != nil {
		pass.BindUniformBuffer(int(ps.ctx.UBOBinding), ps.uboRing[ring])
	}
	if pushShadow != nil && ps.ctx.PushConstantBinding != nil && ps.pushRing[ring] != nil {
		pass.BindUniformBuffer(int(*ps.ctx.PushConstantBinding), ps.pushRing[ring])
	}

	for _, s := range ps.refl.Samplers {
		slot, ok := ps.ctx.Samplers[s.Name]
		if !ok {
			continue
		}
		tex, sampler := c.resolveTexture(passIndex, s.Semantic, input, ps)
		if tex != nil {
			pass.BindTexture(int(slot), tex, sampler)
		}
	}

	pass.DrawQuad()
	pass.End()
	encoder.Finish()
	return nil
}

func (c *Chain) resolveTexture(passIndex int, sem semantics.SemanticMap[semantics.TextureSemantics], input hal.Texture, self *passState) (hal.Texture, hal.Sampler) {
	switch sem.Kind {
	case semantics.Original:
		return input, self.sampler
	case semantics.Source:
		if passIndex == 0 {
			return input, self.sampler
		}
		return c.passes[passIndex-1].output, self.sampler
	case semantics.OriginalHistory:
		if sem.Index < c.historyLen {
			return c.history[sem.Index], self.sampler
		}
	case semantics.PassOutput:
		if sem.Index < len(c.passes) {
			return c.passes[sem.Index].output, self.sampler
		}
	case semantics.PassFeedback:
		if sem.Index < len(c.passes) {
			return c.passes[sem.Index].feedback, self.sampler
		}
	case semantics.User:
		if sem.Index < len(c.luts) {
			lut := c.luts[sem.Index]
			return lut.texture, lut.sampler
		}
	}
	return nil, nil
}

// reallocate recomputes every non-final pass's output size and recreates
// its attachment when it changed. The feedback half of the pair is left
// untouched (it still holds the previous frame's contents at its own
// size, swapped in at the end of the previous frame).
func (c *Chain) reallocate(inputSize, viewportSize types.Size) error {
	prev := inputSize
	for i, ps := range c.passes {
		if i == len(c.passes)-1 {
			ps.size = viewportSize
			continue
		}
		newSize := types.Size(ps.cfg.Scale.Compute(preset.Size(prev), preset.Size(viewportSize)))
		if ps.output == nil || newSize != ps.size {
			tex, err := c.device.CreateTexture(hal.TextureDescriptor{
				Size:         newSize,
				RenderTarget: true,
				Mipmapped:    ps.cfg.MipmapInput && !c.options.ForceNoMipmaps,
			})
			if err != nil {
				return err
			}
			if ps.output != nil {
				ps.output.Release()
			}
			ps.output = tex
			ps.size = newSize
		}
		if ps.feedback == nil {
			tex, err := c.device.CreateTexture(hal.TextureDescriptor{Size: newSize, RenderTarget: true})
			if err != nil {
				return err
			}
			ps.feedback = tex
		}
		prev = newSize
	}
	return nil
}

// rotateHistory snapshots input into history[0] and shifts older frames
// down, dropping the eldest.
func (c *Chain) rotateHistory(input hal.Texture) error {
	if c.historyLen == 0 {
		return nil
	}
	oldest := c.history[c.historyLen-1]
	for k := c.historyLen - 1; k >= 1; k-- {
		c.history[k] = c.history[k-1]
	}

	if oldest != nil && oldest.Size() == input.Size() {
		c.history[0] = oldest
	} else {
		if oldest != nil {
			oldest.Release()
		}
		tex, err := c.device.CreateTexture(hal.TextureDescriptor{Size: input.Size(), RenderTarget: true})
		if err != nil {
			return err
		}
		c.history[0] = tex
	}
	return c.device.CopyTexture(c.history[0], input)
}
