package filterchain

import (
	"encoding/binary"
	"math"

	"github.com/SnowflakePowered/librashader-go/reflect"
	"github.com/SnowflakePowered/librashader-go/semantics"
	"github.com/SnowflakePowered/librashader-go/types"
)

// identityMVP is the canonical NDC-quad transform: maps a [0,1]^2 unit
// quad to the [-1,1]^2 clip-space rectangle covering the whole viewport.
var identityMVP = [16]float32{
	2, 0, 0, 0,
	0, 2, 0, 0,
	0, 0, 2, 0,
	-1, -1, 0, 1,
}

func putFloat32(buf []byte, offset uint32, v float32) {
	binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
}

func putSizeVec4(buf []byte, offset uint32, size types.Size) {
	w, h := float32(size.Width), float32(size.Height)
	putFloat32(buf, offset, w)
	putFloat32(buf, offset+4, h)
	if w != 0 {
		putFloat32(buf, offset+8, 1/w)
	}
	if h != 0 {
		putFloat32(buf, offset+12, 1/h)
	}
}

func putMat4(buf []byte, offset uint32, m [16]float32) {
	for i, v := range m {
		putFloat32(buf, offset+uint32(i*4), v)
	}
}

// frameState carries everything a pass's shadow buffer needs to resolve
// every UniformBinding for one draw.
type frameState struct {
	frameCount            uint64
	frameDirection        float32
	originalFPS           float32
	frameTimeDelta        float32
	originalAspect        float32
	originalAspectRotated float32
	mvp                   [16]float32
	finalViewport         types.Size
}

// resolveTextureSize returns the live size of whichever texture sem
// refers to, as observed at the point pass passIndex is about to run.
func (c *Chain) resolveTextureSize(sem semantics.SemanticMap[semantics.TextureSemantics], passIndex int, inputSize types.Size) types.Size {
	switch sem.Kind {
	case semantics.Original:
		return inputSize
	case semantics.Source:
		if passIndex == 0 {
			return inputSize
		}
		return c.passes[passIndex-1].size
	case semantics.OriginalHistory:
		if sem.Index < c.historyLen && c.history[sem.Index] != nil {
			return c.history[sem.Index].Size()
		}
		return types.Size{}
	case semantics.PassOutput:
		if sem.Index < len(c.passes) {
			return c.passes[sem.Index].size
		}
		return types.Size{}
	case semantics.PassFeedback:
		if sem.Index < len(c.passes) && c.passes[sem.Index].feedback != nil {
			return c.passes[sem.Index].feedback.Size()
		}
		return types.Size{}
	case semantics.User:
		if sem.Index < len(c.luts) {
			return c.luts[sem.Index].texture.Size()
		}
		return types.Size{}
	default:
		return types.Size{}
	}
}

// fillShadow writes every reflected uniform member into buf (the UBO
// shadow) and pushBuf (the push-constant shadow, may be nil).
func (c *Chain) fillShadow(ps *passState, passIndex int, inputSize types.Size, fs frameState, buf, pushBuf []byte) {
	for _, m := range ps.refl.Members {
		dst := buf
		if m.Location.InPushConstant {
			dst = pushBuf
		}
		if dst == nil {
			continue
		}
		offset := m.Location.Offset

		switch m.Binding.Kind {
		case reflect.BindingParameter:
			putFloat32(dst, offset, c.values[m.Binding.ParameterIndex])
		case reflect.BindingTextureSize:
			putSizeVec4(dst, offset, c.resolveTextureSize(m.Binding.TextureSize, passIndex, inputSize))
		case reflect.BindingSemanticVariable:
			switch m.Binding.Unique {
			case semantics.MVP:
				putMat4(dst, offset, fs.mvp)
			case semantics.Output:
				putSizeVec4(dst, offset, ps.size)
			case semantics.FinalViewport:
				putSizeVec4(dst, offset, fs.finalViewport)
			case semantics.FrameCount:
				count := fs.frameCount
				if ps.cfg.FrameCountMod > 0 {
					count = count % uint64(ps.cfg.FrameCountMod)
				}
				putFloat32(dst, offset, float32(count))
			case semantics.FrameDirection:
				putFloat32(dst, offset, fs.frameDirection)
			case semantics.OriginalFPS:
				putFloat32(dst, offset, fs.originalFPS)
			case semantics.FrameTimeDelta:
				putFloat32(dst, offset, fs.frameTimeDelta)
			case semantics.OriginalAspect:
				putFloat32(dst, offset, fs.originalAspect)
			case semantics.OriginalAspectRotated:
				putFloat32(dst, offset, fs.originalAspectRotated)
			}
		}
	}
}
