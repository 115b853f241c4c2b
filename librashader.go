package librashader

import (
	"errors"

	"github.com/SnowflakePowered/librashader-go/filterchain"
	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/types"
)

// ErrReleased is returned by any Chain method called after Release.
var ErrReleased = errors.New("librashader: chain already released")

// Options configures chain construction and per-frame defaults. It is a
// re-export of filterchain.Options; callers never need to import the
// filterchain package directly.
type Options = filterchain.Options

// FrameOptions overrides per-frame defaults on a single Frame call.
type FrameOptions = filterchain.FrameOptions

// Parameter describes one adjustable knob a preset or its shaders expose.
type Parameter = preprocess.ShaderParameter

// Viewport names the final render target and extent for a frame.
type Viewport = types.Viewport[hal.Texture]

// Chain is a constructed, ready-to-drive filter pipeline loaded from a
// preset. It owns every GPU resource it allocated and must be released
// with Release when the caller is done with it.
type Chain struct {
	inner    *filterchain.Chain
	released bool
}

// Load parses presetPath and builds a Chain against device. luts must
// supply one decoded image per texture the preset declares, in preset
// declaration order; pass nil when the preset declares no textures.
func Load(presetPath string, device hal.Device, luts []types.Image, opts Options) (*Chain, error) {
	inner, err := filterchain.Build(presetPath, device, luts, opts)
	if err != nil {
		return nil, err
	}
	return &Chain{inner: inner}, nil
}

// Parameters returns the merged, de-duplicated parameter manifest in
// declaration order.
func (c *Chain) Parameters() ([]Parameter, error) {
	if c.released {
		return nil, ErrReleased
	}
	return c.inner.Parameters(), nil
}

// GetParameter returns the current value of a named parameter.
func (c *Chain) GetParameter(name string) (float32, error) {
	if c.released {
		return 0, ErrReleased
	}
	return c.inner.GetParameter(name)
}

// SetParameter overrides a named parameter's current value, clamped to
// its declared range, and returns the value it replaced.
func (c *Chain) SetParameter(name string, value float32) (float32, error) {
	if c.released {
		return 0, ErrReleased
	}
	return c.inner.SetParameter(name, value)
}

// Frame renders one frame of the chain. input is the source texture for
// this frame, viewport names the final render target and its pixel
// size, and frameCount is the caller's monotonic frame counter.
func (c *Chain) Frame(input hal.Texture, viewport Viewport, frameCount uint64, opts FrameOptions) error {
	if c.released {
		return ErrReleased
	}
	return c.inner.Frame(input, viewport, frameCount, opts)
}

// Release returns every GPU resource the chain owns. Calling Release
// more than once is a no-op.
func (c *Chain) Release() {
	if c.released {
		return
	}
	c.inner.Release()
	c.released = true
}
