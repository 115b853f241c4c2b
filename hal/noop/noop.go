// Package noop is an in-memory hal.Device that performs no actual
// rendering. It records nothing to a GPU and every draw call is a no-op;
// buffer writes are retained in host memory so tests can assert on them.
// It exists for filter chain unit tests that need a hal.Device without a
// window or driver.
package noop

import (
	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/types"
)

func init() {
	hal.RegisterBackend(hal.BackendNoop, func(any) (hal.Device, error) {
		return &Device{}, nil
	})
}

// Device implements hal.Device without touching any real GPU.
type Device struct{}

func (d *Device) CreateTexture(desc hal.TextureDescriptor) (hal.Texture, error) {
	return &Texture{size: desc.Size, format: desc.Format.Resolve()}, nil
}

func (d *Device) CreateBuffer(desc hal.BufferDescriptor) (hal.Buffer, error) {
	return &Buffer{data: make([]byte, desc.Size)}, nil
}

func (d *Device) CreateSampler(hal.SamplerDescriptor) (hal.Sampler, error) {
	return &Sampler{}, nil
}

func (d *Device) CreatePipeline(hal.PipelineDescriptor) (hal.Pipeline, error) {
	return &Pipeline{}, nil
}

func (d *Device) BeginCommands() hal.CommandEncoder {
	return &CommandEncoder{}
}

func (d *Device) CopyTexture(dst, src hal.Texture) error {
	return nil
}

// Texture is an in-memory placeholder; it carries only the metadata a
// caller might query, not pixel data.
type Texture struct {
	size   types.Size
	format types.ImageFormat
}

func (t *Texture) Release()                  {}
func (t *Texture) Size() types.Size          { return t.size }
func (t *Texture) Format() types.ImageFormat { return t.format }

// Buffer retains its last-written bytes so tests can assert on uniform
// upload contents.
type Buffer struct {
	data []byte
}

func (b *Buffer) Release() {}

func (b *Buffer) Write(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > len(b.data) {
		return hal.ErrDeviceOutOfMemory
	}
	copy(b.data[offset:], data)
	return nil
}

// Bytes returns the buffer's current contents, for test assertions.
func (b *Buffer) Bytes() []byte { return b.data }

// Sampler is a placeholder; the noop backend does not sample textures.
type Sampler struct{}

func (s *Sampler) Release() {}

// Pipeline is a placeholder; the noop backend does not compile shaders.
type Pipeline struct{}

func (p *Pipeline) Release() {}

// CommandEncoder records nothing; BeginRenderPass returns a
// RenderPassEncoder whose draw calls are all no-ops.
type CommandEncoder struct{}

func (c *CommandEncoder) BeginRenderPass(hal.RenderPassDescriptor) hal.RenderPassEncoder {
	return &RenderPassEncoder{}
}

func (c *CommandEncoder) Finish() {}

// RenderPassEncoder discards every call; it exists so filter chain logic
// exercises the full Device interface in tests without asserting on
// draw-time side effects.
type RenderPassEncoder struct{}

func (r *RenderPassEncoder) SetPipeline(hal.Pipeline)                  {}
func (r *RenderPassEncoder) BindTexture(int, hal.Texture, hal.Sampler) {}
func (r *RenderPassEncoder) BindUniformBuffer(int, hal.Buffer)         {}
func (r *RenderPassEncoder) DrawQuad()                                 {}
func (r *RenderPassEncoder) End()                                      {}
