package gl

import (
	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/types"
)

// Texture wraps a GL texture object and, for render targets, the
// framebuffer object bound to it.
type Texture struct {
	id     uint32
	fbo    uint32 // 0 unless created with RenderTarget: true
	size   types.Size
	format types.ImageFormat
}

func (t *Texture) Release() {
	if t.fbo != 0 {
		gogl.DeleteFramebuffers(1, &t.fbo)
	}
	gogl.DeleteTextures(1, &t.id)
}

func (t *Texture) Size() types.Size          { return t.size }
func (t *Texture) Format() types.ImageFormat { return t.format }

// DefaultFramebuffer returns a hal.Texture standing in for the window
// system's default framebuffer (GL object 0), sized to the current
// window/framebuffer size. It owns no GL object and Release is a no-op;
// the caller must not keep it across a resize.
func DefaultFramebuffer(size types.Size) hal.Texture {
	return &Texture{size: size, format: types.R8G8B8A8Unorm}
}

// Buffer wraps a GL uniform buffer object.
type Buffer struct {
	id   uint32
	size int
}

func (b *Buffer) Release() {
	gogl.DeleteBuffers(1, &b.id)
}

func (b *Buffer) Write(offset int, data []byte) error {
	if offset < 0 || offset+len(data) > b.size {
		return hal.ErrDeviceOutOfMemory
	}
	if len(data) == 0 {
		return nil
	}
	gogl.BindBuffer(gogl.UNIFORM_BUFFER, b.id)
	gogl.BufferSubData(gogl.UNIFORM_BUFFER, offset, len(data), gogl.Ptr(&data[0]))
	gogl.BindBuffer(gogl.UNIFORM_BUFFER, 0)
	return nil
}

// Sampler wraps a GL sampler object.
type Sampler struct {
	id uint32
}

func (s *Sampler) Release() {
	gogl.DeleteSamplers(1, &s.id)
}

// Pipeline wraps a linked GL program.
type Pipeline struct {
	program uint32
}

func (p *Pipeline) Release() {
	gogl.DeleteProgram(p.program)
}
