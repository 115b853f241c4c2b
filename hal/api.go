// Package hal is the capability set a host-provided GPU device exposes to
// the filter chain: texture/buffer/sampler/pipeline creation and a
// command-recording surface sufficient to draw a fullscreen quad per
// pass. It owns no concrete backend; concrete backends live in
// sub-packages (hal/noop, hal/gl) and register themselves via
// RegisterBackend.
package hal

import "github.com/SnowflakePowered/librashader-go/types"

// WrapMode selects how a sampler addresses out-of-range texture
// coordinates.
type WrapMode int

const (
	WrapClampToBorder WrapMode = iota
	WrapClampToEdge
	WrapRepeat
	WrapMirroredRepeat
)

// FilterMode selects how a sampler interpolates between texels.
type FilterMode int

const (
	FilterLinear FilterMode = iota
	FilterNearest
)

// TextureDescriptor configures a framebuffer, LUT, or history texture.
type TextureDescriptor struct {
	Size         types.Size
	Format       types.ImageFormat
	RenderTarget bool
	Mipmapped    bool
}

// BufferDescriptor configures a uniform or push-constant buffer.
type BufferDescriptor struct {
	Size int
}

// SamplerDescriptor configures one of the chain's immutable sampler
// objects.
type SamplerDescriptor struct {
	Wrap      WrapMode
	Filter    FilterMode
	MipFilter FilterMode
}

// PipelineDescriptor configures a pass's graphics pipeline: a vertex and
// fragment shader pair in whatever backend-native form the device
// expects (a GLSL string, SPIR-V words, etc. — the concrete type is
// backend-specific and opaque to the filter chain beyond passing it
// through).
type PipelineDescriptor struct {
	VertexSource   any
	FragmentSource any
}

// RenderPassDescriptor configures one pass's draw: the render target and
// the viewport rectangle within it.
type RenderPassDescriptor struct {
	Target      Texture
	ViewportX   int
	ViewportY   int
	ViewportW   int
	ViewportH   int
	ClearColor  *[4]float32
}

// Releasable is implemented by every GPU-owned resource handle; Release
// returns its underlying memory to the device. Calling Release more than
// once is a caller error.
type Releasable interface {
	Release()
}

// Texture is a device-owned 2D image: a framebuffer attachment, LUT, or
// history slot.
type Texture interface {
	Releasable
	Size() types.Size
	Format() types.ImageFormat
}

// Buffer is a device-owned block of host-writable memory backing a
// uniform or push-constant block.
type Buffer interface {
	Releasable
	Write(offset int, data []byte) error
}

// Sampler is a device-owned, immutable (wrap, filter, mip-filter) sampler
// object.
type Sampler interface {
	Releasable
}

// Pipeline is a device-owned compiled graphics pipeline for one pass.
type Pipeline interface {
	Releasable
}

// Device is the capability set the filter chain needs from a
// host-provided GPU context. The chain never creates or destroys the
// device itself; it is borrowed for the chain's lifetime.
type Device interface {
	CreateTexture(desc TextureDescriptor) (Texture, error)
	CreateBuffer(desc BufferDescriptor) (Buffer, error)
	CreateSampler(desc SamplerDescriptor) (Sampler, error)
	CreatePipeline(desc PipelineDescriptor) (Pipeline, error)
	BeginCommands() CommandEncoder
	// CopyTexture blits the full contents of src into dst, which must be
	// the same size. Used to snapshot a borrowed input texture into the
	// chain's own history ring.
	CopyTexture(dst, src Texture) error
}

// CommandEncoder records a sequence of render passes. Backends that issue
// commands immediately (GL) implement Finish as a no-op; backends that
// build a command buffer (Vulkan, Metal) return it for the caller to
// submit — out of scope here since only hal/gl is shipped as a real
// backend.
type CommandEncoder interface {
	BeginRenderPass(desc RenderPassDescriptor) RenderPassEncoder
	Finish()
}

// RenderPassEncoder records one pass's draw.
type RenderPassEncoder interface {
	SetPipeline(p Pipeline)
	BindTexture(slot int, tex Texture, sampler Sampler)
	BindUniformBuffer(binding int, buf Buffer)
	DrawQuad()
	End()
}
