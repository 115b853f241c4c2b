package gl

import (
	"unsafe"

	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/SnowflakePowered/librashader-go/hal"
)

// quadVertices is a unit-square triangle strip covering the full target:
// position.xy, texcoord.xy per vertex. Position is in [0,1]^2, not clip
// space — the pass's MVP (identity by default) maps it to [-1,1]^2.
var quadVertices = [...]float32{
	0, 0, 0, 0,
	1, 0, 1, 0,
	0, 1, 0, 1,
	1, 1, 1, 1,
}

var quadVBO uint32

func ensureQuadVBO() uint32 {
	if quadVBO != 0 {
		return quadVBO
	}
	gogl.GenBuffers(1, &quadVBO)
	gogl.BindBuffer(gogl.ARRAY_BUFFER, quadVBO)
	gogl.BufferData(gogl.ARRAY_BUFFER, len(quadVertices)*4, unsafe.Pointer(&quadVertices[0]), gogl.STATIC_DRAW)
	gogl.BindBuffer(gogl.ARRAY_BUFFER, 0)
	return quadVBO
}

// CommandEncoder issues GL calls immediately; there is no deferred
// command buffer to submit later, so Finish is a no-op.
type CommandEncoder struct {
	device *Device
}

func (c *CommandEncoder) BeginRenderPass(desc hal.RenderPassDescriptor) hal.RenderPassEncoder {
	target, ok := desc.Target.(*Texture)
	if !ok {
		panic("hal/gl: render pass target must be a *gl.Texture")
	}
	gogl.BindFramebuffer(gogl.FRAMEBUFFER, target.fbo)
	gogl.Viewport(int32(desc.ViewportX), int32(desc.ViewportY), int32(desc.ViewportW), int32(desc.ViewportH))
	if desc.ClearColor != nil {
		c := desc.ClearColor
		gogl.ClearColor(c[0], c[1], c[2], c[3])
		gogl.Clear(gogl.COLOR_BUFFER_BIT)
	}
	return &RenderPassEncoder{}
}

func (c *CommandEncoder) Finish() {}

// RenderPassEncoder records one pass's bound textures and issues the draw
// call immediately on DrawQuad; End only unbinds the framebuffer and
// program.
type RenderPassEncoder struct {
	program  uint32
	textures []boundTexture
}

type boundTexture struct {
	slot    int
	texture *Texture
	sampler *Sampler
}

func (r *RenderPassEncoder) SetPipeline(p hal.Pipeline) {
	pipeline, ok := p.(*Pipeline)
	if !ok {
		panic("hal/gl: pipeline must be a *gl.Pipeline")
	}
	r.program = pipeline.program
	gogl.UseProgram(r.program)
}

func (r *RenderPassEncoder) BindTexture(slot int, tex hal.Texture, sampler hal.Sampler) {
	t, ok := tex.(*Texture)
	if !ok {
		panic("hal/gl: texture must be a *gl.Texture")
	}
	s, _ := sampler.(*Sampler)
	r.textures = append(r.textures, boundTexture{slot: slot, texture: t, sampler: s})
}

func (r *RenderPassEncoder) BindUniformBuffer(binding int, buf hal.Buffer) {
	b, ok := buf.(*Buffer)
	if !ok {
		panic("hal/gl: buffer must be a *gl.Buffer")
	}
	gogl.BindBufferBase(gogl.UNIFORM_BUFFER, uint32(binding), b.id)
}

func (r *RenderPassEncoder) DrawQuad() {
	vbo := ensureQuadVBO()
	gogl.BindBuffer(gogl.ARRAY_BUFFER, vbo)

	for _, bt := range r.textures {
		gogl.ActiveTexture(gogl.TEXTURE0 + uint32(bt.slot))
		gogl.BindTexture(gogl.TEXTURE_2D, bt.texture.id)
		if bt.sampler != nil {
			gogl.BindSampler(uint32(bt.slot), bt.sampler.id)
		}
	}

	const stride = 4 * 4
	posLoc := uint32(gogl.GetAttribLocation(r.program, gogl.Str("Position\x00")))
	gogl.EnableVertexAttribArray(posLoc)
	gogl.VertexAttribPointerWithOffset(posLoc, 2, gogl.FLOAT, false, stride, 0)

	texLoc := uint32(gogl.GetAttribLocation(r.program, gogl.Str("TexCoord\x00")))
	gogl.EnableVertexAttribArray(texLoc)
	gogl.VertexAttribPointerWithOffset(texLoc, 2, gogl.FLOAT, false, stride, 2*4)

	gogl.DrawArrays(gogl.TRIANGLE_STRIP, 0, 4)

	gogl.DisableVertexAttribArray(posLoc)
	gogl.DisableVertexAttribArray(texLoc)
	gogl.BindBuffer(gogl.ARRAY_BUFFER, 0)
}

func (r *RenderPassEncoder) End() {
	gogl.BindFramebuffer(gogl.FRAMEBUFFER, 0)
	gogl.UseProgram(0)
}
