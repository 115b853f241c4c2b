// Package gl implements hal.Device on top of a current OpenGL 3.3 core
// profile context. The caller is responsible for creating that context
// (typically via glfw) and keeping it current on the goroutine that
// drives the filter chain; this package never creates or manages a
// window.
package gl

import (
	"fmt"

	gogl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/types"
)

func init() {
	hal.RegisterBackend(hal.BackendGL, func(any) (hal.Device, error) {
		return New()
	})
}

// Device implements hal.Device against the calling goroutine's current
// GL 3.3 core context.
type Device struct {
	vao uint32 // core profile requires one bound to issue any draw call
}

// New initializes the device against the already-current GL context:
// binds a persistent VAO and calls gl.Init. The caller must have made a
// context current (glfw.MakeContextCurrent or equivalent) before calling
// New.
func New() (*Device, error) {
	if err := gogl.Init(); err != nil {
		return nil, fmt.Errorf("hal/gl: init: %w", err)
	}
	var vao uint32
	gogl.GenVertexArrays(1, &vao)
	gogl.BindVertexArray(vao)
	return &Device{vao: vao}, nil
}

func (d *Device) CreateTexture(desc hal.TextureDescriptor) (hal.Texture, error) {
	internalFmt, format, glType, err := imageFormatToGL(desc.Format.Resolve())
	if err != nil {
		return nil, err
	}

	var id uint32
	gogl.GenTextures(1, &id)
	gogl.BindTexture(gogl.TEXTURE_2D, id)
	gogl.TexImage2D(gogl.TEXTURE_2D, 0, internalFmt, int32(desc.Size.Width), int32(desc.Size.Height), 0, format, glType, nil)
	gogl.TexParameteri(gogl.TEXTURE_2D, gogl.TEXTURE_MIN_FILTER, gogl.LINEAR)
	gogl.TexParameteri(gogl.TEXTURE_2D, gogl.TEXTURE_MAG_FILTER, gogl.LINEAR)
	gogl.TexParameteri(gogl.TEXTURE_2D, gogl.TEXTURE_WRAP_S, gogl.CLAMP_TO_EDGE)
	gogl.TexParameteri(gogl.TEXTURE_2D, gogl.TEXTURE_WRAP_T, gogl.CLAMP_TO_EDGE)
	if desc.Mipmapped {
		gogl.GenerateMipmap(gogl.TEXTURE_2D)
	}
	gogl.BindTexture(gogl.TEXTURE_2D, 0)

	tex := &Texture{id: id, size: desc.Size, format: desc.Format.Resolve()}
	if desc.RenderTarget {
		gogl.GenFramebuffers(1, &tex.fbo)
		gogl.BindFramebuffer(gogl.FRAMEBUFFER, tex.fbo)
		gogl.FramebufferTexture2D(gogl.FRAMEBUFFER, gogl.COLOR_ATTACHMENT0, gogl.TEXTURE_2D, id, 0)
		if status := gogl.CheckFramebufferStatus(gogl.FRAMEBUFFER); status != gogl.FRAMEBUFFER_COMPLETE {
			gogl.BindFramebuffer(gogl.FRAMEBUFFER, 0)
			return nil, fmt.Errorf("hal/gl: incomplete framebuffer: 0x%x", status)
		}
		gogl.BindFramebuffer(gogl.FRAMEBUFFER, 0)
	}
	return tex, nil
}

func (d *Device) CreateBuffer(desc hal.BufferDescriptor) (hal.Buffer, error) {
	var id uint32
	gogl.GenBuffers(1, &id)
	gogl.BindBuffer(gogl.UNIFORM_BUFFER, id)
	gogl.BufferData(gogl.UNIFORM_BUFFER, desc.Size, nil, gogl.DYNAMIC_DRAW)
	gogl.BindBuffer(gogl.UNIFORM_BUFFER, 0)
	return &Buffer{id: id, size: desc.Size}, nil
}

func (d *Device) CreateSampler(desc hal.SamplerDescriptor) (hal.Sampler, error) {
	var id uint32
	gogl.GenSamplers(1, &id)
	gogl.SamplerParameteri(id, gogl.TEXTURE_WRAP_S, wrapModeToGL(desc.Wrap))
	gogl.SamplerParameteri(id, gogl.TEXTURE_WRAP_T, wrapModeToGL(desc.Wrap))
	gogl.SamplerParameteri(id, gogl.TEXTURE_MAG_FILTER, filterModeToGL(desc.Filter, false))
	gogl.SamplerParameteri(id, gogl.TEXTURE_MIN_FILTER, filterModeToGL(desc.Filter, desc.MipFilter == hal.FilterLinear))
	return &Sampler{id: id}, nil
}

func (d *Device) CreatePipeline(desc hal.PipelineDescriptor) (hal.Pipeline, error) {
	vertSrc, ok := desc.VertexSource.(string)
	if !ok {
		return nil, fmt.Errorf("hal/gl: vertex source must be a GLSL string")
	}
	fragSrc, ok := desc.FragmentSource.(string)
	if !ok {
		return nil, fmt.Errorf("hal/gl: fragment source must be a GLSL string")
	}

	vert, err := compileShader(gogl.VERTEX_SHADER, vertSrc)
	if err != nil {
		return nil, err
	}
	defer gogl.DeleteShader(vert)

	frag, err := compileShader(gogl.FRAGMENT_SHADER, fragSrc)
	if err != nil {
		return nil, err
	}
	defer gogl.DeleteShader(frag)

	program := gogl.CreateProgram()
	gogl.AttachShader(program, vert)
	gogl.AttachShader(program, frag)
	gogl.LinkProgram(program)

	var status int32
	gogl.GetProgramiv(program, gogl.LINK_STATUS, &status)
	if status == gogl.FALSE {
		logText := programInfoLog(program)
		gogl.DeleteProgram(program)
		return nil, fmt.Errorf("hal/gl: link failed: %s", logText)
	}

	return &Pipeline{program: program}, nil
}

func (d *Device) BeginCommands() hal.CommandEncoder {
	return &CommandEncoder{device: d}
}

// CopyTexture blits src's full extent into dst via a read/draw framebuffer
// pair. src must have been created with RenderTarget: true; a dst without
// its own framebuffer gets a temporary one for the blit.
func (d *Device) CopyTexture(dst, src hal.Texture) error {
	srcTex, ok := src.(*Texture)
	if !ok {
		return fmt.Errorf("hal/gl: src must be a *gl.Texture")
	}
	dstTex, ok := dst.(*Texture)
	if !ok {
		return fmt.Errorf("hal/gl: dst must be a *gl.Texture")
	}
	if srcTex.fbo == 0 {
		return fmt.Errorf("hal/gl: src texture has no framebuffer attached")
	}

	needsTemp := dstTex.fbo == 0
	blitTarget := dstTex.fbo
	if needsTemp {
		gogl.GenFramebuffers(1, &blitTarget)
		gogl.BindFramebuffer(gogl.FRAMEBUFFER, blitTarget)
		gogl.FramebufferTexture2D(gogl.FRAMEBUFFER, gogl.COLOR_ATTACHMENT0, gogl.TEXTURE_2D, dstTex.id, 0)
	}

	gogl.BindFramebuffer(gogl.READ_FRAMEBUFFER, srcTex.fbo)
	gogl.BindFramebuffer(gogl.DRAW_FRAMEBUFFER, blitTarget)
	w, h := int32(srcTex.size.Width), int32(srcTex.size.Height)
	gogl.BlitFramebuffer(0, 0, w, h, 0, 0, int32(dstTex.size.Width), int32(dstTex.size.Height), gogl.COLOR_BUFFER_BIT, gogl.LINEAR)
	gogl.BindFramebuffer(gogl.FRAMEBUFFER, 0)

	if needsTemp {
		gogl.DeleteFramebuffers(1, &blitTarget)
	}
	return nil
}

func compileShader(kind uint32, source string) (uint32, error) {
	shader := gogl.CreateShader(kind)
	csource, free := gogl.Strs(source + "\x00")
	gogl.ShaderSource(shader, 1, csource, nil)
	free()
	gogl.CompileShader(shader)

	var status int32
	gogl.GetShaderiv(shader, gogl.COMPILE_STATUS, &status)
	if status == gogl.FALSE {
		logText := shaderInfoLog(shader)
		gogl.DeleteShader(shader)
		return 0, fmt.Errorf("hal/gl: compile failed: %s", logText)
	}
	return shader, nil
}

func shaderInfoLog(shader uint32) string {
	var length int32
	gogl.GetShaderiv(shader, gogl.INFO_LOG_LENGTH, &length)
	log := make([]byte, length+1)
	gogl.GetShaderInfoLog(shader, length, nil, &log[0])
	return string(log)
}

func programInfoLog(program uint32) string {
	var length int32
	gogl.GetProgramiv(program, gogl.INFO_LOG_LENGTH, &length)
	log := make([]byte, length+1)
	gogl.GetProgramInfoLog(program, length, nil, &log[0])
	return string(log)
}

func imageFormatToGL(format types.ImageFormat) (internalFmt int32, pixelFormat uint32, glType uint32, err error) {
	switch format {
	case types.R8G8B8A8Unorm:
		return gogl.RGBA8, gogl.RGBA, gogl.UNSIGNED_BYTE, nil
	case types.R8G8B8A8Srgb:
		return gogl.SRGB8_ALPHA8, gogl.RGBA, gogl.UNSIGNED_BYTE, nil
	case types.R16G16B16A16Sfloat:
		return gogl.RGBA16F, gogl.RGBA, gogl.HALF_FLOAT, nil
	case types.R32G32B32A32Sfloat:
		return gogl.RGBA32F, gogl.RGBA, gogl.FLOAT, nil
	case types.R8Unorm:
		return gogl.R8, gogl.RED, gogl.UNSIGNED_BYTE, nil
	default:
		return 0, 0, 0, hal.ErrUnsupportedFormat
	}
}

func wrapModeToGL(w hal.WrapMode) int32 {
	switch w {
	case hal.WrapClampToEdge:
		return gogl.CLAMP_TO_EDGE
	case hal.WrapRepeat:
		return gogl.REPEAT
	case hal.WrapMirroredRepeat:
		return gogl.MIRRORED_REPEAT
	default:
		return gogl.CLAMP_TO_BORDER
	}
}

func filterModeToGL(filter hal.FilterMode, mip bool) int32 {
	if filter == hal.FilterNearest {
		if mip {
			return gogl.NEAREST_MIPMAP_NEAREST
		}
		return gogl.NEAREST
	}
	if mip {
		return gogl.LINEAR_MIPMAP_LINEAR
	}
	return gogl.LINEAR
}
