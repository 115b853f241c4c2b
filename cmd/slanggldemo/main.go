// Command slanggldemo loads a slang shader preset and drives it against a
// live OpenGL 3.3 core window, presenting the filtered output every
// frame. It is a minimal host: input is a blank render-target texture
// created once at the window's initial size; no image is loaded into it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	librashader "github.com/SnowflakePowered/librashader-go"
	"github.com/SnowflakePowered/librashader-go/hal"
	halgl "github.com/SnowflakePowered/librashader-go/hal/gl"
	"github.com/SnowflakePowered/librashader-go/types"
)

func init() {
	// GLFW and GL contexts are bound to the creating OS thread.
	runtime.LockOSThread()
}

func main() {
	width := flag.Int("width", 1280, "window width")
	height := flag.Int("height", 720, "window height")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <preset.slangp>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *width, *height); err != nil {
		fmt.Fprintf(os.Stderr, "slanggldemo: %v\n", err)
		os.Exit(1)
	}
}

func run(presetPath string, width, height int) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(width, height, "slanggldemo", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()

	device, err := halgl.New()
	if err != nil {
		return fmt.Errorf("init gl device: %w", err)
	}

	chain, err := librashader.Load(presetPath, device, nil, librashader.Options{
		Log: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})
	if err != nil {
		return fmt.Errorf("load preset: %w", err)
	}
	defer chain.Release()

	input, err := device.CreateTexture(hal.TextureDescriptor{
		Size:         types.Size{Width: uint32(width), Height: uint32(height)},
		RenderTarget: true,
	})
	if err != nil {
		return fmt.Errorf("create input texture: %w", err)
	}
	defer input.Release()

	frameCount := uint64(0)
	for !win.ShouldClose() {
		fbW, fbH := win.GetFramebufferSize()
		fbSize := types.Size{Width: uint32(fbW), Height: uint32(fbH)}
		viewport := librashader.Viewport{
			Output: halgl.DefaultFramebuffer(fbSize),
			Size:   fbSize,
		}
		if err := chain.Frame(input, viewport, frameCount, librashader.FrameOptions{}); err != nil {
			return fmt.Errorf("frame %d: %w", frameCount, err)
		}
		frameCount++

		win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}
