package noop_test

import (
	"bytes"
	"testing"

	"github.com/SnowflakePowered/librashader-go/hal"
	"github.com/SnowflakePowered/librashader-go/hal/noop"
	"github.com/SnowflakePowered/librashader-go/types"
)

func openDevice(t *testing.T) hal.Device {
	t.Helper()
	factory, ok := hal.GetBackend(hal.BackendNoop)
	if !ok {
		t.Fatal("noop backend not registered")
	}
	dev, err := factory(nil)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	return dev
}

func TestDeviceCreateResources(t *testing.T) {
	dev := openDevice(t)

	tex, err := dev.CreateTexture(hal.TextureDescriptor{Size: types.Size{Width: 4, Height: 4}})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	if tex.Size().Width != 4 || tex.Size().Height != 4 {
		t.Fatalf("unexpected size %+v", tex.Size())
	}
	if tex.Format() != types.R8G8B8A8Unorm {
		t.Fatalf("expected resolved default format, got %v", tex.Format())
	}
	defer tex.Release()

	buf, err := dev.CreateBuffer(hal.BufferDescriptor{Size: 16})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	defer buf.Release()

	sampler, err := dev.CreateSampler(hal.SamplerDescriptor{})
	if err != nil {
		t.Fatalf("CreateSampler: %v", err)
	}
	defer sampler.Release()

	pipeline, err := dev.CreatePipeline(hal.PipelineDescriptor{})
	if err != nil {
		t.Fatalf("CreatePipeline: %v", err)
	}
	defer pipeline.Release()
}

func TestBufferWriteRoundTrip(t *testing.T) {
	dev := openDevice(t)
	buf, err := dev.CreateBuffer(hal.BufferDescriptor{Size: 8})
	if err != nil {
		t.Fatalf("CreateBuffer: %v", err)
	}
	if err := buf.Write(0, []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := buf.Write(4, []byte{5, 6, 7, 8}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := buf.Write(5, []byte{0, 0, 0, 0, 0}); err == nil {
		t.Fatal("expected out-of-range write to fail")
	}

	nb, ok := buf.(*noop.Buffer)
	if !ok {
		t.Fatalf("buffer type = %T, want *noop.Buffer", buf)
	}
	if want := []byte{1, 2, 3, 4, 5, 6, 7, 8}; !bytes.Equal(nb.Bytes(), want) {
		t.Fatalf("buffer contents = %v, want %v", nb.Bytes(), want)
	}
}

func TestCommandEncoderDrawNoop(t *testing.T) {
	dev := openDevice(t)
	tex, err := dev.CreateTexture(hal.TextureDescriptor{Size: types.Size{Width: 1, Height: 1}, RenderTarget: true})
	if err != nil {
		t.Fatalf("CreateTexture: %v", err)
	}
	defer tex.Release()

	enc := dev.BeginCommands()
	pass := enc.BeginRenderPass(hal.RenderPassDescriptor{Target: tex, ViewportW: 1, ViewportH: 1})
	pass.DrawQuad()
	pass.End()
	enc.Finish()
}
