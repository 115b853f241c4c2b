package filterchain_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SnowflakePowered/librashader-go/codegen"
	"github.com/SnowflakePowered/librashader-go/filterchain"
	"github.com/SnowflakePowered/librashader-go/hal"
	_ "github.com/SnowflakePowered/librashader-go/hal/noop"
	"github.com/SnowflakePowered/librashader-go/types"
)

const shaderSource = `#version 450
#pragma stage vertex
#pragma name TestPass
#pragma parameter strength "Strength" 1.0 0.0 2.0 0.1
layout(std140, binding = 0) uniform UBO {
    mat4 MVP;
    vec4 OutputSize;
    vec4 SourceSize;
    float strength;
};
layout(location = 0) in vec4 Position;
void main() { gl_Position = MVP * Position; }
#pragma stage fragment
layout(std140, binding = 0) uniform UBO {
    mat4 MVP;
    vec4 OutputSize;
    vec4 SourceSize;
    float strength;
};
layout(binding = 1) uniform sampler2D Source;
layout(location = 0) out vec4 FragColor;
void main() { FragColor = texture(Source, vec2(0.0)) * strength; }
`

const presetSource = `shaders = 1
shader0 = pass0.slang
`

func buildTestChain(t *testing.T) (*filterchain.Chain, hal.Device) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "pass0.slang"), []byte(shaderSource), 0o644); err != nil {
		t.Fatalf("write shader: %v", err)
	}
	presetPath := filepath.Join(dir, "test.slangp")
	if err := os.WriteFile(presetPath, []byte(presetSource), 0o644); err != nil {
		t.Fatalf("write preset: %v", err)
	}

	factory, ok := hal.GetBackend(hal.BackendNoop)
	if !ok {
		t.Fatal("noop backend not registered")
	}
	device, err := factory(nil)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}

	chain, err := filterchain.Build(presetPath, device, nil, filterchain.Options{Target: codegen.TargetGLSL})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return chain, device
}

func TestBuildSinglePass(t *testing.T) {
	chain, _ := buildTestChain(t)
	defer chain.Release()

	params := chain.Parameters()
	if len(params) != 1 || params[0].ID != "strength" {
		t.Fatalf("parameters = %+v", params)
	}
	v, err := chain.GetParameter("strength")
	if err != nil {
		t.Fatalf("GetParameter: %v", err)
	}
	if v != 1.0 {
		t.Fatalf("initial strength = %v, want 1.0", v)
	}
}

func TestSetParameterClamps(t *testing.T) {
	chain, _ := buildTestChain(t)
	defer chain.Release()

	previous, err := chain.SetParameter("strength", 5.0)
	if err != nil {
		t.Fatalf("SetParameter: %v", err)
	}
	if previous != 1.0 {
		t.Fatalf("previous strength = %v, want 1.0", previous)
	}
	v, _ := chain.GetParameter("strength")
	if v != 2.0 {
		t.Fatalf("clamped strength = %v, want 2.0", v)
	}

	if _, err := chain.SetParameter("nonexistent", 1.0); err == nil {
		t.Fatal("expected error for unknown parameter")
	}
}

func TestFrameRunsWithoutError(t *testing.T) {
	chain, device := buildTestChain(t)
	defer chain.Release()

	input, err := device.CreateTexture(hal.TextureDescriptor{Size: types.Size{Width: 64, Height: 64}, RenderTarget: true})
	if err != nil {
		t.Fatalf("CreateTexture input: %v", err)
	}
	defer input.Release()

	output, err := device.CreateTexture(hal.TextureDescriptor{Size: types.Size{Width: 64, Height: 64}, RenderTarget: true})
	if err != nil {
		t.Fatalf("CreateTexture output: %v", err)
	}
	defer output.Release()

	viewport := types.Viewport[hal.Texture]{Output: output, Size: types.Size{Width: 64, Height: 64}}

	for frame := uint64(0); frame < 3; frame++ {
		if err := chain.Frame(input, viewport, frame, filterchain.FrameOptions{}); err != nil {
			t.Fatalf("Frame %d: %v", frame, err)
		}
	}
}
