package frontend_test

import (
	"testing"

	"github.com/SnowflakePowered/librashader-go/frontend"
	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/spirv"
)

func TestCompileExtractsInterface(t *testing.T) {
	src := &preprocess.ShaderSource{
		Vertex: `#version 450
layout(std140, binding = 0) uniform UBO {
    mat4 MVP;
    vec4 OutputSize;
};
layout(location = 0) in vec4 Position;
void main() { gl_Position = MVP * Position; }
`,
		Fragment: `#version 450
layout(std140, binding = 0) uniform UBO {
    mat4 MVP;
    vec4 OutputSize;
};
layout(binding = 1) uniform sampler2D Source;
layout(location = 0) out vec4 FragColor;
void main() { FragColor = texture(Source, vec2(0.0)); }
`,
	}

	comp, err := frontend.Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	vm, err := spirv.Decode(comp.Vertex)
	if err != nil {
		t.Fatalf("decode vertex: %v", err)
	}
	if vm.UBO == nil || len(vm.UBO.Members) != 2 {
		t.Fatalf("vertex ubo = %+v", vm.UBO)
	}
	if len(vm.Inputs) != 1 || vm.Inputs[0].Name != "Position" {
		t.Errorf("vertex inputs = %+v", vm.Inputs)
	}

	fm, err := spirv.Decode(comp.Fragment)
	if err != nil {
		t.Fatalf("decode fragment: %v", err)
	}
	if fm.UBO == nil || len(fm.UBO.Members) != 2 {
		t.Fatalf("fragment ubo = %+v", fm.UBO)
	}
	if len(fm.Samplers) != 1 || fm.Samplers[0].Name != "Source" {
		t.Errorf("fragment samplers = %+v", fm.Samplers)
	}
}

func TestCompileDeterministic(t *testing.T) {
	src := &preprocess.ShaderSource{
		Vertex:   "#version 450\nvoid main() {}\n",
		Fragment: "#version 450\nvoid main() {}\n",
	}
	a, err := frontend.Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	b, err := frontend.Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(a.Vertex) != len(b.Vertex) {
		t.Fatal("non-deterministic output length")
	}
	for i := range a.Vertex {
		if a.Vertex[i] != b.Vertex[i] {
			t.Fatalf("non-deterministic output at word %d", i)
		}
	}
}
