package codegen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/SnowflakePowered/librashader-go/codegen"
	"github.com/SnowflakePowered/librashader-go/frontend"
	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/reflect"
	"github.com/SnowflakePowered/librashader-go/semantics"
)

func buildReflection(t *testing.T) (*preprocess.ShaderSource, *reflect.ShaderReflection) {
	t.Helper()
	frag := `#version 450
layout(std140, binding = 3) uniform UBO {
    mat4 MVP;
};
layout(binding = 5) uniform sampler2D Source;
layout(binding = 7) uniform sampler2D LUT;
void main() {}
`
	src := &preprocess.ShaderSource{Vertex: "#version 450\nvoid main() {}\n", Fragment: frag}
	comp, err := frontend.Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	sem := &semantics.ShaderSemantics{
		UniformSemantics: map[string]semantics.UniformSemantic{
			"MVP": {Unique: semantics.SemanticMap[semantics.UniqueSemantics]{Kind: semantics.MVP}},
		},
		TextureSemantics: map[string]semantics.SemanticMap[semantics.TextureSemantics]{
			"Source": {Kind: semantics.Source},
			"LUT":    {Kind: semantics.User, Index: 0},
		},
	}
	refl, err := reflect.Reflect(comp, sem, 0)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	return src, refl
}

func TestCompileGLSLRebindsBindings(t *testing.T) {
	src, refl := buildReflection(t)
	comp, _ := frontend.Compile(src)

	artifact, ctx, err := codegen.Compile(codegen.TargetGLSL, comp, src, refl)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ctx.UBOBinding != 0 {
		t.Errorf("ubo binding = %d, want 0", ctx.UBOBinding)
	}
	if strings.Contains(artifact.FragmentSource, "binding = 3") {
		t.Errorf("UBO binding not rebound to 0: %s", artifact.FragmentSource)
	}
	if !strings.Contains(artifact.FragmentSource, "binding = 0) uniform UBO") {
		t.Errorf("expected rebound UBO declaration: %s", artifact.FragmentSource)
	}
	for name, slot := range ctx.Samplers {
		want := fmt.Sprintf("binding = %d", slot)
		if !strings.Contains(artifact.FragmentSource, want) {
			t.Errorf("sampler %s not rebound to slot %d in: %s", name, slot, artifact.FragmentSource)
		}
	}
}

func TestCompileSPIRVPassesWordsThrough(t *testing.T) {
	src, refl := buildReflection(t)
	comp, _ := frontend.Compile(src)

	artifact, _, err := codegen.Compile(codegen.TargetSPIRV, comp, src, refl)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(artifact.VertexWords) != len(comp.Vertex) || len(artifact.FragmentWords) != len(comp.Fragment) {
		t.Errorf("spirv passthrough length mismatch")
	}
}

func TestCompileHLSLDeclaresCbufferAndTextures(t *testing.T) {
	src, refl := buildReflection(t)
	comp, _ := frontend.Compile(src)

	artifact, ctx, err := codegen.Compile(codegen.TargetHLSL, comp, src, refl)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !strings.Contains(artifact.FragmentSource, "cbuffer UBO : register(b0)") {
		t.Errorf("missing cbuffer declaration: %s", artifact.FragmentSource)
	}
	for name := range ctx.Samplers {
		if !strings.Contains(artifact.FragmentSource, "Texture2D "+name) {
			t.Errorf("missing Texture2D declaration for %s: %s", name, artifact.FragmentSource)
		}
	}
}

func TestCompileGLSLRewritesPushConstantHeader(t *testing.T) {
	frag := `#version 450
layout(push_constant) uniform PushCo {
    float FrameCount;
};
void main() {}
`
	src := &preprocess.ShaderSource{Vertex: "#version 450\nvoid main() {}\n", Fragment: frag}
	comp, err := frontend.Compile(src)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	sem := &semantics.ShaderSemantics{
		UniformSemantics: map[string]semantics.UniformSemantic{
			"FrameCount": {Unique: semantics.SemanticMap[semantics.UniqueSemantics]{Kind: semantics.FrameCount}},
		},
		TextureSemantics: map[string]semantics.SemanticMap[semantics.TextureSemantics]{},
	}
	refl, err := reflect.Reflect(comp, sem, 0)
	if err != nil {
		t.Fatalf("Reflect: %v", err)
	}
	if refl.PushConstant == nil {
		t.Fatal("expected a reflected push-constant block")
	}

	artifact, ctx, err := codegen.Compile(codegen.TargetGLSL, comp, src, refl)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if ctx.PushConstantBinding == nil {
		t.Fatal("expected a rebound push-constant binding for TargetGLSL")
	}
	if strings.Contains(artifact.FragmentSource, "push_constant") {
		t.Errorf("push_constant qualifier survived GLSL emission: %s", artifact.FragmentSource)
	}
	want := fmt.Sprintf("layout(std140, binding = %d) uniform PushCo", *ctx.PushConstantBinding)
	if !strings.Contains(artifact.FragmentSource, want) {
		t.Errorf("expected rewritten push-constant header %q in: %s", want, artifact.FragmentSource)
	}
}
