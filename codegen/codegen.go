// Package codegen emits a pass's backend-native shader artifact — GLSL,
// HLSL, MSL, WGSL source, or re-encoded SPIR-V — with its sampler and
// uniform-buffer bindings rebound to a canonical, backend-appropriate
// layout, and reports the resulting CompilerContext so the runtime knows
// which descriptor slot each semantic ended up at.
package codegen

import (
	"fmt"
	"sort"

	"github.com/SnowflakePowered/librashader-go/frontend"
	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/reflect"
)

// Target selects which backend-native form Compile produces.
type Target int

const (
	TargetGLSL Target = iota
	TargetHLSL
	TargetMSL
	TargetWGSL
	TargetSPIRV
)

// CompilerContext reports the effective bindings a backend must use to
// construct its descriptor sets, after rebinding.
type CompilerContext struct {
	UBOBinding uint32
	// PushConstantBinding is nil when the pass has no push-constant
	// block, or when Target is TargetSPIRV (push constants are native
	// there and need no UBO slot). Otherwise it is the UBO binding the
	// push-constant block was folded into.
	PushConstantBinding *uint32
	// Samplers maps each sampler's declared name to its rebound slot.
	Samplers map[string]uint32
}

// Artifact is the compiled, rebound shader in its target-native form.
type Artifact struct {
	Target         Target
	VertexSource   string
	FragmentSource string
	VertexWords    []uint32
	FragmentWords  []uint32
}

// Compile rebinds refl's descriptor layout for target and emits the
// corresponding artifact.
func Compile(target Target, comp *frontend.Compilation, src *preprocess.ShaderSource, refl *reflect.ShaderReflection) (*Artifact, *CompilerContext, error) {
	ctx := rebind(target, refl)

	switch target {
	case TargetSPIRV:
		return &Artifact{Target: target, VertexWords: comp.Vertex, FragmentWords: comp.Fragment}, ctx, nil
	case TargetGLSL:
		vertex, err := emitGLSL(src.Vertex, refl, ctx)
		if err != nil {
			return nil, nil, err
		}
		fragment, err := emitGLSL(src.Fragment, refl, ctx)
		if err != nil {
			return nil, nil, err
		}
		return &Artifact{Target: target, VertexSource: vertex, FragmentSource: fragment}, ctx, nil
	case TargetHLSL:
		return &Artifact{Target: target, VertexSource: emitForeignDialect(target, "vertex", src.Vertex, refl, ctx), FragmentSource: emitForeignDialect(target, "fragment", src.Fragment, refl, ctx)}, ctx, nil
	case TargetMSL:
		return &Artifact{Target: target, VertexSource: emitForeignDialect(target, "vertex", src.Vertex, refl, ctx), FragmentSource: emitForeignDialect(target, "fragment", src.Fragment, refl, ctx)}, ctx, nil
	case TargetWGSL:
		return &Artifact{Target: target, VertexSource: emitForeignDialect(target, "vertex", src.Vertex, refl, ctx), FragmentSource: emitForeignDialect(target, "fragment", src.Fragment, refl, ctx)}, ctx, nil
	default:
		return nil, nil, fmt.Errorf("codegen: unknown target %d", target)
	}
}

// rebind computes the canonical binding layout common to every backend:
// the uniform buffer is always slot 0; on backends without native push
// constants it becomes a second UBO; samplers are assigned contiguous
// slots in ascending order of their original SPIR-V binding.
func rebind(target Target, refl *reflect.ShaderReflection) *CompilerContext {
	ctx := &CompilerContext{UBOBinding: 0, Samplers: map[string]uint32{}}

	if refl.PushConstant != nil && target != TargetSPIRV {
		slot := uint32(1)
		ctx.PushConstantBinding = &slot
	}

	samplers := append([]reflect.SamplerBinding(nil), refl.Samplers...)
	sort.Slice(samplers, func(i, j int) bool { return samplers[i].SPIRVBinding < samplers[j].SPIRVBinding })
	for i, s := range samplers {
		ctx.Samplers[s.Name] = uint32(i)
	}

	return ctx
}
