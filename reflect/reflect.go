package reflect

import (
	"github.com/SnowflakePowered/librashader-go/frontend"
	"github.com/SnowflakePowered/librashader-go/semantics"
	"github.com/SnowflakePowered/librashader-go/spirv"
)

// StageMask records which stage(s) a block or binding appears in.
type StageMask uint8

const (
	StageMaskVertex StageMask = 1 << iota
	StageMaskFragment
)

// UniformBindingKind tags which field of a UniformBinding is populated.
type UniformBindingKind int

const (
	BindingParameter UniformBindingKind = iota
	BindingSemanticVariable
	BindingTextureSize
)

// UniformBinding is what a single named uniform member resolves to.
type UniformBinding struct {
	Kind UniformBindingKind

	ParameterID    string
	ParameterIndex int

	Unique semantics.UniqueSemantics

	TextureSize semantics.SemanticMap[semantics.TextureSemantics]
}

// MemberLocation is where a bound member's bytes live in the pass's
// shadow buffers.
type MemberLocation struct {
	InPushConstant bool
	Offset         uint32
}

// BoundMember is one name-matched UBO/push-constant member.
type BoundMember struct {
	Name     string
	Type     spirv.ScalarType
	Binding  UniformBinding
	Location MemberLocation
}

// SamplerBinding is one name-matched sampler.
type SamplerBinding struct {
	Name     string
	Semantic semantics.SemanticMap[semantics.TextureSemantics]
	// SPIRVBinding is the binding index the front end assigned; codegen
	// may remap it to a different backend slot.
	SPIRVBinding uint32
}

// BlockInfo describes a reflected uniform buffer or push-constant block.
type BlockInfo struct {
	Binding   uint32
	Size      uint32
	StageMask StageMask
}

// ShaderReflection is one pass's fully name-matched interface.
type ShaderReflection struct {
	UBO          *BlockInfo
	PushConstant *BlockInfo
	Members      []BoundMember
	Samplers     []SamplerBinding
}

// Reflect parses a pass's compiled stages and name-matches every
// declared UBO/push-constant member and sampler against sem. passIndex is
// this pass's 0-based position, used to enforce that PassOutputN
// references only look backward (N < passIndex).
func Reflect(comp *frontend.Compilation, sem *semantics.ShaderSemantics, passIndex int) (*ShaderReflection, error) {
	vertex, err := spirv.Decode(comp.Vertex)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}
	fragment, err := spirv.Decode(comp.Fragment)
	if err != nil {
		return nil, &ParseError{Cause: err}
	}

	if vertex.UBOCount > 1 || fragment.UBOCount > 1 || vertex.PushConstantCount > 1 || fragment.PushConstantCount > 1 {
		return nil, ErrTooManyBindings
	}

	r := &ShaderReflection{}

	ubo, err := mergeBlock(vertex.UBO, fragment.UBO)
	if err != nil {
		return nil, err
	}
	pc, err := mergeBlock(vertex.PushConstant, fragment.PushConstant)
	if err != nil {
		return nil, err
	}

	if ubo != nil {
		r.UBO = &BlockInfo{Binding: ubo.block.Binding, Size: ubo.block.Size, StageMask: ubo.mask}
		for _, m := range ubo.block.Members {
			binding, err := matchUniform(m.Name, sem, passIndex)
			if err != nil {
				return nil, err
			}
			r.Members = append(r.Members, BoundMember{Name: m.Name, Type: m.Type, Binding: binding, Location: MemberLocation{Offset: m.Offset}})
		}
	}
	if pc != nil {
		r.PushConstant = &BlockInfo{Binding: pc.block.Binding, Size: pc.block.Size, StageMask: pc.mask}
		for _, m := range pc.block.Members {
			binding, err := matchUniform(m.Name, sem, passIndex)
			if err != nil {
				return nil, err
			}
			r.Members = append(r.Members, BoundMember{Name: m.Name, Type: m.Type, Binding: binding, Location: MemberLocation{InPushConstant: true, Offset: m.Offset}})
		}
	}

	seenSamplers := map[string]bool{}
	for _, stageSamplers := range [][]spirv.Sampler{vertex.Samplers, fragment.Samplers} {
		for _, s := range stageSamplers {
			if seenSamplers[s.Name] {
				continue
			}
			seenSamplers[s.Name] = true
			texSem, ok := sem.TextureSemantics[s.Name]
			if !ok {
				return nil, &UnknownSemanticError{Name: s.Name}
			}
			if texSem.Kind == semantics.PassOutput && texSem.Index >= passIndex {
				return nil, &InvalidPassReferenceError{Index: texSem.Index}
			}
			r.Samplers = append(r.Samplers, SamplerBinding{Name: s.Name, Semantic: texSem, SPIRVBinding: s.Binding})
		}
	}

	return r, nil
}

type mergedBlock struct {
	block *spirv.Block
	mask  StageMask
}

func mergeBlock(vertex, fragment *spirv.Block) (*mergedBlock, error) {
	if vertex == nil && fragment == nil {
		return nil, nil
	}
	if vertex != nil && fragment != nil {
		if vertex.Binding != fragment.Binding || vertex.Size != fragment.Size || len(vertex.Members) != len(fragment.Members) {
			return nil, ErrStageMismatch
		}
		for i := range vertex.Members {
			if vertex.Members[i] != fragment.Members[i] {
				return nil, ErrStageMismatch
			}
		}
		return &mergedBlock{block: vertex, mask: StageMaskVertex | StageMaskFragment}, nil
	}
	if vertex != nil {
		return &mergedBlock{block: vertex, mask: StageMaskVertex}, nil
	}
	return &mergedBlock{block: fragment, mask: StageMaskFragment}, nil
}

func matchUniform(name string, sem *semantics.ShaderSemantics, passIndex int) (UniformBinding, error) {
	entry, ok := sem.UniformSemantics[name]
	if !ok {
		return UniformBinding{}, &UnknownSemanticError{Name: name}
	}
	if entry.IsTextureSize {
		if entry.TextureSize.Kind == semantics.PassOutput && entry.TextureSize.Index >= passIndex {
			return UniformBinding{}, &InvalidPassReferenceError{Index: entry.TextureSize.Index}
		}
		return UniformBinding{Kind: BindingTextureSize, TextureSize: entry.TextureSize}, nil
	}
	if entry.Unique.Kind == semantics.FloatParameter {
		return UniformBinding{Kind: BindingParameter, ParameterID: name, ParameterIndex: entry.Unique.Index}, nil
	}
	return UniformBinding{Kind: BindingSemanticVariable, Unique: entry.Unique.Kind}, nil
}
