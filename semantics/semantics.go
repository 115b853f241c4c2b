// Package semantics defines the fixed vocabulary of built-in and
// texture-derived meanings a shader uniform or sampler can carry, and
// aggregates per-pass declarations into the global semantic tables a
// reflector name-matches against.
package semantics

import "fmt"

// UniqueSemantics is a built-in scalar/matrix uniform meaning, independent
// of any texture.
type UniqueSemantics int

const (
	MVP UniqueSemantics = iota
	Output
	FinalViewport
	FrameCount
	FrameDirection
	OriginalFPS
	FrameTimeDelta
	OriginalAspect
	OriginalAspectRotated
	FloatParameter
)

func (u UniqueSemantics) String() string {
	switch u {
	case MVP:
		return "MVP"
	case Output:
		return "Output"
	case FinalViewport:
		return "FinalViewport"
	case FrameCount:
		return "FrameCount"
	case FrameDirection:
		return "FrameDirection"
	case OriginalFPS:
		return "OriginalFPS"
	case FrameTimeDelta:
		return "FrameTimeDelta"
	case OriginalAspect:
		return "OriginalAspect"
	case OriginalAspectRotated:
		return "OriginalAspectRotated"
	case FloatParameter:
		return "FloatParameter"
	default:
		return "Unknown"
	}
}

// TextureSemantics is a built-in sampler meaning; Index disambiguates
// repeated kinds (which pass's output, which history slot, which LUT).
type TextureSemantics int

const (
	Original TextureSemantics = iota
	Source
	OriginalHistory
	PassOutput
	PassFeedback
	User
)

func (t TextureSemantics) String() string {
	switch t {
	case Original:
		return "Original"
	case Source:
		return "Source"
	case OriginalHistory:
		return "OriginalHistory"
	case PassOutput:
		return "PassOutput"
	case PassFeedback:
		return "PassFeedback"
	case User:
		return "User"
	default:
		return "Unknown"
	}
}

// SemanticMap binds an occurrence of a semantic kind to its ordinal index
// (pass number, history slot, LUT index, or parameter index).
type SemanticMap[K comparable] struct {
	Kind  K
	Index int
}

func (m SemanticMap[K]) String() string {
	return fmt.Sprintf("%v#%d", m.Kind, m.Index)
}

// UniformSemantic is the value side of ShaderSemantics.UniformSemantics:
// a uniform name resolves to either a built-in unique semantic or the size
// vector of a texture semantic (e.g. "SourceSize" or "<alias>Size").
type UniformSemantic struct {
	IsTextureSize bool
	Unique        SemanticMap[UniqueSemantics]
	TextureSize   SemanticMap[TextureSemantics]
}

// ShaderSemantics is the aggregate naming table a chain's reflector
// name-matches every declared uniform and sampler against.
type ShaderSemantics struct {
	UniformSemantics map[string]UniformSemantic
	TextureSemantics map[string]SemanticMap[TextureSemantics]
}
