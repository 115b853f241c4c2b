package frontend

import (
	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/spirv"
)

// Compilation is a compiled pass's two stages, as SPIR-V-shaped word
// streams.
type Compilation struct {
	Vertex   []uint32
	Fragment []uint32
}

// Compile scans a preprocessed shader's two GLSL stages for their
// declared interface and encodes each as a Compilation word stream.
// Output is deterministic: identical source always yields identical
// words, since the scanner and encoder carry no nondeterministic state.
func Compile(src *preprocess.ShaderSource) (*Compilation, error) {
	vertex, err := scanModule(src.Vertex, spirv.StageVertex)
	if err != nil {
		return nil, err
	}
	fragment, err := scanModule(src.Fragment, spirv.StageFragment)
	if err != nil {
		return nil, err
	}

	return &Compilation{
		Vertex:   spirv.Encode(vertex),
		Fragment: spirv.Encode(fragment),
	}, nil
}
