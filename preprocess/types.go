package preprocess

// ShaderParameter is one "#pragma parameter" declaration: a named scalar
// a preset may override, with a UI description and a clamping range.
type ShaderParameter struct {
	ID          string
	Description string
	Initial     float32
	Minimum     float32
	Maximum     float32
	// Step defaults to 1.0 when the source omits it.
	Step float32
}

// ShaderSource is one ".slang" file's preprocessing result: separated
// vertex and fragment GLSL, plus the metadata its "#pragma" lines declared.
type ShaderSource struct {
	// Name is set by "#pragma name"; empty if the shader didn't declare one.
	Name string
	// FormatOverride is set by "#pragma format"; empty if unset.
	FormatOverride string
	Vertex         string
	Fragment       string
	Parameters     []ShaderParameter
}
