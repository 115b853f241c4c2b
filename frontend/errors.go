// Package frontend compiles a preprocessed GLSL-dialect ShaderSource into
// the SPIR-V-shaped Compilation the reflector consumes, by scanning the
// declared interface (uniform blocks, push constants, samplers, vertex
// inputs) out of the GLSL text.
package frontend

import "fmt"

// CompileErrorKind distinguishes why a stage failed to compile.
type CompileErrorKind int

const (
	// KindCompilerInit means the front end itself could not be
	// initialized (never returned by this implementation, kept for
	// parity with the documented error shape).
	KindCompilerInit CompileErrorKind = iota
	// KindCompileError means the GLSL text violated an interface
	// declaration rule this scanner enforces. Not currently returned:
	// this scanner is line-oriented and permissive about malformed text
	// it doesn't recognize, and the one rule it used to enforce here
	// (at most one UBO/push-constant block per stage) moved to
	// reflect.Reflect, since spec.md classifies that violation as a
	// ShaderReflectError, not a ShaderCompileError. Kept for parity with
	// the documented error shape.
	KindCompileError
)

// CompileError reports a GLSL stage that failed front-end compilation.
type CompileError struct {
	Kind       CompileErrorKind
	Stage      string
	Diagnostic string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("frontend: %s stage compile error: %s", e.Stage, e.Diagnostic)
}
