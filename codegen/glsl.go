package codegen

import (
	"regexp"

	"github.com/SnowflakePowered/librashader-go/reflect"
)

var (
	uboBindingRe    = regexp.MustCompile(`(layout\s*\(\s*std140\s*,?\s*binding\s*=\s*)(\d+)(\s*\)\s*uniform)`)
	samplerBindingRe = regexp.MustCompile(`(layout\s*\(\s*binding\s*=\s*)(\d+)(\s*\)\s*uniform\s+sampler2D\s+)(\w+)`)
	pushConstantRe   = regexp.MustCompile(`layout\s*\(\s*push_constant\s*\)\s*uniform`)
)

// emitGLSL rewrites a GLSL stage's declared binding indices to the
// rebound slots ctx computed, leaving everything else — including the
// shader body — untouched, since the source is already GLSL.
//
// OpenGL 3.3 core has no push_constant layout qualifier, so a pass whose
// shader declares one must have that header rewritten into a plain bound
// uniform block; runPass already binds a UBO at ctx.PushConstantBinding
// regardless of how the declaration reads.
func emitGLSL(source string, refl *reflect.ShaderReflection, ctx *CompilerContext) (string, error) {
	out := uboBindingRe.ReplaceAllString(source, "${1}0${3}")

	if ctx.PushConstantBinding != nil {
		binding := "layout(std140, binding = " + itoa(*ctx.PushConstantBinding) + ") uniform"
		out = pushConstantRe.ReplaceAllString(out, binding)
	}

	out = samplerBindingRe.ReplaceAllStringFunc(out, func(match string) string {
		groups := samplerBindingRe.FindStringSubmatch(match)
		name := groups[4]
		slot, ok := ctx.Samplers[name]
		if !ok {
			return match
		}
		return groups[1] + itoa(slot) + groups[3] + name
	})

	return out, nil
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}
	return string(digits)
}
