package frontend

import (
	"regexp"
	"strings"

	"github.com/SnowflakePowered/librashader-go/spirv"
)

var (
	uboHeaderRe = regexp.MustCompile(`layout\s*\(\s*std140\s*,?\s*binding\s*=\s*(\d+)\s*\)\s*uniform\s+\w+\s*\{`)
	pcHeaderRe  = regexp.MustCompile(`layout\s*\(\s*push_constant\s*\)\s*uniform\s+\w+\s*\{`)
	memberRe    = regexp.MustCompile(`^\s*(float|vec2|vec3|vec4|mat4)\s+(\w+)\s*;`)
	samplerRe   = regexp.MustCompile(`layout\s*\(\s*binding\s*=\s*(\d+)\s*\)\s*uniform\s+sampler2D\s+(\w+)\s*;`)
	inputRe     = regexp.MustCompile(`layout\s*\(\s*location\s*=\s*(\d+)\s*\)\s*in\s+\w+\s+(\w+)\s*;`)
)

func glslType(name string) spirv.ScalarType {
	switch name {
	case "vec2":
		return spirv.TypeVec2
	case "vec3":
		return spirv.TypeVec3
	case "vec4":
		return spirv.TypeVec4
	case "mat4":
		return spirv.TypeMat4
	default:
		return spirv.TypeFloat
	}
}

// scanModule walks GLSL source line by line, extracting the declared
// uniform buffer, push-constant block, samplers, and (for the vertex
// stage) input attributes into a spirv.Module.
func scanModule(source string, stage spirv.Stage) (*spirv.Module, error) {
	m := &spirv.Module{Stage: stage}
	lines := strings.Split(source, "\n")

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if uboHeaderRe.MatchString(line) {
			m.UBOCount++
			binding := parseDigits(uboHeaderRe.FindStringSubmatch(line)[1])
			members, next := scanBlockMembers(lines, i+1)
			if m.UBO == nil {
				m.UBO = spirv.NewBlockBuilder(binding, members)
			}
			i = next
			continue
		}

		if pcHeaderRe.MatchString(line) {
			m.PushConstantCount++
			members, next := scanBlockMembers(lines, i+1)
			if m.PushConstant == nil {
				m.PushConstant = spirv.NewBlockBuilder(0, members)
			}
			i = next
			continue
		}

		if match := samplerRe.FindStringSubmatch(line); match != nil {
			m.Samplers = append(m.Samplers, spirv.Sampler{
				Name:    match[2],
				Binding: parseDigits(match[1]),
			})
			continue
		}

		if stage == spirv.StageVertex {
			if match := inputRe.FindStringSubmatch(line); match != nil {
				m.Inputs = append(m.Inputs, spirv.Attribute{
					Name:     match[2],
					Location: parseDigits(match[1]),
				})
			}
		}
	}

	return m, nil
}

// scanBlockMembers reads "TYPE name;" lines starting at startLine until a
// line containing a closing brace, returning the parsed members and the
// index of the closing line.
func scanBlockMembers(lines []string, startLine int) ([]spirv.Member, int) {
	var members []spirv.Member
	i := startLine
	for ; i < len(lines); i++ {
		line := lines[i]
		if strings.Contains(line, "}") {
			return members, i
		}
		if match := memberRe.FindStringSubmatch(line); match != nil {
			members = append(members, spirv.Member{Name: match[2], Type: glslType(match[1])})
		}
	}
	return members, i
}

func parseDigits(s string) uint32 {
	var n uint32
	for _, r := range s {
		n = n*10 + uint32(r-'0')
	}
	return n
}
