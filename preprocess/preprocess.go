package preprocess

import (
	"os"
	"path/filepath"
	"strings"
)

// stage tracks which output buffer(s) a line currently belongs to.
type stage int

const (
	stageCommon stage = iota
	stageVertex
	stageFragment
)

// Load reads and preprocesses the ".slang" shader at path: "#include"
// directives are expanded recursively (circular chains are rejected), then
// the expanded source is split on "#pragma stage vertex"/"#pragma stage
// fragment" into separate vertex and fragment sources, with "#pragma
// parameter"/"name"/"format" lines extracted as metadata and stripped from
// both.
func Load(path string) (*ShaderSource, error) {
	lines, err := expandIncludes(path, map[string]bool{})
	if err != nil {
		return nil, err
	}
	return assemble(lines)
}

// expandIncludes recursively inlines "#include" directives, depth-first,
// rejecting a chain that refers back to a file already open on the current
// path from the root.
func expandIncludes(path string, chain map[string]bool) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	if chain[abs] {
		return nil, &CircularIncludeError{Path: abs}
	}
	chain[abs] = true
	defer delete(chain, abs)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	rawLines := strings.Split(string(data), "\n")
	out := make([]string, 0, len(rawLines))
	for _, line := range rawLines {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		target, ok := parseIncludeDirective(trimmed)
		if !ok {
			out = append(out, line)
			continue
		}
		incPath := target
		if !filepath.IsAbs(incPath) {
			incPath = filepath.Join(dir, incPath)
		}
		nested, err := expandIncludes(incPath, chain)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}

// assemble runs the stage-split and pragma-extraction pass over a fully
// include-expanded line list.
func assemble(lines []string) (*ShaderSource, error) {
	if err := requireVersionHeader(lines); err != nil {
		return nil, err
	}

	var vertexLines, fragmentLines []string
	var parameters []ShaderParameter
	var name, formatOverride string
	cur := stageCommon

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if pragma, rest, ok := pragmaDirective(trimmed); ok {
			switch pragma {
			case "stage":
				switch strings.TrimSpace(rest) {
				case "vertex":
					cur = stageVertex
				case "fragment":
					cur = stageFragment
				}
				continue
			case "parameter":
				p, err := parsePragmaParameter(rest, i+1)
				if err != nil {
					return nil, err
				}
				parameters = append(parameters, p)
				continue
			case "name":
				name = strings.TrimSpace(rest)
				continue
			case "format":
				formatOverride = strings.TrimSpace(rest)
				continue
			}
		}

		switch cur {
		case stageVertex:
			vertexLines = append(vertexLines, line)
		case stageFragment:
			fragmentLines = append(fragmentLines, line)
		default:
			vertexLines = append(vertexLines, line)
			fragmentLines = append(fragmentLines, line)
		}
	}

	return &ShaderSource{
		Name:           name,
		FormatOverride: formatOverride,
		Vertex:         strings.Join(vertexLines, "\n"),
		Fragment:       strings.Join(fragmentLines, "\n"),
		Parameters:     parameters,
	}, nil
}

// requireVersionHeader enforces that the first non-blank, non-comment line
// of the expanded source is a "#version" directive.
func requireVersionHeader(lines []string) error {
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.HasPrefix(trimmed, "#version") {
			return nil
		}
		return ErrMissingVersionHeader
	}
	return ErrMissingVersionHeader
}
