package preprocess

import (
	"strconv"
	"strings"
)

// parseIncludeDirective reports whether a trimmed line is an
// '#include "path"' or '#include <path>' directive, returning the quoted
// target.
func parseIncludeDirective(trimmed string) (target string, ok bool) {
	if !strings.HasPrefix(trimmed, "#include") {
		return "", false
	}
	rest := strings.TrimSpace(trimmed[len("#include"):])
	rest = strings.Trim(rest, `"<>`)
	return rest, true
}

// tokenizeQuoted splits s on whitespace, treating a double-quoted run as a
// single token with its quotes stripped.
func tokenizeQuoted(s string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ' ' || r == '\t':
			if inQuotes {
				cur.WriteRune(r)
			} else {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

// parsePragmaParameter parses a "#pragma parameter id "desc" init min max
// [step]" line, already stripped of the "#pragma parameter" prefix.
func parsePragmaParameter(rest string, lineNo int) (ShaderParameter, error) {
	fields := tokenizeQuoted(rest)
	if len(fields) < 5 {
		return ShaderParameter{}, &UnexpectedEOLError{Line: lineNo}
	}

	parseFloat := func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return 0, &UnexpectedEOLError{Line: lineNo}
		}
		return float32(f), nil
	}

	init, err := parseFloat(fields[2])
	if err != nil {
		return ShaderParameter{}, err
	}
	minimum, err := parseFloat(fields[3])
	if err != nil {
		return ShaderParameter{}, err
	}
	maximum, err := parseFloat(fields[4])
	if err != nil {
		return ShaderParameter{}, err
	}
	step := float32(1.0)
	if len(fields) > 5 {
		step, err = parseFloat(fields[5])
		if err != nil {
			return ShaderParameter{}, err
		}
	}

	return ShaderParameter{
		ID:          fields[0],
		Description: fields[1],
		Initial:     init,
		Minimum:     minimum,
		Maximum:     maximum,
		Step:        step,
	}, nil
}

// pragmaDirective reports whether a trimmed line is a "#pragma <name>"
// directive, returning its name and the remainder of the line.
func pragmaDirective(trimmed string) (name, rest string, ok bool) {
	if !strings.HasPrefix(trimmed, "#pragma") {
		return "", "", false
	}
	rest = strings.TrimSpace(trimmed[len("#pragma"):])
	sp := strings.IndexAny(rest, " \t")
	if sp < 0 {
		return rest, "", true
	}
	return rest[:sp], strings.TrimSpace(rest[sp:]), true
}
