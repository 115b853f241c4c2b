package preset

import (
	"os"
	"path/filepath"
)

// maxReferenceDepth bounds "#reference" transclusion chains, matching
// librashader's own limit.
const maxReferenceDepth = 16

// Load reads the ".slangp" preset at path, recursively expanding any
// "#reference" directives (each resolved relative to the file that
// contains it), and resolves the result into a flattened Preset.
//
// path must be absolute: relative #reference targets are only meaningful
// once anchored to a known directory, and requiring an absolute root
// keeps that anchor unambiguous.
func Load(path string) (*Preset, error) {
	if !filepath.IsAbs(path) {
		return nil, ErrRootPathWasNotAbsolute
	}

	tokens, err := loadTokens(path, 0)
	if err != nil {
		return nil, err
	}
	values, err := parseTokens(tokens)
	if err != nil {
		return nil, err
	}
	return resolveValues(values)
}

// loadTokens reads and lexes the file at path, splicing in the token
// streams of any "#reference" directives it contains, in source order.
func loadTokens(path string, depth int) ([]Token, error) {
	if depth > maxReferenceDepth {
		return nil, ErrExceededReferenceDepth
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}

	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !tok.IsReference {
			out = append(out, tok)
			continue
		}
		refPath := tok.Value
		if !filepath.IsAbs(refPath) {
			refPath = filepath.Join(dir, refPath)
		}
		nested, err := loadTokens(refPath, depth+1)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}
	return out, nil
}
