package preset

import (
	"strconv"
	"strings"
)

// valueKind tags which field of value is populated. Mirrors the flat value
// enum a preset line can resolve to.
type valueKind int

const (
	vShaderCount valueKind = iota
	vFeedbackPass
	vShader
	vScaleX
	vScaleY
	vScale
	vScaleType
	vScaleTypeX
	vScaleTypeY
	vFilterMode
	vWrapMode
	vFrameCountMod
	vFloatFramebuffer
	vSRGBFramebuffer
	vMipmapInput
	vAlias
	vParameter
	vFormatOverride
	vTextureList
	vTexturePath
	vTextureWrap
	vTextureFilter
	vTextureMipmap
	vParameterList
)

// value is one parsed preset assignment, tagged by kind. index is the
// pass/texture ordinal for indexed keys (-1 otherwise); name carries
// parameter/texture names.
type value struct {
	kind    valueKind
	index   int
	name    string
	str     string
	i       int32
	u       uint32
	f       float32
	b       bool
	scaleType ScaleType
	filter  FilterMode
	wrap    WrapMode
}

// parseValue converts one lexed token into a typed value, given the set of
// already-declared texture names (needed to recognize "<name>_wrap_mode"
// style suffix keys) and parameter names (from the "parameters" list).
func parseValue(tok Token, textureNames, parameterNames map[string]bool) (value, error) {
	key := tok.Key

	switch key {
	case "shaders":
		n, err := parseIntField(tok, key)
		if err != nil {
			return value{}, err
		}
		return value{kind: vShaderCount, i: n}, nil
	case "feedback_pass":
		n, err := parseIntField(tok, key)
		if err != nil {
			return value{}, err
		}
		return value{kind: vFeedbackPass, i: n}, nil
	case "textures":
		return value{kind: vTextureList, str: tok.Value}, nil
	case "parameters":
		return value{kind: vParameterList, str: tok.Value}, nil
	}

	if idx, base, ok := splitIndexedKey(key); ok {
		return parseIndexedValue(tok, base, idx)
	}

	if name, suffix, ok := splitTextureSuffix(key, textureNames); ok {
		return parseTextureSuffixValue(tok, name, suffix)
	}

	if parameterNames[key] {
		f, err := parseFloatField(tok, key)
		if err != nil {
			return value{}, err
		}
		return value{kind: vParameter, name: key, f: f}, nil
	}

	if textureNames[key] {
		return value{kind: vTexturePath, name: key, str: tok.Value}, nil
	}

	// Unknown bare key: treat permissively as a parameter-like float
	// assignment, since shader authors may declare parameters without
	// listing them in "parameters" (librashader accepts this too).
	f, err := parseFloatField(tok, key)
	if err == nil {
		return value{kind: vParameter, name: key, f: f}, nil
	}
	return value{kind: vTexturePath, name: key, str: tok.Value}, nil
}

// splitIndexedKey splits a key like "scale_type_x3" into ("scale_type_x", 3).
func splitIndexedKey(key string) (idx int, base string, ok bool) {
	i := len(key)
	for i > 0 && key[i-1] >= '0' && key[i-1] <= '9' {
		i--
	}
	if i == len(key) {
		return 0, "", false
	}
	n, err := strconv.Atoi(key[i:])
	if err != nil {
		return 0, "", false
	}
	base = key[:i]
	switch base {
	case "shader", "alias", "scale_type", "scale_type_x", "scale_type_y",
		"scale", "scale_x", "scale_y", "filter_linear", "wrap_mode",
		"frame_count_mod", "float_framebuffer", "srgb_framebuffer",
		"mipmap_input", "format":
		return n, base, true
	}
	return 0, "", false
}

func parseIndexedValue(tok Token, base string, idx int) (value, error) {
	switch base {
	case "shader":
		return value{kind: vShader, index: idx, str: tok.Value}, nil
	case "alias":
		return value{kind: vAlias, index: idx, str: tok.Value}, nil
	case "scale_type":
		st, err := parseScaleTypeField(tok)
		if err != nil {
			return value{}, err
		}
		return value{kind: vScaleType, index: idx, scaleType: st}, nil
	case "scale_type_x":
		st, err := parseScaleTypeField(tok)
		if err != nil {
			return value{}, err
		}
		return value{kind: vScaleTypeX, index: idx, scaleType: st}, nil
	case "scale_type_y":
		st, err := parseScaleTypeField(tok)
		if err != nil {
			return value{}, err
		}
		return value{kind: vScaleTypeY, index: idx, scaleType: st}, nil
	case "scale":
		sf, err := parseScaleFactorField(tok)
		if err != nil {
			return value{}, err
		}
		return value{kind: vScale, index: idx, f: sf.Float, i: sf.Absolute, b: sf.IsAbsolute}, nil
	case "scale_x":
		sf, err := parseScaleFactorField(tok)
		if err != nil {
			return value{}, err
		}
		return value{kind: vScaleX, index: idx, f: sf.Float, i: sf.Absolute, b: sf.IsAbsolute}, nil
	case "scale_y":
		sf, err := parseScaleFactorField(tok)
		if err != nil {
			return value{}, err
		}
		return value{kind: vScaleY, index: idx, f: sf.Float, i: sf.Absolute, b: sf.IsAbsolute}, nil
	case "filter_linear":
		b, err := parseBoolField(tok, base)
		if err != nil {
			return value{}, err
		}
		return value{kind: vFilterMode, index: idx, filter: parseFilterMode(b)}, nil
	case "wrap_mode":
		return value{kind: vWrapMode, index: idx, wrap: parseWrapMode(tok.Value)}, nil
	case "frame_count_mod":
		n, err := parseUintField(tok, base)
		if err != nil {
			return value{}, err
		}
		return value{kind: vFrameCountMod, index: idx, u: n}, nil
	case "float_framebuffer":
		b, err := parseBoolField(tok, base)
		if err != nil {
			return value{}, err
		}
		return value{kind: vFloatFramebuffer, index: idx, b: b}, nil
	case "srgb_framebuffer":
		b, err := parseBoolField(tok, base)
		if err != nil {
			return value{}, err
		}
		return value{kind: vSRGBFramebuffer, index: idx, b: b}, nil
	case "mipmap_input":
		b, err := parseBoolField(tok, base)
		if err != nil {
			return value{}, err
		}
		return value{kind: vMipmapInput, index: idx, b: b}, nil
	case "format":
		return value{kind: vFormatOverride, index: idx, str: tok.Value}, nil
	}
	return value{}, &ParserError{Pos: tok.Pos, Kind: KindIndex}
}

// splitTextureSuffix recognizes "<texture>_wrap_mode", "<texture>_filter_linear",
// and "<texture>_mipmap" keys.
func splitTextureSuffix(key string, textureNames map[string]bool) (name, suffix string, ok bool) {
	for _, suf := range []string{"_wrap_mode", "_filter_linear", "_mipmap"} {
		if strings.HasSuffix(key, suf) {
			candidate := strings.TrimSuffix(key, suf)
			if textureNames[candidate] {
				return candidate, suf, true
			}
		}
	}
	return "", "", false
}

func parseTextureSuffixValue(tok Token, name, suffix string) (value, error) {
	switch suffix {
	case "_wrap_mode":
		return value{kind: vTextureWrap, name: name, wrap: parseWrapMode(tok.Value)}, nil
	case "_filter_linear":
		b, err := parseBoolField(tok, name+suffix)
		if err != nil {
			return value{}, err
		}
		return value{kind: vTextureFilter, name: name, filter: parseFilterMode(b)}, nil
	case "_mipmap":
		b, err := parseBoolField(tok, name+suffix)
		if err != nil {
			return value{}, err
		}
		return value{kind: vTextureMipmap, name: name, b: b}, nil
	}
	return value{}, &ParserError{Pos: tok.Pos, Kind: KindIndex}
}

func parseIntField(tok Token, key string) (int32, error) {
	n, err := strconv.ParseInt(tok.Value, 10, 32)
	if err != nil {
		return 0, &ParserError{Pos: tok.Pos, Kind: KindInt}
	}
	return int32(n), nil
}

func parseUintField(tok Token, key string) (uint32, error) {
	n, err := strconv.ParseUint(tok.Value, 10, 32)
	if err != nil {
		return 0, &ParserError{Pos: tok.Pos, Kind: KindUnsignedInt}
	}
	return uint32(n), nil
}

func parseFloatField(tok Token, key string) (float32, error) {
	f, err := strconv.ParseFloat(tok.Value, 32)
	if err != nil {
		return 0, &ParserError{Pos: tok.Pos, Kind: KindFloat}
	}
	return float32(f), nil
}

func parseBoolField(tok Token, key string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(tok.Value)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &ParserError{Pos: tok.Pos, Kind: KindBool}
}

func parseScaleTypeField(tok Token) (ScaleType, error) {
	st, err := parseScaleType(strings.ToLower(strings.TrimSpace(tok.Value)))
	if err != nil {
		return 0, err
	}
	return st, nil
}

func parseScaleFactorField(tok Token) (ScaleFactor, error) {
	// Absolute scale factors are plain integers; Input/Viewport factors are
	// floats. We don't know the scale_type yet at lex time (it may be
	// declared on either side), so we store both representations and let
	// resolveValues pick the right one once scale_type is known.
	if f, err := strconv.ParseFloat(tok.Value, 32); err == nil {
		if n, err2 := strconv.ParseInt(tok.Value, 10, 32); err2 == nil {
			return ScaleFactor{Float: float32(f), Absolute: int32(n)}, nil
		}
		return ScaleFactor{Float: float32(f)}, nil
	}
	return ScaleFactor{}, &ParserError{Pos: tok.Pos, Kind: KindFloat}
}

func parseNameList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ' ' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
