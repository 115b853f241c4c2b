package preset

// parseTokens converts a flat token stream (with #reference directives
// already expanded) into typed values, resolving the "textures" and
// "parameters" name lists first so later tokens can be classified.
func parseTokens(tokens []Token) ([]value, error) {
	textureNames := map[string]bool{}
	parameterNames := map[string]bool{}

	for _, tok := range tokens {
		if tok.IsReference {
			continue
		}
		switch tok.Key {
		case "textures":
			for _, n := range parseNameList(tok.Value) {
				textureNames[n] = true
			}
		case "parameters":
			for _, n := range parseNameList(tok.Value) {
				parameterNames[n] = true
			}
		}
	}

	values := make([]value, 0, len(tokens))
	for _, tok := range tokens {
		if tok.IsReference {
			continue
		}
		v, err := parseValue(tok, textureNames, parameterNames)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// parse lexes src and converts it directly to a Preset, with no reference
// resolution. Used by tests and by Load after reference expansion.
func parse(src []byte) (*Preset, error) {
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	values, err := parseTokens(tokens)
	if err != nil {
		return nil, err
	}
	return resolveValues(values)
}
