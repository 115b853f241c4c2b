package preset

// axisAccum tracks the most recently assigned scale type and raw factor for
// one axis of one pass. Values fold in lex order, so a later key always
// overwrites an earlier one — this is what gives combined ("scale") and
// per-axis ("scale_x"/"scale_y") keys their documented last-key-wins
// precedence relative to each other.
type axisAccum struct {
	scaleType ScaleType
	factor    ScaleFactor
}

type passAccum struct {
	path            string
	hasPath         bool
	alias           string
	filter          FilterMode
	wrap            WrapMode
	frameCountMod   uint32
	floatFramebuffer bool
	srgbFramebuffer  bool
	mipmapInput      bool
	formatOverride   string
	x, y             axisAccum
}

func newPassAccum() passAccum {
	def := axisAccum{scaleType: ScaleInput, factor: FloatFactor(1.0)}
	return passAccum{filter: FilterUnspecified, x: def, y: def}
}

type textureAccum struct {
	name   string
	path   string
	wrap   WrapMode
	filter FilterMode
	mipmap bool
}

// resolveValues folds a flat, lex-ordered value stream into a Preset.
// Mirrors librashader's resolve_values: pass/texture counts come from the
// "shaders"/"textures" header keys, and every other key folds into the
// pass or texture it indexes (or names) in source order.
func resolveValues(values []value) (*Preset, error) {
	var shaderCount int32
	var textureNames []string
	var parameterNames []string

	for _, v := range values {
		switch v.kind {
		case vShaderCount:
			shaderCount = v.i
		case vTextureList:
			textureNames = parseNameList(v.str)
		case vParameterList:
			parameterNames = parseNameList(v.str)
		}
	}
	_ = parameterNames // retained for future strict-parameter-list validation

	passes := make([]passAccum, shaderCount)
	for i := range passes {
		passes[i] = newPassAccum()
	}

	textureOrder := make([]string, 0, len(textureNames))
	textures := make(map[string]*textureAccum, len(textureNames))
	for _, name := range textureNames {
		textures[name] = &textureAccum{name: name, filter: FilterLinear}
		textureOrder = append(textureOrder, name)
	}

	paramValues := make(map[string]float32)
	paramOrder := make([]string, 0, len(parameterNames))
	feedbackPass := int32(-1)

	for _, v := range values {
		switch v.kind {
		case vShaderCount, vTextureList, vParameterList:
			// handled above

		case vFeedbackPass:
			feedbackPass = v.i

		case vShader:
			if int(v.index) < len(passes) {
				p := &passes[v.index]
				p.path = v.str
				p.hasPath = true
			}
		case vAlias:
			if int(v.index) < len(passes) {
				passes[v.index].alias = v.str
			}
		case vFilterMode:
			if int(v.index) < len(passes) {
				passes[v.index].filter = v.filter
			}
		case vWrapMode:
			if int(v.index) < len(passes) {
				passes[v.index].wrap = v.wrap
			}
		case vFrameCountMod:
			if int(v.index) < len(passes) {
				passes[v.index].frameCountMod = v.u
			}
		case vFloatFramebuffer:
			if int(v.index) < len(passes) {
				passes[v.index].floatFramebuffer = v.b
			}
		case vSRGBFramebuffer:
			if int(v.index) < len(passes) {
				passes[v.index].srgbFramebuffer = v.b
			}
		case vMipmapInput:
			if int(v.index) < len(passes) {
				passes[v.index].mipmapInput = v.b
			}
		case vFormatOverride:
			if int(v.index) < len(passes) {
				passes[v.index].formatOverride = v.str
			}

		case vScaleType:
			if int(v.index) < len(passes) {
				passes[v.index].x.scaleType = v.scaleType
				passes[v.index].y.scaleType = v.scaleType
			}
		case vScaleTypeX:
			if int(v.index) < len(passes) {
				passes[v.index].x.scaleType = v.scaleType
			}
		case vScaleTypeY:
			if int(v.index) < len(passes) {
				passes[v.index].y.scaleType = v.scaleType
			}
		case vScale:
			if int(v.index) < len(passes) {
				f := ScaleFactor{Float: v.f, Absolute: v.i}
				passes[v.index].x.factor = f
				passes[v.index].y.factor = f
			}
		case vScaleX:
			if int(v.index) < len(passes) {
				passes[v.index].x.factor = ScaleFactor{Float: v.f, Absolute: v.i}
			}
		case vScaleY:
			if int(v.index) < len(passes) {
				passes[v.index].y.factor = ScaleFactor{Float: v.f, Absolute: v.i}
			}

		case vParameter:
			if _, seen := paramValues[v.name]; !seen {
				paramOrder = append(paramOrder, v.name)
			}
			paramValues[v.name] = v.f

		case vTexturePath:
			if t, ok := textures[v.name]; ok {
				t.path = v.str
			}
		case vTextureWrap:
			if t, ok := textures[v.name]; ok {
				t.wrap = v.wrap
			}
		case vTextureFilter:
			if t, ok := textures[v.name]; ok {
				t.filter = v.filter
			}
		case vTextureMipmap:
			if t, ok := textures[v.name]; ok {
				t.mipmap = v.b
			}
		}
	}

	out := &Preset{
		Passes:       make([]PassConfig, 0, len(passes)),
		Textures:     make([]TextureConfig, 0, len(textureOrder)),
		Parameters:   make([]Parameter, 0, len(paramOrder)),
		FeedbackPass: feedbackPass,
	}

	for i, p := range passes {
		scale := Scale2D{
			X: Scaling{ScaleType: p.x.scaleType, Factor: resolveFactor(p.x)},
			Y: Scaling{ScaleType: p.y.scaleType, Factor: resolveFactor(p.y)},
		}
		filter := p.filter
		if filter == FilterUnspecified {
			filter = FilterLinear
		}
		out.Passes = append(out.Passes, PassConfig{
			ID:               i,
			Path:             p.path,
			Alias:            p.alias,
			Filter:           filter,
			Wrap:             p.wrap,
			FrameCountMod:    p.frameCountMod,
			SRGBFramebuffer:  p.srgbFramebuffer,
			FloatFramebuffer: p.floatFramebuffer,
			MipmapInput:      p.mipmapInput,
			Scale:            scale,
			FormatOverride:   p.formatOverride,
		})
	}

	for _, name := range textureOrder {
		t := textures[name]
		out.Textures = append(out.Textures, TextureConfig{
			Name:   t.name,
			Path:   t.path,
			Wrap:   t.wrap,
			Filter: t.filter,
			Mipmap: t.mipmap,
		})
	}

	for _, name := range paramOrder {
		out.Parameters = append(out.Parameters, Parameter{Name: name, Value: paramValues[name]})
	}

	return out, nil
}

// resolveFactor picks the Float or Absolute representation of a raw scale
// factor once the axis's final scale type (after all folds) is known.
func resolveFactor(a axisAccum) ScaleFactor {
	if a.scaleType == ScaleAbsolute {
		return AbsoluteFactor(a.factor.Absolute)
	}
	return FloatFactor(a.factor.Float)
}
