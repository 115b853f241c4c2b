package preset

// FilterMode selects how a sampler interpolates between texels.
type FilterMode int

const (
	// FilterLinear interpolates linearly between texels. This is the
	// default filter mode.
	FilterLinear FilterMode = iota
	// FilterNearest selects the nearest texel.
	FilterNearest
	// FilterUnspecified marks a pass whose preset never set its filter
	// mode; resolveValues replaces it with FilterLinear, so a resolved
	// Preset never carries it.
	FilterUnspecified
)

// WrapMode selects how a sampler addresses texture coordinates outside
// [0, 1].
type WrapMode int

const (
	// WrapClampToBorder is the default wrap mode.
	WrapClampToBorder WrapMode = iota
	WrapClampToEdge
	WrapRepeat
	WrapMirroredRepeat
)

func parseWrapMode(s string) WrapMode {
	switch s {
	case "clamp_to_edge":
		return WrapClampToEdge
	case "repeat":
		return WrapRepeat
	case "mirrored_repeat":
		return WrapMirroredRepeat
	default:
		return WrapClampToBorder
	}
}

func parseFilterMode(linear bool) FilterMode {
	if linear {
		return FilterLinear
	}
	return FilterNearest
}

// ScaleType selects the reference size an axis's ScaleFactor is relative to.
type ScaleType int

const (
	// ScaleInput scales relative to the pass's input size. This is the
	// default scale type.
	ScaleInput ScaleType = iota
	ScaleAbsolute
	ScaleViewport
)

func parseScaleType(s string) (ScaleType, error) {
	switch s {
	case "source":
		return ScaleInput, nil
	case "viewport":
		return ScaleViewport, nil
	case "absolute":
		return ScaleAbsolute, nil
	default:
		return ScaleInput, &InvalidScaleTypeError{Value: s}
	}
}

// ScaleFactor is either a multiplicative float factor (for Input/Viewport
// scale types) or an absolute pixel count (for Absolute).
type ScaleFactor struct {
	Float    float32
	Absolute int32
	// IsAbsolute selects which field is active.
	IsAbsolute bool
}

// FloatFactor constructs a multiplicative scale factor.
func FloatFactor(v float32) ScaleFactor { return ScaleFactor{Float: v} }

// AbsoluteFactor constructs an absolute pixel-count scale factor.
func AbsoluteFactor(v int32) ScaleFactor { return ScaleFactor{Absolute: v, IsAbsolute: true} }

// Scaling is one axis of a Scale2D.
type Scaling struct {
	ScaleType ScaleType
	Factor    ScaleFactor
}

// defaultScaling is "scale_type = input, factor = 1.0", the implicit value
// of an axis never mentioned by the preset.
func defaultScaling() Scaling {
	return Scaling{ScaleType: ScaleInput, Factor: FloatFactor(1.0)}
}

// Scale2D is a pass's output-size computation, independent per axis.
type Scale2D struct {
	X Scaling
	Y Scaling
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  uint32
	Height uint32
}

// Compute resolves a Scale2D against a source size and a viewport size,
// per spec: computed = round(scaled_value), per axis independently.
func (s Scale2D) Compute(source, viewport Size) Size {
	return Size{
		Width:  uint32(resolveAxis(s.X, source.Width, viewport.Width) + 0.5),
		Height: uint32(resolveAxis(s.Y, source.Height, viewport.Height) + 0.5),
	}
}

func resolveAxis(scaling Scaling, source, viewport uint32) float32 {
	switch scaling.ScaleType {
	case ScaleAbsolute:
		return float32(scaling.Factor.Absolute)
	case ScaleViewport:
		return float32(viewport) * scaling.Factor.Float
	default: // ScaleInput
		return float32(source) * scaling.Factor.Float
	}
}

// PassConfig is one shader pass within a flattened Preset. ID is the
// 0-based execution-order index.
type PassConfig struct {
	ID              int
	Path            string
	Alias           string
	Filter          FilterMode
	Wrap            WrapMode
	FrameCountMod   uint32
	SRGBFramebuffer bool
	FloatFramebuffer bool
	MipmapInput     bool
	Scale           Scale2D
	FormatOverride  string
}

// TextureConfig is a LUT texture referenced by name from shader source.
type TextureConfig struct {
	Name   string
	Path   string
	Wrap   WrapMode
	Filter FilterMode
	Mipmap bool
}

// Parameter is a named scalar override for a `#pragma parameter`.
type Parameter struct {
	Name  string
	Value float32
}

// Preset is the fully flattened, reference-resolved shader preset: an
// ordered pass list, immutable for the filter chain's lifetime, plus the
// LUT list and parameter overrides.
type Preset struct {
	Passes []PassConfig
	Textures []TextureConfig
	Parameters []Parameter
	// FeedbackPass is preset-global (not per-pass), -1 when unset.
	FeedbackPass int32
}
