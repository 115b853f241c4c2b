package preset

import (
	"fmt"
	"strconv"
	"strings"
)

// Serialize renders a Preset back to ".slangp" text. Round-tripping
// Load -> Serialize -> Load reproduces an equivalent Preset, though not
// necessarily byte-identical source (comments and stray formatting are not
// preserved, since the flattened Preset no longer carries them).
func (p *Preset) Serialize() []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "shaders = %d\n", len(p.Passes))
	if p.FeedbackPass >= 0 {
		fmt.Fprintf(&b, "feedback_pass = %d\n", p.FeedbackPass)
	}

	for _, pass := range p.Passes {
		i := pass.ID
		fmt.Fprintf(&b, "shader%d = %q\n", i, pass.Path)
		if pass.Alias != "" {
			fmt.Fprintf(&b, "alias%d = %s\n", i, pass.Alias)
		}
		fmt.Fprintf(&b, "filter_linear%d = %s\n", i, strconv.FormatBool(pass.Filter == FilterLinear))
		fmt.Fprintf(&b, "wrap_mode%d = %s\n", i, wrapModeString(pass.Wrap))
		writeScaleAxis(&b, i, "x", pass.Scale.X)
		writeScaleAxis(&b, i, "y", pass.Scale.Y)
		if pass.FrameCountMod != 0 {
			fmt.Fprintf(&b, "frame_count_mod%d = %d\n", i, pass.FrameCountMod)
		}
		if pass.SRGBFramebuffer {
			fmt.Fprintf(&b, "srgb_framebuffer%d = true\n", i)
		}
		if pass.FloatFramebuffer {
			fmt.Fprintf(&b, "float_framebuffer%d = true\n", i)
		}
		if pass.MipmapInput {
			fmt.Fprintf(&b, "mipmap_input%d = true\n", i)
		}
		if pass.FormatOverride != "" {
			fmt.Fprintf(&b, "format%d = %s\n", i, pass.FormatOverride)
		}
	}

	if len(p.Textures) > 0 {
		names := make([]string, len(p.Textures))
		for i, t := range p.Textures {
			names[i] = t.Name
		}
		fmt.Fprintf(&b, "textures = %s\n", strings.Join(names, ";"))
		for _, t := range p.Textures {
			fmt.Fprintf(&b, "%s = %q\n", t.Name, t.Path)
			fmt.Fprintf(&b, "%s_wrap_mode = %s\n", t.Name, wrapModeString(t.Wrap))
			fmt.Fprintf(&b, "%s_filter_linear = %s\n", t.Name, strconv.FormatBool(t.Filter == FilterLinear))
			if t.Mipmap {
				fmt.Fprintf(&b, "%s_mipmap = true\n", t.Name)
			}
		}
	}

	if len(p.Parameters) > 0 {
		names := make([]string, len(p.Parameters))
		for i, param := range p.Parameters {
			names[i] = param.Name
		}
		fmt.Fprintf(&b, "parameters = %s\n", strings.Join(names, ";"))
		for _, param := range p.Parameters {
			fmt.Fprintf(&b, "%s = %s\n", param.Name, strconv.FormatFloat(float64(param.Value), 'g', -1, 32))
		}
	}

	return []byte(b.String())
}

func writeScaleAxis(b *strings.Builder, i int, axis string, s Scaling) {
	suffix := "_" + axis
	if s.ScaleType == ScaleInput && s.Factor.Float == 1.0 {
		return
	}
	fmt.Fprintf(b, "scale_type%s%d = %s\n", suffix, i, scaleTypeString(s.ScaleType))
	if s.ScaleType == ScaleAbsolute {
		fmt.Fprintf(b, "scale%s%d = %d\n", suffix, i, s.Factor.Absolute)
	} else {
		fmt.Fprintf(b, "scale%s%d = %s\n", suffix, i, strconv.FormatFloat(float64(s.Factor.Float), 'g', -1, 32))
	}
}

func wrapModeString(w WrapMode) string {
	switch w {
	case WrapClampToEdge:
		return "clamp_to_edge"
	case WrapRepeat:
		return "repeat"
	case WrapMirroredRepeat:
		return "mirrored_repeat"
	default:
		return "clamp_to_border"
	}
}

func scaleTypeString(s ScaleType) string {
	switch s {
	case ScaleViewport:
		return "viewport"
	case ScaleAbsolute:
		return "absolute"
	default:
		return "source"
	}
}
