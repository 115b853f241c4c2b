package preset

import "testing"

func TestParseBasicPreset(t *testing.T) {
	src := []byte(`shaders = 2
shader0 = crt-lottes.slang
shader1 = "sharpen.slang"
alias1 = sharpened
filter_linear0 = false
wrap_mode1 = repeat
scale_type0 = viewport
scale0 = 0.5
frame_count_mod1 = 4
feedback_pass = 0

textures = lut
lut = lut.png
lut_wrap_mode = clamp_to_edge

parameters = strength
strength = 0.75
`)
	p, err := parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(p.Passes) != 2 {
		t.Fatalf("got %d passes, want 2", len(p.Passes))
	}
	if p.Passes[0].Path != "crt-lottes.slang" {
		t.Errorf("pass 0 path = %q", p.Passes[0].Path)
	}
	if p.Passes[0].Filter != FilterNearest {
		t.Errorf("pass 0 filter = %v, want nearest", p.Passes[0].Filter)
	}
	if p.Passes[0].Scale.X.ScaleType != ScaleViewport || p.Passes[0].Scale.X.Factor.Float != 0.5 {
		t.Errorf("pass 0 scale.x = %+v", p.Passes[0].Scale.X)
	}
	if p.Passes[1].Alias != "sharpened" {
		t.Errorf("pass 1 alias = %q", p.Passes[1].Alias)
	}
	if p.Passes[1].Wrap != WrapRepeat {
		t.Errorf("pass 1 wrap = %v", p.Passes[1].Wrap)
	}
	if p.Passes[1].FrameCountMod != 4 {
		t.Errorf("pass 1 frame_count_mod = %d", p.Passes[1].FrameCountMod)
	}
	if p.FeedbackPass != 0 {
		t.Errorf("feedback pass = %d, want 0", p.FeedbackPass)
	}

	if len(p.Textures) != 1 || p.Textures[0].Path != "lut.png" || p.Textures[0].Wrap != WrapClampToEdge {
		t.Fatalf("textures = %+v", p.Textures)
	}

	if len(p.Parameters) != 1 || p.Parameters[0].Name != "strength" || p.Parameters[0].Value != 0.75 {
		t.Fatalf("parameters = %+v", p.Parameters)
	}
}

// TestParseScalePrecedenceLaterKeyWins exercises the documented resolution
// for spec open question #2: whichever of "scale"/"scale_x" lexes later
// wins for that axis.
func TestParseScalePrecedenceLaterKeyWins(t *testing.T) {
	src := []byte(`shaders = 1
shader0 = pass.slang
scale_type0 = viewport
scale0 = 2.0
scale_type_x0 = absolute
scale_x0 = 100
`)
	p, err := parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	x := p.Passes[0].Scale.X
	if x.ScaleType != ScaleAbsolute || x.Factor.Absolute != 100 {
		t.Errorf("x axis = %+v, want absolute 100 (later key wins)", x)
	}
	y := p.Passes[0].Scale.Y
	if y.ScaleType != ScaleViewport || y.Factor.Float != 2.0 {
		t.Errorf("y axis = %+v, want viewport 2.0 (untouched by scale_x)", y)
	}
}

func TestParseFrameCountModZeroMeansNeverReset(t *testing.T) {
	src := []byte(`shaders = 1
shader0 = pass.slang
`)
	p, err := parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Passes[0].FrameCountMod != 0 {
		t.Errorf("frame_count_mod = %d, want 0 (default, never reset)", p.Passes[0].FrameCountMod)
	}
}

func TestParseUnknownIndexIsIgnored(t *testing.T) {
	src := []byte(`shaders = 1
shader0 = pass.slang
alias5 = out-of-range
`)
	p, err := parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Passes[0].Alias != "" {
		t.Errorf("alias = %q, want empty (index 5 has no pass)", p.Passes[0].Alias)
	}
}

func TestParseInvalidShaderCount(t *testing.T) {
	_, err := parse([]byte("shaders = not-a-number\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*ParserError)
	if !ok {
		t.Fatalf("got %T, want *ParserError", err)
	}
	if pe.Kind != KindInt {
		t.Errorf("kind = %v, want KindInt", pe.Kind)
	}
}
