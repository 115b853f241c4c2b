package preset

import "testing"

func TestSerializeRoundTrip(t *testing.T) {
	src := []byte(`shaders = 2
shader0 = crt-lottes.slang
shader1 = sharpen.slang
alias1 = sharpened
scale_type0 = viewport
scale0 = 0.5
wrap_mode1 = repeat
frame_count_mod1 = 4
feedback_pass = 0

textures = lut
lut = lut.png
lut_wrap_mode = clamp_to_edge

parameters = strength
strength = 0.75
`)
	original, err := parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	roundTripped, err := parse(original.Serialize())
	if err != nil {
		t.Fatalf("parse(serialize): %v", err)
	}

	if len(roundTripped.Passes) != len(original.Passes) {
		t.Fatalf("pass count = %d, want %d", len(roundTripped.Passes), len(original.Passes))
	}
	for i := range original.Passes {
		a, b := original.Passes[i], roundTripped.Passes[i]
		if a.Path != b.Path || a.Alias != b.Alias || a.Wrap != b.Wrap ||
			a.FrameCountMod != b.FrameCountMod || a.Scale != b.Scale {
			t.Errorf("pass %d round-trip mismatch: got %+v, want %+v", i, b, a)
		}
	}
	if roundTripped.FeedbackPass != original.FeedbackPass {
		t.Errorf("feedback pass = %d, want %d", roundTripped.FeedbackPass, original.FeedbackPass)
	}
	if len(roundTripped.Textures) != 1 || roundTripped.Textures[0] != original.Textures[0] {
		t.Errorf("textures round-trip mismatch: got %+v, want %+v", roundTripped.Textures, original.Textures)
	}
	if len(roundTripped.Parameters) != 1 || roundTripped.Parameters[0] != original.Parameters[0] {
		t.Errorf("parameters round-trip mismatch: got %+v, want %+v", roundTripped.Parameters, original.Parameters)
	}
}
