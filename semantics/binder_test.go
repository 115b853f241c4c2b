package semantics_test

import (
	"testing"

	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/preset"
	"github.com/SnowflakePowered/librashader-go/semantics"
)

func TestBuildSeedsBuiltins(t *testing.T) {
	sem, params, err := semantics.Build(nil, nil, nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(params) != 0 {
		t.Fatalf("got %d params, want 0", len(params))
	}
	if got := sem.UniformSemantics["MVP"].Unique.Kind; got != semantics.MVP {
		t.Errorf("MVP kind = %v", got)
	}
	if _, ok := sem.TextureSemantics["Original"]; !ok {
		t.Error("missing Original texture semantic")
	}
}

func TestBuildAliasAndLUT(t *testing.T) {
	passes := []preset.PassConfig{{ID: 0, Alias: "Stock"}, {ID: 1}}
	textures := []preset.TextureConfig{{Name: "LUT"}}

	sem, _, err := semantics.Build(passes, textures, nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, ok := sem.TextureSemantics["Stock"]
	if !ok || out.Kind != semantics.PassOutput || out.Index != 0 {
		t.Errorf("Stock = %+v", out)
	}
	if _, ok := sem.UniformSemantics["StockSize"]; !ok {
		t.Error("missing StockSize")
	}
	if _, ok := sem.TextureSemantics["StockFeedback"]; !ok {
		t.Error("missing StockFeedback")
	}

	lut, ok := sem.TextureSemantics["LUT"]
	if !ok || lut.Kind != semantics.User || lut.Index != 0 {
		t.Errorf("LUT = %+v", lut)
	}
}

func TestBuildRejectsDuplicateAlias(t *testing.T) {
	passes := []preset.PassConfig{{ID: 0, Alias: "X"}, {ID: 1, Alias: "X"}}
	_, _, err := semantics.Build(passes, nil, nil, nil)
	if err == nil {
		t.Fatal("expected duplicate alias error")
	}
	if _, ok := err.(*semantics.DuplicateAliasError); !ok {
		t.Errorf("got %T, want *DuplicateAliasError", err)
	}
}

func TestBuildMergesParametersFirstWins(t *testing.T) {
	passParameters := [][]preprocess.ShaderParameter{
		{{ID: "gamma", Initial: 2.2, Minimum: 1.0, Maximum: 4.0, Step: 0.1}},
		{{ID: "gamma", Initial: 9.9, Minimum: 0.0, Maximum: 1.0, Step: 1.0}},
	}
	_, params, err := semantics.Build(nil, nil, passParameters, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(params) != 1 || params[0].Initial != 2.2 {
		t.Fatalf("params = %+v, want first definition to win", params)
	}
}
