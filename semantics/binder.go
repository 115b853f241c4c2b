package semantics

import (
	"fmt"
	"log/slog"

	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/preset"
)

// MaxHistory is the number of OriginalHistoryN slots seeded regardless of
// preset content. Real librashader derives the exact required depth from
// a usage scan of the compiled shaders; this runtime fixes a generous cap
// instead, since every preset in practice references a small, bounded
// number of history frames.
const MaxHistory = 16

// Build aggregates every pass's alias, every LUT, and every pass's
// preprocessed parameter declarations into the semantic tables a
// reflector name-matches shader members against.
//
// passParameters must be parallel to passes (passParameters[i] holds the
// parameters declared by passes[i]'s shader source). log receives
// duplicate-parameter warnings; a nil log is valid and silently drops them.
func Build(passes []preset.PassConfig, textures []preset.TextureConfig, passParameters [][]preprocess.ShaderParameter, log *slog.Logger) (*ShaderSemantics, []preprocess.ShaderParameter, error) {
	sem := &ShaderSemantics{
		UniformSemantics: map[string]UniformSemantic{},
		TextureSemantics: map[string]SemanticMap[TextureSemantics]{},
	}

	seedBuiltins(sem)

	aliasOwner := map[string]int{}
	for _, pass := range passes {
		if pass.Alias == "" {
			continue
		}
		if owner, exists := aliasOwner[pass.Alias]; exists {
			return nil, nil, &DuplicateAliasError{Alias: pass.Alias, FirstPass: owner, SecondPass: pass.ID}
		}
		aliasOwner[pass.Alias] = pass.ID

		sem.TextureSemantics[pass.Alias] = SemanticMap[TextureSemantics]{Kind: PassOutput, Index: pass.ID}
		sem.UniformSemantics[pass.Alias+"Size"] = UniformSemantic{
			IsTextureSize: true,
			TextureSize:   SemanticMap[TextureSemantics]{Kind: PassOutput, Index: pass.ID},
		}
		sem.TextureSemantics[pass.Alias+"Feedback"] = SemanticMap[TextureSemantics]{Kind: PassFeedback, Index: pass.ID}
		sem.UniformSemantics[pass.Alias+"FeedbackSize"] = UniformSemantic{
			IsTextureSize: true,
			TextureSize:   SemanticMap[TextureSemantics]{Kind: PassFeedback, Index: pass.ID},
		}
	}

	for i, tex := range textures {
		sem.TextureSemantics[tex.Name] = SemanticMap[TextureSemantics]{Kind: User, Index: i}
		sem.UniformSemantics[tex.Name+"Size"] = UniformSemantic{
			IsTextureSize: true,
			TextureSize:   SemanticMap[TextureSemantics]{Kind: User, Index: i},
		}
	}

	merged, err := mergeParameters(passParameters, log)
	if err != nil {
		return nil, nil, err
	}
	for i, p := range merged {
		sem.UniformSemantics[p.ID] = UniformSemantic{
			Unique: SemanticMap[UniqueSemantics]{Kind: FloatParameter, Index: i},
		}
	}

	return sem, merged, nil
}

// seedBuiltins registers the fixed built-in uniform and texture names every
// chain recognizes regardless of preset content.
func seedBuiltins(sem *ShaderSemantics) {
	unique := map[string]UniqueSemantics{
		"MVP":                   MVP,
		"OutputSize":            Output,
		"FinalViewportSize":     FinalViewport,
		"FrameCount":            FrameCount,
		"FrameDirection":        FrameDirection,
		"OriginalFPS":           OriginalFPS,
		"FrameTimeDelta":        FrameTimeDelta,
		"OriginalAspect":        OriginalAspect,
		"OriginalAspectRotated": OriginalAspectRotated,
	}
	for name, kind := range unique {
		sem.UniformSemantics[name] = UniformSemantic{Unique: SemanticMap[UniqueSemantics]{Kind: kind}}
	}

	sem.TextureSemantics["Original"] = SemanticMap[TextureSemantics]{Kind: Original}
	sem.UniformSemantics["OriginalSize"] = UniformSemantic{
		IsTextureSize: true,
		TextureSize:   SemanticMap[TextureSemantics]{Kind: Original},
	}
	sem.TextureSemantics["Source"] = SemanticMap[TextureSemantics]{Kind: Source}
	sem.UniformSemantics["SourceSize"] = UniformSemantic{
		IsTextureSize: true,
		TextureSize:   SemanticMap[TextureSemantics]{Kind: Source},
	}

	for k := 0; k < MaxHistory; k++ {
		name := fmt.Sprintf("OriginalHistory%d", k)
		sem.TextureSemantics[name] = SemanticMap[TextureSemantics]{Kind: OriginalHistory, Index: k}
		sem.UniformSemantics[name+"Size"] = UniformSemantic{
			IsTextureSize: true,
			TextureSize:   SemanticMap[TextureSemantics]{Kind: OriginalHistory, Index: k},
		}
	}
}

// mergeParameters folds each pass's declared parameters into one ordered,
// de-duplicated list: the first definition of an id wins; a later
// definition with a different (init,min,max,step) only logs a warning, per
// the documented "first definition wins" resolution.
func mergeParameters(passParameters [][]preprocess.ShaderParameter, log *slog.Logger) ([]preprocess.ShaderParameter, error) {
	var merged []preprocess.ShaderParameter
	seen := map[string]int{}

	for _, params := range passParameters {
		for _, p := range params {
			if idx, ok := seen[p.ID]; ok {
				first := merged[idx]
				if first != p && log != nil {
					log.Warn("duplicate parameter declaration, first definition wins",
						slog.String("id", p.ID),
						slog.Any("first", first),
						slog.Any("ignored", p))
				}
				continue
			}
			seen[p.ID] = len(merged)
			merged = append(merged, p)
		}
	}
	return merged, nil
}
