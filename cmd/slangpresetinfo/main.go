// Command slangpresetinfo parses a RetroArch "slang" shader preset and
// prints its flattened pass list and merged parameter manifest. It never
// touches a GPU; it exercises only the preset, preprocess, frontend,
// semantics, reflect, and codegen (GLSL target) stages.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/SnowflakePowered/librashader-go/codegen"
	"github.com/SnowflakePowered/librashader-go/frontend"
	"github.com/SnowflakePowered/librashader-go/preprocess"
	"github.com/SnowflakePowered/librashader-go/preset"
	"github.com/SnowflakePowered/librashader-go/reflect"
	"github.com/SnowflakePowered/librashader-go/semantics"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <preset.slangp>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "slangpresetinfo: %v\n", err)
		os.Exit(1)
	}
}

func run(presetPath string) error {
	p, err := preset.Load(presetPath)
	if err != nil {
		return fmt.Errorf("load preset: %w", err)
	}

	fmt.Printf("%s: %d pass(es), %d texture(s)\n", presetPath, len(p.Passes), len(p.Textures))
	if p.FeedbackPass >= 0 {
		fmt.Printf("feedback pass: %d\n", p.FeedbackPass)
	}

	baseDir := filepath.Dir(presetPath)
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sources := make([]*preprocess.ShaderSource, len(p.Passes))
	compilations := make([]*frontend.Compilation, len(p.Passes))
	passParameters := make([][]preprocess.ShaderParameter, len(p.Passes))
	for i, pass := range p.Passes {
		shaderPath := pass.Path
		if !filepath.IsAbs(shaderPath) {
			shaderPath = filepath.Join(baseDir, shaderPath)
		}

		src, err := preprocess.Load(shaderPath)
		if err != nil {
			return fmt.Errorf("pass %d: preprocess: %w", pass.ID, err)
		}
		sources[i] = src
		passParameters[i] = src.Parameters

		comp, err := frontend.Compile(src)
		if err != nil {
			return fmt.Errorf("pass %d: compile: %w", pass.ID, err)
		}
		compilations[i] = comp
	}

	sem, merged, err := semantics.Build(p.Passes, p.Textures, passParameters, log)
	if err != nil {
		return fmt.Errorf("semantics: %w", err)
	}

	for i, pass := range p.Passes {
		fmt.Printf("\npass %d: %s\n", pass.ID, pass.Path)
		if pass.Alias != "" {
			fmt.Printf("  alias: %s\n", pass.Alias)
		}
		fmt.Printf("  scale: %s\n", describeScale(pass.Scale))
		fmt.Printf("  wrap=%v filter=%v srgb=%v float=%v mipmap=%v framecountmod=%d\n",
			pass.Wrap, pass.Filter, pass.SRGBFramebuffer, pass.FloatFramebuffer, pass.MipmapInput, pass.FrameCountMod)

		refl, err := reflect.Reflect(compilations[i], sem, pass.ID)
		if err != nil {
			return fmt.Errorf("pass %d: reflect: %w", pass.ID, err)
		}
		fmt.Printf("  samplers: %d, uniform members: %d\n", len(refl.Samplers), len(refl.Members))

		if _, _, err := codegen.Compile(codegen.TargetGLSL, compilations[i], sources[i], refl); err != nil {
			return fmt.Errorf("pass %d: codegen: %w", pass.ID, err)
		}
	}

	if len(p.Textures) > 0 {
		fmt.Println("\ntextures:")
		for _, tex := range p.Textures {
			fmt.Printf("  %s: %s (wrap=%v filter=%v mipmap=%v)\n", tex.Name, tex.Path, tex.Wrap, tex.Filter, tex.Mipmap)
		}
	}

	if len(merged) > 0 {
		fmt.Println("\nparameters:")
		for _, param := range merged {
			fmt.Printf("  %s = %g (min=%g max=%g step=%g) %q\n", param.ID, param.Initial, param.Minimum, param.Maximum, param.Step, param.Description)
		}
	}
	if len(p.Parameters) > 0 {
		fmt.Println("\npreset overrides:")
		for _, ov := range p.Parameters {
			fmt.Printf("  %s = %g\n", ov.Name, ov.Value)
		}
	}

	return nil
}

func describeScale(s preset.Scale2D) string {
	return fmt.Sprintf("x=%s y=%s", describeScaling(s.X), describeScaling(s.Y))
}

func describeScaling(s preset.Scaling) string {
	switch s.ScaleType {
	case preset.ScaleInput:
		return fmt.Sprintf("input*%g", s.Factor.Float)
	case preset.ScaleViewport:
		return fmt.Sprintf("viewport*%g", s.Factor.Float)
	case preset.ScaleAbsolute:
		return fmt.Sprintf("absolute=%d", s.Factor.Absolute)
	default:
		return "source"
	}
}
