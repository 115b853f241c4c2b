package preprocess_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SnowflakePowered/librashader-go/preprocess"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSplitsStages(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "basic.slang", `#version 450

layout(set = 0, binding = 0) uniform UBO { mat4 MVP; } global;

#pragma name BasicShader
#pragma parameter strength "Strength" 1.0 0.0 2.0 0.05

#pragma stage vertex
layout(location = 0) in vec4 Position;
void main() { gl_Position = global.MVP * Position; }

#pragma stage fragment
layout(location = 0) out vec4 FragColor;
void main() { FragColor = vec4(1.0); }
`)

	src, err := preprocess.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if src.Name != "BasicShader" {
		t.Errorf("name = %q", src.Name)
	}
	if len(src.Parameters) != 1 {
		t.Fatalf("got %d parameters, want 1", len(src.Parameters))
	}
	p := src.Parameters[0]
	if p.ID != "strength" || p.Description != "Strength" || p.Initial != 1.0 || p.Minimum != 0.0 || p.Maximum != 2.0 || p.Step != 0.05 {
		t.Errorf("parameter = %+v", p)
	}

	if !strings.Contains(src.Vertex, "gl_Position") {
		t.Errorf("vertex source missing vertex body: %q", src.Vertex)
	}
	if strings.Contains(src.Vertex, "FragColor") {
		t.Errorf("vertex source leaked fragment body: %q", src.Vertex)
	}
	if !strings.Contains(src.Vertex, "uniform UBO") || !strings.Contains(src.Fragment, "uniform UBO") {
		t.Errorf("common UBO block should appear in both stages")
	}
	if strings.Contains(src.Vertex, "#pragma") || strings.Contains(src.Fragment, "#pragma") {
		t.Errorf("pragma lines should be stripped from emitted sources")
	}
}

func TestLoadDefaultsStepToOne(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "noparams.slang", `#version 450
#pragma parameter foo "Foo" 0.5 0.0 1.0
#pragma stage vertex
void main() {}
#pragma stage fragment
void main() {}
`)
	src, err := preprocess.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(src.Parameters) != 1 || src.Parameters[0].Step != 1.0 {
		t.Fatalf("parameters = %+v, want step defaulted to 1.0", src.Parameters)
	}
}

func TestLoadMissingVersionHeader(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "noversion.slang", "void main() {}\n")
	_, err := preprocess.Load(path)
	if err != preprocess.ErrMissingVersionHeader {
		t.Errorf("err = %v, want ErrMissingVersionHeader", err)
	}
}

func TestLoadExpandsInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "common.inc", "const float kGamma = 2.2;\n")
	path := writeFile(t, dir, "main.slang", `#version 450
#include "common.inc"
#pragma stage vertex
void main() {}
#pragma stage fragment
void main() {}
`)
	src, err := preprocess.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(src.Vertex, "kGamma") || !strings.Contains(src.Fragment, "kGamma") {
		t.Errorf("included constant missing from stage sources: vertex=%q fragment=%q", src.Vertex, src.Fragment)
	}
}

func TestLoadRejectsCircularInclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.slang", `#version 450
#include "b.slang"
`)
	writeFile(t, dir, "b.slang", `#include "a.slang"
`)
	_, err := preprocess.Load(filepath.Join(dir, "a.slang"))
	if err == nil {
		t.Fatal("expected circular include error")
	}
	if _, ok := err.(*preprocess.CircularIncludeError); !ok {
		t.Errorf("got %T, want *CircularIncludeError", err)
	}
}
