package preset

import "testing"

func TestLexBasic(t *testing.T) {
	src := []byte(`shaders = "2"
shader0 = crt.slang
# a full line comment
shader1 = blur.slang // trailing comment
filter_linear0 = "true"
`)
	tokens, err := lex(src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	want := []Token{
		{Key: "shaders", Value: "2"},
		{Key: "shader0", Value: "crt.slang"},
		{Key: "shader1", Value: "blur.slang"},
		{Key: "filter_linear0", Value: "true"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, tok := range tokens {
		if tok.Key != want[i].Key || tok.Value != want[i].Value {
			t.Errorf("token %d = %+v, want %+v", i, tok, want[i])
		}
	}
}

func TestLexReference(t *testing.T) {
	src := []byte(`#reference "base.slangp"
shader0 = override.slang
`)
	tokens, err := lex(src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(tokens), tokens)
	}
	if !tokens[0].IsReference || tokens[0].Value != "base.slangp" {
		t.Errorf("reference token = %+v", tokens[0])
	}
}

func TestLexMissingEquals(t *testing.T) {
	_, err := lex([]byte("not_an_assignment\n"))
	if err == nil {
		t.Fatal("expected lexer error")
	}
	if _, ok := err.(*LexerError); !ok {
		t.Errorf("got %T, want *LexerError", err)
	}
}

func TestLexEmptyKey(t *testing.T) {
	_, err := lex([]byte(" = value\n"))
	if err == nil {
		t.Fatal("expected lexer error")
	}
}

func TestLexQuotedValueHidesComment(t *testing.T) {
	tokens, err := lex([]byte(`shader0 = "path # not a comment.slang"` + "\n"))
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	if len(tokens) != 1 || tokens[0].Value != "path # not a comment.slang" {
		t.Fatalf("got %+v", tokens)
	}
}
