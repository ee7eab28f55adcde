package parser

import (
	"lispy/internal/ast"
	"lispy/internal/lexer"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseProgramShape(t *testing.T) {
	root, err := Parse("(+ 1 {2})")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if root.Kind != ast.Root {
		t.Fatalf("expected root kind, got %q", root.Kind)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}

	sexpr := root.Children[0]
	if sexpr.Kind != ast.SExpr {
		t.Fatalf("expected sexpr, got %q", sexpr.Kind)
	}

	kinds := []ast.Kind{ast.Delimiter, ast.Symbol, ast.Number, ast.QExpr, ast.Delimiter}
	if len(sexpr.Children) != len(kinds) {
		t.Fatalf("expected %d children, got %d", len(kinds), len(sexpr.Children))
	}
	for i, k := range kinds {
		if sexpr.Children[i].Kind != k {
			t.Errorf("child %d: expected %q, got %q", i, k, sexpr.Children[i].Kind)
		}
	}
	if !sexpr.Children[0].IsDelimiter() || !sexpr.Children[4].IsDelimiter() {
		t.Errorf("brackets should be delimiter leaves")
	}
	if got := sexpr.Children[1].Text; got != "+" {
		t.Errorf("expected symbol '+', got %q", got)
	}
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(+ 1 {2})", "(+ 1 {2})"},
		{"  (  head   { 1 2 3 } )  ", "(head {1 2 3})"},
		{"+ 1 2", "+ 1 2"},
		{"()", "()"},
		{"{}", "{}"},
		{"", ""},
	}

	for _, tt := range tests {
		root, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if got := root.String(); got != tt.expected {
			t.Errorf("%q: expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		incomplete bool
		contains   string
	}{
		{"unterminated sexpr", "(+ 1", true, `expected ")" before end of input`},
		{"unterminated nested", "((1 {2}", true, `expected ")" before end of input`},
		{"unterminated qexpr", "{1 2", true, `expected "}" before end of input`},
		{"stray closer", ")", false, `unexpected ")"`},
		{"mismatched closer", "(1 }", false, `unexpected "}"`},
		{"illegal character", "(+ 1 #)", false, `illegal character "#"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if IsIncomplete(err) != tt.incomplete {
				t.Errorf("IsIncomplete=%v, expected %v (%v)", IsIncomplete(err), tt.incomplete, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("expected error to contain %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestErrorPositionAndContext(t *testing.T) {
	src := "(+ 1\n   2 #)"
	p := New(lexer.New(src), src)
	p.ParseProgram()

	if len(p.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %v", p.Errors())
	}
	if !strings.HasPrefix(p.Errors()[0], "[  2: 6]") {
		t.Errorf("expected position [  2: 6], got %q", p.Errors()[0])
	}

	se := p.syntaxError()
	if !strings.Contains(se.Context, "^ unexpected here") {
		t.Errorf("expected context arrow, got %q", se.Context)
	}
}

func TestRenderASTAsText(t *testing.T) {
	root, err := Parse("(+ 1 {2})")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `>
  sexpr
    char '('
    symbol '+'
    number '1'
    qexpr
      char '{'
      number '2'
      char '}'
    char ')'`

	if got := RenderASTAsText(root, 0); got != expected {
		t.Errorf("unexpected rendering:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestRenderASTAsJSON(t *testing.T) {
	root, err := Parse("{x}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out, err := RenderASTAsJSON(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{`"0.type": "qexpr"`, `"2.text": "x"`, `"3.children"`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected JSON to contain %s, got:\n%s", want, out)
		}
	}
}

func TestWriteASTToJSON(t *testing.T) {
	root, err := Parse("(- 4)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ast.json")
	if err := WriteASTToJSON(root, path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want, _ := RenderASTAsJSON(root)
	if string(data) != want {
		t.Errorf("file and rendering differ:\n%s\n%s", data, want)
	}
}
