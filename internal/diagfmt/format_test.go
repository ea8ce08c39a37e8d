package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"momo/internal/lexer"
	"momo/internal/parser"
	"momo/internal/source"
	"momo/internal/token"
)

func scanSample(t *testing.T, src string) (*source.FileSet, *source.File, []token.Token) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("sample.momo", []byte(src)))
	return fs, f, lexer.Scan(f, lexer.Options{})
}

func TestFormatTokens(t *testing.T) {
	_, _, toks := scanSample(t, "int x = 0x1F;")

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("got %d lines for %d tokens", len(lines), len(toks))
	}
	if !strings.Contains(lines[3], `"0x1F" at 1:9`) {
		t.Errorf("unexpected literal line %q", lines[3])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != len(toks) || out[3].Kind != token.HexLit.String() || out[3].Col != 9 {
		t.Errorf("unexpected JSON tokens %+v", out)
	}
}

func TestFormatAST(t *testing.T) {
	fs, f, toks := scanSample(t, "int g = 2;\nint main() {\n\twhile (g) { g--; break; }\n\treturn g + 1;\n}\n")
	res, err := parser.ParseFile(f, toks, parser.Options{})
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Builder, fs); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	for _, want := range []string{
		"Program (2 declarations)",
		"├─ VariableDeclaration int g",
		"└─ FunctionDeclaration int main()",
		"WhileStatement",
		"UnaryPostfixExpression --",
		"BreakStatement depth=",
		"BinaryExpression +",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("tree misses %q:\n%s", want, got)
		}
	}

	buf.Reset()
	if err := FormatASTJSON(&buf, res.Builder); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatal(err)
	}
	if root.Type != "Program" || len(root.Children) != 2 {
		t.Errorf("unexpected root %s with %d children", root.Type, len(root.Children))
	}
}
