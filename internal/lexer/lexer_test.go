package lexer_test

import (
	"testing"

	"momo/internal/diag"
	"momo/internal/lexer"
	"momo/internal/source"
	"momo/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// scanString токенизирует тестовую строку
func scanString(input string) ([]token.Token, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.momo", []byte(input)))
	reporter := &testReporter{}
	return lexer.Scan(file, lexer.Options{Reporter: reporter}), reporter
}

func expectKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, _ := scanString(input)
	if len(toks) != len(want) {
		t.Fatalf("%q: expected %d tokens, got %d: %v", input, len(want), len(toks), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("%q: token %d: expected %s, got %s (%q)", input, i, k, toks[i].Kind, toks[i].Text)
		}
	}
	return toks
}

func TestNoEOFToken(t *testing.T) {
	toks, _ := scanString("   \n\t// only a comment\n")
	if len(toks) != 0 {
		t.Fatalf("expected empty stream, got %v", toks)
	}
}

func TestKeywordsTypesAndIdents(t *testing.T) {
	expectKinds(t, "extern int main $tmp _x while true i64 whilex",
		token.KwExtern, token.TyInt, token.Ident, token.Ident, token.Ident,
		token.KwWhile, token.KwTrue, token.TyI64, token.Ident)
}

func TestGreedyOperators(t *testing.T) {
	expectKinds(t, ">>= >> > <<= << < <= >= == = != ! && & || | ++ + -- - += ~ ^=",
		token.ShrAssign, token.Shr, token.Gt, token.ShlAssign, token.Shl, token.Lt,
		token.LtEq, token.GtEq, token.EqEq, token.Assign, token.BangEq, token.Bang,
		token.AndAnd, token.Amp, token.OrOr, token.Pipe, token.PlusPlus, token.Plus,
		token.MinusMinus, token.Minus, token.PlusAssign, token.Tilde, token.CaretAssign)
}

func TestAdjacentOperatorsWithoutSpaces(t *testing.T) {
	expectKinds(t, "a+=*p;",
		token.Ident, token.PlusAssign, token.Star, token.Ident, token.Semicolon)
	expectKinds(t, "x<<=2",
		token.Ident, token.ShlAssign, token.IntLit)
}

func TestNumbers(t *testing.T) {
	toks := expectKinds(t, "42 0x1F 0 7", token.IntLit, token.HexLit, token.IntLit, token.IntLit)
	if toks[1].Text != "0x1F" {
		t.Fatalf("hex text = %q", toks[1].Text)
	}
}

func TestLenientDecimalAbsorbsMinus(t *testing.T) {
	toks, rep := scanString("5-3")
	if len(toks) != 1 || toks[0].Kind != token.IntLit || toks[0].Text != "5-3" {
		t.Fatalf("expected single literal 5-3, got %v", toks)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexLenientLiteral {
		t.Fatalf("expected one lenient-literal log, got %+v", rep.diagnostics)
	}
	if rep.diagnostics[0].Severity != diag.SevInfo {
		t.Fatalf("lenient literal must be informational")
	}
}

func TestUnknownCharactersSkipped(t *testing.T) {
	expectKinds(t, "a @ # b ? : . [ ]", token.Ident, token.Ident)
}

func TestLineAndColumn(t *testing.T) {
	toks := expectKinds(t, "int x;\n  x = 1; // c\n}",
		token.TyInt, token.Ident, token.Semicolon,
		token.Ident, token.Assign, token.IntLit, token.Semicolon,
		token.RBrace)

	tests := []struct {
		idx       int
		line, col uint32
	}{
		{0, 1, 1},
		{1, 1, 5},
		{3, 2, 3},
		{5, 2, 7},
		{7, 3, 1},
	}
	for _, tt := range tests {
		if toks[tt.idx].Line != tt.line || toks[tt.idx].Col != tt.col {
			t.Errorf("token %d (%q): got %d:%d, want %d:%d",
				tt.idx, toks[tt.idx].Text, toks[tt.idx].Line, toks[tt.idx].Col, tt.line, tt.col)
		}
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "int f(int *p) { return *p << 0x2; }"
	toks, _ := scanString(input)
	for _, tok := range toks {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Errorf("span %v covers %q, token text %q", tok.Span, got, tok.Text)
		}
	}
}
