package parser

import (
	"strings"
	"testing"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
)

func lookupGlobal(t *testing.T, res *Result, name string) *symbols.Symbol {
	t.Helper()
	id, ok := res.Symbols.LookupLocal(res.Symbols.Global, name)
	if !ok {
		t.Fatalf("global %q not found", name)
	}
	return res.Symbols.Symbol(id)
}

func TestEnumeratorDefaulting(t *testing.T) {
	res := mustParse(t, "enum { A, B, C = 5, D };")
	want := map[string]int32{"A": 0, "B": 1, "C": 5, "D": 6}
	for name, v := range want {
		if got := lookupGlobal(t, res, name).Value; got != v {
			t.Errorf("%s = %d, want %d", name, got, v)
		}
	}
}

func TestEnumeratorConstantExpressions(t *testing.T) {
	res := mustParse(t, "enum Flags { R = 1 << 2, W = R | 1, X = (W * 3) % 5, Y };")
	want := map[string]int32{"R": 4, "W": 5, "X": 0, "Y": 1}
	for name, v := range want {
		if got := lookupGlobal(t, res, name).Value; got != v {
			t.Errorf("%s = %d, want %d", name, got, v)
		}
	}
}

func TestLiteralsWrapAndShiftsMask(t *testing.T) {
	res := mustParse(t, "int a = 0xffffffff;\nint b = 4294967297;\nint c = 1 << 33;\nint d = (0 - 8) >> 1;")
	want := map[string]int32{"a": -1, "b": 1, "c": 2, "d": -4}
	for name, v := range want {
		if got := lookupGlobal(t, res, name).Value; got != v {
			t.Errorf("%s = %d, want %d", name, got, v)
		}
	}
}

func TestGlobalInitializerFolded(t *testing.T) {
	res := mustParse(t, "enum { K = 3 };\nint g = K * 10 + 0x0f;\nint h;")
	if got := lookupGlobal(t, res, "g").Value; got != 45 {
		t.Fatalf("g = %d, want 45", got)
	}
	h := lookupGlobal(t, res, "h")
	if h.Value != 0 || !h.Has(symbols.SymbolFlagGlobal|symbols.SymbolFlagConstant) {
		t.Fatalf("h = %+v", h)
	}
}

func TestPrecedenceAndCompoundDesugar(t *testing.T) {
	res := mustParse(t, "int main() { int x = 1; x += 2 * 3; return x; }")
	fn, ok := res.Builder.Stmts.Fn(res.Program.Stmts[0])
	if !ok {
		t.Fatal("expected function")
	}
	body, _ := res.Builder.Stmts.Block(fn.Body)
	exprStmt, ok := res.Builder.Stmts.Expr(body.Stmts[1])
	if !ok {
		t.Fatalf("statement 1 is not an expression statement")
	}
	exprs := res.Builder.Exprs
	assign, _ := exprs.Binary(exprStmt.Expr)
	if assign.Op != ast.ExprBinaryAssign {
		t.Fatalf("outer op = %s, want =", assign.Op)
	}
	add, ok := exprs.Binary(assign.Right)
	if !ok || add.Op != ast.ExprBinaryAdd || add.Left != assign.Left {
		t.Fatalf("compound assignment not desugared to x = x + ...: %+v", add)
	}
	mul, ok := exprs.Binary(add.Right)
	if !ok || mul.Op != ast.ExprBinaryMul {
		t.Fatalf("right operand should be the product")
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	res := mustParse(t, "int main() { int a; int b; a = b = 3; return a; }")
	fn, _ := res.Builder.Stmts.Fn(res.Program.Stmts[0])
	body, _ := res.Builder.Stmts.Block(fn.Body)
	st, _ := res.Builder.Stmts.Expr(body.Stmts[2])
	outer, _ := res.Builder.Exprs.Binary(st.Expr)
	inner, ok := res.Builder.Exprs.Binary(outer.Right)
	if !ok || inner.Op != ast.ExprBinaryAssign {
		t.Fatal("a = b = 3 must parse as a = (b = 3)")
	}
}

func TestPrototypeCompletionSingleSymbol(t *testing.T) {
	res := mustParse(t, "int f(int x);\nint f(int x) { return x; }\nint main() { return f(2); }")
	f := lookupGlobal(t, res, "f")
	if f.Has(symbols.SymbolFlagPrototype) {
		t.Fatal("f should be completed")
	}
	decl, ok := res.Builder.Stmts.Fn(f.Decl)
	if !ok || decl.IsPrototype() {
		t.Fatal("symbol must point at the definition")
	}
	if !lookupGlobal(t, res, "main").Has(symbols.SymbolFlagExported) {
		t.Fatal("main must be exported")
	}
}

func TestSynthesizedReturns(t *testing.T) {
	res := mustParse(t, "void v() { }\nint main() { v(); }")
	for i, wantValue := range []bool{false, true} {
		fn, _ := res.Builder.Stmts.Fn(res.Program.Stmts[i])
		body, _ := res.Builder.Stmts.Block(fn.Body)
		last := body.Stmts[len(body.Stmts)-1]
		ret, ok := res.Builder.Stmts.Return(last)
		if !ok || !ret.Synthetic || ret.Value.IsValid() != wantValue {
			t.Fatalf("function %s: bad synthesized return %+v", fn.Name, ret)
		}
	}
}

func TestBranchDepth(t *testing.T) {
	src := `int main() {
	int i = 0;
	while (i < 10) {
		if (i == 5) { break; }
		i++;
		{ continue; }
	}
	return i;
}`
	res := mustParse(t, src)
	var depths []uint32
	for _, st := range res.Builder.Stmts.Branches.Slice() {
		depths = append(depths, st.Depth)
	}
	if len(depths) != 2 || depths[0] != 2 || depths[1] != 2 {
		t.Fatalf("depths = %v, want [2 2]", depths)
	}
}

func TestLocalsCollectedInOrder(t *testing.T) {
	res := mustParse(t, "int main() { int a = 1; if (a) { int b = 2; } int c = 3; return a; }")
	fn, _ := res.Builder.Stmts.Fn(res.Program.Stmts[0])
	var names []string
	for _, id := range fn.Locals {
		names = append(names, res.Symbols.Symbol(id).Name)
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Fatalf("locals = %v", names)
	}
}

func TestShadowingInBlocks(t *testing.T) {
	res := mustParse(t, "int x = 1;\nint main() { int x = 2; { int x = 3; } return x; }")
	fn, _ := res.Builder.Stmts.Fn(res.Program.Stmts[1])
	body, _ := res.Builder.Stmts.Block(fn.Body)
	ret, _ := res.Builder.Stmts.Return(body.Stmts[2])
	id, _ := res.Builder.Exprs.Ident(ret.Value)
	sym := res.Symbols.Symbol(id.Symbol)
	if sym.Has(symbols.SymbolFlagGlobal) || sym.Index != 0 {
		t.Fatalf("return x should resolve to the function-level x, got %+v", sym)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"undefined", "int main() { return y; }", diag.SemaUndefinedSymbol},
		{"duplicate", "int main() { int a = 1; int a = 2; return a; }", diag.SemaDuplicateSymbol},
		{"redefinition", "int f() { return 1; }\nint f() { return 2; }", diag.SemaRedefinition},
		{"conflicting types", "int f();\nvoid f() { }", diag.SemaConflictingTypes},
		{"conflicting params", "int f(int a);\nint f(int a, int b) { return a; }", diag.SemaConflictingTypes},
		{"return outside", "return 1;", diag.SemaReturnOutsideFunction},
		{"break outside", "int main() { break; }", diag.SemaBreakOutsideLoop},
		{"continue outside", "int main() { if (1) { continue; } return 0; }", diag.SemaContinueOutsideLoop},
		{"missing return", "int f(int a) { a = 1; }", diag.SemaMissingReturn},
		{"not constant", "int f() { return 1; }\nint g = f();", diag.SemaNotConstant},
		{"division by zero", "enum { Z = 1 / 0 };", diag.SemaDivisionByZero},
		{"nested function", "int main() { int f() { return 1; } return 0; }", diag.SynFnNotAllowed},
		{"missing semicolon", "int main() { return 1 }", diag.SynExpectSemicolon},
		{"unclosed brace", "int main() { return 1;", diag.SynUnclosedBrace},
		{"no expression", "int main() { return ); }", diag.SynExpectExpression},
		{"not assignable", "int main() { 1 = 2; return 0; }", diag.SemaNotAssignable},
		{"not callable", "int main() { int a = 1; return a(); }", diag.SemaNotCallable},
		{"arg count", "int f(int a) { return a; }\nint main() { return f(); }", diag.SemaArgCount},
		{"void value", "void f() { return 1; }", diag.SemaVoidValue},
		{"statement at top level", "x = 1;", diag.SynUnexpectedToken},
		{"reference needs lvalue", "int f(int &r) { return r; }\nint main() { return f(3); }", diag.SemaNotAssignable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag, err := parseSource(t, tt.src)
			if err == nil {
				t.Fatalf("expected %s, got success", tt.code.ID())
			}
			if got := diag.CodeOf(err); got != tt.code {
				t.Fatalf("code = %s, want %s (%v)", got.ID(), tt.code.ID(), err)
			}
			if !bag.HasErrors() {
				t.Fatalf("error was not reported: %s", diagnosticsSummary(bag))
			}
		})
	}
}

func TestNestingTooDeep(t *testing.T) {
	src := "int main() { return " + strings.Repeat("(", 400) + "1" + strings.Repeat(")", 400) + "; }"
	_, _, err := parseSource(t, src)
	if diag.CodeOf(err) != diag.SynNestingTooDeep {
		t.Fatalf("expected nesting error, got %v", err)
	}
}
