package testkit

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"momo/internal/lexer"
	"momo/internal/parser"
	"momo/internal/source"
)

const sample = "# Arithmetic\n\n" +
	"Intro text.\n\n" +
	"## Test: precedence\n\n" +
	"```momo\nint main() { return 1 + 2 * 3; }\n```\n\n" +
	"```result\n7\n```\n\n" +
	"## Test: memory\n\n" +
	"```momo\nint main() { int a = 5; return a; }\n```\n\n" +
	"```memory\n0: 5\n```\n\n" +
	"```log\nStore variable a in memory at 0\n```\n\n" +
	"## Test: broken\n\n" +
	"```momo\nint f();\nint main() { return f(); }\n```\n\n" +
	"```error\nGEN4003\n```\n"

func TestExtractCases(t *testing.T) {
	cases, err := ExtractCases("sample.md", []byte(sample))
	be.Err(t, err, nil)
	be.Equal(t, len(cases), 3)

	be.Equal(t, cases[0].Name, "precedence")
	be.Equal(t, *cases[0].Result, int32(7))
	be.Equal(t, cases[0].Line, 5)

	be.Equal(t, cases[1].Memory, []Word{{Offset: 0, Value: 5}})
	be.Equal(t, cases[1].Logs, []string{"Store variable a in memory at 0"})

	be.Equal(t, cases[2].ErrorCode, "GEN4003")
	be.True(t, strings.Contains(cases[2].Source, "int f();"))
}

func TestExtractCasesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"fence outside", "```momo\nint x;\n```\n", "outside of a test"},
		{"unknown fence", "## Test: a\n```momo\nint x;\n```\n```wat\n```\n", "unknown fence"},
		{"no source", "## Test: a\n```result\n1\n```\n", "no momo fence"},
		{"no expectations", "## Test: a\n```momo\nint x;\n```\n", "no expectations"},
		{"bad result", "## Test: a\n```momo\nint x;\n```\n```result\nseven\n```\n", "bad result"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractCases("x.md", []byte(tt.doc))
			be.Err(t, err, tt.want)
		})
	}
}

func TestSpanInvariants(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("spans.momo", []byte("int g = 1;\nenum { A, B };\nint f(int x);\nint main() {\n\tint y = g;\n\treturn y + f(A);\n}\nint f(int x) { return x; }\n")))
	res, err := parser.ParseFile(file, lexer.Scan(file, lexer.Options{}), parser.Options{})
	be.Err(t, err, nil)
	be.Err(t, CheckSpanInvariants(res.Builder, file), nil)
}
