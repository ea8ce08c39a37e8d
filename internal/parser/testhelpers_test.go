package parser

import (
	"fmt"
	"strings"
	"testing"

	"momo/internal/diag"
	"momo/internal/lexer"
	"momo/internal/source"
)

func parseSource(t *testing.T, src string) (*Result, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.momo", []byte(src))
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Scan(fs.Get(id), lexer.Options{Reporter: rep})
	res, err := ParseFile(fs.Get(id), toks, Options{Reporter: rep})
	return res, bag, err
}

func mustParse(t *testing.T, src string) *Result {
	t.Helper()
	res, bag, err := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v (%s)", err, diagnosticsSummary(bag))
	}
	return res
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}
