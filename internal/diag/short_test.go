package diag

import (
	"testing"

	"momo/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("testdata/sample.momo", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     SemaUndefinedSymbol,
			Message:  "undefined\nsymbol 'b'",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		NewError(SynUnexpectedToken, source.Span{File: file, Start: 0, End: 1}, "first").
			WithNote(source.Span{File: file, Start: 2, End: 2}, "note line"),
	}

	expected := "error SYN2001 testdata/sample.momo:1:1 first\n" +
		"error SEM3001 testdata/sample.momo:2:1 undefined symbol 'b'\n" +
		"note SYN2001 testdata/sample.momo:2:1 note line"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestErrorCarriesCode(t *testing.T) {
	err := AsError(NewError(SemaRedefinition, source.Span{}, "redefinition of 'f'"))
	if CodeOf(err) != SemaRedefinition {
		t.Fatalf("CodeOf = %v", CodeOf(err))
	}
	if err.Error() != "SEM3004: redefinition of 'f'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestBagLimitAndFirstError(t *testing.T) {
	bag := NewBag(2)
	r := BagReporter{Bag: bag}
	r.Report(LexInfo, SevInfo, source.Span{}, "log", nil)
	r.Report(SemaArgCount, SevError, source.Span{}, "args", nil)
	r.Report(SemaVoidValue, SevError, source.Span{}, "dropped", nil)

	if bag.Len() != 2 {
		t.Fatalf("expected limit of 2, got %d", bag.Len())
	}
	d, ok := bag.FirstError()
	if !ok || d.Code != SemaArgCount {
		t.Fatalf("unexpected first error %+v", d)
	}
	if bag.Filter(SevError).Len() != 1 {
		t.Fatal("Filter must drop info diagnostics")
	}
}
