package diag

import (
	"errors"
	"fmt"
	"testing"

	"momo/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	if !b.Add(New(SevInfo, GenInfo, source.Span{}, "Store variable x in memory at 0")) {
		t.Fatal("first add rejected")
	}
	if b.HasErrors() {
		t.Fatal("info must not count as error")
	}
	b.Add(NewError(SemaUndefinedSymbol, source.Span{Start: 4, End: 5}, "undefined symbol y"))
	if b.Add(NewError(SynExpectSemicolon, source.Span{}, "dropped")) {
		t.Fatal("limit not enforced")
	}
	if !b.HasErrors() || b.Len() != 2 {
		t.Fatalf("HasErrors=%v Len=%d", b.HasErrors(), b.Len())
	}
	first, ok := b.FirstError()
	if !ok || first.Code != SemaUndefinedSymbol {
		t.Fatalf("FirstError = %v, %v", first.Code, ok)
	}
	if got := b.Filter(SevError).Len(); got != 1 {
		t.Errorf("Filter(SevError).Len() = %d, want 1", got)
	}
}

func TestBagSort(t *testing.T) {
	b := NewBag(0)
	b.Add(NewError(GenUndefinedFunction, source.Span{Start: 9, End: 10}, "late"))
	b.Add(New(SevInfo, GenInfo, source.Span{Start: 1, End: 2}, "log"))
	b.Add(NewError(SemaArgCount, source.Span{Start: 1, End: 2}, "same span, error first"))
	b.Sort()
	var got []Code
	for _, d := range b.Items() {
		got = append(got, d.Code)
	}
	want := []Code{SemaArgCount, GenInfo, GenUndefinedFunction}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestCodeIDsAndErrors(t *testing.T) {
	tests := []struct {
		code Code
		id   string
	}{
		{LexLenientLiteral, "LEX1001"},
		{SynNestingTooDeep, "SYN2006"},
		{SemaVoidValue, "SEM3014"},
		{GenAddressOfGlobal, "GEN4004"},
		{IOLoadFileError, "IO5001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
	}

	err := fmt.Errorf("wrapped: %w", AsError(NewError(GenNotAddressable, source.Span{}, "cannot take address")))
	if CodeOf(err) != GenNotAddressable {
		t.Errorf("CodeOf lost the code through wrapping")
	}
	if CodeOf(errors.New("plain")) != UnknownCode {
		t.Errorf("plain errors carry no code")
	}
	if !SevError.AtLeast(SevWarning) || SevInfo.AtLeast(SevWarning) {
		t.Errorf("AtLeast ordering broken")
	}
}
