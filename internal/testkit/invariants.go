package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"momo/internal/ast"
	"momo/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) every top-level statement span is non-empty and within file content bounds
// 2) top-level spans appear in source order and do not overlap
// 3) statements of a function body lie inside the function's span
func CheckSpanInvariants(b *ast.Builder, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd uint32
	for i, id := range b.Program.Stmts {
		st := b.Stmts.Get(id)
		if st == nil {
			return fmt.Errorf("nil statement for id=%d", id)
		}
		sp := st.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", st.Kind, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", st.Kind, sp.File, sf.ID)
		}
		if sp.End > lenContent {
			return fmt.Errorf("%s span end beyond content: %d > %d", st.Kind, sp.End, lenContent)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("%s span %v overlaps the previous declaration", st.Kind, sp)
		}
		prevEnd = sp.End

		fn, ok := b.Stmts.Fn(id)
		if !ok || fn.IsPrototype() {
			continue
		}
		body, ok := b.Stmts.Block(fn.Body)
		if !ok {
			return fmt.Errorf("function %s has no body block", fn.Name)
		}
		for _, inner := range body.Stmts {
			isp := b.Stmts.Get(inner).Span
			if isp.Start < sp.Start || isp.End > sp.End {
				return fmt.Errorf("statement span %v is outside function %s span %v", isp, fn.Name, sp)
			}
		}
	}
	return nil
}
