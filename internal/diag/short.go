package diag

import (
	"fmt"
	"sort"
	"strings"

	"momo/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one line per entry:
//
//	error SYN2001 main.momo:1:5 unexpected token
//
// Entries are sorted by position so the output is stable for golden tests.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		rendered = append(rendered, renderShort(fs, d.Primary, strings.ToLower(d.Severity.String()), d.Code, d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			rendered = append(rendered, renderShort(fs, n.Span, "note", d.Code, n.Msg))
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		return di.Column < dj.Column
	})

	lines := make([]string, 0, len(rendered))
	for _, r := range rendered {
		lines = append(lines, fmt.Sprintf("%s %s %s:%d:%d %s", r.Severity, r.Code, r.Path, r.Line, r.Column, r.Message))
	}
	return strings.Join(lines, "\n")
}

func renderShort(fs *source.FileSet, sp source.Span, sev string, code Code, msg string) shortDiagnostic {
	out := shortDiagnostic{
		Severity: sev,
		Code:     code.ID(),
		Message:  strings.Join(strings.Fields(msg), " "),
	}
	if int(sp.File) < fs.Len() {
		f := fs.Get(sp.File)
		pos := fs.Position(sp.File, sp.Start)
		out.Path, out.Line, out.Column = f.Path, pos.Line, pos.Col
	}
	return out
}
