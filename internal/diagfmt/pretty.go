package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"momo/internal/diag"
	"momo/internal/source"
)

type palette struct {
	sev  map[diag.Severity]*color.Color
	path *color.Color
	mark *color.Color
	note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevInfo:    color.New(color.FgCyan),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevError:   color.New(color.FgRed, color.Bold),
		},
		path: color.New(color.Bold),
		mark: color.New(color.FgGreen, color.Bold),
		note: color.New(color.FgBlue),
	}
	all := []*color.Color{p.path, p.mark, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if !d.Severity.AtLeast(opts.MinSeverity) {
			continue
		}
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	sev := pal.sev[d.Severity]
	if sev == nil {
		sev = pal.path
	}
	loc := location(fs, d.Primary, opts)
	if _, err := fmt.Fprintf(w, "%s: %s: %s\n",
		pal.path.Sprint(loc), sev.Sprintf("%s %s", d.Severity, d.Code.ID()), d.Message); err != nil {
		return err
	}
	// логи фаз не указывают на код
	if d.Severity != diag.SevInfo {
		if err := writeSnippet(w, fs, d.Primary, pal); err != nil {
			return err
		}
	}
	if !opts.ShowNotes {
		return nil
	}
	for _, n := range d.Notes {
		if _, err := fmt.Fprintf(w, "  %s %s: %s\n",
			pal.note.Sprint("note:"), location(fs, n.Span, opts), n.Msg); err != nil {
			return err
		}
	}
	return nil
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	path := formatPath(fs, sp.File, opts.PathMode, opts.BaseDir)
	if fs == nil || int(sp.File) >= fs.Len() {
		return path
	}
	pos := fs.Position(sp.File, sp.Start)
	return fmt.Sprintf("%s:%d:%d", path, pos.Line, pos.Col)
}

func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, pal palette) error {
	if fs == nil || int(sp.File) >= fs.Len() {
		return nil
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" {
		return nil
	}
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		width = int(end.Col - start.Col)
	}
	// табы сохраняем, чтобы каретка совпала со строкой
	var pad strings.Builder
	for i := 0; i < int(start.Col)-1 && i < len(line); i++ {
		if line[i] == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	under := "^" + strings.Repeat("~", width-1)
	_, err := fmt.Fprintf(w, "  %s\n  %s%s\n", line, pad.String(), pal.mark.Sprint(under))
	return err
}
