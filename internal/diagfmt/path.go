package diagfmt

import (
	"fmt"
	"path/filepath"

	"momo/internal/source"
)

// formatPath renders the path of file id according to mode.
func formatPath(fs *source.FileSet, id source.FileID, mode PathMode, base string) string {
	if fs == nil || int(id) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		if f.Flags&source.FileVirtual != 0 {
			return f.Path
		}
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
	case PathModeRelative:
		if base != "" {
			if rel, err := filepath.Rel(base, f.Path); err == nil {
				return filepath.ToSlash(rel)
			}
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAuto:
		return f.DisplayPath()
	}
	return f.Path
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil || int(span.File) >= fs.Len() {
		return span.String()
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
