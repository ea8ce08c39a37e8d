package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"fortio.org/safecast"

	"momo/internal/diag"
	"momo/internal/source"
)

func sampleBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	content := []byte("int main() {\n\treturn foo;\n}\n")
	fileID := fs.AddVirtual("/home/user/project/src/main.momo", content)

	bag := diag.NewBag(10)
	start, err := safecast.Conv[uint32](strings.Index(string(content), "foo"))
	if err != nil {
		t.Fatal(err)
	}
	d := diag.New(
		diag.SevError,
		diag.SemaUndefinedSymbol,
		source.Span{File: fileID, Start: start, End: start + 3},
		"undefined symbol foo",
	).WithNote(source.Span{File: fileID, Start: 0, End: 3}, "in function main")
	bag.Add(d)
	return bag, fs
}

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	bag, fs := sampleBag(t)

	tests := []struct {
		name     string
		opts     PrettyOpts
		contains string
	}{
		{"Absolute path", PrettyOpts{PathMode: PathModeAbsolute}, "/home/user/project/src/main.momo:2:9"},
		{"Relative path", PrettyOpts{PathMode: PathModeRelative, BaseDir: "/home/user/project"}, "src/main.momo:2:9"},
		{"Basename only", PrettyOpts{PathMode: PathModeBasename}, "main.momo:2:9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Pretty(&buf, bag, fs, tt.opts); err != nil {
				t.Fatalf("Pretty() error: %v", err)
			}
			first, _, _ := strings.Cut(buf.String(), "\n")
			if !strings.HasPrefix(first, tt.contains) {
				t.Errorf("header %q does not start with %q", first, tt.contains)
			}
		})
	}
}

func TestPrettySnippet(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename, ShowNotes: true}); err != nil {
		t.Fatal(err)
	}
	want := "main.momo:2:9: ERROR SEM3001: undefined symbol foo\n" +
		"  \treturn foo;\n" +
		"  \t       ^~~\n" +
		"  note: main.momo:1:1: in function main\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyColorAndFilter(t *testing.T) {
	bag, fs := sampleBag(t)
	bag.Add(diag.New(diag.SevInfo, diag.GenInfo, source.Span{}, "Store variable x in memory at 0"))

	var plain bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename, MinSeverity: diag.SevWarning}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "Store variable") {
		t.Errorf("info diagnostic must be filtered out:\n%s", plain.String())
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("unexpected escape codes without color")
	}

	var colored bytes.Buffer
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true, PathMode: PathModeBasename}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("expected escape codes with color:\n%q", colored.String())
	}
	if !strings.Contains(colored.String(), "INFO GEN4000") {
		t.Errorf("info diagnostic missing:\n%s", colored.String())
	}
}
