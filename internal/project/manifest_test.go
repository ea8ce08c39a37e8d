package project

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.momo"), "int main() { return 0; }\n")
	writeFile(t, filepath.Join(root, ManifestName), "[package]\nname = \"demo\"\n\n[build]\nmain = \"src/main.momo\"\n")

	m, err := LoadManifest(filepath.Join(root, ManifestName))
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q", m.Name)
	}
	if want := filepath.Join(root, "src", "main.momo"); m.Main != want {
		t.Errorf("Main = %q, want %q", m.Main, want)
	}
	if want := filepath.Join(root, "src", "main.wasm"); m.Output != want {
		t.Errorf("Output = %q, want %q", m.Output, want)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		wantMsg string
	}{
		{"no package", "[build]\nmain = \"main.momo\"\n", ErrPackageSectionMissing, ""},
		{"no main", "[package]\nname = \"x\"\n", ErrBuildMainMissing, ""},
		{"escape", "[package]\n[build]\nmain = \"../main.momo\"\n", nil, "escapes project root"},
		{"absolute output", "[package]\n[build]\nmain = \"main.momo\"\noutput = \"/tmp/x.wasm\"\n", nil, "must be relative"},
		{"unknown key", "[package]\nname = \"x\"\nversion = 1\n[build]\nmain = \"main.momo\"\n", nil, "unknown key"},
		{"bad toml", "[package\n", nil, "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, filepath.Join(root, "main.momo"), "int main() { return 0; }\n")
			path := filepath.Join(root, ManifestName)
			writeFile(t, path, tt.content)
			_, err := LoadManifest(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("err = %v, want substring %q", err, tt.wantMsg)
			}
		})
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "main.momo"), "int main() { return 0; }\n")
	writeFile(t, filepath.Join(root, ManifestName), "[package]\n[build]\nmain = \"main.momo\"\noutput = \"build/app.wasm\"\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Discover(nested)
	if err != nil || !ok {
		t.Fatalf("Discover: ok=%v err=%v", ok, err)
	}
	if m.Name != filepath.Base(root) {
		t.Errorf("default name = %q", m.Name)
	}
	if want := filepath.Join(root, "build", "app.wasm"); m.Output != want {
		t.Errorf("Output = %q, want %q", m.Output, want)
	}

	if _, ok, err := Discover(t.TempDir()); ok || err != nil {
		t.Fatalf("empty dir: ok=%v err=%v", ok, err)
	}
}

func TestCombineIsOrderSensitive(t *testing.T) {
	var a, b, c Digest
	a[0], b[0], c[0] = 1, 2, 3
	if Combine(a, b, c) == Combine(a, c, b) {
		t.Fatal("dependency order must change the digest")
	}
	if Combine(a, b) != Combine(a, b) {
		t.Fatal("Combine must be deterministic")
	}
}
