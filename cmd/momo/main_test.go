package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"momo/internal/diag"
	"momo/internal/project"
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

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestOutputNameFromPath(t *testing.T) {
	cases := map[string]string{
		"main.momo":          "main.wasm",
		"dir/prog.momo":      "dir/prog.wasm",
		"noext":              "noext.wasm",
		"a.b/with.dots.momo": "a.b/with.dots.wasm",
	}
	for in, want := range cases {
		if got := outputNameFromPath(in); got != want {
			t.Errorf("outputNameFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolveBuildTargetFromManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "src", "main.momo"), "int main() { return 1; }\n")
	writeFile(t, filepath.Join(root, project.ManifestName),
		"[package]\nname = \"demo\"\n\n[build]\nmain = \"src/main.momo\"\noutput = \"out/demo.wasm\"\n")

	target, err := resolveBuildTarget(nil, "", filepath.Join(root, "src"))
	if err != nil {
		t.Fatalf("resolveBuildTarget: %v", err)
	}
	if want := filepath.Join(root, "src", "main.momo"); target.input != want {
		t.Errorf("input = %q, want %q", target.input, want)
	}
	if want := filepath.Join(root, "out", "demo.wasm"); target.output != want {
		t.Errorf("output = %q, want %q", target.output, want)
	}

	target, err = resolveBuildTarget([]string{"x.momo"}, "", root)
	if err != nil || target.output != "x.wasm" {
		t.Errorf("explicit file: %+v, %v", target, err)
	}

	if _, err := resolveBuildTarget(nil, "", t.TempDir()); err == nil {
		t.Error("expected an error without a manifest")
	}
}

func TestResolveBuildTargetInvalidManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.ManifestName), "[package]\nname = \"demo\"\n")

	_, err := resolveBuildTarget(nil, "", root)
	if got := diag.CodeOf(err); got != diag.ProjInvalidConfig {
		t.Fatalf("code = %s (err %v), want %s", got.ID(), err, diag.ProjInvalidConfig.ID())
	}
	if !strings.Contains(err.Error(), "[build].main") {
		t.Errorf("error %q should name the missing key", err)
	}
}

func TestBuildAndRunCommands(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.momo")
	writeFile(t, src, "int g = 40;\nint main() { g += 2; return g; }\n")

	out, err := execute(t, "run", "--no-cache", src)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "42\n" {
		t.Errorf("run output = %q, want 42", out)
	}

	wasmPath := filepath.Join(dir, "out.wasm")
	out, err = execute(t, "build", "--no-cache", "--dump", "-o", wasmPath, src)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.HasPrefix(out, "0 61 73 6d 1 0 0 0") {
		t.Errorf("dump does not start with the module header: %q", out)
	}
	data, err := os.ReadFile(wasmPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0x00, 0x61, 0x73, 0x6d}) {
		t.Errorf("written file is not a wasm module")
	}
}

func TestRunReportsCompileError(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bad.momo")
	writeFile(t, src, "int main() { return missing; }\n")

	_, err := execute(t, "run", "--no-cache", src)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !isReported(err) {
		t.Errorf("compile errors must be marked as already reported: %v", err)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.momo"), "int main() { return 0; }\n")
	writeFile(t, filepath.Join(dir, "nested", "bad.momo"), "int main() { return missing; }\n")

	out, err := execute(t, "check", "--quiet=false", dir)
	if err == nil || !isReported(err) {
		t.Fatalf("expected a reported failure, got %v", err)
	}
	if !strings.Contains(out, "good.momo") {
		t.Errorf("good file not listed: %q", out)
	}
	if strings.Contains(out, "bad.momo") {
		t.Errorf("failed file must not be listed as ok: %q", out)
	}
}
