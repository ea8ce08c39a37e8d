package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"momo/internal/diag"
	"momo/internal/testkit"
	"momo/internal/wasm"
)

func TestMarkdownCases(t *testing.T) {
	cases, err := testkit.LoadCases("testdata")
	be.Err(t, err, nil)
	be.True(t, len(cases) > 0)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			bag := diag.NewBag(0)
			res, err := Compile(context.Background(), []byte(tc.Source), tc.Name+".momo", Options{
				Reporter: diag.BagReporter{Bag: bag},
				Execute:  tc.ErrorCode == "",
			})

			if tc.ErrorCode != "" {
				if err == nil {
					t.Fatalf("%s:%d: expected %s, compiled fine", tc.File, tc.Line, tc.ErrorCode)
				}
				be.Equal(t, diag.CodeOf(err).ID(), tc.ErrorCode)
				return
			}
			if err != nil {
				t.Fatalf("%s:%d: %v\n%s", tc.File, tc.Line, err, diag.FormatShortDiagnostics(bag.Items(), res.FileSet, true))
			}
			if tc.Result != nil {
				be.True(t, res.Exec.HasValue)
				be.Equal(t, res.Exec.Value, *tc.Result)
			}
			for _, w := range tc.Memory {
				got, ok := res.Exec.Word(w.Offset)
				be.True(t, ok)
				be.Equal(t, got, w.Value)
			}
			for _, want := range tc.Logs {
				be.True(t, hasInfo(bag, want))
			}
		})
	}
}

func hasInfo(bag *diag.Bag, substr string) bool {
	for _, d := range bag.Items() {
		if d.Severity == diag.SevInfo && strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

func TestHexDump(t *testing.T) {
	be.Equal(t, HexDump([]byte{0x00, 0x61, 0x0a, 0xff}), []string{"0", "61", "a", "ff"})
	be.Equal(t, len(HexDump(nil)), 0)
}

func TestCompileProducesHeaderAndDump(t *testing.T) {
	res, err := Compile(context.Background(), []byte("int main() { return 0; }"), "min.momo", Options{})
	be.Err(t, err, nil)
	be.Equal(t, res.Bytes[:4], wasm.Magic[:])
	be.Equal(t, res.Dump[:8], []string{"0", "61", "73", "6d", "1", "0", "0", "0"})
	be.Equal(t, res.Exec == nil, true)
}

func TestCompileTimings(t *testing.T) {
	bag := diag.NewBag(0)
	res, err := Compile(context.Background(), []byte("int main() { return 2; }"), "t.momo", Options{
		Reporter:      diag.BagReporter{Bag: bag},
		EnableTimings: true,
		Execute:       true,
	})
	be.Err(t, err, nil)
	be.True(t, res.Timings != nil)
	var names []string
	for _, p := range res.Timings.Phases {
		names = append(names, p.Name)
	}
	be.Equal(t, names, []string{"lex", "parse", "codegen", "execute"})
	be.Equal(t, res.Timings.Phases[0].Items, len(res.Tokens))
	be.Equal(t, res.Timings.Phases[1].Items, 1)
	be.Equal(t, res.Timings.Phases[2].Items, len(res.Bytes))

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.ObsTimings {
			found = true
			be.Equal(t, len(d.Notes), 1)
			be.True(t, strings.Contains(d.Notes[0].Msg, `"phases"`))
		}
	}
	be.True(t, found)
}

func TestCompileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Compile(ctx, []byte("int main() { return 0; }"), "c.momo", Options{})
	be.Err(t, err, context.Canceled)
}

func TestCompileFileMissing(t *testing.T) {
	_, err := CompileFile(context.Background(), filepath.Join(t.TempDir(), "nope.momo"), Options{})
	be.Equal(t, diag.CodeOf(err), diag.IOLoadFileError)
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	be.Err(t, err, nil)

	src := []byte("int main() { return 5; }")
	first, err := Compile(context.Background(), src, "a.momo", Options{Cache: cache})
	be.Err(t, err, nil)
	be.Equal(t, first.CacheHit, false)

	// путь не входит в ключ: тот же исходник под другим именем
	second, err := Compile(context.Background(), src, "b.momo", Options{Cache: cache, Execute: true})
	be.Err(t, err, nil)
	be.True(t, second.CacheHit)
	be.Equal(t, second.Bytes, first.Bytes)
	be.Equal(t, second.Exec.Value, int32(5))

	var payload DiskPayload
	hit, err := cache.Get(cacheKey(first.File), &payload)
	be.Err(t, err, nil)
	be.True(t, hit)
	be.True(t, payload.Valid())
	be.Equal(t, payload.Path, "a.momo")

	be.Err(t, cache.DropAll(), nil)
	hit, err = cache.Get(cacheKey(first.File), &payload)
	be.Err(t, err, nil)
	be.Equal(t, hit, false)
}

func TestCompileDir(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"a.momo":        "int main() { return 1; }",
		"b.momo":        "int main() { return undefined; }",
		"nested/c.momo": "int main() { return 3; }",
		"notes.txt":     "ignored",
	}
	for name, content := range files {
		p := filepath.Join(dir, name)
		be.Err(t, os.MkdirAll(filepath.Dir(p), 0o755), nil)
		be.Err(t, os.WriteFile(p, []byte(content), 0o600), nil)
	}

	results, err := CompileDir(context.Background(), dir, Options{Execute: true}, 0, 2)
	be.Err(t, err, nil)
	be.Equal(t, len(results), 3)

	be.Equal(t, filepath.Base(results[0].Path), "a.momo")
	be.Err(t, results[0].Err, nil)
	be.Equal(t, results[0].Result.Exec.Value, int32(1))

	be.Equal(t, diag.CodeOf(results[1].Err), diag.SemaUndefinedSymbol)
	be.True(t, results[1].Bag.HasErrors())

	be.Equal(t, results[2].Result.Exec.Value, int32(3))
}

func TestTokenizeAndParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.momo")
	be.Err(t, os.WriteFile(path, []byte("int main() { return 1 }"), 0o600), nil)

	tok, err := Tokenize(path, 0)
	be.Err(t, err, nil)
	be.True(t, len(tok.Tokens) > 0)

	parsed, err := Parse(path, 0)
	be.Err(t, err, nil)
	be.Equal(t, diag.CodeOf(parsed.Err), diag.SynExpectSemicolon)
	be.True(t, parsed.Bag.HasErrors())
}

func TestCompileGrowsMemoryPastOnePage(t *testing.T) {
	const n = 16400 // 4-байтовых слотов больше, чем помещается в страницу
	var sb strings.Builder
	sb.WriteString("int main() {\n")
	for i := range n {
		fmt.Fprintf(&sb, "\tint v%d = %d;\n", i, i)
	}
	fmt.Fprintf(&sb, "\treturn v%d;\n}\n", n-1)

	res, err := Compile(context.Background(), []byte(sb.String()), "big.momo", Options{Execute: true})
	be.Err(t, err, nil)
	be.Equal(t, res.Exec.Value, int32(n-1))

	secs, err := wasm.Sections(res.Bytes)
	be.Err(t, err, nil)
	for _, s := range secs {
		if s.ID != wasm.SectionMemory {
			continue
		}
		pages, _, err := wasm.ReadULEB128(s.Payload[2:])
		be.Err(t, err, nil)
		be.Equal(t, pages, uint32(2))
	}
}

func TestDiskCacheReplaysStorageLogs(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	be.Err(t, err, nil)
	src := []byte("int main() { int a = 1; int *p = &a; int &r = a; return *p + r; }")

	logs := func() []string {
		bag := diag.NewBag(0)
		_, err := Compile(context.Background(), src, "logs.momo", Options{
			Reporter: diag.BagReporter{Bag: bag},
			Cache:    cache,
		})
		be.Err(t, err, nil)
		var out []string
		for _, d := range bag.Items() {
			if d.Code == diag.GenInfo {
				out = append(out, d.Message)
			}
		}
		return out
	}

	first := logs()
	be.Equal(t, first, []string{
		"Store variable a in memory at 0",
		"Store pointer variable p in memory at 4",
		"Store alias r in memory at 8",
	})
	be.Equal(t, logs(), first)
}
