package fuzztests

import (
	"path/filepath"
	"testing"

	"momo/internal/testkit"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
)

// addCorpusSeeds добавляет исходники всех end-to-end кейсов и несколько граничных примеров.
func addCorpusSeeds(f *testing.F) {
	f.Helper()
	cases, err := testkit.LoadCases(filepath.Join("..", "driver", "testdata"))
	if err == nil {
		for _, c := range cases {
			f.Add(clampInput([]byte(c.Source)))
		}
	}
	f.Add([]byte{})
	f.Add([]byte("int main() { return 0; }\n"))
	f.Add([]byte("int main() { return 5-3; }"))
	f.Add([]byte("enum { A, B = A + 4, C };"))
	f.Add([]byte("int (*fp)(int) ; void f() { while (1) { break; continue; } }"))
	f.Add([]byte("int main() { int &r; int **p = &r; return *p; }"))
}

func clampInput(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
