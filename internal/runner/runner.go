// Package runner executes compiled modules in an embedded wazero runtime.
package runner

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"momo/internal/wasm"
)

// ErrNoEntry is returned when the module does not export the requested function.
var ErrNoEntry = errors.New("runner: entry function not exported")

// Result is the outcome of one entry call.
type Result struct {
	Value    int32
	HasValue bool
	// Memory is a copy of the first page of linear memory after the call.
	Memory []byte
}

// Run instantiates module and calls entry with no arguments.
func Run(ctx context.Context, module []byte, entry string) (*Result, error) {
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, module)
	if err != nil {
		return nil, fmt.Errorf("compile module: %w", err)
	}
	inst, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		return nil, fmt.Errorf("instantiate module: %w", err)
	}
	defer inst.Close(ctx)

	fn := inst.ExportedFunction(entry)
	if fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoEntry, entry)
	}
	if n := len(fn.Definition().ParamTypes()); n != 0 {
		return nil, fmt.Errorf("runner: %s takes %d parameters, want none", entry, n)
	}
	results, err := fn.Call(ctx)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", entry, err)
	}

	res := &Result{}
	if len(results) > 0 {
		res.Value = api.DecodeI32(results[0])
		res.HasValue = true
	}
	if mem := inst.ExportedMemory("memory"); mem != nil {
		if page, ok := mem.Read(0, min(mem.Size(), wasm.PageSize)); ok {
			res.Memory = append([]byte(nil), page...)
		}
	}
	return res, nil
}

// Word reads the little-endian i32 stored at off in the memory snapshot.
func (r *Result) Word(off uint32) (int32, bool) {
	if r == nil || uint64(off)+4 > uint64(len(r.Memory)) {
		return 0, false
	}
	return api.DecodeI32(uint64(binary.LittleEndian.Uint32(r.Memory[off:]))), true
}

// FormatMemory renders the first n words of the snapshot, one per line.
func (r *Result) FormatMemory(n int) string {
	var (
		sb  strings.Builder
		off uint32
	)
	for range n {
		v, ok := r.Word(off)
		if !ok {
			break
		}
		fmt.Fprintf(&sb, "%04x: %d\n", off, v)
		off += 4
	}
	return sb.String()
}
