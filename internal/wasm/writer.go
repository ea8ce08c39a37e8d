package wasm

import (
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"
)

// PatchWidth is the number of bytes reserved by ReserveULEB128; enough for
// any uint32.
const PatchWidth = 5

// Writer is an append-only byte buffer for module encoding.
type Writer struct {
	buf []byte
}

// NewWriter returns a writer with capHint bytes preallocated.
func NewWriter(capHint int) *Writer {
	return &Writer{buf: make([]byte, 0, capHint)}
}

// Bytes returns the encoded bytes. The slice aliases the writer's storage.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the number of bytes written so far.
func (w *Writer) Len() uint32 {
	n, err := safecast.Conv[uint32](len(w.buf))
	if err != nil {
		panic(fmt.Errorf("module too large: %w", err))
	}
	return n
}

func (w *Writer) U8(b byte) { w.buf = append(w.buf, b) }

func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }

func (w *Writer) U16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

func (w *Writer) U32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

// ULEB128 appends v in unsigned LEB128 with the minimal number of groups.
func (w *Writer) ULEB128(v uint32) {
	w.buf = AppendULEB128(w.buf, v)
}

// LEB128 appends v in signed LEB128 with the minimal number of groups.
func (w *Writer) LEB128(v int32) {
	w.buf = AppendLEB128(w.buf, v)
}

// Name appends a length-prefixed byte string.
func (w *Writer) Name(s string) {
	n, err := safecast.Conv[uint32](len(s))
	if err != nil {
		panic(fmt.Errorf("name too long: %w", err))
	}
	w.ULEB128(n)
	w.buf = append(w.buf, s...)
}

// Patch is a reserved ULEB128 placeholder. Offset is the buffer length right
// after the placeholder, so "bytes written since" is Len() - Offset.
type Patch struct {
	w      *Writer
	Offset uint32
}

// ReserveULEB128 appends a PatchWidth-byte placeholder and returns its handle.
func (w *Writer) ReserveULEB128() Patch {
	w.buf = appendPaddedULEB128(w.buf, ^uint32(0))
	return Patch{w: w, Offset: w.Len()}
}

// Set re-encodes v into the reserved bytes, padding with continuation bytes.
// The append below writes in place: the reserved bytes are within capacity.
func (p Patch) Set(v uint32) {
	start := p.Offset - PatchWidth
	appendPaddedULEB128(p.w.buf[start:start], v)
}

// SetSince patches the number of bytes written after the placeholder.
func (p Patch) SetSince() {
	p.Set(p.w.Len() - p.Offset)
}

// AppendULEB128 appends the minimal unsigned encoding of v to dst.
func AppendULEB128(dst []byte, v uint32) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v&0x7f)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// AppendLEB128 appends the minimal signed encoding of v to dst.
func AppendLEB128(dst []byte, v int32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

// appendPaddedULEB128 writes exactly PatchWidth bytes.
func appendPaddedULEB128(dst []byte, v uint32) []byte {
	for i := range PatchWidth {
		b := byte(v & 0x7f)
		v >>= 7
		if i < PatchWidth-1 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}
