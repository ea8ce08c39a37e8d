package wasm

import (
	"bytes"
	"math"
	"testing"

	"github.com/nalgeon/be"
)

func TestULEB128(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    uint32
		expected []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
		{16384, []byte{0x80, 0x80, 0x01}},
		{math.MaxUint32, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}

	for _, test := range tests {
		w := NewWriter(0)
		w.ULEB128(test.input)
		be.True(t, bytes.Equal(w.Bytes(), test.expected))
	}
}

func TestLEB128(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    int32
		expected []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{-1, []byte{0x7F}},
		{63, []byte{0x3F}},
		{64, []byte{0xC0, 0x00}},
		{127, []byte{0xFF, 0x00}},
		{-128, []byte{0x80, 0x7F}},
		{128, []byte{0x80, 0x01}},
		{-129, []byte{0xFF, 0x7E}},
		{math.MinInt32, []byte{0x80, 0x80, 0x80, 0x80, 0x78}},
	}

	for _, test := range tests {
		w := NewWriter(0)
		w.LEB128(test.input)
		be.True(t, bytes.Equal(w.Bytes(), test.expected))
	}
}

// minimalUnsignedLen is the number of 7-bit groups needed for v.
func minimalUnsignedLen(v uint32) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

func TestLEBRoundTrip(t *testing.T) {
	t.Parallel()
	unsigned := []uint32{0, 1, 63, 64, 127, 128, 255, 256, 1 << 14, 1<<21 - 1, 1 << 21, 1 << 28, math.MaxUint32 - 1, math.MaxUint32}
	for _, v := range unsigned {
		enc := AppendULEB128(nil, v)
		got, n, err := ReadULEB128(enc)
		be.Err(t, err, nil)
		be.Equal(t, got, v)
		be.Equal(t, n, len(enc))
		be.Equal(t, len(enc), minimalUnsignedLen(v))
	}

	signed := []int32{0, 1, -1, 63, -64, 64, -65, 8191, -8192, 8192, 1 << 20, -(1 << 20), math.MaxInt32, math.MinInt32}
	for _, v := range signed {
		enc := AppendLEB128(nil, v)
		got, n, err := ReadLEB128(enc)
		be.Err(t, err, nil)
		be.Equal(t, got, v)
		be.Equal(t, n, len(enc))
		if len(enc) > 1 {
			// старший байт без продолжения не должен быть избыточным
			shorter := append([]byte{}, enc[:len(enc)-1]...)
			shorter[len(shorter)-1] &^= 0x80
			if back, _, err := ReadLEB128(shorter); err == nil {
				be.True(t, back != v)
			}
		}
	}
}

func TestReadTruncated(t *testing.T) {
	t.Parallel()
	_, _, err := ReadULEB128([]byte{0x80, 0x80})
	be.Err(t, err, ErrTruncated)
	_, _, err = ReadLEB128(nil)
	be.Err(t, err, ErrTruncated)
	_, _, err = ReadULEB128([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x1F})
	be.Err(t, err, ErrOverflow)
}

func TestPatchIdempotence(t *testing.T) {
	t.Parallel()
	for _, v := range []uint32{0, 1, 127, 128, 70000, math.MaxUint32} {
		late := NewWriter(0)
		late.U8(0xAA)
		p := late.ReserveULEB128()
		late.U8(0xBB)
		p.Set(v)
		p.Set(v) // повторный патч не меняет результат

		early := NewWriter(0)
		early.U8(0xAA)
		early.Raw(appendPaddedULEB128(nil, v))
		early.U8(0xBB)

		be.True(t, bytes.Equal(late.Bytes(), early.Bytes()))
		got, n, err := ReadULEB128(late.Bytes()[1:])
		be.Err(t, err, nil)
		be.Equal(t, n, PatchWidth)
		be.Equal(t, got, v)
	}
}

func TestPatchSetSince(t *testing.T) {
	t.Parallel()
	w := NewWriter(0)
	p := w.ReserveULEB128()
	be.Equal(t, p.Offset, uint32(PatchWidth))
	w.Raw([]byte{1, 2, 3})
	p.SetSince()
	be.True(t, bytes.Equal(w.Bytes()[:PatchWidth], []byte{0x83, 0x80, 0x80, 0x80, 0x00}))
}

func TestFixedWidthAndName(t *testing.T) {
	t.Parallel()
	w := NewWriter(0)
	w.U16(0x0102)
	w.U32(0x03040506)
	w.Name("main")
	be.True(t, bytes.Equal(w.Bytes(), []byte{0x02, 0x01, 0x06, 0x05, 0x04, 0x03, 4, 'm', 'a', 'i', 'n'}))
}

func TestSections(t *testing.T) {
	t.Parallel()
	w := NewWriter(0)
	w.Raw(Magic[:])
	w.Raw(Version[:])
	w.U8(byte(SectionType))
	size := w.ReserveULEB128()
	w.Raw([]byte{0x00})
	size.SetSince()
	w.U8(byte(SectionMemory))
	w.ULEB128(3)
	w.Raw([]byte{1, 0, 1})

	secs, err := Sections(w.Bytes())
	be.Err(t, err, nil)
	be.Equal(t, len(secs), 2)
	be.Equal(t, secs[0].ID, SectionType)
	be.Equal(t, secs[1].ID, SectionMemory)
	be.True(t, bytes.Equal(secs[1].Payload, []byte{1, 0, 1}))

	_, err = Sections([]byte{0, 1, 2})
	be.Err(t, err, ErrBadHeader)
}
