package wasm

import (
	"errors"
	"fmt"
)

var (
	ErrTruncated = errors.New("wasm: truncated input")
	ErrOverflow  = errors.New("wasm: integer overflows 32 bits")
	ErrBadHeader = errors.New("wasm: bad magic or version")
)

// ReadULEB128 decodes an unsigned value and returns it with the number of bytes consumed.
func ReadULEB128(b []byte) (uint32, int, error) {
	var result uint32
	var shift uint
	for i, c := range b {
		if shift >= 35 {
			return 0, 0, ErrOverflow
		}
		result |= uint32(c&0x7f) << shift
		if c&0x80 == 0 {
			if shift == 28 && c > 0x0f {
				return 0, 0, ErrOverflow
			}
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrTruncated
}

// ReadLEB128 decodes a signed value and returns it with the number of bytes consumed.
func ReadLEB128(b []byte) (int32, int, error) {
	var result int64
	var shift uint
	for i, c := range b {
		if shift >= 35 {
			return 0, 0, ErrOverflow
		}
		result |= int64(c&0x7f) << shift
		shift += 7
		if c&0x80 == 0 {
			if shift < 64 && c&0x40 != 0 {
				result |= -1 << shift
			}
			if result < -1<<31 || result > 1<<31-1 {
				return 0, 0, ErrOverflow
			}
			return int32(result), i + 1, nil
		}
	}
	return 0, 0, ErrTruncated
}

// Section is one framed section of an encoded module.
type Section struct {
	ID      SectionID
	Offset  int // offset of the id byte
	Payload []byte
}

// Sections splits an encoded module into its sections.
func Sections(module []byte) ([]Section, error) {
	if len(module) < 8 || [4]byte(module[:4]) != Magic || [4]byte(module[4:8]) != Version {
		return nil, ErrBadHeader
	}
	var out []Section
	for off := 8; off < len(module); {
		id := SectionID(module[off])
		size, n, err := ReadULEB128(module[off+1:])
		if err != nil {
			return nil, fmt.Errorf("section at %d: %w", off, err)
		}
		start := off + 1 + n
		end := start + int(size)
		if end > len(module) {
			return nil, fmt.Errorf("section %s at %d: %w", id, off, ErrTruncated)
		}
		out = append(out, Section{ID: id, Offset: off, Payload: module[start:end]})
		off = end
	}
	return out, nil
}
