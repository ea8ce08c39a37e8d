package driver

import "strconv"

// HexDump renders each byte as unpadded lowercase hex: 0x0a -> "a".
func HexDump(module []byte) []string {
	out := make([]string, len(module))
	for i, b := range module {
		out[i] = strconv.FormatUint(uint64(b), 16)
	}
	return out
}
