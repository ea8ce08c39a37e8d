package wasm

// Magic and Version open every module.
var (
	Magic   = [4]byte{0x00, 0x61, 0x73, 0x6d}
	Version = [4]byte{0x01, 0x00, 0x00, 0x00}
)

// SectionID identifies a module section.
type SectionID byte

const (
	SectionCustom   SectionID = 0x00
	SectionType     SectionID = 0x01
	SectionImport   SectionID = 0x02
	SectionFunction SectionID = 0x03
	SectionTable    SectionID = 0x04
	SectionMemory   SectionID = 0x05
	SectionGlobal   SectionID = 0x06
	SectionExport   SectionID = 0x07
	SectionStart    SectionID = 0x08
	SectionElement  SectionID = 0x09
	SectionCode     SectionID = 0x0a
	SectionData     SectionID = 0x0b
)

var sectionNames = map[SectionID]string{
	SectionCustom:   "custom",
	SectionType:     "type",
	SectionImport:   "import",
	SectionFunction: "function",
	SectionTable:    "table",
	SectionMemory:   "memory",
	SectionGlobal:   "global",
	SectionExport:   "export",
	SectionStart:    "start",
	SectionElement:  "element",
	SectionCode:     "code",
	SectionData:     "data",
}

func (id SectionID) String() string {
	if name, ok := sectionNames[id]; ok {
		return name
	}
	return "unknown"
}

// Value and constructor types.
const (
	TypeI32     byte = 0x7f
	TypeI64     byte = 0x7e
	TypeF32     byte = 0x7d
	TypeF64     byte = 0x7c
	TypeAnyFunc byte = 0x70
	TypeFunc    byte = 0x60
	TypeEmpty   byte = 0x40 // block without result
)

// External kinds used by exports.
const (
	ExternalFunction byte = 0x00
	ExternalTable    byte = 0x01
	ExternalMemory   byte = 0x02
	ExternalGlobal   byte = 0x03
)

// Opcode is a single-byte instruction.
type Opcode = byte

// Управление потоком
const (
	OpUnreachable  Opcode = 0x00
	OpNop          Opcode = 0x01
	OpBlock        Opcode = 0x02
	OpLoop         Opcode = 0x03
	OpIf           Opcode = 0x04
	OpElse         Opcode = 0x05
	OpEnd          Opcode = 0x0b
	OpBr           Opcode = 0x0c
	OpBrIf         Opcode = 0x0d
	OpBrTable      Opcode = 0x0e
	OpReturn       Opcode = 0x0f
	OpCall         Opcode = 0x10
	OpCallIndirect Opcode = 0x11
	OpDrop         Opcode = 0x1a
	OpSelect       Opcode = 0x1b
)

// Переменные и память
const (
	OpLocalGet  Opcode = 0x20
	OpLocalSet  Opcode = 0x21
	OpLocalTee  Opcode = 0x22
	OpGlobalGet Opcode = 0x23
	OpGlobalSet Opcode = 0x24
	OpI32Load   Opcode = 0x28
	OpI32Store  Opcode = 0x36
	OpI32Const  Opcode = 0x41
)

// i32 arithmetic and comparisons.
const (
	OpI32Eqz  Opcode = 0x45
	OpI32Eq   Opcode = 0x46
	OpI32Ne   Opcode = 0x47
	OpI32LtS  Opcode = 0x48
	OpI32LtU  Opcode = 0x49
	OpI32GtS  Opcode = 0x4a
	OpI32GtU  Opcode = 0x4b
	OpI32LeS  Opcode = 0x4c
	OpI32LeU  Opcode = 0x4d
	OpI32GeS  Opcode = 0x4e
	OpI32GeU  Opcode = 0x4f
	OpI32Clz  Opcode = 0x67
	OpI32Ctz  Opcode = 0x68
	OpI32Add  Opcode = 0x6a
	OpI32Sub  Opcode = 0x6b
	OpI32Mul  Opcode = 0x6c
	OpI32DivS Opcode = 0x6d
	OpI32DivU Opcode = 0x6e
	OpI32RemS Opcode = 0x6f
	OpI32RemU Opcode = 0x70
	OpI32And  Opcode = 0x71
	OpI32Or   Opcode = 0x72
	OpI32Xor  Opcode = 0x73
	OpI32Shl  Opcode = 0x74
	OpI32ShrS Opcode = 0x75
	OpI32ShrU Opcode = 0x76
)

// I32Align is the natural alignment exponent of a 4-byte access.
const I32Align = 2

// PageSize is the size of one linear memory page.
const PageSize = 1 << 16
