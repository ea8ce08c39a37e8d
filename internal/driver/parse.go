package driver

import (
	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/lexer"
	"momo/internal/parser"
	"momo/internal/source"
	"momo/internal/symbols"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Symbols *symbols.Table
	Bag     *diag.Bag
	// Err is the fatal parse error, if any; diagnostics are in Bag.
	Err error
}

// Parse loads and parses a file without generating code. A syntax error is
// not a failure of Parse itself: it is returned in ParseResult.Err.
func Parse(filePath string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(filePath)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	toks := lexer.Scan(file, lexer.Options{Reporter: rep})
	result, parseErr := parser.ParseFile(file, toks, parser.Options{Reporter: rep})

	out := &ParseResult{FileSet: fs, File: file, Bag: bag, Err: parseErr}
	if result != nil {
		out.Builder = result.Builder
		out.Symbols = result.Symbols
	}
	return out, nil
}
