package lexer

import (
	"momo/internal/source"
	"momo/internal/token"
)

// Lexer turns one source file into tokens. It is single-use: once the input
// is exhausted every further Next reports ok=false.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	line   uint32
	col    uint32 // column of the byte under the cursor, 1-based
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		line:   1,
		col:    1,
	}
}

// Scan tokenizes the whole file. No EOF token is appended.
func Scan(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/3)
	for {
		tok, ok := lx.Next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Next возвращает следующий значимый токен; ok=false означает конец входа.
func (lx *Lexer) Next() (token.Token, bool) {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case isBlank(ch):
			lx.bump()
		case ch == '\n':
			lx.cursor.Bump()
			lx.line++
			lx.col = 1
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			lx.skipLineComment()
		case isIdentStart(ch):
			return lx.scanIdentOrKeyword(), true
		case isDec(ch):
			return lx.scanNumber(), true
		case isPunct(ch):
			return lx.scanPunct(), true
		case isOperatorChar(ch):
			if tok, ok := lx.scanOperator(); ok {
				return tok, true
			}
		default:
			// неизвестные символы молча пропускаем
			lx.bump()
		}
	}
	return token.Token{}, false
}

// bump consumes one byte on the current line.
func (lx *Lexer) bump() byte {
	lx.col++
	return lx.cursor.Bump()
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.bump()
	}
}

// emit builds a token for the bytes consumed since start.
func (lx *Lexer) emit(k token.Kind, start Mark, line, col uint32) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: k,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
		Line: line,
		Col:  col,
	}
}
