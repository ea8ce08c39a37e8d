package lexer

import (
	"momo/internal/token"
)

// scanIdentOrKeyword жадно читает [A-Za-z0-9_$]* и классифицирует результат.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start, line, col := lx.cursor.Mark(), lx.line, lx.col
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.bump()
	}
	tok := lx.emit(token.Ident, start, line, col)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}
