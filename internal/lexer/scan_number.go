package lexer

import (
	"strings"

	"momo/internal/diag"
	"momo/internal/token"
)

// scanNumber читает десятичный или шестнадцатеричный литерал.
//
// Десятичный скан допускает '-' внутри литерала ("1-2" это один токен);
// значение потом берётся только из ведущих цифр. Об этом сообщаем как LexLenientLiteral.
func (lx *Lexer) scanNumber() token.Token {
	start, line, col := lx.cursor.Mark(), lx.line, lx.col

	if lx.cursor.PeekAt(1) == 'x' {
		lx.bump() // '0'
		lx.bump() // 'x'
		for !lx.cursor.EOF() && isHex(lx.cursor.Peek()) {
			lx.bump()
		}
		tok := lx.emit(token.HexLit, start, line, col)
		if len(tok.Text) == 2 {
			lx.info(diag.LexBadHexLiteral, tok.Span, "hexadecimal literal without digits evaluates to 0")
		}
		return tok
	}

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isDec(b) && b != '-' {
			break
		}
		lx.bump()
	}
	tok := lx.emit(token.IntLit, start, line, col)
	if strings.IndexByte(tok.Text, '-') >= 0 {
		lx.info(diag.LexLenientLiteral, tok.Span, "'-' inside numeric literal "+tok.Text+"; only the leading digits are used")
	}
	return tok
}
