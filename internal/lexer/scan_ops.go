package lexer

import (
	"momo/internal/token"
)

var operators = map[string]token.Kind{
	"=": token.Assign, "+=": token.PlusAssign, "-=": token.MinusAssign,
	"*=": token.StarAssign, "/=": token.SlashAssign, "%=": token.PercentAssign,
	"&=": token.AmpAssign, "|=": token.PipeAssign, "^=": token.CaretAssign,
	"<<=": token.ShlAssign, ">>=": token.ShrAssign,
	"||": token.OrOr, "&&": token.AndAnd,
	"==": token.EqEq, "!=": token.BangEq,
	"<": token.Lt, "<=": token.LtEq, ">": token.Gt, ">=": token.GtEq,
	"+": token.Plus, "-": token.Minus, "*": token.Star, "/": token.Slash, "%": token.Percent,
	"&": token.Amp, "|": token.Pipe, "~": token.Tilde, "^": token.Caret,
	"<<": token.Shl, ">>": token.Shr,
	"!": token.Bang, "--": token.MinusMinus, "++": token.PlusPlus,
}

var punctuators = map[byte]token.Kind{
	'(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace,
	',': token.Comma, ';': token.Semicolon,
}

func (lx *Lexer) scanPunct() token.Token {
	start, line, col := lx.cursor.Mark(), lx.line, lx.col
	k := punctuators[lx.bump()]
	return lx.emit(k, start, line, col)
}

// Жадность: трёхсимвольный оператор пробуем только если его
// двухсимвольный префикс сам является оператором (">>=" после ">>").
func (lx *Lexer) scanOperator() (token.Token, bool) {
	start, line, col := lx.cursor.Mark(), lx.line, lx.col
	b0, b1, b2 := lx.cursor.Peek(), lx.cursor.PeekAt(1), lx.cursor.PeekAt(2)

	n := 0
	if _, ok := operators[string([]byte{b0, b1})]; ok && b1 != 0 {
		n = 2
		if _, ok := operators[string([]byte{b0, b1, b2})]; ok && b2 != 0 {
			n = 3
		}
	} else if _, ok := operators[string(b0)]; ok {
		n = 1
	}
	if n == 0 {
		lx.bump()
		return token.Token{}, false
	}
	for range n {
		lx.bump()
	}
	tok := lx.emit(token.Invalid, start, line, col)
	tok.Kind = operators[tok.Text]
	return tok, true
}
