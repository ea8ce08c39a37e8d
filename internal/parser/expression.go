package parser

import (
	"fmt"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
	"momo/internal/token"
)

// parseExpr разбирает выражение с самым низким приоритетом (присваивание).
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinary(precAssignment)
}

// parseBinary: precedence climbing. Присваивания правоассоциативны,
// остальные операторы левоассоциативны.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	defer p.enter()()
	left := p.parseUnary()
	for {
		opTok := p.peek()
		prec, rightAssoc := binaryPrec(opTok.Kind)
		if prec < minPrec {
			return left
		}
		p.advance()
		next := prec + 1
		if rightAssoc {
			next = prec
		}
		right := p.parseBinary(next)
		left = p.makeBinary(opTok, left, right)
	}
}

// makeBinary строит узел; составное присваивание раскрывается в lhs = lhs OP rhs.
func (p *Parser) makeBinary(opTok token.Token, left, right ast.ExprID) ast.ExprID {
	exprs := p.arenas.Exprs
	span := exprs.Get(left).Span.Cover(exprs.Get(right).Span)

	if base := opTok.Kind.CompoundBase(); base != token.Invalid {
		p.checkAssignable(left, opTok)
		inner := exprs.NewBinary(span, binaryOps[base], left, right)
		return exprs.NewBinary(span, ast.ExprBinaryAssign, left, inner)
	}
	if opTok.Kind == token.Assign {
		p.checkAssignable(left, opTok)
	}
	return exprs.NewBinary(span, binaryOps[opTok.Kind], left, right)
}

func (p *Parser) parseUnary() ast.ExprID {
	tok := p.peek()
	op, ok := prefixOps[tok.Kind]
	if !ok {
		return p.parsePostfix(p.parsePrimary())
	}
	defer p.enter()()
	p.advance()
	operand := p.parseUnary()
	if op == ast.ExprUnaryInc || op == ast.ExprUnaryDec {
		p.checkAssignable(operand, tok)
	}
	return p.arenas.Exprs.NewUnary(p.spanFrom(tok.Span), op, operand)
}

func (p *Parser) parsePostfix(target ast.ExprID) ast.ExprID {
	for {
		tok := p.peek()
		switch tok.Kind {
		case token.LParen:
			target = p.parseCall(target)
		case token.PlusPlus, token.MinusMinus:
			p.advance()
			p.checkAssignable(target, tok)
			op := ast.ExprPostfixInc
			if tok.Kind == token.MinusMinus {
				op = ast.ExprPostfixDec
			}
			span := p.arenas.Exprs.Get(target).Span.Cover(tok.Span)
			target = p.arenas.Exprs.NewPostfix(span, op, target)
		default:
			return target
		}
	}
}

func (p *Parser) parsePrimary() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.HexLit, token.KwTrue, token.KwFalse:
		p.advance()
		return p.parseLiteral(tok)
	case token.Ident:
		p.advance()
		sym := p.resolve(tok)
		return p.arenas.Exprs.NewIdent(tok.Span, tok.Text, sym)
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen, diag.SynUnexpectedToken, "')'")
		return inner
	default:
		p.failUnexpected(diag.SynExpectExpression, "expression")
		return ast.NoExprID
	}
}

func (p *Parser) resolve(tok token.Token) ast.SymbolID {
	sym, ok := p.res.Lookup(tok.Text)
	if !ok {
		p.fail(diag.SemaUndefinedSymbol, tok.Span, fmt.Sprintf("%s is not defined", tok.Text))
	}
	return sym
}

// parseCall разбирает '(' args ')' после callee. Вызывать можно только
// функцию или указатель на функцию.
func (p *Parser) parseCall(target ast.ExprID) ast.ExprID {
	exprs := p.arenas.Exprs
	start := exprs.Get(target).Span
	callee := p.calleeSymbol(target)

	p.expect(token.LParen, diag.SynUnexpectedToken, "'('")
	var args []ast.ExprID
	for !p.at(token.RParen) {
		args = append(args, p.parseExpr())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "')'")
	span := p.spanFrom(start)

	var want int
	if callee.Kind == symbols.SymbolFunction {
		want = len(callee.Params)
	} else {
		want = len(callee.Type.Params)
	}
	if len(args) != want {
		p.fail(diag.SemaArgCount, span, fmt.Sprintf("%s expects %d argument(s), got %d", callee.Name, want, len(args)))
	}
	if callee.Kind == symbols.SymbolFunction {
		for i, param := range callee.Params {
			if param.Kind == ast.TypeReference && !p.isLvalue(args[i]) {
				p.fail(diag.SemaNotAssignable, exprs.Get(args[i]).Span,
					fmt.Sprintf("argument %d of %s is passed by reference and must be a variable", i+1, callee.Name))
			}
		}
	}
	return exprs.NewCall(span, target, args)
}

func (p *Parser) calleeSymbol(target ast.ExprID) *symbols.Symbol {
	span := p.arenas.Exprs.Get(target).Span
	if id, ok := p.arenas.Exprs.Ident(target); ok {
		sym := p.table.Symbol(id.Symbol)
		if sym.Kind == symbols.SymbolFunction || sym.Has(symbols.SymbolFlagFuncPtr) {
			return sym
		}
		p.fail(diag.SemaNotCallable, span, fmt.Sprintf("%s %s is not callable", sym.Kind, sym.Name))
	}
	p.fail(diag.SemaNotCallable, span, "only functions and function pointers can be called")
	return nil
}

// isLvalue: переменная, параметр или разыменование.
func (p *Parser) isLvalue(e ast.ExprID) bool {
	exprs := p.arenas.Exprs
	if id, ok := exprs.Ident(e); ok {
		sym := p.table.Symbol(id.Symbol)
		return sym.Kind == symbols.SymbolVar || sym.Kind == symbols.SymbolParam
	}
	if u, ok := exprs.Unary(e); ok {
		return u.Op == ast.ExprUnaryDeref
	}
	return false
}

func (p *Parser) checkAssignable(e ast.ExprID, opTok token.Token) {
	if !p.isLvalue(e) {
		p.fail(diag.SemaNotAssignable, p.arenas.Exprs.Get(e).Span,
			fmt.Sprintf("left operand of %q is not assignable", opTok.Text))
	}
}

// parseLiteral вычисляет значение литерала с усечением до 32 бит.
func (p *Parser) parseLiteral(tok token.Token) ast.ExprID {
	var (
		kind  ast.ExprLitKind
		value int32 // переполнение заворачивается по модулю 2^32
	)
	switch tok.Kind {
	case token.KwTrue:
		kind, value = ast.ExprLitTrue, 1
	case token.KwFalse:
		kind, value = ast.ExprLitFalse, 0
	case token.HexLit:
		kind = ast.ExprLitHex
		for _, c := range []byte(tok.Text[2:]) {
			value = value<<4 | int32(hexDigit(c))
		}
	default:
		kind = ast.ExprLitInt
		for _, c := range []byte(tok.Text) {
			if c < '0' || c > '9' {
				break
			}
			value = value*10 + int32(c-'0')
		}
	}
	return p.arenas.Exprs.NewLiteral(tok.Span, kind, tok.Text, value)
}

func hexDigit(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
