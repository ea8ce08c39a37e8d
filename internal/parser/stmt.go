package parser

import (
	"fmt"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
	"momo/internal/token"
)

// parseStatement выбирает распознаватель по первому токену.
// Пустой оператор ';' возвращает NoStmtID.
func (p *Parser) parseStatement() ast.StmtID {
	defer p.enter()()
	tok := p.peek()
	switch {
	case tok.Kind == token.KwExtern:
		p.advance()
		if !p.peek().Kind.IsType() {
			p.failUnexpected(diag.SynExpectType, "type after 'extern'")
		}
		return p.parseDeclaration(tok, true)
	case tok.Kind == token.KwEnum:
		return p.parseEnum()
	case tok.Kind.IsType():
		return p.parseDeclaration(tok, false)
	case tok.Kind == token.KwReturn:
		return p.parseReturn()
	case tok.Kind == token.KwBreak, tok.Kind == token.KwContinue:
		return p.parseBranch()
	}

	if p.res.AtTopLevel() {
		p.fail(diag.SynUnexpectedToken, tok.Span, fmt.Sprintf("unexpected %q outside of a function", tok.Text))
	}
	switch tok.Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.LBrace:
		scope, id := p.parseBody(symbols.ScopeBlock)
		p.res.SetOwner(scope, id)
		return id
	case token.Semicolon:
		p.advance()
		return ast.NoStmtID
	}

	expr := p.parseExpr()
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")
	return p.arenas.Stmts.NewExpr(p.spanFrom(tok.Span), expr)
}

// parseStatementsUntilBrace читает операторы до '}' и съедает её.
func (p *Parser) parseStatementsUntilBrace(open token.Token) []ast.StmtID {
	var stmts []ast.StmtID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedBrace, open.Span, fmt.Sprintf("'{' opened at %d:%d is never closed", open.Line, open.Col))
		}
		if id := p.parseStatement(); id.IsValid() {
			stmts = append(stmts, id)
		}
	}
	p.advance()
	return stmts
}

// parseBody открывает область и читает либо блок в скобках, либо один оператор.
func (p *Parser) parseBody(kind symbols.ScopeKind) (symbols.ScopeID, ast.StmtID) {
	start := p.peek()
	scope := p.res.Enter(kind, ast.NoStmtID, start.Span)
	var stmts []ast.StmtID
	if p.eat(token.LBrace) {
		stmts = p.parseStatementsUntilBrace(start)
	} else if id := p.parseStatement(); id.IsValid() {
		stmts = []ast.StmtID{id}
	}
	p.res.Leave(scope)
	return scope, p.arenas.Stmts.NewBlock(p.spanFrom(start.Span), stmts, scope)
}

func (p *Parser) parseIf() ast.StmtID {
	defer p.enter()()
	start := p.advance() // if
	p.expect(token.LParen, diag.SynUnexpectedToken, "'(' after 'if'")
	cond := p.parseExpr()
	p.expect(token.RParen, diag.SynUnexpectedToken, "')'")

	var scopes []symbols.ScopeID
	thenScope, then := p.parseBody(symbols.ScopeIf)
	scopes = append(scopes, thenScope)

	els := ast.NoStmtID
	if p.eat(token.KwElse) {
		if p.at(token.KwIf) {
			// else if: вложенный if живёт в своей else-области, чтобы глубина
			// break/continue совпадала с метками сгенерированного кода
			elseStart := p.peek()
			scope := p.res.Enter(symbols.ScopeElse, ast.NoStmtID, elseStart.Span)
			nested := p.parseIf()
			p.res.Leave(scope)
			els = p.arenas.Stmts.NewBlock(p.spanFrom(elseStart.Span), []ast.StmtID{nested}, scope)
			scopes = append(scopes, scope)
		} else {
			var elseScope symbols.ScopeID
			elseScope, els = p.parseBody(symbols.ScopeElse)
			scopes = append(scopes, elseScope)
		}
	}

	id := p.arenas.Stmts.NewIf(p.spanFrom(start.Span), cond, then, els)
	for _, sc := range scopes {
		p.res.SetOwner(sc, id)
	}
	return id
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.advance() // while
	cond := p.parseExpr()
	scope, body := p.parseBody(symbols.ScopeWhile)
	id := p.arenas.Stmts.NewWhile(p.spanFrom(start.Span), cond, body)
	p.res.SetOwner(scope, id)
	return id
}

func (p *Parser) parseReturn() ast.StmtID {
	start := p.advance() // return
	if _, ok := p.res.Function(); !ok || p.fn == nil {
		p.fail(diag.SemaReturnOutsideFunction, start.Span, "return outside of a function body")
	}
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")
	span := p.spanFrom(start.Span)

	switch {
	case p.fn.result.IsVoid() && value.IsValid():
		p.fail(diag.SemaVoidValue, span, fmt.Sprintf("void function %s must not return a value", p.fn.name))
	case !p.fn.result.IsVoid() && !value.IsValid():
		p.fail(diag.SynExpectExpression, span, fmt.Sprintf("function %s must return a value", p.fn.name))
	}
	p.fn.returns++
	return p.arenas.Stmts.NewReturn(span, value, false)
}

// parseBranch разбирает break и continue; глубина считается по живой цепочке областей.
func (p *Parser) parseBranch() ast.StmtID {
	tok := p.advance()
	kind, code, word := ast.StmtBreak, diag.SemaBreakOutsideLoop, "break"
	if tok.Kind == token.KwContinue {
		kind, code, word = ast.StmtContinue, diag.SemaContinueOutsideLoop, "continue"
	}
	depth, ok := p.res.LoopDepth()
	if !ok {
		p.fail(code, tok.Span, fmt.Sprintf("%s outside of a while body", word))
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")
	return p.arenas.Stmts.NewBranch(kind, p.spanFrom(tok.Span), depth)
}
