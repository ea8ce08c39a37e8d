package parser

import (
	"fmt"

	"momo/internal/ast"
	"momo/internal/diag"
	"momo/internal/symbols"
	"momo/internal/token"
)

// parseDeclaration: тип, декларатор, затем функция или переменная.
func (p *Parser) parseDeclaration(start token.Token, extern bool) ast.StmtID {
	native := p.advance()
	td, name := p.parseDefinition(native.Kind)
	if p.at(token.LParen) {
		if td.Kind == ast.TypeReference || td.Kind == ast.TypeFuncPtr {
			p.fail(diag.SynUnexpectedToken, p.peek().Span, fmt.Sprintf("%s cannot be declared as a function returning %s", name.Text, td))
		}
		if !p.res.AtTopLevel() {
			p.fail(diag.SynFnNotAllowed, name.Span, fmt.Sprintf("function %s must be declared at top level", name.Text))
		}
		return p.parseFunction(start, td, name, extern)
	}
	return p.parseVariable(start, td, name, extern)
}

// parseDefinition разбирает декларатор после нативного типа:
//
//	name | *name | **name | &name | (*name)(type, ...)
func (p *Parser) parseDefinition(native token.Kind) (ast.TypeDef, token.Token) {
	td := ast.TypeDef{Kind: ast.TypePlain, Native: native}
	switch {
	case p.at(token.Star):
		td.Kind = ast.TypePointer
		for p.at(token.Star) {
			star := p.advance()
			if td.Depth == 255 {
				p.fail(diag.SynNestingTooDeep, star.Span, "too many levels of indirection")
			}
			td.Depth++
		}
	case p.eat(token.Amp):
		td.Kind = ast.TypeReference
	case p.eat(token.LParen):
		p.expect(token.Star, diag.SynUnexpectedToken, "'*' in function pointer declarator")
		name := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
		p.expect(token.RParen, diag.SynUnexpectedToken, "')'")
		p.expect(token.LParen, diag.SynUnexpectedToken, "'(' before parameter types")
		for !p.at(token.RParen) {
			if !p.peek().Kind.IsType() {
				p.failUnexpected(diag.SynExpectType, "parameter type")
			}
			td.Params = append(td.Params, p.advance().Kind)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expect(token.RParen, diag.SynUnexpectedToken, "')'")
		td.Kind = ast.TypeFuncPtr
		return td, name
	}
	name := p.expect(token.Ident, diag.SynExpectIdentifier, "identifier")
	return td, name
}

func storageFlags(td ast.TypeDef) symbols.SymbolFlags {
	switch td.Kind {
	case ast.TypePointer:
		return symbols.SymbolFlagPointer
	case ast.TypeFuncPtr:
		return symbols.SymbolFlagPointer | symbols.SymbolFlagFuncPtr
	case ast.TypeReference:
		return symbols.SymbolFlagAlias
	}
	return 0
}

func (p *Parser) parseVariable(start token.Token, td ast.TypeDef, name token.Token, extern bool) ast.StmtID {
	if td.IsVoid() {
		p.fail(diag.SemaVoidValue, name.Span, fmt.Sprintf("variable %s declared void", name.Text))
	}
	global := p.res.AtTopLevel()
	if extern && !global {
		p.fail(diag.SynUnexpectedToken, start.Span, "extern is only allowed at top level")
	}
	if global && td.Kind == ast.TypeReference {
		p.fail(diag.SemaNotConstant, name.Span, fmt.Sprintf("reference %s needs a function scope", name.Text))
	}

	flags := storageFlags(td)
	if global {
		flags |= symbols.SymbolFlagGlobal
	}
	// имя видно уже в собственном инициализаторе
	symID := p.declare(symbols.Symbol{Kind: symbols.SymbolVar, Name: name.Text, Span: name.Span, Type: td, Flags: flags})

	init := ast.NoExprID
	if p.eat(token.Assign) {
		init = p.parseExpr()
	} else if td.Kind == ast.TypeReference {
		p.failUnexpected(diag.SynExpectExpression, fmt.Sprintf("initializer for reference %s", name.Text))
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")

	sym := p.table.Symbol(symID)
	switch {
	case td.Kind == ast.TypeReference:
		if !p.isLvalue(init) {
			p.fail(diag.SemaNotAssignable, p.arenas.Exprs.Get(init).Span, fmt.Sprintf("reference %s must bind to a variable", name.Text))
		}
		sym.AliasOf = init
	case global:
		var value int32
		if init.IsValid() {
			value = p.evalConst(init)
		}
		sym = p.table.Symbol(symID)
		sym.Value = value
		sym.Flags |= symbols.SymbolFlagConstant
	}
	if !global {
		p.fn.locals = append(p.fn.locals, symID)
	}

	id := p.arenas.Stmts.NewVar(p.spanFrom(start.Span), ast.VarDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Type:     td,
		Init:     init,
		Symbol:   symID,
		Global:   global,
		Extern:   extern,
	})
	p.table.Symbol(symID).Decl = id
	return id
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(token.LParen, diag.SynUnexpectedToken, "'('")
	// (void): пустой список
	if p.at(token.TyVoid) && p.peekAt(1).Kind == token.RParen {
		p.advance()
	}
	var params []ast.Param
	for !p.at(token.RParen) {
		tok := p.peek()
		if !tok.Kind.IsType() {
			p.failUnexpected(diag.SynExpectType, "parameter type")
		}
		p.advance()
		td := ast.TypeDef{Kind: ast.TypePlain, Native: tok.Kind}
		switch {
		case p.at(token.Star):
			td.Kind = ast.TypePointer
			for p.eat(token.Star) {
				td.Depth++
			}
		case p.eat(token.Amp):
			td.Kind = ast.TypeReference
		}
		name := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
		if td.IsVoid() {
			p.fail(diag.SemaVoidValue, name.Span, fmt.Sprintf("parameter %s declared void", name.Text))
		}
		params = append(params, ast.Param{Name: name.Text, Span: name.Span, Type: td})
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnexpectedToken, "')'")
	return params
}

func (p *Parser) parseFunction(start token.Token, result ast.TypeDef, name token.Token, extern bool) ast.StmtID {
	params := p.parseParams()
	paramTypes := make([]ast.TypeDef, len(params))
	for i, prm := range params {
		paramTypes[i] = prm.Type
	}

	var flags symbols.SymbolFlags
	if extern || name.Text == "main" {
		flags |= symbols.SymbolFlagExported
	}
	isProto := !p.at(token.LBrace)
	if isProto {
		flags |= symbols.SymbolFlagPrototype
	}
	symID := p.declare(symbols.Symbol{
		Kind:   symbols.SymbolFunction,
		Name:   name.Text,
		Span:   name.Span,
		Type:   result,
		Params: paramTypes,
		Flags:  flags,
	})
	decl := ast.FnDecl{
		Name:     name.Text,
		NameSpan: name.Span,
		Result:   result,
		Params:   params,
		Symbol:   symID,
		Extern:   extern,
	}
	if isProto {
		p.expect(token.Semicolon, diag.SynExpectSemicolon, "'{' or ';' after function parameters")
		return p.arenas.Stmts.NewFn(p.spanFrom(start.Span), decl)
	}

	outer := p.fn
	p.fn = &fnState{name: name.Text, result: result}
	defer func() { p.fn = outer }()

	open := p.peek()
	scope := p.res.Enter(symbols.ScopeFunction, ast.NoStmtID, open.Span)
	for i := range decl.Params {
		prm := &decl.Params[i]
		prm.Symbol = p.declare(symbols.Symbol{
			Kind:  symbols.SymbolParam,
			Name:  prm.Name,
			Span:  prm.Span,
			Type:  prm.Type,
			Flags: paramFlags(prm.Type),
		})
	}
	p.advance() // {
	stmts := p.parseStatementsUntilBrace(open)
	p.res.Leave(scope)

	if p.fn.returns == 0 {
		end := p.lastSpan
		switch {
		case result.IsVoid():
			stmts = append(stmts, p.arenas.Stmts.NewReturn(end, ast.NoExprID, true))
		case name.Text == "main":
			zero := p.arenas.Exprs.NewLiteral(end, ast.ExprLitInt, "0", 0)
			stmts = append(stmts, p.arenas.Stmts.NewReturn(end, zero, true))
		default:
			p.fail(diag.SemaMissingReturn, name.Span, fmt.Sprintf("missing return in function %s", name.Text))
		}
	}

	decl.Body = p.arenas.Stmts.NewBlock(p.spanFrom(open.Span), stmts, scope)
	decl.Scope = scope
	decl.Locals = p.fn.locals
	id := p.arenas.Stmts.NewFn(p.spanFrom(start.Span), decl)
	p.res.SetOwner(scope, id)
	p.table.Symbol(symID).Decl = id
	return id
}

func paramFlags(td ast.TypeDef) symbols.SymbolFlags {
	switch td.Kind {
	case ast.TypePointer:
		return symbols.SymbolFlagPointer
	case ast.TypeReference:
		return symbols.SymbolFlagReference
	}
	return 0
}

// parseEnum: enum [Name] { A, B = expr, C, } [;]
// Перечислитель без инициализатора получает предыдущее значение + 1.
func (p *Parser) parseEnum() ast.StmtID {
	start := p.advance() // enum
	var enumName string
	if p.at(token.Ident) {
		enumName = p.advance().Text
	}
	open := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{' after enum")

	var (
		members []ast.Enumerator
		next    int32
	)
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedBrace, open.Span, "enum body is never closed")
		}
		nameTok := p.expect(token.Ident, diag.SynExpectIdentifier, "enumerator name")
		value, valueExpr := next, ast.NoExprID
		if p.eat(token.Assign) {
			valueExpr = p.parseExpr()
			value = p.evalConst(valueExpr)
		}
		symID := p.declare(symbols.Symbol{
			Kind:  symbols.SymbolEnumerator,
			Name:  nameTok.Text,
			Span:  nameTok.Span,
			Type:  ast.TypeDef{Kind: ast.TypePlain, Native: token.TyInt},
			Flags: symbols.SymbolFlagConstant,
			Value: value,
		})
		members = append(members, ast.Enumerator{Name: nameTok.Text, Span: nameTok.Span, Value: valueExpr, Symbol: symID})
		next = value + 1
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "'}' closing enum")
	p.eat(token.Semicolon)

	id := p.arenas.Stmts.NewEnum(p.spanFrom(start.Span), ast.EnumDecl{Name: enumName, Members: members})
	for _, m := range members {
		p.table.Symbol(m.Symbol).Decl = id
	}
	return id
}
