package ast

type Hints struct{ Stmts, Exprs uint }

// Program is the root of one compiled file.
type Program struct {
	Stmts []StmtID
	Scope ScopeID
}

type Builder struct {
	Stmts   *Stmts
	Exprs   *Exprs
	Program Program
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// PushTop appends a top-level statement to the program.
func (b *Builder) PushTop(id StmtID) {
	b.Program.Stmts = append(b.Program.Stmts, id)
}
