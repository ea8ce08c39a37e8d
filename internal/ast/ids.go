package ast

type (
	StmtID    uint32
	ExprID    uint32
	PayloadID uint32

	// ScopeID and SymbolID index the arenas of package symbols. They are
	// declared here so the tree can record resolution results without
	// importing the resolver.
	ScopeID  uint32
	SymbolID uint32
)

const (
	NoStmtID    StmtID    = 0
	NoExprID    ExprID    = 0
	NoPayloadID PayloadID = 0
	NoScopeID   ScopeID   = 0
	NoSymbolID  SymbolID  = 0
)

func (id StmtID) IsValid() bool   { return id != NoStmtID }
func (id ExprID) IsValid() bool   { return id != NoExprID }
func (id ScopeID) IsValid() bool  { return id != NoScopeID }
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
