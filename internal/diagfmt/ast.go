package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"momo/internal/ast"
	"momo/internal/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Span     source.Span     `json:"span"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTPretty печатает дерево программы с ├─/└─ отступами.
func FormatASTPretty(w io.Writer, builder *ast.Builder, fs *source.FileSet) error {
	root, err := programNode(builder)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Program (%d declarations)\n", len(root.Children))
	for i, child := range root.Children {
		writeTree(w, child, "", i == len(root.Children)-1, fs)
	}
	return nil
}

// FormatASTJSON выводит дерево в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder) error {
	root, err := programNode(builder)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

func writeTree(w io.Writer, n ASTNodeOutput, prefix string, last bool, fs *source.FileSet) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	fmt.Fprintf(w, "%s%s%s", prefix, branch, n.Type)
	if n.Text != "" {
		fmt.Fprintf(w, " %s", n.Text)
	}
	if n.Kind != "" {
		fmt.Fprintf(w, " [%s]", n.Kind)
	}
	fmt.Fprintf(w, " (span: %s)\n", formatSpan(n.Span, fs))
	for i, child := range n.Children {
		writeTree(w, child, prefix+next, i == len(n.Children)-1, fs)
	}
}

func programNode(b *ast.Builder) (ASTNodeOutput, error) {
	if b == nil {
		return ASTNodeOutput{}, fmt.Errorf("nil builder")
	}
	root := ASTNodeOutput{Type: "Program"}
	for _, id := range b.Program.Stmts {
		n, err := stmtNode(b, id)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		root.Children = append(root.Children, n)
	}
	if len(root.Children) > 0 {
		root.Span = root.Children[0].Span.Cover(root.Children[len(root.Children)-1].Span)
	}
	return root, nil
}

func stmtNode(b *ast.Builder, id ast.StmtID) (ASTNodeOutput, error) {
	st := b.Stmts.Get(id)
	if st == nil {
		return ASTNodeOutput{}, fmt.Errorf("statement %d not found", id)
	}
	n := ASTNodeOutput{Type: st.Kind.String(), Span: st.Span}

	var kids []ASTNodeOutput
	addExpr := func(e ast.ExprID) error {
		if !e.IsValid() {
			return nil
		}
		c, err := exprNode(b, e)
		if err == nil {
			kids = append(kids, c)
		}
		return err
	}
	addStmt := func(s ast.StmtID) error {
		if !s.IsValid() {
			return nil
		}
		c, err := stmtNode(b, s)
		if err == nil {
			kids = append(kids, c)
		}
		return err
	}

	var err error
	switch st.Kind {
	case ast.StmtBlock:
		blk, _ := b.Stmts.Block(id)
		for _, s := range blk.Stmts {
			if err = addStmt(s); err != nil {
				break
			}
		}
	case ast.StmtExpr:
		es, _ := b.Stmts.Expr(id)
		err = addExpr(es.Expr)
	case ast.StmtVar:
		v, _ := b.Stmts.Var(id)
		n.Text = v.Type.String() + " " + v.Name
		if v.Extern {
			n.Kind = "extern"
		} else if v.Global {
			n.Kind = "global"
		}
		err = addExpr(v.Init)
	case ast.StmtFn:
		fn, _ := b.Stmts.Fn(id)
		n.Text = fn.Result.String() + " " + fn.Name + "("
		for i, p := range fn.Params {
			if i > 0 {
				n.Text += ", "
			}
			n.Text += p.Type.String() + " " + p.Name
		}
		n.Text += ")"
		switch {
		case fn.Extern:
			n.Kind = "extern"
		case fn.IsPrototype():
			n.Kind = "prototype"
		}
		err = addStmt(fn.Body)
	case ast.StmtEnum:
		en, _ := b.Stmts.Enum(id)
		n.Text = en.Name
		for _, m := range en.Members {
			member := ASTNodeOutput{Type: "Enumerator", Span: m.Span, Text: m.Name}
			if m.Value.IsValid() {
				c, cerr := exprNode(b, m.Value)
				if cerr != nil {
					return ASTNodeOutput{}, cerr
				}
				member.Children = []ASTNodeOutput{c}
			}
			kids = append(kids, member)
		}
	case ast.StmtIf:
		ifs, _ := b.Stmts.If(id)
		if err = addExpr(ifs.Cond); err == nil {
			if err = addStmt(ifs.Then); err == nil {
				err = addStmt(ifs.Else)
			}
		}
	case ast.StmtWhile:
		wh, _ := b.Stmts.While(id)
		if err = addExpr(wh.Cond); err == nil {
			err = addStmt(wh.Body)
		}
	case ast.StmtReturn:
		ret, _ := b.Stmts.Return(id)
		if ret.Synthetic {
			n.Kind = "synthetic"
		}
		err = addExpr(ret.Value)
	case ast.StmtBreak, ast.StmtContinue:
		br, _ := b.Stmts.Branch(id)
		n.Text = "depth=" + strconv.FormatUint(uint64(br.Depth), 10)
	}
	if err != nil {
		return ASTNodeOutput{}, err
	}
	n.Children = kids
	return n, nil
}

func exprNode(b *ast.Builder, id ast.ExprID) (ASTNodeOutput, error) {
	e := b.Exprs.Get(id)
	if e == nil {
		return ASTNodeOutput{}, fmt.Errorf("expression %d not found", id)
	}
	n := ASTNodeOutput{Type: e.Kind.String(), Span: e.Span}

	var operands []ast.ExprID
	switch e.Kind {
	case ast.ExprIdent:
		ident, _ := b.Exprs.Ident(id)
		n.Text = ident.Name
	case ast.ExprLit:
		lit, _ := b.Exprs.Literal(id)
		n.Text = lit.Text
	case ast.ExprBinary:
		bin, _ := b.Exprs.Binary(id)
		n.Text = bin.Op.String()
		operands = []ast.ExprID{bin.Left, bin.Right}
	case ast.ExprUnary:
		un, _ := b.Exprs.Unary(id)
		n.Text = un.Op.String()
		operands = []ast.ExprID{un.Operand}
	case ast.ExprPostfix:
		pf, _ := b.Exprs.PostfixOf(id)
		n.Text = pf.Op.String()
		operands = []ast.ExprID{pf.Operand}
	case ast.ExprCall:
		call, _ := b.Exprs.Call(id)
		n.Text = fmt.Sprintf("args=%d", len(call.Args))
		operands = append([]ast.ExprID{call.Target}, call.Args...)
	}
	for _, op := range operands {
		c, err := exprNode(b, op)
		if err != nil {
			return ASTNodeOutput{}, err
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}
