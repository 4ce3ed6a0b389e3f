package bundle

import "github.com/wippyai/unbundle/js"

// Normalize simplifies minifier idioms in an extracted module, in place.
// It is structural only: it never changes require semantics or the set
// of canonical names, and it is idempotent on already-normalized input.
//
// Transforms:
//   - sequence expression statements split into one statement per expression
//   - return (a, b) split into statements plus a plain return
//   - statement-level a && b, a || b, and c ? a : b become if statements
//   - !0 and !1 become true and false, void 0 becomes undefined
func Normalize(m *Module) {
	m.Body = normalizeStmts(m.Body)
}

func normalizeStmts(body []js.Stmt) []js.Stmt {
	out := make([]js.Stmt, 0, len(body))
	for _, s := range body {
		out = append(out, normalizeStmt(s)...)
	}
	return out
}

// normalizeStmt rewrites one statement, possibly into several.
func normalizeStmt(s js.Stmt) []js.Stmt {
	switch s := s.(type) {
	case *js.ExprStmt:
		s.X = normalizeExpr(s.X)
		switch x := s.X.(type) {
		case *js.SeqExpr:
			var out []js.Stmt
			for _, e := range x.Exprs {
				out = append(out, normalizeStmt(&js.ExprStmt{X: e})...)
			}
			return out
		case *js.BinaryExpr:
			switch x.Op {
			case "&&":
				return []js.Stmt{&js.IfStmt{Cond: x.Left, Then: stmtOf(x.Right)}}
			case "||":
				return []js.Stmt{&js.IfStmt{
					Cond: &js.UnaryExpr{Op: "!", Operand: x.Left},
					Then: stmtOf(x.Right),
				}}
			}
		case *js.CondExpr:
			return []js.Stmt{&js.IfStmt{
				Cond: x.Cond,
				Then: stmtOf(x.Then),
				Else: stmtOf(x.Else),
			}}
		}
		return []js.Stmt{s}
	case *js.ReturnStmt:
		if s.Value == nil {
			return []js.Stmt{s}
		}
		s.Value = normalizeExpr(s.Value)
		if seq, ok := s.Value.(*js.SeqExpr); ok && len(seq.Exprs) > 1 {
			var out []js.Stmt
			for _, e := range seq.Exprs[:len(seq.Exprs)-1] {
				out = append(out, normalizeStmt(&js.ExprStmt{X: e})...)
			}
			return append(out, &js.ReturnStmt{Value: seq.Exprs[len(seq.Exprs)-1]})
		}
		return []js.Stmt{s}
	case *js.VarStmt:
		for _, d := range s.Decls {
			if d.Init != nil {
				d.Init = normalizeExpr(d.Init)
			}
		}
	case *js.FuncDecl:
		s.Fn.Body = normalizeStmts(s.Fn.Body)
	case *js.BlockStmt:
		s.Body = normalizeStmts(s.Body)
	case *js.IfStmt:
		s.Cond = normalizeExpr(s.Cond)
		s.Then = normalizeNested(s.Then)
		if s.Else != nil {
			s.Else = normalizeNested(s.Else)
		}
	case *js.WhileStmt:
		s.Cond = normalizeExpr(s.Cond)
		s.Body = normalizeNested(s.Body)
	case *js.DoWhileStmt:
		s.Body = normalizeNested(s.Body)
		s.Cond = normalizeExpr(s.Cond)
	case *js.ForStmt:
		if init, ok := s.Init.(*js.VarStmt); ok {
			normalizeStmt(init)
		} else if init, ok := s.Init.(*js.ExprStmt); ok {
			init.X = normalizeExpr(init.X)
		}
		if s.Cond != nil {
			s.Cond = normalizeExpr(s.Cond)
		}
		if s.Post != nil {
			s.Post = normalizeExpr(s.Post)
		}
		s.Body = normalizeNested(s.Body)
	case *js.ForInStmt:
		s.Object = normalizeExpr(s.Object)
		s.Body = normalizeNested(s.Body)
	case *js.SwitchStmt:
		s.Disc = normalizeExpr(s.Disc)
		for i := range s.Cases {
			if s.Cases[i].Test != nil {
				s.Cases[i].Test = normalizeExpr(s.Cases[i].Test)
			}
			s.Cases[i].Body = normalizeStmts(s.Cases[i].Body)
		}
	case *js.TryStmt:
		s.Block.Body = normalizeStmts(s.Block.Body)
		if s.Catch != nil {
			s.Catch.Body = normalizeStmts(s.Catch.Body)
		}
		if s.Finally != nil {
			s.Finally.Body = normalizeStmts(s.Finally.Body)
		}
	case *js.ThrowStmt:
		s.Value = normalizeExpr(s.Value)
	case *js.LabeledStmt:
		s.Stmt = normalizeNested(s.Stmt)
	}
	return []js.Stmt{s}
}

// normalizeNested rewrites a body-position statement, wrapping in a
// block when the rewrite produced more than one statement.
func normalizeNested(s js.Stmt) js.Stmt {
	out := normalizeStmt(s)
	if len(out) == 1 {
		return out[0]
	}
	return &js.BlockStmt{Body: out}
}

func stmtOf(e js.Expr) js.Stmt {
	return normalizeNested(&js.ExprStmt{X: e})
}

// normalizeExpr rewrites minifier literal idioms bottom-up.
func normalizeExpr(e js.Expr) js.Expr {
	switch e := e.(type) {
	case *js.UnaryExpr:
		e.Operand = normalizeExpr(e.Operand)
		if !e.Postfix {
			if n, ok := e.Operand.(*js.NumberLit); ok {
				switch {
				case e.Op == "!" && n.Value == 0:
					return &js.BoolLit{Value: true}
				case e.Op == "!" && n.Value == 1:
					return &js.BoolLit{Value: false}
				case e.Op == "void" && n.Value == 0:
					return &js.Ident{Name: "undefined"}
				}
			}
		}
	case *js.BinaryExpr:
		e.Left = normalizeExpr(e.Left)
		e.Right = normalizeExpr(e.Right)
	case *js.AssignExpr:
		e.Target = normalizeExpr(e.Target)
		e.Value = normalizeExpr(e.Value)
	case *js.CondExpr:
		e.Cond = normalizeExpr(e.Cond)
		e.Then = normalizeExpr(e.Then)
		e.Else = normalizeExpr(e.Else)
	case *js.SeqExpr:
		for i, x := range e.Exprs {
			e.Exprs[i] = normalizeExpr(x)
		}
	case *js.CallExpr:
		e.Callee = normalizeExpr(e.Callee)
		for i, a := range e.Args {
			e.Args[i] = normalizeExpr(a)
		}
	case *js.MemberExpr:
		e.Object = normalizeExpr(e.Object)
		if e.Index != nil {
			e.Index = normalizeExpr(e.Index)
		}
	case *js.ArrayLit:
		for i, el := range e.Elems {
			e.Elems[i] = normalizeExpr(el)
		}
	case *js.ObjectLit:
		for i := range e.Props {
			e.Props[i].Value = normalizeExpr(e.Props[i].Value)
		}
	case *js.FuncLit:
		e.Body = normalizeStmts(e.Body)
	}
	return e
}
