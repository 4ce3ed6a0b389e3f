package js

// Walk traverses the tree rooted at n in depth-first source order,
// calling visit for every node. If visit returns false the node's
// children are skipped.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			Walk(s, visit)
		}

	// Expressions
	case *ArrayLit:
		for _, el := range n.Elems {
			Walk(el, visit)
		}
	case *ObjectLit:
		for _, prop := range n.Props {
			Walk(prop.Value, visit)
		}
	case *FuncLit:
		for _, s := range n.Body {
			Walk(s, visit)
		}
	case *CallExpr:
		Walk(n.Callee, visit)
		for _, a := range n.Args {
			Walk(a, visit)
		}
	case *MemberExpr:
		Walk(n.Object, visit)
		if n.Index != nil {
			Walk(n.Index, visit)
		}
	case *UnaryExpr:
		Walk(n.Operand, visit)
	case *BinaryExpr:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *AssignExpr:
		Walk(n.Target, visit)
		Walk(n.Value, visit)
	case *CondExpr:
		Walk(n.Cond, visit)
		Walk(n.Then, visit)
		Walk(n.Else, visit)
	case *SeqExpr:
		for _, x := range n.Exprs {
			Walk(x, visit)
		}

	// Statements
	case *ExprStmt:
		Walk(n.X, visit)
	case *VarStmt:
		for _, d := range n.Decls {
			if d.Init != nil {
				Walk(d.Init, visit)
			}
		}
	case *FuncDecl:
		Walk(n.Fn, visit)
	case *ReturnStmt:
		if n.Value != nil {
			Walk(n.Value, visit)
		}
	case *BlockStmt:
		for _, s := range n.Body {
			Walk(s, visit)
		}
	case *IfStmt:
		Walk(n.Cond, visit)
		Walk(n.Then, visit)
		if n.Else != nil {
			Walk(n.Else, visit)
		}
	case *WhileStmt:
		Walk(n.Cond, visit)
		Walk(n.Body, visit)
	case *DoWhileStmt:
		Walk(n.Body, visit)
		Walk(n.Cond, visit)
	case *ForStmt:
		if n.Init != nil {
			Walk(n.Init, visit)
		}
		if n.Cond != nil {
			Walk(n.Cond, visit)
		}
		if n.Post != nil {
			Walk(n.Post, visit)
		}
		Walk(n.Body, visit)
	case *ForInStmt:
		if n.Decl != nil && n.Decl.Init != nil {
			Walk(n.Decl.Init, visit)
		}
		if n.Target != nil {
			Walk(n.Target, visit)
		}
		Walk(n.Object, visit)
		Walk(n.Body, visit)
	case *SwitchStmt:
		Walk(n.Disc, visit)
		for _, c := range n.Cases {
			if c.Test != nil {
				Walk(c.Test, visit)
			}
			for _, s := range c.Body {
				Walk(s, visit)
			}
		}
	case *TryStmt:
		Walk(n.Block, visit)
		if n.Catch != nil {
			Walk(n.Catch, visit)
		}
		if n.Finally != nil {
			Walk(n.Finally, visit)
		}
	case *ThrowStmt:
		Walk(n.Value, visit)
	case *LabeledStmt:
		Walk(n.Stmt, visit)
	}
}
