package js

// ResolveScopes binds every identifier in prog to a Binding, following
// ES5 function scoping: parameters, var declarators, and function
// declarations are hoisted to the nearest enclosing function (or the
// program itself). References that match no declaration share a single
// unresolved binding per name.
//
// ResolveScopes is idempotent; running it again recomputes the same
// bindings.
func ResolveScopes(prog *Program) {
	r := &resolver{unresolved: make(map[string]*Binding)}
	prog.unresolved = r.unresolved
	sc := &scopeFrame{names: make(map[string]*Binding)}
	r.hoistStmts(prog.Body, sc)
	for _, s := range prog.Body {
		r.stmt(s, sc)
	}
}

type scopeFrame struct {
	parent *scopeFrame
	names  map[string]*Binding
}

func (s *scopeFrame) lookup(name string) *Binding {
	for f := s; f != nil; f = f.parent {
		if b, ok := f.names[name]; ok {
			return b
		}
	}
	return nil
}

// declare adds name to the frame unless already present, returning the
// binding that now owns the name. Re-declarations share one binding.
func (s *scopeFrame) declare(name string, kind BindKind) *Binding {
	if b, ok := s.names[name]; ok {
		return b
	}
	b := &Binding{Name: name, Kind: kind}
	s.names[name] = b
	return b
}

type resolver struct {
	unresolved map[string]*Binding
}

func (r *resolver) reference(id *Ident, sc *scopeFrame) {
	if b := sc.lookup(id.Name); b != nil {
		id.Binding = b
		return
	}
	b, ok := r.unresolved[id.Name]
	if !ok {
		b = &Binding{Name: id.Name, Kind: BindUnresolved}
		r.unresolved[id.Name] = b
	}
	id.Binding = b
}

// hoistStmts declares every var declarator and function declaration in
// the statement list into sc, without descending into nested functions.
func (r *resolver) hoistStmts(body []Stmt, sc *scopeFrame) {
	for _, s := range body {
		r.hoistStmt(s, sc)
	}
}

func (r *resolver) hoistStmt(s Stmt, sc *scopeFrame) {
	switch s := s.(type) {
	case *VarStmt:
		for _, d := range s.Decls {
			d.Binding = sc.declare(d.Name, BindVar)
		}
	case *FuncDecl:
		s.Fn.NameBinding = sc.declare(s.Fn.Name, BindFunc)
	case *BlockStmt:
		r.hoistStmts(s.Body, sc)
	case *IfStmt:
		r.hoistStmt(s.Then, sc)
		if s.Else != nil {
			r.hoistStmt(s.Else, sc)
		}
	case *WhileStmt:
		r.hoistStmt(s.Body, sc)
	case *DoWhileStmt:
		r.hoistStmt(s.Body, sc)
	case *ForStmt:
		if s.Init != nil {
			r.hoistStmt(s.Init, sc)
		}
		r.hoistStmt(s.Body, sc)
	case *ForInStmt:
		if s.Decl != nil {
			s.Decl.Binding = sc.declare(s.Decl.Name, BindVar)
		}
		r.hoistStmt(s.Body, sc)
	case *SwitchStmt:
		for _, c := range s.Cases {
			r.hoistStmts(c.Body, sc)
		}
	case *TryStmt:
		r.hoistStmts(s.Block.Body, sc)
		if s.Catch != nil {
			r.hoistStmts(s.Catch.Body, sc)
		}
		if s.Finally != nil {
			r.hoistStmts(s.Finally.Body, sc)
		}
	case *LabeledStmt:
		r.hoistStmt(s.Stmt, sc)
	}
}

func (r *resolver) stmt(s Stmt, sc *scopeFrame) {
	switch s := s.(type) {
	case *ExprStmt:
		r.expr(s.X, sc)
	case *VarStmt:
		for _, d := range s.Decls {
			if d.Binding == nil {
				d.Binding = sc.declare(d.Name, BindVar)
			}
			if d.Init != nil {
				r.expr(d.Init, sc)
			}
		}
	case *FuncDecl:
		r.function(s.Fn, sc, false)
	case *ReturnStmt:
		if s.Value != nil {
			r.expr(s.Value, sc)
		}
	case *BlockStmt:
		for _, inner := range s.Body {
			r.stmt(inner, sc)
		}
	case *IfStmt:
		r.expr(s.Cond, sc)
		r.stmt(s.Then, sc)
		if s.Else != nil {
			r.stmt(s.Else, sc)
		}
	case *WhileStmt:
		r.expr(s.Cond, sc)
		r.stmt(s.Body, sc)
	case *DoWhileStmt:
		r.stmt(s.Body, sc)
		r.expr(s.Cond, sc)
	case *ForStmt:
		if s.Init != nil {
			r.stmt(s.Init, sc)
		}
		if s.Cond != nil {
			r.expr(s.Cond, sc)
		}
		if s.Post != nil {
			r.expr(s.Post, sc)
		}
		r.stmt(s.Body, sc)
	case *ForInStmt:
		if s.Decl != nil && s.Decl.Binding == nil {
			s.Decl.Binding = sc.declare(s.Decl.Name, BindVar)
		}
		if s.Target != nil {
			r.expr(s.Target, sc)
		}
		r.expr(s.Object, sc)
		r.stmt(s.Body, sc)
	case *SwitchStmt:
		r.expr(s.Disc, sc)
		for _, c := range s.Cases {
			if c.Test != nil {
				r.expr(c.Test, sc)
			}
			for _, inner := range c.Body {
				r.stmt(inner, sc)
			}
		}
	case *TryStmt:
		r.stmt(s.Block, sc)
		if s.Catch != nil {
			catchScope := &scopeFrame{parent: sc, names: make(map[string]*Binding)}
			s.Param.Binding = catchScope.declare(s.Param.Name, BindCatch)
			r.stmt(s.Catch, catchScope)
		}
		if s.Finally != nil {
			r.stmt(s.Finally, sc)
		}
	case *ThrowStmt:
		r.expr(s.Value, sc)
	case *LabeledStmt:
		r.stmt(s.Stmt, sc)
	case *BreakStmt, *ContinueStmt, *EmptyStmt:
		// no references
	}
}

func (r *resolver) expr(e Expr, sc *scopeFrame) {
	switch e := e.(type) {
	case *Ident:
		r.reference(e, sc)
	case *ArrayLit:
		for _, el := range e.Elems {
			r.expr(el, sc)
		}
	case *ObjectLit:
		for _, prop := range e.Props {
			r.expr(prop.Value, sc)
		}
	case *FuncLit:
		r.function(e, sc, true)
	case *CallExpr:
		r.expr(e.Callee, sc)
		for _, a := range e.Args {
			r.expr(a, sc)
		}
	case *MemberExpr:
		r.expr(e.Object, sc)
		if e.Index != nil {
			r.expr(e.Index, sc)
		}
	case *UnaryExpr:
		r.expr(e.Operand, sc)
	case *BinaryExpr:
		r.expr(e.Left, sc)
		r.expr(e.Right, sc)
	case *AssignExpr:
		r.expr(e.Target, sc)
		r.expr(e.Value, sc)
	case *CondExpr:
		r.expr(e.Cond, sc)
		r.expr(e.Then, sc)
		r.expr(e.Else, sc)
	case *SeqExpr:
		for _, x := range e.Exprs {
			r.expr(x, sc)
		}
	case *StringLit, *NumberLit, *BoolLit, *NullLit, *RegexLit:
		// no references
	}
}

// function resolves a function body in a fresh scope. A named function
// expression binds its own name inside that scope; a declaration's name
// was already hoisted into the enclosing scope.
func (r *resolver) function(fn *FuncLit, sc *scopeFrame, expression bool) {
	inner := &scopeFrame{parent: sc, names: make(map[string]*Binding)}
	if expression && fn.Name != "" {
		fn.NameBinding = inner.declare(fn.Name, BindFunc)
	}
	for _, p := range fn.Params {
		p.Binding = inner.declare(p.Name, BindParam)
	}
	r.hoistStmts(fn.Body, inner)
	for _, s := range fn.Body {
		r.stmt(s, inner)
	}
}
