package js

import (
	"fmt"
	"strconv"
	"strings"
)

// Options configures Print.
type Options struct {
	// ASCIIOnly escapes non-ASCII characters in string literals.
	ASCIIOnly bool
	// BracketizeBlocks prints every if/else/loop body as a braced block.
	BracketizeBlocks bool
	// DeclaratorsOnePerLine splits multi-declarator var statements one
	// declarator per line.
	DeclaratorsOnePerLine bool
	// Rename maps binding identity to an override name. Identifiers whose
	// binding has an entry print under the override; the tree itself is
	// never mutated.
	Rename map[*Binding]string
}

// Print renders a tree back to source text. It accepts a Program, a
// statement, or an expression.
func Print(n Node, opts Options) string {
	p := &printer{opts: opts}
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Body {
			p.stmt(s)
		}
	case Stmt:
		p.stmt(n)
	case Expr:
		p.expr(n, 0)
	}
	return p.b.String()
}

// Expression precedence levels used for parenthesization.
const (
	precSeq = iota
	precAssign
	precCond
	precBinaryBase // binary operators occupy precBinaryBase..precBinaryBase+9
	precUnary      = precBinaryBase + 10
	precPostfix
	precCall
	precMember
	precPrimary
)

func exprPrec(e Expr) int {
	switch e := e.(type) {
	case *SeqExpr:
		return precSeq
	case *AssignExpr:
		return precAssign
	case *CondExpr:
		return precCond
	case *BinaryExpr:
		return precBinaryBase + binaryPrec[e.Op] - 1
	case *UnaryExpr:
		if e.Postfix {
			return precPostfix
		}
		return precUnary
	case *CallExpr:
		return precCall
	case *MemberExpr:
		return precMember
	case *FuncLit:
		return precPrimary
	default:
		return precPrimary
	}
}

type printer struct {
	b     strings.Builder
	opts  Options
	depth int
}

func (p *printer) pad() {
	for i := 0; i < p.depth; i++ {
		p.b.WriteString("  ")
	}
}

func (p *printer) nl() { p.b.WriteByte('\n') }

// name returns the display name for a binding, honoring the rename table.
func (p *printer) name(b *Binding, declared string) string {
	if b != nil {
		if override, ok := p.opts.Rename[b]; ok {
			return override
		}
	}
	return declared
}

// Statements

func (p *printer) stmt(s Stmt) {
	switch s := s.(type) {
	case *ExprStmt:
		p.pad()
		if exprStartsAmbiguously(s.X) {
			p.b.WriteByte('(')
			p.expr(s.X, 0)
			p.b.WriteByte(')')
		} else {
			p.expr(s.X, 0)
		}
		p.b.WriteString(";")
		p.nl()
	case *VarStmt:
		p.pad()
		p.varStmt(s, true)
		p.b.WriteString(";")
		p.nl()
	case *FuncDecl:
		p.pad()
		p.function(s.Fn)
		p.nl()
	case *ReturnStmt:
		p.pad()
		p.b.WriteString("return")
		if s.Value != nil {
			p.b.WriteByte(' ')
			p.expr(s.Value, 0)
		}
		p.b.WriteString(";")
		p.nl()
	case *BlockStmt:
		p.pad()
		p.block(s.Body)
		p.nl()
	case *IfStmt:
		p.pad()
		p.ifStmt(s)
		p.nl()
	case *WhileStmt:
		p.pad()
		p.b.WriteString("while (")
		p.expr(s.Cond, 0)
		p.b.WriteString(") ")
		p.nested(s.Body)
		p.nl()
	case *DoWhileStmt:
		p.pad()
		p.b.WriteString("do ")
		p.nested(s.Body)
		p.b.WriteString(" while (")
		p.expr(s.Cond, 0)
		p.b.WriteString(");")
		p.nl()
	case *ForStmt:
		p.pad()
		p.b.WriteString("for (")
		switch init := s.Init.(type) {
		case nil:
		case *VarStmt:
			p.varStmt(init, false)
		case *ExprStmt:
			p.expr(init.X, 0)
		}
		p.b.WriteString("; ")
		if s.Cond != nil {
			p.expr(s.Cond, 0)
		}
		p.b.WriteString("; ")
		if s.Post != nil {
			p.expr(s.Post, 0)
		}
		p.b.WriteString(") ")
		p.nested(s.Body)
		p.nl()
	case *ForInStmt:
		p.pad()
		p.b.WriteString("for (")
		if s.Decl != nil {
			p.b.WriteString("var ")
			p.b.WriteString(p.name(s.Decl.Binding, s.Decl.Name))
		} else {
			p.expr(s.Target, precCond)
		}
		p.b.WriteString(" in ")
		p.expr(s.Object, 0)
		p.b.WriteString(") ")
		p.nested(s.Body)
		p.nl()
	case *SwitchStmt:
		p.pad()
		p.b.WriteString("switch (")
		p.expr(s.Disc, 0)
		p.b.WriteString(") {")
		p.nl()
		for _, c := range s.Cases {
			p.depth++
			p.pad()
			if c.Test != nil {
				p.b.WriteString("case ")
				p.expr(c.Test, 0)
				p.b.WriteString(":")
			} else {
				p.b.WriteString("default:")
			}
			p.nl()
			p.depth++
			for _, inner := range c.Body {
				p.stmt(inner)
			}
			p.depth -= 2
		}
		p.pad()
		p.b.WriteString("}")
		p.nl()
	case *TryStmt:
		p.pad()
		p.b.WriteString("try ")
		p.block(s.Block.Body)
		if s.Catch != nil {
			p.b.WriteString(" catch (")
			p.b.WriteString(p.name(s.Param.Binding, s.Param.Name))
			p.b.WriteString(") ")
			p.block(s.Catch.Body)
		}
		if s.Finally != nil {
			p.b.WriteString(" finally ")
			p.block(s.Finally.Body)
		}
		p.nl()
	case *ThrowStmt:
		p.pad()
		p.b.WriteString("throw ")
		p.expr(s.Value, 0)
		p.b.WriteString(";")
		p.nl()
	case *BreakStmt:
		p.pad()
		p.b.WriteString("break")
		if s.Label != "" {
			p.b.WriteString(" " + s.Label)
		}
		p.b.WriteString(";")
		p.nl()
	case *ContinueStmt:
		p.pad()
		p.b.WriteString("continue")
		if s.Label != "" {
			p.b.WriteString(" " + s.Label)
		}
		p.b.WriteString(";")
		p.nl()
	case *LabeledStmt:
		// The label must attach to the statement itself, so the body is
		// printed directly rather than wrapped in a block.
		p.pad()
		p.b.WriteString(s.Label)
		p.b.WriteString(": ")
		out := p.captureStmt(s.Stmt)
		p.b.WriteString(strings.TrimPrefix(out, strings.Repeat("  ", p.depth)))
		p.nl()
	case *EmptyStmt:
		p.pad()
		p.b.WriteString(";")
		p.nl()
	default:
		p.pad()
		p.b.WriteString(fmt.Sprintf("/* unexpected %s */", s.Variant()))
		p.nl()
	}
}

func (p *printer) ifStmt(s *IfStmt) {
	p.b.WriteString("if (")
	p.expr(s.Cond, 0)
	p.b.WriteString(") ")
	p.nested(s.Then)
	if s.Else == nil {
		return
	}
	p.b.WriteString(" else ")
	if elseIf, ok := s.Else.(*IfStmt); ok {
		p.ifStmt(elseIf)
		return
	}
	p.nested(s.Else)
}

// nested prints a statement in body position (after a loop or if
// header). With BracketizeBlocks every body becomes a braced block.
func (p *printer) nested(s Stmt) {
	if block, ok := s.(*BlockStmt); ok {
		p.block(block.Body)
		return
	}
	if p.opts.BracketizeBlocks {
		p.block([]Stmt{s})
		return
	}
	// Single-statement body on its own line
	p.nl()
	p.depth++
	trimmed := p.captureStmt(s)
	p.b.WriteString(trimmed)
	p.depth--
}

// captureStmt prints s at the current depth and returns it without the
// trailing newline.
func (p *printer) captureStmt(s Stmt) string {
	sub := &printer{opts: p.opts, depth: p.depth}
	sub.stmt(s)
	return strings.TrimSuffix(sub.b.String(), "\n")
}

func (p *printer) block(body []Stmt) {
	if len(body) == 0 {
		p.b.WriteString("{}")
		return
	}
	p.b.WriteString("{")
	p.nl()
	p.depth++
	for _, s := range body {
		p.stmt(s)
	}
	p.depth--
	p.pad()
	p.b.WriteString("}")
}

// varStmt prints the var statement without the trailing semicolon.
// multiline enables the one-declarator-per-line rule; for-loop headers
// pass false.
func (p *printer) varStmt(s *VarStmt, multiline bool) {
	p.b.WriteString("var ")
	for i, d := range s.Decls {
		if i > 0 {
			if multiline && p.opts.DeclaratorsOnePerLine {
				p.b.WriteString(",")
				p.nl()
				p.pad()
				p.b.WriteString("    ")
			} else {
				p.b.WriteString(", ")
			}
		}
		p.b.WriteString(p.name(d.Binding, d.Name))
		if d.Init != nil {
			p.b.WriteString(" = ")
			p.expr(d.Init, precAssign)
		}
	}
}

func (p *printer) function(fn *FuncLit) {
	p.b.WriteString("function")
	if fn.Name != "" {
		p.b.WriteByte(' ')
		p.b.WriteString(p.name(fn.NameBinding, fn.Name))
	}
	p.b.WriteByte('(')
	for i, param := range fn.Params {
		if i > 0 {
			p.b.WriteString(", ")
		}
		p.b.WriteString(p.name(param.Binding, param.Name))
	}
	p.b.WriteString(") ")
	p.block(fn.Body)
}

// exprStartsAmbiguously reports whether an expression in statement
// position would be misparsed without parentheses because it starts
// with 'function' or '{'.
func exprStartsAmbiguously(e Expr) bool {
	switch e := e.(type) {
	case *FuncLit, *ObjectLit:
		return true
	case *CallExpr:
		if e.New {
			return false
		}
		return exprStartsAmbiguously(e.Callee)
	case *MemberExpr:
		return exprStartsAmbiguously(e.Object)
	case *BinaryExpr:
		return exprStartsAmbiguously(e.Left)
	case *AssignExpr:
		return exprStartsAmbiguously(e.Target)
	case *CondExpr:
		return exprStartsAmbiguously(e.Cond)
	case *SeqExpr:
		return len(e.Exprs) > 0 && exprStartsAmbiguously(e.Exprs[0])
	case *UnaryExpr:
		if e.Postfix {
			return exprStartsAmbiguously(e.Operand)
		}
		return false
	default:
		return false
	}
}

// Expressions

// expr prints e, parenthesizing when its precedence is below min.
func (p *printer) expr(e Expr, min int) {
	if exprPrec(e) < min {
		p.b.WriteByte('(')
		p.exprInner(e)
		p.b.WriteByte(')')
		return
	}
	p.exprInner(e)
}

func (p *printer) exprInner(e Expr) {
	switch e := e.(type) {
	case *Ident:
		p.b.WriteString(p.name(e.Binding, e.Name))
	case *StringLit:
		p.b.WriteString(quoteString(e.Value, p.opts.ASCIIOnly))
	case *NumberLit:
		if e.Raw != "" {
			p.b.WriteString(e.Raw)
		} else {
			p.b.WriteString(strconv.FormatFloat(e.Value, 'g', -1, 64))
		}
	case *BoolLit:
		if e.Value {
			p.b.WriteString("true")
		} else {
			p.b.WriteString("false")
		}
	case *NullLit:
		p.b.WriteString("null")
	case *RegexLit:
		p.b.WriteString(e.Raw)
	case *ArrayLit:
		p.b.WriteByte('[')
		for i, el := range e.Elems {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expr(el, precAssign)
		}
		p.b.WriteByte(']')
	case *ObjectLit:
		if len(e.Props) == 0 {
			p.b.WriteString("{}")
			return
		}
		p.b.WriteString("{ ")
		for i, prop := range e.Props {
			if i > 0 {
				p.b.WriteString(", ")
			}
			if prop.Quoted {
				p.b.WriteString(quoteString(prop.Key, p.opts.ASCIIOnly))
			} else {
				p.b.WriteString(prop.Key)
			}
			p.b.WriteString(": ")
			p.expr(prop.Value, precAssign)
		}
		p.b.WriteString(" }")
	case *FuncLit:
		p.function(e)
	case *CallExpr:
		if e.New {
			p.b.WriteString("new ")
			p.expr(e.Callee, precMember)
		} else {
			p.expr(e.Callee, precCall)
		}
		p.b.WriteByte('(')
		for i, a := range e.Args {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expr(a, precAssign)
		}
		p.b.WriteByte(')')
	case *MemberExpr:
		p.expr(e.Object, precCall)
		if e.Index != nil {
			p.b.WriteByte('[')
			p.expr(e.Index, 0)
			p.b.WriteByte(']')
		} else {
			p.b.WriteByte('.')
			p.b.WriteString(e.Property)
		}
	case *UnaryExpr:
		if e.Postfix {
			p.expr(e.Operand, precPostfix)
			p.b.WriteString(e.Op)
			return
		}
		p.b.WriteString(e.Op)
		switch e.Op {
		case "typeof", "void", "delete":
			p.b.WriteByte(' ')
		case "-", "+":
			// Avoid gluing into -- or ++
			if inner, ok := e.Operand.(*UnaryExpr); ok && !inner.Postfix && strings.HasPrefix(inner.Op, e.Op) {
				p.b.WriteByte(' ')
			}
		}
		p.expr(e.Operand, precUnary)
	case *BinaryExpr:
		prec := exprPrec(e)
		p.expr(e.Left, prec)
		p.b.WriteByte(' ')
		p.b.WriteString(e.Op)
		p.b.WriteByte(' ')
		p.expr(e.Right, prec+1)
	case *AssignExpr:
		p.expr(e.Target, precUnary)
		p.b.WriteByte(' ')
		p.b.WriteString(e.Op)
		p.b.WriteByte(' ')
		p.expr(e.Value, precAssign)
	case *CondExpr:
		p.expr(e.Cond, precCond+1)
		p.b.WriteString(" ? ")
		p.expr(e.Then, precAssign)
		p.b.WriteString(" : ")
		p.expr(e.Else, precAssign)
	case *SeqExpr:
		for i, x := range e.Exprs {
			if i > 0 {
				p.b.WriteString(", ")
			}
			p.expr(x, precAssign)
		}
	default:
		p.b.WriteString(fmt.Sprintf("/* unexpected %s */", e.Variant()))
	}
}

// quoteString renders value as a double-quoted string literal.
func quoteString(value string, asciiOnly bool) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 {
				b.WriteString(fmt.Sprintf(`\x%02x`, r))
			} else if asciiOnly && r > 0x7e {
				if r > 0xffff {
					// Encode as a surrogate pair
					r -= 0x10000
					b.WriteString(fmt.Sprintf(`\u%04x\u%04x`, 0xd800+(r>>10), 0xdc00+(r&0x3ff)))
				} else {
					b.WriteString(fmt.Sprintf(`\u%04x`, r))
				}
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
