package js

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses src into a Program. fileTag names the input in error
// messages and on the returned tree.
func Parse(src, fileTag string) (*Program, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	body, err := p.parseStatements(func() bool { return p.peek() == nil })
	if err != nil {
		return nil, err
	}
	return &Program{File: fileTag, Body: body}, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	return &p.tokens[p.pos]
}

func (p *parser) next() *token {
	if p.pos >= len(p.tokens) {
		return nil
	}
	t := &p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) at(value string) bool {
	t := p.peek()
	return t != nil && t.Value == value && (t.Type == tokPunct || t.Type == tokIdent)
}

func (p *parser) eat(value string) bool {
	if p.at(value) {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(value string) error {
	t := p.next()
	if t == nil {
		return fmt.Errorf("unexpected end of input, expected %q", value)
	}
	if t.Value != value {
		return fmt.Errorf("line %d: expected %q, got %q", t.Line, value, t.Value)
	}
	return nil
}

// semicolon consumes a statement terminator, applying automatic
// semicolon insertion: a newline, '}', or end of input also terminates.
func (p *parser) semicolon() error {
	t := p.peek()
	if t == nil || t.Value == "}" || t.NewlineBefore {
		return nil
	}
	if t.Value == ";" {
		p.pos++
		return nil
	}
	return fmt.Errorf("line %d: expected ';', got %q", t.Line, t.Value)
}

func (p *parser) parseStatements(done func() bool) ([]Stmt, error) {
	var body []Stmt
	for !done() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, s)
	}
	return body, nil
}

func (p *parser) parseBlock() (*BlockStmt, error) {
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	body, err := p.parseStatements(func() bool { return p.peek() == nil || p.at("}") })
	if err != nil {
		return nil, err
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return &BlockStmt{Body: body}, nil
}

func (p *parser) parseStatement() (Stmt, error) {
	t := p.peek()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected statement")
	}

	if t.Type == tokPunct {
		switch t.Value {
		case "{":
			return p.parseBlock()
		case ";":
			p.pos++
			return &EmptyStmt{}, nil
		}
	}

	if t.Type == tokIdent {
		switch t.Value {
		case "var":
			p.pos++
			decls, err := p.parseVarDecls(false)
			if err != nil {
				return nil, err
			}
			if err := p.semicolon(); err != nil {
				return nil, err
			}
			return &VarStmt{Decls: decls}, nil
		case "function":
			p.pos++
			fn, err := p.parseFunction(true)
			if err != nil {
				return nil, err
			}
			return &FuncDecl{Fn: fn}, nil
		case "if":
			return p.parseIf()
		case "while":
			return p.parseWhile()
		case "do":
			return p.parseDoWhile()
		case "for":
			return p.parseFor()
		case "return":
			p.pos++
			nxt := p.peek()
			if nxt == nil || nxt.Value == ";" || nxt.Value == "}" || nxt.NewlineBefore {
				p.eat(";")
				return &ReturnStmt{}, nil
			}
			value, err := p.parseExpression(false)
			if err != nil {
				return nil, err
			}
			if err := p.semicolon(); err != nil {
				return nil, err
			}
			return &ReturnStmt{Value: value}, nil
		case "break", "continue":
			p.pos++
			label := ""
			if nxt := p.peek(); nxt != nil && nxt.Type == tokIdent && !nxt.NewlineBefore && !reserved[nxt.Value] {
				label = nxt.Value
				p.pos++
			}
			if err := p.semicolon(); err != nil {
				return nil, err
			}
			if t.Value == "break" {
				return &BreakStmt{Label: label}, nil
			}
			return &ContinueStmt{Label: label}, nil
		case "throw":
			p.pos++
			value, err := p.parseExpression(false)
			if err != nil {
				return nil, err
			}
			if err := p.semicolon(); err != nil {
				return nil, err
			}
			return &ThrowStmt{Value: value}, nil
		case "try":
			return p.parseTry()
		case "switch":
			return p.parseSwitch()
		}

		// Labeled statement
		if !reserved[t.Value] && p.pos+1 < len(p.tokens) && p.tokens[p.pos+1].Value == ":" {
			label := t.Value
			p.pos += 2
			inner, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			return &LabeledStmt{Label: label, Stmt: inner}, nil
		}
	}

	x, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	if err := p.semicolon(); err != nil {
		return nil, err
	}
	return &ExprStmt{X: x}, nil
}

var reserved = map[string]bool{
	"var": true, "function": true, "return": true, "if": true, "else": true,
	"while": true, "do": true, "for": true, "in": true, "new": true,
	"typeof": true, "instanceof": true, "void": true, "delete": true,
	"null": true, "true": true, "false": true, "break": true,
	"continue": true, "throw": true, "try": true, "catch": true,
	"finally": true, "switch": true, "case": true, "default": true,
}

func (p *parser) parseVarDecls(noIn bool) ([]*VarDecl, error) {
	var decls []*VarDecl
	for {
		t := p.next()
		if t == nil || t.Type != tokIdent || reserved[t.Value] {
			return nil, fmt.Errorf("expected declarator name, got %v", tokenText(t))
		}
		d := &VarDecl{Name: t.Value}
		if p.eat("=") {
			init, err := p.parseAssign(noIn)
			if err != nil {
				return nil, err
			}
			d.Init = init
		}
		decls = append(decls, d)
		if !p.eat(",") {
			return decls, nil
		}
	}
}

func tokenText(t *token) string {
	if t == nil {
		return "end of input"
	}
	return fmt.Sprintf("%q (line %d)", t.Value, t.Line)
}

func (p *parser) parseFunction(named bool) (*FuncLit, error) {
	fn := &FuncLit{}
	if t := p.peek(); t != nil && t.Type == tokIdent && !reserved[t.Value] {
		fn.Name = t.Value
		p.pos++
	} else if named {
		return nil, fmt.Errorf("expected function name, got %v", tokenText(t))
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	for !p.at(")") {
		t := p.next()
		if t == nil || t.Type != tokIdent || reserved[t.Value] {
			return nil, fmt.Errorf("expected parameter name, got %v", tokenText(t))
		}
		fn.Params = append(fn.Params, &Param{Name: t.Value})
		if !p.eat(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = block.Body
	return fn, nil
}

func (p *parser) parseIf() (Stmt, error) {
	p.pos++ // 'if'
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &IfStmt{Cond: cond, Then: then}
	if p.eat("else") {
		alt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Else = alt
	}
	return stmt, nil
}

func (p *parser) parseWhile() (Stmt, error) {
	p.pos++ // 'while'
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Cond: cond, Body: body}, nil
}

func (p *parser) parseDoWhile() (Stmt, error) {
	p.pos++ // 'do'
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if err := p.expect("while"); err != nil {
		return nil, err
	}
	if err := p.expect("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	p.eat(";")
	return &DoWhileStmt{Body: body, Cond: cond}, nil
}

func (p *parser) parseFor() (Stmt, error) {
	p.pos++ // 'for'
	if err := p.expect("("); err != nil {
		return nil, err
	}

	var init Stmt
	if p.eat("var") {
		decls, err := p.parseVarDecls(true)
		if err != nil {
			return nil, err
		}
		if p.eat("in") {
			if len(decls) != 1 {
				return nil, fmt.Errorf("for-in with %d declarators", len(decls))
			}
			return p.parseForInTail(decls[0], nil)
		}
		init = &VarStmt{Decls: decls}
	} else if !p.at(";") {
		x, err := p.parseExpression(true)
		if err != nil {
			return nil, err
		}
		if p.eat("in") {
			return p.parseForInTail(nil, x)
		}
		init = &ExprStmt{X: x}
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}

	stmt := &ForStmt{Init: init}
	if !p.at(";") {
		cond, err := p.parseExpression(false)
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if err := p.expect(";"); err != nil {
		return nil, err
	}
	if !p.at(")") {
		post, err := p.parseExpression(false)
		if err != nil {
			return nil, err
		}
		stmt.Post = post
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *parser) parseForInTail(decl *VarDecl, target Expr) (Stmt, error) {
	object, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &ForInStmt{Decl: decl, Target: target, Object: object, Body: body}, nil
}

func (p *parser) parseTry() (Stmt, error) {
	p.pos++ // 'try'
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	stmt := &TryStmt{Block: block}
	if p.eat("catch") {
		if err := p.expect("("); err != nil {
			return nil, err
		}
		t := p.next()
		if t == nil || t.Type != tokIdent || reserved[t.Value] {
			return nil, fmt.Errorf("expected catch parameter, got %v", tokenText(t))
		}
		stmt.Param = &Param{Name: t.Value}
		if err := p.expect(")"); err != nil {
			return nil, err
		}
		catch, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Catch = catch
	}
	if p.eat("finally") {
		finally, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		stmt.Finally = finally
	}
	if stmt.Catch == nil && stmt.Finally == nil {
		return nil, fmt.Errorf("try without catch or finally")
	}
	return stmt, nil
}

func (p *parser) parseSwitch() (Stmt, error) {
	p.pos++ // 'switch'
	if err := p.expect("("); err != nil {
		return nil, err
	}
	disc, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	if err := p.expect("{"); err != nil {
		return nil, err
	}
	stmt := &SwitchStmt{Disc: disc}
	for !p.at("}") {
		var c SwitchCase
		if p.eat("case") {
			test, err := p.parseExpression(false)
			if err != nil {
				return nil, err
			}
			c.Test = test
		} else if !p.eat("default") {
			return nil, fmt.Errorf("expected 'case' or 'default', got %v", tokenText(p.peek()))
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		body, err := p.parseStatements(func() bool {
			return p.peek() == nil || p.at("}") || p.at("case") || p.at("default")
		})
		if err != nil {
			return nil, err
		}
		c.Body = body
		stmt.Cases = append(stmt.Cases, c)
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Expressions

// parseExpression parses a full expression including comma sequences.
// noIn suppresses the 'in' operator for for-loop headers.
func (p *parser) parseExpression(noIn bool) (Expr, error) {
	x, err := p.parseAssign(noIn)
	if err != nil {
		return nil, err
	}
	if !p.at(",") {
		return x, nil
	}
	seq := &SeqExpr{Exprs: []Expr{x}}
	for p.eat(",") {
		next, err := p.parseAssign(noIn)
		if err != nil {
			return nil, err
		}
		seq.Exprs = append(seq.Exprs, next)
	}
	return seq, nil
}

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"<<=": true, ">>=": true, ">>>=": true, "&=": true, "|=": true, "^=": true,
}

func (p *parser) parseAssign(noIn bool) (Expr, error) {
	x, err := p.parseConditional(noIn)
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t == nil || t.Type != tokPunct || !assignOps[t.Value] {
		return x, nil
	}
	p.pos++
	value, err := p.parseAssign(noIn)
	if err != nil {
		return nil, err
	}
	return &AssignExpr{Op: t.Value, Target: x, Value: value}, nil
}

func (p *parser) parseConditional(noIn bool) (Expr, error) {
	x, err := p.parseBinary(1, noIn)
	if err != nil {
		return nil, err
	}
	if !p.eat("?") {
		return x, nil
	}
	then, err := p.parseAssign(false)
	if err != nil {
		return nil, err
	}
	if err := p.expect(":"); err != nil {
		return nil, err
	}
	alt, err := p.parseAssign(noIn)
	if err != nil {
		return nil, err
	}
	return &CondExpr{Cond: x, Then: then, Else: alt}, nil
}

// binaryPrec maps operators to binding power; 0 means not a binary op.
var binaryPrec = map[string]int{
	"||": 1,
	"&&": 2,
	"|":  3,
	"^":  4,
	"&":  5,
	"==": 6, "!=": 6, "===": 6, "!==": 6,
	"<": 7, ">": 7, "<=": 7, ">=": 7, "instanceof": 7, "in": 7,
	"<<": 8, ">>": 8, ">>>": 8,
	"+": 9, "-": 9,
	"*": 10, "/": 10, "%": 10,
}

func (p *parser) parseBinary(minPrec int, noIn bool) (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t == nil {
			return left, nil
		}
		op := t.Value
		if op == "in" && noIn {
			return left, nil
		}
		prec := binaryPrec[op]
		if prec == 0 || prec < minPrec {
			return left, nil
		}
		if t.Type == tokIdent && op != "in" && op != "instanceof" {
			return left, nil
		}
		p.pos++
		right, err := p.parseBinary(prec+1, noIn)
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	t := p.peek()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected expression")
	}
	switch t.Value {
	case "!", "~", "+", "-", "++", "--":
		if t.Type == tokPunct {
			p.pos++
			operand, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			return &UnaryExpr{Op: t.Value, Operand: operand}, nil
		}
	case "typeof", "void", "delete":
		p.pos++
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: t.Value, Operand: operand}, nil
	case "new":
		p.pos++
		callee, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		call := &CallExpr{Callee: callee, New: true}
		if p.at("(") {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			call.Args = args
		}
		return p.parseCallTail(call)
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (Expr, error) {
	x, err := p.parseCallMember()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t != nil && t.Type == tokPunct && (t.Value == "++" || t.Value == "--") && !t.NewlineBefore {
		p.pos++
		return &UnaryExpr{Op: t.Value, Operand: x, Postfix: true}, nil
	}
	return x, nil
}

// parseMember parses a primary expression plus member accesses, without
// consuming call arguments. Used for 'new' callees.
func (p *parser) parseMember() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseMemberTail(x)
}

func (p *parser) parseMemberTail(x Expr) (Expr, error) {
	for {
		switch {
		case p.eat("."):
			t := p.next()
			if t == nil || t.Type != tokIdent {
				return nil, fmt.Errorf("expected property name, got %v", tokenText(t))
			}
			x = &MemberExpr{Object: x, Property: t.Value}
		case p.eat("["):
			idx, err := p.parseExpression(false)
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			x = &MemberExpr{Object: x, Index: idx}
		default:
			return x, nil
		}
	}
}

func (p *parser) parseCallMember() (Expr, error) {
	x, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return p.parseCallTail(x)
}

func (p *parser) parseCallTail(x Expr) (Expr, error) {
	for {
		switch {
		case p.at("("):
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			x = &CallExpr{Callee: x, Args: args}
		case p.eat("."):
			t := p.next()
			if t == nil || t.Type != tokIdent {
				return nil, fmt.Errorf("expected property name, got %v", tokenText(t))
			}
			x = &MemberExpr{Object: x, Property: t.Value}
		case p.eat("["):
			idx, err := p.parseExpression(false)
			if err != nil {
				return nil, err
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			x = &MemberExpr{Object: x, Index: idx}
		default:
			return x, nil
		}
	}
}

func (p *parser) parseArgs() ([]Expr, error) {
	if err := p.expect("("); err != nil {
		return nil, err
	}
	args := []Expr{}
	for !p.at(")") {
		a, err := p.parseAssign(false)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if !p.eat(",") {
			break
		}
	}
	if err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	if t == nil {
		return nil, fmt.Errorf("unexpected end of input, expected expression")
	}

	switch t.Type {
	case tokString:
		return &StringLit{Value: t.Value}, nil
	case tokNumber:
		v, err := parseNumber(t.Value)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", t.Line, err)
		}
		return &NumberLit{Value: v, Raw: t.Value}, nil
	case tokRegex:
		return &RegexLit{Raw: t.Value}, nil
	case tokIdent:
		switch t.Value {
		case "null":
			return &NullLit{}, nil
		case "true":
			return &BoolLit{Value: true}, nil
		case "false":
			return &BoolLit{Value: false}, nil
		case "function":
			return p.parseFunction(false)
		}
		if reserved[t.Value] && t.Value != "this" {
			return nil, fmt.Errorf("line %d: unexpected keyword %q", t.Line, t.Value)
		}
		return &Ident{Name: t.Value}, nil
	case tokPunct:
		switch t.Value {
		case "(":
			x, err := p.parseExpression(false)
			if err != nil {
				return nil, err
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			return x, nil
		case "[":
			arr := &ArrayLit{Elems: []Expr{}}
			for !p.at("]") {
				e, err := p.parseAssign(false)
				if err != nil {
					return nil, err
				}
				arr.Elems = append(arr.Elems, e)
				if !p.eat(",") {
					break
				}
			}
			if err := p.expect("]"); err != nil {
				return nil, err
			}
			return arr, nil
		case "{":
			return p.parseObject()
		}
	}
	return nil, fmt.Errorf("line %d: unexpected token %q", t.Line, t.Value)
}

func (p *parser) parseObject() (Expr, error) {
	obj := &ObjectLit{}
	for !p.at("}") {
		t := p.next()
		if t == nil {
			return nil, fmt.Errorf("unexpected end of input in object literal")
		}
		prop := Property{Key: t.Value}
		switch t.Type {
		case tokString:
			prop.Quoted = true
		case tokIdent, tokNumber:
			// bare key
		default:
			return nil, fmt.Errorf("line %d: expected property key, got %q", t.Line, t.Value)
		}
		if err := p.expect(":"); err != nil {
			return nil, err
		}
		value, err := p.parseAssign(false)
		if err != nil {
			return nil, err
		}
		prop.Value = value
		obj.Props = append(obj.Props, prop)
		if !p.eat(",") {
			break
		}
	}
	if err := p.expect("}"); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseNumber(raw string) (float64, error) {
	if strings.HasPrefix(raw, "0x") || strings.HasPrefix(raw, "0X") {
		v, err := strconv.ParseUint(raw[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", raw)
		}
		return float64(v), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}
