package js

// Node is implemented by every tree node.
type Node interface {
	Variant() string
}

// Expr is implemented by expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root of a parsed file.
type Program struct {
	File string
	Body []Stmt

	// unresolved holds the shared binding for each name that resolves to
	// no declaration, one per name. Populated by ResolveScopes.
	unresolved map[string]*Binding
}

func (p *Program) Variant() string { return "program" }

// BindKind describes what declared a binding.
type BindKind uint8

const (
	BindUnresolved BindKind = iota // no declaration found
	BindParam                      // function parameter
	BindVar                        // var declarator
	BindFunc                       // function declaration name
	BindCatch                      // catch clause parameter
)

var bindKindNames = [...]string{
	BindUnresolved: "unresolved",
	BindParam:      "param",
	BindVar:        "var",
	BindFunc:       "func",
	BindCatch:      "catch",
}

func (k BindKind) String() string { return bindKindNames[k] }

// A Binding ties together all identifiers that denote the same variable.
// ResolveScopes computes a binding for every Ident, Param, and VarDecl.
type Binding struct {
	Name string
	Kind BindKind
}

// Expressions

// Ident is an identifier reference. Binding is nil until ResolveScopes.
type Ident struct {
	Name    string
	Binding *Binding
}

// StringLit is a string literal. Value is the decoded text.
type StringLit struct {
	Value string
}

// NumberLit is a numeric literal. Raw preserves the source spelling so
// ids like 0x1f or 1e3 survive a round trip.
type NumberLit struct {
	Value float64
	Raw   string
}

// BoolLit is true or false.
type BoolLit struct {
	Value bool
}

// NullLit is the null literal.
type NullLit struct{}

// RegexLit is a regular expression literal, kept verbatim.
type RegexLit struct {
	Raw string
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Elems []Expr
}

// Property is one key-value pair of an object literal. Key is the
// decoded key text used for identity comparisons; Quoted records whether
// the source spelled it as a string literal.
type Property struct {
	Key    string
	Quoted bool
	Value  Expr
}

// ObjectLit is an object literal. Property order is source order.
type ObjectLit struct {
	Props []Property
}

// Param is one positional function parameter.
type Param struct {
	Name    string
	Binding *Binding
}

// FuncLit is a function expression or the function part of a declaration.
type FuncLit struct {
	Name        string // empty for anonymous expressions
	NameBinding *Binding
	Params      []*Param
	Body        []Stmt
}

// CallExpr is a call or new expression.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	New    bool
}

// MemberExpr is property access. Index non-nil means computed access
// obj[expr]; otherwise obj.Property.
type MemberExpr struct {
	Object   Expr
	Property string
	Index    Expr
}

// UnaryExpr is a prefix or postfix unary operation.
type UnaryExpr struct {
	Op      string
	Operand Expr
	Postfix bool
}

// BinaryExpr is a binary operation, including logical operators.
type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

// AssignExpr is an assignment, possibly compound (+=, >>>=, ...).
type AssignExpr struct {
	Op     string
	Target Expr
	Value  Expr
}

// CondExpr is the ternary conditional.
type CondExpr struct {
	Cond Expr
	Then Expr
	Else Expr
}

// SeqExpr is a comma sequence.
type SeqExpr struct {
	Exprs []Expr
}

func (*Ident) Variant() string      { return "identifier" }
func (*StringLit) Variant() string  { return "string literal" }
func (*NumberLit) Variant() string  { return "number literal" }
func (*BoolLit) Variant() string    { return "boolean literal" }
func (*NullLit) Variant() string    { return "null literal" }
func (*RegexLit) Variant() string   { return "regex literal" }
func (*ArrayLit) Variant() string   { return "array literal" }
func (*ObjectLit) Variant() string  { return "object literal" }
func (*FuncLit) Variant() string    { return "function expression" }
func (*CallExpr) Variant() string   { return "call expression" }
func (*MemberExpr) Variant() string { return "member expression" }
func (*UnaryExpr) Variant() string  { return "unary expression" }
func (*BinaryExpr) Variant() string { return "binary expression" }
func (*AssignExpr) Variant() string { return "assignment" }
func (*CondExpr) Variant() string   { return "conditional expression" }
func (*SeqExpr) Variant() string    { return "sequence expression" }

func (*Ident) exprNode()      {}
func (*StringLit) exprNode()  {}
func (*NumberLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*NullLit) exprNode()    {}
func (*RegexLit) exprNode()   {}
func (*ArrayLit) exprNode()   {}
func (*ObjectLit) exprNode()  {}
func (*FuncLit) exprNode()    {}
func (*CallExpr) exprNode()   {}
func (*MemberExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
func (*CondExpr) exprNode()   {}
func (*SeqExpr) exprNode()    {}

// Statements

// ExprStmt is an expression in statement position.
type ExprStmt struct {
	X Expr
}

// VarDecl is a single declarator of a var statement.
type VarDecl struct {
	Name    string
	Binding *Binding
	Init    Expr // nil when absent
}

// VarStmt is a var statement with one or more declarators.
type VarStmt struct {
	Decls []*VarDecl
}

// FuncDecl is a function declaration statement.
type FuncDecl struct {
	Fn *FuncLit
}

// ReturnStmt returns Value, which may be nil.
type ReturnStmt struct {
	Value Expr
}

// BlockStmt is a braced statement list.
type BlockStmt struct {
	Body []Stmt
}

// IfStmt is if/else. Else may be nil, a BlockStmt, or another IfStmt.
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

// WhileStmt is a while loop.
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

// DoWhileStmt is a do-while loop.
type DoWhileStmt struct {
	Body Stmt
	Cond Expr
}

// ForStmt is a classic three-clause for loop. Init is nil, a VarStmt, or
// an ExprStmt; Cond and Post may be nil.
type ForStmt struct {
	Init Stmt
	Cond Expr
	Post Expr
	Body Stmt
}

// ForInStmt is a for-in loop. Decl is set for `for (var k in o)`,
// otherwise Target holds the assignment target.
type ForInStmt struct {
	Decl   *VarDecl
	Target Expr
	Object Expr
	Body   Stmt
}

// SwitchCase is one case clause; Test nil means default.
type SwitchCase struct {
	Test Expr
	Body []Stmt
}

// SwitchStmt is a switch statement.
type SwitchStmt struct {
	Disc  Expr
	Cases []SwitchCase
}

// TryStmt is try/catch/finally. Catch and Finally may each be nil, but
// not both.
type TryStmt struct {
	Block   *BlockStmt
	Param   *Param
	Catch   *BlockStmt
	Finally *BlockStmt
}

// ThrowStmt throws Value.
type ThrowStmt struct {
	Value Expr
}

// BreakStmt exits a loop or switch; Label optional.
type BreakStmt struct {
	Label string
}

// ContinueStmt continues a loop; Label optional.
type ContinueStmt struct {
	Label string
}

// LabeledStmt is a labeled statement.
type LabeledStmt struct {
	Label string
	Stmt  Stmt
}

// EmptyStmt is a lone semicolon.
type EmptyStmt struct{}

func (*ExprStmt) Variant() string     { return "expression statement" }
func (*VarStmt) Variant() string      { return "var statement" }
func (*FuncDecl) Variant() string     { return "function declaration" }
func (*ReturnStmt) Variant() string   { return "return statement" }
func (*BlockStmt) Variant() string    { return "block" }
func (*IfStmt) Variant() string       { return "if statement" }
func (*WhileStmt) Variant() string    { return "while statement" }
func (*DoWhileStmt) Variant() string  { return "do-while statement" }
func (*ForStmt) Variant() string      { return "for statement" }
func (*ForInStmt) Variant() string    { return "for-in statement" }
func (*SwitchStmt) Variant() string   { return "switch statement" }
func (*TryStmt) Variant() string      { return "try statement" }
func (*ThrowStmt) Variant() string    { return "throw statement" }
func (*BreakStmt) Variant() string    { return "break statement" }
func (*ContinueStmt) Variant() string { return "continue statement" }
func (*LabeledStmt) Variant() string  { return "labeled statement" }
func (*EmptyStmt) Variant() string    { return "empty statement" }

func (*ExprStmt) stmtNode()     {}
func (*VarStmt) stmtNode()      {}
func (*FuncDecl) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoWhileStmt) stmtNode()  {}
func (*ForStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()    {}
func (*SwitchStmt) stmtNode()   {}
func (*TryStmt) stmtNode()      {}
func (*ThrowStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*LabeledStmt) stmtNode()  {}
func (*EmptyStmt) stmtNode()    {}
