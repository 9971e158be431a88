package ast

// Program is the root node: a list of top-level statements. The engine's
// AppendCode operation (spec.md §6.2) mutates Body in place on the live
// root frame, so Body is not copied once execution has started.
type Program struct {
	stmtBase
	Body []Stmt
}

func (*Program) Kind() Kind { return KindProgram }

// EvalProgram is a Program-shaped node tagged distinctly for eval'd
// code (spec.md §6.1 "a synthetic EvalProgram_"). No code path builds
// one: the interpreter's eval parses its argument into a plain Program
// and runs that.
type EvalProgram struct {
	stmtBase
	Body   []Stmt
	Strict bool
}

func (*EvalProgram) Kind() Kind { return KindEvalProgram }

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	stmtBase
	Expression Expr
}

func (*ExpressionStatement) Kind() Kind { return KindExpressionStatement }

// BlockStatement is `{ ... }`.
type BlockStatement struct {
	stmtBase
	Body []Stmt
}

func (*BlockStatement) Kind() Kind { return KindBlockStatement }

// EmptyStatement is a bare `;`.
type EmptyStatement struct{ stmtBase }

func (*EmptyStatement) Kind() Kind { return KindEmptyStatement }

// DebuggerStatement is the `debugger;` statement; the engine treats it as
// a no-op (no attached debugger in this core).
type DebuggerStatement struct{ stmtBase }

func (*DebuggerStatement) Kind() Kind { return KindDebuggerStatement }

// VariableDeclarator is one `name = init` entry of a `var` statement.
type VariableDeclarator struct {
	ID   *Identifier
	Init Expr // nil if uninitialized
}

// VariableDeclaration is spec.md §6.1 `VariableDeclaration`. Only `var` is
// in scope (no `let`/`const`, which are ES6 block-scoping — explicit
// Non-goal, spec.md §1).
type VariableDeclaration struct {
	stmtBase
	Declarations []*VariableDeclarator
}

func (*VariableDeclaration) Kind() Kind { return KindVariableDeclaration }

// FunctionDeclaration is a named function statement, hoisted per spec.md
// §4.4.
type FunctionDeclaration struct {
	stmtBase
	ID     *Identifier
	Params []Param
	Body   *BlockStatement
}

func (*FunctionDeclaration) Kind() Kind { return KindFunctionDeclaration }

// IfStatement is spec.md §6.1 `IfStatement { test, consequent, alternate?
// }`.
type IfStatement struct {
	stmtBase
	Test       Expr
	Consequent Stmt
	Alternate  Stmt // nil if no else-branch
}

func (*IfStatement) Kind() Kind { return KindIfStatement }

// WhileStatement is `while (test) body`.
type WhileStatement struct {
	stmtBase
	Test Expr
	Body Stmt
}

func (*WhileStatement) Kind() Kind { return KindWhileStatement }

// DoWhileStatement is `do body while (test);`.
type DoWhileStatement struct {
	stmtBase
	Test Expr
	Body Stmt
}

func (*DoWhileStatement) Kind() Kind { return KindDoWhileStatement }

// ForStatement is the C-style `for (init; test; update) body`. Init may be
// a *VariableDeclaration or an Expr wrapped as a statement by the parser;
// here it is carried directly as a Node so both forms are representable
// without an extra wrapper type.
type ForStatement struct {
	stmtBase
	Init   Node // *VariableDeclaration, Expr, or nil
	Test   Expr // nil means "always true"
	Update Expr // nil means "no update"
	Body   Stmt
}

func (*ForStatement) Kind() Kind { return KindForStatement }

// ForInStatement is `for (left in right) body`.
type ForInStatement struct {
	stmtBase
	Left  Node // *VariableDeclaration (single declarator) or Expr (Identifier/MemberExpression)
	Right Expr
	Body  Stmt
}

func (*ForInStatement) Kind() Kind { return KindForInStatement }

// SwitchCase is one `case test:` or `default:` arm.
type SwitchCase struct {
	Test       Expr // nil for the default arm
	Consequent []Stmt
}

// SwitchStatement is spec.md §6.1 `SwitchStatement`.
type SwitchStatement struct {
	stmtBase
	Discriminant Expr
	Cases        []SwitchCase
}

func (*SwitchStatement) Kind() Kind { return KindSwitchStatement }

// CatchClause is the `catch (param) body` part of a TryStatement.
type CatchClause struct {
	Param *Identifier
	Body  *BlockStatement
}

// TryStatement is spec.md §6.1 `TryStatement { block, handler?, finalizer?
// }`.
type TryStatement struct {
	stmtBase
	Block     *BlockStatement
	Handler   *CatchClause // nil if no catch
	Finalizer *BlockStatement // nil if no finally
}

func (*TryStatement) Kind() Kind { return KindTryStatement }

// ThrowStatement is `throw argument;`.
type ThrowStatement struct {
	stmtBase
	Argument Expr
}

func (*ThrowStatement) Kind() Kind { return KindThrowStatement }

// ReturnStatement is `return argument?;`.
type ReturnStatement struct {
	stmtBase
	Argument Expr // nil for a bare `return;`
}

func (*ReturnStatement) Kind() Kind { return KindReturnStatement }

// Label is an optional statement label, e.g. the `outer` in
// `outer: for(...)`.
type Label struct {
	Name string
}

// BreakStatement is `break label?;`.
type BreakStatement struct {
	stmtBase
	Label *Label
}

func (*BreakStatement) Kind() Kind { return KindBreakStatement }

// ContinueStatement is `continue label?;`.
type ContinueStatement struct {
	stmtBase
	Label *Label
}

func (*ContinueStatement) Kind() Kind { return KindContinueStatement }

// LabeledStatement is `label: body`.
type LabeledStatement struct {
	stmtBase
	Label Label
	Body  Stmt
}

func (*LabeledStatement) Kind() Kind { return KindLabeledStatement }

// WithStatement is `with (object) body`; see SPEC_FULL.md §3.2 for the
// one documented exception to scopes having null-prototype bags.
type WithStatement struct {
	stmtBase
	Object Expr
	Body   Stmt
}

func (*WithStatement) Kind() Kind { return KindWithStatement }
