// Package jsparse is the default internal/interp.Parser implementation,
// translating github.com/t14raptor/go-fast's AST into internal/ast's
// ES5-subset schema (SPEC_FULL.md §3.7). go-fast parses the broader
// ES2020+ grammar standardbeagle-lci's analyzer wraps
// (internal/analysis/javascript_gofast_analyzer.go); this adapter walks
// only the ES5 subset of its node set and rejects anything else (arrow
// functions, classes, destructuring, generators, template literals,
// spread, let/const) with a clear error rather than silently
// misinterpreting it.
package jsparse

import (
	"fmt"

	gfast "github.com/t14raptor/go-fast/ast"
	"github.com/t14raptor/go-fast/parser"

	"github.com/cwbudde/go-es5ix/internal/ast"
)

// Adapter implements interp.Parser.
type Adapter struct{}

// New returns the default go-fast-backed Parser.
func New() *Adapter { return &Adapter{} }

// Parse implements interp.Parser.
func (a *Adapter) Parse(source string) (*ast.Program, error) {
	prog, err := parser.ParseFile(source)
	if err != nil {
		return nil, err
	}
	out := &ast.Program{}
	for _, item := range prog.Body {
		if item.Stmt == nil {
			continue
		}
		s, err := convertStmt(item.Stmt)
		if err != nil {
			return nil, err
		}
		out.Body = append(out.Body, s)
	}
	return out, nil
}

func unsupported(what string) error {
	return fmt.Errorf("jsparse: %s is outside the ES5 subset this engine implements", what)
}

func convertStmtList(items []gfast.StatementListItem) ([]ast.Stmt, error) {
	var out []ast.Stmt
	for _, item := range items {
		if item.Stmt == nil {
			continue
		}
		s, err := convertStmt(item.Stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func convertExprPtr(e *gfast.Expression) (ast.Expr, error) {
	if e == nil || e.Expr == nil {
		return nil, nil
	}
	return convertExpr(e.Expr)
}

func convertBlock(b *gfast.BlockStatement) (*ast.BlockStatement, error) {
	if b == nil {
		return &ast.BlockStatement{}, nil
	}
	body, err := convertStmtList(b.List)
	if err != nil {
		return nil, err
	}
	return &ast.BlockStatement{Body: body}, nil
}

func convertStmt(s gfast.Stmt) (ast.Stmt, error) {
	switch n := s.(type) {
	case *gfast.ExpressionStatement:
		e, err := convertExprPtr(n.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Expression: e}, nil

	case *gfast.BlockStatement:
		return convertBlock(n)

	case *gfast.EmptyStatement:
		return &ast.EmptyStatement{}, nil

	case *gfast.VariableDeclaration:
		if n.Token.String() != "var" {
			return nil, unsupported("let/const declarations")
		}
		var decls []*ast.VariableDeclarator
		for _, b := range n.List {
			if b.Target == nil || b.Target.Target == nil {
				continue
			}
			ident, ok := b.Target.Target.(*gfast.Identifier)
			if !ok {
				return nil, unsupported("destructuring declarations")
			}
			var init ast.Expr
			if b.Initializer != nil {
				v, err := convertExprPtr(b.Initializer)
				if err != nil {
					return nil, err
				}
				init = v
			}
			decls = append(decls, &ast.VariableDeclarator{ID: &ast.Identifier{Name: ident.Name}, Init: init})
		}
		return &ast.VariableDeclaration{Declarations: decls}, nil

	case *gfast.FunctionDeclaration:
		fn := n.Function
		if fn == nil {
			return nil, unsupported("malformed function declaration")
		}
		if fn.Async || fn.Generator {
			return nil, unsupported("async/generator functions")
		}
		body, err := convertBlock(fn.Body)
		if err != nil {
			return nil, err
		}
		var id *ast.Identifier
		if fn.Name != nil {
			id = &ast.Identifier{Name: fn.Name.Name}
		}
		return &ast.FunctionDeclaration{ID: id, Params: convertParams(fn.ParameterList), Body: body}, nil

	case *gfast.ReturnStatement:
		arg, err := convertExprPtr(n.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStatement{Argument: arg}, nil

	case *gfast.IfStatement:
		test, err := convertExprPtr(n.Test)
		if err != nil {
			return nil, err
		}
		var cons, alt ast.Stmt
		if n.Consequent.Stmt != nil {
			cons, err = convertStmt(n.Consequent.Stmt)
			if err != nil {
				return nil, err
			}
		}
		if n.Alternate.Stmt != nil {
			alt, err = convertStmt(n.Alternate.Stmt)
			if err != nil {
				return nil, err
			}
		}
		return &ast.IfStatement{Test: test, Consequent: cons, Alternate: alt}, nil

	case *gfast.WhileStatement:
		test, err := convertExprPtr(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := convertStmt(n.Body.Stmt)
		if err != nil {
			return nil, err
		}
		return &ast.WhileStatement{Test: test, Body: body}, nil

	case *gfast.DoWhileStatement:
		test, err := convertExprPtr(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := convertStmt(n.Body.Stmt)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhileStatement{Test: test, Body: body}, nil

	case *gfast.ForStatement:
		var init ast.Node
		var err error
		if n.Initializer != nil {
			init, err = convertForInit(n.Initializer)
			if err != nil {
				return nil, err
			}
		}
		test, err := convertExprPtr(n.Test)
		if err != nil {
			return nil, err
		}
		update, err := convertExprPtr(n.Update)
		if err != nil {
			return nil, err
		}
		body, err := convertStmt(n.Body.Stmt)
		if err != nil {
			return nil, err
		}
		return &ast.ForStatement{Init: init, Test: test, Update: update, Body: body}, nil

	case *gfast.ForInStatement:
		left, err := convertForInit(n.Into)
		if err != nil {
			return nil, err
		}
		right, err := convertExprPtr(n.Source)
		if err != nil {
			return nil, err
		}
		body, err := convertStmt(n.Body.Stmt)
		if err != nil {
			return nil, err
		}
		return &ast.ForInStatement{Left: left, Right: right, Body: body}, nil

	case *gfast.BreakStatement:
		return &ast.BreakStatement{Label: convertLabel(n.Label)}, nil

	case *gfast.ContinueStatement:
		return &ast.ContinueStatement{Label: convertLabel(n.Label)}, nil

	case *gfast.ThrowStatement:
		arg, err := convertExprPtr(n.Argument)
		if err != nil {
			return nil, err
		}
		return &ast.ThrowStatement{Argument: arg}, nil

	case *gfast.TryStatement:
		block, err := convertBlock(n.Body)
		if err != nil {
			return nil, err
		}
		var handler *ast.CatchClause
		if n.Catch != nil {
			catchBody, err := convertBlock(n.Catch.Body)
			if err != nil {
				return nil, err
			}
			var param *ast.Identifier
			if ident, ok := n.Catch.Parameter.(*gfast.Identifier); ok {
				param = &ast.Identifier{Name: ident.Name}
			}
			handler = &ast.CatchClause{Param: param, Body: catchBody}
		}
		var finalizer *ast.BlockStatement
		if n.Finally != nil {
			finalizer, err = convertBlock(n.Finally)
			if err != nil {
				return nil, err
			}
		}
		return &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer}, nil

	case *gfast.SwitchStatement:
		disc, err := convertExprPtr(n.Discriminant)
		if err != nil {
			return nil, err
		}
		var cases []ast.SwitchCase
		for _, c := range n.Body {
			test, err := convertExprPtr(c.Test)
			if err != nil {
				return nil, err
			}
			consequent, err := convertStmtList(c.Consequent)
			if err != nil {
				return nil, err
			}
			cases = append(cases, ast.SwitchCase{Test: test, Consequent: consequent})
		}
		return &ast.SwitchStatement{Discriminant: disc, Cases: cases}, nil

	case *gfast.LabelledStatement:
		body, err := convertStmt(n.Statement.Stmt)
		if err != nil {
			return nil, err
		}
		return &ast.LabeledStatement{Label: ast.Label{Name: n.Label.Name}, Body: body}, nil

	case *gfast.WithStatement:
		obj, err := convertExprPtr(n.Object)
		if err != nil {
			return nil, err
		}
		body, err := convertStmt(n.Body.Stmt)
		if err != nil {
			return nil, err
		}
		return &ast.WithStatement{Object: obj, Body: body}, nil

	case *gfast.DebuggerStatement:
		return &ast.DebuggerStatement{}, nil

	case *gfast.ClassDeclaration:
		return nil, unsupported("class declarations")

	default:
		return nil, unsupported(fmt.Sprintf("statement node %T", s))
	}
}

func convertLabel(l *gfast.Identifier) *ast.Label {
	if l == nil {
		return nil
	}
	return &ast.Label{Name: l.Name}
}

// convertForInit handles a for/for-in head, which go-fast represents as
// either a *VariableDeclaration or a bare *Expression.
func convertForInit(n any) (ast.Node, error) {
	switch t := n.(type) {
	case *gfast.VariableDeclaration:
		s, err := convertStmt(t)
		if err != nil {
			return nil, err
		}
		return s, nil
	case *gfast.Expression:
		return convertExprPtr(t)
	case gfast.Expr:
		return convertExpr(t)
	default:
		return nil, nil
	}
}

func convertParams(params []*gfast.Binding) []ast.Param {
	var out []ast.Param
	for _, p := range params {
		if p == nil || p.Target == nil {
			continue
		}
		if ident, ok := p.Target.(*gfast.Identifier); ok {
			out = append(out, ast.Param{Name: ident.Name})
		}
	}
	return out
}

func convertExpr(e gfast.Expr) (ast.Expr, error) {
	switch n := e.(type) {
	case *gfast.Identifier:
		return &ast.Identifier{Name: n.Name}, nil

	case *gfast.NumberLiteral:
		return &ast.Literal{LitKind: ast.LiteralNumber, Number: n.Value}, nil

	case *gfast.StringLiteral:
		return &ast.Literal{LitKind: ast.LiteralString, Str: n.Value}, nil

	case *gfast.BooleanLiteral:
		return &ast.Literal{LitKind: ast.LiteralBool, Bool: n.Value}, nil

	case *gfast.NullLiteral:
		return &ast.Literal{LitKind: ast.LiteralNull}, nil

	case *gfast.RegExpLiteral:
		return &ast.Literal{LitKind: ast.LiteralRegExp, RegexBody: n.Pattern, RegexFlags: n.Flags}, nil

	case *gfast.ThisExpression:
		return &ast.ThisExpression{}, nil

	case *gfast.ArrayLiteral:
		var elems []ast.Expr
		for _, el := range n.Value {
			v, err := convertExprPtr(el)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		return &ast.ArrayExpression{Elements: elems}, nil

	case *gfast.ObjectLiteral:
		var props []ast.Property
		for _, p := range n.Value {
			prop, err := convertObjectProperty(p)
			if err != nil {
				return nil, err
			}
			props = append(props, prop)
		}
		return &ast.ObjectExpression{Properties: props}, nil

	case *gfast.FunctionLiteral:
		if n.Async || n.Generator {
			return nil, unsupported("async/generator function expressions")
		}
		body, err := convertBlock(n.Body)
		if err != nil {
			return nil, err
		}
		var id *ast.Identifier
		if n.Name != nil {
			id = &ast.Identifier{Name: n.Name.Name}
		}
		return &ast.FunctionExpression{ID: id, Params: convertParams(n.ParameterList), Body: body}, nil

	case *gfast.ArrowFunctionLiteral:
		return nil, unsupported("arrow functions")

	case *gfast.MemberExpression:
		obj, err := convertExprPtr(n.Object)
		if err != nil {
			return nil, err
		}
		if n.Property.Prop == nil {
			return nil, unsupported("malformed member expression")
		}
		if ident, ok := n.Property.Prop.(*gfast.Identifier); ok {
			return &ast.MemberExpression{Object: obj, Property: &ast.Identifier{Name: ident.Name}, Computed: false}, nil
		}
		propExpr, ok := n.Property.Prop.(gfast.Expr)
		if !ok {
			return nil, unsupported("member expression property")
		}
		member, err := convertExpr(propExpr)
		if err != nil {
			return nil, err
		}
		return &ast.MemberExpression{Object: obj, Property: member, Computed: true}, nil

	case *gfast.CallExpression:
		callee, err := convertExprPtr(n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := convertArgs(n.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.CallExpression{Callee: callee, Arguments: args}, nil

	case *gfast.NewExpression:
		callee, err := convertExprPtr(n.Callee)
		if err != nil {
			return nil, err
		}
		args, err := convertArgs(n.ArgumentList)
		if err != nil {
			return nil, err
		}
		return &ast.NewExpression{Callee: callee, Arguments: args}, nil

	case *gfast.AssignExpression:
		left, err := convertExprPtr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := convertExprPtr(n.Right)
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{Operator: n.Operator.String(), Left: left, Right: right}, nil

	case *gfast.BinaryExpression:
		left, err := convertExprPtr(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := convertExprPtr(n.Right)
		if err != nil {
			return nil, err
		}
		if n.Operator.String() == "&&" || n.Operator.String() == "||" {
			return &ast.LogicalExpression{Operator: n.Operator.String(), Left: left, Right: right}, nil
		}
		return &ast.BinaryExpression{Operator: n.Operator.String(), Left: left, Right: right}, nil

	case *gfast.UnaryExpression:
		arg, err := convertExprPtr(n.Operand)
		if err != nil {
			return nil, err
		}
		if n.Operator.String() == "++" || n.Operator.String() == "--" {
			return &ast.UpdateExpression{Operator: n.Operator.String(), Argument: arg, Prefix: !n.Postfix}, nil
		}
		return &ast.UnaryExpression{Operator: n.Operator.String(), Argument: arg}, nil

	case *gfast.SequenceExpression:
		var exprs []ast.Expr
		for _, sub := range n.Sequence {
			v, err := convertExprPtr(sub)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, v)
		}
		return &ast.SequenceExpression{Expressions: exprs}, nil

	case *gfast.ConditionalExpression:
		test, err := convertExprPtr(n.Test)
		if err != nil {
			return nil, err
		}
		cons, err := convertExprPtr(n.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := convertExprPtr(n.Alternate)
		if err != nil {
			return nil, err
		}
		return &ast.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}, nil

	case *gfast.SpreadElement:
		return nil, unsupported("spread syntax")

	case *gfast.TemplateLiteral:
		return nil, unsupported("template literals")

	default:
		return nil, unsupported(fmt.Sprintf("expression node %T", e))
	}
}

func convertArgs(args []*gfast.Expression) ([]ast.Expr, error) {
	var out []ast.Expr
	for _, a := range args {
		v, err := convertExprPtr(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func convertObjectProperty(p gfast.Property) (ast.Property, error) {
	switch prop := p.Prop.(type) {
	case *gfast.PropertyKeyed:
		key, computed, err := convertPropertyKey(prop.Key)
		if err != nil {
			return ast.Property{}, err
		}
		value, err := convertExprPtr(prop.Value)
		if err != nil {
			return ast.Property{}, err
		}
		kind := ast.PropertyInit
		switch prop.Kind {
		case gfast.PropertyKindGet:
			kind = ast.PropertyGet
		case gfast.PropertyKindSet:
			kind = ast.PropertySet
		}
		return ast.Property{Key: key, Computed: computed, Value: value, PKind: kind}, nil
	default:
		return ast.Property{}, unsupported("shorthand/spread/method object properties")
	}
}

func convertPropertyKey(k *gfast.Expression) (ast.Expr, bool, error) {
	if k == nil || k.Expr == nil {
		return nil, false, unsupported("missing property key")
	}
	switch key := k.Expr.(type) {
	case *gfast.Identifier:
		return &ast.Identifier{Name: key.Name}, false, nil
	case *gfast.StringLiteral:
		return &ast.Literal{LitKind: ast.LiteralString, Str: key.Value}, false, nil
	case *gfast.NumberLiteral:
		return &ast.Literal{LitKind: ast.LiteralNumber, Number: key.Value}, false, nil
	default:
		v, err := convertExpr(key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	}
}
