package ast

// Walk visits n and every descendant reachable through its child fields,
// calling visit on each node encountered (pre-order). If visit returns
// false for a node, Walk does not descend into that node's children but
// continues with its siblings. A nil n is a no-op.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || isNilNode(n) {
		return
	}
	if !visit(n) {
		return
	}

	switch v := n.(type) {
	case *Program:
		walkStmts(v.Body, visit)
	case *EvalProgram:
		walkStmts(v.Body, visit)
	case *ExpressionStatement:
		Walk(v.Expression, visit)
	case *BlockStatement:
		walkStmts(v.Body, visit)
	case *VariableDeclaration:
		for _, d := range v.Declarations {
			Walk(d.ID, visit)
			if d.Init != nil {
				Walk(d.Init, visit)
			}
		}
	case *FunctionDeclaration:
		// Intentionally do not descend into the body: spec.md §4.4 "does
		// not descend into FunctionExpression or FunctionDeclaration
		// bodies" for hoisting purposes. StripPositions still wants the
		// declaration's own position cleared, so ID is visited but Body
		// is left to whoever builds that function's own frame later.
		Walk(v.ID, visit)
	case *FunctionExpression:
		if v.ID != nil {
			Walk(v.ID, visit)
		}
	case *IfStatement:
		Walk(v.Test, visit)
		Walk(v.Consequent, visit)
		if v.Alternate != nil {
			Walk(v.Alternate, visit)
		}
	case *WhileStatement:
		Walk(v.Test, visit)
		Walk(v.Body, visit)
	case *DoWhileStatement:
		Walk(v.Test, visit)
		Walk(v.Body, visit)
	case *ForStatement:
		if v.Init != nil {
			Walk(v.Init, visit)
		}
		if v.Test != nil {
			Walk(v.Test, visit)
		}
		if v.Update != nil {
			Walk(v.Update, visit)
		}
		Walk(v.Body, visit)
	case *ForInStatement:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
		Walk(v.Body, visit)
	case *SwitchStatement:
		Walk(v.Discriminant, visit)
		for _, c := range v.Cases {
			if c.Test != nil {
				Walk(c.Test, visit)
			}
			walkStmts(c.Consequent, visit)
		}
	case *TryStatement:
		Walk(v.Block, visit)
		if v.Handler != nil {
			Walk(v.Handler.Param, visit)
			Walk(v.Handler.Body, visit)
		}
		if v.Finalizer != nil {
			Walk(v.Finalizer, visit)
		}
	case *ThrowStatement:
		Walk(v.Argument, visit)
	case *ReturnStatement:
		if v.Argument != nil {
			Walk(v.Argument, visit)
		}
	case *LabeledStatement:
		Walk(v.Body, visit)
	case *WithStatement:
		Walk(v.Object, visit)
		Walk(v.Body, visit)
	case *ArrayExpression:
		for _, e := range v.Elements {
			if e != nil {
				Walk(e, visit)
			}
		}
	case *ObjectExpression:
		for _, p := range v.Properties {
			Walk(p.Key, visit)
			Walk(p.Value, visit)
		}
	case *MemberExpression:
		Walk(v.Object, visit)
		Walk(v.Property, visit)
	case *CallExpression:
		Walk(v.Callee, visit)
		for _, a := range v.Arguments {
			Walk(a, visit)
		}
	case *NewExpression:
		Walk(v.Callee, visit)
		for _, a := range v.Arguments {
			Walk(a, visit)
		}
	case *AssignmentExpression:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
	case *BinaryExpression:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
	case *LogicalExpression:
		Walk(v.Left, visit)
		Walk(v.Right, visit)
	case *UnaryExpression:
		Walk(v.Argument, visit)
	case *UpdateExpression:
		Walk(v.Argument, visit)
	case *SequenceExpression:
		for _, e := range v.Expressions {
			Walk(e, visit)
		}
	case *ConditionalExpression:
		Walk(v.Test, visit)
		Walk(v.Consequent, visit)
		Walk(v.Alternate, visit)
	}
}

func walkStmts(stmts []Stmt, visit func(Node) bool) {
	for _, s := range stmts {
		Walk(s, visit)
	}
}

// isNilNode guards against typed-nil interfaces (e.g. a *BlockStatement
// nil pointer boxed into a Stmt), which Walk would otherwise try to
// dispatch on and panic.
func isNilNode(n Node) bool {
	switch v := n.(type) {
	case *Program:
		return v == nil
	case *BlockStatement:
		return v == nil
	case *Identifier:
		return v == nil
	}
	return false
}
