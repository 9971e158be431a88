package interp

import (
	"github.com/cwbudde/go-es5ix/internal/ast"
	"github.com/cwbudde/go-es5ix/internal/object"
)

// hoist implements spec.md §4.4's two-pass scope construction: every
// `var` declared anywhere in body (except inside a nested function body)
// is declared up front as `undefined`, and every function declaration is
// declared and immediately bound to its function object — so that
// forward references and "functions are available before their
// definition runs" both hold, matching real ES5 hoisting. It does not
// descend into FunctionDeclaration/FunctionExpression bodies (ast.Walk
// already stops there) — each function hoists its own body independently
// when it is called.
func (i *Interpreter) hoist(scope *object.Scope, body []ast.Stmt) {
	for _, stmt := range body {
		ast.Walk(stmt, func(n ast.Node) bool {
			switch v := n.(type) {
			case *ast.VariableDeclaration:
				for _, d := range v.Declarations {
					if !scope.Bag.HasOwn(d.ID.Name) {
						scope.Declare(d.ID.Name, object.Undefined{})
					}
				}
			}
			return true
		})
	}
	// Function declarations are bound in a second pass, after all `var`s
	// are declared as undefined, so a function-valued hoist always wins
	// over a same-named var's undefined placeholder (spec.md §4.4).
	for _, stmt := range body {
		if fd, ok := stmt.(*ast.FunctionDeclaration); ok {
			fn := i.makeGuestFunction(fd.ID.Name, fd.Params, fd.Body, scope)
			scope.Bag.DeleteOwn(fd.ID.Name)
			scope.Declare(fd.ID.Name, fn)
		}
	}
}

// makeGuestFunction builds a callable Function-class object for a guest
// FunctionDeclaration or FunctionExpression, capturing closure as its
// defining scope (spec.md §4.2).
func (i *Interpreter) makeGuestFunction(name string, params []ast.Param, body *ast.BlockStatement, closure *object.Scope) *object.Object {
	paramNames := make([]string, len(params))
	for idx, p := range params {
		paramNames[idx] = p.Name
	}
	fn := object.NewObject("Function", i.functionProto)
	fn.Kind = object.KindGuestFn
	fn.Data = &object.GuestFnData{Name: name, Params: paramNames, Body: body, Closure: closure}
	fn.SetOwnData("length", object.Number(len(paramNames)), object.Attrs{Configurable: true})
	fn.SetOwnData("name", object.String(name), object.Attrs{Configurable: true})

	proto := object.NewObject("Object", i.objectProto)
	proto.SetOwnData("constructor", fn, object.Attrs{Writable: true, Configurable: true})
	fn.SetOwnData("prototype", proto, object.Attrs{Writable: true})
	return fn
}
