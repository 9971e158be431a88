package interp

import (
	"github.com/cwbudde/go-es5ix/internal/ast"
	"github.com/cwbudde/go-es5ix/internal/object"
)

// evalExpression is the expression half of spec.md §4.2's dispatcher.
// Unlike statements, expressions never produce Break/Continue/Return —
// the only non-local signal they can carry is a thrown guest value,
// returned here as a *GuestError rather than folded into Completion,
// since an expression itself has no "label" or "value" meaning for those
// other completion types.
func (i *Interpreter) evalExpression(f *Frame, expr ast.Expr) (object.Value, *GuestError) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.LitKind == ast.LiteralRegExp {
			v, err := i.regexpConstructorBody(i, object.Undefined{}, []object.Value{object.String(e.RegexBody), object.String(e.RegexFlags)})
			if err != nil {
				if ge, ok := err.(*GuestError); ok {
					return nil, ge
				}
				return nil, &GuestError{Value: i.newErrorObject("SyntaxError", err.Error())}
			}
			return v, nil
		}
		return literalValue(e), nil

	case *ast.Identifier:
		v, found := f.Scope.Get(e.Name)
		if !found {
			return nil, &GuestError{Value: i.newErrorObject("ReferenceError", e.Name+" is not defined")}
		}
		return v, nil

	case *ast.ThisExpression:
		return f.This, nil

	case *ast.ArrayExpression:
		elems := make([]object.Value, len(e.Elements))
		for idx, el := range e.Elements {
			if el == nil {
				elems[idx] = object.Undefined{}
				continue
			}
			v, gerr := i.evalExpression(f, el)
			if gerr != nil {
				return nil, gerr
			}
			elems[idx] = v
		}
		return i.NewArray(elems), nil

	case *ast.ObjectExpression:
		return i.evalObjectExpression(f, e)

	case *ast.FunctionExpression:
		name := ""
		if e.ID != nil {
			name = e.ID.Name
		}
		closure := f.Scope
		if e.ID != nil {
			// A named function expression can refer to itself by name
			// from within its own body (spec.md §4.4).
			closure = object.NewScope(f.Scope)
		}
		fn := i.makeGuestFunction(name, e.Params, e.Body, closure)
		if e.ID != nil {
			closure.Declare(e.ID.Name, fn)
		}
		return fn, nil

	case *ast.MemberExpression:
		_, v, gerr := i.evalMember(f, e)
		return v, gerr

	case *ast.CallExpression:
		return i.evalCall(f, e)

	case *ast.NewExpression:
		return i.evalNew(f, e)

	case *ast.AssignmentExpression:
		return i.evalAssignment(f, e)

	case *ast.BinaryExpression:
		return i.evalBinary(f, e)

	case *ast.LogicalExpression:
		return i.evalLogical(f, e)

	case *ast.UnaryExpression:
		return i.evalUnary(f, e)

	case *ast.UpdateExpression:
		return i.evalUpdate(f, e)

	case *ast.SequenceExpression:
		var last object.Value = object.Undefined{}
		for _, sub := range e.Expressions {
			v, gerr := i.evalExpression(f, sub)
			if gerr != nil {
				return nil, gerr
			}
			last = v
		}
		return last, nil

	case *ast.ConditionalExpression:
		test, gerr := i.evalExpression(f, e.Test)
		if gerr != nil {
			return nil, gerr
		}
		if object.ToBoolean(test) {
			return i.evalExpression(f, e.Consequent)
		}
		return i.evalExpression(f, e.Alternate)

	default:
		return nil, &GuestError{Value: i.newErrorObject("InternalError", "unhandled expression node")}
	}
}

func literalValue(lit *ast.Literal) object.Value {
	switch lit.LitKind {
	case ast.LiteralUndefined:
		return object.Undefined{}
	case ast.LiteralNull:
		return object.Null{}
	case ast.LiteralBool:
		return object.Boolean(lit.Bool)
	case ast.LiteralNumber:
		return object.Number(lit.Number)
	case ast.LiteralString:
		return object.String(lit.Str)
	default:
		// LiteralRegExp is handled in evalExpression, since constructing it
		// needs the interpreter's regexpProto.
		return object.Undefined{}
	}
}

func (i *Interpreter) evalObjectExpression(f *Frame, e *ast.ObjectExpression) (object.Value, *GuestError) {
	obj := i.NewObject("Object", nil)
	for _, p := range e.Properties {
		key, gerr := i.propertyKey(f, p.Key, p.Computed)
		if gerr != nil {
			return nil, gerr
		}
		switch p.PKind {
		case ast.PropertyGet:
			fnVal, gerr := i.evalExpression(f, p.Value)
			if gerr != nil {
				return nil, gerr
			}
			obj.DefineAccessor(key, fnVal.(*object.Object), nil, true, true)
		case ast.PropertySet:
			fnVal, gerr := i.evalExpression(f, p.Value)
			if gerr != nil {
				return nil, gerr
			}
			obj.DefineAccessor(key, nil, fnVal.(*object.Object), true, true)
		default:
			v, gerr := i.evalExpression(f, p.Value)
			if gerr != nil {
				return nil, gerr
			}
			obj.SetOwnData(key, v, object.DefaultAttrs)
		}
	}
	return obj, nil
}

// propertyKey evaluates an ObjectExpression property key or a computed
// MemberExpression property to its string form (ES5 property keys are
// always strings; numeric keys are ToString'd).
func (i *Interpreter) propertyKey(f *Frame, key ast.Expr, computed bool) (string, *GuestError) {
	if !computed {
		switch k := key.(type) {
		case *ast.Identifier:
			return k.Name, nil
		case *ast.Literal:
			return literalValue(k).String(), nil
		}
	}
	v, gerr := i.evalExpression(f, key)
	if gerr != nil {
		return "", gerr
	}
	return i.toPropertyKeyString(v), nil
}

func (i *Interpreter) toPropertyKeyString(v object.Value) string {
	return i.toStringValue(v)
}

// evalMember resolves a.b / a[b], returning the base object (needed by
// the call-expression path to bind `this`) alongside the resolved value.
func (i *Interpreter) evalMember(f *Frame, e *ast.MemberExpression) (object.Value, object.Value, *GuestError) {
	base, gerr := i.evalExpression(f, e.Object)
	if gerr != nil {
		return nil, nil, gerr
	}
	key, gerr := i.propertyKey(f, e.Property, e.Computed)
	if gerr != nil {
		return nil, nil, gerr
	}
	v, gerr := i.getProperty(base, key)
	return base, v, gerr
}

// getProperty implements spec.md §4.1's full property-read algorithm:
// boxed-primitive prototype lookup for non-object bases, accessor
// invocation when the resolved property is a getter.
func (i *Interpreter) getProperty(base object.Value, key string) (object.Value, *GuestError) {
	obj, proto := i.baseAsObjectAndProto(base)
	if obj == nil {
		if proto == nil {
			return nil, &GuestError{Value: i.newErrorObject("TypeError", "Cannot read property '"+key+"' of "+base.String())}
		}
		if s, ok := base.(object.String); ok {
			if v, found := stringIndexedProperty(s, key); found {
				return v, nil
			}
		}
		owner, desc, found := proto.Lookup(key)
		if !found {
			return object.Undefined{}, nil
		}
		if desc.IsAccessor {
			if desc.Get == nil {
				return object.Undefined{}, nil
			}
			return i.call(desc.Get, base, nil)
		}
		_ = owner
		return desc.Value, nil
	}

	if obj.Class == "Array" && key == "length" {
		return object.Number(object.ArrayLength(obj)), nil
	}
	_, desc, found := obj.Lookup(key)
	if !found {
		return object.Undefined{}, nil
	}
	if desc.IsAccessor {
		if desc.Get == nil {
			return object.Undefined{}, nil
		}
		return i.call(desc.Get, base, nil)
	}
	return desc.Value, nil
}

// stringIndexedProperty implements the two magic reads spec.md line 49/63
// grants a primitive string without materializing a boxed object: its
// read-only length and read-only in-bounds numeric indexing, both measured
// in UTF-16-ish code units the way charAt/charCodeAt already do (via
// []rune, this module's existing stand-in for UTF-16 code units).
func stringIndexedProperty(s object.String, key string) (object.Value, bool) {
	runes := []rune(string(s))
	if key == "length" {
		return object.Number(len(runes)), true
	}
	if idx, ok := object.IsArrayIndex(key); ok && int(idx) < len(runes) {
		return object.String(string(runes[idx])), true
	}
	return nil, false
}

// baseAsObjectAndProto splits a property base into (actual object, nil)
// for *object.Object values or (nil, boxed-primitive prototype) for
// primitives, per spec.md §4.5's boxed-primitive prototype lookup note.
func (i *Interpreter) baseAsObjectAndProto(base object.Value) (*object.Object, *object.Object) {
	switch t := base.(type) {
	case *object.Object:
		return t, nil
	case object.String:
		return nil, i.stringProto
	case object.Number:
		return nil, i.numberProto
	case object.Boolean:
		return nil, i.booleanProto
	default:
		return nil, nil
	}
}

func (i *Interpreter) setProperty(base object.Value, key string, v object.Value) *GuestError {
	obj, ok := base.(*object.Object)
	if !ok {
		// Assigning a property onto a primitive is silently ignored in
		// non-strict ES5 (spec.md has no strict-mode property-write
		// rejection path in scope) — this also covers writes to a string
		// primitive's "length" or numeric indices, which getProperty
		// special-cases for reads (stringIndexedProperty) but which ES5
		// leaves as no-op writes since a primitive string has no own
		// properties to set.
		return nil
	}
	if owner, desc, found := obj.Lookup(key); found && desc.IsAccessor {
		if desc.Set == nil {
			return nil // no setter: silently ignored, matches non-strict assignment to a getter-only property
		}
		_, gerr := i.call(desc.Set, base, []object.Value{v})
		_ = owner
		return gerr
	}
	if obj.Class == "Array" {
		if idx, ok := object.IsArrayIndex(key); ok {
			object.SetArrayIndex(obj, idx, v)
			return nil
		}
		if key == "length" {
			n := i.toNumberValue(v)
			object.SetArrayLength(obj, uint32(n))
			return nil
		}
	}
	if !obj.Extensible && !obj.HasOwn(key) {
		return nil
	}
	obj.SetOwnData(key, v, object.DefaultAttrs)
	return nil
}
