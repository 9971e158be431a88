package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-es5ix/internal/ast"
	"github.com/cwbudde/go-es5ix/internal/object"
)

func (i *Interpreter) evalBinary(f *Frame, e *ast.BinaryExpression) (object.Value, *GuestError) {
	left, gerr := i.evalExpression(f, e.Left)
	if gerr != nil {
		return nil, gerr
	}
	right, gerr := i.evalExpression(f, e.Right)
	if gerr != nil {
		return nil, gerr
	}
	return i.applyBinary(e.Operator, left, right)
}

func (i *Interpreter) applyBinary(op string, left, right object.Value) (object.Value, *GuestError) {
	switch op {
	case "+":
		lp, gerr := i.toPrimitive(left, "default")
		if gerr != nil {
			return nil, gerr
		}
		rp, gerr := i.toPrimitive(right, "default")
		if gerr != nil {
			return nil, gerr
		}
		if _, ok := lp.(object.String); ok {
			return object.String(lp.String() + rp.String()), nil
		}
		if _, ok := rp.(object.String); ok {
			return object.String(lp.String() + rp.String()), nil
		}
		return object.Number(object.ToNumber(lp) + object.ToNumber(rp)), nil
	case "-":
		return object.Number(i.toNumberValue(left) - i.toNumberValue(right)), nil
	case "*":
		return object.Number(i.toNumberValue(left) * i.toNumberValue(right)), nil
	case "/":
		return object.Number(i.toNumberValue(left) / i.toNumberValue(right)), nil
	case "%":
		return object.Number(math.Mod(i.toNumberValue(left), i.toNumberValue(right))), nil
	case "==":
		eq, gerr := i.abstractEquals(left, right)
		return object.Boolean(eq), gerr
	case "!=":
		eq, gerr := i.abstractEquals(left, right)
		if gerr != nil {
			return nil, gerr
		}
		return object.Boolean(!eq), nil
	case "===":
		return object.Boolean(strictEquals(left, right)), nil
	case "!==":
		return object.Boolean(!strictEquals(left, right)), nil
	case "<", ">", "<=", ">=":
		return i.relational(op, left, right)
	case "&":
		return object.Number(float64(numbersToIntBits(i.toNumberValue(left)) & numbersToIntBits(i.toNumberValue(right)))), nil
	case "|":
		return object.Number(float64(numbersToIntBits(i.toNumberValue(left)) | numbersToIntBits(i.toNumberValue(right)))), nil
	case "^":
		return object.Number(float64(numbersToIntBits(i.toNumberValue(left)) ^ numbersToIntBits(i.toNumberValue(right)))), nil
	case "<<":
		return object.Number(float64(numbersToIntBits(i.toNumberValue(left)) << (numbersToUintBits(i.toNumberValue(right)) & 31))), nil
	case ">>":
		return object.Number(float64(numbersToIntBits(i.toNumberValue(left)) >> (numbersToUintBits(i.toNumberValue(right)) & 31))), nil
	case ">>>":
		return object.Number(float64(numbersToUintBits(i.toNumberValue(left)) >> (numbersToUintBits(i.toNumberValue(right)) & 31))), nil
	case "instanceof":
		return i.instanceOf(left, right)
	case "in":
		rObj, ok := right.(*object.Object)
		if !ok {
			return nil, &GuestError{Value: i.newErrorObject("TypeError", "'in' requires an object")}
		}
		return object.Boolean(rObj.Has(i.toStringValue(left))), nil
	default:
		return nil, &GuestError{Value: i.newErrorObject("InternalError", "unhandled binary operator "+op)}
	}
}

func (i *Interpreter) relational(op string, left, right object.Value) (object.Value, *GuestError) {
	lp, gerr := i.toPrimitive(left, "number")
	if gerr != nil {
		return nil, gerr
	}
	rp, gerr := i.toPrimitive(right, "number")
	if gerr != nil {
		return nil, gerr
	}
	lStr, lIsStr := lp.(object.String)
	rStr, rIsStr := rp.(object.String)
	var result bool
	if lIsStr && rIsStr {
		cmp := strings.Compare(string(lStr), string(rStr))
		result = compareResult(op, cmp)
	} else {
		ln, rn := object.ToNumber(lp), object.ToNumber(rp)
		if math.IsNaN(ln) || math.IsNaN(rn) {
			return object.Boolean(false), nil
		}
		switch op {
		case "<":
			result = ln < rn
		case ">":
			result = ln > rn
		case "<=":
			result = ln <= rn
		case ">=":
			result = ln >= rn
		}
	}
	return object.Boolean(result), nil
}

func compareResult(op string, cmp int) bool {
	switch op {
	case "<":
		return cmp < 0
	case ">":
		return cmp > 0
	case "<=":
		return cmp <= 0
	case ">=":
		return cmp >= 0
	}
	return false
}

func (i *Interpreter) instanceOf(left, right object.Value) (object.Value, *GuestError) {
	ctor, ok := right.(*object.Object)
	if !ok || !ctor.Kind.Callable() {
		return nil, &GuestError{Value: i.newErrorObject("TypeError", "Right-hand side of 'instanceof' is not callable")}
	}
	protoVal, _ := ctor.Get("prototype")
	proto, ok := protoVal.(*object.Object)
	if !ok {
		return object.Boolean(false), nil
	}
	obj, ok := left.(*object.Object)
	if !ok {
		return object.Boolean(false), nil
	}
	for cur := obj.Proto; cur != nil; cur = cur.Proto {
		if cur == proto {
			return object.Boolean(true), nil
		}
	}
	return object.Boolean(false), nil
}

func (i *Interpreter) evalLogical(f *Frame, e *ast.LogicalExpression) (object.Value, *GuestError) {
	left, gerr := i.evalExpression(f, e.Left)
	if gerr != nil {
		return nil, gerr
	}
	switch e.Operator {
	case "&&":
		if !object.ToBoolean(left) {
			return left, nil
		}
		return i.evalExpression(f, e.Right)
	case "||":
		if object.ToBoolean(left) {
			return left, nil
		}
		return i.evalExpression(f, e.Right)
	default:
		return nil, &GuestError{Value: i.newErrorObject("InternalError", "unhandled logical operator "+e.Operator)}
	}
}

func (i *Interpreter) evalUnary(f *Frame, e *ast.UnaryExpression) (object.Value, *GuestError) {
	if e.Operator == "typeof" {
		if id, ok := e.Argument.(*ast.Identifier); ok {
			if v, found := f.Scope.Get(id.Name); found {
				return object.String(v.TypeOf()), nil
			}
			return object.String("undefined"), nil
		}
	}
	if e.Operator == "delete" {
		return i.evalDelete(f, e.Argument)
	}

	v, gerr := i.evalExpression(f, e.Argument)
	if gerr != nil {
		return nil, gerr
	}
	switch e.Operator {
	case "+":
		return object.Number(i.toNumberValue(v)), nil
	case "-":
		return object.Number(-i.toNumberValue(v)), nil
	case "!":
		return object.Boolean(!object.ToBoolean(v)), nil
	case "~":
		return object.Number(float64(^numbersToIntBits(i.toNumberValue(v)))), nil
	case "typeof":
		return object.String(v.TypeOf()), nil
	case "void":
		return object.Undefined{}, nil
	default:
		return nil, &GuestError{Value: i.newErrorObject("InternalError", "unhandled unary operator "+e.Operator)}
	}
}

func (i *Interpreter) evalDelete(f *Frame, target ast.Expr) (object.Value, *GuestError) {
	member, ok := target.(*ast.MemberExpression)
	if !ok {
		return object.Boolean(true), nil // deleting a non-reference is a no-op success
	}
	base, gerr := i.evalExpression(f, member.Object)
	if gerr != nil {
		return nil, gerr
	}
	key, gerr := i.propertyKey(f, member.Property, member.Computed)
	if gerr != nil {
		return nil, gerr
	}
	obj, ok := base.(*object.Object)
	if !ok {
		return object.Boolean(true), nil
	}
	if desc, found := obj.GetOwnPropertyDescriptor(key); found && !desc.Configurable {
		return object.Boolean(false), nil
	}
	obj.DeleteOwn(key)
	return object.Boolean(true), nil
}

func (i *Interpreter) evalUpdate(f *Frame, e *ast.UpdateExpression) (object.Value, *GuestError) {
	old, gerr := i.evalExpression(f, e.Argument)
	if gerr != nil {
		return nil, gerr
	}
	oldNum := i.toNumberValue(old)
	var newNum float64
	if e.Operator == "++" {
		newNum = oldNum + 1
	} else {
		newNum = oldNum - 1
	}
	if gerr := i.assignTo(f, e.Argument, object.Number(newNum)); gerr != nil {
		return nil, gerr
	}
	if e.Prefix {
		return object.Number(newNum), nil
	}
	return object.Number(oldNum), nil
}

func (i *Interpreter) evalAssignment(f *Frame, e *ast.AssignmentExpression) (object.Value, *GuestError) {
	rhs, gerr := i.evalExpression(f, e.Right)
	if gerr != nil {
		return nil, gerr
	}
	if e.Operator != "=" {
		cur, gerr := i.evalExpression(f, e.Left)
		if gerr != nil {
			return nil, gerr
		}
		op := strings.TrimSuffix(e.Operator, "=")
		result, gerr := i.applyBinary(op, cur, rhs)
		if gerr != nil {
			return nil, gerr
		}
		rhs = result
	}
	if gerr := i.assignTo(f, e.Left, rhs); gerr != nil {
		return nil, gerr
	}
	return rhs, nil
}

// assignTo resolves and performs an assignment to an Identifier or
// MemberExpression left-hand side.
func (i *Interpreter) assignTo(f *Frame, target ast.Expr, v object.Value) *GuestError {
	switch t := target.(type) {
	case *ast.Identifier:
		if !f.Scope.Set(t.Name, v) {
			// Implicit global creation for a plain (non-strict) assignment
			// to an unbound name, per spec.md §4.4.
			i.global.Declare(t.Name, v)
		}
		return nil
	case *ast.MemberExpression:
		base, gerr := i.evalExpression(f, t.Object)
		if gerr != nil {
			return gerr
		}
		key, gerr := i.propertyKey(f, t.Property, t.Computed)
		if gerr != nil {
			return gerr
		}
		return i.setProperty(base, key, v)
	default:
		return &GuestError{Value: i.newErrorObject("ReferenceError", "invalid assignment target")}
	}
}

// evalCall evaluates a CallExpression: resolves the callee (and, for a
// MemberExpression callee, binds `this` to the member base per spec.md
// §4.2), evaluates arguments left-to-right, then invokes.
func (i *Interpreter) evalCall(f *Frame, e *ast.CallExpression) (object.Value, *GuestError) {
	var thisVal object.Value = object.Undefined{}
	var calleeVal object.Value
	var gerr *GuestError

	if member, ok := e.Callee.(*ast.MemberExpression); ok {
		thisVal, calleeVal, gerr = i.evalMember(f, member)
		if gerr != nil {
			return nil, gerr
		}
	} else {
		calleeVal, gerr = i.evalExpression(f, e.Callee)
		if gerr != nil {
			return nil, gerr
		}
	}

	fn, ok := calleeVal.(*object.Object)
	if !ok || !fn.Kind.Callable() {
		return nil, &GuestError{Value: i.newErrorObject("TypeError", "is not a function")}
	}

	args := make([]object.Value, len(e.Arguments))
	for idx, a := range e.Arguments {
		v, gerr := i.evalExpression(f, a)
		if gerr != nil {
			return nil, gerr
		}
		args[idx] = v
	}

	return i.call(fn, thisVal, args)
}

func (i *Interpreter) evalNew(f *Frame, e *ast.NewExpression) (object.Value, *GuestError) {
	calleeVal, gerr := i.evalExpression(f, e.Callee)
	if gerr != nil {
		return nil, gerr
	}
	ctor, ok := calleeVal.(*object.Object)
	if !ok || !ctor.Kind.Callable() {
		return nil, &GuestError{Value: i.newErrorObject("TypeError", "is not a constructor")}
	}
	args := make([]object.Value, len(e.Arguments))
	for idx, a := range e.Arguments {
		v, gerr := i.evalExpression(f, a)
		if gerr != nil {
			return nil, gerr
		}
		args[idx] = v
	}
	return i.construct(ctor, args)
}

// construct implements the guest `new` operator: allocate a fresh
// object whose prototype is ctor.prototype (falling back to
// Object.prototype if that's not itself an object), invoke ctor with
// `this` bound to it, and use the constructor's return value only if it
// is itself an object (spec.md's standard [[Construct]] behavior).
func (i *Interpreter) construct(ctor *object.Object, args []object.Value) (object.Value, *GuestError) {
	if ctor.IllegalConstructor {
		return nil, &GuestError{Value: i.newErrorObject("TypeError", "illegal constructor")}
	}
	protoVal, _ := ctor.Get("prototype")
	proto, ok := protoVal.(*object.Object)
	if !ok {
		proto = i.objectProto
	}
	instance := object.NewObject("Object", proto)
	result, gerr := i.call(ctor, instance, args)
	if gerr != nil {
		return nil, gerr
	}
	if obj, ok := result.(*object.Object); ok {
		return obj, nil
	}
	return instance, nil
}
