package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cwbudde/go-es5ix/internal/ast"
	"github.com/cwbudde/go-es5ix/internal/object"
)

// makeEvalFunction installs the guest-visible `eval`. Per spec.md §6.1,
// a direct eval call parses its argument into a Program with source
// positions stripped and runs it in the caller's own scope (so declarations leak into the
// calling frame, unlike a guest function call); an indirect eval
// (`(0, eval)(...)`) is out of scope for this minimal eval — this
// implementation always evaluates in the caller frame passed to it, the
// direct-eval behavior, since it cannot itself know whether a given call
// site used the indirect form.
func (i *Interpreter) makeEvalFunction() *object.Object {
	fn := object.NewObject("Function", i.functionProto)
	fn.Kind = object.KindEvalFn
	fn.Data = &object.NativeFnData{Name: "eval", Length: 1, Fn: i.evalBuiltin}
	return fn
}

func (i *Interpreter) evalBuiltin(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if len(args) == 0 {
		return object.Undefined{}, nil
	}
	src, ok := args[0].(object.String)
	if !ok {
		return args[0], nil // eval of a non-string returns it unchanged
	}
	prog, err := i.opts.Parser.Parse(string(src))
	if err != nil {
		return nil, i.Throw("SyntaxError", err.Error())
	}
	ast.StripPositions(prog)

	f := i.topFrame()
	i.hoist(f.Scope, prog.Body)
	var last object.Value = object.Undefined{}
	for _, stmt := range prog.Body {
		comp, runErr := i.execStatement(f, stmt)
		if runErr != nil {
			return nil, runErr
		}
		if comp.Type == CompletionThrow {
			return nil, &GuestError{Value: comp.Value}
		}
		if comp.Value != nil {
			last = comp.Value
		}
	}
	return last, nil
}

func builtinParseInt(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := strings.TrimSpace(argString(args, 0))
	radix := 10
	if len(args) > 1 {
		if r := int(object.ToNumber(args[1])); r != 0 {
			radix = r
		}
	}
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if (radix == 16 || radix == 10) && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		s = s[2:]
		radix = 16
	}
	end := 0
	for end < len(s) && isValidDigit(s[end], radix) {
		end++
	}
	if end == 0 {
		return object.Number(math.NaN()), nil
	}
	n, err := strconv.ParseInt(s[:end], radix, 64)
	if err != nil {
		return object.Number(math.NaN()), nil
	}
	if neg {
		n = -n
	}
	return object.Number(float64(n)), nil
}

func isValidDigit(b byte, radix int) bool {
	var v int
	switch {
	case b >= '0' && b <= '9':
		v = int(b - '0')
	case b >= 'a' && b <= 'z':
		v = int(b-'a') + 10
	case b >= 'A' && b <= 'Z':
		v = int(b-'A') + 10
	default:
		return false
	}
	return v < radix
}

func builtinParseFloat(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := strings.TrimSpace(argString(args, 0))
	end := len(s)
	for end > 0 {
		if _, err := strconv.ParseFloat(s[:end], 64); err == nil {
			break
		}
		end--
	}
	if end == 0 {
		return object.Number(math.NaN()), nil
	}
	f, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return object.Number(math.NaN()), nil
	}
	return object.Number(f), nil
}

func builtinIsNaN(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return object.Boolean(math.IsNaN(object.ToNumber(argOr(args, 0)))), nil
}

func builtinIsFinite(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	n := object.ToNumber(argOr(args, 0))
	return object.Boolean(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
}

// isURIUnreserved reports the byte set ES5 §15.1.3's encodeURIComponent
// never percent-escapes. Go's stdlib net/url.QueryEscape was tried first
// and rejected: it escapes space as "+" instead of "%20" and escapes
// !*'() , which real encodeURIComponent leaves bare — a form-encoding
// helper, not a URI-component one (see DESIGN.md).
func isURIUnreserved(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// builtinEncodeURIComponent operates byte-wise over the argument's UTF-8
// encoding (this engine's native string representation — see DESIGN.md's
// note on why golang.org/x/text/encoding/unicode's UTF-16 transcoding has
// no component to attach to here), percent-escaping every byte outside
// isURIUnreserved.
func builtinEncodeURIComponent(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := argString(args, 0)
	var sb strings.Builder
	for idx := 0; idx < len(s); idx++ {
		b := s[idx]
		if isURIUnreserved(b) {
			sb.WriteByte(b)
			continue
		}
		fmt.Fprintf(&sb, "%%%02X", b)
	}
	return object.String(sb.String()), nil
}

func builtinDecodeURIComponent(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := argString(args, 0)
	var sb strings.Builder
	for idx := 0; idx < len(s); {
		if s[idx] != '%' {
			sb.WriteByte(s[idx])
			idx++
			continue
		}
		if idx+2 >= len(s) {
			return nil, ctx.Throw("URIError", "URI malformed")
		}
		b, err := strconv.ParseUint(s[idx+1:idx+3], 16, 8)
		if err != nil {
			return nil, ctx.Throw("URIError", "URI malformed")
		}
		sb.WriteByte(byte(b))
		idx += 3
	}
	return object.String(sb.String()), nil
}

func argOr(args []object.Value, idx int) object.Value {
	if idx < len(args) {
		return args[idx]
	}
	return object.Undefined{}
}

func argString(args []object.Value, idx int) string {
	return argOr(args, idx).String()
}
