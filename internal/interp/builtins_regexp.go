package interp

import (
	"regexp"

	"github.com/cwbudde/go-es5ix/internal/object"
	"github.com/cwbudde/go-es5ix/internal/regexsandbox"
)

// regexpData is the Data payload of a RegExp-class object.
type regexpData struct {
	re     *regexp.Regexp
	source string
	flags  string
	global bool
}

func (i *Interpreter) sandboxMode() regexsandbox.Mode {
	switch i.opts.RegexpModeValue {
	case RegexpReject:
		return regexsandbox.ModeReject
	case RegexpNative:
		return regexsandbox.ModeNative
	default:
		return regexsandbox.ModeSandboxed
	}
}

func (i *Interpreter) sandbox() *regexsandbox.Sandbox {
	return regexsandbox.New(i.sandboxMode(), i.opts.RegexpTimeout)
}

// installRegExpBuiltins wires the RegExp constructor and the
// RegExp.prototype surface (test/exec) through internal/regexsandbox, per
// spec.md §4.5's last paragraph and SPEC_FULL.md §3.6.
func (i *Interpreter) installRegExpBuiltins() {
	proto := i.regexpProto
	proto.SetOwnData("test", i.nativeFn("test", 1, i.regexpTest), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("exec", i.nativeFn("exec", 1, i.regexpExec), object.Attrs{Writable: true, Configurable: true})
	proto.SetOwnData("toString", i.nativeFn("toString", 0, i.regexpToString), object.Attrs{Writable: true, Configurable: true})

	ctor := i.nativeConstructor("RegExp", 2, proto, i.regexpConstructorBody)
	i.globalObj.SetOwnData("RegExp", ctor, object.DefaultAttrs)
}

func (i *Interpreter) regexpConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	source := i.toStringValue(argOr(args, 0))
	flags := ""
	if len(args) > 1 {
		flags = i.toStringValue(args[1])
	}
	re, err := i.sandbox().Compile(source, flags)
	if err != nil {
		return nil, ctx.Throw("SyntaxError", err.Error())
	}
	obj, ok := this.(*object.Object)
	if !ok || obj.Class != "RegExp" {
		obj = i.NewObject("RegExp", i.regexpProto)
	}
	obj.Data = &regexpData{re: re, source: source, flags: flags, global: strContains(flags, 'g')}
	obj.SetOwnData("source", object.String(source), object.Attrs{})
	obj.SetOwnData("global", object.Boolean(obj.Data.(*regexpData).global), object.Attrs{})
	obj.SetOwnData("lastIndex", object.Number(0), object.Attrs{Writable: true})
	return obj, nil
}

func strContains(s string, b byte) bool {
	for idx := 0; idx < len(s); idx++ {
		if s[idx] == b {
			return true
		}
	}
	return false
}

func (i *Interpreter) regexpSelf(this object.Value) (*object.Object, *regexpData, bool) {
	obj, ok := this.(*object.Object)
	if !ok {
		return nil, nil, false
	}
	data, ok := obj.Data.(*regexpData)
	return obj, data, ok
}

func (i *Interpreter) regexpToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	_, data, ok := i.regexpSelf(this)
	if !ok {
		return object.String("/(?:)/"), nil
	}
	return object.String("/" + data.source + "/" + data.flags), nil
}

func (i *Interpreter) regexpTest(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	result, err := i.regexpExec(ctx, this, args)
	if err != nil {
		return nil, err
	}
	_, isNull := result.(object.Null)
	return object.Boolean(!isNull), nil
}

func (i *Interpreter) regexpExec(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	obj, data, ok := i.regexpSelf(this)
	if !ok {
		return nil, ctx.Throw("TypeError", "RegExp.prototype.exec called on non-RegExp")
	}
	text := i.toStringValue(argOr(args, 0))

	start := 0
	if data.global {
		if v, ok := obj.Get("lastIndex"); ok {
			start = int(object.ToNumber(v))
		}
	}
	if start < 0 || start > len(text) {
		if data.global {
			obj.SetOwnData("lastIndex", object.Number(0), object.Attrs{Writable: true})
		}
		return object.Null{}, nil
	}

	loc, serr := i.sandbox().FindStringSubmatchIndex(data.re, text, start)
	if serr != nil {
		// spec.md §4.5/§8 scenario 5: the thrown Error must name the
		// regex's source, not just propagate the sandbox's generic
		// "exceeded deadline" message.
		return nil, ctx.Throw("Error", "regex timed out: "+data.source)
	}
	if loc == nil {
		if data.global {
			obj.SetOwnData("lastIndex", object.Number(0), object.Attrs{Writable: true})
		}
		return object.Null{}, nil
	}

	groupCount := len(loc) / 2
	elems := make([]object.Value, groupCount)
	for g := 0; g < groupCount; g++ {
		s, e := loc[2*g], loc[2*g+1]
		if s < 0 {
			elems[g] = object.Undefined{}
			continue
		}
		elems[g] = object.String(text[s:e])
	}
	result := i.NewArray(elems)
	result.SetOwnData("index", object.Number(loc[0]), object.DefaultAttrs)
	result.SetOwnData("input", object.String(text), object.DefaultAttrs)

	if data.global {
		obj.SetOwnData("lastIndex", object.Number(loc[1]), object.Attrs{Writable: true})
	}
	return result, nil
}
