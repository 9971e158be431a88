package interp

import (
	"math"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// installStringBuiltins wires the String constructor and the
// String.prototype surface spec.md §3.4 names. normalize and
// localeCompare are backed by golang.org/x/text (unicode/norm, collate)
// rather than a hand-rolled Unicode table, per SPEC_FULL.md §2's
// dependency commitments — Go's stdlib has no Unicode normalization or
// locale-aware collation of its own.
func (i *Interpreter) installStringBuiltins() {
	proto := i.stringProto
	methods := map[string]object.NativeFunc{
		"charAt":        stringCharAt,
		"charCodeAt":    stringCharCodeAt,
		"indexOf":       i.stringIndexOf,
		"lastIndexOf":   i.stringLastIndexOf,
		"slice":         i.stringSlice,
		"substring":     i.stringSubstring,
		"split":         i.stringSplit,
		"match":         i.stringMatch,
		"search":        i.stringSearch,
		"toUpperCase":   stringToUpperCase,
		"toLowerCase":   stringToLowerCase,
		"trim":          stringTrim,
		"concat":        i.stringConcat,
		"replace":       i.stringReplace,
		"normalize":     stringNormalize,
		"localeCompare": i.stringLocaleCompare,
		"toString":      stringToString,
		"valueOf":       stringToString,
	}
	for name, fn := range methods {
		proto.SetOwnData(name, i.nativeFn(name, 1, fn), object.Attrs{Writable: true, Configurable: true})
	}

	ctor := i.nativeConstructor("String", 1, proto, i.stringConstructorBody)
	ctor.SetOwnData("fromCharCode", i.nativeFn("fromCharCode", 1, stringFromCharCode), object.DefaultAttrs)
	i.globalObj.SetOwnData("String", ctor, object.DefaultAttrs)
}

func (i *Interpreter) stringConstructorBody(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	if len(args) == 0 {
		return object.String(""), nil
	}
	return object.String(i.toStringValue(args[0])), nil
}

func selfString(this object.Value) string {
	return this.String()
}

func stringCharAt(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := []rune(selfString(this))
	idx := int(object.ToNumber(argOr(args, 0)))
	if idx < 0 || idx >= len(s) {
		return object.String(""), nil
	}
	return object.String(string(s[idx])), nil
}

func stringCharCodeAt(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := []rune(selfString(this))
	idx := int(object.ToNumber(argOr(args, 0)))
	if idx < 0 || idx >= len(s) {
		return object.Number(math.NaN()), nil
	}
	return object.Number(float64(s[idx])), nil
}

func (i *Interpreter) stringIndexOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := selfString(this)
	target := i.toStringValue(argOr(args, 0))
	start := 0
	if len(args) > 1 {
		start = int(object.ToNumber(args[1]))
		if start < 0 {
			start = 0
		}
		if start > len(s) {
			start = len(s)
		}
	}
	idx := strings.Index(s[start:], target)
	if idx < 0 {
		return object.Number(-1), nil
	}
	return object.Number(idx + start), nil
}

func (i *Interpreter) stringLastIndexOf(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := selfString(this)
	target := i.toStringValue(argOr(args, 0))
	return object.Number(strings.LastIndex(s, target)), nil
}

func (i *Interpreter) stringSlice(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := []rune(selfString(this))
	start, end := 0, len(s)
	if len(args) > 0 {
		start = normalizeIndex(object.ToNumber(args[0]), len(s))
	}
	if len(args) > 1 {
		if _, isUndef := args[1].(object.Undefined); !isUndef {
			end = normalizeIndex(object.ToNumber(args[1]), len(s))
		}
	}
	if start > end {
		start = end
	}
	return object.String(string(s[start:end])), nil
}

func (i *Interpreter) stringSubstring(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := []rune(selfString(this))
	clamp := func(n float64) int {
		v := int(n)
		if v < 0 || n != n {
			v = 0
		}
		if v > len(s) {
			v = len(s)
		}
		return v
	}
	start, end := 0, len(s)
	if len(args) > 0 {
		start = clamp(object.ToNumber(args[0]))
	}
	if len(args) > 1 {
		if _, isUndef := args[1].(object.Undefined); !isUndef {
			end = clamp(object.ToNumber(args[1]))
		}
	}
	if start > end {
		start, end = end, start
	}
	return object.String(string(s[start:end])), nil
}

func (i *Interpreter) stringSplit(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := selfString(this)
	if len(args) == 0 {
		return i.NewArray([]object.Value{object.String(s)}), nil
	}
	if _, data, ok := i.regexpSelf(args[0]); ok {
		return i.regexpSplit(ctx, s, data)
	}
	sep := i.toStringValue(args[0])
	var parts []string
	if sep == "" {
		for _, r := range s {
			parts = append(parts, string(r))
		}
	} else {
		parts = strings.Split(s, sep)
	}
	out := make([]object.Value, len(parts))
	for idx, p := range parts {
		out[idx] = object.String(p)
	}
	return i.NewArray(out), nil
}

// regexpSplit implements String.prototype.split(regexp): the separator's
// own captured groups are spliced into the result array alongside the
// plain substrings, per ES5 semantics.
func (i *Interpreter) regexpSplit(ctx object.NativeContext, s string, data *regexpData) (object.Value, error) {
	locs, serr := i.sandbox().FindAllStringSubmatchIndex(data.re, s, -1)
	if serr != nil {
		return nil, ctx.Throw("Error", "regex timed out: "+data.source)
	}
	var out []object.Value
	prev := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if start == end && start == prev {
			continue // zero-width match at the current position contributes nothing
		}
		out = append(out, object.String(s[prev:start]))
		for g := 1; g < len(loc)/2; g++ {
			gs, ge := loc[2*g], loc[2*g+1]
			if gs < 0 {
				out = append(out, object.Undefined{})
			} else {
				out = append(out, object.String(s[gs:ge]))
			}
		}
		prev = end
	}
	out = append(out, object.String(s[prev:]))
	return i.NewArray(out), nil
}

// coerceToRegExp implements the implicit ToString-then-`new RegExp(...)`
// coercion that String.prototype.match/search/split/replace apply to a
// non-RegExp argument.
func (i *Interpreter) coerceToRegExp(v object.Value) (*object.Object, *regexpData, error) {
	if obj, data, ok := i.regexpSelf(v); ok {
		return obj, data, nil
	}
	source := i.toStringValue(v)
	re, err := i.sandbox().Compile(source, "")
	if err != nil {
		return nil, nil, i.Throw("SyntaxError", err.Error())
	}
	obj := i.NewObject("RegExp", i.regexpProto)
	data := &regexpData{re: re, source: source}
	obj.Data = data
	obj.SetOwnData("source", object.String(source), object.Attrs{})
	obj.SetOwnData("global", object.Boolean(false), object.Attrs{})
	obj.SetOwnData("lastIndex", object.Number(0), object.Attrs{Writable: true})
	return obj, data, nil
}

// stringMatch backs String.prototype.match: a non-global pattern behaves
// like exec, a global one collects every match's whole-match substring
// (spec.md §1's regexp-executor contract, §3.5).
func (i *Interpreter) stringMatch(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := selfString(this)
	obj, data, err := i.coerceToRegExp(argOr(args, 0))
	if err != nil {
		return nil, err
	}
	if !data.global {
		return i.regexpExec(ctx, obj, []object.Value{object.String(s)})
	}
	locs, serr := i.sandbox().FindAllStringSubmatchIndex(data.re, s, -1)
	if serr != nil {
		return nil, ctx.Throw("Error", "regex timed out: "+data.source)
	}
	if locs == nil {
		return object.Null{}, nil
	}
	elems := make([]object.Value, len(locs))
	for idx, loc := range locs {
		elems[idx] = object.String(s[loc[0]:loc[1]])
	}
	obj.SetOwnData("lastIndex", object.Number(0), object.Attrs{Writable: true})
	return i.NewArray(elems), nil
}

// stringSearch backs String.prototype.search: the index of the first
// match, ignoring the regexp's own global/lastIndex state, or -1.
func (i *Interpreter) stringSearch(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := selfString(this)
	_, data, err := i.coerceToRegExp(argOr(args, 0))
	if err != nil {
		return nil, err
	}
	loc, serr := i.sandbox().FindStringIndex(data.re, s, 0)
	if serr != nil {
		return nil, ctx.Throw("Error", "regex timed out: "+data.source)
	}
	if loc == nil {
		return object.Number(-1), nil
	}
	return object.Number(loc[0]), nil
}

func stringToUpperCase(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return object.String(strings.ToUpper(selfString(this))), nil
}

func stringToLowerCase(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return object.String(strings.ToLower(selfString(this))), nil
}

func stringTrim(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return object.String(strings.TrimSpace(selfString(this))), nil
}

func (i *Interpreter) stringConcat(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	var sb strings.Builder
	sb.WriteString(selfString(this))
	for _, a := range args {
		sb.WriteString(i.toStringValue(a))
	}
	return object.String(sb.String()), nil
}

func (i *Interpreter) stringReplace(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := selfString(this)
	if obj, data, ok := i.regexpSelf(argOr(args, 0)); ok {
		return i.regexpReplace(ctx, s, obj, data, argOr(args, 1))
	}
	pattern := i.toStringValue(argOr(args, 0))
	replacement := argOr(args, 1)
	if fn, ok := replacement.(*object.Object); ok && fn.Kind.Callable() {
		idx := strings.Index(s, pattern)
		if idx < 0 {
			return object.String(s), nil
		}
		r, gerr := i.call(fn, object.Undefined{}, []object.Value{object.String(pattern), object.Number(idx), object.String(s)})
		if gerr != nil {
			return nil, gerr
		}
		return object.String(s[:idx] + i.toStringValue(r) + s[idx+len(pattern):]), nil
	}
	return object.String(strings.Replace(s, pattern, i.toStringValue(replacement), 1)), nil
}

// regexpReplace backs String.prototype.replace(regexp, ...): one match
// without the `g` flag, every non-overlapping match with it, calling a
// replacement function per match or expanding $&/$1.. $9/$$ in a
// replacement string (spec.md §1/§3.5).
func (i *Interpreter) regexpReplace(ctx object.NativeContext, s string, obj *object.Object, data *regexpData, replacement object.Value) (object.Value, error) {
	n := 1
	if data.global {
		n = -1
	}
	locs, serr := i.sandbox().FindAllStringSubmatchIndex(data.re, s, n)
	if serr != nil {
		return nil, ctx.Throw("Error", "regex timed out: "+data.source)
	}
	if locs == nil {
		return object.String(s), nil
	}
	fn, callable := replacement.(*object.Object)
	useFn := callable && fn.Kind.Callable()

	var sb strings.Builder
	prev := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		sb.WriteString(s[prev:start])
		if useFn {
			callArgs := []object.Value{object.String(s[start:end])}
			for g := 1; g < len(loc)/2; g++ {
				gs, ge := loc[2*g], loc[2*g+1]
				if gs < 0 {
					callArgs = append(callArgs, object.Undefined{})
				} else {
					callArgs = append(callArgs, object.String(s[gs:ge]))
				}
			}
			callArgs = append(callArgs, object.Number(start), object.String(s))
			r, gerr := i.call(fn, object.Undefined{}, callArgs)
			if gerr != nil {
				return nil, gerr
			}
			sb.WriteString(i.toStringValue(r))
		} else {
			sb.WriteString(expandReplacement(i.toStringValue(replacement), s, loc))
		}
		prev = end
	}
	sb.WriteString(s[prev:])
	if data.global {
		obj.SetOwnData("lastIndex", object.Number(0), object.Attrs{Writable: true})
	}
	return object.String(sb.String()), nil
}

// expandReplacement expands ES5's $$, $&, and $1-$9 replacement patterns
// against a single FindAllStringSubmatchIndex match.
func expandReplacement(repl, s string, loc []int) string {
	var sb strings.Builder
	for idx := 0; idx < len(repl); idx++ {
		if repl[idx] != '$' || idx+1 >= len(repl) {
			sb.WriteByte(repl[idx])
			continue
		}
		next := repl[idx+1]
		switch {
		case next == '$':
			sb.WriteByte('$')
			idx++
		case next == '&':
			sb.WriteString(s[loc[0]:loc[1]])
			idx++
		case next >= '1' && next <= '9':
			g := int(next - '0')
			if 2*g+1 < len(loc) {
				if gs, ge := loc[2*g], loc[2*g+1]; gs >= 0 {
					sb.WriteString(s[gs:ge])
				}
				idx++
			} else {
				sb.WriteByte(repl[idx])
			}
		default:
			sb.WriteByte(repl[idx])
		}
	}
	return sb.String()
}

// stringNormalize backs String.prototype.normalize with
// golang.org/x/text/unicode/norm's four standard forms.
func stringNormalize(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	s := selfString(this)
	form := "NFC"
	if len(args) > 0 {
		if str, ok := args[0].(object.String); ok {
			form = string(str)
		}
	}
	var f norm.Form
	switch form {
	case "NFD":
		f = norm.NFD
	case "NFKC":
		f = norm.NFKC
	case "NFKD":
		f = norm.NFKD
	default:
		f = norm.NFC
	}
	return object.String(f.String(s)), nil
}

// stringLocaleCompare backs String.prototype.localeCompare with
// golang.org/x/text/collate's root-locale collator.
func (i *Interpreter) stringLocaleCompare(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	other := i.toStringValue(argOr(args, 0))
	col := collate.New(language.Und)
	return object.Number(col.CompareString(selfString(this), other)), nil
}

func stringToString(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	return object.String(selfString(this)), nil
}

func stringFromCharCode(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteRune(rune(int(object.ToNumber(a))))
	}
	return object.String(sb.String()), nil
}
