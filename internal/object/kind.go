package object

// Kind distinguishes what an *Object's Data slot means and how the
// interpreter should invoke it, per spec.md §3 "Guest object fields:
// kind". Every *Object has a Kind even if it is never called — KindPlain
// covers ordinary objects, arrays, and boxed primitives alike (Class
// distinguishes those, not Kind).
type Kind int

const (
	// KindPlain is any non-callable object: a plain object, an array, a
	// boxed Number/String/Boolean, a Date, a RegExp, an Error instance.
	KindPlain Kind = iota
	// KindGuestFn is a function created from a guest FunctionExpression or
	// FunctionDeclaration: calling it walks the function's body AST in a
	// new Frame.
	KindGuestFn
	// KindNativeFn is a function backed by a Go closure (spec.md §4.5
	// create_native_function): calling it invokes Go code directly, no
	// new Frame is pushed for guest statements.
	KindNativeFn
	// KindAsyncFn is a native function that suspends the engine (spec.md
	// §4.5 create_async_function / §5 "cooperative concurrency"): calling
	// it sets the interpreter's paused flag until the host resumes it.
	KindAsyncFn
	// KindEvalFn is the builtin `eval` function specifically, tagged
	// distinctly because its call handling needs the caller's own scope
	// (spec.md §6.1 EvalProgram) rather than a fresh one.
	KindEvalFn
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindGuestFn:
		return "guest-function"
	case KindNativeFn:
		return "native-function"
	case KindAsyncFn:
		return "async-function"
	case KindEvalFn:
		return "eval-function"
	default:
		return "unknown"
	}
}

// Callable reports whether objects of this Kind may be invoked as
// functions (used by the `typeof` operator: callable objects report
// "function", everything else reports "object").
func (k Kind) Callable() bool {
	switch k {
	case KindGuestFn, KindNativeFn, KindAsyncFn, KindEvalFn:
		return true
	default:
		return false
	}
}
