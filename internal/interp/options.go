package interp

import (
	"io"
	"time"

	"github.com/goccy/go-yaml"
)

// RegexpMode selects how regular-expression literals and the RegExp
// constructor behave, per spec.md §4.5/§6.3.
type RegexpMode int

const (
	// RegexpReject makes every regexp literal/constructor call throw
	// immediately — the engine offers no regex support at all.
	RegexpReject RegexpMode = iota
	// RegexpNative runs patterns directly against Go's regexp package with
	// no timeout wrapper.
	RegexpNative
	// RegexpSandboxed (the default) runs patterns through
	// internal/regexsandbox's cancelable-goroutine wrapper, honoring
	// REGEXP_THREAD_TIMEOUT.
	RegexpSandboxed
)

// Options configures an Interpreter, following the teacher's
// functional-options idiom (internal/interp/options.go's
// Options-as-interface breaks a different circular-import problem than
// this module has; here the simpler concrete-struct-plus-With-funcs
// shape, used throughout the rest of the teacher's CLI/FFI surface,
// fits directly).
type Options struct {
	// Output is where console.log/console.error (SPEC_FULL.md §3.5) write;
	// defaults to io.Discard.
	Output io.Writer
	// Trace, if non-nil, receives developer-facing step/bootstrap/regexp
	// diagnostics (SPEC_FULL.md §1.1). Defaults to nil (silent).
	Trace io.Writer
	// RegexpModeValue is spec.md §6.3 REGEXP_MODE. Default: RegexpSandboxed.
	RegexpModeValue RegexpMode
	// RegexpTimeout is spec.md §6.3 REGEXP_THREAD_TIMEOUT. Default: 1000ms.
	RegexpTimeout time.Duration
	// MaxSteps bounds the number of statement-steps Run will execute
	// before returning a HostError, guarding against runaway guest loops
	// in an embedding host; 0 means unbounded.
	MaxSteps int
	// Console installs console.log/console.error globals (SPEC_FULL.md
	// §3.5) when true. Not part of real ES5; off by default.
	Console bool
	// Parser is the AST producer AppendCode and eval use. Defaults
	// to internal/jsparse's go-fast-backed adapter if nil.
	Parser Parser
}

// Option mutates an Options value being built up by New.
type Option func(*Options)

func defaultOptions() Options {
	return Options{
		Output:          io.Discard,
		RegexpModeValue: RegexpSandboxed,
		RegexpTimeout:   1000 * time.Millisecond,
	}
}

// WithOutput sets the guest-visible output writer (console.log target).
func WithOutput(w io.Writer) Option {
	return func(o *Options) { o.Output = w }
}

// WithTrace enables developer-facing diagnostic tracing to w.
func WithTrace(w io.Writer) Option {
	return func(o *Options) { o.Trace = w }
}

// WithRegexpMode sets spec.md §6.3 REGEXP_MODE.
func WithRegexpMode(mode RegexpMode) Option {
	return func(o *Options) { o.RegexpModeValue = mode }
}

// WithRegexpTimeout sets spec.md §6.3 REGEXP_THREAD_TIMEOUT.
func WithRegexpTimeout(d time.Duration) Option {
	return func(o *Options) { o.RegexpTimeout = d }
}

// WithMaxSteps bounds statement-step execution.
func WithMaxSteps(n int) Option {
	return func(o *Options) { o.MaxSteps = n }
}

// WithConsole installs the console.log/console.error globals.
func WithConsole() Option {
	return func(o *Options) { o.Console = true }
}

// WithParser supplies a custom AST producer, overriding the default
// go-fast-backed internal/jsparse.Adapter.
func WithParser(p Parser) Option {
	return func(o *Options) { o.Parser = p }
}

// yamlOptions is the on-disk shape LoadOptions reads; only the fields a
// host deployment would plausibly want to externalize are exposed —
// Output/Trace/Parser are Go-side values with no serializable form.
type yamlOptions struct {
	RegexpMode    string `yaml:"regexp_mode"`
	RegexpTimeout string `yaml:"regexp_timeout"`
	MaxSteps      int    `yaml:"max_steps"`
	Console       bool   `yaml:"console"`
}

// LoadOptions parses a YAML document (e.g. an `engine.yaml` shipped
// alongside a host deployment) into a set of Option values layered on
// top of defaultOptions, per SPEC_FULL.md §1.3.
func LoadOptions(doc []byte) ([]Option, error) {
	var y yamlOptions
	if err := yaml.Unmarshal(doc, &y); err != nil {
		return nil, err
	}

	var opts []Option
	switch y.RegexpMode {
	case "reject":
		opts = append(opts, WithRegexpMode(RegexpReject))
	case "native":
		opts = append(opts, WithRegexpMode(RegexpNative))
	case "sandboxed", "":
		opts = append(opts, WithRegexpMode(RegexpSandboxed))
	}
	if y.RegexpTimeout != "" {
		if d, err := time.ParseDuration(y.RegexpTimeout); err == nil {
			opts = append(opts, WithRegexpTimeout(d))
		}
	}
	if y.MaxSteps > 0 {
		opts = append(opts, WithMaxSteps(y.MaxSteps))
	}
	if y.Console {
		opts = append(opts, WithConsole())
	}
	return opts, nil
}
