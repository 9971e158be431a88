package interp

import (
	"io"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// SetOutput redirects console.log/console.error output (SPEC_FULL.md
// §3.5) after construction. Hosts that know the writer up front should
// prefer WithOutput instead.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.opts.Output = w
}

// SetGlobal assigns a Go value onto the global object under name,
// converting it through NativeToPseudo (pkg/es5ix.Engine.SetGlobal).
func (i *Interpreter) SetGlobal(name string, v any) error {
	pv, err := i.NativeToPseudo(v)
	if err != nil {
		return err
	}
	i.globalObj.SetOwnData(name, pv, object.DefaultAttrs)
	return nil
}

// GetGlobal reads a global property back out as a guest Value.
func (i *Interpreter) GetGlobal(name string) (object.Value, error) {
	v, ok := i.global.Get(name)
	if !ok {
		return object.Undefined{}, nil
	}
	return v, nil
}

// NativeValueToAny converts a guest Value into its most natural
// interface{}-shaped Go representation, exposed for pkg/es5ix.Value.Native.
func (i *Interpreter) NativeValueToAny(v object.Value) any {
	return i.pseudoToAny(v)
}
