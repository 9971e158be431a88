package interp

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-es5ix/internal/object"
)

// installConsole installs console.log/console.error, a host-ergonomics
// convenience (SPEC_FULL.md §3.5) writing to the configured Output
// writer — never part of real ES5, so only installed when the host
// opts in via WithConsole.
func (i *Interpreter) installConsole() {
	console := i.NewObject("Object", nil)
	console.SetOwnData("log", i.nativeFn("log", 0, i.consoleLog), object.DefaultAttrs)
	console.SetOwnData("error", i.nativeFn("error", 0, i.consoleLog), object.DefaultAttrs)
	i.globalObj.SetOwnData("console", console, object.DefaultAttrs)
}

func (i *Interpreter) consoleLog(ctx object.NativeContext, this object.Value, args []object.Value) (object.Value, error) {
	parts := make([]string, len(args))
	for idx, a := range args {
		parts[idx] = i.toStringValue(a)
	}
	fmt.Fprintln(i.opts.Output, strings.Join(parts, " "))
	return object.Undefined{}, nil
}
