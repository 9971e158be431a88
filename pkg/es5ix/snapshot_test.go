package es5ix

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEndToEndSnapshots runs a handful of representative scripts and
// snapshots both console output and the final completion value,
// mirroring the teacher's fixture-driven go-snaps harness
// (internal/interp/fixture_test.go) at a scale matched to this module's
// narrower ES5-subset surface rather than DWScript's full test corpus.
func TestEndToEndSnapshots(t *testing.T) {
	scripts := []struct {
		name   string
		source string
	}{
		{
			name: "fibonacci",
			source: `
				function fib(n) {
					if (n < 2) { return n; }
					return fib(n - 1) + fib(n - 2);
				}
				var out = [];
				for (var i = 0; i < 10; i = i + 1) {
					out.push(fib(i));
				}
				console.log(out.join(","));
				out[9];
			`,
		},
		{
			name: "json_roundtrip",
			source: `
				var data = { name: "es5ix", tags: ["js", "sandbox"], count: 3 };
				var text = JSON.stringify(data);
				console.log(text);
				JSON.parse(text).count;
			`,
		},
		{
			name: "exception_unwind",
			source: `
				function risky(x) {
					if (x < 0) { throw new RangeError("negative: " + x); }
					return x * 2;
				}
				var results = [];
				[-1, 2, -3, 4].forEach(function(v) {
					try {
						results.push(risky(v));
					} catch (e) {
						results.push(e.name + ":" + e.message);
					}
				});
				console.log(results.join("|"));
				results.length;
			`,
		},
	}

	for _, sc := range scripts {
		sc := sc
		t.Run(sc.name, func(t *testing.T) {
			var buf bytes.Buffer
			e := New(WithConsole())
			e.SetOutput(&buf)
			v, err := e.Eval(sc.source)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			snaps.MatchSnapshot(t, sc.name+"_console", buf.String())
			snaps.MatchSnapshot(t, sc.name+"_result", v.String())
		})
	}
}
