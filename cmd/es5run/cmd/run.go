package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-es5ix/pkg/es5ix"
)

var (
	evalExpr     string
	traceFlag    bool
	dumpResult   bool
	maxSteps     int
	regexpMode   string
	regexpTimeout time.Duration
	withConsole  bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a JavaScript (ES5 subset) file or expression",
	Long: `Execute a JavaScript program from a file or inline expression against
the sandboxed ES5-subset interpreter.

Examples:
  # Run a script file
  es5run run script.js

  # Evaluate an inline expression
  es5run run -e "console.log('Hello, World!');"

  # Run with an execution trace
  es5run run --trace script.js

  # Reject all RegExp usage outright
  es5run run --regexp-mode reject script.js`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&traceFlag, "trace", false, "trace execution (for debugging)")
	runCmd.Flags().BoolVar(&dumpResult, "dump-result", false, "pretty-print the completion value after Run")
	runCmd.Flags().IntVar(&maxSteps, "max-steps", 0, "bound the number of statement-steps Run executes (0 = unbounded)")
	runCmd.Flags().StringVar(&regexpMode, "regexp-mode", "sandboxed", "RegExp execution mode: reject, native, sandboxed")
	runCmd.Flags().DurationVar(&regexpTimeout, "regexp-timeout", time.Second, "RegExp sandbox per-match deadline")
	runCmd.Flags().BoolVar(&withConsole, "console", true, "install console.log/console.error globals")
}

func runScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case evalExpr != "":
		input, filename = evalExpr, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e flag for inline code")
	}

	mode, err := parseRegexpMode(regexpMode)
	if err != nil {
		return err
	}

	opts := []es5ix.Option{
		es5ix.WithOutput(os.Stdout),
		es5ix.WithRegexpMode(mode),
		es5ix.WithRegexpTimeout(regexpTimeout),
	}
	if maxSteps > 0 {
		opts = append(opts, es5ix.WithMaxSteps(maxSteps))
	}
	if withConsole {
		opts = append(opts, es5ix.WithConsole())
	}
	if traceFlag {
		opts = append(opts, es5ix.WithTrace(os.Stderr))
	}

	engine := es5ix.New(opts...)

	if traceFlag {
		fmt.Fprintf(os.Stderr, "[trace] executing %s\n", filename)
	}

	result, err := engine.Eval(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		return fmt.Errorf("execution failed")
	}

	if dumpResult {
		pretty.Println(result.Native())
	}

	return nil
}

func parseRegexpMode(s string) (es5ix.RegexpMode, error) {
	switch s {
	case "reject":
		return es5ix.RegexpReject, nil
	case "native":
		return es5ix.RegexpNative, nil
	case "sandboxed", "":
		return es5ix.RegexpSandboxed, nil
	default:
		return 0, fmt.Errorf("unknown --regexp-mode %q (want reject, native, or sandboxed)", s)
	}
}
