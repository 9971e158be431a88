package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunScriptFromFile(t *testing.T) {
	tempDir := t.TempDir()
	scriptPath := filepath.Join(tempDir, "main.js")
	script := `console.log("sum=" + (1 + 2 + 3));`
	if err := os.WriteFile(scriptPath, []byte(script), 0644); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	evalExpr = ""
	traceFlag = false
	dumpResult = false
	maxSteps = 0
	regexpMode = "sandboxed"
	withConsole = true

	if err := runScript(nil, []string{scriptPath}); err != nil {
		t.Fatalf("runScript: %v", err)
	}
}

func TestRunScriptInlineEval(t *testing.T) {
	evalExpr = `var x = 40 + 2; x;`
	traceFlag = false
	dumpResult = false
	maxSteps = 0
	regexpMode = "sandboxed"
	withConsole = true
	defer func() { evalExpr = "" }()

	if err := runScript(nil, nil); err != nil {
		t.Fatalf("runScript: %v", err)
	}
}

func TestRunScriptRejectsUnknownRegexpMode(t *testing.T) {
	evalExpr = `1;`
	regexpMode = "not-a-real-mode"
	defer func() { regexpMode = "sandboxed"; evalExpr = "" }()

	if err := runScript(nil, nil); err == nil {
		t.Fatalf("expected an error for an invalid --regexp-mode value")
	}
}

func TestRunScriptRequiresFileOrEval(t *testing.T) {
	evalExpr = ""
	regexpMode = "sandboxed"

	if err := runScript(nil, nil); err == nil {
		t.Fatalf("expected an error when neither a file nor -e is given")
	}
}
