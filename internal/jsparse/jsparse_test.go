package jsparse

import (
	"testing"

	"github.com/cwbudde/go-es5ix/internal/ast"
)

func TestParseSimpleProgram(t *testing.T) {
	p := New()
	prog, err := p.Parse(`var x = 1 + 2; function f(a, b) { return a + b; } f(x, 3);`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Body) != 3 {
		t.Fatalf("got %d top-level statements, want 3", len(prog.Body))
	}
	if _, ok := prog.Body[0].(*ast.VariableDeclaration); !ok {
		t.Fatalf("statement 0 = %T, want *ast.VariableDeclaration", prog.Body[0])
	}
	if _, ok := prog.Body[1].(*ast.FunctionDeclaration); !ok {
		t.Fatalf("statement 1 = %T, want *ast.FunctionDeclaration", prog.Body[1])
	}
	if _, ok := prog.Body[2].(*ast.ExpressionStatement); !ok {
		t.Fatalf("statement 2 = %T, want *ast.ExpressionStatement", prog.Body[2])
	}
}

func TestParseIfForTry(t *testing.T) {
	p := New()
	_, err := p.Parse(`
		if (1 < 2) { } else { }
		for (var i = 0; i < 10; i = i + 1) { }
		try { } catch (e) { } finally { }
	`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestParseRejectsLet(t *testing.T) {
	p := New()
	if _, err := p.Parse(`let x = 1;`); err == nil {
		t.Fatalf("expected let declarations to be rejected")
	}
}

func TestParseRejectsArrowFunctions(t *testing.T) {
	p := New()
	if _, err := p.Parse(`var f = (x) => x + 1;`); err == nil {
		t.Fatalf("expected arrow functions to be rejected")
	}
}

func TestParseRejectsClasses(t *testing.T) {
	p := New()
	if _, err := p.Parse(`class Foo {}`); err == nil {
		t.Fatalf("expected class declarations to be rejected")
	}
}

func TestParseMemberAndCallExpressions(t *testing.T) {
	p := New()
	prog, err := p.Parse(`a.b.c(1, 2)["d"];`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Body))
	}
	exprStmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	if !ok {
		t.Fatalf("statement = %T, want *ast.ExpressionStatement", prog.Body[0])
	}
	member, ok := exprStmt.Expression.(*ast.MemberExpression)
	if !ok {
		t.Fatalf("expression = %T, want *ast.MemberExpression", exprStmt.Expression)
	}
	if !member.Computed {
		t.Fatalf("outermost member expression should be the computed [\"d\"] access")
	}
}
