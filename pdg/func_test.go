package pdg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/parser"
)

func parseProgram(t *testing.T, src string) *ast.Node {
	t.Helper()
	ast.ResetIDCounter()
	root, err := parser.Parse([]byte(src), "f.js")
	assert.NoError(t, err)
	return root
}

func findCallExpr(root *ast.Node, calleeName string) *ast.Node {
	var found *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if found != nil || n.Kind != ast.KindCallExpression {
			return
		}
		callee := n.GetOne("callee")
		if callee != nil && callee.Kind == ast.KindIdentifier && callee.Name() == calleeName {
			found = n
		}
	})
	return found
}

func TestResolveFuncDeclaration(t *testing.T) {
	root := parseProgram(t, `function f() {} f();`)
	call := findCallExpr(root, "f")
	assert.NotNil(t, call)
	fn := ResolveFunc(call.GetOne("callee"))
	assert.NotNil(t, fn)
	assert.Equal(t, "f", fn.Name())
}

func TestResolveFuncViaVariableDeclarator(t *testing.T) {
	root := parseProgram(t, `var f = function() {}; f();`)
	call := findCallExpr(root, "f")
	fn := ResolveFunc(call.GetOne("callee"))
	assert.NotNil(t, fn)
	assert.Equal(t, "", fn.Name())
}

func TestResolveFuncBind(t *testing.T) {
	root := parseProgram(t, `function f() {} var g = f.bind(null); g();`)
	call := findCallExpr(root, "g")
	fn := ResolveFunc(call.GetOne("callee"))
	assert.NotNil(t, fn)
	assert.Equal(t, "f", fn.Name())
}

func TestIsRecursiveDirectSelfCall(t *testing.T) {
	root := parseProgram(t, `function f(n) { return f(n-1); }`)
	var fnNode *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindFunctionDeclaration {
			fnNode = n
		}
	})
	assert.NotNil(t, fnNode)
	f := &Func{Node: fnNode}
	assert.True(t, f.IsRecursive())
}

func TestIsRecursiveArgumentsCallee(t *testing.T) {
	root := parseProgram(t, `function f(n) { return arguments.callee(n-1); }`)
	var fnNode *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindFunctionDeclaration {
			fnNode = n
		}
	})
	f := &Func{Node: fnNode}
	assert.True(t, f.IsRecursive())
}

func TestIsRecursiveFalseForNonRecursive(t *testing.T) {
	root := parseProgram(t, `function f(n) { return n + 1; }`)
	var fnNode *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindFunctionDeclaration {
			fnNode = n
		}
	})
	f := &Func{Node: fnNode}
	assert.False(t, f.IsRecursive())
}
