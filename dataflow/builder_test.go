package dataflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/parser"
)

func mustParse(t *testing.T, src string) *ast.Node {
	t.Helper()
	ast.ResetIDCounter()
	root, err := parser.Parse([]byte(src), "f.js")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindProgram, root.Kind)
	return root
}

func identUses(root *ast.Node, name string) []*ast.Node {
	var out []*ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindIdentifier && n.Name() == name {
			out = append(out, n)
		}
	})
	return out
}

func TestBuildBasicEdgesVarToUse(t *testing.T) {
	root := mustParse(t, `var x = 1; console.log(x);`)
	BuildBasicEdges(root)

	uses := identUses(root, "x")
	assert.Len(t, uses, 2)
	decl, use := uses[0], uses[1]
	assert.Contains(t, decl.DataDepChildren(), use)
	assert.Contains(t, use.DataDepParents(), decl)
}

func TestEnsureCallExprChildEdgesArgToParam(t *testing.T) {
	root := mustParse(t, `function f(p) { console.log(p); } var a = 1; f(a);`)
	BuildBasicEdges(root)

	args := identUses(root, "a")
	// a declared once, used once as call argument.
	assert.Len(t, args, 2)
	argUse := args[1]
	EnsureCallExprChildEdges(argUse)

	params := identUses(root, "p")
	assert.NotEmpty(t, params)
	found := false
	for _, child := range argUse.DataDepChildren() {
		if child == params[0] {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEnsureReturnParentEdgesBindsCallResult(t *testing.T) {
	root := mustParse(t, `function f() { var y = 1; return y; } var x = f();`)
	BuildBasicEdges(root)

	xs := identUses(root, "x")
	assert.Len(t, xs, 1)
	EnsureReturnParentEdges(xs[0])

	ys := identUses(root, "y")
	retY := ys[len(ys)-1]
	found := false
	for _, child := range retY.DataDepChildren() {
		if child == xs[0] {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCallResultIdentifierVariableDeclarator(t *testing.T) {
	root := mustParse(t, `var x = f();`)
	var call *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindCallExpression {
			call = n
		}
	})
	assert.NotNil(t, call)
	id := CallResultIdentifier(call)
	assert.NotNil(t, id)
	assert.Equal(t, "x", id.Name())
}

func TestCallResultIdentifierNilWhenUnbound(t *testing.T) {
	root := mustParse(t, `f();`)
	var call *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindCallExpression {
			call = n
		}
	})
	assert.NotNil(t, call)
	assert.Nil(t, CallResultIdentifier(call))
}
