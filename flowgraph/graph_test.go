package flowgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
)

func ident(name string) *ast.Node {
	n := ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
	n.SetAttr("name", name)
	return n
}

func TestBuildAndLeaves(t *testing.T) {
	ast.ResetIDCounter()
	a := ident("a")
	b := ident("b")
	c := ident("c")
	ast.AddDataFlowEdge(a, b)
	ast.AddDataFlowEdge(b, c)

	g := Build(a)
	assert.Len(t, g.Nodes, 3)
	assert.Equal(t, []*ast.Node{c}, g.Leaves())
}

func TestDijkstraShortestPath(t *testing.T) {
	ast.ResetIDCounter()
	a := ident("a")
	b := ident("b")
	c := ident("c")
	ast.AddDataFlowEdge(a, b)
	ast.AddDataFlowEdge(a, c)
	ast.AddDataFlowEdge(b, c)

	g := Build(a)
	idx := g.Dijkstra()

	d, ok := idx.Distance(c)
	assert.True(t, ok)
	assert.Equal(t, 1, d)
	assert.Equal(t, []*ast.Node{a, c}, idx.ShortestPath(c))
}

func TestHasCycle(t *testing.T) {
	ast.ResetIDCounter()
	a := ident("a")
	b := ident("b")
	ast.AddDataFlowEdge(a, b)
	ast.AddDataFlowEdge(b, a)

	g := Build(a)
	assert.True(t, g.HasCycle())
}

func TestNoCycle(t *testing.T) {
	ast.ResetIDCounter()
	a := ident("a")
	b := ident("b")
	ast.AddDataFlowEdge(a, b)

	g := Build(a)
	assert.False(t, g.HasCycle())
}

func TestEnumerateJustOne(t *testing.T) {
	ast.ResetIDCounter()
	a := ident("a")
	b := ident("b")
	c := ident("c")
	ast.AddDataFlowEdge(a, b)
	ast.AddDataFlowEdge(a, c)

	g := Build(a)
	paths := g.Enumerate(JustOne)
	assert.Len(t, paths, 1)
	assert.Equal(t, a, paths[0][0])
}
