package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocationContains(t *testing.T) {
	outer := Location{StartLine: 1, StartCol: 0, EndLine: 10, EndCol: 0}
	inner := Location{StartLine: 2, StartCol: 0, EndLine: 3, EndCol: 5}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
}

func TestLocationBefore(t *testing.T) {
	a := Location{StartLine: 1, StartCol: 0}
	b := Location{StartLine: 1, StartCol: 5}
	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
}

func TestNodeGetAndGetOne(t *testing.T) {
	ResetIDCounter()
	program := New(KindProgram, Location{}, "f.js")
	a := New(KindExpressionStatement, Location{}, "f.js")
	b := New(KindExpressionStatement, Location{}, "f.js")
	program.AppendChild("body", a)
	program.AppendChild("body", b)

	assert.Equal(t, []*Node{a, b}, program.Get("body"))
	assert.Equal(t, a, program.GetOne("body"))
	assert.Nil(t, program.GetOne("callee"))
}

func TestNodeAncestry(t *testing.T) {
	ResetIDCounter()
	root := New(KindProgram, Location{}, "f.js")
	fn := New(KindFunctionDeclaration, Location{}, "f.js")
	block := New(KindBlockStatement, Location{}, "f.js")
	ret := New(KindReturnStatement, Location{}, "f.js")

	root.AppendChild("body", fn)
	fn.AppendChild("body", block)
	block.AppendChild("body", ret)

	assert.Equal(t, fn, ret.NearestAncestorOfKind(KindFunctionDeclaration))
	assert.Nil(t, ret.NearestAncestorOfKind(KindClassDeclaration))
	assert.Equal(t, []*Node{block, fn, root}, ret.Ancestors())
	assert.Equal(t, block, ret.NearestStatementAncestor())
}

func TestNodeIsInside(t *testing.T) {
	ResetIDCounter()
	outer := New(KindFunctionDeclaration, Location{StartLine: 1, EndLine: 10}, "f.js")
	inner := New(KindReturnStatement, Location{StartLine: 2, EndLine: 2}, "f.js")
	otherFile := New(KindReturnStatement, Location{StartLine: 2, EndLine: 2}, "g.js")

	assert.True(t, inner.IsInside(outer))
	assert.False(t, otherFile.IsInside(outer))
}

func TestNodeOccursBeforeAfter(t *testing.T) {
	ResetIDCounter()
	a := New(KindIdentifier, Location{StartLine: 1, StartCol: 0}, "f.js")
	b := New(KindIdentifier, Location{StartLine: 2, StartCol: 0}, "f.js")

	assert.True(t, a.OccursBefore(b))
	assert.True(t, b.OccursAfter(a))
	assert.False(t, a.OccursAfter(b))
}

func TestNodePreOrder(t *testing.T) {
	ResetIDCounter()
	root := New(KindProgram, Location{}, "f.js")
	a := New(KindExpressionStatement, Location{}, "f.js")
	b := New(KindExpressionStatement, Location{}, "f.js")
	root.AppendChild("body", a)
	root.AppendChild("body", b)

	var visited []*Node
	root.PreOrder(func(n *Node) { visited = append(visited, n) })
	assert.Equal(t, []*Node{root, a, b}, visited)
}

func TestNodeAttrAndName(t *testing.T) {
	ResetIDCounter()
	id := New(KindIdentifier, Location{}, "f.js")
	id.SetAttr("name", "chrome")
	assert.Equal(t, "chrome", id.Name())
	assert.True(t, id.IsIdentifier())
	assert.Nil(t, id.Attr("missing"))
}

func TestNodeSiblingByOffset(t *testing.T) {
	ResetIDCounter()
	root := New(KindProgram, Location{}, "f.js")
	a := New(KindExpressionStatement, Location{}, "f.js")
	b := New(KindExpressionStatement, Location{}, "f.js")
	c := New(KindExpressionStatement, Location{}, "f.js")
	root.AppendChild("body", a)
	root.AppendChild("body", b)
	root.AppendChild("body", c)

	assert.Equal(t, c, b.SiblingByOffset(1))
	assert.Equal(t, a, b.SiblingByOffset(-1))
	assert.Nil(t, a.SiblingByOffset(-1))
	assert.Nil(t, c.SiblingByOffset(1))
}

func TestNodeLHSRHS(t *testing.T) {
	ResetIDCounter()
	assign := New(KindAssignmentExpression, Location{}, "f.js")
	left := New(KindIdentifier, Location{}, "f.js")
	left.SetAttr("name", "x")
	right := New(KindLiteral, Location{}, "f.js")
	assign.AppendChild("left", left)
	assign.AppendChild("right", right)

	assert.Equal(t, left, assign.LHS())
	assert.Equal(t, right, assign.RHS())
}
