package match

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
)

func buildCallWithTwoArgArgs() (call, a, b *ast.Node) {
	call = ast.New(ast.KindCallExpression, ast.Location{}, "f.js")
	a = ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
	a.SetAttr("name", "a")
	b = ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
	b.SetAttr("name", "b")
	call.AppendChild("arguments", a)
	call.AppendChild("arguments", b)
	return
}

func TestFindRendezvousBasic(t *testing.T) {
	ast.ResetIDCounter()
	call, a, b := buildCallWithTwoArgArgs()

	from := [][]*ast.Node{{a}}
	to := [][]*ast.Node{{b}}

	matches := FindRendezvous(from, to, Options{})
	assert.Len(t, matches, 1)
	assert.Equal(t, call, matches[0].Rendezvous)
	assert.Equal(t, 1, matches[0].Ordinal)
	assert.Equal(t, 1, matches[0].Total)
}

func TestFindRendezvousNoSharedAncestor(t *testing.T) {
	ast.ResetIDCounter()
	a := ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
	b := ast.New(ast.KindIdentifier, ast.Location{}, "g.js")

	matches := FindRendezvous([][]*ast.Node{{a}}, [][]*ast.Node{{b}}, Options{})
	assert.Empty(t, matches)
}

func TestFindRendezvousFirstMatchOnly(t *testing.T) {
	ast.ResetIDCounter()
	call, a, b := buildCallWithTwoArgArgs()
	_ = call

	from := [][]*ast.Node{{a}}
	to := [][]*ast.Node{{b}, {b}}

	matches := FindRendezvous(from, to, Options{FirstMatchOnly: true})
	assert.Len(t, matches, 1)
}

func TestFindRendezvousExcludesIIFE(t *testing.T) {
	ast.ResetIDCounter()
	fn := ast.New(ast.KindFunctionExpression, ast.Location{}, "f.js")
	call := ast.New(ast.KindCallExpression, ast.Location{}, "f.js")
	call.AppendChild("callee", fn)
	a := ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
	a.SetAttr("name", "a")
	b := ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
	b.SetAttr("name", "b")
	call.AppendChild("arguments", a)
	call.AppendChild("arguments", b)

	matches := FindRendezvous([][]*ast.Node{{a}}, [][]*ast.Node{{b}}, Options{ExcludeIIFERendezvous: true})
	assert.Empty(t, matches)
}
