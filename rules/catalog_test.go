package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
)

func memberCall(parts ...string) *ast.Node {
	call := ast.New(ast.KindCallExpression, ast.Location{}, "f.js")
	call.AppendChild("callee", memberChain(parts))
	return call
}

func memberChain(parts []string) *ast.Node {
	if len(parts) == 1 {
		id := ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
		id.SetAttr("name", parts[0])
		return id
	}
	member := ast.New(ast.KindMemberExpression, ast.Location{}, "f.js")
	member.SetAttr("computed", false)
	member.AppendChild("object", memberChain(parts[:len(parts)-1]))
	prop := ast.New(ast.KindIdentifier, ast.Location{}, "f.js")
	prop.SetAttr("name", parts[len(parts)-1])
	member.AppendChild("property", prop)
	return member
}

func TestCalleeName(t *testing.T) {
	ast.ResetIDCounter()
	call := memberCall("chrome", "tabs", "query")
	assert.Equal(t, "chrome.tabs.query", CalleeName(call))
}

func TestCatalogMatching(t *testing.T) {
	ast.ResetIDCounter()
	catalog := &Catalog{
		SensitiveSources: []APIClass{{Name: "cookies", Prefixes: []string{"chrome.cookies.getAll"}}},
		DangerousSinks:   []APIClass{{Name: "eval", Prefixes: []string{"eval"}}},
	}

	sourceCall := memberCall("chrome", "cookies", "getAll")
	assert.NotNil(t, catalog.MatchSensitiveSource(sourceCall))
	assert.Nil(t, catalog.MatchDangerousSink(sourceCall))

	unrelated := memberCall("chrome", "tabs", "query")
	assert.Nil(t, catalog.MatchSensitiveSource(unrelated))
}

func TestGetSensitiveAPIsAccessed(t *testing.T) {
	ast.ResetIDCounter()
	catalog := &Catalog{
		SensitiveSources: []APIClass{{Name: "cookies", Prefixes: []string{"chrome.cookies.getAll"}}},
	}
	root := ast.New(ast.KindProgram, ast.Location{}, "f.js")
	stmt := ast.New(ast.KindExpressionStatement, ast.Location{}, "f.js")
	root.AppendChild("body", stmt)
	stmt.AppendChild("expression", memberCall("chrome", "cookies", "getAll"))

	found := GetSensitiveAPIsAccessed(root, catalog)
	assert.Len(t, found, 1)
}

func TestExtensionStorageAccesses(t *testing.T) {
	ast.ResetIDCounter()
	root := ast.New(ast.KindProgram, ast.Location{}, "f.js")
	stmt1 := ast.New(ast.KindExpressionStatement, ast.Location{}, "f.js")
	stmt1.AppendChild("expression", memberCall("chrome", "storage", "local", "set"))
	stmt2 := ast.New(ast.KindExpressionStatement, ast.Location{}, "f.js")
	stmt2.AppendChild("expression", memberCall("chrome", "tabs", "query"))
	root.AppendChild("body", stmt1)
	root.AppendChild("body", stmt2)

	accesses := ExtensionStorageAccesses(root, &Catalog{})
	assert.Len(t, accesses, 1)
}
