package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/match"
	"github.com/k-gruenberg/doublex-go/rules"
)

func identifier(name string, line int) *ast.Node {
	n := ast.New(ast.KindIdentifier, ast.Location{StartLine: line, EndLine: line}, "content.js")
	n.SetAttr("name", name)
	return n
}

func TestDangerFromFinding(t *testing.T) {
	ast.ResetIDCounter()
	from := identifier("data", 1)
	to := identifier("data", 5)
	rendezvous := ast.New(ast.KindCallExpression, ast.Location{StartLine: 5, EndLine: 5}, "content.js")

	finding := rules.Finding{
		Class:     "cs_exfiltration",
		SourceAPI: "chrome.cookies.getAll",
		SinkAPI:   "fetch",
		DoubleFlow: &match.DoubleFlow{
			FromFlow:   []*ast.Node{from},
			ToFlow:     []*ast.Node{to},
			Rendezvous: rendezvous,
			Ordinal:    1,
			Total:      2,
		},
	}

	danger := DangerFromFinding(finding, 2)
	assert.Equal(t, "cs_exfiltration", danger.Class)
	assert.Equal(t, "1/2", danger.DataFlowNumber)
	assert.Len(t, danger.FromFlow, 1)
	assert.Equal(t, "data", danger.FromFlow[0].Identifier)
	assert.Equal(t, "content.js", danger.Rendezvous.Filename)
}

func TestDangerFromFindingSingleMatchOmitsOrdinal(t *testing.T) {
	ast.ResetIDCounter()
	from := identifier("x", 1)
	to := identifier("x", 2)
	rendezvous := ast.New(ast.KindCallExpression, ast.Location{}, "bg.js")

	finding := rules.Finding{
		DoubleFlow: &match.DoubleFlow{FromFlow: []*ast.Node{from}, ToFlow: []*ast.Node{to}, Rendezvous: rendezvous, Ordinal: 1, Total: 1},
	}
	danger := DangerFromFinding(finding, 1)
	assert.Empty(t, danger.DataFlowNumber)
}

func TestWriteJSONRoundTrip(t *testing.T) {
	ast.ResetIDCounter()
	doc := NewDocument("/ext/manifest.json")
	doc.ContentScriptInjectedInto = true
	doc.AddCrash("bp", "ParseError", "unexpected token")

	var buf bytes.Buffer
	assert.NoError(t, WriteJSON(&buf, doc))

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, doc.RunID, decoded["run_id"])
	assert.Equal(t, true, decoded["content_script_injected_into"])
}

func TestStorageAccessDescriptors(t *testing.T) {
	ast.ResetIDCounter()
	call := ast.New(ast.KindCallExpression, ast.Location{StartLine: 3, EndLine: 3}, "bg.js")
	out := StorageAccessDescriptors([]*ast.Node{call})
	assert.Len(t, out, 1)
	assert.Equal(t, 1, out[0].No)
	assert.Equal(t, "bg.js", out[0].Filename)
}
