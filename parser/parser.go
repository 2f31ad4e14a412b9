// Package parser adapts go-tree-sitter's JavaScript grammar into the
// ESTree-like ast.Node tree the rest of this module consumes (§6's parser
// contract), the same way the teacher's graph/parser_java.go and
// parser_python.go adapt tree-sitter's Java/Python grammars into its own
// node model.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/k-gruenberg/doublex-go/ast"
)

// Parse parses source and returns the root Program node. A tree-sitter
// syntax error does not fail the call — it yields an ast.KindParseError
// node the driver treats as a crash record, per §6.
func Parse(source []byte, filename string) (*ast.Node, error) {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return errorNode(filename, fmt.Sprintf("tree-sitter parse failed: %v", err)), nil
	}
	root := tree.RootNode()
	if root.HasError() {
		return errorNode(filename, "syntax error in source"), nil
	}
	c := &converter{src: source, file: filename}
	program := ast.New(ast.KindProgram, locOf(root), filename)
	for i := 0; i < int(root.NamedChildCount()); i++ {
		if stmt := c.convertStatement(root.NamedChild(i)); stmt != nil {
			program.AppendChild("body", stmt)
		}
	}
	return program, nil
}

func errorNode(filename, message string) *ast.Node {
	n := ast.New(ast.KindParseError, ast.Location{}, filename)
	n.SetAttr("message", message)
	return n
}

func locOf(n *sitter.Node) ast.Location {
	start := n.StartPoint()
	end := n.EndPoint()
	return ast.Location{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column),
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column),
	}
}

// converter carries the shared conversion state (source bytes, filename)
// through the recursive tree-sitter→ast.Node translation. The full grammar
// surface is large; convertExpression/convertStatement dispatch on
// tree-sitter's node Type(). An expression of a type with no case (e.g.
// decorators, TS-only syntax) converts to nil and is left out of the tree,
// so downstream packages never see it; no node of KindUnknown is produced.
type converter struct {
	src  []byte
	file string
}
