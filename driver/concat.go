package driver

import (
	"bytes"
	"os"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/parser"
)

func readAll(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// parseAndConcatenate demarcates paths into one logical unit (§4.G
// "concatenate/demarcate the background and content scripts into two
// logical units") by parsing each file separately and splicing their top-
// level statements into a single synthetic Program, so a data-flow edge
// never crosses a file it didn't originate in except through the shared
// root. A parse failure on any one file marks the whole side crashed,
// matching §7's ParseError policy ("the whole script is marked crashed").
func parseAndConcatenate(side string, paths []string) (root *ast.Node, totalLines int, crashed bool, crashMsg string) {
	combined := ast.New(ast.KindProgram, ast.Location{}, side)
	for _, path := range paths {
		src, err := readAll(path)
		if err != nil {
			return nil, 0, true, "reading " + path + ": " + err.Error()
		}
		totalLines += bytes.Count(src, []byte("\n")) + 1

		fileRoot, err := parser.Parse(src, path)
		if err != nil {
			return nil, 0, true, "parsing " + path + ": " + err.Error()
		}
		if fileRoot.Kind == ast.KindParseError {
			msg, _ := fileRoot.Attr("message").(string)
			return nil, 0, true, path + ": " + msg
		}
		for _, stmt := range fileRoot.Get("body") {
			combined.AppendChild("body", stmt)
		}
	}
	return combined, totalLines, false, ""
}
