package driver

import (
	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/report"
)

// codeStats computes the line/function counts doublex.py reports per side.
func codeStats(root *ast.Node, lines int) report.CodeStats {
	functions := 0
	root.PreOrder(func(n *ast.Node) {
		if n.Kind.IsFunction() {
			functions++
		}
	})
	return report.CodeStats{Lines: lines, Functions: functions}
}
