package dataflow

import (
	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/pdg"
)

// PruneUnreachableEdges removes data-flow edges whose source or target
// Identifier sits in a statically-dead branch (§4.C "Incorrect-edge
// pruning"): such edges would otherwise make a sink look reachable from a
// source that can never execute.
func PruneUnreachableEdges(root *ast.Node) {
	var dead []*ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindIdentifier && pdg.IsUnreachable(n) {
			dead = append(dead, n)
		}
	})
	for _, n := range dead {
		for _, child := range append([]*ast.Node{}, n.DataDepChildren()...) {
			ast.RemoveDataFlowEdge(n, child)
		}
		for _, parent := range append([]*ast.Node{}, n.DataDepParents()...) {
			ast.RemoveDataFlowEdge(parent, n)
		}
	}
}
