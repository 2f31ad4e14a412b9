package dataflow

import "github.com/k-gruenberg/doublex-go/ast"

// ComputeEdgesForIdentifier lazily generates every layer of edges relevant
// to id's syntactic position, without walking the rest of the tree — the
// "identifier_of_interest" mode of §4.C, used when only a handful of
// identifiers (e.g. a rule's sources/sinks) need edges rather than the
// whole program.
func ComputeEdgesForIdentifier(id *ast.Node) {
	if id.Kind != ast.KindIdentifier {
		return
	}
	EnsureBasicEdges(id)

	if parent := id.Parent; parent != nil {
		if parent.Kind == ast.KindCallExpression && id.Role == "arguments" {
			EnsureCallExprChildEdges(id)
		}
	}
	if fn := enclosingFunction(id); fn != nil {
		for _, p := range fn.Get("params") {
			if p == id || containsNode(p, id) {
				EnsureCallExprParentEdges(id)
				break
			}
		}
	}
	if retStmt := id.NearestAncestorOfKind(ast.KindReturnStatement); retStmt != nil {
		if arg := retStmt.GetOne("argument"); arg == id {
			EnsureReturnChildEdges(id)
		}
	}
	if callExpressionBindingTo(id) != nil {
		EnsureReturnParentEdges(id)
	}
}

func containsNode(root, target *ast.Node) bool {
	found := false
	root.PreOrder(func(n *ast.Node) {
		if n == target {
			found = true
		}
	})
	return found
}
