package pdg

import "github.com/k-gruenberg/doublex-go/ast"

// IdentifierIsInScopeAt reports whether name would resolve to some
// declaration if referenced at anchor — without requiring an actual
// Identifier node to already exist there.
func IdentifierIsInScopeAt(name string, anchor *ast.Node) bool {
	return resolveFrom(anchor, name) != nil
}

// IdentifierIsAssignedToBefore reports whether the declaration use resolves
// to has received a value — via its declarator's initializer, or via a
// plain AssignmentExpression to the same declaration — strictly before
// the before node in source order.
func IdentifierIsAssignedToBefore(use *ast.Node, before *ast.Node) bool {
	decl := ResolveIdentifier(use)
	if decl == nil {
		return false
	}
	if decl.Parent != nil && decl.Parent.Kind == ast.KindVariableDeclarator && decl.Role == "id" {
		if init := decl.Parent.GetOne("init"); init != nil {
			if decl.Parent.OccursBefore(before) {
				return true
			}
		}
	}

	found := false
	root := decl
	for root.Parent != nil {
		root = root.Parent
	}
	root.PreOrder(func(n *ast.Node) {
		if found || n.Kind != ast.KindAssignmentExpression {
			return
		}
		lhs := n.GetOne("left")
		if lhs == nil || lhs.Kind != ast.KindIdentifier || lhs.Name() != decl.Name() {
			return
		}
		if !n.OccursBefore(before) {
			return
		}
		if resolved := ResolveIdentifier(lhs); resolved == decl {
			found = true
		}
	})
	return found
}
