package pdg

import "github.com/k-gruenberg/doublex-go/ast"

// ResolveIdentifier returns the Identifier node that declares use's name, in
// scope at use, or nil if it cannot be resolved to any declaration (§4.B
// "Identifier resolution"). Overshadowing is resolved by walking from use
// outward and returning the first (innermost) match.
func ResolveIdentifier(use *ast.Node) *ast.Node {
	name := use.Name()
	if name == "" {
		return nil
	}
	return resolveFrom(use, name)
}

// resolveFrom performs the same innermost-to-outermost scope walk as
// ResolveIdentifier, anchored at an arbitrary node rather than requiring an
// actual Identifier use — used by IdentifierIsInScopeAt to answer "would
// name resolve if referenced here".
func resolveFrom(use *ast.Node, name string) *ast.Node {
	for node := use; node.Parent != nil; node = node.Parent {
		anc := node.Parent

		switch {
		case anc.Kind.IsFunction():
			if d := paramDecl(anc, name); d != nil {
				return d
			}
			if anc.Kind == ast.KindFunctionExpression {
				if selfID := anc.GetOne("id"); selfID != nil && selfID.Name() == name {
					return selfID
				}
			}
			if body := anc.GetOne("body"); body != nil && body.Kind == ast.KindBlockStatement {
				if d := blockScopedDeclDirect(body, name); d != nil {
					return d
				}
			}
			if d := hoistedDecl(anc, name); d != nil {
				return d
			}

		case anc.Kind == ast.KindCatchClause:
			if p := anc.GetOne("param"); p != nil {
				for _, id := range patternIdentifiers(p) {
					if id.Name() == name {
						return id
					}
				}
			}
			if d := blockScopedDeclDirect(anc, name); d != nil {
				return d
			}

		case anc.Kind == ast.KindBlockStatement, anc.Kind == ast.KindProgram:
			if d := blockScopedDeclDirect(anc, name); d != nil {
				return d
			}
			if anc.Kind == ast.KindProgram {
				if d := hoistedDecl(anc, name); d != nil {
					return d
				}
			}

		case anc.Kind == ast.KindForStatement, anc.Kind == ast.KindForInStatement, anc.Kind == ast.KindForOfStatement:
			if d := forLoopDecl(anc, name); d != nil {
				return d
			}
		}
	}
	return resolveImplicitGlobal(use, name)
}

// PatternIdentifiers flattens a (possibly destructuring) binding pattern
// into the Identifier leaves it binds, in left-to-right order. Exported for
// the dataflow package's call-argument/parameter edge wiring.
func PatternIdentifiers(n *ast.Node) []*ast.Node {
	return patternIdentifiers(n)
}

func patternIdentifiers(n *ast.Node) []*ast.Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case ast.KindIdentifier:
		return []*ast.Node{n}
	case ast.KindObjectPattern:
		var out []*ast.Node
		for _, prop := range n.Get("properties") {
			if prop.Kind == ast.KindRestElement {
				out = append(out, patternIdentifiers(prop.GetOne("argument"))...)
				continue
			}
			out = append(out, patternIdentifiers(prop.GetOne("value"))...)
		}
		return out
	case ast.KindArrayPattern:
		var out []*ast.Node
		for _, el := range n.Get("elements") {
			out = append(out, patternIdentifiers(el)...)
		}
		return out
	case ast.KindAssignmentPattern:
		return patternIdentifiers(n.GetOne("left"))
	case ast.KindRestElement:
		return patternIdentifiers(n.GetOne("argument"))
	default:
		return nil
	}
}

func paramDecl(fn *ast.Node, name string) *ast.Node {
	for _, p := range fn.Get("params") {
		for _, id := range patternIdentifiers(p) {
			if id.Name() == name {
				return id
			}
		}
	}
	return nil
}

// blockScopedDeclDirect scans the statements directly inside block (its
// "body" children) for let/const (VariableDeclaration) and class
// declarations matching name — never descending into nested blocks.
func blockScopedDeclDirect(block *ast.Node, name string) *ast.Node {
	for _, stmt := range block.Get("body") {
		switch stmt.Kind {
		case ast.KindVariableDeclaration:
			kind, _ := stmt.Attr("kind").(string)
			if kind != "let" && kind != "const" {
				continue
			}
			for _, declr := range stmt.Get("declarations") {
				for _, id := range patternIdentifiers(declr.GetOne("id")) {
					if id.Name() == name {
						return id
					}
				}
			}
		case ast.KindClassDeclaration:
			if id := stmt.GetOne("id"); id != nil && id.Name() == name {
				return id
			}
		}
	}
	return nil
}

func forLoopDecl(forNode *ast.Node, name string) *ast.Node {
	var decl *ast.Node
	if forNode.Kind == ast.KindForStatement {
		decl = forNode.GetOne("init")
	} else {
		decl = forNode.GetOne("left")
	}
	if decl == nil || decl.Kind != ast.KindVariableDeclaration {
		return nil
	}
	kind, _ := decl.Attr("kind").(string)
	if kind != "let" && kind != "const" {
		return nil
	}
	for _, declr := range decl.Get("declarations") {
		for _, id := range patternIdentifiers(declr.GetOne("id")) {
			if id.Name() == name {
				return id
			}
		}
	}
	return nil
}

// hoistedDecl finds `var` declarations and `function` declarations whose
// hoisting root is scopeRoot (a Function node or Program), searching the
// whole subtree but never descending into a nested function's body.
func hoistedDecl(scopeRoot *ast.Node, name string) *ast.Node {
	var found *ast.Node
	var walk func(n *ast.Node, isRoot bool)
	walk = func(n *ast.Node, isRoot bool) {
		if found != nil {
			return
		}
		if !isRoot && n.Kind.IsFunction() {
			// A nested function declaration's own name hoists to scopeRoot;
			// its vars hoist to itself, not scopeRoot.
			if n.Kind == ast.KindFunctionDeclaration {
				if id := n.GetOne("id"); id != nil && id.Name() == name {
					found = id
				}
			}
			return
		}
		switch n.Kind {
		case ast.KindVariableDeclaration:
			if kind, _ := n.Attr("kind").(string); kind == "var" {
				for _, declr := range n.Get("declarations") {
					for _, id := range patternIdentifiers(declr.GetOne("id")) {
						if id.Name() == name {
							found = id
							return
						}
					}
				}
			}
		case ast.KindFunctionDeclaration:
			if id := n.GetOne("id"); id != nil && id.Name() == name {
				found = id
				return
			}
		}
		for _, c := range n.Children {
			walk(c, false)
			if found != nil {
				return
			}
		}
	}
	walk(scopeRoot, true)
	return found
}

// resolveImplicitGlobal models §4.B's "implicit global assignments to
// undeclared names (global, non-strict)": when no declaration of name is in
// scope at use, the first `name = ...` AssignmentExpression anywhere in the
// program is treated as its (global) declaration site.
func resolveImplicitGlobal(use *ast.Node, name string) *ast.Node {
	root := use
	for root.Parent != nil {
		root = root.Parent
	}
	var found *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if found != nil || n.Kind != ast.KindAssignmentExpression {
			return
		}
		if op, _ := n.Attr("operator").(string); op != "=" {
			return
		}
		lhs := n.GetOne("left")
		if lhs != nil && lhs.Kind == ast.KindIdentifier && lhs.Name() == name {
			found = lhs
		}
	})
	return found
}
