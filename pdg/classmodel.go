package pdg

import "github.com/k-gruenberg/doublex-go/ast"

// ClassModel wraps a ClassDeclaration/ClassExpression with the method
// resolution order of the original implementation's JSClass.py: later
// declarations override earlier ones, and ResolveMethodCallTarget tries
// non-static methods before static ones.
type ClassModel struct {
	Node *ast.Node
}

// ResolveMethod returns the MethodDefinition named name, searching static or
// non-static methods (never both — the two partitions never share a
// namespace in this model), keeping the last matching declaration in
// source order.
func (c *ClassModel) ResolveMethod(name string, static bool) *ast.Node {
	body := c.Node.GetOne("body")
	if body == nil {
		return nil
	}
	var found *ast.Node
	for _, m := range body.Get("body") {
		if m.Kind != ast.KindMethodDefinition {
			continue
		}
		isStatic, _ := m.Attr("static").(bool)
		if isStatic != static {
			continue
		}
		key := m.GetOne("key")
		if key != nil && key.Name() == name {
			found = m
		}
	}
	return found
}

// ResolveMethodCallTarget resolves a `obj.method(...)` MemberExpression
// callee to the MethodDefinition it statically dispatches to, when obj is a
// const/let/var bound to `new ClassName(...)`. Ambiguous or dynamic
// receivers resolve to nil rather than guessing, per §4.B.
func ResolveMethodCallTarget(memberExpr *ast.Node) *ast.Node {
	obj := memberExpr.GetOne("object")
	prop := memberExpr.GetOne("property")
	if obj == nil || prop == nil || obj.Kind != ast.KindIdentifier {
		return nil
	}
	className := inferConstructedClassName(obj)
	if className == "" {
		return nil
	}
	classNode := findClassDeclaration(obj, className)
	if classNode == nil {
		return nil
	}
	cm := &ClassModel{Node: classNode}
	if m := cm.ResolveMethod(prop.Name(), false); m != nil {
		return m
	}
	return cm.ResolveMethod(prop.Name(), true)
}

func inferConstructedClassName(obj *ast.Node) string {
	decl := ResolveIdentifier(obj)
	if decl == nil || decl.Parent == nil || decl.Parent.Kind != ast.KindVariableDeclarator {
		return ""
	}
	init := decl.Parent.GetOne("init")
	if init == nil || init.Kind != ast.KindNewExpression {
		return ""
	}
	callee := init.GetOne("callee")
	if callee == nil || callee.Kind != ast.KindIdentifier {
		return ""
	}
	return callee.Name()
}

func findClassDeclaration(anyNode *ast.Node, className string) *ast.Node {
	root := anyNode
	for root.Parent != nil {
		root = root.Parent
	}
	var found *ast.Node
	root.PreOrder(func(n *ast.Node) {
		if found != nil {
			return
		}
		if n.Kind != ast.KindClassDeclaration {
			return
		}
		if id := n.GetOne("id"); id != nil && id.Name() == className {
			found = n
		}
	})
	return found
}
