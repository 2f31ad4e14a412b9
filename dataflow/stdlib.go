package dataflow

import "github.com/k-gruenberg/doublex-go/ast"

// ApplyStdlibRules scans root for the two Object built-ins that move data
// between identifiers without an ordinary assignment: Object.assign(target,
// ...sources) and Object.defineProperty(obj, key, {value}). Each produces
// an edge from the source-side Identifier to the target-side one, in
// addition to (not instead of) the basic/call/return layers.
func ApplyStdlibRules(root *ast.Node) {
	root.PreOrder(func(n *ast.Node) {
		if n.Kind != ast.KindCallExpression {
			return
		}
		callee := n.GetOne("callee")
		if callee == nil || callee.Kind != ast.KindMemberExpression {
			return
		}
		obj := callee.GetOne("object")
		prop := callee.GetOne("property")
		if obj == nil || prop == nil || obj.Kind != ast.KindIdentifier || obj.Name() != "Object" {
			return
		}
		switch prop.Name() {
		case "assign":
			applyObjectAssign(n)
		case "defineProperty", "defineProperties":
			applyDefineProperty(n)
		}
	})
}

func applyObjectAssign(call *ast.Node) {
	args := call.Get("arguments")
	if len(args) < 2 {
		return
	}
	target := args[0]
	if target.Kind != ast.KindIdentifier {
		return
	}
	for _, src := range args[1:] {
		if src.Kind == ast.KindIdentifier {
			ast.AddDataFlowEdge(src, target)
		}
	}
}

func applyDefineProperty(call *ast.Node) {
	args := call.Get("arguments")
	if len(args) < 3 {
		return
	}
	target := args[0]
	if target.Kind != ast.KindIdentifier {
		return
	}
	desc := args[2]
	if desc.Kind != ast.KindObjectExpression {
		return
	}
	for _, propNode := range desc.Get("properties") {
		key := propNode.GetOne("key")
		value := propNode.GetOne("value")
		if key == nil || value == nil || key.Name() != "value" {
			continue
		}
		if value.Kind == ast.KindIdentifier {
			ast.AddDataFlowEdge(value, target)
		}
	}
}
