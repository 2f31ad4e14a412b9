// Package dataflow lazily populates the Identifier data-flow edges that the
// ast package stores (§3, §4.C): basic def-use edges, call-argument→parameter
// edges, and return-value→call-result edges. Each Ensure* function is
// idempotent and marks its layer flag so repeated queries for the same
// Identifier are free after the first.
package dataflow

import (
	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/pdg"
)

func programRoot(n *ast.Node) *ast.Node {
	root := n
	for root.Parent != nil {
		root = root.Parent
	}
	return root
}

func enclosingFunction(n *ast.Node) *ast.Node {
	for _, a := range n.Ancestors() {
		if a.Kind.IsFunction() {
			return a
		}
	}
	return nil
}

// EnsureBasicEdges populates layer-1 edges for use: an edge from its
// declaring Identifier (§4.B identifier resolution) to use itself, for
// declarations, assignments and destructuring targets alike.
func EnsureBasicEdges(use *ast.Node) {
	if use.LayerDone(ast.LayerBasic) {
		return
	}
	use.MarkLayerDone(ast.LayerBasic)
	decl := pdg.ResolveIdentifier(use)
	if decl != nil && decl != use && decl.Kind == ast.KindIdentifier {
		ast.AddDataFlowEdge(decl, use)
	}
}

// BuildBasicEdges walks root and populates layer-1 edges for every
// Identifier — the eager bulk variant used by the driver right after
// parsing, since nearly every identifier participates in some def-use edge.
func BuildBasicEdges(root *ast.Node) {
	root.PreOrder(func(n *ast.Node) {
		if n.Kind == ast.KindIdentifier {
			EnsureBasicEdges(n)
		}
	})
}

// EnsureCallExprChildEdges populates layer-2 outgoing edges for argID, an
// Identifier used as a CallExpression argument: one edge to each Identifier
// bound by the corresponding parameter of the resolved callee.
func EnsureCallExprChildEdges(argID *ast.Node) {
	if argID.LayerDone(ast.LayerCallExprChildren) {
		return
	}
	argID.MarkLayerDone(ast.LayerCallExprChildren)
	call := argID.Parent
	if call == nil || call.Kind != ast.KindCallExpression {
		return
	}
	args := call.Get("arguments")
	idx := indexOf(args, argID)
	if idx < 0 {
		return
	}
	fn := pdg.ResolveFunc(call.GetOne("callee"))
	if fn == nil {
		return
	}
	params := fn.Params()
	if idx >= len(params) {
		return
	}
	for _, p := range pdg.PatternIdentifiers(params[idx]) {
		ast.AddDataFlowEdge(argID, p)
	}
}

// EnsureCallExprParentEdges populates layer-2 incoming edges for paramID, a
// parameter-binding Identifier: one edge from the corresponding argument
// Identifier at every call site that resolves to this function.
func EnsureCallExprParentEdges(paramID *ast.Node) {
	if paramID.LayerDone(ast.LayerCallExprParents) {
		return
	}
	paramID.MarkLayerDone(ast.LayerCallExprParents)
	fn := enclosingFunction(paramID)
	if fn == nil {
		return
	}
	idx := paramIndex(fn, paramID)
	if idx < 0 {
		return
	}
	programRoot(paramID).PreOrder(func(call *ast.Node) {
		if call.Kind != ast.KindCallExpression {
			return
		}
		callee := call.GetOne("callee")
		resolved := pdg.ResolveFunc(callee)
		if resolved == nil || resolved.Node != fn {
			return
		}
		args := call.Get("arguments")
		if idx >= len(args) {
			return
		}
		if args[idx].Kind == ast.KindIdentifier {
			ast.AddDataFlowEdge(args[idx], paramID)
		}
	})
}

func paramIndex(fn *ast.Node, paramID *ast.Node) int {
	for i, p := range fn.Get("params") {
		for _, id := range pdg.PatternIdentifiers(p) {
			if id == paramID {
				return i
			}
		}
	}
	return -1
}

func indexOf(nodes []*ast.Node, target *ast.Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}

// EnsureReturnParentEdges populates layer-3 incoming edges for resultID, an
// Identifier bound to a CallExpression's result (`let x = f(y)` or
// `x = f(y)`): one edge from every Identifier returned by the resolved
// callee. Handles the IIFE special case where the callee is itself a
// Function literal invoked immediately.
func EnsureReturnParentEdges(resultID *ast.Node) {
	if resultID.LayerDone(ast.LayerReturnParents) {
		return
	}
	resultID.MarkLayerDone(ast.LayerReturnParents)
	call := callExpressionBindingTo(resultID)
	if call == nil {
		return
	}
	fn := resolveCallTarget(call)
	if fn == nil {
		return
	}
	body := fn.GetOne("body")
	if body == nil {
		return
	}
	body.PreOrder(func(n *ast.Node) {
		if n.Kind != ast.KindReturnStatement {
			return
		}
		arg := n.GetOne("argument")
		if arg != nil && arg.Kind == ast.KindIdentifier {
			ast.AddDataFlowEdge(arg, resultID)
		}
	})
}

// EnsureReturnChildEdges populates layer-3 outgoing edges for retID, an
// Identifier that is the argument of a return statement: one edge to every
// call-result Identifier bound at a call site of the enclosing function.
func EnsureReturnChildEdges(retID *ast.Node) {
	if retID.LayerDone(ast.LayerReturnChildren) {
		return
	}
	retID.MarkLayerDone(ast.LayerReturnChildren)
	retStmt := retID.NearestAncestorOfKind(ast.KindReturnStatement)
	if retStmt == nil {
		return
	}
	fn := enclosingFunction(retID)
	if fn == nil {
		return
	}
	programRoot(retID).PreOrder(func(call *ast.Node) {
		if call.Kind != ast.KindCallExpression {
			return
		}
		if resolveCallTarget(call) != fn {
			return
		}
		if id := callResultIdentifier(call); id != nil {
			ast.AddDataFlowEdge(retID, id)
		}
	})
}

// resolveCallTarget resolves call's callee to the Function node it invokes,
// including the IIFE case where the callee literally is a Function node.
func resolveCallTarget(call *ast.Node) *ast.Node {
	callee := call.GetOne("callee")
	if callee == nil {
		return nil
	}
	if callee.Kind.IsFunction() {
		return callee
	}
	if fn := pdg.ResolveFunc(callee); fn != nil {
		return fn.Node
	}
	return nil
}

func callExpressionBindingTo(resultID *ast.Node) *ast.Node {
	parent := resultID.Parent
	if parent == nil {
		return nil
	}
	switch parent.Kind {
	case ast.KindVariableDeclarator:
		if resultID.Role != "id" {
			return nil
		}
		if init := parent.GetOne("init"); init != nil && init.Kind == ast.KindCallExpression {
			return init
		}
	case ast.KindAssignmentExpression:
		if resultID.Role != "left" {
			return nil
		}
		if rhs := parent.GetOne("right"); rhs != nil && rhs.Kind == ast.KindCallExpression {
			return rhs
		}
	}
	return nil
}

// CallResultIdentifier returns the Identifier bound to call's result
// (`let x = f(...)` or `x = f(...)`), or nil if the call's result isn't
// bound to a plain identifier.
func CallResultIdentifier(call *ast.Node) *ast.Node {
	return callResultIdentifier(call)
}

func callResultIdentifier(call *ast.Node) *ast.Node {
	parent := call.Parent
	if parent == nil {
		return nil
	}
	switch parent.Kind {
	case ast.KindVariableDeclarator:
		if call.Role == "init" {
			if id := parent.GetOne("id"); id != nil && id.Kind == ast.KindIdentifier {
				return id
			}
		}
	case ast.KindAssignmentExpression:
		if call.Role == "right" {
			if lhs := parent.GetOne("left"); lhs != nil && lhs.Kind == ast.KindIdentifier {
				return lhs
			}
		}
	}
	return nil
}
