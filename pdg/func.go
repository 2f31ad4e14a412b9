package pdg

import "github.com/k-gruenberg/doublex-go/ast"

// Func wraps a FunctionDeclaration/FunctionExpression/ArrowFunctionExpression
// node with the accessors §4.B's function model needs (params, body, name,
// recursion detection), grounded on the original implementation's Func.py.
type Func struct {
	Node *ast.Node
}

// ResolveFunc resolves node — an Identifier use, a direct function node, or
// a CallExpression wrapping `.bind()` — to the Func it statically refers to.
// Returns nil when the reference cannot be resolved (ambiguous dispatch,
// dynamic callee, etc.) per §4.B "leave unresolved rather than guess".
func ResolveFunc(node *ast.Node) *Func {
	if node == nil {
		return nil
	}
	if node.Kind.IsFunction() {
		return &Func{Node: node}
	}
	switch node.Kind {
	case ast.KindIdentifier:
		decl := ResolveIdentifier(node)
		if decl == nil || decl.Parent == nil {
			return nil
		}
		switch decl.Parent.Kind {
		case ast.KindFunctionDeclaration:
			if decl.Role == "id" {
				return &Func{Node: decl.Parent}
			}
		case ast.KindVariableDeclarator:
			init := decl.Parent.GetOne("init")
			if init == nil {
				return nil
			}
			if init.Kind.IsFunction() {
				return &Func{Node: init}
			}
			if init.Kind == ast.KindCallExpression {
				if bound := unwrapBind(init); bound != nil {
					return ResolveFunc(bound)
				}
			}
		}
		return nil
	case ast.KindCallExpression:
		if bound := unwrapBind(node); bound != nil {
			return ResolveFunc(bound)
		}
		return nil
	default:
		return nil
	}
}

// unwrapBind recognizes `fn.bind(thisArg, ...)` call expressions and
// returns the bound function expression fn.
func unwrapBind(call *ast.Node) *ast.Node {
	callee := call.GetOne("callee")
	if callee == nil || callee.Kind != ast.KindMemberExpression {
		return nil
	}
	prop := callee.GetOne("property")
	if prop == nil || prop.Name() != "bind" {
		return nil
	}
	return callee.GetOne("object")
}

func (f *Func) Params() []*ast.Node { return f.Node.Get("params") }

func (f *Func) Body() *ast.Node { return f.Node.GetOne("body") }

// Name returns the function's declared name, or "" for anonymous
// expressions and arrow functions.
func (f *Func) Name() string {
	if id := f.Node.GetOne("id"); id != nil {
		return id.Name()
	}
	return ""
}

// IsArrow reports whether this Func has no own `arguments`/`this` binding.
func (f *Func) IsArrow() bool {
	return f.Node.Kind == ast.KindArrowFunctionExpression
}

// IsRecursive reports whether the function's body contains a direct
// self-call (`name(...)` where name resolves back to this function), or,
// for non-arrow functions, an `arguments.callee(...)` call. Arrow functions
// have no own `arguments`; per the Open Question decision, arguments.callee
// appearing inside a nested arrow is resolved against the nearest
// non-arrow enclosing function instead — this method does not attempt to
// model that closure chain, only the direct containing Func.
func (f *Func) IsRecursive() bool {
	name := f.Name()
	body := f.Body()
	if body == nil {
		return false
	}
	recursive := false
	body.PreOrder(func(n *ast.Node) {
		if recursive || n.Kind != ast.KindCallExpression {
			return
		}
		callee := n.GetOne("callee")
		if callee == nil {
			return
		}
		if !f.IsArrow() && callee.Kind == ast.KindMemberExpression {
			obj := callee.GetOne("object")
			prop := callee.GetOne("property")
			if obj != nil && obj.Kind == ast.KindIdentifier && obj.Name() == "arguments" &&
				prop != nil && prop.Name() == "callee" {
				recursive = true
				return
			}
		}
		if name != "" && callee.Kind == ast.KindIdentifier && callee.Name() == name {
			if decl := ResolveIdentifier(callee); decl != nil && decl.Parent == f.Node {
				recursive = true
			} else if decl != nil && decl == f.Node.GetOne("id") {
				recursive = true
			}
		}
	})
	return recursive
}
