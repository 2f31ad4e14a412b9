package pdg

import "github.com/k-gruenberg/doublex-go/ast"

// IsUnreachable reports whether node sits inside a branch of an enclosing
// IfStatement whose test statically evaluates to a value that never takes
// that branch. This is deliberately not a full control-flow analysis —
// grounded on the original implementation's is_unreachable(), which walks
// enclosing IfStatements and partially evaluates each test rather than
// building a CFG.
func IsUnreachable(node *ast.Node) bool {
	for cur := node; cur.Parent != nil; cur = cur.Parent {
		parent := cur.Parent
		if parent.Kind != ast.KindIfStatement {
			continue
		}
		consequent := parent.GetOne("consequent")
		alternate := parent.GetOne("alternate")

		var inConsequent, inAlternate bool
		switch cur {
		case consequent:
			inConsequent = true
		case alternate:
			inAlternate = true
		}
		if !inConsequent && !inAlternate {
			continue
		}

		test := parent.GetOne("test")
		testVal, err := Eval(test, true)
		if err != nil {
			continue
		}
		truthy := jsToBoolean(testVal)
		if inConsequent && !truthy {
			return true
		}
		if inAlternate && truthy {
			return true
		}
	}
	return false
}
