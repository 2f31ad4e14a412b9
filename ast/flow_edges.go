package ast

// This file implements the Identifier-only data-flow edge storage described
// in §3: "a pair of ordered adjacency lists data_dep_parents and
// data_dep_children... If a→b exists, so does b←a" plus the three
// lazy-generation flags per layer. The dataflow package (component C)
// populates these; the ast package only owns the invariants (no duplicates,
// symmetry, latch-once flags).

// DataDepChildren returns n's outgoing data-flow successors (n→x edges).
// Panics if n is not an Identifier — callers in this codebase never invoke
// it on anything else, since only dataflow.Builder decides when to call it.
func (n *Node) DataDepChildren() []*Node {
	n.mustBeIdentifier()
	return n.flow.dataDepChildren
}

// DataDepParents returns n's incoming data-flow predecessors (x→n edges).
func (n *Node) DataDepParents() []*Node {
	n.mustBeIdentifier()
	return n.flow.dataDepParents
}

// AddDataFlowEdge records a directed edge from→to (both Identifiers),
// maintaining both adjacency lists and silently no-oping on a duplicate
// (§3 "duplicates are forbidden", §5 "idempotent").
func AddDataFlowEdge(from, to *Node) {
	from.mustBeIdentifier()
	to.mustBeIdentifier()
	for _, c := range from.flow.dataDepChildren {
		if c == to {
			return // already present; no-op per §5 idempotence
		}
	}
	from.flow.dataDepChildren = append(from.flow.dataDepChildren, to)
	to.flow.dataDepParents = append(to.flow.dataDepParents, from)
}

// RemoveDataFlowEdge deletes a from→to edge in both directions. Only used by
// the pre-analysis pruning pass (§4.C "Incorrect-edge pruning") — never
// called once any lazy flag has been observed as true.
func RemoveDataFlowEdge(from, to *Node) {
	from.mustBeIdentifier()
	to.mustBeIdentifier()
	from.flow.dataDepChildren = removeNode(from.flow.dataDepChildren, to)
	to.flow.dataDepParents = removeNode(to.flow.dataDepParents, from)
}

func removeNode(list []*Node, target *Node) []*Node {
	out := list[:0]
	for _, n := range list {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

// FlowLayer identifies one of the three lazy data-flow generation layers of
// §3/§4.C.
type FlowLayer int

const (
	LayerBasic FlowLayer = iota
	LayerCallExprParents
	LayerCallExprChildren
	LayerReturnParents
	LayerReturnChildren
)

// LayerDone reports whether layer has already been computed (and latched)
// for n.
func (n *Node) LayerDone(layer FlowLayer) bool {
	n.mustBeIdentifier()
	switch layer {
	case LayerBasic:
		return n.flow.basicDone
	case LayerCallExprParents:
		return n.flow.callExprParentsDone
	case LayerCallExprChildren:
		return n.flow.callExprChildrenDone
	case LayerReturnParents:
		return n.flow.returnParentsDone
	case LayerReturnChildren:
		return n.flow.returnChildrenDone
	default:
		return false
	}
}

// MarkLayerDone latches layer as computed. Once latched it is never reset
// during an analysis (§3 "Once set to true, the corresponding incoming/
// outgoing edges are final").
func (n *Node) MarkLayerDone(layer FlowLayer) {
	n.mustBeIdentifier()
	switch layer {
	case LayerBasic:
		n.flow.basicDone = true
	case LayerCallExprParents:
		n.flow.callExprParentsDone = true
	case LayerCallExprChildren:
		n.flow.callExprChildrenDone = true
	case LayerReturnParents:
		n.flow.returnParentsDone = true
	case LayerReturnChildren:
		n.flow.returnChildrenDone = true
	}
}

func (n *Node) mustBeIdentifier() {
	if n.flow == nil {
		panic("ast: data-flow operation on non-Identifier node kind=" + string(n.Kind))
	}
}
