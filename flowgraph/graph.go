// Package flowgraph provides the per-start-node view over already-populated
// data-flow edges (§5): a forward-closed subgraph, a Dijkstra shortest-path
// index with deterministic tie-breaking, and the DataFlowsConsidered
// enumeration strategies built on top of it.
package flowgraph

import (
	"sort"

	"github.com/k-gruenberg/doublex-go/ast"
)

// Graph is the forward-closed subgraph reachable from Start by following
// DataDepChildren edges, computed once via BFS.
type Graph struct {
	Start *ast.Node
	Nodes []*ast.Node // all reachable nodes including Start, sorted by ID

	adjacency map[int64][]*ast.Node
	reverse   map[int64][]*ast.Node
}

// Build computes the forward closure of start. Edges must already be
// populated (the caller runs the dataflow package's Ensure*/Build* passes
// first); Build only traverses what's already there.
func Build(start *ast.Node) *Graph {
	visited := map[int64]*ast.Node{start.ID: start}
	queue := []*ast.Node{start}
	adjacency := map[int64][]*ast.Node{}
	reverse := map[int64][]*ast.Node{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		children := append([]*ast.Node{}, cur.DataDepChildren()...)
		sortByID(children)
		adjacency[cur.ID] = children
		for _, c := range children {
			reverse[c.ID] = append(reverse[c.ID], cur)
			if _, ok := visited[c.ID]; !ok {
				visited[c.ID] = c
				queue = append(queue, c)
			}
		}
	}

	nodes := make([]*ast.Node, 0, len(visited))
	for _, n := range visited {
		nodes = append(nodes, n)
	}
	sortByID(nodes)
	return &Graph{Start: start, Nodes: nodes, adjacency: adjacency, reverse: reverse}
}

func sortByID(nodes []*ast.Node) {
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
}

// Children returns n's forward neighbors within this closure, sorted by id.
func (g *Graph) Children(n *ast.Node) []*ast.Node { return g.adjacency[n.ID] }

// Leaves returns the nodes in the closure with no outgoing edges.
func (g *Graph) Leaves() []*ast.Node {
	var out []*ast.Node
	for _, n := range g.Nodes {
		if len(g.adjacency[n.ID]) == 0 {
			out = append(out, n)
		}
	}
	return out
}

// HasCycle reports whether the closure contains a cycle reachable from
// Start, via a standard DFS white/grey/black coloring. Resolves the
// has_cycle Open Question: implemented properly rather than left unimplemented.
// The STOP_AT_CYCLE enumeration strategies do not call it; they detect
// revisits with their own on-path set.
func (g *Graph) HasCycle() bool {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := map[int64]int{}
	var visit func(n *ast.Node) bool
	visit = func(n *ast.Node) bool {
		color[n.ID] = grey
		for _, c := range g.adjacency[n.ID] {
			switch color[c.ID] {
			case grey:
				return true
			case white:
				if visit(c) {
					return true
				}
			}
		}
		color[n.ID] = black
		return false
	}
	return visit(g.Start)
}

// DijkstraIndex is the shortest-path index of §5: unweighted BFS distance
// from Start plus a single canonical predecessor per node, chosen as the
// smallest-id predecessor among those attaining the minimum distance — this
// is the deterministic tie-break rule testable property 2 checks.
type DijkstraIndex struct {
	graph *Graph
	dist  map[int64]int
	pred  map[int64]*ast.Node
}

// Dijkstra computes the shortest-path index over g.
func (g *Graph) Dijkstra() *DijkstraIndex {
	dist := map[int64]int{g.Start.ID: 0}
	queue := []*ast.Node{g.Start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range g.adjacency[cur.ID] {
			if _, ok := dist[c.ID]; !ok {
				dist[c.ID] = dist[cur.ID] + 1
				queue = append(queue, c)
			}
		}
	}

	pred := map[int64]*ast.Node{}
	for _, n := range g.Nodes {
		if n.ID == g.Start.ID {
			continue
		}
		d, ok := dist[n.ID]
		if !ok {
			continue
		}
		var best *ast.Node
		for _, p := range g.reverse[n.ID] {
			if pd, ok2 := dist[p.ID]; ok2 && pd == d-1 {
				if best == nil || p.ID < best.ID {
					best = p
				}
			}
		}
		pred[n.ID] = best
	}
	return &DijkstraIndex{graph: g, dist: dist, pred: pred}
}

// Distance returns the shortest-path length to target, and whether target
// is reachable at all.
func (idx *DijkstraIndex) Distance(target *ast.Node) (int, bool) {
	d, ok := idx.dist[target.ID]
	return d, ok
}

// ShortestPath returns the canonical shortest path from Start to target
// (inclusive of both ends), or nil if target is unreachable.
func (idx *DijkstraIndex) ShortestPath(target *ast.Node) []*ast.Node {
	if _, ok := idx.dist[target.ID]; !ok {
		return nil
	}
	var path []*ast.Node
	cur := target
	for cur != nil {
		path = append([]*ast.Node{cur}, path...)
		if cur.ID == idx.graph.Start.ID {
			break
		}
		cur = idx.pred[cur.ID]
	}
	return path
}
