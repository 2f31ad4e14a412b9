package flowgraph

import "github.com/k-gruenberg/doublex-go/ast"

// DataFlowsConsidered selects how many/which paths Enumerate reports for a
// Graph, trading completeness against cost (§5). The seven strategies run
// roughly from most to least exhaustive, but the order is not a chain of
// narrowings: OnePerNodeShortest reports a path ending at every reachable
// node, which the two STOP_AT_CYCLE strategies do not.
type DataFlowsConsidered int

const (
	// ALL reports every simple path (no node repeated) from Start to every
	// node reachable in the closure.
	ALL DataFlowsConsidered = iota
	// AllStopAtCycleInclusive behaves like ALL but truncates a path the
	// moment it would revisit an already-visited node, keeping the
	// repeated node as that path's final element.
	AllStopAtCycleInclusive
	// AllStopAtCycleExclusive is AllStopAtCycleInclusive without the
	// repeated node appended.
	AllStopAtCycleExclusive
	// OnePerNodeShortest reports exactly one path per reachable node: its
	// Dijkstra shortest path.
	OnePerNodeShortest
	// OnePerFinalNodeShortest reports exactly one path per leaf (node with
	// no outgoing edges in the closure): its Dijkstra shortest path.
	OnePerFinalNodeShortest
	// DijkstraLeaves reports one shortest path per leaf of the Dijkstra
	// shortest-path tree: a reachable node that is no other node's chosen
	// predecessor.
	DijkstraLeaves
	// JustOne reports a single path: the shortest path to the closest leaf,
	// ties broken by smallest node id.
	JustOne
)

// Enumerate returns the paths selected by strategy, each path ordered from
// Start to its terminal node inclusive.
func (g *Graph) Enumerate(strategy DataFlowsConsidered) [][]*ast.Node {
	switch strategy {
	case ALL:
		return g.allSimplePaths()
	case AllStopAtCycleInclusive:
		return g.allPathsStoppingAtCycle(true)
	case AllStopAtCycleExclusive:
		return g.allPathsStoppingAtCycle(false)
	case OnePerNodeShortest:
		return g.onePerNodeShortest()
	case OnePerFinalNodeShortest:
		return g.onePerFinalNodeShortest()
	case DijkstraLeaves:
		return g.dijkstraLeaves()
	case JustOne:
		return g.justOne()
	default:
		return nil
	}
}

func (g *Graph) allSimplePaths() [][]*ast.Node {
	var results [][]*ast.Node
	onPath := map[int64]bool{}
	var path []*ast.Node
	var dfs func(n *ast.Node)
	dfs = func(n *ast.Node) {
		path = append(path, n)
		onPath[n.ID] = true
		results = append(results, append([]*ast.Node{}, path...))
		for _, c := range g.adjacency[n.ID] {
			if !onPath[c.ID] {
				dfs(c)
			}
		}
		onPath[n.ID] = false
		path = path[:len(path)-1]
	}
	dfs(g.Start)
	return results
}

func (g *Graph) allPathsStoppingAtCycle(inclusive bool) [][]*ast.Node {
	var results [][]*ast.Node
	onPath := map[int64]bool{}
	var path []*ast.Node
	var dfs func(n *ast.Node)
	dfs = func(n *ast.Node) {
		path = append(path, n)
		onPath[n.ID] = true
		terminal := true
		for _, c := range g.adjacency[n.ID] {
			if onPath[c.ID] {
				if inclusive {
					results = append(results, append(append([]*ast.Node{}, path...), c))
				}
				continue
			}
			terminal = false
			dfs(c)
		}
		if terminal {
			results = append(results, append([]*ast.Node{}, path...))
		}
		onPath[n.ID] = false
		path = path[:len(path)-1]
	}
	dfs(g.Start)
	if !inclusive {
		results = dedupPaths(results)
	}
	return results
}

func dedupPaths(paths [][]*ast.Node) [][]*ast.Node {
	seen := map[string]bool{}
	var out [][]*ast.Node
	for _, p := range paths {
		key := pathKey(p)
		if !seen[key] {
			seen[key] = true
			out = append(out, p)
		}
	}
	return out
}

func pathKey(path []*ast.Node) string {
	b := make([]byte, 0, len(path)*8)
	for _, n := range path {
		b = append(b, byte(n.ID), byte(n.ID>>8), byte(n.ID>>16), byte(n.ID>>24), '|')
	}
	return string(b)
}

func (g *Graph) onePerNodeShortest() [][]*ast.Node {
	idx := g.Dijkstra()
	var results [][]*ast.Node
	for _, n := range g.Nodes {
		if p := idx.ShortestPath(n); p != nil {
			results = append(results, p)
		}
	}
	return results
}

func (g *Graph) onePerFinalNodeShortest() [][]*ast.Node {
	idx := g.Dijkstra()
	var results [][]*ast.Node
	for _, leaf := range g.Leaves() {
		if p := idx.ShortestPath(leaf); p != nil {
			results = append(results, p)
		}
	}
	return results
}

func (g *Graph) dijkstraLeaves() [][]*ast.Node {
	idx := g.Dijkstra()
	isPred := map[int64]bool{}
	for _, p := range idx.pred {
		if p != nil {
			isPred[p.ID] = true
		}
	}
	var results [][]*ast.Node
	for _, n := range g.Nodes {
		if isPred[n.ID] {
			continue
		}
		if p := idx.ShortestPath(n); p != nil {
			results = append(results, p)
		}
	}
	return results
}

func (g *Graph) justOne() [][]*ast.Node {
	idx := g.Dijkstra()
	leaves := g.Leaves()
	var best *ast.Node
	bestDist := -1
	for _, leaf := range leaves {
		d, ok := idx.Distance(leaf)
		if !ok {
			continue
		}
		if best == nil || d < bestDist || (d == bestDist && leaf.ID < best.ID) {
			best = leaf
			bestDist = d
		}
	}
	if best == nil {
		return nil
	}
	return [][]*ast.Node{idx.ShortestPath(best)}
}
