// Package match implements the source→sink "double-flow" rendezvous
// matcher (§5 "DoubleDataFlow"): pairing a from-flow and a to-flow that
// meet at a common CallExpression/AssignmentExpression ancestor, with
// optional filters for reachability, IIFE exclusion, forbidden descendant
// kinds, and sanitizer detection.
package match

import (
	"regexp"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/pdg"
)

// DoubleFlow is one matched (source-flow, sink-flow) pair meeting at a
// rendezvous node, labeled with its ordinal position among all matches for
// the same (source, sink) pair of interest.
type DoubleFlow struct {
	FromFlow   []*ast.Node
	ToFlow     []*ast.Node
	Rendezvous *ast.Node
	Ordinal    int // 1-indexed "k" of "k/N"
	Total      int // N
}

// Options configures which candidate rendezvous pairs survive.
type Options struct {
	RequireReachable         bool       // drop matches whose rendezvous is statically unreachable
	ExcludeIIFERendezvous    bool       // drop matches whose rendezvous CallExpression is an IIFE
	ForbiddenDescendantKinds []ast.Kind // drop matches whose rendezvous subtree contains any of these
	Sanitizer                *regexp.Regexp
	FirstMatchOnly           bool // stop at the first surviving match over all (from,to) pairs
}

// FindRendezvous pairs every fromFlow with every toFlow that shares a
// CallExpression/AssignmentExpression ancestor between the flow's final
// node and the other flow's first node, applying opts' filters. Ordinal/
// Total numbering is assigned after filtering, in discovery order.
func FindRendezvous(fromFlows [][]*ast.Node, toFlows [][]*ast.Node, opts Options) []*DoubleFlow {
	var matches []*DoubleFlow
outer:
	for _, from := range fromFlows {
		if len(from) == 0 {
			continue
		}
		fEnd := from[len(from)-1]
		for _, to := range toFlows {
			if len(to) == 0 {
				continue
			}
			tStart := to[0]
			rendezvous := rendezvousAncestor(fEnd, tStart)
			if rendezvous == nil {
				continue
			}
			if !passesFilters(rendezvous, from, to, opts) {
				continue
			}
			matches = append(matches, &DoubleFlow{FromFlow: from, ToFlow: to, Rendezvous: rendezvous})
			if opts.FirstMatchOnly {
				break outer
			}
		}
	}
	for i, m := range matches {
		m.Ordinal = i + 1
		m.Total = len(matches)
	}
	return matches
}

func passesFilters(rendezvous *ast.Node, from, to []*ast.Node, opts Options) bool {
	if opts.RequireReachable && pdg.IsUnreachable(rendezvous) {
		return false
	}
	if opts.ExcludeIIFERendezvous && isIIFE(rendezvous) {
		return false
	}
	if len(opts.ForbiddenDescendantKinds) > 0 && hasForbiddenDescendant(rendezvous, opts.ForbiddenDescendantKinds) {
		return false
	}
	if opts.Sanitizer != nil && isSanitized(from, to, opts.Sanitizer) {
		return false
	}
	return true
}

// rendezvousAncestor returns the nearest CallExpression/AssignmentExpression
// ancestor-or-self of the lowest common ancestor of a and b.
func rendezvousAncestor(a, b *ast.Node) *ast.Node {
	lca := lowestCommonAncestor(a, b)
	if lca == nil {
		return nil
	}
	for cur := lca; cur != nil; cur = cur.Parent {
		if cur.Kind == ast.KindCallExpression || cur.Kind == ast.KindAssignmentExpression {
			return cur
		}
	}
	return nil
}

func lowestCommonAncestor(a, b *ast.Node) *ast.Node {
	setA := map[int64]bool{a.ID: true}
	for _, n := range a.Ancestors() {
		setA[n.ID] = true
	}
	if setA[b.ID] {
		return b
	}
	for _, n := range b.Ancestors() {
		if setA[n.ID] {
			return n
		}
	}
	return nil
}

// isIIFE reports whether call's callee is a Function literal invoked
// immediately, rather than a named/resolved reference — such rendezvous
// points are usually just a single return-value plumbing artifact.
func isIIFE(call *ast.Node) bool {
	if call.Kind != ast.KindCallExpression {
		return false
	}
	callee := call.GetOne("callee")
	return callee != nil && callee.Kind.IsFunction()
}

func hasForbiddenDescendant(root *ast.Node, forbidden []ast.Kind) bool {
	set := map[ast.Kind]bool{}
	for _, k := range forbidden {
		set[k] = true
	}
	found := false
	root.PreOrder(func(n *ast.Node) {
		if set[n.Kind] {
			found = true
		}
	})
	return found
}

// isSanitized reports whether any node of the from-flow or the to-flow sits
// inside (or is) a `.replace(regexLiteral, replacement)` call whose regex
// source matches sanitizer — the "regex removes all specials" UXSS
// sanitizer-detection property. The replacement counts unless it is a
// non-empty string literal; a non-literal replacement is accepted.
func isSanitized(from, to []*ast.Node, sanitizer *regexp.Regexp) bool {
	for _, path := range [][]*ast.Node{from, to} {
		for _, n := range path {
			if sanitizerCallAbove(n, sanitizer) {
				return true
			}
		}
	}
	return false
}

func sanitizerCallAbove(n *ast.Node, sanitizer *regexp.Regexp) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Kind != ast.KindCallExpression {
			continue
		}
		callee := cur.GetOne("callee")
		if callee == nil || callee.Kind != ast.KindMemberExpression {
			continue
		}
		prop := callee.GetOne("property")
		if prop == nil || prop.Name() != "replace" {
			continue
		}
		args := cur.Get("arguments")
		if len(args) < 2 {
			continue
		}
		regexArg := args[0]
		if regexArg.Kind != ast.KindLiteral {
			continue
		}
		src, _ := regexArg.Attr("regex").(string)
		if src == "" {
			continue
		}
		replacement := args[1]
		if replacement.Kind == ast.KindLiteral {
			if rv, _ := replacement.Attr("value").(string); rv != "" {
				continue // only an empty-string replacement counts as removal
			}
		}
		if sanitizer.MatchString(src) {
			return true
		}
	}
	return false
}
