package rules

import (
	"regexp"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/dataflow"
	"github.com/k-gruenberg/doublex-go/flowgraph"
	"github.com/k-gruenberg/doublex-go/match"
)

// uxssSanitizerPattern approximates "removes all specials": it matches a
// replace regex's source text when that text contains a `<` followed later
// by a `>`, plus at least one of ", ', & before or after that pair. Class
// shorthands such as \W are not recognized.
var uxssSanitizerPattern = regexp.MustCompile(`(?s)<.*>.*["'&]|["'&].*<.*>`)

// Finding is one matched source→sink rendezvous, labeled with the
// vulnerability class and the catalog entries it matched.
type Finding struct {
	Class      string
	SourceAPI  string
	SinkAPI    string
	DoubleFlow *match.DoubleFlow
}

// sourceFlows builds one flow per sensitive-source call whose result binds
// to an Identifier, following it to every reachable leaf.
func sourceFlows(root *ast.Node, catalog *Catalog) map[*ast.Node][][]*ast.Node {
	out := map[*ast.Node][][]*ast.Node{}
	for _, call := range GetSensitiveAPIsAccessed(root, catalog) {
		resultID := dataflow.CallResultIdentifier(call)
		if resultID == nil {
			continue
		}
		g := flowgraph.Build(resultID)
		idx := g.Dijkstra()
		var flows [][]*ast.Node
		for _, leaf := range g.Leaves() {
			if p := idx.ShortestPath(leaf); p != nil {
				flows = append(flows, p)
			}
		}
		if len(flows) > 0 {
			out[call] = flows
		}
	}
	return out
}

// sinkFlows returns, for every dangerous-sink call, a single-element "flow"
// per Identifier argument — the use site itself, which is all FindRendezvous
// needs as a to-flow's starting point.
var innerHTMLLikeProps = map[string]bool{"innerHTML": true, "outerHTML": true, "src": true}

func sinkFlows(root *ast.Node, catalog *Catalog) map[*ast.Node][][]*ast.Node {
	out := map[*ast.Node][][]*ast.Node{}
	root.PreOrder(func(n *ast.Node) {
		switch n.Kind {
		case ast.KindCallExpression:
			if catalog.MatchDangerousSink(n) == nil {
				return
			}
			var flows [][]*ast.Node
			for _, arg := range n.Get("arguments") {
				if arg.Kind == ast.KindIdentifier {
					flows = append(flows, []*ast.Node{arg})
				}
			}
			if len(flows) > 0 {
				out[n] = flows
			}
		case ast.KindAssignmentExpression:
			lhs := n.GetOne("left")
			rhs := n.GetOne("right")
			if lhs == nil || rhs == nil || lhs.Kind != ast.KindMemberExpression {
				return
			}
			prop := lhs.GetOne("property")
			if prop == nil || !innerHTMLLikeProps[prop.Name()] {
				return
			}
			if rhs.Kind == ast.KindIdentifier {
				out[n] = [][]*ast.Node{{rhs}}
			}
		}
	})
	return out
}

// findingsFor runs the rendezvous matcher over every (source-call,
// sink-call) pair and flattens the result into Findings tagged className.
func findingsFor(root *ast.Node, catalog *Catalog, className string, opts match.Options) []Finding {
	sources := sourceFlows(root, catalog)
	sinks := sinkFlows(root, catalog)
	var findings []Finding
	for srcCall, fromFlows := range sources {
		srcAPI := CalleeName(srcCall)
		for sinkCall, toFlows := range sinks {
			sinkAPI := sinkName(sinkCall)
			for _, df := range match.FindRendezvous(fromFlows, toFlows, opts) {
				findings = append(findings, Finding{
					Class:      className,
					SourceAPI:  srcAPI,
					SinkAPI:    sinkAPI,
					DoubleFlow: df,
				})
			}
		}
	}
	return findings
}

// BackgroundExfiltration finds background-page flows from a sensitive
// source to a dangerous sink (data the background page leaks outward).
func BackgroundExfiltration(bpRoot *ast.Node, catalog *Catalog) []Finding {
	return findingsFor(bpRoot, catalog, "bp_exfiltration", match.Options{
		RequireReachable:      true,
		ExcludeIIFERendezvous: false,
	})
}

// BackgroundInfiltrationUXSS finds background-page flows from an
// attacker-controlled message into a DOM/eval-like sink without an
// intervening sanitizer — the renderer-attacker UXSS shape.
func BackgroundInfiltrationUXSS(bpRoot *ast.Node, catalog *Catalog) []Finding {
	return findingsFor(bpRoot, catalog, "bp_infiltration_uxss", match.Options{
		RequireReachable: true,
		Sanitizer:        uxssSanitizerPattern,
	})
}

// ContentScriptExfiltration finds content-script flows from a sensitive
// source to a dangerous sink.
func ContentScriptExfiltration(csRoot *ast.Node, catalog *Catalog) []Finding {
	return findingsFor(csRoot, catalog, "cs_exfiltration", match.Options{
		RequireReachable: true,
	})
}

// ContentScriptInfiltrationUXSS finds content-script flows from
// page/extension-controlled input into a DOM sink without sanitization.
func ContentScriptInfiltrationUXSS(csRoot *ast.Node, catalog *Catalog) []Finding {
	return findingsFor(csRoot, catalog, "cs_infiltration_uxss", match.Options{
		RequireReachable: true,
		Sanitizer:        uxssSanitizerPattern,
	})
}

// BackgroundPrivilegeViolations finds background-page flows from a
// content-script-facing message listener straight to a privileged sink
// without an intervening auth check — manifest V2/V3 §3.1-style
// "verify the sender" violations.
func BackgroundPrivilegeViolations(bpRoot *ast.Node, catalog *Catalog) []Finding {
	findings := findingsFor(bpRoot, catalog, "bp_unchecked_privileged_sink", match.Options{
		RequireReachable: true,
	})
	var out []Finding
	for _, f := range findings {
		if !hasAuthCheckBetween(f.DoubleFlow, catalog) {
			out = append(out, f)
		}
	}
	return out
}

// ExtensionStorageAccesses returns every chrome.storage.* call reachable
// from bpRoot/csRoot, independent of source/sink matching — used to report
// what an extension persists, not just how it leaks.
func ExtensionStorageAccesses(root *ast.Node, catalog *Catalog) []*ast.Node {
	var out []*ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind != ast.KindCallExpression {
			return
		}
		name := CalleeName(n)
		for _, prefix := range []string{"chrome.storage.", "browser.storage."} {
			if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
				out = append(out, n)
				return
			}
		}
	})
	return out
}

func sinkName(n *ast.Node) string {
	if n.Kind == ast.KindCallExpression {
		return CalleeName(n)
	}
	if n.Kind == ast.KindAssignmentExpression {
		if lhs := n.GetOne("left"); lhs != nil {
			return memberChainName(lhs)
		}
	}
	return ""
}

func hasAuthCheckBetween(df *match.DoubleFlow, catalog *Catalog) bool {
	for _, path := range [][]*ast.Node{df.FromFlow, df.ToFlow} {
		for _, n := range path {
			for cur := n; cur != nil; cur = cur.Parent {
				if cur.Kind == ast.KindCallExpression && catalog.MatchAuthCheck(cur) != nil {
					return true
				}
			}
		}
	}
	return false
}
