// Package rules loads the externally-parameterized vulnerability catalogs
// (sensitive sources, dangerous sinks, sanitizers, auth checks) that drive
// the match package's rendezvous matching, and exposes the per-vulnerability
// class helpers built on top of it. The catalogs themselves are YAML data,
// not Go logic, per the matching-machinery/catalog split.
package rules

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/k-gruenberg/doublex-go/ast"
)

// APIClass is one named group of dotted call-prefixes, e.g. "storage" →
// ["chrome.storage.local.get", "chrome.storage.sync.get"].
type APIClass struct {
	Name     string   `yaml:"name"`
	Prefixes []string `yaml:"prefixes"`
}

// Catalog is the full set of rule-driving call catalogs.
type Catalog struct {
	SensitiveSources []APIClass `yaml:"sensitive_sources"`
	DangerousSinks   []APIClass `yaml:"dangerous_sinks"`
	Sanitizers       []APIClass `yaml:"sanitizers"`
	AuthChecks       []APIClass `yaml:"auth_checks"`
}

// LoadCatalog reads and parses a YAML catalog document from path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// CalleeName reconstructs the dotted name of a CallExpression's callee,
// e.g. `chrome.tabs.query(...)` → "chrome.tabs.query", or "" when the
// callee isn't a simple Identifier/MemberExpression chain.
func CalleeName(call *ast.Node) string {
	callee := call.GetOne("callee")
	if callee == nil {
		return ""
	}
	return memberChainName(callee)
}

func memberChainName(n *ast.Node) string {
	switch n.Kind {
	case ast.KindIdentifier:
		return n.Name()
	case ast.KindThisExpression:
		return "this"
	case ast.KindMemberExpression:
		computed, _ := n.Attr("computed").(bool)
		if computed {
			return ""
		}
		obj := n.GetOne("object")
		prop := n.GetOne("property")
		if obj == nil || prop == nil {
			return ""
		}
		objName := memberChainName(obj)
		if objName == "" {
			return ""
		}
		return objName + "." + prop.Name()
	default:
		return ""
	}
}

func matchesAny(name string, classes []APIClass) *APIClass {
	if name == "" {
		return nil
	}
	for i := range classes {
		for _, prefix := range classes[i].Prefixes {
			if name == prefix || strings.HasPrefix(name, prefix+".") {
				return &classes[i]
			}
		}
	}
	return nil
}

// MatchSensitiveSource returns the matching source class for a
// CallExpression, or nil.
func (c *Catalog) MatchSensitiveSource(call *ast.Node) *APIClass {
	return matchesAny(CalleeName(call), c.SensitiveSources)
}

// MatchDangerousSink returns the matching sink class for a CallExpression,
// or nil.
func (c *Catalog) MatchDangerousSink(call *ast.Node) *APIClass {
	return matchesAny(CalleeName(call), c.DangerousSinks)
}

// MatchSanitizer returns the matching sanitizer class for a
// CallExpression, or nil.
func (c *Catalog) MatchSanitizer(call *ast.Node) *APIClass {
	return matchesAny(CalleeName(call), c.Sanitizers)
}

// MatchAuthCheck returns the matching auth-check class for a
// CallExpression, or nil.
func (c *Catalog) MatchAuthCheck(call *ast.Node) *APIClass {
	return matchesAny(CalleeName(call), c.AuthChecks)
}

// GetSensitiveAPIsAccessed walks root and returns every CallExpression
// whose reconstructed callee name matches a sensitive-source prefix.
func GetSensitiveAPIsAccessed(root *ast.Node, c *Catalog) []*ast.Node {
	var out []*ast.Node
	root.PreOrder(func(n *ast.Node) {
		if n.Kind != ast.KindCallExpression {
			return
		}
		if c.MatchSensitiveSource(n) != nil {
			out = append(out, n)
		}
	})
	return out
}
