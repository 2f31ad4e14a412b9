package pdg

import (
	"regexp"

	"github.com/k-gruenberg/doublex-go/ast"
)

// Pattern is the matching predicate of §4.B's "matches(node, pattern, ...)":
// a lightweight AST-shaped query with independent toggles for name/literal
// matching, operator matching, wildcard nodes, optional extra children and
// reordered children.
type Pattern struct {
	Wildcard bool // matches any node, regardless of everything else below

	Kind ast.Kind // "" means "any kind"

	Name      string         // exact Identifier/declared name match
	NameRegex *regexp.Regexp // alternative to Name; either may be set, not both

	HasLiteralValue bool // when true, LiteralValue/LiteralRegex constrain node's "value" attr
	LiteralValue    any
	LiteralRegex    *regexp.Regexp
	NegateLiteral   bool

	Operator string // constrains the "operator" attribute, e.g. for BinaryExpression

	Children                 []Pattern
	AllowAdditionalChildren  bool // actual node may have more children than pattern lists
	AllowDifferentChildOrder bool // pattern children may match in any order
}

// Matches reports whether node satisfies pattern.
func Matches(node *ast.Node, pattern Pattern) bool {
	if node == nil {
		return false
	}
	if pattern.Wildcard {
		return true
	}
	if pattern.Kind != "" && node.Kind != pattern.Kind {
		return false
	}
	if pattern.Name != "" && node.Name() != pattern.Name {
		return false
	}
	if pattern.NameRegex != nil && !pattern.NameRegex.MatchString(node.Name()) {
		return false
	}
	if pattern.Operator != "" {
		op, _ := node.Attr("operator").(string)
		if op != pattern.Operator {
			return false
		}
	}
	if pattern.HasLiteralValue {
		val := node.Attr("value")
		if pattern.LiteralRegex != nil {
			matched := pattern.LiteralRegex.MatchString(jsToString(val))
			if pattern.NegateLiteral {
				matched = !matched
			}
			if !matched {
				return false
			}
		} else if val != pattern.LiteralValue {
			return false
		}
	}
	if len(pattern.Children) == 0 {
		return true
	}
	if pattern.AllowDifferentChildOrder {
		return matchChildrenAnyOrder(node.Children, pattern.Children, pattern.AllowAdditionalChildren)
	}
	return matchChildrenInOrder(node.Children, pattern.Children, pattern.AllowAdditionalChildren)
}

// matchChildrenInOrder matches pattern children against a subsequence (or,
// without AllowAdditionalChildren, the exact sequence) of actual children.
func matchChildrenInOrder(actual []*ast.Node, patterns []Pattern, allowExtra bool) bool {
	if !allowExtra {
		if len(actual) != len(patterns) {
			return false
		}
		for i, p := range patterns {
			if !Matches(actual[i], p) {
				return false
			}
		}
		return true
	}
	ai := 0
	for _, p := range patterns {
		found := false
		for ai < len(actual) {
			if Matches(actual[ai], p) {
				found = true
				ai++
				break
			}
			ai++
		}
		if !found {
			return false
		}
	}
	return true
}

// matchChildrenAnyOrder tries to find a distinct actual child for every
// pattern child via backtracking. Bounded by len(patterns), which §9 notes
// is always small in practice (pattern catalogs, not arbitrary ASTs).
func matchChildrenAnyOrder(actual []*ast.Node, patterns []Pattern, allowExtra bool) bool {
	if !allowExtra && len(actual) != len(patterns) {
		return false
	}
	used := make([]bool, len(actual))
	var assign func(pi int) bool
	assign = func(pi int) bool {
		if pi == len(patterns) {
			return true
		}
		for ai, child := range actual {
			if used[ai] {
				continue
			}
			if Matches(child, patterns[pi]) {
				used[ai] = true
				if assign(pi + 1) {
					return true
				}
				used[ai] = false
			}
		}
		return false
	}
	return assign(0)
}
