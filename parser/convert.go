package parser

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/k-gruenberg/doublex-go/ast"
)

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c *converter) convertStatement(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "expression_statement":
		expr := c.convertExpression(n.NamedChild(0))
		if expr == nil {
			return nil
		}
		stmt := ast.New(ast.KindExpressionStatement, locOf(n), c.file)
		stmt.AppendChild("expression", expr)
		return stmt

	case "statement_block":
		block := ast.New(ast.KindBlockStatement, locOf(n), c.file)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if s := c.convertStatement(n.NamedChild(i)); s != nil {
				block.AppendChild("body", s)
			}
		}
		return block

	case "variable_declaration", "lexical_declaration":
		return c.convertVariableDeclaration(n)

	case "function_declaration", "generator_function_declaration":
		return c.convertFunction(n, ast.KindFunctionDeclaration)

	case "class_declaration":
		return c.convertClass(n, ast.KindClassDeclaration)

	case "if_statement":
		stmt := ast.New(ast.KindIfStatement, locOf(n), c.file)
		if test := n.ChildByFieldName("condition"); test != nil {
			if t := c.convertExpression(unwrapParen(test)); t != nil {
				stmt.AppendChild("test", t)
			}
		}
		if cons := n.ChildByFieldName("consequence"); cons != nil {
			if s := c.convertStatement(cons); s != nil {
				stmt.AppendChild("consequent", s)
			}
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if s := c.convertStatement(alt); s != nil {
				stmt.AppendChild("alternate", s)
			}
		}
		return stmt

	case "for_statement":
		stmt := ast.New(ast.KindForStatement, locOf(n), c.file)
		if init := n.ChildByFieldName("initializer"); init != nil {
			if init.Type() == "variable_declaration" || init.Type() == "lexical_declaration" {
				if d := c.convertVariableDeclaration(init); d != nil {
					stmt.AppendChild("init", d)
				}
			} else if e := c.convertExpression(init); e != nil {
				stmt.AppendChild("init", e)
			}
		}
		if cond := n.ChildByFieldName("condition"); cond != nil {
			if e := c.convertExpression(cond); e != nil {
				stmt.AppendChild("test", e)
			}
		}
		if inc := n.ChildByFieldName("increment"); inc != nil {
			if e := c.convertExpression(inc); e != nil {
				stmt.AppendChild("update", e)
			}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			if s := c.convertStatement(body); s != nil {
				stmt.AppendChild("body", s)
			}
		}
		return stmt

	case "for_in_statement":
		kind := ast.KindForInStatement
		opNode := n.ChildByFieldName("operator")
		if opNode != nil && c.text(opNode) == "of" {
			kind = ast.KindForOfStatement
		}
		stmt := ast.New(kind, locOf(n), c.file)
		if left := n.ChildByFieldName("left"); left != nil {
			if d := c.convertForBinding(left); d != nil {
				stmt.AppendChild("left", d)
			}
		}
		if right := n.ChildByFieldName("right"); right != nil {
			if e := c.convertExpression(right); e != nil {
				stmt.AppendChild("right", e)
			}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			if s := c.convertStatement(body); s != nil {
				stmt.AppendChild("body", s)
			}
		}
		return stmt

	case "while_statement":
		stmt := ast.New(ast.KindWhileStatement, locOf(n), c.file)
		if cond := n.ChildByFieldName("condition"); cond != nil {
			if e := c.convertExpression(unwrapParen(cond)); e != nil {
				stmt.AppendChild("test", e)
			}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			if s := c.convertStatement(body); s != nil {
				stmt.AppendChild("body", s)
			}
		}
		return stmt

	case "do_statement":
		stmt := ast.New(ast.KindDoWhileStatement, locOf(n), c.file)
		if body := n.ChildByFieldName("body"); body != nil {
			if s := c.convertStatement(body); s != nil {
				stmt.AppendChild("body", s)
			}
		}
		if cond := n.ChildByFieldName("condition"); cond != nil {
			if e := c.convertExpression(unwrapParen(cond)); e != nil {
				stmt.AppendChild("test", e)
			}
		}
		return stmt

	case "return_statement":
		stmt := ast.New(ast.KindReturnStatement, locOf(n), c.file)
		if n.NamedChildCount() > 0 {
			if e := c.convertExpression(n.NamedChild(0)); e != nil {
				stmt.AppendChild("argument", e)
			}
		}
		return stmt

	case "throw_statement":
		stmt := ast.New(ast.KindThrowStatement, locOf(n), c.file)
		if n.NamedChildCount() > 0 {
			if e := c.convertExpression(n.NamedChild(0)); e != nil {
				stmt.AppendChild("argument", e)
			}
		}
		return stmt

	case "break_statement":
		return ast.New(ast.KindBreakStatement, locOf(n), c.file)

	case "continue_statement":
		return ast.New(ast.KindContinueStatement, locOf(n), c.file)

	case "empty_statement":
		return ast.New(ast.KindEmptyStatement, locOf(n), c.file)

	case "debugger_statement":
		return ast.New(ast.KindDebuggerStatement, locOf(n), c.file)

	case "labeled_statement":
		stmt := ast.New(ast.KindLabeledStatement, locOf(n), c.file)
		if body := n.NamedChild(int(n.NamedChildCount()) - 1); body != nil {
			if s := c.convertStatement(body); s != nil {
				stmt.AppendChild("body", s)
			}
		}
		return stmt

	case "try_statement":
		stmt := ast.New(ast.KindTryStatement, locOf(n), c.file)
		if body := n.ChildByFieldName("body"); body != nil {
			if s := c.convertStatement(body); s != nil {
				stmt.AppendChild("block", s)
			}
		}
		if handler := n.ChildByFieldName("handler"); handler != nil {
			catch := ast.New(ast.KindCatchClause, locOf(handler), c.file)
			if p := handler.ChildByFieldName("parameter"); p != nil {
				if pat := c.convertPattern(p); pat != nil {
					catch.AppendChild("param", pat)
				}
			}
			if b := handler.ChildByFieldName("body"); b != nil {
				if s := c.convertStatement(b); s != nil {
					catch.AppendChild("body", s)
				}
			}
			stmt.AppendChild("handler", catch)
		}
		if final := n.ChildByFieldName("finalizer"); final != nil {
			if s := c.convertStatement(final); s != nil {
				stmt.AppendChild("finalizer", s)
			}
		}
		return stmt

	case "switch_statement":
		stmt := ast.New(ast.KindSwitchStatement, locOf(n), c.file)
		if disc := n.ChildByFieldName("value"); disc != nil {
			if e := c.convertExpression(disc); e != nil {
				stmt.AppendChild("discriminant", e)
			}
		}
		body := n.ChildByFieldName("body")
		if body != nil {
			for i := 0; i < int(body.NamedChildCount()); i++ {
				caseNode := body.NamedChild(i)
				sc := ast.New(ast.KindSwitchCase, locOf(caseNode), c.file)
				if caseNode.Type() == "switch_case" {
					if val := caseNode.ChildByFieldName("value"); val != nil {
						if e := c.convertExpression(val); e != nil {
							sc.AppendChild("test", e)
						}
					}
				}
				for j := 0; j < int(caseNode.NamedChildCount()); j++ {
					child := caseNode.NamedChild(j)
					if s := c.convertStatement(child); s != nil {
						sc.AppendChild("consequent", s)
					}
				}
				stmt.AppendChild("cases", sc)
			}
		}
		return stmt

	default:
		if expr := c.convertExpression(n); expr != nil {
			stmt := ast.New(ast.KindExpressionStatement, locOf(n), c.file)
			stmt.AppendChild("expression", expr)
			return stmt
		}
		return nil
	}
}

func (c *converter) convertForBinding(n *sitter.Node) *ast.Node {
	switch n.Type() {
	case "variable_declaration", "lexical_declaration":
		decl := ast.New(ast.KindVariableDeclaration, locOf(n), c.file)
		decl.SetAttr("kind", declKeyword(n))
		if n.NamedChildCount() > 0 {
			declr := ast.New(ast.KindVariableDeclarator, locOf(n.NamedChild(0)), c.file)
			if id := c.convertPattern(n.NamedChild(0)); id != nil {
				declr.AppendChild("id", id)
			}
			decl.AppendChild("declarations", declr)
		}
		return decl
	default:
		return c.convertExpression(n)
	}
}

func declKeyword(n *sitter.Node) string {
	if n.ChildCount() > 0 {
		kw := n.Child(0).Content(nil)
		if kw == "const" || kw == "let" || kw == "var" {
			return kw
		}
	}
	return "let"
}

func (c *converter) convertVariableDeclaration(n *sitter.Node) *ast.Node {
	decl := ast.New(ast.KindVariableDeclaration, locOf(n), c.file)
	kind := "var"
	if n.ChildCount() > 0 {
		first := n.Child(0).Content(c.src)
		if first == "const" || first == "let" || first == "var" {
			kind = first
		}
	}
	decl.SetAttr("kind", kind)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		declr := ast.New(ast.KindVariableDeclarator, locOf(child), c.file)
		if name := child.ChildByFieldName("name"); name != nil {
			if id := c.convertPattern(name); id != nil {
				declr.AppendChild("id", id)
			}
		}
		if value := child.ChildByFieldName("value"); value != nil {
			if v := c.convertExpression(value); v != nil {
				declr.AppendChild("init", v)
			}
		}
		decl.AppendChild("declarations", declr)
	}
	return decl
}

// convertPattern converts a binding target: plain identifier, array
// destructuring, or object destructuring.
func (c *converter) convertPattern(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		id := ast.New(ast.KindIdentifier, locOf(n), c.file)
		id.SetAttr("name", c.text(n))
		return id
	case "object_pattern":
		pat := ast.New(ast.KindObjectPattern, locOf(n), c.file)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			prop := n.NamedChild(i)
			if prop.Type() == "rest_pattern" {
				rest := ast.New(ast.KindRestElement, locOf(prop), c.file)
				if prop.NamedChildCount() > 0 {
					if arg := c.convertPattern(prop.NamedChild(0)); arg != nil {
						rest.AppendChild("argument", arg)
					}
				}
				pat.AppendChild("properties", rest)
				continue
			}
			propNode := ast.New(ast.KindProperty, locOf(prop), c.file)
			if key := prop.ChildByFieldName("key"); key != nil {
				if k := c.convertExpression(key); k != nil {
					propNode.AppendChild("key", k)
				}
			}
			if value := prop.ChildByFieldName("value"); value != nil {
				if v := c.convertPattern(value); v != nil {
					propNode.AppendChild("value", v)
				}
			} else if key := prop.ChildByFieldName("key"); key != nil {
				if v := c.convertPattern(key); v != nil {
					propNode.AppendChild("value", v)
				}
			}
			pat.AppendChild("properties", propNode)
		}
		return pat
	case "array_pattern":
		pat := ast.New(ast.KindArrayPattern, locOf(n), c.file)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if el := c.convertPattern(n.NamedChild(i)); el != nil {
				pat.AppendChild("elements", el)
			}
		}
		return pat
	case "assignment_pattern":
		pat := ast.New(ast.KindAssignmentPattern, locOf(n), c.file)
		if left := n.ChildByFieldName("left"); left != nil {
			if l := c.convertPattern(left); l != nil {
				pat.AppendChild("left", l)
			}
		}
		if right := n.ChildByFieldName("right"); right != nil {
			if r := c.convertExpression(right); r != nil {
				pat.AppendChild("right", r)
			}
		}
		return pat
	case "rest_pattern":
		rest := ast.New(ast.KindRestElement, locOf(n), c.file)
		if n.NamedChildCount() > 0 {
			if arg := c.convertPattern(n.NamedChild(0)); arg != nil {
				rest.AppendChild("argument", arg)
			}
		}
		return rest
	default:
		return c.convertExpression(n)
	}
}

func unwrapParen(n *sitter.Node) *sitter.Node {
	if n != nil && n.Type() == "parenthesized_expression" && n.NamedChildCount() > 0 {
		return n.NamedChild(0)
	}
	return n
}

func (c *converter) convertFunction(n *sitter.Node, kind ast.Kind) *ast.Node {
	fn := ast.New(kind, locOf(n), c.file)
	if name := n.ChildByFieldName("name"); name != nil {
		id := ast.New(ast.KindIdentifier, locOf(name), c.file)
		id.SetAttr("name", c.text(name))
		fn.AppendChild("id", id)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for i := 0; i < int(params.NamedChildCount()); i++ {
			if p := c.convertPattern(params.NamedChild(i)); p != nil {
				fn.AppendChild("params", p)
			}
		}
	}
	if body := n.ChildByFieldName("body"); body != nil {
		if s := c.convertStatement(body); s != nil {
			fn.AppendChild("body", s)
		}
	}
	return fn
}

func (c *converter) convertClass(n *sitter.Node, kind ast.Kind) *ast.Node {
	cls := ast.New(kind, locOf(n), c.file)
	if name := n.ChildByFieldName("name"); name != nil {
		id := ast.New(ast.KindIdentifier, locOf(name), c.file)
		id.SetAttr("name", c.text(name))
		cls.AppendChild("id", id)
	}
	if super := n.ChildByFieldName("superclass"); super != nil {
		if e := c.convertExpression(super); e != nil {
			cls.AppendChild("superClass", e)
		}
	}
	body := n.ChildByFieldName("body")
	classBody := ast.New(ast.KindClassBody, locOf(n), c.file)
	if body != nil {
		for i := 0; i < int(body.NamedChildCount()); i++ {
			member := body.NamedChild(i)
			if member.Type() != "method_definition" {
				continue
			}
			md := ast.New(ast.KindMethodDefinition, locOf(member), c.file)
			isStatic := false
			for j := 0; j < int(member.ChildCount()); j++ {
				if member.Child(j).Content(c.src) == "static" {
					isStatic = true
				}
			}
			md.SetAttr("static", isStatic)
			if key := member.ChildByFieldName("name"); key != nil {
				k := ast.New(ast.KindIdentifier, locOf(key), c.file)
				k.SetAttr("name", c.text(key))
				md.AppendChild("key", k)
			}
			fnExpr := ast.New(ast.KindFunctionExpression, locOf(member), c.file)
			if params := member.ChildByFieldName("parameters"); params != nil {
				for k := 0; k < int(params.NamedChildCount()); k++ {
					if p := c.convertPattern(params.NamedChild(k)); p != nil {
						fnExpr.AppendChild("params", p)
					}
				}
			}
			if mbody := member.ChildByFieldName("body"); mbody != nil {
				if s := c.convertStatement(mbody); s != nil {
					fnExpr.AppendChild("body", s)
				}
			}
			md.AppendChild("value", fnExpr)
			classBody.AppendChild("body", md)
		}
	}
	cls.AppendChild("body", classBody)
	return cls
}

func (c *converter) convertExpression(n *sitter.Node) *ast.Node {
	if n == nil {
		return nil
	}
	n = unwrapParen(n)
	switch n.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		id := ast.New(ast.KindIdentifier, locOf(n), c.file)
		id.SetAttr("name", c.text(n))
		return id

	case "this":
		return ast.New(ast.KindThisExpression, locOf(n), c.file)

	case "super":
		return ast.New(ast.KindSuper, locOf(n), c.file)

	case "number":
		lit := ast.New(ast.KindLiteral, locOf(n), c.file)
		f, _ := strconv.ParseFloat(strings.ReplaceAll(c.text(n), "_", ""), 64)
		lit.SetAttr("value", f)
		return lit

	case "string":
		lit := ast.New(ast.KindLiteral, locOf(n), c.file)
		lit.SetAttr("value", unquote(c.text(n)))
		return lit

	case "template_string":
		return c.convertTemplateLiteral(n)

	case "regex":
		lit := ast.New(ast.KindLiteral, locOf(n), c.file)
		var pattern, flags string
		if p := n.ChildByFieldName("pattern"); p != nil {
			pattern = c.text(p)
		}
		if f := n.ChildByFieldName("flags"); f != nil {
			flags = c.text(f)
		}
		lit.SetAttr("regex", pattern)
		lit.SetAttr("regexFlags", flags)
		return lit

	case "true":
		lit := ast.New(ast.KindLiteral, locOf(n), c.file)
		lit.SetAttr("value", true)
		return lit

	case "false":
		lit := ast.New(ast.KindLiteral, locOf(n), c.file)
		lit.SetAttr("value", false)
		return lit

	case "null":
		lit := ast.New(ast.KindLiteral, locOf(n), c.file)
		lit.SetAttr("value", nil)
		return lit

	case "undefined":
		lit := ast.New(ast.KindLiteral, locOf(n), c.file)
		return lit

	case "array":
		arr := ast.New(ast.KindArrayExpression, locOf(n), c.file)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			child := n.NamedChild(i)
			if child.Type() == "spread_element" {
				spread := ast.New(ast.KindSpreadElement, locOf(child), c.file)
				if child.NamedChildCount() > 0 {
					if arg := c.convertExpression(child.NamedChild(0)); arg != nil {
						spread.AppendChild("argument", arg)
					}
				}
				arr.AppendChild("elements", spread)
				continue
			}
			if e := c.convertExpression(child); e != nil {
				arr.AppendChild("elements", e)
			}
		}
		return arr

	case "object":
		obj := ast.New(ast.KindObjectExpression, locOf(n), c.file)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			prop := n.NamedChild(i)
			propNode := ast.New(ast.KindProperty, locOf(prop), c.file)
			switch prop.Type() {
			case "pair":
				if key := prop.ChildByFieldName("key"); key != nil {
					if k := c.convertExpression(key); k != nil {
						propNode.AppendChild("key", k)
					}
				}
				if value := prop.ChildByFieldName("value"); value != nil {
					if v := c.convertExpression(value); v != nil {
						propNode.AppendChild("value", v)
					}
				}
			case "shorthand_property_identifier":
				id := ast.New(ast.KindIdentifier, locOf(prop), c.file)
				id.SetAttr("name", c.text(prop))
				propNode.AppendChild("key", id)
				propNode.AppendChild("value", id)
			case "method_definition":
				propNode.SetAttr("method", true)
				if key := prop.ChildByFieldName("name"); key != nil {
					k := ast.New(ast.KindIdentifier, locOf(key), c.file)
					k.SetAttr("name", c.text(key))
					propNode.AppendChild("key", k)
				}
				fnExpr := c.convertFunction(prop, ast.KindFunctionExpression)
				propNode.AppendChild("value", fnExpr)
			default:
				continue
			}
			obj.AppendChild("properties", propNode)
		}
		return obj

	case "function", "function_expression", "generator_function":
		return c.convertFunction(n, ast.KindFunctionExpression)

	case "arrow_function":
		fn := ast.New(ast.KindArrowFunctionExpression, locOf(n), c.file)
		params := n.ChildByFieldName("parameters")
		if params != nil {
			for i := 0; i < int(params.NamedChildCount()); i++ {
				if p := c.convertPattern(params.NamedChild(i)); p != nil {
					fn.AppendChild("params", p)
				}
			}
		} else if single := n.ChildByFieldName("parameter"); single != nil {
			if p := c.convertPattern(single); p != nil {
				fn.AppendChild("params", p)
			}
		}
		if body := n.ChildByFieldName("body"); body != nil {
			if body.Type() == "statement_block" {
				if s := c.convertStatement(body); s != nil {
					fn.AppendChild("body", s)
				}
			} else if e := c.convertExpression(body); e != nil {
				fn.AppendChild("body", e)
			}
		}
		return fn

	case "class":
		return c.convertClass(n, ast.KindClassExpression)

	case "unary_expression":
		u := ast.New(ast.KindUnaryExpression, locOf(n), c.file)
		if op := n.ChildByFieldName("operator"); op != nil {
			u.SetAttr("operator", c.text(op))
		}
		if arg := n.ChildByFieldName("argument"); arg != nil {
			if a := c.convertExpression(arg); a != nil {
				u.AppendChild("argument", a)
			}
		}
		return u

	case "update_expression":
		u := ast.New(ast.KindUpdateExpression, locOf(n), c.file)
		if op := n.ChildByFieldName("operator"); op != nil {
			u.SetAttr("operator", c.text(op))
		}
		if arg := n.ChildByFieldName("argument"); arg != nil {
			if a := c.convertExpression(arg); a != nil {
				u.AppendChild("argument", a)
			}
		}
		return u

	case "binary_expression":
		b := ast.New(ast.KindBinaryExpression, locOf(n), c.file)
		if op := n.ChildByFieldName("operator"); op != nil {
			b.SetAttr("operator", c.text(op))
		}
		if left := n.ChildByFieldName("left"); left != nil {
			if l := c.convertExpression(left); l != nil {
				b.AppendChild("left", l)
			}
		}
		if right := n.ChildByFieldName("right"); right != nil {
			if r := c.convertExpression(right); r != nil {
				b.AppendChild("right", r)
			}
		}
		op, _ := b.Attr("operator").(string)
		if op == "&&" || op == "||" || op == "??" {
			b.Kind = ast.KindLogicalExpression
		}
		return b

	case "assignment_expression", "augmented_assignment_expression":
		a := ast.New(ast.KindAssignmentExpression, locOf(n), c.file)
		op := "="
		if opNode := n.ChildByFieldName("operator"); opNode != nil {
			op = c.text(opNode)
		}
		a.SetAttr("operator", op)
		if left := n.ChildByFieldName("left"); left != nil {
			if l := c.convertPattern(left); l != nil {
				a.AppendChild("left", l)
			}
		}
		if right := n.ChildByFieldName("right"); right != nil {
			if r := c.convertExpression(right); r != nil {
				a.AppendChild("right", r)
			}
		}
		return a

	case "ternary_expression":
		cond := ast.New(ast.KindConditionalExpression, locOf(n), c.file)
		if t := n.ChildByFieldName("condition"); t != nil {
			if e := c.convertExpression(t); e != nil {
				cond.AppendChild("test", e)
			}
		}
		if cons := n.ChildByFieldName("consequence"); cons != nil {
			if e := c.convertExpression(cons); e != nil {
				cond.AppendChild("consequent", e)
			}
		}
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if e := c.convertExpression(alt); e != nil {
				cond.AppendChild("alternate", e)
			}
		}
		return cond

	case "sequence_expression":
		seq := ast.New(ast.KindSequenceExpression, locOf(n), c.file)
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if e := c.convertExpression(n.NamedChild(i)); e != nil {
				seq.AppendChild("expressions", e)
			}
		}
		return seq

	case "call_expression":
		call := ast.New(ast.KindCallExpression, locOf(n), c.file)
		if callee := n.ChildByFieldName("function"); callee != nil {
			if e := c.convertExpression(callee); e != nil {
				call.AppendChild("callee", e)
			}
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				if e := c.convertExpression(args.NamedChild(i)); e != nil {
					call.AppendChild("arguments", e)
				}
			}
		}
		return call

	case "new_expression":
		call := ast.New(ast.KindNewExpression, locOf(n), c.file)
		if callee := n.ChildByFieldName("constructor"); callee != nil {
			if e := c.convertExpression(callee); e != nil {
				call.AppendChild("callee", e)
			}
		}
		if args := n.ChildByFieldName("arguments"); args != nil {
			for i := 0; i < int(args.NamedChildCount()); i++ {
				if e := c.convertExpression(args.NamedChild(i)); e != nil {
					call.AppendChild("arguments", e)
				}
			}
		}
		return call

	case "member_expression":
		m := ast.New(ast.KindMemberExpression, locOf(n), c.file)
		m.SetAttr("computed", false)
		if obj := n.ChildByFieldName("object"); obj != nil {
			if e := c.convertExpression(obj); e != nil {
				m.AppendChild("object", e)
			}
		}
		if prop := n.ChildByFieldName("property"); prop != nil {
			id := ast.New(ast.KindIdentifier, locOf(prop), c.file)
			id.SetAttr("name", c.text(prop))
			m.AppendChild("property", id)
		}
		return m

	case "subscript_expression":
		m := ast.New(ast.KindMemberExpression, locOf(n), c.file)
		m.SetAttr("computed", true)
		if obj := n.ChildByFieldName("object"); obj != nil {
			if e := c.convertExpression(obj); e != nil {
				m.AppendChild("object", e)
			}
		}
		if idx := n.ChildByFieldName("index"); idx != nil {
			if e := c.convertExpression(idx); e != nil {
				m.AppendChild("property", e)
			}
		}
		return m

	case "spread_element":
		spread := ast.New(ast.KindSpreadElement, locOf(n), c.file)
		if n.NamedChildCount() > 0 {
			if arg := c.convertExpression(n.NamedChild(0)); arg != nil {
				spread.AppendChild("argument", arg)
			}
		}
		return spread

	case "await_expression":
		a := ast.New(ast.KindAwaitExpression, locOf(n), c.file)
		if n.NamedChildCount() > 0 {
			if e := c.convertExpression(n.NamedChild(0)); e != nil {
				a.AppendChild("argument", e)
			}
		}
		return a

	case "yield_expression":
		y := ast.New(ast.KindYieldExpression, locOf(n), c.file)
		if n.NamedChildCount() > 0 {
			if e := c.convertExpression(n.NamedChild(0)); e != nil {
				y.AppendChild("argument", e)
			}
		}
		return y

	default:
		return nil
	}
}

func (c *converter) convertTemplateLiteral(n *sitter.Node) *ast.Node {
	t := ast.New(ast.KindTemplateLiteral, locOf(n), c.file)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "template_substitution" && child.NamedChildCount() > 0 {
			if e := c.convertExpression(child.NamedChild(0)); e != nil {
				t.AppendChild("expressions", e)
			}
			continue
		}
		el := ast.New(ast.KindTemplateElement, locOf(child), c.file)
		el.SetAttr("value", c.text(child))
		t.AppendChild("quasis", el)
	}
	return t
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
