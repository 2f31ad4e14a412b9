// Package pdg provides the semantic query layer over the ast package:
// pattern matching, static expression evaluation, scope/identifier
// resolution, and the Func/MessageListener models (§4.B of the spec).
package pdg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/errs"
)

// Value is the result of a static evaluation. It holds one of:
// nil (JS null/undefined-as-null-here), string, float64, bool, []any,
// map[string]any, or *ast.Node (a function literal, used when a value
// statically evaluates to a lambda). This loose representation mirrors the
// dynamically-typed sum type of §4.B/§9 without a closed Go union type.
type Value = any

// Eval attempts to statically evaluate node as a pure JavaScript expression.
// It returns an *errs.Error of kind StaticEvalError on failure (regex
// literals, `void`, non-const identifiers, unresolvable calls, …) — see
// §4.B for the full table of what can/cannot be evaluated.
func Eval(node *ast.Node, allowPartial bool) (Value, error) {
	return eval(node, allowPartial)
}

// TryEval is the non-throwing wrapper of §4.B: "try_static_eval(default)".
func TryEval(node *ast.Node, allowPartial bool, fallback Value) Value {
	v, err := Eval(node, allowPartial)
	if err != nil {
		return fallback
	}
	return v
}

func fail(format string, args ...any) error {
	return errs.New(errs.KindStaticEval, format, args...)
}

func eval(node *ast.Node, partial bool) (Value, error) {
	if node == nil {
		return nil, fail("static eval failed: nil node")
	}
	switch node.Kind {
	case ast.KindLiteral:
		if node.Attr("regex") != nil {
			return nil, fail("static eval failed: cannot statically evaluate JavaScript RegExp literals")
		}
		return node.Attr("value"), nil

	case ast.KindSequenceExpression:
		exprs := node.Get("expressions")
		if len(exprs) == 0 {
			return nil, fail("static eval failed: empty SequenceExpression")
		}
		return eval(exprs[len(exprs)-1], partial)

	case ast.KindArrayExpression:
		return evalArray(node, partial)

	case ast.KindObjectExpression:
		return evalObject(node, partial)

	case ast.KindUnaryExpression:
		return evalUnary(node, partial)

	case ast.KindBinaryExpression:
		return evalBinary(node, partial)

	case ast.KindLogicalExpression:
		return evalLogical(node, partial)

	case ast.KindConditionalExpression:
		return evalConditional(node, partial)

	case ast.KindIdentifier:
		return evalIdentifier(node, partial)

	case ast.KindMemberExpression:
		return evalMember(node, partial)

	case ast.KindCallExpression:
		return evalCall(node, partial)

	case ast.KindFunctionExpression, ast.KindArrowFunctionExpression:
		return node, nil

	default:
		return nil, fail("static eval failed: unsupported node kind %s", node.Kind)
	}
}

func evalArray(node *ast.Node, partial bool) (Value, error) {
	var result []any
	for _, el := range node.Get("elements") {
		if el.Kind == ast.KindSpreadElement {
			return nil, fail("static eval failed: spread syntax is not supported")
		}
		v, err := eval(el, partial)
		if err != nil {
			if partial {
				result = append(result, nil)
				continue
			}
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func evalObject(node *ast.Node, partial bool) (Value, error) {
	result := map[string]any{}
	for _, prop := range node.Get("properties") {
		if b, ok := prop.Attr("method").(bool); ok && b {
			return nil, fail("static eval failed: ObjectExpressions with methods not supported")
		}
		key := prop.GetOne("key")
		value := prop.GetOne("value")
		if key == nil || value == nil {
			continue
		}
		var keyStr string
		switch key.Kind {
		case ast.KindIdentifier:
			keyStr = key.Name()
		case ast.KindLiteral:
			keyStr = jsToString(key.Attr("value"))
		default:
			continue
		}
		v, err := eval(value, partial)
		if err != nil {
			if partial {
				result[keyStr] = nil
				continue
			}
			return nil, err
		}
		result[keyStr] = v
	}
	return result, nil
}

func evalUnary(node *ast.Node, partial bool) (Value, error) {
	op, _ := node.Attr("operator").(string)
	arg := node.GetOne("argument")
	if op == "delete" {
		return true, nil
	}
	if op == "void" {
		return nil, fail("static eval failed: 'void' expression evaluates to undefined, not null")
	}
	if op == "typeof" {
		v, err := eval(arg, partial)
		if err != nil {
			return nil, err
		}
		return jsTypeof(v), nil
	}
	v, err := eval(arg, partial)
	if err != nil {
		return nil, err
	}
	switch op {
	case "+":
		return jsToNumber(v), nil
	case "-":
		return -jsToNumber(v), nil
	case "~":
		return float64(^int64(jsToNumber(v))), nil
	case "!":
		return !jsToBoolean(v), nil
	default:
		return nil, fail("static eval failed: unsupported unary operator %q", op)
	}
}

func evalLogical(node *ast.Node, partial bool) (Value, error) {
	op, _ := node.Attr("operator").(string)
	left := node.LHS()
	right := node.RHS()
	if left == nil || right == nil {
		return nil, fail("static eval failed: LogicalExpression missing operand")
	}
	lv, err := eval(left, partial)
	if err != nil {
		return nil, err
	}
	switch op {
	case "&&":
		if !jsToBoolean(lv) {
			return lv, nil
		}
		return eval(right, partial)
	case "||":
		if jsToBoolean(lv) {
			return lv, nil
		}
		return eval(right, partial)
	case "??":
		if lv != nil {
			return lv, nil
		}
		return eval(right, partial)
	default:
		return nil, fail("static eval failed: unsupported logical operator %q", op)
	}
}

// evalConditional implements §4.B's lazy rule: "evaluates test; if both
// branches evaluate to the same value, returns it even when the test cannot
// [be evaluated]".
func evalConditional(node *ast.Node, partial bool) (Value, error) {
	test := node.GetOne("test")
	consequent := node.GetOne("consequent")
	alternate := node.GetOne("alternate")
	if test == nil || consequent == nil || alternate == nil {
		return nil, fail("static eval failed: malformed ConditionalExpression")
	}
	testVal, testErr := eval(test, partial)
	if testErr == nil {
		if jsToBoolean(testVal) {
			return eval(consequent, partial)
		}
		return eval(alternate, partial)
	}
	cv, cerr := eval(consequent, partial)
	av, aerr := eval(alternate, partial)
	if cerr == nil && aerr == nil && jsEquals(cv, av) {
		return cv, nil
	}
	return nil, fail("static eval failed: ConditionalExpression test is not statically evaluable")
}

func evalIdentifier(node *ast.Node, partial bool) (Value, error) {
	decl := ResolveIdentifier(node)
	if decl == nil {
		return nil, fail("static eval failed: identifier %q does not resolve", node.Name())
	}
	declarator := declaratorOf(decl)
	if declarator == nil || declarator.Kind != ast.KindVariableDeclarator {
		return nil, fail("static eval failed: identifier %q is not const-declared", node.Name())
	}
	decl2 := declarator.Parent
	if decl2 == nil || decl2.Kind != ast.KindVariableDeclaration {
		return nil, fail("static eval failed: identifier %q has no enclosing declaration", node.Name())
	}
	if kind, _ := decl2.Attr("kind").(string); kind != "const" {
		return nil, fail("static eval failed: identifier %q resolution honors const only", node.Name())
	}
	init := declarator.GetOne("init")
	if init == nil {
		return nil, fail("static eval failed: const %q has no initializer", node.Name())
	}
	return eval(init, partial)
}

// declaratorOf walks up from an Identifier used as a declarator's id to the
// VariableDeclarator itself.
func declaratorOf(id *ast.Node) *ast.Node {
	if id.Parent != nil && id.Parent.Kind == ast.KindVariableDeclarator && id.Role == "id" {
		return id.Parent
	}
	return nil
}

func evalMember(node *ast.Node, partial bool) (Value, error) {
	obj := node.GetOne("object")
	prop := node.GetOne("property")
	if obj == nil || prop == nil {
		return nil, fail("static eval failed: malformed MemberExpression")
	}
	objVal, err := eval(obj, partial)
	if err != nil {
		return nil, err
	}
	computed, _ := node.Attr("computed").(bool)

	switch v := objVal.(type) {
	case []any:
		if !computed && prop.Kind == ast.KindIdentifier && prop.Name() == "length" {
			return float64(len(v)), nil
		}
		idxVal, err := eval(prop, partial)
		if err != nil {
			return nil, err
		}
		idx := int(jsToNumber(idxVal))
		if idx < 0 || idx >= len(v) {
			return nil, nil
		}
		return v[idx], nil
	case map[string]any:
		var key string
		if !computed && prop.Kind == ast.KindIdentifier {
			key = prop.Name()
		} else {
			kv, err := eval(prop, partial)
			if err != nil {
				return nil, err
			}
			key = jsToString(kv)
		}
		val, ok := v[key]
		if !ok {
			return nil, nil
		}
		return val, nil
	default:
		return nil, fail("static eval failed: cannot index into %T", objVal)
	}
}

// evalCall handles two cases per §4.B: calls to declared, single-return
// user functions with resolvable constant bindings, and calls to a fixed
// catalog of built-ins (see staticeval_builtins.go).
func evalCall(node *ast.Node, partial bool) (Value, error) {
	callee := node.GetOne("callee")
	args := node.Get("arguments")
	if callee == nil {
		return nil, fail("static eval failed: CallExpression has no callee")
	}

	if callee.Kind == ast.KindMemberExpression {
		if v, err, handled := evalBuiltinMethodCall(callee, args, partial); handled {
			return v, err
		}
	}
	if callee.Kind == ast.KindIdentifier {
		if v, err, handled := evalBuiltinFunctionCall(callee.Name(), args, partial); handled {
			return v, err
		}
		return evalUserFunctionCall(callee, args, partial)
	}
	return nil, fail("static eval failed: unsupported call callee kind %s", callee.Kind)
}

// evalUserFunctionCall evaluates a call to a function declared with a
// single return statement whose argument resolves to a constant once
// parameters are substituted for the supplied constant arguments.
func evalUserFunctionCall(callee *ast.Node, args []*ast.Node, partial bool) (Value, error) {
	fn := ResolveFunc(callee)
	if fn == nil {
		return nil, fail("static eval failed: callee does not resolve to a function")
	}
	body := fn.Body()
	if body == nil || body.Kind != ast.KindBlockStatement {
		return nil, fail("static eval failed: function has no block body")
	}
	stmts := body.Get("body")
	var ret *ast.Node
	for _, s := range stmts {
		if s.Kind == ast.KindReturnStatement {
			if ret != nil {
				return nil, fail("static eval failed: function is not single-return")
			}
			ret = s
		}
	}
	if ret == nil {
		return nil, fail("static eval failed: function has no return statement")
	}
	argExpr := ret.GetOne("argument")
	if argExpr == nil {
		return nil, nil
	}
	// Bind constant arguments into a synthetic lookup by name: since our
	// identifier resolver only honors `const`, and parameters are not
	// const declarations, we special-case Identifier leaves that name a
	// parameter and substitute the corresponding argument's static value.
	params := fn.Params()
	bindings := map[string]Value{}
	for i, p := range params {
		if p.Kind != ast.KindIdentifier {
			continue
		}
		if i >= len(args) {
			return nil, fail("static eval failed: missing argument for parameter %q", p.Name())
		}
		v, err := eval(args[i], partial)
		if err != nil {
			return nil, err
		}
		bindings[p.Name()] = v
	}
	return evalWithBindings(argExpr, partial, bindings)
}

// evalWithBindings is eval but Identifier leaves that name a binding
// resolve to the bound value instead of going through ResolveIdentifier.
func evalWithBindings(node *ast.Node, partial bool, bindings map[string]Value) (Value, error) {
	if node.Kind == ast.KindIdentifier {
		if v, ok := bindings[node.Name()]; ok {
			return v, nil
		}
	}
	// Fall back to ordinary eval for everything else; nested scopes that
	// shadow a parameter name are not modeled (acceptable approximation for
	// the bounded, pure-interpreter scope of §1).
	if len(bindings) == 0 {
		return eval(node, partial)
	}
	return evalSubst(node, partial, bindings)
}

// evalSubst mirrors eval's dispatch but threads bindings through recursive
// calls so parameter substitution survives nested expressions.
func evalSubst(node *ast.Node, partial bool, bindings map[string]Value) (Value, error) {
	switch node.Kind {
	case ast.KindIdentifier:
		if v, ok := bindings[node.Name()]; ok {
			return v, nil
		}
		return evalIdentifier(node, partial)
	case ast.KindBinaryExpression:
		left, right := node.LHS(), node.RHS()
		if left == nil || right == nil {
			return nil, fail("static eval failed: BinaryExpression missing operand")
		}
		lv, err := evalSubst(left, partial, bindings)
		if err != nil {
			return nil, err
		}
		rv, err := evalSubst(right, partial, bindings)
		if err != nil {
			return nil, err
		}
		op, _ := node.Attr("operator").(string)
		return applyBinaryOp(op, lv, rv)
	case ast.KindUnaryExpression:
		op, _ := node.Attr("operator").(string)
		v, err := evalSubst(node.GetOne("argument"), partial, bindings)
		if err != nil {
			return nil, err
		}
		switch op {
		case "+":
			return jsToNumber(v), nil
		case "-":
			return -jsToNumber(v), nil
		case "!":
			return !jsToBoolean(v), nil
		default:
			return nil, fail("static eval failed: unsupported unary operator %q under substitution", op)
		}
	default:
		return eval(node, partial)
	}
}

// jsTypeof approximates JavaScript's typeof operator over our Value domain.
func jsTypeof(v Value) string {
	switch v.(type) {
	case nil:
		return "object" // typeof null === "object" in real JS
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any, map[string]any:
		return "object"
	case *ast.Node:
		return "function"
	default:
		return "undefined"
	}
}

func jsToBoolean(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true // arrays/objects/functions are always truthy
	}
}

// jsToNumber implements JavaScript's ToNumber coercion for the subset of
// types our evaluator produces.
func jsToNumber(v Value) float64 {
	switch x := v.(type) {
	case nil:
		return 0 // §4.B/§8: "null as 0 in numeric addition"
	case float64:
		return x
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case []any:
		if len(x) == 0 {
			return 0
		}
		if len(x) == 1 {
			return jsToNumber(x[0])
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}

// jsToString implements JavaScript's ToString coercion, including array
// comma-joining and the "[object Object]" fallback for plain objects
// (§4.B/§8.7).
func jsToString(v Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		return formatJSNumber(x)
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			if el == nil {
				parts[i] = ""
			} else {
				parts[i] = jsToString(el)
			}
		}
		return strings.Join(parts, ",")
	case map[string]any:
		return "[object Object]"
	case *ast.Node:
		return "function() { [native code] }"
	default:
		return fmt.Sprintf("%v", x)
	}
}

func formatJSNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// jsEquals is used only by evalConditional's "both branches agree" rule; it
// compares two Values for JS strict-equality-ish sameness over our domain.
func jsEquals(a, b Value) bool {
	return fmt.Sprintf("%T:%v", a, a) == fmt.Sprintf("%T:%v", b, b)
}
