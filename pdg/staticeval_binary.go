package pdg

import (
	"math"

	"github.com/k-gruenberg/doublex-go/ast"
)

func evalBinary(node *ast.Node, partial bool) (Value, error) {
	op, _ := node.Attr("operator").(string)
	left := node.LHS()
	right := node.RHS()
	if left == nil || right == nil {
		return nil, fail("static eval failed: BinaryExpression missing operand")
	}

	if op == "instanceof" {
		return nil, fail("static eval failed: cannot handle 'instanceof' statically")
	}

	if op == "in" {
		rv, err := eval(right, partial)
		if err != nil {
			return nil, err
		}
		switch r := rv.(type) {
		case map[string]any:
			lv, err := eval(left, partial)
			if err != nil {
				return nil, err
			}
			_, ok := r[jsToString(lv)]
			return ok, nil
		case []any:
			return false, nil
		default:
			return nil, fail("static eval failed: right-hand side of 'in' should be an object")
		}
	}

	lv, err := eval(left, partial)
	if err != nil {
		return nil, err
	}
	rv, err := eval(right, partial)
	if err != nil {
		return nil, err
	}
	return applyBinaryOp(op, lv, rv)
}

// applyBinaryOp implements JavaScript's BinaryExpression semantics for the
// operator set of §4.B, including the '+' coercion rules tested in §8.7:
// null behaves as 0 for numeric addition, array+null stringifies and joins
// ("1,2"+"null"=="1,2null"), and plain objects stringify to
// "[object Object]".
func applyBinaryOp(op string, lv, rv Value) (Value, error) {
	switch op {
	case "+":
		if isStringLike(lv) || isStringLike(rv) {
			return jsToString(lv) + jsToString(rv), nil
		}
		return jsToNumber(lv) + jsToNumber(rv), nil
	case "-":
		return jsToNumber(lv) - jsToNumber(rv), nil
	case "*":
		return jsToNumber(lv) * jsToNumber(rv), nil
	case "/":
		return jsToNumber(lv) / jsToNumber(rv), nil
	case "%":
		return math.Mod(jsToNumber(lv), jsToNumber(rv)), nil
	case "**":
		return math.Pow(jsToNumber(lv), jsToNumber(rv)), nil
	case "|":
		return float64(int64(jsToNumber(lv)) | int64(jsToNumber(rv))), nil
	case "^":
		return float64(int64(jsToNumber(lv)) ^ int64(jsToNumber(rv))), nil
	case "&":
		return float64(int64(jsToNumber(lv)) & int64(jsToNumber(rv))), nil
	case "<<":
		return float64(int32(jsToNumber(lv)) << (uint32(int64(jsToNumber(rv))) & 31)), nil
	case ">>":
		return float64(int32(jsToNumber(lv)) >> (uint32(int64(jsToNumber(rv))) & 31)), nil
	case ">>>":
		return float64(uint32(int64(jsToNumber(lv))) >> (uint32(int64(jsToNumber(rv))) & 31)), nil
	case "==":
		return looseEquals(lv, rv), nil
	case "!=":
		return !looseEquals(lv, rv), nil
	case "===":
		return strictEquals(lv, rv), nil
	case "!==":
		return !strictEquals(lv, rv), nil
	case "<":
		return compare(lv, rv) < 0, nil
	case ">":
		return compare(lv, rv) == 1, nil
	case "<=":
		return compare(lv, rv) <= 0, nil
	case ">=":
		c := compare(lv, rv)
		return c == 0 || c == 1, nil
	default:
		return nil, fail("static eval failed: unsupported binary operator %q", op)
	}
}

// isStringLike reports whether v participates in '+' as a string operand
// under JS's ToPrimitive rules — arrays and plain objects are string-like
// because their default ToPrimitive hint for '+' is string-ish once one
// operand is already non-numeric; here we follow the simpler, observable
// rule used throughout the original implementation: strings, arrays and
// objects all force string concatenation, only numbers/bools/null stay
// numeric unless the other operand forces strings too.
func isStringLike(v Value) bool {
	switch v.(type) {
	case string, []any, map[string]any:
		return true
	default:
		return false
	}
}

func strictEquals(a, b Value) bool {
	switch x := a.(type) {
	case nil:
		return b == nil
	case string:
		y, ok := b.(string)
		return ok && x == y
	case float64:
		y, ok := b.(float64)
		return ok && x == y
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	default:
		return false // reference types are never === unless same identity, which we cannot observe statically
	}
}

func looseEquals(a, b Value) bool {
	if strictEquals(a, b) {
		return true
	}
	an, aIsNum := a.(float64)
	bn, bIsNum := b.(float64)
	if aIsNum && bIsNum {
		return an == bn
	}
	// null == undefined (we only model null) and nothing else loosely
	// equals null in this bounded interpreter.
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return jsToNumber(a) == jsToNumber(b)
}

func compare(a, b Value) int {
	as, aIsStr := a.(string)
	bs, bIsStr := b.(string)
	if aIsStr && bIsStr {
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	}
	an, bn := jsToNumber(a), jsToNumber(b)
	switch {
	case math.IsNaN(an) || math.IsNaN(bn):
		return 2 // neither < nor > nor == holds; caller treats all three comparisons as false
	case an < bn:
		return -1
	case an > bn:
		return 1
	default:
		return 0
	}
}
