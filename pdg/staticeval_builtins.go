package pdg

import (
	"encoding/base64"
	"math"
	"strconv"
	"strings"

	"github.com/k-gruenberg/doublex-go/ast"
)

// evalBuiltinFunctionCall evaluates calls to the fixed catalog of global
// built-ins named in §4.B: isFinite, isNaN, parseFloat, parseInt, btoa,
// atob. The bool return reports whether name was recognized at all (so the
// caller can fall through to user-function resolution otherwise).
func evalBuiltinFunctionCall(name string, args []*ast.Node, partial bool) (Value, error, bool) {
	switch name {
	case "isFinite":
		v, err := argOrUndefined(args, 0, partial)
		if err != nil {
			return nil, err, true
		}
		n := jsToNumber(v)
		return !math.IsNaN(n) && !math.IsInf(n, 0), nil, true

	case "isNaN":
		v, err := argOrUndefined(args, 0, partial)
		if err != nil {
			return nil, err, true
		}
		return math.IsNaN(jsToNumber(v)), nil, true

	case "parseFloat":
		v, err := argOrUndefined(args, 0, partial)
		if err != nil {
			return nil, err, true
		}
		return jsParseFloat(jsToString(v)), nil, true

	case "parseInt":
		return jsParseIntCall(args, partial)

	case "btoa":
		if len(args) == 0 {
			return nil, fail("static eval failed: btoa requires at least 1 argument"), true
		}
		v, err := eval(args[0], partial)
		if err != nil {
			return nil, err, true
		}
		s := jsToString(v)
		for _, r := range s {
			if r > 0xFF {
				return nil, fail("static eval failed: btoa argument contains non-ASCII/Latin1 characters"), true
			}
		}
		return base64.StdEncoding.EncodeToString([]byte(s)), nil, true

	case "atob":
		if len(args) == 0 {
			return nil, fail("static eval failed: atob requires at least 1 argument"), true
		}
		v, err := eval(args[0], partial)
		if err != nil {
			return nil, err, true
		}
		decoded, decErr := base64.StdEncoding.DecodeString(jsToString(v))
		if decErr != nil {
			return nil, fail("static eval failed: atob argument is not valid base64"), true
		}
		return string(decoded), nil, true

	default:
		return nil, nil, false
	}
}

func argOrUndefined(args []*ast.Node, i int, partial bool) (Value, error) {
	if i >= len(args) {
		return math.NaN(), nil // absent arguments coerce like `undefined` for our numeric builtins
	}
	return eval(args[i], partial)
}

// jsParseFloat parses the longest valid leading float-literal prefix of s
// after trimming leading whitespace, JS style; returns NaN on no match.
func jsParseFloat(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	i := 0
	n := len(s)
	if i < n && (s[i] == '+' || s[i] == '-') {
		i++
	}
	start := i
	for i < n && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i < n && s[i] == '.' {
		i++
		for i < n && s[i] >= '0' && s[i] <= '9' {
			i++
		}
	}
	if i == start || (i == start+1 && s[start] == '.') {
		return math.NaN()
	}
	if i < n && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < n && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < n && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// jsParseIntCall implements parseInt's documented quirks (§4.B, confirmed
// against the original implementation's test suite):
//   - parseInt() with no args is NaN
//   - a non-zero radix outside [2,36] is always NaN
//   - a `null` string argument is coerced to the literal text "null"
//   - JavaScript's numeric separators ("123_456") are NOT understood, so the
//     string is truncated at the first underscore before parsing
//   - a string that doesn't parse has its last character stripped,
//     repeatedly, until a prefix parses or nothing is left (NaN)
func jsParseIntCall(args []*ast.Node, partial bool) (Value, error, bool) {
	if len(args) == 0 {
		return math.NaN(), nil, true
	}
	strArgVal, err := eval(args[0], partial)
	if err != nil {
		return nil, err, true
	}
	radix := 0
	if len(args) >= 2 {
		if strArgVal == nil {
			strArgVal = "null"
		}
		radixVal, err := eval(args[1], partial)
		if err != nil {
			return nil, err, true
		}
		radix = int(jsToNumber(radixVal))
		if radix != 0 && (radix < 2 || radix > 36) {
			return math.NaN(), nil, true
		}
	}
	s := jsToString(strArgVal)
	if idx := strings.IndexByte(s, '_'); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	neg := false
	rest := s
	if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}
	effectiveRadix := radix
	if effectiveRadix == 0 || effectiveRadix == 16 {
		lower := strings.ToLower(rest)
		if strings.HasPrefix(lower, "0x") {
			rest = rest[2:]
			effectiveRadix = 16
		} else if effectiveRadix == 0 {
			effectiveRadix = 10
		}
	}

	for i := 0; i <= len(rest); i++ {
		candidate := rest[:len(rest)-i]
		if candidate == "" {
			continue
		}
		if n, err := strconv.ParseInt(candidate, effectiveRadix, 64); err == nil {
			if neg {
				n = -n
			}
			return float64(n), nil, true
		}
	}
	return math.NaN(), nil, true
}

// evalBuiltinMethodCall evaluates calls whose callee is a MemberExpression
// recognized as a built-in static method: currently
// Object.defineProperty(obj, key, descriptor), which §4.B says "returns the
// augmented object, partial mode tolerates unevaluable targets".
func evalBuiltinMethodCall(callee *ast.Node, args []*ast.Node, partial bool) (Value, error, bool) {
	obj := callee.GetOne("object")
	prop := callee.GetOne("property")
	if obj == nil || prop == nil || obj.Kind != ast.KindIdentifier || obj.Name() != "Object" {
		return nil, nil, false
	}
	if prop.Name() != "defineProperty" {
		return nil, nil, false
	}
	if len(args) < 3 {
		return nil, fail("static eval failed: Object.defineProperty requires 3 arguments"), true
	}
	targetVal, err := eval(args[0], true)
	target, ok := targetVal.(map[string]any)
	if err != nil || !ok {
		if !partial {
			return nil, fail("static eval failed: Object.defineProperty target is not a statically-known object"), true
		}
		target = map[string]any{}
	} else {
		// avoid mutating a shared map
		clone := map[string]any{}
		for k, v := range target {
			clone[k] = v
		}
		target = clone
	}
	keyVal, err := eval(args[1], partial)
	if err != nil {
		return nil, err, true
	}
	descVal, err := eval(args[2], partial)
	if err != nil {
		return nil, err, true
	}
	desc, _ := descVal.(map[string]any)
	target[jsToString(keyVal)] = desc["value"]
	return target, nil, true
}
