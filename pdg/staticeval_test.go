package pdg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/parser"
)

func parseExpr(t *testing.T, src string) *ast.Node {
	t.Helper()
	ast.ResetIDCounter()
	root, err := parser.Parse([]byte(src), "f.js")
	assert.NoError(t, err)
	stmts := root.Get("body")
	assert.NotEmpty(t, stmts)
	last := stmts[len(stmts)-1]
	if last.Kind == ast.KindExpressionStatement {
		return last.GetOne("expression")
	}
	return last
}

func TestEvalLiteral(t *testing.T) {
	v, err := Eval(parseExpr(t, `42;`), false)
	assert.NoError(t, err)
	assert.Equal(t, float64(42), v)
}

func TestEvalBinaryAddition(t *testing.T) {
	v, err := Eval(parseExpr(t, `1 + 2;`), false)
	assert.NoError(t, err)
	assert.Equal(t, float64(3), v)
}

func TestEvalConstIdentifier(t *testing.T) {
	root := func() *ast.Node {
		ast.ResetIDCounter()
		r, err := parser.Parse([]byte(`const x = "hi"; x;`), "f.js")
		assert.NoError(t, err)
		return r
	}()
	stmts := root.Get("body")
	exprStmt := stmts[len(stmts)-1]
	v, err := Eval(exprStmt.GetOne("expression"), false)
	assert.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestEvalLetIdentifierFails(t *testing.T) {
	ast.ResetIDCounter()
	root, err := parser.Parse([]byte(`let x = "hi"; x;`), "f.js")
	assert.NoError(t, err)
	stmts := root.Get("body")
	exprStmt := stmts[len(stmts)-1]
	_, evalErr := Eval(exprStmt.GetOne("expression"), false)
	assert.Error(t, evalErr)
}

func TestEvalConditionalBothBranchesAgree(t *testing.T) {
	v, err := Eval(parseExpr(t, `unknownFlag ? "a" : "a";`), false)
	assert.NoError(t, err)
	assert.Equal(t, "a", v)
}

func TestEvalRegexLiteralFails(t *testing.T) {
	_, err := Eval(parseExpr(t, `/abc/;`), false)
	assert.Error(t, err)
}

func TestTryEvalFallback(t *testing.T) {
	v := TryEval(parseExpr(t, `someUnknownGlobal;`), false, "fallback")
	assert.Equal(t, "fallback", v)
}

func TestJsToNumberCoercions(t *testing.T) {
	assert.Equal(t, float64(0), jsToNumber(nil))
	assert.Equal(t, float64(1), jsToNumber(true))
	assert.Equal(t, float64(5), jsToNumber("5"))
}

func TestJsToStringArrayJoin(t *testing.T) {
	assert.Equal(t, "1,2,3", jsToString([]any{float64(1), float64(2), float64(3)}))
}
