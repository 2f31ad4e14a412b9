package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFormatsMessage(t *testing.T) {
	e := New(KindParse, "unexpected token %q at line %d", "}", 12)
	assert.Equal(t, `ParseError: unexpected token "}" at line 12`, e.Error())
}

func TestWrapIncludesCause(t *testing.T) {
	cause := errors.New("file not found")
	e := Wrap(KindLookup, cause, "resolving %s", "x")
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "file not found")
}

func TestIsMatchesByKindOnly(t *testing.T) {
	e := Wrap(KindRHS, errors.New("boom"), "assigning")
	assert.True(t, errors.Is(e, Sentinel(KindRHS)))
	assert.False(t, errors.Is(e, Sentinel(KindLHS)))
}

func TestIsKindHelper(t *testing.T) {
	e := New(KindAbortDeadline, "budget exhausted")
	assert.True(t, IsKind(e, KindAbortDeadline))
	assert.False(t, IsKind(e, KindConfig))
	assert.False(t, IsKind(errors.New("plain"), KindConfig))
}
