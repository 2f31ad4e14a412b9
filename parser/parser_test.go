package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
)

func TestParseValidProgram(t *testing.T) {
	src := []byte(`
		function greet(name) {
			var message = "hello " + name;
			return message;
		}
		chrome.runtime.onMessage.addListener(function(request, sender, sendResponse) {
			document.body.innerHTML = request.html;
		});
	`)

	root, err := Parse(src, "content.js")
	assert.NoError(t, err)
	assert.NotNil(t, root)
	assert.Equal(t, ast.KindProgram, root.Kind)
	assert.NotEqual(t, ast.KindParseError, root.Kind)
	assert.NotEmpty(t, root.Get("body"))
}

func TestParseSyntaxError(t *testing.T) {
	root, err := Parse([]byte(`function ( { ] *&^%`), "broken.js")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindParseError, root.Kind)
	assert.NotEmpty(t, root.Attr("message"))
}

func TestParseEmptySource(t *testing.T) {
	root, err := Parse([]byte(``), "empty.js")
	assert.NoError(t, err)
	assert.Equal(t, ast.KindProgram, root.Kind)
	assert.Empty(t, root.Get("body"))
}
