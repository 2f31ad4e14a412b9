package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/config"
	"github.com/k-gruenberg/doublex-go/rules"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestAnalyzeExtensionNoCrash(t *testing.T) {
	ast.ResetIDCounter()
	dir := t.TempDir()
	manifestPath := writeFile(t, dir, "manifest.json", `{
		"manifest_version": 3,
		"content_scripts": [{"matches": ["<all_urls>"], "js": ["content.js"]}],
		"background": {"service_worker": "background.js"}
	}`)
	bgPath := writeFile(t, dir, "background.js", `
		chrome.runtime.onMessage.addListener(function(msg, sender, sendResponse) {
			console.log(msg);
		});
	`)
	csPath := writeFile(t, dir, "content.js", `
		var x = 1;
	`)

	ext := Extension{Path: dir, ManifestPath: manifestPath, BPPaths: []string{bgPath}, CSPaths: []string{csPath}}
	catalog := &rules.Catalog{}
	opts := config.Options{Timeout: 5 * time.Second}

	doc := AnalyzeExtension(context.Background(), ext, catalog, opts)
	assert.Empty(t, doc.Crashes)
	assert.True(t, doc.ContentScriptInjectedInto)
	assert.Contains(t, doc.CodeStats, "bp")
	assert.Contains(t, doc.CodeStats, "cs")
}

func TestAnalyzeExtensionCrashesOnSyntaxError(t *testing.T) {
	ast.ResetIDCounter()
	dir := t.TempDir()
	manifestPath := writeFile(t, dir, "manifest.json", `{"manifest_version": 3, "background": {"service_worker": "background.js"}}`)
	bgPath := writeFile(t, dir, "background.js", `function ( { ] *&^%`)

	ext := Extension{Path: dir, ManifestPath: manifestPath, BPPaths: []string{bgPath}}
	catalog := &rules.Catalog{}
	opts := config.Options{Timeout: 5 * time.Second}

	doc := AnalyzeExtension(context.Background(), ext, catalog, opts)
	assert.Len(t, doc.Crashes, 1)
	assert.Equal(t, "bp", doc.Crashes[0].Side)
}

func TestParseAndConcatenateMissingFile(t *testing.T) {
	_, _, crashed, msg := parseAndConcatenate("bp", []string{"/nonexistent/file.js"})
	assert.True(t, crashed)
	assert.NotEmpty(t, msg)
}

func TestDeadlineCheck(t *testing.T) {
	dl := newDeadline(1 * time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	assert.Error(t, dl.check())
}

func TestDeadlineNotYetExpired(t *testing.T) {
	dl := newDeadline(1 * time.Minute)
	assert.NoError(t, dl.check())
}
