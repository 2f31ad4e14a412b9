package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMV3(t *testing.T) {
	data := []byte(`{
		"manifest_version": 3,
		"name": "test",
		"content_scripts": [{"matches": ["<all_urls>"], "js": ["content.js"]}],
		"background": {"service_worker": "background.js"}
	}`)

	m, err := Parse(data)
	assert.NoError(t, err)
	assert.True(t, m.IsValidVersion())
	assert.True(t, m.InjectedEverywhere())
	assert.Equal(t, []string{"background.js"}, m.BackgroundScripts())
	assert.Equal(t, []string{"content.js"}, m.ContentScriptFiles())
}

func TestParseMV2NotInjectedEverywhere(t *testing.T) {
	data := []byte(`{
		"manifest_version": 2,
		"content_scripts": [{"matches": ["https://example.com/*"], "js": ["content.js"]}],
		"background": {"scripts": ["bg1.js", "bg2.js"], "persistent": false}
	}`)

	m, err := Parse(data)
	assert.NoError(t, err)
	assert.True(t, m.IsValidVersion())
	assert.False(t, m.InjectedEverywhere())
	assert.Equal(t, []string{"bg1.js", "bg2.js"}, m.BackgroundScripts())
}

func TestInvalidVersion(t *testing.T) {
	m := &Manifest{ManifestVersion: 1}
	assert.False(t, m.IsValidVersion())
}

func TestInjectedEverywhereWildcardFamily(t *testing.T) {
	for _, pattern := range []string{"<all_urls>", "*://*/*", "http://*/*", "https://*/*"} {
		m := &Manifest{ContentScripts: []ContentScript{{Matches: []string{pattern}}}}
		assert.True(t, m.InjectedEverywhere(), "pattern %q should count as injected everywhere", pattern)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.Error(t, err)
}
