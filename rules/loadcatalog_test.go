package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadCatalog(t *testing.T) {
	yaml := `
sensitive_sources:
  - name: cookies
    prefixes: ["chrome.cookies.getAll"]
dangerous_sinks:
  - name: eval
    prefixes: ["eval"]
sanitizers:
  - name: dompurify
    prefixes: ["DOMPurify.sanitize"]
auth_checks:
  - name: sender-check
    prefixes: ["isTrustedSender"]
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	assert.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	catalog, err := LoadCatalog(path)
	assert.NoError(t, err)
	assert.Len(t, catalog.SensitiveSources, 1)
	assert.Equal(t, "cookies", catalog.SensitiveSources[0].Name)
	assert.Equal(t, []string{"chrome.cookies.getAll"}, catalog.SensitiveSources[0].Prefixes)
}

func TestLoadCatalogMissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
