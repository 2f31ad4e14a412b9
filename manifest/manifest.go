// Package manifest parses manifest.json (§6) and evaluates the
// renderer-attacker precondition: a content script injected into every
// page. encoding/json is used deliberately here rather than a third-party
// decoder — see DESIGN.md for why.
package manifest

import (
	"encoding/json"
	"strings"
)

// ContentScript is one entry of manifest.json's "content_scripts" array.
type ContentScript struct {
	Matches    []string `json:"matches"`
	JS         []string `json:"js"`
	CSS        []string `json:"css"`
	RunAt      string   `json:"run_at"`
	AllFrames  bool     `json:"all_frames"`
}

// Background is manifest.json's "background" object, covering both the MV2
// (scripts/persistent) and MV3 (service_worker) shapes.
type Background struct {
	Scripts        []string `json:"scripts"`
	ServiceWorker  string   `json:"service_worker"`
	Persistent     *bool    `json:"persistent"`
}

// Manifest is the subset of manifest.json this analysis cares about.
type Manifest struct {
	ManifestVersion int             `json:"manifest_version"`
	Name            string          `json:"name"`
	Version         string          `json:"version"`
	Permissions     []string        `json:"permissions"`
	HostPermissions []string        `json:"host_permissions"`
	ContentScripts  []ContentScript `json:"content_scripts"`
	Background      Background      `json:"background"`
}

// Parse decodes raw manifest.json bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// IsValidVersion reports whether ManifestVersion is one this analysis
// understands (2 or 3).
func (m *Manifest) IsValidVersion() bool {
	return m.ManifestVersion == 2 || m.ManifestVersion == 3
}

// everywherePatterns are the host-pattern family that matches every page a
// browser can navigate to — the renderer-attacker precondition of §1/§6.
var everywherePatterns = map[string]bool{
	"<all_urls>": true,
	"*://*/*":    true,
	"http://*/*": true,
	"https://*/*": true,
}

// InjectedEverywhere reports whether any content script's match patterns
// include a host-pattern from the "injected everywhere" family.
func (m *Manifest) InjectedEverywhere() bool {
	for _, cs := range m.ContentScripts {
		for _, pattern := range cs.Matches {
			if everywherePatterns[strings.TrimSpace(pattern)] {
				return true
			}
		}
	}
	return false
}

// BackgroundScripts returns the combined script file list for both the MV2
// (scripts[]) and MV3 (service_worker) background shapes.
func (m *Manifest) BackgroundScripts() []string {
	if m.Background.ServiceWorker != "" {
		return []string{m.Background.ServiceWorker}
	}
	return m.Background.Scripts
}

// ContentScriptFiles returns every JS file referenced by any content_scripts
// entry, in manifest order.
func (m *Manifest) ContentScriptFiles() []string {
	var out []string
	for _, cs := range m.ContentScripts {
		out = append(out, cs.JS...)
	}
	return out
}
