package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/k-gruenberg/doublex-go/config"
	"github.com/k-gruenberg/doublex-go/manifest"
	"github.com/k-gruenberg/doublex-go/report"
	"github.com/k-gruenberg/doublex-go/rules"
)

// BatchResult pairs one extension's document with the directory it came
// from, for the batch driver's result channel.
type BatchResult struct {
	Dir string
	Doc *report.Document
}

// RunBatch walks the immediate subdirectories of dir that contain a
// manifest.json, treating each as one packed extension whose background and
// content scripts are the ones that manifest lists, and
// analyzes them with a hand-rolled channel worker pool — the same shape
// as the teacher's file-parsing worker pool, one goroutine per worker, each
// owning its own PDG exclusively (§5 "each worker owns its AST/PDG
// exclusively").
func RunBatch(ctx context.Context, dir string, catalog *rules.Catalog, opts config.Options, logger *report.Logger) []BatchResult {
	extensions := discoverExtensions(dir)
	total := len(extensions)
	if logger != nil {
		logger.Progress("found %s extensions under %s", humanize.Comma(int64(total)), dir)
		logger.StartProgress("analyzing", total)
	}

	numWorkers := opts.EffectiveParallelism()
	extChan := make(chan Extension, total)
	resultChan := make(chan BatchResult, total)

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for ext := range extChan {
				doc := AnalyzeExtension(ctx, ext, catalog, opts)
				resultChan <- BatchResult{Dir: ext.Path, Doc: doc}
				if logger != nil {
					logger.UpdateProgress(1)
				}
			}
		}()
	}

	for _, ext := range extensions {
		extChan <- ext
	}
	close(extChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	start := time.Now()
	results := make([]BatchResult, 0, total)
	for r := range resultChan {
		results = append(results, r)
	}

	if logger != nil {
		logger.FinishProgress()
		logger.Progress("analyzed %s extensions in %s", humanize.Comma(int64(total)), time.Since(start).Round(time.Millisecond))
	}

	return results
}

// discoverExtensions finds every immediate subdirectory of dir that
// contains a manifest.json, and resolves its content/background script
// file lists from that manifest.
func discoverExtensions(dir string) []Extension {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []Extension
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		extDir := filepath.Join(dir, e.Name())
		manifestPath := filepath.Join(extDir, "manifest.json")
		if _, err := os.Stat(manifestPath); err != nil {
			continue
		}
		out = append(out, resolveExtension(extDir, manifestPath))
	}
	return out
}

func resolveExtension(extDir, manifestPath string) Extension {
	ext := Extension{Path: extDir, ManifestPath: manifestPath}
	src, err := readAll(manifestPath)
	if err != nil {
		return ext
	}
	m, err := manifest.Parse(src)
	if err != nil {
		return ext
	}
	for _, f := range m.BackgroundScripts() {
		ext.BPPaths = append(ext.BPPaths, filepath.Join(extDir, f))
	}
	for _, f := range m.ContentScriptFiles() {
		ext.CSPaths = append(ext.CSPaths, filepath.Join(extDir, f))
	}
	return ext
}
