// Package driver implements the §4.G "per extension" orchestration and the
// §5 worker-pool batch mode: parse manifest + scripts, build each side's
// PDG, run the vulnerability rules, aggregate into a report.Document.
package driver

import (
	"context"
	"time"

	"github.com/k-gruenberg/doublex-go/ast"
	"github.com/k-gruenberg/doublex-go/config"
	"github.com/k-gruenberg/doublex-go/dataflow"
	"github.com/k-gruenberg/doublex-go/errs"
	"github.com/k-gruenberg/doublex-go/manifest"
	"github.com/k-gruenberg/doublex-go/report"
	"github.com/k-gruenberg/doublex-go/rules"
)

// Extension is the set of file paths a single-extension analysis run needs
// (§6 "single-extension mode: takes paths to cs, bp, manifest").
type Extension struct {
	Path         string
	ManifestPath string
	BPPaths      []string // background scripts, concatenated into one logical unit
	CSPaths      []string // content scripts, concatenated into one logical unit
}

// AnalyzeExtension runs the full §4.G pipeline for one extension and
// returns its finding document. It never returns an error for a crashed
// script — crashes are recorded in doc.Crashes and analysis of the other
// side continues, per §7's ParseError/AbortDeadlineExceeded policy.
func AnalyzeExtension(ctx context.Context, ext Extension, catalog *rules.Catalog, opts config.Options) *report.Document {
	doc := report.NewDocument(ext.Path)

	manifestSrc, err := readAll(ext.ManifestPath)
	if err == nil {
		if m, merr := manifest.Parse(manifestSrc); merr == nil {
			doc.ContentScriptInjectedInto = m.InjectedEverywhere()
		}
	}

	// Each side (script) gets its own wall-clock budget.
	analyzeSide(doc, "bp", ext.BPPaths, catalog, opts, newDeadline(opts.Timeout), bpFindings)
	analyzeSide(doc, "cs", ext.CSPaths, catalog, opts, newDeadline(opts.Timeout), csFindings)

	return doc
}

type sideFindingsFunc func(root *ast.Node, catalog *rules.Catalog, opts config.Options) report.SideReport

func analyzeSide(doc *report.Document, side string, paths []string, catalog *rules.Catalog, opts config.Options, dl deadline, findingsFn sideFindingsFunc) {
	start := time.Now()
	root, lines, crashed, crashMsg := parseAndConcatenate(side, paths)
	if crashed {
		doc.AddCrash(side, string(errs.KindParse), crashMsg)
		return
	}

	if err := dl.check(); err != nil {
		doc.AddCrash(side, string(errs.KindAbortDeadline), err.Error())
		return
	}

	dataflow.BuildBasicEdges(root)
	dataflow.ApplyStdlibRules(root)
	dataflow.PruneUnreachableEdges(root)

	if err := dl.check(); err != nil {
		doc.AddCrash(side, string(errs.KindAbortDeadline), err.Error())
		return
	}

	sideReport := findingsFn(root, catalog, opts)
	switch side {
	case "bp":
		doc.BP = sideReport
	case "cs":
		doc.CS = sideReport
	}

	doc.CodeStats[side] = codeStats(root, lines)
	doc.Benchmarks[side] = report.Benchmarks{TotalSeconds: time.Since(start).Seconds()}
}

func bpFindings(root *ast.Node, catalog *rules.Catalog, _ config.Options) report.SideReport {
	return report.SideReport{
		ExfiltrationDangers:          report.DangersFromFindings(rules.BackgroundExfiltration(root, catalog)),
		InfiltrationDangers:          report.DangersFromFindings(rules.BackgroundInfiltrationUXSS(root, catalog)),
		ExtensionStorageAccesses:     report.StorageAccessDescriptors(rules.ExtensionStorageAccesses(root, catalog)),
		ViolationsWithoutSensitiveAPI: report.DangersFromFindings(rules.BackgroundPrivilegeViolations(root, catalog)),
	}
}

func csFindings(root *ast.Node, catalog *rules.Catalog, _ config.Options) report.SideReport {
	return report.SideReport{
		ExfiltrationDangers:      report.DangersFromFindings(rules.ContentScriptExfiltration(root, catalog)),
		InfiltrationDangers:      report.DangersFromFindings(rules.ContentScriptInfiltrationUXSS(root, catalog)),
		ExtensionStorageAccesses: report.StorageAccessDescriptors(rules.ExtensionStorageAccesses(root, catalog)),
	}
}
