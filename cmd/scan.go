package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/k-gruenberg/doublex-go/analytics"
	"github.com/k-gruenberg/doublex-go/config"
	"github.com/k-gruenberg/doublex-go/driver"
	"github.com/k-gruenberg/doublex-go/report"
	"github.com/k-gruenberg/doublex-go/rules"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze a single extension's content script and background page",
	Long: `Analyze a single unpacked extension.

Examples:
  doublex scan --manifest ext/manifest.json --bp ext/background.js --cs ext/content.js --catalog catalogs/default.yaml
  doublex scan --manifest ext/manifest.json --bp ext/bg1.js --bp ext/bg2.js --cs ext/content.js --catalog catalogs/default.yaml --output findings.json --sarif findings.sarif`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		manifestPath, _ := cmd.Flags().GetString("manifest")
		bpPaths, _ := cmd.Flags().GetStringArray("bp")
		csPaths, _ := cmd.Flags().GetStringArray("cs")
		catalogPath, _ := cmd.Flags().GetString("catalog")
		outputPath, _ := cmd.Flags().GetString("output")
		sarifPath, _ := cmd.Flags().GetString("sarif")
		timeoutSecs, _ := cmd.Flags().GetInt("timeout")
		requireReachable, _ := cmd.Flags().GetBool("require-reachable")
		firstMatchOnly, _ := cmd.Flags().GetBool("first-match-only")

		opts := config.Options{
			ExtensionPath:    manifestPath,
			CatalogPath:      catalogPath,
			OutputPath:       outputPath,
			SARIFPath:        sarifPath,
			Timeout:          time.Duration(timeoutSecs) * time.Second,
			RequireReachable: requireReachable,
			FirstMatchOnly:   firstMatchOnly,
		}
		if opts.Timeout <= 0 {
			opts.Timeout = config.DefaultTimeout
		}
		if err := opts.Validate(); err != nil {
			return err
		}

		logger := report.NewLoggerWithWriter(loggerVerbosity(cmd), os.Stderr)

		catalog, err := rules.LoadCatalog(catalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		analytics.ReportEventWithProperties(analytics.ScanStarted, map[string]interface{}{
			"bp_files": len(bpPaths),
			"cs_files": len(csPaths),
		})

		ext := driver.Extension{
			Path:         manifestPath,
			ManifestPath: manifestPath,
			BPPaths:      bpPaths,
			CSPaths:      csPaths,
		}

		start := time.Now()
		doc := driver.AnalyzeExtension(context.Background(), ext, catalog, opts)
		logger.Progress("analyzed %s in %s", manifestPath, time.Since(start).Round(time.Millisecond))

		if len(doc.Crashes) > 0 {
			analytics.ReportEvent(analytics.ExtensionCrashed)
		}
		if totalDangers(doc) > 0 {
			analytics.ReportEvent(analytics.DangerFound)
		}
		analytics.ReportEvent(analytics.ScanFinished)

		return writeDocument(doc, outputPath, sarifPath)
	},
}

func totalDangers(doc *report.Document) int {
	return len(doc.BP.ExfiltrationDangers) + len(doc.BP.InfiltrationDangers) + len(doc.BP.ViolationsWithoutSensitiveAPI) +
		len(doc.CS.ExfiltrationDangers) + len(doc.CS.InfiltrationDangers) + len(doc.CS.ViolationsWithoutSensitiveAPI)
}

func writeDocument(doc *report.Document, outputPath, sarifPath string) error {
	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := report.WriteJSON(out, doc); err != nil {
		return fmt.Errorf("writing finding document: %w", err)
	}

	if sarifPath != "" {
		sf, err := os.Create(sarifPath)
		if err != nil {
			return fmt.Errorf("creating sarif file: %w", err)
		}
		defer sf.Close()
		if err := report.WriteSARIF(sf, doc); err != nil {
			return fmt.Errorf("writing sarif: %w", err)
		}
	}
	return nil
}

func init() {
	scanCmd.Flags().String("manifest", "", "path to manifest.json")
	scanCmd.Flags().StringArray("bp", nil, "background script file (repeatable)")
	scanCmd.Flags().StringArray("cs", nil, "content script file (repeatable)")
	scanCmd.Flags().String("catalog", "", "path to vulnerability catalog YAML")
	scanCmd.Flags().String("output", "", "finding document output path (default stdout)")
	scanCmd.Flags().String("sarif", "", "optional SARIF export path")
	scanCmd.Flags().Int("timeout", 600, "per-script wall-clock budget in seconds")
	scanCmd.Flags().Bool("require-reachable", true, "require statically reachable rendezvous points")
	scanCmd.Flags().Bool("first-match-only", false, "emit only the first matching flow per source/sink pair")
	_ = scanCmd.MarkFlagRequired("manifest")
	_ = scanCmd.MarkFlagRequired("catalog")
	rootCmd.AddCommand(scanCmd)
}
