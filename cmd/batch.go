package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/k-gruenberg/doublex-go/analytics"
	"github.com/k-gruenberg/doublex-go/config"
	"github.com/k-gruenberg/doublex-go/driver"
	"github.com/k-gruenberg/doublex-go/report"
	"github.com/k-gruenberg/doublex-go/rules"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Analyze every extension under a directory in parallel",
	Long: `Analyze every immediate subdirectory of a directory that contains a
manifest.json, each treated as one packed extension, using a worker pool.

Example:
  doublex batch --dir extensions/ --catalog catalogs/default.yaml --output-dir findings/`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		catalogPath, _ := cmd.Flags().GetString("catalog")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		parallelism, _ := cmd.Flags().GetInt("parallelism")
		timeoutSecs, _ := cmd.Flags().GetInt("timeout")
		requireReachable, _ := cmd.Flags().GetBool("require-reachable")

		opts := config.Options{
			BatchDir:         dir,
			CatalogPath:      catalogPath,
			Timeout:          time.Duration(timeoutSecs) * time.Second,
			Parallelism:      parallelism,
			RequireReachable: requireReachable,
		}
		if opts.Timeout <= 0 {
			opts.Timeout = config.DefaultTimeout
		}
		if err := opts.Validate(); err != nil {
			return err
		}

		if outputDir != "" {
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
		}

		logger := report.NewLoggerWithWriter(loggerVerbosity(cmd), os.Stderr)

		catalog, err := rules.LoadCatalog(catalogPath)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}

		analytics.ReportEventWithProperties(analytics.ScanStarted, map[string]interface{}{
			"mode":        "batch",
			"parallelism": opts.EffectiveParallelism(),
		})

		results := driver.RunBatch(context.Background(), dir, catalog, opts, logger)

		var crashed, withDangers int
		for _, r := range results {
			if len(r.Doc.Crashes) > 0 {
				crashed++
			}
			if totalDangers(r.Doc) > 0 {
				withDangers++
			}
			if outputDir != "" {
				name := filepath.Base(r.Dir) + ".json"
				if err := writeDocument(r.Doc, filepath.Join(outputDir, name), ""); err != nil {
					logger.Warning("writing %s: %v", r.Dir, err)
				}
			} else {
				if err := report.WriteJSON(os.Stdout, r.Doc); err != nil {
					logger.Warning("writing %s: %v", r.Dir, err)
				}
			}
		}

		if crashed > 0 {
			analytics.ReportEvent(analytics.ExtensionCrashed)
		}
		if withDangers > 0 {
			analytics.ReportEvent(analytics.DangerFound)
		}
		analytics.ReportEvent(analytics.ScanFinished)

		logger.Statistic("%d extensions analyzed, %d with crashes, %d with findings", len(results), crashed, withDangers)
		return nil
	},
}

func init() {
	batchCmd.Flags().String("dir", "", "directory of extensions to analyze")
	batchCmd.Flags().String("catalog", "", "path to vulnerability catalog YAML")
	batchCmd.Flags().String("output-dir", "", "directory to write one finding document per extension (default stdout)")
	batchCmd.Flags().Int("parallelism", 0, "number of worker goroutines (default 1)")
	batchCmd.Flags().Int("timeout", 600, "per-script wall-clock budget in seconds")
	batchCmd.Flags().Bool("require-reachable", true, "require statically reachable rendezvous points")
	_ = batchCmd.MarkFlagRequired("dir")
	_ = batchCmd.MarkFlagRequired("catalog")
	rootCmd.AddCommand(batchCmd)
}
