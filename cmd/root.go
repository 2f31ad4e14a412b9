package cmd

import (
	"os"

	"github.com/k-gruenberg/doublex-go/analytics"
	"github.com/k-gruenberg/doublex-go/report"
	"github.com/spf13/cobra"
)

var (
	verboseFlag bool
	Version     = "0.1.0"
	GitCommit   = "HEAD"
)

var rootCmd = &cobra.Command{
	Use:   "doublex",
	Short: "Renderer-attacker taint analysis for browser extensions",
	Long: `doublex-go finds data flows a compromised renderer process could exploit in a
browser extension's background page and content scripts: sensitive data
leaking out (exfiltration) and attacker-controlled input reaching a DOM
sink (infiltration/UXSS).`,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		disableMetrics, _ := cmd.Flags().GetBool("disable-metrics") //nolint:all
		verboseFlag, _ = cmd.Flags().GetBool("verbose")             //nolint:all
		analytics.LoadEnvFile()
		analytics.Init(disableMetrics)
		analytics.SetVersion(Version)

		if cmd.Name() == "help" || (len(os.Args) == 1 || (len(os.Args) == 2 && (os.Args[1] == "--help" || os.Args[1] == "-h"))) {
			noBanner, _ := cmd.Flags().GetBool("no-banner")
			report.PrintBanner(os.Stderr, Version, noBanner)
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("disable-metrics", false, "Disable metrics collection")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug output")
	rootCmd.PersistentFlags().Bool("no-banner", false, "Disable startup banner")
}

func loggerVerbosity(cmd *cobra.Command) report.VerbosityLevel {
	debug, _ := cmd.Flags().GetBool("debug")
	verbose, _ := cmd.Flags().GetBool("verbose")
	switch {
	case debug:
		return report.VerbosityDebug
	case verbose:
		return report.VerbosityVerbose
	default:
		return report.VerbosityNormal
	}
}
