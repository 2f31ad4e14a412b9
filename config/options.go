// Package config holds the CLI-populated Options struct (§6) and the
// validation that raises ConfigError at parse time rather than failing
// deep inside an analysis run.
package config

import (
	"time"

	"github.com/k-gruenberg/doublex-go/errs"
)

// Options is the full configuration surface of §6's table.
type Options struct {
	ExtensionPath   string        // single-extension mode target
	BatchDir        string        // batch mode target directory
	CatalogPath     string        // YAML vulnerability-catalog path
	OutputPath      string        // JSON finding document destination; "" means stdout
	SARIFPath       string        // optional SARIF export destination
	Timeout         time.Duration // per-script wall-clock abort budget
	Parallelism     int           // batch-mode worker count
	Verbose         bool
	Debug           bool
	NoBanner        bool
	DisableMetrics  bool
	FirstMatchOnly  bool
	RequireReachable bool
}

// DefaultTimeout matches the 600s wall-clock budget of §1.
const DefaultTimeout = 600 * time.Second

// Validate raises a ConfigError for any combination that cannot be acted on.
func (o *Options) Validate() error {
	if o.ExtensionPath == "" && o.BatchDir == "" {
		return errs.New(errs.KindConfig, "one of scan --manifest or batch --dir is required")
	}
	if o.ExtensionPath != "" && o.BatchDir != "" {
		return errs.New(errs.KindConfig, "scan --manifest and batch --dir are mutually exclusive")
	}
	if o.Timeout <= 0 {
		return errs.New(errs.KindConfig, "--timeout must be positive, got %s", o.Timeout)
	}
	if o.Parallelism < 0 {
		return errs.New(errs.KindConfig, "--parallelism must not be negative, got %d", o.Parallelism)
	}
	if o.CatalogPath == "" {
		return errs.New(errs.KindConfig, "--catalog is required")
	}
	return nil
}

// EffectiveParallelism returns Parallelism, or 1 when unset (single
// extension mode never needs more).
func (o *Options) EffectiveParallelism() int {
	if o.Parallelism <= 0 {
		return 1
	}
	return o.Parallelism
}
