package driver

import (
	"time"

	"github.com/k-gruenberg/doublex-go/errs"
)

// deadline polls a wall-clock budget at the top-level loops of an analysis
// (graph construction, rule iteration, flow enumeration).
type deadline struct {
	at      time.Time
	budget  time.Duration
	started time.Time
}

func newDeadline(timeout time.Duration) deadline {
	now := time.Now()
	return deadline{at: now.Add(timeout), budget: timeout, started: now}
}

// check raises AbortDeadlineExceeded once the budget has elapsed.
func (d deadline) check() error {
	if time.Now().Before(d.at) {
		return nil
	}
	elapsed := time.Since(d.started).Round(time.Millisecond)
	budget := d.budget.Round(time.Millisecond)
	return errs.New(errs.KindAbortDeadline, "aborted after %s (budget %s)", elapsed, budget)
}
