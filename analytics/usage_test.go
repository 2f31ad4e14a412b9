package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportEventNoopWithoutPublicKey(t *testing.T) {
	PublicKey = ""
	Init(false)
	// No PublicKey configured: must not attempt to dial PostHog or panic.
	assert.NotPanics(t, func() {
		ReportEvent(ScanStarted)
		ReportEventWithProperties(DangerFound, map[string]interface{}{"n": 1})
	})
}

func TestReportEventNoopWhenMetricsDisabled(t *testing.T) {
	PublicKey = "phc_test"
	Init(true)
	assert.NotPanics(t, func() {
		ReportEvent(ScanFinished)
	})
	PublicKey = ""
}

func TestSetVersionStored(t *testing.T) {
	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", appVersion)
	appVersion = ""
}
