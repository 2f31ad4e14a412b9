package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/report"
)

func TestLoggerVerbosityLevels(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().Bool("debug", false, "")
	c.Flags().Bool("verbose", false, "")

	assert.Equal(t, report.VerbosityNormal, loggerVerbosity(c))

	_ = c.Flags().Set("verbose", "true")
	assert.Equal(t, report.VerbosityVerbose, loggerVerbosity(c))

	_ = c.Flags().Set("debug", "true")
	assert.Equal(t, report.VerbosityDebug, loggerVerbosity(c))
}

func TestTotalDangersSumsAllSides(t *testing.T) {
	doc := &report.Document{}
	doc.BP.ExfiltrationDangers = make([]report.Danger, 2)
	doc.CS.InfiltrationDangers = make([]report.Danger, 1)
	doc.CS.ViolationsWithoutSensitiveAPI = make([]report.Danger, 3)

	assert.Equal(t, 6, totalDangers(doc))
}

func TestTotalDangersZeroForEmptyDocument(t *testing.T) {
	assert.Equal(t, 0, totalDangers(&report.Document{}))
}

func TestWriteDocumentWritesJSONAndSARIF(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "findings.json")
	sarifPath := filepath.Join(dir, "findings.sarif")

	doc := report.NewDocument("/some/ext")
	err := writeDocument(doc, outPath, sarifPath)
	assert.NoError(t, err)

	jsonBytes, err := os.ReadFile(outPath)
	assert.NoError(t, err)
	assert.NotEmpty(t, jsonBytes)

	sarifBytes, err := os.ReadFile(sarifPath)
	assert.NoError(t, err)
	assert.NotEmpty(t, sarifBytes)
}
