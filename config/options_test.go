package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/k-gruenberg/doublex-go/errs"
)

func validOptions() Options {
	return Options{
		ExtensionPath: "/ext",
		CatalogPath:   "/catalog.yaml",
		Timeout:       10 * time.Second,
	}
}

func TestValidateOK(t *testing.T) {
	o := validOptions()
	assert.NoError(t, o.Validate())
}

func TestValidateRequiresTarget(t *testing.T) {
	o := validOptions()
	o.ExtensionPath = ""
	err := o.Validate()
	assert.True(t, errs.IsKind(err, errs.KindConfig))
}

func TestValidateRejectsBothTargets(t *testing.T) {
	o := validOptions()
	o.BatchDir = "/batch"
	assert.Error(t, o.Validate())
}

func TestValidateRejectsNonPositiveTimeout(t *testing.T) {
	o := validOptions()
	o.Timeout = 0
	assert.Error(t, o.Validate())
}

func TestValidateRejectsNegativeParallelism(t *testing.T) {
	o := validOptions()
	o.Parallelism = -1
	assert.Error(t, o.Validate())
}

func TestValidateRequiresCatalog(t *testing.T) {
	o := validOptions()
	o.CatalogPath = ""
	assert.Error(t, o.Validate())
}

func TestEffectiveParallelismDefault(t *testing.T) {
	o := validOptions()
	assert.Equal(t, 1, o.EffectiveParallelism())
	o.Parallelism = 4
	assert.Equal(t, 4, o.EffectiveParallelism())
}
