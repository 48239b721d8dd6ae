package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitAppMetrics(t *testing.T) {
	InitAppMetrics()
	m := Get()
	assert.NotNil(t, m.SitemapRequestsTotal)
	assert.NotNil(t, m.SitemapBuildDurationSeconds)
	assert.NotNil(t, m.SitemapURLs)
	assert.NotNil(t, m.SitemapPageReadErrorsTotal)
	assert.NotNil(t, m.DbQueryDurationSeconds)
	assert.NotNil(t, m.DbQueryErrorsTotal)
	assert.NotNil(t, m.ClinicCacheLookupsTotal)

	InitAppMetrics()
	assert.Same(t, m, Get())
}
