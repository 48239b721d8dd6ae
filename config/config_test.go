package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(vals map[string]string) func(string) string {
	return func(k string) string { return vals[k] }
}

func TestResolveBaseURL(t *testing.T) {
	t.Run("SITE_URL wins", func(t *testing.T) {
		got := ResolveBaseURL(envFrom(map[string]string{
			"SITE_URL":             "https://a.example/",
			"NEXT_PUBLIC_SITE_URL": "https://b.example",
		}), "https://c.example")
		assert.Equal(t, "https://a.example", got)
	})

	t.Run("public fallback", func(t *testing.T) {
		got := ResolveBaseURL(envFrom(map[string]string{"NEXT_PUBLIC_SITE_URL": "https://b.example"}), "https://c.example")
		assert.Equal(t, "https://b.example", got)
	})

	t.Run("configured value", func(t *testing.T) {
		got := ResolveBaseURL(envFrom(nil), "https://c.example/")
		assert.Equal(t, "https://c.example", got)
	})

	t.Run("literal default", func(t *testing.T) {
		assert.Equal(t, DefaultBaseURL, ResolveBaseURL(envFrom(nil), ""))
	})
}

func TestInitConfig_Embedded(t *testing.T) {
	t.Setenv("SITE_URL", "")
	t.Setenv("NEXT_PUBLIC_SITE_URL", "")

	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://dermaclinicnearme.com", cfg.Site.BaseURL)
	assert.Equal(t, 1000, cfg.Sitemap.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Sitemap.PageTimeout)
	assert.Equal(t, 30*time.Second, cfg.Sitemap.BuildTimeout)
	assert.Equal(t, 86400, cfg.Sitemap.CacheMaxAge)
	assert.Equal(t, time.Hour, cfg.Clinics.CacheTTL)
	assert.Equal(t, "localhost", cfg.Repositories.Postgres.Host)
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.Sitemap.PageSize = -3
	cfg.applyDefaults()

	assert.Equal(t, DefaultSitemapPageSize, cfg.Sitemap.PageSize)
	assert.Equal(t, DefaultSitemapPageTimeout, cfg.Sitemap.PageTimeout)
	assert.Equal(t, DefaultSitemapBuildTimeout, cfg.Sitemap.BuildTimeout)
	assert.Equal(t, DefaultSitemapCacheMaxAge, cfg.Sitemap.CacheMaxAge)
	assert.Equal(t, DefaultClinicCacheTTL, cfg.Clinics.CacheTTL)
	assert.Equal(t, "8000", cfg.Server.HTTPPort)
}
