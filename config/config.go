package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

const (
	DefaultBaseURL             = "https://dermaclinicnearme.com"
	DefaultSitemapPageSize     = 1000
	DefaultSitemapPageTimeout  = 5 * time.Second
	DefaultSitemapBuildTimeout = 30 * time.Second
	DefaultSitemapCacheMaxAge  = 86400
	DefaultClinicCacheTTL      = time.Hour
)

type Config struct {
	Mode     string `mapstructure:"mode"`
	Dotenv   string `mapstructure:"dotenv"`
	Handlers struct {
		Prometheus struct {
			Port    string `mapstructure:"port"`
			Enabled bool   `mapstructure:"enabled"`
		} `mapstructure:"prometheus"`
	} `mapstructure:"handlers"`
	Repositories struct {
		Postgres struct {
			Host              string `mapstructure:"host"`
			Password          string `mapstructure:"password"`
			Port              string `mapstructure:"port"`
			Username          string `mapstructure:"username"`
			DB                string `mapstructure:"db"`
			SSLMODE           string `mapstructure:"SSLMODE"`
			MAXCONWAITINGTIME int    `mapstructure:"MAXCONWAITINGTIME"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	Server struct {
		HTTPPort string        `mapstructure:"HTTPPort"`
		Timeout  time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Site struct {
		BaseURL string `mapstructure:"baseURL"`
	} `mapstructure:"site"`
	Sitemap struct {
		PageSize     int           `mapstructure:"pageSize"`
		PageTimeout  time.Duration `mapstructure:"pageTimeout"`
		BuildTimeout time.Duration `mapstructure:"buildTimeout"`
		CacheMaxAge  int           `mapstructure:"cacheMaxAge"`
	} `mapstructure:"sitemap"`
	Clinics struct {
		CacheTTL time.Duration `mapstructure:"cacheTTL"`
	} `mapstructure:"clinics"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Site.BaseURL = ResolveBaseURL(os.Getenv, config.Site.BaseURL)
	config.applyDefaults()

	fmt.Println("Successfully loaded app configs...")
	return config, nil
}

// ResolveBaseURL picks the public site URL: SITE_URL, then NEXT_PUBLIC_SITE_URL,
// then the configured value, then DefaultBaseURL. One trailing slash is dropped.
func ResolveBaseURL(getenv func(string) string, configured string) string {
	base := getenv("SITE_URL")
	if base == "" {
		base = getenv("NEXT_PUBLIC_SITE_URL")
	}
	if base == "" {
		base = configured
	}
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimSuffix(base, "/")
}

func (c *Config) applyDefaults() {
	if c.Sitemap.PageSize <= 0 {
		c.Sitemap.PageSize = DefaultSitemapPageSize
	}
	if c.Sitemap.PageTimeout <= 0 {
		c.Sitemap.PageTimeout = DefaultSitemapPageTimeout
	}
	if c.Sitemap.BuildTimeout <= 0 {
		c.Sitemap.BuildTimeout = DefaultSitemapBuildTimeout
	}
	if c.Sitemap.CacheMaxAge <= 0 {
		c.Sitemap.CacheMaxAge = DefaultSitemapCacheMaxAge
	}
	if c.Clinics.CacheTTL <= 0 {
		c.Clinics.CacheTTL = DefaultClinicCacheTTL
	}
	if c.Server.HTTPPort == "" {
		c.Server.HTTPPort = "8000"
	}
	if c.Server.Timeout <= 0 {
		c.Server.Timeout = 60 * time.Second
	}
}
