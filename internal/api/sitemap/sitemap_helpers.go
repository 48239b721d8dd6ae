package sitemap

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	cityChangeFreq   = "weekly"
	cityPriority     = "0.7"

	// isoMillis matches JavaScript's Date.toISOString, which the public
	// site has always emitted. Fixed width keeps lexical order == time order.
	isoMillis = "2006-01-02T15:04:05.000Z"
)

var (
	nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)
	dashRun     = regexp.MustCompile(`-+`)

	xmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
)

// Slugify turns a city name into the path segment used by
// /state/{code}/city/{slug}. Existing URLs depend on this exact output.
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, "&", " and ")
	s = nonAlnumRun.ReplaceAllString(s, "-")
	s = dashRun.ReplaceAllString(s, "-")
	s = strings.TrimPrefix(s, "-")
	return strings.TrimSuffix(s, "-")
}

// EscapeXML escapes the five predefined XML entities.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// FormatLastMod renders t in UTC with millisecond precision.
func FormatLastMod(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// CityURL is the absolute listing page URL for a city.
func CityURL(base, stateCode, city string) string {
	return fmt.Sprintf("%s/state/%s/city/%s", base, stateCode, Slugify(city))
}

// cityIndex folds clinic rows into one aggregate per state and
// case-insensitive city, remembering first-seen order.
type cityIndex struct {
	byKey  map[string]int
	cities []types.CityAggregate
}

func newCityIndex() *cityIndex {
	return &cityIndex{byKey: make(map[string]int)}
}

func cityKey(stateCode, city string) string {
	return stateCode + "|" + strings.ToLower(city)
}

// add reports whether the row was usable.
func (c *cityIndex) add(row types.ClinicRow) bool {
	if row.StateCode == nil || row.City == nil {
		return false
	}
	stateCode := strings.TrimSpace(*row.StateCode)
	city := strings.TrimSpace(*row.City)
	if stateCode == "" || city == "" {
		return false
	}

	var lastMod string
	if row.UpdatedAt != nil {
		lastMod = FormatLastMod(*row.UpdatedAt)
	}

	key := cityKey(stateCode, city)
	if i, ok := c.byKey[key]; ok {
		if lastMod > c.cities[i].LastMod {
			c.cities[i].LastMod = lastMod
		}
		return true
	}

	c.byKey[key] = len(c.cities)
	c.cities = append(c.cities, types.CityAggregate{
		StateCode: stateCode,
		City:      city,
		LastMod:   lastMod,
	})
	return true
}

func (c *cityIndex) len() int {
	return len(c.cities)
}

// renderCitySitemap writes one <url> per aggregate, in order. Cities without
// a known lastmod are stamped with generatedAt.
func renderCitySitemap(base string, cities []types.CityAggregate, generatedAt time.Time) string {
	fallback := FormatLastMod(generatedAt)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<urlset xmlns="` + sitemapNamespace + `">` + "\n")
	for _, c := range cities {
		lastMod := c.LastMod
		if lastMod == "" {
			lastMod = fallback
		}
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>" + EscapeXML(CityURL(base, c.StateCode, c.City)) + "</loc>\n")
		b.WriteString("    <lastmod>" + EscapeXML(lastMod) + "</lastmod>\n")
		b.WriteString("    <changefreq>" + cityChangeFreq + "</changefreq>\n")
		b.WriteString("    <priority>" + cityPriority + "</priority>\n")
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>")
	return b.String()
}
