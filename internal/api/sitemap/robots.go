package sitemap

import "strings"

// RenderRobots allows everything except the JSON API and advertises both
// sitemaps. The clinic sitemap is produced elsewhere.
func RenderRobots(base string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /api/\n")
	b.WriteString("Disallow: /api/*\n")
	b.WriteString("\n")
	b.WriteString("Sitemap: " + base + "/sitemap.xml\n")
	b.WriteString("Sitemap: " + base + "/sitemap-clinics.xml\n")
	return b.String()
}
