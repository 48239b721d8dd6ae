package schema

import (
	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

const (
	schemaContext = "https://schema.org"
	siteName      = "Derma Clinic Near Me"
	specialty     = "Dermatology"
	country       = "US"
)

type PostalAddress struct {
	Type            string `json:"@type"`
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry"`
}

type GeoCoordinates struct {
	Type      string  `json:"@type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type AggregateRating struct {
	Type        string  `json:"@type"`
	RatingValue float64 `json:"ratingValue"`
	ReviewCount int     `json:"reviewCount,omitempty"`
	BestRating  int     `json:"bestRating"`
	WorstRating int     `json:"worstRating"`
}

type MedicalClinic struct {
	Context          string           `json:"@context"`
	Type             string           `json:"@type"`
	Name             string           `json:"name"`
	URL              string           `json:"url"`
	Telephone        string           `json:"telephone,omitempty"`
	Address          *PostalAddress   `json:"address,omitempty"`
	Geo              *GeoCoordinates  `json:"geo,omitempty"`
	AggregateRating  *AggregateRating `json:"aggregateRating,omitempty"`
	MedicalSpecialty string           `json:"medicalSpecialty"`
	SameAs           []string         `json:"sameAs,omitempty"`
}

type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

type BreadcrumbList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	ItemListElement []ListItem `json:"itemListElement"`
}

type Organization struct {
	Context string `json:"@context"`
	Type    string `json:"@type"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Logo    string `json:"logo"`
}

// Crumb is one step of a breadcrumb trail.
type Crumb struct {
	Name string
	URL  string
}

// ForClinic describes a clinic as a schema.org MedicalClinic. Optional
// properties are only emitted when the clinic has the data.
func ForClinic(c types.Clinic, canonicalURL string) MedicalClinic {
	out := MedicalClinic{
		Context:          schemaContext,
		Type:             "MedicalClinic",
		Name:             c.DisplayName,
		URL:              canonicalURL,
		Telephone:        deref(c.Phone),
		MedicalSpecialty: specialty,
	}

	addr := PostalAddress{
		Type:            "PostalAddress",
		StreetAddress:   deref(c.FormattedAddress),
		AddressLocality: deref(c.City),
		AddressRegion:   deref(c.StateCode),
		PostalCode:      deref(c.PostalCode),
		AddressCountry:  country,
	}
	if addr.StreetAddress != "" || addr.AddressLocality != "" || addr.AddressRegion != "" || addr.PostalCode != "" {
		out.Address = &addr
	}

	if c.Latitude != nil && c.Longitude != nil {
		out.Geo = &GeoCoordinates{
			Type:      "GeoCoordinates",
			Latitude:  *c.Latitude,
			Longitude: *c.Longitude,
		}
	}

	if c.Rating != nil {
		rating := &AggregateRating{
			Type:        "AggregateRating",
			RatingValue: *c.Rating,
			BestRating:  5,
			WorstRating: 1,
		}
		if c.UserRatingCount != nil {
			rating.ReviewCount = *c.UserRatingCount
		}
		out.AggregateRating = rating
	}

	if w := deref(c.Website); w != "" {
		out.SameAs = []string{w}
	}
	return out
}

// Breadcrumbs numbers crumbs from 1 in the order given.
func Breadcrumbs(crumbs []Crumb) BreadcrumbList {
	items := make([]ListItem, 0, len(crumbs))
	for i, c := range crumbs {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
			Item:     c.URL,
		})
	}
	return BreadcrumbList{
		Context:         schemaContext,
		Type:            "BreadcrumbList",
		ItemListElement: items,
	}
}

func ForOrganization(base string) Organization {
	return Organization{
		Context: schemaContext,
		Type:    "Organization",
		Name:    siteName,
		URL:     base,
		Logo:    base + "/icon.png",
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
