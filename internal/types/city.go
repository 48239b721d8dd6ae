package types

import "time"

// ClinicRow is the slice of a clinics row the city sitemap reads.
// All three columns are nullable.
type ClinicRow struct {
	StateCode *string
	City      *string
	UpdatedAt *time.Time
}

// CityAggregate is one deduplicated city in a state. LastMod is an ISO-8601
// UTC timestamp, empty when no row for the city carried updated_at.
type CityAggregate struct {
	StateCode string
	City      string
	LastMod   string
}
