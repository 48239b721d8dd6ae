package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Clinic matches the clinics table.
type Clinic struct {
	ID                   uuid.UUID       `json:"id"`
	PlaceID              string          `json:"place_id"`
	Slug                 string          `json:"slug"`
	DisplayName          string          `json:"display_name"`
	FormattedAddress     *string         `json:"formatted_address,omitempty"`
	City                 *string         `json:"city,omitempty"`
	StateCode            *string         `json:"state_code,omitempty"`
	PostalCode           *string         `json:"postal_code,omitempty"`
	Phone                *string         `json:"phone,omitempty"`
	Website              *string         `json:"website,omitempty"`
	Rating               *float64        `json:"rating,omitempty"`
	UserRatingCount      *int            `json:"user_rating_count,omitempty"`
	Latitude             *float64        `json:"latitude,omitempty"`
	Longitude            *float64        `json:"longitude,omitempty"`
	CurrentOpenNow       *bool           `json:"current_open_now,omitempty"`
	AccessibilityOptions json.RawMessage `json:"-"`
	PaymentOptions       json.RawMessage `json:"-"`
	ParkingOptions       json.RawMessage `json:"-"`
	UpdatedAt            *time.Time      `json:"updated_at,omitempty"`
}

type AccessibilityOptions struct {
	WheelchairAccessibleEntrance *bool `json:"wheelchair_accessible_entrance,omitempty"`
	WheelchairAccessibleParking  *bool `json:"wheelchair_accessible_parking,omitempty"`
	WheelchairAccessibleRestroom *bool `json:"wheelchair_accessible_restroom,omitempty"`
	WheelchairAccessibleSeating  *bool `json:"wheelchair_accessible_seating,omitempty"`
}

type PaymentOptions struct {
	AcceptsCreditCards *bool `json:"accepts_credit_cards,omitempty"`
	AcceptsDebitCards  *bool `json:"accepts_debit_cards,omitempty"`
	AcceptsCashOnly    *bool `json:"accepts_cash_only,omitempty"`
	AcceptsNFC         *bool `json:"accepts_nfc,omitempty"`
}

type ParkingOptions struct {
	FreeParkingLot    *bool `json:"free_parking_lot,omitempty"`
	PaidParkingLot    *bool `json:"paid_parking_lot,omitempty"`
	FreeStreetParking *bool `json:"free_street_parking,omitempty"`
	PaidStreetParking *bool `json:"paid_street_parking,omitempty"`
	ValetParking      *bool `json:"valet_parking,omitempty"`
	FreeGarageParking *bool `json:"free_garage_parking,omitempty"`
	PaidGarageParking *bool `json:"paid_garage_parking,omitempty"`
}

// AmenityTone is the badge colour a renderer uses for an amenity chip.
type AmenityTone string

const (
	ToneGreen AmenityTone = "green"
	ToneBlue  AmenityTone = "blue"
	ToneAmber AmenityTone = "amber"
)

type AmenityChip struct {
	Label string      `json:"label"`
	Icon  string      `json:"icon"`
	Tone  AmenityTone `json:"tone"`
}

// ClinicPage is everything the clinic detail page renders.
type ClinicPage struct {
	Clinic               Clinic                `json:"clinic"`
	AccessibilityOptions *AccessibilityOptions `json:"accessibility_options,omitempty"`
	PaymentOptions       *PaymentOptions       `json:"payment_options,omitempty"`
	ParkingOptions       *ParkingOptions       `json:"parking_options,omitempty"`
	Amenities            []AmenityChip         `json:"amenities"`
	CanonicalURL         string                `json:"canonical_url"`
	BackHref             string                `json:"back_href"`
	StructuredData       []any                 `json:"structured_data"`
}
