package clinic

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

const placeIDPrefix = "ChIJ"

var nonAlnumRun = regexp.MustCompile(`[^a-z0-9]+`)

// optionBlob is a jsonb options column. Rows imported at different times
// use snake_case or camelCase keys.
type optionBlob map[string]json.RawMessage

func parseOptionBlob(raw json.RawMessage) (optionBlob, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var blob optionBlob
	if err := json.Unmarshal(trimmed, &blob); err != nil {
		return nil, fmt.Errorf("invalid options object: %w", err)
	}
	if blob == nil {
		blob = optionBlob{}
	}
	return blob, nil
}

// flag returns the first key holding a boolean. snake_case is listed first.
func (o optionBlob) flag(keys ...string) *bool {
	for _, k := range keys {
		v, ok := o[k]
		if !ok {
			continue
		}
		var b *bool
		if err := json.Unmarshal(v, &b); err == nil && b != nil {
			return b
		}
	}
	return nil
}

func NormalizeAccessibility(raw json.RawMessage) (*types.AccessibilityOptions, error) {
	o, err := parseOptionBlob(raw)
	if o == nil || err != nil {
		return nil, err
	}
	return &types.AccessibilityOptions{
		WheelchairAccessibleEntrance: o.flag("wheelchair_accessible_entrance", "wheelchairAccessibleEntrance"),
		WheelchairAccessibleParking:  o.flag("wheelchair_accessible_parking", "wheelchairAccessibleParking"),
		WheelchairAccessibleRestroom: o.flag("wheelchair_accessible_restroom", "wheelchairAccessibleRestroom"),
		WheelchairAccessibleSeating:  o.flag("wheelchair_accessible_seating", "wheelchairAccessibleSeating"),
	}, nil
}

func NormalizePayment(raw json.RawMessage) (*types.PaymentOptions, error) {
	o, err := parseOptionBlob(raw)
	if o == nil || err != nil {
		return nil, err
	}
	return &types.PaymentOptions{
		AcceptsCreditCards: o.flag("accepts_credit_cards", "acceptsCreditCards"),
		AcceptsDebitCards:  o.flag("accepts_debit_cards", "acceptsDebitCards"),
		AcceptsCashOnly:    o.flag("accepts_cash_only", "acceptsCashOnly"),
		AcceptsNFC:         o.flag("accepts_nfc", "acceptsNfc"),
	}, nil
}

func NormalizeParking(raw json.RawMessage) (*types.ParkingOptions, error) {
	o, err := parseOptionBlob(raw)
	if o == nil || err != nil {
		return nil, err
	}
	return &types.ParkingOptions{
		FreeParkingLot:    o.flag("free_parking_lot", "freeParkingLot"),
		PaidParkingLot:    o.flag("paid_parking_lot", "paidParkingLot"),
		FreeStreetParking: o.flag("free_street_parking", "freeStreetParking"),
		PaidStreetParking: o.flag("paid_street_parking", "paidStreetParking"),
		ValetParking:      o.flag("valet_parking", "valetParking"),
		FreeGarageParking: o.flag("free_garage_parking", "freeGarageParking"),
		PaidGarageParking: o.flag("paid_garage_parking", "paidGarageParking"),
	}, nil
}

func isSet(b *bool) bool { return b != nil && *b }

// BuildAmenityChips lists the amenities worth badging, in display order.
func BuildAmenityChips(acc *types.AccessibilityOptions, pay *types.PaymentOptions, park *types.ParkingOptions) []types.AmenityChip {
	chips := []types.AmenityChip{}
	add := func(ok bool, label, icon string, tone types.AmenityTone) {
		if ok {
			chips = append(chips, types.AmenityChip{Label: label, Icon: icon, Tone: tone})
		}
	}

	if acc != nil {
		add(isSet(acc.WheelchairAccessibleEntrance), "Wheelchair Accessible Entrance", "♿️", types.ToneGreen)
		add(isSet(acc.WheelchairAccessibleParking), "Wheelchair Accessible Parking", "🅿️", types.ToneBlue)
		add(isSet(acc.WheelchairAccessibleRestroom), "Wheelchair Accessible Restroom", "🚻", types.ToneBlue)
		add(isSet(acc.WheelchairAccessibleSeating), "Wheelchair Accessible Seating", "♿️", types.ToneGreen)
	}
	if park != nil {
		add(isSet(park.FreeParkingLot), "Free Parking Lot", "🅿️", types.ToneGreen)
		add(isSet(park.PaidParkingLot), "Paid Parking Lot", "🅿️", types.ToneAmber)
	}
	if pay != nil {
		add(isSet(pay.AcceptsCreditCards), "Accepts Credit Cards", "💳", types.ToneGreen)
		add(isSet(pay.AcceptsCashOnly), "Cash Only", "💵", types.ToneAmber)
	}
	return chips
}

// CitySlug is the simpler slug used for the back link. Unlike the sitemap
// slug it does not spell out "&".
func CitySlug(name string) string {
	return strings.Trim(nonAlnumRun.ReplaceAllString(strings.ToLower(name), "-"), "-")
}

// BackHref points at the clinic's city listing, or the clinic index when
// the clinic has no usable location.
func BackHref(stateCode, city *string) string {
	var state, slug string
	if stateCode != nil {
		state = *stateCode
	}
	if city != nil {
		slug = CitySlug(*city)
	}
	if state == "" || slug == "" {
		return "/clinics"
	}
	return "/state/" + strings.ToLower(state) + "/city/" + slug
}

func CanonicalURL(base, slug string) string {
	return base + "/clinics/" + slug
}

func looksLikePlaceID(slug string) bool {
	return strings.HasPrefix(slug, placeIDPrefix)
}
