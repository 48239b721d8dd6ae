package clinic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/derma-clinic-near-me/internal/types"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeAccessibility(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		for _, raw := range []string{"", "null", "  "} {
			got, err := NormalizeAccessibility(json.RawMessage(raw))
			require.NoError(t, err)
			assert.Nil(t, got)
		}
	})

	t.Run("camelCase keys", func(t *testing.T) {
		got, err := NormalizeAccessibility(json.RawMessage(`{"wheelchairAccessibleEntrance":true,"wheelchairAccessibleSeating":false}`))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, ptr(true), got.WheelchairAccessibleEntrance)
		assert.Equal(t, ptr(false), got.WheelchairAccessibleSeating)
		assert.Nil(t, got.WheelchairAccessibleParking)
	})

	t.Run("snake_case wins", func(t *testing.T) {
		got, err := NormalizeAccessibility(json.RawMessage(`{"wheelchair_accessible_entrance":false,"wheelchairAccessibleEntrance":true}`))
		require.NoError(t, err)
		assert.Equal(t, ptr(false), got.WheelchairAccessibleEntrance)
	})

	t.Run("null snake_case falls back to camelCase", func(t *testing.T) {
		got, err := NormalizeAccessibility(json.RawMessage(`{"wheelchair_accessible_restroom":null,"wheelchairAccessibleRestroom":true}`))
		require.NoError(t, err)
		assert.Equal(t, ptr(true), got.WheelchairAccessibleRestroom)
	})

	t.Run("empty object", func(t *testing.T) {
		got, err := NormalizeAccessibility(json.RawMessage(`{}`))
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, types.AccessibilityOptions{}, *got)
	})

	t.Run("malformed", func(t *testing.T) {
		got, err := NormalizeAccessibility(json.RawMessage(`[true]`))
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestNormalizePaymentAndParking(t *testing.T) {
	pay, err := NormalizePayment(json.RawMessage(`{"acceptsCreditCards":true,"accepts_cash_only":false,"acceptsNfc":true}`))
	require.NoError(t, err)
	assert.Equal(t, ptr(true), pay.AcceptsCreditCards)
	assert.Equal(t, ptr(false), pay.AcceptsCashOnly)
	assert.Equal(t, ptr(true), pay.AcceptsNFC)
	assert.Nil(t, pay.AcceptsDebitCards)

	park, err := NormalizeParking(json.RawMessage(`{"freeParkingLot":true,"valet_parking":true}`))
	require.NoError(t, err)
	assert.Equal(t, ptr(true), park.FreeParkingLot)
	assert.Equal(t, ptr(true), park.ValetParking)
	assert.Nil(t, park.PaidParkingLot)
}

func TestBuildAmenityChips(t *testing.T) {
	t.Run("all amenities in display order", func(t *testing.T) {
		chips := BuildAmenityChips(
			&types.AccessibilityOptions{
				WheelchairAccessibleEntrance: ptr(true),
				WheelchairAccessibleParking:  ptr(true),
				WheelchairAccessibleRestroom: ptr(true),
				WheelchairAccessibleSeating:  ptr(true),
			},
			&types.PaymentOptions{AcceptsCreditCards: ptr(true), AcceptsCashOnly: ptr(true), AcceptsNFC: ptr(true)},
			&types.ParkingOptions{FreeParkingLot: ptr(true), PaidParkingLot: ptr(true), ValetParking: ptr(true)},
		)

		labels := make([]string, 0, len(chips))
		tones := make([]types.AmenityTone, 0, len(chips))
		for _, c := range chips {
			labels = append(labels, c.Label)
			tones = append(tones, c.Tone)
		}
		assert.Equal(t, []string{
			"Wheelchair Accessible Entrance",
			"Wheelchair Accessible Parking",
			"Wheelchair Accessible Restroom",
			"Wheelchair Accessible Seating",
			"Free Parking Lot",
			"Paid Parking Lot",
			"Accepts Credit Cards",
			"Cash Only",
		}, labels)
		assert.Equal(t, []types.AmenityTone{
			types.ToneGreen, types.ToneBlue, types.ToneBlue, types.ToneGreen,
			types.ToneGreen, types.ToneAmber, types.ToneGreen, types.ToneAmber,
		}, tones)
	})

	t.Run("false and missing flags produce nothing", func(t *testing.T) {
		chips := BuildAmenityChips(&types.AccessibilityOptions{WheelchairAccessibleEntrance: ptr(false)}, nil, nil)
		assert.NotNil(t, chips)
		assert.Empty(t, chips)
	})
}

func TestCitySlugAndBackHref(t *testing.T) {
	assert.Equal(t, "st-paul-s-rochester", CitySlug("St. Paul's & Rochester"))
	assert.Equal(t, "new-york", CitySlug("  New York "))

	assert.Equal(t, "/state/ca/city/san-francisco", BackHref(ptr("CA"), ptr("San Francisco")))
	assert.Equal(t, "/clinics", BackHref(nil, ptr("San Francisco")))
	assert.Equal(t, "/clinics", BackHref(ptr("CA"), ptr("!!!")))
	assert.Equal(t, "/clinics", BackHref(ptr(""), ptr("Austin")))
}

func TestCanonicalURL(t *testing.T) {
	assert.Equal(t, "https://x.test/clinics/bay-dermatology", CanonicalURL("https://x.test", "bay-dermatology"))
}
