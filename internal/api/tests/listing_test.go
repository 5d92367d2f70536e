package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/rwalia/estatehub-server/internal/api/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createListing(t *testing.T, tc *testutils.TestContext) string {
	t.Helper()

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/add_listing", map[string]string{
		"builder_username": "b1",
		"property_name":    "Sunset Villas",
		"location":         "X",
		"unit_type":        "2BHK",
		"listing_price":    "9000000",
		"status":           "Active",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := testutils.DecodeBody(t, w)
	require.Equal(t, true, body["success"])
	timestamp, ok := body["timestamp"].(string)
	require.True(t, ok)
	require.NotEmpty(t, timestamp)
	return timestamp
}

func TestCreateListingAndFetchMerged(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	timestamp := createListing(t, tc)

	w := testutils.PerformRequest(tc.Router, http.MethodGet, "/get_listing_by_timestamp/"+timestamp, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := testutils.DecodeBody(t, w)
	require.Equal(t, true, body["success"])
	listing, ok := body["listing"].(map[string]any)
	require.True(t, ok)

	// Core fields and template defaults are merged into one view
	assert.Equal(t, "Sunset Villas", listing["property_name"])
	assert.Equal(t, "1450", listing["sq_ft"])
	assert.Equal(t, "The Lakeview Grand", listing["apartment_name"])

	// Metrics start at zero regardless of the template
	assert.Equal(t, float64(0), listing["unique_views"])
	assert.Equal(t, float64(0), listing["shortlists"])

	// The profile's copy of the shared key is dropped from the merged view
	assert.Equal(t, timestamp, listing["created_timestamp"])
	_, hasProfileKey := listing["listing_timestamp"]
	assert.False(t, hasProfileKey)

	amenities, ok := listing["amenities"].([]any)
	require.True(t, ok)
	assert.Len(t, amenities, 11)
}

func TestCreateListingMissingFields(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/add_listing", map[string]string{
		"builder_username": "b1",
		"property_name":    "Sunset Villas",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateListingCore(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	timestamp := createListing(t, tc)

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/update_listing", map[string]any{
		"original_timestamp": timestamp,
		"updated_data": map[string]any{
			"builder_username": "b1",
			"listing_price":    "9500000",
			"status":           "Active", // unchanged, must not be logged
		},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := testutils.DecodeBody(t, w)
	require.Equal(t, true, body["success"])
	changes, ok := body["changes"].([]any)
	require.True(t, ok)
	require.Len(t, changes, 1)
	assert.Equal(t, "Core: listing_price changed from '9000000' to '9500000'", changes[0])

	// Ownership mismatch yields 404
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/update_listing", map[string]any{
		"original_timestamp": timestamp,
		"updated_data": map[string]any{
			"builder_username": "not-the-owner",
			"listing_price":    "1",
		},
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateProfileDataEndToEnd(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	timestamp := createListing(t, tc)

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/update_profile_data", map[string]any{
		"listing_timestamp": timestamp,
		"editor_username":   "b1",
		"section":           "Specs",
		"updates":           map[string]any{"sq_ft": "1600"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := testutils.DecodeBody(t, w)
	require.Equal(t, true, body["success"])
	changes, ok := body["changes"].([]any)
	require.True(t, ok)
	require.Len(t, changes, 1)
	assert.Equal(t, "Updated sq_ft: '1450' -> '1600'", changes[0])

	// Re-fetch shows the new value
	w = testutils.PerformRequest(tc.Router, http.MethodGet, "/get_listing_by_timestamp/"+timestamp, nil, nil)
	listing := testutils.DecodeBody(t, w)["listing"].(map[string]any)
	assert.Equal(t, "1600", listing["sq_ft"])

	// The change is in the profile log, newest first
	w = testutils.PerformRequest(tc.Router, http.MethodGet, "/get_profile_log/"+timestamp, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	logs, ok := testutils.DecodeBody(t, w)["logs"].([]any)
	require.True(t, ok)
	require.Len(t, logs, 1)
	entry := logs[0].(map[string]any)
	assert.Equal(t, "Specs", entry["section"])
	assert.Equal(t, "sq_ft", entry["field_name"])
	assert.Equal(t, "1450", entry["old_value"])
	assert.Equal(t, "1600", entry["new_value"])
	assert.Equal(t, "b1", entry["editor_username"])
}

func TestUpdateProfileDataUnknownListing(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/update_profile_data", map[string]any{
		"listing_timestamp": "2020-01-01T00:00:00Z",
		"editor_username":   "b1",
		"section":           "Specs",
		"updates":           map[string]any{"sq_ft": "1600"},
	}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSoftDeleteListingIdempotent(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	timestamp := createListing(t, tc)

	payload := map[string]string{
		"original_timestamp": timestamp,
		"builder_username":   "b1",
	}

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/delete_listing", payload, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Second delete still succeeds
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/delete_listing", payload, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The listing stays readable with its profile, status Deleted
	w = testutils.PerformRequest(tc.Router, http.MethodGet, "/get_listing_by_timestamp/"+timestamp, nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listing := testutils.DecodeBody(t, w)["listing"].(map[string]any)
	assert.Equal(t, "Deleted", listing["status"])
	assert.Equal(t, "1450", listing["sq_ft"])
}

func TestGetListingsByBuilder(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	createListing(t, tc)
	createListing(t, tc)

	w := testutils.PerformRequest(tc.Router, http.MethodGet, "/get_listings/b1", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listings, ok := testutils.DecodeBody(t, w)["listings"].([]any)
	require.True(t, ok)
	assert.Len(t, listings, 2)

	w = testutils.PerformRequest(tc.Router, http.MethodGet, "/get_listings/somebody-else", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	listings, ok = testutils.DecodeBody(t, w)["listings"].([]any)
	require.True(t, ok)
	assert.Len(t, listings, 0)
}

func TestAddGlobalAmenityIdempotent(t *testing.T) {
	tc := testutils.SetupTestContext(t)

	countAmenities := func() int {
		w := testutils.PerformRequest(tc.Router, http.MethodGet, "/get_global_amenities", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		amenities, ok := testutils.DecodeBody(t, w)["amenities"].([]any)
		require.True(t, ok)
		return len(amenities)
	}

	before := countAmenities()

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/add_global_amenity", map[string]string{
		"name": "Pool Table",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, before+1, countAmenities())

	// Same name in different casing is a no-op
	w = testutils.PerformRequest(tc.Router, http.MethodPost, "/add_global_amenity", map[string]string{
		"name": "pool table",
		"icon": "🎱",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := testutils.DecodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, before+1, countAmenities())
}

func TestUpdateAmenitiesGrowsCatalog(t *testing.T) {
	tc := testutils.SetupTestContext(t)
	timestamp := createListing(t, tc)

	newList := []map[string]string{
		{"name": "Lift", "icon": "↑↓"},
		{"name": "Helipad", "icon": "🚁"}, // new to the catalog
	}

	w := testutils.PerformRequest(tc.Router, http.MethodPost, "/update_profile_data", map[string]any{
		"listing_timestamp": timestamp,
		"editor_username":   "b1",
		"section":           "Amenities",
		"updates":           map[string]any{"amenities": newList},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	changes := testutils.DecodeBody(t, w)["changes"].([]any)
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0], "Helipad")

	// The listing's amenity list is replaced wholesale, not merged
	w = testutils.PerformRequest(tc.Router, http.MethodGet, "/get_listing_by_timestamp/"+timestamp, nil, nil)
	listing := testutils.DecodeBody(t, w)["listing"].(map[string]any)
	amenities := listing["amenities"].([]any)
	require.Len(t, amenities, 2)
	assert.Equal(t, "Helipad", amenities[1].(map[string]any)["name"])

	// The catalog grew by exactly one entry
	w = testutils.PerformRequest(tc.Router, http.MethodGet, "/get_global_amenities", nil, nil)
	catalog := testutils.DecodeBody(t, w)["amenities"].([]any)
	assert.Len(t, catalog, 18)

	names := make([]string, 0, len(catalog))
	for _, a := range catalog {
		names = append(names, fmt.Sprint(a.(map[string]any)["name"]))
	}
	assert.Contains(t, names, "Helipad")
}
