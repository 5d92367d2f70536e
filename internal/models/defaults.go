package models

// SeedAmenities is the fixed amenity catalog the store is seeded with at first
// run. It is also the read fallback when the catalog cannot be loaded.
var SeedAmenities = []AmenityDescriptor{
	{Name: "Lift", Icon: "↑↓"},
	{Name: "Internet Provider", Icon: "🌐"},
	{Name: "Club House", Icon: "🍹"},
	{Name: "Children's Play Area", Icon: "🎠"},
	{Name: "Fire Safety", Icon: "🔥"},
	{Name: "Security", Icon: "🔒"},
	{Name: "Gas Pipeline", Icon: "⛽"},
	{Name: "Park", Icon: "🌳"},
	{Name: "Visitor Parking", Icon: "🅿️"},
	{Name: "EV Chargers", Icon: "⚡"},
	{Name: "Swimming Pool", Icon: "🏊"},
	{Name: "Gymnasium", Icon: "💪"},
	{Name: "Rain Water Harvesting", Icon: "💧"},
	{Name: "Intercom Facility", Icon: "📞"},
	{Name: "Vaastu Compliant", Icon: "🕉️"},
	{Name: "Jogging Track", Icon: "🏃"},
	{Name: "Sewage Treatment Plant", Icon: "🧪"},
}

// DefaultProfileDetail builds the template profile a new listing starts from.
// The caller overwrites the key; metrics are already zero so fresh listings
// start with no engagement.
func DefaultProfileDetail(listingTimestamp string) *ProfileDetail {
	amenities := make([]AmenityDescriptor, 11)
	copy(amenities, SeedAmenities[:11])

	return &ProfileDetail{
		ListingTimestamp:   listingTimestamp,
		SqFt:               "1450",
		NumBedrooms:        "3",
		NumBathrooms:       "3",
		NumBalcony:         "2",
		PossessionOn:       "2026-03-01",
		ApartmentName:      "The Lakeview Grand",
		Parking:            "Bike and Car",
		PowerBackup:        "Full",
		AgeOfBuilding:      "New Construction",
		OwnershipType:      "Freehold",
		MaintenanceCharges: "3500",
		Flooring:           "Vitrified Tiles",
		BuiltUpArea:        "1600 sq.ft.",
		CarpetArea:         "1350 sq.ft.",
		FurnishingStatus:   "Semi-Furnished",
		Facing:             "North-East",
		Floor:              "12th of 25",
		GatedSecurity:      "Yes",
		Description: "A meticulously planned residential project offering breathtaking lake views, " +
			"premium amenities, and strategic location close to the IT hub. Experience luxury living " +
			"with spacious layouts and modern infrastructure.",
		Amenities: amenities,
	}
}
