package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Account represents a registered user of the platform
type Account struct {
	Role         string `db:"role" json:"role"`
	Username     string `db:"username" json:"username"`
	PasswordHash string `db:"password_hash" json:"-"` // bcrypt hash, never returned in JSON
	Email        string `db:"email" json:"email"`
	FirstName    string `db:"firstname" json:"firstname"`
	LastName     string `db:"lastname" json:"lastname"`
	Contact      string `db:"contact" json:"contact"`
	CreatedDate  string `db:"created_date" json:"createdDate"` // YYYY-MM-DD
}

// Listing is a builder's core property advertisement. CreatedTimestamp is the
// primary key and also the foreign key joining the listing to its ProfileDetail.
type Listing struct {
	BuilderUsername  string `db:"builder_username" json:"builder_username"`
	PropertyName     string `db:"property_name" json:"property_name"`
	Location         string `db:"location" json:"location"`
	UnitType         string `db:"unit_type" json:"unit_type"`
	ListingPrice     string `db:"listing_price" json:"listing_price"`
	Status           string `db:"status" json:"status"`
	CreatedTimestamp string `db:"created_timestamp" json:"created_timestamp"`
	ExpiryDate       string `db:"expiry_date" json:"expiry_date"`
}

// StatusDeleted is the terminal status set by a soft delete.
const StatusDeleted = "Deleted"

// AmenityDescriptor is one entry of the global amenity catalog: a display name
// (case-insensitive unique) and an icon glyph.
type AmenityDescriptor struct {
	Name string `db:"name" json:"name"`
	Icon string `db:"icon" json:"icon"`
}

// ProfileDetail holds the rich descriptive and engagement data attached to a
// Listing, keyed by the listing's creation timestamp.
type ProfileDetail struct {
	ListingTimestamp   string `db:"listing_timestamp" json:"listing_timestamp"`
	SqFt               string `db:"sq_ft" json:"sq_ft"`
	NumBedrooms        string `db:"num_bedrooms" json:"num_bedrooms"`
	NumBathrooms       string `db:"num_bathrooms" json:"num_bathrooms"`
	NumBalcony         string `db:"num_balcony" json:"num_balcony"`
	PossessionOn       string `db:"possession_on" json:"possession_on"`
	ApartmentName      string `db:"apartment_name" json:"apartment_name"`
	Parking            string `db:"parking" json:"parking"`
	PowerBackup        string `db:"power_backup" json:"power_backup"`
	AgeOfBuilding      string `db:"age_of_building" json:"age_of_building"`
	OwnershipType      string `db:"ownership_type" json:"ownership_type"`
	MaintenanceCharges string `db:"maintenance_charges" json:"maintenance_charges"`
	Flooring           string `db:"flooring" json:"flooring"`
	BuiltUpArea        string `db:"built_up_area" json:"built_up_area"`
	CarpetArea         string `db:"carpet_area" json:"carpet_area"`
	FurnishingStatus   string `db:"furnishing_status" json:"furnishing_status"`
	Facing             string `db:"facing" json:"facing"`
	Floor              string `db:"floor" json:"floor"`
	GatedSecurity      string `db:"gated_security" json:"gated_security"`
	Description        string `db:"description" json:"description"`

	// Engagement metrics, zeroed for every new listing
	UniqueViews int64 `db:"unique_views" json:"unique_views"`
	Shortlists  int64 `db:"shortlists" json:"shortlists"`
	Contacted   int64 `db:"contacted" json:"contacted"`
	Visited     int64 `db:"visited" json:"visited"`

	// Amenities is the ordered per-listing amenity list. It is persisted as a
	// JSON document in the amenities_json column.
	Amenities []AmenityDescriptor `db:"-" json:"amenities"`
}

// EncodeAmenities serializes the amenity list for storage.
func (p *ProfileDetail) EncodeAmenities() (string, error) {
	if p.Amenities == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(p.Amenities)
	if err != nil {
		return "", fmt.Errorf("error encoding amenities: %w", err)
	}
	return string(raw), nil
}

// DecodeAmenities restores the amenity list from its stored form. Malformed
// documents yield an empty list rather than an error.
func (p *ProfileDetail) DecodeAmenities(raw string) {
	p.Amenities = []AmenityDescriptor{}
	if raw == "" {
		return
	}
	var list []AmenityDescriptor
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		p.Amenities = list
	}
}

// ActionLogEntry is one coarse-grained audit record.
type ActionLogEntry struct {
	ID           string    `db:"id" json:"id"`
	LogTimestamp time.Time `db:"log_timestamp" json:"log_timestamp"`
	ActionType   string    `db:"action_type" json:"action_type"`
	UserID       string    `db:"user_id" json:"user_id"`
	Details      string    `db:"details" json:"details"`
}

// ProfileChangeLogEntry records a single field change applied to a listing's
// core record or profile detail.
type ProfileChangeLogEntry struct {
	ID               string    `db:"id" json:"id"`
	LogTimestamp     time.Time `db:"log_timestamp" json:"log_timestamp"`
	ListingTimestamp string    `db:"listing_timestamp" json:"listing_timestamp"`
	Section          string    `db:"section" json:"section"`
	FieldName        string    `db:"field_name" json:"field_name"`
	OldValue         string    `db:"old_value" json:"old_value"`
	NewValue         string    `db:"new_value" json:"new_value"`
	EditorUsername   string    `db:"editor_username" json:"editor_username"`
}

// DisplayString coerces an arbitrary client-submitted value to the string form
// used for change detection and logging, so numeric 3 and string "3" compare equal.
func DisplayString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integral values without a
		// trailing ".0" so they compare equal to their string form.
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}

// Field returns the display-string value of a core listing field by its wire
// name, or false if the name is not a listing field.
func (l *Listing) Field(name string) (string, bool) {
	switch name {
	case "builder_username":
		return l.BuilderUsername, true
	case "property_name":
		return l.PropertyName, true
	case "location":
		return l.Location, true
	case "unit_type":
		return l.UnitType, true
	case "listing_price":
		return l.ListingPrice, true
	case "status":
		return l.Status, true
	case "created_timestamp":
		return l.CreatedTimestamp, true
	case "expiry_date":
		return l.ExpiryDate, true
	}
	return "", false
}

// SetField assigns a core listing field by its wire name. Returns false for
// unknown names.
func (l *Listing) SetField(name string, value any) bool {
	s := DisplayString(value)
	switch name {
	case "builder_username":
		l.BuilderUsername = s
	case "property_name":
		l.PropertyName = s
	case "location":
		l.Location = s
	case "unit_type":
		l.UnitType = s
	case "listing_price":
		l.ListingPrice = s
	case "status":
		l.Status = s
	case "created_timestamp":
		l.CreatedTimestamp = s
	case "expiry_date":
		l.ExpiryDate = s
	default:
		return false
	}
	return true
}

// Field returns the display-string value of a scalar profile detail field by
// its wire name, or false for unknown names. The amenities list is not
// addressable here; the update engine replaces it wholesale.
func (p *ProfileDetail) Field(name string) (string, bool) {
	switch name {
	case "listing_timestamp":
		return p.ListingTimestamp, true
	case "sq_ft":
		return p.SqFt, true
	case "num_bedrooms":
		return p.NumBedrooms, true
	case "num_bathrooms":
		return p.NumBathrooms, true
	case "num_balcony":
		return p.NumBalcony, true
	case "possession_on":
		return p.PossessionOn, true
	case "apartment_name":
		return p.ApartmentName, true
	case "parking":
		return p.Parking, true
	case "power_backup":
		return p.PowerBackup, true
	case "age_of_building":
		return p.AgeOfBuilding, true
	case "ownership_type":
		return p.OwnershipType, true
	case "maintenance_charges":
		return p.MaintenanceCharges, true
	case "flooring":
		return p.Flooring, true
	case "built_up_area":
		return p.BuiltUpArea, true
	case "carpet_area":
		return p.CarpetArea, true
	case "furnishing_status":
		return p.FurnishingStatus, true
	case "facing":
		return p.Facing, true
	case "floor":
		return p.Floor, true
	case "gated_security":
		return p.GatedSecurity, true
	case "description":
		return p.Description, true
	case "unique_views":
		return strconv.FormatInt(p.UniqueViews, 10), true
	case "shortlists":
		return strconv.FormatInt(p.Shortlists, 10), true
	case "contacted":
		return strconv.FormatInt(p.Contacted, 10), true
	case "visited":
		return strconv.FormatInt(p.Visited, 10), true
	}
	return "", false
}

// SetField assigns a scalar profile detail field by its wire name. Returns
// false for unknown names. Metric counters parse their value as an integer.
func (p *ProfileDetail) SetField(name string, value any) bool {
	s := DisplayString(value)
	switch name {
	case "listing_timestamp":
		p.ListingTimestamp = s
	case "sq_ft":
		p.SqFt = s
	case "num_bedrooms":
		p.NumBedrooms = s
	case "num_bathrooms":
		p.NumBathrooms = s
	case "num_balcony":
		p.NumBalcony = s
	case "possession_on":
		p.PossessionOn = s
	case "apartment_name":
		p.ApartmentName = s
	case "parking":
		p.Parking = s
	case "power_backup":
		p.PowerBackup = s
	case "age_of_building":
		p.AgeOfBuilding = s
	case "ownership_type":
		p.OwnershipType = s
	case "maintenance_charges":
		p.MaintenanceCharges = s
	case "flooring":
		p.Flooring = s
	case "built_up_area":
		p.BuiltUpArea = s
	case "carpet_area":
		p.CarpetArea = s
	case "furnishing_status":
		p.FurnishingStatus = s
	case "facing":
		p.Facing = s
	case "floor":
		p.Floor = s
	case "gated_security":
		p.GatedSecurity = s
	case "description":
		p.Description = s
	case "unique_views":
		p.UniqueViews, _ = strconv.ParseInt(s, 10, 64)
	case "shortlists":
		p.Shortlists, _ = strconv.ParseInt(s, 10, 64)
	case "contacted":
		p.Contacted, _ = strconv.ParseInt(s, 10, 64)
	case "visited":
		p.Visited, _ = strconv.ParseInt(s, 10, 64)
	default:
		return false
	}
	return true
}

// MergedView overlays a profile detail onto its core listing, producing the
// combined read model served to clients. Profile fields override same-named
// listing fields. The profile's copy of the shared key is dropped when it
// matches the listing's creation timestamp.
func MergedView(listing *Listing, detail *ProfileDetail) map[string]any {
	merged := map[string]any{
		"builder_username":  listing.BuilderUsername,
		"property_name":     listing.PropertyName,
		"location":          listing.Location,
		"unit_type":         listing.UnitType,
		"listing_price":     listing.ListingPrice,
		"status":            listing.Status,
		"created_timestamp": listing.CreatedTimestamp,
		"expiry_date":       listing.ExpiryDate,
	}
	if detail == nil {
		return merged
	}

	merged["sq_ft"] = detail.SqFt
	merged["num_bedrooms"] = detail.NumBedrooms
	merged["num_bathrooms"] = detail.NumBathrooms
	merged["num_balcony"] = detail.NumBalcony
	merged["possession_on"] = detail.PossessionOn
	merged["apartment_name"] = detail.ApartmentName
	merged["parking"] = detail.Parking
	merged["power_backup"] = detail.PowerBackup
	merged["age_of_building"] = detail.AgeOfBuilding
	merged["ownership_type"] = detail.OwnershipType
	merged["maintenance_charges"] = detail.MaintenanceCharges
	merged["flooring"] = detail.Flooring
	merged["built_up_area"] = detail.BuiltUpArea
	merged["carpet_area"] = detail.CarpetArea
	merged["furnishing_status"] = detail.FurnishingStatus
	merged["facing"] = detail.Facing
	merged["floor"] = detail.Floor
	merged["gated_security"] = detail.GatedSecurity
	merged["description"] = detail.Description
	merged["unique_views"] = detail.UniqueViews
	merged["shortlists"] = detail.Shortlists
	merged["contacted"] = detail.Contacted
	merged["visited"] = detail.Visited
	merged["amenities"] = detail.Amenities

	if detail.ListingTimestamp != listing.CreatedTimestamp {
		merged["listing_timestamp"] = detail.ListingTimestamp
	}
	return merged
}
