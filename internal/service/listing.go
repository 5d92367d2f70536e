package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rwalia/estatehub-server/internal/models"
	"go.uber.org/zap"
)

// CreateListing stores a new core listing and initializes its profile detail
// from the default template. Both records share one freshly generated
// creation timestamp, which becomes the listing's identity and the join key
// between the two collections.
func (s *DefaultService) CreateListing(ctx context.Context, req models.CreateListingRequest) (*models.CreateListingResponse, error) {
	if req.BuilderUsername == "" || req.PropertyName == "" || req.Location == "" ||
		req.UnitType == "" || req.ListingPrice == "" || req.Status == "" {
		return nil, fmt.Errorf("%w: missing required core listing fields", ErrValidation)
	}

	currentTimestamp := time.Now().Format(time.RFC3339Nano)

	listing := &models.Listing{
		BuilderUsername:  req.BuilderUsername,
		PropertyName:     req.PropertyName,
		Location:         req.Location,
		UnitType:         req.UnitType,
		ListingPrice:     req.ListingPrice,
		Status:           req.Status,
		CreatedTimestamp: currentTimestamp,
		ExpiryDate:       req.ExpiryDate,
	}

	if err := s.repo.CreateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("%w: error saving core listing: %v", ErrStore, err)
	}

	// Initialize the profile from the template so one exists before the
	// builder first edits it. New listings start with zero engagement.
	detail := models.DefaultProfileDetail(currentTimestamp)
	if err := s.repo.CreateProfileDetail(ctx, detail); err != nil {
		// The core listing is already saved and stays; readers lazily
		// initialize a missing profile from the template.
		s.log.Warn("failed to save initial profile detail",
			zap.String("listingTimestamp", currentTimestamp),
			zap.Error(err))
	}

	s.logAction(ctx, ActionListingCreated, req.BuilderUsername,
		fmt.Sprintf("New core listing created: %s", req.PropertyName))

	return &models.CreateListingResponse{
		Success:   true,
		Message:   "New listing created successfully and profile initialized.",
		Timestamp: currentTimestamp,
	}, nil
}

// UpdateListingCore applies a full-record edit to a listing's core fields.
// The builder_username inside updates doubles as the authorization field: the
// listing must match both the timestamp and the builder. Each changed field
// produces one "Core" change-log entry; unchanged fields produce none.
func (s *DefaultService) UpdateListingCore(ctx context.Context, originalTimestamp string, updates map[string]any) (*models.UpdateResponse, error) {
	builderUsername := models.DisplayString(updates["builder_username"])
	if originalTimestamp == "" || len(updates) == 0 || builderUsername == "" {
		return nil, fmt.Errorf("%w: missing required data for update", ErrValidation)
	}

	listing, err := s.repo.GetListing(ctx, originalTimestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading listing: %v", ErrStore, err)
	}
	if listing == nil || listing.BuilderUsername != builderUsername {
		return nil, fmt.Errorf("%w: listing not found or user unauthorized", ErrNotFound)
	}

	var changes []string
	for field, newValue := range updates {
		// The authorization field is never logged as a change
		if field == "builder_username" {
			continue
		}

		oldValue, known := listing.Field(field)
		if !known {
			continue
		}

		newStr := models.DisplayString(newValue)
		if oldValue != newStr {
			listing.SetField(field, newValue)
			changes = append(changes, fmt.Sprintf("Core: %s changed from '%s' to '%s'", field, oldValue, newStr))
			s.logProfileChange(ctx, originalTimestamp, "Core", field, oldValue, newStr, builderUsername)
		}
	}

	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("%w: error saving updated listing: %v", ErrStore, err)
	}

	s.logAction(ctx, ActionListingEdited, builderUsername,
		fmt.Sprintf("Updated core listing (TS: %s). Changes: %d", originalTimestamp, len(changes)))

	return &models.UpdateResponse{
		Success: true,
		Message: "Listing updated successfully.",
		Changes: changes,
	}, nil
}

// UpdateProfileData applies a partial, field-routed update across a listing's
// core record and profile detail. Fields are routed by name: "amenities" is
// replaced wholesale (growing the global catalog as a side effect), known
// core fields go to the listing, known profile fields to the detail, and
// unknown fields are silently dropped. Both records are written at the end;
// both writes are attempted even if the first fails, and a partial failure is
// reported rather than rolled back.
func (s *DefaultService) UpdateProfileData(ctx context.Context, req models.UpdateProfileDataRequest) (*models.UpdateResponse, error) {
	if req.ListingTimestamp == "" || req.EditorUsername == "" || len(req.Updates) == 0 {
		return nil, fmt.Errorf("%w: missing required data", ErrValidation)
	}

	listing, err := s.repo.GetListing(ctx, req.ListingTimestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading listing: %v", ErrStore, err)
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: original listing not found", ErrNotFound)
	}

	detail, err := s.repo.GetProfileDetail(ctx, req.ListingTimestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading profile detail: %v", ErrStore, err)
	}
	if detail == nil {
		// A listing can briefly exist without its profile when the initial
		// detail write failed; recover from the template.
		detail = models.DefaultProfileDetail(req.ListingTimestamp)
	}

	var changes []string
	for fieldName, newValue := range req.Updates {
		if fieldName == "amenities" {
			changes = append(changes, s.applyAmenityUpdate(ctx, listing, detail, newValue, req.Section, req.EditorUsername))
			continue
		}

		if oldValue, known := listing.Field(fieldName); known {
			newStr := models.DisplayString(newValue)
			if oldValue != newStr {
				listing.SetField(fieldName, newValue)
				changes = append(changes, fmt.Sprintf("Updated %s: '%s' -> '%s'", fieldName, oldValue, newStr))
				s.logProfileChange(ctx, req.ListingTimestamp, req.Section, fieldName, oldValue, newStr, req.EditorUsername)
			}
			continue
		}

		if oldValue, known := detail.Field(fieldName); known {
			newStr := models.DisplayString(newValue)
			if oldValue != newStr {
				detail.SetField(fieldName, newValue)
				changes = append(changes, fmt.Sprintf("Updated %s: '%s' -> '%s'", fieldName, oldValue, newStr))
				s.logProfileChange(ctx, req.ListingTimestamp, req.Section, fieldName, oldValue, newStr, req.EditorUsername)
			}
			continue
		}

		// Unknown field names are dropped, not rejected
	}

	// Persist both records. Both writes are attempted regardless of the
	// first's outcome; there is no transactional guarantee across them.
	coreErr := s.repo.UpdateListing(ctx, listing)
	liveErr := s.repo.UpsertProfileDetail(ctx, detail)

	if coreErr != nil || liveErr != nil {
		return nil, fmt.Errorf("%w: error saving updated data. Core save: %t, Live save: %t",
			ErrStore, coreErr == nil, liveErr == nil)
	}

	s.logAction(ctx, ActionProfileEdited, req.EditorUsername,
		fmt.Sprintf("Edited profile for %s (TS: %s). Changes: %d", listing.PropertyName, req.ListingTimestamp, len(changes)))

	return &models.UpdateResponse{
		Success: true,
		Message: "Profile data updated and changes logged.",
		Changes: changes,
	}, nil
}

// applyAmenityUpdate replaces the profile's amenity list wholesale. Every
// submitted descriptor is folded into the global catalog, so an amenity
// attached to any listing becomes available to all listings. The change is
// logged as a single entry comparing the joined name lists, regardless of how
// many individual amenities changed.
func (s *DefaultService) applyAmenityUpdate(ctx context.Context, listing *models.Listing, detail *models.ProfileDetail, value any, section, editor string) string {
	newList := toAmenityList(value)

	oldNames := joinAmenityNames(detail.Amenities)
	newNames := joinAmenityNames(newList)

	for _, amenity := range newList {
		// Deduplication happens inside AddAmenityIfAbsent
		s.AddAmenityIfAbsent(ctx, amenity)
	}

	detail.Amenities = newList

	s.logProfileChange(ctx, listing.CreatedTimestamp, section, "amenities", oldNames, newNames, editor)
	return fmt.Sprintf("Updated amenities list. (Names: '%s' -> '%s')", oldNames, newNames)
}

// SoftDeleteListing marks a listing as deleted without removing it. The
// listing stays readable and keeps its profile detail. Repeating the call is
// harmless.
func (s *DefaultService) SoftDeleteListing(ctx context.Context, originalTimestamp, builderUsername string) (*models.StatusResponse, error) {
	if originalTimestamp == "" || builderUsername == "" {
		return nil, fmt.Errorf("%w: missing required data (timestamp or username)", ErrValidation)
	}

	listing, err := s.repo.GetListing(ctx, originalTimestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading listing: %v", ErrStore, err)
	}
	if listing == nil || listing.BuilderUsername != builderUsername {
		return nil, fmt.Errorf("%w: listing not found or user unauthorized", ErrNotFound)
	}

	listing.Status = models.StatusDeleted
	if err := s.repo.UpdateListing(ctx, listing); err != nil {
		return nil, fmt.Errorf("%w: error saving status update: %v", ErrStore, err)
	}

	s.logAction(ctx, ActionListingDeleted, builderUsername,
		fmt.Sprintf("Soft-deleted listing: %s (TS: %s)", listing.PropertyName, originalTimestamp))

	return &models.StatusResponse{
		Success: true,
		Message: "Listing status updated to 'Deleted'.",
	}, nil
}

// GetMergedListing returns the combined read model of a listing and its
// profile detail. Read-only; a missing profile yields the core fields alone.
func (s *DefaultService) GetMergedListing(ctx context.Context, timestamp string) (map[string]any, error) {
	listing, err := s.repo.GetListing(ctx, timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading listing: %v", ErrStore, err)
	}
	if listing == nil {
		return nil, fmt.Errorf("%w: core listing not found", ErrNotFound)
	}

	detail, err := s.repo.GetProfileDetail(ctx, timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading profile detail: %v", ErrStore, err)
	}

	return models.MergedView(listing, detail), nil
}

// GetListingsByBuilder lists all core listings owned by a builder.
func (s *DefaultService) GetListingsByBuilder(ctx context.Context, builderUsername string) ([]models.Listing, error) {
	listings, err := s.repo.GetListingsByBuilder(ctx, builderUsername)
	if err != nil {
		return nil, fmt.Errorf("%w: error loading listings: %v", ErrStore, err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return listings, nil
}

// GetProfileChangeLog returns a listing's change history, newest first.
func (s *DefaultService) GetProfileChangeLog(ctx context.Context, listingTimestamp string) ([]models.ProfileChangeLogEntry, error) {
	entries, err := s.repo.GetProfileChangeLog(ctx, listingTimestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading profile log: %v", ErrStore, err)
	}
	if entries == nil {
		entries = []models.ProfileChangeLogEntry{}
	}
	return entries, nil
}

// RecordMediaUpload writes the audit trail for one upload batch: one action
// entry and one profile change entry covering the whole batch.
func (s *DefaultService) RecordMediaUpload(ctx context.Context, listingTimestamp, editorUsername string, filenames []string) {
	s.logAction(ctx, ActionMediaUploaded, editorUsername,
		fmt.Sprintf("Uploaded %d file(s) to listing %s", len(filenames), listingTimestamp))
	s.logProfileChange(ctx, listingTimestamp, "Media", "files_uploaded",
		fmt.Sprintf("%d file(s)", len(filenames)), strings.Join(filenames, ", "), editorUsername)
}

func toAmenityList(value any) []models.AmenityDescriptor {
	// Round-trip through JSON to accept both decoded request bodies
	// ([]any of maps) and typed slices from direct callers.
	raw, err := json.Marshal(value)
	if err != nil {
		return []models.AmenityDescriptor{}
	}
	var list []models.AmenityDescriptor
	if err := json.Unmarshal(raw, &list); err != nil {
		return []models.AmenityDescriptor{}
	}
	return list
}

func joinAmenityNames(list []models.AmenityDescriptor) string {
	names := make([]string, len(list))
	for i, a := range list {
		names[i] = a.Name
	}
	return strings.Join(names, ", ")
}
