package service

import (
	"context"
	"strings"

	"github.com/rwalia/estatehub-server/internal/models"
	"go.uber.org/zap"
)

// ListAmenities returns the global amenity catalog in insertion order. When
// the store cannot be read it falls back to the fixed default seed list.
func (s *DefaultService) ListAmenities(ctx context.Context) []models.AmenityDescriptor {
	amenities, err := s.repo.ListAmenities(ctx)
	if err != nil {
		s.log.Warn("failed to load amenity catalog, using defaults", zap.Error(err))
		fallback := make([]models.AmenityDescriptor, len(models.SeedAmenities))
		copy(fallback, models.SeedAmenities)
		return fallback
	}
	return amenities
}

// AddAmenityIfAbsent folds one descriptor into the global catalog. Blank names
// or icons are rejected. A case-insensitive, whitespace-trimmed name match
// against the current catalog makes redundant calls an idempotent no-op, so
// the routine is safe to invoke once per amenity on every profile save.
func (s *DefaultService) AddAmenityIfAbsent(ctx context.Context, amenity models.AmenityDescriptor) bool {
	if strings.TrimSpace(amenity.Name) == "" || strings.TrimSpace(amenity.Icon) == "" {
		return false
	}

	current := s.ListAmenities(ctx)
	want := strings.ToLower(strings.TrimSpace(amenity.Name))
	for _, existing := range current {
		if strings.ToLower(strings.TrimSpace(existing.Name)) == want {
			return true // Already known, treat as success
		}
	}

	if err := s.repo.AddAmenity(ctx, amenity); err != nil {
		s.log.Warn("failed to save new global amenity",
			zap.String("name", amenity.Name),
			zap.Error(err))
		return false
	}
	return true
}
