package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rwalia/estatehub-server/internal/models"
	"github.com/rwalia/estatehub-server/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListAmenitiesSeeded(t *testing.T) {
	svc, _ := newTestService()

	list := svc.ListAmenities(context.Background())
	require.Len(t, list, len(models.SeedAmenities))
	assert.Equal(t, "Lift", list[0].Name)
	assert.Equal(t, "Sewage Treatment Plant", list[len(list)-1].Name)
}

func TestListAmenitiesFallsBackOnStoreError(t *testing.T) {
	svc := NewDefaultService(failingAmenityRepo{}, zap.NewNop(), "test-secret")

	list := svc.ListAmenities(context.Background())
	require.Len(t, list, len(models.SeedAmenities))
	assert.Equal(t, "Lift", list[0].Name)
}

func TestAddAmenityIfAbsentDedupesByCase(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	added := svc.AddAmenityIfAbsent(ctx, models.AmenityDescriptor{Name: "Pool Table", Icon: "🎱"})
	assert.True(t, added)

	// Same name in different case and with surrounding whitespace is a no-op
	added = svc.AddAmenityIfAbsent(ctx, models.AmenityDescriptor{Name: "  pool table ", Icon: "🎱"})
	assert.True(t, added)

	list := svc.ListAmenities(ctx)
	assert.Len(t, list, len(models.SeedAmenities)+1)
}

func TestAddAmenityIfAbsentExistingSeed(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	added := svc.AddAmenityIfAbsent(ctx, models.AmenityDescriptor{Name: "LIFT", Icon: "⭐"})
	assert.True(t, added)

	list := svc.ListAmenities(ctx)
	require.Len(t, list, len(models.SeedAmenities))
	// The existing seed entry keeps its icon
	assert.Equal(t, "↑↓", list[0].Icon)
}

func TestAddAmenityIfAbsentRejectsBlank(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	assert.False(t, svc.AddAmenityIfAbsent(ctx, models.AmenityDescriptor{Name: "   ", Icon: "⭐"}))
	assert.False(t, svc.AddAmenityIfAbsent(ctx, models.AmenityDescriptor{Name: "Terrace", Icon: ""}))

	list := svc.ListAmenities(ctx)
	assert.Len(t, list, len(models.SeedAmenities))
}

// failingAmenityRepo errors on every amenity read to exercise the fallback.
type failingAmenityRepo struct {
	repository.Repository
}

func (failingAmenityRepo) ListAmenities(ctx context.Context) ([]models.AmenityDescriptor, error) {
	return nil, errors.New("store unavailable")
}
