package repository

import (
	"context"

	"github.com/rwalia/estatehub-server/internal/models"
)

// Repository interface defines the persistence operations the services need.
// Lookup methods return (nil, nil) when no record matches.
type Repository interface {
	// Account operations
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByUsername(ctx context.Context, username string) (*models.Account, error)
	GetAccountByRoleAndUsername(ctx context.Context, role, username string) (*models.Account, error)
	// FindAccountByIdentifier matches username or email, case-insensitively.
	FindAccountByIdentifier(ctx context.Context, identifier string) (*models.Account, error)
	AccountExists(ctx context.Context, role, username, email string) (bool, error)
	UpdateAccount(ctx context.Context, account *models.Account) error

	// Listing operations
	CreateListing(ctx context.Context, listing *models.Listing) error
	GetListing(ctx context.Context, timestamp string) (*models.Listing, error)
	GetListingsByBuilder(ctx context.Context, builderUsername string) ([]models.Listing, error)
	UpdateListing(ctx context.Context, listing *models.Listing) error

	// Profile detail operations
	CreateProfileDetail(ctx context.Context, detail *models.ProfileDetail) error
	GetProfileDetail(ctx context.Context, listingTimestamp string) (*models.ProfileDetail, error)
	UpsertProfileDetail(ctx context.Context, detail *models.ProfileDetail) error

	// Amenity catalog operations
	ListAmenities(ctx context.Context) ([]models.AmenityDescriptor, error)
	AddAmenity(ctx context.Context, amenity models.AmenityDescriptor) error

	// Audit log operations
	AppendActionLog(ctx context.Context, entry *models.ActionLogEntry) error
	AppendProfileChangeLog(ctx context.Context, entry *models.ProfileChangeLogEntry) error
	// GetProfileChangeLog returns entries for a listing in reverse chronological order.
	GetProfileChangeLog(ctx context.Context, listingTimestamp string) ([]models.ProfileChangeLogEntry, error)
}
