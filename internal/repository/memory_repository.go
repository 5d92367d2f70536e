package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rwalia/estatehub-server/internal/models"
)

// MemoryRepository is an indexed in-memory implementation of Repository. All
// collections are guarded by a single mutex, so every mutation is serialized
// through one writer. It backs tests and DB-less deployments.
type MemoryRepository struct {
	mu sync.RWMutex

	accounts       []*models.Account
	listings       map[string]*models.Listing
	listingOrder   []string
	profileDetails map[string]*models.ProfileDetail
	amenities      []models.AmenityDescriptor
	actionLog      []models.ActionLogEntry
	profileLog     []models.ProfileChangeLogEntry
}

// NewMemoryRepository creates an empty in-memory repository seeded with the
// default amenity catalog.
func NewMemoryRepository() *MemoryRepository {
	amenities := make([]models.AmenityDescriptor, len(models.SeedAmenities))
	copy(amenities, models.SeedAmenities)

	return &MemoryRepository{
		listings:       make(map[string]*models.Listing),
		profileDetails: make(map[string]*models.ProfileDetail),
		amenities:      amenities,
	}
}

// Account repository methods
func (r *MemoryRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *account
	r.accounts = append(r.accounts, &clone)
	return nil
}

func (r *MemoryRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) GetAccountByRoleAndUsername(ctx context.Context, role, username string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Role == role && a.Username == username {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindAccountByIdentifier(ctx context.Context, identifier string) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if strings.EqualFold(a.Username, identifier) || strings.EqualFold(a.Email, identifier) {
			clone := *a
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) AccountExists(ctx context.Context, role, username, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Role == role && (a.Username == username || a.Email == email) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) UpdateAccount(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, a := range r.accounts {
		if a.Username == account.Username {
			clone := *account
			r.accounts[i] = &clone
			return nil
		}
	}
	return nil
}

// Listing repository methods
func (r *MemoryRepository) CreateListing(ctx context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *listing
	r.listings[listing.CreatedTimestamp] = &clone
	r.listingOrder = append(r.listingOrder, listing.CreatedTimestamp)
	return nil
}

func (r *MemoryRepository) GetListing(ctx context.Context, timestamp string) (*models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[timestamp]
	if !ok {
		return nil, nil
	}
	clone := *l
	return &clone, nil
}

func (r *MemoryRepository) GetListingsByBuilder(ctx context.Context, builderUsername string) ([]models.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var listings []models.Listing
	for _, ts := range r.listingOrder {
		if l, ok := r.listings[ts]; ok && l.BuilderUsername == builderUsername {
			listings = append(listings, *l)
		}
	}
	return listings, nil
}

func (r *MemoryRepository) UpdateListing(ctx context.Context, listing *models.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.CreatedTimestamp]; !ok {
		return nil
	}
	clone := *listing
	r.listings[listing.CreatedTimestamp] = &clone
	return nil
}

// Profile detail repository methods
func (r *MemoryRepository) CreateProfileDetail(ctx context.Context, detail *models.ProfileDetail) error {
	return r.UpsertProfileDetail(ctx, detail)
}

func (r *MemoryRepository) GetProfileDetail(ctx context.Context, listingTimestamp string) (*models.ProfileDetail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.profileDetails[listingTimestamp]
	if !ok {
		return nil, nil
	}
	clone := cloneProfileDetail(d)
	return clone, nil
}

func (r *MemoryRepository) UpsertProfileDetail(ctx context.Context, detail *models.ProfileDetail) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.profileDetails[detail.ListingTimestamp] = cloneProfileDetail(detail)
	return nil
}

// Amenity catalog repository methods
func (r *MemoryRepository) ListAmenities(ctx context.Context) ([]models.AmenityDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	amenities := make([]models.AmenityDescriptor, len(r.amenities))
	copy(amenities, r.amenities)
	return amenities, nil
}

func (r *MemoryRepository) AddAmenity(ctx context.Context, amenity models.AmenityDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.amenities {
		if a.Name == amenity.Name {
			return nil
		}
	}
	r.amenities = append(r.amenities, amenity)
	return nil
}

// Audit log repository methods
func (r *MemoryRepository) AppendActionLog(ctx context.Context, entry *models.ActionLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LogTimestamp.IsZero() {
		entry.LogTimestamp = time.Now().UTC()
	}
	r.actionLog = append(r.actionLog, *entry)
	return nil
}

func (r *MemoryRepository) AppendProfileChangeLog(ctx context.Context, entry *models.ProfileChangeLogEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LogTimestamp.IsZero() {
		entry.LogTimestamp = time.Now().UTC()
	}
	r.profileLog = append(r.profileLog, *entry)
	return nil
}

func (r *MemoryRepository) GetProfileChangeLog(ctx context.Context, listingTimestamp string) ([]models.ProfileChangeLogEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []models.ProfileChangeLogEntry
	// Entries are appended chronologically; walk backwards for the
	// reverse-chronological read contract.
	for i := len(r.profileLog) - 1; i >= 0; i-- {
		if r.profileLog[i].ListingTimestamp == listingTimestamp {
			entries = append(entries, r.profileLog[i])
		}
	}
	return entries, nil
}

// ActionLogEntries returns a snapshot of the action log, oldest first.
func (r *MemoryRepository) ActionLogEntries() []models.ActionLogEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]models.ActionLogEntry, len(r.actionLog))
	copy(entries, r.actionLog)
	return entries
}

func cloneProfileDetail(d *models.ProfileDetail) *models.ProfileDetail {
	clone := *d
	clone.Amenities = make([]models.AmenityDescriptor, len(d.Amenities))
	copy(clone.Amenities, d.Amenities)
	return &clone
}
