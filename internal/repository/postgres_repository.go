package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rwalia/estatehub-server/internal/models"
)

// PostgresRepository implements the Repository interface using PostgreSQL
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
	}
}

// GetDB returns the underlying database connection
func (r *PostgresRepository) GetDB() *sqlx.DB {
	return r.db
}

// profileDetailRow carries the raw amenities_json column alongside the
// exported struct so sqlx can scan the full row.
type profileDetailRow struct {
	models.ProfileDetail
	AmenitiesJSON string `db:"amenities_json"`
}

const profileDetailColumns = `listing_timestamp, sq_ft, num_bedrooms, num_bathrooms, num_balcony,
	possession_on, apartment_name, parking, power_backup, age_of_building, ownership_type,
	maintenance_charges, flooring, built_up_area, carpet_area, furnishing_status, facing,
	floor, gated_security, description, unique_views, shortlists, contacted, visited, amenities_json`

// Account repository methods
func (r *PostgresRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (role, username, password_hash, email, firstname, lastname, contact, created_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.Role, account.Username, account.PasswordHash, account.Email,
		account.FirstName, account.LastName, account.Contact, account.CreatedDate)

	return err
}

func (r *PostgresRepository) GetAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT * FROM accounts WHERE username = $1`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Account not found
		}
		return nil, err
	}

	return &account, nil
}

func (r *PostgresRepository) GetAccountByRoleAndUsername(ctx context.Context, role, username string) (*models.Account, error) {
	query := `SELECT * FROM accounts WHERE role = $1 AND username = $2`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, role, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (r *PostgresRepository) FindAccountByIdentifier(ctx context.Context, identifier string) (*models.Account, error) {
	query := `SELECT * FROM accounts WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1)`

	var account models.Account
	err := r.db.GetContext(ctx, &account, query, identifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}

func (r *PostgresRepository) AccountExists(ctx context.Context, role, username, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE role = $1 AND (username = $2 OR email = $3))`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, role, username, email).Scan(&exists)
	return exists, err
}

func (r *PostgresRepository) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET password_hash = $1, email = $2, firstname = $3, lastname = $4, contact = $5
		WHERE username = $6
	`

	_, err := r.db.ExecContext(ctx, query,
		account.PasswordHash, account.Email, account.FirstName,
		account.LastName, account.Contact, account.Username)

	return err
}

// Listing repository methods
func (r *PostgresRepository) CreateListing(ctx context.Context, listing *models.Listing) error {
	query := `
		INSERT INTO listings (created_timestamp, builder_username, property_name, location, unit_type, listing_price, status, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		listing.CreatedTimestamp, listing.BuilderUsername, listing.PropertyName,
		listing.Location, listing.UnitType, listing.ListingPrice, listing.Status, listing.ExpiryDate)

	return err
}

func (r *PostgresRepository) GetListing(ctx context.Context, timestamp string) (*models.Listing, error) {
	query := `SELECT * FROM listings WHERE created_timestamp = $1`

	var listing models.Listing
	err := r.db.GetContext(ctx, &listing, query, timestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Listing not found
		}
		return nil, err
	}

	return &listing, nil
}

func (r *PostgresRepository) GetListingsByBuilder(ctx context.Context, builderUsername string) ([]models.Listing, error) {
	query := `SELECT * FROM listings WHERE builder_username = $1 ORDER BY created_timestamp ASC`

	var listings []models.Listing
	err := r.db.SelectContext(ctx, &listings, query, builderUsername)
	if err != nil {
		return nil, err
	}

	return listings, nil
}

func (r *PostgresRepository) UpdateListing(ctx context.Context, listing *models.Listing) error {
	query := `
		UPDATE listings
		SET builder_username = $1, property_name = $2, location = $3, unit_type = $4,
			listing_price = $5, status = $6, expiry_date = $7
		WHERE created_timestamp = $8
	`

	_, err := r.db.ExecContext(ctx, query,
		listing.BuilderUsername, listing.PropertyName, listing.Location, listing.UnitType,
		listing.ListingPrice, listing.Status, listing.ExpiryDate, listing.CreatedTimestamp)

	return err
}

// Profile detail repository methods
func (r *PostgresRepository) CreateProfileDetail(ctx context.Context, detail *models.ProfileDetail) error {
	amenitiesJSON, err := detail.EncodeAmenities()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profile_details (` + profileDetailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	`

	_, err = r.db.ExecContext(ctx, query, profileDetailArgs(detail, amenitiesJSON)...)
	return err
}

func (r *PostgresRepository) GetProfileDetail(ctx context.Context, listingTimestamp string) (*models.ProfileDetail, error) {
	query := `SELECT ` + profileDetailColumns + ` FROM profile_details WHERE listing_timestamp = $1`

	var row profileDetailRow
	err := r.db.GetContext(ctx, &row, query, listingTimestamp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Profile detail not found
		}
		return nil, err
	}

	detail := row.ProfileDetail
	detail.DecodeAmenities(row.AmenitiesJSON)
	return &detail, nil
}

func (r *PostgresRepository) UpsertProfileDetail(ctx context.Context, detail *models.ProfileDetail) error {
	amenitiesJSON, err := detail.EncodeAmenities()
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profile_details (` + profileDetailColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		ON CONFLICT (listing_timestamp) DO UPDATE SET
			sq_ft = EXCLUDED.sq_ft, num_bedrooms = EXCLUDED.num_bedrooms,
			num_bathrooms = EXCLUDED.num_bathrooms, num_balcony = EXCLUDED.num_balcony,
			possession_on = EXCLUDED.possession_on, apartment_name = EXCLUDED.apartment_name,
			parking = EXCLUDED.parking, power_backup = EXCLUDED.power_backup,
			age_of_building = EXCLUDED.age_of_building, ownership_type = EXCLUDED.ownership_type,
			maintenance_charges = EXCLUDED.maintenance_charges, flooring = EXCLUDED.flooring,
			built_up_area = EXCLUDED.built_up_area, carpet_area = EXCLUDED.carpet_area,
			furnishing_status = EXCLUDED.furnishing_status, facing = EXCLUDED.facing,
			floor = EXCLUDED.floor, gated_security = EXCLUDED.gated_security,
			description = EXCLUDED.description, unique_views = EXCLUDED.unique_views,
			shortlists = EXCLUDED.shortlists, contacted = EXCLUDED.contacted,
			visited = EXCLUDED.visited, amenities_json = EXCLUDED.amenities_json
	`

	_, err = r.db.ExecContext(ctx, query, profileDetailArgs(detail, amenitiesJSON)...)
	return err
}

func profileDetailArgs(detail *models.ProfileDetail, amenitiesJSON string) []interface{} {
	return []interface{}{
		detail.ListingTimestamp, detail.SqFt, detail.NumBedrooms, detail.NumBathrooms,
		detail.NumBalcony, detail.PossessionOn, detail.ApartmentName, detail.Parking,
		detail.PowerBackup, detail.AgeOfBuilding, detail.OwnershipType, detail.MaintenanceCharges,
		detail.Flooring, detail.BuiltUpArea, detail.CarpetArea, detail.FurnishingStatus,
		detail.Facing, detail.Floor, detail.GatedSecurity, detail.Description,
		detail.UniqueViews, detail.Shortlists, detail.Contacted, detail.Visited, amenitiesJSON,
	}
}

// Amenity catalog repository methods
func (r *PostgresRepository) ListAmenities(ctx context.Context) ([]models.AmenityDescriptor, error) {
	query := `SELECT name, icon FROM global_amenities ORDER BY position ASC`

	var amenities []models.AmenityDescriptor
	err := r.db.SelectContext(ctx, &amenities, query)
	if err != nil {
		return nil, err
	}

	return amenities, nil
}

func (r *PostgresRepository) AddAmenity(ctx context.Context, amenity models.AmenityDescriptor) error {
	query := `INSERT INTO global_amenities (name, icon) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	_, err := r.db.ExecContext(ctx, query, amenity.Name, amenity.Icon)
	return err
}

// Audit log repository methods
func (r *PostgresRepository) AppendActionLog(ctx context.Context, entry *models.ActionLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LogTimestamp.IsZero() {
		entry.LogTimestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO action_log (id, log_timestamp, action_type, user_id, details)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.LogTimestamp, entry.ActionType, entry.UserID, entry.Details)

	return err
}

func (r *PostgresRepository) AppendProfileChangeLog(ctx context.Context, entry *models.ProfileChangeLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.LogTimestamp.IsZero() {
		entry.LogTimestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO profile_change_log (id, log_timestamp, listing_timestamp, section, field_name, old_value, new_value, editor_username)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.LogTimestamp, entry.ListingTimestamp, entry.Section,
		entry.FieldName, entry.OldValue, entry.NewValue, entry.EditorUsername)

	return err
}

func (r *PostgresRepository) GetProfileChangeLog(ctx context.Context, listingTimestamp string) ([]models.ProfileChangeLogEntry, error) {
	query := `
		SELECT * FROM profile_change_log
		WHERE listing_timestamp = $1
		ORDER BY log_timestamp DESC
	`

	var entries []models.ProfileChangeLogEntry
	err := r.db.SelectContext(ctx, &entries, query, listingTimestamp)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
