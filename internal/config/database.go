package config

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rwalia/estatehub-server/internal/models"
)

// SetupDatabase initializes the database connection
func SetupDatabase(cfg *Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	// Create tables if they don't exist
	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return db, nil
}

// createTables creates the necessary tables in the database
func createTables(db *sqlx.DB) error {
	// Create accounts table
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS accounts (
			role VARCHAR(32) NOT NULL,
			username VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			firstname VARCHAR(255) NOT NULL,
			lastname VARCHAR(255) NOT NULL,
			contact VARCHAR(64) NOT NULL,
			created_date VARCHAR(10) NOT NULL,
			PRIMARY KEY (role, username)
		)
	`)
	if err != nil {
		return err
	}

	// Create listings table. The creation timestamp doubles as the key the
	// profile detail record is joined on.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			created_timestamp VARCHAR(64) PRIMARY KEY,
			builder_username VARCHAR(255) NOT NULL,
			property_name VARCHAR(255) NOT NULL,
			location VARCHAR(255) NOT NULL,
			unit_type VARCHAR(64) NOT NULL,
			listing_price VARCHAR(64) NOT NULL,
			status VARCHAR(64) NOT NULL,
			expiry_date VARCHAR(64) NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		return err
	}

	// Create profile_details table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS profile_details (
			listing_timestamp VARCHAR(64) PRIMARY KEY REFERENCES listings(created_timestamp),
			sq_ft VARCHAR(64) NOT NULL DEFAULT '',
			num_bedrooms VARCHAR(64) NOT NULL DEFAULT '',
			num_bathrooms VARCHAR(64) NOT NULL DEFAULT '',
			num_balcony VARCHAR(64) NOT NULL DEFAULT '',
			possession_on VARCHAR(64) NOT NULL DEFAULT '',
			apartment_name VARCHAR(255) NOT NULL DEFAULT '',
			parking VARCHAR(255) NOT NULL DEFAULT '',
			power_backup VARCHAR(255) NOT NULL DEFAULT '',
			age_of_building VARCHAR(255) NOT NULL DEFAULT '',
			ownership_type VARCHAR(255) NOT NULL DEFAULT '',
			maintenance_charges VARCHAR(64) NOT NULL DEFAULT '',
			flooring VARCHAR(255) NOT NULL DEFAULT '',
			built_up_area VARCHAR(255) NOT NULL DEFAULT '',
			carpet_area VARCHAR(255) NOT NULL DEFAULT '',
			furnishing_status VARCHAR(255) NOT NULL DEFAULT '',
			facing VARCHAR(64) NOT NULL DEFAULT '',
			floor VARCHAR(64) NOT NULL DEFAULT '',
			gated_security VARCHAR(64) NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			unique_views BIGINT NOT NULL DEFAULT 0,
			shortlists BIGINT NOT NULL DEFAULT 0,
			contacted BIGINT NOT NULL DEFAULT 0,
			visited BIGINT NOT NULL DEFAULT 0,
			amenities_json TEXT NOT NULL DEFAULT '[]'
		)
	`)
	if err != nil {
		return err
	}

	// Create global_amenities table
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS global_amenities (
			position SERIAL,
			name VARCHAR(255) PRIMARY KEY,
			icon VARCHAR(16) NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create audit log tables
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS action_log (
			id VARCHAR(36) PRIMARY KEY,
			log_timestamp TIMESTAMP NOT NULL,
			action_type VARCHAR(64) NOT NULL,
			user_id VARCHAR(255) NOT NULL,
			details TEXT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS profile_change_log (
			id VARCHAR(36) PRIMARY KEY,
			log_timestamp TIMESTAMP NOT NULL,
			listing_timestamp VARCHAR(64) NOT NULL,
			section VARCHAR(64) NOT NULL,
			field_name VARCHAR(64) NOT NULL,
			old_value TEXT NOT NULL,
			new_value TEXT NOT NULL,
			editor_username VARCHAR(255) NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Create indexes for better performance
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_listings_builder ON listings(builder_username)",
		"CREATE INDEX IF NOT EXISTS idx_profile_change_log_listing ON profile_change_log(listing_timestamp, log_timestamp)",
	}

	for _, idx := range indexes {
		_, err = db.Exec(idx)
		if err != nil {
			log.Printf("Warning: Failed to create index: %v", err)
			// Don't return error here, indexes are not critical
		}
	}

	return seedAmenities(db)
}

// seedAmenities pre-populates the global catalog with the default amenity set
// on first run. Existing rows are left untouched.
func seedAmenities(db *sqlx.DB) error {
	stmt := `INSERT INTO global_amenities (name, icon) VALUES ($1, $2) ON CONFLICT DO NOTHING`

	for _, a := range models.SeedAmenities {
		if _, err := db.Exec(stmt, a.Name, a.Icon); err != nil {
			return err
		}
	}
	return nil
}
