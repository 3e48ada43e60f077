package database

import (
	"database/sql"
	"fmt"
)

// schemaStatements run in order on startup. Tables are additive only; anything
// structural beyond IF NOT EXISTS needs a new statement appended here.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		uid UUID PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL CHECK (price >= 0),
		location TEXT NOT NULL,
		country TEXT NOT NULL,
		image_filename TEXT NOT NULL,
		image_url TEXT NOT NULL,
		owner_id UUID REFERENCES users(uid),
		is_booked BOOLEAN NOT NULL DEFAULT FALSE,
		booked_by UUID REFERENCES users(uid),
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id UUID PRIMARY KEY,
		listing_id UUID NOT NULL REFERENCES listings(id),
		user_id UUID NOT NULL REFERENCES users(uid),
		rating INT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		listing_id UUID NOT NULL REFERENCES listings(id),
		user_id UUID NOT NULL REFERENCES users(uid),
		amount NUMERIC(12,2) NOT NULL,
		platform_fee NUMERIC(12,2) NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		status TEXT NOT NULL DEFAULT 'Pending',
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_listing ON transactions (listing_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_listing ON reviews (listing_id)`,
}

// Migrate bootstraps the schema.
func Migrate(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema statement: %w", err)
		}
	}
	return nil
}
