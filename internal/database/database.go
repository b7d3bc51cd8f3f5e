package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"balimatch/server/internal/models"
)

// Store is the listings document store adapter. The search core only sees
// it through the repository interface in internal/search.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) RunMigrations() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			type TEXT,
			district TEXT,
			price TEXT,
			bedrooms TEXT,
			area TEXT,
			pool TEXT,
			status TEXT,
			description TEXT,
			url TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create listings table: %v", err)
	}

	_, err = s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_district
		ON listings(district);
	`)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_listings_type_status
		ON listings(type, status);
	`)
	if err != nil {
		return err
	}

	return nil
}

// findColumns are the only fields callers may push down as exact matches.
var findColumns = map[string]bool{
	"type":     true,
	"district": true,
	"status":   true,
	"pool":     true,
}

// FindByFields retrieves up to limit listings matching every given field,
// case-insensitively. Unknown field names are rejected rather than ignored.
func (s *Store) FindByFields(ctx context.Context, fields map[string]string, limit int) ([]models.Listing, error) {
	var conds []string
	var args []interface{}

	// Stable clause order keeps query plans and logs deterministic.
	for _, col := range []string{"type", "district", "status", "pool"} {
		val, ok := fields[col]
		if !ok {
			continue
		}
		conds = append(conds, fmt.Sprintf("LOWER(%s) = LOWER(?)", col))
		args = append(args, val)
	}
	for col := range fields {
		if !findColumns[col] {
			return nil, fmt.Errorf("field %q is not queryable", col)
		}
	}

	query := `
		SELECT id, type, district, price, bedrooms, area, pool, status,
		       COALESCE(description, '') as description,
		       COALESCE(url, '') as url
		FROM listings
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var l models.Listing
		var typ, district, price, bedrooms, area, pool, status sql.NullString

		err := rows.Scan(
			&l.ID,
			&typ,
			&district,
			&price,
			&bedrooms,
			&area,
			&pool,
			&status,
			&l.Description,
			&l.URL,
		)
		if err != nil {
			return nil, err
		}

		if typ.Valid {
			l.Type = typ.String
		}
		if district.Valid {
			l.District = district.String
		}
		if price.Valid {
			l.Price = price.String
		}
		if bedrooms.Valid {
			l.Bedrooms = bedrooms.String
		}
		if area.Valid {
			l.Area = area.String
		}
		if pool.Valid {
			l.Pool = pool.String
		}
		if status.Valid {
			l.Status = status.String
		}

		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// ExistsInDistrict is the lightweight limit-1 probe behind neighbor
// suggestions.
func (s *Store) ExistsInDistrict(ctx context.Context, district string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM listings WHERE LOWER(district) = LOWER(?) LIMIT 1)",
		district,
	).Scan(&exists)
	return exists, err
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) GetDB() *sql.DB {
	return s.db
}
