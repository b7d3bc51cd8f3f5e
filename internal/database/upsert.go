package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"balimatch/server/internal/models"
)

// UpsertListings writes a batch inside the given gorm transaction handle,
// updating existing rows by id. Used by the ingestion processor.
func UpsertListings(tx *gorm.DB, batch []*models.Listing) error {
	if len(batch) == 0 {
		return nil
	}

	now := time.Now()
	for _, l := range batch {
		if l.CreatedAt.IsZero() {
			l.CreatedAt = now
		}
		l.UpdatedAt = now
	}

	err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"type", "district", "price", "bedrooms", "area",
			"pool", "status", "description", "url", "updated_at",
		}),
	}).Create(batch).Error
	if err != nil {
		return fmt.Errorf("failed to upsert listings batch: %w", err)
	}

	return nil
}
