// Package trackingid issues unique public tracking identifiers.
// A per-day counter row in PostgreSQL backs the numeric suffix, so
// identifiers stay unique across application instances.
package trackingid

import (
	"context"
	"fmt"
	"time"

	"parceltrack/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// SequenceDTO represents the database structure of the per-day counter.
type SequenceDTO struct {
	Day     string `gorm:"primaryKey"`
	Counter int
}

// TableName specifies the database table name for tracking sequences.
func (SequenceDTO) TableName() string {
	return "tracking_sequences"
}

// PostgresGenerator issues tracking identifiers of the form
// TRK-YYYYMMDD-NNNNNN by atomically incrementing the day's counter row.
type PostgresGenerator struct {
	db  *gorm.DB
	now func() time.Time
}

// NewPostgresGenerator creates a generator. Requires a GORM database
// connection for counter updates.
func NewPostgresGenerator(db *gorm.DB) *PostgresGenerator {
	return &PostgresGenerator{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Next issues the next tracking identifier for today.
func (g *PostgresGenerator) Next(ctx context.Context) (kernel.TrackingID, error) {
	today := g.now()
	day := today.Format("20060102")

	var counter int
	err := g.db.WithContext(ctx).Raw(`
		INSERT INTO tracking_sequences (day, counter)
		VALUES (?, 1)
		ON CONFLICT (day)
		DO UPDATE SET counter = tracking_sequences.counter + 1
		RETURNING counter`,
		day,
	).Scan(&counter).Error
	if err != nil {
		return kernel.TrackingID{}, fmt.Errorf("failed to advance tracking sequence: %w", err)
	}

	return kernel.NewTrackingID(today, counter)
}
