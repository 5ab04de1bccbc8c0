package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/istlab/raffle-backend/internal/models"
)

// snapshotRowID pins the snapshot to a single row; every save overwrites it.
const snapshotRowID = 1

// Postgres stores the snapshot as one JSON row via gorm.
type Postgres struct {
	db *gorm.DB
}

// NewPostgres wraps an open gorm handle.
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

// Load reads the snapshot row. A missing row means no state was saved yet.
func (s *Postgres) Load() (*models.Snapshot, error) {
	var row models.SnapshotRow
	if err := s.db.First(&row, "id = ?", snapshotRowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: failed to load snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
		return nil, fmt.Errorf("store: failed to decode snapshot: %w", err)
	}
	return &snap, nil
}

// Save upserts the snapshot row.
func (s *Postgres) Save(snap models.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("store: failed to encode snapshot: %w", err)
	}
	row := models.SnapshotRow{ID: snapshotRowID, Payload: string(payload)}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("store: failed to save snapshot: %w", err)
	}
	return nil
}
