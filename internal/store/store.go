// Package store persists engine snapshots behind a load/save contract.
// Saving is best-effort: a write failure is reported to the caller (and
// logged there) but never rolls back the in-memory state.
package store

import (
	"github.com/istlab/raffle-backend/internal/models"
)

// Store is the durable snapshot contract. Load returns (nil, nil) when no
// snapshot has been written yet.
type Store interface {
	Load() (*models.Snapshot, error)
	Save(models.Snapshot) error
}
