package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Animation speed tiers for the cosmetic cycling display.
const (
	SpeedSlow   = 1
	SpeedNormal = 2
	SpeedFast   = 3
)

// Default ticket range used on first boot and after a full reset.
const (
	DefaultStartNumber = 1
	DefaultEndNumber   = 50
)

// Ticket is one numbered entry in the drawable pool.
type Ticket struct {
	Number      int        `json:"number"`
	IsDrawn     bool       `json:"isDrawn"`
	DrawnAt     *time.Time `json:"drawnAt,omitempty"`
	PrizeTierID string     `json:"prizeTierId,omitempty"`
}

// PrizeTier is one award category with a fixed winner quota.
// Remaining always equals Quota minus the unrevoked draws recorded against it.
type PrizeTier struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Quota         int    `json:"quota"`
	Remaining     int    `json:"remaining"`
	Color         string `json:"color"`
	SoundResource string `json:"soundResource,omitempty"`
}

// DrawRecord is one entry in the draw ledger. The ticket number and tier name
// are value snapshots: they survive range edits, tier renames and tier removal.
type DrawRecord struct {
	ID            string    `json:"id"`
	TicketNumber  int       `json:"ticketNumber"`
	PrizeTierID   string    `json:"prizeTierId"`
	PrizeTierName string    `json:"prizeTierName"`
	DrawnAt       time.Time `json:"drawnAt"`
	IsRevoked     bool      `json:"isRevoked"`
}

// Settings holds the user-facing configuration.
type Settings struct {
	StartNumber    int  `json:"startNumber"`
	EndNumber      int  `json:"endNumber"`
	AnimationSpeed int  `json:"animationSpeed"` // 1 slow, 2 normal, 3 fast
	SoundEnabled   bool `json:"soundEnabled"`
}

// DefaultSettings returns the configuration applied on first boot and by a
// full reset.
func DefaultSettings() Settings {
	return Settings{
		StartNumber:    DefaultStartNumber,
		EndNumber:      DefaultEndNumber,
		AnimationSpeed: SpeedNormal,
		SoundEnabled:   true,
	}
}

// Snapshot is the full persisted state, written after every mutation.
// Absent fields default on load rather than fail.
type Snapshot struct {
	Config         Settings     `json:"configuration"`
	Tickets        []Ticket     `json:"tickets"`
	PrizeTiers     []PrizeTier  `json:"prizeTiers"`
	DrawRecords    []DrawRecord `json:"drawRecords"`
	SelectedTierID string       `json:"selectedTierId,omitempty"`
}

// OperatorRole enumerates allowed operator roles.
type OperatorRole string

const (
	RoleAdmin OperatorRole = "ADMIN" // manage operators, run resets
	RoleHost  OperatorRole = "HOST"  // run draws and tier/range edits
)

// Operator is an authenticated account allowed to run the raffle.
// Only present in database mode; the file-store mode runs without auth.
type Operator struct {
	ID           uuid.UUID    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Username     string       `gorm:"uniqueIndex;not null"`
	PasswordHash string       `gorm:"not null"`
	Role         OperatorRole `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SnapshotRow stores the serialized Snapshot as a single row.
type SnapshotRow struct {
	ID        uint   `gorm:"primaryKey"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// Migrate creates/updates the persistence tables.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&Operator{},
		&SnapshotRow{},
	)
}
