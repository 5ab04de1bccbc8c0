package engine

import (
	"time"

	"github.com/istlab/raffle-backend/internal/models"
)

// drawLedger is the append-style history of draw events. Records are kept
// newest-first for display; correctness does not depend on order. Records are
// never deleted, only flagged revoked; a full reset clears the ledger.
type drawLedger struct {
	records []models.DrawRecord
}

// appendRecord prepends a new unrevoked record.
func (l *drawLedger) appendRecord(id string, ticketNumber int, tierID, tierName string, at time.Time) models.DrawRecord {
	rec := models.DrawRecord{
		ID:            id,
		TicketNumber:  ticketNumber,
		PrizeTierID:   tierID,
		PrizeTierName: tierName,
		DrawnAt:       at,
	}
	l.records = append([]models.DrawRecord{rec}, l.records...)
	return rec
}

// byID returns a pointer into the ledger, or nil for unknown ids.
func (l *drawLedger) byID(id string) *models.DrawRecord {
	for i := range l.records {
		if l.records[i].ID == id {
			return &l.records[i]
		}
	}
	return nil
}

// revoke flips IsRevoked and returns the record. Revoking an unknown or
// already-revoked record is a silent no-op returning nil: idempotence takes
// precedence over strict error reporting here.
func (l *drawLedger) revoke(id string) *models.DrawRecord {
	rec := l.byID(id)
	if rec == nil || rec.IsRevoked {
		return nil
	}
	rec.IsRevoked = true
	return rec
}

// forTier returns the unrevoked records for a tier, newest first.
func (l *drawLedger) forTier(tierID string) []models.DrawRecord {
	var out []models.DrawRecord
	for _, r := range l.records {
		if r.PrizeTierID == tierID && !r.IsRevoked {
			out = append(out, r)
		}
	}
	return out
}

// unrevokedCount returns the number of unrevoked records for a tier.
func (l *drawLedger) unrevokedCount(tierID string) int {
	count := 0
	for _, r := range l.records {
		if r.PrizeTierID == tierID && !r.IsRevoked {
			count++
		}
	}
	return count
}

// hasUnrevoked reports whether an unrevoked record exists for ticketNumber.
func (l *drawLedger) hasUnrevoked(ticketNumber int) bool {
	for _, r := range l.records {
		if r.TicketNumber == ticketNumber && !r.IsRevoked {
			return true
		}
	}
	return false
}

// clear empties the ledger.
func (l *drawLedger) clear() {
	l.records = nil
}

// list returns a copy of all records, newest first.
func (l *drawLedger) list() []models.DrawRecord {
	out := make([]models.DrawRecord, len(l.records))
	copy(out, l.records)
	return out
}
