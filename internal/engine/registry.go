package engine

import (
	"github.com/istlab/raffle-backend/internal/models"
)

// defaultPalette is the pool of theme colors assigned to tiers created without
// an explicit color.
var defaultPalette = []string{
	"#00d4ff", // neon blue
	"#9d4edd", // neon purple
	"#ff6b35", // neon orange
	"#4ecdc4", // neon teal
	"#ff006e", // neon pink
	"#3a86ff", // blue
	"#8338ec", // purple
}

// TierUpdate carries the optional fields of a tier edit. Nil means unchanged.
type TierUpdate struct {
	Name          *string
	Quota         *int
	Color         *string
	SoundResource *string
}

// tierRegistry owns the ordered list of prize tiers and the single selected
// tier pointer. Quota/remaining consistency against the ledger is enforced by
// the engine, which passes in unrevoked draw counts where needed.
type tierRegistry struct {
	tiers      []models.PrizeTier
	selectedID string
}

// add appends a new tier with remaining initialized to quota. If no tier is
// currently selected, the new tier becomes selected.
func (r *tierRegistry) add(tier models.PrizeTier) {
	r.tiers = append(r.tiers, tier)
	if r.selectedID == "" {
		r.selectedID = tier.ID
	}
}

// byID returns a pointer into the registry, or nil if id is unknown.
func (r *tierRegistry) byID(id string) *models.PrizeTier {
	for i := range r.tiers {
		if r.tiers[i].ID == id {
			return &r.tiers[i]
		}
	}
	return nil
}

// remove deletes the tier. If it was selected, selection falls back to the
// first remaining tier in registry order, or to none.
func (r *tierRegistry) remove(id string) error {
	idx := -1
	for i := range r.tiers {
		if r.tiers[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &NotFoundError{Kind: "tier", ID: id}
	}
	r.tiers = append(r.tiers[:idx], r.tiers[idx+1:]...)

	if r.selectedID == id {
		r.selectedID = ""
		if len(r.tiers) > 0 {
			r.selectedID = r.tiers[0].ID
		}
	}
	return nil
}

// selectTier moves the selected tier pointer.
func (r *tierRegistry) selectTier(id string) error {
	if r.byID(id) == nil {
		return &NotFoundError{Kind: "tier", ID: id}
	}
	r.selectedID = id
	return nil
}

// selected returns the currently selected tier, or nil when none is selected.
func (r *tierRegistry) selected() *models.PrizeTier {
	if r.selectedID == "" {
		return nil
	}
	return r.byID(r.selectedID)
}

// restoreRemaining resets every tier's remaining to its quota.
func (r *tierRegistry) restoreRemaining() {
	for i := range r.tiers {
		r.tiers[i].Remaining = r.tiers[i].Quota
	}
}

// clear removes all tiers and the selection.
func (r *tierRegistry) clear() {
	r.tiers = nil
	r.selectedID = ""
}

// list returns a copy of the registry in order.
func (r *tierRegistry) list() []models.PrizeTier {
	out := make([]models.PrizeTier, len(r.tiers))
	copy(out, r.tiers)
	return out
}
