package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/istlab/raffle-backend/internal/models"
	"github.com/istlab/raffle-backend/internal/rng"
)

// Engine orchestrates ticket pool, tier registry and draw ledger. All
// mutations are applied under a single lock so observers never see a
// partially-applied draw. The state machine has two states: idle and drawing.
type Engine struct {
	mu     sync.RWMutex
	pool   ticketPool
	tiers  tierRegistry
	ledger drawLedger
	config models.Settings

	drawing    bool
	cancelLoop context.CancelFunc

	final   rng.Source // consumes tickets, cryptographically strong
	preview rng.Source // cosmetic cycling only
	now     func() time.Time
	newID   func() string

	changeSubs  []func(models.Snapshot)
	drawSubs    []func(DrawCompleted)
	previewSubs []func(int)

	// Snapshot dispatch. Mutators enqueue under mu and flush after
	// releasing it; dispatchMu keeps delivery serialized.
	queueMu     sync.Mutex
	changeQueue []models.Snapshot
	dispatchMu  sync.Mutex
}

// Option customizes an Engine, mainly for tests.
type Option func(*Engine)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator replaces the identifier generator.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithFinalSource replaces the winner-consuming random source.
func WithFinalSource(src rng.Source) Option {
	return func(e *Engine) { e.final = src }
}

// WithPreviewSource replaces the cosmetic random source.
func WithPreviewSource(src rng.Source) Option {
	return func(e *Engine) { e.preview = src }
}

// New returns an Engine with the default configuration and a freshly
// generated ticket pool.
func New(opts ...Option) *Engine {
	cfg := models.DefaultSettings()
	e := &Engine{
		pool:    newTicketPool(cfg.StartNumber, cfg.EndNumber),
		config:  cfg,
		final:   rng.NewCrypto(),
		preview: rng.NewFast(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Restore replaces the engine state with a previously persisted snapshot.
// Absent fields default rather than fail: a zero configuration falls back to
// the defaults, an empty ticket list is regenerated from the configured range,
// remaining counts are recomputed from the ledger, and a selection pointing at
// no live tier is dropped.
func (e *Engine) Restore(snap models.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := snap.Config
	if cfg.StartNumber >= cfg.EndNumber {
		cfg = models.DefaultSettings()
	}
	if cfg.AnimationSpeed < models.SpeedSlow || cfg.AnimationSpeed > models.SpeedFast {
		cfg.AnimationSpeed = models.SpeedNormal
	}
	e.config = cfg

	if len(snap.Tickets) > 0 {
		e.pool = ticketPool{tickets: append([]models.Ticket(nil), snap.Tickets...)}
		// The persisted range is authoritative; a snapshot written mid-edit may
		// carry a stale ticket list.
		e.pool.regenerate(cfg.StartNumber, cfg.EndNumber)
	} else {
		e.pool = newTicketPool(cfg.StartNumber, cfg.EndNumber)
	}

	e.ledger = drawLedger{records: append([]models.DrawRecord(nil), snap.DrawRecords...)}

	e.tiers = tierRegistry{tiers: append([]models.PrizeTier(nil), snap.PrizeTiers...)}
	for i := range e.tiers.tiers {
		t := &e.tiers.tiers[i]
		remaining := t.Quota - e.ledger.unrevokedCount(t.ID)
		if remaining < 0 {
			remaining = 0
		}
		t.Remaining = remaining
	}
	if e.tiers.byID(snap.SelectedTierID) != nil {
		e.tiers.selectedID = snap.SelectedTierID
	} else {
		e.tiers.selectedID = ""
	}

	e.drawing = false
}

// Snapshot returns a copy of the full persisted state.
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Config:         e.config,
		Tickets:        e.pool.list(),
		PrizeTiers:     e.tiers.list(),
		DrawRecords:    e.ledger.list(),
		SelectedTierID: e.tiers.selectedID,
	}
}

// ListTickets returns all tickets in number order.
func (e *Engine) ListTickets() []models.Ticket {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.pool.list()
}

// ListTiers returns all tiers in registry order.
func (e *Engine) ListTiers() []models.PrizeTier {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tiers.list()
}

// CurrentTier returns the selected tier, or nil when none is selected.
func (e *Engine) CurrentTier() *models.PrizeTier {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if t := e.tiers.selected(); t != nil {
		cp := *t
		return &cp
	}
	return nil
}

// Records returns the full ledger, newest first, revoked records included.
func (e *Engine) Records() []models.DrawRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.list()
}

// RecordsForTier returns the unrevoked records for a live tier, newest first.
func (e *Engine) RecordsForTier(tierID string) ([]models.DrawRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.tiers.byID(tierID) == nil {
		return nil, &NotFoundError{Kind: "tier", ID: tierID}
	}
	return e.ledger.forTier(tierID), nil
}

// Config returns the current settings.
func (e *Engine) Config() models.Settings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config
}

// IsDrawing reports whether a draw is in progress.
func (e *Engine) IsDrawing() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.drawing
}

// CanDraw reports whether StartDraw would succeed: idle, a selected tier with
// remaining quota, and at least one undrawn ticket.
func (e *Engine) CanDraw() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.canDrawLocked()
}

func (e *Engine) canDrawLocked() bool {
	if e.drawing {
		return false
	}
	tier := e.tiers.selected()
	if tier == nil || tier.Remaining <= 0 {
		return false
	}
	return len(e.pool.undrawn()) > 0
}

// StartDraw transitions idle → drawing. Callers are expected to have checked
// CanDraw first, so an unmet precondition is a guarded no-op, not an error.
func (e *Engine) StartDraw() bool {
	e.mu.Lock()
	if !e.canDrawLocked() {
		e.mu.Unlock()
		return false
	}
	e.drawing = true

	var ctx context.Context
	if len(e.previewSubs) > 0 {
		ctx, e.cancelLoop = context.WithCancel(context.Background())
	}
	interval := previewInterval(e.config.AnimationSpeed)
	e.mu.Unlock()

	if ctx != nil {
		go e.previewLoop(ctx, interval)
	}
	return true
}

// PickWinner samples a random undrawn ticket while drawing, without mutating
// any state. It backs the cycling display and may be called repeatedly.
func (e *Engine) PickWinner() (int, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.drawing {
		return 0, false
	}
	return pick(e.preview, e.pool.undrawn())
}

// StopDraw ends the drawing state. If an undrawn ticket exists and the
// selected tier still has remaining quota, it atomically marks the ticket
// drawn, decrements the tier and appends a ledger record, then returns the
// result. Otherwise it returns nil; the engine ends up idle either way.
func (e *Engine) StopDraw() *DrawCompleted {
	e.mu.Lock()
	if !e.drawing {
		e.mu.Unlock()
		return nil
	}
	e.drawing = false
	if e.cancelLoop != nil {
		e.cancelLoop()
		e.cancelLoop = nil
	}

	winner, ok := pick(e.final, e.pool.undrawn())
	tier := e.tiers.selected()
	if !ok || tier == nil || tier.Remaining <= 0 {
		e.mu.Unlock()
		return nil
	}

	at := e.now()
	e.pool.markDrawn(winner, tier.ID, at)
	tier.Remaining--
	rec := e.ledger.appendRecord(e.newID(), winner, tier.ID, tier.Name, at)

	result := &DrawCompleted{RecordID: rec.ID, TicketNumber: winner, Tier: *tier}
	e.queueChangeLocked()
	e.mu.Unlock()

	e.flushChanges()
	e.notifyDraw(*result)
	return result
}

// Revoke reverses a committed draw: the record is flagged revoked, the ticket
// restored to undrawn, and the tier's remaining incremented (capped at quota).
// Unknown or already-revoked records are a silent no-op.
func (e *Engine) Revoke(recordID string) {
	e.mu.Lock()
	rec := e.ledger.revoke(recordID)
	if rec == nil {
		e.mu.Unlock()
		return
	}
	// After a range drop and re-add the same number can carry a newer
	// unrevoked record; the ticket then stays drawn for that record.
	if !e.ledger.hasUnrevoked(rec.TicketNumber) {
		e.pool.markUndrawn(rec.TicketNumber)
	}
	if tier := e.tiers.byID(rec.PrizeTierID); tier != nil && tier.Remaining < tier.Quota {
		tier.Remaining++
	}
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
}

// AddTier creates a tier with remaining initialized to quota. Color defaults
// to a palette pick when empty. The new tier becomes selected if nothing is.
func (e *Engine) AddTier(name string, quota int, color, soundResource string) (models.PrizeTier, error) {
	e.mu.Lock()
	if name == "" {
		e.mu.Unlock()
		return models.PrizeTier{}, validationf("tier name must not be empty")
	}
	if quota < 1 {
		e.mu.Unlock()
		return models.PrizeTier{}, validationf("tier quota must be >= 1, got %d", quota)
	}
	if color == "" {
		idx, err := e.preview.Uniform(len(defaultPalette))
		if err != nil {
			idx = 0
		}
		color = defaultPalette[idx]
	}
	tier := models.PrizeTier{
		ID:            e.newID(),
		Name:          name,
		Quota:         quota,
		Remaining:     quota,
		Color:         color,
		SoundResource: soundResource,
	}
	e.tiers.add(tier)
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
	return tier, nil
}

// UpdateTier applies a partial edit. A quota change recomputes remaining from
// the ledger; reducing quota below the tier's unrevoked draw count is rejected
// rather than clamped, so quota bookkeeping stays exact.
func (e *Engine) UpdateTier(id string, patch TierUpdate) (models.PrizeTier, error) {
	e.mu.Lock()
	tier := e.tiers.byID(id)
	if tier == nil {
		e.mu.Unlock()
		return models.PrizeTier{}, &NotFoundError{Kind: "tier", ID: id}
	}
	if patch.Name != nil && *patch.Name == "" {
		e.mu.Unlock()
		return models.PrizeTier{}, validationf("tier name must not be empty")
	}
	if patch.Quota != nil {
		if *patch.Quota < 1 {
			e.mu.Unlock()
			return models.PrizeTier{}, validationf("tier quota must be >= 1, got %d", *patch.Quota)
		}
		if drawn := e.ledger.unrevokedCount(id); *patch.Quota < drawn {
			e.mu.Unlock()
			return models.PrizeTier{}, validationf(
				"tier quota %d is below the %d winners already drawn; revoke draws first", *patch.Quota, drawn)
		}
	}

	if patch.Name != nil {
		tier.Name = *patch.Name
	}
	if patch.Quota != nil {
		tier.Quota = *patch.Quota
		tier.Remaining = tier.Quota - e.ledger.unrevokedCount(id)
	}
	if patch.Color != nil {
		tier.Color = *patch.Color
	}
	if patch.SoundResource != nil {
		tier.SoundResource = *patch.SoundResource
	}

	updated := *tier
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
	return updated, nil
}

// RemoveTier deletes a tier. Its ledger records stay as history; selection
// cascades to the first remaining tier or to none.
func (e *Engine) RemoveTier(id string) error {
	e.mu.Lock()
	if err := e.tiers.remove(id); err != nil {
		e.mu.Unlock()
		return err
	}
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
	return nil
}

// SelectTier moves the selected tier pointer.
func (e *Engine) SelectTier(id string) error {
	e.mu.Lock()
	if err := e.tiers.selectTier(id); err != nil {
		e.mu.Unlock()
		return err
	}
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
	return nil
}

// SetRange reconfigures the ticket range and regenerates the pool, preserving
// drawn status for numbers present in both ranges. Ledger records for dropped
// numbers are kept as orphaned history.
func (e *Engine) SetRange(start, end int) error {
	e.mu.Lock()
	if start >= end {
		e.mu.Unlock()
		return validationf("start number %d must be below end number %d", start, end)
	}
	e.config.StartNumber = start
	e.config.EndNumber = end
	e.pool.regenerate(start, end)
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
	return nil
}

// SettingsUpdate carries the optional fields of a settings edit.
type SettingsUpdate struct {
	AnimationSpeed *int
	SoundEnabled   *bool
}

// UpdateSettings applies a partial settings edit. The ticket range is edited
// through SetRange, which owns the pool regeneration cascade.
func (e *Engine) UpdateSettings(patch SettingsUpdate) (models.Settings, error) {
	e.mu.Lock()
	if patch.AnimationSpeed != nil {
		s := *patch.AnimationSpeed
		if s < models.SpeedSlow || s > models.SpeedFast {
			e.mu.Unlock()
			return models.Settings{}, validationf("animation speed must be between %d and %d, got %d",
				models.SpeedSlow, models.SpeedFast, s)
		}
		e.config.AnimationSpeed = s
	}
	if patch.SoundEnabled != nil {
		e.config.SoundEnabled = *patch.SoundEnabled
	}
	updated := e.config
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
	return updated, nil
}

// ResetPool restores every ticket to undrawn, every tier's remaining to its
// quota, and empties the ledger. Range and tier list stay as configured.
func (e *Engine) ResetPool() {
	e.mu.Lock()
	e.pool.clearDrawn()
	e.tiers.restoreRemaining()
	e.ledger.clear()
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
}

// ResetAll restores the default configuration, regenerates the default pool,
// and clears tiers, ledger and selection.
func (e *Engine) ResetAll() {
	e.mu.Lock()
	e.drawing = false
	if e.cancelLoop != nil {
		e.cancelLoop()
		e.cancelLoop = nil
	}
	e.config = models.DefaultSettings()
	e.pool = newTicketPool(e.config.StartNumber, e.config.EndNumber)
	e.tiers.clear()
	e.ledger.clear()
	e.queueChangeLocked()
	e.mu.Unlock()
	e.flushChanges()
}

// Close cancels the preview loop if one is running. The engine stays usable.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drawing = false
	if e.cancelLoop != nil {
		e.cancelLoop()
		e.cancelLoop = nil
	}
}

// previewInterval maps an animation speed tier to the cycling interval.
func previewInterval(speed int) time.Duration {
	switch speed {
	case models.SpeedSlow:
		return 100 * time.Millisecond
	case models.SpeedFast:
		return 20 * time.Millisecond
	default:
		return 50 * time.Millisecond
	}
}

// previewLoop publishes cosmetic samples until ctx is canceled. It only reads
// state; the consuming pick happens in StopDraw.
func (e *Engine) previewLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, ok := e.PickWinner(); ok {
				e.notifyPreview(n)
			}
		}
	}
}

// pick selects one number uniformly from candidates, or reports none.
func pick(src rng.Source, candidates []int) (int, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	idx, err := src.Uniform(len(candidates))
	if err != nil {
		return 0, false
	}
	return candidates[idx], true
}
