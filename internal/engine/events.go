package engine

import (
	"github.com/istlab/raffle-backend/internal/models"
)

// DrawCompleted is emitted after a draw commits. Downstream effects (display,
// audio cue, confetti, webhooks) subscribe to it; the engine itself performs
// no I/O.
type DrawCompleted struct {
	RecordID     string           `json:"recordId"`
	TicketNumber int              `json:"ticketNumber"`
	Tier         models.PrizeTier `json:"tier"`
}

// SubscribeChange registers fn to receive the full snapshot after every
// mutation that changes persisted state. Snapshots are delivered one at a
// time in mutation order, possibly from a goroutine other than the mutating
// one. Callbacks must not call back into engine mutations.
func (e *Engine) SubscribeChange(fn func(models.Snapshot)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.changeSubs = append(e.changeSubs, fn)
}

// SubscribeDraw registers fn to receive DrawCompleted events.
func (e *Engine) SubscribeDraw(fn func(DrawCompleted)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drawSubs = append(e.drawSubs, fn)
}

// SubscribePreview registers fn to receive the cosmetic cycling numbers while
// a draw is in progress. Must be called before StartDraw to take effect for
// that draw.
func (e *Engine) SubscribePreview(fn func(int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.previewSubs = append(e.previewSubs, fn)
}

// queueChangeLocked captures the current snapshot for later dispatch. Callers
// hold e.mu, so queue order is mutation order.
func (e *Engine) queueChangeLocked() {
	snap := e.snapshotLocked()
	e.queueMu.Lock()
	e.changeQueue = append(e.changeQueue, snap)
	e.queueMu.Unlock()
}

// flushChanges delivers queued snapshots to change subscribers. The dispatch
// mutex serializes delivery so subscribers see snapshots strictly in mutation
// order even when mutations race; the flushing goroutine may deliver
// snapshots queued by another.
func (e *Engine) flushChanges() {
	e.dispatchMu.Lock()
	defer e.dispatchMu.Unlock()
	for {
		e.queueMu.Lock()
		if len(e.changeQueue) == 0 {
			e.queueMu.Unlock()
			return
		}
		snap := e.changeQueue[0]
		e.changeQueue = e.changeQueue[1:]
		e.queueMu.Unlock()

		e.mu.RLock()
		subs := make([]func(models.Snapshot), len(e.changeSubs))
		copy(subs, e.changeSubs)
		e.mu.RUnlock()
		for _, fn := range subs {
			fn(snap)
		}
	}
}

func (e *Engine) notifyDraw(ev DrawCompleted) {
	e.mu.RLock()
	subs := make([]func(DrawCompleted), len(e.drawSubs))
	copy(subs, e.drawSubs)
	e.mu.RUnlock()
	for _, fn := range subs {
		fn(ev)
	}
}

func (e *Engine) notifyPreview(number int) {
	e.mu.RLock()
	subs := make([]func(int), len(e.previewSubs))
	copy(subs, e.previewSubs)
	e.mu.RUnlock()
	for _, fn := range subs {
		fn(number)
	}
}
