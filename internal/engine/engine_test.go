package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/istlab/raffle-backend/internal/models"
)

// seqIDs returns an id generator producing "id-1", "id-2", ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// firstPick always selects the first candidate, making draws deterministic.
type firstPick struct{}

func (firstPick) Uniform(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("bound must be > 0")
	}
	return 0, nil
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(
		WithIDGenerator(seqIDs()),
		WithClock(func() time.Time { return time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC) }),
		WithFinalSource(firstPick{}),
		WithPreviewSource(firstPick{}),
	)
	t.Cleanup(e.Close)
	return e
}

// checkInvariants asserts the cross-component consistency rules that must
// hold after every engine operation.
func checkInvariants(t *testing.T, e *Engine) {
	t.Helper()
	snap := e.Snapshot()

	unrevoked := make(map[int]bool)
	perTier := make(map[string]int)
	for _, r := range snap.DrawRecords {
		if !r.IsRevoked {
			unrevoked[r.TicketNumber] = true
			perTier[r.PrizeTierID]++
		}
	}

	for _, ticket := range snap.Tickets {
		require.Equal(t, unrevoked[ticket.Number], ticket.IsDrawn,
			"ticket %d drawn flag must match unrevoked ledger records", ticket.Number)
		if ticket.IsDrawn {
			require.NotNil(t, ticket.DrawnAt)
			require.NotEmpty(t, ticket.PrizeTierID)
		} else {
			require.Nil(t, ticket.DrawnAt)
			require.Empty(t, ticket.PrizeTierID)
		}
	}

	for _, tier := range snap.PrizeTiers {
		require.Equal(t, tier.Quota-perTier[tier.ID], tier.Remaining,
			"tier %s remaining must equal quota minus unrevoked draws", tier.Name)
		require.GreaterOrEqual(t, tier.Remaining, 0)
		require.LessOrEqual(t, tier.Remaining, tier.Quota)
	}

	if snap.SelectedTierID != "" {
		found := false
		for _, tier := range snap.PrizeTiers {
			if tier.ID == snap.SelectedTierID {
				found = true
			}
		}
		require.True(t, found, "selection must reference a live tier")
	}

	seen := make(map[int]bool)
	for i, ticket := range snap.Tickets {
		require.False(t, seen[ticket.Number], "ticket numbers must be unique")
		seen[ticket.Number] = true
		require.Equal(t, snap.Config.StartNumber+i, ticket.Number,
			"ticket numbers must be contiguous over the configured range")
	}
	require.Len(t, snap.Tickets, snap.Config.EndNumber-snap.Config.StartNumber+1)
}

func TestDrawFlow(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 10))

	gold, err := e.AddTier("Gold", 2, "", "")
	require.NoError(t, err)
	require.Equal(t, 2, gold.Remaining)
	checkInvariants(t, e)

	t.Run("start and stop commits one winner", func(t *testing.T) {
		require.True(t, e.CanDraw())
		require.True(t, e.StartDraw())
		require.True(t, e.IsDrawing())
		require.False(t, e.CanDraw(), "canDraw is false while drawing")

		result := e.StopDraw()
		require.NotNil(t, result)
		require.False(t, e.IsDrawing())
		require.GreaterOrEqual(t, result.TicketNumber, 1)
		require.LessOrEqual(t, result.TicketNumber, 10)
		require.Equal(t, "Gold", result.Tier.Name)
		require.Equal(t, 1, result.Tier.Remaining)

		records, err := e.RecordsForTier(gold.ID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		require.Equal(t, result.TicketNumber, records[0].TicketNumber)
		require.Equal(t, "Gold", records[0].PrizeTierName)

		winner := findTicket(t, e, result.TicketNumber)
		require.True(t, winner.IsDrawn)
		checkInvariants(t, e)
	})

	t.Run("preview never mutates", func(t *testing.T) {
		require.True(t, e.StartDraw())
		for i := 0; i < 5; i++ {
			n, ok := e.PickWinner()
			require.True(t, ok)
			require.False(t, findTicket(t, e, n).IsDrawn)
		}
		require.Len(t, e.Records(), 1, "previews must not append records")
		require.NotNil(t, e.StopDraw())
		checkInvariants(t, e)
	})

	t.Run("exhausted tier declines the draw", func(t *testing.T) {
		tier := e.CurrentTier()
		require.Equal(t, 0, tier.Remaining)
		require.False(t, e.CanDraw())
		require.False(t, e.StartDraw(), "startDraw is a guarded no-op")
		require.False(t, e.IsDrawing())
		checkInvariants(t, e)
	})
}

func TestDrawUniqueness(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 5))
	_, err := e.AddTier("Prize", 5, "", "")
	require.NoError(t, err)

	seen := make(map[int]bool)
	for i := 0; i < 5; i++ {
		require.True(t, e.StartDraw())
		result := e.StopDraw()
		require.NotNil(t, result)
		require.False(t, seen[result.TicketNumber], "ticket %d drawn twice", result.TicketNumber)
		seen[result.TicketNumber] = true
		checkInvariants(t, e)
	}

	require.False(t, e.CanDraw(), "pool exhausted")
	require.False(t, e.StartDraw())
}

func TestStopWithoutWinner(t *testing.T) {
	t.Run("selected tier exhausted mid-draw", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.SetRange(1, 10))
		main, err := e.AddTier("Main", 5, "", "")
		require.NoError(t, err)
		small, err := e.AddTier("Small", 1, "", "")
		require.NoError(t, err)

		require.NoError(t, e.SelectTier(small.ID))
		require.True(t, e.StartDraw())
		require.NotNil(t, e.StopDraw())
		require.Equal(t, 0, e.CurrentTier().Remaining)

		// Start against Main, then move selection to the exhausted tier
		// before stopping.
		require.NoError(t, e.SelectTier(main.ID))
		require.True(t, e.StartDraw())
		require.NoError(t, e.SelectTier(small.ID))

		require.Nil(t, e.StopDraw(), "no winner is recorded against an exhausted tier")
		require.False(t, e.IsDrawing(), "engine still returns to idle")
		require.Len(t, e.Records(), 1)
		checkInvariants(t, e)
	})

	t.Run("pool emptied mid-draw", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.SetRange(1, 3))
		_, err := e.AddTier("Gold", 5, "", "")
		require.NoError(t, err)

		// firstPick draws 1 then 2, leaving only ticket 3 undrawn.
		require.True(t, e.StartDraw())
		require.NotNil(t, e.StopDraw())
		require.True(t, e.StartDraw())
		require.NotNil(t, e.StopDraw())

		require.True(t, e.StartDraw())
		require.NoError(t, e.SetRange(1, 2)) // drops the last undrawn ticket

		require.Nil(t, e.StopDraw())
		require.False(t, e.IsDrawing())
		checkInvariants(t, e)
	})
}

func TestRevoke(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 10))
	gold, err := e.AddTier("Gold", 2, "", "")
	require.NoError(t, err)

	require.True(t, e.StartDraw())
	result := e.StopDraw()
	require.NotNil(t, result)

	t.Run("revoke restores exactly", func(t *testing.T) {
		e.Revoke(result.RecordID)

		require.False(t, findTicket(t, e, result.TicketNumber).IsDrawn)
		require.Equal(t, 2, e.CurrentTier().Remaining)

		records := e.Records()
		require.Len(t, records, 1)
		require.True(t, records[0].IsRevoked)

		visible, err := e.RecordsForTier(gold.ID)
		require.NoError(t, err)
		require.Empty(t, visible, "revoked records are excluded from the winner list")
		checkInvariants(t, e)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		before := e.Snapshot()
		e.Revoke(result.RecordID)
		e.Revoke("no-such-record")
		require.Equal(t, before, e.Snapshot())
		checkInvariants(t, e)
	})
}

func TestRevokeAfterTierRemoval(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 10))
	gold, err := e.AddTier("Gold", 1, "", "")
	require.NoError(t, err)

	require.True(t, e.StartDraw())
	result := e.StopDraw()
	require.NotNil(t, result)

	require.NoError(t, e.RemoveTier(gold.ID))
	records := e.Records()
	require.Len(t, records, 1)
	require.Equal(t, "Gold", records[0].PrizeTierName, "name snapshot survives tier removal")

	// The tier is gone; revoke still restores the ticket.
	e.Revoke(result.RecordID)
	require.False(t, findTicket(t, e, result.TicketNumber).IsDrawn)
	require.True(t, e.Records()[0].IsRevoked)
}

func TestTierValidation(t *testing.T) {
	e := newTestEngine(t)

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := e.AddTier("", 1, "", "")
		require.True(t, IsValidation(err))
		require.Empty(t, e.ListTiers())
	})

	t.Run("rejects non-positive quota", func(t *testing.T) {
		for _, quota := range []int{0, -3} {
			_, err := e.AddTier("Gold", quota, "", "")
			require.True(t, IsValidation(err))
		}
		require.Empty(t, e.ListTiers())
	})

	t.Run("unknown ids are not found", func(t *testing.T) {
		name := "x"
		_, err := e.UpdateTier("missing", TierUpdate{Name: &name})
		require.True(t, IsNotFound(err))
		require.True(t, IsNotFound(e.RemoveTier("missing")))
		require.True(t, IsNotFound(e.SelectTier("missing")))
		_, err = e.RecordsForTier("missing")
		require.True(t, IsNotFound(err))
	})

	t.Run("default color comes from the palette", func(t *testing.T) {
		tier, err := e.AddTier("Gold", 1, "", "")
		require.NoError(t, err)
		require.Contains(t, defaultPalette, tier.Color)
	})

	t.Run("explicit color is kept", func(t *testing.T) {
		tier, err := e.AddTier("Silver", 1, "#123456", "")
		require.NoError(t, err)
		require.Equal(t, "#123456", tier.Color)
	})
}

func TestQuotaEdits(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 10))
	tier, err := e.AddTier("Gold", 3, "", "")
	require.NoError(t, err)

	require.True(t, e.StartDraw())
	require.NotNil(t, e.StopDraw())
	require.True(t, e.StartDraw())
	require.NotNil(t, e.StopDraw())

	t.Run("raising quota raises remaining by the delta", func(t *testing.T) {
		five := 5
		updated, err := e.UpdateTier(tier.ID, TierUpdate{Quota: &five})
		require.NoError(t, err)
		require.Equal(t, 5, updated.Quota)
		require.Equal(t, 3, updated.Remaining)
		checkInvariants(t, e)
	})

	t.Run("reducing quota below drawn count is rejected", func(t *testing.T) {
		one := 1
		_, err := e.UpdateTier(tier.ID, TierUpdate{Quota: &one})
		require.True(t, IsValidation(err))
		require.Equal(t, 5, e.CurrentTier().Quota, "rejected edit leaves state unchanged")
		checkInvariants(t, e)
	})

	t.Run("reducing quota to exactly the drawn count zeroes remaining", func(t *testing.T) {
		two := 2
		updated, err := e.UpdateTier(tier.ID, TierUpdate{Quota: &two})
		require.NoError(t, err)
		require.Equal(t, 0, updated.Remaining)
		require.False(t, e.CanDraw())
		checkInvariants(t, e)
	})
}

func TestSelectionCascade(t *testing.T) {
	e := newTestEngine(t)

	first, err := e.AddTier("First", 1, "", "")
	require.NoError(t, err)
	require.Equal(t, first.ID, e.CurrentTier().ID, "first tier auto-selects")

	second, err := e.AddTier("Second", 1, "", "")
	require.NoError(t, err)
	require.Equal(t, first.ID, e.CurrentTier().ID, "adding does not steal selection")

	require.NoError(t, e.SelectTier(second.ID))
	require.NoError(t, e.RemoveTier(second.ID))
	require.Equal(t, first.ID, e.CurrentTier().ID, "selection falls back to first remaining tier")

	require.NoError(t, e.RemoveTier(first.ID))
	require.Nil(t, e.CurrentTier())
	checkInvariants(t, e)
}

func TestRangeRegeneration(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 50))
	_, err := e.AddTier("Gold", 50, "", "")
	require.NoError(t, err)

	// Draw tickets on both sides of the future cut line. firstPick always
	// takes the lowest undrawn number, so this draws 1..12 in order.
	for i := 0; i < 12; i++ {
		require.True(t, e.StartDraw())
		require.NotNil(t, e.StopDraw())
	}

	t.Run("start >= end is rejected", func(t *testing.T) {
		require.True(t, IsValidation(e.SetRange(10, 10)))
		require.True(t, IsValidation(e.SetRange(20, 5)))
		require.Equal(t, 1, e.Config().StartNumber)
	})

	t.Run("overlap preserves drawn status", func(t *testing.T) {
		require.NoError(t, e.SetRange(10, 60))
		tickets := e.ListTickets()
		require.Len(t, tickets, 51)
		require.Equal(t, 10, tickets[0].Number)
		require.Equal(t, 60, tickets[len(tickets)-1].Number)

		for _, ticket := range tickets {
			if ticket.Number <= 12 {
				require.True(t, ticket.IsDrawn, "ticket %d drawn before the edit", ticket.Number)
			} else {
				require.False(t, ticket.IsDrawn)
			}
		}
	})

	t.Run("orphaned records survive and revoke safely", func(t *testing.T) {
		var orphan models.DrawRecord
		for _, r := range e.Records() {
			if r.TicketNumber < 10 {
				orphan = r
				break
			}
		}
		require.NotEmpty(t, orphan.ID, "records for dropped numbers are retained")

		remainingBefore := e.CurrentTier().Remaining
		e.Revoke(orphan.ID)
		require.Equal(t, remainingBefore+1, e.CurrentTier().Remaining)
		require.True(t, findRecord(t, e, orphan.ID).IsRevoked)
	})
}

// A number can be drawn twice when the range drops it and later re-adds it.
// Revoking the stale record must not un-draw the ticket the newer record
// still covers.
func TestRevokeStaleRecordAfterRedraw(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 5))
	_, err := e.AddTier("Gold", 3, "", "")
	require.NoError(t, err)

	// firstPick draws the lowest undrawn number, so this draws ticket 1.
	require.True(t, e.StartDraw())
	stale := e.StopDraw()
	require.NotNil(t, stale)
	require.Equal(t, 1, stale.TicketNumber)

	// Drop ticket 1, then bring it back. It returns undrawn while the old
	// record still references it.
	require.NoError(t, e.SetRange(2, 5))
	require.NoError(t, e.SetRange(1, 5))
	require.False(t, findTicket(t, e, 1).IsDrawn)

	require.True(t, e.StartDraw())
	fresh := e.StopDraw()
	require.NotNil(t, fresh)
	require.Equal(t, 1, fresh.TicketNumber, "ticket 1 is drawn a second time")
	require.NotEqual(t, stale.RecordID, fresh.RecordID)
	checkInvariants(t, e)

	e.Revoke(stale.RecordID)
	require.True(t, findTicket(t, e, 1).IsDrawn,
		"ticket stays drawn while the newer record is unrevoked")
	require.True(t, findRecord(t, e, stale.RecordID).IsRevoked)
	require.False(t, findRecord(t, e, fresh.RecordID).IsRevoked)
	require.Equal(t, 2, e.CurrentTier().Remaining, "only the quota slot is returned")
	checkInvariants(t, e)

	// Revoking the newer record now releases the ticket.
	e.Revoke(fresh.RecordID)
	require.False(t, findTicket(t, e, 1).IsDrawn)
	require.Equal(t, 3, e.CurrentTier().Remaining)
	checkInvariants(t, e)
}

func TestResets(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 10))
	_, err := e.AddTier("Gold", 2, "", "")
	require.NoError(t, err)
	require.True(t, e.StartDraw())
	require.NotNil(t, e.StopDraw())

	t.Run("resetPool keeps configuration", func(t *testing.T) {
		e.ResetPool()
		snap := e.Snapshot()
		require.Len(t, snap.Tickets, 10)
		for _, ticket := range snap.Tickets {
			require.False(t, ticket.IsDrawn)
		}
		require.Len(t, snap.PrizeTiers, 1)
		require.Equal(t, 2, snap.PrizeTiers[0].Remaining)
		require.Empty(t, snap.DrawRecords)
		require.NotEmpty(t, snap.SelectedTierID)
		checkInvariants(t, e)
	})

	t.Run("resetAll restores defaults", func(t *testing.T) {
		require.True(t, e.StartDraw())
		require.NotNil(t, e.StopDraw())
		e.ResetAll()

		snap := e.Snapshot()
		require.Equal(t, models.DefaultSettings(), snap.Config)
		require.Len(t, snap.Tickets, models.DefaultEndNumber-models.DefaultStartNumber+1)
		for _, ticket := range snap.Tickets {
			require.False(t, ticket.IsDrawn)
		}
		require.Empty(t, snap.PrizeTiers)
		require.Empty(t, snap.DrawRecords)
		require.Empty(t, snap.SelectedTierID)
		require.False(t, e.IsDrawing())
		checkInvariants(t, e)
	})
}

func TestSettings(t *testing.T) {
	e := newTestEngine(t)

	speed := models.SpeedFast
	enabled := false
	updated, err := e.UpdateSettings(SettingsUpdate{AnimationSpeed: &speed, SoundEnabled: &enabled})
	require.NoError(t, err)
	require.Equal(t, models.SpeedFast, updated.AnimationSpeed)
	require.False(t, updated.SoundEnabled)

	bad := 7
	_, err = e.UpdateSettings(SettingsUpdate{AnimationSpeed: &bad})
	require.True(t, IsValidation(err))
	require.Equal(t, models.SpeedFast, e.Config().AnimationSpeed)
}

func TestChangeNotification(t *testing.T) {
	e := newTestEngine(t)

	var saves int32
	e.SubscribeChange(func(models.Snapshot) { atomic.AddInt32(&saves, 1) })

	_, err := e.AddTier("Gold", 1, "", "")
	require.NoError(t, err)
	require.NoError(t, e.SetRange(1, 5))
	require.True(t, e.StartDraw())
	require.NotNil(t, e.StopDraw())
	e.ResetPool()

	// addTier, setRange, stopDraw commit, resetPool. StartDraw changes no
	// persisted state and must not trigger a save.
	require.Equal(t, int32(4), atomic.LoadInt32(&saves))
}

// Snapshots must reach subscribers in mutation order even when mutations
// race, so a persistence subscriber always writes the latest state last.
func TestChangeDispatchOrder(t *testing.T) {
	e := newTestEngine(t)

	var mu sync.Mutex
	var ends []int
	e.SubscribeChange(func(snap models.Snapshot) {
		mu.Lock()
		ends = append(ends, snap.Config.EndNumber)
		mu.Unlock()
	})

	t.Run("sequential mutations arrive in order", func(t *testing.T) {
		for end := 11; end <= 15; end++ {
			require.NoError(t, e.SetRange(1, end))
		}
		mu.Lock()
		require.Equal(t, []int{11, 12, 13, 14, 15}, ends)
		ends = nil
		mu.Unlock()
	})

	t.Run("racing mutations deliver the final state last", func(t *testing.T) {
		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				for i := 0; i < 25; i++ {
					// Every range here is valid, so no error path.
					_ = e.SetRange(1, 20+g*25+i)
				}
			}(g)
		}
		// Mutators return only after their snapshot is either delivered or
		// handed to an in-flight dispatcher whose mutator has not returned,
		// so after Wait every snapshot has been delivered.
		wg.Wait()

		mu.Lock()
		require.Len(t, ends, 100)
		last := ends[len(ends)-1]
		mu.Unlock()
		require.Equal(t, e.Config().EndNumber, last,
			"the last delivered snapshot matches the settled engine state")
	})
}

func TestDrawEvent(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetRange(1, 5))
	_, err := e.AddTier("Gold", 1, "", "cheer.mp3")
	require.NoError(t, err)

	var got []DrawCompleted
	e.SubscribeDraw(func(ev DrawCompleted) { got = append(got, ev) })

	require.True(t, e.StartDraw())
	result := e.StopDraw()
	require.NotNil(t, result)

	require.Len(t, got, 1)
	require.Equal(t, result.TicketNumber, got[0].TicketNumber)
	require.Equal(t, "cheer.mp3", got[0].Tier.SoundResource)
}

func TestPreviewLoopCancellation(t *testing.T) {
	e := New(
		WithIDGenerator(seqIDs()),
		WithFinalSource(firstPick{}),
		WithPreviewSource(firstPick{}),
	)
	t.Cleanup(e.Close)
	_, err := e.AddTier("Gold", 5, "", "")
	require.NoError(t, err)
	speed := models.SpeedFast
	_, err = e.UpdateSettings(SettingsUpdate{AnimationSpeed: &speed})
	require.NoError(t, err)

	var samples int32
	e.SubscribePreview(func(int) { atomic.AddInt32(&samples, 1) })

	require.True(t, e.StartDraw())
	time.Sleep(150 * time.Millisecond)
	require.Greater(t, atomic.LoadInt32(&samples), int32(0), "loop publishes while drawing")

	require.NotNil(t, e.StopDraw())
	settled := atomic.LoadInt32(&samples)
	time.Sleep(150 * time.Millisecond)
	require.LessOrEqual(t, atomic.LoadInt32(&samples), settled+1,
		"loop stops after stopDraw, allowing one in-flight tick")
}

func TestRestore(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		e := newTestEngine(t)
		require.NoError(t, e.SetRange(1, 10))
		_, err := e.AddTier("Gold", 2, "", "")
		require.NoError(t, err)
		require.True(t, e.StartDraw())
		require.NotNil(t, e.StopDraw())

		restored := newTestEngine(t)
		restored.Restore(e.Snapshot())
		require.Equal(t, e.Snapshot(), restored.Snapshot())
		checkInvariants(t, restored)
	})

	t.Run("empty snapshot defaults", func(t *testing.T) {
		e := newTestEngine(t)
		e.Restore(models.Snapshot{})
		snap := e.Snapshot()
		require.Equal(t, models.DefaultSettings(), snap.Config)
		require.Len(t, snap.Tickets, models.DefaultEndNumber-models.DefaultStartNumber+1)
		checkInvariants(t, e)
	})

	t.Run("remaining recomputed from ledger", func(t *testing.T) {
		e := newTestEngine(t)
		e.Restore(models.Snapshot{
			Config: models.Settings{StartNumber: 1, EndNumber: 5, AnimationSpeed: 2},
			Tickets: []models.Ticket{
				{Number: 1, IsDrawn: true, DrawnAt: timePtr(time.Now()), PrizeTierID: "t1"},
				{Number: 2}, {Number: 3}, {Number: 4}, {Number: 5},
			},
			PrizeTiers: []models.PrizeTier{
				{ID: "t1", Name: "Gold", Quota: 3, Remaining: 99, Color: "#fff"},
			},
			DrawRecords: []models.DrawRecord{
				{ID: "r1", TicketNumber: 1, PrizeTierID: "t1", PrizeTierName: "Gold", DrawnAt: time.Now()},
			},
			SelectedTierID: "gone",
		})

		snap := e.Snapshot()
		require.Equal(t, 2, snap.PrizeTiers[0].Remaining, "stored remaining is distrusted")
		require.Empty(t, snap.SelectedTierID, "dead selection is dropped")
		checkInvariants(t, e)
	})
}

func findTicket(t *testing.T, e *Engine, number int) models.Ticket {
	t.Helper()
	for _, ticket := range e.ListTickets() {
		if ticket.Number == number {
			return ticket
		}
	}
	t.Fatalf("ticket %d not in pool", number)
	return models.Ticket{}
}

func findRecord(t *testing.T, e *Engine, id string) models.DrawRecord {
	t.Helper()
	for _, r := range e.Records() {
		if r.ID == id {
			return r
		}
	}
	t.Fatalf("record %s not in ledger", id)
	return models.DrawRecord{}
}

func timePtr(ts time.Time) *time.Time { return &ts }
