package engine

import (
	"time"

	"github.com/istlab/raffle-backend/internal/models"
)

// ticketPool owns the tickets for the configured numeric range and their
// drawn/undrawn status. It performs no validation of tier existence; that is
// the engine's job.
type ticketPool struct {
	tickets []models.Ticket
}

// newTicketPool produces tickets for every integer in [start, end], all
// undrawn. The caller guarantees start < end.
func newTicketPool(start, end int) ticketPool {
	tickets := make([]models.Ticket, 0, end-start+1)
	for n := start; n <= end; n++ {
		tickets = append(tickets, models.Ticket{Number: n})
	}
	return ticketPool{tickets: tickets}
}

// regenerate rebuilds the pool over [start, end]. Numbers present in both the
// old and new range carry their drawn state forward verbatim; numbers newly in
// range start undrawn; numbers dropped from range are discarded.
func (p *ticketPool) regenerate(start, end int) {
	previous := make(map[int]models.Ticket, len(p.tickets))
	for _, t := range p.tickets {
		previous[t.Number] = t
	}

	tickets := make([]models.Ticket, 0, end-start+1)
	for n := start; n <= end; n++ {
		if old, ok := previous[n]; ok && old.IsDrawn {
			tickets = append(tickets, old)
			continue
		}
		tickets = append(tickets, models.Ticket{Number: n})
	}
	p.tickets = tickets
}

// get returns a pointer into the pool, or nil if number is out of range.
func (p *ticketPool) get(number int) *models.Ticket {
	for i := range p.tickets {
		if p.tickets[i].Number == number {
			return &p.tickets[i]
		}
	}
	return nil
}

// markDrawn flips the ticket to drawn. A no-op for numbers outside the pool.
func (p *ticketPool) markDrawn(number int, tierID string, at time.Time) {
	if t := p.get(number); t != nil {
		t.IsDrawn = true
		t.DrawnAt = &at
		t.PrizeTierID = tierID
	}
}

// markUndrawn flips the ticket back to undrawn. A no-op for numbers outside
// the pool, which happens when a draw is revoked after a range shrink.
func (p *ticketPool) markUndrawn(number int) {
	if t := p.get(number); t != nil {
		t.IsDrawn = false
		t.DrawnAt = nil
		t.PrizeTierID = ""
	}
}

// undrawn returns the numbers of all currently undrawn tickets.
func (p *ticketPool) undrawn() []int {
	var numbers []int
	for _, t := range p.tickets {
		if !t.IsDrawn {
			numbers = append(numbers, t.Number)
		}
	}
	return numbers
}

// clearDrawn restores every ticket to undrawn, keeping the range.
func (p *ticketPool) clearDrawn() {
	for i := range p.tickets {
		p.tickets[i].IsDrawn = false
		p.tickets[i].DrawnAt = nil
		p.tickets[i].PrizeTierID = ""
	}
}

// list returns a copy of the pool.
func (p *ticketPool) list() []models.Ticket {
	out := make([]models.Ticket, len(p.tickets))
	copy(out, p.tickets)
	return out
}
