package correlation

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"

	"handoff/metrics"
)

const (
	reapInterval = time.Minute
	maxTicketAge = 10 * time.Minute
)

// RunReaper sweeps tickets that reached neither outcome: created but never
// waited on, or answered after the waiter's connection was already gone.
// Tickets with a live waiter are left alone, their deadline is owned by the
// Wait call. This keeps the registry bounded by genuinely in-flight tickets.
func (c *Coordinator) RunReaper(ctx context.Context) error {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if reaped := c.reap(time.Now()); reaped > 0 {
				log.FromContext(ctx).WithField("count", reaped).Info("Reaped abandoned tickets")
			}
		}
	}
}

func (c *Coordinator) reap(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	reaped := 0
	for id, t := range c.tickets {
		if t.waiting || now.Sub(t.createdAt) <= maxTicketAge {
			continue
		}
		delete(c.tickets, id)
		reaped++
		if t.state == statePending {
			metrics.TicketsExpired.Inc()
		}
	}

	return reaped
}
