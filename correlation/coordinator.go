package correlation

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/lithammer/shortuuid/v3"

	"handoff/entity"
	"handoff/metrics"
)

const (
	MinWaitTimeout = 1 * time.Second
	MaxWaitTimeout = 120 * time.Second
)

type state int

const (
	statePending state = iota
	stateResolved
)

// ticket is one outstanding caller question awaiting a human answer. The
// answer channel is the single-resolution primitive: it is buffered with
// capacity one and written at most once, guarded by the state transition
// under the coordinator mutex.
type ticket struct {
	id        string
	createdAt time.Time
	state     state
	answer    chan string
	waiting   bool
}

type eventPublisher interface {
	Publish(ctx context.Context, event any) error
}

// Coordinator owns the in-memory ticket registry and arbitrates the race
// between an operator's answer and an elapsing timeout, so that exactly one
// outcome is delivered per ticket. It is constructed once at process start
// and injected wherever tickets are created or resolved.
type Coordinator struct {
	mu      sync.Mutex
	tickets map[string]*ticket
	events  eventPublisher
}

func NewCoordinator(events eventPublisher) *Coordinator {
	if events == nil {
		panic("missing events publisher")
	}

	return &Coordinator{
		tickets: make(map[string]*ticket),
		events:  events,
	}
}

// CreateTicket registers a new pending ticket and publishes
// AssistanceRequested so the operator gets notified. A failed publish is
// logged and counted but does not fail creation: the caller still gets a
// ticket id and can time out gracefully.
func (c *Coordinator) CreateTicket(ctx context.Context, request entity.AssistanceRequest) (string, error) {
	id := shortuuid.New()

	c.mu.Lock()
	c.tickets[id] = &ticket{
		id:        id,
		createdAt: time.Now(),
		state:     statePending,
		answer:    make(chan string, 1),
	}
	c.mu.Unlock()

	metrics.TicketsCreated.Inc()

	err := c.events.Publish(ctx, entity.AssistanceRequested{
		Header:         entity.NewEventHeader(),
		TicketID:       id,
		ConversationID: request.ConversationID,
		Language:       request.Language,
		Question:       request.Question,
		Context:        request.Context,
	})
	if err != nil {
		metrics.NotificationFailures.Inc()
		log.FromContext(ctx).WithError(err).WithField("ticket_id", id).
			Error("failed to publish assistance request")
	}

	return id, nil
}

// Wait blocks until the ticket is resolved or the timeout elapses, whichever
// happens first, and reports exactly one of the two. The timeout is clamped
// to [MinWaitTimeout, MaxWaitTimeout] to bound resource retention regardless
// of client-supplied values.
//
// An answer that arrived before Wait is collected immediately: Resolve parks
// it in the ticket's one-shot buffer (see Resolve for the policy).
//
// A second Wait on a ticket that already has a waiter fails with
// entity.ErrWaiterAttached, even when an answer is already committed: the
// buffered answer belongs to the attached waiter, never to a newcomer. If
// ctx is cancelled first, the waiter registration is released and the
// ticket stays pending for a later Wait, a resolve, or the reaper.
func (c *Coordinator) Wait(ctx context.Context, id string, timeout time.Duration) (entity.WaitResult, error) {
	c.mu.Lock()
	t, ok := c.tickets[id]
	if !ok {
		c.mu.Unlock()
		return entity.WaitResult{Status: entity.WaitStatusNotFound}, nil
	}

	if t.waiting {
		c.mu.Unlock()
		return entity.WaitResult{}, entity.ErrWaiterAttached
	}

	if t.state == stateResolved {
		// No waiter is attached, so the buffered answer is exclusively
		// ours; concurrent Waits serialize on the mutex and the loser
		// sees the record already gone.
		delete(c.tickets, id)
		c.mu.Unlock()
		return entity.WaitResult{Status: entity.WaitStatusAnswered, Answer: <-t.answer}, nil
	}

	t.waiting = true
	c.mu.Unlock()

	timer := time.NewTimer(clampTimeout(timeout))
	defer timer.Stop()

	// From here on this goroutine owns the waiter slot: only it clears
	// t.waiting, everybody else (second Wait, the reaper) keeps hands off
	// a waited-on ticket, so a receive from t.answer below cannot be
	// stolen once Resolve commits.
	select {
	case answer := <-t.answer:
		c.mu.Lock()
		delete(c.tickets, id)
		c.mu.Unlock()
		return entity.WaitResult{Status: entity.WaitStatusAnswered, Answer: answer}, nil

	case <-timer.C:
		c.mu.Lock()
		if t.state == stateResolved {
			// The resolve committed between the timer firing and us taking
			// the lock. The answer is already in the buffer; it wins.
			delete(c.tickets, id)
			c.mu.Unlock()
			return entity.WaitResult{Status: entity.WaitStatusAnswered, Answer: <-t.answer}, nil
		}
		delete(c.tickets, id)
		c.mu.Unlock()
		metrics.TicketsExpired.Inc()
		return entity.WaitResult{Status: entity.WaitStatusTimeout}, nil

	case <-ctx.Done():
		c.mu.Lock()
		if t.state == stateResolved {
			// Answer abandoned along with the connection; drop the record
			// without draining, a late answer to a closed context is fine.
			delete(c.tickets, id)
		} else {
			t.waiting = false
		}
		c.mu.Unlock()
		return entity.WaitResult{}, ctx.Err()
	}
}

// Resolve delivers an operator answer to the ticket's waiter. It returns
// false for an unknown or already-resolved id and has no effect then; a
// stale or mistyped ticket reference is an expected condition, not an error.
//
// If no waiter is attached yet (the operator replied before the caller
// started waiting), the answer is buffered: the ticket is marked resolved
// and the next Wait collects the answer immediately.
func (c *Coordinator) Resolve(id, answer string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.tickets[id]
	if !ok || t.state == stateResolved {
		return false
	}

	t.state = stateResolved
	// Never blocks: capacity one, and the pending-state check above
	// guarantees this is the only send.
	t.answer <- answer

	metrics.TicketsResolved.Inc()
	return true
}

func clampTimeout(timeout time.Duration) time.Duration {
	if timeout < MinWaitTimeout {
		return MinWaitTimeout
	}
	if timeout > MaxWaitTimeout {
		return MaxWaitTimeout
	}
	return timeout
}
