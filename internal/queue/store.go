package queue

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

// Store owns the queue-name → queue map under one lock and applies every
// operation as a single critical section. It is safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	clk    clock.Clock
	queues map[QueueName]*messageQueue
}

// messageQueue is one named queue: messages in ascending position order plus
// the monotonic position counter. Ordering is never rearranged, only
// filtered.
type messageQueue struct {
	messages     []*Message
	nextPosition uint64
}

// NewStore creates an empty store. A nil clock defaults to the system
// wall clock.
func NewStore(clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.WallClock
	}
	return &Store{
		clk:    clk,
		queues: make(map[QueueName]*messageQueue),
	}
}

// CreateMessage appends a new message to the named queue, lazily creating
// the queue on first use. Before inserting it sweeps expired messages from
// every queue, bounding growth from abandoned expiring messages without a
// background task.
func (s *Store) CreateMessage(name QueueName, req CreateMessageRequest) (Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	s.sweepExpired(now)

	q, ok := s.queues[name]
	if !ok {
		q = &messageQueue{}
		s.queues[name] = q
	}

	var expiresAt time.Time
	if req.Expiry > 0 {
		expiresAt = now.Add(req.Expiry)
	}
	msg := NewMessage(uuid.New(), req.CorrelationID, req.Content, expiresAt)
	q.nextPosition++
	msg.Position = q.nextPosition
	q.messages = append(q.messages, &msg)
	return msg, nil
}

// Select runs the matching algorithm for opts and applies the action's side
// effect to the selected message. Scan, selection, and mutation happen
// under the store lock, so at most one caller observes or mutates a given
// message at a time.
func (s *Store) Select(opts SelectOptions) (Message, error) {
	if opts.Action == ActionInfo {
		return Message{}, &InvalidParameterError{Field: paramAction}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[opts.QueueName]
	if !ok {
		return Message{}, &NoMessageError{Descriptor: "no such queue '" + opts.QueueName.String() + "'"}
	}

	now := s.clk.Now()
	for i, msg := range q.messages {
		if !opts.matches(msg, now) {
			continue
		}
		switch opts.Action {
		case ActionTake, ActionAck:
			q.messages = append(q.messages[:i], q.messages[i+1:]...)
		case ActionLease:
			msg.AcquireLease(opts.LeaseUntil)
		case ActionRelease:
			msg.ReleaseLease()
		case ActionPeek:
			// no mutation
		}
		return *msg, nil
	}
	return Message{}, &NoMessageError{Descriptor: opts.descriptor()}
}

// ListQueues returns every known queue name in sorted order, including
// queues that have been emptied.
func (s *Store) ListQueues() []QueueName {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]QueueName, 0, len(s.queues))
	for name := range s.queues {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Summary reports the depth of one queue, or NoQueueError if the name is
// unknown.
func (s *Store) Summary(name QueueName) (QueueSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.queues[name]
	if !ok {
		return QueueSummary{}, &NoQueueError{Name: name}
	}
	return QueueSummary{QueueName: name, Depth: len(q.messages)}, nil
}

// SummaryAll reports the depth of every known queue, sorted by name.
func (s *Store) SummaryAll() []QueueSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]QueueSummary, 0, len(s.queues))
	for name, q := range s.queues {
		summaries = append(summaries, QueueSummary{QueueName: name, Depth: len(q.messages)})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].QueueName < summaries[j].QueueName })
	return summaries
}

// sweepExpired drops expired messages from every queue. Caller holds the
// lock.
func (s *Store) sweepExpired(now time.Time) {
	for _, q := range s.queues {
		kept := q.messages[:0]
		for _, msg := range q.messages {
			if !msg.IsExpired(now) {
				kept = append(kept, msg)
			}
		}
		// clear the tail so removed messages can be collected
		for i := len(kept); i < len(q.messages); i++ {
			q.messages[i] = nil
		}
		q.messages = kept
	}
}
