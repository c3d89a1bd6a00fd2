package queue

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single queued message. The id is assigned at creation and
// never changes; the position is assigned once, at enqueue. Lease and expiry
// deadlines are lazily evaluated against the store's clock, so a lapsed
// lease needs no sweeper to become visible.
type Message struct {
	ID            uuid.UUID
	CorrelationID *uuid.UUID
	Content       string

	// Position is the per-queue monotonically increasing sequence number,
	// 0 until assigned at enqueue.
	Position uint64

	leaseUntil time.Time // zero = unleased
	expiresAt  time.Time // zero = permanent
}

// NewMessage builds an unleased message with no position assigned.
func NewMessage(id uuid.UUID, cid *uuid.UUID, content string, expiresAt time.Time) Message {
	return Message{
		ID:            id,
		CorrelationID: cid,
		Content:       content,
		expiresAt:     expiresAt,
	}
}

// IsLeased reports whether the message carries a lease that has not yet
// lapsed at the given instant.
func (m *Message) IsLeased(now time.Time) bool {
	return !m.leaseUntil.IsZero() && now.Before(m.leaseUntil)
}

// IsExpired reports whether the message's expiry deadline has passed at the
// given instant. Permanent messages never expire.
func (m *Message) IsExpired(now time.Time) bool {
	return !m.expiresAt.IsZero() && !now.Before(m.expiresAt)
}

// AcquireLease sets the lease deadline.
func (m *Message) AcquireLease(until time.Time) {
	m.leaseUntil = until
}

// ReleaseLease clears the lease, making the message immediately eligible.
func (m *Message) ReleaseLease() {
	m.leaseUntil = time.Time{}
}

// LeaseDeadline returns the lease instant and whether a lease is set. The
// deadline may already have lapsed; callers interested in liveness should
// use IsLeased.
func (m *Message) LeaseDeadline() (time.Time, bool) {
	return m.leaseUntil, !m.leaseUntil.IsZero()
}

// ExpiryDeadline returns the expiry instant and whether one is set.
func (m *Message) ExpiryDeadline() (time.Time, bool) {
	return m.expiresAt, !m.expiresAt.IsZero()
}

// CreateMessageRequest carries the caller-supplied parts of a new message.
// Expiry of zero means the message is permanent.
type CreateMessageRequest struct {
	Content       string
	CorrelationID *uuid.UUID
	Expiry        time.Duration
}

// QueueSummary is a point-in-time view of one queue. Depth counts every
// message currently stored, including leased and expired-but-unswept ones.
type QueueSummary struct {
	QueueName QueueName
	Depth     int
}
