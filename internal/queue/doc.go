// Package queue implements the in-memory message-queue engine.
//
// Producers create messages into independently named queues; consumers
// retrieve them under one of several retrieval disciplines:
//
//   - peek: inspect the first eligible message without mutating it
//   - take: destructive read, removes the message
//   - lease: claim the message for a duration; it stays queued but is
//     ineligible for other consumers until the lease lapses
//   - ack: confirm processing of a leased message, removing it
//   - release: clear a lease, making the message eligible again
//   - info: report a queue's depth instead of selecting a message
//
// # Message Lifecycle
//
//  1. Create: id and per-queue position assigned, unleased, expiry optional
//  2. Select: first eligible message in ascending position order
//  3. Lease: lease deadline set; lapses lazily, no background sweep
//  4. Ack/Take: message removed permanently
//  5. Expiry: expired messages become unselectable and are garbage
//     collected on the next create
//
// # Concurrency
//
// One Store guards the queue-name → queue map with a single mutex. Every
// operation holds the lock for its entire duration, so scan, selection, and
// mutation form one atomic unit and at most one caller observes or mutates
// a given message at a time. All work under the lock is in-memory and
// bounded by the queue depth.
//
// Lease and expiry instants are evaluated against an injected clock
// (juju/clock), so tests advance time deterministically without sleeping.
package queue
