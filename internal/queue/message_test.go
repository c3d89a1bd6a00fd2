package queue

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMessageLeasePredicate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := NewMessage(uuid.New(), nil, "payload", time.Time{})

	if msg.IsLeased(now) {
		t.Fatalf("new message should be unleased")
	}

	msg.AcquireLease(now.Add(10 * time.Second))
	if !msg.IsLeased(now) {
		t.Fatalf("expected leased before deadline")
	}
	if msg.IsLeased(now.Add(10 * time.Second)) {
		t.Fatalf("lease should lapse exactly at the deadline")
	}
	if msg.IsLeased(now.Add(time.Minute)) {
		t.Fatalf("lease should lapse after the deadline")
	}

	msg.ReleaseLease()
	if msg.IsLeased(now) {
		t.Fatalf("released message should be unleased")
	}
	if _, ok := msg.LeaseDeadline(); ok {
		t.Fatalf("released message should carry no deadline")
	}
}

func TestMessageExpiryPredicate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	permanent := NewMessage(uuid.New(), nil, "payload", time.Time{})
	if permanent.IsExpired(now.Add(1000 * time.Hour)) {
		t.Fatalf("permanent message never expires")
	}

	expiring := NewMessage(uuid.New(), nil, "payload", now.Add(5*time.Second))
	if expiring.IsExpired(now) {
		t.Fatalf("not expired before the deadline")
	}
	if !expiring.IsExpired(now.Add(5 * time.Second)) {
		t.Fatalf("expired exactly at the deadline")
	}
	if !expiring.IsExpired(now.Add(time.Hour)) {
		t.Fatalf("expired after the deadline")
	}
}

func TestMessageExpiryIndependentOfLease(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	msg := NewMessage(uuid.New(), nil, "payload", now.Add(time.Second))
	msg.AcquireLease(now.Add(time.Hour))

	later := now.Add(2 * time.Second)
	if !msg.IsExpired(later) {
		t.Fatalf("expiry must hold regardless of lease state")
	}
	if !msg.IsLeased(later) {
		t.Fatalf("lease deadline is independent of expiry")
	}
}
