package queue

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
)

// Action is the closed set of retrieval disciplines a select request can
// ask for. Each action pairs an eligibility predicate with a side effect.
type Action int

const (
	// ActionPeek returns the first eligible message without mutating it.
	ActionPeek Action = iota
	// ActionTake removes and returns the first eligible message.
	ActionTake
	// ActionLease claims the first eligible message until a deadline.
	ActionLease
	// ActionAck confirms processing of a leased message, removing it.
	ActionAck
	// ActionRelease clears the lease on a leased message.
	ActionRelease
	// ActionInfo reports a queue summary instead of selecting a message.
	ActionInfo
)

// ParseAction maps a request token to an Action. Tokens are case-sensitive;
// anything unrecognized is an invalid "action" parameter.
func ParseAction(token string) (Action, error) {
	switch token {
	case "peek":
		return ActionPeek, nil
	case "take":
		return ActionTake, nil
	case "lease":
		return ActionLease, nil
	case "ack":
		return ActionAck, nil
	case "release":
		return ActionRelease, nil
	case "info":
		return ActionInfo, nil
	default:
		return 0, &InvalidParameterError{Field: "action"}
	}
}

// String returns the request token for the action.
func (a Action) String() string {
	switch a {
	case ActionPeek:
		return "peek"
	case ActionTake:
		return "take"
	case ActionLease:
		return "lease"
	case ActionAck:
		return "ack"
	case ActionRelease:
		return "release"
	case ActionInfo:
		return "info"
	default:
		return "unknown"
	}
}

// SelectOptions is a parsed, validated select request. An invalid
// combination of action and parameters never produces a value.
type SelectOptions struct {
	QueueName     QueueName
	Action        Action
	ID            *uuid.UUID
	CorrelationID *uuid.UUID

	// LeaseUntil is the absolute lease deadline, computed from
	// lease_seconds at parse time. Zero when absent.
	LeaseUntil time.Time

	// ExpiryAt is the absolute expiry instant computed from expiry_seconds.
	// Zero when absent.
	ExpiryAt time.Time

	// After restricts selection to positions strictly greater than the
	// threshold. Nil when absent.
	After *uint64
}

// Recognized parameter-map keys. Unknown keys are ignored.
const (
	paramQueueName     = "queue_name"
	paramAction        = "action"
	paramID            = "id"
	paramCorrelationID = "correlation_id"
	paramLeaseSeconds  = "lease_seconds"
	paramExpirySeconds = "expiry_seconds"
	paramAfter         = "after"
)

// ParseSelectOptions builds SelectOptions from an untyped string-keyed
// parameter map, the transport-agnostic request contract. Durations are
// resolved to absolute instants against clk at parse time.
func ParseSelectOptions(params map[string]string, clk clock.Clock) (SelectOptions, error) {
	var opts SelectOptions

	rawName, ok := params[paramQueueName]
	if !ok {
		return opts, &MissingParameterError{Field: paramQueueName}
	}
	name, err := ParseQueueName(rawName)
	if err != nil {
		return opts, &InvalidParameterError{Field: paramQueueName}
	}
	opts.QueueName = name

	rawAction, ok := params[paramAction]
	if !ok {
		return opts, &MissingParameterError{Field: paramAction}
	}
	action, err := ParseAction(rawAction)
	if err != nil {
		return opts, err
	}
	opts.Action = action

	if opts.ID, err = parseOptionalUUID(params, paramID); err != nil {
		return opts, err
	}
	if opts.CorrelationID, err = parseOptionalUUID(params, paramCorrelationID); err != nil {
		return opts, err
	}

	now := clk.Now()
	if opts.LeaseUntil, err = parseOptionalDeadline(params, paramLeaseSeconds, now); err != nil {
		return opts, err
	}
	if opts.ExpiryAt, err = parseOptionalDeadline(params, paramExpirySeconds, now); err != nil {
		return opts, err
	}

	if raw, ok := params[paramAfter]; ok {
		threshold, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return opts, &InvalidParameterError{Field: paramAfter}
		}
		opts.After = &threshold
	}

	if err := opts.validate(); err != nil {
		return SelectOptions{}, err
	}
	return opts, nil
}

// validate enforces the per-action requires/forbids table.
func (o *SelectOptions) validate() error {
	switch o.Action {
	case ActionLease:
		if o.LeaseUntil.IsZero() {
			return &MissingParameterError{Field: paramLeaseSeconds}
		}
	case ActionAck, ActionRelease:
		if o.ID == nil {
			return &MissingParameterError{Field: paramID}
		}
	case ActionPeek, ActionInfo:
		if !o.LeaseUntil.IsZero() {
			return &InvalidParameterError{Field: paramLeaseSeconds}
		}
	case ActionTake:
		// take accepts any combination of optional filters
	}
	return nil
}

// matches reports whether msg is eligible for this request at the given
// instant. Selection scans in ascending position order, so the first match
// is the oldest eligible message.
func (o *SelectOptions) matches(msg *Message, now time.Time) bool {
	switch o.Action {
	case ActionPeek, ActionTake, ActionLease:
		return !msg.IsLeased(now) &&
			!msg.IsExpired(now) &&
			(o.ID == nil || msg.ID == *o.ID) &&
			(o.CorrelationID == nil ||
				(msg.CorrelationID != nil && *msg.CorrelationID == *o.CorrelationID)) &&
			(o.After == nil || msg.Position > *o.After)
	case ActionAck, ActionRelease:
		// id presence is guaranteed by validate
		return msg.IsLeased(now) && msg.ID == *o.ID
	default:
		// info never reaches per-message selection
		return false
	}
}

// descriptor names what the request asked for, for NoMessageError text.
func (o *SelectOptions) descriptor() string {
	if o.ID != nil {
		return o.QueueName.String() + "/" + o.ID.String()
	}
	return o.QueueName.String()
}

func parseOptionalUUID(params map[string]string, key string) (*uuid.UUID, error) {
	raw, ok := params[key]
	if !ok {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, &InvalidParameterError{Field: key}
	}
	return &id, nil
}

func parseOptionalDeadline(params map[string]string, key string, now time.Time) (time.Time, error) {
	raw, ok := params[key]
	if !ok {
		return time.Time{}, nil
	}
	seconds, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return time.Time{}, &InvalidParameterError{Field: key}
	}
	return now.Add(time.Duration(seconds) * time.Second), nil
}
