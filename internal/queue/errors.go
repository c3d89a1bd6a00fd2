package queue

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQueueName reports a queue name that is empty after trimming.
	ErrEmptyQueueName = errors.New("queue name cannot be empty")

	// ErrNoMessage reports that no eligible message matched a selection.
	ErrNoMessage = errors.New("no matching message")

	// ErrNoQueue reports a summary request against an unknown queue.
	ErrNoQueue = errors.New("no such queue")

	// ErrMissingParameter reports a required request parameter that is absent.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrInvalidParameter reports a request parameter that is present but
	// malformed, or forbidden for the requested action.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// MissingParameterError wraps ErrMissingParameter with the field name.
type MissingParameterError struct {
	Field string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required parameter '%s'", e.Field)
}

func (e *MissingParameterError) Unwrap() error {
	return ErrMissingParameter
}

// InvalidParameterError wraps ErrInvalidParameter with the field name.
type InvalidParameterError struct {
	Field string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter '%s'", e.Field)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// NoMessageError wraps ErrNoMessage with a descriptor of what was asked for.
type NoMessageError struct {
	Descriptor string
}

func (e *NoMessageError) Error() string {
	return fmt.Sprintf("no message: %s", e.Descriptor)
}

func (e *NoMessageError) Unwrap() error {
	return ErrNoMessage
}

// NoQueueError wraps ErrNoQueue with the queue name.
type NoQueueError struct {
	Name QueueName
}

func (e *NoQueueError) Error() string {
	return fmt.Sprintf("no such queue '%s'", e.Name)
}

func (e *NoQueueError) Unwrap() error {
	return ErrNoQueue
}
