package queue

import "strings"

// QueueName is a validated, non-empty queue identifier. Values compare and
// hash by the trimmed name.
type QueueName string

// ParseQueueName trims raw and returns it as a QueueName, or
// ErrEmptyQueueName when nothing remains.
func ParseQueueName(raw string) (QueueName, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyQueueName
	}
	return QueueName(trimmed), nil
}

func (n QueueName) String() string { return string(n) }
