package controllers

import (
	"time"

	"github.com/NeilDarach/msg-q/internal/queue"
)

// createMessageRequestBody is the JSON body for message creation.
type createMessageRequestBody struct {
	Content       string  `json:"content"`
	CorrelationID *string `json:"correlation_id,omitempty"`
	ExpirySeconds *uint64 `json:"expiry_seconds,omitempty"`
}

// createMessageResponseData is returned after a successful create.
type createMessageResponseData struct {
	ID string `json:"id"`
}

// messageResponseData is returned from select operations.
type messageResponseData struct {
	ID            string `json:"id"`
	CorrelationID string `json:"correlation_id,omitempty"`
	Content       string `json:"content"`
	Position      uint64 `json:"position"`
	LeaseUntil    string `json:"lease_until,omitempty"`
}

func messageResponse(msg queue.Message) messageResponseData {
	data := messageResponseData{
		ID:       msg.ID.String(),
		Content:  msg.Content,
		Position: msg.Position,
	}
	if msg.CorrelationID != nil {
		data.CorrelationID = msg.CorrelationID.String()
	}
	if deadline, ok := msg.LeaseDeadline(); ok {
		data.LeaseUntil = deadline.Format(time.RFC3339Nano)
	}
	return data
}

// queueSummaryResponseData is one queue's entry in summary responses.
type queueSummaryResponseData struct {
	QueueName string `json:"queue_name"`
	Depth     int    `json:"depth"`
}

func summaryResponse(s queue.QueueSummary) queueSummaryResponseData {
	return queueSummaryResponseData{QueueName: s.QueueName.String(), Depth: s.Depth}
}
