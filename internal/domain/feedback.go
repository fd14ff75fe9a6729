package domain

import (
	"context"
	"time"
)

// FeedbackReceipt acknowledges a feedback submission. Feedback itself is not retained.
// swagger:model FeedbackReceipt
type FeedbackReceipt struct {
	Reference   string    `json:"reference"`
	EventName   string    `json:"event_name"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// FeedbackService accepts or rejects feedback based solely on whether the text is blank.
type FeedbackService interface {
	Submit(ctx context.Context, eventName, text string) (*FeedbackReceipt, error)
}
