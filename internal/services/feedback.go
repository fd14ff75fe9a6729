package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"eventdesk/internal/domain"
)

const (
	feedbackRefAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	feedbackRefLength   = 10
	feedbackThanks      = "Thank you for your feedback!"
)

type feedbackService struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewFeedbackService returns a FeedbackService that acknowledges feedback without storing it.
func NewFeedbackService(logger *slog.Logger) domain.FeedbackService {
	return &feedbackService{logger: logger, now: time.Now}
}

func (s *feedbackService) Submit(ctx context.Context, eventName, text string) (*domain.FeedbackReceipt, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: please provide some feedback", domain.ErrInvalidInput)
	}
	ref, err := gonanoid.Generate(feedbackRefAlphabet, feedbackRefLength)
	if err != nil {
		return nil, fmt.Errorf("generate feedback reference: %w", err)
	}
	receipt := &domain.FeedbackReceipt{
		Reference:   ref,
		EventName:   strings.TrimSpace(eventName),
		Message:     feedbackThanks,
		SubmittedAt: s.now(),
	}
	s.logger.InfoContext(ctx, "feedback received", "reference", ref, "event_name", receipt.EventName, "length", len(text))
	return receipt, nil
}
