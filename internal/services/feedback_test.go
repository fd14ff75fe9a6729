package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventdesk/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedbackService_Submit(t *testing.T) {
	svc := NewFeedbackService(testLogger).(*feedbackService)
	svc.now = func() time.Time { return fixedNow }

	tests := []struct {
		name      string
		eventName string
		text      string
		wantErr   bool
	}{
		{"accepted", "GoConf", "Great talks!", false},
		{"accepted without event", "", "Nice venue", false},
		{"empty", "GoConf", "", true},
		{"whitespace only", "GoConf", " \n\t ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := svc.Submit(context.Background(), tt.eventName, tt.text)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidInput))
				assert.Nil(t, receipt)
				return
			}
			require.NoError(t, err)
			assert.Len(t, receipt.Reference, feedbackRefLength)
			assert.Equal(t, tt.eventName, receipt.EventName)
			assert.Equal(t, "Thank you for your feedback!", receipt.Message)
			assert.Equal(t, fixedNow, receipt.SubmittedAt)
		})
	}
}
