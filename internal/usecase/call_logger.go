package usecase

import (
	"context"
	"time"

	"github.com/sensibot/crmsync/internal/entity"
)

// Column keys on the activity board.
const (
	callTimeColumnKey     = "call_time"
	callDurationColumnKey = "call_duration"
)

// CallActivityLogger appends one activity record per chat event processed.
// Unlike lead updates there is no dedup at this layer: replaying the same
// chat history re-logs call activity every time.
type CallActivityLogger struct {
	CRM CRMGateway
}

func (l *CallActivityLogger) RecordCall(ctx context.Context, token, activityBoardID string, phone entity.PhoneNumber, entry entity.CallActivityEntry) error {
	columns := map[string]any{
		callTimeColumnKey:     entry.CallTimeUTC.UTC().Format(time.RFC3339),
		callDurationColumnKey: entry.DurationSeconds,
	}

	if _, err := l.CRM.CreateItem(ctx, token, activityBoardID, "Call with "+phone.String(), columns); err != nil {
		return &TechnicalError{Code: CodeRemoteError, Message: "logging call activity: " + err.Error()}
	}
	return nil
}
