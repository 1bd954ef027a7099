package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sensibot/crmsync/internal/entity"
)

// Lead timelines are shown to agents in IST regardless of server locale.
var kolkata = func() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return time.FixedZone("IST", 5*3600+30*60)
	}
	return loc
}()

// ActivityRecorder appends chat messages as updates on a lead, skipping
// messages that were already logged.
type ActivityRecorder struct {
	CRM CRMGateway
}

// RecordIfNew appends the chat message unless some existing update already
// contains the message text. The containment check is deliberately loose:
// the provider exposes no message id to dedup on, so a substring match
// trades the odd false negative for idempotent re-syncs.
func (r *ActivityRecorder) RecordIfNew(ctx context.Context, token, leadID string, chat entity.ChatEvent) (string, error) {
	updates, err := r.CRM.ListUpdates(ctx, token, leadID)
	if err != nil {
		return "", &TechnicalError{Code: CodeRemoteError, Message: "listing lead updates: " + err.Error()}
	}

	for _, u := range updates {
		if strings.Contains(u.Body, chat.Message) {
			return "", nil // already logged
		}
	}

	updateID, err := r.CRM.CreateUpdate(ctx, token, leadID, FormatUpdateBody(chat))
	if err != nil {
		return "", &TechnicalError{Code: CodeRemoteError, Message: "appending lead update: " + err.Error()}
	}
	return updateID, nil
}

// FormatUpdateBody renders the line shown on the lead's timeline.
func FormatUpdateBody(chat entity.ChatEvent) string {
	messageTime := chat.TimestampUTC.In(kolkata).Format("2/1/2006, 3:04:05 pm")
	return fmt.Sprintf("💬 Message from %s to %s at %s<br>%s", chat.From, chat.To, messageTime, chat.Message)
}
