package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sensibot/crmsync/internal/entity"
	"github.com/sensibot/crmsync/internal/infra/queue"
)

// The chat payload carries no real call metadata, so every event is logged
// with a fixed nominal duration.
const defaultCallDurationSeconds = 60

type SyncChatsInput struct {
	CRMToken    string `json:"-"`
	Phone       string `json:"to_no"`
	Incremental bool   `json:"incremental,omitempty"`
}

type SyncChatsOutput struct {
	LeadID          string `json:"lead_id"`
	LeadCreated     bool   `json:"lead_created"`
	EventsProcessed int    `json:"events_processed"`
	UpdatesAppended int    `json:"updates_appended"`
	Msg             string `json:"message"`
}

// SyncChatsUseCase drives one reconciliation pass:
// resolve directory → resolve-or-create lead → per event, dedup-record the
// message and log call activity. Strictly sequential, one remote call at a
// time, and not atomic: a lead or update committed before a later failure
// stays committed. There is no cross-pass lock, so two concurrent passes for
// the same unmatched number can both create a lead — a known correctness gap
// inherited from the CRM's lack of an upsert primitive.
type SyncChatsUseCase struct {
	Directory  *DirectoryResolver
	Matcher    *LeadMatcher
	Registrar  *LeadRegistrar
	Recorder   *ActivityRecorder
	CallLogger *CallActivityLogger
	Chats      ChatProvider
	Cursor     CursorStore  // optional; only consulted on incremental passes
	Notifier   SyncNotifier // optional
}

func NewSyncChatsUseCase(crm CRMGateway, chats ChatProvider, cursor CursorStore, notifier SyncNotifier) *SyncChatsUseCase {
	return &SyncChatsUseCase{
		Directory:  &DirectoryResolver{CRM: crm},
		Matcher:    &LeadMatcher{CRM: crm, MaxItemsScanned: DefaultMaxItemsScanned},
		Registrar:  &LeadRegistrar{CRM: crm},
		Recorder:   &ActivityRecorder{CRM: crm},
		CallLogger: &CallActivityLogger{CRM: crm},
		Chats:      chats,
		Cursor:     cursor,
		Notifier:   notifier,
	}
}

func (uc *SyncChatsUseCase) Execute(ctx context.Context, input SyncChatsInput) (*SyncChatsOutput, error) {
	if validationErrors := ValidateSyncChatsInput(input); len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, &DomainError{Code: CodeValidation, Message: errMsg}
	}

	passID := uuid.New().String()
	phone, _ := entity.NormalizePhone(input.Phone) // validated above

	leadsBoardID, err := uc.Directory.ResolveBoard(ctx, input.CRMToken, WorkspaceName, LeadsBoardName)
	if err != nil {
		return nil, err
	}
	activityBoardID, err := uc.Directory.ResolveBoard(ctx, input.CRMToken, WorkspaceName, ActivityBoardName)
	if err != nil {
		return nil, err
	}

	chats, err := uc.Chats.FetchAllHistory(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeRemoteError, Message: "fetching chat history: " + err.Error()}
	}

	if input.Incremental {
		chats = uc.afterCursor(ctx, chats)
	}
	if len(chats) == 0 {
		return &SyncChatsOutput{Msg: "✅ No chat history found."}, nil
	}

	existing, err := uc.Matcher.FindByPhone(ctx, input.CRMToken, leadsBoardID, phone)
	if err != nil {
		return nil, err
	}

	var leadID string
	leadCreated := false
	if existing != nil {
		leadID = existing.ID
	} else {
		leadID, err = uc.Registrar.CreateLead(ctx, input.CRMToken, leadsBoardID, phone)
		if err != nil {
			return nil, err
		}
		leadCreated = true
	}

	appended := 0
	for _, chat := range chats {
		updateID, err := uc.Recorder.RecordIfNew(ctx, input.CRMToken, leadID, chat)
		if err != nil {
			return nil, err
		}
		if updateID != "" {
			appended++
		}

		entry := entity.CallActivityEntry{
			CallTimeUTC:     chat.TimestampUTC,
			DurationSeconds: defaultCallDurationSeconds,
		}
		if err := uc.CallLogger.RecordCall(ctx, input.CRMToken, activityBoardID, phone, entry); err != nil {
			return nil, err
		}
	}

	if input.Incremental && uc.Cursor != nil {
		if last := chats[len(chats)-1].RecordID; last != "" {
			if err := uc.Cursor.Save(ctx, last); err != nil {
				log.Printf("⚠️ Cursor: failed to save last record id: %v", err)
			}
		}
	}

	output := &SyncChatsOutput{
		LeadID:          leadID,
		LeadCreated:     leadCreated,
		EventsProcessed: len(chats),
		UpdatesAppended: appended,
		Msg:             fmt.Sprintf("✅ Synced %d chat logs.", len(chats)),
	}

	if uc.Notifier != nil {
		payload := queue.SyncCompletedPayload{
			PassID:          passID,
			Phone:           phone.String(),
			LeadID:          leadID,
			LeadCreated:     leadCreated,
			EventsProcessed: output.EventsProcessed,
			UpdatesAppended: output.UpdatesAppended,
			FinishedAt:      time.Now().UTC(),
		}
		if err := uc.Notifier.PublishSyncCompleted(ctx, payload); err != nil {
			log.Printf("⚠️ Queue: failed to publish sync report: %v", err)
		}
	}

	log.Printf("✅ [pass %s] Synced %d chat logs for %s (lead %s)", passID, len(chats), phone, leadID)
	return output, nil
}

// afterCursor drops every record at or before the saved cursor. Unreadable
// cursor state means a full resync, never a failed pass.
func (uc *SyncChatsUseCase) afterCursor(ctx context.Context, chats []entity.ChatEvent) []entity.ChatEvent {
	if uc.Cursor == nil {
		return chats
	}

	last, err := uc.Cursor.Load(ctx)
	if err != nil {
		log.Printf("⚠️ Cursor: unreadable state, resyncing from the start: %v", err)
		return chats
	}
	if last == "" {
		return chats
	}

	for i := range chats {
		if chats[i].RecordID == last {
			return chats[i+1:]
		}
	}
	return chats
}
