package usecase

import (
	"context"

	"github.com/sensibot/crmsync/internal/entity"
	"github.com/sensibot/crmsync/internal/infra/queue"
)

// CRMGateway is the Monday-style GraphQL backend. The CRM token is supplied
// by the caller on every request, so each call takes it explicitly; the
// engine never stores credentials.
type CRMGateway interface {
	ListWorkspaces(ctx context.Context, token string) ([]entity.Workspace, error)
	ListBoards(ctx context.Context, token, workspaceID string) ([]entity.Board, error)
	ListItems(ctx context.Context, token, boardID string, limit int) ([]entity.LeadItem, error)
	CreateItem(ctx context.Context, token, boardID, itemName string, columns map[string]any) (string, error)
	CreateUpdate(ctx context.Context, token, itemID, body string) (string, error)
	ListUpdates(ctx context.Context, token, itemID string) ([]entity.UpdateEntry, error)
}

// ChatProvider returns the full chat history as a finite ordered sequence.
type ChatProvider interface {
	FetchAllHistory(ctx context.Context) ([]entity.ChatEvent, error)
}

// CursorStore is the single durable slot holding the last processed record
// id. Load returns "" when no cursor exists.
type CursorStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, recordID string) error
}

// SyncNotifier publishes a completion event after a successful pass.
type SyncNotifier interface {
	PublishSyncCompleted(ctx context.Context, payload queue.SyncCompletedPayload) error
}
