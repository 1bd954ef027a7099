package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sensibot/crmsync/internal/entity"
	"github.com/sensibot/crmsync/internal/infra/queue"
)

// MockCRMGateway
type MockCRMGateway struct {
	mock.Mock
}

func (m *MockCRMGateway) ListWorkspaces(ctx context.Context, token string) ([]entity.Workspace, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Workspace), args.Error(1)
}

func (m *MockCRMGateway) ListBoards(ctx context.Context, token, workspaceID string) ([]entity.Board, error) {
	args := m.Called(ctx, token, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Board), args.Error(1)
}

func (m *MockCRMGateway) ListItems(ctx context.Context, token, boardID string, limit int) ([]entity.LeadItem, error) {
	args := m.Called(ctx, token, boardID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.LeadItem), args.Error(1)
}

func (m *MockCRMGateway) CreateItem(ctx context.Context, token, boardID, itemName string, columns map[string]any) (string, error) {
	args := m.Called(ctx, token, boardID, itemName, columns)
	return args.String(0), args.Error(1)
}

func (m *MockCRMGateway) CreateUpdate(ctx context.Context, token, itemID, body string) (string, error) {
	args := m.Called(ctx, token, itemID, body)
	return args.String(0), args.Error(1)
}

func (m *MockCRMGateway) ListUpdates(ctx context.Context, token, itemID string) ([]entity.UpdateEntry, error) {
	args := m.Called(ctx, token, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UpdateEntry), args.Error(1)
}

// MockChatProvider
type MockChatProvider struct {
	mock.Mock
}

func (m *MockChatProvider) FetchAllHistory(ctx context.Context) ([]entity.ChatEvent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ChatEvent), args.Error(1)
}

// MockCursorStore
type MockCursorStore struct {
	mock.Mock
}

func (m *MockCursorStore) Load(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockCursorStore) Save(ctx context.Context, recordID string) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

// MockSyncNotifier
type MockSyncNotifier struct {
	mock.Mock
}

func (m *MockSyncNotifier) PublishSyncCompleted(ctx context.Context, payload queue.SyncCompletedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
