package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sensibot/crmsync/internal/infra/http/handlers"
	"github.com/sensibot/crmsync/internal/usecase"
)

type MockChatSync struct {
	mock.Mock
}

func (m *MockChatSync) Execute(ctx context.Context, input usecase.SyncChatsInput) (*usecase.SyncChatsOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.SyncChatsOutput), args.Error(1)
}

func doSync(h *handlers.SyncHandler, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/fetch-chats", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestSyncHandlerSuccess(t *testing.T) {
	sync := new(MockChatSync)
	sync.On("Execute", mock.Anything, usecase.SyncChatsInput{CRMToken: "tok", Phone: "9876543210"}).
		Return(&usecase.SyncChatsOutput{
			LeadID:          "42",
			LeadCreated:     true,
			EventsProcessed: 3,
			UpdatesAppended: 2,
			Msg:             "✅ Synced 3 chat logs.",
		}, nil)

	h := handlers.NewSyncHandler(sync)
	rec := doSync(h, "tok", `{"to_no":"9876543210"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp usecase.SyncChatsOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "✅ Synced 3 chat logs.", resp.Msg)
	assert.Equal(t, "42", resp.LeadID)
	sync.AssertExpectations(t)
}

func TestSyncHandlerMissingTokenOrPhone(t *testing.T) {
	sync := new(MockChatSync)
	h := handlers.NewSyncHandler(sync)

	rec := doSync(h, "", `{"to_no":"9876543210"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doSync(h, "tok", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sync.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestSyncHandlerInvalidJSON(t *testing.T) {
	sync := new(MockChatSync)
	h := handlers.NewSyncHandler(sync)

	rec := doSync(h, "tok", `{to_no`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSyncHandlerErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &usecase.DomainError{Code: usecase.CodeValidation, Message: "bad phone"}, http.StatusBadRequest},
		{"directory", &usecase.DomainError{Code: usecase.CodeDirectoryNotFound, Message: "no board"}, http.StatusNotFound},
		{"creation", &usecase.DomainError{Code: usecase.CodeCreationFailed, Message: "no id"}, http.StatusInternalServerError},
		{"remote", &usecase.TechnicalError{Code: usecase.CodeRemoteError, Message: "boom"}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sync := new(MockChatSync)
			sync.On("Execute", mock.Anything, mock.Anything).Return(nil, tc.err)

			h := handlers.NewSyncHandler(sync)
			rec := doSync(h, "tok", `{"to_no":"9876543210"}`)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp struct {
				Error string `json:"error"`
			}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestSyncHandlerPassesIncrementalFlag(t *testing.T) {
	sync := new(MockChatSync)
	sync.On("Execute", mock.Anything, usecase.SyncChatsInput{CRMToken: "tok", Phone: "9876543210", Incremental: true}).
		Return(&usecase.SyncChatsOutput{Msg: "✅ Synced 0 chat logs."}, nil)

	h := handlers.NewSyncHandler(sync)
	rec := doSync(h, "tok", `{"to_no":"9876543210","incremental":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	sync.AssertExpectations(t)
}
