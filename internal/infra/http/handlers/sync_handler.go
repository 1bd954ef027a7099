package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/sensibot/crmsync/internal/infra/http/middleware"
	"github.com/sensibot/crmsync/internal/usecase"
)

// ChatSyncExecutor is what the handler needs from the sync use case.
type ChatSyncExecutor interface {
	Execute(ctx context.Context, input usecase.SyncChatsInput) (*usecase.SyncChatsOutput, error)
}

type SyncHandler struct {
	Sync ChatSyncExecutor
}

func NewSyncHandler(sync ChatSyncExecutor) *SyncHandler {
	return &SyncHandler{Sync: sync}
}

type syncRequest struct {
	ToNo        string `json:"to_no"`
	Incremental bool   `json:"incremental"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *SyncHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON"})
		return
	}

	if token == "" || req.ToNo == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing Monday token or to_no"})
		return
	}

	output, err := h.Sync.Execute(r.Context(), usecase.SyncChatsInput{
		CRMToken:    token,
		Phone:       req.ToNo,
		Incremental: req.Incremental,
	})
	if err != nil {
		log.Printf("❌ Error syncing chats: %v", err)
		middleware.RecordSyncPass("error")
		writeJSON(w, statusForError(err), errorForResponse(err))
		return
	}

	middleware.RecordSyncPass("success")
	if output.LeadCreated {
		middleware.RecordLeadCreated()
	}
	middleware.RecordUpdatesAppended(output.UpdatesAppended)
	middleware.RecordUpdatesSkipped(output.EventsProcessed - output.UpdatesAppended)
	middleware.RecordCallActivities(output.EventsProcessed)

	writeJSON(w, http.StatusOK, output)
}

func statusForError(err error) int {
	if de, ok := err.(*usecase.DomainError); ok {
		switch de.Code {
		case usecase.CodeValidation:
			return http.StatusBadRequest
		case usecase.CodeDirectoryNotFound:
			return http.StatusNotFound
		}
	}
	return http.StatusInternalServerError
}

func errorForResponse(err error) errorResponse {
	switch e := err.(type) {
	case *usecase.DomainError:
		return errorResponse{Error: e.Message, Code: e.Code}
	case *usecase.TechnicalError:
		middleware.RecordIntegrationError("remote")
		return errorResponse{Error: "Failed to sync chat logs", Code: e.Code}
	default:
		return errorResponse{Error: "Failed to sync chat logs"}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
