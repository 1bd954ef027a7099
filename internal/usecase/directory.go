package usecase

import (
	"context"
	"fmt"
	"log"
)

// The CRM directory this service knows about. Discovery beyond these fixed
// names is out of scope.
const (
	WorkspaceName     = "CRM"
	LeadsBoardName    = "Leads"
	ActivityBoardName = "Activities"
)

// DirectoryResolver finds a board id by walking workspace name → board name.
// The CRM offers no lookup by name, so both steps are linear scans over the
// listing endpoints.
type DirectoryResolver struct {
	CRM CRMGateway
}

func (r *DirectoryResolver) ResolveBoard(ctx context.Context, token, workspaceName, boardName string) (string, error) {
	workspaces, err := r.CRM.ListWorkspaces(ctx, token)
	if err != nil {
		return "", &TechnicalError{Code: CodeRemoteError, Message: "listing workspaces: " + err.Error()}
	}

	var workspaceID string
	for _, w := range workspaces {
		if w.Name == workspaceName {
			workspaceID = w.ID
			break
		}
	}
	if workspaceID == "" {
		log.Printf("⚠️ CRM: workspace %q not found", workspaceName)
		return "", &DomainError{
			Code:    CodeDirectoryNotFound,
			Message: fmt.Sprintf("workspace %q not found", workspaceName),
		}
	}

	boards, err := r.CRM.ListBoards(ctx, token, workspaceID)
	if err != nil {
		return "", &TechnicalError{Code: CodeRemoteError, Message: "listing boards: " + err.Error()}
	}

	for _, b := range boards {
		if b.Name == boardName {
			return b.ID, nil
		}
	}

	log.Printf("⚠️ CRM: board %q not found in workspace %q", boardName, workspaceName)
	return "", &DomainError{
		Code:    CodeDirectoryNotFound,
		Message: fmt.Sprintf("board %q not found in workspace %q", boardName, workspaceName),
	}
}
