package usecase

import (
	"context"
	"log"

	"github.com/sensibot/crmsync/internal/entity"
)

const (
	leadItemName       = "Sensibot Lead"
	newLeadStatusLabel = "New Lead"
)

// LeadRegistrar creates a new lead item when matching found nothing. The CRM
// has no upsert: callers must check for an existing lead first, and two
// concurrent passes for the same unmatched number can still both create one.
type LeadRegistrar struct {
	CRM CRMGateway
}

func (r *LeadRegistrar) CreateLead(ctx context.Context, token, boardID string, phone entity.PhoneNumber) (string, error) {
	columns := map[string]any{
		phoneColumnKey:  phone.String(),
		statusColumnKey: map[string]string{"label": newLeadStatusLabel},
	}

	itemID, err := r.CRM.CreateItem(ctx, token, boardID, leadItemName, columns)
	if err != nil {
		return "", &TechnicalError{Code: CodeRemoteError, Message: "creating lead: " + err.Error()}
	}
	if itemID == "" {
		return "", &DomainError{Code: CodeCreationFailed, Message: "lead creation returned no item id"}
	}

	log.Printf("➕ Created new lead item %s for %s", itemID, phone)
	return itemID, nil
}
