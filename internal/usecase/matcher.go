package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/sensibot/crmsync/internal/entity"
)

// Column keys on the Leads board.
const (
	phoneColumnKey  = "lead_phone"
	statusColumnKey = "status"
)

// DefaultMaxItemsScanned caps the lead scan at a single page. The CRM has no
// phone index, so matching is a linear walk over the first page of items —
// a known scalability ceiling.
const DefaultMaxItemsScanned = 100

// LeadMatcher scans a board for the item whose phone column holds the
// canonical number. First match wins; ordering among duplicates is whatever
// the CRM returns.
type LeadMatcher struct {
	CRM             CRMGateway
	MaxItemsScanned int
}

// FindByPhone returns the matching lead, or nil when no item matches.
func (m *LeadMatcher) FindByPhone(ctx context.Context, token, boardID string, phone entity.PhoneNumber) (*entity.LeadItem, error) {
	limit := m.MaxItemsScanned
	if limit <= 0 {
		limit = DefaultMaxItemsScanned
	}

	items, err := m.CRM.ListItems(ctx, token, boardID, limit)
	if err != nil {
		return nil, &TechnicalError{Code: CodeRemoteError, Message: "listing board items: " + err.Error()}
	}

	for i := range items {
		if phoneFromColumns(items[i].Columns) == phone.String() {
			return &items[i], nil
		}
	}
	return nil, nil
}

// phoneFromColumns digs the number out of the phone column. The raw value is
// a JSON blob ({"phone":"+91...", ...}); malformed values count as "no
// match" for that item only, never as an error.
func phoneFromColumns(columns map[string]string) string {
	raw, ok := columns[phoneColumnKey]
	if !ok || raw == "" {
		return ""
	}

	var col struct {
		Phone string `json:"phone"`
	}
	if err := json.Unmarshal([]byte(raw), &col); err != nil {
		return ""
	}
	return stripWhitespace(col.Phone)
}

func stripWhitespace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
