package entity

import "time"

// Workspace is a top-level CRM container. Fetched per resolution, never
// cached across restarts.
type Workspace struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Board is a named item collection scoped to a workspace. Two boards matter
// to this service: the "Leads" board and the activity board.
type Board struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LeadItem is a CRM record representing a prospective contact. Columns maps
// column keys to their raw values; the phone column's raw value is itself a
// serialized JSON blob with a "phone" field, a quirk of the remote API.
type LeadItem struct {
	ID      string            `json:"id"`
	Name    string            `json:"name"`
	Columns map[string]string `json:"columns"`
}

// UpdateEntry is an immutable append-only log entry on a lead. The CRM owns
// these; this service only appends, never edits or deletes.
type UpdateEntry struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

// CallActivityEntry is one call/contact record for the activity board.
type CallActivityEntry struct {
	CallTimeUTC     time.Time `json:"call_time"`
	DurationSeconds int       `json:"call_duration"`
}
