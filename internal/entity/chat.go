package entity

import "time"

// ChatEvent is one message from the provider's chat history. Read-only and
// ephemeral; nothing here is persisted beyond the sync pass.
type ChatEvent struct {
	RecordID     string    `json:"id"`
	From         string    `json:"from_no"`
	To           string    `json:"to_no"`
	TimestampUTC time.Time `json:"timestamp"`
	Message      string    `json:"message"`
}
