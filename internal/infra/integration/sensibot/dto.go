package sensibot

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type chatRecord struct {
	ID        json.Number     `json:"id"`
	FromNo    string          `json:"from_no"`
	ToNo      string          `json:"to_no"`
	Timestamp json.RawMessage `json:"timestamp"`
	Message   string          `json:"message"`
}

// parseTimestamp accepts the two shapes Sensibot has been seen sending:
// RFC3339 strings and unix-millisecond numbers. Anything else maps to the
// zero time rather than failing the whole history fetch.
func parseTimestamp(raw json.RawMessage) time.Time {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return time.Time{}
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	return time.Time{}
}
