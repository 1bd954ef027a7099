package sensibot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/sensibot/crmsync/internal/entity"
)

const DefaultBaseURL = "https://api.sensibot.io"

// Client talks to the Sensibot assistant API: chat history for the sync
// engine, key authentication for the token-verification endpoint.
type Client struct {
	apiToken   string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiToken, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiToken:   apiToken,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// FetchAllHistory returns the full chat history as an ordered list. The
// provider offers no paging and no filtering; this is the whole archive.
func (c *Client) FetchAllHistory(ctx context.Context) ([]entity.ChatEvent, error) {
	if c.apiToken == "" {
		log.Println("⚠️ Sensibot: API_TOKEN not configured")
		return nil, fmt.Errorf("sensibot not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/assistant/allchathistory", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sensibot api returned status %d: %s", resp.StatusCode, string(body))
	}

	var records []chatRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse chat history: %w", err)
	}

	chats := make([]entity.ChatEvent, 0, len(records))
	for _, rec := range records {
		chats = append(chats, entity.ChatEvent{
			RecordID:     rec.ID.String(),
			From:         rec.FromNo,
			To:           rec.ToNo,
			TimestampUTC: parseTimestamp(rec.Timestamp),
			Message:      rec.Message,
		})
	}
	return chats, nil
}

// VerifyKey checks an assistant key against Sensibot and returns the raw
// authentication payload on success.
func (c *Client) VerifyKey(ctx context.Context, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/assistant/key_authentication", bytes.NewReader([]byte("{}")))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sensibot key authentication returned status %d", resp.StatusCode)
	}
	return json.RawMessage(body), nil
}
