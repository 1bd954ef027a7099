package monday

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

const DefaultBaseURL = "https://api.monday.com/v2"

// Client talks to the Monday GraphQL endpoint. It holds no credentials:
// every call takes the caller-supplied API token, which goes into the
// Authorization header as-is (Monday does not use a Bearer prefix).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) ListWorkspaces(ctx context.Context, token string) ([]entity.Workspace, error) {
	query := `query { workspaces { id name } }`

	var result struct {
		Data struct {
			Workspaces []workspaceDTO `json:"workspaces"`
		} `json:"data"`
	}
	if err := c.post(ctx, token, query, &result); err != nil {
		return nil, err
	}

	workspaces := make([]entity.Workspace, 0, len(result.Data.Workspaces))
	for _, w := range result.Data.Workspaces {
		workspaces = append(workspaces, entity.Workspace{ID: w.ID.String(), Name: w.Name})
	}
	return workspaces, nil
}

func (c *Client) ListBoards(ctx context.Context, token, workspaceID string) ([]entity.Board, error) {
	query := fmt.Sprintf(`query { boards(workspace_ids: [%s]) { id name } }`, workspaceID)

	var result struct {
		Data struct {
			Boards []boardDTO `json:"boards"`
		} `json:"data"`
	}
	if err := c.post(ctx, token, query, &result); err != nil {
		return nil, err
	}

	boards := make([]entity.Board, 0, len(result.Data.Boards))
	for _, b := range result.Data.Boards {
		boards = append(boards, entity.Board{ID: b.ID.String(), Name: b.Name})
	}
	return boards, nil
}

func (c *Client) ListItems(ctx context.Context, token, boardID string, limit int) ([]entity.LeadItem, error) {
	query := fmt.Sprintf(`query GetBoardItems {
		boards(ids: %s) {
			items_page(limit: %d) {
				items {
					id
					name
					column_values { id value }
				}
			}
		}
	}`, boardID, limit)

	var result struct {
		Data struct {
			Boards []struct {
				ItemsPage struct {
					Items []itemDTO `json:"items"`
				} `json:"items_page"`
			} `json:"boards"`
		} `json:"data"`
	}
	if err := c.post(ctx, token, query, &result); err != nil {
		return nil, err
	}
	if len(result.Data.Boards) == 0 {
		return nil, nil
	}

	var items []entity.LeadItem
	for _, it := range result.Data.Boards[0].ItemsPage.Items {
		columns := make(map[string]string, len(it.ColumnValues))
		for _, col := range it.ColumnValues {
			if col.Value != nil {
				columns[col.ID] = *col.Value
			}
		}
		items = append(items, entity.LeadItem{
			ID:      it.ID.String(),
			Name:    it.Name,
			Columns: columns,
		})
	}
	return items, nil
}

// CreateItem creates a board item. Returns "" (without error) when the API
// answers but hands back no item, so callers can decide how fatal that is.
func (c *Client) CreateItem(ctx context.Context, token, boardID, itemName string, columns map[string]any) (string, error) {
	columnValues, err := encodeColumnValues(columns)
	if err != nil {
		return "", fmt.Errorf("failed to encode column values: %w", err)
	}

	name, err := json.Marshal(itemName)
	if err != nil {
		return "", err
	}

	mutation := fmt.Sprintf(`mutation {
		create_item (
			board_id: %s,
			item_name: %s,
			column_values: %s
		) { id }
	}`, boardID, name, columnValues)

	var result struct {
		Data struct {
			CreateItem *struct {
				ID json.Number `json:"id"`
			} `json:"create_item"`
		} `json:"data"`
	}
	if err := c.post(ctx, token, mutation, &result); err != nil {
		return "", err
	}
	if result.Data.CreateItem == nil {
		log.Printf("⚠️ Monday: create_item returned no item on board %s", boardID)
		return "", nil
	}
	return result.Data.CreateItem.ID.String(), nil
}

func (c *Client) CreateUpdate(ctx context.Context, token, itemID, body string) (string, error) {
	// JSON-encode the body so line breaks and quotes survive the query string.
	safeBody, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	mutation := fmt.Sprintf(`mutation { create_update(item_id: %s, body: %s) { id } }`, itemID, safeBody)

	var result struct {
		Data struct {
			CreateUpdate *struct {
				ID json.Number `json:"id"`
			} `json:"create_update"`
		} `json:"data"`
	}
	if err := c.post(ctx, token, mutation, &result); err != nil {
		return "", err
	}
	if result.Data.CreateUpdate == nil {
		log.Printf("⚠️ Monday: no update id returned for item %s", itemID)
		return "", nil
	}
	return result.Data.CreateUpdate.ID.String(), nil
}

func (c *Client) ListUpdates(ctx context.Context, token, itemID string) ([]entity.UpdateEntry, error) {
	query := fmt.Sprintf(`query { items(ids: [%s]) { updates { id body } } }`, itemID)

	var result struct {
		Data struct {
			Items []struct {
				Updates []updateDTO `json:"updates"`
			} `json:"items"`
		} `json:"data"`
	}
	if err := c.post(ctx, token, query, &result); err != nil {
		return nil, err
	}
	if len(result.Data.Items) == 0 {
		return nil, nil
	}

	updates := make([]entity.UpdateEntry, 0, len(result.Data.Items[0].Updates))
	for _, u := range result.Data.Items[0].Updates {
		updates = append(updates, entity.UpdateEntry{ID: u.ID.String(), Body: u.Body})
	}
	return updates, nil
}

func (c *Client) post(ctx context.Context, token, query string, out any) error {
	body, err := json.Marshal(graphQLRequest{Query: query})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("monday api returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("failed to parse monday response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("monday api error: %s", envelope.Errors[0].Message)
	}

	return json.Unmarshal(respBody, out)
}
