package monday_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sensibot/crmsync/internal/infra/integration/monday"
)

func graphQLServer(t *testing.T, wantToken string, respond func(query string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, wantToken, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Query string `json:"query"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(respond(req.Query)))
	}))
}

func TestListWorkspacesParsesNumericIDs(t *testing.T) {
	srv := graphQLServer(t, "tok", func(query string) string {
		assert.Contains(t, query, "workspaces")
		return `{"data":{"workspaces":[{"id":123,"name":"CRM"},{"id":"456","name":"Sales"}]}}`
	})
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	workspaces, err := client.ListWorkspaces(context.Background(), "tok")

	assert.NoError(t, err)
	if assert.Len(t, workspaces, 2) {
		assert.Equal(t, "123", workspaces[0].ID)
		assert.Equal(t, "CRM", workspaces[0].Name)
		assert.Equal(t, "456", workspaces[1].ID)
	}
}

func TestListItemsFlattensColumnValues(t *testing.T) {
	srv := graphQLServer(t, "tok", func(query string) string {
		assert.Contains(t, query, "items_page(limit: 100)")
		assert.Contains(t, query, "boards(ids: 11)")
		return `{"data":{"boards":[{"items_page":{"items":[
			{"id":42,"name":"Sensibot Lead","column_values":[
				{"id":"lead_phone","value":"{\"phone\":\"+919876543210\"}"},
				{"id":"status","value":null}
			]}
		]}}]}}`
	})
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	items, err := client.ListItems(context.Background(), "tok", "11", 100)

	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, "42", items[0].ID)
		assert.Equal(t, `{"phone":"+919876543210"}`, items[0].Columns["lead_phone"])
		_, hasStatus := items[0].Columns["status"]
		assert.False(t, hasStatus, "null column values must be dropped")
	}
}

// The column_values argument must be a JSON object serialized into a JSON
// string literal — encoded twice. The remote API demands it.
func TestCreateItemDoubleEncodesColumnValues(t *testing.T) {
	var gotQuery string
	srv := graphQLServer(t, "tok", func(query string) string {
		gotQuery = query
		return `{"data":{"create_item":{"id":42}}}`
	})
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	itemID, err := client.CreateItem(context.Background(), "tok", "11", "Sensibot Lead", map[string]any{
		"lead_phone": "+919876543210",
	})

	assert.NoError(t, err)
	assert.Equal(t, "42", itemID)
	assert.Contains(t, gotQuery, `item_name: "Sensibot Lead"`)
	// The inner object appears as an escaped string inside the mutation.
	assert.Contains(t, gotQuery, `"{\"lead_phone\":\"+919876543210\"}"`)
}

func TestCreateItemReturnsEmptyIDWhenAbsent(t *testing.T) {
	srv := graphQLServer(t, "tok", func(query string) string {
		return `{"data":{"create_item":null}}`
	})
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	itemID, err := client.CreateItem(context.Background(), "tok", "11", "Sensibot Lead", nil)

	assert.NoError(t, err)
	assert.Empty(t, itemID)
}

func TestCreateUpdateEscapesBody(t *testing.T) {
	var gotQuery string
	srv := graphQLServer(t, "tok", func(query string) string {
		gotQuery = query
		return `{"data":{"create_update":{"id":99}}}`
	})
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	updateID, err := client.CreateUpdate(context.Background(), "tok", "42", "line one\nwith \"quotes\"")

	assert.NoError(t, err)
	assert.Equal(t, "99", updateID)
	assert.Contains(t, gotQuery, `"line one\nwith \"quotes\""`)
}

func TestListUpdates(t *testing.T) {
	srv := graphQLServer(t, "tok", func(query string) string {
		assert.Contains(t, query, "items(ids: [42])")
		return `{"data":{"items":[{"updates":[{"id":1,"body":"first"},{"id":2,"body":"second"}]}]}}`
	})
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	updates, err := client.ListUpdates(context.Background(), "tok", "42")

	assert.NoError(t, err)
	if assert.Len(t, updates, 2) {
		assert.Equal(t, "first", updates[0].Body)
		assert.Equal(t, "2", updates[1].ID)
	}
}

func TestGraphQLErrorsSurfaceAsErrors(t *testing.T) {
	srv := graphQLServer(t, "tok", func(query string) string {
		return `{"errors":[{"message":"Not authenticated"}]}`
	})
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	_, err := client.ListWorkspaces(context.Background(), "tok")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Not authenticated")
}

func TestNon200StatusSurfacesAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error_message":"internal"}`))
	}))
	defer srv.Close()

	client := monday.NewClient(srv.URL)
	_, err := client.ListWorkspaces(context.Background(), "tok")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
