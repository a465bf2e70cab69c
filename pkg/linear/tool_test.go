package linear_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	// Packages
	linear "github.com/mutablelogic/go-scopey/pkg/linear"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

// fakeLinear answers GraphQL documents by their root field
type fakeLinear struct {
	sync.Mutex
	teams     []map[string]any
	requests  []map[string]any
	responses map[string]string
}

func (f *fakeLinear) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if r.Header.Get("Authorization") != "lin_api_test" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.Lock()
	f.requests = append(f.requests, map[string]any{"query": req.Query, "variables": req.Variables})
	f.Unlock()

	w.Header().Set("Content-Type", "application/json")
	for field, response := range f.responses {
		if strings.Contains(req.Query, field+"(") || strings.Contains(req.Query, field+" {") {
			w.Write([]byte(response))
			return
		}
	}
	w.Write([]byte(`{"errors":[{"message":"unexpected query"}]}`))
}

func newTools(t *testing.T, f *fakeLinear) map[string]tool.Tool {
	t.Helper()
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	tools, err := linear.NewTools(linear.Config{APIKey: "lin_api_test", Endpoint: ts.URL})
	require.NoError(t, err)
	result := make(map[string]tool.Tool, len(tools))
	for _, t := range tools {
		result[t.Name()] = t
	}
	return result
}

const issueJSON = `{"id":"i1","identifier":"ENG-1","title":"Fix login","description":null,
"url":"https://linear.app/x/issue/ENG-1","priority":2,"createdAt":"2024-01-01","updatedAt":"2024-01-02",
"state":{"name":"Todo"},"assignee":null,"team":{"name":"Engineering"},"labels":{"nodes":[{"name":"bug"}]}}`

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_linear_001(t *testing.T) {
	assert := assert.New(t)

	// Missing key
	_, err := linear.NewTools(linear.Config{})
	assert.Error(err)

	// Tool names and schemas
	tools, err := linear.NewTools(linear.Config{APIKey: "key"})
	if assert.NoError(err) && assert.Len(tools, 4) {
		tk, err := tool.NewToolkit(tools)
		if assert.NoError(err) {
			names := []string{}
			for _, meta := range tk.List() {
				names = append(names, meta.Name)
			}
			assert.Equal([]string{"linear_create_ticket", "linear_read_tickets", "linear_get_teams", "linear_get_users"}, names)
		}
		schema, err := tools[0].Schema()
		if assert.NoError(err) {
			assert.Equal([]string{"title"}, schema.Required)
			assert.Equal(float64(4), *schema.Properties["priority"].Maximum)
		}
	}
}

func Test_linear_002(t *testing.T) {
	assert := assert.New(t)
	f := &fakeLinear{responses: map[string]string{
		"teams": `{"data":{"teams":{"nodes":[{"id":"t1","name":"Engineering","key":"ENG","description":null}]}}}`,
		"users": `{"data":{"users":{"nodes":[{"id":"u1","name":"Ada","email":"ada@example.com","displayName":"ada"}]}}}`,
	}}
	tools := newTools(t, f)

	result, err := tools["linear_get_teams"].Run(context.Background(), nil)
	if assert.NoError(err) {
		response := result.(*linear.TeamsResponse)
		assert.True(response.Success)
		if assert.Len(response.Teams, 1) {
			assert.Equal("ENG", response.Teams[0].Key)
		}
	}

	result, err = tools["linear_get_users"].Run(context.Background(), nil)
	if assert.NoError(err) {
		response := result.(*linear.UsersResponse)
		if assert.Len(response.Users, 1) {
			assert.Equal("ada@example.com", response.Users[0].Email)
		}
	}
}

func Test_linear_003(t *testing.T) {
	assert := assert.New(t)
	f := &fakeLinear{responses: map[string]string{
		"teams":       `{"data":{"teams":{"nodes":[{"id":"t1","name":"Engineering","key":"ENG"}]}}}`,
		"issueLabels": `{"data":{"issueLabels":{"nodes":[{"id":"l1","name":"bug"},{"id":"l2","name":"feature"}]}}}`,
		"issueCreate": `{"data":{"issueCreate":{"success":true,"issue":` + issueJSON + `}}}`,
	}}
	tools := newTools(t, f)

	// Create with default team and label names
	result, err := tools["linear_create_ticket"].Run(context.Background(), json.RawMessage(`{"title":"Fix login","labels":["bug","missing"],"priority":2}`))
	if assert.NoError(err) {
		response := result.(*linear.CreateTicketResponse)
		assert.True(response.Success)
		assert.Equal("ENG-1", response.TicketId)
		assert.Equal("Engineering", *response.Team)
	}

	// The mutation carries the resolved team and label identifiers
	f.Lock()
	defer f.Unlock()
	if assert.Len(f.requests, 3) {
		input := f.requests[2]["variables"].(map[string]any)["input"].(map[string]any)
		assert.Equal("t1", input["teamId"])
		assert.Equal([]any{"l1"}, input["labelIds"])
		assert.Equal(float64(2), input["priority"])
	}
}

func Test_linear_004(t *testing.T) {
	assert := assert.New(t)

	// No teams in the workspace
	f := &fakeLinear{responses: map[string]string{
		"teams": `{"data":{"teams":{"nodes":[]}}}`,
	}}
	tools := newTools(t, f)
	_, err := tools["linear_create_ticket"].Run(context.Background(), json.RawMessage(`{"title":"x"}`))
	assert.ErrorContains(err, "Failed to create Linear ticket: ")
	assert.ErrorContains(err, "No teams found in Linear workspace")

	// Missing title
	_, err = tools["linear_create_ticket"].Run(context.Background(), json.RawMessage(`{}`))
	assert.ErrorContains(err, "title is required")
}

func Test_linear_005(t *testing.T) {
	assert := assert.New(t)
	f := &fakeLinear{responses: map[string]string{
		"searchIssues": `{"data":{"searchIssues":{"nodes":[` + issueJSON + `]}}}`,
		"issues":       `{"data":{"issues":{"nodes":[` + issueJSON + `,` + issueJSON + `]}}}`,
	}}
	tools := newTools(t, f)

	// Filtered list with default limit
	result, err := tools["linear_read_tickets"].Run(context.Background(), json.RawMessage(`{"teamId":"t1","state":"Todo"}`))
	if assert.NoError(err) {
		response := result.(*linear.ReadTicketsResponse)
		assert.Equal(2, response.Count)
		assert.Equal("Todo", *response.Tickets[0].State)
		assert.Nil(response.Tickets[0].Assignee)
		assert.Equal([]string{"bug"}, response.Tickets[0].Labels)
	}

	// Search by term
	result, err = tools["linear_read_tickets"].Run(context.Background(), json.RawMessage(`{"query":"login","limit":5}`))
	if assert.NoError(err) {
		assert.Equal(1, result.(*linear.ReadTicketsResponse).Count)
	}

	f.Lock()
	defer f.Unlock()
	if assert.Len(f.requests, 2) {
		vars := f.requests[0]["variables"].(map[string]any)
		assert.Equal(float64(10), vars["first"])
		assert.Equal(map[string]any{"eq": "t1"}, vars["filter"].(map[string]any)["team"].(map[string]any)["id"])
		vars = f.requests[1]["variables"].(map[string]any)
		assert.Equal("login", vars["term"])
		assert.Equal(float64(5), vars["first"])
	}
}

func Test_linear_006(t *testing.T) {
	assert := assert.New(t)

	// GraphQL errors are failures
	f := &fakeLinear{responses: map[string]string{
		"users": `{"errors":[{"message":"Authentication required"}]}`,
	}}
	tools := newTools(t, f)
	_, err := tools["linear_get_users"].Run(context.Background(), nil)
	assert.EqualError(err, "Failed to get Linear users: Authentication required")
}
