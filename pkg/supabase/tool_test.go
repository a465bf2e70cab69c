package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	supabase "github.com/mutablelogic/go-scopey/pkg/supabase"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

const openapi = `{
  "swagger": "2.0",
  "paths": {"/": {}, "/users": {}, "/projects": {}, "/rpc/search": {}},
  "definitions": {
    "users": {
      "required": ["id", "email"],
      "properties": {
        "id": {"format": "bigint", "type": "integer"},
        "email": {"format": "text", "type": "string"},
        "created_at": {"default": "now()", "format": "timestamp with time zone", "type": "string"}
      }
    }
  }
}`

type fakePostgREST struct {
	sync.Mutex
	queries []url.Values
	paths   []string
}

func (f *fakePostgREST) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") != "anon" || r.Header.Get("Authorization") != "Bearer anon" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	f.Lock()
	f.paths = append(f.paths, r.URL.Path)
	f.queries = append(f.queries, r.URL.Query())
	f.Unlock()

	switch r.URL.Path {
	case "/rest/v1/", "/rest/v1":
		w.Header().Set("Content-Type", "application/openapi+json")
		w.Write([]byte(openapi))
	case "/rest/v1/users":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "0-1/57")
		w.Write([]byte(`[{"id":1,"email":"a@example.com"},{"id":2,"email":"b@example.com"}]`))
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"42P01","message":"relation does not exist"}`))
	}
}

func newTools(t *testing.T, f *fakePostgREST) map[string]tool.Tool {
	t.Helper()
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	tools, err := supabase.NewTools(supabase.Config{URL: ts.URL, AnonKey: "anon"})
	require.NoError(t, err)
	result := make(map[string]tool.Tool, len(tools))
	for _, t := range tools {
		result[t.Name()] = t
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_supabase_001(t *testing.T) {
	assert := assert.New(t)

	_, err := supabase.NewTools(supabase.Config{URL: "https://x.supabase.co"})
	assert.ErrorIs(err, scopey.ErrBadParameter)
	_, err = supabase.NewTools(supabase.Config{URL: "not a url", AnonKey: "anon"})
	assert.ErrorIs(err, scopey.ErrBadParameter)

	tools, err := supabase.NewTools(supabase.Config{URL: "https://x.supabase.co", AnonKey: "anon"})
	if assert.NoError(err) {
		_, err := tool.NewToolkit(tools)
		assert.NoError(err)
		assert.Len(tools, 4)
	}
}

func Test_supabase_002(t *testing.T) {
	assert := assert.New(t)
	f := new(fakePostgREST)
	tools := newTools(t, f)

	result, err := tools["supabase_read_table"].Run(context.Background(), json.RawMessage(`{
		"tableName": "users",
		"select": "id,email",
		"filter": {"active": true, "age": {"gte": 18, "lt": 65}, "role": null},
		"orderBy": "email",
		"ascending": false
	}`))
	if assert.NoError(err) {
		response := result.(*supabase.RowsResponse)
		assert.True(response.Success)
		assert.Equal(2, response.Count)
		if assert.NotNil(response.TotalCount) {
			assert.Equal(int64(57), *response.TotalCount)
		}
	}

	f.Lock()
	defer f.Unlock()
	if assert.Len(f.queries, 1) {
		q := f.queries[0]
		assert.Equal("id,email", q.Get("select"))
		assert.Equal([]string{"eq.true"}, q["active"])
		assert.Equal([]string{"gte.18", "lt.65"}, q["age"])
		assert.Equal([]string{"is.null"}, q["role"])
		assert.Equal("email.desc", q.Get("order"))
		assert.Equal("100", q.Get("limit"))
		assert.Equal("0", q.Get("offset"))
	}
}

func Test_supabase_003(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t, new(fakePostgREST))

	// Unsupported operators are rejected before any request
	_, err := tools["supabase_read_table"].Run(context.Background(), json.RawMessage(`{"tableName":"users","filter":{"age":{"between":1}}}`))
	assert.ErrorIs(err, scopey.ErrBadParameter)

	// API errors are failures
	_, err = tools["supabase_read_table"].Run(context.Background(), json.RawMessage(`{"tableName":"missing"}`))
	assert.ErrorContains(err, "Failed to read from Supabase: ")
}

func Test_supabase_004(t *testing.T) {
	assert := assert.New(t)

	table, values, err := supabase.ParseQuery("users?select=id&age=gte.18&name=Ada&order=name.desc&offset=10")
	if assert.NoError(err) {
		assert.Equal("users", table)
		assert.Equal("id", values.Get("select"))
		assert.Equal("gte.18", values.Get("age"))
		assert.Equal("eq.Ada", values.Get("name"))
		assert.Equal("name.desc", values.Get("order"))
		assert.Equal("10", values.Get("offset"))
		assert.Equal("100", values.Get("limit"))
	}

	table, values, err = supabase.ParseQuery("projects")
	if assert.NoError(err) {
		assert.Equal("projects", table)
		assert.Equal("*", values.Get("select"))
	}

	_, _, err = supabase.ParseQuery("?select=*")
	assert.ErrorIs(err, scopey.ErrBadParameter)
	_, _, err = supabase.ParseQuery("a/b?select=*")
	assert.ErrorIs(err, scopey.ErrBadParameter)
}

func Test_supabase_005(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t, new(fakePostgREST))

	result, err := tools["supabase_execute_query"].Run(context.Background(), json.RawMessage(`{"query":"users?id=1"}`))
	if assert.NoError(err) {
		response := result.(*supabase.RowsResponse)
		assert.Equal(2, response.Count)
		assert.JSONEq(`{"id":1,"email":"a@example.com"}`, string(response.Data[0]))
	}
}

func Test_supabase_006(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t, new(fakePostgREST))

	result, err := tools["supabase_list_tables"].Run(context.Background(), nil)
	if assert.NoError(err) {
		response := result.(*supabase.TablesResponse)
		assert.Equal([]supabase.Table{
			{Name: "projects", Type: "table"},
			{Name: "search", Type: "function"},
			{Name: "users", Type: "table"},
		}, response.Tables)
	}
}

func Test_supabase_007(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t, new(fakePostgREST))

	result, err := tools["supabase_get_table_schema"].Run(context.Background(), json.RawMessage(`{"tableName":"users"}`))
	if assert.NoError(err) {
		response := result.(*supabase.TableSchemaResponse)
		assert.Equal("users", response.TableName)
		if assert.Len(response.Columns, 3) {
			assert.Equal("id", response.Columns[0].Name)
			assert.Equal("bigint", response.Columns[0].Type)
			assert.False(response.Columns[0].Nullable)
			assert.Equal("created_at", response.Columns[2].Name)
			assert.True(response.Columns[2].Nullable)
			assert.JSONEq(`"now()"`, string(response.Columns[2].Default))
			assert.JSONEq(`null`, string(response.Columns[1].Default))
		}
	}

	_, err = tools["supabase_get_table_schema"].Run(context.Background(), json.RawMessage(`{"tableName":"projects"}`))
	assert.ErrorIs(err, scopey.ErrNotFound)
}
