package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type readTable struct {
	client *Client
}

type executeQuery struct {
	client *Client
}

type listTables struct {
	client *Client
}

type getTableSchema struct {
	client *Client
}

var _ tool.Tool = (*readTable)(nil)
var _ tool.Tool = (*executeQuery)(nil)
var _ tool.Tool = (*listTables)(nil)
var _ tool.Tool = (*getTableSchema)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the read-only Supabase tools
func NewTools(cfg Config, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		&readTable{client: client},
		&executeQuery{client: client},
		&listTables{client: client},
		&getTableSchema{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// READ TABLE

func (*readTable) Name() string {
	return "supabase_read_table"
}

func (*readTable) Description() string {
	return "Read data from a Supabase table (read-only)"
}

func (*readTable) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ReadTableRequest](nil)
	if err != nil {
		return nil, err
	}
	if limit, ok := schema.Properties["limit"]; ok && limit != nil {
		limit.Minimum = ptr(1)
		limit.Maximum = ptr(maxLimit)
	}
	if offset, ok := schema.Properties["offset"]; ok && offset != nil {
		offset.Minimum = ptr(0)
	}
	return schema, nil
}

func (t *readTable) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ReadTableRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.TableName == "" {
		return nil, scopey.ErrBadParameter.With("tableName is required")
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	} else if req.Limit > maxLimit {
		req.Limit = maxLimit
	}

	query, err := req.Values()
	if err != nil {
		return nil, err
	}
	rows, err := t.client.Select(ctx, req.TableName, query)
	if err != nil {
		return nil, fmt.Errorf("Failed to read from Supabase: %w", err)
	}
	return newRowsResponse(rows), nil
}

///////////////////////////////////////////////////////////////////////////////
// EXECUTE QUERY

func (*executeQuery) Name() string {
	return "supabase_execute_query"
}

func (*executeQuery) Description() string {
	return "Execute a read-only PostgREST query against a Supabase table"
}

func (*executeQuery) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ExecuteQueryRequest](nil)
}

func (t *executeQuery) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ExecuteQueryRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.Query == "" {
		return nil, scopey.ErrBadParameter.With("query is required")
	}

	table, query, err := ParseQuery(req.Query)
	if err != nil {
		return nil, err
	}
	rows, err := t.client.Select(ctx, table, query)
	if err != nil {
		return nil, fmt.Errorf("Failed to execute Supabase query: %w", err)
	}
	return newRowsResponse(rows), nil
}

///////////////////////////////////////////////////////////////////////////////
// LIST TABLES

func (*listTables) Name() string {
	return "supabase_list_tables"
}

func (*listTables) Description() string {
	return "List all tables, views and functions exposed by the Supabase API"
}

func (*listTables) Schema() (*jsonschema.Schema, error) {
	return nil, nil
}

func (t *listTables) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	doc, err := t.client.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to list Supabase tables: %w", err)
	}
	return &TablesResponse{Success: true, Tables: doc.Tables()}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET TABLE SCHEMA

func (*getTableSchema) Name() string {
	return "supabase_get_table_schema"
}

func (*getTableSchema) Description() string {
	return "Get the schema/structure of a Supabase table"
}

func (*getTableSchema) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[TableSchemaRequest](nil)
}

func (t *getTableSchema) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req TableSchemaRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.TableName == "" {
		return nil, scopey.ErrBadParameter.With("tableName is required")
	}

	doc, err := t.client.Document(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to get table schema: %w", err)
	}
	columns, exists := doc.Columns(req.TableName)
	if !exists {
		return nil, fmt.Errorf("Failed to get table schema: %w", scopey.ErrNotFound.Withf("table %q", req.TableName))
	}
	return &TableSchemaResponse{
		Success:   true,
		TableName: req.TableName,
		Columns:   columns,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decode(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return scopey.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}

func ptr(v float64) *float64 {
	return &v
}
