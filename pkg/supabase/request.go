package supabase

import (
	"encoding/json"
)

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// ReadTableRequest defines the input for reading a table
type ReadTableRequest struct {
	TableName string         `json:"tableName" jsonschema:"Name of the table to read from"`
	Select    string         `json:"select,omitempty" jsonschema:"Columns to select (comma-separated, defaults to all)"`
	Filter    map[string]any `json:"filter,omitempty" jsonschema:"Filter conditions keyed by column, either a value for equality or an object mapping operators (eq, neq, gt, gte, lt, lte, like, ilike, in, is) to operands"`
	Limit     uint           `json:"limit,omitempty" jsonschema:"Maximum number of rows to return (1-1000, default 100)"`
	Offset    uint           `json:"offset,omitempty" jsonschema:"Number of rows to skip"`
	OrderBy   string         `json:"orderBy,omitempty" jsonschema:"Column to order by"`
	Ascending *bool          `json:"ascending,omitempty" jsonschema:"Sort in ascending order (default true)"`
}

// ExecuteQueryRequest defines the input for a PostgREST query string
type ExecuteQueryRequest struct {
	Query string `json:"query" jsonschema:"PostgREST query string (e.g. users?select=*&age=gte.18)"`
}

// TableSchemaRequest defines the input for describing a table
type TableSchemaRequest struct {
	TableName string `json:"tableName" jsonschema:"Name of the table to inspect"`
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE TYPES

type RowsResponse struct {
	Success    bool              `json:"success"`
	Data       []json.RawMessage `json:"data"`
	Count      int               `json:"count"`
	TotalCount *int64            `json:"totalCount,omitempty"`
}

type TablesResponse struct {
	Success bool    `json:"success"`
	Tables  []Table `json:"tables"`
}

type TableSchemaResponse struct {
	Success   bool     `json:"success"`
	TableName string   `json:"tableName"`
	Columns   []Column `json:"columns"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultLimit = 100
	maxLimit     = 1000
)

///////////////////////////////////////////////////////////////////////////////
// METHODS

func newRowsResponse(rows *Rows) *RowsResponse {
	data := rows.Data
	if data == nil {
		data = []json.RawMessage{}
	}
	return &RowsResponse{
		Success:    true,
		Data:       data,
		Count:      len(data),
		TotalCount: rows.Total,
	}
}
