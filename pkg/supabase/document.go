package supabase

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Document is the subset of the PostgREST OpenAPI document used to
// describe tables and their columns
type Document struct {
	Paths       map[string]json.RawMessage `json:"paths"`
	Definitions map[string]Definition      `json:"definitions"`
}

type Definition struct {
	Description string     `json:"description,omitempty"`
	Required    []string   `json:"required,omitempty"`
	Properties  Properties `json:"properties"`
}

// Properties are column definitions in document order
type Properties []Property

type Property struct {
	Name        string
	Type        string          `json:"type"`
	Format      string          `json:"format"`
	Default     json.RawMessage `json:"default,omitempty"`
	Description string          `json:"description,omitempty"`
}

var _ client.Unmarshaler = (*Document)(nil)

type Table struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type Column struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Nullable bool            `json:"nullable"`
	Default  json.RawMessage `json:"default"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	rpcPrefix = "/rpc/"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tables returns the tables and views exposed by the API, sorted by name
func (d *Document) Tables() []Table {
	result := make([]Table, 0, len(d.Paths))
	for path := range d.Paths {
		if path == "/" {
			continue
		}
		if name, ok := strings.CutPrefix(path, rpcPrefix); ok {
			result = append(result, Table{Name: name, Type: "function"})
		} else {
			result = append(result, Table{Name: strings.TrimPrefix(path, "/"), Type: "table"})
		}
	}
	slices.SortFunc(result, func(a, b Table) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Columns returns the columns of a table in document order, or false if
// the table is not described
func (d *Document) Columns(table string) ([]Column, bool) {
	def, exists := d.Definitions[table]
	if !exists {
		return nil, false
	}
	result := make([]Column, 0, len(def.Properties))
	for _, prop := range def.Properties {
		column := Column{
			Name:     prop.Name,
			Type:     prop.Format,
			Nullable: !slices.Contains(def.Required, prop.Name),
			Default:  prop.Default,
		}
		if column.Type == "" {
			column.Type = prop.Type
		}
		if len(column.Default) == 0 {
			column.Default = json.RawMessage("null")
		}
		result = append(result, column)
	}
	return result, true
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// Unmarshal decodes the document, which is served as application/openapi+json
func (d *Document) Unmarshal(_ http.Header, body io.Reader) error {
	return json.NewDecoder(body).Decode(d)
}

// UnmarshalJSON decodes an object of properties, keeping key order
func (p *Properties) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return err
	} else if tok == nil {
		*p = nil
		return nil
	} else if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("properties: expected object")
	}

	var result Properties
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: expected key")
		}
		var prop Property
		if err := dec.Decode(&prop); err != nil {
			return err
		}
		prop.Name = name
		result = append(result, prop)
	}
	*p = result
	return nil
}
