/*
supabase implements a read-only PostgREST client and tools for Supabase
https://supabase.com/docs/guides/api
*/
package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	scopey "github.com/mutablelogic/go-scopey"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is the configuration for the Supabase client
type Config struct {
	URL     string `yaml:"url" json:"url,omitempty"`
	AnonKey string `yaml:"anon_key" json:"anon_key,omitempty"`
}

type Client struct {
	*client.Client
}

// Rows is a page of rows returned from a table, with the total number
// of matching rows when the server reports it
type Rows struct {
	Data  []json.RawMessage
	Total *int64
}

var _ client.Unmarshaler = (*Rows)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	restPath = "rest/v1"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(cfg Config, opts ...client.ClientOpt) (*Client, error) {
	if cfg.URL == "" || cfg.AnonKey == "" {
		return nil, scopey.ErrBadParameter.With("Supabase URL and anon key must be set")
	}
	endpoint, err := url.Parse(cfg.URL)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, scopey.ErrBadParameter.Withf("invalid Supabase URL: %q", cfg.URL)
	}
	endpoint = endpoint.JoinPath(restPath)

	opts = append(opts,
		client.OptEndpoint(endpoint.String()),
		client.OptHeader("apikey", cfg.AnonKey),
		client.OptReqToken(client.Token{Scheme: client.Bearer, Value: cfg.AnonKey}),
	)
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{c}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Select reads rows from a table or view with PostgREST query parameters
func (c *Client) Select(ctx context.Context, table string, query url.Values) (*Rows, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	rows := new(Rows)
	if err := c.DoWithContext(ctx, nil, rows,
		client.OptPath(table),
		client.OptQuery(query),
		client.OptReqHeader("Prefer", "count=exact"),
	); err != nil {
		return nil, err
	}
	return rows, nil
}

// Document returns the OpenAPI description of the exposed schema
func (c *Client) Document(ctx context.Context) (*Document, error) {
	doc := new(Document)
	if err := c.DoWithContext(ctx, nil, doc, client.OptReqHeader("Accept", "application/openapi+json")); err != nil {
		return nil, err
	}
	return doc, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *Rows) Unmarshal(header http.Header, body io.Reader) error {
	// Content-Range is "0-9/42", "*/0" or "0-9/*"
	if cr := header.Get("Content-Range"); cr != "" {
		if _, total, ok := strings.Cut(cr, "/"); ok {
			if n, err := strconv.ParseInt(total, 10, 64); err == nil {
				r.Total = &n
			}
		}
	}
	return json.NewDecoder(body).Decode(&r.Data)
}

func checkTable(table string) error {
	if table == "" {
		return scopey.ErrBadParameter.With("table name is required")
	}
	if strings.ContainsAny(table, "/?#&") {
		return scopey.ErrBadParameter.Withf("invalid table name: %q", table)
	}
	return nil
}
