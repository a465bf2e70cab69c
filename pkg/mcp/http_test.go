package mcp_test

import (
	"context"
	"net/http/httptest"
	"testing"

	// Packages
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_http_001(t *testing.T) {
	assert := assert.New(t)
	server := newServer(t)

	handler, err := server.HTTPHandler()
	require.NoError(t, err)
	ts := httptest.NewServer(handler)
	defer ts.Close()

	// Connect a client over streamable HTTP
	ctx := context.Background()
	client := sdk.NewClient(&sdk.Implementation{Name: "test", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &sdk.StreamableClientTransport{Endpoint: ts.URL}, nil)
	require.NoError(t, err)
	defer session.Close()

	// List tools
	tools, err := session.ListTools(ctx, &sdk.ListToolsParams{})
	if assert.NoError(err) && assert.Len(tools.Tools, 2) {
		assert.Equal("add", tools.Tools[0].Name)
		assert.Equal("fail", tools.Tools[1].Name)
	}

	// Call a tool
	result, err := session.CallTool(ctx, &sdk.CallToolParams{
		Name:      "add",
		Arguments: map[string]any{"a": 40, "b": 2},
	})
	if assert.NoError(err) {
		assert.False(result.IsError)
		if assert.Len(result.Content, 1) {
			text, ok := result.Content[0].(*sdk.TextContent)
			if assert.True(ok) {
				assert.JSONEq(`{"sum":42}`, text.Text)
			}
		}
	}

	// Failures are results with isError set
	result, err = session.CallTool(ctx, &sdk.CallToolParams{Name: "fail"})
	if assert.NoError(err) {
		assert.True(result.IsError)
		if assert.Len(result.Content, 1) {
			text, ok := result.Content[0].(*sdk.TextContent)
			if assert.True(ok) {
				assert.Equal(`{"error":"boom"}`, text.Text)
			}
		}
	}
}
