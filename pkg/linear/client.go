/*
linear implements a GraphQL client and tools for the Linear issue tracker
https://developers.linear.app/docs/graphql/working-with-the-graphql-api
*/
package linear

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	scopey "github.com/mutablelogic/go-scopey"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is the configuration for the Linear client
type Config struct {
	APIKey   string `yaml:"api_key" json:"api_key,omitempty"`
	Endpoint string `yaml:"endpoint" json:"endpoint,omitempty"`
}

type Client struct {
	*client.Client
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.linear.app/graphql"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(cfg Config, opts ...client.ClientOpt) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, scopey.ErrBadParameter.With("missing Linear API key")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = endPoint
	}

	// Personal API keys are sent without a scheme
	opts = append(opts,
		client.OptEndpoint(endpoint),
		client.OptHeader("Authorization", cfg.APIKey),
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

// Teams returns all teams in the workspace
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	var response struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := c.query(ctx, queryTeams, nil, &response); err != nil {
		return nil, err
	}
	return response.Teams.Nodes, nil
}

// Users returns all users in the workspace
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var response struct {
		Users struct {
			Nodes []User `json:"nodes"`
		} `json:"users"`
	}
	if err := c.query(ctx, queryUsers, nil, &response); err != nil {
		return nil, err
	}
	return response.Users.Nodes, nil
}

// Labels returns all issue labels in the workspace
func (c *Client) Labels(ctx context.Context) ([]Label, error) {
	var response struct {
		IssueLabels struct {
			Nodes []Label `json:"nodes"`
		} `json:"issueLabels"`
	}
	if err := c.query(ctx, queryLabels, nil, &response); err != nil {
		return nil, err
	}
	return response.IssueLabels.Nodes, nil
}

// CreateIssue creates an issue and returns it
func (c *Client) CreateIssue(ctx context.Context, input IssueCreateInput) (*Issue, error) {
	var response struct {
		IssueCreate struct {
			Success bool   `json:"success"`
			Issue   *Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.query(ctx, mutationCreateIssue, map[string]any{"input": input}, &response); err != nil {
		return nil, err
	}
	if !response.IssueCreate.Success || response.IssueCreate.Issue == nil {
		return nil, scopey.ErrInternalServerError.With("issue was not created")
	}
	return response.IssueCreate.Issue, nil
}

// Issues returns issues matching the filter, searching by term when
// the term is not empty
func (c *Client) Issues(ctx context.Context, term string, filter map[string]any, first uint) ([]Issue, error) {
	vars := map[string]any{
		"first": first,
	}
	if len(filter) > 0 {
		vars["filter"] = filter
	}

	var response struct {
		Issues struct {
			Nodes []Issue `json:"nodes"`
		} `json:"issues"`
		SearchIssues struct {
			Nodes []Issue `json:"nodes"`
		} `json:"searchIssues"`
	}
	if term == "" {
		if err := c.query(ctx, queryIssues, vars, &response); err != nil {
			return nil, err
		}
		return response.Issues.Nodes, nil
	}
	vars["term"] = term
	if err := c.query(ctx, querySearchIssues, vars, &response); err != nil {
		return nil, err
	}
	return response.SearchIssues.Nodes, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// query posts a GraphQL document and decodes the data into v. Errors
// reported by the API are returned as an error.
func (c *Client) query(ctx context.Context, document string, vars map[string]any, v any) error {
	payload, err := client.NewJSONRequest(graphqlRequest{Query: document, Variables: vars})
	if err != nil {
		return err
	}

	var response graphqlResponse
	if err := c.DoWithContext(ctx, payload, &response); err != nil {
		return err
	}
	if len(response.Errors) > 0 {
		return graphqlErrors(response.Errors)
	}
	if len(response.Data) == 0 {
		return scopey.ErrInternalServerError.With("empty response")
	}
	return json.Unmarshal(response.Data, v)
}

func graphqlErrors(errs []graphqlError) error {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		messages = append(messages, err.Message)
	}
	return errors.New(strings.Join(messages, "; "))
}
