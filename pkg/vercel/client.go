/*
vercel implements a REST client and tools for Vercel projects, deployments
and domains
https://vercel.com/docs/rest-api
*/
package vercel

import (
	"context"
	"net/url"
	"strconv"

	// Packages
	client "github.com/mutablelogic/go-client"
	scopey "github.com/mutablelogic/go-scopey"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is the configuration for the Vercel client
type Config struct {
	Token    string `yaml:"token" json:"token,omitempty"`
	Endpoint string `yaml:"endpoint" json:"endpoint,omitempty"`
}

type Client struct {
	*client.Client
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint = "https://api.vercel.com"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(cfg Config, opts ...client.ClientOpt) (*Client, error) {
	if cfg.Token == "" {
		return nil, scopey.ErrBadParameter.With("missing Vercel token")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = endPoint
	}

	opts = append(opts,
		client.OptEndpoint(endpoint),
		client.OptReqToken(client.Token{Scheme: client.Bearer, Value: cfg.Token}),
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

// Projects lists projects, optionally matching a search term
func (c *Client) Projects(ctx context.Context, teamId, search string, limit uint) ([]Project, error) {
	var response struct {
		Projects []Project `json:"projects"`
	}
	query := values(teamId, limit)
	if search != "" {
		query.Set("search", search)
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v9", "projects"), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Projects, nil
}

// Project returns a project by identifier or name
func (c *Client) Project(ctx context.Context, teamId, projectId string) (*Project, error) {
	var response Project
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v9", "projects", projectId), client.OptQuery(values(teamId, 0))); err != nil {
		return nil, err
	}
	return &response, nil
}

// Deployments lists deployments, optionally for a single project and state
func (c *Client) Deployments(ctx context.Context, teamId, projectId, state string, limit uint) ([]Deployment, error) {
	var response struct {
		Deployments []Deployment `json:"deployments"`
	}
	query := values(teamId, limit)
	if projectId != "" {
		query.Set("projectId", projectId)
	}
	if state != "" {
		query.Set("state", state)
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v6", "deployments"), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return response.Deployments, nil
}

// Deployment returns a deployment by identifier or URL
func (c *Client) Deployment(ctx context.Context, teamId, deploymentId string) (*Deployment, error) {
	var response Deployment
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v13", "deployments", deploymentId), client.OptQuery(values(teamId, 0))); err != nil {
		return nil, err
	}
	return &response, nil
}

// Domains lists domains
func (c *Client) Domains(ctx context.Context, teamId string, limit uint) ([]Domain, error) {
	var response struct {
		Domains []Domain `json:"domains"`
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("v5", "domains"), client.OptQuery(values(teamId, limit))); err != nil {
		return nil, err
	}
	return response.Domains, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func values(teamId string, limit uint) url.Values {
	result := url.Values{}
	if teamId != "" {
		result.Set("teamId", teamId)
	}
	if limit > 0 {
		result.Set("limit", strconv.FormatUint(uint64(limit), 10))
	}
	return result
}
