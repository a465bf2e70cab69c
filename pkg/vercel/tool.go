package vercel

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type listProjects struct {
	client *Client
}

type getProject struct {
	client *Client
}

type listDeployments struct {
	client *Client
}

type getDeployment struct {
	client *Client
}

type getDomains struct {
	client *Client
}

var _ tool.Tool = (*listProjects)(nil)
var _ tool.Tool = (*getProject)(nil)
var _ tool.Tool = (*listDeployments)(nil)
var _ tool.Tool = (*getDeployment)(nil)
var _ tool.Tool = (*getDomains)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the Vercel tools
func NewTools(cfg Config, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		&listProjects{client: client},
		&getProject{client: client},
		&listDeployments{client: client},
		&getDeployment{client: client},
		&getDomains{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// LIST PROJECTS

func (*listProjects) Name() string {
	return "vercel_list_projects"
}

func (*listProjects) Description() string {
	return "List all projects in Vercel account"
}

func (*listProjects) Schema() (*jsonschema.Schema, error) {
	return withLimit(jsonschema.For[ListProjectsRequest](nil))
}

func (t *listProjects) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ListProjectsRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	projects, err := t.client.Projects(ctx, req.TeamId, req.Search, limit(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("Failed to list Vercel projects: %w", err)
	}
	result := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		result = append(result, newProjectSummary(p))
	}
	return &ListProjectsResponse{Success: true, Count: len(result), Projects: result}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET PROJECT

func (*getProject) Name() string {
	return "vercel_get_project"
}

func (*getProject) Description() string {
	return "Get detailed information about a specific Vercel project"
}

func (*getProject) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[GetProjectRequest](nil)
}

func (t *getProject) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req GetProjectRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if err := checkId("projectId", req.ProjectId); err != nil {
		return nil, err
	}
	project, err := t.client.Project(ctx, req.TeamId, req.ProjectId)
	if err != nil {
		return nil, fmt.Errorf("Failed to get Vercel project: %w", err)
	}
	return &GetProjectResponse{Success: true, Project: newProjectDetail(project)}, nil
}

///////////////////////////////////////////////////////////////////////////////
// LIST DEPLOYMENTS

func (*listDeployments) Name() string {
	return "vercel_list_deployments"
}

func (*listDeployments) Description() string {
	return "List deployments for a Vercel project"
}

func (*listDeployments) Schema() (*jsonschema.Schema, error) {
	schema, err := withLimit(jsonschema.For[ListDeploymentsRequest](nil))
	if err != nil {
		return nil, err
	}
	if state, ok := schema.Properties["state"]; ok && state != nil {
		state.Enum = deploymentStates
	}
	return schema, nil
}

func (t *listDeployments) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ListDeploymentsRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.State != "" && !slices.Contains(deploymentStates, any(req.State)) {
		return nil, scopey.ErrBadParameter.Withf("invalid state: %q", req.State)
	}
	deployments, err := t.client.Deployments(ctx, req.TeamId, req.ProjectId, req.State, limit(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("Failed to list Vercel deployments: %w", err)
	}
	result := make([]DeploymentSummary, 0, len(deployments))
	for _, d := range deployments {
		result = append(result, newDeploymentSummary(d))
	}
	return &ListDeploymentsResponse{Success: true, Count: len(result), Deployments: result}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET DEPLOYMENT

func (*getDeployment) Name() string {
	return "vercel_get_deployment"
}

func (*getDeployment) Description() string {
	return "Get detailed information about a specific deployment"
}

func (*getDeployment) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[GetDeploymentRequest](nil)
}

func (t *getDeployment) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req GetDeploymentRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if err := checkId("deploymentId", req.DeploymentId); err != nil {
		return nil, err
	}
	deployment, err := t.client.Deployment(ctx, req.TeamId, req.DeploymentId)
	if err != nil {
		return nil, fmt.Errorf("Failed to get Vercel deployment: %w", err)
	}
	if deployment.Uid == "" {
		deployment.Uid = deployment.Id
	}
	return &GetDeploymentResponse{Success: true, Deployment: deployment}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET DOMAINS

func (*getDomains) Name() string {
	return "vercel_get_domains"
}

func (*getDomains) Description() string {
	return "List all domains in Vercel account"
}

func (*getDomains) Schema() (*jsonschema.Schema, error) {
	return withLimit(jsonschema.For[GetDomainsRequest](nil))
}

func (t *getDomains) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req GetDomainsRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	domains, err := t.client.Domains(ctx, req.TeamId, limit(req.Limit))
	if err != nil {
		return nil, fmt.Errorf("Failed to list Vercel domains: %w", err)
	}
	if domains == nil {
		domains = []Domain{}
	}
	return &GetDomainsResponse{Success: true, Count: len(domains), Domains: domains}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func withLimit(schema *jsonschema.Schema, err error) (*jsonschema.Schema, error) {
	if err != nil {
		return nil, err
	}
	if limit, ok := schema.Properties["limit"]; ok && limit != nil {
		min, max := float64(1), float64(maxLimit)
		limit.Minimum = &min
		limit.Maximum = &max
	}
	return schema, nil
}

func checkId(field, value string) error {
	if value == "" {
		return scopey.ErrBadParameter.Withf("%s is required", field)
	}
	if strings.ContainsAny(value, "/?#") {
		return scopey.ErrBadParameter.Withf("invalid %s: %q", field, value)
	}
	return nil
}

func decode(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return scopey.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}
