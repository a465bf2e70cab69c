package linear

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type createTicket struct {
	client *Client
}

type readTickets struct {
	client *Client
}

type getTeams struct {
	client *Client
}

type getUsers struct {
	client *Client
}

var _ tool.Tool = (*createTicket)(nil)
var _ tool.Tool = (*readTickets)(nil)
var _ tool.Tool = (*getTeams)(nil)
var _ tool.Tool = (*getUsers)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the Linear tools
func NewTools(cfg Config, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return []tool.Tool{
		&createTicket{client: client},
		&readTickets{client: client},
		&getTeams{client: client},
		&getUsers{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// CREATE TICKET

func (*createTicket) Name() string {
	return "linear_create_ticket"
}

func (*createTicket) Description() string {
	return "Create a new ticket/issue in Linear"
}

func (*createTicket) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[CreateTicketRequest](nil)
	if err != nil {
		return nil, err
	}
	if priority, ok := schema.Properties["priority"]; ok && priority != nil {
		priority.Minimum = ptr(0)
		priority.Maximum = ptr(maxPriority)
	}
	return schema, nil
}

func (t *createTicket) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req CreateTicketRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.Title == "" {
		return nil, scopey.ErrBadParameter.With("title is required")
	}
	if req.Priority != nil && (*req.Priority < 0 || *req.Priority > maxPriority) {
		return nil, scopey.ErrBadParameter.Withf("priority must be between 0 and %d", maxPriority)
	}

	response, err := t.create(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("Failed to create Linear ticket: %w", err)
	}
	return response, nil
}

func (t *createTicket) create(ctx context.Context, req *CreateTicketRequest) (*CreateTicketResponse, error) {
	// Default to the first team
	teamId := req.TeamId
	if teamId == "" {
		teams, err := t.client.Teams(ctx)
		if err != nil {
			return nil, err
		} else if len(teams) == 0 {
			return nil, scopey.ErrNotFound.With("No teams found in Linear workspace")
		}
		teamId = teams[0].Id
	}

	// Map label names to identifiers
	var labelIds []string
	if len(req.Labels) > 0 {
		labels, err := t.client.Labels(ctx)
		if err != nil {
			return nil, err
		}
		for _, label := range labels {
			if slices.Contains(req.Labels, label.Name) {
				labelIds = append(labelIds, label.Id)
			}
		}
	}

	// Create the issue
	issue, err := t.client.CreateIssue(ctx, IssueCreateInput{
		Title:       req.Title,
		Description: req.Description,
		TeamId:      teamId,
		Priority:    req.Priority,
		AssigneeId:  req.AssigneeId,
		LabelIds:    labelIds,
	})
	if err != nil {
		return nil, err
	}

	return &CreateTicketResponse{
		Success:  true,
		TicketId: issue.Identifier,
		Url:      issue.Url,
		Title:    issue.Title,
		Team:     issue.Team.name(),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// READ TICKETS

func (*readTickets) Name() string {
	return "linear_read_tickets"
}

func (*readTickets) Description() string {
	return "Read/search tickets from Linear"
}

func (*readTickets) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ReadTicketsRequest](nil)
	if err != nil {
		return nil, err
	}
	if limit, ok := schema.Properties["limit"]; ok && limit != nil {
		limit.Minimum = ptr(1)
		limit.Maximum = ptr(maxLimit)
	}
	return schema, nil
}

func (t *readTickets) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ReadTicketsRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.Limit == 0 {
		req.Limit = defaultLimit
	} else if req.Limit > maxLimit {
		req.Limit = maxLimit
	}

	issues, err := t.client.Issues(ctx, req.Query, req.Filter(), req.Limit)
	if err != nil {
		return nil, fmt.Errorf("Failed to read Linear tickets: %w", err)
	}

	tickets := make([]Ticket, 0, len(issues))
	for _, issue := range issues {
		tickets = append(tickets, newTicket(issue))
	}
	return &ReadTicketsResponse{
		Success: true,
		Count:   len(tickets),
		Tickets: tickets,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET TEAMS

func (*getTeams) Name() string {
	return "linear_get_teams"
}

func (*getTeams) Description() string {
	return "Get list of teams in Linear workspace"
}

func (*getTeams) Schema() (*jsonschema.Schema, error) {
	return nil, nil
}

func (t *getTeams) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	teams, err := t.client.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to get Linear teams: %w", err)
	}
	return &TeamsResponse{Success: true, Teams: teams}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GET USERS

func (*getUsers) Name() string {
	return "linear_get_users"
}

func (*getUsers) Description() string {
	return "Get list of users in Linear workspace"
}

func (*getUsers) Schema() (*jsonschema.Schema, error) {
	return nil, nil
}

func (t *getUsers) Run(ctx context.Context, _ json.RawMessage) (any, error) {
	users, err := t.client.Users(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to get Linear users: %w", err)
	}
	return &UsersResponse{Success: true, Users: users}, nil
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
