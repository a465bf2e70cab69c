package linear

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// CreateTicketRequest defines the input for creating a ticket
type CreateTicketRequest struct {
	Title       string   `json:"title" jsonschema:"Title of the ticket"`
	Description string   `json:"description,omitempty" jsonschema:"Description of the ticket (supports Markdown)"`
	TeamId      string   `json:"teamId,omitempty" jsonschema:"ID of the team to create the ticket in, defaults to the first team"`
	Priority    *int     `json:"priority,omitempty" jsonschema:"Priority level (0-4, where 0 is no priority)"`
	Labels      []string `json:"labels,omitempty" jsonschema:"Label names to apply"`
	AssigneeId  string   `json:"assigneeId,omitempty" jsonschema:"ID of the user to assign the ticket to"`
}

// ReadTicketsRequest defines the input for reading or searching tickets
type ReadTicketsRequest struct {
	Query      string `json:"query,omitempty" jsonschema:"Search term to filter tickets"`
	TeamId     string `json:"teamId,omitempty" jsonschema:"Filter by team ID"`
	AssigneeId string `json:"assigneeId,omitempty" jsonschema:"Filter by assignee ID"`
	State      string `json:"state,omitempty" jsonschema:"Filter by state name (e.g. Todo, In Progress, Done)"`
	Limit      uint   `json:"limit,omitempty" jsonschema:"Maximum number of tickets to return (1-100, default 10)"`
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE TYPES

type CreateTicketResponse struct {
	Success  bool    `json:"success"`
	TicketId string  `json:"ticketId"`
	Url      string  `json:"url"`
	Title    string  `json:"title"`
	Team     *string `json:"team,omitempty"`
}

type Ticket struct {
	Id          string   `json:"id"`
	Identifier  string   `json:"identifier"`
	Title       string   `json:"title"`
	Description *string  `json:"description,omitempty"`
	Url         string   `json:"url"`
	State       *string  `json:"state,omitempty"`
	Priority    float64  `json:"priority"`
	Assignee    *string  `json:"assignee,omitempty"`
	Team        *string  `json:"team,omitempty"`
	Labels      []string `json:"labels"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

type ReadTicketsResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Tickets []Ticket `json:"tickets"`
}

type TeamsResponse struct {
	Success bool   `json:"success"`
	Teams   []Team `json:"teams"`
}

type UsersResponse struct {
	Success bool   `json:"success"`
	Users   []User `json:"users"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultLimit = 10
	maxLimit     = 100
	maxPriority  = 4
)

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Filter returns the GraphQL issue filter for the request
func (r *ReadTicketsRequest) Filter() map[string]any {
	filter := make(map[string]any)
	if r.TeamId != "" {
		filter["team"] = map[string]any{"id": map[string]any{"eq": r.TeamId}}
	}
	if r.AssigneeId != "" {
		filter["assignee"] = map[string]any{"id": map[string]any{"eq": r.AssigneeId}}
	}
	if r.State != "" {
		filter["state"] = map[string]any{"name": map[string]any{"eq": r.State}}
	}
	return filter
}

func newTicket(issue Issue) Ticket {
	labels := make([]string, 0, len(issue.Labels.Nodes))
	for _, label := range issue.Labels.Nodes {
		labels = append(labels, label.Name)
	}
	return Ticket{
		Id:          issue.Id,
		Identifier:  issue.Identifier,
		Title:       issue.Title,
		Description: issue.Description,
		Url:         issue.Url,
		State:       issue.State.name(),
		Priority:    issue.Priority,
		Assignee:    issue.Assignee.name(),
		Team:        issue.Team.name(),
		Labels:      labels,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}
