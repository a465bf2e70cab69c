package linear

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Team struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Key         string  `json:"key"`
	Description *string `json:"description"`
}

type User struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Label struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type Issue struct {
	Id          string  `json:"id"`
	Identifier  string  `json:"identifier"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Url         string  `json:"url"`
	Priority    float64 `json:"priority"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	State       *named  `json:"state"`
	Assignee    *named  `json:"assignee"`
	Team        *named  `json:"team"`
	Labels      struct {
		Nodes []named `json:"nodes"`
	} `json:"labels"`
}

type IssueCreateInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	TeamId      string   `json:"teamId"`
	Priority    *int     `json:"priority,omitempty"`
	AssigneeId  string   `json:"assigneeId,omitempty"`
	LabelIds    []string `json:"labelIds,omitempty"`
}

type named struct {
	Name string `json:"name"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const issueFields = `id identifier title description url priority createdAt updatedAt
state { name } assignee { name } team { name } labels { nodes { name } }`

const (
	queryTeams          = `query { teams { nodes { id name key description } } }`
	queryUsers          = `query { users { nodes { id name email displayName } } }`
	queryLabels         = `query { issueLabels(first: 250) { nodes { id name } } }`
	mutationCreateIssue = `mutation($input: IssueCreateInput!) {
  issueCreate(input: $input) { success issue { ` + issueFields + ` } }
}`
	queryIssues = `query($filter: IssueFilter, $first: Int) {
  issues(filter: $filter, first: $first) { nodes { ` + issueFields + ` } }
}`
	querySearchIssues = `query($term: String!, $filter: IssueFilter, $first: Int) {
  searchIssues(term: $term, filter: $filter, first: $first) { nodes { ` + issueFields + ` } }
}`
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (n *named) name() *string {
	if n == nil {
		return nil
	}
	return types.Ptr(n.Name)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (i Issue) String() string {
	return types.Stringify(i)
}
