package vercel

import (
	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Project struct {
	Id                string       `json:"id"`
	Name              string       `json:"name"`
	Framework         *string      `json:"framework,omitempty"`
	NodeVersion       string       `json:"nodeVersion,omitempty"`
	BuildCommand      *string      `json:"buildCommand,omitempty"`
	DevCommand        *string      `json:"devCommand,omitempty"`
	InstallCommand    *string      `json:"installCommand,omitempty"`
	OutputDirectory   *string      `json:"outputDirectory,omitempty"`
	RootDirectory     *string      `json:"rootDirectory,omitempty"`
	Env               []EnvVar     `json:"env,omitempty"`
	Alias             []any        `json:"alias,omitempty"`
	Link              *Link        `json:"link,omitempty"`
	LatestDeployments []Deployment `json:"latestDeployments,omitempty"`
	CreatedAt         int64        `json:"createdAt"`
	UpdatedAt         int64        `json:"updatedAt"`
}

type EnvVar struct {
	Key    string `json:"key"`
	Target any    `json:"target,omitempty"`
	Type   string `json:"type"`
}

type Link struct {
	Type         string `json:"type"`
	Repo         string `json:"repo,omitempty"`
	RepoId       any    `json:"repoId,omitempty"`
	Org          string `json:"org,omitempty"`
	GitAccountId string `json:"gitAccountId,omitempty"`
}

type Creator struct {
	Uid      string `json:"uid"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

type Deployment struct {
	Id            string   `json:"id,omitempty"`
	Uid           string   `json:"uid,omitempty"`
	Url           string   `json:"url"`
	Name          string   `json:"name"`
	State         string   `json:"state,omitempty"`
	ReadyState    string   `json:"readyState,omitempty"`
	Version       int      `json:"version,omitempty"`
	Regions       []string `json:"regions,omitempty"`
	Routes        any      `json:"routes,omitempty"`
	Functions     any      `json:"functions,omitempty"`
	Lambdas       any      `json:"lambdas,omitempty"`
	Creator       *Creator `json:"creator,omitempty"`
	Team          any      `json:"team,omitempty"`
	Project       any      `json:"project,omitempty"`
	Source        string   `json:"source,omitempty"`
	Target        *string  `json:"target,omitempty"`
	Alias         []string `json:"alias,omitempty"`
	AliasAssigned any      `json:"aliasAssigned,omitempty"`
	InspectorUrl  *string  `json:"inspectorUrl,omitempty"`
	CreatedAt     int64    `json:"createdAt"`
	BuildingAt    int64    `json:"buildingAt,omitempty"`
	Ready         int64    `json:"ready,omitempty"`
}

type Domain struct {
	Name               string  `json:"name"`
	ApexName           string  `json:"apexName,omitempty"`
	ProjectId          string  `json:"projectId,omitempty"`
	Redirect           *string `json:"redirect,omitempty"`
	RedirectStatusCode *int    `json:"redirectStatusCode,omitempty"`
	GitBranch          *string `json:"gitBranch,omitempty"`
	Verified           bool    `json:"verified"`
	Verification       any     `json:"verification,omitempty"`
	CreatedAt          int64   `json:"createdAt"`
	UpdatedAt          int64   `json:"updatedAt,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ID returns the deployment identifier, which list endpoints
// report as uid
func (d Deployment) ID() string {
	if d.Uid != "" {
		return d.Uid
	}
	return d.Id
}

// CreatorName returns the username or email of the creator
func (d Deployment) CreatorName() string {
	if d.Creator == nil {
		return ""
	} else if d.Creator.Username != "" {
		return d.Creator.Username
	}
	return d.Creator.Email
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (p Project) String() string {
	return types.Stringify(p)
}

func (d Deployment) String() string {
	return types.Stringify(d)
}
