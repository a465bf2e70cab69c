package vercel

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// ListProjectsRequest defines the input for listing projects
type ListProjectsRequest struct {
	TeamId string `json:"teamId,omitempty" jsonschema:"Team ID to filter projects"`
	Limit  uint   `json:"limit,omitempty" jsonschema:"Maximum number of projects to return (1-100, default 20)"`
	Search string `json:"search,omitempty" jsonschema:"Search query to filter projects by name"`
}

// GetProjectRequest defines the input for getting a project
type GetProjectRequest struct {
	ProjectId string `json:"projectId" jsonschema:"Project ID or name"`
	TeamId    string `json:"teamId,omitempty" jsonschema:"Team ID, if the project belongs to a team"`
}

// ListDeploymentsRequest defines the input for listing deployments
type ListDeploymentsRequest struct {
	ProjectId string `json:"projectId,omitempty" jsonschema:"Project ID to get deployments for"`
	TeamId    string `json:"teamId,omitempty" jsonschema:"Team ID, if the project belongs to a team"`
	Limit     uint   `json:"limit,omitempty" jsonschema:"Maximum number of deployments to return (1-100, default 20)"`
	State     string `json:"state,omitempty" jsonschema:"Filter by deployment state"`
}

// GetDeploymentRequest defines the input for getting a deployment
type GetDeploymentRequest struct {
	DeploymentId string `json:"deploymentId" jsonschema:"Deployment ID or URL"`
	TeamId       string `json:"teamId,omitempty" jsonschema:"Team ID, if the deployment belongs to a team"`
}

// GetDomainsRequest defines the input for listing domains
type GetDomainsRequest struct {
	TeamId string `json:"teamId,omitempty" jsonschema:"Team ID to filter domains"`
	Limit  uint   `json:"limit,omitempty" jsonschema:"Maximum number of domains to return (1-100, default 20)"`
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE TYPES

type ProjectSummary struct {
	Id                string              `json:"id"`
	Name              string              `json:"name"`
	Framework         *string             `json:"framework"`
	LastUpdatedAt     int64               `json:"lastUpdatedAt"`
	CreatedAt         int64               `json:"createdAt"`
	Link              *Link               `json:"link,omitempty"`
	LatestDeployments []DeploymentSummary `json:"latestDeployments,omitempty"`
}

type DeploymentSummary struct {
	Id            string  `json:"id"`
	Url           string  `json:"url"`
	State         string  `json:"state,omitempty"`
	ReadyState    string  `json:"readyState,omitempty"`
	Name          string  `json:"name,omitempty"`
	Creator       string  `json:"creator,omitempty"`
	CreatedAt     int64   `json:"createdAt"`
	BuildingAt    int64   `json:"buildingAt,omitempty"`
	Ready         int64   `json:"ready,omitempty"`
	Source        string  `json:"source,omitempty"`
	Target        *string `json:"target,omitempty"`
	AliasAssigned any     `json:"aliasAssigned,omitempty"`
	InspectorUrl  *string `json:"inspectorUrl,omitempty"`
}

type ProjectDetail struct {
	Id                   string   `json:"id"`
	Name                 string   `json:"name"`
	Framework            *string  `json:"framework"`
	NodeVersion          string   `json:"nodeVersion,omitempty"`
	BuildCommand         *string  `json:"buildCommand"`
	DevCommand           *string  `json:"devCommand"`
	InstallCommand       *string  `json:"installCommand"`
	OutputDirectory      *string  `json:"outputDirectory"`
	RootDirectory        *string  `json:"rootDirectory"`
	EnvironmentVariables []EnvVar `json:"environmentVariables"`
	Domains              []any    `json:"domains"`
	Git                  *Link    `json:"git"`
	CreatedAt            int64    `json:"createdAt"`
	UpdatedAt            int64    `json:"updatedAt"`
}

type ListProjectsResponse struct {
	Success  bool             `json:"success"`
	Count    int              `json:"count"`
	Projects []ProjectSummary `json:"projects"`
}

type GetProjectResponse struct {
	Success bool          `json:"success"`
	Project ProjectDetail `json:"project"`
}

type ListDeploymentsResponse struct {
	Success     bool                `json:"success"`
	Count       int                 `json:"count"`
	Deployments []DeploymentSummary `json:"deployments"`
}

type GetDeploymentResponse struct {
	Success    bool        `json:"success"`
	Deployment *Deployment `json:"deployment"`
}

type GetDomainsResponse struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Domains []Domain `json:"domains"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultLimit = 20
	maxLimit     = 100
)

var deploymentStates = []any{"BUILDING", "ERROR", "INITIALIZING", "QUEUED", "READY", "CANCELED"}

///////////////////////////////////////////////////////////////////////////////
// METHODS

func limit(v uint) uint {
	switch {
	case v == 0:
		return defaultLimit
	case v > maxLimit:
		return maxLimit
	default:
		return v
	}
}

func newProjectSummary(p Project) ProjectSummary {
	result := ProjectSummary{
		Id:            p.Id,
		Name:          p.Name,
		Framework:     p.Framework,
		LastUpdatedAt: p.UpdatedAt,
		CreatedAt:     p.CreatedAt,
		Link:          p.Link,
	}
	for _, d := range p.LatestDeployments {
		result.LatestDeployments = append(result.LatestDeployments, DeploymentSummary{
			Id:        d.ID(),
			Url:       d.Url,
			State:     d.State,
			CreatedAt: d.CreatedAt,
		})
	}
	return result
}

func newProjectDetail(p *Project) ProjectDetail {
	env := p.Env
	if env == nil {
		env = []EnvVar{}
	}
	return ProjectDetail{
		Id:                   p.Id,
		Name:                 p.Name,
		Framework:            p.Framework,
		NodeVersion:          p.NodeVersion,
		BuildCommand:         p.BuildCommand,
		DevCommand:           p.DevCommand,
		InstallCommand:       p.InstallCommand,
		OutputDirectory:      p.OutputDirectory,
		RootDirectory:        p.RootDirectory,
		EnvironmentVariables: env,
		Domains:              p.Alias,
		Git:                  p.Link,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func newDeploymentSummary(d Deployment) DeploymentSummary {
	return DeploymentSummary{
		Id:            d.ID(),
		Url:           d.Url,
		State:         d.State,
		ReadyState:    d.ReadyState,
		Name:          d.Name,
		Creator:       d.CreatorName(),
		CreatedAt:     d.CreatedAt,
		BuildingAt:    d.BuildingAt,
		Ready:         d.Ready,
		Source:        d.Source,
		Target:        d.Target,
		AliasAssigned: d.AliasAssigned,
		InspectorUrl:  d.InspectorUrl,
	}
}
