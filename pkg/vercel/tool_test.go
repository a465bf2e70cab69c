package vercel_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	vercel "github.com/mutablelogic/go-scopey/pkg/vercel"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type fakeVercel struct {
	sync.Mutex
	requests []*url.URL
}

var fixtures = map[string]string{
	"/v9/projects": `{"projects":[{"id":"prj_1","name":"web","framework":"nextjs","createdAt":1,"updatedAt":2,
		"latestDeployments":[{"uid":"dpl_1","url":"web-1.vercel.app","state":"READY","createdAt":3}]}]}`,
	"/v9/projects/prj_1": `{"id":"prj_1","name":"web","framework":"nextjs","nodeVersion":"20.x",
		"env":[{"key":"API_URL","target":["production"],"type":"encrypted"}],
		"link":{"type":"github","repo":"web","org":"acme"},"createdAt":1,"updatedAt":2}`,
	"/v6/deployments": `{"deployments":[{"uid":"dpl_1","url":"web-1.vercel.app","name":"web","state":"READY",
		"creator":{"uid":"u1","username":"ada"},"createdAt":3,"target":"production"}]}`,
	"/v13/deployments/dpl_1": `{"id":"dpl_1","url":"web-1.vercel.app","name":"web","readyState":"READY",
		"regions":["iad1"],"creator":{"uid":"u1","email":"ada@example.com"},"createdAt":3}`,
	"/v5/domains": `{"domains":[{"name":"example.com","apexName":"example.com","verified":true,"createdAt":4}]}`,
}

func (f *fakeVercel) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer token" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	f.Lock()
	f.requests = append(f.requests, r.URL)
	f.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if body, exists := fixtures[r.URL.Path]; exists {
		w.Write([]byte(body))
		return
	}
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":{"code":"not_found","message":"Not found"}}`))
}

func newTools(t *testing.T, f *fakeVercel) map[string]tool.Tool {
	t.Helper()
	ts := httptest.NewServer(f)
	t.Cleanup(ts.Close)
	tools, err := vercel.NewTools(vercel.Config{Token: "token", Endpoint: ts.URL})
	require.NoError(t, err)
	result := make(map[string]tool.Tool, len(tools))
	for _, t := range tools {
		result[t.Name()] = t
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_vercel_001(t *testing.T) {
	assert := assert.New(t)

	_, err := vercel.NewTools(vercel.Config{})
	assert.ErrorIs(err, scopey.ErrBadParameter)

	tools, err := vercel.NewTools(vercel.Config{Token: "token"})
	if assert.NoError(err) && assert.Len(tools, 5) {
		_, err := tool.NewToolkit(tools)
		assert.NoError(err)

		// Deployment state is an enum
		schema, err := tools[2].Schema()
		if assert.NoError(err) {
			assert.Equal([]any{"BUILDING", "ERROR", "INITIALIZING", "QUEUED", "READY", "CANCELED"}, schema.Properties["state"].Enum)
			assert.Equal(float64(100), *schema.Properties["limit"].Maximum)
		}
	}
}

func Test_vercel_002(t *testing.T) {
	assert := assert.New(t)
	f := new(fakeVercel)
	tools := newTools(t, f)

	result, err := tools["vercel_list_projects"].Run(context.Background(), json.RawMessage(`{"teamId":"team_1","search":"we"}`))
	if assert.NoError(err) {
		response := result.(*vercel.ListProjectsResponse)
		assert.Equal(1, response.Count)
		assert.Equal("nextjs", *response.Projects[0].Framework)
		assert.Equal(int64(2), response.Projects[0].LastUpdatedAt)
		if assert.Len(response.Projects[0].LatestDeployments, 1) {
			assert.Equal("dpl_1", response.Projects[0].LatestDeployments[0].Id)
		}
	}

	f.Lock()
	defer f.Unlock()
	if assert.Len(f.requests, 1) {
		q := f.requests[0].Query()
		assert.Equal("team_1", q.Get("teamId"))
		assert.Equal("we", q.Get("search"))
		assert.Equal("20", q.Get("limit"))
	}
}

func Test_vercel_003(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t, new(fakeVercel))

	result, err := tools["vercel_get_project"].Run(context.Background(), json.RawMessage(`{"projectId":"prj_1"}`))
	if assert.NoError(err) {
		project := result.(*vercel.GetProjectResponse).Project
		assert.Equal("20.x", project.NodeVersion)
		if assert.Len(project.EnvironmentVariables, 1) {
			assert.Equal("API_URL", project.EnvironmentVariables[0].Key)
		}
		if assert.NotNil(project.Git) {
			assert.Equal("acme", project.Git.Org)
		}
	}

	// Missing project
	_, err = tools["vercel_get_project"].Run(context.Background(), json.RawMessage(`{"projectId":"prj_2"}`))
	assert.ErrorContains(err, "Failed to get Vercel project: ")

	// Invalid identifiers are rejected before any request
	_, err = tools["vercel_get_project"].Run(context.Background(), json.RawMessage(`{"projectId":"../v5/domains"}`))
	assert.ErrorIs(err, scopey.ErrBadParameter)
	_, err = tools["vercel_get_project"].Run(context.Background(), nil)
	assert.ErrorIs(err, scopey.ErrBadParameter)
}

func Test_vercel_004(t *testing.T) {
	assert := assert.New(t)
	f := new(fakeVercel)
	tools := newTools(t, f)

	result, err := tools["vercel_list_deployments"].Run(context.Background(), json.RawMessage(`{"projectId":"prj_1","state":"READY","limit":500}`))
	if assert.NoError(err) {
		response := result.(*vercel.ListDeploymentsResponse)
		if assert.Equal(1, response.Count) {
			assert.Equal("ada", response.Deployments[0].Creator)
			assert.Equal("production", *response.Deployments[0].Target)
		}
	}

	_, err = tools["vercel_list_deployments"].Run(context.Background(), json.RawMessage(`{"state":"DONE"}`))
	assert.ErrorIs(err, scopey.ErrBadParameter)

	f.Lock()
	defer f.Unlock()
	if assert.Len(f.requests, 1) {
		q := f.requests[0].Query()
		assert.Equal("prj_1", q.Get("projectId"))
		assert.Equal("READY", q.Get("state"))
		assert.Equal("100", q.Get("limit"))
	}
}

func Test_vercel_005(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t, new(fakeVercel))

	result, err := tools["vercel_get_deployment"].Run(context.Background(), json.RawMessage(`{"deploymentId":"dpl_1"}`))
	if assert.NoError(err) {
		deployment := result.(*vercel.GetDeploymentResponse).Deployment
		assert.Equal("dpl_1", deployment.ID())
		assert.Equal("ada@example.com", deployment.CreatorName())
		assert.Equal([]string{"iad1"}, deployment.Regions)
	}

	result, err = tools["vercel_get_domains"].Run(context.Background(), nil)
	if assert.NoError(err) {
		response := result.(*vercel.GetDomainsResponse)
		assert.Equal(1, response.Count)
		assert.True(response.Domains[0].Verified)
	}
}
