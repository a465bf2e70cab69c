package generator_test

import (
	"context"
	"encoding/json"
	"testing"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	generator "github.com/mutablelogic/go-scopey/pkg/generator"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

func newTools(t *testing.T) map[string]tool.Tool {
	t.Helper()
	tools, err := generator.NewTools()
	require.NoError(t, err)
	result := make(map[string]tool.Tool, len(tools))
	for _, t := range tools {
		result[t.Name()] = t
	}
	return result
}

func run(t *testing.T, fn tool.Tool, args string) (map[string]any, error) {
	t.Helper()
	result, err := fn.Run(context.Background(), json.RawMessage(args))
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(result)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	return out, nil
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_generator_001(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t)

	// Toolkit registration accepts every schema
	list, err := generator.NewTools()
	require.NoError(t, err)
	toolkit, err := tool.NewToolkit(list)
	require.NoError(t, err)
	assert.Equal(3, toolkit.Len())

	schema, err := tools["generate_prd"].Schema()
	assert.NoError(err)
	assert.ElementsMatch([]string{"context", "prompt"}, schema.Required)
	assert.Equal([]any{"markdown", "json"}, schema.Properties["format"].Enum)

	schema, err = tools["generate_cursor_rules"].Schema()
	assert.NoError(err)
	assert.Contains(schema.Properties["includeFramework"].Enum, "nextjs")
	assert.Contains(schema.Properties["includePatterns"].Items.Enum, "test-driven")

	schema, err = tools["generate_context_doc"].Schema()
	assert.NoError(err)
	assert.ElementsMatch([]string{"projectName", "techStack", "description"}, schema.Required)
}

func Test_generator_002(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t)

	out, err := run(t, tools["generate_prd"], `{"context":"A Go service","prompt":"Add search"}`)
	require.NoError(t, err)
	assert.Equal(true, out["success"])
	assert.Equal("markdown", out["format"])
	content := out["content"].(string)
	assert.Contains(content, "# Product Requirements Document (PRD)")
	assert.Contains(content, "## Overview\nAdd search\n")
	assert.Contains(content, "## Context\nA Go service\n")
}

func Test_generator_003(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t)

	out, err := run(t, tools["generate_prd"], `{"context":"A Go service","prompt":"Add search","format":"json"}`)
	require.NoError(t, err)
	assert.Equal("json", out["format"])
	document := out["content"].(map[string]any)
	assert.Equal("Product Requirements Document", document["title"])
	sections := document["sections"].(map[string]any)
	assert.Equal("Add search", sections["overview"])
	assert.Equal("A Go service", sections["context"])
	assert.Contains(sections, "goals_&_objectives")
	assert.Contains(sections["goals_&_objectives"], "### Business Goals")
	assert.Contains(sections, "risks_&_mitigation")
	assert.Contains(sections["appendix"], "### References")
	assert.NotContains(sections, "business_goals")

	// Invalid format
	_, err = run(t, tools["generate_prd"], `{"context":"c","prompt":"p","format":"pdf"}`)
	assert.ErrorIs(err, scopey.ErrBadParameter)
}

func Test_generator_004(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t)

	// A heading inside a code block in the prompt is not a section
	out, err := run(t, tools["generate_prd"], `{"context":"ctx","prompt":"Intro\n\n`+"```"+`\n## Not a heading\n`+"```"+`","format":"json"}`)
	require.NoError(t, err)
	sections := out["content"].(map[string]any)["sections"].(map[string]any)
	assert.NotContains(sections, "not_a_heading")
	assert.Contains(sections["overview"], "## Not a heading")
}

func Test_generator_005(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t)

	out, err := run(t, tools["generate_cursor_rules"], `{"prompt":"Dashboard app"}`)
	require.NoError(t, err)
	assert.Equal(".cursorrules", out["filename"])
	assert.Equal([]any{}, out["includedPatterns"])
	assert.NotContains(out, "includedFramework")
	content := out["content"].(string)
	assert.Contains(content, "// Generated based on: Dashboard app")
	assert.Contains(content, "module.exports = projectRules;")
	assert.NotContains(content, "emphasizedPatterns")

	out, err = run(t, tools["generate_cursor_rules"], `{"prompt":"Shop","includeFramework":"nextjs","includePatterns":["test-driven","accessibility-first"]}`)
	require.NoError(t, err)
	assert.Equal("nextjs", out["includedFramework"])
	content = out["content"].(string)
	assert.Contains(content, "// Nextjs-specific Rules")
	assert.Contains(content, "const nextjsRules = {")
	assert.Contains(content, `scriptStrategy: "afterInteractive"`)
	assert.NotContains(content, "customHookPrefix")
	assert.Contains(content, `const emphasizedPatterns = ["test-driven","accessibility-first"];`)
	assert.Contains(content, "projectRules.testing.coverage.statements = 90;")
	assert.Contains(content, `colorContrast = "WCAG-AAA"`)
	assert.NotContains(content, "projectRules.codeStyle.typescript.strict = true;")

	_, err = run(t, tools["generate_cursor_rules"], `{"prompt":"x","includeFramework":"ember"}`)
	assert.ErrorIs(err, scopey.ErrBadParameter)
	_, err = run(t, tools["generate_cursor_rules"], `{"prompt":"x","includePatterns":["yolo"]}`)
	assert.ErrorIs(err, scopey.ErrBadParameter)
}

func Test_generator_006(t *testing.T) {
	assert := assert.New(t)
	tools := newTools(t)

	out, err := run(t, tools["generate_context_doc"], `{
		"projectName":"Atlas",
		"techStack":["React 19","Tailwind CSS","Node.js","PostgreSQL 16"],
		"description":"Maps for everyone",
		"apis":[{"name":"Search","endpoint":"/api/search","methods":["GET","POST"]},{"name":"Health","endpoint":"/health"}]
	}`)
	require.NoError(t, err)
	assert.Equal("CONTEXT.md", out["filename"])
	assert.Equal("Atlas", out["projectName"])
	assert.Equal([]any{"React 19", "Tailwind CSS", "Node.js", "PostgreSQL 16"}, out["techStack"])

	content := out["content"].(string)
	assert.Contains(content, "# Atlas - Context Document")
	assert.Contains(content, "- React 19\n- Tailwind CSS\n")
	assert.Contains(content, "- **Framework**: React 19")
	assert.Contains(content, "- **State Management**: Local state")
	assert.Contains(content, "- **Styling**: Tailwind CSS")
	assert.Contains(content, "- **Runtime**: Node.js")
	assert.Contains(content, "- **Database**: PostgreSQL 16")
	assert.Contains(content, "### Search\n- **Endpoint**: /api/search\n- **Methods**: GET, POST")
	assert.Contains(content, "### Health\n- **Endpoint**: /health\n- **Methods**: GET")
	assert.NotContains(content, "No APIs documented yet.")

	out, err = run(t, tools["generate_context_doc"], `{"projectName":"Bare","techStack":[],"description":"d"}`)
	require.NoError(t, err)
	assert.Contains(out["content"], "No APIs documented yet.")
	assert.Contains(out["content"], "- **Framework**: Not specified")
}

func Test_generator_007(t *testing.T) {
	assert := assert.New(t)

	tools, err := generator.NewTools()
	require.NoError(t, err)
	tk, err := tool.NewToolkit(tools)
	require.NoError(t, err)
	d, err := tool.NewDispatcher(tk, tool.WithStrictValidation())
	require.NoError(t, err)

	// A null technology stack is a type mismatch
	resp, err := d.Call(context.Background(), "generate_context_doc", map[string]any{
		"projectName": "Atlas",
		"techStack":   nil,
		"description": "Maps",
	})
	if assert.NoError(err) {
		assert.True(resp.IsError)
		assert.Contains(resp.Text(), `\"techStack\" must be of type array, got null`)
	}

	// Undeclared arguments are accepted and not advertised as forbidden
	resp, err = d.Call(context.Background(), "generate_prd", map[string]any{
		"context": "c",
		"prompt":  "p",
		"extra":   1,
	})
	if assert.NoError(err) {
		assert.False(resp.IsError)
	}
	for _, meta := range tk.List() {
		assert.NotContains(string(meta.InputSchema), "additionalProperties", meta.Name)
	}
}
