package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"text/template"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type generatePRD struct {
	templates *template.Template
}

type generateCursorRules struct {
	templates *template.Template
}

type generateContextDoc struct {
	templates *template.Template
}

var _ tool.Tool = (*generatePRD)(nil)
var _ tool.Tool = (*generateCursorRules)(nil)
var _ tool.Tool = (*generateContextDoc)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the document generator tools. They render embedded
// templates and perform no I/O.
func NewTools() ([]tool.Tool, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return []tool.Tool{
		&generatePRD{templates},
		&generateCursorRules{templates},
		&generateContextDoc{templates},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GENERATE PRD

func (*generatePRD) Name() string {
	return "generate_prd"
}

func (*generatePRD) Description() string {
	return "Generate a Product Requirements Document (PRD) based on code context and requirements"
}

func (*generatePRD) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[PRDRequest](nil)
	if err != nil {
		return nil, err
	}
	if format, ok := schema.Properties["format"]; ok && format != nil {
		format.Enum = formats
	}
	return schema, nil
}

func (t *generatePRD) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req PRDRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.Format == "" {
		req.Format = FormatMarkdown
	} else if !slices.Contains(formats, any(req.Format)) {
		return nil, scopey.ErrBadParameter.Withf("invalid format: %q", req.Format)
	}

	content, err := execute(t.templates, templatePRD, req)
	if err != nil {
		return nil, fmt.Errorf("Failed to generate PRD: %w", err)
	}
	if req.Format == FormatMarkdown {
		return &PRDResponse{Success: true, Format: FormatMarkdown, Content: content}, nil
	}

	// Structure the document by its sections
	document := PRDDocument{Title: prdTitle, Sections: make(map[string]string)}
	for _, section := range sections(content) {
		document.Sections[sectionKey(section.Title)] = section.Body
	}
	return &PRDResponse{Success: true, Format: FormatJSON, Content: document}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GENERATE CURSOR RULES

func (*generateCursorRules) Name() string {
	return "generate_cursor_rules"
}

func (*generateCursorRules) Description() string {
	return "Generate Cursor rules configuration based on project requirements"
}

func (*generateCursorRules) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[CursorRulesRequest](nil)
	if err != nil {
		return nil, err
	}
	if framework, ok := schema.Properties["includeFramework"]; ok && framework != nil {
		framework.Enum = frameworks
	}
	if items, ok := schema.Properties["includePatterns"]; ok && items != nil && items.Items != nil {
		items.Items.Enum = patterns
	}
	return schema, nil
}

func (t *generateCursorRules) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req CursorRulesRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.IncludeFramework != "" && !slices.Contains(frameworks, any(req.IncludeFramework)) {
		return nil, scopey.ErrBadParameter.Withf("invalid framework: %q", req.IncludeFramework)
	}
	for _, pattern := range req.IncludePatterns {
		if !slices.Contains(patterns, any(pattern)) {
			return nil, scopey.ErrBadParameter.Withf("invalid pattern: %q", pattern)
		}
	}
	if req.IncludePatterns == nil {
		req.IncludePatterns = []string{}
	}

	content, err := execute(t.templates, templateCursorRules, struct {
		Prompt    string
		Framework string
		Patterns  []string
	}{req.Prompt, req.IncludeFramework, req.IncludePatterns})
	if err != nil {
		return nil, fmt.Errorf("Failed to generate Cursor rules: %w", err)
	}
	return &CursorRulesResponse{
		Success:           true,
		Content:           content,
		Filename:          cursorRulesFilename,
		IncludedFramework: req.IncludeFramework,
		IncludedPatterns:  req.IncludePatterns,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// GENERATE CONTEXT DOCUMENT

func (*generateContextDoc) Name() string {
	return "generate_context_doc"
}

func (*generateContextDoc) Description() string {
	return "Generate a context document for reuse across projects"
}

func (*generateContextDoc) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[ContextDocRequest](nil)
}

func (t *generateContextDoc) Run(_ context.Context, input json.RawMessage) (any, error) {
	var req ContextDocRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.TechStack == nil {
		req.TechStack = []string{}
	}
	content, err := execute(t.templates, templateContextDoc, req)
	if err != nil {
		return nil, fmt.Errorf("Failed to generate context document: %w", err)
	}
	return &ContextDocResponse{
		Success:     true,
		Content:     content,
		Filename:    contextDocFilename,
		ProjectName: req.ProjectName,
		TechStack:   req.TechStack,
	}, nil
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
