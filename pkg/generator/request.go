package generator

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

type PRDRequest struct {
	Context string `json:"context" jsonschema:"Code context or existing implementation details"`
	Prompt  string `json:"prompt" jsonschema:"Requirements and goals for the PRD"`
	Format  string `json:"format,omitempty" jsonschema:"Output format (markdown or json)"`
}

type CursorRulesRequest struct {
	Prompt           string   `json:"prompt" jsonschema:"Project requirements and coding standards to base the rules on"`
	IncludeFramework string   `json:"includeFramework,omitempty" jsonschema:"Primary framework to optimize rules for"`
	IncludePatterns  []string `json:"includePatterns,omitempty" jsonschema:"Specific patterns to emphasize in the rules"`
}

type API struct {
	Name     string   `json:"name,omitempty" jsonschema:"Name of the API"`
	Endpoint string   `json:"endpoint,omitempty" jsonschema:"Endpoint path or URL"`
	Methods  []string `json:"methods,omitempty" jsonschema:"HTTP methods supported"`
}

type ContextDocRequest struct {
	ProjectName string   `json:"projectName" jsonschema:"Name of the project"`
	TechStack   []string `json:"techStack" jsonschema:"Technologies used in the project"`
	Description string   `json:"description" jsonschema:"Project description and goals"`
	APIs        []API    `json:"apis,omitempty" jsonschema:"API endpoints and methods"`
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE TYPES

type PRDDocument struct {
	Title    string            `json:"title"`
	Sections map[string]string `json:"sections"`
}

type PRDResponse struct {
	Success bool   `json:"success"`
	Format  string `json:"format"`
	Content any    `json:"content"`
}

type CursorRulesResponse struct {
	Success           bool     `json:"success"`
	Content           string   `json:"content"`
	Filename          string   `json:"filename"`
	IncludedFramework string   `json:"includedFramework,omitempty"`
	IncludedPatterns  []string `json:"includedPatterns"`
}

type ContextDocResponse struct {
	Success     bool     `json:"success"`
	Content     string   `json:"content"`
	Filename    string   `json:"filename"`
	ProjectName string   `json:"projectName"`
	TechStack   []string `json:"techStack"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

const (
	prdTitle            = "Product Requirements Document"
	cursorRulesFilename = ".cursorrules"
	contextDocFilename  = "CONTEXT.md"
)

var (
	formats    = []any{FormatMarkdown, FormatJSON}
	frameworks = []any{"react", "nextjs", "vue", "angular", "svelte"}
	patterns   = []any{
		"typescript-strict", "functional-programming", "accessibility-first",
		"performance-optimized", "security-focused", "test-driven",
	}
)
