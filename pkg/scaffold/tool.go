package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	scopey "github.com/mutablelogic/go-scopey"
	tool "github.com/mutablelogic/go-scopey/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config for the scaffolding tools
type Config struct {
	// Directory projects are created in, defaults to the working directory
	Directory string `yaml:"directory" json:"directory,omitempty"`
}

type scaffolder struct {
	dir    string
	runner Runner
}

type scaffoldNextjs struct {
	*scaffolder
}

type scaffoldVite struct {
	*scaffolder
}

type addDependencies struct {
	*scaffolder
}

// templateData is passed to the embedded file templates
type templateData struct {
	ImportAlias string
	SourceDir   string
	ReactPlugin string
}

var _ tool.Tool = (*scaffoldNextjs)(nil)
var _ tool.Tool = (*scaffoldVite)(nil)
var _ tool.Tool = (*addDependencies)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the project scaffolding tools
func NewTools(cfg Config, opts ...Opt) ([]tool.Tool, error) {
	s := &scaffolder{dir: cfg.Directory, runner: new(ExecRunner)}
	for _, opt := range opts {
		opt(s)
	}

	// Default to the working directory
	if s.dir == "" {
		s.dir = "."
	}
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return nil, err
	}
	s.dir = dir

	return []tool.Tool{
		&scaffoldNextjs{s},
		&scaffoldVite{s},
		&addDependencies{s},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// SCAFFOLD NEXT.JS

func (*scaffoldNextjs) Name() string {
	return "scaffold_nextjs"
}

func (*scaffoldNextjs) Description() string {
	return "Create a new Next.js project with TypeScript and common configurations"
}

func (*scaffoldNextjs) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[NextjsRequest](nil)
}

func (t *scaffoldNextjs) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req NextjsRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	response, err := t.nextjs(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Failed to scaffold Next.js project: %w", err)
	}
	return response, nil
}

func (t *scaffoldNextjs) nextjs(ctx context.Context, req NextjsRequest) (*ScaffoldResponse, error) {
	dir, projectPath, err := t.project(req.Directory, req.ProjectName)
	if err != nil {
		return nil, err
	}

	config := req.Configuration()
	if _, err := t.runner.Run(ctx, dir, "npx", req.Args(config)...); err != nil {
		return nil, err
	}

	// Overlay the additional configuration files
	data := templateData{ImportAlias: config.ImportAlias, SourceDir: "."}
	if config.SrcDirectory {
		data.SourceDir = "src"
	}
	files := slices.Clone(nextjsFiles)
	if config.Typescript {
		files = append(files, nextjsTypescriptFiles...)
	}
	written, err := writeFiles(projectPath, data, files...)
	if err != nil {
		return nil, err
	}

	return &ScaffoldResponse{
		Success:     true,
		Message:     "Next.js project created successfully",
		ProjectPath: projectPath,
		Files:       written,
		Commands: map[string]string{
			"navigate": "cd " + req.ProjectName,
			"install":  "npm install",
			"dev":      "npm run dev",
			"build":    "npm run build",
			"start":    "npm start",
		},
		Configuration: &config,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// SCAFFOLD VITE

func (*scaffoldVite) Name() string {
	return "scaffold_vite"
}

func (*scaffoldVite) Description() string {
	return "Create a new Vite project with React and TypeScript"
}

func (*scaffoldVite) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[ViteRequest](nil)
	if err != nil {
		return nil, err
	}
	if template, ok := schema.Properties["template"]; ok && template != nil {
		template.Enum = viteTemplates
	}
	return schema, nil
}

func (t *scaffoldVite) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ViteRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if req.Template == "" {
		req.Template = defaultViteTemplate
	} else if !slices.Contains(viteTemplates, any(req.Template)) {
		return nil, scopey.ErrBadParameter.Withf("invalid template: %q", req.Template)
	}
	response, err := t.vite(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Failed to scaffold Vite project: %w", err)
	}
	return response, nil
}

func (t *scaffoldVite) vite(ctx context.Context, req ViteRequest) (*ScaffoldResponse, error) {
	dir, projectPath, err := t.project(req.Directory, req.ProjectName)
	if err != nil {
		return nil, err
	}

	if _, err := t.runner.Run(ctx, dir, "npm", "create", "vite@latest", req.ProjectName, "--", "--template", req.Template); err != nil {
		return nil, err
	}

	// React templates get the additional configuration files
	written := []string{}
	if strings.HasPrefix(req.Template, "react") {
		data := templateData{ImportAlias: defaultImportAlias, SourceDir: "src", ReactPlugin: "@vitejs/plugin-react"}
		if strings.Contains(req.Template, "swc") {
			data.ReactPlugin = "@vitejs/plugin-react-swc"
		}
		files := slices.Clone(viteReactFiles)
		if strings.HasSuffix(req.Template, "-ts") {
			files = append(files, viteTypescriptFiles...)
		}
		if written, err = writeFiles(projectPath, data, files...); err != nil {
			return nil, err
		}
	}

	return &ScaffoldResponse{
		Success:     true,
		Message:     "Vite project created successfully",
		ProjectPath: projectPath,
		Template:    req.Template,
		Files:       written,
		Commands: map[string]string{
			"navigate": "cd " + req.ProjectName,
			"install":  "npm install",
			"dev":      "npm run dev",
			"build":    "npm run build",
			"preview":  "npm run preview",
		},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// ADD COMMON DEPENDENCIES

func (*addDependencies) Name() string {
	return "add_common_dependencies"
}

func (*addDependencies) Description() string {
	return "Add common dependencies to an existing project"
}

func (*addDependencies) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[DependenciesRequest](nil)
	if err != nil {
		return nil, err
	}
	if deps, ok := schema.Properties["dependencies"]; ok && deps != nil && deps.Items != nil {
		deps.Items.Enum = commonDependencies
	}
	return schema, nil
}

func (t *addDependencies) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req DependenciesRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if len(req.Dependencies) == 0 {
		return nil, scopey.ErrBadParameter.With("dependencies is required")
	}
	for _, dep := range req.Dependencies {
		if !slices.Contains(commonDependencies, any(dep)) {
			return nil, scopey.ErrBadParameter.Withf("invalid dependency: %q", dep)
		}
	}
	response, err := t.install(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Failed to add dependencies: %w", err)
	}
	return response, nil
}

func (t *addDependencies) install(ctx context.Context, req DependenciesRequest) (*DependenciesResponse, error) {
	projectPath := t.resolve(req.ProjectPath)
	packagePath := filepath.Join(projectPath, "package.json")
	if _, err := os.Stat(packagePath); errors.Is(err, fs.ErrNotExist) {
		return nil, scopey.ErrNotFound.With("No package.json found in the specified directory")
	} else if err != nil {
		return nil, err
	}

	args := []string{"install"}
	if req.Dev {
		args = append(args, "--save-dev")
	}
	args = append(args, req.Dependencies...)
	if _, err := t.runner.Run(ctx, projectPath, "npm", args...); err != nil {
		return nil, err
	}

	// Read the updated package.json
	var pkg PackageDependencies
	if data, err := os.ReadFile(packagePath); err != nil {
		return nil, err
	} else if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, err
	}

	return &DependenciesResponse{
		Success:               true,
		Message:               fmt.Sprintf("Successfully installed %d dependencies", len(req.Dependencies)),
		InstalledDependencies: req.Dependencies,
		DevDependencies:       req.Dev,
		PackageJson:           pkg,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// resolve returns an absolute directory, relative paths being taken from
// the scaffold directory
func (s *scaffolder) resolve(dir string) string {
	switch {
	case dir == "":
		return s.dir
	case filepath.IsAbs(dir):
		return filepath.Clean(dir)
	default:
		return filepath.Join(s.dir, dir)
	}
}

// project returns the parent directory and project path, which must not
// already exist
func (s *scaffolder) project(dir, name string) (string, string, error) {
	if err := checkProjectName(name); err != nil {
		return "", "", err
	}
	dir = s.resolve(dir)
	projectPath := filepath.Join(dir, name)
	if _, err := os.Stat(projectPath); err == nil {
		return "", "", scopey.ErrConflict.Withf("Directory %s already exists", projectPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", "", err
	}
	return dir, projectPath, nil
}

func checkProjectName(name string) error {
	switch {
	case name == "":
		return scopey.ErrBadParameter.With("projectName is required")
	case name == "." || name == "..":
		return scopey.ErrBadParameter.Withf("invalid projectName: %q", name)
	case strings.HasPrefix(name, "-"):
		return scopey.ErrBadParameter.Withf("invalid projectName: %q", name)
	case strings.ContainsAny(name, `/\`):
		return scopey.ErrBadParameter.Withf("invalid projectName: %q", name)
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
