package scaffold

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// NextjsRequest defines the input for scaffolding a Next.js project
type NextjsRequest struct {
	ProjectName string `json:"projectName" jsonschema:"Name of the project"`
	Directory   string `json:"directory,omitempty" jsonschema:"Directory to create the project in (defaults to the scaffold directory)"`
	Typescript  *bool  `json:"typescript,omitempty" jsonschema:"Use TypeScript (default true)"`
	ESLint      *bool  `json:"eslint,omitempty" jsonschema:"Include ESLint (default true)"`
	Tailwind    *bool  `json:"tailwind,omitempty" jsonschema:"Include Tailwind CSS (default true)"`
	App         *bool  `json:"app,omitempty" jsonschema:"Use the App Router (default true)"`
	SrcDir      *bool  `json:"srcDir,omitempty" jsonschema:"Use a src directory (default true)"`
	ImportAlias string `json:"importAlias,omitempty" jsonschema:"Import alias (default @/*)"`
}

// ViteRequest defines the input for scaffolding a Vite project
type ViteRequest struct {
	ProjectName string `json:"projectName" jsonschema:"Name of the project"`
	Directory   string `json:"directory,omitempty" jsonschema:"Directory to create the project in (defaults to the scaffold directory)"`
	Template    string `json:"template,omitempty" jsonschema:"Vite template to use (default react-swc-ts)"`
}

// DependenciesRequest defines the input for adding dependencies
type DependenciesRequest struct {
	ProjectPath  string   `json:"projectPath,omitempty" jsonschema:"Path to the project (defaults to the scaffold directory)"`
	Dependencies []string `json:"dependencies" jsonschema:"Common dependencies to add"`
	Dev          bool     `json:"dev,omitempty" jsonschema:"Install as dev dependencies"`
}

///////////////////////////////////////////////////////////////////////////////
// RESPONSE TYPES

type NextjsConfiguration struct {
	Typescript   bool   `json:"typescript"`
	ESLint       bool   `json:"eslint"`
	Tailwind     bool   `json:"tailwind"`
	AppRouter    bool   `json:"appRouter"`
	SrcDirectory bool   `json:"srcDirectory"`
	ImportAlias  string `json:"importAlias"`
}

type ScaffoldResponse struct {
	Success       bool                 `json:"success"`
	Message       string               `json:"message"`
	ProjectPath   string               `json:"projectPath"`
	Template      string               `json:"template,omitempty"`
	Files         []string             `json:"files"`
	Commands      map[string]string    `json:"commands"`
	Configuration *NextjsConfiguration `json:"configuration,omitempty"`
}

type PackageDependencies struct {
	Dependencies    map[string]string `json:"dependencies,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

type DependenciesResponse struct {
	Success               bool                `json:"success"`
	Message               string              `json:"message"`
	InstalledDependencies []string            `json:"installedDependencies"`
	DevDependencies       bool                `json:"devDependencies"`
	PackageJson           PackageDependencies `json:"packageJson"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultImportAlias  = "@/*"
	defaultViteTemplate = "react-swc-ts"
)

var (
	viteTemplates = []any{
		"vanilla", "vanilla-ts", "react", "react-ts", "react-swc", "react-swc-ts",
		"vue", "vue-ts", "svelte", "svelte-ts",
	}
	commonDependencies = []any{
		"zustand", "react-query", "axios", "zod", "react-hook-form", "framer-motion",
		"clsx", "tailwind-merge", "lucide-react", "date-fns", "react-hot-toast",
	}
)

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Args returns the create-next-app arguments for the request
func (r *NextjsRequest) Args(config NextjsConfiguration) []string {
	flag := func(v bool, on, off string) string {
		if v {
			return on
		}
		return off
	}
	return []string{
		"create-next-app@latest",
		r.ProjectName,
		"--yes",
		flag(config.Typescript, "--typescript", "--javascript"),
		flag(config.ESLint, "--eslint", "--no-eslint"),
		flag(config.Tailwind, "--tailwind", "--no-tailwind"),
		flag(config.AppRouter, "--app", "--no-app"),
		flag(config.SrcDirectory, "--src-dir", "--no-src-dir"),
		"--import-alias=" + config.ImportAlias,
		"--use-npm",
	}
}

// Configuration returns the request with defaults applied
func (r *NextjsRequest) Configuration() NextjsConfiguration {
	config := NextjsConfiguration{
		Typescript:   value(r.Typescript, true),
		ESLint:       value(r.ESLint, true),
		Tailwind:     value(r.Tailwind, true),
		AppRouter:    value(r.App, true),
		SrcDirectory: value(r.SrcDir, true),
		ImportAlias:  r.ImportAlias,
	}
	if config.ImportAlias == "" {
		config.ImportAlias = defaultImportAlias
	}
	return config
}

func value(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
