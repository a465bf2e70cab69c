package scaffold

import (
	"bytes"
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"text/template"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// file is an embedded template and the name it is written to in a project
type file struct {
	template string
	name     string
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

//go:embed files
var filesFS embed.FS

var funcMap = template.FuncMap{
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(data), nil
	},
}

var (
	nextjsFiles = []file{
		{"files/nextjs/env.example", ".env.example"},
	}
	nextjsTypescriptFiles = []file{
		{"files/nextjs/tsconfig.json", "tsconfig.json"},
	}
	viteReactFiles = []file{
		{"files/vite/env.example", ".env.example"},
		{"files/vite/vite.config.ts", "vite.config.ts"},
		{"files/vite/prettierrc", ".prettierrc"},
	}
	viteTypescriptFiles = []file{
		{"files/vite/tsconfig.json", "tsconfig.json"},
	}
)

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// writeFiles executes each template with data and writes it into dir,
// returning the names of the files written
func writeFiles(dir string, data any, files ...file) ([]string, error) {
	written := make([]string, 0, len(files))
	for _, f := range files {
		source, err := filesFS.ReadFile(f.template)
		if err != nil {
			return written, err
		}
		tmpl, err := template.New(f.template).Funcs(funcMap).Parse(string(source))
		if err != nil {
			return written, err
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return written, err
		}
		if err := os.WriteFile(filepath.Join(dir, f.name), buf.Bytes(), 0o644); err != nil {
			return written, err
		}
		written = append(written, f.name)
	}
	return written, nil
}
