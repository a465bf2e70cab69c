package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"slices"
	"strings"
	"text/template"

	// Packages
	cases "golang.org/x/text/cases"
	language "golang.org/x/text/language"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

//go:embed files/*
var filesFS embed.FS

const (
	templatePRD         = "prd.md"
	templateCursorRules = "cursorrules.js"
	templateContextDoc  = "context.md"
)

var funcMap = template.FuncMap{
	"title": func(s string) string {
		return cases.Title(language.English).String(s)
	},
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
	"has":  slices.Contains[[]string, string],
	"join": strings.Join,
	"find": find,
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(funcMap).ParseFS(filesFS, "files/*")
}

func execute(tmpl *template.Template, name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// find returns the first entry in stack which contains any of the
// candidates, or def when none do
func find(stack []string, def string, candidates ...string) string {
	for _, entry := range stack {
		for _, candidate := range candidates {
			if strings.Contains(entry, candidate) {
				return entry
			}
		}
	}
	return def
}
