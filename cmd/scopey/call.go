package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	termenv "github.com/muesli/termenv"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	scopey "github.com/mutablelogic/go-scopey"
	schema "github.com/mutablelogic/go-scopey/pkg/schema"
	attribute "go.opentelemetry.io/otel/attribute"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type CallCmd struct {
	Name   string   `arg:"" help:"Tool name"`
	Args   []string `arg:"" optional:"" help:"Arguments as key=value, values are parsed as JSON where possible"`
	Input  string   `name:"input" short:"i" help:"Arguments as a JSON object, merged before key=value arguments"`
	Render bool     `name:"render" help:"Render markdown content when writing to a terminal"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultWidth = 100
)

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *CallCmd) Run(ctx *Globals) (err error) {
	args, err := cmd.arguments()
	if err != nil {
		return err
	}
	dispatcher, err := ctx.Dispatcher()
	if err != nil {
		return err
	}

	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "CallCommand",
		attribute.String("tool", cmd.Name),
	)
	defer func() { endSpan(err) }()

	// Call the tool
	response, err := dispatcher.Call(parent, cmd.Name, args)
	if err != nil {
		return err
	}

	// Output the envelope text
	text := response.Text()
	if cmd.Render && term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := render(response); err != nil {
			ctx.logger.Warn("render", "error", err)
		} else {
			text = rendered
		}
	}
	fmt.Println(text)

	// A failed call exits with an error
	if response.IsError {
		return scopey.ErrInternalServerError.Withf("%s failed", cmd.Name)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// arguments returns the merged --input object and key=value arguments
func (cmd *CallCmd) arguments() (map[string]any, error) {
	args := make(map[string]any)
	if cmd.Input != "" {
		if err := json.Unmarshal([]byte(cmd.Input), &args); err != nil {
			return nil, scopey.ErrBadParameter.Withf("--input: %v", err)
		} else if args == nil {
			return nil, scopey.ErrBadParameter.With("--input: expected a JSON object")
		}
	}
	for _, arg := range cmd.Args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, scopey.ErrBadParameter.Withf("expected key=value, got %q", arg)
		}
		var v any
		if err := json.Unmarshal([]byte(value), &v); err != nil {
			v = value
		}
		args[key] = v
	}
	return args, nil
}

// render formats the response for a terminal. A "content" string in the
// result is rendered as markdown, anything else as a JSON code block.
func render(response *schema.CallToolResponse) (string, error) {
	var result struct {
		Content *string `json:"content"`
	}
	markdown := "```json\n" + response.Text() + "\n```"
	if err := response.Decode(&result); err == nil && result.Content != nil {
		markdown = *result.Content
	}

	style := "dark"
	if !termenv.HasDarkBackground() {
		style = "light"
	}
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = min(w, width)
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	text, err := renderer.Render(markdown)
	if err != nil {
		return "", errors.Join(err, renderer.Close())
	}
	return strings.TrimRight(text, "\n"), renderer.Close()
}
