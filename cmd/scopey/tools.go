package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	schema "github.com/mutablelogic/go-scopey/pkg/schema"
	table "github.com/mutablelogic/go-scopey/pkg/ui/table"
	attribute "go.opentelemetry.io/otel/attribute"
	term "golang.org/x/term"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolsCmd struct {
	JSON bool `name:"json" help:"Print the catalogue as JSON"`
}

// catalogue renders tool metadata as table rows
type catalogue []schema.ToolMeta

////////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ToolsCmd) Run(ctx *Globals) (err error) {
	dispatcher, err := ctx.Dispatcher()
	if err != nil {
		return err
	}
	tools := dispatcher.List()

	_, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListToolsCommand",
		attribute.Int("count", len(tools)),
	)
	defer func() { endSpan(err) }()

	// Print a table on a terminal, JSON otherwise
	if cmd.JSON || !term.IsTerminal(int(os.Stdout.Fd())) {
		data, err := json.MarshalIndent(schema.ListToolsResponse{Tools: tools}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(table.Render(catalogue(tools)))
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// TABLE

func (c catalogue) Header() []string {
	return []string{"Name", "Description", "Required"}
}

func (c catalogue) Len() int {
	return len(c)
}

func (c catalogue) Row(i int) []any {
	var input struct {
		Required []string `json:"required"`
	}
	_ = json.Unmarshal(c[i].InputSchema, &input)
	return []any{
		table.Bold{Value: c[i].Name},
		table.Truncate(c[i].Description, 60),
		strings.Join(input.Required, ", "),
	}
}
