package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	// Packages
	kong "github.com/alecthomas/kong"
	config "github.com/mutablelogic/go-scopey/pkg/config"
	metric "go.opentelemetry.io/otel/metric"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug  bool   `name:"debug" env:"SCOPEY_DEBUG" help:"Enable debug logging"`
	Config string `name:"config" env:"SCOPEY_CONFIG" type:"path" help:"YAML configuration file"`
	Strict bool   `name:"strict" env:"SCOPEY_STRICT" help:"Reject tool calls whose arguments fail validation"`

	// Telemetry
	OTelEndpoint string `name:"otel-endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OTLP/HTTP endpoint for traces and metrics"`

	// Tool groups
	Linear struct {
		APIKey string `name:"api-key" env:"LINEAR_API_KEY" help:"Linear API key"`
	} `embed:"" prefix:"linear."`
	Supabase struct {
		URL     string `name:"url" env:"SUPABASE_URL" help:"Supabase project URL"`
		AnonKey string `name:"anon-key" env:"SUPABASE_ANON_KEY" help:"Supabase anonymous key"`
	} `embed:"" prefix:"supabase."`
	Vercel struct {
		Token string `name:"token" env:"VERCEL_TOKEN" help:"Vercel access token"`
	} `embed:"" prefix:"vercel."`
	Scaffold struct {
		Dir string `name:"dir" env:"SCOPEY_SCAFFOLD_DIR" type:"path" help:"Directory new projects are created in"`
	} `embed:"" prefix:"scaffold."`

	// Private fields
	ctx      context.Context
	execName string
	config   *config.Config
	logger   *slog.Logger
	tracer   trace.Tracer
	meter    metric.Meter
}

type CLI struct {
	Globals

	// Commands
	Run     RunCmd     `cmd:"" help:"Run the MCP server on standard input and output"`
	Tools   ToolsCmd   `cmd:"" help:"List the available tools"`
	Call    CallCmd    `cmd:"" help:"Call a tool and print the result"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("MCP tool server for project management, databases, deployment and scaffolding"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)

	// Create a context which is cancelled on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Standard output carries the protocol, so log to standard error
	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	cli.Globals.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Load the configuration, flags override the file
	if cfg, err := cli.Globals.loadConfig(); err != nil {
		cmd.FatalIfErrorf(err)
	} else {
		cli.Globals.config = cfg
	}

	// Set up tracing and metrics
	shutdown, err := cli.Globals.telemetry(ctx)
	cmd.FatalIfErrorf(err)

	// Run the command, flushing telemetry before reporting any error
	err = cmd.Run(&cli.Globals)
	if err := shutdown(context.Background()); err != nil {
		cli.Globals.logger.Error("telemetry shutdown", "error", err)
	}
	cmd.FatalIfErrorf(err)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		return "scopey"
	}
	return filepath.Base(name)
}

// loadConfig reads the configuration file and environment, then applies
// any flags which were set
func (g *Globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	set := func(dest *string, value string) {
		if value != "" {
			*dest = value
		}
	}
	set(&cfg.Linear.APIKey, g.Linear.APIKey)
	set(&cfg.Supabase.URL, g.Supabase.URL)
	set(&cfg.Supabase.AnonKey, g.Supabase.AnonKey)
	set(&cfg.Vercel.Token, g.Vercel.Token)
	set(&cfg.Scaffold.Directory, g.Scaffold.Dir)
	set(&cfg.Server.OTel, g.OTelEndpoint)
	if g.Strict {
		cfg.Server.Strict = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
