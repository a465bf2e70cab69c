package config

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"

	// Packages
	scopey "github.com/mutablelogic/go-scopey"
	linear "github.com/mutablelogic/go-scopey/pkg/linear"
	scaffold "github.com/mutablelogic/go-scopey/pkg/scaffold"
	supabase "github.com/mutablelogic/go-scopey/pkg/supabase"
	vercel "github.com/mutablelogic/go-scopey/pkg/vercel"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Config is built once at startup and passed to each tool group
type Config struct {
	Linear   linear.Config   `yaml:"linear"`
	Supabase supabase.Config `yaml:"supabase"`
	Vercel   vercel.Config   `yaml:"vercel"`
	Scaffold scaffold.Config `yaml:"scaffold"`
	Server   Server          `yaml:"server"`
}

// Server configures the transports and the dispatcher
type Server struct {
	Name         string `yaml:"name"`
	Instructions string `yaml:"instructions"`
	HTTP         string `yaml:"http"`   // Listen address for streamable HTTP, disabled when empty
	Strict       bool   `yaml:"strict"` // Reject calls whose arguments fail validation
	OTel         string `yaml:"otel"`   // OTLP/HTTP endpoint, tracing disabled when empty
}

// LookupFunc returns the value of an environment variable
type LookupFunc func(key string) (string, bool)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultName = "scopey"
)

const (
	EnvLinearAPIKey    = "LINEAR_API_KEY"
	EnvSupabaseURL     = "SUPABASE_URL"
	EnvSupabaseAnonKey = "SUPABASE_ANON_KEY"
	EnvVercelToken     = "VERCEL_TOKEN"
	EnvScaffoldDir     = "SCOPEY_SCAFFOLD_DIR"
	EnvOTelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Load reads the configuration from a YAML file and overlays the
// environment. An empty path returns the environment overlay on defaults.
func Load(path string) (*Config, error) {
	config := new(Config)
	if path != "" {
		r, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer r.Close()
		if err := config.Read(r); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	config.Overlay(os.LookupEnv)
	return config, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Read decodes YAML into the configuration. Unknown keys are an error.
func (c *Config) Read(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return scopey.ErrBadParameter.With(err)
	}
	return nil
}

// Overlay sets values from the environment, replacing those from the file
func (c *Config) Overlay(lookup LookupFunc) {
	set := func(key string, dest *string) {
		if value, exists := lookup(key); exists && strings.TrimSpace(value) != "" {
			*dest = strings.TrimSpace(value)
		}
	}
	set(EnvLinearAPIKey, &c.Linear.APIKey)
	set(EnvSupabaseURL, &c.Supabase.URL)
	set(EnvSupabaseAnonKey, &c.Supabase.AnonKey)
	set(EnvVercelToken, &c.Vercel.Token)
	set(EnvScaffoldDir, &c.Scaffold.Directory)
	set(EnvOTelEndpoint, &c.Server.OTel)
}

// Validate returns an error describing every invalid value
func (c *Config) Validate() error {
	var result error
	if c.Linear.Endpoint != "" {
		result = errors.Join(result, checkURL("linear.endpoint", c.Linear.Endpoint))
	}
	if c.Supabase.URL != "" {
		result = errors.Join(result, checkURL("supabase.url", c.Supabase.URL))
		if c.Supabase.AnonKey == "" {
			result = errors.Join(result, scopey.ErrBadParameter.With("supabase.anon_key is required with supabase.url"))
		}
	} else if c.Supabase.AnonKey != "" {
		result = errors.Join(result, scopey.ErrBadParameter.With("supabase.url is required with supabase.anon_key"))
	}
	if c.Vercel.Endpoint != "" {
		result = errors.Join(result, checkURL("vercel.endpoint", c.Vercel.Endpoint))
	}
	if c.Server.HTTP != "" {
		if _, _, err := net.SplitHostPort(c.Server.HTTP); err != nil {
			result = errors.Join(result, scopey.ErrBadParameter.Withf("server.http: %v", err))
		}
	}
	if c.Server.OTel != "" {
		result = errors.Join(result, checkURL("server.otel", c.Server.OTel))
	}
	if c.Scaffold.Directory != "" {
		if info, err := os.Stat(c.Scaffold.Directory); err != nil {
			result = errors.Join(result, scopey.ErrBadParameter.Withf("scaffold.directory: %v", err))
		} else if !info.IsDir() {
			result = errors.Join(result, scopey.ErrBadParameter.Withf("scaffold.directory: %q is not a directory", c.Scaffold.Directory))
		}
	}
	return result
}

// LinearEnabled returns true if the Linear tools can be registered
func (c *Config) LinearEnabled() bool {
	return c.Linear.APIKey != ""
}

// SupabaseEnabled returns true if the Supabase tools can be registered
func (c *Config) SupabaseEnabled() bool {
	return c.Supabase.URL != "" && c.Supabase.AnonKey != ""
}

// VercelEnabled returns true if the Vercel tools can be registered
func (c *Config) VercelEnabled() bool {
	return c.Vercel.Token != ""
}

// ServerName returns the name reported to clients
func (c *Config) ServerName() string {
	if c.Server.Name != "" {
		return c.Server.Name
	}
	return DefaultName
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func checkURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return scopey.ErrBadParameter.Withf("%s: %v", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return scopey.ErrBadParameter.Withf("%s: unsupported scheme %q", field, u.Scheme)
	}
	if u.Host == "" {
		return scopey.ErrBadParameter.Withf("%s: missing host", field)
	}
	return nil
}
