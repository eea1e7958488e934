package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	config "github.com/mutablelogic/go-paprika/pkg/config"
	coinpaprika "github.com/mutablelogic/go-paprika/pkg/coinpaprika"
	logger "github.com/mutablelogic/go-paprika/pkg/logger"
	tool "github.com/mutablelogic/go-paprika/pkg/tool"
	version "github.com/mutablelogic/go-paprika/pkg/version"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug logging"`
	Verbose bool `name:"verbose" help:"Enable debug logging and trace upstream requests"`
	LogJSON bool `name:"log-json" help:"Write log records as JSON"`

	// Configuration
	Config   kong.ConfigFlag `name:"config" help:"YAML file with default flag values"`
	Endpoint string          `name:"endpoint" env:"COINPAPRIKA_ENDPOINT" default:"${ENDPOINT}" help:"Coinpaprika API endpoint"`
	Proxy    string          `name:"proxy-url" env:"PROXY_URL,HTTP_PROXY" help:"Forward proxy for upstream requests"`
	Timeout  time.Duration   `name:"timeout" env:"COINPAPRIKA_TIMEOUT" default:"30s" help:"Upstream request timeout"`

	// Private
	ctx      context.Context
	execName string
	config   config.Config
	log      *logger.Logger
	tracer   trace.Tracer
}

type CLI struct {
	Globals
	MCPCommands
	ToolCommands
	ProbeCommands

	Version VersionCommand `cmd:"" name:"version" help:"Print the version and build information."`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	serverName = "coinpaprika-mcp"
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	cmd := kong.Parse(&cli,
		kong.Name(execName()),
		kong.Description("Coinpaprika market data tools for MCP clients"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Configuration(config.YAML),
		kong.Vars{
			"ENDPOINT": coinpaprika.EndPoint,
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	cli.Globals.ctx = ctx
	cli.Globals.execName = execName()

	// Logging goes to stderr, stdout carries the protocol
	format := logger.Text
	if cli.LogJSON {
		format = logger.JSON
	}
	cli.Globals.log = logger.New(os.Stderr, format, cli.Debug || cli.Verbose)
	cli.Globals.tracer = otel.Tracer(cli.Globals.execName)

	// Configuration is fixed from here on
	cfg, err := config.New(cli.Endpoint, cli.Proxy, cli.Timeout)
	cmd.FatalIfErrorf(err)
	cfg.Version = version.Version()
	cfg.Debug = cli.Debug
	cfg.Verbose = cli.Verbose
	cli.Globals.config = cfg
	if proxy := cfg.Redacted(); proxy != "" {
		cli.Globals.log.Printf(ctx, "Using proxy: %s", proxy)
	}

	// Run the command
	if err := cmd.Run(&cli.Globals); err != nil && !errors.Is(err, context.Canceled) {
		cmd.FatalIfErrorf(err)
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkit returns the Coinpaprika tools, sharing one upstream client
func (g *Globals) Toolkit() (*tool.Toolkit, error) {
	tools, err := coinpaprika.NewTools(g.config.ClientOpts(g.tracer)...)
	if err != nil {
		return nil, err
	}
	return tool.NewToolkit(tools...)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func execName() string {
	// The name of the executable
	name, err := os.Executable()
	if err != nil {
		panic(err)
	} else {
		return filepath.Base(name)
	}
}
