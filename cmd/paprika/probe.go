package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	probe "github.com/mutablelogic/go-paprika/pkg/mcp/probe"
	version "github.com/mutablelogic/go-paprika/pkg/version"
	table "github.com/mutablelogic/go-paprika/pkg/ui/table"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ProbeCommands struct {
	Probe ProbeCommand `cmd:"" name:"probe" help:"Start an MCP server as a subprocess, list its tools and optionally call one." group:"CLIENT"`
}

type ProbeCommand struct {
	Call    string   `name:"call" help:"Tool to call after listing"`
	Args    string   `name:"args" default:"{}" help:"Tool arguments as a JSON object"`
	Command []string `arg:"" optional:"" passthrough:"" help:"Server command and arguments (defaults to this executable)"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ProbeCommand) Run(ctx *Globals) (err error) {
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ProbeCommand",
		attribute.String("call", cmd.Call),
	)
	defer func() { endSpan(err) }()

	args, err := decodeArgs([]byte(cmd.Args))
	if err != nil {
		return err
	}

	// Without a command, probe this executable
	command := cmd.Command
	if len(command) == 0 {
		self, err := os.Executable()
		if err != nil {
			return err
		}
		command = []string{self, "mcp"}
	}
	ctx.log.Debugf(parent, "Starting %s", strings.Join(command, " "))

	// Connect
	client, err := probe.Connect(parent, probe.Command(command[0], command[1:]...), ctx.execName, version.Version())
	if err != nil {
		return err
	}
	defer client.Close()

	// List tools
	tools, err := client.Tools(parent)
	if err != nil {
		return err
	}
	list := &toolTable{header: []string{"Name", "Description"}}
	for _, t := range tools {
		list.rows = append(list.rows, []any{table.Bold{Value: t.Name}, table.Truncate(t.Description, 80)})
	}
	if err := table.Write(os.Stdout, list); err != nil {
		return err
	}

	// Call a tool
	if cmd.Call == "" {
		return nil
	}
	result, err := client.Call(parent, cmd.Call, args)
	if err != nil {
		return err
	}
	fmt.Println()
	if result.Error {
		return errors.New(result.Text)
	}
	return printMarkdown(result.Text)
}
