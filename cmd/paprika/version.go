package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-paprika/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type VersionCommand struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *VersionCommand) Run(ctx *Globals) error {
	if cmd.JSON {
		fmt.Println(string(version.JSON(ctx.execName)))
		return nil
	}

	info := version.Info(ctx.execName)
	fmt.Printf("%s %s\n", ctx.execName, version.Version())
	if info.Source != "" {
		fmt.Printf("  source:   %s\n", info.Source)
	}
	if info.BuildTime != "" {
		fmt.Printf("  built:    %s\n", info.BuildTime)
	}
	fmt.Printf("  compiler: %s\n", info.Compiler)
	if info.Platform != "" {
		fmt.Printf("  platform: %s\n", info.Platform)
	}
	return nil
}
