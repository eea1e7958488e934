package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	paprika "github.com/mutablelogic/go-paprika"
	tool "github.com/mutablelogic/go-paprika/pkg/tool"
	markdown "github.com/mutablelogic/go-paprika/pkg/ui/markdown"
	table "github.com/mutablelogic/go-paprika/pkg/ui/table"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List available tools." group:"TOOL"`
	ToolInfo  ToolInfoCommand  `cmd:"" name:"tool" help:"Show detailed information about a tool." group:"TOOL"`
	RunTool   RunToolCommand   `cmd:"" name:"run" help:"Run a tool with JSON input." group:"TOOL"`
}

type ListToolsCommand struct {
	JSON bool `name:"json" help:"Output as JSON"`
}

type ToolInfoCommand struct {
	Name string `arg:"" name:"name" help:"Tool name"`
	JSON bool   `name:"json" help:"Output as JSON"`
}

type RunToolCommand struct {
	Name  string          `arg:"" name:"name" help:"Tool name"`
	Input json.RawMessage `arg:"" name:"input" optional:"" help:"JSON object with the tool arguments (optional)"`
	JSON  bool            `name:"json" help:"Output the result envelope as JSON"`
}

// toolTable lists tools with their arguments, required arguments in bold
type toolTable struct {
	header []string
	rows   [][]any
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) (err error) {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	descriptors := toolkit.Descriptors()
	if cmd.JSON {
		return printJSON(descriptors)
	}
	return table.Write(os.Stdout, newDescriptorTable(descriptors))
}

func (cmd *ToolInfoCommand) Run(ctx *Globals) (err error) {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	// Lookup the tool
	var descriptor *tool.Descriptor
	for _, d := range toolkit.Descriptors() {
		if d.Name == cmd.Name {
			descriptor = &d
			break
		}
	}
	if descriptor == nil {
		return paprika.ErrNotFound.Withf("tool not found: %q", cmd.Name)
	}

	if cmd.JSON {
		return printJSON(descriptor)
	}

	fmt.Printf("Name: %s\n", descriptor.Name)
	fmt.Printf("Description: %s\n", descriptor.Description)
	if descriptor.InputSchema != nil {
		data, err := json.MarshalIndent(descriptor.InputSchema, "  ", "  ")
		if err != nil {
			return err
		}
		fmt.Printf("\nSchema:\n  %s\n", string(data))
	}
	return nil
}

func (cmd *RunToolCommand) Run(ctx *Globals) (err error) {
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RunToolCommand",
		attribute.String("tool", cmd.Name),
	)
	defer func() { endSpan(err) }()

	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	// Absent input is an empty object
	args, err := decodeArgs(cmd.Input)
	if err != nil {
		return err
	}

	// Run the tool through the same path as an MCP client
	result := toolkit.Call(parent, tool.NewCall(cmd.Name, args))
	if cmd.JSON {
		if err := printJSON(result); err != nil {
			return err
		}
	} else if !result.Error {
		if err := printMarkdown(result.Text()); err != nil {
			return err
		}
	}
	if result.Error {
		return errors.New(strings.TrimPrefix(result.Text(), "Error: "))
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// TABLE

func newDescriptorTable(descriptors []tool.Descriptor) *toolTable {
	t := &toolTable{header: []string{"Name", "Description", "Arguments"}}
	for _, d := range descriptors {
		var args []string
		if d.InputSchema != nil {
			required := make(map[string]bool, len(d.InputSchema.Required))
			for _, name := range d.InputSchema.Required {
				required[name] = true
			}
			for _, name := range slices.Sorted(maps.Keys(d.InputSchema.Properties)) {
				if required[name] {
					name += "*"
				}
				args = append(args, name)
			}
		}
		t.rows = append(t.rows, []any{table.Bold{Value: d.Name}, table.Truncate(d.Description, 80), args})
	}
	return t
}

func (t *toolTable) Header() []string { return t.header }
func (t *toolTable) Len() int         { return len(t.rows) }
func (t *toolTable) Row(i int) []any  { return t.rows[i] }

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeArgs(input json.RawMessage) (map[string]any, error) {
	args := map[string]any{}
	if len(input) == 0 {
		return args, nil
	}
	if err := json.Unmarshal(input, &args); err != nil {
		return nil, paprika.ErrBadParameter.Withf("input must be a JSON object: %v", err)
	} else if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// printMarkdown styles the text when stdout is a terminal
func printMarkdown(text string) error {
	renderer, err := markdown.NewWriter(os.Stdout)
	if err != nil {
		return err
	}
	out, err := renderer.Render(text)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
