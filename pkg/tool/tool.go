package tool

import (
	"context"
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	paprika "github.com/mutablelogic/go-paprika"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and JSON schema
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the JSON schema for the tool input
	Schema() (*jsonschema.Schema, error)

	// Run the tool with the given input as JSON (may be nil) and return
	// the text of the result
	Run(ctx context.Context, input json.RawMessage) (string, error)
}

// Descriptor is the published definition of a tool
type Descriptor struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Toolkit is an ordered collection of tools with unique names. It is not
// modified after construction, so it is safe for concurrent use.
type Toolkit struct {
	tools       []Tool
	descriptors []Descriptor
	index       map[string]int
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools, in order.
// Returns an error if any tool has an invalid or duplicate name,
// or its schema cannot be generated.
func NewToolkit(tools ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		index: make(map[string]int, len(tools)),
	}
	for _, t := range tools {
		if err := tk.register(t); err != nil {
			return nil, err
		}
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in registration order
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, len(tk.tools))
	copy(result, tk.tools)
	return result
}

// Descriptors returns the definitions of all tools in registration order
func (tk *Toolkit) Descriptors() []Descriptor {
	result := make([]Descriptor, len(tk.descriptors))
	copy(result, tk.descriptors)
	return result
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	if i, exists := tk.index[name]; exists {
		return tk.tools[i]
	}
	return nil
}

// Run executes a tool by name with the given input.
// The input should be json.RawMessage, a map, or nil.
// Returns an error if the tool is not found, a required argument
// is missing, or the tool execution fails.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (string, error) {
	// Lookup the tool
	i, exists := tk.index[name]
	if !exists {
		return "", paprika.ErrNotFound.Withf("Unknown tool: %s", name)
	}

	// Convert input to json.RawMessage
	var rawInput json.RawMessage
	if input != nil {
		switch v := input.(type) {
		case json.RawMessage:
			rawInput = v
		case []byte:
			rawInput = json.RawMessage(v)
		default:
			// If not JSON, marshal it
			data, err := json.Marshal(input)
			if err != nil {
				return "", paprika.ErrBadParameter.Withf("failed to marshal input: %v", err)
			}
			rawInput = json.RawMessage(data)
		}
	}

	// Check required arguments are present. Types are checked when the
	// tool decodes its input.
	if err := checkRequired(tk.descriptors[i].InputSchema, rawInput); err != nil {
		return "", err
	}

	// Run the tool with raw JSON
	return tk.tools[i].Run(ctx, rawInput)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	return types.Stringify(tk.descriptors)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (tk *Toolkit) register(t Tool) error {
	if t == nil {
		return paprika.ErrBadParameter.With("tool cannot be nil")
	}
	name := t.Name()
	if !types.IsIdentifier(name) {
		return paprika.ErrBadParameter.Withf("invalid tool name: %q", name)
	}
	if _, exists := tk.index[name]; exists {
		return paprika.ErrBadParameter.Withf("duplicate tool name: %q", name)
	}
	schema, err := t.Schema()
	if err != nil {
		return paprika.ErrBadParameter.Withf("schema generation failed for %q: %v", name, err)
	}
	tk.index[name] = len(tk.tools)
	tk.tools = append(tk.tools, t)
	tk.descriptors = append(tk.descriptors, Descriptor{
		Name:        name,
		Description: t.Description(),
		InputSchema: schema,
	})
	return nil
}

func checkRequired(schema *jsonschema.Schema, input json.RawMessage) error {
	if schema == nil || len(schema.Required) == 0 {
		return nil
	}
	var args map[string]any
	if len(input) > 0 {
		if err := json.Unmarshal(input, &args); err != nil {
			return paprika.ErrBadParameter.Withf("failed to unmarshal JSON input: %v", err)
		}
	}
	for _, key := range schema.Required {
		if v, exists := args[key]; !exists || v == nil {
			return paprika.ErrBadParameter.Withf("missing required argument: %q", key)
		}
	}
	return nil
}
