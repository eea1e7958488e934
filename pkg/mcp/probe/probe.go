/*
probe connects to an MCP server as a client, in order to check the tools
it publishes and the results they return.
*/
package probe

import (
	"context"
	"os/exec"
	"strings"

	// Packages
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	paprika "github.com/mutablelogic/go-paprika"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Probe struct {
	session *mcp.ClientSession
}

// Result is the text of a tool call, and whether the tool reported an error
type Result struct {
	Text  string `json:"text"`
	Error bool   `json:"isError"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Connect performs the initialize handshake with the server on the other
// end of the transport
func Connect(ctx context.Context, transport mcp.Transport, name, version string) (*Probe, error) {
	client := mcp.NewClient(&mcp.Implementation{
		Name:    name,
		Version: version,
	}, nil)
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		return nil, paprika.ErrInternalServerError.Withf("failed to connect: %v", err)
	}
	return &Probe{session: session}, nil
}

// Command returns a transport which starts the server as a subprocess
// and communicates over its standard input and output
func Command(name string, args ...string) mcp.Transport {
	return &mcp.CommandTransport{
		Command: exec.Command(name, args...),
	}
}

// Close ends the session
func (p *Probe) Close() error {
	return p.session.Close()
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools the server publishes, in the order listed
func (p *Probe) Tools(ctx context.Context) ([]*mcp.Tool, error) {
	var result []*mcp.Tool
	params := new(mcp.ListToolsParams)
	for {
		response, err := p.session.ListTools(ctx, params)
		if err != nil {
			return nil, err
		}
		result = append(result, response.Tools...)
		if response.NextCursor == "" {
			break
		}
		params.Cursor = response.NextCursor
	}
	return result, nil
}

// Call invokes a tool. An error is returned only when the call could not
// be made; a tool which fails returns a result with Error set.
func (p *Probe) Call(ctx context.Context, name string, args map[string]any) (*Result, error) {
	if args == nil {
		args = map[string]any{}
	}
	response, err := p.session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, err
	}

	var text []string
	for _, content := range response.Content {
		if v, ok := content.(*mcp.TextContent); ok {
			text = append(text, v.Text)
		}
	}
	return &Result{
		Text:  strings.Join(text, "\n"),
		Error: response.IsError,
	}, nil
}
