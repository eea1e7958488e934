package mcp_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	mcp "github.com/mutablelogic/go-paprika/pkg/mcp"
	tool "github.com/mutablelogic/go-paprika/pkg/tool"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

type echoRequest struct {
	Text string `json:"text" jsonschema:"Text to echo"`
}

type echoTool struct {
	name string
}

func (e *echoTool) Name() string        { return e.name }
func (e *echoTool) Description() string { return "Echo the text" }
func (e *echoTool) Schema() (*jsonschema.Schema, error) {
	return jsonschema.For[echoRequest](nil)
}
func (e *echoTool) Run(_ context.Context, input json.RawMessage) (string, error) {
	var req echoRequest
	if err := json.Unmarshal(input, &req); err != nil {
		return "", err
	}
	if req.Text == "fail" {
		return "", errors.New("failed on purpose")
	}
	return e.name + ": " + req.Text, nil
}

func newServer(t *testing.T) *mcp.Server {
	toolkit, err := tool.NewToolkit(&echoTool{name: "echo"}, &echoTool{name: "another_echo"}, &echoTool{name: "third"})
	if err != nil {
		t.Fatal(err)
	}
	server, err := mcp.New("test-server", "1.2.3", mcp.WithToolkit(toolkit))
	if err != nil {
		t.Fatal(err)
	}
	return server
}

type response struct {
	ID     json.RawMessage `json:"id"`
	Result json.RawMessage `json:"result"`
	Error  *mcp.Error      `json:"error"`
}

// run sends the lines to the server and returns the responses keyed by id
func run(t *testing.T, server *mcp.Server, lines ...string) map[string]response {
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	if err := server.RunStdio(context.Background(), in, &out); err != nil {
		t.Fatal(err)
	}

	responses := make(map[string]response)
	scanner := bufio.NewScanner(&out)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		var r response
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatalf("invalid response %q: %v", scanner.Text(), err)
		}
		responses[string(r.ID)] = r
	}
	return responses
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_server_001(t *testing.T) {
	assert := assert.New(t)
	responses := run(t, newServer(t),
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-06-18"}}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":"two","method":"ping"}`,
		`{"jsonrpc":"2.0","id":3,"method":"no/such/method"}`,
		`{not json`,
		``,
	)

	// The notification has no response
	assert.Len(responses, 4)

	if r, exists := responses["1"]; assert.True(exists) {
		var result mcp.ResponseInitialize
		assert.NoError(json.Unmarshal(r.Result, &result))
		assert.Equal(mcp.ProtocolVersion, result.Version)
		assert.Equal("test-server", result.ServerInfo.Name)
		assert.Equal("1.2.3", result.ServerInfo.Version)
		assert.NotNil(result.Capabilities.Tools)
	}
	if r, exists := responses[`"two"`]; assert.True(exists) {
		assert.Nil(r.Error)
		assert.JSONEq(`{}`, string(r.Result))
	}
	if r, exists := responses["3"]; assert.True(exists) && assert.NotNil(r.Error) {
		assert.Equal(mcp.ErrorCodeMethodNotFound, r.Error.Code)
	}
	if r, exists := responses["null"]; assert.True(exists) && assert.NotNil(r.Error) {
		assert.Equal(mcp.ErrorCodeParse, r.Error.Code)
	}
}

func Test_server_002(t *testing.T) {
	assert := assert.New(t)
	server := newServer(t)

	// The tool list is the same on every request
	var first string
	for i := range 5 {
		responses := run(t, server, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
		r := responses["1"]
		if i == 0 {
			first = string(r.Result)
		} else {
			assert.Equal(first, string(r.Result))
		}
	}

	var result struct {
		Tools []struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	if assert.NoError(json.Unmarshal([]byte(first), &result)) && assert.Len(result.Tools, 3) {
		assert.Equal("echo", result.Tools[0].Name)
		assert.Equal("another_echo", result.Tools[1].Name)
		assert.Equal("third", result.Tools[2].Name)
		assert.Equal("object", result.Tools[0].InputSchema["type"])
		assert.Equal([]any{"text"}, result.Tools[0].InputSchema["required"])
	}
}

func Test_server_003(t *testing.T) {
	assert := assert.New(t)
	responses := run(t, newServer(t),
		`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hello"}}}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"echo"}}`,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"nothing","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"echo","arguments":{}}}`,
		`{"jsonrpc":"2.0","id":5,"method":"tools/call","params":{"name":"echo","arguments":{"text":"fail"}}}`,
		`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"echo","arguments":"text"}}`,
	)
	assert.Len(responses, 6)

	assert.JSONEq(`{"content":[{"type":"text","text":"echo: hello"}],"isError":false}`, string(responses["1"].Result))

	tests := []struct {
		id   string
		text string
	}{
		{"2", "Arguments are required"},
		{"3", "Unknown tool: nothing"},
		{"4", `"text"`},
		{"5", "Error: failed on purpose"},
	}
	for _, test := range tests {
		t.Run(test.id, func(t *testing.T) {
			var result tool.Result
			if assert.NoError(json.Unmarshal(responses[test.id].Result, &result)) {
				assert.True(result.Error)
				assert.Contains(result.Text(), "Error: ")
				assert.Contains(result.Text(), test.text)
			}
		})
	}

	// Arguments which are not an object are a protocol error
	if r := responses["6"]; assert.NotNil(r.Error) {
		assert.Equal(mcp.ErrorCodeInvalidParameters, r.Error.Code)
	}
}

func Test_server_004(t *testing.T) {
	assert := assert.New(t)
	server := newServer(t)

	// An id of zero is echoed
	data := server.Handle(context.TODO(), []byte(`{"jsonrpc":"2.0","id":0,"method":"ping"}`))
	assert.JSONEq(`{"jsonrpc":"2.0","id":0,"result":{}}`, string(data))

	// Wrong version is an invalid request
	data = server.Handle(context.TODO(), []byte(`{"jsonrpc":"1.0","id":7,"method":"ping"}`))
	var r response
	if assert.NoError(json.Unmarshal(data, &r)) && assert.NotNil(r.Error) {
		assert.Equal(mcp.ErrorCodeInvalidRequest, r.Error.Code)
	}

	// Notifications never have a response, even for unknown methods
	assert.Nil(server.Handle(context.TODO(), []byte(`{"jsonrpc":"2.0","method":"notifications/cancelled"}`)))

	// Empty lists
	data = server.Handle(context.TODO(), []byte(`{"jsonrpc":"2.0","id":1,"method":"prompts/list"}`))
	assert.JSONEq(`{"jsonrpc":"2.0","id":1,"result":{"prompts":[]}}`, string(data))
	data = server.Handle(context.TODO(), []byte(`{"jsonrpc":"2.0","id":1,"method":"resources/list"}`))
	assert.JSONEq(`{"jsonrpc":"2.0","id":1,"result":{"resources":[]}}`, string(data))
}

func Test_server_005(t *testing.T) {
	assert := assert.New(t)
	server := newServer(t)

	// Cancelling the context stops the server while input is open
	r, w := io.Pipe()
	defer r.Close()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- server.RunStdio(ctx, r, io.Discard)
	}()

	cancel()
	select {
	case err := <-errs:
		assert.ErrorIs(err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func Test_server_006(t *testing.T) {
	assert := assert.New(t)
	server := newServer(t)

	// Requests and responses over a pipe, one line each
	inR, inW := io.Pipe()
	outR, outW := io.Pipe()
	errs := make(chan error, 1)
	go func() {
		errs <- server.RunStdio(context.Background(), inR, outW)
		outW.Close()
	}()

	reader := bufio.NewReader(outR)
	for i, text := range []string{"one", "two"} {
		request := `{"jsonrpc":"2.0","id":` + strconv.Itoa(i+1) + `,"method":"tools/call","params":{"name":"third","arguments":{"text":"` + text + `"}}}` + "\n"
		_, err := io.WriteString(inW, request)
		assert.NoError(err)

		line, err := reader.ReadBytes('\n')
		if assert.NoError(err) {
			var r response
			assert.NoError(json.Unmarshal(line, &r))
			var result tool.Result
			assert.NoError(json.Unmarshal(r.Result, &result))
			assert.Equal("third: "+text, result.Text())
		}
	}

	inW.Close()
	assert.NoError(<-errs)
}

func Test_http_001(t *testing.T) {
	assert := assert.New(t)
	ts := httptest.NewServer(newServer(t).Router())
	defer ts.Close()

	// Health
	resp, err := http.Get(ts.URL + "/health")
	if assert.NoError(err) {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(http.StatusOK, resp.StatusCode)
		assert.JSONEq(`{"status":"ok"}`, string(body))
	}

	// Request
	resp, err = http.Post(ts.URL+"/mcp", "application/json", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"echo","arguments":{"text":"hi"}}}`))
	if assert.NoError(err) {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(http.StatusOK, resp.StatusCode)
		assert.Equal("application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(`{"jsonrpc":"2.0","id":1,"result":{"content":[{"type":"text","text":"echo: hi"}],"isError":false}}`, string(body))
	}

	// Notification
	resp, err = http.Post(ts.URL+"/mcp", "application/json", strings.NewReader(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	if assert.NoError(err) {
		resp.Body.Close()
		assert.Equal(http.StatusAccepted, resp.StatusCode)
	}

	// Wrong method
	resp, err = http.Get(ts.URL + "/mcp")
	if assert.NoError(err) {
		resp.Body.Close()
		assert.Equal(http.StatusMethodNotAllowed, resp.StatusCode)
	}
}
