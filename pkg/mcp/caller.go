package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rendis/workflow-runner/pkg/contract"
)

// Caller is the live remote caller: it invokes tools on an MCP server and
// decodes their JSON results. Tool errors and protocol failures are
// returned as transport errors.
type Caller struct {
	client *client.Client
}

// NewStdioCaller launches command as an MCP server subprocess and
// connects to it over stdio.
func NewStdioCaller(ctx context.Context, command string, env []string, args ...string) (*Caller, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeTransport, "start %s: %s", command, err.Error()).WithCause(err)
	}
	return connect(ctx, c, false)
}

// NewHTTPCaller connects to a streamable HTTP MCP endpoint.
func NewHTTPCaller(ctx context.Context, url string, headers map[string]string) (*Caller, error) {
	var opts []transport.StreamableHTTPCOption
	if len(headers) > 0 {
		opts = append(opts, transport.WithHTTPHeaders(headers))
	}
	c, err := client.NewStreamableHttpClient(url, opts...)
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeTransport, "create http client for %s: %s", url, err.Error()).WithCause(err)
	}
	return connect(ctx, c, true)
}

// NewInProcessCaller connects directly to srv without any transport.
func NewInProcessCaller(ctx context.Context, srv *server.MCPServer) (*Caller, error) {
	c, err := client.NewInProcessClient(srv)
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeTransport, "create in-process client: %s", err.Error()).WithCause(err)
	}
	return connect(ctx, c, true)
}

// connect starts the client when needed and performs the MCP handshake.
func connect(ctx context.Context, c *client.Client, start bool) (*Caller, error) {
	if start {
		if err := c.Start(ctx); err != nil {
			_ = c.Close()
			return nil, contract.NewErrorf(contract.ErrCodeTransport, "start client: %s", err.Error()).WithCause(err)
		}
	}

	req := mcp.InitializeRequest{}
	req.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	req.Params.ClientInfo = mcp.Implementation{Name: "workflow-runner", Version: "1.0.0"}
	if _, err := c.Initialize(ctx, req); err != nil {
		_ = c.Close()
		return nil, contract.NewErrorf(contract.ErrCodeTransport, "initialize: %s", err.Error()).WithCause(err)
	}

	return &Caller{client: c}, nil
}

// Call invokes tool and returns its decoded JSON result.
func (c *Caller) Call(ctx context.Context, tool string, args map[string]any) (any, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = tool
	req.Params.Arguments = args

	res, err := c.client.CallTool(ctx, req)
	if err != nil {
		return nil, contract.NewError(contract.ErrCodeTransport, err.Error()).WithTool(tool).WithCause(err)
	}
	if res.IsError {
		return nil, contract.NewError(contract.ErrCodeTransport, resultText(res)).WithTool(tool)
	}

	return decodeResult(tool, res)
}

// Close terminates the session and, for stdio, the server subprocess.
func (c *Caller) Close() error {
	return c.client.Close()
}

// decodeResult prefers the first text content holding JSON and falls back
// to the structured content.
func decodeResult(tool string, res *mcp.CallToolResult) (any, error) {
	for _, content := range res.Content {
		tc, ok := mcp.AsTextContent(content)
		if !ok {
			continue
		}
		var out any
		if err := json.Unmarshal([]byte(tc.Text), &out); err != nil {
			return nil, contract.NewErrorf(contract.ErrCodeTransport, "result is not JSON: %s", err.Error()).
				WithTool(tool).
				WithCause(err)
		}
		return out, nil
	}

	if res.StructuredContent != nil {
		return res.StructuredContent, nil
	}
	return nil, contract.NewError(contract.ErrCodeTransport, "empty tool result").WithTool(tool)
}

func resultText(res *mcp.CallToolResult) string {
	var parts []string
	for _, content := range res.Content {
		if tc, ok := mcp.AsTextContent(content); ok && tc.Text != "" {
			parts = append(parts, tc.Text)
		}
	}
	if len(parts) == 0 {
		return "tool returned an error"
	}
	return strings.Join(parts, "; ")
}
