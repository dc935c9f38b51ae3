package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lydakis/ab/internal/command"
	"github.com/lydakis/ab/internal/response"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var serveStdioFn = func(s *server.MCPServer) error { return server.ServeStdio(s) }

// serveMCP exposes every verb as an MCP tool over stdio.
func serveMCP(s *session) error {
	return serveStdioFn(newMCPServer(s))
}

func newMCPServer(s *session) *server.MCPServer {
	srv := server.NewMCPServer("ab", buildVersion, server.WithToolCapabilities(false))
	for _, verb := range verbNames() {
		srv.AddTool(verbTool(verb, command.Table[verb]), s.toolHandler(verb))
	}
	return srv
}

func verbTool(verb string, spec command.Spec) mcp.Tool {
	props := make(map[string]any, len(spec.Params)+2)
	required := []string{}
	for _, p := range spec.Params {
		props[p.Name] = map[string]any{"type": "string"}
		if !p.Optional {
			required = append(required, p.Name)
		}
	}
	if len(spec.Flags) > 0 {
		props["flags"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": fmt.Sprintf("Flags such as %v", spec.Flags),
		}
	}
	if spec.Action == "launch" || spec.Action == "navigate" {
		props["headed"] = map[string]any{
			"type":        "boolean",
			"description": "Show the browser window",
		}
	}

	return mcp.Tool{
		Name:        verb,
		Description: spec.Help,
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: props,
			Required:   required,
		},
	}
}

func (s *session) toolHandler(verb string) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		inv, err := toolInvocation(verb, req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		resp, err := s.call(inv)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		// Tool results are plain text whatever the terminal colour setting.
		text, err := render(response.Styler{}, resp, command.RemoteAction(verb))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// toolInvocation lines named tool arguments up as positionals. An optional
// parameter may only be given when every parameter before it is.
func toolInvocation(verb string, args map[string]any) (command.Invocation, error) {
	inv := command.Invocation{Verb: verb}
	spec, ok := command.Lookup(verb)
	if !ok {
		return inv, fmt.Errorf("unknown command: %s", verb)
	}

	var gap string
	for _, p := range spec.Params {
		value, present := args[p.Name]
		if !present || value == nil {
			if !p.Optional {
				return inv, fmt.Errorf("missing required argument %q", p.Name)
			}
			if gap == "" {
				gap = p.Name
			}
			continue
		}
		if gap != "" {
			return inv, fmt.Errorf("argument %q requires %q", p.Name, gap)
		}
		inv.Args = append(inv.Args, argString(value))
	}

	if raw, ok := args["flags"].([]any); ok {
		for _, flag := range raw {
			inv.Flags = append(inv.Flags, argString(flag))
		}
	}
	if headed, ok := args["headed"].(bool); ok {
		inv.Headed = headed
	}
	return inv, nil
}

func argString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
