package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Invocation carries the per-call context a handler may need beyond its own
// arguments.
type Invocation struct {
	ThreadID string
}

// HandlerFunc executes one tool call. The returned string is the tool output
// submitted back to the provider and must be a JSON-encoded Result. A non-nil
// error is recovered by Dispatch into an error-shaped output, never propagated.
type HandlerFunc func(ctx context.Context, args json.RawMessage, inv Invocation) (string, error)

type Tool struct {
	Definition openai.FunctionDefinition
	Handler    HandlerFunc
}

// Result is the mandated shape of every tool output: the provider transports
// outputs as opaque strings, so success and failure both travel as JSON.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (r Result) JSON() string {
	b, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"error":"failed to encode tool result"}`
	}
	return string(b)
}

// Registry is the static tool dispatch table, built once at startup.
type Registry struct {
	logger *zap.Logger
	tools  map[string]Tool
}

func NewRegistry(logger *zap.Logger, tools ...Tool) *Registry {
	table := make(map[string]Tool, len(tools))
	for _, t := range tools {
		table[t.Definition.Name] = t
	}
	return &Registry{
		logger: logger.Named("tools"),
		tools:  table,
	}
}

func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Toolset resolves a topic's tool names into assistant tool definitions.
// Unknown names are skipped: a topic referencing an unregistered tool is a
// configuration wart, not a request failure.
func (r *Registry) Toolset(names []string) []openai.Tool {
	var set []openai.Tool
	for _, name := range names {
		t, ok := r.tools[name]
		if !ok {
			r.logger.Warn("topic references unregistered tool", zap.String("tool", name))
			continue
		}
		def := t.Definition
		set = append(set, openai.Tool{
			Type:     openai.ToolTypeFunction,
			Function: &def,
		})
	}
	return set
}

// Dispatch runs one tool call and always produces an output for its call id.
// Unknown tools, malformed arguments and handler failures all become
// error-shaped outputs so the run can still be unblocked.
func (r *Registry) Dispatch(ctx context.Context, call openai.ToolCall, threadID string) openai.ToolOutput {
	name := call.Function.Name

	t, ok := r.tools[name]
	if !ok {
		r.logger.Warn("run requested unimplemented tool", zap.String("tool", name))
		return errorOutput(call.ID, fmt.Sprintf("tool not implemented: %s", name))
	}

	if !json.Valid([]byte(call.Function.Arguments)) {
		r.logger.Error("malformed tool arguments",
			zap.String("tool", name),
			zap.String("arguments", call.Function.Arguments))
		return errorOutput(call.ID, fmt.Sprintf("malformed arguments for %s", name))
	}

	out, err := t.Handler(ctx, json.RawMessage(call.Function.Arguments), Invocation{ThreadID: threadID})
	if err != nil {
		r.logger.Error("tool handler failed", zap.String("tool", name), zap.Error(err))
		return errorOutput(call.ID, fmt.Sprintf("failed to run %s: %v", name, err))
	}

	return openai.ToolOutput{
		ToolCallID: call.ID,
		Output:     out,
	}
}

func errorOutput(callID, message string) openai.ToolOutput {
	return openai.ToolOutput{
		ToolCallID: callID,
		Output:     Result{Success: false, Error: message}.JSON(),
	}
}
