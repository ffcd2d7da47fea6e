package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func functionCall(id, name, args string) openai.ToolCall {
	return openai.ToolCall{
		ID:   id,
		Type: openai.ToolTypeFunction,
		Function: openai.FunctionCall{
			Name:      name,
			Arguments: args,
		},
	}
}

func decodeResult(t *testing.T, output string) Result {
	t.Helper()
	var res Result
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	return res
}

func TestDispatchUnknownTool(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	out := r.Dispatch(context.Background(), functionCall("call_1", "mysteryTool", `{}`), "thread_1")

	assert.Equal(t, "call_1", out.ToolCallID)
	res := decodeResult(t, out.Output.(string))
	assert.False(t, res.Success)
	assert.Equal(t, "tool not implemented: mysteryTool", res.Error)
}

func TestDispatchMalformedArguments(t *testing.T) {
	called := false
	r := NewRegistry(zap.NewNop(), Tool{
		Definition: openai.FunctionDefinition{Name: "echoTool"},
		Handler: func(ctx context.Context, args json.RawMessage, inv Invocation) (string, error) {
			called = true
			return Result{Success: true}.JSON(), nil
		},
	})

	out := r.Dispatch(context.Background(), functionCall("call_1", "echoTool", `{"broken`), "thread_1")

	assert.False(t, called)
	res := decodeResult(t, out.Output.(string))
	assert.False(t, res.Success)
	assert.Equal(t, "malformed arguments for echoTool", res.Error)
}

func TestDispatchHandlerError(t *testing.T) {
	r := NewRegistry(zap.NewNop(), Tool{
		Definition: openai.FunctionDefinition{Name: "flakyTool"},
		Handler: func(ctx context.Context, args json.RawMessage, inv Invocation) (string, error) {
			return "", errors.New("db unavailable")
		},
	})

	out := r.Dispatch(context.Background(), functionCall("call_1", "flakyTool", `{}`), "thread_1")

	res := decodeResult(t, out.Output.(string))
	assert.False(t, res.Success)
	assert.Equal(t, "failed to run flakyTool: db unavailable", res.Error)
}

func TestDispatchPassesThreadID(t *testing.T) {
	var seen Invocation
	r := NewRegistry(zap.NewNop(), Tool{
		Definition: openai.FunctionDefinition{Name: "echoTool"},
		Handler: func(ctx context.Context, args json.RawMessage, inv Invocation) (string, error) {
			seen = inv
			return Result{Success: true}.JSON(), nil
		},
	})

	r.Dispatch(context.Background(), functionCall("call_1", "echoTool", `{}`), "thread_42")
	assert.Equal(t, "thread_42", seen.ThreadID)
}

func TestToolsetSkipsUnknownNames(t *testing.T) {
	r := NewRegistry(zap.NewNop(),
		Tool{Definition: openai.FunctionDefinition{Name: "saveCustomerData"}},
		Tool{Definition: openai.FunctionDefinition{Name: "saveBrandingData"}},
	)

	set := r.Toolset([]string{"saveCustomerData", "notRegistered", "saveBrandingData"})
	require.Len(t, set, 2)
	for _, tool := range set {
		assert.Equal(t, openai.ToolTypeFunction, tool.Type)
	}
	assert.Equal(t, "saveCustomerData", set[0].Function.Name)
	assert.Equal(t, "saveBrandingData", set[1].Function.Name)
}

func TestResultJSONOmitsEmptyFields(t *testing.T) {
	assert.JSONEq(t, `{"success":true,"message":"done"}`, Result{Success: true, Message: "done"}.JSON())
	assert.JSONEq(t, `{"success":false,"error":"nope"}`, Result{Success: false, Error: "nope"}.JSON())
}
