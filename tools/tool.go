// Package tools helps applications expose callable functions to Groq chat
// models. A Registry holds the available tools, produces the tool definitions
// for a chat request, and dispatches the tool calls the model returns.
package tools

import (
	"context"
	"encoding/json"

	"github.com/petal-labs/groq"
)

// Tool is a function the model may call during a chat completion.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description tells the model what the tool does and when to use it.
	Description() string

	// Parameters returns a JSON Schema object describing the arguments.
	Parameters() map[string]any

	// Call executes the tool. args holds the raw JSON arguments produced by
	// the model. The returned value is serialized back to the model.
	Call(ctx context.Context, args json.RawMessage) (any, error)
}

// FuncTool adapts a plain function into a Tool.
type FuncTool struct {
	ToolName        string
	ToolDescription string
	ToolParameters  map[string]any
	Fn              func(ctx context.Context, args json.RawMessage) (any, error)
}

// NewFuncTool builds a Tool from a function and its schema.
func NewFuncTool(name, description string, parameters map[string]any, fn func(ctx context.Context, args json.RawMessage) (any, error)) *FuncTool {
	return &FuncTool{
		ToolName:        name,
		ToolDescription: description,
		ToolParameters:  parameters,
		Fn:              fn,
	}
}

func (t *FuncTool) Name() string               { return t.ToolName }
func (t *FuncTool) Description() string        { return t.ToolDescription }
func (t *FuncTool) Parameters() map[string]any { return t.ToolParameters }

func (t *FuncTool) Call(ctx context.Context, args json.RawMessage) (any, error) {
	return t.Fn(ctx, args)
}

// Definition returns the chat request representation of a tool.
func Definition(t Tool) groq.ChatTool {
	return groq.ChatTool{
		Type: "function",
		Function: groq.FunctionDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		},
	}
}

// ParseArgs decodes a tool call's arguments into T.
//
//	args, err := tools.ParseArgs[WeatherArgs](call)
func ParseArgs[T any](call groq.ChatToolCall) (*T, error) {
	var result T
	if err := json.Unmarshal([]byte(call.Function.Arguments), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

var _ Tool = (*FuncTool)(nil)
