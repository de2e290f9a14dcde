package groq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/petal-labs/groq/core"
)

// ChatMessage is one message in a chat conversation.
type ChatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	Name       string         `json:"name,omitempty"`
	ToolCalls  []ChatToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

// ChatToolCall is a tool invocation requested by the model.
type ChatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function ChatFunctionCall `json:"function"`
}

// ChatFunctionCall carries the function name and its raw JSON arguments.
// Argument validation is left to the caller.
type ChatFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// FunctionDefinition describes a function the model may call.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ChatTool is a tool made available to the model.
type ChatTool struct {
	Type     string             `json:"type"`
	Function FunctionDefinition `json:"function"`
}

// ToolChoice constrains how the model may call tools. It is a closed set of
// variants: none, auto, required, or a specific named function. The wire
// format is either a bare string or a {"type":"function",...} object; both
// directions are handled by the JSON methods. Use the constructors; the zero
// value does not serialize.
type ToolChoice struct {
	mode     string
	function string
}

const toolChoiceFunction = "function"

// ToolChoiceNone forbids tool calls.
func ToolChoiceNone() *ToolChoice { return &ToolChoice{mode: "none"} }

// ToolChoiceAuto lets the model decide whether to call tools.
func ToolChoiceAuto() *ToolChoice { return &ToolChoice{mode: "auto"} }

// ToolChoiceRequired forces the model to call some tool.
func ToolChoiceRequired() *ToolChoice { return &ToolChoice{mode: "required"} }

// ToolChoiceFunction forces the model to call the named function.
func ToolChoiceFunction(name string) *ToolChoice {
	return &ToolChoice{mode: toolChoiceFunction, function: name}
}

// Mode returns the variant: "none", "auto", "required", or "function".
func (tc *ToolChoice) Mode() string { return tc.mode }

// FunctionName returns the forced function name, empty unless Mode is
// "function".
func (tc *ToolChoice) FunctionName() string { return tc.function }

type namedToolChoice struct {
	Type     string             `json:"type"`
	Function namedToolReference `json:"function"`
}

type namedToolReference struct {
	Name string `json:"name"`
}

// MarshalJSON implements json.Marshaler.
func (tc ToolChoice) MarshalJSON() ([]byte, error) {
	switch tc.mode {
	case "none", "auto", "required":
		return json.Marshal(tc.mode)
	case toolChoiceFunction:
		return json.Marshal(namedToolChoice{
			Type:     toolChoiceFunction,
			Function: namedToolReference{Name: tc.function},
		})
	default:
		return nil, fmt.Errorf("uninitialized tool choice")
	}
}

// UnmarshalJSON implements json.Unmarshaler, accepting both the bare-string
// and the named-function object forms.
func (tc *ToolChoice) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "none", "auto", "required":
			tc.mode = s
			tc.function = ""
			return nil
		}
		return fmt.Errorf("unknown tool choice %q", s)
	}

	var named namedToolChoice
	if err := json.Unmarshal(data, &named); err != nil {
		return fmt.Errorf("tool choice must be a string or a named function object")
	}
	if named.Type != toolChoiceFunction || named.Function.Name == "" {
		return fmt.Errorf("named tool choice must have type %q and a function name", toolChoiceFunction)
	}
	tc.mode = toolChoiceFunction
	tc.function = named.Function.Name
	return nil
}

// ChatCompletionRequest is the payload for the chat completions endpoint.
type ChatCompletionRequest struct {
	Model             string        `json:"model"`
	Messages          []ChatMessage `json:"messages"`
	MaxTokens         *int          `json:"max_tokens,omitempty"`
	Temperature       *float64      `json:"temperature,omitempty"`
	TopP              *float64      `json:"top_p,omitempty"`
	Stream            *bool         `json:"stream,omitempty"`
	Stop              string        `json:"stop,omitempty"`
	FrequencyPenalty  *float64      `json:"frequency_penalty,omitempty"`
	PresencePenalty   *float64      `json:"presence_penalty,omitempty"`
	Tools             []ChatTool    `json:"tools,omitempty"`
	ToolChoice        *ToolChoice   `json:"tool_choice,omitempty"`
	ParallelToolCalls *bool         `json:"parallel_tool_calls,omitempty"`
}

// ChatChoice is one generated completion.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Usage reports token consumption for a request.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatCompletion is the chat completions response payload.
type ChatCompletion struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   Usage        `json:"usage"`
}

// ChatService performs chat completions.
type ChatService struct {
	client *core.Client
}

// CreateCompletion sends a chat completion request. The model and at least
// one message are required.
func (s *ChatService) CreateCompletion(ctx context.Context, req *ChatCompletionRequest) (*core.Response[ChatCompletion], error) {
	if req == nil {
		return nil, fmt.Errorf("%w: chat completion request cannot be nil", core.ErrValidation)
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", core.ErrValidation)
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("%w: messages cannot be empty", core.ErrValidation)
	}

	return core.Post[ChatCompletion](ctx, s.client, basePath+"/chat/completions", req, core.Call{})
}

// Complete is a convenience for a single user prompt against model.
func (s *ChatService) Complete(ctx context.Context, model, prompt string) (*core.Response[ChatCompletion], error) {
	return s.CreateCompletion(ctx, &ChatCompletionRequest{
		Model:    model,
		Messages: []ChatMessage{{Role: "user", Content: prompt}},
	})
}
