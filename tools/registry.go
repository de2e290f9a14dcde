package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/petal-labs/groq"
)

// ErrDuplicateTool is returned when registering a tool whose name is already
// taken.
var ErrDuplicateTool = errors.New("tool already registered")

// ErrToolNotFound is returned when a tool call names an unknown tool.
var ErrToolNotFound = errors.New("tool not found")

// Registry manages a collection of tools indexed by name.
// Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. Returns ErrDuplicateTool if the name is taken.
func (r *Registry) Register(t Tool) error {
	if t == nil {
		return errors.New("tool cannot be nil")
	}

	name := t.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateTool, name)
	}

	r.tools[name] = t
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// Definitions returns the chat request representation of every registered
// tool, for use as ChatCompletionRequest.Tools.
func (r *Registry) Definitions() []groq.ChatTool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]groq.ChatTool, 0, len(r.tools))
	for _, t := range r.tools {
		defs = append(defs, Definition(t))
	}
	return defs
}

// Execute finds a tool by name and calls it with the given arguments.
func (r *Registry) Execute(ctx context.Context, name string, args json.RawMessage) (any, error) {
	tool, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	return tool.Call(ctx, args)
}

// ExecuteCalls runs every tool call from a completion choice and returns the
// tool-role messages to append to the conversation. Execution stops at the
// first failing call.
func (r *Registry) ExecuteCalls(ctx context.Context, calls []groq.ChatToolCall) ([]groq.ChatMessage, error) {
	messages := make([]groq.ChatMessage, 0, len(calls))
	for _, call := range calls {
		result, err := r.Execute(ctx, call.Function.Name, json.RawMessage(call.Function.Arguments))
		if err != nil {
			return nil, fmt.Errorf("executing tool call %s: %w", call.ID, err)
		}

		content, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("serializing result of tool call %s: %w", call.ID, err)
		}

		messages = append(messages, groq.ChatMessage{
			Role:       "tool",
			Content:    string(content),
			ToolCallID: call.ID,
		})
	}
	return messages, nil
}
