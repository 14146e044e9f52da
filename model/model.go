package model

import (
	"context"
	"fmt"

	"github.com/hupe1980/taskmesh/core"
)

// Request captures the normalized model input produced by the session engine.
type Request struct {
	// System is the system prompt pinned at spawn time; may be empty.
	System string `json:"system,omitempty"`

	// Messages is the conversation history, oldest first, ending with the
	// user instruction of the current turn.
	Messages []core.Message `json:"messages"`

	// Model optionally overrides the adapter's default model id.
	Model string `json:"model,omitempty"`

	// Temperature overrides sampling temperature when > 0.
	Temperature float64 `json:"temperature,omitempty"`
}

// TokenUsage captures token usage statistics for a response.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is the final completion emitted by a model.
type Response struct {
	Text         string      `json:"text"`
	FinishReason string      `json:"finish_reason"` // "stop", "length", etc.
	Usage        *TokenUsage `json:"usage,omitempty"`
}

// Info contains metadata about a model implementation.
type Info struct {
	Name     string `json:"name"`
	Provider string `json:"provider"` // "openai", "anthropic", "mock", etc.
}

// Model is the minimal interface required by the session engine to drive
// generation. Generate delivers at least one Response on the first channel or
// exactly one error on the second, then closes both.
type Model interface {
	Generate(ctx context.Context, req Request) (<-chan Response, <-chan error)

	// Info returns information about the model implementation.
	Info() Info
}

// Final drains a Generate result and returns the last Response, honoring ctx
// cancellation. Engines that do not care about streaming use this helper.
func Final(ctx context.Context, respCh <-chan Response, errCh <-chan error) (*Response, error) {
	var final *Response
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case err, ok := <-errCh:
			if ok && err != nil {
				return nil, err
			}
			errCh = nil
		case resp, ok := <-respCh:
			if !ok {
				if final == nil {
					return nil, fmt.Errorf("model produced no response")
				}
				return final, nil
			}
			r := resp
			final = &r
		}
	}
}

// MockModel is a lightweight in-memory Model useful for tests & examples.
type MockModel struct {
	info      Info
	responses map[string]string
	err       error
}

// NewMockModel constructs a MockModel.
func NewMockModel(name string) *MockModel {
	return &MockModel{
		info:      Info{Name: name, Provider: "mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockModel) AddResponse(prompt, response string) { m.responses[prompt] = response }

// FailWith makes every Generate call report err.
func (m *MockModel) FailWith(err error) { m.err = err }

// Generate implements Model.
func (m *MockModel) Generate(ctx context.Context, req Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 1)
	errCh := make(chan error, 1)

	go func() {
		defer close(respCh)
		defer close(errCh)
		if m.err != nil {
			errCh <- m.err
			return
		}
		if len(req.Messages) == 0 {
			errCh <- fmt.Errorf("no messages provided")
			return
		}
		input := req.Messages[len(req.Messages)-1].Text
		text := m.responses[input]
		if text == "" {
			text = fmt.Sprintf("Mock response to: %s", input)
		}
		select {
		case <-ctx.Done():
			errCh <- ctx.Err()
		case respCh <- Response{Text: text, FinishReason: "stop"}:
		}
	}()

	return respCh, errCh
}

// Info implements Model.
func (m *MockModel) Info() Info { return m.info }
