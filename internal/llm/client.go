// Package llm wraps the OpenAI chat completions API behind the small Model
// interface the assistant depends on.
package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Message is one turn of a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Model is the language model contract used by the assistant. Complete is a
// single system+user exchange; Chat carries prior conversation turns.
type Model interface {
	Complete(ctx context.Context, system, user string, temperature float32) (string, error)
	Chat(ctx context.Context, system string, history []Message, user string) (string, error)
}

// Client implements Model on the OpenAI API.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
}

// NewClient creates an OpenAI-backed model client.
func NewClient(apiKey, model string, maxTokens int) *Client {
	return &Client{
		api:       openai.NewClient(apiKey),
		model:     model,
		maxTokens: maxTokens,
	}
}

// Verify Client satisfies Model at compile time.
var _ Model = (*Client)(nil)

func (c *Client) create(ctx context.Context, messages []openai.ChatCompletionMessage, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   c.maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("llm: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}

// Complete sends a single system+user exchange and returns the raw text.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float32) (string, error) {
	return c.create(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, Content: user},
	}, temperature)
}

// Chat sends the conversation history followed by the new user turn.
func (c *Client) Chat(ctx context.Context, system string, history []Message, user string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleSystem, Content: system,
	})
	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role: m.Role, Content: m.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser, Content: user,
	})
	return c.create(ctx, messages, 0.7)
}
