// ABOUTME: OpenAI-backed chat and embedding client with bounded retries
// ABOUTME: Supports both api.openai.com and Azure OpenAI deployments
package llm

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/acmecloud/askdocs/internal/fault"
	"github.com/acmecloud/askdocs/internal/util"
)

// Defaults match the original AcmeCloud deployment.
const (
	DefaultChatModel      = "gpt-4o-mini"
	DefaultEmbeddingModel = openai.SmallEmbedding3
	DefaultTemperature    = 0.7
)

// EmbeddingModel names the embedding deployment to use.
type EmbeddingModel = openai.EmbeddingModel

// ClientConfig holds configuration for the OpenAI client.
type ClientConfig struct {
	APIKey         string
	AzureEndpoint  string // when set, requests go to an Azure OpenAI deployment
	ChatModel      string
	EmbeddingModel openai.EmbeddingModel
	Temperature    float32
	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
}

// Client wraps the OpenAI API for chat completions (with tool calling) and
// embeddings. External calls are retried a bounded number of times; the last
// error propagates to the caller.
type Client struct {
	api            *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	temperature    float32
	maxRetries     int
	retryDelay     time.Duration
	timeout        time.Duration
}

// NewClient creates a client from the given configuration.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fault.New(fault.KindModel, "OpenAI API key is required")
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.AzureEndpoint != "" {
		apiCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.AzureEndpoint)
	}

	c := &Client{
		api:            openai.NewClientWithConfig(apiCfg),
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		temperature:    cfg.Temperature,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
		timeout:        cfg.RequestTimeout,
	}
	if c.chatModel == "" {
		c.chatModel = DefaultChatModel
	}
	if c.embeddingModel == "" {
		c.embeddingModel = DefaultEmbeddingModel
	}
	if c.temperature == 0 {
		c.temperature = DefaultTemperature
	}
	if c.retryDelay == 0 {
		c.retryDelay = 2 * time.Second
	}
	if c.timeout == 0 {
		c.timeout = 30 * time.Second
	}
	return c, nil
}

// Complete sends a chat completion request. A non-empty tools slice
// advertises the functions with tool_choice auto; the model may answer with
// text, tool calls, or both.
func (c *Client) Complete(ctx context.Context, messages []Message, tools []Tool) (*Completion, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    toOpenAIMessages(messages),
		Temperature: c.temperature,
		TopP:        1.0,
	}
	for _, t := range tools {
		req.Tools = append(req.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	var resp openai.ChatCompletionResponse
	err := util.Do(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var callErr error
		resp, callErr = c.api.CreateChatCompletion(callCtx, req)
		return callErr
	})
	if err != nil {
		return nil, fault.Wrap(fault.KindModel, err, "chat completion")
	}
	if len(resp.Choices) == 0 {
		return nil, fault.New(fault.KindModel, "no completion choices returned")
	}

	msg := resp.Choices[0].Message
	out := &Completion{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		if tc.Function.Name == "" {
			return nil, fault.New(fault.KindModel, "malformed tool call %q: missing function name", tc.ID)
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return out, nil
}

// Embed generates the embedding vector for one text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var resp openai.EmbeddingResponse
	err := util.Do(ctx, c.maxRetries, c.retryDelay, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		var callErr error
		resp, callErr = c.api.CreateEmbeddings(callCtx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		return callErr
	})
	if err != nil {
		return nil, fault.Wrap(fault.KindEmbedding, err, "creating embedding")
	}
	if len(resp.Data) == 0 {
		return nil, fault.New(fault.KindEmbedding, "no embeddings returned")
	}
	return resp.Data[0].Embedding, nil
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		om := openai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			om.ToolCalls = append(om.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		out = append(out, om)
	}
	return out
}
