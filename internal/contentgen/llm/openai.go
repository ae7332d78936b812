package llm

import (
	"context"
	"errors"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"
)

// OpenAIClient implements Client using the official openai-go SDK
// (chat completions).
type OpenAIClient struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
}

// Settings holds the base configuration for the OpenAI-compatible client.
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
	// Requests per second; zero disables rate limiting.
	RateLimit float64
}

func NewOpenAIClient(cfg Settings) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		limiter: limiter,
	}, nil
}

func (c *OpenAIClient) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

func (c *OpenAIClient) CompleteJSON(ctx context.Context, system, user string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) StartConversation(system, user string, tools []Tool) Conversation {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	for _, t := range tools {
		params.Tools = append(params.Tools, openai.ChatCompletionToolParam{
			Function: openai.FunctionDefinitionParam{
				Name:        t.Name,
				Description: openai.String(t.Description),
				Parameters:  openai.FunctionParameters(t.Parameters),
			},
		})
	}
	return &openaiConversation{client: c, params: params}
}

type openaiConversation struct {
	client *OpenAIClient
	params openai.ChatCompletionNewParams
}

func (conv *openaiConversation) Next(ctx context.Context) (Turn, error) {
	if err := conv.client.wait(ctx); err != nil {
		return Turn{}, err
	}

	resp, err := conv.client.client.Chat.Completions.New(ctx, conv.params)
	if err != nil {
		return Turn{}, err
	}
	if len(resp.Choices) == 0 {
		return Turn{}, errors.New("openai: empty choices")
	}

	message := resp.Choices[0].Message
	conv.params.Messages = append(conv.params.Messages, message.ToParam())

	turn := Turn{Content: message.Content}
	for _, call := range message.ToolCalls {
		if call.Type != "function" {
			continue
		}
		turn.ToolCalls = append(turn.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return turn, nil
}

func (conv *openaiConversation) AppendToolResult(callID, content string) {
	conv.params.Messages = append(conv.params.Messages, openai.ToolMessage(content, callID))
}
