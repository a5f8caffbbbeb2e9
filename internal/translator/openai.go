package translator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIConfig configures the chat-completion translator. BaseURL allows
// OpenAI-compatible APIs.
type OpenAIConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	TargetLanguage string
}

// OpenAI translates by asking a chat model for a short dictionary entry
type OpenAI struct {
	client *openai.Client
	model  string
	target string
	ready  bool
	logger *zap.Logger
}

// NewOpenAI creates an OpenAI translator
func NewOpenAI(cfg OpenAIConfig, logger *zap.Logger) *OpenAI {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	target := cfg.TargetLanguage
	if target == "" {
		target = "Simplified Chinese"
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(config),
		model:  model,
		target: target,
		ready:  !unconfigured(cfg.APIKey),
		logger: logger,
	}
}

// Name returns the provider name
func (o *OpenAI) Name() string {
	return ProviderOpenAI
}

// Translate asks the model for the translation of word
func (o *OpenAI) Translate(ctx context.Context, word string) (string, error) {
	if !o.ready {
		return "", ErrNotConfigured
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf(
					"You are a bilingual dictionary. Reply with the %s translation of the given English word, "+
						"then a short explanation on a new line. No other text.", o.target),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: word,
			},
		},
		Temperature: 0,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			o.logger.Warn("OpenAI rejected request",
				zap.String("word", word),
				zap.Int("status", apiErr.HTTPStatusCode),
			)
		}
		return "", fmt.Errorf("openai request: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai returned an empty translation")
	}
	return text, nil
}
