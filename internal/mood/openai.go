package mood

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openaigo "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	// DefaultOpenAIBaseURL is the public OpenAI API.
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	// DefaultOpenAIModel is a small chat model good enough for one-word labels.
	DefaultOpenAIModel = "gpt-4o-mini"
)

const labelPrompt = "You label the emotion expressed in a journal entry. " +
	"Reply with exactly one lowercase English word naming the dominant emotion " +
	"(for example: joy, sadness, anger, fear, surprise, love). No punctuation, no explanation."

// ErrMissingAPIKey is returned when the OpenAI adapter has no API key.
var ErrMissingAPIKey = errors.New("missing OpenAI API key")

// OpenAIConfig holds settings for an OpenAI-compatible chat endpoint.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAI classifies text by asking a chat model for a single emotion word.
type OpenAI struct {
	client openaigo.Client
	model  string
}

// NewOpenAI creates an OpenAI model adapter. The SDK's own retries are
// disabled; a failed call simply yields no label.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultOpenAIModel
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	client := openaigo.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(&http.Client{Timeout: DefaultModelTimeout}),
		option.WithMaxRetries(0),
	)

	return &OpenAI{client: client, model: model}, nil
}

// Classify returns the emotion word the model chose for text.
func (o *OpenAI) Classify(ctx context.Context, text string) (string, error) {
	completion, err := o.client.Chat.Completions.New(ctx, openaigo.ChatCompletionNewParams{
		Model: openaigo.ChatModel(o.model),
		Messages: []openaigo.ChatCompletionMessageParamUnion{
			openaigo.SystemMessage(labelPrompt),
			openaigo.UserMessage(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", ErrNoLabel
	}

	label := cleanLabel(completion.Choices[0].Message.Content)
	if label == "" {
		return "", ErrNoLabel
	}
	return label, nil
}

// cleanLabel reduces a free-form model reply to its first lowercase word.
func cleanLabel(reply string) string {
	fields := strings.Fields(strings.ToLower(reply))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,!?;:\"'`*")
}
