package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIWriter generates posts with the OpenAI chat completions API.
type OpenAIWriter struct {
	apiKey   string
	model    openai.ChatModel
	settings Settings
	client   openai.Client
}

// NewOpenAIWriter creates a new OpenAI-backed generator.
func NewOpenAIWriter(apiKey string, settings Settings, opts ...option.RequestOption) *OpenAIWriter {
	model := openai.ChatModelGPT4o
	if settings.Model != "" {
		model = openai.ChatModel(settings.Model)
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &OpenAIWriter{
		apiKey:   apiKey,
		model:    model,
		settings: settings,
		client:   openai.NewClient(opts...),
	}
}

// Generate returns the first choice of the completion as a single text.
func (w *OpenAIWriter) Generate(ctx context.Context, prompt string) (Result, error) {
	if w.apiKey == "" {
		return Result{}, errors.New("API key required: set OPENAI_API_KEY or use --openai-api-key")
	}

	params := openai.ChatCompletionNewParams{
		Model:       w.model,
		MaxTokens:   openai.Int(w.settings.MaxTokens),
		Temperature: openai.Float(w.settings.Temperature),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}

	resp, err := w.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate post via OpenAI API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("empty response from OpenAI API: %w", ErrMalformedOutput)
	}

	return SingleText(resp.Choices[0].Message.Content), nil
}
