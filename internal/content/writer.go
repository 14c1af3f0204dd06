package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Generator sends an assembled prompt to a text-generation service.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}

// Settings are the sampling parameters shared by all generators.
type Settings struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}

// DefaultSettings returns the long-form, low-variance settings used for posts.
func DefaultSettings() Settings {
	return Settings{
		MaxTokens:   3500,
		Temperature: 0.3,
	}
}

// AnthropicWriter generates posts with the Anthropic Messages API.
type AnthropicWriter struct {
	apiKey   string
	model    anthropic.Model
	settings Settings
	client   anthropic.Client
}

// NewAnthropicWriter creates a new Anthropic-backed generator. Extra request options
// are passed to the SDK client.
func NewAnthropicWriter(apiKey string, settings Settings, opts ...option.RequestOption) *AnthropicWriter {
	model := anthropic.ModelClaudeSonnet4_5_20250929
	if settings.Model != "" {
		model = anthropic.Model(settings.Model)
	}

	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &AnthropicWriter{
		apiKey:   apiKey,
		model:    model,
		settings: settings,
		client:   anthropic.NewClient(opts...),
	}
}

// Generate sends prompt as a single user message and returns the text blocks
// of the response as a fragment list.
func (w *AnthropicWriter) Generate(ctx context.Context, prompt string) (Result, error) {
	if w.apiKey == "" {
		return Result{}, errors.New("API key required: set ANTHROPIC_API_KEY or use --anthropic-api-key")
	}

	params := anthropic.MessageNewParams{
		Model:       w.model,
		MaxTokens:   w.settings.MaxTokens,
		Temperature: anthropic.Float(w.settings.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}

	resp, err := w.client.Messages.New(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("failed to generate post via Anthropic API: %w", err)
	}

	fragments, err := textFragments(resp.Content)
	if err != nil {
		return Result{}, err
	}

	return FragmentList(fragments...), nil
}

// textFragments extracts the text of every content block. Any non-text block
// makes the whole response malformed.
func textFragments(content []anthropic.ContentBlockUnion) ([]string, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("empty response from Anthropic API: %w", ErrMalformedOutput)
	}

	fragments := make([]string, 0, len(content))
	for _, block := range content {
		textBlock, ok := block.AsAny().(anthropic.TextBlock)
		if !ok {
			return nil, fmt.Errorf("unexpected %q content block from Anthropic API: %w", block.Type, ErrMalformedOutput)
		}

		fragments = append(fragments, textBlock.Text)
	}

	return fragments, nil
}
