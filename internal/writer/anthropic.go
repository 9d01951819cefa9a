package writer

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"powerball-news/internal/apperrors"
)

// DefaultAnthropicBaseURL is used when AnthropicOptions.BaseURL is empty.
const DefaultAnthropicBaseURL = "https://api.anthropic.com/"

// AnthropicOptions configures AnthropicGenerator.
type AnthropicOptions struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int64
	Temperature float64
}

// AnthropicGenerator generates text with the Anthropic Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	opts   AnthropicOptions
}

// NewAnthropicGenerator creates a generator. Key and endpoint come from opts
// only: the SDK's ANTHROPIC_BASE_URL and ANTHROPIC_AUTH_TOKEN defaults are
// overridden. Requests are not retried.
func NewAnthropicGenerator(opts AnthropicOptions, reqOpts ...option.RequestOption) *AnthropicGenerator {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultAnthropicBaseURL
	}
	all := append([]option.RequestOption{
		option.WithBaseURL(opts.BaseURL),
		option.WithAPIKey(opts.APIKey),
		option.WithHeaderDel("Authorization"),
		option.WithMaxRetries(0),
	}, reqOpts...)

	return &AnthropicGenerator{
		client: anthropic.NewClient(all...),
		opts:   opts,
	}
}

// Generate sends prompt as a single user message and returns the text of the reply.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.opts.APIKey == "" {
		return "", apperrors.New(apperrors.KindGeneration, "generate", errors.New("ANTHROPIC_API_KEY is not set"))
	}

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.opts.Model),
		MaxTokens:   g.opts.MaxTokens,
		Temperature: anthropic.Float(g.opts.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", apperrors.New(apperrors.KindGeneration, "messages api", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", apperrors.New(apperrors.KindGeneration, "messages api", errors.New("reply contains no text"))
	}
	return sb.String(), nil
}
