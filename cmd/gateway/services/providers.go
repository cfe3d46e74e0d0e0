package services

import (
	"context"
	"fmt"

	"grux/cmd/gateway/clients/geminiclient"
	"grux/cmd/gateway/clients/openaiclient"
	"grux/cmd/gateway/dto"
	"grux/config"
)

// OpenAIProvider adapts the OpenAI client to the Provider port.
type OpenAIProvider struct {
	client *openaiclient.Client
}

func NewOpenAIProvider(client *openaiclient.Client) *OpenAIProvider {
	return &OpenAIProvider{client: client}
}

func (p *OpenAIProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (ProviderCompletion, error) {
	completion, err := p.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return ProviderCompletion{}, err
	}

	out := ProviderCompletion{Text: completion.Text}
	if completion.Usage != nil {
		out.Usage = &dto.UsageDTO{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		}
	}
	return out, nil
}

// GeminiProvider adapts the Gemini client to the Provider port.
type GeminiProvider struct {
	client *geminiclient.Client
}

func NewGeminiProvider(client *geminiclient.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

func (p *GeminiProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (ProviderCompletion, error) {
	completion, err := p.client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return ProviderCompletion{}, err
	}

	out := ProviderCompletion{Text: completion.Text}
	if completion.Usage != nil {
		out.Usage = &dto.UsageDTO{
			PromptTokens:     completion.Usage.PromptTokens,
			CompletionTokens: completion.Usage.CompletionTokens,
			TotalTokens:      completion.Usage.TotalTokens,
		}
	}
	return out, nil
}

// NewProviderFromConfig selects the configured upstream provider.
func NewProviderFromConfig(cfg config.CompleterConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(openaiclient.New(cfg.OpenAI, config.OpenAIApiKey())), nil
	case "gemini":
		return NewGeminiProvider(geminiclient.New(cfg.Gemini, config.GeminiApiKey())), nil
	default:
		return nil, fmt.Errorf("unknown completer provider: %q", cfg.Provider)
	}
}
