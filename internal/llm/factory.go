package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/recall/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped so that each
// attempt is recorded as a request event and transient failures are retried
// within cfg.Timeout: caller → timeout → retry → logging → base.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithTimeout(WithRetry(WithLogging(base, eventRepo), cfg.Retry), cfg.Timeout), nil
}
