package factory

import (
	"fmt"

	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm/anthropic"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm/ollama"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/llm/openai"
)

// NewLLMProvider builds a provider from a type name. The apiKey is ignored for
// ollama; the baseURL is only used for ollama.
func NewLLMProvider(providerType, modelName, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an api key")
		}
		return openai.NewOpenAIProvider(apiKey, modelName), nil
	case "anthropic":
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an api key")
		}
		return anthropic.NewAnthropicProvider(apiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
