package factory

import (
	"fmt"

	"study-tutor-be/pkg/llm"
	"study-tutor-be/pkg/llm/gemini"
	"study-tutor-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, geminiApiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "gemini":
		if geminiApiKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(geminiApiKey, modelName), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
