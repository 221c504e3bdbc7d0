package dto

type UpdateSettingsRequest struct {
	AiProvider        string `json:"ai_provider" validate:"required,oneof=openai anthropic ollama"`
	AiModel           string `json:"ai_model"`
	OpenAIApiKey      string `json:"openai_api_key"`
	AnthropicApiKey   string `json:"anthropic_api_key"`
	OllamaBaseURL     string `json:"ollama_base_url"`
	DailyMessageLimit int    `json:"daily_message_limit" validate:"gte=0"`
}

// ShowSettingsResponse never echoes key material back, only whether a key
// is on file.
type ShowSettingsResponse struct {
	AiProvider        string `json:"ai_provider"`
	AiModel           string `json:"ai_model"`
	HasOpenAIKey      bool   `json:"has_openai_key"`
	HasAnthropicKey   bool   `json:"has_anthropic_key"`
	OllamaBaseURL     string `json:"ollama_base_url"`
	DailyMessageLimit int    `json:"daily_message_limit"`
}
