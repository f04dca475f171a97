package embedding

import (
	"strings"

	"github.com/philippgille/chromem-go"
)

// OpenAI-совместимый endpoint Gemini API
const DefaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// newGeminiFunc ходит в /embeddings Gemini через OpenAI-совместимый клиент chromem.
// Модель передаётся без префикса "models/".
func newGeminiFunc(cfg Config) chromem.EmbeddingFunc {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	model := strings.TrimPrefix(cfg.Model, "models/")
	return chromem.NewEmbeddingFuncOpenAICompat(baseURL, cfg.APIKey, model, nil)
}
