package embedding

import (
	"strings"

	"github.com/philippgille/chromem-go"
)

// newOllamaFunc - локальный Ollama, эндпоинт /api/embeddings
func newOllamaFunc(cfg Config) chromem.EmbeddingFunc {
	return chromem.NewEmbeddingFuncOllama(cfg.Model, strings.TrimSuffix(cfg.BaseURL, "/")+"/api")
}
