package generator

import (
	"context"

	"google.golang.org/genai"
)

// ContentGenerator はモデル呼び出しの最小契約です。*genai.Models がこれを満たします。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}
