package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-redset-kit/pkg/domain"

	"google.golang.org/genai"
)

// CleanJSON はモデル応答から JSON 本体を取り出します。
// 最初の "{" から最後の "}" までを返し、見つからなければ ```json のフェンスだけを取り除きます。
func CleanJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}

	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractImage は先頭候補の最初のインライン画像を取り出します。
func extractImage(resp *genai.GenerateContentResponse) (*ImageResult, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("%w: no candidates", domain.ErrNoImageData)
	}

	candidate := resp.Candidates[0]
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageResult{Data: part.InlineData.Data, MIMEType: part.InlineData.MIMEType}, nil
			}
		}
	}

	if candidate.FinishReason != "" && candidate.FinishReason != genai.FinishReasonStop {
		slog.Warn("画像なしで生成が終了しました", "finish_reason", candidate.FinishReason, "message", candidate.FinishMessage)
		return nil, fmt.Errorf("%w: finish reason %s", domain.ErrNoImageData, candidate.FinishReason)
	}
	return nil, domain.ErrNoImageData
}
