package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/prompts"

	"golang.org/x/sync/errgroup"
)

// ConceptRequest はコンセプト生成の入力です。
type ConceptRequest = prompts.ConceptRequest

// ConceptResult はコンセプト生成の結果です。
// Candidates は素材・スタイル両用の新しい参照画像として返されます。
type ConceptResult struct {
	Analysis     string
	Roles        []string
	ArtDirection string
	Candidates   []domain.ReferenceImage
}

// GenerateConcept は分析を1回行い、その結果からマスター画像を並行で生成します。
// 画像呼び出しの個別の失敗は許容し、1枚も得られなかった場合だけ失敗とします。
func (c *Client) GenerateConcept(ctx context.Context, req ConceptRequest) (*ConceptResult, error) {
	analysisPrompt, err := c.composer.ConceptAnalysis(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConceptGeneration, err)
	}

	text, err := c.generateJSON(ctx, "concept_analysis", analysisPrompt, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: 分析呼び出しに失敗しました: %w", domain.ErrConceptGeneration, err)
	}

	var analysis prompts.ConceptAnalysis
	if err := json.Unmarshal([]byte(CleanJSON(text)), &analysis); err != nil {
		slog.Error("コンセプト分析の JSON 解析に失敗しました", "raw", truncate(text, maxLogText))
		return nil, fmt.Errorf("%w: 分析結果の解析に失敗しました: %w", domain.ErrConceptGeneration, err)
	}
	if strings.TrimSpace(analysis.ImagePrompt) == "" {
		return nil, fmt.Errorf("%w: imagePrompt が空です", domain.ErrConceptGeneration)
	}

	imagePrompt, err := c.composer.ConceptImage(req, analysis)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConceptGeneration, err)
	}

	results := make([]*ImageResult, conceptCandidates)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := range results {
		eg.Go(func() error {
			res, err := c.generateImage(egCtx, "concept_image", imagePrompt, req.AspectRatio)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				slog.Warn("コンセプト画像の生成に失敗しました", "candidate", i+1, "error", err)
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConceptGeneration, err)
	}

	out := &ConceptResult{
		Analysis:     conceptAnalysisText(analysis),
		Roles:        analysis.Roles,
		ArtDirection: analysis.ArtDirection,
	}
	for _, res := range results {
		if res == nil {
			continue
		}
		ref := domain.NewReferenceImage(res.Data, res.MIMEType, true, true)
		ref.ID = c.cfg.NewID()
		out.Candidates = append(out.Candidates, ref)
	}
	if len(out.Candidates) == 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrConceptGeneration, domain.ErrNoImageData)
	}

	slog.Info("コンセプト候補を生成しました", "candidates", len(out.Candidates), "roles", len(analysis.Roles))
	return out, nil
}

func conceptAnalysisText(a prompts.ConceptAnalysis) string {
	if len(a.Roles) == 0 {
		return a.Analysis
	}
	return fmt.Sprintf("%s\n\nRoles: %s", a.Analysis, strings.Join(a.Roles, ", "))
}
