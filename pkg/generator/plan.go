package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/shouni/go-redset-kit/pkg/catalog"
	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/prompts"
	"github.com/shouni/go-redset-kit/pkg/session"

	"google.golang.org/genai"
)

// PlanRequest はプラン生成の入力です。
type PlanRequest = prompts.PlanRequest

// PlanResult はプラン生成の結果です。
type PlanResult struct {
	Analysis *domain.PlanAnalysis
	Plan     domain.Plan
}

// GeneratePlan はプランを生成し、成功した場合だけセッションのスナップショットを更新します。
// 失敗はすべて domain.ErrPlanGeneration でラップされます。
func (c *Client) GeneratePlan(ctx context.Context, sess *session.Session, req PlanRequest) (*PlanResult, error) {
	p, err := c.composer.Plan(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPlanGeneration, err)
	}

	text, err := c.generateJSON(ctx, "plan", p, genai.Ptr(c.cfg.PlanTemperature), c.cfg.PlanMaxOutputTokens)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPlanGeneration, err)
	}

	var resp prompts.PlanResponse
	if err := json.Unmarshal([]byte(CleanJSON(text)), &resp); err != nil {
		slog.Error("プランの JSON 解析に失敗しました", "raw", truncate(text, maxLogText))
		return nil, fmt.Errorf("%w: 応答の解析に失敗しました: %w", domain.ErrPlanGeneration, err)
	}

	analysis := &domain.PlanAnalysis{
		Keywords:         resp.Analysis.Keywords,
		ContentDirection: resp.Analysis.ContentDirection,
		StyleAnalysis:    resp.Analysis.StyleAnalysis,
		BestReferenceID:  resolveReferenceIndex(req.References, resp.Analysis.BestReferenceIndex),
		ArtDirection:     req.ArtDirection,
	}

	plan, err := c.normalizePlan(req.Archetype, resp.PlanItems)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPlanGeneration, err)
	}

	if sess != nil {
		sess.Record(req.References, analysis, req.Archetype.Kind, req.AspectRatio)
	}

	slog.Info("プランを生成しました", "archetype", req.Archetype.Kind, "items", len(plan), "best_reference", analysis.BestReferenceID)
	return &PlanResult{Analysis: analysis, Plan: plan}, nil
}

// resolveReferenceIndex はモデルが返した添字を、その呼び出しに渡した配列の ID に解決します。
func resolveReferenceIndex(refs []domain.ReferenceImage, index *int) string {
	if index == nil {
		return ""
	}
	if *index < 0 || *index >= len(refs) {
		slog.Warn("bestReferenceIndex が範囲外です", "index", *index, "references", len(refs))
		return ""
	}
	return refs[*index].ID
}

// normalizePlan は応答の項目を検証し、表紙を先頭に移動して ID と連番を振り直します。
func (c *Client) normalizePlan(a catalog.Archetype, items []prompts.PlanItemResponse) (domain.Plan, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("planItems が空です")
	}

	sorted := make([]prompts.PlanItemResponse, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	coverIdx := -1
	plan := make(domain.Plan, 0, len(sorted))
	for i, it := range sorted {
		role := strings.TrimSpace(it.Role)
		if !a.Roles.Allows(role) {
			return nil, fmt.Errorf("項目 %d の役割 %q はカタログにありません", i+1, it.Role)
		}
		if a.IsCover(role) {
			if coverIdx >= 0 {
				return nil, fmt.Errorf("表紙の役割 %q が複数あります", a.Roles.Cover)
			}
			coverIdx = i
		}
		plan = append(plan, domain.PlanItem{
			ID:               c.cfg.NewID(),
			Role:             role,
			Description:      it.Description,
			Composition:      it.Composition,
			Copy:             it.Copywriting,
			LayoutSuggestion: it.Layout,
			InheritanceFocus: it.InheritanceFocus,
		})
	}
	if coverIdx < 0 {
		return nil, fmt.Errorf("表紙の役割 %q がありません", a.Roles.Cover)
	}

	if coverIdx > 0 {
		slog.Warn("表紙が先頭にないため移動します", "from", coverIdx+1)
		moved, err := plan.Move(coverIdx, 0)
		if err != nil {
			return nil, err
		}
		plan = moved
	}
	plan.Renumber()

	if n := len(plan); n < a.ItemRange.Min || n > a.ItemRange.Max {
		slog.Warn("プランの枚数が推奨範囲外です", "items", n, "min", a.ItemRange.Min, "max", a.ItemRange.Max)
	}
	return plan, nil
}
