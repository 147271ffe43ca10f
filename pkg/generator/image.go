package generator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/prompts"
)

// ImageRequest は PlanItem 1件分の画像生成の入力です。
type ImageRequest = prompts.ImageRequest

// attempt は画像生成の1回分の試行条件です。
type attempt struct {
	withPrevious bool
	// delay は試行前に待つ時間です。
	delay time.Duration
}

// imageStrategy は試行の並びを返します。
// 直前画像つきで continuityAttempts 回（失敗のたびに 2秒 × 試行回数 待機）、最後に直前画像なしで1回です。
func imageStrategy() []attempt {
	out := make([]attempt, 0, continuityAttempts+1)
	for i := 0; i < continuityAttempts; i++ {
		out = append(out, attempt{withPrevious: true, delay: retryBaseDelay * time.Duration(i)})
	}
	return append(out, attempt{withPrevious: false})
}

// GenerateImageFromPlan は PlanItem 1件分の画像を生成します。
// 呼び出しは最大 continuityAttempts+1 回で、すべて失敗すると domain.ErrImageGeneration を返します。
func (c *Client) GenerateImageFromPlan(ctx context.Context, req ImageRequest) (*ImageResult, error) {
	var lastErr error
	strategy := imageStrategy()

	for i, a := range strategy {
		if a.delay > 0 {
			if err := c.cfg.Sleep(ctx, a.delay); err != nil {
				return nil, fmt.Errorf("%w: item %d: %w", domain.ErrImageGeneration, req.Item.Order, err)
			}
		}

		p, err := c.composer.Image(req, a.withPrevious)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %w", domain.ErrImageGeneration, req.Item.Order, err)
		}

		res, err := c.generateImage(ctx, "image", p, req.AspectRatio)
		if err == nil {
			if i > 0 {
				slog.Info("リトライで画像を生成しました", "item", req.Item.Order, "attempt", i+1, "with_previous", a.withPrevious)
			}
			return res, nil
		}

		lastErr = err
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: item %d: %w", domain.ErrImageGeneration, req.Item.Order, ctx.Err())
		}
		slog.Warn("画像生成に失敗しました",
			"item", req.Item.Order,
			"attempt", i+1,
			"of", len(strategy),
			"with_previous", a.withPrevious && req.ContinuityAvailable(),
			"error", err,
		)
	}

	return nil, fmt.Errorf("%w: item %d: %d 回の試行がすべて失敗しました: %w", domain.ErrImageGeneration, req.Item.Order, len(strategy), lastErr)
}
