package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-redset-kit/pkg/domain"
	"github.com/shouni/go-redset-kit/pkg/prompts"
	"github.com/shouni/go-redset-kit/pkg/session"
)

// EditImage は生成済み画像に局所編集を1回だけ適用します。
// 参照画像・分析・アスペクト比はセッションのスナップショットからのみ読み、失敗は domain.ErrEditFailed です。
func (c *Client) EditImage(ctx context.Context, sess *session.Session, image []byte, mimeType, instruction string) (*ImageResult, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, fmt.Errorf("%w: 編集指示が空です", domain.ErrEditFailed)
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: 編集対象の画像がありません", domain.ErrEditFailed)
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: セッションがありません", domain.ErrEditFailed)
	}
	snap, ok := sess.Snapshot()
	if !ok {
		return nil, fmt.Errorf("%w: セッションにプランの記録がありません", domain.ErrEditFailed)
	}

	p, err := c.composer.Edit(prompts.EditRequest{
		Image:         image,
		ImageMIMEType: mimeType,
		Instruction:   instruction,
		References:    snap.References,
		Analysis:      snap.Analysis,
		AspectRatio:   snap.AspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEditFailed, err)
	}

	res, err := c.generateImage(ctx, "edit", p, snap.AspectRatio)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEditFailed, err)
	}
	return res, nil
}
